// This file is part of Nesgopher.
//
// Nesgopher is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Nesgopher is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Nesgopher.  If not, see <https://www.gnu.org/licenses/>.

package digest

import (
	"crypto/sha1"
	"fmt"
	"image"

	"github.com/nesgopher/nesgopher/curated"
)

// Sentinal error patterns.
const (
	VideoDigest = "digest: video: %v"
)

const pixelDepth = 3

// Video produces a chained hash of every frame it is given. The hash of the
// previous frame is included in the data of the next frame so the digest
// represents the entire sequence of frames and not just the last one.
type Video struct {
	digest [sha1.Size]byte
	pixels []byte
	frames int
}

// NewVideo is the preferred method of initialisation for the Video type. The
// width and height are the dimensions of the frames that will be added.
func NewVideo(width int, height int) *Video {
	return &Video{
		// leave enough room at the head of the pixel array for the
		// previous digest value
		pixels: make([]byte, sha1.Size+width*height*pixelDepth),
	}
}

// Hash implements the Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Video) ResetDigest() {
	dig.digest = [sha1.Size]byte{}
	dig.frames = 0
}

// Frames returns the number of frames added since the last reset.
func (dig *Video) Frames() int {
	return dig.frames
}

// AddFrame updates the digest with the contents of the image. The alpha
// channel is ignored.
func (dig *Video) AddFrame(img *image.RGBA) error {
	b := img.Bounds()
	if sha1.Size+b.Dx()*b.Dy()*pixelDepth != len(dig.pixels) {
		return curated.Errorf(VideoDigest, fmt.Sprintf("unexpected frame size (%dx%d)", b.Dx(), b.Dy()))
	}

	// chain fingerprints by copying the value of the last fingerprint
	// to the head of the video data
	i := copy(dig.pixels, dig.digest[:])

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			dig.pixels[i] = c.R
			dig.pixels[i+1] = c.G
			dig.pixels[i+2] = c.B
			i += pixelDepth
		}
	}

	dig.digest = sha1.Sum(dig.pixels)
	dig.frames++

	return nil
}
