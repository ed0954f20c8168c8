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
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/nesgopher/nesgopher/curated"
	"golang.org/x/image/draw"
)

// Sentinal error patterns.
const (
	PNGError = "digest: png: %v"
)

// Scale returns a copy of the image enlarged by the scaling factor. Pixels
// are not interpolated. A scale of less than one is treated as one.
func Scale(img image.Image, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	return dst
}

// SavePNG writes the image to the named file, enlarged by the scaling
// factor. An existing file will not be overwritten.
func SavePNG(filename string, img image.Image, scale int) error {
	f, err := os.Open(filename)
	if f != nil {
		f.Close()
		return curated.Errorf(PNGError, fmt.Sprintf("file (%s) already exists", filename))
	}
	if err != nil && !os.IsNotExist(err) {
		return curated.Errorf(PNGError, err)
	}

	f, err = os.Create(filename)
	if err != nil {
		return curated.Errorf(PNGError, err)
	}
	defer f.Close()

	err = png.Encode(f, Scale(img, scale))
	if err != nil {
		return curated.Errorf(PNGError, err)
	}

	return nil
}
