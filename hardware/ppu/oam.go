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

package ppu

import "fmt"

// OAMSize is the size of primary OAM in bytes.
const OAMSize = 256

// NumSprites is the number of sprites that can be stored in primary OAM.
const NumSprites = OAMSize / SpriteSize

// SpriteSize is the number of bytes used to store one sprite in OAM.
const SpriteSize = 4

// maximum number of sprites on a single scanline
const maxSpritesPerLine = 8

// Sprite attribute bits.
const (
	AttrPalette          = 0x03
	AttrBehindBackground = 0x20
	AttrFlipH            = 0x40
	AttrFlipV            = 0x80
)

// Sprite is one entry in OAM. In memory, the fields are stored in the order
// Y, Tile, Attributes, X.
type Sprite struct {
	// the Y coordinate is the top of the sprite minus one
	Y          uint8
	Tile       uint8
	Attributes uint8
	X          uint8
}

func (s Sprite) String() string {
	return fmt.Sprintf("y=%d tile=%#02x attr=%#02x x=%d", s.Y, s.Tile, s.Attributes, s.X)
}

// DecodeSprite creates a Sprite from the first four bytes of b.
func DecodeSprite(b []byte) Sprite {
	return Sprite{
		Y:          b[0],
		Tile:       b[1],
		Attributes: b[2],
		X:          b[3],
	}
}

// Encode the sprite into the first four bytes of b.
func (s Sprite) Encode(b []byte) {
	b[0] = s.Y
	b[1] = s.Tile
	b[2] = s.Attributes
	b[3] = s.X
}

// Palette returns the sprite palette (0 to 3) used by the sprite.
func (s Sprite) Palette() uint8 {
	return s.Attributes & AttrPalette
}

// BehindBackground returns true if the sprite has low priority.
func (s Sprite) BehindBackground() bool {
	return s.Attributes&AttrBehindBackground == AttrBehindBackground
}

// FlipH returns true if the sprite is flipped horizontally.
func (s Sprite) FlipH() bool {
	return s.Attributes&AttrFlipH == AttrFlipH
}

// FlipV returns true if the sprite is flipped vertically.
func (s Sprite) FlipV() bool {
	return s.Attributes&AttrFlipV == AttrFlipV
}

// OAM is the object attribute memory of the PPU.
type OAM struct {
	Primary [OAMSize]uint8

	// the address register written to by the CPU through OAMADDR
	Addr uint8
}

// Sprite returns sprite i (0 to 63) from primary OAM.
func (oam *OAM) Sprite(i int) Sprite {
	return DecodeSprite(oam.Primary[i*SpriteSize:])
}

// SetSprite stores sprite s as sprite i (0 to 63) in primary OAM.
func (oam *OAM) SetSprite(i int, s Sprite) {
	s.Encode(oam.Primary[i*SpriteSize:])
}

// Reset clears OAM.
func (oam *OAM) Reset() {
	*oam = OAM{}
}
