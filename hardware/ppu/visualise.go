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

import (
	"image"
)

// Dimensions of the visualisation images.
const (
	PatternTableSize = 128
	SpriteSheetSize  = 64
)

// the number of tiles in each row of a pattern table
const tilesPerRow = 16

// drawTile draws the 8x8 tile at the pattern address to the image at x, y,
// using the palette (0 to 7).
func (ppu *PPU) drawTile(img *image.RGBA, address uint16, x int, y int, palette uint8) {
	for row := 0; row < 8; row++ {
		lo := ppu.peek(address + uint16(row))
		hi := ppu.peek(address + uint16(row) + 8)

		for col := 0; col < 8; col++ {
			shift := uint(7 - col)
			pixel := ((hi>>shift)&0x01)<<1 | (lo>>shift)&0x01

			c := ppu.peek(originPalette + uint16(palette)*4 + uint16(pixel))
			img.SetRGBA(x+col, y+row, Colors[c&0x3f])
		}
	}
}

// PatternTable returns an image of one of the two pattern tables (0 or 1)
// drawn with one of the eight palettes (0 to 7). The image is 128x128 pixels.
func (ppu *PPU) PatternTable(table int, palette uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, PatternTableSize, PatternTableSize))

	base := uint16(table&0x01) * 0x1000
	for ty := 0; ty < tilesPerRow; ty++ {
		for tx := 0; tx < tilesPerRow; tx++ {
			address := base + uint16(ty*tilesPerRow+tx)*16
			ppu.drawTile(img, address, tx*8, ty*8, palette&0x07)
		}
	}

	return img
}

// SpriteSheet returns an image of the 64 sprites in primary OAM, arranged in
// an 8x8 grid. Each sprite is drawn as an 8x8 tile with its own palette. The
// image is 64x64 pixels.
func (ppu *PPU) SpriteSheet() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, SpriteSheetSize, SpriteSheetSize))

	var base uint16
	if ppu.Ctrl&CtrlSpritePatterns == CtrlSpritePatterns {
		base = 0x1000
	}

	for i := 0; i < NumSprites; i++ {
		s := ppu.OAM.Sprite(i)
		address := base + uint16(s.Tile)*16
		ppu.drawTile(img, address, (i%8)*8, (i/8)*8, s.Palette()+4)
	}

	return img
}
