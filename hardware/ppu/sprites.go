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

import "math/bits"

// spriteLine holds the sprites selected for a scanline and their pattern
// shift registers.
type spriteLine struct {
	secondary [maxSpritesPerLine]Sprite
	count     int

	// sprite zero is in the secondary list. it is always the first entry
	zeroInLine bool

	patternLo [maxSpritesPerLine]uint8
	patternHi [maxSpritesPerLine]uint8
}

func (ppu *PPU) spriteHeight() int {
	if ppu.Ctrl&CtrlSprite8x16 == CtrlSprite8x16 {
		return 16
	}
	return 8
}

// evaluateSprites selects up to eight sprites that intersect the current
// scanline. The sprites are drawn on the next scanline. The overflow flag is
// set if a ninth sprite is found.
func (ppu *PPU) evaluateSprites() {
	ppu.sprites.count = 0
	ppu.sprites.zeroInLine = false

	height := ppu.spriteHeight()

	for i := 0; i < NumSprites; i++ {
		s := ppu.OAM.Sprite(i)

		diff := ppu.Scanline - int(s.Y)
		if diff < 0 || diff >= height {
			continue
		}

		if ppu.sprites.count == maxSpritesPerLine {
			ppu.Status |= StatusSpriteOverflow
			break
		}

		if i == 0 {
			ppu.sprites.zeroInLine = true
		}
		ppu.sprites.secondary[ppu.sprites.count] = s
		ppu.sprites.count++
	}
}

// loadSprites fetches the pattern data of the selected sprites into the
// sprite shift registers.
func (ppu *PPU) loadSprites() error {
	for i := 0; i < ppu.sprites.count; i++ {
		s := ppu.sprites.secondary[i]
		row := ppu.Scanline - int(s.Y)

		var address uint16

		if ppu.spriteHeight() == 16 {
			// 8x16 sprites take the pattern table from bit 0 of the tile
			// number and ignore the pattern table bit of PPUCTRL
			if s.FlipV() {
				row = 15 - row
			}
			tile := uint16(s.Tile & 0xfe)
			if row >= 8 {
				tile++
				row -= 8
			}
			address = uint16(s.Tile&0x01)*0x1000 + tile*16 + uint16(row)
		} else {
			if s.FlipV() {
				row = 7 - row
			}
			if ppu.Ctrl&CtrlSpritePatterns == CtrlSpritePatterns {
				address = 0x1000
			}
			address += uint16(s.Tile)*16 + uint16(row)
		}

		lo, err := ppu.read(address)
		if err != nil {
			return err
		}
		hi, err := ppu.read(address + 8)
		if err != nil {
			return err
		}

		if s.FlipH() {
			lo = bits.Reverse8(lo)
			hi = bits.Reverse8(hi)
		}

		ppu.sprites.patternLo[i] = lo
		ppu.sprites.patternHi[i] = hi
	}

	return nil
}

// spritePixel returns the pixel of the first opaque sprite at screen
// position x. The shift registers of every sprite that covers x are
// advanced.
//
// Returns the pixel, the sprite palette (4 to 7), whether the sprite has
// priority over the background and the index of the sprite in the secondary
// list. The index is -1 if there is no opaque sprite pixel.
func (ppu *PPU) spritePixel(x int) (uint8, uint8, bool, int) {
	var pixel, palette uint8
	var front bool
	winner := -1

	for i := 0; i < ppu.sprites.count; i++ {
		s := ppu.sprites.secondary[i]
		diff := x - int(s.X)
		if diff < 0 || diff >= 8 {
			continue
		}

		var p uint8
		if ppu.sprites.patternLo[i]&0x80 == 0x80 {
			p |= 0x01
		}
		if ppu.sprites.patternHi[i]&0x80 == 0x80 {
			p |= 0x02
		}
		ppu.sprites.patternLo[i] <<= 1
		ppu.sprites.patternHi[i] <<= 1

		if p != 0 && winner == -1 {
			winner = i
			pixel = p
			palette = s.Palette() + 4
			front = !s.BehindBackground()
		}
	}

	return pixel, palette, front, winner
}
