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

// renderPixel composes the background and sprite pixels for the current
// cycle and writes the color to the frame.
func (ppu *PPU) renderPixel() error {
	x := ppu.Cycle - 1
	y := ppu.Scanline

	var bgPixel, bgPalette uint8
	if ppu.Mask&MaskShowBackground == MaskShowBackground {
		if x >= 8 || ppu.Mask&MaskBackgroundLeft == MaskBackgroundLeft {
			bgPixel, bgPalette = ppu.bg.pixel(ppu.fineX)
		}
	}

	var fgPixel, fgPalette uint8
	var fgFront bool
	winner := -1
	if ppu.Mask&MaskShowSprites == MaskShowSprites {
		fgPixel, fgPalette, fgFront, winner = ppu.spritePixel(x)
		if x < 8 && ppu.Mask&MaskSpritesLeft == 0 {
			fgPixel = 0
		}
	}

	var pixel, palette uint8

	switch {
	case bgPixel == 0 && fgPixel == 0:
		// backdrop
	case bgPixel == 0:
		pixel, palette = fgPixel, fgPalette
	case fgPixel == 0:
		pixel, palette = bgPixel, bgPalette
	default:
		if fgFront {
			pixel, palette = fgPixel, fgPalette
		} else {
			pixel, palette = bgPixel, bgPalette
		}

		if winner == 0 && ppu.sprites.zeroInLine && ppu.spriteZeroHit(x) {
			ppu.Status |= StatusSpriteZeroHit
		}
	}

	address := originPalette
	if pixel != 0 {
		address += uint16(palette)*4 + uint16(pixel)
	}

	c, err := ppu.read(address)
	if err != nil {
		return err
	}
	if ppu.Mask&MaskGreyscale == MaskGreyscale {
		c &= 0x30
	}

	ppu.frame.SetRGBA(x, y, Colors[c&0x3f])

	return nil
}

// spriteZeroHit checks the conditions for a sprite zero hit at x. Both
// layers must be enabled. There is no hit at x 255 or in the left column
// unless both layers are shown there.
func (ppu *PPU) spriteZeroHit(x int) bool {
	both := uint8(MaskShowBackground | MaskShowSprites)
	if ppu.Mask&both != both {
		return false
	}

	if x == 255 {
		return false
	}

	left := uint8(MaskBackgroundLeft | MaskSpritesLeft)
	if x < 8 && ppu.Mask&left != left {
		return false
	}

	return true
}
