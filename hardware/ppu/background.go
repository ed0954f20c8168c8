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

// background holds the latches and shift registers of the background
// pipeline. The bytes fetched for a tile are latched and then loaded into the
// low byte of the shift registers every eight cycles.
type background struct {
	nametable uint8
	attribute uint8
	patternLo uint8
	patternHi uint8

	shiftPatternLo uint16
	shiftPatternHi uint16
	shiftAttrLo    uint16
	shiftAttrHi    uint16
}

// load the latched tile into the shift registers.
func (bg *background) load() {
	bg.shiftPatternLo = (bg.shiftPatternLo & 0xff00) | uint16(bg.patternLo)
	bg.shiftPatternHi = (bg.shiftPatternHi & 0xff00) | uint16(bg.patternHi)

	// the attribute bits are the same for all eight pixels of the tile
	bg.shiftAttrLo &= 0xff00
	if bg.attribute&0x01 == 0x01 {
		bg.shiftAttrLo |= 0x00ff
	}
	bg.shiftAttrHi &= 0xff00
	if bg.attribute&0x02 == 0x02 {
		bg.shiftAttrHi |= 0x00ff
	}
}

func (bg *background) shift() {
	bg.shiftPatternLo <<= 1
	bg.shiftPatternHi <<= 1
	bg.shiftAttrLo <<= 1
	bg.shiftAttrHi <<= 1
}

// pixel returns the 2 bit pixel and the palette selected by fine X.
func (bg *background) pixel(fineX uint8) (uint8, uint8) {
	mux := uint16(0x8000) >> fineX

	var pixel, palette uint8
	if bg.shiftPatternLo&mux != 0 {
		pixel |= 0x01
	}
	if bg.shiftPatternHi&mux != 0 {
		pixel |= 0x02
	}
	if bg.shiftAttrLo&mux != 0 {
		palette |= 0x01
	}
	if bg.shiftAttrHi&mux != 0 {
		palette |= 0x02
	}

	return pixel, palette
}

// fetchBackground performs the background work for the current cycle. The
// shift registers are shifted and the fetches are made in an eight cycle
// sequence.
func (ppu *PPU) fetchBackground() error {
	ppu.bg.shift()

	var err error

	switch (ppu.Cycle - 1) % 8 {
	case 0:
		ppu.bg.load()
		ppu.bg.nametable, err = ppu.read(originNametables | (ppu.v.Address() & 0x0fff))

	case 2:
		address := originAttributes |
			uint16(ppu.v.Nametable())<<10 |
			uint16(ppu.v.CoarseY()>>2)<<3 |
			uint16(ppu.v.CoarseX()>>2)

		var attr uint8
		attr, err = ppu.read(address)

		// each attribute byte covers a 4x4 tile area. select the 2x2 quadrant
		if ppu.v.CoarseY()&0x02 == 0x02 {
			attr >>= 4
		}
		if ppu.v.CoarseX()&0x02 == 0x02 {
			attr >>= 2
		}
		ppu.bg.attribute = attr & 0x03

	case 4:
		ppu.bg.patternLo, err = ppu.read(ppu.backgroundPatternAddress())

	case 6:
		ppu.bg.patternHi, err = ppu.read(ppu.backgroundPatternAddress() + 8)

	case 7:
		if ppu.renderingEnabled() {
			ppu.v.IncrementCoarseX()
		}
	}

	return err
}

// the address of the low pattern byte of the current row of the latched
// tile.
func (ppu *PPU) backgroundPatternAddress() uint16 {
	var address uint16
	if ppu.Ctrl&CtrlBackgroundPatterns == CtrlBackgroundPatterns {
		address = 0x1000
	}
	return address + uint16(ppu.bg.nametable)*16 + uint16(ppu.v.FineY())
}
