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
	"github.com/nesgopher/nesgopher/hardware/memory/cartridge/mapper"
)

// CartBus is the view of the cartridge from the PPU. The pattern tables are
// stored on the cartridge and the cartridge decides how the nametables are
// mirrored.
type CartBus interface {
	PPURead(address uint16) (uint8, error)
	PPUWrite(address uint16, data uint8) error
	Mirroring() mapper.Mirroring
}

// Areas of the PPU address space.
const (
	memtopPatterns   = uint16(0x1fff)
	originNametables = uint16(0x2000)
	memtopNametables = uint16(0x3eff)
	originAttributes = uint16(0x23c0)
	originPalette    = uint16(0x3f00)
	memtopPPU        = uint16(0x3fff)
)

// NametableSize is the size of one physical nametable.
const NametableSize = 0x400

// nametableIndex returns the index into the two physical nametables of a
// nametable address.
func nametableIndex(address uint16, mirroring mapper.Mirroring) uint16 {
	address &= 0x0fff
	table := address / NametableSize
	offset := address % NametableSize

	switch mirroring {
	case mapper.Vertical:
		// [0][1]
		// [0][1]
		table &= 0x01
	case mapper.Horizontal:
		// [0][0]
		// [1][1]
		table >>= 1
	case mapper.OneScreenLo:
		table = 0
	case mapper.OneScreenHi:
		table = 1
	}

	return table*NametableSize + offset
}

// read from the PPU address space.
func (ppu *PPU) read(address uint16) (uint8, error) {
	address &= memtopPPU

	switch {
	case address <= memtopPatterns:
		return ppu.cart.PPURead(address)
	case address <= memtopNametables:
		return ppu.Nametables[nametableIndex(address, ppu.cart.Mirroring())], nil
	}

	return ppu.Palette[paletteIndex(address)] & 0x3f, nil
}

// write to the PPU address space.
func (ppu *PPU) write(address uint16, data uint8) error {
	address &= memtopPPU

	switch {
	case address <= memtopPatterns:
		return ppu.cart.PPUWrite(address, data)
	case address <= memtopNametables:
		ppu.Nametables[nametableIndex(address, ppu.cart.Mirroring())] = data
		return nil
	}

	ppu.Palette[paletteIndex(address)] = data

	return nil
}

// peek is a version of read() that ignores errors. used by the
// visualisation functions.
func (ppu *PPU) peek(address uint16) uint8 {
	v, _ := ppu.read(address)
	return v
}
