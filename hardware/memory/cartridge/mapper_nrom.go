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

package cartridge

import (
	"github.com/nesgopher/nesgopher/curated"
	"github.com/nesgopher/nesgopher/environment"
	"github.com/nesgopher/nesgopher/hardware/memory/cartridge/mapper"
)

// nrom is the simplest mapper. There is no bank switching.
//
// One or two 16k PRG banks appear at $8000. A single bank is mirrored at
// $C000. CHR is a single 8k bank, which may be RAM.
type nrom struct {
	env *environment.Environment
	rom *mapper.ROM

	prgMask uint16
	chr     []uint8
}

func newNROM(env *environment.Environment) mapper.CartMapper {
	return &nrom{env: env}
}

func (cart *nrom) String() string {
	return cart.ID().String()
}

// ID implements the mapper.CartMapper interface.
func (cart *nrom) ID() mapper.ID {
	return mapper.NROM
}

// Init implements the mapper.CartMapper interface.
func (cart *nrom) Init(rom *mapper.ROM) error {
	cart.rom = rom

	if rom.PRGBanks == 1 {
		cart.prgMask = 0x3fff
	} else {
		cart.prgMask = 0x7fff
	}

	if rom.CHRBanks == 0 {
		rom.CHRRAM = true
		cart.chr = make([]uint8, mapper.CHRRAMSize)
	} else {
		cart.chr = rom.CHR
	}

	return nil
}

// Dispose implements the mapper.CartMapper interface.
func (cart *nrom) Dispose() {
	cart.rom = nil
	cart.chr = nil
}

// Reset implements the mapper.CartMapper interface.
func (cart *nrom) Reset() {
}

// MappedBanks implements the mapper.CartMapper interface.
func (cart *nrom) MappedBanks() string {
	if cart.rom.PRGBanks == 1 {
		return "PRG: 0 0"
	}
	return "PRG: 0 1"
}

// Peek implements the mapper.CartMapper interface.
func (cart *nrom) Peek(addr uint16) uint8 {
	d, _ := cart.CPURead(addr)
	return d
}

// CPURead implements the mapper.CartMapper interface.
func (cart *nrom) CPURead(addr uint16) (uint8, error) {
	if addr < 0x8000 {
		return 0, nil
	}
	return cart.rom.PRG[addr&cart.prgMask], nil
}

// CPUWrite implements the mapper.CartMapper interface. PRG is ROM so writes to
// cartridge space are ignored.
func (cart *nrom) CPUWrite(addr uint16, _ uint8) error {
	if addr < 0x8000 {
		return curated.Errorf(AddressOutOfRange, cart, addr)
	}
	return nil
}

// PPURead implements the mapper.CartMapper interface.
func (cart *nrom) PPURead(addr uint16) (uint8, error) {
	if addr > 0x1fff {
		return 0, curated.Errorf(PPUAddressOutOfRange, cart, addr)
	}
	return cart.chr[addr], nil
}

// PPUWrite implements the mapper.CartMapper interface.
func (cart *nrom) PPUWrite(addr uint16, data uint8) error {
	if addr > 0x1fff {
		return curated.Errorf(PPUAddressOutOfRange, cart, addr)
	}
	if cart.rom.CHRRAM {
		cart.chr[addr] = data
	}
	return nil
}
