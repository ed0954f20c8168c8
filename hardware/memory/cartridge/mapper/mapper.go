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

// Package mapper contains the CartMapper interface, implemented by every
// cartridge mapper, and the ROM type that the mappers are initialised with.
// The mapper implementations are in the cartridge package.
package mapper

import (
	"fmt"
)

// ID is the iNES mapper number.
type ID int

// List of mapper IDs with an implementation.
const (
	NROM ID = 0
	MMC1 ID = 1

	// the ID of the ejected mapper. never found in an iNES file
	Ejected ID = -1
)

func (id ID) String() string {
	switch id {
	case NROM:
		return "NROM"
	case MMC1:
		return "MMC1"
	case Ejected:
		return "ejected"
	}
	return fmt.Sprintf("mapper %d", int(id))
}

// Sizes of the memory areas in a cartridge.
const (
	PRGBankSize = 0x4000
	CHRBankSize = 0x2000
	CHRRAMSize  = 0x2000
	PRGRAMSize  = 0x2000
	TrainerSize = 512
)

// ROM is the contents of a cartridge file.
type ROM struct {
	ID ID

	// number of 16k PRG banks and 8k CHR banks in the file
	PRGBanks int
	CHRBanks int

	PRG     []uint8
	CHR     []uint8
	Trainer []uint8

	// the current nametable mirroring. initialised from the file header but
	// mappers that control mirroring will change it
	Mirroring Mirroring

	// the cartridge uses RAM for CHR data. set by the mapper's Init()
	// function when there are no CHR banks in the file
	CHRRAM bool
}

// CartMapper implementations map CPU and PPU addresses to the memory in the
// cartridge.
//
// Addresses are not normalised. CPU addresses are in the range $4020 to $FFFF
// and PPU addresses are expected to be in the range $0000 to $1FFF.
type CartMapper interface {
	fmt.Stringer
	ID() ID

	// initialise the mapper with the ROM. the ROM must remain in use by the
	// mapper until Dispose() is called
	Init(rom *ROM) error
	Dispose()

	// reset volatile areas of the cartridge
	Reset()

	// a short description of the currently mapped banks
	MappedBanks() string

	// Peek returns the value at the CPU address without side effects
	Peek(addr uint16) uint8

	CPURead(addr uint16) (uint8, error)
	CPUWrite(addr uint16, data uint8) error
	PPURead(addr uint16) (uint8, error)
	PPUWrite(addr uint16, data uint8) error
}
