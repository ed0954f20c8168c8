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
	"fmt"

	"github.com/nesgopher/nesgopher/curated"
	"github.com/nesgopher/nesgopher/hardware/memory/cartridge/mapper"
)

// Sentinal error patterns for iNES files.
const (
	BadMagic          = "cartridge: not an iNES file"
	NoPRGBanks        = "cartridge: iNES file has no PRG banks"
	Truncated         = "cartridge: iNES file truncated (expected %d bytes, got %d)"
	UnsupportedMapper = "cartridge: unsupported mapper (%v)"
)

// HeaderSize is the number of bytes in an iNES header.
const HeaderSize = 16

var magic = [4]uint8{'N', 'E', 'S', 0x1a}

// Header is the decoded header of an iNES file.
type Header struct {
	PRGBanks   int
	CHRBanks   int
	Flags6     uint8
	Flags7     uint8
	PRGRAMSize uint8
	Flags9     uint8
	Flags10    uint8
}

func (h Header) String() string {
	return fmt.Sprintf("%v: PRG %dx16k, CHR %dx8k, %s mirroring", h.MapperID(), h.PRGBanks, h.CHRBanks, h.Mirroring())
}

// MapperID returns the mapper number from the two flag bytes.
func (h Header) MapperID() mapper.ID {
	return mapper.ID((h.Flags6 >> 4) | (h.Flags7 & 0xf0))
}

// Mirroring returns the nametable mirroring specified by the file.
func (h Header) Mirroring() mapper.Mirroring {
	if h.Flags6&0x01 == 0x01 {
		return mapper.Vertical
	}
	return mapper.Horizontal
}

// HasTrainer returns true if a 512 byte trainer follows the header.
func (h Header) HasTrainer() bool {
	return h.Flags6&0x04 == 0x04
}

// size of the iNES file described by the header.
func (h Header) fileSize() int {
	n := HeaderSize + h.PRGBanks*mapper.PRGBankSize + h.CHRBanks*mapper.CHRBankSize
	if h.HasTrainer() {
		n += mapper.TrainerSize
	}
	return n
}

// ParseHeader decodes the first 16 bytes of an iNES file.
func ParseHeader(data []uint8) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, curated.Errorf(Truncated, HeaderSize, len(data))
	}

	for i := range magic {
		if data[i] != magic[i] {
			return Header{}, curated.Errorf(BadMagic)
		}
	}

	h := Header{
		PRGBanks:   int(data[4]),
		CHRBanks:   int(data[5]),
		Flags6:     data[6],
		Flags7:     data[7],
		PRGRAMSize: data[8],
		Flags9:     data[9],
		Flags10:    data[10],
	}

	if h.PRGBanks == 0 {
		return Header{}, curated.Errorf(NoPRGBanks)
	}

	return h, nil
}

// NewROM creates a mapper.ROM from the contents of an iNES file. The data is
// copied.
func NewROM(data []uint8) (*mapper.ROM, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	if len(data) < h.fileSize() {
		return nil, curated.Errorf(Truncated, h.fileSize(), len(data))
	}

	rom := &mapper.ROM{
		ID:        h.MapperID(),
		PRGBanks:  h.PRGBanks,
		CHRBanks:  h.CHRBanks,
		Mirroring: h.Mirroring(),
	}

	idx := HeaderSize

	if h.HasTrainer() {
		rom.Trainer = make([]uint8, mapper.TrainerSize)
		idx += copy(rom.Trainer, data[idx:])
	}

	rom.PRG = make([]uint8, h.PRGBanks*mapper.PRGBankSize)
	idx += copy(rom.PRG, data[idx:])

	rom.CHR = make([]uint8, h.CHRBanks*mapper.CHRBankSize)
	copy(rom.CHR, data[idx:])

	return rom, nil
}
