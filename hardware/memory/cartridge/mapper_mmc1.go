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
	"github.com/nesgopher/nesgopher/environment"
	"github.com/nesgopher/nesgopher/hardware/memory/cartridge/mapper"
	"github.com/nesgopher/nesgopher/logger"
)

// mmc1 registers are written one bit at a time through a five bit shift
// register. A write to $8000-$FFFF with bit 7 clear shifts bit 0 of the data
// into the shift register. The fifth write copies the result into one of four
// internal registers, selected by bits 13 and 14 of the address:
//
//	$8000-$9FFF	control
//	$A000-$BFFF	CHR bank 0
//	$C000-$DFFF	CHR bank 1
//	$E000-$FFFF	PRG bank
//
// A write with bit 7 set resets the shift register and selects PRG mode 3.
//
// Control register:
//
//	bits 0-1	mirroring (0 one screen lo, 1 one screen hi, 2 vertical, 3 horizontal)
//	bits 2-3	PRG mode
//	bit 4		CHR mode
//
// PRG modes 0 and 1 switch 32k at $8000, ignoring the low bit of the bank
// number. Mode 2 fixes the first bank at $8000 and switches the 16k bank at
// $C000. Mode 3 fixes the last bank at $C000 and switches the 16k bank at
// $8000.
//
// CHR mode 0 switches 8k at a time, ignoring the low bit of CHR bank 0. CHR
// mode 1 switches two separate 4k banks.
//
// Bit 4 of the PRG bank register disables the 8k of PRG RAM at $6000.
type mmc1 struct {
	env *environment.Environment
	rom *mapper.ROM

	chr    []uint8
	prgRAM []uint8

	shift   uint8
	control uint8
	chr0    uint8
	chr1    uint8
	prg     uint8
}

const (
	mmc1ShiftReset   = 0x10
	mmc1ControlReset = 0x0c

	chrBankSize4k = 0x1000
)

func newMMC1(env *environment.Environment) mapper.CartMapper {
	return &mmc1{env: env}
}

func (cart *mmc1) String() string {
	return cart.ID().String()
}

// ID implements the mapper.CartMapper interface.
func (cart *mmc1) ID() mapper.ID {
	return mapper.MMC1
}

// Init implements the mapper.CartMapper interface.
func (cart *mmc1) Init(rom *mapper.ROM) error {
	cart.rom = rom

	if rom.CHRBanks == 0 {
		rom.CHRRAM = true
		cart.chr = make([]uint8, mapper.CHRRAMSize)
	} else {
		cart.chr = rom.CHR
	}

	cart.prgRAM = make([]uint8, mapper.PRGRAMSize)
	cart.shift = mmc1ShiftReset
	cart.control = mmc1ControlReset
	cart.chr0 = 0
	cart.chr1 = 0
	cart.prg = 0

	return nil
}

// Dispose implements the mapper.CartMapper interface.
func (cart *mmc1) Dispose() {
	cart.rom = nil
	cart.chr = nil
	cart.prgRAM = nil
}

// Reset implements the mapper.CartMapper interface.
func (cart *mmc1) Reset() {
	cart.shift = mmc1ShiftReset
	cart.control |= mmc1ControlReset
}

// MappedBanks implements the mapper.CartMapper interface.
func (cart *mmc1) MappedBanks() string {
	lo, hi := cart.prgBanks()
	clo, chi := cart.chrBanks()
	ram := "on"
	if !cart.ramEnabled() {
		ram = "off"
	}
	return fmt.Sprintf("PRG: %d %d CHR: %d %d RAM: %s", lo, hi, clo, chi, ram)
}

// the 16k banks mapped to $8000 and $C000. the result may name banks that are
// not in the cartridge.
func (cart *mmc1) prgBanks() (int, int) {
	bank := int(cart.prg & 0x0f)

	switch (cart.control >> 2) & 0x03 {
	case 0, 1:
		lo := bank & 0x0e
		return lo, lo + 1
	case 2:
		return 0, bank
	}

	return bank, cart.rom.PRGBanks - 1
}

// the 4k banks mapped to $0000 and $1000.
func (cart *mmc1) chrBanks() (int, int) {
	if cart.control&0x10 == 0x00 {
		lo := int(cart.chr0 & 0x1e)
		return lo, lo + 1
	}

	return int(cart.chr0), int(cart.chr1)
}

func (cart *mmc1) numCHRBanks() int {
	return len(cart.chr) / chrBankSize4k
}

func (cart *mmc1) ramEnabled() bool {
	return cart.prg&0x10 == 0x00
}

// Peek implements the mapper.CartMapper interface.
func (cart *mmc1) Peek(addr uint16) uint8 {
	d, _ := cart.CPURead(addr)
	return d
}

// CPURead implements the mapper.CartMapper interface.
func (cart *mmc1) CPURead(addr uint16) (uint8, error) {
	if addr < 0x6000 {
		return 0, nil
	}

	if addr < 0x8000 {
		if cart.ramEnabled() {
			return cart.prgRAM[addr-0x6000], nil
		}
		return 0, nil
	}

	lo, hi := cart.prgBanks()
	bank := lo
	if addr >= 0xc000 {
		bank = hi
	}

	if bank >= cart.rom.PRGBanks {
		return 0, curated.Errorf(BankOutOfRange, cart, "PRG", bank, cart.rom.PRGBanks)
	}

	return cart.rom.PRG[bank*mapper.PRGBankSize+int(addr&0x3fff)], nil
}

// CPUWrite implements the mapper.CartMapper interface.
func (cart *mmc1) CPUWrite(addr uint16, data uint8) error {
	if addr < 0x6000 {
		return curated.Errorf(AddressOutOfRange, cart, addr)
	}

	if addr < 0x8000 {
		if cart.ramEnabled() {
			cart.prgRAM[addr-0x6000] = data
		}
		return nil
	}

	if data&0x80 == 0x80 {
		cart.shift = mmc1ShiftReset
		cart.control |= mmc1ControlReset
		return nil
	}

	// the initial bit reaches bit 0 after four writes
	complete := cart.shift&0x01 == 0x01
	cart.shift = (cart.shift >> 1) | ((data & 0x01) << 4)
	if !complete {
		return nil
	}

	v := cart.shift
	cart.shift = mmc1ShiftReset

	switch (addr >> 13) & 0x03 {
	case 0:
		cart.control = v
		cart.setMirroring()
	case 1:
		cart.chr0 = v
	case 2:
		cart.chr1 = v
	case 3:
		cart.prg = v
	}

	return nil
}

func (cart *mmc1) setMirroring() {
	var m mapper.Mirroring
	switch cart.control & 0x03 {
	case 0:
		m = mapper.OneScreenLo
	case 1:
		m = mapper.OneScreenHi
	case 2:
		m = mapper.Vertical
	case 3:
		m = mapper.Horizontal
	}

	if cart.rom.Mirroring != m {
		cart.rom.Mirroring = m
		logger.Logf(cart.env, "MMC1", "mirroring: %s", m)
	}
}

func (cart *mmc1) chrAddress(addr uint16) (int, error) {
	if addr > 0x1fff {
		return 0, curated.Errorf(PPUAddressOutOfRange, cart, addr)
	}

	lo, hi := cart.chrBanks()
	bank := lo
	if addr >= chrBankSize4k {
		bank = hi
	}

	if n := cart.numCHRBanks(); bank >= n {
		return 0, curated.Errorf(BankOutOfRange, cart, "CHR", bank, n)
	}

	return bank*chrBankSize4k + int(addr&0x0fff), nil
}

// PPURead implements the mapper.CartMapper interface.
func (cart *mmc1) PPURead(addr uint16) (uint8, error) {
	a, err := cart.chrAddress(addr)
	if err != nil {
		return 0, err
	}
	return cart.chr[a], nil
}

// PPUWrite implements the mapper.CartMapper interface.
func (cart *mmc1) PPUWrite(addr uint16, data uint8) error {
	a, err := cart.chrAddress(addr)
	if err != nil {
		return err
	}
	if cart.rom.CHRRAM {
		cart.chr[a] = data
	}
	return nil
}
