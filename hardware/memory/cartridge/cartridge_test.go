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

package cartridge_test

import (
	"testing"

	"github.com/nesgopher/nesgopher/cartridgeloader"
	"github.com/nesgopher/nesgopher/curated"
	"github.com/nesgopher/nesgopher/environment"
	"github.com/nesgopher/nesgopher/hardware/memory/cartridge"
	"github.com/nesgopher/nesgopher/hardware/memory/cartridge/mapper"
	"github.com/nesgopher/nesgopher/test"
)

// makeINES returns the contents of an iNES file. The first byte of every PRG
// bank is the bank number and the first byte of every 4k of CHR is the index
// of that 4k block.
func makeINES(prgBanks int, chrBanks int, flags6 uint8, flags7 uint8) []uint8 {
	data := []uint8{'N', 'E', 'S', 0x1a, uint8(prgBanks), uint8(chrBanks), flags6, flags7}
	data = append(data, make([]uint8, cartridge.HeaderSize-len(data))...)

	if flags6&0x04 == 0x04 {
		data = append(data, make([]uint8, mapper.TrainerSize)...)
	}

	for b := 0; b < prgBanks; b++ {
		bank := make([]uint8, mapper.PRGBankSize)
		bank[0] = uint8(b)
		bank[mapper.PRGBankSize-1] = 0xf0 | uint8(b)
		data = append(data, bank...)
	}

	for b := 0; b < chrBanks*2; b++ {
		block := make([]uint8, 0x1000)
		block[0] = uint8(b)
		data = append(data, block...)
	}

	return data
}

func newEnv(t *testing.T) *environment.Environment {
	t.Helper()
	env, err := environment.NewEnvironment("test", nil, nil)
	test.DemandSuccess(t, err)
	return env
}

func attach(t *testing.T, data []uint8) *cartridge.Cartridge {
	t.Helper()
	cart := cartridge.NewCartridge(newEnv(t))
	test.DemandSuccess(t, cart.Attach(cartridgeloader.NewLoaderFromData("test.nes", data)))
	return cart
}

func TestHeader(t *testing.T) {
	h, err := cartridge.ParseHeader(makeINES(2, 1, 0x11, 0x00))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, h.PRGBanks, 2)
	test.ExpectEquality(t, h.CHRBanks, 1)
	test.ExpectEquality(t, h.MapperID(), mapper.MMC1)
	test.ExpectEquality(t, h.Mirroring(), mapper.Vertical)
	test.ExpectFailure(t, h.HasTrainer())

	// mapper number is split across two flag bytes
	h, err = cartridge.ParseHeader(makeINES(1, 1, 0x40, 0x10))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, h.MapperID(), mapper.ID(0x14))
	test.ExpectEquality(t, h.Mirroring(), mapper.Horizontal)
}

func TestHeaderErrors(t *testing.T) {
	data := makeINES(1, 1, 0, 0)
	data[3] = 0x00
	_, err := cartridge.ParseHeader(data)
	test.ExpectSuccess(t, curated.Is(err, cartridge.BadMagic))

	_, err = cartridge.ParseHeader(makeINES(0, 1, 0, 0))
	test.ExpectSuccess(t, curated.Is(err, cartridge.NoPRGBanks))

	_, err = cartridge.ParseHeader([]uint8{'N', 'E', 'S'})
	test.ExpectSuccess(t, curated.Is(err, cartridge.Truncated))

	data = makeINES(2, 1, 0, 0)
	_, err = cartridge.NewROM(data[:len(data)-1])
	test.ExpectSuccess(t, curated.Is(err, cartridge.Truncated))

	// mapper 4 is not supported
	cart := cartridge.NewCartridge(newEnv(t))
	err = cart.Attach(cartridgeloader.NewLoaderFromData("test.nes", makeINES(2, 1, 0x40, 0)))
	test.ExpectSuccess(t, curated.Is(err, cartridge.UnsupportedMapper))
	test.ExpectSuccess(t, cart.IsEjected())
}

func TestTrainer(t *testing.T) {
	rom, err := cartridge.NewROM(makeINES(1, 1, 0x04, 0))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(rom.Trainer), mapper.TrainerSize)
	test.ExpectEquality(t, rom.PRG[mapper.PRGBankSize-1], uint8(0xf0))
	test.ExpectEquality(t, rom.CHR[0x1000], uint8(1))
}

func TestEjected(t *testing.T) {
	cart := cartridge.NewCartridge(newEnv(t))
	test.ExpectSuccess(t, cart.IsEjected())
	test.ExpectEquality(t, cart.ID(), mapper.Ejected)

	d, err := cart.Read(0x8000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d, uint8(0))
	test.ExpectSuccess(t, cart.Write(0x8000, 0xff))

	cart = attach(t, makeINES(1, 1, 0, 0))
	test.ExpectFailure(t, cart.IsEjected())
	cart.Eject()
	test.ExpectSuccess(t, cart.IsEjected())
}

func TestNROM(t *testing.T) {
	cart := attach(t, makeINES(1, 1, 0x01, 0))
	test.ExpectEquality(t, cart.ID(), mapper.NROM)
	test.ExpectEquality(t, cart.Mirroring(), mapper.Vertical)

	// a single bank is mirrored
	test.ExpectEquality(t, cart.Peek(0xbfff), uint8(0xf0))
	test.ExpectEquality(t, cart.Peek(0xffff), uint8(0xf0))

	// below PRG
	d, err := cart.Read(0x6000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d, uint8(0))

	// writes to ROM are ignored
	test.ExpectSuccess(t, cart.Write(0x8000, 0x55))
	test.ExpectEquality(t, cart.Peek(0x8000), uint8(0))

	err = cart.Write(0x6000, 0x55)
	test.ExpectSuccess(t, curated.Is(err, cartridge.AddressOutOfRange))

	cart = attach(t, makeINES(2, 1, 0x00, 0))
	test.ExpectEquality(t, cart.Mirroring(), mapper.Horizontal)
	test.ExpectEquality(t, cart.Peek(0x8000), uint8(0))
	test.ExpectEquality(t, cart.Peek(0xc000), uint8(1))
	test.ExpectEquality(t, cart.Peek(0xfffe), uint8(0))
	test.ExpectEquality(t, cart.Peek(0xffff), uint8(0xf1))
}

func TestNROMPatterns(t *testing.T) {
	cart := attach(t, makeINES(1, 1, 0, 0))

	d, err := cart.PPURead(0x1000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d, uint8(1))

	_, err = cart.PPURead(0x2000)
	test.ExpectSuccess(t, curated.Is(err, cartridge.PPUAddressOutOfRange))

	// CHR ROM is not writable
	test.ExpectSuccess(t, cart.PPUWrite(0x1000, 0x55))
	d, _ = cart.PPURead(0x1000)
	test.ExpectEquality(t, d, uint8(1))

	// no CHR banks means CHR RAM
	cart = attach(t, makeINES(1, 0, 0, 0))
	test.ExpectSuccess(t, cart.PPUWrite(0x1abc, 0x55))
	d, _ = cart.PPURead(0x1abc)
	test.ExpectEquality(t, d, uint8(0x55))
}

// writeMMC1 writes the five bit value to the MMC1 register at addr, one bit at
// a time.
func writeMMC1(t *testing.T, cart *cartridge.Cartridge, addr uint16, v uint8) {
	t.Helper()
	for i := 0; i < 5; i++ {
		test.DemandSuccess(t, cart.Write(addr, (v>>i)&0x01))
	}
}

func TestMMC1ShiftRegister(t *testing.T) {
	cart := attach(t, makeINES(2, 4, 0x10, 0))
	test.ExpectEquality(t, cart.ID(), mapper.MMC1)

	// CHR mode 1 (4k banks)
	test.DemandSuccess(t, cart.Write(0x8000, 0x80))
	writeMMC1(t, cart, 0x8000, 0x1c)

	// reset part way through a sequence
	test.DemandSuccess(t, cart.Write(0xa000, 0x01))
	test.DemandSuccess(t, cart.Write(0xa000, 0x01))
	test.DemandSuccess(t, cart.Write(0xa000, 0x80))

	writeMMC1(t, cart, 0xa000, 0x03)
	writeMMC1(t, cart, 0xc000, 0x05)

	d, err := cart.PPURead(0x0000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d, uint8(3))
	d, err = cart.PPURead(0x1000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d, uint8(5))

	// CHR mode 0 (8k banks) ignores the low bit of CHR bank 0
	writeMMC1(t, cart, 0x8000, 0x0c)
	d, _ = cart.PPURead(0x0000)
	test.ExpectEquality(t, d, uint8(2))
	d, _ = cart.PPURead(0x1000)
	test.ExpectEquality(t, d, uint8(3))
}

func TestMMC1Mirroring(t *testing.T) {
	cart := attach(t, makeINES(2, 1, 0x10, 0))

	writeMMC1(t, cart, 0x8000, 0x0c)
	test.ExpectEquality(t, cart.Mirroring(), mapper.OneScreenLo)
	writeMMC1(t, cart, 0x8000, 0x0d)
	test.ExpectEquality(t, cart.Mirroring(), mapper.OneScreenHi)
	writeMMC1(t, cart, 0x8000, 0x0e)
	test.ExpectEquality(t, cart.Mirroring(), mapper.Vertical)
	writeMMC1(t, cart, 0x8000, 0x0f)
	test.ExpectEquality(t, cart.Mirroring(), mapper.Horizontal)
}

func TestMMC1PRGModes(t *testing.T) {
	cart := attach(t, makeINES(4, 1, 0x10, 0))

	// power on is mode 3: last bank fixed at $C000
	test.ExpectEquality(t, cart.Peek(0x8000), uint8(0))
	test.ExpectEquality(t, cart.Peek(0xc000), uint8(3))

	writeMMC1(t, cart, 0xe000, 0x02)
	test.ExpectEquality(t, cart.Peek(0x8000), uint8(2))
	test.ExpectEquality(t, cart.Peek(0xc000), uint8(3))

	// mode 2: first bank fixed at $8000
	writeMMC1(t, cart, 0x8000, 0x08)
	test.ExpectEquality(t, cart.Peek(0x8000), uint8(0))
	test.ExpectEquality(t, cart.Peek(0xc000), uint8(2))

	// mode 0: 32k switching ignores the low bit
	writeMMC1(t, cart, 0x8000, 0x00)
	writeMMC1(t, cart, 0xe000, 0x03)
	test.ExpectEquality(t, cart.Peek(0x8000), uint8(2))
	test.ExpectEquality(t, cart.Peek(0xc000), uint8(3))
}

func TestMMC1BankOutOfRange(t *testing.T) {
	cart := attach(t, makeINES(2, 1, 0x10, 0))

	// PRG bank 5 of 2
	writeMMC1(t, cart, 0xe000, 0x05)
	_, err := cart.Read(0x8000)
	test.ExpectSuccess(t, curated.Is(err, cartridge.BankOutOfRange))
	test.ExpectEquality(t, cart.Peek(0x8000), uint8(0))

	// the fixed bank at $C000 is still readable
	d, err := cart.Read(0xc000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d, uint8(1))

	// 32k mode with only two banks selects banks 4 and 5
	writeMMC1(t, cart, 0x8000, 0x00)
	_, err = cart.Read(0xc000)
	test.ExpectSuccess(t, curated.Is(err, cartridge.BankOutOfRange))

	// back in range
	writeMMC1(t, cart, 0xe000, 0x00)
	d, err = cart.Read(0xc000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d, uint8(1))

	// CHR mode 1 with 4k bank 7 of 2
	writeMMC1(t, cart, 0x8000, 0x10)
	writeMMC1(t, cart, 0xc000, 0x07)
	_, err = cart.PPURead(0x0000)
	test.ExpectSuccess(t, err)
	_, err = cart.PPURead(0x1000)
	test.ExpectSuccess(t, curated.Is(err, cartridge.BankOutOfRange))
	err = cart.PPUWrite(0x1000, 0x01)
	test.ExpectSuccess(t, curated.Is(err, cartridge.BankOutOfRange))
}

func TestMMC1RAM(t *testing.T) {
	cart := attach(t, makeINES(2, 0, 0x10, 0))

	test.DemandSuccess(t, cart.Write(0x6000, 0x55))
	test.ExpectEquality(t, cart.Peek(0x6000), uint8(0x55))

	// disable RAM
	writeMMC1(t, cart, 0xe000, 0x10)
	test.ExpectEquality(t, cart.Peek(0x6000), uint8(0x00))
	test.DemandSuccess(t, cart.Write(0x6000, 0xaa))

	// enable RAM. previous write was dropped
	writeMMC1(t, cart, 0xe000, 0x00)
	test.ExpectEquality(t, cart.Peek(0x6000), uint8(0x55))

	// below PRG RAM
	test.ExpectEquality(t, cart.Peek(0x5fff), uint8(0x00))
	err := cart.Write(0x5000, 0x01)
	test.ExpectSuccess(t, curated.Is(err, cartridge.AddressOutOfRange))

	// CHR RAM
	test.ExpectSuccess(t, cart.PPUWrite(0x0010, 0x99))
	d, _ := cart.PPURead(0x0010)
	test.ExpectEquality(t, d, uint8(0x99))
}
