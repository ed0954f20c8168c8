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

	"github.com/nesgopher/nesgopher/cartridgeloader"
	"github.com/nesgopher/nesgopher/curated"
	"github.com/nesgopher/nesgopher/environment"
	"github.com/nesgopher/nesgopher/hardware/memory/cartridge/mapper"
	"github.com/nesgopher/nesgopher/logger"
)

// Sentinal error patterns for cartridge access.
const (
	AddressOutOfRange    = "cartridge: %v: address outside cartridge range (%#04x)"
	PPUAddressOutOfRange = "cartridge: %v: PPU address outside pattern range (%#04x)"
	BankOutOfRange       = "cartridge: %v: %s bank %d outside bank range (%d banks)"
	AttachError          = "cartridge: %v"
)

// the mapper implementations, keyed by iNES mapper number.
var mappers = map[mapper.ID]func(env *environment.Environment) mapper.CartMapper{
	mapper.NROM: newNROM,
	mapper.MMC1: newMMC1,
}

// IsSupported returns true if there is an implementation for the mapper.
func IsSupported(id mapper.ID) bool {
	_, ok := mappers[id]
	return ok
}

// Cartridge defines the information and operations for a NES cartridge.
type Cartridge struct {
	env *environment.Environment

	Filename string
	Hash     string

	rom    *mapper.ROM
	mapper mapper.CartMapper
}

// NewCartridge is the preferred method of initialisation for the Cartridge
// type. The new cartridge is ejected.
func NewCartridge(env *environment.Environment) *Cartridge {
	cart := &Cartridge{env: env}
	cart.Eject()
	return cart
}

func (cart *Cartridge) String() string {
	return cart.Summary()
}

// Summary returns brief information about the cartridge. Two lines: the
// filename and then information about the mapper.
func (cart *Cartridge) Summary() string {
	return fmt.Sprintf("%s\n%s [%s mirroring] %s", cart.Filename, cart.mapper, cart.Mirroring(), cart.mapper.MappedBanks())
}

// Attach the cartridge data in the loader. The data is loaded if necessary.
func (cart *Cartridge) Attach(cartload cartridgeloader.Loader) error {
	cart.Eject()

	if err := cartload.Load(); err != nil {
		return curated.Errorf(AttachError, err)
	}

	rom, err := NewROM(cartload.Data)
	if err != nil {
		return err
	}

	create, ok := mappers[rom.ID]
	if !ok {
		return curated.Errorf(UnsupportedMapper, rom.ID)
	}

	m := create(cart.env)
	if err := m.Init(rom); err != nil {
		return err
	}

	cart.Filename = cartload.Filename
	cart.Hash = cartload.Hash
	cart.rom = rom
	cart.mapper = m

	logger.Logf(cart.env, "cartridge", "attached %s", cartload.ShortName())
	logger.Logf(cart.env, "cartridge", "%v: PRG %dx16k, CHR %dx8k (RAM %v), %s mirroring",
		rom.ID, rom.PRGBanks, rom.CHRBanks, rom.CHRRAM, rom.Mirroring)
	logger.Logf(cart.env, "cartridge", "hash %s", cart.Hash)

	return nil
}

// Eject removes the cartridge data and disposes of the mapper.
func (cart *Cartridge) Eject() {
	if cart.mapper != nil && cart.mapper.ID() != mapper.Ejected {
		cart.mapper.Dispose()
		logger.Logf(cart.env, "cartridge", "ejected %s", cart.Filename)
	}
	cart.Filename = "ejected"
	cart.Hash = ""
	cart.rom = nil
	cart.mapper = newEjected()
}

// IsEjected returns true if no cartridge is attached.
func (cart *Cartridge) IsEjected() bool {
	return cart.mapper.ID() == mapper.Ejected
}

// ID returns the mapper ID of the attached cartridge.
func (cart *Cartridge) ID() mapper.ID {
	return cart.mapper.ID()
}

// Mirroring returns the current nametable mirroring. Some mappers change the
// mirroring while the cartridge is running.
func (cart *Cartridge) Mirroring() mapper.Mirroring {
	if cart.rom == nil {
		return mapper.Horizontal
	}
	return cart.rom.Mirroring
}

// MappedBanks returns a short description of the currently mapped banks.
func (cart *Cartridge) MappedBanks() string {
	return cart.mapper.MappedBanks()
}

// Reset volatile areas of the cartridge.
func (cart *Cartridge) Reset() {
	cart.mapper.Reset()
}

// Peek returns the value at the CPU address without side effects.
func (cart *Cartridge) Peek(addr uint16) uint8 {
	return cart.mapper.Peek(addr)
}

// Read is an implementation of bus.CPUBus.
func (cart *Cartridge) Read(addr uint16) (uint8, error) {
	return cart.mapper.CPURead(addr)
}

// Write is an implementation of bus.CPUBus.
func (cart *Cartridge) Write(addr uint16, data uint8) error {
	return cart.mapper.CPUWrite(addr, data)
}

// PPURead reads pattern data for the PPU.
func (cart *Cartridge) PPURead(addr uint16) (uint8, error) {
	return cart.mapper.PPURead(addr)
}

// PPUWrite writes pattern data from the PPU.
func (cart *Cartridge) PPUWrite(addr uint16, data uint8) error {
	return cart.mapper.PPUWrite(addr, data)
}
