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

package memory

import (
	"github.com/nesgopher/nesgopher/environment"
	"github.com/nesgopher/nesgopher/hardware/input"
	"github.com/nesgopher/nesgopher/hardware/memory/bus"
	"github.com/nesgopher/nesgopher/hardware/memory/cartridge"
	"github.com/nesgopher/nesgopher/hardware/memory/memorymap"
)

// Memory is the CPU address space.
type Memory struct {
	env *environment.Environment

	RAM   *RAM
	Ports *input.Ports
	Cart  *cartridge.Cartridge

	// the PPU register interface
	PPU bus.ChipBus
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The PPU is plumbed in later with Plumb().
func NewMemory(env *environment.Environment, ports *input.Ports, cart *cartridge.Cartridge) *Memory {
	return &Memory{
		env:   env,
		RAM:   NewRAM(env),
		Ports: ports,
		Cart:  cart,
	}
}

// Plumb the chip that responds to the PPU register addresses.
func (mem *Memory) Plumb(ppu bus.ChipBus) {
	mem.PPU = ppu
}

// Reset the RAM and the controller ports.
func (mem *Memory) Reset() {
	mem.RAM.Reset()
	mem.Ports.Reset()
}

// Read is an implementation of bus.CPUBus.
func (mem *Memory) Read(address uint16) (uint8, error) {
	ma, area := memorymap.MapAddress(address)

	switch area {
	case memorymap.RAM:
		return mem.RAM.Read(ma), nil
	case memorymap.PPU:
		if mem.PPU == nil {
			return 0, nil
		}
		return mem.PPU.ReadRegister(ma)
	case memorymap.Controllers:
		return mem.Ports.Read(input.Port(ma - memorymap.Controller1)), nil
	case memorymap.Cartridge:
		return mem.Cart.Read(ma)
	}

	return 0, nil
}

// Write is an implementation of bus.CPUBus.
func (mem *Memory) Write(address uint16, data uint8) error {
	ma, area := memorymap.MapAddress(address)

	switch area {
	case memorymap.RAM:
		mem.RAM.Write(ma, data)
	case memorymap.PPU:
		if mem.PPU != nil {
			return mem.PPU.WriteRegister(ma, data)
		}
	case memorymap.Controllers:
		mem.Ports.Strobe()
	case memorymap.Cartridge:
		return mem.Cart.Write(ma, data)
	}

	return nil
}

// Read16 reads a little-endian 16 bit value.
func (mem *Memory) Read16(address uint16) (uint16, error) {
	lo, err := mem.Read(address)
	if err != nil {
		return 0, err
	}
	hi, err := mem.Read(address + 1)
	if err != nil {
		return 0, err
	}
	return (uint16(hi) << 8) | uint16(lo), nil
}

// Write16 writes a little-endian 16 bit value.
func (mem *Memory) Write16(address uint16, data uint16) error {
	if err := mem.Write(address, uint8(data)); err != nil {
		return err
	}
	return mem.Write(address+1, uint8(data>>8))
}

// Peek is an implementation of bus.DebugBus.
func (mem *Memory) Peek(address uint16) uint8 {
	ma, area := memorymap.MapAddress(address)

	switch area {
	case memorymap.RAM:
		return mem.RAM.Read(ma)
	case memorymap.PPU:
		if mem.PPU == nil {
			return 0
		}
		return mem.PPU.PeekRegister(ma)
	case memorymap.Controllers:
		return mem.Ports.Peek(input.Port(ma - memorymap.Controller1))
	case memorymap.Cartridge:
		return mem.Cart.Peek(ma)
	}

	return 0
}

// Peek16 is an implementation of bus.DebugBus.
func (mem *Memory) Peek16(address uint16) uint16 {
	return (uint16(mem.Peek(address+1)) << 8) | uint16(mem.Peek(address))
}
