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

package memorymap

// Area represents the different areas of memory.
type Area int

func (a Area) String() string {
	switch a {
	case OpenBus:
		return "open bus"
	case RAM:
		return "RAM"
	case PPU:
		return "PPU"
	case Controllers:
		return "Controllers"
	case Cartridge:
		return "Cartridge"
	}
	return "undefined"
}

// The different memory areas of the NES. The APU and the unused IO registers
// are open bus.
const (
	OpenBus Area = iota
	RAM
	PPU
	Controllers
	Cartridge
)

// The origin and memory top of each area.
const (
	OriginRAM  = uint16(0x0000)
	MemtopRAM  = uint16(0x1fff)
	OriginPPU  = uint16(0x2000)
	MemtopPPU  = uint16(0x3fff)
	OriginCart = uint16(0x4020)
	MemtopCart = uint16(0xffff)
)

// Individual addresses outside of the main areas.
const (
	OAMDMA      = uint16(0x4014)
	Controller1 = uint16(0x4016)
	Controller2 = uint16(0x4017)
)

// The RAM and the PPU registers are mirrored. The masks keep only the bits of
// the primary address.
const (
	MaskRAM = uint16(0x07ff)
	MaskPPU = uint16(0x2007)
)

// Memtop is the top most address of memory.
const Memtop = MemtopCart

// The interrupt vectors.
const (
	NMI   = uint16(0xfffa)
	Reset = uint16(0xfffc)
	IRQ   = uint16(0xfffe)
)

// MapAddress translates the address argument from mirror space to primary
// space and returns the area the address belongs to.
func MapAddress(address uint16) (uint16, Area) {
	// the order of these filters is important

	if address <= MemtopRAM {
		return address & MaskRAM, RAM
	}

	if address <= MemtopPPU {
		return address & MaskPPU, PPU
	}

	if address == OAMDMA {
		return address, PPU
	}

	if address == Controller1 || address == Controller2 {
		return address, Controllers
	}

	if address >= OriginCart {
		return address, Cartridge
	}

	return address, OpenBus
}
