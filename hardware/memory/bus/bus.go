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

// Package bus defines the interfaces through which the emulated chips access
// memory and each other.
//
// CPUBus is the view of memory from the CPU. DebugBus is the same memory
// without side effects, for use by the debugger and other tools. ChipBus is
// the register interface of the PPU as seen from the CPUBus.
package bus

// CPUBus defines the operations for the memory system when accessed from the
// CPU.
type CPUBus interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, data uint8) error
}

// DebugBus defines memory access operations that do not affect the state of
// the emulation.
type DebugBus interface {
	Peek(address uint16) uint8
	Peek16(address uint16) uint16
}

// ChipBus defines the register interface of a chip attached to the CPUBus.
type ChipBus interface {
	ReadRegister(address uint16) (uint8, error)
	WriteRegister(address uint16, data uint8) error

	// PeekRegister returns the value that ReadRegister() would return but
	// without side effects
	PeekRegister(address uint16) uint8
}
