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

// Package disassembly decodes 6502 machine code without executing it.
//
// Decode() and Linear() work on any address and make no attempt to
// distinguish code from data. Linear disassembly is therefore useful for
// small regions of memory (around the program counter for example) but not
// for the entire program.
//
// FromMemory() performs a flow disassembly, starting at the interrupt
// vectors and following the flow of the program through branches, jumps and
// subroutine calls. Only the cartridge address space is visited. Flow
// disassembly cannot see code that is reached through a manipulated stack or
// through a computed jump table.
package disassembly
