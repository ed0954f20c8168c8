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

// Package instructions defines the instruction set of the 2A03 CPU. The 2A03
// is a 6502 without the decimal mode circuitry.
//
// The Definitions table is indexed by opcode. Every entry is populated.
// Undocumented opcodes are marked as such and, with the exception of the
// undocumented NOP variants, have the Illegal operator.
package instructions
