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

// Package registers implements the registers of the 6502 CPU. The general
// purpose registers (A, X and Y) and the stack pointer are all of type
// Register. The Register type implements the arithmetic and logical
// operations of the CPU, returning the carry and overflow states where
// appropriate. The flags themselves are stored in the StatusRegister, which
// the CPU updates after each operation:
//
//	a.Load(10)
//	carry, overflow := a.Subtract(11, true)
//	sr.Zero = a.IsZero()
//
// In this case, the zero flag in the status register will be false.
package registers
