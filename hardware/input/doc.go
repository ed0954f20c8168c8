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

// Package input implements the two controller ports of the NES.
//
// Each port has a latch, holding the state of the buttons as set by the
// emulator's user interface, and a shift register. Writing to either
// controller address copies both latches into the shift registers. Reading a
// controller address returns the most significant bit of the shift register
// and shifts the register left by one.
package input
