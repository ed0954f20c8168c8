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

// Package memory implements the CPU address space of the NES. The Memory type
// decodes addresses with the memorymap package and forwards each access to
// the RAM, the PPU registers, the controller ports or the cartridge.
//
//	                       ---- RAM
//	                      |
//	                      |---- PPU registers ---- chip bus ---- PPU
//	CPU ---- cpu bus ---- *
//	                      |---- controller ports
//	                      |
//	                       ---- Cartridge
//
// Addresses that are not decoded are open bus. Reads return zero and writes
// are ignored.
//
// The Peek() function implements the debug bus. Peeking at a controller port
// or a PPU register does not change the state of the port or the PPU.
package memory
