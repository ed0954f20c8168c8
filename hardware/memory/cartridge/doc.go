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

// Package cartridge loads iNES files and maps cartridge memory for the CPU and
// the PPU.
//
// The header of the iNES file identifies the mapper required by the
// cartridge. Currently supported mappers:
//
//	0	NROM	up to 32k PRG and 8k CHR (or 8k CHR RAM)
//	1	MMC1	switchable PRG and CHR banks, 8k PRG RAM
//
// A Cartridge that has no data attached uses the ejected mapper, which
// returns zero for every read.
package cartridge
