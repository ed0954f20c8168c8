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

// Package ppu emulates the picture processing unit of the NES. The PPU is
// stepped one cycle (one pixel) at a time with the Step() function. It runs
// three times faster than the CPU.
//
// A frame is 262 scanlines of 341 cycles. Scanline -1 is the pre-render line,
// scanlines 0 to 239 are visible and the remaining scanlines are the vertical
// blank. The first cycle of scanline 0 is skipped every frame.
//
// The CPU communicates with the PPU through the eight registers mapped at
// $2000 and through the OAM DMA register at $4014. The PPU implements the
// bus.ChipBus interface for this purpose.
//
// Pattern data is read from the cartridge through the CartBus interface. The
// nametables and the palette are held by the PPU.
//
// The rendered frame is available through the Frame() function. The
// PatternTable() and SpriteSheet() functions produce images useful for
// debugging.
package ppu
