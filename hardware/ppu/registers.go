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

package ppu

import (
	"github.com/nesgopher/nesgopher/hardware/memory/memorymap"
)

// The PPU registers as seen by the CPU. The registers are mirrored every
// eight bytes between $2000 and $3fff.
const (
	PPUCTRL   = uint16(0x2000)
	PPUMASK   = uint16(0x2001)
	PPUSTATUS = uint16(0x2002)
	OAMADDR   = uint16(0x2003)
	OAMDATA   = uint16(0x2004)
	PPUSCROLL = uint16(0x2005)
	PPUADDR   = uint16(0x2006)
	PPUDATA   = uint16(0x2007)
)

// PPUCTRL bits.
const (
	CtrlNametable          = 0x03
	CtrlIncrement32        = 0x04
	CtrlSpritePatterns     = 0x08
	CtrlBackgroundPatterns = 0x10
	CtrlSprite8x16         = 0x20
	CtrlMasterSlave        = 0x40
	CtrlNMI                = 0x80
)

// PPUMASK bits.
const (
	MaskGreyscale      = 0x01
	MaskBackgroundLeft = 0x02
	MaskSpritesLeft    = 0x04
	MaskShowBackground = 0x08
	MaskShowSprites    = 0x10
	MaskEmphasizeRed   = 0x20
	MaskEmphasizeGreen = 0x40
	MaskEmphasizeBlue  = 0x80
)

// PPUSTATUS bits.
const (
	StatusSpriteOverflow = 0x20
	StatusSpriteZeroHit  = 0x40
	StatusVBlank         = 0x80
)

// ReadRegister is an implementation of bus.ChipBus.
func (ppu *PPU) ReadRegister(address uint16) (uint8, error) {
	if address == memorymap.OAMDMA {
		return 0, nil
	}

	switch address & memorymap.MaskPPU {
	case PPUSTATUS:
		v := ppu.Status
		ppu.Status &^= StatusVBlank
		ppu.w = false
		return v, nil

	case OAMDATA:
		return ppu.OAM.Primary[ppu.OAM.Addr], nil

	case PPUDATA:
		var v uint8

		if ppu.v.Address() >= originPalette {
			// palette data is returned immediately. the read buffer is
			// filled with the nametable data underneath the palette
			var err error
			v, err = ppu.read(ppu.v.Address())
			if err != nil {
				return 0, err
			}
			ppu.dataBuffer, err = ppu.read(ppu.v.Address() - 0x1000)
			if err != nil {
				return 0, err
			}
		} else {
			v = ppu.dataBuffer
			var err error
			ppu.dataBuffer, err = ppu.read(ppu.v.Address())
			if err != nil {
				return 0, err
			}
		}

		ppu.incrementV()

		return v, nil
	}

	// write only registers
	return 0, nil
}

// PeekRegister is an implementation of bus.ChipBus.
func (ppu *PPU) PeekRegister(address uint16) uint8 {
	if address == memorymap.OAMDMA {
		return 0
	}

	switch address & memorymap.MaskPPU {
	case PPUSTATUS:
		return ppu.Status
	case OAMDATA:
		return ppu.OAM.Primary[ppu.OAM.Addr]
	case PPUDATA:
		if ppu.v.Address() >= originPalette {
			return ppu.peek(ppu.v.Address())
		}
		return ppu.dataBuffer
	}

	return 0
}

// WriteRegister is an implementation of bus.ChipBus.
func (ppu *PPU) WriteRegister(address uint16, data uint8) error {
	if address == memorymap.OAMDMA {
		ppu.startDMA(data)
		return nil
	}

	switch address & memorymap.MaskPPU {
	case PPUCTRL:
		// enabling NMI during the vertical blank raises an NMI immediately
		if ppu.Ctrl&CtrlNMI == 0 && data&CtrlNMI == CtrlNMI && ppu.Status&StatusVBlank == StatusVBlank {
			ppu.nmi = true
		}
		ppu.Ctrl = data
		ppu.t.SetNametable(data & CtrlNametable)

	case PPUMASK:
		ppu.Mask = data

	case PPUSTATUS:
		// read only

	case OAMADDR:
		ppu.OAM.Addr = data

	case OAMDATA:
		ppu.OAM.Primary[ppu.OAM.Addr] = data
		ppu.OAM.Addr++

	case PPUSCROLL:
		if !ppu.w {
			ppu.fineX = data & 0x07
			ppu.t.SetCoarseX(data >> 3)
		} else {
			ppu.t.SetFineY(data & 0x07)
			ppu.t.SetCoarseY(data >> 3)
		}
		ppu.w = !ppu.w

	case PPUADDR:
		if !ppu.w {
			ppu.t = (ppu.t & 0x00ff) | (Loopy(data&0x3f) << 8)
		} else {
			ppu.t = (ppu.t & 0xff00) | Loopy(data)
			ppu.v = ppu.t
		}
		ppu.w = !ppu.w

	case PPUDATA:
		if err := ppu.write(ppu.v.Address(), data); err != nil {
			return err
		}
		ppu.incrementV()
	}

	return nil
}

// the VRAM address is incremented after every access to PPUDATA.
func (ppu *PPU) incrementV() {
	if ppu.Ctrl&CtrlIncrement32 == CtrlIncrement32 {
		ppu.v.Add(32)
	} else {
		ppu.v.Add(1)
	}
}

// rendering is enabled if either the background or the sprites are shown.
func (ppu *PPU) renderingEnabled() bool {
	return ppu.Mask&(MaskShowBackground|MaskShowSprites) != 0
}
