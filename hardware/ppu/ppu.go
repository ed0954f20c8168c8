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
	"fmt"
	"image"

	"github.com/nesgopher/nesgopher/environment"
	"github.com/nesgopher/nesgopher/hardware/memory/bus"
)

// Frame geometry.
const (
	ScreenWidth  = 256
	ScreenHeight = 240

	CyclesPerScanline = 341
	PreRenderScanline = -1
	VBlankScanline    = 241
	LastScanline      = 260

	// one cycle is skipped every frame
	CyclesPerFrame = (LastScanline-PreRenderScanline+1)*CyclesPerScanline - 1
)

// PPU contains all the sub-components of the picture processing unit.
type PPU struct {
	env  *environment.Environment
	cart CartBus

	// the CPU bus is used as the source of DMA transfers
	mem bus.CPUBus

	Nametables [2 * NametableSize]uint8
	Palette    [PaletteSize]uint8
	OAM        OAM

	Ctrl   uint8
	Mask   uint8
	Status uint8

	// the loopy registers. v is the current VRAM address and t is the
	// temporary VRAM address
	v Loopy
	t Loopy

	fineX uint8

	// the write latch shared by PPUSCROLL and PPUADDR
	w bool

	// PPUDATA read buffer
	dataBuffer uint8

	Scanline int
	Cycle    int

	bg      background
	sprites spriteLine
	dma     dma

	frame         *image.RGBA
	frameComplete bool
	frames        uint64

	nmi bool
}

// NewPPU is the preferred method of initialisation for the PPU type. The PPU
// must be plumbed into the CPU bus before DMA transfers can take place.
func NewPPU(env *environment.Environment, cart CartBus) *PPU {
	ppu := &PPU{
		env:   env,
		cart:  cart,
		frame: image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight)),
	}
	ppu.Reset()
	return ppu
}

// Plumb the CPU bus into the PPU.
func (ppu *PPU) Plumb(mem bus.CPUBus) {
	ppu.mem = mem
}

func (ppu *PPU) String() string {
	return fmt.Sprintf("scanline=%d cycle=%d v=%s t=%s x=%d w=%v",
		ppu.Scanline, ppu.Cycle, ppu.v, ppu.t, ppu.fineX, ppu.w)
}

// Reset the PPU to the start of the pre-render scanline. Memory is cleared.
func (ppu *PPU) Reset() {
	ppu.Nametables = [2 * NametableSize]uint8{}
	ppu.Palette = [PaletteSize]uint8{}
	ppu.OAM.Reset()

	ppu.Ctrl = 0
	ppu.Mask = 0
	ppu.Status = 0
	ppu.v = 0
	ppu.t = 0
	ppu.fineX = 0
	ppu.w = false
	ppu.dataBuffer = 0

	ppu.Scanline = PreRenderScanline
	ppu.Cycle = 0

	ppu.bg = background{}
	ppu.sprites = spriteLine{}
	ppu.dma = dma{}

	ppu.frameComplete = false
	ppu.frames = 0
	ppu.nmi = false
}

// Coords returns the current scanline and cycle.
func (ppu *PPU) Coords() (int, int) {
	return ppu.Scanline, ppu.Cycle
}

// V returns the current VRAM address register.
func (ppu *PPU) V() Loopy {
	return ppu.v
}

// T returns the temporary VRAM address register.
func (ppu *PPU) T() Loopy {
	return ppu.t
}

// FineX returns the fine X scroll.
func (ppu *PPU) FineX() uint8 {
	return ppu.fineX
}

// Frame returns the image being drawn by the PPU. The image is only complete
// immediately after FrameComplete() returns true.
func (ppu *PPU) Frame() *image.RGBA {
	return ppu.frame
}

// FrameComplete returns true if a frame has been completed since the last
// call to the function.
func (ppu *PPU) FrameComplete() bool {
	c := ppu.frameComplete
	ppu.frameComplete = false
	return c
}

// Frames returns the number of frames completed since reset.
func (ppu *PPU) Frames() uint64 {
	return ppu.frames
}

// NMI returns true if the PPU has raised an NMI since the last call to the
// function.
func (ppu *PPU) NMI() bool {
	n := ppu.nmi
	ppu.nmi = false
	return n
}

// Step the PPU by one cycle.
func (ppu *PPU) Step() error {
	if ppu.Scanline < ScreenHeight {
		if err := ppu.stepRender(); err != nil {
			return err
		}
	}

	if ppu.Scanline == VBlankScanline && ppu.Cycle == 1 {
		ppu.Status |= StatusVBlank
		if ppu.Ctrl&CtrlNMI == CtrlNMI {
			ppu.nmi = true
		}
	}

	if ppu.Scanline >= 0 && ppu.Scanline < ScreenHeight && ppu.Cycle >= 1 && ppu.Cycle <= ScreenWidth {
		if err := ppu.renderPixel(); err != nil {
			return err
		}
	}

	ppu.Cycle++
	if ppu.Cycle >= CyclesPerScanline {
		ppu.Cycle = 0
		ppu.Scanline++
		if ppu.Scanline > LastScanline {
			ppu.Scanline = PreRenderScanline
			ppu.frameComplete = true
			ppu.frames++
		}
	}

	return nil
}

// stepRender performs the work of the pre-render and visible scanlines.
func (ppu *PPU) stepRender() error {
	if ppu.Scanline == 0 && ppu.Cycle == 0 {
		ppu.Cycle = 1
	}

	if ppu.Scanline == PreRenderScanline && ppu.Cycle == 1 {
		ppu.Status &^= StatusVBlank | StatusSpriteZeroHit | StatusSpriteOverflow
	}

	if (ppu.Cycle >= 2 && ppu.Cycle <= 257) || (ppu.Cycle >= 321 && ppu.Cycle <= 337) {
		if err := ppu.fetchBackground(); err != nil {
			return err
		}
	}

	rendering := ppu.renderingEnabled()

	switch ppu.Cycle {
	case 256:
		if rendering {
			ppu.v.IncrementY()
		}

	case 257:
		if rendering {
			ppu.evaluateSprites()
			ppu.v.CopyHorizontal(ppu.t)
		} else {
			ppu.sprites.count = 0
			ppu.sprites.zeroInLine = false
		}

	case 340:
		if err := ppu.loadSprites(); err != nil {
			return err
		}
	}

	if rendering && ppu.Scanline == PreRenderScanline && ppu.Cycle >= 280 && ppu.Cycle <= 304 {
		ppu.v.CopyVertical(ppu.t)
	}

	return nil
}
