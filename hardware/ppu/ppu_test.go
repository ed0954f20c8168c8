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

package ppu_test

import (
	"testing"

	"github.com/nesgopher/nesgopher/environment"
	"github.com/nesgopher/nesgopher/hardware/memory/cartridge/mapper"
	"github.com/nesgopher/nesgopher/hardware/ppu"
	"github.com/nesgopher/nesgopher/test"
)

// mockCart is pattern memory with a fixed mirroring.
type mockCart struct {
	chr       [0x2000]uint8
	mirroring mapper.Mirroring
}

func (cart *mockCart) PPURead(address uint16) (uint8, error) {
	return cart.chr[address&0x1fff], nil
}

func (cart *mockCart) PPUWrite(address uint16, data uint8) error {
	cart.chr[address&0x1fff] = data
	return nil
}

func (cart *mockCart) Mirroring() mapper.Mirroring {
	return cart.mirroring
}

// mockBus is a flat 64KB CPU address space.
type mockBus struct {
	data [0x10000]uint8
}

func (mem *mockBus) Read(address uint16) (uint8, error) {
	return mem.data[address], nil
}

func (mem *mockBus) Write(address uint16, data uint8) error {
	mem.data[address] = data
	return nil
}

func newPPU(t *testing.T) (*ppu.PPU, *mockCart, *mockBus) {
	t.Helper()

	env, err := environment.NewEnvironment(environment.MainEmulation, nil, nil)
	test.DemandSuccess(t, err)

	cart := &mockCart{mirroring: mapper.Vertical}
	mem := &mockBus{}

	p := ppu.NewPPU(env, cart)
	p.Plumb(mem)

	return p, cart, mem
}

func setAddress(t *testing.T, p *ppu.PPU, address uint16) {
	t.Helper()
	test.DemandSuccess(t, p.WriteRegister(ppu.PPUADDR, uint8(address>>8)))
	test.DemandSuccess(t, p.WriteRegister(ppu.PPUADDR, uint8(address)))
}

func readData(t *testing.T, p *ppu.PPU) uint8 {
	t.Helper()
	v, err := p.ReadRegister(ppu.PPUDATA)
	test.DemandSuccess(t, err)
	return v
}

func TestFullFrame(t *testing.T) {
	p, _, _ := newPPU(t)

	scanline, cycle := p.Coords()
	test.ExpectEquality(t, scanline, -1)
	test.ExpectEquality(t, cycle, 0)

	var completed int
	for i := 0; i < ppu.CyclesPerFrame; i++ {
		test.DemandSuccess(t, p.Step())
		if p.FrameComplete() {
			completed++
			test.ExpectEquality(t, i, ppu.CyclesPerFrame-1)
		}
	}

	test.ExpectEquality(t, ppu.CyclesPerFrame, 89341)
	test.ExpectEquality(t, completed, 1)
	test.ExpectEquality(t, p.Frames(), uint64(1))

	scanline, cycle = p.Coords()
	test.ExpectEquality(t, scanline, -1)
	test.ExpectEquality(t, cycle, 0)

	// no sprites are enabled
	test.ExpectEquality(t, p.Status&(ppu.StatusSpriteZeroHit|ppu.StatusSpriteOverflow), uint8(0))

	// vblank has started and no NMI has been raised because it is disabled
	test.ExpectEquality(t, p.Status&ppu.StatusVBlank, uint8(ppu.StatusVBlank))
	test.ExpectFailure(t, p.NMI())
}

func TestVBlankNMI(t *testing.T) {
	p, _, _ := newPPU(t)
	test.DemandSuccess(t, p.WriteRegister(ppu.PPUCTRL, ppu.CtrlNMI))

	for {
		test.DemandSuccess(t, p.Step())
		if p.NMI() {
			break
		}
	}

	scanline, cycle := p.Coords()
	test.ExpectEquality(t, scanline, ppu.VBlankScanline)
	test.ExpectEquality(t, cycle, 2)

	// reading the status register clears the vblank flag
	v, err := p.ReadRegister(ppu.PPUSTATUS)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v&ppu.StatusVBlank, uint8(ppu.StatusVBlank))
	v, err = p.ReadRegister(ppu.PPUSTATUS)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v&ppu.StatusVBlank, uint8(0))
}

func TestNMIEnabledDuringVBlank(t *testing.T) {
	p, _, _ := newPPU(t)

	for p.Status&ppu.StatusVBlank == 0 {
		test.DemandSuccess(t, p.Step())
	}
	test.ExpectFailure(t, p.NMI())

	test.DemandSuccess(t, p.WriteRegister(ppu.PPUCTRL, ppu.CtrlNMI))
	test.ExpectSuccess(t, p.NMI())
}

func TestPaletteMirroring(t *testing.T) {
	p, _, _ := newPPU(t)

	for i, address := range []uint16{0x3f10, 0x3f14, 0x3f18, 0x3f1c} {
		setAddress(t, p, address)
		test.DemandSuccess(t, p.WriteRegister(ppu.PPUDATA, uint8(0x20+i)))

		// palette reads are not buffered
		setAddress(t, p, address-0x10)
		test.ExpectEquality(t, readData(t, p), uint8(0x20+i))
	}

	// palette memory is six bits wide
	setAddress(t, p, 0x3f01)
	test.DemandSuccess(t, p.WriteRegister(ppu.PPUDATA, 0xff))
	setAddress(t, p, 0x3f01)
	test.ExpectEquality(t, readData(t, p), uint8(0x3f))
}

func TestBufferedRead(t *testing.T) {
	p, _, _ := newPPU(t)

	setAddress(t, p, 0x2005)
	test.DemandSuccess(t, p.WriteRegister(ppu.PPUDATA, 0x55))
	test.DemandSuccess(t, p.WriteRegister(ppu.PPUDATA, 0x66))

	setAddress(t, p, 0x2005)

	// the first read returns the stale contents of the buffer
	test.ExpectEquality(t, readData(t, p), uint8(0x00))
	test.ExpectEquality(t, readData(t, p), uint8(0x55))
	test.ExpectEquality(t, readData(t, p), uint8(0x66))
}

func TestAddressIncrement(t *testing.T) {
	p, _, _ := newPPU(t)

	test.DemandSuccess(t, p.WriteRegister(ppu.PPUCTRL, ppu.CtrlIncrement32))
	setAddress(t, p, 0x2000)
	test.DemandSuccess(t, p.WriteRegister(ppu.PPUDATA, 0x01))
	test.ExpectEquality(t, p.V().Address(), uint16(0x2020))

	test.DemandSuccess(t, p.WriteRegister(ppu.PPUCTRL, 0))
	test.DemandSuccess(t, p.WriteRegister(ppu.PPUDATA, 0x02))
	test.ExpectEquality(t, p.V().Address(), uint16(0x2021))

	test.ExpectEquality(t, p.Nametables[0x0000], uint8(0x01))
	test.ExpectEquality(t, p.Nametables[0x0020], uint8(0x02))
}

func TestPatternWrite(t *testing.T) {
	p, cart, _ := newPPU(t)

	setAddress(t, p, 0x1234)
	test.DemandSuccess(t, p.WriteRegister(ppu.PPUDATA, 0xab))
	test.ExpectEquality(t, cart.chr[0x1234], uint8(0xab))
}

func TestScrollRegisters(t *testing.T) {
	p, _, _ := newPPU(t)

	test.DemandSuccess(t, p.WriteRegister(ppu.PPUCTRL, 0x03))
	test.DemandSuccess(t, p.WriteRegister(ppu.PPUSCROLL, 0x7d))
	test.DemandSuccess(t, p.WriteRegister(ppu.PPUSCROLL, 0x5e))

	tmp := p.T()
	test.ExpectEquality(t, tmp.Nametable(), uint8(0x03))
	test.ExpectEquality(t, tmp.CoarseX(), uint8(0x0f))
	test.ExpectEquality(t, p.FineX(), uint8(0x05))
	test.ExpectEquality(t, tmp.CoarseY(), uint8(0x0b))
	test.ExpectEquality(t, tmp.FineY(), uint8(0x06))

	// the write latch is shared with PPUADDR and reset by reading PPUSTATUS
	test.DemandSuccess(t, p.WriteRegister(ppu.PPUSCROLL, 0x00))
	_, err := p.ReadRegister(ppu.PPUSTATUS)
	test.DemandSuccess(t, err)
	setAddress(t, p, 0x2400)
	test.ExpectEquality(t, p.V().Address(), uint16(0x2400))
}

func TestRegisterMirrors(t *testing.T) {
	p, _, _ := newPPU(t)

	test.DemandSuccess(t, p.WriteRegister(0x3ff9, ppu.MaskShowBackground))
	test.ExpectEquality(t, p.Mask, uint8(ppu.MaskShowBackground))
}

func TestOAMData(t *testing.T) {
	p, _, _ := newPPU(t)

	test.DemandSuccess(t, p.WriteRegister(ppu.OAMADDR, 0x10))
	test.DemandSuccess(t, p.WriteRegister(ppu.OAMDATA, 0x20))
	test.DemandSuccess(t, p.WriteRegister(ppu.OAMDATA, 0x30))
	test.ExpectEquality(t, p.OAM.Primary[0x10], uint8(0x20))
	test.ExpectEquality(t, p.OAM.Primary[0x11], uint8(0x30))

	test.DemandSuccess(t, p.WriteRegister(ppu.OAMADDR, 0x11))
	v, err := p.ReadRegister(ppu.OAMDATA)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x30))
	test.ExpectEquality(t, p.PeekRegister(ppu.OAMDATA), uint8(0x30))
}

func TestSpriteEncoding(t *testing.T) {
	s := ppu.DecodeSprite([]byte{0x10, 0x22, 0xe3, 0x40})
	test.ExpectEquality(t, s.Y, uint8(0x10))
	test.ExpectEquality(t, s.Tile, uint8(0x22))
	test.ExpectEquality(t, s.X, uint8(0x40))
	test.ExpectEquality(t, s.Palette(), uint8(0x03))
	test.ExpectSuccess(t, s.BehindBackground())
	test.ExpectSuccess(t, s.FlipH())
	test.ExpectSuccess(t, s.FlipV())

	b := make([]byte, 4)
	s.Encode(b)
	test.ExpectEquality(t, string(b), string([]byte{0x10, 0x22, 0xe3, 0x40}))

	var oam ppu.OAM
	oam.SetSprite(63, s)
	test.ExpectEquality(t, oam.Primary[252], uint8(0x10))
	test.ExpectEquality(t, oam.Primary[255], uint8(0x40))
	test.ExpectEquality(t, oam.Sprite(63), s)
}

func testDMA(t *testing.T, startCycle uint64, expectedCost int) {
	t.Helper()

	p, _, mem := newPPU(t)
	for i := 0; i < 256; i++ {
		mem.data[0x0200+i] = uint8(i ^ 0xa5)
	}

	test.DemandSuccess(t, p.WriteRegister(0x4014, 0x02))
	test.ExpectSuccess(t, p.DMAActive())

	cycle := startCycle
	cost := 0
	for p.DMAActive() {
		test.DemandSuccess(t, p.StepDMA(cycle))
		cycle++
		cost++
	}
	test.ExpectEquality(t, cost, expectedCost)

	for i := 0; i < 256; i++ {
		test.ExpectEquality(t, p.OAM.Primary[i], uint8(i^0xa5), i)
	}
}

func TestDMA(t *testing.T) {
	testDMA(t, 101, 513)
	testDMA(t, 100, 514)
}

func TestDMAIgnoresOAMADDR(t *testing.T) {
	p, _, mem := newPPU(t)
	for i := 0; i < 256; i++ {
		mem.data[0x0200+i] = uint8(i)
	}

	test.DemandSuccess(t, p.WriteRegister(ppu.OAMADDR, 0x10))
	test.DemandSuccess(t, p.WriteRegister(0x4014, 0x02))

	cycle := uint64(1)
	for p.DMAActive() {
		test.DemandSuccess(t, p.StepDMA(cycle))
		cycle++
	}

	test.ExpectEquality(t, p.OAM.Primary[0x00], uint8(0x00))
	test.ExpectEquality(t, p.OAM.Primary[0x10], uint8(0x10))
	test.ExpectEquality(t, p.OAM.Primary[0xff], uint8(0xff))
	test.ExpectEquality(t, p.OAM.Addr, uint8(0x10))
}

func TestBackdrop(t *testing.T) {
	p, _, _ := newPPU(t)

	setAddress(t, p, 0x3f00)
	test.DemandSuccess(t, p.WriteRegister(ppu.PPUDATA, 0x21))

	for i := 0; i < ppu.CyclesPerFrame; i++ {
		test.DemandSuccess(t, p.Step())
	}

	img := p.Frame()
	test.ExpectEquality(t, img.Bounds().Dx(), ppu.ScreenWidth)
	test.ExpectEquality(t, img.Bounds().Dy(), ppu.ScreenHeight)
	test.ExpectEquality(t, img.RGBAAt(0, 0), ppu.Colors[0x21])
	test.ExpectEquality(t, img.RGBAAt(255, 239), ppu.Colors[0x21])
}

// prepare a screen of solid tiles with sprite zero in front of it.
func prepareSpriteZero(t *testing.T, p *ppu.PPU, cart *mockCart) {
	t.Helper()

	// tile 1 is solid with pixel value 1
	for i := 0; i < 8; i++ {
		cart.chr[0x0010+i] = 0xff
	}

	for i := range p.Nametables {
		p.Nametables[i] = 0x01
	}

	// attribute tables select palette 0
	for i := 0x3c0; i < 0x400; i++ {
		p.Nametables[i] = 0x00
		p.Nametables[ppu.NametableSize+i] = 0x00
	}

	p.OAM.SetSprite(0, ppu.Sprite{Y: 30, Tile: 0x01, X: 40})

	// move the remaining sprites off screen
	for i := 1; i < ppu.NumSprites; i++ {
		p.OAM.SetSprite(i, ppu.Sprite{Y: 0xf0})
	}
}

func TestSpriteZeroHit(t *testing.T) {
	p, cart, _ := newPPU(t)
	prepareSpriteZero(t, p, cart)

	test.DemandSuccess(t, p.WriteRegister(ppu.PPUMASK, ppu.MaskShowBackground|ppu.MaskShowSprites))

	for p.Scanline < 30 {
		test.DemandSuccess(t, p.Step())
	}
	test.ExpectEquality(t, p.Status&ppu.StatusSpriteZeroHit, uint8(0))

	for p.Scanline < 33 {
		test.DemandSuccess(t, p.Step())
	}
	test.ExpectEquality(t, p.Status&ppu.StatusSpriteZeroHit, uint8(ppu.StatusSpriteZeroHit))
	test.ExpectEquality(t, p.Status&ppu.StatusSpriteOverflow, uint8(0))

	// the flag is cleared on the pre-render line
	for p.Scanline != ppu.PreRenderScanline {
		test.DemandSuccess(t, p.Step())
	}
	test.DemandSuccess(t, p.Step())
	test.DemandSuccess(t, p.Step())
	test.ExpectEquality(t, p.Status&ppu.StatusSpriteZeroHit, uint8(0))
}

func TestNoSpriteZeroHitWithoutBackground(t *testing.T) {
	p, cart, _ := newPPU(t)
	prepareSpriteZero(t, p, cart)

	test.DemandSuccess(t, p.WriteRegister(ppu.PPUMASK, ppu.MaskShowSprites))

	for p.Scanline < 40 {
		test.DemandSuccess(t, p.Step())
	}
	test.ExpectEquality(t, p.Status&ppu.StatusSpriteZeroHit, uint8(0))
}

func TestSpriteOverflow(t *testing.T) {
	p, _, _ := newPPU(t)

	// nine sprites on the same line
	for i := 0; i < ppu.NumSprites; i++ {
		y := uint8(0xf0)
		if i < 9 {
			y = 50
		}
		p.OAM.SetSprite(i, ppu.Sprite{Y: y, X: uint8(i * 8)})
	}

	test.DemandSuccess(t, p.WriteRegister(ppu.PPUMASK, ppu.MaskShowSprites))

	for p.Scanline < 52 {
		test.DemandSuccess(t, p.Step())
	}
	test.ExpectEquality(t, p.Status&ppu.StatusSpriteOverflow, uint8(ppu.StatusSpriteOverflow))
}

func TestVisualisation(t *testing.T) {
	p, cart, _ := newPPU(t)

	// tile 0 row 0: pixel values 3, 2, 1, 0, 0, 0, 0, 0
	cart.chr[0x0000] = 0xa0
	cart.chr[0x0008] = 0xc0

	setAddress(t, p, 0x3f00)
	for _, c := range []uint8{0x0f, 0x01, 0x02, 0x03} {
		test.DemandSuccess(t, p.WriteRegister(ppu.PPUDATA, c))
	}

	img := p.PatternTable(0, 0)
	test.ExpectEquality(t, img.Bounds().Dx(), ppu.PatternTableSize)
	test.ExpectEquality(t, img.RGBAAt(0, 0), ppu.Colors[0x03])
	test.ExpectEquality(t, img.RGBAAt(1, 0), ppu.Colors[0x02])
	test.ExpectEquality(t, img.RGBAAt(2, 0), ppu.Colors[0x01])
	test.ExpectEquality(t, img.RGBAAt(3, 0), ppu.Colors[0x0f])

	sheet := p.SpriteSheet()
	test.ExpectEquality(t, sheet.Bounds().Dx(), ppu.SpriteSheetSize)
	test.ExpectEquality(t, sheet.Bounds().Dy(), ppu.SpriteSheetSize)
}
