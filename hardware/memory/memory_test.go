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

package memory_test

import (
	"testing"

	"github.com/nesgopher/nesgopher/cartridgeloader"
	"github.com/nesgopher/nesgopher/environment"
	"github.com/nesgopher/nesgopher/hardware/input"
	"github.com/nesgopher/nesgopher/hardware/memory"
	"github.com/nesgopher/nesgopher/hardware/memory/cartridge"
	"github.com/nesgopher/nesgopher/test"
)

// chip records register accesses. reading a register has a side effect.
type chip struct {
	regs    [8]uint8
	lastReg uint16
	reads   int
}

func (c *chip) ReadRegister(address uint16) (uint8, error) {
	c.lastReg = address
	c.reads++
	return c.regs[address&0x07], nil
}

func (c *chip) WriteRegister(address uint16, data uint8) error {
	c.lastReg = address
	c.regs[address&0x07] = data
	return nil
}

func (c *chip) PeekRegister(address uint16) uint8 {
	return c.regs[address&0x07]
}

func newMemory(t *testing.T) (*memory.Memory, *chip) {
	t.Helper()

	env, err := environment.NewEnvironment("test", nil, nil)
	test.DemandSuccess(t, err)

	cart := cartridge.NewCartridge(env)

	// NROM with one PRG bank. reset vector is $8000
	data := []uint8{'N', 'E', 'S', 0x1a, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	prg := make([]uint8, 0x4000)
	prg[0] = 0xa9
	prg[0x3ffc] = 0x00
	prg[0x3ffd] = 0x80
	data = append(data, prg...)
	data = append(data, make([]uint8, 0x2000)...)
	test.DemandSuccess(t, cart.Attach(cartridgeloader.NewLoaderFromData("test", data)))

	c := &chip{}
	mem := memory.NewMemory(env, input.NewPorts(), cart)
	mem.Plumb(c)

	return mem, c
}

func TestRAMMirroring(t *testing.T) {
	mem, _ := newMemory(t)

	test.DemandSuccess(t, mem.Write(0x0001, 0x42))
	for _, a := range []uint16{0x0001, 0x0801, 0x1001, 0x1801} {
		d, err := mem.Read(a)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, d, uint8(0x42), a)
	}

	test.DemandSuccess(t, mem.Write16(0x1ffe, 0xbeef))
	v, err := mem.Read16(0x07fe)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint16(0xbeef))
	test.ExpectEquality(t, mem.Peek16(0x07fe), uint16(0xbeef))
}

func TestPPURegisters(t *testing.T) {
	mem, c := newMemory(t)

	test.DemandSuccess(t, mem.Write(0x3ffe, 0x11))
	test.ExpectEquality(t, c.lastReg, uint16(0x2006))
	test.ExpectEquality(t, c.regs[6], uint8(0x11))

	test.DemandSuccess(t, mem.Write(0x4014, 0x02))
	test.ExpectEquality(t, c.lastReg, uint16(0x4014))

	d, err := mem.Read(0x200e)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d, uint8(0x11))
	test.ExpectEquality(t, c.reads, 1)

	// peek does not use ReadRegister()
	test.ExpectEquality(t, mem.Peek(0x2006), uint8(0x11))
	test.ExpectEquality(t, c.reads, 1)
}

func TestOpenBus(t *testing.T) {
	mem, _ := newMemory(t)

	for _, a := range []uint16{0x4000, 0x4013, 0x4015, 0x4018, 0x401f} {
		test.ExpectSuccess(t, mem.Write(a, 0xff), a)
		d, err := mem.Read(a)
		test.ExpectSuccess(t, err, a)
		test.ExpectEquality(t, d, uint8(0), a)
	}
}

func TestControllers(t *testing.T) {
	mem, _ := newMemory(t)

	mem.Ports.SetButtons(input.Player1, uint8(input.A|input.B))
	mem.Ports.SetButtons(input.Player2, uint8(input.B))

	// either controller address strobes both ports
	test.DemandSuccess(t, mem.Write(0x4017, 0x01))

	// peek doesn't shift the register
	test.ExpectEquality(t, mem.Peek(0x4016), uint8(1))
	test.ExpectEquality(t, mem.Peek(0x4016), uint8(1))

	d, _ := mem.Read(0x4016)
	test.ExpectEquality(t, d, uint8(1))
	d, _ = mem.Read(0x4016)
	test.ExpectEquality(t, d, uint8(1))
	d, _ = mem.Read(0x4016)
	test.ExpectEquality(t, d, uint8(0))

	d, _ = mem.Read(0x4017)
	test.ExpectEquality(t, d, uint8(0))
	d, _ = mem.Read(0x4017)
	test.ExpectEquality(t, d, uint8(1))
}

func TestCartridge(t *testing.T) {
	mem, _ := newMemory(t)

	d, err := mem.Read(0x8000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d, uint8(0xa9))

	// single bank is mirrored
	test.ExpectEquality(t, mem.Peek(0xc000), uint8(0xa9))
	test.ExpectEquality(t, mem.Peek16(0xfffc), uint16(0x8000))

	// cartridge errors are passed through
	test.ExpectFailure(t, mem.Write(0x5000, 0x01))
}
