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

package cpu_test

import (
	"fmt"
	"testing"

	"github.com/nesgopher/nesgopher/curated"
	"github.com/nesgopher/nesgopher/environment"
	"github.com/nesgopher/nesgopher/hardware/cpu"
	"github.com/nesgopher/nesgopher/hardware/cpu/execution"
	"github.com/nesgopher/nesgopher/test"
)

// mockMem is a flat 64KB address space satisfying the bus.CPUBus interface.
type mockMem struct {
	data [0x10000]uint8
}

func (mem *mockMem) Read(address uint16) (uint8, error) {
	return mem.data[address], nil
}

func (mem *mockMem) Write(address uint16, data uint8) error {
	mem.data[address] = data
	return nil
}

// putInstructions places a sequence of bytes into memory starting at origin.
// returns the address after the last byte.
func (mem *mockMem) putInstructions(origin uint16, bytes ...uint8) uint16 {
	for i, b := range bytes {
		mem.data[origin+uint16(i)] = b
	}
	return origin + uint16(len(bytes))
}

func (mem *mockMem) assert(t *testing.T, address uint16, value uint8) {
	t.Helper()
	if mem.data[address] != value {
		t.Errorf("memory assert failed (%#02x - wanted %#02x at address %#04x)", mem.data[address], value, address)
	}
}

// the program origin set in the reset vector of every test CPU
const origin = uint16(0x8000)

func newCPU(t *testing.T) (*cpu.CPU, *mockMem) {
	t.Helper()
	mc, mem, _ := newCPUWithEnv(t)
	return mc, mem
}

// newCPUWithEnv also returns the environment so that the preferences can be
// changed.
func newCPUWithEnv(t *testing.T) (*cpu.CPU, *mockMem, *environment.Environment) {
	t.Helper()

	env, err := environment.NewEnvironment(environment.MainEmulation, nil, nil)
	test.DemandSuccess(t, err)
	env.Normalise()

	mem := &mockMem{}
	mem.putInstructions(0xfffc, uint8(origin&0xff), uint8(origin>>8))

	mc := cpu.NewCPU(env, mem)
	test.DemandSuccess(t, mc.Reset())

	return mc, mem, env
}

func step(t *testing.T, mc *cpu.CPU) {
	t.Helper()
	test.DemandSuccess(t, mc.ExecuteInstruction())
}

func TestReset(t *testing.T) {
	mc, _ := newCPU(t)

	test.ExpectEquality(t, mc.PC.Address(), origin)
	test.ExpectEquality(t, mc.SP.Value(), uint8(0xff))
	test.ExpectEquality(t, mc.A.Value(), uint8(0))
	test.ExpectEquality(t, mc.Status.String(), "sv-bdizc")
	test.ExpectEquality(t, mc.Status.Value(), uint8(0x20))
	test.ExpectEquality(t, mc.Cycles(), 8)
	test.ExpectFailure(t, mc.AtBoundary())
	test.ExpectEquality(t, mc.String(), "PC=8000 A=00 X=00 Y=00 SP=ff SR=sv-bdizc")
}

func TestRandomState(t *testing.T) {
	mc, _, env := newCPUWithEnv(t)
	test.DemandSuccess(t, env.Prefs.RandomState.Set(true))
	test.DemandSuccess(t, mc.Reset())

	// registers that are not randomised
	test.ExpectEquality(t, mc.PC.Address(), origin)
	test.ExpectEquality(t, mc.SP.Value(), uint8(0xff))
	test.ExpectEquality(t, mc.Status.Value(), uint8(0x20))
}

func TestClock(t *testing.T) {
	mc, mem := newCPU(t)
	mem.putInstructions(origin, 0xa9, 0x01, 0xea)

	// the reset sequence
	for i := 0; i < 8; i++ {
		fresh, err := mc.Clock()
		test.ExpectSuccess(t, err)
		test.ExpectFailure(t, fresh)
	}
	test.ExpectSuccess(t, mc.AtBoundary())

	// LDA #$01 takes two cycles
	fresh, err := mc.Clock()
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, fresh)
	test.ExpectEquality(t, mc.A.Value(), uint8(0x01))
	test.ExpectEquality(t, mc.LastResult.Cycles, 2)

	fresh, err = mc.Clock()
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, fresh)

	// NOP
	fresh, err = mc.Clock()
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, fresh)
	test.ExpectEquality(t, mc.PC.Address(), origin+3)
	test.ExpectEquality(t, mc.InstructionCount, uint64(2))
}

func TestLoadImmediate(t *testing.T) {
	mc, mem := newCPU(t)
	mem.putInstructions(origin, 0xa9, 0x00)

	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), uint8(0))
	test.ExpectSuccess(t, mc.Status.Zero)
	test.ExpectFailure(t, mc.Status.Sign)
	test.ExpectEquality(t, mc.LastResult.Cycles, 2)
	test.ExpectEquality(t, mc.PC.Address(), origin+2)
	test.ExpectEquality(t, mc.LastResult.String(), "$8000 LDA #$00")
}

func TestAddWithCarry(t *testing.T) {
	mc, mem := newCPU(t)
	mem.putInstructions(origin, 0xa9, 0x50, 0x69, 0x50)

	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), uint8(0xa0))
	test.ExpectFailure(t, mc.Status.Carry)
	test.ExpectSuccess(t, mc.Status.Overflow)
	test.ExpectSuccess(t, mc.Status.Sign)
	test.ExpectFailure(t, mc.Status.Zero)
}

func TestSubtractWithCarry(t *testing.T) {
	mc, mem := newCPU(t)

	// SEC; LDA #$50; SBC #$f0
	mem.putInstructions(origin, 0x38, 0xa9, 0x50, 0xe9, 0xf0)
	step(t, mc)
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), uint8(0x60))
	test.ExpectFailure(t, mc.Status.Carry)
	test.ExpectFailure(t, mc.Status.Overflow)

	// SEC; LDA #$50; SBC #$b0
	mc, mem = newCPU(t)
	mem.putInstructions(origin, 0x38, 0xa9, 0x50, 0xe9, 0xb0)
	step(t, mc)
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), uint8(0xa0))
	test.ExpectFailure(t, mc.Status.Carry)
	test.ExpectSuccess(t, mc.Status.Overflow)
}

func TestDecimalModeIgnored(t *testing.T) {
	mc, mem := newCPU(t)

	// SED; CLC; LDA #$09; ADC #$01
	mem.putInstructions(origin, 0xf8, 0x18, 0xa9, 0x09, 0x69, 0x01)
	for i := 0; i < 4; i++ {
		step(t, mc)
	}
	test.ExpectSuccess(t, mc.Status.DecimalMode)
	test.ExpectEquality(t, mc.A.Value(), uint8(0x0a))
}

func TestCompare(t *testing.T) {
	mc, mem := newCPU(t)

	// LDA #$10; CMP #$10; CMP #$20; CMP #$05
	mem.putInstructions(origin, 0xa9, 0x10, 0xc9, 0x10, 0xc9, 0x20, 0xc9, 0x05)
	step(t, mc)

	step(t, mc)
	test.ExpectEquality(t, mc.Status.String(), "sv-bdiZC")
	step(t, mc)
	test.ExpectEquality(t, mc.Status.String(), "Sv-bdizc")
	step(t, mc)
	test.ExpectEquality(t, mc.Status.String(), "sv-bdizC")
}

func TestBit(t *testing.T) {
	mc, mem := newCPU(t)
	mem.data[0x0010] = 0xc0

	// LDA #$01; BIT $10
	mem.putInstructions(origin, 0xa9, 0x01, 0x24, 0x10)
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.Status.String(), "SV-bdiZc")
	test.ExpectEquality(t, mc.A.Value(), uint8(0x01))
}

func TestTransfers(t *testing.T) {
	mc, mem := newCPU(t)

	// LDX #$80; TXA; TAY; LDX #$00; TXS; TSX
	mem.putInstructions(origin, 0xa2, 0x80, 0x8a, 0xa8, 0xa2, 0x00, 0x9a, 0xba)
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), uint8(0x80))
	test.ExpectSuccess(t, mc.Status.Sign)
	step(t, mc)
	test.ExpectEquality(t, mc.Y.Value(), uint8(0x80))
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.SP.Value(), uint8(0x00))

	// TXS does not affect the flags
	test.ExpectSuccess(t, mc.Status.Zero)
	step(t, mc)
	test.ExpectEquality(t, mc.X.Value(), uint8(0x00))
}

func TestReadModifyWrite(t *testing.T) {
	mc, mem := newCPU(t)
	mem.data[0x0010] = 0x81

	// ASL $10; LSR $10; INC $10; DEC $10; DEC $10
	mem.putInstructions(origin, 0x06, 0x10, 0x46, 0x10, 0xe6, 0x10, 0xc6, 0x10, 0xc6, 0x10)

	step(t, mc)
	mem.assert(t, 0x0010, 0x02)
	test.ExpectSuccess(t, mc.Status.Carry)
	test.ExpectEquality(t, mc.LastResult.Cycles, 5)

	step(t, mc)
	mem.assert(t, 0x0010, 0x01)
	test.ExpectFailure(t, mc.Status.Carry)

	step(t, mc)
	mem.assert(t, 0x0010, 0x02)

	step(t, mc)
	step(t, mc)
	mem.assert(t, 0x0010, 0x00)
	test.ExpectSuccess(t, mc.Status.Zero)

	// the accumulator is untouched
	test.ExpectEquality(t, mc.A.Value(), uint8(0))
}

func TestAccumulatorShifts(t *testing.T) {
	mc, mem := newCPU(t)

	// LDA #$81; ASL A; ROL A; ROR A; LSR A
	mem.putInstructions(origin, 0xa9, 0x81, 0x0a, 0x2a, 0x6a, 0x4a)
	step(t, mc)

	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), uint8(0x02))
	test.ExpectSuccess(t, mc.Status.Carry)
	test.ExpectEquality(t, mc.LastResult.String(), "$8002 ASL A")

	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), uint8(0x05))
	test.ExpectFailure(t, mc.Status.Carry)

	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), uint8(0x02))
	test.ExpectSuccess(t, mc.Status.Carry)

	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), uint8(0x01))
	test.ExpectFailure(t, mc.Status.Carry)
}

func TestStore(t *testing.T) {
	mc, mem := newCPU(t)

	// LDA #$aa; LDX #$02; LDY #$04; STA $0200,X; STX $10; STY $0300
	mem.putInstructions(origin, 0xa9, 0xaa, 0xa2, 0x02, 0xa0, 0x04, 0x9d, 0x00, 0x02, 0x86, 0x10, 0x8c, 0x00, 0x03)
	for i := 0; i < 6; i++ {
		step(t, mc)
	}
	mem.assert(t, 0x0202, 0xaa)
	mem.assert(t, 0x0010, 0x02)
	mem.assert(t, 0x0300, 0x04)
}

func TestZeroPageWrap(t *testing.T) {
	mc, mem := newCPU(t)
	mem.data[0x007f] = 0x42

	// LDX #$ff; LDA $80,X
	mem.putInstructions(origin, 0xa2, 0xff, 0xb5, 0x80)
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), uint8(0x42))
}

func TestIndirectModes(t *testing.T) {
	mc, mem := newCPU(t)

	// pointer at $ff wraps to $00 for the high byte
	mem.data[0x00ff] = 0x34
	mem.data[0x0000] = 0x12
	mem.data[0x1234] = 0x55
	mem.data[0x1244] = 0x66

	// LDX #$0f; LDA ($f0,X); LDY #$10; LDA ($ff),Y
	mem.putInstructions(origin, 0xa2, 0x0f, 0xa1, 0xf0, 0xa0, 0x10, 0xb1, 0xff)
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), uint8(0x55))
	test.ExpectEquality(t, mc.LastResult.Cycles, 6)

	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), uint8(0x66))
	test.ExpectEquality(t, mc.LastResult.Cycles, 5)
	test.ExpectFailure(t, mc.LastResult.PageFault)
}

func TestPageFault(t *testing.T) {
	mc, mem := newCPU(t)

	// LDX #$20; LDA $80f0,X; STA $80f0,X
	mem.putInstructions(origin, 0xa2, 0x20, 0xbd, 0xf0, 0x80, 0x9d, 0xf0, 0x80)
	step(t, mc)

	step(t, mc)
	test.ExpectSuccess(t, mc.LastResult.PageFault)
	test.ExpectEquality(t, mc.LastResult.Cycles, 5)

	// store instructions are not page sensitive
	step(t, mc)
	test.ExpectSuccess(t, mc.LastResult.PageFault)
	test.ExpectEquality(t, mc.LastResult.Cycles, 5)
}

func TestBranching(t *testing.T) {
	mc, mem := newCPU(t)

	// LDA #$01; BEQ +2 (not taken); BNE +2 (taken)
	mem.putInstructions(origin, 0xa9, 0x01, 0xf0, 0x02, 0xd0, 0x02)
	step(t, mc)

	step(t, mc)
	test.ExpectFailure(t, mc.LastResult.BranchSuccess)
	test.ExpectEquality(t, mc.LastResult.Cycles, 2)
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x8004))

	step(t, mc)
	test.ExpectSuccess(t, mc.LastResult.BranchSuccess)
	test.ExpectEquality(t, mc.LastResult.Cycles, 3)
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x8008))
}

func TestBranchAcrossPage(t *testing.T) {
	mc, mem := newCPU(t)

	// JMP $80f0
	mem.putInstructions(origin, 0x4c, 0xf0, 0x80)

	// BNE +$20
	mem.putInstructions(0x80f0, 0xd0, 0x20)

	step(t, mc)
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x80f0))

	step(t, mc)
	test.ExpectSuccess(t, mc.LastResult.BranchSuccess)
	test.ExpectEquality(t, mc.LastResult.Cycles, 4)
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x8112))
	test.ExpectEquality(t, mc.LastResult.String(), "$80f0 BNE $8112")

	// backwards branch to the start of the same instruction
	mem.putInstructions(0x8112, 0xd0, 0xfe)
	step(t, mc)
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x8112))
	test.ExpectEquality(t, mc.LastResult.Cycles, 3)
}

func TestJMPIndirectBug(t *testing.T) {
	mc, mem := newCPU(t)
	mem.data[0x02ff] = 0x34
	mem.data[0x0200] = 0x12
	mem.data[0x0300] = 0x56

	// JMP ($02ff)
	mem.putInstructions(origin, 0x6c, 0xff, 0x02)
	step(t, mc)
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x1234))
	test.ExpectEquality(t, mc.LastResult.CPUBug, execution.JmpIndirectAddressingBug)
	test.ExpectEquality(t, mc.LastResult.Cycles, 5)
}

func TestSubroutine(t *testing.T) {
	mc, mem := newCPU(t)

	// JSR $9000
	mem.putInstructions(origin, 0x20, 0x00, 0x90)

	// RTS
	mem.putInstructions(0x9000, 0x60)

	step(t, mc)
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x9000))
	test.ExpectEquality(t, mc.SP.Value(), uint8(0xfd))
	mem.assert(t, 0x01ff, 0x80)
	mem.assert(t, 0x01fe, 0x02)

	step(t, mc)
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x8003))
	test.ExpectEquality(t, mc.SP.Value(), uint8(0xff))
}

func TestBreakAndReturn(t *testing.T) {
	mc, mem := newCPU(t)
	mem.putInstructions(0xfffe, 0x00, 0x90)

	// SEC; BRK
	mem.putInstructions(origin, 0x38, 0x00, 0xff)

	// RTI
	mem.putInstructions(0x9000, 0x40)

	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x9000))
	test.ExpectSuccess(t, mc.Status.InterruptDisable)
	test.ExpectFailure(t, mc.Status.Break)
	mem.assert(t, 0x01ff, 0x80)
	mem.assert(t, 0x01fe, 0x03)
	mem.assert(t, 0x01fd, 0x31)

	step(t, mc)
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x8003))
	test.ExpectEquality(t, mc.Status.String(), "sv-bdizC")
}

func TestStackInstructions(t *testing.T) {
	mc, mem := newCPU(t)

	// LDA #$11; PHA; LDA #$22; PHA; PLA; PLA; PHP; PLP
	mem.putInstructions(origin, 0xa9, 0x11, 0x48, 0xa9, 0x22, 0x48, 0x68, 0x68, 0x08, 0x28)
	for i := 0; i < 4; i++ {
		step(t, mc)
	}
	test.ExpectEquality(t, mc.SP.Value(), uint8(0xfd))

	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), uint8(0x22))
	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), uint8(0x11))
	test.ExpectEquality(t, mc.SP.Value(), uint8(0xff))

	// PHP pushes the break flag
	step(t, mc)
	mem.assert(t, 0x01ff, 0x30)

	// PLP loads the flags as popped
	step(t, mc)
	test.ExpectSuccess(t, mc.Status.Break)
}

func TestStackOverflow(t *testing.T) {
	mc, mem := newCPU(t)

	for i := 0; i < 256; i++ {
		mem.putInstructions(origin+uint16(i), 0x48)
	}

	for i := 0; i < 255; i++ {
		test.DemandSuccess(t, mc.ExecuteInstruction())
	}
	test.ExpectEquality(t, mc.SP.Value(), uint8(0x00))

	err := mc.ExecuteInstruction()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, cpu.StackOverflow))
}

func TestStackUnderflow(t *testing.T) {
	mc, mem := newCPU(t)

	// PLA
	mem.putInstructions(origin, 0x68)

	err := mc.ExecuteInstruction()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, cpu.StackUnderflow))
}

func TestIRQ(t *testing.T) {
	mc, mem := newCPU(t)
	mem.putInstructions(0xfffe, 0x00, 0x90)
	mc.Status.Carry = true

	test.DemandSuccess(t, mc.IRQ())
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x9000))
	test.ExpectSuccess(t, mc.Status.InterruptDisable)
	test.ExpectEquality(t, mc.SP.Value(), uint8(0xfc))
	mem.assert(t, 0x01ff, 0x80)
	mem.assert(t, 0x01fe, 0x00)
	mem.assert(t, 0x01fd, 0x21)

	// reset cycles plus interrupt cycles
	test.ExpectEquality(t, mc.Cycles(), 15)

	// IRQ is ignored when interrupts are disabled
	test.DemandSuccess(t, mc.IRQ())
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x9000))
	test.ExpectEquality(t, mc.SP.Value(), uint8(0xfc))
}

func TestNMI(t *testing.T) {
	mc, mem := newCPU(t)
	mem.putInstructions(0xfffa, 0x00, 0xa0)
	mc.Status.InterruptDisable = true

	test.DemandSuccess(t, mc.NMI())
	test.ExpectEquality(t, mc.PC.Address(), uint16(0xa000))
	test.ExpectSuccess(t, mc.Status.Break)
	test.ExpectSuccess(t, mc.Status.InterruptDisable)

	// pushed flags have break clear and unused set
	mem.assert(t, 0x01fd, 0x24)
	test.ExpectEquality(t, mc.Cycles(), 16)
}

func TestIllegalOpcode(t *testing.T) {
	mc, mem, env := newCPUWithEnv(t)
	mem.putInstructions(origin, 0x02, 0x0c, 0x00, 0x02, 0xea)

	err := mc.ExecuteInstruction()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, cpu.IllegalOpcode))
	test.ExpectEquality(t, err.Error(), fmt.Sprintf("cpu: illegal opcode %#02x at %#04x", 0x02, origin))

	// undocumented opcodes as NOPs
	test.DemandSuccess(t, env.Prefs.IllegalAsNOP.Set(true))
	test.DemandSuccess(t, mc.Reset())

	step(t, mc)
	test.ExpectEquality(t, mc.PC.Address(), origin+1)
	test.ExpectEquality(t, mc.LastResult.Cycles, 2)

	// an undocumented NOP with an absolute operand
	step(t, mc)
	test.ExpectEquality(t, mc.PC.Address(), origin+4)
	test.ExpectEquality(t, mc.LastResult.Cycles, 4)

	step(t, mc)
	test.ExpectEquality(t, mc.PC.Address(), origin+5)
}
