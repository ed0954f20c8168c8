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

package cpu

import (
	"fmt"

	"github.com/nesgopher/nesgopher/curated"
	"github.com/nesgopher/nesgopher/environment"
	"github.com/nesgopher/nesgopher/hardware/cpu/execution"
	"github.com/nesgopher/nesgopher/hardware/cpu/registers"
	"github.com/nesgopher/nesgopher/hardware/memory/bus"
	"github.com/nesgopher/nesgopher/hardware/memory/memorymap"
	"github.com/nesgopher/nesgopher/logger"
)

// Sentinal error patterns.
const (
	IllegalOpcode  = "cpu: illegal opcode %#02x at %#04x"
	StackOverflow  = "cpu: stack overflow at %#04x"
	StackUnderflow = "cpu: stack underflow at %#04x"
)

// the base of the stack page
const stackOrigin = uint16(0x0100)

// the number of cycles taken by the interrupt sequences
const (
	resetCycles = 8
	irqCycles   = 7
	nmiCycles   = 8
)

// CPU implements the 2A03 as found in the NES. Register logic is implemented
// by the Register type in the registers sub-package.
type CPU struct {
	env *environment.Environment

	PC     registers.ProgramCounter
	A      registers.Register
	X      registers.Register
	Y      registers.Register
	SP     registers.Register
	Status registers.StatusRegister

	// some operations only need an accumulator
	acc8 registers.Register

	mem bus.CPUBus

	// the number of cycles remaining before the next instruction is fetched
	cycles int

	// last result. the address field is guaranteed to be always valid except
	// when the CPU has just been reset
	LastResult execution.Result

	// the number of instructions executed since reset
	InstructionCount uint64
}

// NewCPU is the preferred method of initialisation for the CPU structure. The
// CPU must be Reset() before use.
func NewCPU(env *environment.Environment, mem bus.CPUBus) *CPU {
	return &CPU{
		env:    env,
		mem:    mem,
		PC:     registers.NewProgramCounter(0),
		A:      registers.NewRegister(0, "A"),
		X:      registers.NewRegister(0, "X"),
		Y:      registers.NewRegister(0, "Y"),
		SP:     registers.NewStackPointer(0),
		Status: registers.NewStatusRegister(),
		acc8:   registers.NewRegister(0, "accumulator"),
	}
}

// Plumb a new CPUBus into the CPU.
func (mc *CPU) Plumb(mem bus.CPUBus) {
	mc.mem = mem
}

func (mc *CPU) String() string {
	return fmt.Sprintf("%s=%s %s=%s %s=%s %s=%s %s=%s %s=%s",
		mc.PC.Label(), mc.PC, mc.A.Label(), mc.A,
		mc.X.Label(), mc.X, mc.Y.Label(), mc.Y,
		mc.SP.Label(), mc.SP, mc.Status.Label(), mc.Status)
}

// Reset reinitialises all registers and loads the PC with the reset vector.
// The reset sequence takes eight cycles.
func (mc *CPU) Reset() error {
	mc.LastResult.Reset()
	mc.InstructionCount = 0

	mc.Status.Reset()
	mc.SP.Load(0xff)

	if mc.env.Prefs.RandomState.Get().(bool) {
		var r [3]uint8
		mc.env.Random.Fill(r[:])
		mc.A.Load(r[0])
		mc.X.Load(r[1])
		mc.Y.Load(r[2])
	} else {
		mc.A.Load(0)
		mc.X.Load(0)
		mc.Y.Load(0)
	}

	pc, err := mc.read16(memorymap.Reset)
	if err != nil {
		return err
	}
	mc.PC.Load(pc)
	mc.cycles = resetCycles

	logger.Logf(mc.env, "cpu", "reset vector %#04x", pc)

	return nil
}

// AtBoundary returns true if the CPU has no outstanding cycles. The next call
// to Clock() will fetch a new instruction.
func (mc *CPU) AtBoundary() bool {
	return mc.cycles == 0
}

// Cycles returns the number of cycles outstanding before the next
// instruction is fetched.
func (mc *CPU) Cycles() int {
	return mc.cycles
}

// Clock advances the CPU by one cycle. If there are no outstanding cycles
// then the next instruction is executed and the cycle counter is loaded with
// the number of cycles the instruction takes.
//
// Returns true if the call fetched a new instruction.
func (mc *CPU) Clock() (bool, error) {
	fresh := mc.cycles == 0
	if fresh {
		if err := mc.executeInstruction(); err != nil {
			return true, err
		}
	}
	mc.cycles--
	return fresh, nil
}

// ExecuteInstruction discards any outstanding cycles and executes the next
// instruction in its entirety.
func (mc *CPU) ExecuteInstruction() error {
	mc.cycles = 0
	err := mc.executeInstruction()
	mc.cycles = 0
	return err
}

// IRQ is the maskable interrupt. It does nothing if the interrupt disable
// flag is set.
func (mc *CPU) IRQ() error {
	if mc.Status.InterruptDisable {
		return nil
	}

	if err := mc.interrupt(); err != nil {
		return err
	}

	pc, err := mc.read16(memorymap.IRQ)
	if err != nil {
		return err
	}
	mc.PC.Load(pc)
	mc.cycles += irqCycles

	return nil
}

// NMI is the non-maskable interrupt.
func (mc *CPU) NMI() error {
	if err := mc.interrupt(); err != nil {
		return err
	}

	mc.Status.Break = true

	pc, err := mc.read16(memorymap.NMI)
	if err != nil {
		return err
	}
	mc.PC.Load(pc)
	mc.cycles += nmiCycles

	return nil
}

// push the PC and the status register in the manner of a hardware
// interrupt. the break flag is clear in the pushed value.
func (mc *CPU) interrupt() error {
	if err := mc.push16(mc.PC.Address()); err != nil {
		return err
	}

	sr := mc.Status
	sr.Break = false
	if err := mc.push(sr.Value()); err != nil {
		return err
	}

	mc.Status.InterruptDisable = true

	return nil
}

func (mc *CPU) push(data uint8) error {
	if mc.SP.IsZero() {
		return curated.Errorf(StackOverflow, mc.PC.Address())
	}
	if err := mc.mem.Write(stackOrigin|mc.SP.Address(), data); err != nil {
		return err
	}
	mc.SP.Subtract(1, true)
	return nil
}

// push16 pushes the high byte first.
func (mc *CPU) push16(data uint16) error {
	if err := mc.push(uint8(data >> 8)); err != nil {
		return err
	}
	return mc.push(uint8(data))
}

func (mc *CPU) pop() (uint8, error) {
	if mc.SP.Value() == 0xff {
		return 0, curated.Errorf(StackUnderflow, mc.PC.Address())
	}
	mc.SP.Add(1, false)
	return mc.mem.Read(stackOrigin | mc.SP.Address())
}

// pop16 pops the low byte first.
func (mc *CPU) pop16() (uint16, error) {
	lo, err := mc.pop()
	if err != nil {
		return 0, err
	}
	hi, err := mc.pop()
	if err != nil {
		return 0, err
	}
	return (uint16(hi) << 8) | uint16(lo), nil
}

func (mc *CPU) read16(address uint16) (uint16, error) {
	lo, err := mc.mem.Read(address)
	if err != nil {
		return 0, err
	}
	hi, err := mc.mem.Read(address + 1)
	if err != nil {
		return 0, err
	}
	return (uint16(hi) << 8) | uint16(lo), nil
}

// read the byte pointed to by the PC and advance the PC.
func (mc *CPU) read8PC() (uint8, error) {
	v, err := mc.mem.Read(mc.PC.Address())
	if err != nil {
		return 0, err
	}
	mc.PC.Add(1)
	return v, nil
}

// read the word pointed to by the PC and advance the PC.
func (mc *CPU) read16PC() (uint16, error) {
	v, err := mc.read16(mc.PC.Address())
	if err != nil {
		return 0, err
	}
	mc.PC.Add(2)
	return v, nil
}
