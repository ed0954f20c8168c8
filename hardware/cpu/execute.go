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
	"github.com/nesgopher/nesgopher/curated"
	"github.com/nesgopher/nesgopher/hardware/cpu/execution"
	"github.com/nesgopher/nesgopher/hardware/cpu/instructions"
	"github.com/nesgopher/nesgopher/hardware/cpu/registers"
	"github.com/nesgopher/nesgopher/hardware/memory/memorymap"
	"github.com/nesgopher/nesgopher/logger"
)

// set the zero and sign flags according to the register value.
func (mc *CPU) setZN(r registers.Register) {
	mc.Status.Zero = r.IsZero()
	mc.Status.Sign = r.IsNegative()
}

// executeInstruction fetches and executes the instruction at the PC. The
// cycles counter is set to the number of cycles taken by the instruction.
func (mc *CPU) executeInstruction() error {
	mc.LastResult.Reset()
	mc.LastResult.Address = mc.PC.Address()

	opcode, err := mc.read8PC()
	if err != nil {
		return err
	}

	defn := &instructions.Definitions[opcode]
	mc.LastResult.Defn = defn
	mc.LastResult.Cycles = defn.Cycles

	if defn.Undocumented {
		if !mc.env.Prefs.IllegalAsNOP.Get().(bool) {
			return curated.Errorf(IllegalOpcode, opcode, mc.LastResult.Address)
		}

		logger.Logf(mc.env, "cpu", "undocumented opcode %#02x at %#04x executed as NOP", opcode, mc.LastResult.Address)

		if defn.Operator == instructions.Illegal {
			mc.PC.Add(uint16(defn.Bytes - 1))
			mc.endInstruction()
			return nil
		}
	}

	address, value, err := mc.resolve(defn)
	if err != nil {
		return err
	}

	if mc.LastResult.PageFault && defn.PageSensitive {
		mc.LastResult.Cycles++
	}

	if err := mc.operate(defn, address, value); err != nil {
		return err
	}

	mc.endInstruction()

	return nil
}

func (mc *CPU) endInstruction() {
	mc.cycles = mc.LastResult.Cycles
	mc.InstructionCount++
}

// resolve the operand of the instruction according to the addressing mode.
// returns the effective address and, for instructions that read memory, the
// value at that address.
func (mc *CPU) resolve(defn *instructions.Definition) (uint16, uint8, error) {
	var address uint16
	var value uint8

	switch defn.AddressingMode {
	case instructions.Implied, instructions.Accumulator:
		// no operand
		return 0, 0, nil

	case instructions.Immediate:
		v, err := mc.read8PC()
		if err != nil {
			return 0, 0, err
		}
		mc.LastResult.InstructionData = uint16(v)
		return 0, v, nil

	case instructions.ZeroPage:
		v, err := mc.read8PC()
		if err != nil {
			return 0, 0, err
		}
		mc.LastResult.InstructionData = uint16(v)
		address = uint16(v)

	case instructions.ZeroPageIndexedX, instructions.ZeroPageIndexedY:
		v, err := mc.read8PC()
		if err != nil {
			return 0, 0, err
		}
		mc.LastResult.InstructionData = uint16(v)

		idx := mc.X
		if defn.AddressingMode == instructions.ZeroPageIndexedY {
			idx = mc.Y
		}

		// indexing wraps around in the zero page
		mc.acc8.Load(v)
		if carry, _ := mc.acc8.Add(idx.Value(), false); carry {
			mc.LastResult.CPUBug = execution.ZeroPageIndexBug
		}
		address = mc.acc8.Address()

	case instructions.Relative:
		v, err := mc.read8PC()
		if err != nil {
			return 0, 0, err
		}
		mc.LastResult.InstructionData = uint16(v)

		// the offset is signed and relative to the PC after the fetch
		address = mc.PC.Address() + uint16(int8(v))

	case instructions.Absolute:
		w, err := mc.read16PC()
		if err != nil {
			return 0, 0, err
		}
		mc.LastResult.InstructionData = w
		address = w

	case instructions.AbsoluteIndexedX, instructions.AbsoluteIndexedY:
		w, err := mc.read16PC()
		if err != nil {
			return 0, 0, err
		}
		mc.LastResult.InstructionData = w

		idx := mc.X
		if defn.AddressingMode == instructions.AbsoluteIndexedY {
			idx = mc.Y
		}

		address = w + idx.Address()
		mc.LastResult.PageFault = address&0xff00 != w&0xff00

	case instructions.Indirect:
		w, err := mc.read16PC()
		if err != nil {
			return 0, 0, err
		}
		mc.LastResult.InstructionData = w

		lo, err := mc.mem.Read(w)
		if err != nil {
			return 0, 0, err
		}

		// the high byte of the pointer is always read from the same page as
		// the low byte
		if w&0x00ff == 0x00ff {
			mc.LastResult.CPUBug = execution.JmpIndirectAddressingBug
		}
		hi, err := mc.mem.Read((w & 0xff00) | ((w + 1) & 0x00ff))
		if err != nil {
			return 0, 0, err
		}
		address = (uint16(hi) << 8) | uint16(lo)

	case instructions.IndexedIndirect:
		v, err := mc.read8PC()
		if err != nil {
			return 0, 0, err
		}
		mc.LastResult.InstructionData = uint16(v)

		address, err = mc.zeroPagePointer(v + mc.X.Value())
		if err != nil {
			return 0, 0, err
		}

	case instructions.IndirectIndexed:
		v, err := mc.read8PC()
		if err != nil {
			return 0, 0, err
		}
		mc.LastResult.InstructionData = uint16(v)

		base, err := mc.zeroPagePointer(v)
		if err != nil {
			return 0, 0, err
		}
		address = base + mc.Y.Address()
		mc.LastResult.PageFault = address&0xff00 != base&0xff00
	}

	if defn.Effect == instructions.Read || defn.Effect == instructions.RMW {
		var err error
		value, err = mc.mem.Read(address)
		if err != nil {
			return 0, 0, err
		}
	}

	return address, value, nil
}

// zeroPagePointer reads a pointer from the zero page. the pointer wraps
// around in the zero page.
func (mc *CPU) zeroPagePointer(zp uint8) (uint16, error) {
	lo, err := mc.mem.Read(uint16(zp))
	if err != nil {
		return 0, err
	}
	hi, err := mc.mem.Read(uint16(zp + 1))
	if err != nil {
		return 0, err
	}
	return (uint16(hi) << 8) | uint16(lo), nil
}

// branch to address if the condition is true. a successful branch takes one
// extra cycle and another if the branch crosses a page.
func (mc *CPU) branch(condition bool, address uint16) {
	if !condition {
		return
	}

	mc.LastResult.BranchSuccess = true
	mc.LastResult.Cycles++
	if address&0xff00 != mc.PC.Address()&0xff00 {
		mc.LastResult.PageFault = true
		mc.LastResult.Cycles++
	}
	mc.PC.Load(address)
}

// operate performs the operation of the instruction.
func (mc *CPU) operate(defn *instructions.Definition, address uint16, value uint8) error {
	// shift, rotate and increment instructions operate either on the
	// accumulator or on the value read from memory
	r := &mc.acc8
	if defn.AddressingMode == instructions.Implied || defn.AddressingMode == instructions.Accumulator {
		r = &mc.A
	} else {
		mc.acc8.Load(value)
	}

	switch defn.Operator {
	case instructions.Nop:
		// does nothing

	case instructions.Clc:
		mc.Status.Carry = false

	case instructions.Cld:
		mc.Status.DecimalMode = false

	case instructions.Cli:
		mc.Status.InterruptDisable = false

	case instructions.Clv:
		mc.Status.Overflow = false

	case instructions.Sec:
		mc.Status.Carry = true

	case instructions.Sed:
		mc.Status.DecimalMode = true

	case instructions.Sei:
		mc.Status.InterruptDisable = true

	case instructions.Pha:
		return mc.push(mc.A.Value())

	case instructions.Php:
		sr := mc.Status
		sr.Break = true
		return mc.push(sr.Value())

	case instructions.Pla:
		v, err := mc.pop()
		if err != nil {
			return err
		}
		mc.A.Load(v)
		mc.setZN(mc.A)

	case instructions.Plp:
		v, err := mc.pop()
		if err != nil {
			return err
		}
		mc.Status.Load(v)

	case instructions.Tax:
		mc.X.Load(mc.A.Value())
		mc.setZN(mc.X)

	case instructions.Tay:
		mc.Y.Load(mc.A.Value())
		mc.setZN(mc.Y)

	case instructions.Tsx:
		mc.X.Load(mc.SP.Value())
		mc.setZN(mc.X)

	case instructions.Txa:
		mc.A.Load(mc.X.Value())
		mc.setZN(mc.A)

	case instructions.Txs:
		mc.SP.Load(mc.X.Value())

	case instructions.Tya:
		mc.A.Load(mc.Y.Value())
		mc.setZN(mc.A)

	case instructions.Lda:
		mc.A.Load(value)
		mc.setZN(mc.A)

	case instructions.Ldx:
		mc.X.Load(value)
		mc.setZN(mc.X)

	case instructions.Ldy:
		mc.Y.Load(value)
		mc.setZN(mc.Y)

	case instructions.Sta:
		return mc.mem.Write(address, mc.A.Value())

	case instructions.Stx:
		return mc.mem.Write(address, mc.X.Value())

	case instructions.Sty:
		return mc.mem.Write(address, mc.Y.Value())

	case instructions.Ora:
		mc.A.ORA(value)
		mc.setZN(mc.A)

	case instructions.And:
		mc.A.AND(value)
		mc.setZN(mc.A)

	case instructions.Eor:
		mc.A.EOR(value)
		mc.setZN(mc.A)

	case instructions.Adc:
		mc.Status.Carry, mc.Status.Overflow = mc.A.Add(value, mc.Status.Carry)
		mc.setZN(mc.A)

	case instructions.Sbc:
		mc.Status.Carry, mc.Status.Overflow = mc.A.Subtract(value, mc.Status.Carry)
		mc.setZN(mc.A)

	case instructions.Cmp:
		mc.compare(mc.A, value)

	case instructions.Cpx:
		mc.compare(mc.X, value)

	case instructions.Cpy:
		mc.compare(mc.Y, value)

	case instructions.Bit:
		mc.acc8.Load(value)
		mc.Status.Sign = mc.acc8.IsNegative()
		mc.Status.Overflow = mc.acc8.IsBitV()
		mc.acc8.AND(mc.A.Value())
		mc.Status.Zero = mc.acc8.IsZero()

	case instructions.Asl:
		mc.Status.Carry = r.ASL()
		mc.setZN(*r)

	case instructions.Lsr:
		mc.Status.Carry = r.LSR()
		mc.setZN(*r)

	case instructions.Rol:
		mc.Status.Carry = r.ROL(mc.Status.Carry)
		mc.setZN(*r)

	case instructions.Ror:
		mc.Status.Carry = r.ROR(mc.Status.Carry)
		mc.setZN(*r)

	case instructions.Inc:
		r.Add(1, false)
		mc.setZN(*r)

	case instructions.Dec:
		r.Subtract(1, true)
		mc.setZN(*r)

	case instructions.Inx:
		mc.X.Add(1, false)
		mc.setZN(mc.X)

	case instructions.Iny:
		mc.Y.Add(1, false)
		mc.setZN(mc.Y)

	case instructions.Dex:
		mc.X.Subtract(1, true)
		mc.setZN(mc.X)

	case instructions.Dey:
		mc.Y.Subtract(1, true)
		mc.setZN(mc.Y)

	case instructions.Bcc:
		mc.branch(!mc.Status.Carry, address)

	case instructions.Bcs:
		mc.branch(mc.Status.Carry, address)

	case instructions.Beq:
		mc.branch(mc.Status.Zero, address)

	case instructions.Bne:
		mc.branch(!mc.Status.Zero, address)

	case instructions.Bmi:
		mc.branch(mc.Status.Sign, address)

	case instructions.Bpl:
		mc.branch(!mc.Status.Sign, address)

	case instructions.Bvc:
		mc.branch(!mc.Status.Overflow, address)

	case instructions.Bvs:
		mc.branch(mc.Status.Overflow, address)

	case instructions.Jmp:
		mc.PC.Load(address)

	case instructions.Jsr:
		// the return address pushed to the stack is the last byte of the
		// JSR instruction
		if err := mc.push16(mc.PC.Address() - 1); err != nil {
			return err
		}
		mc.PC.Load(address)

	case instructions.Rts:
		rtn, err := mc.pop16()
		if err != nil {
			return err
		}
		mc.PC.Load(rtn + 1)

	case instructions.Brk:
		// the byte after the BRK opcode is padding
		mc.PC.Add(1)
		if err := mc.push16(mc.PC.Address()); err != nil {
			return err
		}

		sr := mc.Status
		sr.Break = true
		if err := mc.push(sr.Value()); err != nil {
			return err
		}
		mc.Status.InterruptDisable = true

		pc, err := mc.read16(memorymap.IRQ)
		if err != nil {
			return err
		}
		mc.PC.Load(pc)

	case instructions.Rti:
		v, err := mc.pop()
		if err != nil {
			return err
		}
		mc.Status.Load(v)

		rtn, err := mc.pop16()
		if err != nil {
			return err
		}
		mc.PC.Load(rtn)
		mc.Status.Break = false
	}

	if defn.Effect == instructions.RMW {
		return mc.mem.Write(address, mc.acc8.Value())
	}

	return nil
}

// compare sets the flags as though value has been subtracted from the
// register.
func (mc *CPU) compare(reg registers.Register, value uint8) {
	mc.acc8.Load(reg.Value())
	mc.Status.Carry, _ = mc.acc8.Subtract(value, true)
	mc.setZN(mc.acc8)
}
