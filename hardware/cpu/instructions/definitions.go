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

package instructions

type documented struct {
	op     Operator
	mode   AddressingMode
	cycles int

	// one extra cycle when indexing crosses a page boundary
	pageSensitive bool
}

// the documented instruction set, keyed by opcode
var instructionSet = map[uint8]documented{
	0x69: {Adc, Immediate, 2, false},
	0x65: {Adc, ZeroPage, 3, false},
	0x75: {Adc, ZeroPageIndexedX, 4, false},
	0x6d: {Adc, Absolute, 4, false},
	0x7d: {Adc, AbsoluteIndexedX, 4, true},
	0x79: {Adc, AbsoluteIndexedY, 4, true},
	0x61: {Adc, IndexedIndirect, 6, false},
	0x71: {Adc, IndirectIndexed, 5, true},

	0x29: {And, Immediate, 2, false},
	0x25: {And, ZeroPage, 3, false},
	0x35: {And, ZeroPageIndexedX, 4, false},
	0x2d: {And, Absolute, 4, false},
	0x3d: {And, AbsoluteIndexedX, 4, true},
	0x39: {And, AbsoluteIndexedY, 4, true},
	0x21: {And, IndexedIndirect, 6, false},
	0x31: {And, IndirectIndexed, 5, true},

	0x0a: {Asl, Accumulator, 2, false},
	0x06: {Asl, ZeroPage, 5, false},
	0x16: {Asl, ZeroPageIndexedX, 6, false},
	0x0e: {Asl, Absolute, 6, false},
	0x1e: {Asl, AbsoluteIndexedX, 7, false},

	0x10: {Bpl, Relative, 2, false},
	0x30: {Bmi, Relative, 2, false},
	0x50: {Bvc, Relative, 2, false},
	0x70: {Bvs, Relative, 2, false},
	0x90: {Bcc, Relative, 2, false},
	0xb0: {Bcs, Relative, 2, false},
	0xd0: {Bne, Relative, 2, false},
	0xf0: {Beq, Relative, 2, false},

	0x24: {Bit, ZeroPage, 3, false},
	0x2c: {Bit, Absolute, 4, false},

	0x00: {Brk, Implied, 7, false},

	0x18: {Clc, Implied, 2, false},
	0xd8: {Cld, Implied, 2, false},
	0x58: {Cli, Implied, 2, false},
	0xb8: {Clv, Implied, 2, false},

	0xc9: {Cmp, Immediate, 2, false},
	0xc5: {Cmp, ZeroPage, 3, false},
	0xd5: {Cmp, ZeroPageIndexedX, 4, false},
	0xcd: {Cmp, Absolute, 4, false},
	0xdd: {Cmp, AbsoluteIndexedX, 4, true},
	0xd9: {Cmp, AbsoluteIndexedY, 4, true},
	0xc1: {Cmp, IndexedIndirect, 6, false},
	0xd1: {Cmp, IndirectIndexed, 5, true},

	0xe0: {Cpx, Immediate, 2, false},
	0xe4: {Cpx, ZeroPage, 3, false},
	0xec: {Cpx, Absolute, 4, false},

	0xc0: {Cpy, Immediate, 2, false},
	0xc4: {Cpy, ZeroPage, 3, false},
	0xcc: {Cpy, Absolute, 4, false},

	0xc6: {Dec, ZeroPage, 5, false},
	0xd6: {Dec, ZeroPageIndexedX, 6, false},
	0xce: {Dec, Absolute, 6, false},
	0xde: {Dec, AbsoluteIndexedX, 7, false},
	0xca: {Dex, Implied, 2, false},
	0x88: {Dey, Implied, 2, false},

	0x49: {Eor, Immediate, 2, false},
	0x45: {Eor, ZeroPage, 3, false},
	0x55: {Eor, ZeroPageIndexedX, 4, false},
	0x4d: {Eor, Absolute, 4, false},
	0x5d: {Eor, AbsoluteIndexedX, 4, true},
	0x59: {Eor, AbsoluteIndexedY, 4, true},
	0x41: {Eor, IndexedIndirect, 6, false},
	0x51: {Eor, IndirectIndexed, 5, true},

	0xe6: {Inc, ZeroPage, 5, false},
	0xf6: {Inc, ZeroPageIndexedX, 6, false},
	0xee: {Inc, Absolute, 6, false},
	0xfe: {Inc, AbsoluteIndexedX, 7, false},
	0xe8: {Inx, Implied, 2, false},
	0xc8: {Iny, Implied, 2, false},

	0x4c: {Jmp, Absolute, 3, false},
	0x6c: {Jmp, Indirect, 5, false},
	0x20: {Jsr, Absolute, 6, false},

	0xa9: {Lda, Immediate, 2, false},
	0xa5: {Lda, ZeroPage, 3, false},
	0xb5: {Lda, ZeroPageIndexedX, 4, false},
	0xad: {Lda, Absolute, 4, false},
	0xbd: {Lda, AbsoluteIndexedX, 4, true},
	0xb9: {Lda, AbsoluteIndexedY, 4, true},
	0xa1: {Lda, IndexedIndirect, 6, false},
	0xb1: {Lda, IndirectIndexed, 5, true},

	0xa2: {Ldx, Immediate, 2, false},
	0xa6: {Ldx, ZeroPage, 3, false},
	0xb6: {Ldx, ZeroPageIndexedY, 4, false},
	0xae: {Ldx, Absolute, 4, false},
	0xbe: {Ldx, AbsoluteIndexedY, 4, true},

	0xa0: {Ldy, Immediate, 2, false},
	0xa4: {Ldy, ZeroPage, 3, false},
	0xb4: {Ldy, ZeroPageIndexedX, 4, false},
	0xac: {Ldy, Absolute, 4, false},
	0xbc: {Ldy, AbsoluteIndexedX, 4, true},

	0x4a: {Lsr, Accumulator, 2, false},
	0x46: {Lsr, ZeroPage, 5, false},
	0x56: {Lsr, ZeroPageIndexedX, 6, false},
	0x4e: {Lsr, Absolute, 6, false},
	0x5e: {Lsr, AbsoluteIndexedX, 7, false},

	0xea: {Nop, Implied, 2, false},

	0x09: {Ora, Immediate, 2, false},
	0x05: {Ora, ZeroPage, 3, false},
	0x15: {Ora, ZeroPageIndexedX, 4, false},
	0x0d: {Ora, Absolute, 4, false},
	0x1d: {Ora, AbsoluteIndexedX, 4, true},
	0x19: {Ora, AbsoluteIndexedY, 4, true},
	0x01: {Ora, IndexedIndirect, 6, false},
	0x11: {Ora, IndirectIndexed, 5, true},

	0x48: {Pha, Implied, 3, false},
	0x08: {Php, Implied, 3, false},
	0x68: {Pla, Implied, 4, false},
	0x28: {Plp, Implied, 4, false},

	0x2a: {Rol, Accumulator, 2, false},
	0x26: {Rol, ZeroPage, 5, false},
	0x36: {Rol, ZeroPageIndexedX, 6, false},
	0x2e: {Rol, Absolute, 6, false},
	0x3e: {Rol, AbsoluteIndexedX, 7, false},

	0x6a: {Ror, Accumulator, 2, false},
	0x66: {Ror, ZeroPage, 5, false},
	0x76: {Ror, ZeroPageIndexedX, 6, false},
	0x6e: {Ror, Absolute, 6, false},
	0x7e: {Ror, AbsoluteIndexedX, 7, false},

	0x40: {Rti, Implied, 6, false},
	0x60: {Rts, Implied, 6, false},

	0xe9: {Sbc, Immediate, 2, false},
	0xe5: {Sbc, ZeroPage, 3, false},
	0xf5: {Sbc, ZeroPageIndexedX, 4, false},
	0xed: {Sbc, Absolute, 4, false},
	0xfd: {Sbc, AbsoluteIndexedX, 4, true},
	0xf9: {Sbc, AbsoluteIndexedY, 4, true},
	0xe1: {Sbc, IndexedIndirect, 6, false},
	0xf1: {Sbc, IndirectIndexed, 5, true},

	0x38: {Sec, Implied, 2, false},
	0xf8: {Sed, Implied, 2, false},
	0x78: {Sei, Implied, 2, false},

	0x85: {Sta, ZeroPage, 3, false},
	0x95: {Sta, ZeroPageIndexedX, 4, false},
	0x8d: {Sta, Absolute, 4, false},
	0x9d: {Sta, AbsoluteIndexedX, 5, false},
	0x99: {Sta, AbsoluteIndexedY, 5, false},
	0x81: {Sta, IndexedIndirect, 6, false},
	0x91: {Sta, IndirectIndexed, 6, false},

	0x86: {Stx, ZeroPage, 3, false},
	0x96: {Stx, ZeroPageIndexedY, 4, false},
	0x8e: {Stx, Absolute, 4, false},

	0x84: {Sty, ZeroPage, 3, false},
	0x94: {Sty, ZeroPageIndexedX, 4, false},
	0x8c: {Sty, Absolute, 4, false},

	0xaa: {Tax, Implied, 2, false},
	0xa8: {Tay, Implied, 2, false},
	0xba: {Tsx, Implied, 2, false},
	0x8a: {Txa, Implied, 2, false},
	0x9a: {Txs, Implied, 2, false},
	0x98: {Tya, Implied, 2, false},
}

// the undocumented opcodes that behave as a NOP with a real operand
var undocumentedNOPs = map[uint8]documented{
	0x1a: {Nop, Implied, 2, false},
	0x3a: {Nop, Implied, 2, false},
	0x5a: {Nop, Implied, 2, false},
	0x7a: {Nop, Implied, 2, false},
	0xda: {Nop, Implied, 2, false},
	0xfa: {Nop, Implied, 2, false},

	0x80: {Nop, Immediate, 2, false},
	0x82: {Nop, Immediate, 2, false},
	0x89: {Nop, Immediate, 2, false},
	0xc2: {Nop, Immediate, 2, false},
	0xe2: {Nop, Immediate, 2, false},

	0x04: {Nop, ZeroPage, 3, false},
	0x44: {Nop, ZeroPage, 3, false},
	0x64: {Nop, ZeroPage, 3, false},

	0x14: {Nop, ZeroPageIndexedX, 4, false},
	0x34: {Nop, ZeroPageIndexedX, 4, false},
	0x54: {Nop, ZeroPageIndexedX, 4, false},
	0x74: {Nop, ZeroPageIndexedX, 4, false},
	0xd4: {Nop, ZeroPageIndexedX, 4, false},
	0xf4: {Nop, ZeroPageIndexedX, 4, false},

	0x0c: {Nop, Absolute, 4, false},

	0x1c: {Nop, AbsoluteIndexedX, 4, true},
	0x3c: {Nop, AbsoluteIndexedX, 4, true},
	0x5c: {Nop, AbsoluteIndexedX, 4, true},
	0x7c: {Nop, AbsoluteIndexedX, 4, true},
	0xdc: {Nop, AbsoluteIndexedX, 4, true},
	0xfc: {Nop, AbsoluteIndexedX, 4, true},
}

// Definitions is the instruction table indexed by opcode.
var Definitions [256]Definition

func init() {
	for i := range Definitions {
		opcode := uint8(i)

		d, ok := instructionSet[opcode]
		undocumented := !ok
		if !ok {
			d, ok = undocumentedNOPs[opcode]
			if !ok {
				d = documented{op: Illegal, mode: Implied, cycles: 2}
			}
		}

		Definitions[i] = Definition{
			OpCode:         opcode,
			Operator:       d.op,
			Mnemonic:       d.op.String(),
			Bytes:          d.mode.Bytes(),
			Cycles:         d.cycles,
			AddressingMode: d.mode,
			PageSensitive:  d.pageSensitive,
			Effect:         effect(d.op, d.mode),
			Undocumented:   undocumented,
		}
	}
}

func effect(op Operator, mode AddressingMode) EffectCategory {
	switch op {
	case Sta, Stx, Sty:
		return Write
	case Asl, Lsr, Rol, Ror, Inc, Dec:
		if mode == Accumulator {
			return Read
		}
		return RMW
	case Bcc, Bcs, Beq, Bmi, Bne, Bpl, Bvc, Bvs, Jmp:
		return Flow
	case Jsr, Rts:
		return Subroutine
	case Brk, Rti:
		return Interrupt
	}
	return Read
}
