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

package execution

import (
	"fmt"

	"github.com/nesgopher/nesgopher/hardware/cpu/instructions"
)

// Result records the state/result of each instruction executed on the CPU.
// Including the address it was read from, a reference to the instruction
// definition, and other execution details.
type Result struct {
	// a reference to the instruction definition
	Defn *instructions.Definition

	// the address at which the instruction began
	Address uint16

	// instruction data is the actual instruction data. so, for example, in
	// the case of branch instruction, instruction data is the offset value.
	InstructionData uint16

	// the actual number of cycles taken by the instruction, including page
	// faults and branch penalties
	Cycles int

	// whether an extra cycle was required because of 8 bit adder overflow
	PageFault bool

	// whether a known buggy code path (in the emulated CPU) was triggered
	CPUBug Bug

	// whether branch instruction test passed (ie. branched) or not
	BranchSuccess bool
}

// Reset nullifies all members of the Result instance.
func (r *Result) Reset() {
	*r = Result{}
}

// String returns a disassembly of the instruction. For example:
//
//	$c004 LDA $0200,X
func (r Result) String() string {
	if r.Defn == nil {
		return "no instruction"
	}

	operand := r.operand()
	if operand == "" {
		return fmt.Sprintf("$%04x %s", r.Address, r.Defn.Mnemonic)
	}
	return fmt.Sprintf("$%04x %s %s", r.Address, r.Defn.Mnemonic, operand)
}

func (r Result) operand() string {
	switch r.Defn.AddressingMode {
	case instructions.Accumulator:
		return "A"
	case instructions.Immediate:
		return fmt.Sprintf("#$%02x", r.InstructionData)
	case instructions.ZeroPage:
		return fmt.Sprintf("$%02x", r.InstructionData)
	case instructions.ZeroPageIndexedX:
		return fmt.Sprintf("$%02x,X", r.InstructionData)
	case instructions.ZeroPageIndexedY:
		return fmt.Sprintf("$%02x,Y", r.InstructionData)
	case instructions.Relative:
		// branch target as an absolute address
		return fmt.Sprintf("$%04x", r.Address+2+uint16(int8(r.InstructionData)))
	case instructions.Absolute:
		return fmt.Sprintf("$%04x", r.InstructionData)
	case instructions.AbsoluteIndexedX:
		return fmt.Sprintf("$%04x,X", r.InstructionData)
	case instructions.AbsoluteIndexedY:
		return fmt.Sprintf("$%04x,Y", r.InstructionData)
	case instructions.Indirect:
		return fmt.Sprintf("($%04x)", r.InstructionData)
	case instructions.IndexedIndirect:
		return fmt.Sprintf("($%02x,X)", r.InstructionData)
	case instructions.IndirectIndexed:
		return fmt.Sprintf("($%02x),Y", r.InstructionData)
	}
	return ""
}
