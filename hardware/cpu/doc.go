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

// Package cpu emulates the 2A03 microprocessor found in the NES. The 2A03 is
// a 6502 without decimal mode. Like all 8-bit processors of the era, the 2A03
// executes instructions according to the single byte value read from an
// address pointed to by the program counter. This single byte is the opcode
// and is looked up in the instruction table. The instruction definition for
// that opcode is then used to move execution of the program forward.
//
// The instance of the CPU type requires an implementation of the
// bus.CPUBus interface. See the bus package for details.
//
// The CPU is driven one cycle at a time by the Clock() function. An
// instruction is executed in its entirety on the first cycle and the
// remaining cycles are then counted down. Clock() reports whether the call
// began a new instruction:
//
//	mc := cpu.NewCPU(env, mem)
//	err := mc.Reset()
//
//	for {
//		fresh, err := mc.Clock()
//		if err != nil {
//			return err
//		}
//		if fresh {
//			fmt.Println(mc.LastResult)
//		}
//	}
//
// The NES emulation uses this to run the PPU three times for every CPU cycle.
//
// The ExecuteInstruction() function runs exactly one instruction, discarding
// any outstanding cycles. It is used by tests and by the debugger.
//
// The LastResult field can be probed for information about the last
// instruction executed. See the execution package for more information.
// Very useful for debuggers.
package cpu
