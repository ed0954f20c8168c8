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

package disassembly

import (
	"fmt"
	"strings"

	"github.com/nesgopher/nesgopher/hardware/cpu/execution"
	"github.com/nesgopher/nesgopher/hardware/cpu/instructions"
)

// Peeker is the memory interface required by the disassembly. The
// hardware/memory.Memory type satisfies the interface.
type Peeker interface {
	Peek(address uint16) uint8
}

// Entry is a single disassembled instruction.
type Entry struct {
	Result execution.Result

	// the bytes of the instruction, including the opcode
	Bytes []uint8
}

func (e Entry) String() string {
	b := make([]string, len(e.Bytes))
	for i := range e.Bytes {
		b[i] = fmt.Sprintf("%02x", e.Bytes[i])
	}
	return fmt.Sprintf("%-20s ; %s", e.Result, strings.Join(b, " "))
}

// Next returns the address of the instruction that immediately follows the
// entry.
func (e Entry) Next() uint16 {
	return e.Result.Address + uint16(len(e.Bytes))
}

// Decode the instruction at the address.
func Decode(mem Peeker, address uint16) Entry {
	opcode := mem.Peek(address)
	defn := &instructions.Definitions[opcode]

	e := Entry{
		Result: execution.Result{
			Defn:    defn,
			Address: address,
			Cycles:  defn.Cycles,
		},
		Bytes: make([]uint8, defn.Bytes),
	}

	for i := range e.Bytes {
		e.Bytes[i] = mem.Peek(address + uint16(i))
	}

	switch defn.Bytes {
	case 2:
		e.Result.InstructionData = uint16(e.Bytes[1])
	case 3:
		e.Result.InstructionData = uint16(e.Bytes[1]) | uint16(e.Bytes[2])<<8
	}

	return e
}

// Linear decodes n consecutive instructions starting at the address.
func Linear(mem Peeker, address uint16, n int) []Entry {
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		e := Decode(mem, address)
		entries = append(entries, e)
		address = e.Next()
	}
	return entries
}
