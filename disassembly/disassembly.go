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
	"io"
	"sort"

	"github.com/nesgopher/nesgopher/hardware/cpu/instructions"
)

// the interrupt vectors of the 6502.
const (
	NMIVector   = uint16(0xfffa)
	ResetVector = uint16(0xfffc)
	IRQVector   = uint16(0xfffe)
)

// only addresses in the cartridge PRG space are visited by the flow
// disassembly.
const prgOrigin = uint16(0x8000)

// Disassembly is the result of a flow disassembly.
type Disassembly struct {
	entries map[uint16]Entry

	// the entry points taken from the interrupt vectors
	Reset uint16
	NMI   uint16
	IRQ   uint16

	// the program flows to an address outside of the cartridge. this usually
	// means the program runs code from RAM
	OutsideCartridge bool

	// the program flows into an illegal opcode. this usually means that the
	// disassembly has wandered into data
	Illegal bool
}

// FromMemory performs a flow disassembly of the program in memory.
func FromMemory(mem Peeker) *Disassembly {
	dsm := &Disassembly{
		entries: make(map[uint16]Entry),
		Reset:   peek16(mem, ResetVector),
		NMI:     peek16(mem, NMIVector),
		IRQ:     peek16(mem, IRQVector),
	}

	// addresses still to be visited
	pending := []uint16{dsm.Reset, dsm.NMI, dsm.IRQ}

	for len(pending) > 0 {
		address := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		for {
			if address < prgOrigin {
				dsm.OutsideCartridge = true
				break
			}

			if _, ok := dsm.entries[address]; ok {
				break
			}

			e := Decode(mem, address)
			dsm.entries[address] = e

			defn := e.Result.Defn
			if defn.Operator == instructions.Illegal {
				dsm.Illegal = true
				break
			}

			next := e.Next()

			// the instruction runs past the top of memory
			if next < address {
				break
			}

			// whether the program continues with the next instruction
			continues := true

			switch defn.Effect {
			case instructions.Flow:
				if defn.IsBranch() {
					pending = append(pending, next+uint16(int8(e.Result.InstructionData)))
				} else if defn.AddressingMode == instructions.Indirect {
					pending = append(pending, peekIndirect(mem, e.Result.InstructionData))
					continues = false
				} else {
					pending = append(pending, e.Result.InstructionData)
					continues = false
				}

			case instructions.Subroutine:
				if defn.Operator == instructions.Jsr {
					pending = append(pending, e.Result.InstructionData)
				} else {
					continues = false
				}

			case instructions.Interrupt:
				continues = false
			}

			if !continues {
				break
			}
			address = next
		}
	}

	return dsm
}

// Len returns the number of decoded instructions.
func (dsm *Disassembly) Len() int {
	return len(dsm.entries)
}

// Get returns the entry for the address. Returns false if the address was
// not visited by the disassembly.
func (dsm *Disassembly) Get(address uint16) (Entry, bool) {
	e, ok := dsm.entries[address]
	return e, ok
}

// Entries returns all entries in address order.
func (dsm *Disassembly) Entries() []Entry {
	entries := make([]Entry, 0, len(dsm.entries))
	for _, e := range dsm.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Result.Address < entries[j].Result.Address
	})
	return entries
}

// Write the disassembly to output. Gaps in the disassembly are indicated with
// an empty line and the entry points are labelled.
func (dsm *Disassembly) Write(output io.Writer) error {
	labels := map[uint16]string{
		dsm.Reset: "reset",
		dsm.NMI:   "nmi",
		dsm.IRQ:   "irq",
	}

	var next uint16
	for i, e := range dsm.Entries() {
		if i > 0 && e.Result.Address != next {
			if _, err := io.WriteString(output, "\n"); err != nil {
				return err
			}
		}
		if l, ok := labels[e.Result.Address]; ok {
			if _, err := fmt.Fprintf(output, "%s:\n", l); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(output, "  %s\n", e); err != nil {
			return err
		}
		next = e.Next()
	}

	return nil
}

func peek16(mem Peeker, address uint16) uint16 {
	return uint16(mem.Peek(address)) | uint16(mem.Peek(address+1))<<8
}

// the indirect JMP does not cross a page boundary when reading the high byte
// of the pointer.
func peekIndirect(mem Peeker, pointer uint16) uint16 {
	hi := (pointer & 0xff00) | uint16(uint8(pointer)+1)
	return uint16(mem.Peek(pointer)) | uint16(mem.Peek(hi))<<8
}
