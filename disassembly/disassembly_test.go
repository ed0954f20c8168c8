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

package disassembly_test

import (
	"strings"
	"testing"

	"github.com/nesgopher/nesgopher/disassembly"
	"github.com/nesgopher/nesgopher/test"
)

type mockMem [0x10000]uint8

func (mem *mockMem) Peek(address uint16) uint8 {
	return mem[address]
}

func (mem *mockMem) put(address uint16, data ...uint8) {
	copy(mem[address:], data)
}

func newProgram() *mockMem {
	mem := &mockMem{}
	mem.put(0x8000,
		0xa2, 0x00, // LDX #$00
		0xe8,       // INX
		0xd0, 0xfd, // BNE $8002
		0x20, 0x10, 0x80, // JSR $8010
		0x6c, 0x20, 0x80, // JMP ($8020)
	)
	mem.put(0x8010, 0x60, 0xff, 0xff) // RTS and data
	mem.put(0x8020, 0x30, 0x80)       // jump pointer
	mem.put(0x8030, 0x4c, 0x00, 0x80) // JMP $8000
	mem.put(0x8040, 0x40, 0x40)       // RTI, RTI
	mem.put(0xfffa, 0x40, 0x80, 0x00, 0x80, 0x41, 0x80)
	return mem
}

func TestDecode(t *testing.T) {
	mem := newProgram()

	e := disassembly.Decode(mem, 0x8000)
	test.ExpectEquality(t, e.String(), "$8000 LDX #$00       ; a2 00")
	test.ExpectEquality(t, e.Next(), uint16(0x8002))

	e = disassembly.Decode(mem, 0x8003)
	test.ExpectEquality(t, e.Result.String(), "$8003 BNE $8002")

	e = disassembly.Decode(mem, 0x8008)
	test.ExpectEquality(t, e.Result.String(), "$8008 JMP ($8020)")
	test.ExpectEquality(t, len(e.Bytes), 3)
}

func TestLinear(t *testing.T) {
	mem := newProgram()

	entries := disassembly.Linear(mem, 0x8000, 4)
	test.DemandEquality(t, len(entries), 4)
	test.ExpectEquality(t, entries[0].Result.Address, uint16(0x8000))
	test.ExpectEquality(t, entries[1].Result.Address, uint16(0x8002))
	test.ExpectEquality(t, entries[2].Result.Address, uint16(0x8003))
	test.ExpectEquality(t, entries[3].Result.Address, uint16(0x8005))
}

func TestFlow(t *testing.T) {
	mem := newProgram()

	dsm := disassembly.FromMemory(mem)
	test.ExpectEquality(t, dsm.Reset, uint16(0x8000))
	test.ExpectEquality(t, dsm.NMI, uint16(0x8040))
	test.ExpectEquality(t, dsm.IRQ, uint16(0x8041))
	test.ExpectEquality(t, dsm.Len(), 9)
	test.ExpectFailure(t, dsm.Illegal)
	test.ExpectFailure(t, dsm.OutsideCartridge)

	// the target of the indirect jump has been visited
	_, ok := dsm.Get(0x8030)
	test.ExpectSuccess(t, ok)

	// data following the RTS has not been visited
	_, ok = dsm.Get(0x8011)
	test.ExpectFailure(t, ok)

	entries := dsm.Entries()
	for i := 1; i < len(entries); i++ {
		test.ExpectSuccess(t, entries[i-1].Result.Address < entries[i].Result.Address)
	}

	s := &strings.Builder{}
	test.ExpectSuccess(t, dsm.Write(s))
	test.ExpectSuccess(t, strings.Contains(s.String(), "reset:\n  $8000 LDX #$00"))
	test.ExpectSuccess(t, strings.Contains(s.String(), "nmi:\n  $8040 RTI"))
	test.ExpectSuccess(t, strings.Contains(s.String(), "irq:\n  $8041 RTI"))
	test.ExpectSuccess(t, strings.Contains(s.String(), "$8010 RTS            ; 60\n\n"))
}

func TestFlowIllegal(t *testing.T) {
	mem := &mockMem{}
	mem.put(0x8000, 0xea, 0x02)       // NOP and an illegal opcode
	mem.put(0x8010, 0x4c, 0x00, 0x03) // JMP $0300
	mem.put(0xfffa, 0x10, 0x80, 0x00, 0x80, 0x10, 0x80)

	dsm := disassembly.FromMemory(mem)
	test.ExpectSuccess(t, dsm.Illegal)
	test.ExpectSuccess(t, dsm.OutsideCartridge)
	test.ExpectEquality(t, dsm.Len(), 3)
}
