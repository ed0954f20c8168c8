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

package registers

import (
	"strings"
)

// Status register bits.
const (
	Carry            = 0x01
	Zero             = 0x02
	InterruptDisable = 0x04
	DecimalMode      = 0x08
	Break            = 0x10
	Unused           = 0x20
	Overflow         = 0x40
	Sign             = 0x80
)

// StatusRegister is the special purpose register that stores the flags of the
// CPU. The unused bit is not stored. It is always set in the value returned
// by Value().
type StatusRegister struct {
	Sign             bool
	Overflow         bool
	Break            bool
	DecimalMode      bool
	InterruptDisable bool
	Zero             bool
	Carry            bool
}

// NewStatusRegister is the preferred method of initialisation for the status
// register.
func NewStatusRegister() StatusRegister {
	return StatusRegister{}
}

// Label returns the canonical name for the status register.
func (sr StatusRegister) Label() string {
	return "SR"
}

// String returns the flags as a string. Set flags are upper case and clear
// flags are lower case. For example, with just the zero flag set: "sv-bdiZc".
func (sr StatusRegister) String() string {
	s := strings.Builder{}

	flag := func(f bool, set rune, clr rune) {
		if f {
			s.WriteRune(set)
		} else {
			s.WriteRune(clr)
		}
	}

	flag(sr.Sign, 'S', 's')
	flag(sr.Overflow, 'V', 'v')
	s.WriteRune('-')
	flag(sr.Break, 'B', 'b')
	flag(sr.DecimalMode, 'D', 'd')
	flag(sr.InterruptDisable, 'I', 'i')
	flag(sr.Zero, 'Z', 'z')
	flag(sr.Carry, 'C', 'c')

	return s.String()
}

// Reset clears all flags.
func (sr *StatusRegister) Reset() {
	sr.Load(0)
}

// Value converts the StatusRegister into a value suitable for pushing onto
// the stack.
func (sr StatusRegister) Value() uint8 {
	v := uint8(Unused)

	if sr.Sign {
		v |= Sign
	}
	if sr.Overflow {
		v |= Overflow
	}
	if sr.Break {
		v |= Break
	}
	if sr.DecimalMode {
		v |= DecimalMode
	}
	if sr.InterruptDisable {
		v |= InterruptDisable
	}
	if sr.Zero {
		v |= Zero
	}
	if sr.Carry {
		v |= Carry
	}

	return v
}

// Load sets the flags from an 8 bit value, as taken from the stack for
// example.
func (sr *StatusRegister) Load(v uint8) {
	sr.Sign = v&Sign == Sign
	sr.Overflow = v&Overflow == Overflow
	sr.Break = v&Break == Break
	sr.DecimalMode = v&DecimalMode == DecimalMode
	sr.InterruptDisable = v&InterruptDisable == InterruptDisable
	sr.Zero = v&Zero == Zero
	sr.Carry = v&Carry == Carry
}
