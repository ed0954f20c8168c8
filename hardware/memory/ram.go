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

package memory

import (
	"fmt"
	"strings"

	"github.com/nesgopher/nesgopher/environment"
)

// RAMSize is the number of bytes of internal RAM.
const RAMSize = 0x0800

// RAM is the internal RAM of the NES.
type RAM struct {
	env  *environment.Environment
	data [RAMSize]uint8
}

// NewRAM is the preferred method of initialisation for the RAM type.
func NewRAM(env *environment.Environment) *RAM {
	ram := &RAM{env: env}
	ram.Reset()
	return ram
}

// Reset clears the RAM. Or randomises it if the RandomState preference is
// set.
func (ram *RAM) Reset() {
	if ram.env.Prefs.RandomState.Get().(bool) {
		ram.env.Random.Fill(ram.data[:])
		return
	}
	for i := range ram.data {
		ram.data[i] = 0
	}
}

// Read the value at the normalised address.
func (ram *RAM) Read(address uint16) uint8 {
	return ram.data[address&(RAMSize-1)]
}

// Write the value to the normalised address.
func (ram *RAM) Write(address uint16, data uint8) {
	ram.data[address&(RAMSize-1)] = data
}

func (ram *RAM) String() string {
	s := strings.Builder{}
	for i := 0; i < 0x100; i += 0x10 {
		s.WriteString(fmt.Sprintf("%04x %02x\n", i, ram.data[i:i+0x10]))
	}
	return s.String()
}
