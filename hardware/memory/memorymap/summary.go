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

package memorymap

import (
	"fmt"
	"strings"
)

// Summary returns a single multiline string detailing all the areas in
// memory. Useful for reference.
func Summary() string {
	s := strings.Builder{}

	_, current := MapAddress(0)
	start := 0

	for a := 1; a <= int(Memtop); a++ {
		_, area := MapAddress(uint16(a))
		if area != current {
			s.WriteString(fmt.Sprintf("%04x -> %04x\t%s\n", start, a-1, current))
			current = area
			start = a
		}
	}

	s.WriteString(fmt.Sprintf("%04x -> %04x\t%s\n", start, int(Memtop), current))

	return s.String()
}
