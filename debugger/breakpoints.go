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

package debugger

import (
	"fmt"
	"strings"

	"github.com/nesgopher/nesgopher/curated"
)

// breakpoints are used to halt execution when the program counter reaches a
// specific address.
type breakpoints struct {
	breaks []breaker
}

// breaker defines a specific break condition.
type breaker struct {
	address uint16

	// the breaker has triggered and the PC has not yet moved away from the
	// address. the breaker will not trigger again until it does.
	ignore bool
}

func (bk breaker) String() string {
	return fmt.Sprintf("PC->$%04x", bk.address)
}

func (bp breakpoints) String() string {
	if len(bp.breaks) == 0 {
		return "no breakpoints"
	}

	s := strings.Builder{}
	for i, bk := range bp.breaks {
		s.WriteString(fmt.Sprintf("% 2d: %s\n", i, bk))
	}
	return strings.TrimRight(s.String(), "\n")
}

// add a new breakpoint. it is an error to add a breakpoint that already
// exists.
func (bp *breakpoints) add(address uint16) error {
	for _, bk := range bp.breaks {
		if bk.address == address {
			return curated.Errorf("breakpoint already exists (%s)", bk)
		}
	}
	bp.breaks = append(bp.breaks, breaker{address: address})
	return nil
}

// drop the breakpoint for the address.
func (bp *breakpoints) drop(address uint16) error {
	for i, bk := range bp.breaks {
		if bk.address == address {
			bp.breaks = append(bp.breaks[:i], bp.breaks[i+1:]...)
			return nil
		}
	}
	return curated.Errorf("breakpoint does not exist ($%04x)", address)
}

// clear all breakpoints.
func (bp *breakpoints) clear() {
	bp.breaks = bp.breaks[:0]
}

// check returns the breaker that matches the program counter.
func (bp *breakpoints) check(pc uint16) (breaker, bool) {
	for i := range bp.breaks {
		bk := &bp.breaks[i]

		if bk.address != pc {
			bk.ignore = false
			continue
		}

		if bk.ignore {
			continue
		}

		bk.ignore = true
		return *bk, true
	}

	return breaker{}, false
}
