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
)

type style int

const (
	styleFeedback style = iota
	styleInstruction
	styleHelp
	styleError
)

// printLine writes the formatted string to the debugger output. trailing
// newlines are removed and empty strings are not printed.
func (dbg *Debugger) printLine(sty style, s string, a ...interface{}) {
	s = strings.TrimRight(fmt.Sprintf(s, a...), "\n")
	if len(s) == 0 {
		return
	}

	switch sty {
	case styleError:
		s = fmt.Sprintf("* %s", s)
	case styleInstruction:
		s = fmt.Sprintf("  %s", s)
	}

	fmt.Fprintln(dbg.output, s)
}
