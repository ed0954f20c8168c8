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
	"io"

	"github.com/nesgopher/nesgopher/curated"
	"github.com/nesgopher/nesgopher/debugger/easyterm"
	"github.com/nesgopher/nesgopher/hardware"
)

// monitor steps the emulation in response to single key presses. the
// terminal, if there is one, is in cbreak mode for the duration of the
// monitor.
func (dbg *Debugger) monitor() error {
	if dbg.term != nil {
		dbg.term.CBreakMode()
		defer dbg.term.CanonicalMode()
	}

	dbg.printLine(styleHelp, "%s", help[cmdMonitor])

	for {
		b, err := dbg.input.ReadByte()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return curated.Errorf(InputError, err)
		}

		switch b {
		case easyterm.KeySpace, easyterm.KeyLineFeed, easyterm.KeyCarriageReturn:
			dbg.haltReason = ""
			err := dbg.nes.Step(dbg.observer)
			if err != nil && !curated.Is(err, hardware.Halt) {
				return err
			}
			dbg.printLine(styleInstruction, "%s", dbg.nes.CPU.LastResult)
			dbg.printLine(styleFeedback, "%s", dbg.nes.CPU)
			dbg.reportHalt()

		case 'f', 'F':
			if err := dbg.runFrames(1); err != nil {
				return err
			}
			dbg.printLine(styleFeedback, "%s", dbg.nes.CPU)

		case 'q', 'Q', easyterm.KeyEsc, easyterm.KeyCtrlC:
			return nil
		}
	}
}
