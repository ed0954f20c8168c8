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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/nesgopher/nesgopher/curated"
	"github.com/nesgopher/nesgopher/debugger/commandline"
	"github.com/nesgopher/nesgopher/debugger/easyterm"
	"github.com/nesgopher/nesgopher/hardware"
	"github.com/nesgopher/nesgopher/hardware/cpu/execution"
	"github.com/nesgopher/nesgopher/logger"
)

// Sentinal error patterns.
const (
	InputError = "debugger: input: %v"
)

// Debugger is the basic debugging frontend for the emulation.
type Debugger struct {
	nes *hardware.NES

	// commands are checked against the template before being processed
	cmds *commandline.Commands

	input  *bufio.Reader
	output io.Writer

	// the terminal is optional. it is only required by the MONITOR command
	term *easyterm.Terminal

	breakpoints breakpoints

	// halt when the CPU instruction count reaches this value. zero means no
	// count breakpoint
	countBreak uint64

	// description of the most recent halt condition. empty if the emulation
	// halted for any other reason
	haltReason string

	// the QUIT command has been issued
	quit bool
}

// NewDebugger creates and initialises everything required for a new
// debugging session. The NES should have a cartridge attached.
func NewDebugger(nes *hardware.NES, input io.Reader, output io.Writer) (*Debugger, error) {
	cmds, err := commandline.ParseCommandTemplate(commandTemplate)
	if err != nil {
		return nil, err
	}

	dbg := &Debugger{
		nes:    nes,
		cmds:   cmds,
		input:  bufio.NewReader(input),
		output: output,
	}

	return dbg, nil
}

// SetTerminal attaches a terminal to the debugger. The terminal should have
// been initialised with the same input as the debugger.
func (dbg *Debugger) SetTerminal(term *easyterm.Terminal) {
	dbg.term = term
}

// Start the main debugger sequence. Returns when the QUIT command is issued
// or the input has been exhausted.
func (dbg *Debugger) Start() error {
	dbg.printLine(styleFeedback, "%s", dbg.nes.Cart.Summary())

	for !dbg.quit {
		dbg.prompt()

		line, err := dbg.input.ReadString('\n')
		if err != nil && err != io.EOF {
			return curated.Errorf(InputError, err)
		}

		if perr := dbg.parseInput(line); perr != nil {
			dbg.printLine(styleError, "%v", perr)
		}

		if err == io.EOF {
			break
		}
	}

	return nil
}

func (dbg *Debugger) prompt() {
	fmt.Fprintf(dbg.output, "[$%04x] > ", dbg.nes.CPU.PC.Address())
}

// parseInput splits the input into commands and processes each one in turn.
// Processing stops on the first error.
func (dbg *Debugger) parseInput(input string) error {
	// ignore comments
	if strings.HasPrefix(strings.TrimSpace(input), "#") {
		return nil
	}

	for _, cmd := range strings.Split(input, ";") {
		tokens := commandline.TokeniseInput(cmd)
		if tokens.Remaining() == 0 {
			continue
		}

		if err := dbg.cmds.ValidateTokens(tokens); err != nil {
			return err
		}

		if err := dbg.processTokens(tokens); err != nil {
			return err
		}

		if dbg.quit {
			return nil
		}
	}

	return nil
}

// observer is the hardware.Observer used by the debugger. it checks the halt
// conditions after every instruction.
func (dbg *Debugger) observer(nes *hardware.NES, _ execution.Result) error {
	if bk, ok := dbg.breakpoints.check(nes.CPU.PC.Address()); ok {
		dbg.haltReason = fmt.Sprintf("break on %s", bk)
		return curated.Errorf(hardware.Halt)
	}

	if dbg.countBreak != 0 && nes.CPU.InstructionCount == dbg.countBreak {
		dbg.haltReason = fmt.Sprintf("break on instruction count %d", dbg.countBreak)
		return curated.Errorf(hardware.Halt)
	}

	return nil
}

// run the emulation until a halt condition is met. the frame limit preference
// stops the emulation if no halt condition is met.
func (dbg *Debugger) run() error {
	dbg.haltReason = ""

	limit := dbg.nes.Env().Prefs.FrameLimit.Get().(int)
	target := dbg.nes.PPU.Frames() + uint64(limit)

	continueCheck := func() (bool, error) {
		return limit == 0 || dbg.nes.PPU.Frames() < target, nil
	}

	if err := dbg.nes.Run(continueCheck, dbg.observer); err != nil {
		return err
	}

	dbg.reportHalt()

	return nil
}

// runFrames runs the emulation for the number of frames or until a halt
// condition is met.
func (dbg *Debugger) runFrames(n int) error {
	dbg.haltReason = ""

	if err := dbg.nes.RunForFrameCount(n, dbg.observer); err != nil {
		return err
	}

	dbg.reportHalt()

	return nil
}

// step the emulation by n instructions, stopping early if a halt condition
// is met. every instruction is printed.
func (dbg *Debugger) step(n int) error {
	dbg.haltReason = ""

	for i := 0; i < n; i++ {
		err := dbg.nes.Step(dbg.observer)

		dbg.printLine(styleInstruction, "%s", dbg.nes.CPU.LastResult)

		if err != nil {
			if curated.Is(err, hardware.Halt) {
				break
			}
			return err
		}
	}

	dbg.reportHalt()

	return nil
}

func (dbg *Debugger) reportHalt() {
	if dbg.haltReason != "" {
		dbg.printLine(styleFeedback, "%s", dbg.haltReason)
		logger.Log(dbg.nes.Env(), "debugger", dbg.haltReason)
	}
}
