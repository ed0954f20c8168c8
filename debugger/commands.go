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
	"github.com/nesgopher/nesgopher/debugger/commandline"
	"github.com/nesgopher/nesgopher/disassembly"
	"github.com/nesgopher/nesgopher/hardware/input"
)

// debugger keywords.
const (
	cmdReset = "RESET"
	cmdQuit  = "QUIT"
	cmdHelp  = "HELP"

	cmdStep    = "STEP"
	cmdRun     = "RUN"
	cmdFrame   = "FRAME"
	cmdMonitor = "MONITOR"

	cmdBreak = "BREAK"
	cmdDrop  = "DROP"
	cmdCount = "COUNT"
	cmdList  = "LIST"

	cmdCPU    = "CPU"
	cmdPPU    = "PPU"
	cmdLast   = "LAST"
	cmdPeek   = "PEEK"
	cmdDisasm = "DISASM"
	cmdCart   = "CARTRIDGE"
	cmdPorts  = "PORTS"
	cmdPress  = "PRESS"
)

var commandTemplate = []string{
	cmdReset,
	cmdQuit,
	cmdHelp + " (%S)",

	cmdStep + " (%N)",
	cmdRun,
	cmdFrame + " (%N)",
	cmdMonitor,

	cmdBreak + " [%N]",
	cmdDrop + " [%N|ALL]",
	cmdCount + " [%N]",
	cmdList,

	cmdCPU,
	cmdPPU,
	cmdLast,
	cmdPeek + " [%N] (%N)",
	cmdDisasm + " (%N) (%N)",
	cmdCart,
	cmdPorts,
	cmdPress + " [1|2] %*",
}

var help = map[string]string{
	cmdReset:   "Reset the NES",
	cmdQuit:    "Quit the debugger",
	cmdHelp:    "List commands or show help for a command",
	cmdStep:    "Execute the next instruction, or the number of instructions given",
	cmdRun:     "Run the emulation until a halt condition is met",
	cmdFrame:   "Run the emulation for one frame, or the number of frames given",
	cmdMonitor: "Step the emulation with single key presses. Space or return steps one\ninstruction, F runs one frame and Q returns to the debugger",
	cmdBreak:   "Halt the emulation when the program counter reaches the address",
	cmdDrop:    "Remove the breakpoint for the address, or all breakpoints",
	cmdCount:   "Halt the emulation when the instruction count reaches the value.\nA value of zero removes the count breakpoint",
	cmdList:    "List the breakpoints",
	cmdCPU:     "Show the CPU registers",
	cmdPPU:     "Show the PPU state",
	cmdLast:    "Show the most recently executed instruction",
	cmdPeek:    "Show the contents of memory at the address. An optional second argument\nis the number of bytes to show",
	cmdDisasm:  "Disassemble instructions starting at the address, or the program counter\nif no address is given. An optional second argument is the number of\ninstructions to show",
	cmdCart:    "Show the cartridge summary",
	cmdPorts:   "Show the state of the controller ports",
	cmdPress:   "Set the buttons held on controller 1 or 2. Buttons are A, B, SELECT,\nSTART, UP, DOWN, LEFT and RIGHT. No buttons releases the controller",
}

// the names recognised by the PRESS command.
var buttonNames = map[string]input.Button{
	"A":      input.A,
	"B":      input.B,
	"SELECT": input.Select,
	"START":  input.Start,
	"UP":     input.Up,
	"DOWN":   input.Down,
	"LEFT":   input.Left,
	"RIGHT":  input.Right,
}

// number of bytes on each line of PEEK output.
const peekRowLength = 16

// the default number of instructions shown by the DISASM command
const disasmLength = 10

// processTokens performs the command described by the tokens. the tokens
// have already been validated against the command template.
func (dbg *Debugger) processTokens(tokens *commandline.Tokens) error {
	command, ok := tokens.Get()
	if !ok {
		return nil
	}
	command = strings.ToUpper(command)

	switch command {
	case cmdReset:
		if err := dbg.nes.Reset(); err != nil {
			return err
		}
		dbg.printLine(styleFeedback, "NES reset")

	case cmdQuit:
		dbg.quit = true

	case cmdHelp:
		keyword, ok := tokens.Get()
		if !ok {
			dbg.printLine(styleHelp, "%s", strings.Join(dbg.cmds.Keywords(), " "))
			return nil
		}
		keyword = strings.ToUpper(keyword)
		h, ok := help[keyword]
		if !ok {
			return curated.Errorf("no help for %s", keyword)
		}
		dbg.printLine(styleHelp, "%s", h)

	case cmdStep:
		n, err := optionalNumber(tokens, 1)
		if err != nil {
			return err
		}
		return dbg.step(int(n))

	case cmdRun:
		return dbg.run()

	case cmdFrame:
		n, err := optionalNumber(tokens, 1)
		if err != nil {
			return err
		}
		return dbg.runFrames(int(n))

	case cmdMonitor:
		return dbg.monitor()

	case cmdBreak:
		a, err := requiredNumber(tokens)
		if err != nil {
			return err
		}
		if err := dbg.breakpoints.add(uint16(a)); err != nil {
			return err
		}
		dbg.printLine(styleFeedback, "breakpoint added (PC->$%04x)", uint16(a))

	case cmdDrop:
		tok, _ := tokens.Peek()
		if strings.ToUpper(tok) == "ALL" {
			dbg.breakpoints.clear()
			dbg.printLine(styleFeedback, "breakpoints cleared")
			return nil
		}
		a, err := requiredNumber(tokens)
		if err != nil {
			return err
		}
		if err := dbg.breakpoints.drop(uint16(a)); err != nil {
			return err
		}
		dbg.printLine(styleFeedback, "breakpoint dropped (PC->$%04x)", uint16(a))

	case cmdCount:
		n, err := requiredNumber(tokens)
		if err != nil {
			return err
		}
		dbg.countBreak = n
		if n == 0 {
			dbg.printLine(styleFeedback, "count breakpoint removed")
		} else {
			dbg.printLine(styleFeedback, "count breakpoint set (%d)", n)
		}

	case cmdList:
		dbg.printLine(styleFeedback, "%s", dbg.breakpoints)
		if dbg.countBreak != 0 {
			dbg.printLine(styleFeedback, "count: %d", dbg.countBreak)
		}

	case cmdCPU:
		dbg.printLine(styleFeedback, "%s", dbg.nes.CPU)

	case cmdPPU:
		dbg.printLine(styleFeedback, "%s", dbg.nes.PPU)
		dbg.printLine(styleFeedback, "ctrl=%08b mask=%08b status=%08b frame=%d",
			dbg.nes.PPU.Ctrl, dbg.nes.PPU.Mask, dbg.nes.PPU.Status, dbg.nes.PPU.Frames())

	case cmdLast:
		dbg.printLine(styleInstruction, "%s", dbg.nes.CPU.LastResult)

	case cmdPeek:
		a, err := requiredNumber(tokens)
		if err != nil {
			return err
		}
		n, err := optionalNumber(tokens, 1)
		if err != nil {
			return err
		}
		dbg.peek(uint16(a), int(n))

	case cmdDisasm:
		a, err := optionalNumber(tokens, uint64(dbg.nes.CPU.PC.Address()))
		if err != nil {
			return err
		}
		n, err := optionalNumber(tokens, disasmLength)
		if err != nil {
			return err
		}
		for _, e := range disassembly.Linear(dbg.nes.Mem, uint16(a), int(n)) {
			dbg.printLine(styleInstruction, "%s", e)
		}

	case cmdCart:
		dbg.printLine(styleFeedback, "%s", dbg.nes.Cart)

	case cmdPorts:
		dbg.printLine(styleFeedback, "%s", dbg.nes.Ports)

	case cmdPress:
		tok, _ := tokens.Get()
		port := input.Player1
		if tok == "2" {
			port = input.Player2
		}

		var mask input.Button
		for !tokens.IsEnd() {
			tok, _ = tokens.Get()
			b, ok := buttonNames[strings.ToUpper(tok)]
			if !ok {
				return curated.Errorf("unrecognised button (%s)", tok)
			}
			mask |= b
		}

		dbg.nes.SetButtons(port, uint8(mask))
		dbg.printLine(styleFeedback, "%s", dbg.nes.Ports)
	}

	return nil
}

// peek prints n bytes of memory starting at the address. the bytes are
// arranged in rows, with the address of the first byte at the head of each
// row.
func (dbg *Debugger) peek(address uint16, n int) {
	row := peekRowLength
	if dbg.term != nil {
		// fit as many groups of eight bytes on the line as possible
		if cols := int(dbg.term.Geometry().Cols); cols > 0 {
			row = (cols - 7) / 3 / 8 * 8
			if row < 8 {
				row = 8
			}
		}
	}

	s := strings.Builder{}
	for i := 0; i < n; i++ {
		a := address + uint16(i)
		if i%row == 0 {
			if i > 0 {
				s.WriteString("\n")
			}
			s.WriteString(fmt.Sprintf("$%04x:", a))
		}
		s.WriteString(fmt.Sprintf(" %02x", dbg.nes.Mem.Peek(a)))
	}

	dbg.printLine(styleFeedback, "%s", s.String())
}

func requiredNumber(tokens *commandline.Tokens) (uint64, error) {
	tok, _ := tokens.Get()
	return commandline.ParseNumber(tok)
}

func optionalNumber(tokens *commandline.Tokens, def uint64) (uint64, error) {
	tok, ok := tokens.Get()
	if !ok {
		return def, nil
	}
	return commandline.ParseNumber(tok)
}
