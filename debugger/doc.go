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

// Package debugger implements a line based debugging tool for the NES
// emulation. Features include:
//
//   - instruction stepping
//   - frame stepping
//   - address breakpoints and an instruction count breakpoint
//   - memory peek
//   - CPU, PPU and controller port inspection
//   - a single keypress stepping monitor
//
// Initialisation of the debugger is done with the NewDebugger() function
//
//	dbg, _ := debugger.NewDebugger(nes, os.Stdin, os.Stdout)
//
// Once initialised, the debugger can be started with the Start() function.
// Input is read a line at a time until the QUIT command or the end of the
// input. Commands can be separated with a semi-colon and lines beginning with
// a hash are ignored.
//
// When the input is a terminal, an easyterm.Terminal should be attached with
// SetTerminal(). The MONITOR command will then put the terminal into cbreak
// mode so that single key presses can be used to step the emulation.
package debugger
