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

// Package commandline parses and validates the input to the debugger. Commands
// are described by templates, one template per command. For example:
//
//	BREAK [%N|ALL]
//	PEEK [%N] (%N)
//
// The first word of a template is the command keyword. Arguments in square
// brackets are required and arguments in parentheses are optional.
// Alternatives within a group are separated by the pipe symbol. An argument
// outside of any group is required.
//
// Placeholders match classes of argument:
//
//	%N	numeric argument (decimal, 0x prefixed hex or $ prefixed hex)
//	%S	any string
//	%*	the remainder of the input, which may be empty
//
// Keywords are matched without regard to case.
package commandline
