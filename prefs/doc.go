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

// Package prefs provides preference values that can be safely read and written
// from more than one goroutine. Each value can have a hook function that is
// called before and after the value changes.
//
// The command line stack allows preferences to be specified on the command
// line, in the form "key::value; key::value". A group of values is pushed
// onto the stack and consumed by the emulation components as they create
// their own preferences.
package prefs
