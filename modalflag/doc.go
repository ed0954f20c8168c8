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

// Package modalflag wraps the flag package of the Go standard library and adds
// program modes. Each mode has its own set of flags and may itself have
// sub-modes.
//
// Arguments are given once with NewArgs() and then consumed one mode at a
// time with Parse():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "DEBUG", "DIGEST")
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		frames := md.AddInt("frames", 0, "number of frames to run")
//		p, err = md.Parse()
//		...
//	}
//
// The first sub-mode in the list is the default. If the first argument is not
// a sub-mode (case insensitive) the default mode is selected and the argument
// is left for the next call to Parse().
//
// Help is printed automatically when the -help flag is found. The Output field
// must be set for the help to be visible.
package modalflag
