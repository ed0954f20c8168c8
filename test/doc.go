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

// Package test contains helper functions that remove the boilerplate from
// tests written with the standard testing package.
//
// The Expect*() functions report a failure with t.Errorf() and allow the test
// to continue. The Demand*() functions use t.Fatalf() and should be used when
// later parts of the test depend on the outcome, for example checking the
// length of two slices before iterating over them together.
//
// Success and failure are interpreted according to the type of the value:
//
//	bool  -> true is success
//	error -> nil is success
//	nil   -> success
//
// Any other type is unsupported and causes the test to fail immediately.
//
// The optional tags arguments are printed at the start of a failure message.
// They are useful for identifying which iteration of a loop failed.
//
// CappedWriter and RingWriter implement io.Writer and are used to capture
// output for later comparison.
package test
