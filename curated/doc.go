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

// Package curated wraps the plain Go error type so that errors can be
// identified by the pattern that created them rather than by their formatted
// message.
//
// Errors are created with Errorf(). The arguments are not formatted until the
// Error() function is called, which means the pattern string remains
// available for comparison:
//
//	e := curated.Errorf("cpu: stack overflow at %#04x", pc)
//
//	if curated.Is(e, "cpu: stack overflow at %#04x") {
//		...
//	}
//
// Has() is like Is() but also searches any curated errors that were used as
// values when the error was created. Wrapping an error is therefore a matter
// of passing it as a value:
//
//	f := curated.Errorf("nes: %v", e)
//	curated.Has(f, "cpu: stack overflow at %#04x") // true
//	curated.Is(f, "cpu: stack overflow at %#04x")  // false
//
// Packages in this module declare the patterns they return as exported string
// constants so that callers can test for specific conditions.
//
// The Error() function normalises the message by collapsing a repeated
// leading part. Parts are the substrings separated by ": ". This means that a
// function can wrap an error with its own prefix without caring whether the
// wrapped error already starts with that prefix:
//
//	curated.Errorf("cartridge: %v", curated.Errorf("cartridge: no PRG banks"))
//
// prints as "cartridge: no PRG banks".
package curated
