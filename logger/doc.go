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

// Package logger is the central log for the emulator. There is one central
// log for the entire application, reached through the package level
// functions. Entries are tagged with a short string identifying the area of
// the emulator that made the entry:
//
//	logger.Logf(logger.Allow, "cartridge", "mapper %s", id)
//
// Every log request carries a Permission. Emulations that should not write to
// the log (test emulations, for example) can pass a Permission that returns
// false from AllowLogging().
//
// Identical consecutive entries are collapsed into one entry with a repeat
// count. The log holds a maximum number of entries; older entries are
// discarded.
package logger
