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

// Package cartridgeloader is used to specify the data that is to be attached
// to the emulated NES.
//
// The Load() function reads the data from the source named by the Filename
// field. Local files and data over HTTP are supported:
//
//	cl := cartridgeloader.NewLoader("roms/nestest.nes")
//	if err := cl.Load(); err != nil {
//		return err
//	}
//
// Data that is already in memory can be wrapped with NewLoaderFromData(). This
// is most useful for testing.
package cartridgeloader
