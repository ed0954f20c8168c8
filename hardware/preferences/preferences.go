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

// Package preferences collates the preference values that affect the emulated
// hardware. Values can be set from the command line with the prefs package's
// command line stack, using the keys:
//
//	hardware.randstate
//	cpu.illegalasnop
//	run.framelimit
package preferences

import (
	"fmt"

	"github.com/nesgopher/nesgopher/prefs"
)

// Preferences defines and collates all the preference values used by the
// emulated hardware.
type Preferences struct {
	// initialise RAM and CPU registers to an unknown state after reset
	RandomState prefs.Bool

	// execute undocumented opcodes as NOPs rather than stopping with an error
	IllegalAsNOP prefs.Bool

	// number of frames to run before stopping. zero means no limit
	FrameLimit prefs.Int
}

func (p *Preferences) String() string {
	return fmt.Sprintf("hardware.randstate::%s; cpu.illegalasnop::%s; run.framelimit::%s",
		p.RandomState.String(), p.IllegalAsNOP.String(), p.FrameLimit.String())
}

// NewPreferences is the preferred method of initialisation for the Preferences
// type. Values found in the command line stack override the defaults.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	if err := prefs.ApplyCommandLinePref("hardware.randstate", &p.RandomState); err != nil {
		return nil, err
	}
	if err := prefs.ApplyCommandLinePref("cpu.illegalasnop", &p.IllegalAsNOP); err != nil {
		return nil, err
	}
	if err := prefs.ApplyCommandLinePref("run.framelimit", &p.FrameLimit); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	_ = p.RandomState.Reset()
	_ = p.IllegalAsNOP.Reset()
	_ = p.FrameLimit.Reset()
}
