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

package preferences_test

import (
	"testing"

	"github.com/nesgopher/nesgopher/hardware/preferences"
	"github.com/nesgopher/nesgopher/prefs"
	"github.com/nesgopher/nesgopher/test"
)

func TestDefaults(t *testing.T) {
	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.String(), "hardware.randstate::false; cpu.illegalasnop::false; run.framelimit::0")
}

func TestCommandLine(t *testing.T) {
	prefs.PushCommandLineStack("cpu.illegalasnop::true; run.framelimit::60; unknown::1")
	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.IllegalAsNOP.Get().(bool), true)
	test.ExpectEquality(t, p.FrameLimit.Get().(int), 60)
	test.ExpectEquality(t, p.RandomState.Get().(bool), false)

	// unknown keys are left on the stack
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "unknown::1")

	// invalid values are an error
	prefs.PushCommandLineStack("run.framelimit::ten")
	_, err = preferences.NewPreferences()
	test.ExpectFailure(t, err)
	prefs.PopCommandLineStack()
}
