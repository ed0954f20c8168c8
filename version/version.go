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

// Package version reports the version and VCS revision of the program. The
// release number is set by the linker:
//
//	go build -ldflags "-X github.com/nesgopher/nesgopher/version.number=v0.1.0"
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "Nesgopher"

// release number. empty if the program was not built with the linker flag
var number string

// Info is the version information for the running program.
type Info struct {
	// the release number, "unreleased" if there is VCS information but no
	// release number, or "local" if there is neither
	Version string

	// the VCS revision, suffixed with "+dirty" if the working tree was
	// modified
	Revision string

	// true if Version is a numbered release
	Release bool
}

func (inf Info) String() string {
	if inf.Release {
		return fmt.Sprintf("%s %s", ApplicationName, inf.Version)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, inf.Version, inf.Revision)
}

// Version returns the version information of the program.
func Version() Info {
	var settings []debug.BuildSetting
	if info, ok := debug.ReadBuildInfo(); ok {
		settings = info.Settings
	}
	return fromSettings(number, settings)
}

func fromSettings(number string, settings []debug.BuildSetting) Info {
	var vcs bool
	var revision string
	var modified bool

	for _, s := range settings {
		switch s.Key {
		case "vcs":
			vcs = true
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}

	inf := Info{Version: number, Release: number != ""}

	if revision == "" {
		inf.Revision = "no revision information"
	} else {
		inf.Revision = revision
		if modified {
			inf.Revision = fmt.Sprintf("%s+dirty", revision)
		}
	}

	if !inf.Release {
		if vcs {
			inf.Version = "unreleased"
		} else {
			inf.Version = "local"
		}
	}

	return inf
}
