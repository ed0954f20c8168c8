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

//go:build statsview
// +build statsview

package statsview

import (
	"fmt"
	"io"
	"sync"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

const (
	chartsPath = "/debug/statsview"

	// milliseconds between samples. with maxPoints the charts show the
	// last minute of the emulator's life
	sampleInterval = 500
	maxPoints      = 120
)

// the viewer configuration is global to the statsview package so the server
// can only be started once per process
var once sync.Once

// Launch starts the stats server in its own goroutine and writes the URL of
// the charts page to output. Calling Launch more than once only repeats the
// URL.
func Launch(output io.Writer) {
	once.Do(func() {
		viewer.SetConfiguration(
			viewer.WithAddr(Address),
			viewer.WithInterval(sampleInterval),
			viewer.WithMaxPoints(maxPoints),
		)
		mgr := statsview.New()
		go mgr.Start()
	})

	fmt.Fprintf(output, "stats server available at http://%s%s\n", Address, chartsPath)
}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return true
}
