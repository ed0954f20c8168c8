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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/nesgopher/nesgopher/curated"
	"github.com/nesgopher/nesgopher/hardware"
)

// PerformanceError is the pattern for errors that occur during the
// performance check.
const PerformanceError = "performance: %v"

// Leadtime is the period the emulation runs for before measurement begins. It
// allows the frame rate to settle down.
var Leadtime = 2 * time.Second

// Check the performance of the emulator. The NES must have a cartridge
// attached.
//
// Emulation will run for the specified duration and will create a cpu, memory
// profile, a trace (or a combination of those) as defined by the Profile
// argument.
func Check(output io.Writer, profile Profile, nes *hardware.NES, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf(PerformanceError, err)
	}

	startFrame := nes.PPU.Frames()

	runner := func() error {
		// signals false when the leadtime has elapsed and true when the
		// measurement period has finished
		timerChan := make(chan bool, 2)

		time.AfterFunc(Leadtime, func() {
			timerChan <- false
			time.AfterFunc(dur, func() {
				timerChan <- true
			})
		})

		// only check the timer every PerformanceBrake instructions
		performanceBrake := 0

		return nes.Run(func() (bool, error) {
			performanceBrake++
			if performanceBrake < hardware.PerformanceBrake {
				return true, nil
			}
			performanceBrake = 0

			select {
			case v := <-timerChan:
				if v {
					return false, nil
				}
				startFrame = nes.PPU.Frames()
			default:
			}

			return true, nil
		}, nil)
	}

	if err := RunProfiler(profile, "performance", runner); err != nil {
		return curated.Errorf(PerformanceError, err)
	}

	numFrames := int(nes.PPU.Frames() - startFrame)
	fps, accuracy := CalcFPS(numFrames, dur.Seconds())
	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, dur.Seconds(), accuracy)

	return nil
}
