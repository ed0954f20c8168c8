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

package hardware

import (
	"github.com/nesgopher/nesgopher/curated"
)

// Halt is the pattern an Observer should use to stop Run() or
// RunForFrameCount() cleanly.
const Halt = "nes: halted"

// While the continueCheck() function only runs at the end of a CPU
// instruction it can still be expensive to do a full continue check every
// time.
//
// It depends on context whether it is used or not but the PerformanceBrake is
// a standard value that can be used to filter out expensive code paths within
// a continueCheck() implementation. For example:
//
//	performanceFilter++
//	if performanceFilter >= hardware.PerformanceBrake {
//		performanceFilter = 0
//		if end_condition == true {
//			return false, nil
//		}
//	}
//	return true, nil
const PerformanceBrake = 100

// Run sets the emulation running as quickly as possible. The continueCheck
// function is called after every instruction and the emulation stops when it
// returns false. A nil continueCheck runs the emulation until the observer
// halts it or an error occurs.
func (nes *NES) Run(continueCheck func() (bool, error), observer Observer) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	running := true
	for running {
		if err := nes.Step(observer); err != nil {
			if curated.Is(err, Halt) {
				return nil
			}
			return err
		}

		var err error
		running, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForFrameCount sets the emulation running for the specified number of
// frames. The emulation stops on the tick that completes the final frame.
// Useful for digest and regression tests.
func (nes *NES) RunForFrameCount(numFrames int, observer Observer) error {
	targetFrame := nes.PPU.Frames() + uint64(numFrames)

	for nes.PPU.Frames() < targetFrame {
		fresh, err := nes.Tick()
		if err != nil {
			return err
		}

		if fresh && observer != nil {
			if err := observer(nes, nes.CPU.LastResult); err != nil {
				if curated.Is(err, Halt) {
					return nil
				}
				return err
			}
		}
	}

	return nil
}
