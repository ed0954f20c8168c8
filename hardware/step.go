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
	"github.com/nesgopher/nesgopher/hardware/cpu/execution"
)

// Observer is called by Step(), Run() and RunForFrameCount() after every
// CPU instruction. The result is the result of the instruction that has just
// been executed.
//
// Returning an error stops the emulation. Return the Halt pattern to stop
// Run() without the error being passed back to the caller.
type Observer func(nes *NES, result execution.Result) error

// Tick advances the NES by one PPU cycle. Every third tick is also a CPU
// cycle.
//
// Returns true if a new CPU instruction was executed during the tick.
func (nes *NES) Tick() (bool, error) {
	if err := nes.PPU.Step(); err != nil {
		return false, err
	}

	if nes.PPU.NMI() {
		nes.nmiPending = true
	}

	var fresh bool

	if nes.ticks%ppuCyclesPerCPUCycle == 0 {
		if nes.PPU.DMAActive() {
			// the CPU is stalled for the duration of the transfer
			if err := nes.PPU.StepDMA(nes.cpuCycles); err != nil {
				return false, err
			}
		} else {
			if nes.nmiPending && nes.CPU.AtBoundary() {
				nes.nmiPending = false
				if err := nes.CPU.NMI(); err != nil {
					return false, err
				}
			}

			var err error
			fresh, err = nes.CPU.Clock()
			if err != nil {
				return false, err
			}
		}

		nes.cpuCycles++
	}

	nes.ticks++

	return fresh, nil
}

// Step the emulation until the next CPU instruction has been executed. The
// observer is called with the result of the instruction. A nil observer is
// allowed.
func (nes *NES) Step(observer Observer) error {
	for {
		fresh, err := nes.Tick()
		if err != nil {
			return err
		}
		if fresh {
			break
		}
	}

	if observer != nil {
		return observer(nes, nes.CPU.LastResult)
	}

	return nil
}
