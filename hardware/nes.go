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
	"fmt"

	"github.com/nesgopher/nesgopher/cartridgeloader"
	"github.com/nesgopher/nesgopher/environment"
	"github.com/nesgopher/nesgopher/hardware/cpu"
	"github.com/nesgopher/nesgopher/hardware/input"
	"github.com/nesgopher/nesgopher/hardware/memory"
	"github.com/nesgopher/nesgopher/hardware/memory/cartridge"
	"github.com/nesgopher/nesgopher/hardware/ppu"
	"github.com/nesgopher/nesgopher/logger"
)

// the number of PPU cycles for every CPU cycle.
const ppuCyclesPerCPUCycle = 3

// NES contains pointers to all the NES sub-systems.
type NES struct {
	env *environment.Environment

	CPU   *cpu.CPU
	PPU   *ppu.PPU
	Mem   *memory.Memory
	Cart  *cartridge.Cartridge
	Ports *input.Ports

	// the number of ticks since reset
	ticks uint64

	// the number of CPU cycles since reset, including cycles taken by DMA
	cpuCycles uint64

	// NMI raised by the PPU waiting to be delivered at the next instruction
	// boundary
	nmiPending bool
}

// NewNES creates a new NES and everything associated with the hardware. A
// cartridge must be attached before the emulation is run. A nil Environment
// is replaced with a default main emulation environment.
func NewNES(env *environment.Environment) (*NES, error) {
	if env == nil {
		var err error
		env, err = environment.NewEnvironment(environment.MainEmulation, nil, nil)
		if err != nil {
			return nil, err
		}
	}

	nes := &NES{env: env}

	nes.Cart = cartridge.NewCartridge(env)
	nes.Ports = input.NewPorts()
	nes.PPU = ppu.NewPPU(env, nes.Cart)
	nes.Mem = memory.NewMemory(env, nes.Ports, nes.Cart)
	nes.Mem.Plumb(nes.PPU)
	nes.PPU.Plumb(nes.Mem)
	nes.CPU = cpu.NewCPU(env, nes.Mem)

	env.Random.SetClock(nes)

	return nes, nil
}

func (nes *NES) String() string {
	return fmt.Sprintf("%s\n%s\n%s", nes.CPU, nes.PPU, nes.Ports)
}

// Env returns the environment the emulation is running in.
func (nes *NES) Env() *environment.Environment {
	return nes.env
}

// Ticks implements the random.Clock interface.
func (nes *NES) Ticks() uint64 {
	return nes.ticks
}

// CPUCycles returns the number of CPU cycles since reset.
func (nes *NES) CPUCycles() uint64 {
	return nes.cpuCycles
}

// AttachCartridge loads the cartridge described by the loader and resets
// the NES.
func (nes *NES) AttachCartridge(cartload cartridgeloader.Loader) error {
	if err := nes.Cart.Attach(cartload); err != nil {
		return err
	}
	return nes.Reset()
}

// Eject the cartridge. The NES should be reset before it is run again.
func (nes *NES) Eject() {
	nes.Cart.Eject()
}

// Reset emulates the reset switch on the console. Memory and the PPU are
// cleared and the CPU loads the reset vector.
func (nes *NES) Reset() error {
	nes.ticks = 0
	nes.cpuCycles = 0
	nes.nmiPending = false

	nes.Mem.Reset()
	nes.Cart.Reset()
	nes.PPU.Reset()

	if err := nes.CPU.Reset(); err != nil {
		return err
	}

	logger.Logf(nes.env, "nes", "reset: %s", nes.Cart.ID())

	return nil
}

// SetButtons sets the button state of the controller in the port. The mask
// is a combination of input.Button values.
func (nes *NES) SetButtons(port input.Port, mask uint8) {
	nes.Ports.SetButtons(port, mask)
}
