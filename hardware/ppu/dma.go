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

package ppu

import (
	"fmt"

	"github.com/nesgopher/nesgopher/logger"
)

// the number of CPU cycles a DMA transfer takes depends on whether the
// transfer starts on an odd or an even cycle.
const (
	dmaCyclesOdd  = 513
	dmaCyclesEven = 514
)

// dma copies a page of CPU memory into primary OAM. The CPU is halted while
// the transfer is active.
type dma struct {
	active bool
	page   uint8

	// the number of cycles the transfer costs. zero until the first step
	cost int
	paid int

	copied bool
}

func (d dma) String() string {
	if !d.active {
		return "dma: idle"
	}
	return fmt.Sprintf("dma: page=%#02x paid=%d/%d copied=%v", d.page, d.paid, d.cost, d.copied)
}

// startDMA arms the DMA engine with the page to copy from. The transfer
// begins on the next CPU cycle.
func (ppu *PPU) startDMA(page uint8) {
	ppu.dma = dma{
		active: true,
		page:   page,
	}
	logger.Logf(ppu.env, "ppu", "dma from page %#02x", page)
}

// DMAActive returns true if a DMA transfer is in progress. The CPU should
// not be clocked while the transfer is active.
func (ppu *PPU) DMAActive() bool {
	return ppu.dma.active
}

// StepDMA advances the DMA transfer by one CPU cycle. The cycle argument is
// the count of CPU cycles since the machine was reset. It is used to decide
// the cost of the transfer on the first step and when the copy can begin.
func (ppu *PPU) StepDMA(cycle uint64) error {
	if !ppu.dma.active {
		return nil
	}

	odd := cycle%2 == 1

	if ppu.dma.cost == 0 {
		if odd {
			ppu.dma.cost = dmaCyclesOdd
		} else {
			ppu.dma.cost = dmaCyclesEven
		}
	}

	// the whole page is copied on the first odd cycle
	if !ppu.dma.copied && odd {
		origin := uint16(ppu.dma.page) << 8
		for i := uint16(0); i < OAMSize; i++ {
			v, err := ppu.mem.Read(origin | i)
			if err != nil {
				return err
			}
			ppu.OAM.Primary[i] = v
		}
		ppu.dma.copied = true
	}

	ppu.dma.paid++
	if ppu.dma.paid >= ppu.dma.cost {
		ppu.dma.active = false
	}

	return nil
}
