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

package cartridge

import (
	"github.com/nesgopher/nesgopher/hardware/memory/cartridge/mapper"
)

// ejected implements the mapper.CartMapper interface.
type ejected struct{}

func newEjected() *ejected {
	return &ejected{}
}

func (cart *ejected) String() string {
	return "ejected"
}

// ID implements the mapper.CartMapper interface.
func (cart *ejected) ID() mapper.ID {
	return mapper.Ejected
}

// Init implements the mapper.CartMapper interface.
func (cart *ejected) Init(_ *mapper.ROM) error {
	return nil
}

// Dispose implements the mapper.CartMapper interface.
func (cart *ejected) Dispose() {
}

// Reset implements the mapper.CartMapper interface.
func (cart *ejected) Reset() {
}

// MappedBanks implements the mapper.CartMapper interface.
func (cart *ejected) MappedBanks() string {
	return "-"
}

// Peek implements the mapper.CartMapper interface.
func (cart *ejected) Peek(_ uint16) uint8 {
	return 0
}

// CPURead implements the mapper.CartMapper interface.
func (cart *ejected) CPURead(_ uint16) (uint8, error) {
	return 0, nil
}

// CPUWrite implements the mapper.CartMapper interface.
func (cart *ejected) CPUWrite(_ uint16, _ uint8) error {
	return nil
}

// PPURead implements the mapper.CartMapper interface.
func (cart *ejected) PPURead(_ uint16) (uint8, error) {
	return 0, nil
}

// PPUWrite implements the mapper.CartMapper interface.
func (cart *ejected) PPUWrite(_ uint16, _ uint8) error {
	return nil
}
