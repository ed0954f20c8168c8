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

import "fmt"

// Loopy is one of the two internal scroll registers of the PPU (v and t). The
// 15 bits of the register are laid out as:
//
//	yyy NN YYYYY XXXXX
//	||| || ||||| +++++-- coarse X scroll
//	||| || +++++-------- coarse Y scroll
//	||| ++-------------- nametable select
//	+++----------------- fine Y scroll
type Loopy uint16

const (
	loopyCoarseX   = Loopy(0x001f)
	loopyCoarseY   = Loopy(0x03e0)
	loopyNametable = Loopy(0x0c00)
	loopyFineY     = Loopy(0x7000)

	// the bits that are used as a PPU address
	loopyAddress = Loopy(0x3fff)

	// the register is only 15 bits wide
	loopyMask = Loopy(0x7fff)
)

func (l Loopy) String() string {
	return fmt.Sprintf("%04x [cx=%d cy=%d nt=%d fy=%d]", uint16(l), l.CoarseX(), l.CoarseY(), l.Nametable(), l.FineY())
}

// Address returns the register as an address in the PPU address space.
func (l Loopy) Address() uint16 {
	return uint16(l & loopyAddress)
}

// CoarseX returns bits 0 to 4.
func (l Loopy) CoarseX() uint8 {
	return uint8(l & loopyCoarseX)
}

// SetCoarseX sets bits 0 to 4 from the low 5 bits of v.
func (l *Loopy) SetCoarseX(v uint8) {
	*l = (*l &^ loopyCoarseX) | (Loopy(v) & 0x1f)
}

// CoarseY returns bits 5 to 9.
func (l Loopy) CoarseY() uint8 {
	return uint8((l & loopyCoarseY) >> 5)
}

// SetCoarseY sets bits 5 to 9 from the low 5 bits of v.
func (l *Loopy) SetCoarseY(v uint8) {
	*l = (*l &^ loopyCoarseY) | ((Loopy(v) & 0x1f) << 5)
}

// Nametable returns bits 10 and 11. Bit 0 of the result selects the
// horizontal nametable and bit 1 selects the vertical nametable.
func (l Loopy) Nametable() uint8 {
	return uint8((l & loopyNametable) >> 10)
}

// SetNametable sets bits 10 and 11 from the low 2 bits of v.
func (l *Loopy) SetNametable(v uint8) {
	*l = (*l &^ loopyNametable) | ((Loopy(v) & 0x03) << 10)
}

// FineY returns bits 12 to 14.
func (l Loopy) FineY() uint8 {
	return uint8((l & loopyFineY) >> 12)
}

// SetFineY sets bits 12 to 14 from the low 3 bits of v.
func (l *Loopy) SetFineY(v uint8) {
	*l = (*l &^ loopyFineY) | ((Loopy(v) & 0x07) << 12)
}

// Add n to the register. The register wraps at 15 bits.
func (l *Loopy) Add(n uint16) {
	*l = (*l + Loopy(n)) & loopyMask
}

// IncrementCoarseX moves to the next tile. The horizontal nametable is
// toggled when coarse X wraps.
func (l *Loopy) IncrementCoarseX() {
	if l.CoarseX() == 31 {
		l.SetCoarseX(0)
		l.SetNametable(l.Nametable() ^ 0x01)
		return
	}
	l.SetCoarseX(l.CoarseX() + 1)
}

// IncrementY moves to the next pixel row. When fine Y overflows coarse Y is
// incremented. Row 29 is the last row of a nametable so coarse Y wraps and
// the vertical nametable is toggled. Rows 30 and 31 hold the attribute table;
// coarse Y wraps from 31 without toggling the nametable.
func (l *Loopy) IncrementY() {
	if l.FineY() < 7 {
		l.SetFineY(l.FineY() + 1)
		return
	}

	l.SetFineY(0)

	switch l.CoarseY() {
	case 29:
		l.SetCoarseY(0)
		l.SetNametable(l.Nametable() ^ 0x02)
	case 31:
		l.SetCoarseY(0)
	default:
		l.SetCoarseY(l.CoarseY() + 1)
	}
}

// CopyHorizontal copies the coarse X and horizontal nametable bits from t.
func (l *Loopy) CopyHorizontal(t Loopy) {
	l.SetCoarseX(t.CoarseX())
	l.SetNametable((l.Nametable() & 0x02) | (t.Nametable() & 0x01))
}

// CopyVertical copies the fine Y, coarse Y and vertical nametable bits from t.
func (l *Loopy) CopyVertical(t Loopy) {
	l.SetFineY(t.FineY())
	l.SetCoarseY(t.CoarseY())
	l.SetNametable((t.Nametable() & 0x02) | (l.Nametable() & 0x01))
}
