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

package random

import (
	"math/rand"
	"time"
)

// the base seed for all random numbers.
var baseSeed int64

func init() {
	baseSeed = int64(time.Now().Nanosecond())
}

// Clock is the source of emulation time.
type Clock interface {
	Ticks() uint64
}

// Random is a random number generator that is sensitive to time within the
// emulation.
type Random struct {
	clock Clock

	// use zero seed rather than the random base seed. useful for normalised
	// instances where random numbers must be predictable
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type. A
// nil Clock is allowed and can be replaced with SetClock().
func NewRandom(clock Clock) *Random {
	return &Random{
		clock: clock,
	}
}

// SetClock changes the source of emulation time.
func (rnd *Random) SetClock(clock Clock) {
	rnd.clock = clock
}

func (rnd *Random) rand() *rand.Rand {
	var t int64
	if rnd.clock != nil {
		t = int64(rnd.clock.Ticks())
	}
	if rnd.ZeroSeed {
		return rand.New(rand.NewSource(t))
	}
	return rand.New(rand.NewSource(baseSeed + t))
}

// Intn returns a random number in the range [0,n). The same value will be
// returned for the same emulation time.
func (rnd *Random) Intn(n int) int {
	return rnd.rand().Intn(n)
}

// Fill the slice with random bytes. The sequence is the same for the same
// emulation time.
func (rnd *Random) Fill(b []uint8) {
	r := rnd.rand()
	for i := range b {
		b[i] = uint8(r.Intn(256))
	}
}
