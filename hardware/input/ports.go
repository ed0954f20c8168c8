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

package input

import (
	"fmt"
	"strings"
)

// Button is a single button on the NES controller. Buttons are combined into a
// bitmask.
type Button uint8

// List of valid Button values.
const (
	Right  Button = 0x01
	Left   Button = 0x02
	Down   Button = 0x04
	Up     Button = 0x08
	Start  Button = 0x10
	Select Button = 0x20
	B      Button = 0x40
	A      Button = 0x80
)

// the order buttons are listed in by String().
var buttonNames = []struct {
	b Button
	s string
}{
	{A, "A"}, {B, "B"}, {Select, "Select"}, {Start, "Start"},
	{Up, "Up"}, {Down, "Down"}, {Left, "Left"}, {Right, "Right"},
}

func (b Button) String() string {
	s := make([]string, 0, len(buttonNames))
	for _, n := range buttonNames {
		if b&n.b == n.b {
			s = append(s, n.s)
		}
	}
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, "+")
}

// Port identifies one of the two controller ports.
type Port int

// List of valid Port values.
const (
	Player1 Port = iota
	Player2
	NumPorts
)

// Ports is the pair of controller ports.
type Ports struct {
	latch [NumPorts]uint8
	shift [NumPorts]uint8
}

// NewPorts is the preferred method of initialisation for the Ports type.
func NewPorts() *Ports {
	return &Ports{}
}

func (p *Ports) String() string {
	return fmt.Sprintf("P1: %s P2: %s", Button(p.latch[Player1]), Button(p.latch[Player2]))
}

// Reset clears the latches and the shift registers.
func (p *Ports) Reset() {
	*p = Ports{}
}

// SetButtons sets the latch for the port to the bitmask. The new value is
// seen by the CPU after the next strobe.
func (p *Ports) SetButtons(port Port, mask uint8) {
	if port < 0 || port >= NumPorts {
		return
	}
	p.latch[port] = mask
}

// Buttons returns the latched button state for the port.
func (p *Ports) Buttons(port Port) uint8 {
	if port < 0 || port >= NumPorts {
		return 0
	}
	return p.latch[port]
}

// Press adds the button to the latch for the port.
func (p *Ports) Press(port Port, b Button) {
	p.SetButtons(port, p.Buttons(port)|uint8(b))
}

// Release removes the button from the latch for the port.
func (p *Ports) Release(port Port, b Button) {
	p.SetButtons(port, p.Buttons(port)&^uint8(b))
}

// Strobe copies the latches into the shift registers. This happens when the
// CPU writes to either controller address.
func (p *Ports) Strobe() {
	p.shift = p.latch
}

// Read returns the next bit from the shift register for the port and shifts
// the register.
func (p *Ports) Read(port Port) uint8 {
	if port < 0 || port >= NumPorts {
		return 0
	}
	v := p.Peek(port)
	p.shift[port] <<= 1
	return v
}

// Peek returns the next bit from the shift register for the port without
// shifting the register.
func (p *Ports) Peek(port Port) uint8 {
	if port < 0 || port >= NumPorts {
		return 0
	}
	if p.shift[port]&0x80 == 0x80 {
		return 1
	}
	return 0
}
