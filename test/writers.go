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

package test

import (
	"fmt"
)

// CappedWriter is an io.Writer that stops accepting data once a fixed number
// of bytes have been written.
type CappedWriter struct {
	buffer []byte
	size   int
}

// NewCappedWriter is the preferred method of initialisation for the
// CappedWriter type.
func NewCappedWriter(size int) (*CappedWriter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("test: invalid size for CappedWriter (%d)", size)
	}
	return &CappedWriter{
		size:   size,
		buffer: make([]byte, 0, size),
	}, nil
}

func (w *CappedWriter) String() string {
	return string(w.buffer)
}

// Reset empties the buffer.
func (w *CappedWriter) Reset() {
	w.buffer = w.buffer[:0]
}

// Write implements the io.Writer interface.
func (w *CappedWriter) Write(p []byte) (int, error) {
	remaining := w.size - len(w.buffer)
	if len(p) > remaining {
		p = p[:remaining]
	}
	w.buffer = append(w.buffer, p...)
	return len(p), nil
}

// RingWriter is an io.Writer that keeps only the most recent bytes written to
// it.
type RingWriter struct {
	buffer  []byte
	cursor  int
	wrapped bool
}

// NewRingWriter is the preferred method of initialisation for the RingWriter
// type.
func NewRingWriter(size int) (*RingWriter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("test: invalid size for RingWriter (%d)", size)
	}
	return &RingWriter{
		buffer: make([]byte, size),
	}, nil
}

func (w *RingWriter) String() string {
	if w.wrapped {
		return string(w.buffer[w.cursor:]) + string(w.buffer[:w.cursor])
	}
	return string(w.buffer[:w.cursor])
}

// Reset empties the buffer.
func (w *RingWriter) Reset() {
	w.cursor = 0
	w.wrapped = false
}

// Write implements the io.Writer interface.
func (w *RingWriter) Write(p []byte) (int, error) {
	n := len(p)
	for _, b := range p {
		w.buffer[w.cursor] = b
		w.cursor++
		if w.cursor >= len(w.buffer) {
			w.cursor = 0
			w.wrapped = true
		}
	}
	return n, nil
}
