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

package commandline

import (
	"strings"
)

// Commands is the root of the node tree.
type Commands []*node

func (cmds Commands) Len() int {
	return len(cmds)
}

func (cmds Commands) Less(i int, j int) bool {
	return cmds[i].tag < cmds[j].tag
}

func (cmds Commands) Swap(i int, j int) {
	cmds[i], cmds[j] = cmds[j], cmds[i]
}

func (cmds Commands) String() string {
	s := strings.Builder{}
	for c := range cmds {
		s.WriteString(cmds[c].String())
		s.WriteString("\n")
	}
	return strings.TrimRight(s.String(), "\n")
}

// Keywords returns the list of command keywords in the order they appear in
// the Commands list.
func (cmds Commands) Keywords() []string {
	k := make([]string, 0, len(cmds))
	for c := range cmds {
		k = append(k, cmds[c].tag)
	}
	return k
}

type groupType int

const (
	groupRoot groupType = iota
	groupRequired
	groupOptional
)

type node struct {
	// tag should always be non-empty
	tag string

	// group will have the following values:
	//  groupRoot: nodes that are not in an explicit grouping
	//  groupRequired
	//  groupOptional
	group groupType

	next   []*node
	branch []*node
}

func (n node) String() string {
	s := strings.Builder{}

	s.WriteString(n.tag)

	for i := range n.next {
		switch n.next[i].group {
		case groupRequired:
			s.WriteString(" [")
		case groupOptional:
			s.WriteString(" (")
		default:
			s.WriteString(" ")
		}

		s.WriteString(n.next[i].String())

		switch n.next[i].group {
		case groupRequired:
			s.WriteString("]")
		case groupOptional:
			s.WriteString(")")
		}
	}

	for i := range n.branch {
		s.WriteString("|")
		s.WriteString(n.branch[i].String())
	}

	return s.String()
}
