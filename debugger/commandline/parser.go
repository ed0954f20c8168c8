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
	"sort"
	"strings"

	"github.com/nesgopher/nesgopher/curated"
)

// Sentinal error patterns.
const (
	TemplateError = "template: %v"
)

// ParseCommandTemplate turns a string representation of command syntax into
// a tree of nodes. The returned Commands are sorted by keyword.
func ParseCommandTemplate(template []string) (*Commands, error) {
	cmds := Commands{}

	for _, t := range template {
		fields := strings.Fields(t)
		if len(fields) == 0 {
			continue
		}

		root := &node{tag: strings.ToUpper(fields[0])}
		if strings.ContainsAny(root.tag, "[]()|%") {
			return nil, curated.Errorf(TemplateError, "command keyword is not a literal: "+fields[0])
		}

		for _, f := range cmds {
			if f.tag == root.tag {
				return nil, curated.Errorf(TemplateError, "duplicate command: "+root.tag)
			}
		}

		for _, a := range fields[1:] {
			n, err := parseArgument(a)
			if err != nil {
				return nil, curated.Errorf(TemplateError, err)
			}
			root.next = append(root.next, n)
		}

		cmds = append(cmds, root)
	}

	sort.Stable(cmds)

	return &cmds, nil
}

// parseArgument parses a single argument of a template. the argument is a
// single word, or a group of alternatives in brackets.
func parseArgument(a string) (*node, error) {
	group := groupRoot

	switch {
	case strings.HasPrefix(a, "["):
		if !strings.HasSuffix(a, "]") {
			return nil, curated.Errorf("unterminated required group: %s", a)
		}
		group = groupRequired
		a = a[1 : len(a)-1]
	case strings.HasPrefix(a, "("):
		if !strings.HasSuffix(a, ")") {
			return nil, curated.Errorf("unterminated optional group: %s", a)
		}
		group = groupOptional
		a = a[1 : len(a)-1]
	case strings.ContainsAny(a, "[]()|"):
		return nil, curated.Errorf("misplaced grouping symbol: %s", a)
	}

	alts := strings.Split(a, "|")

	var n *node
	for _, t := range alts {
		if t == "" || strings.ContainsAny(t, "[]()") {
			return nil, curated.Errorf("bad argument: %s", a)
		}

		if strings.HasPrefix(t, "%") {
			switch t {
			case "%N", "%S", "%*":
			default:
				return nil, curated.Errorf("unknown placeholder: %s", t)
			}
		} else {
			t = strings.ToUpper(t)
		}

		if n == nil {
			n = &node{tag: t, group: group}
		} else {
			n.branch = append(n.branch, &node{tag: t, group: group})
		}
	}

	return n, nil
}
