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
	"strconv"
	"strings"

	"github.com/nesgopher/nesgopher/curated"
)

// Sentinal error patterns.
const (
	ValidationError = "%v for %s"
	UnknownCommand  = "unrecognised command (%s)"
)

// Validate input string against command definitions.
func (cmds Commands) Validate(input string) error {
	return cmds.ValidateTokens(TokeniseInput(input))
}

// ValidateTokens like Validate, but works on tokens rather than an input
// string. The position of the tokens is restored before returning.
func (cmds Commands) ValidateTokens(tokens *Tokens) error {
	defer tokens.Reset()

	cmd, ok := tokens.Get()
	if !ok {
		return nil
	}
	cmd = strings.ToUpper(cmd)

	for n := range cmds {
		if cmd == cmds[n].tag {
			for _, arg := range cmds[n].next {
				if err := arg.validate(tokens); err != nil {
					return curated.Errorf(ValidationError, err, cmd)
				}
			}

			if tokens.Remaining() > 0 {
				return curated.Errorf(ValidationError, "too many arguments", cmd)
			}

			return nil
		}
	}

	return curated.Errorf(UnknownCommand, cmd)
}

// ParseNumber parses a numeric argument as matched by the %N placeholder.
func ParseNumber(tok string) (uint64, error) {
	if strings.HasPrefix(tok, "$") {
		tok = "0x" + tok[1:]
	}
	return strconv.ParseUint(tok, 0, 32)
}

func (n *node) describe() string {
	switch n.tag {
	case "%N":
		return "numeric argument"
	case "%S":
		return "string argument"
	}
	s := strings.Builder{}
	s.WriteString(n.tag)
	for bi := range n.branch {
		s.WriteString(", ")
		s.WriteString(n.branch[bi].describe())
	}
	return s.String()
}

// matches returns true if the token matches the node tag. placeholders match
// by class.
func (n *node) matches(tok string) bool {
	switch n.tag {
	case "%N":
		_, err := ParseNumber(tok)
		return err == nil
	case "%S":
		return true
	}
	return strings.ToUpper(tok) == n.tag
}

func (n *node) validate(tokens *Tokens) error {
	if n.tag == "%*" {
		for !tokens.IsEnd() {
			tokens.Get()
		}
		return nil
	}

	tok, ok := tokens.Get()
	if !ok {
		if n.group == groupOptional {
			return nil
		}
		return curated.Errorf("missing %s", n.describe())
	}

	if n.matches(tok) {
		return nil
	}
	for _, b := range n.branch {
		if b.matches(tok) {
			return nil
		}
	}

	// an unmatched optional argument is left for the next node
	if n.group == groupOptional {
		tokens.Unget()
		return nil
	}

	if n.tag == "%N" && len(n.branch) == 0 {
		return curated.Errorf("numeric argument required (%s is not numeric)", tok)
	}

	return curated.Errorf("unrecognised argument (%s)", tok)
}
