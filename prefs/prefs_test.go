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

package prefs_test

import (
	"testing"

	"github.com/nesgopher/nesgopher/curated"
	"github.com/nesgopher/nesgopher/prefs"
	"github.com/nesgopher/nesgopher/test"
)

func TestBool(t *testing.T) {
	var v prefs.Bool
	test.ExpectEquality(t, v.String(), "false")

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectEquality(t, v.Get().(bool), true)

	test.ExpectSuccess(t, v.Set("foo"))
	test.ExpectEquality(t, v.Get().(bool), false)

	test.ExpectSuccess(t, v.Set("TRUE"))
	test.ExpectEquality(t, v.String(), "true")

	err := v.Set(10)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, prefs.CannotConvert))

	test.ExpectSuccess(t, v.Reset())
	test.ExpectEquality(t, v.Get().(bool), false)
}

func TestInt(t *testing.T) {
	var v prefs.Int
	test.ExpectEquality(t, v.String(), "0")

	test.ExpectSuccess(t, v.Set(10))
	test.ExpectEquality(t, v.Get().(int), 10)

	test.ExpectSuccess(t, v.Set(" 99"))
	test.ExpectEquality(t, v.Get().(int), 99)

	test.ExpectFailure(t, v.Set("foo"))
	test.ExpectEquality(t, v.Get().(int), 99)

	test.ExpectSuccess(t, v.Reset())
	test.ExpectEquality(t, v.String(), "0")
}

func TestString(t *testing.T) {
	var v prefs.String
	test.ExpectSuccess(t, v.Set("hello world"))
	test.ExpectEquality(t, v.String(), "hello world")

	v.SetMaxLen(5)
	test.ExpectEquality(t, v.String(), "hello")

	test.ExpectSuccess(t, v.Set(1234567))
	test.ExpectEquality(t, v.String(), "12345")
}

func TestHooks(t *testing.T) {
	var v prefs.Int
	var pre, post int

	v.SetHookPre(func(value prefs.Value) error {
		pre = value.(int)
		return nil
	})
	v.SetHookPost(func(value prefs.Value) error {
		post = value.(int) * 2
		return nil
	})

	test.ExpectSuccess(t, v.Set(21))
	test.ExpectEquality(t, pre, 21)
	test.ExpectEquality(t, post, 42)

	// a failing pre hook prevents the value from changing
	v.SetHookPre(func(value prefs.Value) error {
		return curated.Errorf("prefs: test")
	})
	test.ExpectFailure(t, v.Set(1))
	test.ExpectEquality(t, v.Get().(int), 21)
}
