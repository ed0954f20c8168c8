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

package prefs

import (
	"fmt"
	"sort"
	"strings"
)

// each entry in the stack is a group of key/value pairs.
var commandLineStack []map[string]Value

// SizeCommandLineStack returns the number of groups on the command line
// stack.
func SizeCommandLineStack() int {
	return len(commandLineStack)
}

// PushCommandLineStack parses a prefs string and adds it to the stack as a new
// group. Entries that are not in the "key::value" form are ignored.
func PushCommandLineStack(prefs string) {
	group := make(map[string]Value)

	for _, entry := range strings.Split(prefs, ";") {
		kv := strings.Split(entry, "::")
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		if key == "" {
			continue
		}
		group[key] = strings.TrimSpace(kv[1])
	}

	commandLineStack = append(commandLineStack, group)
}

// PopCommandLineStack removes the most recent group from the stack. Returns
// the entries in the group that were never consumed by GetCommandLinePref(),
// as a prefs string sorted by key.
func PopCommandLineStack() string {
	if len(commandLineStack) == 0 {
		return ""
	}

	top := commandLineStack[len(commandLineStack)-1]
	commandLineStack = commandLineStack[:len(commandLineStack)-1]

	keys := make([]string, 0, len(top))
	for k := range top {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	unused := make([]string, 0, len(keys))
	for _, k := range keys {
		unused = append(unused, fmt.Sprintf("%s::%v", k, top[k]))
	}

	return strings.Join(unused, "; ")
}

// GetCommandLinePref returns the value for key from the group at the top of
// the stack. The entry is consumed when it is returned.
func GetCommandLinePref(key string) (bool, Value) {
	if len(commandLineStack) == 0 {
		return false, nil
	}

	top := commandLineStack[len(commandLineStack)-1]
	if v, ok := top[key]; ok {
		delete(top, key)
		return true, v
	}

	return false, nil
}

// ApplyCommandLinePref sets the Pref to the value for key, if the key is
// present in the top group of the command line stack.
func ApplyCommandLinePref(key string, p Pref) error {
	if ok, v := GetCommandLinePref(key); ok {
		return p.Set(v)
	}
	return nil
}
