// SPDX-License-Identifier: Apache-2.0

package server

import "fmt"

// Kind is the long-running operation the tool starts once the bridge is up.
type Kind uint8

const (
	// None means no server; the tool performs a one-shot operation.
	None Kind = iota
	Wishbone
	GDB
	RandomTest
)

var kindNames = []string{
	None:       "none",
	Wishbone:   "wishbone",
	GDB:        "gdb",
	RandomTest: "random-test",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("server(%d)", uint8(k))
}

// Kinds returns the recognized server kind names.
func Kinds() []string {
	return append([]string(nil), kindNames...)
}

// UnknownKindError is returned for a server kind name that is not recognized.
type UnknownKindError struct {
	Name string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown server kind %q", e.Name)
}

// KindFromArg resolves an optional argument value to a Kind. An absent value
// means None.
func KindFromArg(value string, present bool) (Kind, error) {
	if !present {
		return None, nil
	}
	for k, name := range kindNames {
		if name == value {
			return Kind(k), nil
		}
	}
	return None, &UnknownKindError{Name: value}
}
