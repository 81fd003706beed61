package server

import (
	"errors"
	"testing"

	"github.com/efficientgo/core/testutil"
)

func TestKindFromArg(t *testing.T) {
	for _, tc := range []struct {
		name    string
		value   string
		present bool
		kind    Kind
		err     bool
	}{
		{name: "absent", kind: None},
		{name: "absent ignores value", value: "gdb", kind: None},
		{name: "none", value: "none", present: true, kind: None},
		{name: "wishbone", value: "wishbone", present: true, kind: Wishbone},
		{name: "gdb", value: "gdb", present: true, kind: GDB},
		{name: "random test", value: "random-test", present: true, kind: RandomTest},
		{name: "case sensitive", value: "GDB", present: true, err: true},
		{name: "empty", value: "", present: true, err: true},
		{name: "unknown", value: "jtag", present: true, err: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			kind, err := KindFromArg(tc.value, tc.present)
			if tc.err {
				var unknown *UnknownKindError
				testutil.Assert(t, errors.As(err, &unknown), "expected *UnknownKindError, got %v", err)
				testutil.Equals(t, tc.value, unknown.Name)
				return
			}
			testutil.Ok(t, err)
			testutil.Equals(t, tc.kind, kind)
		})
	}
}

func TestKindString(t *testing.T) {
	for _, name := range Kinds() {
		kind, err := KindFromArg(name, true)
		testutil.Ok(t, err)
		testutil.Equals(t, name, kind.String())
	}
	testutil.Equals(t, "server(9)", Kind(9).String())
}
