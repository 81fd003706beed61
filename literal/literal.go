// SPDX-License-Identifier: Apache-2.0

// Package literal parses unsigned integer literals written with the usual
// 0x / 0b / leading-zero prefix conventions.
package literal

import (
	"fmt"
	"strconv"
	"strings"
)

// Error reports a literal whose digits could not be parsed in the detected base.
type Error struct {
	// Digits is the literal after prefix stripping.
	Digits string
	Base   int
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot parse %q as base-%d number: %v", e.Digits, e.Base, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// DetectBase strips a radix prefix from text and returns the remaining digits
// together with the radix they should be read in.
//
// A literal made only of zeros (other than "0" itself) strips down to an
// empty digit string and therefore never parses.
func DetectBase(text string) (string, int) {
	switch {
	case strings.HasPrefix(text, "0x"), strings.HasPrefix(text, "0X"):
		return text[2:], 16
	case strings.HasPrefix(text, "0b"), strings.HasPrefix(text, "0B"):
		return text[2:], 2
	case strings.HasPrefix(text, "0") && text != "0":
		return strings.TrimLeft(text, "0"), 8
	default:
		return text, 10
	}
}

func parse(text string, bitSize int) (uint64, error) {
	digits, base := DetectBase(text)
	v, err := strconv.ParseUint(digits, base, bitSize)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok {
			err = numErr.Err
		}
		return 0, &Error{Digits: digits, Base: base, Err: err}
	}
	return v, nil
}

// ParseUint16 parses text into a 16-bit unsigned integer.
func ParseUint16(text string) (uint16, error) {
	v, err := parse(text, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

// ParseUint32 parses text into a 32-bit unsigned integer.
func ParseUint32(text string) (uint32, error) {
	v, err := parse(text, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
