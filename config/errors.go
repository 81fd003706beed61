// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"

	"github.com/efficientgo/core/errors"
)

// ErrNoOperationSpecified is returned when neither a memory address nor a
// server kind was requested.
var ErrNoOperationSpecified = errors.New("no operation specified: pass --address or --server-kind")

// NumberParseError reports a numeric flag whose value is not a valid literal.
type NumberParseError struct {
	Flag string
	// Text is the flag value after its radix prefix was stripped.
	Text string
	Err  error
}

func (e *NumberParseError) Error() string {
	return fmt.Sprintf("invalid value for --%s: cannot parse %q as number: %v", e.Flag, e.Text, e.Err)
}

func (e *NumberParseError) Unwrap() error {
	return e.Err
}

// UnknownServerKindError reports a --server-kind value that names no known operation.
type UnknownServerKindError struct {
	Name string
}

func (e *UnknownServerKindError) Error() string {
	return fmt.Sprintf("unknown server kind %q", e.Name)
}
