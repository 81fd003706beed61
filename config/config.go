// SPDX-License-Identifier: Apache-2.0

// Package config turns raw command-line values into a validated Config.
package config

import (
	baseerrors "errors"
	"fmt"

	"github.com/MatthiasValvekens/wishbone-tool/bridge"
	"github.com/MatthiasValvekens/wishbone-tool/literal"
	"github.com/MatthiasValvekens/wishbone-tool/server"
	"github.com/efficientgo/core/errors"
)

// Flag names consulted by Build.
const (
	FlagVID           = "vid"
	FlagPID           = "pid"
	FlagSerial        = "serial"
	FlagBaud          = "baud"
	FlagAddress       = "address"
	FlagValue         = "value"
	FlagPort          = "port"
	FlagBindAddr      = "bind-addr"
	FlagServerKind    = "server-kind"
	FlagRandomLoops   = "random-loops"
	FlagRandomAddress = "random-address"
)

const (
	DefaultBindAddr        = "127.0.0.1"
	DefaultBindPort uint32 = 3333
)

// Args looks up the raw value of a named flag. The second return value
// reports whether the flag was supplied at all.
type Args interface {
	ValueOf(name string) (string, bool)
}

// Config is the resolved configuration of a single tool invocation.
// Optional values are nil when the corresponding flag was absent.
type Config struct {
	USBVendor     *bridge.USBID
	USBProduct    *bridge.USBID
	MemoryAddress *uint32
	MemoryValue   *uint32
	ServerKind    server.Kind
	BridgeKind    bridge.Kind
	SerialPort    *string
	SerialBaud    *uint
	BindAddr      string
	BindPort      uint32
	RandomLoops   *uint32
	RandomAddress *uint32
}

// Build resolves args into a Config. The first malformed value aborts the
// build; defaults only ever replace absent flags.
func Build(args Args) (*Config, error) {
	cfg := &Config{
		BridgeKind: bridge.USB,
		BindAddr:   DefaultBindAddr,
		BindPort:   DefaultBindPort,
	}

	var err error
	if cfg.USBVendor, err = optionalUSBID(args, FlagVID); err != nil {
		return nil, err
	}
	if cfg.USBProduct, err = optionalUSBID(args, FlagPID); err != nil {
		return nil, err
	}

	if port, ok := args.ValueOf(FlagSerial); ok {
		cfg.SerialPort = &port
		cfg.BridgeKind = bridge.UART
	}

	baud, err := optionalUint32(args, FlagBaud)
	if err != nil {
		return nil, err
	}
	if baud != nil {
		b := uint(*baud)
		cfg.SerialBaud = &b
	}

	if cfg.MemoryAddress, err = optionalUint32(args, FlagAddress); err != nil {
		return nil, err
	}
	if cfg.MemoryValue, err = optionalUint32(args, FlagValue); err != nil {
		return nil, err
	}

	if raw, ok := args.ValueOf(FlagPort); ok {
		port, err := literal.ParseUint32(raw)
		if err != nil {
			return nil, numberParseError(FlagPort, err)
		}
		cfg.BindPort = port
	}

	if addr, ok := args.ValueOf(FlagBindAddr); ok {
		cfg.BindAddr = addr
	}

	cfg.ServerKind, err = server.KindFromArg(args.ValueOf(FlagServerKind))
	if err != nil {
		var unknown *server.UnknownKindError
		if baseerrors.As(err, &unknown) {
			return nil, &UnknownServerKindError{Name: unknown.Name}
		}
		return nil, err
	}

	if cfg.RandomLoops, err = optionalUint32(args, FlagRandomLoops); err != nil {
		return nil, err
	}
	if cfg.RandomAddress, err = optionalUint32(args, FlagRandomAddress); err != nil {
		return nil, err
	}

	if cfg.MemoryAddress == nil && cfg.ServerKind == server.None {
		return nil, ErrNoOperationSpecified
	}
	return cfg, nil
}

func optionalUSBID(args Args, flag string) (*bridge.USBID, error) {
	raw, ok := args.ValueOf(flag)
	if !ok {
		return nil, nil
	}
	v, err := literal.ParseUint16(raw)
	if err != nil {
		return nil, numberParseError(flag, err)
	}
	id := bridge.USBID(v)
	return &id, nil
}

func optionalUint32(args Args, flag string) (*uint32, error) {
	raw, ok := args.ValueOf(flag)
	if !ok {
		return nil, nil
	}
	v, err := literal.ParseUint32(raw)
	if err != nil {
		return nil, numberParseError(flag, err)
	}
	return &v, nil
}

func numberParseError(flag string, err error) error {
	var litErr *literal.Error
	if baseerrors.As(err, &litErr) {
		return &NumberParseError{Flag: flag, Text: litErr.Digits, Err: litErr.Err}
	}
	return errors.Wrapf(err, "invalid value for --%s", flag)
}

// LogValues returns the configured fields as alternating keys and values,
// suitable for a go-kit logger. Absent optional fields are omitted.
func (c *Config) LogValues() []interface{} {
	kv := []interface{}{
		"bridge", c.BridgeKind,
		"server", c.ServerKind,
		"bind", c.BindAddr,
		"port", c.BindPort,
	}
	if c.USBVendor != nil {
		kv = append(kv, "vid", *c.USBVendor)
	}
	if c.USBProduct != nil {
		kv = append(kv, "pid", *c.USBProduct)
	}
	if c.SerialPort != nil {
		kv = append(kv, "serial", *c.SerialPort)
	}
	if c.SerialBaud != nil {
		kv = append(kv, "baud", *c.SerialBaud)
	}
	if c.MemoryAddress != nil {
		kv = append(kv, "address", hex32(*c.MemoryAddress))
	}
	if c.MemoryValue != nil {
		kv = append(kv, "value", hex32(*c.MemoryValue))
	}
	if c.RandomLoops != nil {
		kv = append(kv, "random_loops", *c.RandomLoops)
	}
	if c.RandomAddress != nil {
		kv = append(kv, "random_address", hex32(*c.RandomAddress))
	}
	return kv
}

func hex32(v uint32) string {
	return fmt.Sprintf("0x%08x", v)
}
