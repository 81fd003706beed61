// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"strings"

	"github.com/MatthiasValvekens/wishbone-tool/server"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// MapArgs is an in-memory Args.
type MapArgs map[string]string

func (m MapArgs) ValueOf(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// FlagArgs reads values from a parsed flag set. Only flags that were set on
// the command line count as supplied; declared defaults do not.
type FlagArgs struct {
	*flag.FlagSet
}

func (a FlagArgs) ValueOf(name string) (string, bool) {
	f := a.Lookup(name)
	if f == nil || !f.Changed {
		return "", false
	}
	return f.Value.String(), true
}

// ViperArgs reads values from viper, so changed flags, environment variables
// and the config file all count as supplied.
type ViperArgs struct {
	*viper.Viper
}

func (a ViperArgs) ValueOf(name string) (string, bool) {
	if !a.IsSet(name) {
		return "", false
	}
	return a.GetString(name), true
}

// RegisterFlags declares the flags consulted by Build on fs.
func RegisterFlags(fs *flag.FlagSet) {
	fs.String(FlagVID, "", "USB vendor ID of the bridge to open.")
	fs.String(FlagPID, "", "USB product ID of the bridge to open.")
	fs.String(FlagSerial, "", "Serial port to use; selects the UART bridge instead of USB.")
	fs.String(FlagBaud, "", "Baud rate of the serial port.")
	fs.StringP(FlagAddress, "a", "", "Address of the memory location to read or write.")
	fs.String(FlagValue, "", "Value to write to --address. Without it, --address is read.")
	fs.String(FlagPort, fmt.Sprint(DefaultBindPort), "Port to listen on for server operations.")
	fs.String(FlagBindAddr, DefaultBindAddr, "Address to listen on for server operations.")
	fs.StringP(FlagServerKind, "s", "", fmt.Sprintf("Server to start. Possible values: %s", strings.Join(server.Kinds(), ", ")))
	fs.String(FlagRandomLoops, "", "Number of iterations for the random-test server.")
	fs.String(FlagRandomAddress, "", "Address used by the random-test server.")
}
