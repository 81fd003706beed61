package config

import (
	"strings"
	"testing"

	"github.com/MatthiasValvekens/wishbone-tool/bridge"
	"github.com/MatthiasValvekens/wishbone-tool/server"
	"github.com/efficientgo/core/testutil"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func newFlagSet(t *testing.T, args ...string) *flag.FlagSet {
	t.Helper()
	fs := flag.NewFlagSet("wishbone-tool", flag.ContinueOnError)
	RegisterFlags(fs)
	testutil.Ok(t, fs.Parse(args))
	return fs
}

func TestFlagArgsIgnoresDefaults(t *testing.T) {
	args := FlagArgs{newFlagSet(t, "-a", "0x100", "--serial=/dev/ttyUSB1")}

	v, ok := args.ValueOf(FlagAddress)
	testutil.Assert(t, ok, "address should be supplied")
	testutil.Equals(t, "0x100", v)

	_, ok = args.ValueOf(FlagPort)
	testutil.Assert(t, !ok, "port default should not count as supplied")
	_, ok = args.ValueOf("no-such-flag")
	testutil.Assert(t, !ok, "unknown flag should not be supplied")

	cfg, err := Build(args)
	testutil.Ok(t, err)
	testutil.Equals(t, bridge.UART, cfg.BridgeKind)
	testutil.Equals(t, DefaultBindPort, cfg.BindPort)
	testutil.Equals(t, DefaultBindAddr, cfg.BindAddr)
}

func newViper(t *testing.T, fs *flag.FlagSet) *viper.Viper {
	t.Helper()
	v := viper.New()
	testutil.Ok(t, v.BindPFlags(fs))
	v.SetEnvPrefix("wishbone")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func TestViperArgsEnvironment(t *testing.T) {
	t.Setenv("WISHBONE_SERVER_KIND", "random-test")
	t.Setenv("WISHBONE_RANDOM_LOOPS", "0x10")

	v := newViper(t, newFlagSet(t, "--port", "0b11"))
	cfg, err := Build(ViperArgs{v})
	testutil.Ok(t, err)

	testutil.Equals(t, server.RandomTest, cfg.ServerKind)
	testutil.Equals(t, uint32(16), *cfg.RandomLoops)
	testutil.Equals(t, uint32(3), cfg.BindPort)
	testutil.Equals(t, DefaultBindAddr, cfg.BindAddr)
	testutil.Assert(t, cfg.SerialPort == nil, "serial should be absent")
}

func TestViperArgsConfigFile(t *testing.T) {
	v := newViper(t, newFlagSet(t, "--bind-addr", "::1"))
	v.SetConfigType("yaml")
	testutil.Ok(t, v.ReadConfig(strings.NewReader(
		"server-kind: gdb\n"+
			"bind-addr: 0.0.0.0\n"+
			"serial: /dev/ttyS0\n",
	)))

	cfg, err := Build(ViperArgs{v})
	testutil.Ok(t, err)
	testutil.Equals(t, server.GDB, cfg.ServerKind)
	testutil.Equals(t, bridge.UART, cfg.BridgeKind)
	testutil.Equals(t, "/dev/ttyS0", *cfg.SerialPort)
	// flags take precedence over the config file
	testutil.Equals(t, "::1", cfg.BindAddr)
}
