// SPDX-License-Identifier: GPL-2.0-only

package main

import (
	"fmt"
	"strings"

	"github.com/MatthiasValvekens/wishbone-tool/config"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "wishbone"

// initConfig defines config flags, config file, and envs
func initConfig(fs *flag.FlagSet, args []string) error {
	cfgFile := fs.String("config", "", "Path to the config file.")
	fs.String("log-level", logLevelInfo, fmt.Sprintf("Log level to use. Possible values: %s", availableLogLevels))
	fs.String("metrics-listen", "", "The address at which to listen for health and metrics. Disabled if empty.")
	fs.Bool("dry-run", false, "Resolve and log the configuration, then exit without starting anything.")
	config.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := viper.BindPFlags(fs); err != nil {
		return fmt.Errorf("failed to bind config: %w", err)
	}

	if *cfgFile != "" {
		viper.SetConfigFile(*cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("/etc/wishbone-tool/")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error
		} else {
			// Config file was found but another error was produced
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return nil
}
