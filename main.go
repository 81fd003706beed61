// SPDX-License-Identifier: GPL-2.0-only

package main

import (
	"context"
	baseerrors "errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/MatthiasValvekens/wishbone-tool/config"
	"github.com/MatthiasValvekens/wishbone-tool/operation"
	"github.com/MatthiasValvekens/wishbone-tool/server"
	"github.com/efficientgo/core/errors"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"k8s.io/apimachinery/pkg/util/validation"
)

const (
	logLevelAll   = "all"
	logLevelDebug = "debug"
	logLevelInfo  = "info"
	logLevelWarn  = "warn"
	logLevelError = "error"
	logLevelNone  = "none"
)

var (
	availableLogLevels = strings.Join([]string{
		logLevelAll,
		logLevelDebug,
		logLevelInfo,
		logLevelWarn,
		logLevelError,
		logLevelNone,
	}, ", ")
)

func newLogger(logLevel string) (log.Logger, error) {
	logger := log.NewJSONLogger(log.NewSyncWriter(os.Stdout))
	switch logLevel {
	case logLevelAll:
		logger = level.NewFilter(logger, level.AllowAll())
	case logLevelDebug:
		logger = level.NewFilter(logger, level.AllowDebug())
	case logLevelInfo:
		logger = level.NewFilter(logger, level.AllowInfo())
	case logLevelWarn:
		logger = level.NewFilter(logger, level.AllowWarn())
	case logLevelError:
		logger = level.NewFilter(logger, level.AllowError())
	case logLevelNone:
		logger = level.NewFilter(logger, level.AllowNone())
	default:
		return nil, fmt.Errorf("log level %v unknown; possible values are: %s", logLevel, availableLogLevels)
	}
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	logger = log.With(logger, "caller", log.DefaultCaller)
	return logger, nil
}

// warnBindSettings flags listen settings that will not work once a server
// tries to bind them. The configuration itself is left untouched.
func warnBindSettings(cfg *config.Config, logger log.Logger) {
	if cfg.ServerKind == server.None {
		return
	}
	if errs := validation.IsValidPortNum(int(cfg.BindPort)); len(errs) > 0 {
		_ = level.Warn(logger).Log("msg", "bind port is not usable", "port", cfg.BindPort, "err", strings.Join(errs, ", "))
	}
	if net.ParseIP(cfg.BindAddr) == nil {
		if errs := validation.IsDNS1123Subdomain(cfg.BindAddr); len(errs) > 0 {
			_ = level.Warn(logger).Log("msg", "bind address is neither an IP nor a host name", "addr", cfg.BindAddr, "err", strings.Join(errs, ", "))
		}
	}
}

// dispatch runs the operation cfg selects next to a signal handler and, if
// listen is set, the health and metrics endpoint.
func dispatch(cfg *config.Config, runners *operation.Registry, logger log.Logger, listen string, r *prometheus.Registry) error {
	op, err := runners.Runner(cfg, logger)
	if err != nil {
		return err
	}

	var g run.Group
	if listen != "" {
		// Run the HTTP server.
		mux := http.NewServeMux()
		mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		mux.Handle("/metrics", promhttp.HandlerFor(r, promhttp.HandlerOpts{}))
		l, err := net.Listen("tcp", listen)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %v", listen, err)
		}

		g.Add(func() error {
			err := http.Serve(l, mux)
			if err != nil && !baseerrors.Is(err, http.ErrServerClosed) && !baseerrors.Is(err, net.ErrClosed) {
				return fmt.Errorf("server exited unexpectedly: %v", err)
			}
			return nil
		}, func(error) {
			_ = l.Close()
		})
	}

	{
		// Exit gracefully on SIGINT and SIGTERM.
		term := make(chan os.Signal, 1)
		signal.Notify(term, syscall.SIGINT, syscall.SIGTERM)
		cancel := make(chan struct{})
		g.Add(func() error {
			defer signal.Stop(term)
			select {
			case <-term:
				_ = logger.Log("msg", "caught interrupt; gracefully cleaning up; see you next time!")
				return nil
			case <-cancel:
				return nil
			}
		}, func(error) {
			close(cancel)
		})
	}

	{
		ctx, cancel := context.WithCancel(context.Background())
		name := operation.Name(cfg)
		g.Add(func() error {
			_ = level.Info(logger).Log("msg", "Starting "+name)
			if err := op.Run(ctx); err != nil {
				return errors.Wrapf(err, "%s failed", name)
			}
			_ = level.Debug(logger).Log("msg", name+" finished")
			return nil
		}, func(error) {
			cancel()
		})
	}

	return g.Run()
}

// Main is the principal function for the binary, wrapped only by `main` for convenience.
func Main() error {
	if err := initConfig(flag.CommandLine, os.Args[1:]); err != nil {
		return err
	}

	logger, err := newLogger(viper.GetString("log-level"))
	if err != nil {
		return err
	}

	cfg, err := config.Build(config.ViperArgs{Viper: viper.GetViper()})
	if err != nil {
		if baseerrors.Is(err, config.ErrNoOperationSpecified) {
			flag.Usage()
		}
		return err
	}
	_ = level.Info(logger).Log(append([]interface{}{"msg", "Resolved configuration."}, cfg.LogValues()...)...)
	warnBindSettings(cfg, logger)

	if viper.GetBool("dry-run") {
		return nil
	}

	r := prometheus.NewRegistry()
	r.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	info := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "wishbone_tool_info",
		Help: "The bridge and server selected for this run.",
	}, []string{"bridge", "server"})
	info.WithLabelValues(cfg.BridgeKind.String(), cfg.ServerKind.String()).Set(1)
	r.MustRegister(info)

	return dispatch(cfg, operation.Default, logger, viper.GetString("metrics-listen"), r)
}

func main() {
	if err := Main(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Execution failed: %v\n", err)
		os.Exit(1)
	}
}
