// SPDX-License-Identifier: Apache-2.0

// Package operation connects a resolved configuration to the bridge and
// server implementation that carries it out.
package operation

import (
	"context"
	"sync"

	"github.com/MatthiasValvekens/wishbone-tool/config"
	"github.com/MatthiasValvekens/wishbone-tool/server"
	"github.com/efficientgo/core/errors"
	"github.com/go-kit/log"
)

// Runner carries out the operation selected by a Config. Run returns when the
// operation is complete or ctx is cancelled.
type Runner interface {
	Run(ctx context.Context) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context) error

func (f RunnerFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Factory builds the Runner for a resolved configuration.
type Factory func(cfg *config.Config, logger log.Logger) (Runner, error)

// Registry maps server kinds to their implementation. server.None stands for
// the one-shot memory operation on the configured address.
type Registry struct {
	mu        sync.RWMutex
	factories map[server.Kind]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: map[server.Kind]Factory{}}
}

// Default is the registry implementations add themselves to from init.
var Default = NewRegistry()

// Register adds f as the implementation of kind. Registering a kind twice
// is an error.
func (r *Registry) Register(kind server.Kind, f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.factories[kind]; dup {
		return errors.Newf("implementation for %s already registered", kind)
	}
	r.factories[kind] = f
	return nil
}

// Register adds f to the Default registry and panics on duplicates.
func Register(kind server.Kind, f Factory) {
	if err := Default.Register(kind, f); err != nil {
		panic(err)
	}
}

// Name describes the operation cfg asks for.
func Name(cfg *config.Config) string {
	if cfg.ServerKind != server.None {
		return cfg.ServerKind.String() + " server"
	}
	if cfg.MemoryValue != nil {
		return "memory write"
	}
	return "memory read"
}

// Runner builds the Runner for cfg.
func (r *Registry) Runner(cfg *config.Config, logger log.Logger) (Runner, error) {
	r.mu.RLock()
	f, ok := r.factories[cfg.ServerKind]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Newf("no implementation available for %s over %s bridge", Name(cfg), cfg.BridgeKind)
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	op, err := f(cfg, log.With(logger, "operation", Name(cfg)))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to set up %s", Name(cfg))
	}
	return op, nil
}
