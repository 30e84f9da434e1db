// Package app wires the dependency graph: configuration, logging, the
// handler registry with its built-in providers, and the execution planner
// with every optional capability resolved exactly once at startup.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/doeshing/intentshell/internal/breaker"
	"github.com/doeshing/intentshell/internal/domain"
	"github.com/doeshing/intentshell/internal/infrastructure/config"
	"github.com/doeshing/intentshell/internal/infrastructure/envclip"
	"github.com/doeshing/intentshell/internal/infrastructure/providers"
	"github.com/doeshing/intentshell/internal/infrastructure/reasoner"
	"github.com/doeshing/intentshell/internal/infrastructure/recorder"
	"github.com/doeshing/intentshell/internal/pkg/logger"
	"github.com/doeshing/intentshell/internal/ports"
	"github.com/doeshing/intentshell/internal/registry"
	"github.com/doeshing/intentshell/internal/safety"
	"github.com/doeshing/intentshell/internal/services"
	"github.com/doeshing/intentshell/internal/session"
)

// Container holds the wired dependency graph.
type Container struct {
	Config   domain.Config
	Logger   ports.Logger
	Registry *registry.Registry
	Session  *session.State
	Recorder ports.TransactionRecorder
	Planner  *services.Planner
}

// BuildContainer constructs the dependency graph. Optional capabilities
// (reasoner, recorder) that are disabled or unavailable are left nil; the
// planner degrades per capability.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Preferences.Verbose {
		verbose = true
	}

	log := logger.NewZap(verbose)

	reg := registry.New(log)
	for _, h := range []ports.ActionHandler{
		providers.NewFilesystem(),
		providers.NewSystem(),
	} {
		if err := reg.Register(h); err != nil {
			return nil, fmt.Errorf("register handler: %w", err)
		}
	}

	controller, err := safety.NewController(reg, cfg.Safety.DenylistFile)
	if err != nil {
		return nil, fmt.Errorf("load denylist: %w", err)
	}

	var rec ports.TransactionRecorder
	switch cfg.Recorder.Backend {
	case "jsonl":
		rec = recorder.NewFileStore(cfg.Recorder.Path)
	default:
		rec = recorder.NewSQLiteStore(cfg.Recorder.Path)
	}

	var reason ports.Reasoner
	if cfg.Reasoner.Enabled() {
		reason = reasoner.NewHTTP(cfg.Reasoner)
	}

	sess := session.New()
	planner := &services.Planner{
		Registry:          reg,
		Safety:            controller,
		Breaker:           breaker.New(breaker.DefaultFailureThreshold),
		Session:           sess,
		Logger:            log,
		Resolver:          envclip.NewResolver(),
		Reasoner:          reason,
		Recorder:          rec,
		MaxRepairAttempts: cfg.Preferences.MaxRepairAttempts,
		HandlerTimeout:    time.Duration(cfg.Preferences.HandlerTimeoutSeconds) * time.Second,
		ReasonerTimeout:   time.Duration(cfg.Reasoner.TimeoutSeconds) * time.Second,
	}

	return &Container{
		Config:   cfg,
		Logger:   log,
		Registry: reg,
		Session:  sess,
		Recorder: rec,
		Planner:  planner,
	}, nil
}

// Close releases held resources.
func (c *Container) Close() error {
	if c.Recorder != nil {
		return c.Recorder.Close()
	}
	return nil
}
