// Package app wires the Hub and its TCP listener into one process and
// owns the ordered shutdown sequence.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-broker/internal/config"
	"github.com/vovakirdan/wirechat-broker/internal/core"
	"github.com/vovakirdan/wirechat-broker/internal/transport/tcp"
)

// App wires the core Hub and the tcp transport together.
type App struct {
	cfg config.Config
	hub *core.Hub
	ln  *tcp.Listener
	log *zerolog.Logger
}

// New constructs the application with the given configuration and logger.
func New(cfg config.Config, logger *zerolog.Logger) *App {
	hub := core.New(logger, cfg.Liveness())
	return &App{
		cfg: cfg,
		hub: hub,
		ln:  tcp.New(hub, logger, cfg.SendBuffer, cfg.FrameSize),
		log: logger,
	}
}

// Run starts the Hub's event loop and the listener, and blocks until ctx is
// cancelled or the listener fails. Cancelling ctx stops the listener first,
// then lets the Hub finish its own shutdown (evicting every live session)
// before Run returns.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hubDone := make(chan struct{})
	go func() {
		a.hub.Run(ctx)
		close(hubDone)
	}()

	err := a.ln.Serve(ctx, a.cfg.Addr())
	cancel()
	<-hubDone
	return err
}
