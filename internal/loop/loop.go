// Package loop runs a single local game: an in-process server hosting one
// session and a terminal client drawing it.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/tomz197/eggcatch/internal/config"
	"github.com/tomz197/eggcatch/internal/loop/client"
	"github.com/tomz197/eggcatch/internal/loop/server"
)

// Options configures a local game.
type Options struct {
	Layout   config.Layout
	Logger   *log.Logger
	Username string
}

// Run starts the server loop in the background and runs a client on r/w
// until the player quits. The server stops when Run returns.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	srvOpts := []server.Option{}
	if opts.Logger != nil {
		srvOpts = append(srvOpts, server.WithLogger(opts.Logger))
	}
	gs, err := server.NewServer(opts.Layout, srvOpts...)
	if err != nil {
		return fmt.Errorf("start local server: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go gs.Run(ctx)

	c := client.NewClient(gs, r, w, client.ClientOptions{Username: opts.Username})
	if err := c.Run(); err != nil {
		return fmt.Errorf("client: %w", err)
	}
	return nil
}
