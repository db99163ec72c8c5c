package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/tomz197/eggcatch/internal/config"
	"github.com/tomz197/eggcatch/internal/loop"
	"golang.org/x/term"
)

func main() {
	var cfg config.Local
	if err := config.ParseEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	layout, err := config.LoadLayout(cfg.LayoutFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "layout error: %v\n", err)
		os.Exit(1)
	}

	// The terminal is the game screen, so logs only go to a file.
	var logOut io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := config.NewLogger(logOut, cfg.LogLevel, "eggcatch")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	opts := loop.Options{
		Layout:   layout,
		Logger:   logger,
		Username: os.Getenv("USER"),
	}
	if err := loop.Run(context.Background(), reader, os.Stdout, opts); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
