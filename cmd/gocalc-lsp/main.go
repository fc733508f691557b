package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mamaar/gocalc/internal/lsp"
)

var (
	flagPort    = flag.Int("port", 0, "Port to listen on (0 for stdio)")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile = flag.String("logfile", "", "Log file path (default: stderr)")
	flagVersion = flag.Bool("version", false, "Show version information")
)

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("gocalc-lsp version %s\n", lsp.Version)
		os.Exit(0)
	}

	// stdout carries the protocol in stdio mode.
	var out io.Writer = os.Stderr
	if *flagLogFile != "" {
		file, err := os.OpenFile(*flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v\n", *flagLogFile, err)
			os.Exit(1)
		}
		defer file.Close()
		out = file
	}

	level := slog.LevelInfo
	if *flagDebug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	logger.Info("gocalc-lsp starting", "version", lsp.Version, "pid", os.Getpid(), "port", *flagPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := lsp.NewServer(logger)
	if err := server.Start(ctx, *flagPort); err != nil && ctx.Err() == nil {
		logger.Error("LSP server failed", "err", err)
		os.Exit(1)
	}
}
