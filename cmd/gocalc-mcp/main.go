package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	internalmcp "github.com/mamaar/gocalc/internal/mcp"
)

const version = "0.1.0"

func main() {
	var (
		portFlag    = flag.Int("port", 0, "TCP port to listen on (0 for stdio)")
		debugFlag   = flag.Bool("debug", false, "Enable debug logging")
		versionFlag = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Printf("gocalc-mcp v%s\n", version)
		fmt.Println("Model Context Protocol server for safe arithmetic")
		os.Exit(0)
	}

	// stdout carries the protocol, so logs go to stderr.
	level := slog.LevelInfo
	if *debugFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	mcpServer := server.NewMCPServer(
		"gocalc-mcp",
		version,
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithRecovery(),
	)
	addTools(mcpServer, internalmcp.NewMCPServer(logger))

	if *portFlag == 0 {
		logger.Info("serving on stdio")
		if err := server.ServeStdio(mcpServer); err != nil {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
		return
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer)
	addr := fmt.Sprintf(":%d", *portFlag)
	logger.Info("serving streamable HTTP", "addr", addr)
	if err := httpServer.Start(addr); err != nil {
		logger.Error("HTTP server failed", "err", err)
		os.Exit(1)
	}
}
