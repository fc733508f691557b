package mcp

import (
	"fmt"
	"log/slog"

	"github.com/mamaar/gocalc/pkg/types"
)

// MCPServer holds what the tool handlers share. Every operation is pure,
// so the only state is the logger and handlers may run concurrently.
type MCPServer struct {
	logger *slog.Logger
}

// NewMCPServer creates a new MCPServer with the given logger.
func NewMCPServer(logger *slog.Logger) *MCPServer {
	return &MCPServer{logger: logger}
}

// Logger returns the logger tool handlers write to.
func (s *MCPServer) Logger() *slog.Logger {
	return s.logger
}

// fail logs a failed operation with its inputs and returns an error whose
// text leads with the error kind.
func (s *MCPServer) fail(op string, input any, err error) error {
	kind := "error"
	if k, ok := types.KindOf(err); ok {
		kind = k.String()
	}
	s.logger.Warn("operation failed",
		"op", op,
		"input", input,
		"kind", kind,
		"err", err,
	)
	return fmt.Errorf("%s: %w", kind, err)
}
