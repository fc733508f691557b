// Package mcptest provides test helpers for invoking gocalc MCP tools
// with swappable transports: in-process (fast) or subprocess (full binary).
package mcptest

import (
	"context"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	internalmcp "github.com/mamaar/gocalc/internal/mcp"
)

// Session wraps an MCP ClientSession with cleanup logic.
type Session struct {
	*mcpsdk.ClientSession
	cancel context.CancelFunc
}

// Close tears down the session.
func (s *Session) Close() {
	_ = s.ClientSession.Close()
	if s.cancel != nil {
		s.cancel()
	}
}

// Call invokes a tool and returns its concatenated text content together
// with the IsError flag. Protocol failures abort the test.
func (s *Session) Call(ctx context.Context, t testing.TB, tool string, args map[string]any) (string, bool) {
	t.Helper()
	result, err := s.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      tool,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", tool, err)
	}
	var sb strings.Builder
	for _, c := range result.Content {
		if tc, ok := c.(*mcpsdk.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String(), result.IsError
}

// Transport selects how the MCP server is reached.
type Transport interface {
	connect(ctx context.Context, t testing.TB) (*Session, error)
}

// Dial connects to an MCP server using the given transport.
func Dial(ctx context.Context, t testing.TB, transport Transport) *Session {
	t.Helper()
	sess, err := transport.connect(ctx, t)
	if err != nil {
		t.Fatalf("mcptest.Dial: connect: %v", err)
	}
	return sess
}

// inProcess is the in-process transport using NewInMemoryTransports.
type inProcess struct{}

// InProcess returns a transport that runs the MCP server in-process.
func InProcess() Transport { return inProcess{} }

func (inProcess) connect(ctx context.Context, t testing.TB) (*Session, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	state := internalmcp.NewMCPServer(logger)

	server := mcpsdk.NewServer(&mcpsdk.Implementation{Name: "gocalc", Version: "test"}, nil)
	internalmcp.RegisterAllTools(server, state)

	serverT, clientT := mcpsdk.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(ctx)
	go server.Run(ctx, serverT)

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test-client", Version: "1.0"}, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	return &Session{ClientSession: session, cancel: cancel}, nil
}

// subprocess is the subprocess transport using CommandTransport.
type subprocess struct {
	binPath string
}

// Subprocess returns a transport that shells out to the given binary.
func Subprocess(bin string) Transport { return subprocess{binPath: bin} }

func (sp subprocess) connect(ctx context.Context, t testing.TB) (*Session, error) {
	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, sp.binPath)

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test-client", Version: "1.0"}, nil)
	session, err := client.Connect(ctx, &mcpsdk.CommandTransport{Command: cmd}, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	return &Session{ClientSession: session, cancel: cancel}, nil
}
