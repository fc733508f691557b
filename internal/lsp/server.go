package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
)

// Version is reported in the initialize response.
const Version = "0.1.0"

// errExit stops the message loop after an exit notification.
var errExit = errors.New("exit requested")

// Server is a language server for expression sheets. It keeps every open
// document evaluated and publishes a diagnostic for each failing line.
type Server struct {
	mu           sync.RWMutex
	documents    map[string]*document
	initialized  bool
	shutdown     bool
	capabilities ServerCapabilities
	logger       *slog.Logger
}

// NewServer creates a new LSP server instance
func NewServer(logger *slog.Logger) *Server {
	return &Server{
		documents: make(map[string]*document),
		logger:    logger,
		capabilities: ServerCapabilities{
			CodeActionProvider: &CodeActionOptions{
				CodeActionKinds: []string{
					KindRewriteResult,
					KindRewriteParenthesize,
					KindQuickFix,
				},
			},
			HoverProvider: true,
			TextDocumentSync: &TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TextDocumentSyncKindFull,
				Save: &SaveOptions{
					IncludeText: true,
				},
			},
		},
	}
}

// Start serves on stdio when port is 0 and on TCP otherwise.
func (s *Server) Start(ctx context.Context, port int) error {
	if port == 0 {
		return s.ServeStdio(ctx)
	}
	return s.ServeTCP(ctx, port)
}

// ServeStdio serves the LSP over stdio
func (s *Server) ServeStdio(ctx context.Context) error {
	s.logger.Info("starting LSP server on stdio")
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// ServeTCP serves the LSP over TCP, one goroutine per connection.
func (s *Server) ServeTCP(ctx context.Context, port int) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", port, err)
	}
	defer listener.Close()

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	s.logger.Info("starting LSP server", "port", port)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn("failed to accept connection", "err", err)
			continue
		}

		go func() {
			defer conn.Close()
			if err := s.Serve(ctx, conn, conn); err != nil {
				s.logger.Warn("connection ended", "err", err)
			}
		}()
	}
}

// Serve runs the message loop over reader and writer until the peer
// disconnects, sends exit, or ctx is cancelled.
func (s *Server) Serve(ctx context.Context, reader io.Reader, writer io.Writer) error {
	connection := NewConnection(reader, writer, s.logger)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		message, err := connection.ReadMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		out, err := s.handleMessage(ctx, message)
		if errors.Is(err, errExit) {
			return nil
		}
		if err != nil {
			s.logger.Warn("error handling message", "method", message.Method, "err", err)
			continue
		}

		for _, m := range out {
			if err := connection.WriteMessage(m); err != nil {
				return fmt.Errorf("failed to write response: %w", err)
			}
		}
	}
}

// handleMessage processes an LSP message and returns the response, if any,
// followed by any notifications it produced.
func (s *Server) handleMessage(ctx context.Context, message *Message) ([]*Message, error) {
	switch message.Method {
	case "initialize":
		return single(s.handleInitialize(message))
	case "initialized":
		return nil, nil
	case "shutdown":
		return single(s.handleShutdown(message))
	case "exit":
		return nil, errExit
	case "textDocument/didOpen":
		return s.handleTextDocumentDidOpen(message)
	case "textDocument/didChange":
		return s.handleTextDocumentDidChange(message)
	case "textDocument/didSave":
		return s.handleTextDocumentDidSave(message)
	case "textDocument/didClose":
		return s.handleTextDocumentDidClose(message)
	case "textDocument/hover":
		return single(s.handleTextDocumentHover(message))
	case "textDocument/codeAction":
		return single(s.handleTextDocumentCodeAction(message))
	default:
		if message.ID != nil {
			return single(s.errorResponse(message.ID, CodeMethodNotFound, "Method not found", message.Method))
		}
		s.logger.Debug("unhandled notification", "method", message.Method)
		return nil, nil
	}
}

func single(m *Message, err error) ([]*Message, error) {
	if err != nil || m == nil {
		return nil, err
	}
	return []*Message{m}, nil
}

func (s *Server) handleInitialize(message *Message) (*Message, error) {
	var params InitializeParams
	if err := json.Unmarshal(message.Params, &params); err != nil {
		return s.errorResponse(message.ID, CodeInvalidParams, "Invalid params", err.Error())
	}

	s.mu.Lock()
	s.initialized = true
	s.shutdown = false
	s.mu.Unlock()

	client := ""
	if params.ClientInfo != nil {
		client = params.ClientInfo.Name
	}
	s.logger.Info("initialize", "client", client, "root", params.RootURI)

	return s.successResponse(message.ID, InitializeResult{
		Capabilities: s.capabilities,
		ServerInfo: &ServerInfo{
			Name:    "gocalc-lsp",
			Version: Version,
		},
	})
}

func (s *Server) handleShutdown(message *Message) (*Message, error) {
	s.mu.Lock()
	s.shutdown = true
	s.documents = make(map[string]*document)
	s.mu.Unlock()

	return s.successResponse(message.ID, nil)
}

func (s *Server) successResponse(id interface{}, result interface{}) (*Message, error) {
	// A response must carry "result" even when it is null.
	if result == nil {
		result = json.RawMessage("null")
	}
	return &Message{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}, nil
}

func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) (*Message, error) {
	return &Message{
		JSONRPC: "2.0",
		ID:      id,
		Error: &ResponseError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}, nil
}

func (s *Server) notification(method string, params interface{}) (*Message, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal %s params: %w", method, err)
	}
	return &Message{
		JSONRPC: "2.0",
		Method:  method,
		Params:  raw,
	}, nil
}
