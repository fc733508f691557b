package lsp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// Connection handles LSP message reading and writing
type Connection struct {
	reader *bufio.Reader
	writer io.Writer
	wmu    sync.Mutex
	logger *slog.Logger
}

// NewConnection creates a new LSP connection
func NewConnection(reader io.Reader, writer io.Writer, logger *slog.Logger) *Connection {
	return &Connection{
		reader: bufio.NewReader(reader),
		writer: writer,
		logger: logger,
	}
}

// ReadMessage reads an LSP message from the connection. io.EOF is returned
// unwrapped when the peer closes the stream between messages.
func (c *Connection) ReadMessage() (*Message, error) {
	headers := make(map[string]string)
	for {
		line, err := c.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF && len(headers) == 0 && line == "" {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("read header: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			break
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	contentLengthStr, exists := headers["Content-Length"]
	if !exists {
		return nil, fmt.Errorf("missing Content-Length header")
	}

	contentLength, err := strconv.Atoi(contentLengthStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Content-Length: %w", err)
	}

	content := make([]byte, contentLength)
	if _, err := io.ReadFull(c.reader, content); err != nil {
		return nil, fmt.Errorf("failed to read message content: %w", err)
	}

	var message Message
	if err := json.Unmarshal(content, &message); err != nil {
		return nil, fmt.Errorf("failed to parse JSON message: %w", err)
	}

	c.logger.Debug("lsp recv", "method", message.Method, "id", message.ID)
	return &message, nil
}

// WriteMessage writes an LSP message to the connection
func (c *Connection) WriteMessage(message *Message) error {
	content, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	c.wmu.Lock()
	defer c.wmu.Unlock()

	if _, err := fmt.Fprintf(c.writer, "Content-Length: %d\r\n\r\n", len(content)); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	if _, err := c.writer.Write(content); err != nil {
		return fmt.Errorf("failed to write content: %w", err)
	}

	c.logger.Debug("lsp send", "method", message.Method, "id", message.ID)
	return nil
}
