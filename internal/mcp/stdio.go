package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	ServerName      = "coinone-mcp-server"
	ServerVersion   = "0.0.1"
	ProtocolVersion = "2025-06-18"

	maxLineBytes = 4 << 20
)

// StdioServer answers line-delimited JSON-RPC 2.0 messages one at a time.
// Protocol frames go to the output writer only; diagnostics go to the logger.
type StdioServer struct {
	tracer     trace.Tracer
	dispatcher *Dispatcher
	logger     *slog.Logger
	timeout    time.Duration
}

func NewStdioServer(tracer trace.Tracer, dispatcher *Dispatcher, cfg ServerConfig) *StdioServer {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("mcp")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &StdioServer{tracer: tracer, dispatcher: dispatcher, logger: logger, timeout: timeout}
}

var errLineTooLong = errors.New("message exceeds line limit")

// Serve reads requests from in until EOF or ctx is cancelled. A malformed or
// oversized line is logged and skipped; it never stops the loop.
func (s *StdioServer) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	r := bufio.NewReaderSize(in, 64*1024)
	w := bufio.NewWriter(out)

	for {
		raw, readErr := readLine(r, maxLineBytes)
		if errors.Is(readErr, errLineTooLong) {
			s.logger.Error("discarding oversized message", "limit", maxLineBytes)
			continue
		}
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("read request: %w", readErr)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if line := bytes.TrimSpace(raw); len(line) > 0 {
			if err := s.reply(ctx, w, line); err != nil {
				return err
			}
		}
		if readErr != nil {
			return nil
		}
	}
}

func (s *StdioServer) reply(ctx context.Context, w *bufio.Writer, line []byte) error {
	resp := s.handleLine(ctx, line)
	if resp == nil {
		return nil
	}
	frame, err := jsonrpc.EncodeMessage(resp)
	if err != nil {
		s.logger.Error("encode response failed", "error", err)
		return nil
	}
	if _, err := w.Write(append(frame, '\n')); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

// readLine returns the next newline-terminated line. A line longer than limit
// is consumed through its newline and reported as errLineTooLong.
func readLine(r *bufio.Reader, limit int) ([]byte, error) {
	var line []byte
	for {
		chunk, err := r.ReadSlice('\n')
		if len(line)+len(chunk) > limit {
			for errors.Is(err, bufio.ErrBufferFull) {
				_, err = r.ReadSlice('\n')
			}
			if err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
			return nil, errLineTooLong
		}
		line = append(line, chunk...)
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return line, err
	}
}

// handleLine returns nil when the message needs no reply.
func (s *StdioServer) handleLine(ctx context.Context, line []byte) *jsonrpc.Response {
	msg, err := jsonrpc.DecodeMessage(line)
	if err != nil {
		s.logger.Error("discarding malformed message", "error", err)
		return nil
	}
	req, ok := msg.(*jsonrpc.Request)
	if !ok {
		s.logger.Warn("discarding unexpected response message")
		return nil
	}
	// Notifications never get a reply, even when a client attaches an id.
	if !req.IsCall() || strings.HasPrefix(req.Method, "notifications/") {
		s.logger.Debug("notification received", "method", req.Method)
		return nil
	}

	result, rpcErr := s.handleRequest(ctx, req)
	if rpcErr != nil {
		return &jsonrpc.Response{ID: req.ID, Error: rpcErr}
	}
	body, err := json.Marshal(result)
	if err != nil {
		return &jsonrpc.Response{ID: req.ID, Error: internalError("Tool execution failed: " + err.Error())}
	}
	return &jsonrpc.Response{ID: req.ID, Result: body}
}

func (s *StdioServer) handleRequest(ctx context.Context, req *jsonrpc.Request) (any, *jsonrpc.Error) {
	switch req.Method {
	case "initialize":
		return &sdkmcp.InitializeResult{
			ProtocolVersion: ProtocolVersion,
			Capabilities:    &sdkmcp.ServerCapabilities{Tools: &sdkmcp.ToolCapabilities{}},
			ServerInfo:      &sdkmcp.Implementation{Name: ServerName, Version: ServerVersion},
		}, nil
	case "ping":
		return struct{}{}, nil
	case "tools/list":
		return &sdkmcp.ListToolsResult{Tools: s.dispatcher.Tools()}, nil
	case "tools/call":
		return s.callTool(ctx, req.Params)
	case "resources/list":
		return &sdkmcp.ListResourcesResult{Resources: []*sdkmcp.Resource{}}, nil
	case "prompts/list":
		return &sdkmcp.ListPromptsResult{Prompts: []*sdkmcp.Prompt{}}, nil
	default:
		return nil, internalError("Unknown method: " + req.Method)
	}
}

func (s *StdioServer) callTool(ctx context.Context, raw json.RawMessage) (any, *jsonrpc.Error) {
	var params sdkmcp.CallToolParamsRaw
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, internalError("Tool execution failed: invalid params: " + err.Error())
		}
	}
	name := strings.TrimSpace(params.Name)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	ctx, span := s.tracer.Start(ctx, toolSpanName(name))
	defer span.End()
	span.SetAttributes(attribute.String("mcp.method", "tools/call"), attribute.String("mcp.tool", name))

	result, err := s.dispatcher.Call(ctx, name, params.Arguments)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Warn("tool call failed", "tool", name, "error", err)
		return nil, internalError(toolFailure(err))
	}

	text, err := json.Marshal(result)
	if err != nil {
		return nil, internalError(toolFailure(err))
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(text)}},
	}, nil
}

func internalError(message string) *jsonrpc.Error {
	return &jsonrpc.Error{Code: jsonrpc.CodeInternalError, Message: message}
}

func toolFailure(err error) string {
	return "Tool execution failed: " + err.Error()
}

func toolSpanName(name string) string {
	if name == "" {
		return "mcp.tool.call"
	}
	return "mcp.tool." + strings.ReplaceAll(name, "/", ".")
}
