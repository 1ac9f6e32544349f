package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultRequestTimeout = 10 * time.Second

type ServerConfig struct {
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

// NewServer builds a go-sdk MCP server exposing the dispatcher tools, used by
// the streamable HTTP transport.
func NewServer(tracer trace.Tracer, dispatcher *Dispatcher, cfg ServerConfig) *sdkmcp.Server {
	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	srv := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &sdkmcp.ServerOptions{
		Instructions: "Use these tools to inspect Coinone spot markets and Bybit klines with RSI.",
		Logger:       logger,
	})

	srv.AddReceivingMiddleware(timeoutMiddleware(requestTimeout))
	if tracer != nil {
		srv.AddReceivingMiddleware(tracingMiddleware(tracer))
	}

	for _, t := range dispatcher.Tools() {
		srv.AddTool(t, toolHandler(dispatcher, t.Name))
	}
	return srv
}

// toolHandler reports dispatcher failures as tool-level errors so the session
// stays usable.
func toolHandler(dispatcher *Dispatcher, name string) sdkmcp.ToolHandler {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
		var raw json.RawMessage
		if req != nil && req.Params != nil {
			raw = req.Params.Arguments
		}
		result, err := dispatcher.Call(ctx, name, raw)
		if err == nil {
			var text []byte
			text, err = json.Marshal(result)
			if err == nil {
				return &sdkmcp.CallToolResult{
					Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(text)}},
				}, nil
			}
		}
		return &sdkmcp.CallToolResult{
			Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: toolFailure(err)}},
			IsError: true,
		}, nil
	}
}

func NewHTTPTransportHandler(server *sdkmcp.Server, cfg HTTPHandlerConfig) http.Handler {
	base := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return server
	}, &sdkmcp.StreamableHTTPOptions{})
	return wrapHTTPHandler(base, cfg)
}

func timeoutMiddleware(timeout time.Duration) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return next(timeoutCtx, method, req)
		}
	}
}

func tracingMiddleware(tracer trace.Tracer) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			spanName := "mcp." + strings.ReplaceAll(method, "/", ".")
			callReq, isCall := req.(*sdkmcp.CallToolRequest)
			if isCall && callReq.Params != nil {
				spanName = toolSpanName(strings.TrimSpace(callReq.Params.Name))
			}

			ctx, span := tracer.Start(ctx, spanName)
			defer span.End()
			span.SetAttributes(attribute.String("mcp.method", method))
			if isCall && callReq.Params != nil {
				span.SetAttributes(attribute.String("mcp.tool", strings.TrimSpace(callReq.Params.Name)))
			}

			result, err := next(ctx, method, req)
			if err != nil {
				span.RecordError(err)
			}
			if res, ok := result.(*sdkmcp.CallToolResult); ok && res.IsError {
				span.SetAttributes(attribute.Bool("mcp.tool.error", true))
			}
			return result, err
		}
	}
}
