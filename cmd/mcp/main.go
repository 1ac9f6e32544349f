package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"coinone-mcp/internal/cache"
	"coinone-mcp/internal/config"
	mcpserver "coinone-mcp/internal/mcp"
	"coinone-mcp/internal/provider"
	"coinone-mcp/internal/service"
	"coinone-mcp/pkg/tracing"

	"github.com/joho/godotenv"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/trace"
)

var (
	loadEnvFunc    = godotenv.Load
	loadConfigFunc = config.Load
	initRedisFunc  = cache.InitRedis
	initTracerFunc = tracing.InitTracer
	newCoinoneFunc = func(tracer trace.Tracer, cfg provider.ClientConfig) service.CoinoneClient {
		return provider.NewCoinoneProvider(tracer, cfg)
	}
	newBybitFunc = func(tracer trace.Tracer, cfg provider.ClientConfig) service.BybitClient {
		return provider.NewBybitProvider(tracer, cfg)
	}
	newMCPServerFunc  = mcpserver.NewServer
	newMCPHandlerFunc = mcpserver.NewHTTPTransportHandler
	runStdioFunc      = func(ctx context.Context, server *mcpserver.StdioServer) error {
		return server.Serve(ctx, os.Stdin, os.Stdout)
	}
	startHTTPServerFunc  = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFn = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
	setupSignalNotify    = ossignal.Notify
	waitForSignalFunc    = func(quit <-chan os.Signal) { <-quit }
)

func main() {
	// stdout carries protocol frames in stdio mode.
	log.SetOutput(os.Stderr)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	loadEnvFunc()
	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	upstreamTimeout := time.Duration(cfg.UpstreamTimeoutSecs) * time.Second
	coinoneCfg := provider.ClientConfig{BaseURL: cfg.CoinoneBaseURL, Timeout: upstreamTimeout}
	if cfg.RedisURL != "" {
		rc, err := initRedisFunc(ctx, cfg.RedisURL, time.Duration(cfg.CacheTTLSecs)*time.Second)
		if err != nil {
			log.Printf("Warning: upstream cache disabled: %v", err)
		} else {
			defer rc.Close()
			coinoneCfg.Cache = rc
		}
	}

	marketService := service.NewMarketService(tracer, newCoinoneFunc(tracer, coinoneCfg))
	chartService := service.NewChartService(tracer, newBybitFunc(tracer, provider.ClientConfig{
		BaseURL: cfg.BybitBaseURL,
		Timeout: upstreamTimeout,
	}))
	dispatcher := mcpserver.NewDispatcher(marketService, chartService)

	serverCfg := mcpserver.ServerConfig{
		RequestTimeout: time.Duration(cfg.MCPRequestTimeoutSecs) * time.Second,
		Logger:         logger,
	}

	switch cfg.MCPTransport {
	case "", "stdio":
		logger.Info("mcp stdio server starting", "tools", len(dispatcher.Names()))
		if err := runStdioFunc(ctx, mcpserver.NewStdioServer(tracer, dispatcher, serverCfg)); err != nil {
			log.Fatalf("mcp stdio server failed: %v", err)
		}
	case "http":
		mcpSrv := newMCPServerFunc(tracer, dispatcher, serverCfg)
		if err := runHTTPMode(ctx, cancel, cfg, mcpSrv); err != nil {
			log.Fatalf("mcp http server failed: %v", err)
		}
	default:
		log.Fatalf("unsupported MCP_TRANSPORT: %s", cfg.MCPTransport)
	}
}

func runHTTPMode(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, mcpSrv *sdkmcp.Server) error {
	if cfg.MCPHTTPPort <= 0 {
		return fmt.Errorf("MCP_HTTP_PORT must be positive, got %d", cfg.MCPHTTPPort)
	}

	handler := newMCPHandlerFunc(mcpSrv, mcpserver.HTTPHandlerConfig{MaxBodyBytes: cfg.MCPMaxBodyBytes})

	addr := net.JoinHostPort(cfg.MCPHTTPBind, fmt.Sprintf("%d", cfg.MCPHTTPPort))
	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		log.Printf("MCP HTTP server listening on %s", addr)
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Printf("mcp http server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFn(srv, shutdownCtx); err != nil {
		return fmt.Errorf("mcp server forced to shutdown: %w", err)
	}
	return nil
}
