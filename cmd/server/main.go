package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"coinone-mcp/internal/cache"
	"coinone-mcp/internal/config"
	"coinone-mcp/internal/handler"
	"coinone-mcp/internal/provider"
	"coinone-mcp/internal/service"
	"coinone-mcp/pkg/tracing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "coinone-mcp/docs"
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
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = ossignal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Coinone MCP Market API
// @version         1.0
// @description     Coinone market data and Bybit RSI charts over REST.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Upstream clients, with the optional Redis cache in front of Coinone
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

	// Create handlers and routes
	h := newHandlerFunc(tracer, marketService, chartService)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("coinone-mcp"))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "traceparent"},
		MaxAge:          12 * time.Hour,
	}))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              httpAddr(cfg.HTTPPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("REST server listening on %s", srv.Addr)
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

func httpAddr(port int) string {
	if port <= 0 {
		port = 8080
	}
	return fmt.Sprintf(":%d", port)
}
