package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"coinone-mcp/internal/domain"
	"coinone-mcp/internal/provider"
	"coinone-mcp/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type Handler struct {
	tracer        trace.Tracer
	marketService *service.MarketService
	chartService  *service.ChartService
}

func New(
	tracer trace.Tracer,
	marketService *service.MarketService,
	chartService *service.ChartService,
) *Handler {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("handler")
	}
	return &Handler{
		tracer:        tracer,
		marketService: marketService,
		chartService:  chartService,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	coinone := r.Group("/api/coinone")
	coinone.GET("/markets", h.GetMarkets)
	coinone.GET("/orderbook/:target", h.GetOrderbook)
	coinone.GET("/trades/:target", h.GetRecentTrades)
	coinone.GET("/tickers", h.GetTickers)
	coinone.GET("/ticker/:target", h.GetTicker)
	coinone.GET("/chart/:target", h.GetChart)

	bybit := r.Group("/api/bybit")
	bybit.GET("/chart/:symbol", h.GetBybitChart)
	bybit.GET("/rsi/:symbol", h.GetBybitRSI)
}

// Health godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError maps domain failures onto HTTP statuses and records them on the span.
func respondError(c *gin.Context, span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrFetchFailed):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// queryInt64 returns nil when the parameter is absent.
func queryInt64(c *gin.Context, name string) (*int64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		badRequest(c, name+" must be an integer")
		return nil, false
	}
	return &n, true
}

func queryLimit(c *gin.Context, fallback int) (int, bool) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > provider.MaxKlineLimit {
		badRequest(c, "limit must be between 1 and "+strconv.Itoa(provider.MaxKlineLimit))
		return 0, false
	}
	return n, true
}
