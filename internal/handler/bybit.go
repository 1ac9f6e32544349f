package handler

import (
	"net/http"
	"strconv"
	"strings"

	"coinone-mcp/internal/service"
	"coinone-mcp/internal/signal"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetBybitChart godoc
// @Summary      Get Bybit klines with RSI(6) and RSI(12)
// @Description  Newest-first candles; RSI is computed over at least 50 candles of history
// @Tags         bybit
// @Produce      json
// @Param        symbol    path   string  true   "Trading pair symbol (e.g., BTCUSDT)"
// @Param        category  query  string  false  "Product type (spot, linear, inverse)"  default(linear)
// @Param        interval  query  string  false  "Kline interval (1, 3, 5, 15, 30, 60, 120, 240, 360, 720, D, W, M)"  default(1)
// @Param        start     query  int     false  "Start timestamp in epoch milliseconds"
// @Param        end       query  int     false  "End timestamp in epoch milliseconds"
// @Param        limit     query  int     false  "Candles to return (1-1000)"  default(200)
// @Success      200  {object}  service.BybitChartResult
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/bybit/chart/{symbol} [get]
func (h *Handler) GetBybitChart(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-bybit-chart")
	defer span.End()

	q, ok := klineQuery(c, service.DefaultBybitChartLimit)
	if !ok {
		return
	}
	span.SetAttributes(attribute.String("symbol", q.Symbol))

	res, err := h.chartService.GetBybitChart(ctx, q)
	if err != nil {
		respondError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetBybitRSI godoc
// @Summary      Get Bybit klines with RSI
// @Description  Newest-first candles; RSI is computed over at least rsiPeriod*3 candles of history
// @Tags         bybit
// @Produce      json
// @Param        symbol     path   string  true   "Trading pair symbol (e.g., BTCUSDT)"
// @Param        category   query  string  false  "Product type (spot, linear, inverse)"  default(linear)
// @Param        interval   query  string  false  "Kline interval"  default(1)
// @Param        rsiPeriod  query  int     false  "RSI period"  default(14)
// @Param        start      query  int     false  "Start timestamp in epoch milliseconds"
// @Param        end        query  int     false  "End timestamp in epoch milliseconds"
// @Param        limit      query  int     false  "Candles to return (1-1000)"  default(50)
// @Success      200  {object}  service.BybitRSIResult
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/bybit/rsi/{symbol} [get]
func (h *Handler) GetBybitRSI(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-bybit-rsi")
	defer span.End()

	q, ok := klineQuery(c, service.DefaultBybitRSILimit)
	if !ok {
		return
	}
	period := signal.DefaultRSIPeriod
	if raw := strings.TrimSpace(c.Query("rsiPeriod")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			badRequest(c, "rsiPeriod must be a positive integer")
			return
		}
		period = n
	}
	span.SetAttributes(attribute.String("symbol", q.Symbol), attribute.Int("rsi_period", period))

	res, err := h.chartService.GetBybitRSI(ctx, service.RSIQuery{KlineQuery: q, RSIPeriod: period})
	if err != nil {
		respondError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func klineQuery(c *gin.Context, defaultLimit int) (service.KlineQuery, bool) {
	start, ok := queryInt64(c, "start")
	if !ok {
		return service.KlineQuery{}, false
	}
	end, ok := queryInt64(c, "end")
	if !ok {
		return service.KlineQuery{}, false
	}
	limit, ok := queryLimit(c, defaultLimit)
	if !ok {
		return service.KlineQuery{}, false
	}
	return service.KlineQuery{
		Symbol:   c.Param("symbol"),
		Category: c.Query("category"),
		Interval: c.Query("interval"),
		Start:    start,
		End:      end,
		Limit:    limit,
	}, true
}
