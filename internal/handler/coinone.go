package handler

import (
	"net/http"

	"coinone-mcp/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetMarkets godoc
// @Summary      List Coinone markets
// @Description  Returns every trading pair listed for the quote currency
// @Tags         coinone
// @Produce      json
// @Param        quoteCurrency  query  string  false  "Quote currency"  default(KRW)
// @Success      200  {object}  service.MarketsResult
// @Failure      502  {object}  map[string]string
// @Router       /api/coinone/markets [get]
func (h *Handler) GetMarkets(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-markets")
	defer span.End()

	res, err := h.marketService.GetMarkets(ctx, c.Query("quoteCurrency"))
	if err != nil {
		respondError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetOrderbook godoc
// @Summary      Get a Coinone orderbook
// @Tags         coinone
// @Produce      json
// @Param        target         path   string  true   "Target currency (e.g., BTC, ETH)"
// @Param        quoteCurrency  query  string  false  "Quote currency"  default(KRW)
// @Success      200  {object}  service.OrderbookResult
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/coinone/orderbook/{target} [get]
func (h *Handler) GetOrderbook(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-orderbook")
	defer span.End()

	q := pairQuery(c)
	span.SetAttributes(attribute.String("target_currency", q.TargetCurrency))

	res, err := h.marketService.GetOrderbook(ctx, q)
	if err != nil {
		respondError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetRecentTrades godoc
// @Summary      Get recent Coinone trades
// @Description  Completed orders, each tagged BUY or SELL from the taker side
// @Tags         coinone
// @Produce      json
// @Param        target         path   string  true   "Target currency (e.g., BTC, ETH)"
// @Param        quoteCurrency  query  string  false  "Quote currency"  default(KRW)
// @Success      200  {object}  service.TradesResult
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/coinone/trades/{target} [get]
func (h *Handler) GetRecentTrades(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-recent-trades")
	defer span.End()

	q := pairQuery(c)
	span.SetAttributes(attribute.String("target_currency", q.TargetCurrency))

	res, err := h.marketService.GetRecentTrades(ctx, q)
	if err != nil {
		respondError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetTickers godoc
// @Summary      List Coinone tickers
// @Tags         coinone
// @Produce      json
// @Param        quoteCurrency  query  string  false  "Quote currency"  default(KRW)
// @Success      200  {object}  service.TickersResult
// @Failure      502  {object}  map[string]string
// @Router       /api/coinone/tickers [get]
func (h *Handler) GetTickers(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-tickers")
	defer span.End()

	res, err := h.marketService.GetTickers(ctx, c.Query("quoteCurrency"))
	if err != nil {
		respondError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetTicker godoc
// @Summary      Get one Coinone ticker
// @Tags         coinone
// @Produce      json
// @Param        target         path   string  true   "Target currency (e.g., BTC, ETH)"
// @Param        quoteCurrency  query  string  false  "Quote currency"  default(KRW)
// @Success      200  {object}  service.TickerResult
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/coinone/ticker/{target} [get]
func (h *Handler) GetTicker(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-ticker")
	defer span.End()

	q := pairQuery(c)
	span.SetAttributes(attribute.String("target_currency", q.TargetCurrency))

	res, err := h.marketService.GetTicker(ctx, q)
	if err != nil {
		respondError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetChart godoc
// @Summary      Get Coinone candles
// @Description  Candles in upstream order, datetimes in Asia/Seoul
// @Tags         coinone
// @Produce      json
// @Param        target         path   string  true   "Target currency (e.g., BTC, ETH)"
// @Param        quoteCurrency  query  string  false  "Quote currency"  default(KRW)
// @Param        interval       query  string  false  "Chart interval (1m, 5m, 15m, 30m, 1h, 4h, 1d, 1w, 1M)"  default(1h)
// @Param        startTime      query  int     false  "Start time in epoch milliseconds"
// @Param        endTime        query  int     false  "End time in epoch milliseconds"
// @Success      200  {object}  service.ChartResult
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/coinone/chart/{target} [get]
func (h *Handler) GetChart(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-chart")
	defer span.End()

	start, ok := queryInt64(c, "startTime")
	if !ok {
		return
	}
	end, ok := queryInt64(c, "endTime")
	if !ok {
		return
	}
	pair := pairQuery(c)
	span.SetAttributes(attribute.String("target_currency", pair.TargetCurrency))

	res, err := h.marketService.GetChart(ctx, service.ChartQuery{
		QuoteCurrency:  pair.QuoteCurrency,
		TargetCurrency: pair.TargetCurrency,
		Interval:       c.Query("interval"),
		StartTime:      start,
		EndTime:        end,
	})
	if err != nil {
		respondError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func pairQuery(c *gin.Context) service.PairQuery {
	return service.PairQuery{
		QuoteCurrency:  c.Query("quoteCurrency"),
		TargetCurrency: c.Param("target"),
	}
}
