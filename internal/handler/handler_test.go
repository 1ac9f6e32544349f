package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"coinone-mcp/internal/domain"
	"coinone-mcp/internal/provider"
	"coinone-mcp/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubCoinone struct {
	err       error
	lastQuote string
	lastChart provider.ChartQuery
}

func (s *stubCoinone) GetMarkets(ctx context.Context, quote string) ([]domain.Market, error) {
	s.lastQuote = quote
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Market{{QuoteCurrency: quote, TargetCurrency: "BTC", TradeStatus: 1}}, nil
}

func (s *stubCoinone) GetOrderbook(ctx context.Context, quote, target string) (*domain.Orderbook, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Orderbook{QuoteCurrency: quote, TargetCurrency: target,
		Asks: []domain.PriceLevel{{Price: "101", Qty: "1"}}}, nil
}

func (s *stubCoinone) GetTrades(ctx context.Context, quote, target string) ([]domain.Trade, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Trade{{ID: "t1", Price: "100", Qty: "1", IsSellerMaker: false}}, nil
}

func (s *stubCoinone) GetTickers(ctx context.Context, quote string) ([]domain.Ticker, error) {
	s.lastQuote = quote
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Ticker{{QuoteCurrency: quote, TargetCurrency: "BTC", First: "100", Last: "110"}}, nil
}

func (s *stubCoinone) GetTicker(ctx context.Context, quote, target string) (*domain.Ticker, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Ticker{QuoteCurrency: quote, TargetCurrency: target, First: "200", Last: "150"}, nil
}

func (s *stubCoinone) GetChart(ctx context.Context, q provider.ChartQuery) ([]domain.Candle, error) {
	s.lastChart = q
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Candle{{Timestamp: 0, Open: "100", Close: "110"}}, nil
}

type stubBybit struct {
	err     error
	queries []provider.KlineQuery
}

func (s *stubBybit) GetKlines(ctx context.Context, q provider.KlineQuery) (*domain.KlineSeries, error) {
	s.queries = append(s.queries, q)
	if s.err != nil {
		return nil, s.err
	}
	klines := make([]domain.Kline, q.Limit)
	for i := range klines {
		price := strconv.Itoa(100 + (i*7)%13)
		klines[i] = domain.Kline{
			StartTime: int64(q.Limit-i) * 60000,
			Open:      "100", High: price, Low: price, Close: price,
			Volume: "1", Turnover: price,
		}
	}
	return &domain.KlineSeries{Category: q.Category, Symbol: q.Symbol, Klines: klines}, nil
}

func newTestRouter(coinone *stubCoinone, bybit *stubBybit) *gin.Engine {
	tracer := trace.NewNoopTracerProvider().Tracer("test")
	h := New(tracer,
		service.NewMarketService(tracer, coinone),
		service.NewChartService(tracer, bybit),
	)
	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	w := get(newTestRouter(&stubCoinone{}, &stubBybit{}), "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestCoinoneRoutes(t *testing.T) {
	coinone := &stubCoinone{}
	r := newTestRouter(coinone, &stubBybit{})

	for _, path := range []string{
		"/api/coinone/markets",
		"/api/coinone/orderbook/btc",
		"/api/coinone/trades/BTC",
		"/api/coinone/tickers?quoteCurrency=krw",
		"/api/coinone/ticker/ETH",
		"/api/coinone/chart/BTC?interval=4h&startTime=1000&endTime=2000",
	} {
		if w := get(r, path); w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d: %s", path, w.Code, w.Body.String())
		}
	}
	if coinone.lastChart.Interval != "4h" || coinone.lastChart.StartTime == nil || *coinone.lastChart.StartTime != 1000 {
		t.Fatalf("unexpected chart query: %+v", coinone.lastChart)
	}
	if coinone.lastQuote != "KRW" {
		t.Fatalf("expected normalized quote, got %s", coinone.lastQuote)
	}
}

func TestGetTickerBody(t *testing.T) {
	w := get(newTestRouter(&stubCoinone{}, &stubBybit{}), "/api/coinone/ticker/btc")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var res service.TickerResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if res.TargetCurrency != "BTC" || res.ChangeRate != "-25.00" || res.ChangeAmount != "-50" {
		t.Fatalf("unexpected ticker: %+v", res)
	}
}

func TestBybitRSIRoute(t *testing.T) {
	bybit := &stubBybit{}
	w := get(newTestRouter(&stubCoinone{}, bybit), "/api/bybit/rsi/btcusdt?rsiPeriod=6&limit=5")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var res struct {
		Symbol     string            `json:"symbol"`
		RSIPeriod  int               `json:"rsiPeriod"`
		CurrentRSI *float64          `json:"currentRsi"`
		Candles    []json.RawMessage `json:"candles"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if res.Symbol != "BTCUSDT" || res.RSIPeriod != 6 || len(res.Candles) != 5 || res.CurrentRSI == nil {
		t.Fatalf("unexpected response: %s", w.Body.String())
	}
	if bybit.queries[0].Limit != 18 {
		t.Fatalf("expected warm-up fetch of 18, got %d", bybit.queries[0].Limit)
	}
}

func TestBybitChartRoute(t *testing.T) {
	bybit := &stubBybit{}
	w := get(newTestRouter(&stubCoinone{}, bybit), "/api/bybit/chart/BTCUSDT?category=spot&interval=60")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	q := bybit.queries[0]
	if q.Category != "spot" || q.Interval != "60" || q.Limit != service.DefaultBybitChartLimit {
		t.Fatalf("unexpected upstream query: %+v", q)
	}
}

func TestBadRequests(t *testing.T) {
	r := newTestRouter(&stubCoinone{}, &stubBybit{})
	for _, path := range []string{
		"/api/coinone/chart/BTC?startTime=abc",
		"/api/coinone/chart/BTC?startTime=5&endTime=1",
		"/api/bybit/chart/BTCUSDT?limit=0",
		"/api/bybit/chart/BTCUSDT?limit=1001",
		"/api/bybit/chart/BTCUSDT?category=option",
		"/api/bybit/chart/BTCUSDT?interval=2",
		"/api/bybit/rsi/BTCUSDT?rsiPeriod=0",
		"/api/bybit/rsi/BTCUSDT?end=soon",
	} {
		if w := get(r, path); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, w.Code)
		}
	}
}

func TestUpstreamFailureIsBadGateway(t *testing.T) {
	r := newTestRouter(&stubCoinone{err: domain.ErrFetchFailed}, &stubBybit{err: domain.ErrFetchFailed})
	for _, path := range []string{"/api/coinone/markets", "/api/bybit/rsi/BTCUSDT"} {
		w := get(r, path)
		if w.Code != http.StatusBadGateway {
			t.Fatalf("%s: expected 502, got %d", path, w.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["error"] == "" {
			t.Fatalf("%s: expected error body, got %s", path, w.Body.String())
		}
	}
}
