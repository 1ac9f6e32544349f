package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"coinone-mcp/internal/domain"
	"coinone-mcp/internal/provider"
	"coinone-mcp/internal/signal"

	"go.opentelemetry.io/otel/trace"
)

type stubBybitClient struct {
	series   *domain.KlineSeries
	err      error
	lastReq  provider.KlineQuery
	requests int
}

func (s *stubBybitClient) GetKlines(ctx context.Context, q provider.KlineQuery) (*domain.KlineSeries, error) {
	s.lastReq = q
	s.requests++
	if s.err != nil {
		return nil, s.err
	}
	series := *s.series
	if len(series.Klines) > q.Limit {
		series.Klines = series.Klines[:q.Limit]
	}
	return &series, nil
}

// chronoCloses is an oldest-first close series with both gains and losses.
func chronoCloses(n int) []float64 {
	out := make([]float64, n)
	x := 100.0
	for i := range out {
		switch i % 5 {
		case 0, 2:
			x += 1.5
		case 4:
			x -= 2.25
		default:
			x -= 0.5
		}
		out[i] = x
	}
	return out
}

// newestFirstKlines serves closes the way Bybit does, newest first.
func newestFirstKlines(closes []float64) []domain.Kline {
	out := make([]domain.Kline, len(closes))
	for i, c := range closes {
		ts := int64(1700000000000 + i*60000)
		s := strconv.FormatFloat(c, 'f', -1, 64)
		out[len(closes)-1-i] = domain.Kline{
			StartTime: ts,
			Open:      "100",
			High:      s,
			Low:       s,
			Close:     s,
			Volume:    "1",
			Turnover:  s,
		}
	}
	return out
}

func newChartService(closes []float64) (*ChartService, *stubBybitClient) {
	stub := &stubBybitClient{series: &domain.KlineSeries{
		Category: "linear",
		Symbol:   "BTCUSDT",
		Klines:   newestFirstKlines(closes),
	}}
	return NewChartService(trace.NewNoopTracerProvider().Tracer("test"), stub), stub
}

func TestGetBybitRSIWindowing(t *testing.T) {
	closes := chronoCloses(200)
	svc, stub := newChartService(closes)

	res, err := svc.GetBybitRSI(context.Background(), RSIQuery{
		KlineQuery: KlineQuery{Symbol: "BTCUSDT", Limit: 50},
		RSIPeriod:  14,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stub.lastReq.Limit != 50 {
		t.Fatalf("expected fetch of max(50, 42)=50, got %d", stub.lastReq.Limit)
	}
	if len(res.Candles) != 50 {
		t.Fatalf("expected 50 candles, got %d", len(res.Candles))
	}
	for i := 1; i < len(res.Candles); i++ {
		if res.Candles[i-1].Timestamp <= res.Candles[i].Timestamp {
			t.Fatalf("expected newest-first order at %d", i)
		}
	}

	// fetched batch is the newest 50 closes, oldest-first
	fetched := closes[len(closes)-50:]
	full := signal.ComputeRSI(fetched, 14)
	if !res.CurrentRSI.Valid || res.CurrentRSI != full[len(full)-1] {
		t.Fatalf("currentRsi %+v does not match full-history value %+v", res.CurrentRSI, full[len(full)-1])
	}
	if res.CurrentRSI != res.Candles[0].RSI {
		t.Fatal("currentRsi must equal the newest candle's RSI")
	}
	if res.CurrentSignal == nil || *res.CurrentSignal != signal.ClassifySignal(res.CurrentRSI.Value) {
		t.Fatalf("unexpected current signal: %v", res.CurrentSignal)
	}
	if res.Symbol != "BTCUSDT" || res.Category != "linear" || res.Interval != "1" || res.RSIPeriod != 14 {
		t.Fatalf("unexpected header: %+v", res)
	}

	// warm-up entries sit at the oldest end of the newest-first list
	for i := 0; i < 14; i++ {
		c := res.Candles[len(res.Candles)-1-i]
		if c.RSI.Valid || c.RSISignal != nil {
			t.Fatalf("expected absent RSI for warm-up candle %d", i)
		}
	}
}

func TestGetBybitRSIUsesExtraHistory(t *testing.T) {
	closes := chronoCloses(300)
	svc, stub := newChartService(closes)

	res, err := svc.GetBybitRSI(context.Background(), RSIQuery{
		KlineQuery: KlineQuery{Symbol: "btcusdt", Limit: 10},
		RSIPeriod:  14,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.lastReq.Limit != 42 {
		t.Fatalf("expected fetch of period*3=42, got %d", stub.lastReq.Limit)
	}
	if stub.lastReq.Symbol != "BTCUSDT" {
		t.Fatalf("expected upper-cased symbol, got %s", stub.lastReq.Symbol)
	}
	if len(res.Candles) != 10 {
		t.Fatalf("expected 10 candles, got %d", len(res.Candles))
	}

	full := signal.ComputeRSI(closes[len(closes)-42:], 14)
	for i, c := range res.Candles {
		want := full[len(full)-1-i]
		if c.RSI != want {
			t.Fatalf("candle %d: RSI %+v differs from full-history %+v", i, c.RSI, want)
		}
	}

	// recomputing on the trimmed window would leave most of it in warm-up
	trimmed := signal.ComputeRSI(closes[len(closes)-10:], 14)
	if trimmed[len(trimmed)-1].Valid {
		t.Fatal("expected trimmed-only computation to be absent")
	}
	if !res.CurrentRSI.Valid {
		t.Fatal("expected current RSI to come from full history")
	}
}

func TestGetBybitChartWindowing(t *testing.T) {
	closes := chronoCloses(120)
	svc, stub := newChartService(closes)

	res, err := svc.GetBybitChart(context.Background(), KlineQuery{Symbol: "BTCUSDT", Limit: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.lastReq.Limit != 50 {
		t.Fatalf("expected warm-up fetch of 50, got %d", stub.lastReq.Limit)
	}
	if stub.lastReq.Category != "linear" || stub.lastReq.Interval != "1" {
		t.Fatalf("expected defaults, got %+v", stub.lastReq)
	}
	if len(res.Candles) != 20 {
		t.Fatalf("expected 20 candles, got %d", len(res.Candles))
	}

	fetched := closes[len(closes)-50:]
	rsi6 := signal.ComputeRSI(fetched, 6)
	rsi12 := signal.ComputeRSI(fetched, 12)
	if res.CurrentRSI6 != rsi6[len(rsi6)-1] || res.CurrentRSI12 != rsi12[len(rsi12)-1] {
		t.Fatalf("current RSI mismatch: %+v %+v", res.CurrentRSI6, res.CurrentRSI12)
	}
	if res.CurrentRSI6Signal == nil || res.CurrentRSI12Signal == nil {
		t.Fatal("expected current signals")
	}
	newest := res.Candles[0]
	if newest.Timestamp != 1700000000000+119*60000 {
		t.Fatalf("unexpected newest timestamp %d", newest.Timestamp)
	}
	if newest.Datetime == "" || newest.ChangeRate == "" {
		t.Fatalf("expected formatted fields: %+v", newest)
	}
}

func TestGetBybitChartDefaultLimit(t *testing.T) {
	svc, stub := newChartService(chronoCloses(500))

	res, err := svc.GetBybitChart(context.Background(), KlineQuery{Symbol: "ETHUSDT"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.lastReq.Limit != DefaultBybitChartLimit || len(res.Candles) != DefaultBybitChartLimit {
		t.Fatalf("expected default limit %d, fetched %d returned %d", DefaultBybitChartLimit, stub.lastReq.Limit, len(res.Candles))
	}
}

func TestGetBybitRSIFetchClamp(t *testing.T) {
	svc, stub := newChartService(chronoCloses(10))

	res, err := svc.GetBybitRSI(context.Background(), RSIQuery{
		KlineQuery: KlineQuery{Symbol: "BTCUSDT", Limit: 5000},
		RSIPeriod:  500,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.lastReq.Limit != provider.MaxKlineLimit {
		t.Fatalf("expected fetch clamp at %d, got %d", provider.MaxKlineLimit, stub.lastReq.Limit)
	}
	if len(res.Candles) != 10 {
		t.Fatalf("expected all 10 available candles, got %d", len(res.Candles))
	}
	if res.CurrentRSI.Valid || res.CurrentSignal != nil {
		t.Fatal("expected absent RSI for short history")
	}
}

func TestGetBybitRSIEmptyUpstream(t *testing.T) {
	svc, _ := newChartService(nil)

	res, err := svc.GetBybitRSI(context.Background(), RSIQuery{KlineQuery: KlineQuery{Symbol: "BTCUSDT"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Candles) != 0 || res.CurrentRSI.Valid {
		t.Fatalf("expected empty result, got %+v", res)
	}

	out, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["currentRsi"] != nil || decoded["currentSignal"] != nil {
		t.Fatalf("expected null current fields, got %s", out)
	}
	if candles, ok := decoded["candles"].([]any); !ok || len(candles) != 0 {
		t.Fatalf("expected empty candle array, got %s", out)
	}
}

func TestChartServiceValidation(t *testing.T) {
	svc, stub := newChartService(chronoCloses(10))
	ctx := context.Background()

	cases := []struct {
		name string
		run  func() error
	}{
		{name: "missing symbol", run: func() error {
			_, err := svc.GetBybitChart(ctx, KlineQuery{})
			return err
		}},
		{name: "bad category", run: func() error {
			_, err := svc.GetBybitChart(ctx, KlineQuery{Symbol: "BTCUSDT", Category: "option"})
			return err
		}},
		{name: "bad interval", run: func() error {
			_, err := svc.GetBybitRSI(ctx, RSIQuery{KlineQuery: KlineQuery{Symbol: "BTCUSDT", Interval: "2"}})
			return err
		}},
		{name: "lowercase minute interval", run: func() error {
			_, err := svc.GetBybitChart(ctx, KlineQuery{Symbol: "BTCUSDT", Interval: "m"})
			return err
		}},
		{name: "lowercase day interval", run: func() error {
			_, err := svc.GetBybitRSI(ctx, RSIQuery{KlineQuery: KlineQuery{Symbol: "BTCUSDT", Interval: "d"}})
			return err
		}},
		{name: "negative period", run: func() error {
			_, err := svc.GetBybitRSI(ctx, RSIQuery{KlineQuery: KlineQuery{Symbol: "BTCUSDT"}, RSIPeriod: -1})
			return err
		}},
		{name: "inverted range", run: func() error {
			start, end := int64(10), int64(5)
			_, err := svc.GetBybitChart(ctx, KlineQuery{Symbol: "BTCUSDT", Start: &start, End: &end})
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !errors.Is(err, domain.ErrInvalidArgument) {
				t.Fatalf("expected invalid argument, got %v", err)
			}
		})
	}
	if stub.requests != 0 {
		t.Fatalf("expected no upstream calls for invalid input, got %d", stub.requests)
	}
}

func TestChartServiceFetchFailure(t *testing.T) {
	svc, stub := newChartService(nil)
	stub.err = domain.ErrFetchFailed

	_, err := svc.GetBybitChart(context.Background(), KlineQuery{Symbol: "BTCUSDT"})
	if !errors.Is(err, domain.ErrFetchFailed) {
		t.Fatalf("expected fetch failure, got %v", err)
	}
}

func TestNewestWindow(t *testing.T) {
	chrono := []int{1, 2, 3, 4, 5}
	got := newestWindow(chrono, 3)
	want := []int{5, 4, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if len(newestWindow(chrono, 10)) != 5 || len(newestWindow(chrono, 0)) != 0 {
		t.Fatal("unexpected window length")
	}
	if chrono[0] != 1 || chrono[4] != 5 {
		t.Fatal("input must not be mutated")
	}
}

func TestFetchSize(t *testing.T) {
	tests := []struct{ limit, floor, want int }{
		{limit: 50, floor: 42, want: 50},
		{limit: 10, floor: 42, want: 42},
		{limit: 200, floor: 50, want: 200},
		{limit: 1000, floor: 3000, want: 1000},
	}
	for _, tc := range tests {
		if got := fetchSize(tc.limit, tc.floor); got != tc.want {
			t.Fatalf("fetchSize(%d, %d) = %d, want %d", tc.limit, tc.floor, got, tc.want)
		}
	}
}
