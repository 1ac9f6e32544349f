package tui

import (
	"strings"
	"testing"

	"coinone-mcp/internal/domain"
	"coinone-mcp/internal/service"
)

func signal(s domain.RSISignal) *domain.RSISignal { return &s }

func TestFormatPrice(t *testing.T) {
	tests := map[string]string{
		"95000000":   "95,000,000",
		"1234.5678":  "1,234.5678",
		"-500000":    "-500,000",
		"999":        "999",
		"0.00012":    "0.00012",
		"":           "-",
		" 12345 ":    "12,345",
		"1000000.00": "1,000,000.00",
	}
	for in, want := range tests {
		if got := FormatPrice(in); got != want {
			t.Errorf("FormatPrice(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatChange(t *testing.T) {
	if got := FormatChange("0.53"); !strings.Contains(got, "+0.53%") {
		t.Fatalf("expected positive change, got %q", got)
	}
	if got := FormatChange("-25.00"); !strings.Contains(got, "-25.00%") {
		t.Fatalf("expected negative change, got %q", got)
	}
	for _, zero := range []string{"0.00", "-0.00", ""} {
		if got := FormatChange(zero); !strings.Contains(got, "0.00%") || strings.Contains(got, "+") {
			t.Fatalf("expected flat change for %q, got %q", zero, got)
		}
	}
}

func TestRenderRSIGauge(t *testing.T) {
	got := RenderRSIGauge("RSI(14)", domain.RSI(75), signal(domain.SignalOverbought))
	if !strings.Contains(got, "75.00") || !strings.Contains(got, "Overbought") {
		t.Fatalf("unexpected gauge: %q", got)
	}
	if strings.Count(got, "█") != 15 {
		t.Fatalf("expected 15 filled cells, got %d in %q", strings.Count(got, "█"), got)
	}

	empty := RenderRSIGauge("RSI(14)", domain.RSIValue{}, nil)
	if !strings.Contains(empty, "not enough history") {
		t.Fatalf("expected warm-up message, got %q", empty)
	}
}

func TestRenderBybitRSI(t *testing.T) {
	res := &service.BybitRSIResult{
		Symbol:        "BTCUSDT",
		Category:      "linear",
		Interval:      "1",
		RSIPeriod:     14,
		CurrentRSI:    domain.RSI(25.5),
		CurrentSignal: signal(domain.SignalOversold),
		Candles: []service.BybitRSICandleInfo{
			{
				KlineInfo:  service.KlineInfo{Datetime: "2023-11-14 22:13:20", Close: "36500.5"},
				ChangeRate: "-1.20",
				RSI:        domain.RSI(25.5),
				RSISignal:  signal(domain.SignalOversold),
			},
			{
				KlineInfo:  service.KlineInfo{Datetime: "2023-11-14 22:12:20", Close: "36900"},
				ChangeRate: "0.00",
			},
		},
	}

	out, err := Render(res)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"BTCUSDT linear 1", "RSI(14)", "36,500.5", "25.50", "Oversold", "2023-11-14 22:12:20"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderBybitChart(t *testing.T) {
	res := &service.BybitChartResult{
		Symbol:       "ETHUSDT",
		Category:     "spot",
		Interval:     "60",
		CurrentRSI6:  domain.RSI(50),
		CurrentRSI12: domain.RSIValue{},
		Candles: []service.BybitCandleInfo{{
			KlineInfo: service.KlineInfo{Datetime: "2023-11-14 22:00:00", Close: "2050"},
			RSI6:      domain.RSI(50),
		}},
	}
	out := RenderBybitChart(res)
	for _, want := range []string{"ETHUSDT spot 60", "RSI(6)", "RSI(12)", "2,050", "50.00", "not enough history"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderCoinoneViews(t *testing.T) {
	ask := "95600000"
	tests := []struct {
		name   string
		result any
		want   []string
	}{
		{
			name:   "markets",
			result: &service.MarketsResult{Markets: []service.MarketInfo{{Pair: "BTC/KRW", TradeStatus: 1}}},
			want:   []string{"Markets (1)", "BTC/KRW", "open"},
		},
		{
			name: "orderbook",
			result: &service.OrderbookResult{
				QuoteCurrency: "KRW", TargetCurrency: "BTC",
				Asks: []domain.PriceLevel{{Price: "95600000", Qty: "0.5"}},
				Bids: []domain.PriceLevel{{Price: "95500000", Qty: "1.2"}},
			},
			want: []string{"Orderbook BTC/KRW", "ASK", "95,600,000", "BID", "95,500,000"},
		},
		{
			name:   "trades",
			result: &service.TradesResult{Transactions: []service.TradeInfo{{ID: "42", Type: "SELL", Price: "95500000", Qty: "0.01"}}},
			want:   []string{"Recent trades (1)", "42", "SELL", "95,500,000"},
		},
		{
			name: "tickers",
			result: &service.TickersResult{Tickers: []service.TickerSummary{
				{Pair: "BTC/KRW", Last: "95500000", ChangeRate: "0.53", BestAskPrice: &ask},
			}},
			want: []string{"Tickers (1)", "BTC/KRW", "+0.53%", "95,600,000"},
		},
		{
			name:   "ticker",
			result: &service.TickerResult{Pair: "BTC/KRW", First: "95000000", Last: "95500000", ChangeRate: "0.53", ChangeAmount: "500000"},
			want:   []string{"Ticker BTC/KRW", "95,000,000", "+0.53%", "500,000"},
		},
		{
			name:   "chart",
			result: &service.ChartResult{Interval: "1h", Candles: []service.CandleInfo{{Datetime: "2024-01-01 09:00:00", Close: "1000"}}},
			want:   []string{"Chart 1h (1 candles)", "2024-01-01 09:00:00", "1,000"},
		},
		{
			name:   "empty",
			result: &service.TradesResult{},
			want:   []string{"Recent trades (0)", "no rows"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.result)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Fatalf("expected %q in output:\n%s", want, out)
				}
			}
		})
	}
}

func TestRenderFallsBackToJSON(t *testing.T) {
	out, err := Render(map[string]int{"count": 3})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "{\n  \"count\": 3\n}" {
		t.Fatalf("unexpected JSON output: %q", out)
	}

	if _, err := Render(func() {}); err == nil {
		t.Fatal("expected encode error for unsupported value")
	}
}
