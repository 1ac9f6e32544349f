package mcp

import (
	"context"
	"strconv"
	"time"

	"coinone-mcp/internal/domain"
	"coinone-mcp/internal/provider"
	"coinone-mcp/internal/service"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type stubMarketService struct {
	err error

	lastQuote string
	lastPair  service.PairQuery
	lastChart service.ChartQuery
}

func (s *stubMarketService) GetMarkets(ctx context.Context, quote string) (*service.MarketsResult, error) {
	s.lastQuote = quote
	if s.err != nil {
		return nil, s.err
	}
	return &service.MarketsResult{Markets: []service.MarketInfo{
		{QuoteCurrency: quote, TargetCurrency: "BTC", TradeStatus: 1, Pair: domain.Pair("BTC", quote)},
	}}, nil
}

func (s *stubMarketService) GetOrderbook(ctx context.Context, q service.PairQuery) (*service.OrderbookResult, error) {
	s.lastPair = q
	if s.err != nil {
		return nil, s.err
	}
	return &service.OrderbookResult{
		QuoteCurrency:  q.QuoteCurrency,
		TargetCurrency: q.TargetCurrency,
		Asks:           []domain.PriceLevel{{Price: "101", Qty: "1"}},
		Bids:           []domain.PriceLevel{{Price: "99", Qty: "2"}},
	}, nil
}

func (s *stubMarketService) GetRecentTrades(ctx context.Context, q service.PairQuery) (*service.TradesResult, error) {
	s.lastPair = q
	if s.err != nil {
		return nil, s.err
	}
	return &service.TradesResult{Transactions: []service.TradeInfo{{ID: "1", Type: "BUY", IsSellerMaker: true}}}, nil
}

func (s *stubMarketService) GetTickers(ctx context.Context, quote string) (*service.TickersResult, error) {
	s.lastQuote = quote
	if s.err != nil {
		return nil, s.err
	}
	return &service.TickersResult{Tickers: []service.TickerSummary{}}, nil
}

func (s *stubMarketService) GetTicker(ctx context.Context, q service.PairQuery) (*service.TickerResult, error) {
	s.lastPair = q
	if s.err != nil {
		return nil, s.err
	}
	return &service.TickerResult{QuoteCurrency: q.QuoteCurrency, TargetCurrency: q.TargetCurrency, ChangeRate: "0.00"}, nil
}

func (s *stubMarketService) GetChart(ctx context.Context, q service.ChartQuery) (*service.ChartResult, error) {
	s.lastChart = q
	if s.err != nil {
		return nil, s.err
	}
	return &service.ChartResult{Interval: q.Interval, Candles: []service.CandleInfo{}}, nil
}

// stubBybit serves a synthetic newest-first kline page, truncated to the
// requested limit like the exchange does.
type stubBybit struct {
	closes  []float64
	err     error
	queries []provider.KlineQuery
}

func (s *stubBybit) GetKlines(ctx context.Context, q provider.KlineQuery) (*domain.KlineSeries, error) {
	s.queries = append(s.queries, q)
	if s.err != nil {
		return nil, s.err
	}
	klines := make([]domain.Kline, 0, len(s.closes))
	for i := len(s.closes) - 1; i >= 0; i-- {
		c := strconv.FormatFloat(s.closes[i], 'f', -1, 64)
		klines = append(klines, domain.Kline{
			StartTime: 1700000000000 + int64(i)*60000,
			Open:      c, High: c, Low: c, Close: c,
			Volume: "1", Turnover: c,
		})
	}
	if q.Limit > 0 && len(klines) > q.Limit {
		klines = klines[:q.Limit]
	}
	return &domain.KlineSeries{Category: q.Category, Symbol: q.Symbol, Klines: klines}, nil
}

func oscillatingCloses(n int) []float64 {
	out := make([]float64, n)
	price := 100.0
	for i := range out {
		switch i % 5 {
		case 0, 1, 3:
			price += 1.5
		default:
			price -= 1.25
		}
		out[i] = price
	}
	return out
}

func testDispatcher() (*Dispatcher, *stubMarketService, *stubBybit) {
	markets := &stubMarketService{}
	bybit := &stubBybit{closes: oscillatingCloses(300)}
	charts := service.NewChartService(nil, bybit)
	return NewDispatcher(markets, charts), markets, bybit
}

func testServer() (*sdkmcp.Server, *stubMarketService, *stubBybit) {
	d, markets, bybit := testDispatcher()
	srv := NewServer(nil, d, ServerConfig{RequestTimeout: time.Second})
	return srv, markets, bybit
}

func connectInMemory(ctx context.Context, srv *sdkmcp.Server) (*sdkmcp.ClientSession, context.CancelFunc, error) {
	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	runCtx, cancel := context.WithCancel(ctx)
	go func() { _ = srv.Run(runCtx, serverTransport) }()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "mcp-test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return session, cancel, nil
}
