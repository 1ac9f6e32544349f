package service

import (
	"context"
	"fmt"
	"strings"

	"coinone-mcp/internal/domain"
	"coinone-mcp/internal/provider"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultQuoteCurrency = "KRW"
	DefaultChartInterval = "1h"
)

type CoinoneClient interface {
	GetMarkets(ctx context.Context, quoteCurrency string) ([]domain.Market, error)
	GetOrderbook(ctx context.Context, quoteCurrency, targetCurrency string) (*domain.Orderbook, error)
	GetTrades(ctx context.Context, quoteCurrency, targetCurrency string) ([]domain.Trade, error)
	GetTickers(ctx context.Context, quoteCurrency string) ([]domain.Ticker, error)
	GetTicker(ctx context.Context, quoteCurrency, targetCurrency string) (*domain.Ticker, error)
	GetChart(ctx context.Context, q provider.ChartQuery) ([]domain.Candle, error)
}

// MarketService shapes Coinone reference data, order flow and charts.
type MarketService struct {
	tracer  trace.Tracer
	coinone CoinoneClient
}

func NewMarketService(tracer trace.Tracer, coinone CoinoneClient) *MarketService {
	return &MarketService{tracer: orNoop(tracer), coinone: coinone}
}

type PairQuery struct {
	QuoteCurrency  string
	TargetCurrency string
}

func (q PairQuery) normalize() (PairQuery, error) {
	q.QuoteCurrency = normalizeQuote(q.QuoteCurrency)
	q.TargetCurrency = strings.ToUpper(strings.TrimSpace(q.TargetCurrency))
	if q.TargetCurrency == "" {
		return q, fmt.Errorf("%w: targetCurrency is required", domain.ErrInvalidArgument)
	}
	return q, nil
}

type ChartQuery struct {
	QuoteCurrency  string
	TargetCurrency string
	Interval       string
	StartTime      *int64
	EndTime        *int64
}

func normalizeQuote(quote string) string {
	quote = strings.ToUpper(strings.TrimSpace(quote))
	if quote == "" {
		return DefaultQuoteCurrency
	}
	return quote
}

func (s *MarketService) GetMarkets(ctx context.Context, quoteCurrency string) (*MarketsResult, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.get-markets")
	defer span.End()

	quoteCurrency = normalizeQuote(quoteCurrency)
	span.SetAttributes(attribute.String("quote_currency", quoteCurrency))

	markets, err := s.coinone.GetMarkets(ctx, quoteCurrency)
	if err != nil {
		return nil, fmt.Errorf("get markets: %w", err)
	}

	out := &MarketsResult{Markets: make([]MarketInfo, 0, len(markets))}
	for _, m := range markets {
		out.Markets = append(out.Markets, MarketInfo{
			QuoteCurrency:     m.QuoteCurrency,
			TargetCurrency:    m.TargetCurrency,
			TradeStatus:       m.TradeStatus,
			MaintenanceStatus: m.MaintenanceStatus,
			Pair:              domain.Pair(m.TargetCurrency, m.QuoteCurrency),
		})
	}
	return out, nil
}

func (s *MarketService) GetOrderbook(ctx context.Context, q PairQuery) (*OrderbookResult, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.get-orderbook")
	defer span.End()

	q, err := q.normalize()
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("pair", domain.Pair(q.TargetCurrency, q.QuoteCurrency)))

	ob, err := s.coinone.GetOrderbook(ctx, q.QuoteCurrency, q.TargetCurrency)
	if err != nil {
		return nil, fmt.Errorf("get orderbook: %w", err)
	}
	return &OrderbookResult{
		Timestamp:      ob.Timestamp,
		QuoteCurrency:  ob.QuoteCurrency,
		TargetCurrency: ob.TargetCurrency,
		Asks:           levels(ob.Asks),
		Bids:           levels(ob.Bids),
	}, nil
}

func (s *MarketService) GetRecentTrades(ctx context.Context, q PairQuery) (*TradesResult, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.get-recent-trades")
	defer span.End()

	q, err := q.normalize()
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("pair", domain.Pair(q.TargetCurrency, q.QuoteCurrency)))

	trades, err := s.coinone.GetTrades(ctx, q.QuoteCurrency, q.TargetCurrency)
	if err != nil {
		return nil, fmt.Errorf("get recent trades: %w", err)
	}

	out := &TradesResult{Transactions: make([]TradeInfo, 0, len(trades))}
	for _, tr := range trades {
		// a seller-maker fill was taken by a buyer
		side := "SELL"
		if tr.IsSellerMaker {
			side = "BUY"
		}
		out.Transactions = append(out.Transactions, TradeInfo{
			ID:            tr.ID,
			Timestamp:     tr.Timestamp,
			Price:         tr.Price,
			Qty:           tr.Qty,
			IsSellerMaker: tr.IsSellerMaker,
			Type:          side,
		})
	}
	return out, nil
}

func (s *MarketService) GetTickers(ctx context.Context, quoteCurrency string) (*TickersResult, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.get-tickers")
	defer span.End()

	quoteCurrency = normalizeQuote(quoteCurrency)
	span.SetAttributes(attribute.String("quote_currency", quoteCurrency))

	tickers, err := s.coinone.GetTickers(ctx, quoteCurrency)
	if err != nil {
		return nil, fmt.Errorf("get tickers: %w", err)
	}

	out := &TickersResult{Tickers: make([]TickerSummary, 0, len(tickers))}
	for _, t := range tickers {
		out.Tickers = append(out.Tickers, TickerSummary{
			QuoteCurrency:  t.QuoteCurrency,
			TargetCurrency: t.TargetCurrency,
			Pair:           domain.Pair(t.TargetCurrency, t.QuoteCurrency),
			Timestamp:      t.Timestamp,
			QuoteVolume:    t.QuoteVolume,
			TargetVolume:   t.TargetVolume,
			High:           t.High,
			Low:            t.Low,
			First:          t.First,
			Last:           t.Last,
			ChangeRate:     domain.ChangeRate(t.First, t.Last),
			BestAskPrice:   bestPrice(t.BestAsks),
			BestBidPrice:   bestPrice(t.BestBids),
		})
	}
	return out, nil
}

func (s *MarketService) GetTicker(ctx context.Context, q PairQuery) (*TickerResult, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.get-ticker")
	defer span.End()

	q, err := q.normalize()
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("pair", domain.Pair(q.TargetCurrency, q.QuoteCurrency)))

	t, err := s.coinone.GetTicker(ctx, q.QuoteCurrency, q.TargetCurrency)
	if err != nil {
		return nil, fmt.Errorf("get ticker: %w", err)
	}
	return &TickerResult{
		QuoteCurrency:  t.QuoteCurrency,
		TargetCurrency: t.TargetCurrency,
		Pair:           domain.Pair(t.TargetCurrency, t.QuoteCurrency),
		Timestamp:      t.Timestamp,
		QuoteVolume:    t.QuoteVolume,
		TargetVolume:   t.TargetVolume,
		High:           t.High,
		Low:            t.Low,
		First:          t.First,
		Last:           t.Last,
		ChangeRate:     domain.ChangeRate(t.First, t.Last),
		ChangeAmount:   domain.ChangeAmount(t.First, t.Last),
		BestAsks:       levels(t.BestAsks),
		BestBids:       levels(t.BestBids),
	}, nil
}

// GetChart returns Coinone candles in upstream order with KST datetimes.
func (s *MarketService) GetChart(ctx context.Context, q ChartQuery) (*ChartResult, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.get-chart")
	defer span.End()

	pair, err := PairQuery{QuoteCurrency: q.QuoteCurrency, TargetCurrency: q.TargetCurrency}.normalize()
	if err != nil {
		return nil, err
	}
	interval := strings.TrimSpace(q.Interval)
	if interval == "" {
		interval = DefaultChartInterval
	}
	if q.StartTime != nil && q.EndTime != nil && *q.StartTime > *q.EndTime {
		return nil, fmt.Errorf("%w: startTime must not be after endTime", domain.ErrInvalidArgument)
	}
	span.SetAttributes(
		attribute.String("pair", domain.Pair(pair.TargetCurrency, pair.QuoteCurrency)),
		attribute.String("interval", interval),
	)

	candles, err := s.coinone.GetChart(ctx, provider.ChartQuery{
		QuoteCurrency:  pair.QuoteCurrency,
		TargetCurrency: pair.TargetCurrency,
		Interval:       interval,
		StartTime:      q.StartTime,
		EndTime:        q.EndTime,
	})
	if err != nil {
		return nil, fmt.Errorf("get chart: %w", err)
	}

	out := &ChartResult{Interval: interval, Candles: make([]CandleInfo, 0, len(candles))}
	for _, c := range candles {
		out.Candles = append(out.Candles, CandleInfo{
			Timestamp:    c.Timestamp,
			Datetime:     formatMillis(c.Timestamp, seoul),
			Open:         c.Open,
			High:         c.High,
			Low:          c.Low,
			Close:        c.Close,
			QuoteVolume:  c.QuoteVolume,
			TargetVolume: c.TargetVolume,
			ChangeRate:   domain.ChangeRate(c.Open, c.Close),
		})
	}
	return out, nil
}

func levels(in []domain.PriceLevel) []domain.PriceLevel {
	out := make([]domain.PriceLevel, len(in))
	copy(out, in)
	return out
}

func bestPrice(side []domain.PriceLevel) *string {
	if len(side) == 0 {
		return nil
	}
	p := side[0].Price
	return &p
}
