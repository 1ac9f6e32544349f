package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"coinone-mcp/internal/domain"
	"coinone-mcp/internal/provider"
	"coinone-mcp/internal/signal"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	DefaultBybitCategory   = "linear"
	DefaultBybitInterval   = "1"
	DefaultBybitChartLimit = 200
	DefaultBybitRSILimit   = 50

	chartWarmupFloor = 50
	rsiWarmupFactor  = 3
	shortRSIPeriod   = 6
	longRSIPeriod    = 12
)

var (
	BybitCategories = []string{"spot", "linear", "inverse"}
	BybitIntervals  = []string{"1", "3", "5", "15", "30", "60", "120", "240", "360", "720", "D", "W", "M"}
)

type BybitClient interface {
	GetKlines(ctx context.Context, q provider.KlineQuery) (*domain.KlineSeries, error)
}

// ChartService builds RSI-enriched Bybit candle views.
type ChartService struct {
	tracer trace.Tracer
	bybit  BybitClient
}

func NewChartService(tracer trace.Tracer, bybit BybitClient) *ChartService {
	return &ChartService{tracer: orNoop(tracer), bybit: bybit}
}

type KlineQuery struct {
	Symbol   string
	Category string
	Interval string
	Start    *int64
	End      *int64
	Limit    int
}

type RSIQuery struct {
	KlineQuery
	RSIPeriod int
}

func (q KlineQuery) normalize(defaultLimit int) (KlineQuery, error) {
	q.Symbol = strings.ToUpper(strings.TrimSpace(q.Symbol))
	if q.Symbol == "" {
		return q, fmt.Errorf("%w: symbol is required", domain.ErrInvalidArgument)
	}

	q.Category = strings.ToLower(strings.TrimSpace(q.Category))
	if q.Category == "" {
		q.Category = DefaultBybitCategory
	}
	if !slices.Contains(BybitCategories, q.Category) {
		return q, fmt.Errorf("%w: unsupported category: %s", domain.ErrInvalidArgument, q.Category)
	}

	// Intervals are case-sensitive: "M" is monthly, a lowercase "m" is rejected.
	q.Interval = strings.TrimSpace(q.Interval)
	if q.Interval == "" {
		q.Interval = DefaultBybitInterval
	}
	if !slices.Contains(BybitIntervals, q.Interval) {
		return q, fmt.Errorf("%w: unsupported interval: %s", domain.ErrInvalidArgument, q.Interval)
	}

	if q.Start != nil && q.End != nil && *q.Start > *q.End {
		return q, fmt.Errorf("%w: start must not be after end", domain.ErrInvalidArgument)
	}

	q.Limit = normalizeLimit(q.Limit, defaultLimit)
	return q, nil
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > provider.MaxKlineLimit {
		return provider.MaxKlineLimit
	}
	return limit
}

// GetBybitChart returns newest-first candles with RSI(6) and RSI(12) computed
// over the whole fetched history.
func (s *ChartService) GetBybitChart(ctx context.Context, q KlineQuery) (*BybitChartResult, error) {
	ctx, span := s.tracer.Start(ctx, "chart-service.get-bybit-chart")
	defer span.End()

	q, err := q.normalize(DefaultBybitChartLimit)
	if err != nil {
		return nil, err
	}

	fetch := fetchSize(q.Limit, chartWarmupFloor)
	span.SetAttributes(
		attribute.String("symbol", q.Symbol),
		attribute.String("category", q.Category),
		attribute.String("interval", q.Interval),
		attribute.Int("limit", q.Limit),
		attribute.Int("fetch", fetch),
	)

	series, err := s.fetch(ctx, q, fetch)
	if err != nil {
		return nil, fmt.Errorf("get bybit chart: %w", err)
	}

	chrono := chronological(series.Klines)
	prices := closePrices(chrono)
	rsi6 := signal.ComputeRSI(prices, shortRSIPeriod)
	rsi12 := signal.ComputeRSI(prices, longRSIPeriod)

	candles := make([]BybitCandleInfo, len(chrono))
	for i, k := range chrono {
		candles[i] = BybitCandleInfo{
			KlineInfo:   klineInfo(k),
			ChangeRate:  domain.ChangeRate(k.Open, k.Close),
			RSI6:        rsi6[i],
			RSI6Signal:  signal.Classify(rsi6[i]),
			RSI12:       rsi12[i],
			RSI12Signal: signal.Classify(rsi12[i]),
		}
	}
	window := newestWindow(candles, q.Limit)

	out := &BybitChartResult{
		Symbol:   firstNonEmpty(series.Symbol, q.Symbol),
		Category: firstNonEmpty(series.Category, q.Category),
		Interval: q.Interval,
		Candles:  window,
	}
	if len(window) > 0 {
		out.CurrentRSI6 = window[0].RSI6
		out.CurrentRSI6Signal = window[0].RSI6Signal
		out.CurrentRSI12 = window[0].RSI12
		out.CurrentRSI12Signal = window[0].RSI12Signal
	}
	return out, nil
}

// GetBybitRSI returns newest-first candles with RSI(period), fetching at least
// period*3 candles of history.
func (s *ChartService) GetBybitRSI(ctx context.Context, q RSIQuery) (*BybitRSIResult, error) {
	ctx, span := s.tracer.Start(ctx, "chart-service.get-bybit-rsi")
	defer span.End()

	kq, err := q.KlineQuery.normalize(DefaultBybitRSILimit)
	if err != nil {
		return nil, err
	}
	period := q.RSIPeriod
	if period == 0 {
		period = signal.DefaultRSIPeriod
	}
	if period < 0 {
		return nil, fmt.Errorf("%w: rsiPeriod must be positive", domain.ErrInvalidArgument)
	}

	fetch := fetchSize(kq.Limit, period*rsiWarmupFactor)
	span.SetAttributes(
		attribute.String("symbol", kq.Symbol),
		attribute.String("category", kq.Category),
		attribute.String("interval", kq.Interval),
		attribute.Int("rsi_period", period),
		attribute.Int("limit", kq.Limit),
		attribute.Int("fetch", fetch),
	)

	series, err := s.fetch(ctx, kq, fetch)
	if err != nil {
		return nil, fmt.Errorf("get bybit rsi: %w", err)
	}

	chrono := chronological(series.Klines)
	rsi := signal.ComputeRSI(closePrices(chrono), period)

	candles := make([]BybitRSICandleInfo, len(chrono))
	for i, k := range chrono {
		candles[i] = BybitRSICandleInfo{
			KlineInfo:  klineInfo(k),
			ChangeRate: domain.ChangeRate(k.Open, k.Close),
			RSI:        rsi[i],
			RSISignal:  signal.Classify(rsi[i]),
		}
	}
	window := newestWindow(candles, kq.Limit)

	out := &BybitRSIResult{
		Symbol:    firstNonEmpty(series.Symbol, kq.Symbol),
		Category:  firstNonEmpty(series.Category, kq.Category),
		Interval:  kq.Interval,
		RSIPeriod: period,
		Candles:   window,
	}
	if len(window) > 0 {
		out.CurrentRSI = window[0].RSI
		out.CurrentSignal = window[0].RSISignal
	}
	return out, nil
}

func (s *ChartService) fetch(ctx context.Context, q KlineQuery, size int) (*domain.KlineSeries, error) {
	return s.bybit.GetKlines(ctx, provider.KlineQuery{
		Category: q.Category,
		Symbol:   q.Symbol,
		Interval: q.Interval,
		Start:    q.Start,
		End:      q.End,
		Limit:    size,
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func orNoop(tracer trace.Tracer) trace.Tracer {
	if tracer == nil {
		return noop.NewTracerProvider().Tracer("service")
	}
	return tracer
}
