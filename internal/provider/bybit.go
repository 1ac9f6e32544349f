package provider

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"coinone-mcp/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultBybitBaseURL = "https://api.bybit.com/v5"
	// MaxKlineLimit is the largest page the kline endpoint serves.
	MaxKlineLimit = 1000
)

// BybitProvider reads the Bybit v5 public market API.
type BybitProvider struct {
	tracer trace.Tracer
	http   httpGetter
}

func NewBybitProvider(tracer trace.Tracer, cfg ClientConfig) *BybitProvider {
	return &BybitProvider{
		tracer: tracerOrNoop(tracer),
		http:   newHTTPGetter(cfg, DefaultBybitBaseURL),
	}
}

type KlineQuery struct {
	Category string
	Symbol   string
	Interval string
	Start    *int64
	End      *int64
	Limit    int
}

type bybitKlineResponse struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  struct {
		Category string     `json:"category"`
		Symbol   string     `json:"symbol"`
		List     [][]string `json:"list"`
	} `json:"result"`
	Time int64 `json:"time"`
}

// GetKlines returns one kline page, newest first as served by Bybit.
func (p *BybitProvider) GetKlines(ctx context.Context, q KlineQuery) (*domain.KlineSeries, error) {
	ctx, span := p.tracer.Start(ctx, "bybit-provider.get-klines")
	defer span.End()
	span.SetAttributes(
		attribute.String("category", q.Category),
		attribute.String("symbol", q.Symbol),
		attribute.String("interval", q.Interval),
		attribute.Int("limit", q.Limit),
	)

	query := url.Values{}
	query.Set("category", q.Category)
	query.Set("symbol", q.Symbol)
	query.Set("interval", q.Interval)
	query.Set("limit", strconv.Itoa(q.Limit))
	if q.Start != nil {
		query.Set("start", strconv.FormatInt(*q.Start, 10))
	}
	if q.End != nil {
		query.Set("end", strconv.FormatInt(*q.End, 10))
	}

	body, err := p.http.get(ctx, "/market/kline", query)
	if err != nil {
		return nil, recordFailure(span, err)
	}
	var out bybitKlineResponse
	if err := decode(body, &out, "bybit kline"); err != nil {
		return nil, recordFailure(span, err)
	}
	if out.RetCode != 0 {
		return nil, recordFailure(span, fmt.Errorf("%w: bybit kline: retCode=%d retMsg=%q", domain.ErrFetchFailed, out.RetCode, out.RetMsg))
	}

	klines := make([]domain.Kline, 0, len(out.Result.List))
	for i, row := range out.Result.List {
		k, err := parseKlineRow(row)
		if err != nil {
			return nil, recordFailure(span, fmt.Errorf("%w: bybit kline row %d: %v", domain.ErrFetchFailed, i, err))
		}
		klines = append(klines, k)
	}
	span.SetAttributes(attribute.Int("rows", len(klines)))

	return &domain.KlineSeries{
		Category: out.Result.Category,
		Symbol:   out.Result.Symbol,
		Klines:   klines,
	}, nil
}

// parseKlineRow decodes [startTime, open, high, low, close, volume, turnover].
func parseKlineRow(row []string) (domain.Kline, error) {
	if len(row) < 7 {
		return domain.Kline{}, fmt.Errorf("expected 7 fields, got %d", len(row))
	}
	start, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
	if err != nil {
		return domain.Kline{}, fmt.Errorf("start time %q: %v", row[0], err)
	}
	return domain.Kline{
		StartTime: start,
		Open:      row[1],
		High:      row[2],
		Low:       row[3],
		Close:     row[4],
		Volume:    row[5],
		Turnover:  row[6],
	}, nil
}
