package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"coinone-mcp/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const DefaultCoinoneBaseURL = "https://api.coinone.co.kr/public/v2"

// CoinoneProvider reads the Coinone public v2 API.
type CoinoneProvider struct {
	tracer trace.Tracer
	http   httpGetter
	cache  Cache
}

func NewCoinoneProvider(tracer trace.Tracer, cfg ClientConfig) *CoinoneProvider {
	return &CoinoneProvider{
		tracer: tracerOrNoop(tracer),
		http:   newHTTPGetter(cfg, DefaultCoinoneBaseURL),
		cache:  cfg.Cache,
	}
}

type coinoneEnvelope struct {
	Result    string `json:"result"`
	ErrorCode string `json:"error_code"`
}

func (e coinoneEnvelope) check(op string) error {
	if !strings.EqualFold(e.Result, "success") {
		return fmt.Errorf("%w: coinone %s: result=%q error_code=%q", domain.ErrFetchFailed, op, e.Result, e.ErrorCode)
	}
	return nil
}

type coinoneMarketsResponse struct {
	coinoneEnvelope
	Markets []domain.Market `json:"markets"`
}

type coinoneOrderbookResponse struct {
	coinoneEnvelope
	domain.Orderbook
}

type coinoneTradesResponse struct {
	coinoneEnvelope
	Transactions []domain.Trade `json:"transactions"`
}

type coinoneTickersResponse struct {
	coinoneEnvelope
	Tickers []domain.Ticker `json:"tickers"`
}

type coinoneChartResponse struct {
	coinoneEnvelope
	IsLast bool            `json:"is_last"`
	Chart  []domain.Candle `json:"chart"`
}

// ChartQuery selects a Coinone candle range. Nil bounds are omitted.
type ChartQuery struct {
	QuoteCurrency  string
	TargetCurrency string
	Interval       string
	StartTime      *int64
	EndTime        *int64
}

func (p *CoinoneProvider) GetMarkets(ctx context.Context, quoteCurrency string) ([]domain.Market, error) {
	ctx, span := p.tracer.Start(ctx, "coinone-provider.get-markets")
	defer span.End()
	span.SetAttributes(attribute.String("quote_currency", quoteCurrency))

	path := "/markets/" + pathSegment(quoteCurrency)
	cacheKey := "coinone:markets:" + strings.ToUpper(quoteCurrency)

	if p.cache != nil {
		if body, ok := p.cache.Get(ctx, cacheKey); ok {
			var out coinoneMarketsResponse
			if err := json.Unmarshal(body, &out); err == nil && out.check("markets") == nil {
				span.SetAttributes(attribute.Bool("cache_hit", true))
				return out.Markets, nil
			}
		}
	}

	body, err := p.http.get(ctx, path, nil)
	if err != nil {
		return nil, recordFailure(span, err)
	}
	var out coinoneMarketsResponse
	if err := decode(body, &out, "coinone markets"); err != nil {
		return nil, recordFailure(span, err)
	}
	if err := out.check("markets"); err != nil {
		return nil, recordFailure(span, err)
	}

	if p.cache != nil {
		p.cache.Set(ctx, cacheKey, body)
	}
	return out.Markets, nil
}

func (p *CoinoneProvider) GetOrderbook(ctx context.Context, quoteCurrency, targetCurrency string) (*domain.Orderbook, error) {
	ctx, span := p.tracer.Start(ctx, "coinone-provider.get-orderbook")
	defer span.End()
	span.SetAttributes(attribute.String("pair", domain.Pair(targetCurrency, quoteCurrency)))

	body, err := p.http.get(ctx, "/orderbook/"+pathSegment(quoteCurrency)+"/"+pathSegment(targetCurrency), nil)
	if err != nil {
		return nil, recordFailure(span, err)
	}
	var out coinoneOrderbookResponse
	if err := decode(body, &out, "coinone orderbook"); err != nil {
		return nil, recordFailure(span, err)
	}
	if err := out.check("orderbook"); err != nil {
		return nil, recordFailure(span, err)
	}
	return &out.Orderbook, nil
}

func (p *CoinoneProvider) GetTrades(ctx context.Context, quoteCurrency, targetCurrency string) ([]domain.Trade, error) {
	ctx, span := p.tracer.Start(ctx, "coinone-provider.get-trades")
	defer span.End()
	span.SetAttributes(attribute.String("pair", domain.Pair(targetCurrency, quoteCurrency)))

	body, err := p.http.get(ctx, "/trades/"+pathSegment(quoteCurrency)+"/"+pathSegment(targetCurrency), nil)
	if err != nil {
		return nil, recordFailure(span, err)
	}
	var out coinoneTradesResponse
	if err := decode(body, &out, "coinone trades"); err != nil {
		return nil, recordFailure(span, err)
	}
	if err := out.check("trades"); err != nil {
		return nil, recordFailure(span, err)
	}
	return out.Transactions, nil
}

func (p *CoinoneProvider) GetTickers(ctx context.Context, quoteCurrency string) ([]domain.Ticker, error) {
	ctx, span := p.tracer.Start(ctx, "coinone-provider.get-tickers")
	defer span.End()
	span.SetAttributes(attribute.String("quote_currency", quoteCurrency))

	return p.tickers(ctx, span, "/ticker_new/"+pathSegment(quoteCurrency))
}

// GetTicker returns the first ticker of the pair response.
func (p *CoinoneProvider) GetTicker(ctx context.Context, quoteCurrency, targetCurrency string) (*domain.Ticker, error) {
	ctx, span := p.tracer.Start(ctx, "coinone-provider.get-ticker")
	defer span.End()
	span.SetAttributes(attribute.String("pair", domain.Pair(targetCurrency, quoteCurrency)))

	tickers, err := p.tickers(ctx, span, "/ticker_new/"+pathSegment(quoteCurrency)+"/"+pathSegment(targetCurrency))
	if err != nil {
		return nil, err
	}
	if len(tickers) == 0 {
		return nil, recordFailure(span, fmt.Errorf("%w: no ticker data found", domain.ErrFetchFailed))
	}
	return &tickers[0], nil
}

func (p *CoinoneProvider) tickers(ctx context.Context, span trace.Span, path string) ([]domain.Ticker, error) {
	body, err := p.http.get(ctx, path, nil)
	if err != nil {
		return nil, recordFailure(span, err)
	}
	var out coinoneTickersResponse
	if err := decode(body, &out, "coinone tickers"); err != nil {
		return nil, recordFailure(span, err)
	}
	if err := out.check("tickers"); err != nil {
		return nil, recordFailure(span, err)
	}
	return out.Tickers, nil
}

func (p *CoinoneProvider) GetChart(ctx context.Context, q ChartQuery) ([]domain.Candle, error) {
	ctx, span := p.tracer.Start(ctx, "coinone-provider.get-chart")
	defer span.End()
	span.SetAttributes(
		attribute.String("pair", domain.Pair(q.TargetCurrency, q.QuoteCurrency)),
		attribute.String("interval", q.Interval),
	)

	query := url.Values{}
	query.Set("interval", q.Interval)
	if q.StartTime != nil {
		query.Set("start_time", strconv.FormatInt(*q.StartTime, 10))
	}
	if q.EndTime != nil {
		query.Set("end_time", strconv.FormatInt(*q.EndTime, 10))
	}

	body, err := p.http.get(ctx, "/chart/"+pathSegment(q.QuoteCurrency)+"/"+pathSegment(q.TargetCurrency), query)
	if err != nil {
		return nil, recordFailure(span, err)
	}
	var out coinoneChartResponse
	if err := decode(body, &out, "coinone chart"); err != nil {
		return nil, recordFailure(span, err)
	}
	if err := out.check("chart"); err != nil {
		return nil, recordFailure(span, err)
	}
	return out.Chart, nil
}

func recordFailure(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func decode(body []byte, out any, what string) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", domain.ErrFetchFailed, what, err)
	}
	return nil
}
