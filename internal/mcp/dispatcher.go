package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"coinone-mcp/internal/domain"
	"coinone-mcp/internal/service"
)

// MarketReader exposes the Coinone operations behind the market tools.
type MarketReader interface {
	GetMarkets(ctx context.Context, quoteCurrency string) (*service.MarketsResult, error)
	GetOrderbook(ctx context.Context, q service.PairQuery) (*service.OrderbookResult, error)
	GetRecentTrades(ctx context.Context, q service.PairQuery) (*service.TradesResult, error)
	GetTickers(ctx context.Context, quoteCurrency string) (*service.TickersResult, error)
	GetTicker(ctx context.Context, q service.PairQuery) (*service.TickerResult, error)
	GetChart(ctx context.Context, q service.ChartQuery) (*service.ChartResult, error)
}

// ChartReader exposes the Bybit kline views enriched with RSI.
type ChartReader interface {
	GetBybitChart(ctx context.Context, q service.KlineQuery) (*service.BybitChartResult, error)
	GetBybitRSI(ctx context.Context, q service.RSIQuery) (*service.BybitRSIResult, error)
}

type toolFunc func(ctx context.Context, args arguments) (any, error)

type tool struct {
	def  toolDef
	call toolFunc
}

// Dispatcher routes a tool name and its JSON arguments to one market operation.
// It holds no mutable state and is safe for concurrent use.
type Dispatcher struct {
	tools  []tool
	byName map[string]tool
}

func NewDispatcher(markets MarketReader, charts ChartReader) *Dispatcher {
	d := &Dispatcher{byName: make(map[string]tool)}
	d.register(getMarketsTool, func(ctx context.Context, _ arguments) (any, error) {
		return markets.GetMarkets(ctx, service.DefaultQuoteCurrency)
	})
	d.register(getOrderbookTool, func(ctx context.Context, args arguments) (any, error) {
		q, err := pairArgs(args)
		if err != nil {
			return nil, err
		}
		return markets.GetOrderbook(ctx, q)
	})
	d.register(getRecentOrdersTool, func(ctx context.Context, args arguments) (any, error) {
		q, err := pairArgs(args)
		if err != nil {
			return nil, err
		}
		return markets.GetRecentTrades(ctx, q)
	})
	d.register(getTickersTool, func(ctx context.Context, args arguments) (any, error) {
		quote, err := args.optionalString("quoteCurrency", service.DefaultQuoteCurrency)
		if err != nil {
			return nil, err
		}
		return markets.GetTickers(ctx, quote)
	})
	d.register(getTickerTool, func(ctx context.Context, args arguments) (any, error) {
		q, err := pairArgs(args)
		if err != nil {
			return nil, err
		}
		return markets.GetTicker(ctx, q)
	})
	d.register(getChartTool, func(ctx context.Context, args arguments) (any, error) {
		q, err := chartArgs(args)
		if err != nil {
			return nil, err
		}
		return markets.GetChart(ctx, q)
	})
	d.register(getBybitChartTool, func(ctx context.Context, args arguments) (any, error) {
		q, err := klineArgs(args, service.DefaultBybitChartLimit)
		if err != nil {
			return nil, err
		}
		return charts.GetBybitChart(ctx, q)
	})
	d.register(getBybitRSITool, func(ctx context.Context, args arguments) (any, error) {
		q, err := klineArgs(args, service.DefaultBybitRSILimit)
		if err != nil {
			return nil, err
		}
		period, err := args.rsiPeriod(defaultRSIPeriod)
		if err != nil {
			return nil, err
		}
		return charts.GetBybitRSI(ctx, service.RSIQuery{KlineQuery: q, RSIPeriod: period})
	})
	return d
}

func (d *Dispatcher) register(def toolDef, call toolFunc) {
	t := tool{def: def, call: call}
	d.tools = append(d.tools, t)
	d.byName[def.name] = t
}

// Names lists the tool names in registration order.
func (d *Dispatcher) Names() []string {
	names := make([]string, len(d.tools))
	for i, t := range d.tools {
		names[i] = t.def.name
	}
	return names
}

// Call runs the named tool. Every failure is returned as an error wrapping one of
// the domain sentinels, never as a partial result.
func (d *Dispatcher) Call(ctx context.Context, name string, rawArgs json.RawMessage) (any, error) {
	t, ok := d.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTool, name)
	}
	args, err := parseArguments(rawArgs)
	if err != nil {
		return nil, err
	}
	return t.call(ctx, args)
}

func pairArgs(args arguments) (service.PairQuery, error) {
	quote, err := args.optionalString("quoteCurrency", service.DefaultQuoteCurrency)
	if err != nil {
		return service.PairQuery{}, err
	}
	target, err := args.requiredString("targetCurrency")
	if err != nil {
		return service.PairQuery{}, err
	}
	return service.PairQuery{QuoteCurrency: quote, TargetCurrency: target}, nil
}

func chartArgs(args arguments) (service.ChartQuery, error) {
	pair, err := pairArgs(args)
	if err != nil {
		return service.ChartQuery{}, err
	}
	interval, err := args.optionalString("interval", service.DefaultChartInterval)
	if err != nil {
		return service.ChartQuery{}, err
	}
	start, err := args.optionalInt64("startTime")
	if err != nil {
		return service.ChartQuery{}, err
	}
	end, err := args.optionalInt64("endTime")
	if err != nil {
		return service.ChartQuery{}, err
	}
	return service.ChartQuery{
		QuoteCurrency:  pair.QuoteCurrency,
		TargetCurrency: pair.TargetCurrency,
		Interval:       interval,
		StartTime:      start,
		EndTime:        end,
	}, nil
}

func klineArgs(args arguments, defaultLimit int) (service.KlineQuery, error) {
	symbol, err := args.requiredString("symbol")
	if err != nil {
		return service.KlineQuery{}, err
	}
	category, err := args.optionalString("category", service.DefaultBybitCategory)
	if err != nil {
		return service.KlineQuery{}, err
	}
	interval, err := args.optionalString("interval", service.DefaultBybitInterval)
	if err != nil {
		return service.KlineQuery{}, err
	}
	start, err := args.optionalInt64("start")
	if err != nil {
		return service.KlineQuery{}, err
	}
	end, err := args.optionalInt64("end")
	if err != nil {
		return service.KlineQuery{}, err
	}
	limit, err := args.limit(defaultLimit)
	if err != nil {
		return service.KlineQuery{}, err
	}
	return service.KlineQuery{
		Symbol:   symbol,
		Category: category,
		Interval: interval,
		Start:    start,
		End:      end,
		Limit:    limit,
	}, nil
}
