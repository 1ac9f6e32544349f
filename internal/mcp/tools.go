package mcp

import (
	"encoding/json"
	"strconv"

	"coinone-mcp/internal/service"
	"coinone-mcp/internal/signal"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultRSIPeriod = signal.DefaultRSIPeriod

type toolDef struct {
	name        string
	description string
	properties  []property
	required    []string
}

type property struct {
	name        string
	typ         string
	description string
	def         any
}

func stringProp(name, description string, def any) property {
	return property{name: name, typ: "string", description: description, def: def}
}

func numberProp(name, description string, def any) property {
	return property{name: name, typ: "number", description: description, def: def}
}

var (
	quoteCurrencyProp  = stringProp("quoteCurrency", "Quote currency (default: KRW)", service.DefaultQuoteCurrency)
	targetCurrencyProp = stringProp("targetCurrency", "Target currency (e.g., BTC, ETH)", nil)
	symbolProp         = stringProp("symbol", "Trading pair symbol (e.g., BTCUSDT, ETHUSDT)", nil)
	categoryProp       = stringProp("category", "Product type (spot, linear, inverse)", service.DefaultBybitCategory)
	startProp          = numberProp("start", "Start timestamp in milliseconds (optional)", nil)
	endProp            = numberProp("end", "End timestamp in milliseconds (optional)", nil)
)

var (
	getMarketsTool = toolDef{
		name:        "get_markets",
		description: "Get all available trading markets from Coinone",
	}
	getOrderbookTool = toolDef{
		name:        "get_orderbook",
		description: "Get orderbook data for a specific market",
		properties:  []property{quoteCurrencyProp, targetCurrencyProp},
		required:    []string{"targetCurrency"},
	}
	getRecentOrdersTool = toolDef{
		name:        "get_recent_orders",
		description: "Get recent completed orders for a specific market",
		properties:  []property{quoteCurrencyProp, targetCurrencyProp},
		required:    []string{"targetCurrency"},
	}
	getTickersTool = toolDef{
		name:        "get_tickers",
		description: "Get all tickers with price and volume information",
		properties:  []property{quoteCurrencyProp},
	}
	getTickerTool = toolDef{
		name:        "get_ticker",
		description: "Get ticker information for a specific market",
		properties:  []property{quoteCurrencyProp, targetCurrencyProp},
		required:    []string{"targetCurrency"},
	}
	getChartTool = toolDef{
		name:        "get_chart",
		description: "Get candlestick chart data for a specific market",
		properties: []property{
			quoteCurrencyProp,
			targetCurrencyProp,
			stringProp("interval", "Chart interval (1m, 5m, 15m, 30m, 1h, 4h, 1d, 1w, 1M)", service.DefaultChartInterval),
			numberProp("startTime", "Start time in milliseconds (optional)", nil),
			numberProp("endTime", "End time in milliseconds (optional)", nil),
		},
		required: []string{"targetCurrency"},
	}
	getBybitChartTool = toolDef{
		name:        "get_bybit_chart",
		description: "Get Kline/candlestick data from Bybit exchange",
		properties: []property{
			symbolProp,
			categoryProp,
			stringProp("interval", "Kline interval (1, 3, 5, 15, 30, 60, 120, 240, 360, 720, D, W, M); case-sensitive, M is monthly", service.DefaultBybitInterval),
			startProp,
			endProp,
			numberProp("limit", "Data size per page (1-1000, default: "+strconv.Itoa(service.DefaultBybitChartLimit)+")", service.DefaultBybitChartLimit),
		},
		required: []string{"symbol"},
	}
	getBybitRSITool = toolDef{
		name:        "get_bybit_rsi",
		description: "Calculate RSI (Relative Strength Index) from Bybit Kline data",
		properties: []property{
			symbolProp,
			categoryProp,
			stringProp("interval", "Kline interval for RSI calculation (1, 3, 5, 15, 30, 60, 120, 240, 360, 720, D, W, M); case-sensitive", service.DefaultBybitInterval),
			numberProp("rsiPeriod", "RSI calculation period (default: "+strconv.Itoa(defaultRSIPeriod)+")", defaultRSIPeriod),
			startProp,
			endProp,
			numberProp("limit", "Number of candles to return with RSI values (default: "+strconv.Itoa(service.DefaultBybitRSILimit)+")", service.DefaultBybitRSILimit),
		},
		required: []string{"symbol"},
	}
)

func (d toolDef) schema() *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(d.properties)),
		Required:   d.required,
	}
	for _, p := range d.properties {
		ps := &jsonschema.Schema{Type: p.typ, Description: p.description}
		if p.def != nil {
			if raw, err := json.Marshal(p.def); err == nil {
				ps.Default = raw
			}
		}
		s.Properties[p.name] = ps
	}
	return s
}

func (d toolDef) tool() *sdkmcp.Tool {
	return &sdkmcp.Tool{
		Name:        d.name,
		Description: d.description,
		InputSchema: d.schema(),
	}
}

// Tools returns the MCP descriptors of every registered tool, in registration order.
func (d *Dispatcher) Tools() []*sdkmcp.Tool {
	out := make([]*sdkmcp.Tool, len(d.tools))
	for i, t := range d.tools {
		out[i] = t.def.tool()
	}
	return out
}
