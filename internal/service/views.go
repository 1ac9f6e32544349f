package service

import "coinone-mcp/internal/domain"

type MarketInfo struct {
	QuoteCurrency     string `json:"quoteCurrency"`
	TargetCurrency    string `json:"targetCurrency"`
	TradeStatus       int    `json:"tradeStatus"`
	MaintenanceStatus int    `json:"maintenanceStatus"`
	Pair              string `json:"pair"`
}

type MarketsResult struct {
	Markets []MarketInfo `json:"markets"`
}

type OrderbookResult struct {
	Timestamp      int64               `json:"timestamp"`
	QuoteCurrency  string              `json:"quoteCurrency"`
	TargetCurrency string              `json:"targetCurrency"`
	Asks           []domain.PriceLevel `json:"asks"`
	Bids           []domain.PriceLevel `json:"bids"`
}

type TradeInfo struct {
	ID            string `json:"id"`
	Timestamp     int64  `json:"timestamp"`
	Price         string `json:"price"`
	Qty           string `json:"qty"`
	IsSellerMaker bool   `json:"isSellerMaker"`
	Type          string `json:"type"`
}

type TradesResult struct {
	Transactions []TradeInfo `json:"transactions"`
}

type TickerSummary struct {
	QuoteCurrency  string  `json:"quoteCurrency"`
	TargetCurrency string  `json:"targetCurrency"`
	Pair           string  `json:"pair"`
	Timestamp      int64   `json:"timestamp"`
	QuoteVolume    string  `json:"quoteVolume"`
	TargetVolume   string  `json:"targetVolume"`
	High           string  `json:"high"`
	Low            string  `json:"low"`
	First          string  `json:"first"`
	Last           string  `json:"last"`
	ChangeRate     string  `json:"changeRate"`
	BestAskPrice   *string `json:"bestAskPrice"`
	BestBidPrice   *string `json:"bestBidPrice"`
}

type TickersResult struct {
	Tickers []TickerSummary `json:"tickers"`
}

type TickerResult struct {
	QuoteCurrency  string              `json:"quoteCurrency"`
	TargetCurrency string              `json:"targetCurrency"`
	Pair           string              `json:"pair"`
	Timestamp      int64               `json:"timestamp"`
	QuoteVolume    string              `json:"quoteVolume"`
	TargetVolume   string              `json:"targetVolume"`
	High           string              `json:"high"`
	Low            string              `json:"low"`
	First          string              `json:"first"`
	Last           string              `json:"last"`
	ChangeRate     string              `json:"changeRate"`
	ChangeAmount   string              `json:"changeAmount"`
	BestAsks       []domain.PriceLevel `json:"bestAsks"`
	BestBids       []domain.PriceLevel `json:"bestBids"`
}

type CandleInfo struct {
	Timestamp    int64  `json:"timestamp"`
	Datetime     string `json:"datetime"`
	Open         string `json:"open"`
	High         string `json:"high"`
	Low          string `json:"low"`
	Close        string `json:"close"`
	QuoteVolume  string `json:"quoteVolume"`
	TargetVolume string `json:"targetVolume"`
	ChangeRate   string `json:"changeRate"`
}

type ChartResult struct {
	Interval string       `json:"interval"`
	Candles  []CandleInfo `json:"candles"`
}

// KlineInfo is the exchange-neutral part of a Bybit candle view.
type KlineInfo struct {
	Timestamp int64  `json:"timestamp"`
	Datetime  string `json:"datetime"`
	Open      string `json:"open"`
	High      string `json:"high"`
	Low       string `json:"low"`
	Close     string `json:"close"`
	Volume    string `json:"volume"`
	Turnover  string `json:"turnover"`
}

type BybitCandleInfo struct {
	KlineInfo
	ChangeRate  string            `json:"changeRate"`
	RSI6        domain.RSIValue   `json:"rsi6"`
	RSI6Signal  *domain.RSISignal `json:"rsi6Signal"`
	RSI12       domain.RSIValue   `json:"rsi12"`
	RSI12Signal *domain.RSISignal `json:"rsi12Signal"`
}

type BybitChartResult struct {
	Symbol             string            `json:"symbol"`
	Category           string            `json:"category"`
	Interval           string            `json:"interval"`
	CurrentRSI6        domain.RSIValue   `json:"currentRsi6"`
	CurrentRSI6Signal  *domain.RSISignal `json:"currentRsi6Signal"`
	CurrentRSI12       domain.RSIValue   `json:"currentRsi12"`
	CurrentRSI12Signal *domain.RSISignal `json:"currentRsi12Signal"`
	Candles            []BybitCandleInfo `json:"candles"`
}

type BybitRSICandleInfo struct {
	KlineInfo
	ChangeRate string            `json:"changeRate"`
	RSI        domain.RSIValue   `json:"rsi"`
	RSISignal  *domain.RSISignal `json:"rsiSignal"`
}

type BybitRSIResult struct {
	Symbol        string               `json:"symbol"`
	Category      string               `json:"category"`
	Interval      string               `json:"interval"`
	RSIPeriod     int                  `json:"rsiPeriod"`
	CurrentRSI    domain.RSIValue      `json:"currentRsi"`
	CurrentSignal *domain.RSISignal    `json:"currentSignal"`
	Candles       []BybitRSICandleInfo `json:"candles"`
}
