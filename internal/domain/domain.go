package domain

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
)

var (
	ErrFetchFailed     = errors.New("fetch failed")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnknownTool     = errors.New("unknown tool")
)

type RSISignal string

const (
	SignalOverbought RSISignal = "Overbought"
	SignalOversold   RSISignal = "Oversold"
	SignalNeutral    RSISignal = "Neutral"
)

const (
	OverboughtThreshold = 70.0
	OversoldThreshold   = 30.0
)

// RSIValue is an RSI reading that may be absent during the warm-up window.
// Absent values encode as JSON null.
type RSIValue struct {
	Value float64
	Valid bool
}

func RSI(v float64) RSIValue {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return RSIValue{}
	}
	return RSIValue{Value: v, Valid: true}
}

func (v RSIValue) Ptr() *float64 {
	if !v.Valid {
		return nil
	}
	out := v.Value
	return &out
}

func (v RSIValue) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Value)
}

func (v *RSIValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = RSIValue{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = RSI(f)
	return nil
}

func (v RSIValue) String() string {
	if !v.Valid {
		return "-"
	}
	return strconv.FormatFloat(v.Value, 'f', 2, 64)
}

// PriceLevel is one side entry of an order book.
type PriceLevel struct {
	Price string `json:"price"`
	Qty   string `json:"qty"`
}

type Market struct {
	QuoteCurrency     string   `json:"quote_currency"`
	TargetCurrency    string   `json:"target_currency"`
	PriceUnit         string   `json:"price_unit"`
	QtyUnit           string   `json:"qty_unit"`
	MaxOrderAmount    string   `json:"max_order_amount"`
	MinOrderAmount    string   `json:"min_order_amount"`
	OrderBookUnits    []string `json:"order_book_units"`
	MaintenanceStatus int      `json:"maintenance_status"`
	TradeStatus       int      `json:"trade_status"`
	OrderTypes        []string `json:"order_types"`
}

type Orderbook struct {
	Timestamp      int64        `json:"timestamp"`
	ID             string       `json:"id"`
	QuoteCurrency  string       `json:"quote_currency"`
	TargetCurrency string       `json:"target_currency"`
	OrderBookUnit  string       `json:"order_book_unit"`
	Bids           []PriceLevel `json:"bids"`
	Asks           []PriceLevel `json:"asks"`
}

type Trade struct {
	ID            string `json:"id"`
	Timestamp     int64  `json:"timestamp"`
	Price         string `json:"price"`
	Qty           string `json:"qty"`
	IsSellerMaker bool   `json:"is_seller_maker"`
}

type Ticker struct {
	QuoteCurrency  string       `json:"quote_currency"`
	TargetCurrency string       `json:"target_currency"`
	Timestamp      int64        `json:"timestamp"`
	QuoteVolume    string       `json:"quote_volume"`
	TargetVolume   string       `json:"target_volume"`
	High           string       `json:"high"`
	Low            string       `json:"low"`
	First          string       `json:"first"`
	Last           string       `json:"last"`
	BestAsks       []PriceLevel `json:"best_asks"`
	BestBids       []PriceLevel `json:"best_bids"`
	ID             string       `json:"id"`
}

// Candle is a Coinone chart bucket. Prices stay as upstream decimal strings.
type Candle struct {
	Timestamp    int64  `json:"timestamp"`
	Open         string `json:"open"`
	High         string `json:"high"`
	Low          string `json:"low"`
	Close        string `json:"close"`
	TargetVolume string `json:"target_volume"`
	QuoteVolume  string `json:"quote_volume"`
}

// Kline is a Bybit candle decoded from a positional row.
type Kline struct {
	StartTime int64
	Open      string
	High      string
	Low       string
	Close     string
	Volume    string
	Turnover  string
}

// KlineSeries is a Bybit kline page, newest first as served upstream.
type KlineSeries struct {
	Category string
	Symbol   string
	Klines   []Kline
}

func Pair(target, quote string) string {
	return target + "/" + quote
}
