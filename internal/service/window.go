package service

import (
	"time"

	"coinone-mcp/internal/domain"
	"coinone-mcp/internal/provider"
)

const datetimeLayout = "2006-01-02 15:04:05"

var seoul = time.FixedZone("KST", 9*60*60)

// fetchSize is the number of candles to request so RSI has warm-up history:
// max(limit, floor), capped at the exchange page size.
func fetchSize(limit, floor int) int {
	n := max(limit, floor)
	if n > provider.MaxKlineLimit {
		n = provider.MaxKlineLimit
	}
	return n
}

// chronological turns a newest-first page into oldest-first order.
func chronological(klines []domain.Kline) []domain.Kline {
	out := make([]domain.Kline, len(klines))
	for i, k := range klines {
		out[len(klines)-1-i] = k
	}
	return out
}

func closePrices(klines []domain.Kline) []float64 {
	out := make([]float64, len(klines))
	for i, k := range klines {
		out[i] = domain.ParsePrice(k.Close)
	}
	return out
}

// newestWindow keeps the last limit entries of an oldest-first series and
// returns them newest first.
func newestWindow[T any](chrono []T, limit int) []T {
	if limit < 0 {
		limit = 0
	}
	if limit > len(chrono) {
		limit = len(chrono)
	}
	tail := chrono[len(chrono)-limit:]
	out := make([]T, len(tail))
	for i := range tail {
		out[i] = tail[len(tail)-1-i]
	}
	return out
}

func klineInfo(k domain.Kline) KlineInfo {
	return KlineInfo{
		Timestamp: k.StartTime,
		Datetime:  formatMillis(k.StartTime, time.UTC),
		Open:      k.Open,
		High:      k.High,
		Low:       k.Low,
		Close:     k.Close,
		Volume:    k.Volume,
		Turnover:  k.Turnover,
	}
}

func formatMillis(ms int64, loc *time.Location) string {
	return time.UnixMilli(ms).In(loc).Format(datetimeLayout)
}
