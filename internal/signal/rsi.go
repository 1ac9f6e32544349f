package signal

import (
	"math"

	"coinone-mcp/internal/domain"
)

const DefaultRSIPeriod = 14

// ComputeRSI returns Wilder's RSI aligned with prices (oldest first).
// The first period entries are absent, as is every entry when the series is
// shorter than period+1. A non-finite close poisons the smoothed averages, so
// every reading from that point on is absent.
func ComputeRSI(prices []float64, period int) []domain.RSIValue {
	series := make([]domain.RSIValue, len(prices))
	if period <= 0 || len(prices) < period+1 {
		return series
	}

	var gainSum float64
	var lossSum float64
	for i := 1; i <= period; i++ {
		delta := prices[i] - prices[i-1]
		if delta > 0 {
			gainSum += delta
		} else {
			lossSum -= delta
		}
	}
	avgGain := gainSum / float64(period)
	avgLoss := lossSum / float64(period)
	series[period] = domain.RSI(rsiFromAvg(avgGain, avgLoss))

	for i := period + 1; i < len(prices); i++ {
		delta := prices[i] - prices[i-1]
		gain := math.Max(delta, 0)
		loss := math.Max(-delta, 0)
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		series[i] = domain.RSI(rsiFromAvg(avgGain, avgLoss))
	}

	return series
}

// rsiFromAvg substitutes RS=100 when there were no losses, which pins the
// reading at 100-100/101 instead of 100.
func rsiFromAvg(avgGain, avgLoss float64) float64 {
	rs := 100.0
	if avgLoss != 0 {
		rs = avgGain / avgLoss
	}
	return 100 - (100 / (1 + rs))
}

func ClassifySignal(rsi float64) domain.RSISignal {
	switch {
	case rsi >= domain.OverboughtThreshold:
		return domain.SignalOverbought
	case rsi <= domain.OversoldThreshold:
		return domain.SignalOversold
	default:
		return domain.SignalNeutral
	}
}

// Classify returns nil for an absent reading.
func Classify(v domain.RSIValue) *domain.RSISignal {
	if !v.Valid {
		return nil
	}
	s := ClassifySignal(v.Value)
	return &s
}
