package domain

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ChangeRate returns (to-from)/from*100 rounded to two places.
// Zero or malformed inputs yield "0.00".
func ChangeRate(from, to string) string {
	f, err := decimal.NewFromString(strings.TrimSpace(from))
	if err != nil || f.IsZero() {
		return "0.00"
	}
	t, err := decimal.NewFromString(strings.TrimSpace(to))
	if err != nil {
		return "0.00"
	}
	return t.Sub(f).Mul(hundred).Div(f).StringFixed(2)
}

// ChangeAmount returns to-from rounded to a whole number, "0" on malformed input.
func ChangeAmount(from, to string) string {
	f, err := decimal.NewFromString(strings.TrimSpace(from))
	if err != nil {
		return "0"
	}
	t, err := decimal.NewFromString(strings.TrimSpace(to))
	if err != nil {
		return "0"
	}
	return t.Sub(f).StringFixed(0)
}

// ParsePrice converts an upstream price string for indicator math.
// Malformed input becomes NaN so the RSI engine reports absence downstream.
func ParsePrice(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
