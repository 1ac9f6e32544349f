package tui

import (
	"fmt"
	"math"
	"strings"

	"coinone-mcp/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

const gaugeWidth = 20

// FormatChange renders a percentage change string with a sign and a color.
func FormatChange(rate string) string {
	rate = strings.TrimSpace(rate)
	switch {
	case rate == "" || strings.Trim(rate, "0.-") == "":
		return PriceZeroStyle.Render("0.00%")
	case strings.HasPrefix(rate, "-"):
		return PriceDownStyle.Render(rate + "%")
	default:
		return PriceUpStyle.Render("+" + rate + "%")
	}
}

// FormatRSI renders an RSI reading colored by its zone, "-" when absent.
func FormatRSI(v domain.RSIValue, sig *domain.RSISignal) string {
	if !v.Valid {
		return SubtextStyle.Render("-")
	}
	return signalStyle(sig).Render(v.String())
}

// FormatSignal renders a zone label, "-" when absent.
func FormatSignal(sig *domain.RSISignal) string {
	if sig == nil {
		return SubtextStyle.Render("-")
	}
	return signalStyle(sig).Render(string(*sig))
}

// FormatSide renders a trade side.
func FormatSide(side string) string {
	if side == "BUY" {
		return BuyStyle.Render(side)
	}
	return SellStyle.Render(side)
}

// RenderRSIGauge renders an RSI reading as a bar on the 0-100 scale.
func RenderRSIGauge(label string, v domain.RSIValue, sig *domain.RSISignal) string {
	if !v.Valid {
		return fmt.Sprintf("%-10s %s", label, SubtextStyle.Render("not enough history"))
	}
	filled := int(math.Round(v.Value / 100 * gaugeWidth))
	filled = max(0, min(filled, gaugeWidth))

	style := signalStyle(sig)
	bar := style.Render(strings.Repeat("█", filled)) + SubtextStyle.Render(strings.Repeat("░", gaugeWidth-filled))
	return fmt.Sprintf("%-10s %s %s %s", label, bar, v.String(), FormatSignal(sig))
}

// FormatPrice adds thousands separators to the integer part of a decimal string.
func FormatPrice(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "-"
	}
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	out := sign + addCommas(whole)
	if hasFrac {
		out += "." + frac
	}
	return out
}

func signalStyle(sig *domain.RSISignal) lipgloss.Style {
	if sig == nil {
		return SubtextStyle
	}
	switch *sig {
	case domain.SignalOverbought:
		return OverboughtStyle
	case domain.SignalOversold:
		return OversoldStyle
	default:
		return NeutralStyle
	}
}

func addCommas(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var result strings.Builder
	for i, ch := range s {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteByte(',')
		}
		result.WriteRune(ch)
	}
	return result.String()
}

func optional(s *string) string {
	if s == nil {
		return "-"
	}
	return FormatPrice(*s)
}
