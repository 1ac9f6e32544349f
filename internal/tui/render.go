package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"coinone-mcp/internal/service"

	"github.com/charmbracelet/lipgloss"
)

// Render draws a tool result for a terminal. Results without a dedicated
// view are printed as indented JSON.
func Render(result any) (string, error) {
	switch r := result.(type) {
	case *service.MarketsResult:
		return RenderMarkets(r), nil
	case *service.OrderbookResult:
		return RenderOrderbook(r), nil
	case *service.TradesResult:
		return RenderTrades(r), nil
	case *service.TickersResult:
		return RenderTickers(r), nil
	case *service.TickerResult:
		return RenderTicker(r), nil
	case *service.ChartResult:
		return RenderChart(r), nil
	case *service.BybitChartResult:
		return RenderBybitChart(r), nil
	case *service.BybitRSIResult:
		return RenderBybitRSI(r), nil
	}
	b, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(b), nil
}

func RenderMarkets(r *service.MarketsResult) string {
	rows := [][]string{{"Pair", "Trade", "Maintenance"}}
	for _, m := range r.Markets {
		rows = append(rows, []string{m.Pair, tradeStatus(m.TradeStatus), maintenance(m.MaintenanceStatus)})
	}
	return box(fmt.Sprintf("Markets (%d)", len(r.Markets)), rows)
}

func RenderOrderbook(r *service.OrderbookResult) string {
	rows := [][]string{{"Side", "Price", "Qty"}}
	for i := len(r.Asks) - 1; i >= 0; i-- {
		rows = append(rows, []string{SellStyle.Render("ASK"), FormatPrice(r.Asks[i].Price), r.Asks[i].Qty})
	}
	for _, b := range r.Bids {
		rows = append(rows, []string{BuyStyle.Render("BID"), FormatPrice(b.Price), b.Qty})
	}
	return box(fmt.Sprintf("Orderbook %s/%s", r.TargetCurrency, r.QuoteCurrency), rows)
}

func RenderTrades(r *service.TradesResult) string {
	rows := [][]string{{"ID", "Side", "Price", "Qty"}}
	for _, t := range r.Transactions {
		rows = append(rows, []string{t.ID, FormatSide(t.Type), FormatPrice(t.Price), t.Qty})
	}
	return box(fmt.Sprintf("Recent trades (%d)", len(r.Transactions)), rows)
}

func RenderTickers(r *service.TickersResult) string {
	rows := [][]string{{"Pair", "Last", "Change", "High", "Low", "Best ask", "Best bid"}}
	for _, t := range r.Tickers {
		rows = append(rows, []string{
			t.Pair,
			FormatPrice(t.Last),
			FormatChange(t.ChangeRate),
			FormatPrice(t.High),
			FormatPrice(t.Low),
			optional(t.BestAskPrice),
			optional(t.BestBidPrice),
		})
	}
	return box(fmt.Sprintf("Tickers (%d)", len(r.Tickers)), rows)
}

func RenderTicker(r *service.TickerResult) string {
	rows := [][]string{
		{"Field", "Value"},
		{"Last", FormatPrice(r.Last)},
		{"Open", FormatPrice(r.First)},
		{"Change", FormatChange(r.ChangeRate) + " (" + FormatPrice(r.ChangeAmount) + ")"},
		{"High", FormatPrice(r.High)},
		{"Low", FormatPrice(r.Low)},
		{"Volume", r.TargetVolume + " " + r.TargetCurrency},
	}
	if len(r.BestAsks) > 0 {
		rows = append(rows, []string{"Best ask", FormatPrice(r.BestAsks[0].Price)})
	}
	if len(r.BestBids) > 0 {
		rows = append(rows, []string{"Best bid", FormatPrice(r.BestBids[0].Price)})
	}
	return box("Ticker "+r.Pair, rows)
}

func RenderChart(r *service.ChartResult) string {
	rows := [][]string{{"Time (KST)", "Open", "High", "Low", "Close", "Change"}}
	for _, c := range r.Candles {
		rows = append(rows, []string{
			c.Datetime,
			FormatPrice(c.Open),
			FormatPrice(c.High),
			FormatPrice(c.Low),
			FormatPrice(c.Close),
			FormatChange(c.ChangeRate),
		})
	}
	return box(fmt.Sprintf("Chart %s (%d candles)", r.Interval, len(r.Candles)), rows)
}

func RenderBybitChart(r *service.BybitChartResult) string {
	rows := [][]string{{"Time (UTC)", "Close", "Change", "RSI(6)", "RSI(12)"}}
	for _, c := range r.Candles {
		rows = append(rows, []string{
			c.Datetime,
			FormatPrice(c.Close),
			FormatChange(c.ChangeRate),
			FormatRSI(c.RSI6, c.RSI6Signal),
			FormatRSI(c.RSI12, c.RSI12Signal),
		})
	}
	gauges := lipgloss.JoinVertical(lipgloss.Left,
		RenderRSIGauge("RSI(6)", r.CurrentRSI6, r.CurrentRSI6Signal),
		RenderRSIGauge("RSI(12)", r.CurrentRSI12, r.CurrentRSI12Signal),
	)
	title := fmt.Sprintf("%s %s %s", r.Symbol, r.Category, r.Interval)
	return lipgloss.JoinVertical(lipgloss.Left, TitleStyle.Render(title), gauges, box("", rows))
}

func RenderBybitRSI(r *service.BybitRSIResult) string {
	label := fmt.Sprintf("RSI(%d)", r.RSIPeriod)
	rows := [][]string{{"Time (UTC)", "Close", "Change", label, "Zone"}}
	for _, c := range r.Candles {
		rows = append(rows, []string{
			c.Datetime,
			FormatPrice(c.Close),
			FormatChange(c.ChangeRate),
			FormatRSI(c.RSI, c.RSISignal),
			FormatSignal(c.RSISignal),
		})
	}
	title := fmt.Sprintf("%s %s %s", r.Symbol, r.Category, r.Interval)
	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render(title),
		RenderRSIGauge(label, r.CurrentRSI, r.CurrentSignal),
		box("", rows),
	)
}

// box lays rows out in padded columns inside a rounded border. The first row
// is the header.
func box(title string, rows [][]string) string {
	widths := make([]int, 0)
	for _, row := range rows {
		for i, c := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	var lines []string
	if title != "" {
		lines = append(lines, HeaderStyle.Render(title))
	}
	for n, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = c + strings.Repeat(" ", widths[i]-lipgloss.Width(c))
		}
		line := strings.Join(cells, "  ")
		if n == 0 {
			line = SubtextStyle.Render(line)
		}
		lines = append(lines, line)
	}
	if len(rows) == 1 {
		lines = append(lines, SubtextStyle.Render("no rows"))
	}
	return BorderStyle.Render(strings.Join(lines, "\n"))
}

func tradeStatus(v int) string {
	if v == 1 {
		return "open"
	}
	return ErrorStyle.Render("halted")
}

func maintenance(v int) string {
	if v == 0 {
		return "-"
	}
	return ErrorStyle.Render("yes")
}
