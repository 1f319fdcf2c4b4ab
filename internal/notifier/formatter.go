package notifier

import (
	"fmt"
	"strconv"
	"strings"

	"ChartPulse/internal/model"
)

func arrow(d model.Direction) string {
	switch d {
	case model.DirectionDown:
		return "🔻"
	case model.DirectionFlat:
		return "➖" // declared for completeness, never produced today
	default:
		return "🔺"
	}
}

// fmtPrice renders a price at the display precision of its class:
// 4 decimals for forex, 2 otherwise.
func fmtPrice(v float64, class model.AssetClass) string {
	return strconv.FormatFloat(v, 'f', int(class.Decimals()), 64)
}

// FormatMoveAlert formats a price-move alert for one asset.
func FormatMoveAlert(d *model.ChartData, thresholdPct float64) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s <b>%s</b> moved %+.2f%% (threshold %.1f%%)\n\n",
		arrow(d.Stats.Direction), strings.ToUpper(d.Asset), d.Stats.ChangePercent, thresholdPct))
	b.WriteString(fmt.Sprintf("Latest: %s (prev %s)\n",
		fmtPrice(d.Stats.LatestPrice, d.Class), fmtPrice(d.Stats.PreviousPrice, d.Class)))
	b.WriteString(fmt.Sprintf("Window: %s - %s (avg %s)\n",
		fmtPrice(d.Stats.WindowLow, d.Class), fmtPrice(d.Stats.WindowHigh, d.Class),
		fmtPrice(d.Stats.WindowAverage, d.Class)))
	b.WriteString(fmt.Sprintf("Source: %s, %d points", d.Source, len(d.Series)))
	return b.String()
}

// FormatChartSummary formats the current chart data for a command reply.
func FormatChartSummary(d *model.ChartData) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> (%s) | %s\n\n",
		strings.ToUpper(d.Asset), d.Class, d.ResolvedAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Latest: %s\n", fmtPrice(d.Stats.LatestPrice, d.Class)))
	b.WriteString(fmt.Sprintf("Change: %s %s (%+.2f%%)\n",
		arrow(d.Stats.Direction), fmtPrice(d.Stats.Change, d.Class), d.Stats.ChangePercent))
	b.WriteString(fmt.Sprintf("High: %s | Low: %s\n",
		fmtPrice(d.Stats.WindowHigh, d.Class), fmtPrice(d.Stats.WindowLow, d.Class)))
	b.WriteString(fmt.Sprintf("Average: %s\n", fmtPrice(d.Stats.WindowAverage, d.Class)))
	b.WriteString(fmt.Sprintf("Source: %s, %d points", d.Source, len(d.Series)))
	return b.String()
}

// FormatAssetList formats the tracked asset list for a command reply.
func FormatAssetList(assets []model.AssetQuery) string {
	var b strings.Builder
	b.WriteString("📋 <b>Tracked assets</b>\n\n")
	for _, a := range assets {
		b.WriteString(fmt.Sprintf("• %s (%s)\n", a.Asset, a.Class))
	}
	return b.String()
}
