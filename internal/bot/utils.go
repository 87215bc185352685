package bot

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"unicode/utf8"

	"vanilla-bot/internal/calculator"
	"vanilla-bot/internal/storage"
)

func formatNumber(v float64) string {
	return strconv.FormatFloat(calculator.Round2(v), 'f', -1, 64)
}

// FormatTable renders rows as a monospaced two-column table for HTML
// parse mode.
func FormatTable(title string, rows []calculator.Row) string {
	width := 0
	for _, row := range rows {
		if n := utf8.RuneCountInString(row.Label); n > width {
			width = n
		}
	}

	var sb strings.Builder
	sb.WriteString("<b>" + html.EscapeString(title) + "</b>\n<pre>")
	for _, row := range rows {
		pad := strings.Repeat(" ", width-utf8.RuneCountInString(row.Label))
		fmt.Fprintf(&sb, "%s%s %12s\n", html.EscapeString(row.Label), pad, formatNumber(row.Value))
	}
	sb.WriteString("</pre>")
	return sb.String()
}

// FormatResult renders the worksheet and, when present, the cost breakdown.
func FormatResult(res calculator.Result) string {
	text := FormatTable(fmt.Sprintf("🌿 %s worksheet", res.Input.Variant.Title()), res.Worksheet())
	if breakdown := res.CostBreakdown(); breakdown != nil {
		text += "\n\n" + FormatTable("💰 Cost breakdown", breakdown)
	}
	return text
}

func FormatHistory(calcs []storage.Calculation) string {
	if len(calcs) == 0 {
		return "You have no saved calculations yet."
	}

	var sb strings.Builder
	sb.WriteString("🗂 Recent calculations:\n")
	for _, c := range calcs {
		fmt.Fprintf(&sb, "#%d · %s · %s · %d beans · %d-fold · $%s\n",
			c.ID,
			c.CreatedAt.Format("02.01.2006 15:04"),
			calculator.Variant(c.Variant).Title(),
			c.BeanCount,
			c.Folds,
			formatNumber(c.PriceUSD),
		)
	}
	return sb.String()
}

func FormatStatistics(stats *storage.Statistics) string {
	return fmt.Sprintf(
		"📊 Calculation statistics\n\n"+
			"📌 Total: %d\n"+
			"📅 Today: %d\n"+
			"🌿 Beans priced: %d\n"+
			"💵 Extract value: $%s\n\n"+
			"Basic: %d\n"+
			"Priced: %d\n"+
			"Extended: %d",
		stats.TotalCalculations,
		stats.TodayCalculations,
		stats.TotalBeans,
		formatNumber(stats.TotalPriceUSD),
		stats.VariantCounts[calculator.Basic.String()],
		stats.VariantCounts[calculator.Priced.String()],
		stats.VariantCounts[calculator.Extended.String()],
	)
}
