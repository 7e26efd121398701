package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"StockViewer/internal/calculator"
	"StockViewer/internal/model"
)

// NA is shown for any value the provider did not report.
const NA = "N/A"

// Metric is one labeled value of the metrics panel.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// subunitCurrencies are the quote currencies Yahoo reports in hundredths of
// the major currency.
var subunitCurrencies = map[string]string{
	"GBp": money.GBP,
	"GBX": money.GBP,
	"ZAc": money.ZAR,
	"ILA": money.ILS,
}

// FormatMoney formats v in currency using its symbol, grouping and fraction digits.
// An empty currency is treated as USD; pence, cents and agorot quotes are shown
// in their major currency.
func FormatMoney(v *float64, currency string) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return NA
	}
	if currency == "" {
		currency = money.USD
	}
	amount := decimal.NewFromFloat(*v)
	if major, ok := subunitCurrencies[currency]; ok {
		currency = major
		amount = amount.Shift(-2)
	}
	cur := money.New(0, currency).Currency()
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	if minor.Abs().GreaterThan(maxMinorUnits) {
		return cur.Code + " " + humanize.Commaf(amount.InexactFloat64())
	}
	return cur.Formatter().Format(minor.IntPart())
}

// FormatCount formats an integer with comma grouping.
func FormatCount(v *int64) string {
	if v == nil {
		return NA
	}
	return humanize.Comma(*v)
}

// FormatNumber formats a float with comma grouping and no fraction digits.
func FormatNumber(v *float64) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return NA
	}
	return humanize.Comma(decimal.NewFromFloat(*v).Round(0).IntPart())
}

// FormatPercent formats pct with an explicit sign and two decimals.
func FormatPercent(pct float64) string {
	d := decimal.NewFromFloat(pct).Round(2)
	s := d.StringFixed(2)
	if d.IsPositive() {
		s = "+" + s
	}
	return s + "%"
}

// QuoteMetrics returns the 現在値, 始値, 時価総額 and 出来高 metrics of a snapshot.
func QuoteMetrics(s *model.QuoteSnapshot) []Metric {
	if s == nil {
		s = &model.QuoteSnapshot{}
	}
	return []Metric{
		{"現在値", FormatMoney(s.CurrentPrice, s.Currency)},
		{"始値", FormatMoney(s.Open, s.Currency)},
		{"時価総額", FormatMoney(s.MarketCap, s.Currency)},
		{"出来高", FormatCount(s.Volume)},
	}
}

// PeriodMetrics returns the high, low, change and range position over the series.
func PeriodMetrics(series model.PriceSeries, currency string) []Metric {
	high, low, change, position := NA, NA, NA, NA
	if h, l, err := calculator.PeriodRange(series.Bars); err == nil {
		high = FormatMoney(&h, currency)
		low = FormatMoney(&l, currency)
		last := series.Bars[len(series.Bars)-1].Close
		if pos, err := calculator.RangePosition(last, h, l); err == nil {
			position = fmt.Sprintf("%.0f%%", pos*100)
		}
	}
	if pct, err := calculator.PeriodChange(series.Bars); err == nil {
		change = FormatPercent(pct)
	}
	return []Metric{
		{"期間高値", high},
		{"期間安値", low},
		{"期間騰落率", change},
		{"レンジ内位置", position},
	}
}

// TargetMetrics formats the analyst price targets in table order.
func TargetMetrics(t *model.AnalystTargets, currency string) []Metric {
	if t == nil {
		return nil
	}
	rows := t.Rows()
	out := make([]Metric, 0, len(rows))
	for _, r := range rows {
		out = append(out, Metric{r.Key, FormatMoney(r.Value, currency)})
	}
	return out
}

// FormatSummary renders the dashboard as plain text for the terminal.
func FormatSummary(v *DashboardView) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 %s (%s) | %s\n", v.Name, v.Symbol, v.Period.Label()))
	b.WriteString(fmt.Sprintf("取得時刻: %s\n\n", v.FetchedAt.Format("2006-01-02 15:04")))

	for _, m := range v.Metrics {
		b.WriteString(fmt.Sprintf("%s: %s\n", m.Label, m.Value))
	}
	b.WriteString("\n")
	for _, m := range v.PeriodMetrics {
		b.WriteString(fmt.Sprintf("%s: %s\n", m.Label, m.Value))
	}

	if len(v.Targets) > 0 {
		b.WriteString("\n🎯 アナリスト予想\n")
		for _, m := range v.Targets {
			b.WriteString(fmt.Sprintf("  %s: %s\n", m.Label, m.Value))
		}
	}

	if v.Options != nil {
		b.WriteString(fmt.Sprintf("\n満期日: %s (コール %d件)\n", v.Options.Expiration.Format("2006-01-02"), len(v.Options.Calls)))
	}
	return b.String()
}
