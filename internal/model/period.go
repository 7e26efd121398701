package model

import "fmt"

// Period is a history window understood by the data provider.
type Period string

const (
	Period1d  Period = "1d"
	Period1wk Period = "1wk"
	Period1mo Period = "1mo"
	Period3mo Period = "3mo"
	Period6mo Period = "6mo"
	Period1y  Period = "1y"
	Period2y  Period = "2y"
	Period5y  Period = "5y"
	PeriodMax Period = "max"
)

// DefaultPeriod is preselected in the form.
const DefaultPeriod = Period1mo

var periods = []struct {
	Period Period
	Label  string
}{
	{Period1d, "1日"},
	{Period1wk, "1週間"},
	{Period1mo, "1ヶ月"},
	{Period3mo, "3ヶ月"},
	{Period6mo, "6ヶ月"},
	{Period1y, "1年"},
	{Period2y, "2年"},
	{Period5y, "5年"},
	{PeriodMax, "最大"},
}

// Periods returns every period in display order.
func Periods() []Period {
	out := make([]Period, len(periods))
	for i, p := range periods {
		out[i] = p.Period
	}
	return out
}

// Label returns the UI label of the period.
func (p Period) Label() string {
	for _, e := range periods {
		if e.Period == p {
			return e.Label
		}
	}
	return string(p)
}

func (p Period) Valid() bool {
	for _, e := range periods {
		if e.Period == p {
			return true
		}
	}
	return false
}

// ParsePeriod validates s. An empty string selects DefaultPeriod.
func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return DefaultPeriod, nil
	}
	p := Period(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown period %q", s)
	}
	return p, nil
}
