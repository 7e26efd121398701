package model

import "time"

// QuoteSnapshot is the point-in-time metadata of a symbol.
// Pointer fields are nil when the provider did not report them.
type QuoteSnapshot struct {
	Symbol          string         `json:"symbol"`
	ShortName       string         `json:"short_name,omitempty"`
	LongName        *string        `json:"long_name,omitempty"`
	Exchange        string         `json:"exchange,omitempty"`
	Currency        string         `json:"currency"`
	CurrentPrice    *float64       `json:"current_price,omitempty"`
	Open            *float64       `json:"open,omitempty"`
	MarketCap       *float64       `json:"market_cap,omitempty"`
	Volume          *int64         `json:"volume,omitempty"`
	BusinessSummary *string        `json:"business_summary,omitempty"`
	Raw             map[string]any `json:"raw,omitempty"`
}

// DisplayName prefers the long name, then the short name, then the symbol.
func (q *QuoteSnapshot) DisplayName() string {
	if q.LongName != nil && *q.LongName != "" {
		return *q.LongName
	}
	if q.ShortName != "" {
		return q.ShortName
	}
	return q.Symbol
}

func (q *QuoteSnapshot) IsJapanese() bool { return q.Currency == "JPY" }

// AnalystTargets are the consensus price targets for a symbol.
type AnalystTargets struct {
	Current        *float64 `json:"current,omitempty"`
	High           *float64 `json:"high,omitempty"`
	Low            *float64 `json:"low,omitempty"`
	Mean           *float64 `json:"mean,omitempty"`
	Median         *float64 `json:"median,omitempty"`
	Analysts       *int64   `json:"analysts,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// TargetRow is one key/value line of the analyst target table.
type TargetRow struct {
	Key   string
	Value *float64
}

// Rows lists the price targets in table order.
func (a *AnalystTargets) Rows() []TargetRow {
	return []TargetRow{
		{"current", a.Current},
		{"high", a.High},
		{"low", a.Low},
		{"mean", a.Mean},
		{"median", a.Median},
	}
}

// IncomeStatement is a line item by quarter table, most recent quarter first.
type IncomeStatement struct {
	Periods []string    `json:"periods"`
	Rows    []IncomeRow `json:"rows"`
}

// IncomeRow holds one line item; Values align with IncomeStatement.Periods.
type IncomeRow struct {
	Item   string     `json:"item"`
	Values []*float64 `json:"values"`
}

// OptionContract is one leg of an option chain.
type OptionContract struct {
	ContractSymbol    string    `json:"contract_symbol"`
	Strike            float64   `json:"strike"`
	LastPrice         float64   `json:"last_price"`
	Bid               float64   `json:"bid"`
	Ask               float64   `json:"ask"`
	Change            float64   `json:"change"`
	PercentChange     float64   `json:"percent_change"`
	Volume            int64     `json:"volume"`
	OpenInterest      int64     `json:"open_interest"`
	ImpliedVolatility float64   `json:"implied_volatility"`
	InTheMoney        bool      `json:"in_the_money"`
	LastTradeDate     time.Time `json:"last_trade_date"`
}

// OptionChain holds the contracts of a single expiration date.
type OptionChain struct {
	Expiration time.Time        `json:"expiration"`
	Calls      []OptionContract `json:"calls"`
	Puts       []OptionContract `json:"puts"`
}

// Dashboard is everything fetched for one submission.
type Dashboard struct {
	Query           string           `json:"query"`
	Symbol          string           `json:"symbol"`
	Period          Period           `json:"period"`
	BenchmarkSymbol string           `json:"benchmark_symbol"`
	BenchmarkName   string           `json:"benchmark_name"`
	Snapshot        *QuoteSnapshot   `json:"snapshot"`
	History         PriceSeries      `json:"history"`
	Benchmark       PriceSeries      `json:"benchmark"`
	Targets         *AnalystTargets  `json:"targets,omitempty"`
	Income          *IncomeStatement `json:"income,omitempty"`
	Options         *OptionChain     `json:"options,omitempty"`
	FetchedAt       time.Time        `json:"fetched_at"`
}
