package collector

import (
	"context"
	"strings"
	"time"

	"StockViewer/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price       float64
	Prices      map[string]float64       // base price per symbol, overrides Price
	Bars        map[string][]model.OHLCV // fixed bars per symbol, override generated bars
	Snapshot    *model.QuoteSnapshot
	Targets     *model.AnalystTargets
	Income      *model.IncomeStatement
	Expirations []time.Time
	Chain       *model.OptionChain
	Errors      map[string]error // keyed by operation (OpHistory, ...)
	Now         func() time.Time
}

// NewMockFetcher returns a MockFetcher filled with demo data around price.
func NewMockFetcher(price float64) *MockFetcher {
	name := "Mock Motor Corporation"
	summary := "Mock Motor designs and sells cars. This record is generated for offline development."
	marketCap := price * 1.6e10
	vol := int64(21_450_300)
	mean, high, low, median := price*1.12, price*1.4, price*0.8, price*1.1
	analysts := int64(21)
	revenue, income := 1.1e13, 1.3e12
	revenuePrev, incomePrev := 1.05e13, 1.2e12
	expiry := time.Date(2031, 1, 17, 0, 0, 0, 0, time.UTC)

	return &MockFetcher{
		Price:  price,
		Prices: map[string]float64{"^N225": 38000},
		Snapshot: &model.QuoteSnapshot{
			ShortName:       "MOCK MOTOR",
			LongName:        &name,
			Exchange:        "JPX",
			Currency:        "JPY",
			CurrentPrice:    &price,
			Open:            &price,
			MarketCap:       &marketCap,
			Volume:          &vol,
			BusinessSummary: &summary,
			Raw:             map[string]any{"sector": "Consumer Cyclical", "marketCap": marketCap},
		},
		Targets: &model.AnalystTargets{
			Current: &price, High: &high, Low: &low, Mean: &mean, Median: &median,
			Analysts: &analysts, Recommendation: "buy",
		},
		Income: &model.IncomeStatement{
			Periods: []string{"2024-06-30", "2024-03-31"},
			Rows: []model.IncomeRow{
				{Item: "totalRevenue", Values: []*float64{&revenue, &revenuePrev}},
				{Item: "netIncome", Values: []*float64{&income, &incomePrev}},
			},
		},
		Expirations: []time.Time{expiry},
		Chain: &model.OptionChain{
			Expiration: expiry,
			Calls: []model.OptionContract{
				{ContractSymbol: "MOCK310117C00003000", Strike: 3000, LastPrice: 120, Bid: 118, Ask: 122, Volume: 15, OpenInterest: 230, ImpliedVolatility: 0.27},
			},
		},
	}
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) err(op, symbol string) error {
	if err, ok := m.Errors[op]; ok && err != nil {
		return &ProviderError{Provider: m.Name(), Op: op, Symbol: symbol, Err: err}
	}
	return nil
}

func (m *MockFetcher) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m *MockFetcher) FetchSnapshot(_ context.Context, symbol string) (*model.QuoteSnapshot, error) {
	if err := m.err(OpSnapshot, symbol); err != nil {
		return nil, err
	}
	snap := &model.QuoteSnapshot{Symbol: symbol, ShortName: symbol, Currency: currencyOf(symbol)}
	if m.Snapshot != nil {
		cp := *m.Snapshot
		cp.Symbol = symbol
		snap = &cp
	}
	return snap, nil
}

func (m *MockFetcher) FetchHistory(_ context.Context, symbol string, period model.Period) (model.PriceSeries, error) {
	series := model.PriceSeries{Symbol: symbol, Period: period}
	if !period.Valid() {
		return series, ErrUnknownPeriod
	}
	if err := m.err(OpHistory, symbol); err != nil {
		return series, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		series.Bars = bars
		return series, nil
	}
	price := m.Price
	if p, ok := m.Prices[symbol]; ok {
		price = p
	}
	series.Bars = generateMockBars(price, tradingDays(period), m.now())
	return series, nil
}

func (m *MockFetcher) FetchAnalystTargets(_ context.Context, symbol string) (*model.AnalystTargets, error) {
	if err := m.err(OpTargets, symbol); err != nil {
		return nil, err
	}
	return m.Targets, nil
}

func (m *MockFetcher) FetchQuarterlyIncome(_ context.Context, symbol string) (*model.IncomeStatement, error) {
	if err := m.err(OpIncome, symbol); err != nil {
		return nil, err
	}
	return m.Income, nil
}

func (m *MockFetcher) FetchOptionExpirations(_ context.Context, symbol string) ([]time.Time, error) {
	if err := m.err(OpExpirations, symbol); err != nil {
		return nil, err
	}
	return m.Expirations, nil
}

func (m *MockFetcher) FetchOptionChain(_ context.Context, symbol string, expiration time.Time) (*model.OptionChain, error) {
	if err := m.err(OpChain, symbol); err != nil {
		return nil, err
	}
	if m.Chain == nil {
		return &model.OptionChain{Expiration: expiration}, nil
	}
	return m.Chain, nil
}

func currencyOf(symbol string) string {
	if strings.HasSuffix(symbol, JapanSuffix) {
		return "JPY"
	}
	return "USD"
}

// tradingDays approximates the number of daily bars in period.
func tradingDays(p model.Period) int {
	switch p {
	case model.Period1d:
		return 1
	case model.Period1wk:
		return 5
	case model.Period1mo:
		return 21
	case model.Period3mo:
		return 63
	case model.Period6mo:
		return 126
	case model.Period1y:
		return 252
	case model.Period2y:
		return 504
	case model.Period5y:
		return 1260
	default:
		return 2520
	}
}

func generateMockBars(basePrice float64, count int, now time.Time) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   now.AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
