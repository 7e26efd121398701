package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"StockViewer/internal/model"
)

const (
	snapshotModules = "price,summaryDetail,summaryProfile,financialData"
	targetModules   = "financialData"
	incomeModules   = "incomeStatementHistoryQuarterly"
)

var errUnauthorized = errors.New("yahoo: crumb rejected")

// session returns the crumb required by the quoteSummary and options endpoints.
// The first call primes the cookie jar and caches the crumb.
func (f *YahooFetcher) session(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.crumb != "" {
		return f.crumb, nil
	}

	// fc.yahoo.com answers 404 but sets the session cookie.
	if _, _, err := f.get(ctx, f.CookieURL); err != nil {
		return "", fmt.Errorf("yahoo cookie: %w", err)
	}
	body, status, err := f.get(ctx, f.SummaryBaseURL+"/v1/test/getcrumb")
	if err != nil {
		return "", fmt.Errorf("yahoo crumb: %w", err)
	}
	crumb := strings.TrimSpace(string(body))
	if status != http.StatusOK || crumb == "" || strings.Contains(crumb, "<") {
		return "", fmt.Errorf("yahoo crumb: status %d", status)
	}
	f.crumb = crumb
	return crumb, nil
}

func (f *YahooFetcher) resetSession() {
	f.mu.Lock()
	f.crumb = ""
	f.mu.Unlock()
}

// getWithCrumb performs an authenticated GET; a rejected crumb clears the session
// so the next request negotiates a new one.
func (f *YahooFetcher) getWithCrumb(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	crumb, err := f.session(ctx)
	if err != nil {
		return nil, err
	}
	if query == nil {
		query = url.Values{}
	}
	query.Set("crumb", crumb)

	body, status, err := f.get(ctx, endpoint+"?"+query.Encode())
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		f.resetSession()
		return nil, errUnauthorized
	}
	if msg := gjson.GetBytes(body, "*.error.description"); msg.Exists() && msg.String() != "" {
		return nil, fmt.Errorf("%w: %s", ErrNoData, msg.String())
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", status, string(body))
	}
	return body, nil
}

// quoteSummary fetches the requested modules and returns result[0].
func (f *YahooFetcher) quoteSummary(ctx context.Context, symbol, modules string) (gjson.Result, error) {
	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s", f.SummaryBaseURL, url.PathEscape(symbol))
	body, err := f.getWithCrumb(ctx, endpoint, url.Values{"modules": {modules}})
	if err != nil {
		return gjson.Result{}, err
	}
	res := gjson.GetBytes(body, "quoteSummary.result.0")
	if !res.Exists() {
		return res, ErrNoData
	}
	return res, nil
}

// FetchSnapshot fetches the quote metadata of symbol.
func (f *YahooFetcher) FetchSnapshot(ctx context.Context, symbol string) (*model.QuoteSnapshot, error) {
	res, err := f.quoteSummary(ctx, symbol, snapshotModules)
	if err != nil {
		return nil, f.fail(OpSnapshot, symbol, err)
	}
	return parseSnapshot(symbol, res), nil
}

// FetchAnalystTargets fetches the consensus price targets of symbol. It returns
// nil when the provider has no fundamentals for the symbol.
func (f *YahooFetcher) FetchAnalystTargets(ctx context.Context, symbol string) (*model.AnalystTargets, error) {
	res, err := f.quoteSummary(ctx, symbol, targetModules)
	if errors.Is(err, ErrNoData) {
		// funds and indices carry no fundamentals
		return nil, nil
	}
	if err != nil {
		return nil, f.fail(OpTargets, symbol, err)
	}
	return parseTargets(res.Get("financialData")), nil
}

// FetchQuarterlyIncome fetches the quarterly income statement of symbol, or nil
// when there is none.
func (f *YahooFetcher) FetchQuarterlyIncome(ctx context.Context, symbol string) (*model.IncomeStatement, error) {
	res, err := f.quoteSummary(ctx, symbol, incomeModules)
	if errors.Is(err, ErrNoData) {
		return nil, nil
	}
	if err != nil {
		return nil, f.fail(OpIncome, symbol, err)
	}
	return parseIncome(res.Get("incomeStatementHistoryQuarterly.incomeStatementHistory")), nil
}

// raw unwraps Yahoo's {"raw": 1.5, "fmt": "1.50"} number envelope.
func raw(r gjson.Result) gjson.Result {
	if r.IsObject() {
		return r.Get("raw")
	}
	return r
}

func optFloat(rs ...gjson.Result) *float64 {
	for _, r := range rs {
		if r = raw(r); r.Type == gjson.Number {
			v := r.Float()
			return &v
		}
	}
	return nil
}

func optInt(rs ...gjson.Result) *int64 {
	for _, r := range rs {
		if r = raw(r); r.Type == gjson.Number {
			v := r.Int()
			return &v
		}
	}
	return nil
}

func optString(r gjson.Result) *string {
	if r.Type != gjson.String || r.String() == "" {
		return nil
	}
	s := r.String()
	return &s
}

func firstString(rs ...gjson.Result) string {
	for _, r := range rs {
		if s := r.String(); r.Type == gjson.String && s != "" {
			return s
		}
	}
	return ""
}

func parseSnapshot(symbol string, res gjson.Result) *model.QuoteSnapshot {
	price := res.Get("price")
	detail := res.Get("summaryDetail")
	fin := res.Get("financialData")

	return &model.QuoteSnapshot{
		Symbol:          symbol,
		ShortName:       price.Get("shortName").String(),
		LongName:        optString(price.Get("longName")),
		Exchange:        price.Get("exchangeName").String(),
		Currency:        firstString(price.Get("currency"), detail.Get("currency"), fin.Get("financialCurrency")),
		CurrentPrice:    optFloat(fin.Get("currentPrice"), price.Get("regularMarketPrice")),
		Open:            optFloat(detail.Get("open"), price.Get("regularMarketOpen")),
		MarketCap:       optFloat(detail.Get("marketCap"), price.Get("marketCap")),
		Volume:          optInt(detail.Get("volume"), price.Get("regularMarketVolume")),
		BusinessSummary: optString(res.Get("summaryProfile.longBusinessSummary")),
		Raw:             flatten(res),
	}
}

// flatten merges all modules into one key/value map. Numbers are unwrapped,
// nested objects and arrays are dropped, and the first module wins on key clashes.
func flatten(res gjson.Result) map[string]any {
	out := make(map[string]any)
	res.ForEach(func(_, module gjson.Result) bool {
		module.ForEach(func(k, v gjson.Result) bool {
			key := k.String()
			if key == "maxAge" {
				return true
			}
			if _, seen := out[key]; seen {
				return true
			}
			if v.IsObject() {
				if r := v.Get("raw"); r.Exists() {
					out[key] = r.Value()
				}
				return true
			}
			if v.IsArray() || v.Type == gjson.Null {
				return true
			}
			out[key] = v.Value()
			return true
		})
		return true
	})
	return out
}

func parseTargets(fin gjson.Result) *model.AnalystTargets {
	if !fin.Exists() {
		return nil
	}
	t := &model.AnalystTargets{
		Current:        optFloat(fin.Get("currentPrice")),
		High:           optFloat(fin.Get("targetHighPrice")),
		Low:            optFloat(fin.Get("targetLowPrice")),
		Mean:           optFloat(fin.Get("targetMeanPrice")),
		Median:         optFloat(fin.Get("targetMedianPrice")),
		Analysts:       optInt(fin.Get("numberOfAnalystOpinions")),
		Recommendation: fin.Get("recommendationKey").String(),
	}
	if t.High == nil && t.Low == nil && t.Mean == nil && t.Median == nil {
		return nil
	}
	if t.Recommendation == "none" {
		t.Recommendation = ""
	}
	return t
}

func parseIncome(history gjson.Result) *model.IncomeStatement {
	statements := history.Array()
	if len(statements) == 0 {
		return nil
	}

	stmt := &model.IncomeStatement{Periods: make([]string, len(statements))}
	index := make(map[string]int)
	for col, s := range statements {
		stmt.Periods[col] = statementPeriod(s.Get("endDate"))
		s.ForEach(func(k, v gjson.Result) bool {
			item := k.String()
			if item == "maxAge" || item == "endDate" {
				return true
			}
			val := optFloat(v)
			if val == nil {
				return true
			}
			row, ok := index[item]
			if !ok {
				row = len(stmt.Rows)
				index[item] = row
				stmt.Rows = append(stmt.Rows, model.IncomeRow{Item: item, Values: make([]*float64, len(statements))})
			}
			stmt.Rows[row].Values[col] = val
			return true
		})
	}
	if len(stmt.Rows) == 0 {
		return nil
	}
	return stmt
}

func statementPeriod(end gjson.Result) string {
	if s := end.Get("fmt").String(); s != "" {
		return s
	}
	if r := raw(end); r.Type == gjson.Number {
		return time.Unix(r.Int(), 0).UTC().Format("2006-01-02")
	}
	return end.String()
}
