package collector

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"StockViewer/internal/model"
)

func (f *YahooFetcher) options(ctx context.Context, symbol string, query url.Values) (gjson.Result, error) {
	endpoint := fmt.Sprintf("%s/v7/finance/options/%s", f.SummaryBaseURL, url.PathEscape(symbol))
	body, err := f.getWithCrumb(ctx, endpoint, query)
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.GetBytes(body, "optionChain.result.0"), nil
}

// FetchOptionExpirations lists the listed expiration dates of symbol, nearest first.
// A symbol without listed options yields an empty list.
func (f *YahooFetcher) FetchOptionExpirations(ctx context.Context, symbol string) ([]time.Time, error) {
	res, err := f.options(ctx, symbol, nil)
	if err != nil {
		return nil, f.fail(OpExpirations, symbol, err)
	}
	var out []time.Time
	for _, ts := range res.Get("expirationDates").Array() {
		out = append(out, time.Unix(ts.Int(), 0).UTC())
	}
	return out, nil
}

// FetchOptionChain fetches the calls and puts expiring at expiration.
func (f *YahooFetcher) FetchOptionChain(ctx context.Context, symbol string, expiration time.Time) (*model.OptionChain, error) {
	query := url.Values{"date": {strconv.FormatInt(expiration.Unix(), 10)}}
	res, err := f.options(ctx, symbol, query)
	if err != nil {
		return nil, f.fail(OpChain, symbol, err)
	}
	chain := &model.OptionChain{Expiration: expiration}
	opts := res.Get("options.0")
	chain.Calls = parseContracts(opts.Get("calls"))
	chain.Puts = parseContracts(opts.Get("puts"))
	return chain, nil
}

func parseContracts(list gjson.Result) []model.OptionContract {
	items := list.Array()
	out := make([]model.OptionContract, 0, len(items))
	for _, c := range items {
		contract := model.OptionContract{
			ContractSymbol:    c.Get("contractSymbol").String(),
			Strike:            raw(c.Get("strike")).Float(),
			LastPrice:         raw(c.Get("lastPrice")).Float(),
			Bid:               raw(c.Get("bid")).Float(),
			Ask:               raw(c.Get("ask")).Float(),
			Change:            raw(c.Get("change")).Float(),
			PercentChange:     raw(c.Get("percentChange")).Float(),
			Volume:            raw(c.Get("volume")).Int(),
			OpenInterest:      raw(c.Get("openInterest")).Int(),
			ImpliedVolatility: raw(c.Get("impliedVolatility")).Float(),
			InTheMoney:        c.Get("inTheMoney").Bool(),
		}
		if ts := raw(c.Get("lastTradeDate")); ts.Type == gjson.Number {
			contract.LastTradeDate = time.Unix(ts.Int(), 0).UTC()
		}
		out = append(out, contract)
	}
	return out
}
