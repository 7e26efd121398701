package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"sort"
	"strconv"

	"github.com/dustin/go-humanize"

	"StockViewer/internal/model"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

const (
	DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

	PageTitle     = "株価情報ビューワー"
	Placeholder   = "例: 7203（トヨタ）, AAPL（アップル）"
	PromptMessage = "👆 銘柄を入力してください"
	ErrorPrefix   = "データの取得に失敗しました: "
)

// PeriodOption is one entry of the period selector.
type PeriodOption struct {
	Value    model.Period
	Label    string
	Selected bool
}

// Field is one key/value line of the detail toggle.
type Field struct {
	Key   string
	Value string
}

// Table is a header plus string rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// Page is the data behind templates/dashboard.html.
type Page struct {
	Title       string
	Placeholder string
	Query       string
	Periods     []PeriodOption
	AssetsHost  string
	RequestID   string

	Prompt string
	Error  string

	View       *DashboardView
	Raw        []Field
	Charts     []RenderedChart
	Income     *Table
	Calls      *Table
	Expiration string
}

func newPage(query string, period model.Period, assetsHost string) *Page {
	if assetsHost == "" {
		assetsHost = DefaultAssetsHost
	}
	if !period.Valid() {
		period = model.DefaultPeriod
	}
	options := make([]PeriodOption, 0, len(model.Periods()))
	for _, p := range model.Periods() {
		options = append(options, PeriodOption{Value: p, Label: p.Label(), Selected: p == period})
	}
	return &Page{
		Title:       PageTitle,
		Placeholder: Placeholder,
		Query:       query,
		Periods:     options,
		AssetsHost:  assetsHost,
	}
}

// PromptPage is the empty form shown before anything is submitted.
func PromptPage(period model.Period, assetsHost string) *Page {
	p := newPage("", period, assetsHost)
	p.Prompt = PromptMessage
	return p
}

// ErrorPage shows the form and the single error of a failed submission.
func ErrorPage(query string, period model.Period, assetsHost string, err error) *Page {
	p := newPage(query, period, assetsHost)
	p.Error = ErrorPrefix + err.Error()
	return p
}

// DashboardPage renders the charts of v and formats its tables.
func DashboardPage(v *DashboardView, assetsHost string) (*Page, error) {
	p := newPage(v.Query, v.Period, assetsHost)
	p.View = v

	for _, spec := range v.Charts {
		rc, err := RenderSnippet(spec, p.AssetsHost)
		if err != nil {
			return nil, err
		}
		p.Charts = append(p.Charts, rc)
	}
	if v.Snapshot != nil {
		p.Raw = rawFields(v.Snapshot.Raw)
	}
	p.Income = incomeTable(v.Income)
	if v.Options != nil {
		p.Expiration = v.Options.Expiration.Format(dateLayout)
		p.Calls = callsTable(v.Options)
	}
	return p, nil
}

// Render writes the page as HTML.
func (p *Page) Render(w io.Writer) error {
	return dashboardTmpl.Execute(w, p)
}

func rawFields(raw map[string]any) []Field {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Field, len(keys))
	for i, k := range keys {
		out[i] = Field{Key: k, Value: fmt.Sprint(raw[k])}
	}
	return out
}

func incomeTable(s *model.IncomeStatement) *Table {
	if s == nil || len(s.Rows) == 0 {
		return nil
	}
	t := &Table{Header: append([]string{"項目"}, s.Periods...)}
	for _, r := range s.Rows {
		row := make([]string, 0, len(r.Values)+1)
		row = append(row, r.Item)
		for _, v := range r.Values {
			row = append(row, FormatNumber(v))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func callsTable(c *model.OptionChain) *Table {
	t := &Table{Header: []string{
		"contractSymbol", "lastTradeDate", "strike", "lastPrice", "bid", "ask",
		"change", "percentChange", "volume", "openInterest", "impliedVolatility", "inTheMoney",
	}}
	for _, o := range c.Calls {
		lastTrade := ""
		if !o.LastTradeDate.IsZero() {
			lastTrade = o.LastTradeDate.Format("2006-01-02 15:04")
		}
		t.Rows = append(t.Rows, []string{
			o.ContractSymbol,
			lastTrade,
			strconv.FormatFloat(o.Strike, 'f', 2, 64),
			strconv.FormatFloat(o.LastPrice, 'f', 2, 64),
			strconv.FormatFloat(o.Bid, 'f', 2, 64),
			strconv.FormatFloat(o.Ask, 'f', 2, 64),
			strconv.FormatFloat(o.Change, 'f', 2, 64),
			FormatPercent(o.PercentChange),
			humanize.Comma(o.Volume),
			humanize.Comma(o.OpenInterest),
			fmt.Sprintf("%.2f%%", o.ImpliedVolatility*100),
			strconv.FormatBool(o.InTheMoney),
		})
	}
	return t
}
