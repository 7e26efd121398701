package view

import (
	"fmt"
	"html/template"
	"math"
	"regexp"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"StockViewer/internal/chart"
)

const (
	chartWidth  = "100%"
	chartHeight = "440px"
	dateLayout  = "2006-01-02"
)

// chartID must be usable as a JS identifier; go-echarts derives variable names from it.
var chartID = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// integerTicks renders axis values as comma-grouped integers.
var integerTicks = opts.FuncOpts(`function (v) { return Math.round(v).toLocaleString('en-US'); }`)

// RenderedChart is a chart ready to be embedded in the page.
type RenderedChart struct {
	ID      string
	Element template.HTML
	Script  template.HTML
}

func yAxis(a chart.Axis) opts.YAxis {
	label := &opts.AxisLabel{Show: opts.Bool(true)}
	if a.TickFormat == chart.TickInteger {
		label.Formatter = integerTicks
	}
	return opts.YAxis{
		Name:      a.Title,
		Type:      "value",
		Position:  string(a.Side),
		Scale:     opts.Bool(true),
		AxisLabel: label,
		SplitLine: &opts.SplitLine{Show: opts.Bool(a.Side == chart.SideLeft)},
	}
}

func lineData(tr chart.Trace) []opts.LineData {
	data := make([]opts.LineData, len(tr.X))
	for i, x := range tr.X {
		var y any = tr.Y[i]
		if math.IsNaN(tr.Y[i]) || math.IsInf(tr.Y[i], 0) {
			y = "-"
		}
		data[i] = opts.LineData{Value: []any{x.Format(dateLayout), y}}
	}
	return data
}

// RenderChart converts spec into a go-echarts line chart with a time x axis and
// one y axis per spec axis.
func RenderChart(spec chart.Spec, assetsHost string) (*charts.Line, error) {
	if !chartID.MatchString(spec.ID) {
		return nil, fmt.Errorf("chart id %q is not a valid identifier", spec.ID)
	}
	if len(spec.Axes) == 0 {
		return nil, fmt.Errorf("chart %s: no y axis", spec.ID)
	}
	for _, tr := range spec.Traces {
		if tr.Axis < 0 || tr.Axis >= len(spec.Axes) {
			return nil, fmt.Errorf("chart %s: trace %s uses unknown axis %d", spec.ID, tr.Name, tr.Axis)
		}
		if len(tr.X) != len(tr.Y) {
			return nil, fmt.Errorf("chart %s: trace %s has %d dates and %d values", spec.ID, tr.Name, len(tr.X), len(tr.Y))
		}
	}

	legend := opts.Legend{Show: opts.Bool(true), Orient: "vertical", Right: "0", Top: "middle"}
	grid := opts.Grid{Left: "80", Right: "200", Top: "60", Bottom: "60"}
	if spec.HorizontalLegend {
		legend = opts.Legend{Show: opts.Bool(true), Orient: "horizontal", Left: "0", Top: "30"}
		grid = opts.Grid{Left: "80", Right: "100", Top: "80", Bottom: "60"}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			ChartID:    spec.ID,
			Width:      chartWidth,
			Height:     chartHeight,
			AssetsHost: assetsHost,
		}),
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithLegendOpts(legend),
		charts.WithGridOpts(grid),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "time",
			Name:      spec.XTitle,
			AxisLabel: &opts.AxisLabel{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(yAxis(spec.Axes[0])),
	)
	for _, a := range spec.Axes[1:] {
		line.ExtendYAxis(yAxis(a))
	}

	for _, tr := range spec.Traces {
		line.AddSeries(tr.Name, lineData(tr),
			charts.WithLineChartOpts(opts.LineChart{YAxisIndex: tr.Axis, ShowSymbol: opts.Bool(false)}),
		)
	}
	return line, nil
}

// RenderSnippet renders spec into its DOM element and init script.
func RenderSnippet(spec chart.Spec, assetsHost string) (RenderedChart, error) {
	line, err := RenderChart(spec, assetsHost)
	if err != nil {
		return RenderedChart{}, err
	}
	snippet := line.RenderSnippet()
	return RenderedChart{
		ID:      spec.ID,
		Element: template.HTML(snippet.Element),
		Script:  template.HTML(snippet.Script),
	}, nil
}
