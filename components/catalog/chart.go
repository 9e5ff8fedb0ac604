package catalog

import (
	"bytes"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "320px"

var sharedAssetCache = NewAssetCache(5 * time.Minute)

// ContentChart renders a bar chart of the per-service content counters.
type ContentChart struct {
	cache      RenderCache
	theme      string
	assetsHost string
}

// ContentChartOption customizes the chart.
type ContentChartOption func(*ContentChart)

// WithChartCache injects a render cache.
func WithChartCache(cache RenderCache) ContentChartOption {
	return func(c *ContentChart) {
		c.cache = cache
	}
}

// WithChartTheme sets the echarts theme (defaults to Westeros).
func WithChartTheme(theme string) ContentChartOption {
	return func(c *ContentChart) {
		c.theme = theme
	}
}

// WithChartAssetsHost points the echarts runtime at a CDN or local path.
func WithChartAssetsHost(host string) ContentChartOption {
	return func(c *ContentChart) {
		c.assetsHost = host
	}
}

// NewContentChart builds a chart renderer.
func NewContentChart(options ...ContentChartOption) *ContentChart {
	c := &ContentChart{
		cache: sharedAssetCache,
		theme: types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

type chartRow struct {
	Label     string
	Tutorials int
	UseCases  int
	Videos    int
}

// Render returns the chart markup for the grid entries; no entries render nothing.
func (c *ContentChart) Render(entries []GridEntry) (string, error) {
	rows := chartRows(entries)
	if len(rows) == 0 {
		return "", nil
	}
	render := func() (string, error) { return c.render(rows) }
	if c.cache == nil {
		return render()
	}
	return c.cache.GetOrRender("content-chart:"+c.theme+":"+contentHash(rows), render)
}

func chartRows(entries []GridEntry) []chartRow {
	seen := map[string]struct{}{}
	var rows []chartRow
	for _, entry := range entries {
		if _, ok := seen[entry.Service.ServiceID]; ok {
			continue
		}
		seen[entry.Service.ServiceID] = struct{}{}
		label := entry.Service.Title
		if label == "" {
			label = entry.Service.ServiceID
		}
		rows = append(rows, chartRow{
			Label:     label,
			Tutorials: entry.Content.TutorialsCounter,
			UseCases:  entry.Content.UseCasesCounter,
			Videos:    entry.Content.VideosCounter,
		})
	}
	return rows
}

func (c *ContentChart) render(rows []chartRow) (string, error) {
	labels := make([]string, len(rows))
	tutorials := make([]opts.BarData, len(rows))
	useCases := make([]opts.BarData, len(rows))
	videos := make([]opts.BarData, len(rows))
	for i, row := range rows {
		labels[i] = row.Label
		tutorials[i] = opts.BarData{Name: row.Label, Value: row.Tutorials}
		useCases[i] = opts.BarData{Name: row.Label, Value: row.UseCases}
		videos[i] = opts.BarData{Name: row.Label, Value: row.Videos}
	}

	initOpts := opts.Initialization{
		Theme:  c.theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if c.assetsHost != "" {
		initOpts.AssetsHost = c.assetsHost
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Getting started", Subtitle: "Educational content per service"}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).
		AddSeries("Tutorials", tutorials).
		AddSeries("Use Cases", useCases).
		AddSeries("Videos", videos)
	return renderChart(bar)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
