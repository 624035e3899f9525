package server

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/jmylchreest/dbscanvas/internal/colour"
)

// handleChart renders a bar chart of a cached palette, one bar per
// swatch coloured with the swatch itself. The min_percentage query
// parameter re-filters the cached summaries, so one cached run can be
// viewed at several thresholds.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	entry, ok, err := s.store.Get(key)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		s.writeJSONError(w, http.StatusNotFound, "unknown palette key: "+key)
		return
	}

	minPercentage, err := floatParam(r, "min_percentage", 0)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	swatches, err := colour.Rank(entry.Summaries, entry.TotalPoints, minPercentage)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	labels := make([]string, 0, len(swatches))
	bars := make([]opts.BarData, 0, len(swatches))
	for _, swatch := range swatches {
		labels = append(labels, swatch.Hex())
		style := &opts.ItemStyle{Color: swatch.Hex()}
		if colour.IsLight(swatch.RGB) {
			// Near-white bars vanish against the page; give them an edge.
			style.BorderColor = "#cccccc"
		}
		bars = append(bars, opts.BarData{
			Name:      swatch.Hex(),
			Value:     swatch.Count,
			ItemStyle: style,
		})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "dbscanvas palette",
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Dominant colours",
			Subtitle: fmt.Sprintf("key=%s points=%d clusters=%d", key, entry.TotalPoints, len(entry.Summaries)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "samples"}),
	)
	bar.SetXAxis(labels).
		AddSeries("clusters", bars,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
