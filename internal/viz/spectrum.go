package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/optiray/optiray/internal/model"
)

// SpectrumPlot charts total detected intensity across the swept wavelengths.
func SpectrumPlot(entries []model.SweepEntry, width, height int) string {
	if len(entries) == 0 {
		return warnStyle.Render("no sweep data")
	}

	values := make([]float64, len(entries))
	for i, e := range entries {
		values[i] = e.TotalIntensity
	}

	caption := fmt.Sprintf("detected intensity, %.0f-%.0fnm",
		entries[0].WavelengthNm, entries[len(entries)-1].WavelengthNm)
	chart := asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)

	var b strings.Builder
	b.WriteString(graphStyle.Render(chart))
	b.WriteString("\n")

	peak := entries[0]
	for _, e := range entries {
		if e.TotalIntensity > peak.TotalIntensity {
			peak = e
		}
	}
	b.WriteString(labelStyle.Render("Peak") +
		valueStyle.Render(fmt.Sprintf("%.4f at %.1fnm (%.1f THz)", peak.TotalIntensity, peak.WavelengthNm, peak.FrequencyTHz)) + "\n")

	return b.String()
}

// SummaryTable formats the headline statistics of a run.
func SummaryTable(result *model.SimulationResult) string {
	var b strings.Builder
	stats := result.Statistics

	b.WriteString(labelStyle.Render("Rays") + valueStyle.Render(fmt.Sprintf("%d", stats.TotalRays)) + "\n")
	b.WriteString(labelStyle.Render("Interactions") + valueStyle.Render(fmt.Sprintf("%d", stats.TotalInteractions)) + "\n")
	b.WriteString(labelStyle.Render("Path length") + valueStyle.Render(fmt.Sprintf("%.1f", stats.TotalPathLength)) + "\n")
	b.WriteString(labelStyle.Render("Avg intensity") + valueStyle.Render(fmt.Sprintf("%.4f", stats.AverageIntensity)) + "\n")

	for _, w := range result.Warnings {
		b.WriteString(warnStyle.Render("! "+w) + "\n")
	}
	return b.String()
}
