package viz

import (
	"strings"
	"testing"

	"github.com/optiray/optiray/internal/graph"
	"github.com/optiray/optiray/internal/model"
)

func TestCanvasPlotsWithinViewport(t *testing.T) {
	c := NewCanvas(10, 5)
	c.SetViewport(0, 0, 100, 100)

	c.Plot(50, 50)

	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r > 0x2800 {
				lit++
			}
		}
	}
	if lit != 1 {
		t.Errorf("expected exactly one lit cell, got %d", lit)
	}
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(10, 5)
	c.SetViewport(0, 0, 100, 100)

	c.Plot(-500, -500)
	c.Plot(5000, 5000)

	empty := strings.Repeat(strings.Repeat("⠀", 10)+"\n", 5)
	if c.String() != empty {
		t.Error("out-of-viewport plots should not light pixels")
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(20, 10)
	c.SetViewport(0, 0, 100, 100)

	c.Line(10, 10, 90, 90)

	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r > 0x2800 {
				lit++
			}
		}
	}
	if lit < 5 {
		t.Errorf("expected a drawn diagonal, got %d lit cells", lit)
	}
}

func TestSpectrumPlot(t *testing.T) {
	entries := []model.SweepEntry{
		{WavelengthNm: 400, FrequencyTHz: 749.5, TotalIntensity: 0.2},
		{WavelengthNm: 550, FrequencyTHz: 545.1, TotalIntensity: 0.9},
		{WavelengthNm: 700, FrequencyTHz: 428.3, TotalIntensity: 0.4},
	}

	out := SpectrumPlot(entries, 40, 8)

	if !strings.Contains(out, "400-700nm") {
		t.Errorf("expected the range caption, got:\n%s", out)
	}
	if !strings.Contains(out, "550.0nm") {
		t.Errorf("expected the peak wavelength, got:\n%s", out)
	}
}

func TestSpectrumPlotEmpty(t *testing.T) {
	out := SpectrumPlot(nil, 40, 8)
	if !strings.Contains(out, "no sweep data") {
		t.Errorf("expected placeholder, got %q", out)
	}
}

func TestRenderLayout(t *testing.T) {
	g, err := graph.Build(&model.OpticalSetup{
		Components: []model.Component{
			{ID: "1", Type: "source", Position: model.Position{X: 100, Y: 300}, Properties: map[string]float64{"wavelength": 550, "power": 1}},
			{ID: "2", Type: "detector", Position: model.Position{X: 400, Y: 300}, Properties: map[string]float64{"sensitivity": 1}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	rays := []model.RayRecord{
		{Path: []model.Position{{X: 130, Y: 300}, {X: 370, Y: 300}}},
	}

	out := RenderLayout(g, rays, 40, 12)

	if !strings.Contains(out, "source") || !strings.Contains(out, "detector") {
		t.Errorf("expected a component legend, got:\n%s", out)
	}
}
