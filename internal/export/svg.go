// Package export renders simulation output to portable formats.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/optiray/optiray/internal/graph"
	"github.com/optiray/optiray/internal/model"
)

// SetupToSVG draws the components of a setup and the traced ray paths on a
// dark canvas. Coordinates come straight from the setup; the viewBox is
// fitted around them with a margin.
func SetupToSVG(g *graph.Graph, rays []model.RayRecord, width, height int) string {
	minX, minY, maxX, maxY := bounds(g, rays)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="%.1f %.1f %.1f %.1f">
<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#0a0a0a"/>
`, width, height, minX, minY, maxX-minX, maxY-minY, minX, minY, maxX-minX, maxY-minY))

	for _, ray := range rays {
		if len(ray.Path) < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" stroke-opacity="%.2f" d="M`,
			WavelengthColor(ray.WavelengthNm), 0.3+0.7*clamp01(ray.Intensity)))
		for i, p := range ray.Path {
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	for _, c := range g.Components() {
		drawComponent(&sb, c)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func drawComponent(sb *strings.Builder, c *graph.Component) {
	x, y := c.Position.X, c.Position.Y
	label := string(c.ID)

	switch c.Kind {
	case graph.KindSource:
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="8" fill="#ffcc00"/>`+"\n", x, y))
	case graph.KindMirror:
		sb.WriteString(rotatedRect(x, y, 6, 44, c.RotationDeg+45, "#b0c4de"))
	case graph.KindBeamsplitter:
		sb.WriteString(rotatedRect(x, y, 6, 44, c.RotationDeg+45, "#87cefa"))
	case graph.KindLens:
		sb.WriteString(fmt.Sprintf(`<ellipse cx="%.1f" cy="%.1f" rx="6" ry="24" fill="none" stroke="#98fb98" stroke-width="2" transform="rotate(%.1f %.1f %.1f)"/>`+"\n",
			x, y, c.RotationDeg, x, y))
	case graph.KindDetector:
		sb.WriteString(rotatedRect(x, y, 10, 36, c.RotationDeg, "#ff6347"))
	}

	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#888888" font-size="10" text-anchor="middle">%s</text>`+"\n",
		x, y-14, label))
}

func rotatedRect(x, y, w, h, deg float64, fill string) string {
	return fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" transform="rotate(%.1f %.1f %.1f)"/>`+"\n",
		x-w/2, y-h/2, w, h, fill, deg, x, y)
}

func bounds(g *graph.Graph, rays []model.RayRecord) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)

	grow := func(x, y float64) {
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}

	for _, c := range g.Components() {
		grow(c.Position.X, c.Position.Y)
	}
	for _, ray := range rays {
		for _, p := range ray.Path {
			grow(p.X, p.Y)
		}
	}

	if math.IsInf(minX, 1) {
		return 0, 0, 100, 100
	}

	padX := math.Max((maxX-minX)*0.1, 40)
	padY := math.Max((maxY-minY)*0.1, 40)
	return minX - padX, minY - padY, maxX + padX, maxY + padY
}

// WavelengthColor maps a visible wavelength to an approximate display color.
// Out-of-range wavelengths fall back to grey.
func WavelengthColor(nm float64) string {
	var r, g, b float64
	switch {
	case nm >= 380 && nm < 440:
		r, g, b = (440-nm)/60, 0, 1
	case nm >= 440 && nm < 490:
		r, g, b = 0, (nm-440)/50, 1
	case nm >= 490 && nm < 510:
		r, g, b = 0, 1, (510-nm)/20
	case nm >= 510 && nm < 580:
		r, g, b = (nm-510)/70, 1, 0
	case nm >= 580 && nm < 645:
		r, g, b = 1, (645-nm)/65, 0
	case nm >= 645 && nm <= 780:
		r, g, b = 1, 0, 0
	default:
		return "#999999"
	}
	return fmt.Sprintf("#%02x%02x%02x", int(r*255), int(g*255), int(b*255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
