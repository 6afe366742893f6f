package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/optiray/optiray/internal/graph"
	"github.com/optiray/optiray/internal/model"
)

// RenderLayout draws the bench and the traced ray paths as a braille canvas
// with a legend of the components below it.
func RenderLayout(g *graph.Graph, rays []model.RayRecord, width, height int) string {
	canvas := NewCanvas(width, height)
	canvas.SetViewport(layoutBounds(g, rays))

	for _, ray := range rays {
		for i := 1; i < len(ray.Path); i++ {
			canvas.Line(ray.Path[i-1].X, ray.Path[i-1].Y, ray.Path[i].X, ray.Path[i].Y)
		}
	}
	for _, c := range g.Components() {
		canvas.Marker(c.Position.X, c.Position.Y, 2)
	}

	var b strings.Builder
	b.WriteString(canvasStyle.Render(canvas.String()))
	b.WriteString("\n")
	for _, c := range g.Components() {
		detail := fmt.Sprintf("%s at (%.0f, %.0f)", c.ID, c.Position.X, c.Position.Y)
		b.WriteString("  " + labelStyle.Render(string(c.Kind)) + valueStyle.Render(detail) + "\n")
	}
	return b.String()
}

func layoutBounds(g *graph.Graph, rays []model.RayRecord) (minX, minY, maxX, maxY float64) {
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
		return 0, 0, 1, 1
	}

	padX := math.Max((maxX-minX)*0.1, 20)
	padY := math.Max((maxY-minY)*0.1, 20)
	return minX - padX, minY - padY, maxX + padX, maxY + padY
}
