// Package viz renders optical layouts and spectral responses in the
// terminal: a braille canvas for the bench geometry, asciigraph plots for
// sweep curves, and a bubbletea model for watching a sweep live.
package viz

import "strings"

// Braille patterns pack 2x4 dots per character cell, unicode offset 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille drawing surface with a world-coordinate viewport.
// World positions (bench coordinates, y growing downward) are projected
// into the sub-pixel grid, which is (Width*2) x (Height*4).
type Canvas struct {
	Width, Height          int
	Grid                   [][]rune
	minX, minY, maxX, maxY float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		minX:   0, minY: 0, maxX: 1, maxY: 1,
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// SetViewport fixes the world rectangle that maps onto the canvas. A
// degenerate rectangle is widened so projection never divides by zero.
func (c *Canvas) SetViewport(minX, minY, maxX, maxY float64) {
	if maxX-minX < 1e-9 {
		maxX = minX + 1
	}
	if maxY-minY < 1e-9 {
		maxY = minY + 1
	}
	c.minX, c.minY, c.maxX, c.maxY = minX, minY, maxX, maxY
}

func (c *Canvas) project(x, y float64) (int, int) {
	px := (x - c.minX) / (c.maxX - c.minX) * float64(c.Width*2-1)
	py := (y - c.minY) / (c.maxY - c.minY) * float64(c.Height*4-1)
	return int(px), int(py)
}

// Set lights one sub-pixel given in grid coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Plot lights the sub-pixel under a world position.
func (c *Canvas) Plot(x, y float64) {
	px, py := c.project(x, y)
	c.Set(px, py)
}

// Line draws a world-space segment with Bresenham stepping.
func (c *Canvas) Line(x0, y0, x1, y1 float64) {
	ax, ay := c.project(x0, y0)
	bx, by := c.project(x1, y1)
	c.drawLine(ax, ay, bx, by)
}

func (c *Canvas) drawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Marker draws a small filled square around a world position.
func (c *Canvas) Marker(x, y float64, radius int) {
	px, py := c.project(x, y)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			c.Set(px+dx, py+dy)
		}
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
