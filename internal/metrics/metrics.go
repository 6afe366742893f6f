// Package metrics reduces the rays of a completed trace into the summary
// statistics of the result document.
package metrics

import (
	"github.com/optiray/optiray/internal/geometry"
	"github.com/optiray/optiray/internal/trace"
)

// Metric observes terminated rays and reduces them to a single value.
type Metric interface {
	Name() string
	Observe(ray *trace.Ray)
	Value() float64
	Reset()
}

// PathLength accumulates the Euclidean length of every ray path.
type PathLength struct {
	total float64
}

func NewPathLength() *PathLength { return &PathLength{} }

func (m *PathLength) Name() string { return "total_path_length" }

func (m *PathLength) Observe(ray *trace.Ray) {
	m.total += geometry.PathLength(ray.Path)
}

func (m *PathLength) Value() float64 { return m.total }
func (m *PathLength) Reset()         { m.total = 0 }

// AbsorbedIntensity averages the final intensity of detector hits.
type AbsorbedIntensity struct {
	total   float64
	samples int
}

func NewAbsorbedIntensity() *AbsorbedIntensity { return &AbsorbedIntensity{} }

func (m *AbsorbedIntensity) Name() string { return "average_absorbed_intensity" }

func (m *AbsorbedIntensity) Observe(ray *trace.Ray) {
	if ray.Reason != trace.ReasonAbsorbed {
		return
	}
	m.total += ray.Intensity
	m.samples++
}

func (m *AbsorbedIntensity) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *AbsorbedIntensity) Samples() int { return m.samples }

func (m *AbsorbedIntensity) Reset() {
	m.total = 0
	m.samples = 0
}

// Interactions sums bounce counts across all rays.
type Interactions struct {
	total int
}

func NewInteractions() *Interactions { return &Interactions{} }

func (m *Interactions) Name() string { return "total_interactions" }

func (m *Interactions) Observe(ray *trace.Ray) {
	m.total += ray.BounceCount
}

func (m *Interactions) Value() float64 { return float64(m.total) }
func (m *Interactions) Reset()         { m.total = 0 }
