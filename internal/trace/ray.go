// Package trace walks the validated component graph from every source and
// propagates rays through it with a FIFO work queue, bounded by the bounce
// cap and the intensity epsilon.
package trace

import (
	"github.com/optiray/optiray/internal/geometry"
	"github.com/optiray/optiray/internal/model"
	"github.com/optiray/optiray/internal/physics"
)

// Reason records why a ray stopped propagating.
type Reason string

const (
	// ReasonAbsorbed: the ray reached a detector.
	ReasonAbsorbed Reason = "absorbed"
	// ReasonOpenEnd: the ray left an output port with no outgoing connection.
	ReasonOpenEnd Reason = "openEnd"
	// ReasonMaxBounces: the bounce cap fired, guarding cyclic graphs.
	ReasonMaxBounces Reason = "maxBounces"
	// ReasonAttenuated: intensity fell below the epsilon.
	ReasonAttenuated Reason = "attenuated"
	// ReasonDegenerate: a numeric edge case on this single ray.
	ReasonDegenerate Reason = "degenerate"
)

// Ray is the ephemeral propagation state of one beam. Rays are owned by a
// single trace invocation and never shared across traces.
type Ray struct {
	Origin       model.ID
	WavelengthNm float64
	Intensity    float64
	Path         []geometry.Vec2
	BounceCount  int
	Terminated   bool
	Reason       Reason
	Interactions []string

	direction geometry.Vec2
}

// Direction is the current world-space propagation direction.
func (r *Ray) Direction() geometry.Vec2 { return r.direction }

// clone copies the ray so a fan-out branch can evolve independently.
func (r *Ray) clone() *Ray {
	c := *r
	c.Path = make([]geometry.Vec2, len(r.Path))
	copy(c.Path, r.Path)
	c.Interactions = make([]string, len(r.Interactions))
	copy(c.Interactions, r.Interactions)
	return &c
}

func (r *Ray) appendPoint(p geometry.Vec2) {
	if n := len(r.Path); n > 0 && r.Path[n-1].Sub(p).IsZero() {
		return
	}
	r.Path = append(r.Path, p)
}

func (r *Ray) terminate(reason Reason) {
	r.Terminated = true
	r.Reason = reason
}

// Config bounds one trace invocation.
type Config struct {
	// MaxBounces caps the interaction count per ray lineage.
	MaxBounces int
	// IntensityEpsilon terminates rays too faint to matter.
	IntensityEpsilon float64
	// Physics tunes the interaction model.
	Physics physics.Config
}

func DefaultConfig() Config {
	return Config{
		MaxBounces:       50,
		IntensityEpsilon: 1e-4,
		Physics:          physics.DefaultConfig(),
	}
}

// Result is the output of one trace: every terminated ray, the detector
// readings keyed by component id, and any per-ray warnings.
type Result struct {
	Rays             []*Ray
	DetectorReadings map[string]float64
	Warnings         []string
}
