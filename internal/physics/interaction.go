package physics

import (
	"errors"
	"fmt"

	"github.com/optiray/optiray/internal/geometry"
	"github.com/optiray/optiray/internal/graph"
)

// Domain errors for interaction evaluation.
var (
	// ErrDegenerate indicates geometry that cannot produce a continuation,
	// such as a zero-length direction or a ray parallel to a lens plane.
	// The tracer terminates the single affected ray and keeps going.
	ErrDegenerate = errors.New("physics: degenerate ray geometry")

	// ErrNotInteractive indicates a component kind that rays cannot hit.
	ErrNotInteractive = errors.New("physics: component is not an interaction target")
)

// Config tunes the interaction model. Zero values are replaced by
// DefaultConfig in the engine.
type Config struct {
	// RenormalizeSplitter scales a beam splitter's branches proportionally
	// when reflectivity+transmissivity exceeds one.
	RenormalizeSplitter bool
	// LensTransmission is the fixed intensity factor applied by a lens pass.
	LensTransmission float64
	// ConeRays is the number of secondary rays a source emits when its
	// beamAngle property is positive.
	ConeRays int
}

func DefaultConfig() Config {
	return Config{
		RenormalizeSplitter: true,
		LensTransmission:    0.96,
		ConeRays:            2,
	}
}

// Incoming describes a ray arriving at a component, in world space.
type Incoming struct {
	Origin       geometry.Vec2 // last recorded path point
	Direction    geometry.Vec2 // unit propagation direction
	Intensity    float64
	WavelengthNm float64
}

// Outgoing is one continuation produced by an interaction.
type Outgoing struct {
	ExitPort        string
	Direction       geometry.Vec2
	IntensityFactor float64
	WavelengthNm    float64
	Label           string // human-readable interaction note
}

// Result bundles the continuations of one interaction together with the
// world-space point where the ray met the component.
type Result struct {
	Entry geometry.Vec2
	Specs []Outgoing
}

// Interact applies the component's physical law to an incoming ray. The
// switch over kinds is closed: adding a kind must extend it explicitly.
func Interact(c *graph.Component, in Incoming, cfg Config) (Result, error) {
	if in.Direction.IsZero() || !in.Direction.IsValid() || !in.Origin.IsValid() {
		return Result{}, ErrDegenerate
	}

	switch c.Kind {
	case graph.KindSource:
		return Result{}, fmt.Errorf("%w: source %s", ErrNotInteractive, c.ID)
	case graph.KindMirror:
		return mirrorInteract(c, in)
	case graph.KindBeamsplitter:
		return splitterInteract(c, in, cfg)
	case graph.KindLens:
		return lensInteract(c, in, cfg)
	case graph.KindDetector:
		return detectorInteract(c, in)
	default:
		// Unreachable after validation; kept for exhaustiveness.
		return Result{}, fmt.Errorf("physics: unhandled kind %q", c.Kind)
	}
}

// entryPoint resolves where the ray meets the component: the world position
// of its input port.
func entryPoint(c *graph.Component) (geometry.Vec2, error) {
	p, ok := c.PortWorld("in")
	if !ok {
		return geometry.Vec2{}, fmt.Errorf("physics: %s has no input port", c.Kind)
	}
	return p, nil
}
