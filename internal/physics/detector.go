package physics

import "github.com/optiray/optiray/internal/graph"

// detectorInteract is terminal: no continuations. The tracer records the
// reading and marks the ray absorbed.
func detectorInteract(c *graph.Component, in Incoming) (Result, error) {
	entry, err := entryPoint(c)
	if err != nil {
		return Result{}, err
	}
	return Result{Entry: entry}, nil
}

// DetectorReading is the intensity registered by a detector for an absorbed
// ray.
func DetectorReading(c *graph.Component, intensity float64) float64 {
	return intensity * c.PropOr(1, "sensitivity")
}
