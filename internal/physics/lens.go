package physics

import (
	"math"

	"github.com/optiray/optiray/internal/geometry"
	"github.com/optiray/optiray/internal/graph"
)

func lensInteract(c *graph.Component, in Incoming, cfg Config) (Result, error) {
	dir := in.Direction.Normalize()

	// The lens plane is the local y axis through the component center.
	plane := geometry.WorldDirection(c.RotationDeg, geometry.Vec2{Y: 1})

	t, offAxis, ok := intersectLine(in.Origin, dir, c.Position, plane)
	if !ok || t < 0 {
		// Parallel to the plane, or the plane lies behind the ray.
		return Result{}, ErrDegenerate
	}
	entry := in.Origin.Add(dir.Scale(t))

	focal, _ := c.Prop("focalLength")
	// Thin lens: deflection toward the axis, linear in the off-axis
	// distance, inverted focal length. atan keeps it bounded for short
	// focal lengths.
	deflection := -math.Atan(offAxis / focal)

	out := dir.Rotate(deflection)
	if out.IsZero() || !out.IsValid() {
		return Result{}, ErrDegenerate
	}

	transmission := cfg.LensTransmission
	if transmission <= 0 || transmission > 1 {
		transmission = DefaultConfig().LensTransmission
	}

	return Result{
		Entry: entry,
		Specs: []Outgoing{{
			ExitPort:        "out",
			Direction:       out.Normalize(),
			IntensityFactor: transmission,
			WavelengthNm:    in.WavelengthNm,
			Label:           "Lens refraction",
		}},
	}, nil
}
