package physics

import (
	"math"

	"github.com/optiray/optiray/internal/geometry"
	"github.com/optiray/optiray/internal/graph"
)

// plateNormal is the surface normal of the 45-degree fold plate used by
// mirrors and beam splitters, in the component's local frame. It faces the
// input port so that a ray arriving along +x leaves through the exit port
// on the local -y side.
var plateNormal = geometry.Vec2{X: -math.Sqrt2 / 2, Y: -math.Sqrt2 / 2}

// curvatureAperture is the schematic beam half-width (canvas units) used to
// turn a radius of curvature into a focusing deflection angle.
const curvatureAperture = 5.0

func mirrorInteract(c *graph.Component, in Incoming) (Result, error) {
	entry, err := entryPoint(c)
	if err != nil {
		return Result{}, err
	}

	normal := geometry.WorldDirection(c.RotationDeg, plateNormal)
	dir := in.Direction.Normalize()
	cosTheta := math.Abs(dir.Dot(normal))

	reflected := dir.Reflect(normal)

	// A curved mirror focuses (R > 0) or defocuses (R < 0) the beam; zero
	// radius means flat.
	if radius := c.PropOr(0, "radiusOfCurvature"); radius != 0 {
		reflected = reflected.Rotate(math.Atan(curvatureAperture / radius))
	}
	if reflected.IsZero() || !reflected.IsValid() {
		return Result{}, ErrDegenerate
	}

	reflectivity := c.PropOr(1, "reflectivity")
	factor := reflectivity * angleLossFactor(cosTheta)

	return Result{
		Entry: entry,
		Specs: []Outgoing{{
			ExitPort:        "out",
			Direction:       reflected.Normalize(),
			IntensityFactor: factor,
			WavelengthNm:    in.WavelengthNm,
			Label:           "Mirror reflection",
		}},
	}, nil
}
