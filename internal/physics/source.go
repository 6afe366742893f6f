package physics

import (
	"math"

	"github.com/optiray/optiray/internal/geometry"
	"github.com/optiray/optiray/internal/graph"
)

// Emission describes one ray leaving a source.
type Emission struct {
	Direction    geometry.Vec2
	Intensity    float64
	WavelengthNm float64
}

// SourceEmissions builds the initial rays of a source: the primary beam
// along the rotated local +x axis plus, when the beamAngle property is
// positive, a small symmetric cone of secondary rays. A positive
// wavelengthOverride (used by the spectral sweep) replaces the source's own
// wavelength.
func SourceEmissions(c *graph.Component, wavelengthOverride float64, cfg Config) []Emission {
	power := c.PropOr(1, "power")
	wavelength := c.PropOr(550, "wavelengthNm", "wavelength")
	if wavelengthOverride > 0 {
		wavelength = wavelengthOverride
	}

	primary := geometry.WorldDirection(c.RotationDeg, geometry.Vec2{X: 1})
	emissions := []Emission{{Direction: primary, Intensity: power, WavelengthNm: wavelength}}

	beamAngle := c.PropOr(0, "beamAngle")
	coneRays := cfg.ConeRays
	if beamAngle <= 0 || coneRays <= 0 {
		return emissions
	}

	// Secondary rays alternate symmetrically inside the half-angle cone.
	halfRad := beamAngle / 2 * math.Pi / 180
	pairs := (coneRays + 1) / 2
	for i := 1; i <= pairs; i++ {
		spread := halfRad * float64(i) / float64(pairs)
		emissions = append(emissions, Emission{
			Direction:    primary.Rotate(spread),
			Intensity:    power,
			WavelengthNm: wavelength,
		})
		if len(emissions) <= coneRays {
			emissions = append(emissions, Emission{
				Direction:    primary.Rotate(-spread),
				Intensity:    power,
				WavelengthNm: wavelength,
			})
		}
	}
	return emissions
}
