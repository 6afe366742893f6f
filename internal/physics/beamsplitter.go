package physics

import (
	"github.com/optiray/optiray/internal/geometry"
	"github.com/optiray/optiray/internal/graph"
)

func splitterInteract(c *graph.Component, in Incoming, cfg Config) (Result, error) {
	entry, err := entryPoint(c)
	if err != nil {
		return Result{}, err
	}

	r := c.PropOr(0.5, "reflectivity")
	t := c.PropOr(0.5, "transmissivity")
	if sum := r + t; sum > 1 {
		if cfg.RenormalizeSplitter {
			r /= sum
			t /= sum
		} else {
			// Policy disabled: cap the transmitted branch so the pair still
			// conserves intensity.
			t = 1 - r
		}
	}

	dir := in.Direction.Normalize()
	normal := geometry.WorldDirection(c.RotationDeg, plateNormal)
	reflected := dir.Reflect(normal)
	if reflected.IsZero() || !reflected.IsValid() {
		return Result{}, ErrDegenerate
	}

	return Result{
		Entry: entry,
		Specs: []Outgoing{
			{
				ExitPort:        "reflect",
				Direction:       reflected.Normalize(),
				IntensityFactor: r,
				WavelengthNm:    in.WavelengthNm,
				Label:           "Beamsplitter reflection",
			},
			{
				ExitPort:        "transmit",
				Direction:       dir,
				IntensityFactor: t,
				WavelengthNm:    in.WavelengthNm,
				Label:           "Beamsplitter transmission",
			},
		},
	}, nil
}
