package trace

import (
	"errors"
	"fmt"

	"github.com/optiray/optiray/internal/graph"
	"github.com/optiray/optiray/internal/physics"
)

// Tracer propagates rays through one immutable graph. It holds no state
// between Trace calls and is safe to share across goroutines.
type Tracer struct {
	g   *graph.Graph
	cfg Config
}

func New(g *graph.Graph, cfg Config) *Tracer {
	if cfg.MaxBounces <= 0 {
		cfg.MaxBounces = DefaultConfig().MaxBounces
	}
	if cfg.IntensityEpsilon <= 0 {
		cfg.IntensityEpsilon = DefaultConfig().IntensityEpsilon
	}
	return &Tracer{g: g, cfg: cfg}
}

// workItem is a ray parked at an output port whose connections are still to
// be followed.
type workItem struct {
	ray  *Ray
	comp *graph.Component
	port string
}

// Trace seeds rays from every source and walks the connection graph
// breadth-first until every ray has terminated. A positive
// wavelengthOverride replaces each source's configured wavelength (used by
// the spectral sweep).
func (t *Tracer) Trace(wavelengthOverride float64) *Result {
	result := &Result{
		DetectorReadings: make(map[string]float64),
	}

	var queue []workItem
	for _, src := range t.g.Sources() {
		origin, ok := src.PortWorld("out")
		if !ok {
			continue
		}
		for _, emission := range physics.SourceEmissions(src, wavelengthOverride, t.cfg.Physics) {
			ray := &Ray{
				Origin:       src.ID,
				WavelengthNm: emission.WavelengthNm,
				Intensity:    emission.Intensity,
				direction:    emission.Direction,
			}
			ray.appendPoint(origin)
			// The epsilon applies to seeded rays too: a source weaker than
			// the floor attenuates before it can reach anything.
			if ray.Intensity < t.cfg.IntensityEpsilon {
				ray.terminate(ReasonAttenuated)
				result.Rays = append(result.Rays, ray)
				continue
			}
			queue = append(queue, workItem{ray: ray, comp: src, port: "out"})
		}
	}

	// FIFO keeps path accumulation deterministic and bounds memory by the
	// bounce cap rather than recursion depth.
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		conns := t.g.Outgoing(item.comp.ID, item.port)
		if len(conns) == 0 {
			item.ray.terminate(ReasonOpenEnd)
			result.Rays = append(result.Rays, item.ray)
			continue
		}

		// Fan-out: clone every extra branch before the first one mutates.
		branches := make([]*Ray, len(conns))
		branches[0] = item.ray
		for i := 1; i < len(conns); i++ {
			branches[i] = item.ray.clone()
		}
		for i, conn := range conns {
			queue = append(queue, t.propagate(branches[i], conn, result)...)
		}
	}

	return result
}

// propagate carries a ray across one connection into the destination
// component, applies its interaction law, and returns the work items for
// the continuations. Terminated rays are folded into the result.
func (t *Tracer) propagate(ray *Ray, conn *graph.Connection, result *Result) []workItem {
	dest, ok := t.g.Component(conn.To)
	if !ok {
		// Unreachable after validation.
		ray.terminate(ReasonDegenerate)
		result.Rays = append(result.Rays, ray)
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("connection %s points at a missing component", conn.ID))
		return nil
	}

	if ray.BounceCount+1 > t.cfg.MaxBounces {
		ray.terminate(ReasonMaxBounces)
		result.Rays = append(result.Rays, ray)
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("ray from %s: bounce cap reached at component %s", ray.Origin, dest.ID))
		return nil
	}

	last := ray.Path[len(ray.Path)-1]
	res, err := physics.Interact(dest, physics.Incoming{
		Origin:       last,
		Direction:    ray.direction,
		Intensity:    ray.Intensity,
		WavelengthNm: ray.WavelengthNm,
	}, t.cfg.Physics)
	if err != nil {
		ray.terminate(ReasonDegenerate)
		result.Rays = append(result.Rays, ray)
		if errors.Is(err, physics.ErrDegenerate) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("ray from %s: degenerate geometry at component %s", ray.Origin, dest.ID))
		} else {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("ray from %s at component %s: %v", ray.Origin, dest.ID, err))
		}
		return nil
	}

	ray.appendPoint(res.Entry)
	ray.BounceCount++

	if dest.Kind == graph.KindDetector {
		result.DetectorReadings[dest.ID.String()] += physics.DetectorReading(dest, ray.Intensity)
		ray.Interactions = append(ray.Interactions, "Detector absorption")
		ray.terminate(ReasonAbsorbed)
		result.Rays = append(result.Rays, ray)
		return nil
	}

	var items []workItem
	branches := make([]*Ray, len(res.Specs))
	for i := range res.Specs {
		if i == 0 {
			branches[i] = ray
		} else {
			branches[i] = ray.clone()
		}
	}
	for i, spec := range res.Specs {
		branch := branches[i]
		branch.Intensity *= spec.IntensityFactor
		branch.WavelengthNm = spec.WavelengthNm
		branch.direction = spec.Direction
		branch.Interactions = append(branch.Interactions, spec.Label)

		if exit, ok := dest.PortWorld(spec.ExitPort); ok {
			branch.appendPoint(exit)
		}

		if branch.Intensity < t.cfg.IntensityEpsilon {
			branch.terminate(ReasonAttenuated)
			result.Rays = append(result.Rays, branch)
			continue
		}
		items = append(items, workItem{ray: branch, comp: dest, port: spec.ExitPort})
	}
	return items
}
