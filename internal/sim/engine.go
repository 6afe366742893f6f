// Package sim is the engine facade: it validates setup documents and runs
// the full simulate pipeline (graph build, base trace, spectral sweep,
// statistics) producing the result document.
package sim

import (
	"context"
	"time"

	"github.com/optiray/optiray/internal/graph"
	"github.com/optiray/optiray/internal/metrics"
	"github.com/optiray/optiray/internal/model"
	"github.com/optiray/optiray/internal/sweep"
	"github.com/optiray/optiray/internal/trace"
)

// Engine holds the tuning shared by every request. It is stateless across
// invocations: each request builds its own graph and rays.
type Engine struct {
	traceCfg trace.Config
	workers  int
}

func New(traceCfg trace.Config, workers int) *Engine {
	return &Engine{traceCfg: traceCfg, workers: workers}
}

func Default() *Engine {
	return New(trace.DefaultConfig(), 0)
}

// Validate checks a setup document without tracing it. All problems are
// reported at once; recommendations are advisory and do not affect validity.
func (e *Engine) Validate(setup *model.OpticalSetup) model.ValidationReport {
	issues := []string{}
	recommendations := []string{}

	g, err := graph.Build(setup)
	if err != nil {
		if verr, ok := err.(*graph.ValidationError); ok {
			issues = append(issues, verr.Strings()...)
		} else {
			issues = append(issues, err.Error())
		}
	}

	issues = append(issues, sweep.Validate(setup.Simulation.SweepConfig)...)

	counts := map[graph.Kind]int{}
	if g != nil {
		counts = g.CountByKind()
	}
	if counts[graph.KindSource] == 0 {
		issues = append(issues, "setup must include at least one light source")
	}
	if counts[graph.KindDetector] == 0 {
		recommendations = append(recommendations, "add a detector to capture readings")
	}
	if len(setup.Connections) == 0 && len(setup.Components) > 1 {
		recommendations = append(recommendations, "components are not connected; rays will terminate immediately")
	}
	if g != nil {
		recommendations = append(recommendations, g.Warnings()...)
	}

	return model.ValidationReport{
		Valid:           len(issues) == 0,
		Issues:          issues,
		Recommendations: recommendations,
		ComponentCount:  len(setup.Components),
	}
}

// Simulate runs the full pipeline. Structural problems reject the request
// with a *graph.ValidationError before any tracing; numeric edge cases
// inside the trace only ever terminate single rays and surface as warnings.
func (e *Engine) Simulate(ctx context.Context, setup *model.OpticalSetup) (*model.SimulationResult, error) {
	g, err := graph.Build(setup)
	if err != nil {
		return nil, err
	}

	// A present-but-broken sweep config rejects the request up front, before
	// any tracing. An absent config (points < 1) only skips the sweep stage.
	sweepCfg := setup.Simulation.SweepConfig
	runSweep := sweepCfg.Points >= 1
	if runSweep {
		if issues := sweep.Validate(sweepCfg); len(issues) > 0 {
			verr := &graph.ValidationError{}
			for _, msg := range issues {
				verr.Issues = append(verr.Issues, graph.Issue{Element: "sweepConfig", Message: msg})
			}
			return nil, verr
		}
	}

	result := &model.SimulationResult{
		Success:        true,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Rays:           []model.RayRecord{},
		FrequencySweep: []model.SweepEntry{},
		Warnings:       []string{},
	}
	result.Warnings = append(result.Warnings, g.Warnings()...)
	result.Statistics.ComponentCount = componentCount(g)

	if len(g.Sources()) == 0 {
		result.Warnings = append(result.Warnings, "no light source present; returning empty result")
		return result, nil
	}

	tracer := trace.New(g, e.traceCfg)

	base := tracer.Trace(0)
	result.Warnings = append(result.Warnings, base.Warnings...)
	for _, ray := range base.Rays {
		result.Rays = append(result.Rays, rayRecord(ray))
	}

	stats, aggWarnings := metrics.Aggregate(base.Rays)
	stats.ComponentCount = result.Statistics.ComponentCount
	result.Statistics = stats
	result.Warnings = append(result.Warnings, aggWarnings...)

	if !runSweep {
		result.Warnings = append(result.Warnings, "sweep configuration missing; spectral sweep skipped")
		return result, nil
	}

	entries, sweepWarnings, err := sweep.Run(ctx, tracer, sweep.Config{
		StartNm: sweepCfg.StartFreq,
		StopNm:  sweepCfg.StopFreq,
		Points:  sweepCfg.Points,
		Workers: e.workers,
	})
	if err != nil {
		return nil, err
	}
	result.FrequencySweep = entries
	result.Warnings = append(result.Warnings, sweepWarnings...)

	return result, nil
}

func componentCount(g *graph.Graph) model.ComponentCount {
	counts := g.CountByKind()
	return model.ComponentCount{
		Sources:       counts[graph.KindSource],
		Mirrors:       counts[graph.KindMirror],
		Beamsplitters: counts[graph.KindBeamsplitter],
		Lenses:        counts[graph.KindLens],
		Detectors:     counts[graph.KindDetector],
	}
}

func rayRecord(ray *trace.Ray) model.RayRecord {
	path := make([]model.Position, len(ray.Path))
	for i, p := range ray.Path {
		path[i] = model.Position{X: p.X, Y: p.Y}
	}
	interactions := ray.Interactions
	if interactions == nil {
		interactions = []string{}
	}
	return model.RayRecord{
		OriginComponentID: ray.Origin,
		WavelengthNm:      ray.WavelengthNm,
		Intensity:         ray.Intensity,
		Path:              path,
		BounceCount:       ray.BounceCount,
		Terminated:        ray.Terminated,
		TerminationReason: string(ray.Reason),
		Interactions:      interactions,
	}
}
