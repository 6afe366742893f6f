package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/optiray/optiray/internal/graph"
	"github.com/optiray/optiray/internal/model"
)

func simpleSourceSetup() *model.OpticalSetup {
	return &model.OpticalSetup{
		Version: "1.0",
		Components: []model.Component{
			{
				ID: "1", Type: "source",
				Position:   model.Position{X: 100, Y: 300},
				Properties: map[string]float64{"wavelength": 550, "power": 1.0},
			},
		},
		Simulation: model.Simulation{
			SweepConfig: model.SweepConfig{StartFreq: 500, StopFreq: 600, Points: 5},
		},
	}
}

func completeSetup() *model.OpticalSetup {
	return &model.OpticalSetup{
		Version: "1.0",
		Components: []model.Component{
			{
				ID: "1", Type: "source",
				Position:   model.Position{X: 100, Y: 300},
				Properties: map[string]float64{"wavelength": 550, "power": 1.0},
			},
			{
				ID: "2", Type: "lens",
				Position:   model.Position{X: 250, Y: 300},
				Properties: map[string]float64{"focalLength": 100},
			},
			{
				ID: "3", Type: "mirror",
				Position:   model.Position{X: 400, Y: 300},
				Properties: map[string]float64{"reflectivity": 0.95},
			},
			{
				ID: "4", Type: "detector",
				Position: model.Position{X: 400, Y: 150},
				Rotation: 90,
				Properties: map[string]float64{
					"sensitivity": 1.0,
				},
			},
		},
		Connections: []model.Connection{
			{ID: "c1", From: model.PortRef{ComponentID: "1", Port: "out"}, To: model.PortRef{ComponentID: "2", Port: "in"}},
			{ID: "c2", From: model.PortRef{ComponentID: "2", Port: "out"}, To: model.PortRef{ComponentID: "3", Port: "in"}},
			{ID: "c3", From: model.PortRef{ComponentID: "3", Port: "out"}, To: model.PortRef{ComponentID: "4", Port: "in"}},
		},
		Simulation: model.Simulation{
			SweepConfig: model.SweepConfig{StartFreq: 400, StopFreq: 700, Points: 10},
		},
	}
}

func TestSimulateSimpleSource(t *testing.T) {
	result, err := Default().Simulate(context.Background(), simpleSourceSetup())
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	if !result.Success {
		t.Error("expected success")
	}
	if len(result.Rays) != 1 {
		t.Fatalf("expected one ray, got %d", len(result.Rays))
	}
	if result.Rays[0].TerminationReason != "openEnd" {
		t.Errorf("expected openEnd, got %s", result.Rays[0].TerminationReason)
	}
	if len(result.FrequencySweep) != 5 {
		t.Errorf("expected 5 sweep entries, got %d", len(result.FrequencySweep))
	}
	if result.Statistics.ComponentCount.Sources != 1 {
		t.Errorf("expected one source in componentCount, got %d", result.Statistics.ComponentCount.Sources)
	}
}

func TestSimulateCompleteSetup(t *testing.T) {
	result, err := Default().Simulate(context.Background(), completeSetup())
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	if result.Statistics.TotalInteractions == 0 {
		t.Error("expected interactions through the chain")
	}
	if result.Statistics.TotalRays != len(result.Rays) {
		t.Errorf("statistics totalRays %d must equal ray count %d",
			result.Statistics.TotalRays, len(result.Rays))
	}
	if result.Statistics.TotalPathLength <= 0 {
		t.Error("expected positive total path length")
	}

	cc := result.Statistics.ComponentCount
	if cc.Sources != 1 || cc.Lenses != 1 || cc.Mirrors != 1 || cc.Detectors != 1 {
		t.Errorf("unexpected componentCount %+v", cc)
	}

	// Every ray attenuates through lens and mirror.
	for _, ray := range result.Rays {
		if ray.BounceCount > 0 && ray.Intensity >= 1.0 {
			t.Errorf("interacted ray kept full intensity: %+v", ray)
		}
	}

	found := false
	for _, e := range result.FrequencySweep {
		if e.PerDetectorIntensity["4"] > 0 {
			found = true
		}
	}
	if !found {
		t.Error("expected detector 4 readings in the sweep")
	}
}

func TestSimulateRejectsMalformedSetup(t *testing.T) {
	setup := simpleSourceSetup()
	setup.Connections = []model.Connection{
		{
			ID:   "broken",
			From: model.PortRef{ComponentID: "1", Port: "out"},
			To:   model.PortRef{ComponentID: "404", Port: "in"},
		},
	}

	_, err := Default().Simulate(context.Background(), setup)
	if err == nil {
		t.Fatal("expected a validation error")
	}

	var verr *graph.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *graph.ValidationError, got %T", err)
	}
	if len(verr.Issues) == 0 || verr.Issues[0].Element != "connection broken" {
		t.Errorf("expected the offending connection to be named, got %v", verr.Issues)
	}
}

func TestSimulateRejectsInvertedSweep(t *testing.T) {
	setup := completeSetup()
	setup.Simulation.SweepConfig.StartFreq = 700
	setup.Simulation.SweepConfig.StopFreq = 400

	result, err := Default().Simulate(context.Background(), setup)
	if err == nil {
		t.Fatal("expected a validation error for the inverted sweep range")
	}
	if result != nil {
		t.Errorf("rejected request must not carry a result, got %+v", result)
	}

	var verr *graph.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *graph.ValidationError, got %T", err)
	}
	if len(verr.Issues) == 0 || verr.Issues[0].Element != "sweepConfig" {
		t.Errorf("expected the sweep config to be named, got %v", verr.Issues)
	}
}

func TestSimulateEmptyGraph(t *testing.T) {
	result, err := Default().Simulate(context.Background(), &model.OpticalSetup{
		Simulation: model.Simulation{
			SweepConfig: model.SweepConfig{StartFreq: 400, StopFreq: 700, Points: 5},
		},
	})
	if err != nil {
		t.Fatalf("empty graph must not be an error: %v", err)
	}

	if !result.Success {
		t.Error("empty graph should still produce a valid result")
	}
	if len(result.Rays) != 0 {
		t.Errorf("expected no rays, got %d", len(result.Rays))
	}
	if len(result.Warnings) == 0 {
		t.Error("expected an empty-graph warning")
	}
}

func TestSimulateDeterministic(t *testing.T) {
	a, err := Default().Simulate(context.Background(), completeSetup())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Default().Simulate(context.Background(), completeSetup())
	if err != nil {
		t.Fatal(err)
	}

	if len(a.Rays) != len(b.Rays) || len(a.FrequencySweep) != len(b.FrequencySweep) {
		t.Error("repeated simulation of the same setup should be consistent")
	}
}

func TestValidateHappyPath(t *testing.T) {
	report := Default().Validate(completeSetup())

	if !report.Valid {
		t.Errorf("expected valid setup, issues: %v", report.Issues)
	}
	if report.ComponentCount != 4 {
		t.Errorf("expected componentCount 4, got %d", report.ComponentCount)
	}
}

func TestValidateNoSources(t *testing.T) {
	setup := completeSetup()
	setup.Components = setup.Components[1:]
	setup.Connections = setup.Connections[1:]

	report := Default().Validate(setup)

	if report.Valid {
		t.Error("expected invalid report")
	}
	found := false
	for _, issue := range report.Issues {
		if issue == "setup must include at least one light source" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a light source issue, got %v", report.Issues)
	}
}

func TestValidateInvertedSweep(t *testing.T) {
	setup := simpleSourceSetup()
	setup.Simulation.SweepConfig.StartFreq = 700
	setup.Simulation.SweepConfig.StopFreq = 400

	report := Default().Validate(setup)

	if report.Valid {
		t.Error("expected invalid report for inverted sweep range")
	}
}

func TestValidateRecommendsDetector(t *testing.T) {
	report := Default().Validate(simpleSourceSetup())

	found := false
	for _, rec := range report.Recommendations {
		if rec == "add a detector to capture readings" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected detector recommendation, got %v", report.Recommendations)
	}
}
