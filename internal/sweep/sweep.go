// Package sweep repeats full traces across a wavelength range and collects
// the per-detector spectral response.
package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/optiray/optiray/internal/model"
	"github.com/optiray/optiray/internal/physics"
	"github.com/optiray/optiray/internal/trace"
)

// Config describes one spectral sweep. Wavelengths are nanometers.
type Config struct {
	StartNm float64
	StopNm  float64
	Points  int
	// Workers bounds the parallel traces; <= 0 means GOMAXPROCS.
	Workers int
}

// Samples returns the wavelengths to trace: a single point samples the
// midpoint of the range, two or more are linearly spaced including both
// endpoints.
func Samples(startNm, stopNm float64, points int) []float64 {
	if points <= 0 {
		return nil
	}
	if points == 1 {
		return []float64{(startNm + stopNm) / 2}
	}
	out := make([]float64, points)
	step := (stopNm - startNm) / float64(points-1)
	for i := range out {
		out[i] = startNm + float64(i)*step
	}
	// Pin the last sample to the exact endpoint.
	out[points-1] = stopNm
	return out
}

// Validate checks a sweep configuration and returns every problem found.
func Validate(cfg model.SweepConfig) []string {
	var issues []string
	if cfg.Points < 1 {
		issues = append(issues, fmt.Sprintf("sweep points must be at least 1, got %d", cfg.Points))
	}
	if cfg.StartFreq <= 0 || cfg.StopFreq <= 0 {
		issues = append(issues, "sweep wavelengths must be positive")
	}
	if cfg.StartFreq > cfg.StopFreq {
		issues = append(issues, fmt.Sprintf("sweep start %.1fnm exceeds stop %.1fnm", cfg.StartFreq, cfg.StopFreq))
	}
	return issues
}

// Run traces every sampled wavelength independently and returns the entries
// in wavelength order. Samples share nothing mutable, so they are chunked
// across a bounded set of workers.
func Run(ctx context.Context, tracer *trace.Tracer, cfg Config) ([]model.SweepEntry, []string, error) {
	samples := Samples(cfg.StartNm, cfg.StopNm, cfg.Points)
	entries := make([]model.SweepEntry, len(samples))
	sampleWarnings := make([][]string, len(samples))

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(samples) {
		workers = len(samples)
	}
	if workers < 1 {
		workers = 1
	}

	chunk := (len(samples) + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > len(samples) {
			end = len(samples)
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if ctx.Err() != nil {
					return
				}
				result := tracer.Trace(samples[i])
				entries[i] = entry(samples[i], result)
				sampleWarnings[i] = result.Warnings
			}
		}(start, end)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var warnings []string
	for i, ws := range sampleWarnings {
		for _, w := range ws {
			warnings = append(warnings, fmt.Sprintf("sweep %.1fnm: %s", samples[i], w))
		}
	}
	return entries, warnings, nil
}

func entry(wavelengthNm float64, result *trace.Result) model.SweepEntry {
	total := 0.0
	for _, v := range result.DetectorReadings {
		total += v
	}
	return model.SweepEntry{
		WavelengthNm:         wavelengthNm,
		FrequencyTHz:         physics.WavelengthToFrequencyTHz(wavelengthNm),
		PerDetectorIntensity: result.DetectorReadings,
		TotalIntensity:       total,
	}
}
