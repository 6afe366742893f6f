package metrics

import (
	"github.com/optiray/optiray/internal/model"
	"github.com/optiray/optiray/internal/trace"
)

// Aggregate reduces all terminated rays into the result statistics. The
// returned warnings flag anomalies such as a trace where nothing reached a
// detector.
func Aggregate(rays []*trace.Ray) (model.Statistics, []string) {
	pathLength := NewPathLength()
	absorbed := NewAbsorbedIntensity()
	interactions := NewInteractions()

	for _, ray := range rays {
		pathLength.Observe(ray)
		absorbed.Observe(ray)
		interactions.Observe(ray)
	}

	var warnings []string
	if len(rays) > 0 && absorbed.Samples() == 0 {
		warnings = append(warnings, "no rays reached a detector; averageIntensity reported as 0")
	}

	return model.Statistics{
		TotalRays:         len(rays),
		TotalPathLength:   pathLength.Value(),
		AverageIntensity:  absorbed.Value(),
		TotalInteractions: int(interactions.Value()),
	}, warnings
}
