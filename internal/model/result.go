package model

// RayRecord is the serialized form of one completed ray.
type RayRecord struct {
	OriginComponentID ID         `json:"originComponentId"`
	WavelengthNm      float64    `json:"wavelengthNm"`
	Intensity         float64    `json:"intensity"`
	Path              []Position `json:"path"`
	BounceCount       int        `json:"bounceCount"`
	Terminated        bool       `json:"terminated"`
	TerminationReason string     `json:"terminationReason"`
	Interactions      []string   `json:"interactions"`
}

// SweepEntry holds the per-detector readings for one sampled wavelength.
type SweepEntry struct {
	WavelengthNm         float64            `json:"wavelengthNm"`
	FrequencyTHz         float64            `json:"frequencyTHz"`
	PerDetectorIntensity map[string]float64 `json:"perDetectorIntensity"`
	TotalIntensity       float64            `json:"totalIntensity"`
}

type ComponentCount struct {
	Sources       int `json:"sources"`
	Mirrors       int `json:"mirrors"`
	Beamsplitters int `json:"beamsplitters"`
	Lenses        int `json:"lenses"`
	Detectors     int `json:"detectors"`
}

type Statistics struct {
	TotalRays         int            `json:"totalRays"`
	TotalPathLength   float64        `json:"totalPathLength"`
	AverageIntensity  float64        `json:"averageIntensity"`
	TotalInteractions int            `json:"totalInteractions"`
	ComponentCount    ComponentCount `json:"componentCount"`
}

type SimulationResult struct {
	Success        bool         `json:"success"`
	Timestamp      string       `json:"timestamp"`
	Rays           []RayRecord  `json:"rays"`
	FrequencySweep []SweepEntry `json:"frequencySweep"`
	Statistics     Statistics   `json:"statistics"`
	Warnings       []string     `json:"warnings"`
}

// ValidationReport is the response of the validate boundary operation.
type ValidationReport struct {
	Valid           bool     `json:"valid"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
	ComponentCount  int      `json:"componentCount"`
}
