package config

// Presets are named engine tunings selectable from the CLI.
var Presets = map[string]EngineConfig{
	"default": {
		MaxBounces:          DefaultMaxBounces,
		IntensityEpsilon:    DefaultIntensityEps,
		LensTransmission:    DefaultLensTransmission,
		RenormalizeSplitter: true,
		ConeRays:            DefaultConeRays,
	},
	// fast trades tail accuracy for speed: rays are culled earlier.
	"fast": {
		MaxBounces:          20,
		IntensityEpsilon:    1e-3,
		LensTransmission:    DefaultLensTransmission,
		RenormalizeSplitter: true,
		ConeRays:            0,
	},
	// precise follows faint rays much further, useful for cavity setups.
	"precise": {
		MaxBounces:          200,
		IntensityEpsilon:    1e-8,
		LensTransmission:    DefaultLensTransmission,
		RenormalizeSplitter: true,
		ConeRays:            4,
	},
}

func GetPreset(name string) (EngineConfig, bool) {
	preset, ok := Presets[name]
	return preset, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
