package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/optiray/optiray/internal/physics"
	"github.com/optiray/optiray/internal/trace"
)

const (
	DefaultAddr             = ":8000"
	DefaultCORSOrigin       = "*"
	DefaultMaxBounces       = 50
	DefaultIntensityEps     = 1e-4
	DefaultLensTransmission = 0.96
	DefaultConeRays         = 2
	DefaultStoreDir         = "runs"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Engine EngineConfig `yaml:"engine"`
	Store  StoreConfig  `yaml:"store"`
}

type ServerConfig struct {
	Addr       string `yaml:"addr"`
	CORSOrigin string `yaml:"cors_origin"`
}

type EngineConfig struct {
	MaxBounces          int     `yaml:"max_bounces"`
	IntensityEpsilon    float64 `yaml:"intensity_epsilon"`
	LensTransmission    float64 `yaml:"lens_transmission"`
	RenormalizeSplitter bool    `yaml:"renormalize_splitter"`
	ConeRays            int     `yaml:"cone_rays"`
	Workers             int     `yaml:"workers"`
}

type StoreConfig struct {
	Dir string `yaml:"dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:       DefaultAddr,
			CORSOrigin: DefaultCORSOrigin,
		},
		Engine: EngineConfig{
			MaxBounces:          DefaultMaxBounces,
			IntensityEpsilon:    DefaultIntensityEps,
			LensTransmission:    DefaultLensTransmission,
			RenormalizeSplitter: true,
			ConeRays:            DefaultConeRays,
		},
		Store: StoreConfig{
			Dir: DefaultStoreDir,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// TraceConfig translates the engine section into tracer tuning.
func (e EngineConfig) TraceConfig() trace.Config {
	return trace.Config{
		MaxBounces:       e.MaxBounces,
		IntensityEpsilon: e.IntensityEpsilon,
		Physics: physics.Config{
			RenormalizeSplitter: e.RenormalizeSplitter,
			LensTransmission:    e.LensTransmission,
			ConeRays:            e.ConeRays,
		},
	}
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
