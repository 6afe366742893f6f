package sweep_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/optiray/optiray/internal/graph"
	"github.com/optiray/optiray/internal/model"
	"github.com/optiray/optiray/internal/sweep"
	"github.com/optiray/optiray/internal/trace"
)

func chainSetup() *model.OpticalSetup {
	return &model.OpticalSetup{
		Components: []model.Component{
			{
				ID: "1", Type: "source",
				Position:   model.Position{X: 100, Y: 300},
				Properties: map[string]float64{"wavelength": 550, "power": 1.0},
			},
			{
				ID: "2", Type: "detector",
				Position:   model.Position{X: 400, Y: 300},
				Properties: map[string]float64{"sensitivity": 1.0},
			},
		},
		Connections: []model.Connection{
			{
				ID:   "c1",
				From: model.PortRef{ComponentID: "1", Port: "out"},
				To:   model.PortRef{ComponentID: "2", Port: "in"},
			},
		},
	}
}

var _ = Describe("Samples", func() {
	It("samples the midpoint for a single point", func() {
		Expect(sweep.Samples(400, 700, 1)).To(Equal([]float64{550}))
	})

	It("includes both endpoints for two or more points", func() {
		samples := sweep.Samples(400, 700, 4)
		Expect(samples).To(HaveLen(4))
		Expect(samples[0]).To(Equal(400.0))
		Expect(samples[3]).To(Equal(700.0))
	})

	It("spaces samples evenly", func() {
		samples := sweep.Samples(500, 600, 5)
		for i := 1; i < len(samples); i++ {
			Expect(samples[i] - samples[i-1]).To(BeNumerically("~", 25, 1e-9))
		}
	})

	It("returns nothing for a non-positive point count", func() {
		Expect(sweep.Samples(400, 700, 0)).To(BeEmpty())
	})
})

var _ = Describe("Validate", func() {
	It("accepts a sane configuration", func() {
		Expect(sweep.Validate(model.SweepConfig{StartFreq: 400, StopFreq: 700, Points: 10})).To(BeEmpty())
	})

	It("rejects an inverted range", func() {
		issues := sweep.Validate(model.SweepConfig{StartFreq: 700, StopFreq: 400, Points: 10})
		Expect(issues).To(HaveLen(1))
		Expect(issues[0]).To(ContainSubstring("sweep start"))
	})

	It("collects every problem at once", func() {
		issues := sweep.Validate(model.SweepConfig{StartFreq: -1, StopFreq: -2, Points: 0})
		Expect(len(issues)).To(BeNumerically(">=", 2))
	})
})

var _ = Describe("Run", func() {
	var tracer *trace.Tracer

	BeforeEach(func() {
		g, err := graph.Build(chainSetup())
		Expect(err).NotTo(HaveOccurred())
		tracer = trace.New(g, trace.DefaultConfig())
	})

	It("produces one entry per sample in wavelength order", func() {
		entries, warnings, err := sweep.Run(context.Background(), tracer, sweep.Config{
			StartNm: 400, StopNm: 700, Points: 10,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(warnings).To(BeEmpty())
		Expect(entries).To(HaveLen(10))
		Expect(entries[0].WavelengthNm).To(Equal(400.0))
		Expect(entries[9].WavelengthNm).To(Equal(700.0))
		for i := 1; i < len(entries); i++ {
			Expect(entries[i].WavelengthNm).To(BeNumerically(">", entries[i-1].WavelengthNm))
		}
	})

	It("records detector readings per wavelength", func() {
		entries, _, err := sweep.Run(context.Background(), tracer, sweep.Config{
			StartNm: 500, StopNm: 600, Points: 3,
		})
		Expect(err).NotTo(HaveOccurred())
		for _, e := range entries {
			Expect(e.PerDetectorIntensity).To(HaveKey("2"))
			Expect(e.TotalIntensity).To(BeNumerically(">", 0))
			Expect(e.FrequencyTHz).To(BeNumerically(">", 0))
		}
	})

	It("reports decreasing frequency as wavelength grows", func() {
		entries, _, err := sweep.Run(context.Background(), tracer, sweep.Config{
			StartNm: 500, StopNm: 600, Points: 5,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(entries[0].FrequencyTHz).To(BeNumerically(">", entries[4].FrequencyTHz))
	})

	It("runs samples on a bounded worker pool", func() {
		entries, _, err := sweep.Run(context.Background(), tracer, sweep.Config{
			StartNm: 400, StopNm: 700, Points: 50, Workers: 4,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(50))
	})

	It("stops on a canceled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := sweep.Run(ctx, tracer, sweep.Config{StartNm: 400, StopNm: 700, Points: 10})
		Expect(err).To(MatchError(context.Canceled))
	})
})
