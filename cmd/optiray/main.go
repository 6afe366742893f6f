package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/optiray/optiray/internal/config"
	"github.com/optiray/optiray/internal/export"
	"github.com/optiray/optiray/internal/graph"
	"github.com/optiray/optiray/internal/handlers"
	"github.com/optiray/optiray/internal/middleware"
	"github.com/optiray/optiray/internal/model"
	"github.com/optiray/optiray/internal/sim"
	"github.com/optiray/optiray/internal/storage"
	"github.com/optiray/optiray/internal/trace"
	"github.com/optiray/optiray/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	addr       string
	corsOrigin string
	workers    int
	svgOut     string
	svgWidth   int
	svgHeight  int
	points     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "optiray",
		Short: "2D optical bench simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".optiray", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "engine preset")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "sweep workers (0 = all cores)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the simulation HTTP API",
		RunE:  serveAPI,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address")
	serveCmd.Flags().StringVar(&corsOrigin, "origin", "", "allowed CORS origin")

	runCmd := &cobra.Command{
		Use:   "run [setup.json]",
		Short: "simulate a setup and store the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runSetup,
	}

	validateCmd := &cobra.Command{
		Use:   "validate [setup.json]",
		Short: "check a setup without tracing it",
		Args:  cobra.ExactArgs(1),
		RunE:  validateSetup,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the spectral response of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live [setup.json]",
		Short: "watch a spectral sweep build up in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&points, "points", 0, "override sweep point count")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [setup.json]",
		Short: "simulate a setup and render it to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "setup.svg", "output file")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 600, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list engine presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(serveCmd, runCmd, validateCmd, listCmd, plotCmd, liveCmd, exportSVGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the file, preset, and flag layers in that order.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" {
		engine, ok := config.GetPreset(preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Engine = engine
	}
	if workers > 0 {
		cfg.Engine.Workers = workers
	}
	return cfg, nil
}

func newEngine(cfg *config.Config) *sim.Engine {
	return sim.New(cfg.Engine.TraceConfig(), cfg.Engine.Workers)
}

func loadSetup(path string) (*model.OpticalSetup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return model.ParseSetup(data)
}

func serveAPI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if corsOrigin != "" {
		cfg.Server.CORSOrigin = corsOrigin
	}

	api := handlers.New(newEngine(cfg))
	handler := middleware.Cors(cfg.Server.CORSOrigin)(api.Router())

	log.Printf("listening on %s", cfg.Server.Addr)
	return http.ListenAndServe(cfg.Server.Addr, handler)
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setup, err := loadSetup(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Println("tracing...")
	start := time.Now()
	result, err := newEngine(cfg).Simulate(context.Background(), setup)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	runID, err := st.Save(name, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n\n", runID)

	g, err := graph.Build(setup)
	if err == nil {
		fmt.Println(viz.RenderLayout(g, result.Rays, 60, 16))
	}
	fmt.Println(viz.SummaryTable(result))
	if len(result.FrequencySweep) > 0 {
		fmt.Println(viz.SpectrumPlot(result.FrequencySweep, 70, 10))
	}
	return nil
}

func validateSetup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setup, err := loadSetup(args[0])
	if err != nil {
		return err
	}

	report := newEngine(cfg).Validate(setup)

	if report.Valid {
		fmt.Printf("valid (%d components)\n", report.ComponentCount)
	} else {
		fmt.Printf("invalid (%d components)\n", report.ComponentCount)
		for _, issue := range report.Issues {
			fmt.Printf("  issue: %s\n", issue)
		}
	}
	for _, rec := range report.Recommendations {
		fmt.Printf("  hint: %s\n", rec)
	}
	if !report.Valid {
		return fmt.Errorf("%d validation issues", len(report.Issues))
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tRAYS\tSWEEP\tWARNINGS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.TotalRays,
			run.SweepPoints,
			run.Warnings,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	if len(result.FrequencySweep) == 0 {
		return fmt.Errorf("run has no sweep data")
	}

	fmt.Println(viz.SpectrumPlot(result.FrequencySweep, 80, 14))
	fmt.Println(viz.SummaryTable(result))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setup, err := loadSetup(args[0])
	if err != nil {
		return err
	}

	g, err := graph.Build(setup)
	if err != nil {
		return err
	}

	sweepCfg := setup.Simulation.SweepConfig
	if points > 0 {
		sweepCfg.Points = points
	}
	if sweepCfg.Points < 1 {
		return fmt.Errorf("setup has no sweep configuration; pass --points")
	}

	tracer := trace.New(g, cfg.Engine.TraceConfig())
	m := viz.NewLiveModel(tracer, sweepCfg.StartFreq, sweepCfg.StopFreq, sweepCfg.Points)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setup, err := loadSetup(args[0])
	if err != nil {
		return err
	}

	g, err := graph.Build(setup)
	if err != nil {
		return err
	}

	result, err := newEngine(cfg).Simulate(context.Background(), setup)
	if err != nil {
		return err
	}

	svg := export.SetupToSVG(g, result.Rays, svgWidth, svgHeight)
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%d rays)\n", svgOut, len(result.Rays))
	return nil
}
