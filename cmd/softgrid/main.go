package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/softgrid/internal/analysis"
	"github.com/san-kum/softgrid/internal/config"
	"github.com/san-kum/softgrid/internal/export"
	"github.com/san-kum/softgrid/internal/metrics"
	"github.com/san-kum/softgrid/internal/sim"
	"github.com/san-kum/softgrid/internal/softbody"
	"github.com/san-kum/softgrid/internal/storage"
	"github.com/san-kum/softgrid/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	width     float64
	height    float64
	rows      int
	cols      int
	stiffness float64
	damping   float64

	dt          float64
	duration    float64
	maxElapsed  float64
	sampleEvery int

	pushMag  float64
	pushAxis string
	pushFor  float64

	plotNode int
	plotAxis string

	svgFrame int
	outFile  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "softgrid",
		Short: "mass-spring softbody simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live view with the reference cloth.
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".softgrid", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "preset configuration")

	addSheetFlags := func(cmd *cobra.Command) {
		cmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "sheet width")
		cmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "sheet height")
		cmd.Flags().IntVar(&rows, "rows", config.DefaultRows, "row count")
		cmd.Flags().IntVar(&cols, "cols", config.DefaultCols, "column count")
		cmd.Flags().Float64Var(&stiffness, "stiffness", config.DefaultStiffness, "spring coefficient")
		cmd.Flags().Float64Var(&damping, "damping", config.DefaultDamping, "damping coefficient")
		cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "physics timestep")
		cmd.Flags().Float64Var(&maxElapsed, "max-elapsed", config.DefaultMaxElapsed, "per-tick elapsed time clamp")
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and save the result",
		RunE:  runSimulation,
	}
	addSheetFlags(runCmd)
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", 5, "record every n-th step")
	runCmd.Flags().Float64Var(&pushMag, "push", 0, "external force magnitude on the bottom row")
	runCmd.Flags().StringVar(&pushAxis, "push-axis", "x", "external force axis (x or y)")
	runCmd.Flags().Float64Var(&pushFor, "push-for", 1.0, "how long the push lasts")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive live view",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(cfg)
		},
	}
	addSheetFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot one node's trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotNode, "node", 0, "node index (row-major)")
	plotCmd.Flags().StringVar(&plotAxis, "axis", "x", "axis to plot (x, y or z)")

	exportCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "displacement statistics for a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&plotNode, "node", 0, "node index for per-node stats")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				cfg := config.GetPreset(p)
				fmt.Printf("  %-8s %dx%d  k=%.1f c=%.1f\n",
					p, cfg.Sheet.Rows, cfg.Sheet.Cols, cfg.Sheet.Stiffness, cfg.Sheet.Damping)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure physics steps per second",
		RunE:  benchGrid,
	}
	addSheetFlags(benchCmd)

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render one stored frame to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  svgRun,
	}
	svgCmd.Flags().IntVar(&svgFrame, "frame", -1, "frame index (-1 for last)")
	svgCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, analyzeCmd, presetsCmd, benchCmd, svgCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers preset, config file and changed CLI flags, in that
// order of increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	apply := func(name string, fn func()) {
		if cmd.Flags().Changed(name) {
			fn()
		}
	}
	apply("width", func() { cfg.Sheet.Width = width })
	apply("height", func() { cfg.Sheet.Height = height })
	apply("rows", func() { cfg.Sheet.Rows = rows })
	apply("cols", func() { cfg.Sheet.Cols = cols })
	apply("stiffness", func() { cfg.Sheet.Stiffness = stiffness })
	apply("damping", func() { cfg.Sheet.Damping = damping })
	apply("dt", func() { cfg.Sim.Dt = dt })
	apply("max-elapsed", func() { cfg.Sim.MaxElapsed = maxElapsed })
	apply("time", func() { cfg.Sim.Duration = duration })
	apply("sample-every", func() { cfg.Sim.SampleEvery = sampleEvery })

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildSimulator(cfg *config.Config, source sim.ForceSource) (*sim.Simulator, error) {
	grid, err := softbody.NewGrid(
		cfg.Sheet.Width, cfg.Sheet.Height,
		cfg.Sheet.Rows, cfg.Sheet.Cols,
		cfg.Sheet.Stiffness, cfg.Sheet.Damping,
	)
	if err != nil {
		return nil, err
	}
	driver, err := sim.NewDriver(cfg.Sim.Dt, cfg.Sim.MaxElapsed)
	if err != nil {
		return nil, err
	}
	return sim.New(grid, driver, source), nil
}

// pushSource holds a constant force on the bottom row for the first pushFor
// seconds of simulated time, then releases.
func pushSource() (sim.ForceSource, error) {
	if pushMag == 0 {
		return sim.Zero, nil
	}

	var force softbody.Vec3
	switch pushAxis {
	case "x":
		force = softbody.Vec3{X: pushMag}
	case "y":
		force = softbody.Vec3{Y: pushMag}
	default:
		return nil, fmt.Errorf("unknown push axis: %s", pushAxis)
	}

	limit := pushFor
	return sim.ForceFunc(func(t float64) softbody.Vec3 {
		if t < limit {
			return force
		}
		return softbody.Vec3{}
	}), nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	source, err := pushSource()
	if err != nil {
		return err
	}

	simulator, err := buildSimulator(cfg, source)
	if err != nil {
		return err
	}
	simulator.AddMetric(metrics.NewEnergyDrift())
	simulator.AddMetric(metrics.NewStability(10.0))
	simulator.AddMetric(metrics.NewDisplacement())

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	name := preset
	if name == "" {
		name = "cloth"
	}

	fmt.Printf("running %s (%dx%d) for %.1fs...\n", name, cfg.Sheet.Rows, cfg.Sheet.Cols, cfg.Sim.Duration)
	start := time.Now()

	result, err := simulator.Run(context.Background(), sim.Config{
		Dt:          cfg.Sim.Dt,
		Duration:    cfg.Sim.Duration,
		SampleEvery: cfg.Sim.SampleEvery,
	})
	if err != nil {
		return err
	}

	runID, err := st.Save(storage.RunMetadata{
		Name:      name,
		Dt:        cfg.Sim.Dt,
		Duration:  cfg.Sim.Duration,
		Rows:      cfg.Sheet.Rows,
		Cols:      cfg.Sheet.Cols,
		Stiffness: cfg.Sheet.Stiffness,
		Damping:   cfg.Sheet.Damping,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tGRID\tDURATION\tDT\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Rows, run.Cols,
			run.Duration,
			run.Dt,
			run.Steps,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, _, times, err := st.LoadPositions(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if plotNode < 0 || plotNode >= len(frames[0]) {
		return fmt.Errorf("node %d out of range [0,%d)", plotNode, len(frames[0]))
	}

	data := make([]float64, len(frames))
	for i := range frames {
		p := frames[i][plotNode]
		switch plotAxis {
		case "x":
			data[i] = p.X
		case "y":
			data[i] = p.Y
		case "z":
			data[i] = p.Z
		default:
			return fmt.Errorf("unknown axis: %s", plotAxis)
		}
	}

	fmt.Printf("run: %s (%dx%d)\n", meta.ID, meta.Rows, meta.Cols)
	fmt.Printf("samples: %d over %.2fs\n\n", len(frames), times[len(times)-1])
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("node %d, %s vs time", plotNode, plotAxis)),
	))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if outFile != "" {
		if err := st.ExportJSONFile(outFile, args[0]); err != nil {
			return err
		}
		fmt.Printf("exported to %s\n", outFile)
		return nil
	}
	return st.ExportJSON(os.Stdout, args[0])
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, _, times, err := st.LoadPositions(args[0])
	if err != nil {
		return err
	}

	runStats, err := analysis.SummarizeRun(frames)
	if err != nil {
		return err
	}
	fmt.Println("worst node displacement per frame:")
	fmt.Printf("  mean: %.6f  stddev: %.6f  max: %.6f\n", runStats.Mean, runStats.StdDev, runStats.Max)

	nodeStats, err := analysis.SummarizeNode(frames, plotNode)
	if err != nil {
		return err
	}
	fmt.Printf("\nnode %d displacement:\n", plotNode)
	for _, a := range []struct {
		name  string
		stats analysis.AxisStats
	}{{"x", nodeStats.X}, {"y", nodeStats.Y}, {"z", nodeStats.Z}, {"dist", nodeStats.Dist}} {
		fmt.Printf("  %-4s mean: %9.6f  stddev: %9.6f  max: %9.6f\n",
			a.name, a.stats.Mean, a.stats.StdDev, a.stats.Max)
	}

	if settled, ok := analysis.SettleTime(frames, times, 1e-3); ok {
		fmt.Printf("\nsettled at t=%.2fs\n", settled)
	} else {
		fmt.Println("\nrun never settled")
	}
	return nil
}

func svgRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, _, _, err := st.LoadPositions(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no frames in run")
	}

	idx := svgFrame
	if idx < 0 {
		idx = len(frames) - 1
	}
	if idx >= len(frames) {
		return fmt.Errorf("frame %d out of range [0,%d)", idx, len(frames))
	}

	svg := export.LatticeSVG(frames[idx], meta.Rows, meta.Cols, 400)
	if svg == "" {
		return fmt.Errorf("run metadata does not match frame size")
	}

	if outFile != "" {
		if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
		return nil
	}
	fmt.Println(svg)
	return nil
}

func benchGrid(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	simulator, err := buildSimulator(cfg, sim.Zero)
	if err != nil {
		return err
	}

	const steps = 10000
	start := time.Now()
	for i := 0; i < steps; i++ {
		simulator.Step(cfg.Sim.Dt)
	}
	elapsed := time.Since(start)

	fmt.Printf("grid: %dx%d (%d nodes)\n", cfg.Sheet.Rows, cfg.Sheet.Cols, cfg.Sheet.Rows*cfg.Sheet.Cols)
	fmt.Printf("%d steps in %v (%.0f steps/s)\n", steps, elapsed, float64(steps)/elapsed.Seconds())
	return nil
}
