package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/orbitsim/internal/analysis"
	"github.com/san-kum/orbitsim/internal/automation"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/experiment"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	debug   bool
	logFile *os.File

	dt          float64
	steps       int
	subSteps    int
	sampleEvery int
	workers     int
	scheme      string
	dimensions  int
	configFile  string
	noSave      bool

	// kepler
	intervals int
	threshold float64
	bodyName  string

	// export
	outPath string

	// sweep / monte carlo
	sweepDts     []float64
	sweepDays    float64
	trials       int
	perturbation float64
	seed         int64
)

// main registers the orbitsim commands and exits with status 1 when the
// selected command fails.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := execute(ctx, newRootCmd()); err != nil {
		stop()
		os.Exit(1)
	}
}

// execute runs cmd and closes the debug log afterwards. Cobra skips
// post-run hooks when a command fails, so this cannot live in one.
func execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		log.Printf("command failed: %v", err)
	}
	closeLogging()
	return err
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "orbitsim",
		Short: "single-host orbital mechanics simulator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logFile = setupLogging(dataDir, debug, cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitsim", "data directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write a debug log under <data>/logs")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a simulation and store its trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run metadata and per-body orbit summary",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's trajectory to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	keplerCmd := &cobra.Command{
		Use:   "kepler [run_id]",
		Short: "check Kepler's second law on a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  keplerCheck,
	}
	keplerCmd.Flags().IntVar(&intervals, "intervals", 10, "number of equal time slices")
	keplerCmd.Flags().Float64Var(&threshold, "threshold", analysis.DefaultCVThreshold, "pass threshold for the coefficient of variation (%)")
	keplerCmd.Flags().StringVar(&bodyName, "body", "", "body to check (default first)")

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [scheme1] [scheme2] ...",
		Short: "compare integration schemes on the same preset",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareSchemes,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	compareCmd.Flags().IntVar(&steps, "steps", 0, "number of steps (default from preset)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	planetsCmd := &cobra.Command{
		Use:   "planets",
		Short: "list predefined planets",
		RunE:  listPlanets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "benchmark stepping throughput",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchPreset,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "rerun a preset over a range of timesteps",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64SliceVar(&sweepDts, "dts", []float64{86400, 21600, 3600, 900}, "timesteps to try (s)")
	sweepCmd.Flags().Float64Var(&sweepDays, "days", 365, "simulated span (days)")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [preset]",
		Short: "perturb initial velocities and count escapes",
		Args:  cobra.ExactArgs(1),
		RunE:  runMonteCarlo,
	}
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturbation, "perturb", 0.05, "largest relative velocity change")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")

	rootCmd.AddCommand(runCmd, listCmd, showCmd, exportCSVCmd, exportJSONCmd, keplerCmd, compareCmd,
		presetsCmd, planetsCmd, benchCmd, batchCmd, sweepCmd, monteCarloCmd)
	return rootCmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().IntVar(&subSteps, "sub-steps", 1, "integrator calls per step")
	cmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "steps between trajectory samples")
	cmd.Flags().IntVar(&workers, "workers", 1, "goroutines stepping bodies within a step")
	cmd.Flags().StringVar(&scheme, "scheme", config.DefaultScheme, "integrator (verlet, euler)")
	cmd.Flags().IntVar(&dimensions, "dims", config.DefaultDimensions, "spatial dimensions (2 or 3)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
}

// resolveConfig starts from the named preset (or the default), replaces it
// with --config when given, then applies flags the user set explicitly.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", args[0], strings.Join(config.ListPresets(), ", "))
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("sub-steps") {
		cfg.SubSteps = subSteps
	}
	if flags.Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("scheme") {
		cfg.Scheme = scheme
	}
	if flags.Changed("dims") {
		cfg.Dimensions = dimensions
	}

	log.Printf("resolved config %q: scheme=%s dt=%g steps=%d sub_steps=%d sample_every=%d bodies=%d",
		cfg.Name, cfg.Scheme, cfg.Dt, cfg.Steps, cfg.SubSteps, cfg.SampleEvery, len(cfg.Bodies))
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}
	exp.GetSimulator().AddObserver(newProgressLogger(cfg.Name, cfg.Steps))

	fmt.Fprintf(out, "running %s (%d bodies, %s)...\n", cfg.Name, len(exp.System().Bodies), cfg.Scheme)
	start := time.Now()

	result, err := exp.Run(cmd.Context())
	if err != nil {
		if result == nil {
			return err
		}
		// keep the partial trajectory so the failure can be inspected
		fmt.Fprintf(out, "%s %v\n", failStyle.Render("stopped:"), err)
	}
	elapsed := time.Since(start)
	log.Printf("run %s finished in %v after %d steps", cfg.Name, elapsed, result.StepsTaken)

	fmt.Fprintf(out, "completed in %v\n", elapsed)
	if !noSave {
		st := storage.New(dataDir)
		runID, saveErr := st.Save(automation.Metadata(cfg, exp.System()), result)
		if saveErr != nil {
			return saveErr
		}
		fmt.Fprintln(out, field("run id", runID))
	}
	fmt.Fprintln(out, field("steps", fmt.Sprint(result.StepsTaken)))
	fmt.Fprintln(out, field("samples", fmt.Sprint(result.Trajectory.Len())))

	printMetrics(out, result.Metrics)
	return err
}

func printMetrics(out io.Writer, metrics map[string]float64) {
	if len(metrics) == 0 {
		return
	}
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(out, "\n"+headerStyle.Render("metrics"))
	for _, name := range names {
		fmt.Fprintf(out, "  %s\n", field(name, fmt.Sprintf("%.6e", metrics[name])))
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tSCHEME\tDT\tSTEPS\tSAMPLES\tBODIES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%gs\t%d\t%d\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Scheme,
			run.Dt,
			run.StepsTaken,
			run.Samples,
			len(run.Bodies),
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *sim.Trajectory, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, err
	}
	if tr.Len() == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, tr, nil
}

func hostPosition(meta *storage.RunMetadata, dim int) []float64 {
	pos := make([]float64, dim)
	copy(pos, meta.HostPosition)
	return pos
}

func showRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(out, titleStyle.Render("run "+meta.ID))
	fmt.Fprintln(out, field("name", meta.Name))
	fmt.Fprintln(out, field("scheme", meta.Scheme))
	fmt.Fprintln(out, field("dt", fmt.Sprintf("%gs", meta.Dt)))
	fmt.Fprintln(out, field("steps", fmt.Sprintf("%d of %d", meta.StepsTaken, meta.Steps)))
	fmt.Fprintln(out, field("host", fmt.Sprintf("%s (%.4g kg)", meta.Host, meta.HostMass)))
	fmt.Fprintln(out, field("span", fmt.Sprintf("%.2f days", (tr.Times[tr.Len()-1]-tr.Times[0])/86400)))

	host := hostPosition(meta, tr.Dim)
	fmt.Fprintln(out, "\n"+headerStyle.Render("bodies"))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tMIN R (m)\tMAX R (m)\tFINAL")
	for i, name := range tr.Names {
		minR, maxR := math.Inf(1), 0.0
		for _, p := range tr.Path(i) {
			r := distance(p, host)
			minR = math.Min(minR, r)
			maxR = math.Max(maxR, r)
		}
		final := tr.Path(i)[tr.Len()-1]
		fmt.Fprintf(w, "%s\t%.4e\t%.4e\t%s\n", name, minR, maxR, formatVector(final))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	printMetrics(out, meta.Metrics)
	return nil
}

func distance(p, q []float64) float64 {
	var sum float64
	for i := range p {
		d := p[i] - q[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.4e", x)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}

	if outPath == "" {
		return storage.WriteCSV(cmd.OutOrStdout(), tr)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := storage.WriteCSV(f, tr); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", outPath)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}

	if outPath == "" {
		return storage.WriteJSON(cmd.OutOrStdout(), *meta, tr)
	}
	if err := storage.ExportJSON(outPath, *meta, tr); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", outPath)
	return nil
}

func keplerCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}

	idx := 0
	if bodyName != "" {
		idx = tr.Index(bodyName)
		if idx < 0 {
			return fmt.Errorf("run %s has no body %q (bodies: %s)", meta.ID, bodyName, strings.Join(tr.Names, ", "))
		}
	}

	areas, err := analysis.SweptAreas(hostPosition(meta, tr.Dim), tr.Path(idx), intervals)
	if err != nil {
		return err
	}
	report := analysis.SecondLaw(areas, threshold)
	log.Printf("kepler %s body %s: mean=%g std=%g cv=%g%%", meta.ID, tr.Names[idx], report.Mean, report.Std, report.CV)

	fmt.Fprintln(out, titleStyle.Render("Kepler's second law: "+tr.Names[idx]))
	fmt.Fprintln(out, subtleStyle.Render(fmt.Sprintf("run %s, %d samples, %d intervals", meta.ID, tr.Len(), intervals)))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTERVAL\tAREA (m^2)\tDEVIATION")
	for i, a := range areas {
		fmt.Fprintf(w, "%d\t%.6e\t%+.4f%%\n", i+1, a, (a-report.Mean)/report.Mean*100)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, field("mean", fmt.Sprintf("%.6e m^2", report.Mean)))
	fmt.Fprintln(out, field("std", fmt.Sprintf("%.6e m^2", report.Std)))
	fmt.Fprintln(out, field("cv", fmt.Sprintf("%.6f%% (threshold %.2f%%)", report.CV, report.Threshold)))
	fmt.Fprintln(out, verdict(report.Pass))
	return nil
}

func compareSchemes(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	base := config.GetPreset(args[0])
	if base == nil {
		return fmt.Errorf("unknown preset: %s", args[0])
	}
	if cmd.Flags().Changed("dt") {
		base.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		base.Steps = steps
	}

	schemes := args[1:]
	if len(schemes) == 0 {
		schemes = experiment.NewRegistry().ListIntegrators()
	}

	registry := experiment.NewRegistry()
	ens := sim.NewEnsemble(0)
	for _, name := range schemes {
		cfg := base.Clone()
		cfg.Name = name
		cfg.Scheme = name

		exp := experiment.New(cfg)
		if err := exp.Setup(registry); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		ens.Add(exp.Job())
	}

	start := time.Now()
	results, err := ens.Run(cmd.Context())
	if err != nil {
		return err
	}
	log.Printf("compared %d schemes in %v", len(schemes), time.Since(start))

	metricNames := registry.ListMetrics()
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%s: dt=%gs, %d steps", args[0], base.Dt, base.Steps)))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCHEME\t%s\n", strings.ToUpper(strings.Join(metricNames, "\t")))
	for i, name := range schemes {
		row := make([]string, len(metricNames))
		for j, m := range metricNames {
			row[j] = fmt.Sprintf("%.4e", results[i].Metrics[m])
		}
		fmt.Fprintf(w, "%s\t%s\n", name, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tDIMS\tSCHEME\tDT\tSTEPS\tBODIES")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		bodies := make([]string, len(p.Bodies))
		for i, b := range p.Bodies {
			bodies[i] = b.Name
			if bodies[i] == "" {
				bodies[i] = b.Planet
			}
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%gs\t%d\t%s\n", name, p.Dimensions, p.Scheme, p.Dt, p.Steps, strings.Join(bodies, ","))
	}
	return w.Flush()
}

func listPlanets(cmd *cobra.Command, args []string) error {
	gm := physics.G * config.DefaultHostMass

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLANET\tMASS (kg)\tPERIHELION (m)\tSPEED (m/s)\tPERIOD (days)")
	host := dynamo.NewBody(config.DefaultHostName, config.DefaultHostMass, dynamo.Vector{0, 0}, dynamo.Vector{0, 0})
	for _, p := range config.Planets {
		el := analysis.ElementsOf(gm, host, dynamo.NewBody(p.Name, p.Mass, p.Position, p.Velocity))
		fmt.Fprintf(w, "%s\t%.4e\t%.4e\t%.0f\t%.1f\n", p.Name, p.Mass, p.Position[0], p.Velocity[1], el.Period/86400)
	}
	return w.Flush()
}

func benchPreset(cmd *cobra.Command, args []string) error {
	name := "inner"
	if len(args) > 0 {
		name = args[0]
	}
	base := config.GetPreset(name)
	if base == nil {
		return fmt.Errorf("unknown preset: %s", name)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking %s\n\n", name)

	registry := experiment.NewRegistry()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCHEME\tSTEPS\tSUB\tTIME\tSTEPS/SEC")

	for _, s := range registry.ListIntegrators() {
		for _, sub := range []int{1, 4} {
			cfg := base.Clone()
			cfg.Scheme = s
			cfg.SubSteps = sub
			cfg.SampleEvery = cfg.Steps

			exp := experiment.New(cfg)
			if err := exp.Setup(registry); err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run(cmd.Context())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\n",
				s, result.StepsTaken, sub, elapsed, float64(result.StepsTaken)/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if sc.Name != "" {
		fmt.Fprintln(out, titleStyle.Render(sc.Name))
	}
	if sc.Description != "" {
		fmt.Fprintln(out, subtleStyle.Render(sc.Description))
	}

	st := storage.New(dataDir)
	results, err := automation.RunScenario(cmd.Context(), sc, experiment.NewRegistry(), st, out)
	for _, r := range results {
		line := fmt.Sprintf("  %s: %d samples", r.Name, r.Result.Trajectory.Len())
		if r.RunID != "" {
			line += " -> " + r.RunID
		}
		fmt.Fprintln(out, line)
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	base := config.GetPreset(args[0])
	if base == nil {
		return fmt.Errorf("unknown preset: %s", args[0])
	}

	out := cmd.OutOrStdout()
	sweep := &automation.StepSweep{Base: base, Duration: sweepDays * 86400, Dts: sweepDts}
	results, err := automation.RunSweep(cmd.Context(), sweep, experiment.NewRegistry(), io.Discard)
	if err != nil {
		return err
	}

	metricNames := experiment.NewRegistry().ListMetrics()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "DT\tSTEPS\t%s\n", strings.ToUpper(strings.Join(metricNames, "\t")))
	for _, r := range results {
		row := make([]string, len(metricNames))
		for j, m := range metricNames {
			row[j] = fmt.Sprintf("%.4e", r.Metrics[m])
		}
		fmt.Fprintf(w, "%gs\t%d\t%s\n", r.Dt, r.Steps, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	base := config.GetPreset(args[0])
	if base == nil {
		return fmt.Errorf("unknown preset: %s", args[0])
	}

	out := cmd.OutOrStdout()
	mc := &automation.MonteCarloConfig{Base: base, Perturbation: perturbation, NumTrials: trials, Seed: seed}
	results, err := automation.RunMonteCarlo(cmd.Context(), mc, experiment.NewRegistry(), out)
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Fprintln(out, field("stable", fmt.Sprint(stable)))
	fmt.Fprintln(out, field("escaped", fmt.Sprint(unstable)))
	return nil
}
