package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/viz"
)

var (
	heading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	warning = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// resolveScenario loads name as a YAML file if one exists, otherwise as a
// preset.
func resolveScenario(name string) (*config.Scenario, error) {
	if _, err := os.Stat(name); err == nil {
		return config.Load(name)
	}
	return config.GetPreset(name)
}

func loadScenario(cmd *cobra.Command, args []string) (*config.Scenario, error) {
	var (
		sc  *config.Scenario
		err error
	)
	if len(args) > 0 {
		sc, err = config.Load(args[0])
	} else {
		sc, err = config.GetPreset(preset)
	}
	if err != nil {
		return nil, err
	}

	applyOverrides(cmd.Flags().Changed, sc)
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("scenario loaded", "name", sc.Name, "bodies", len(sc.Bodies), "method", sc.Method, "dt", sc.Dt)
	return sc, nil
}

// applyOverrides copies every flag the user set onto sc; flags left at
// their defaults keep the scenario's values.
func applyOverrides(changed func(string) bool, sc *config.Scenario) {
	if changed("dt") {
		sc.Dt = dt
	}
	if changed("steps") {
		sc.Steps = steps
	}
	if changed("sample") {
		sc.SampleEvery = sample
	}
	if changed("method") {
		sc.Method = method
	}
	if changed("ordering") {
		sc.Ordering = ordering
	}
	if changed("soften") {
		sc.Soften = soften
	}
	if changed("g") {
		sc.G = gConst
		sc.Units = config.Units{}
	}
	if changed("workers") {
		sc.Workers = workers
	}
	sc.Normalise()
}

func runMetadata(sc *config.Scenario, s *sim.Simulation) storage.RunMetadata {
	bodies := make([]storage.BodyInfo, 0, s.BodyCount())
	for i, b := range s.Bodies() {
		info := storage.BodyInfo{
			ID:     b.ID(),
			Mass:   b.Mass(),
			Radius: b.Radius(),
			Color:  physics.HexColor(b.Color()),
			Static: b.Static(),
		}
		if i < len(sc.Bodies) {
			info.Name = sc.Bodies[i].Name
		}
		bodies = append(bodies, info)
	}
	return storage.RunMetadata{
		Scenario:    sc.Name,
		G:           s.G(),
		Dt:          sc.Dt,
		Steps:       sc.Steps,
		SampleEvery: sc.SampleEvery,
		Method:      s.Method().String(),
		Ordering:    s.Ordering().String(),
		Soften:      s.Soften(),
		Bodies:      bodies,
	}
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	s, err := sc.Build()
	if err != nil {
		return err
	}
	for _, m := range metrics.Standard(s) {
		s.AddMetric(m)
	}

	every := max(sc.Steps/10, 1)
	s.AddObserver(sim.ObserverFunc(func(s *sim.Simulation) {
		if s.Steps()%every == 0 {
			logger.Debug("progress", "step", s.Steps(), "time", s.Time(), "energy", s.Energy())
		}
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s (%d bodies, %s, dt=%g)...\n", sc.Name, s.BodyCount(), s.Method(), s.Dt())
	start := time.Now()

	result, err := s.Run(ctx, sc.RunConfig())
	interrupted := errors.Is(err, context.Canceled)
	if err != nil {
		if !interrupted || result == nil {
			return err
		}
		logger.Warn("interrupted, saving partial run", "steps", result.StepsTaken)
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	runID, err := st.Save(runMetadata(sc, s), result)
	if err != nil {
		return err
	}
	logger.Debug("run saved", "id", runID, "dir", filepath.Join(dataDir, runID))

	status := "completed in "
	if interrupted {
		status = "interrupted after "
	}
	fmt.Println(heading.Render(status + elapsed.Round(time.Millisecond).String()))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d of %d (%d samples)\n", result.StepsTaken, sc.Steps, len(result.Frames))
	fmt.Printf("energy drift: %.3e\n", result.EnergyDrift)
	for _, e := range result.Errors {
		fmt.Println(warning.Render("warning: " + e.Error()))
	}

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%.6g\n", name, result.Metrics[name])
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !cmd.Flags().Changed("preset") {
		return viz.RunInteractive()
	}

	sc, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	s, err := sc.Build()
	if err != nil {
		return err
	}
	return viz.Run(s, sc.Name)
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tBODIES\tSTEPS\tDT\tMETHOD\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%g\t%s\t%.2e\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Bodies),
			run.StepsTaken,
			run.Dt,
			run.Method,
			run.EnergyDrift,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 || len(frames[0].Bodies) == 0 {
		return fmt.Errorf("no data to plot")
	}

	idx := len(frames[0].Bodies) - 1
	if plotBody >= 0 {
		idx = -1
		for i, b := range frames[0].Bodies {
			if b.ID == plotBody {
				idx = i
			}
		}
		if idx < 0 {
			return fmt.Errorf("run %s has no body %d", runID, plotBody)
		}
	}
	bodyID := frames[0].Bodies[idx].ID

	fmt.Println(heading.Render("run: " + meta.ID))
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("method: %s, dt: %g\n", meta.Method, meta.Dt)
	fmt.Printf("samples: %d\n\n", len(frames))

	energy := make([]float64, len(frames))
	xs := make([]float64, len(frames))
	ys := make([]float64, len(frames))
	for i, fr := range frames {
		energy[i] = fr.Energy
		xs[i] = fr.Bodies[idx].Position.X
		ys[i] = fr.Bodies[idx].Position.Y
	}

	series := []struct {
		data    []float64
		caption string
	}{
		{energy, "total energy"},
		{xs, fmt.Sprintf("body %d x", bodyID)},
		{ys, fmt.Sprintf("body %d y", bodyID)},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportCSV(args[0], os.Stdout)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(args[0], os.Stdout)
}

func compareMethods(cmd *cobra.Command, args []string) error {
	base, err := resolveScenario(args[0])
	if err != nil {
		return err
	}
	applyOverrides(cmd.Flags().Changed, base)

	methods := integrators.Methods()
	if len(args) > 1 {
		methods = methods[:0:0]
		for _, name := range args[1:] {
			m, err := integrators.ParseMethod(name)
			if err != nil {
				return err
			}
			methods = append(methods, m)
		}
	}

	sims := make([]*sim.Simulation, len(methods))
	for i, m := range methods {
		sc := base.Clone()
		sc.Method = m.String()
		s, err := sc.Build()
		if err != nil {
			return err
		}
		s.AddMetric(metrics.NewEnergyDrift())
		s.AddMetric(metrics.NewAngularMomentumDrift())
		sims[i] = s
	}

	fmt.Printf("comparing methods for %s (dt=%g, steps=%d, %s)\n\n", base.Name, base.Dt, base.Steps, base.Ordering)

	start := time.Now()
	results, err := sim.RunAll(context.Background(), sims, base.RunConfig())
	if err != nil {
		return err
	}
	logger.Debug("compare finished", "elapsed", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "method\tfinal drift\tmax drift\tang. mom. drift\tstatus\t")
	for i, m := range methods {
		r := results[i]
		status := "ok"
		if len(r.Errors) > 0 {
			status = "diverged"
		}
		fmt.Fprintf(w, "%s\t%.3e\t%.3e\t%.3e\t%s\t\n",
			m, r.EnergyDrift, r.Metrics["energy_drift"], r.Metrics["angular_momentum_drift"], status)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tSTEPS\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		sc := config.Presets[name]
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", name, len(sc.Bodies), sc.Steps, sc.Description)
	}
	return w.Flush()
}

func initScenario(cmd *cobra.Command, args []string) error {
	sc, err := config.GetPreset(preset)
	if err != nil {
		return err
	}

	path := preset + ".yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.Save(path, sc); err != nil {
		return err
	}
	fmt.Printf("wrote %s scenario to %s\n", sc.Name, path)
	return nil
}
