package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/gravsim/internal/viz"
)

var (
	dataDir  string
	verbose  bool
	logger   = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	preset   string
	dt       float64
	steps    int
	sample   int
	method   string
	ordering string
	soften   bool
	gConst   float64
	workers  int
	plotBody int
	force    bool
)

// main registers the command tree. With no subcommand it opens the
// interactive preset picker. It exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "gravsim",
		Short:         "2-D gravitational n-body simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")

	runCmd := &cobra.Command{
		Use:   "run [scenario.yaml]",
		Short: "run a scenario headless and record it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [scenario.yaml]",
		Short: "run a scenario with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot energy and a body's trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotBody, "body", -1, "body id to plot (default: last body)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write recorded samples as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write run metadata and samples as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [scenario] [method1] [method2] ...",
		Short: "compare integration methods on the same scenario",
		Long:  "scenario is a YAML file or a preset name; methods default to all of euler, taylor and leapfrog",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareMethods,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", 0, "override timestep")
	compareCmd.Flags().IntVar(&steps, "steps", 0, "override number of steps")
	compareCmd.Flags().StringVar(&ordering, "ordering", "", "override update ordering")
	compareCmd.Flags().BoolVar(&soften, "soften", true, "override softening")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a preset scenario as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initScenario,
	}
	initCmd.Flags().StringVar(&preset, "preset", "orbit", "preset to write")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, compareCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "orbit", "built-in scenario when no file is given")
	cmd.Flags().Float64Var(&dt, "dt", 0.001, "timestep")
	cmd.Flags().IntVar(&steps, "steps", 10000, "number of steps")
	cmd.Flags().IntVar(&sample, "sample", 10, "record every n-th step")
	cmd.Flags().StringVar(&method, "method", "leapfrog", "integration method (euler, taylor, leapfrog)")
	cmd.Flags().StringVar(&ordering, "ordering", "synchronous", "update ordering (synchronous, sequential)")
	cmd.Flags().BoolVar(&soften, "soften", true, "Plummer-soften close encounters")
	cmd.Flags().Float64Var(&gConst, "g", 1, "gravitational constant")
	cmd.Flags().IntVar(&workers, "workers", 1, "goroutines for force sums")
}
