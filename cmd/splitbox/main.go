package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/san-kum/splitbox/internal/config"
	"github.com/san-kum/splitbox/internal/frame"
	"github.com/san-kum/splitbox/internal/logging"
	"github.com/san-kum/splitbox/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	dt         float64
	frames     int
	logLevel   string
	atTime     float64
	outPath    string
	numRuns    int
	listenAddr string
	fps        int
	theme      string
	rotX       float64
	rotY       float64
	svgOut     string
)

func init() {
	// raylib must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "splitbox",
		Short:         "recursive split-box geometry generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := resolveConfig(cmd); err != nil {
				return err
			}
			// stderr belongs to the terminal UI here
			return viz.RunInteractive(func(c *config.Config) { applyFlags(cmd, c) }, logging.NewNop())
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.Int64Var(&seed, "seed", 0, "random seed")
	pf.Float64Var(&dt, "dt", config.DefaultDt, "milliseconds per frame for stepped clocks")
	pf.IntVar(&frames, "frames", config.DefaultFrames, "number of frames")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newRunCmd(),
		&cobra.Command{Use: "list", Short: "list saved runs", RunE: listRuns},
		newPlotCmd(),
		&cobra.Command{Use: "export [run_id]", Short: "print run metadata as json", Args: cobra.ExactArgs(1), RunE: exportRun},
		newExportCSVCmd(),
		newExportJSONCmd(),
		newExportSVGCmd(),
		newInspectCmd(),
		newBenchCmd(),
		newLiveCmd(),
		newGUICmd(),
		newServeCmd(),
		newPresetsCmd(),
	)

	return rootCmd
}

// resolveConfig layers preset, file, environment and explicit flags, in that
// order, and builds the logger.
func resolveConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		if cfg = config.GetPreset(preset); cfg == nil {
			return nil, nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		var err error
		if cfg, err = config.LoadOver(configFile, cfg); err != nil {
			return nil, nil, fmt.Errorf("load config: %w", err)
		}
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, nil, err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.New(level), nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("dt") {
		cfg.Run.Dt = dt
	}
	if flags.Changed("frames") {
		cfg.Run.Frames = frames
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("fps") {
		cfg.Render.FPS = fps
	}
	if flags.Changed("theme") {
		cfg.Render.Theme = theme
	}
}

// newDriver builds a driver for cfg. A nil clock means wall time.
func newDriver(cfg *config.Config, logger *slog.Logger, clock frame.Clock) (*frame.Driver, error) {
	dc, err := cfg.DriverConfig()
	if err != nil {
		return nil, err
	}
	opts := []frame.Option{frame.WithLogger(logger)}
	if clock != nil {
		opts = append(opts, frame.WithClock(clock))
	}
	return frame.New(dc, opts...)
}

func presetName() string {
	if preset == "" {
		return "classic"
	}
	return preset
}
