package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/splitbox/internal/config"
	"github.com/san-kum/splitbox/internal/frame"
	"github.com/san-kum/splitbox/internal/logging"
	"github.com/san-kum/splitbox/internal/metrics"
	"github.com/san-kum/splitbox/internal/render/window"
	"github.com/san-kum/splitbox/internal/server"
	"github.com/san-kum/splitbox/internal/viz"
)

func addDisplayFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	cmd.Flags().StringVar(&theme, "theme", "cyberpunk", fmt.Sprintf("color theme %v", viz.ThemeNames()))
}

func newLiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "live",
		Short: "watch the geometry evolve in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			d, err := newDriver(cfg, logging.NewNop(), frame.NewStepClock(0, cfg.Run.Dt))
			if err != nil {
				return err
			}
			return viz.RunLive(d, viz.LiveOptions{FPS: cfg.Render.FPS, Theme: cfg.Render.Theme})
		},
	}
	addDisplayFlags(cmd)
	return cmd
}

func newGUICmd() *cobra.Command {
	var maxFrames int
	cmd := &cobra.Command{
		Use:   "gui",
		Short: "open an OpenGL window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			d, err := newDriver(cfg, logger, nil)
			if err != nil {
				return err
			}

			win, err := window.Open(window.Options{
				Width:   cfg.Render.Width,
				Height:  cfg.Render.Height,
				Title:   "splitbox",
				FPS:     cfg.Render.FPS,
				FOV:     cfg.Render.FOV,
				CameraZ: cfg.Render.CameraZ,
				Logger:  logger,
			})
			if err != nil {
				return err
			}
			defer win.Close()
			d.AddObserver(win)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return frame.Run(ctx, d, win, frame.RunOptions{MaxFrames: maxFrames})
		},
	}
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "target frames per second")
	cmd.Flags().IntVar(&maxFrames, "max-frames", 0, "stop after this many frames (0 runs until closed)")
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve frames, the tree and metrics over http",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			d, err := newDriver(cfg, logger, nil)
			if err != nil {
				return err
			}
			for _, m := range metrics.Default() {
				d.AddMetric(m)
			}

			srv, err := server.New(d, server.Options{
				Interval: time.Second / time.Duration(cfg.Render.FPS),
				Logger:   logger.With("component", "server"),
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, listenAddr)
		},
	}
	cmd.Flags().StringVar(&listenAddr, "addr", ":8080", "listen address")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frames stepped per second")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLIFETIME\tSPAWN_DIV\tFADE_ALPHA\tFADE_WINDOW\tMAX_DEPTH\tAXIS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.2f\t%.2f\t%d\t%s\n",
					name, p.Tree.Lifetime, p.Tree.SpawnDivisor, p.Tree.FadeAlpha,
					p.Tree.FadeWindow, p.Tree.MaxDepth, p.Tree.InitialAxis)
			}
			return w.Flush()
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show [name]",
		Short: "print a preset as a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := config.GetPreset(args[0])
			if p == nil {
				return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
			}
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(p)
		},
	})
	return cmd
}
