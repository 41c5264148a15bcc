package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/splitbox/internal/config"
	"github.com/san-kum/splitbox/internal/export"
	"github.com/san-kum/splitbox/internal/frame"
	"github.com/san-kum/splitbox/internal/metrics"
	"github.com/san-kum/splitbox/internal/render"
	"github.com/san-kum/splitbox/internal/splittree"
	"github.com/san-kum/splitbox/internal/storage"
	"github.com/san-kum/splitbox/internal/viz"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "generate frames headless and save the run",
		RunE:  runHeadless,
	}
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, logger, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	d, err := newDriver(cfg, logger, frame.NewStepClock(0, cfg.Run.Dt))
	if err != nil {
		return err
	}
	for _, m := range metrics.Default() {
		d.AddMetric(m)
	}
	rec := &storage.Recorder{}
	d.AddObserver(rec)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	if err := frame.Run(ctx, d, render.NewRecorder(), frame.RunOptions{MaxFrames: cfg.Run.Frames}); err != nil {
		return err
	}
	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Preset:       presetName(),
		Seed:         cfg.Seed,
		Lifetime:     cfg.Tree.Lifetime,
		SpawnDivisor: cfg.Tree.SpawnDivisor,
		FadeAlpha:    cfg.Tree.FadeAlpha,
		Dt:           cfg.Run.Dt,
		Frames:       len(rec.Records),
		BoxOrigin:    cfg.Box.Origin,
		BoxExtents:   cfg.Box.Extents,
		Counters:     d.Counters(),
		Metrics:      d.Metrics(),
	}
	runID, err := st.Save(meta, rec.Records)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("frames: %d in %v (%.0f frames/s)\n", len(rec.Records), elapsed, float64(len(rec.Records))/elapsed.Seconds())
	printMetrics(os.Stdout, meta.Metrics)
	return nil
}

func printMetrics(out io.Writer, m map[string]float64) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, metric := range metrics.Default() {
		if v, ok := m[metric.Name()]; ok {
			fmt.Fprintf(w, "%s\t%.3f\n", metric.Name(), v)
		}
	}
	w.Flush()
}

// openStore resolves the data directory the same way every other setting is.
func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSEED\tFRAMES\tDT\tREPLACED\tLOST")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.2fms\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Frames,
			run.Dt,
			run.Counters.Replacements,
			run.Counters.Losses,
		)
	}
	return w.Flush()
}

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot vertex, node and depth counts of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	cmd.Flags().StringVar(&svgOut, "svg", "", "also write the vertex series as svg")
	return cmd
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	records, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s  seed: %d\n", meta.Preset, meta.Seed)
	fmt.Printf("frames: %d\n\n", len(records))

	series := []struct {
		caption string
		pick    func(storage.Record) float64
	}{
		{"vertices", func(r storage.Record) float64 { return float64(r.Vertices) }},
		{"nodes", func(r storage.Record) float64 { return float64(r.Nodes) }},
		{"depth", func(r storage.Record) float64 { return float64(r.Depth) }},
	}
	var vertices []float64
	for i, s := range series {
		data := make([]float64, len(records))
		for j, r := range records {
			data[j] = s.pick(r)
		}
		if i == 0 {
			vertices = data
		}
		fmt.Println(asciigraph.Plot(data, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption(s.caption)))
		fmt.Println()
	}

	if svgOut != "" {
		svg := export.SeriesToSVG(vertices, 800, 240, "#00ff88")
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func newExportCSVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a run's per-frame records as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	records, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no data to export")
	}
	return withOutput(outPath, func(w io.Writer) error {
		return storage.WriteCSV(w, records)
	})
}

func withOutput(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// replay steps a fresh driver from time zero up to at and returns the frame
// generated at the last step.
func replay(cmd *cobra.Command, at float64) (*config.Config, *frame.Driver, frame.Frame, error) {
	cfg, logger, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, frame.Frame{}, err
	}
	if at < 0 {
		return nil, nil, frame.Frame{}, fmt.Errorf("time must not be negative, got %f", at)
	}
	d, err := newDriver(cfg, logger, frame.NewStepClock(0, cfg.Run.Dt))
	if err != nil {
		return nil, nil, frame.Frame{}, err
	}
	steps := int(at / cfg.Run.Dt)
	var f frame.Frame
	for i := 0; i <= steps; i++ {
		f = d.Advance()
	}
	return cfg, d, f, nil
}

func addTimeFlag(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&atTime, "time", 2500, "scene time in milliseconds")
}

func newExportJSONCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-json",
		Short: "write the geometry of one frame as json",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, f, err := replay(cmd, atTime)
			if err != nil {
				return err
			}
			return withOutput(outPath, func(w io.Writer) error {
				return storage.ExportFrameJSON(w, f)
			})
		},
	}
	addTimeFlag(cmd)
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newExportSVGCmd() *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "export-svg",
		Short: "render one frame to svg",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, d, _, err := replay(cmd, atTime)
			if err != nil {
				return err
			}
			cam := viz.NewCamera()
			cam.RotateX(rotX)
			cam.RotateY(rotY)
			svg := export.FrameToSVG(d.Buffers(), cam, width, height)
			return withOutput(outPath, func(w io.Writer) error {
				_, err := io.WriteString(w, svg)
				return err
			})
		},
	}
	addTimeFlag(cmd)
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	cmd.Flags().IntVar(&width, "width", 1280, "image width")
	cmd.Flags().IntVar(&height, "height", 720, "image height")
	cmd.Flags().Float64Var(&rotX, "rot-x", 0, "camera rotation about x in radians")
	cmd.Flags().Float64Var(&rotY, "rot-y", 0, "camera rotation about y in radians")
	return cmd
}

func newInspectCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "show the split tree at a given time",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, d, f, err := replay(cmd, atTime)
			if err != nil {
				return err
			}
			snap, err := d.Snapshot()
			if err != nil {
				return fmt.Errorf("at t=%.1f: %w", f.Time, err)
			}
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			}
			fmt.Printf("t=%.1fms  nodes=%d  leaves=%d  depth=%d  expired=%d  vertices=%d\n\n",
				f.Time, f.Tree.Nodes, f.Tree.Leaves, f.Tree.MaxDepth, f.Tree.Expired, f.Vertices)
			printTree(os.Stdout, d.Root(), f.Time)
			return nil
		},
	}
	addTimeFlag(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the snapshot as json")
	return cmd
}

func printTree(out io.Writer, root *splittree.Node, now float64) {
	splittree.Walk(root, func(n *splittree.Node, depth int) bool {
		side := "-"
		if n.Direction {
			side = "+"
		}
		fmt.Fprintf(out, "%*s%s%s  [%.0f, %.0f)  life=%3.0f%%  rgb=(%.2f,%.2f,%.2f)\n",
			depth*2, "", n.Axis, side, n.TimeStart, n.TimeEnd,
			100*n.Fraction(now), n.Color.R, n.Color.G, n.Color.B)
		return true
	})
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "run several seeds concurrently and compare them",
		RunE:  bench,
	}
	cmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeds")
	return cmd
}

func bench(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	dc, err := cfg.DriverConfig()
	if err != nil {
		return err
	}

	ens := frame.NewEnsemble(dc, numRuns, cfg.Seed, metrics.Default)
	start := time.Now()
	results, err := ens.Run(cmd.Context(), cfg.Run.Frames, cfg.Run.Dt)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("benchmarking %s: %d seeds x %d frames\n\n", presetName(), numRuns, cfg.Run.Frames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tMEAN_VERTS\tPEAK_VERTS\tPEAK_DEPTH\tREPLACED\tRECOVERED\tSPAWNED")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%.1f\t%.0f\t%.0f\t%d\t%d\t%d\n",
			r.Seed,
			r.Metrics["mean_vertices"],
			r.Metrics["peak_vertices"],
			r.Metrics["peak_depth"],
			r.Counters.Replacements,
			r.Counters.Recoveries,
			r.Counters.Spawned,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	total := numRuns * cfg.Run.Frames
	fmt.Printf("\n%d frames in %v (%.0f frames/s)\n", total, elapsed, float64(total)/elapsed.Seconds())
	return nil
}
