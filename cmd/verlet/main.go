package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/TheBurgerCoder/verlet/internal/analysis"
	"github.com/TheBurgerCoder/verlet/internal/config"
	"github.com/TheBurgerCoder/verlet/internal/engine"
	"github.com/TheBurgerCoder/verlet/internal/metrics"
	"github.com/TheBurgerCoder/verlet/internal/preset"
	"github.com/TheBurgerCoder/verlet/internal/storage"
	"github.com/TheBurgerCoder/verlet/internal/viz"
	"github.com/TheBurgerCoder/verlet/internal/world"
)

var (
	dataDir    string
	configFile string
	sceneFile  string
	dt         float64
	gravity    float64
	steps      int
	width      float64
	height     float64
	frameRate  int
	particleID int
	axis       string
	seedIndex  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "verlet",
		Short: "constraint-based physics sandbox lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".verlet", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scene headless and record it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScene,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (frame units)")
	runCmd.Flags().Float64Var(&gravity, "gravity", config.DefaultGravity, "gravity (px/frame^2)")
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	runCmd.Flags().Float64Var(&width, "width", engine.DefaultWidth, "world width")
	runCmd.Flags().Float64Var(&height, "height", engine.DefaultHeight, "world height")
	runCmd.Flags().StringVar(&sceneFile, "scene-file", "", "JSON scene file instead of a preset")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "simulate a scene with a live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (frame units)")
	liveCmd.Flags().Float64Var(&gravity, "gravity", config.DefaultGravity, "gravity (px/frame^2)")
	liveCmd.Flags().Float64Var(&width, "width", engine.DefaultWidth, "world width")
	liveCmd.Flags().Float64Var(&height, "height", engine.DefaultHeight, "world height")
	liveCmd.Flags().StringVar(&sceneFile, "scene-file", "", "JSON scene file instead of a preset")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenes",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range preset.List() {
				fmt.Println(name)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a particle track from a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&particleID, "particle", 0, "particle index")
	plotCmd.Flags().StringVar(&axis, "axis", "y", "axis to plot (x or y)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a particle track",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&particleID, "particle", 0, "particle index")
	analyzeCmd.Flags().StringVar(&axis, "axis", "y", "axis to analyze (x or y)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and frames as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	validateCmd := &cobra.Command{
		Use:   "validate [scene.json]",
		Short: "check a scene file",
		Args:  cobra.ExactArgs(1),
		RunE:  validateScene,
	}

	componentCmd := &cobra.Command{
		Use:   "component [scene.json]",
		Short: "extract the connected component around a particle",
		Args:  cobra.ExactArgs(1),
		RunE:  extractComponent,
	}
	componentCmd.Flags().IntVar(&seedIndex, "seed", 0, "particle index to grow the component from")

	rootCmd.AddCommand(runCmd, liveCmd, presetsCmd, listCmd, plotCmd, analyzeCmd,
		exportJSONCmd, exportCSVCmd, validateCmd, componentCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadWorld resolves the scene for a command: an explicit JSON file
// wins, then the named preset, then the config default.
func loadWorld(args []string, cfg *config.Config) (*world.World, string, error) {
	if sceneFile != "" {
		data, err := os.ReadFile(sceneFile)
		if err != nil {
			return nil, "", err
		}
		scene, err := world.DecodeScene(data)
		if err != nil {
			return nil, "", err
		}
		w := world.New()
		if _, err := w.Import(scene); err != nil {
			return nil, "", err
		}
		return w, sceneFile, nil
	}

	name := cfg.Scene
	if len(args) > 0 {
		name = args[0]
	}
	w, err := preset.Get(name)
	if err != nil {
		return nil, "", fmt.Errorf("%w (available: %v)", err, preset.List())
	}
	return w, name, nil
}

func runScene(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if !cmd.Flags().Changed("dt") {
		dt = cfg.Dt
	}
	if !cmd.Flags().Changed("gravity") {
		gravity = cfg.Gravity
	}
	if !cmd.Flags().Changed("steps") {
		steps = cfg.Steps
	}
	if !cmd.Flags().Changed("width") {
		width = cfg.Width
	}
	if !cmd.Flags().Changed("height") {
		height = cfg.Height
	}
	cfg.Width, cfg.Height = width, height

	w, sceneName, err := loadWorld(args, cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	eng := cfg.Engine()
	runner := engine.NewRunner(eng)
	for _, m := range metrics.Defaults(width, height, eng.Tuning.Margin) {
		runner.AddMetric(m)
	}

	fmt.Printf("running %s for %d steps...\n", sceneName, steps)
	start := time.Now()

	result, err := runner.Run(context.Background(), w, engine.RunConfig{
		Dt:            dt,
		Gravity:       gravity,
		Steps:         steps,
		ValidateState: true,
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(sceneName, dt, gravity, w, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	cfg.Width, cfg.Height = width, height

	w, sceneName, err := loadWorld(args, cfg)
	if err != nil {
		return err
	}

	m := viz.NewModel(w, cfg.Engine(), sceneName, dt, gravity, frameRate)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
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
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tSTEPS\tPARTICLES\tSTICKS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Particles,
			run.Sticks,
		)
	}

	return w.Flush()
}

// track pulls one particle's coordinate history out of recorded frames.
func track(frames [][]float64, particle int, axis string) ([]float64, error) {
	col := particle * 2
	if axis == "y" {
		col++
	} else if axis != "x" {
		return nil, fmt.Errorf("axis must be x or y, got %q", axis)
	}

	data := make([]float64, 0, len(frames))
	for _, row := range frames {
		if col >= len(row) {
			return nil, fmt.Errorf("particle index %d out of range", particle)
		}
		data = append(data, row[col])
	}
	return data, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	data, err := track(frames, particleID, axis)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(data))

	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("particle %d, %s axis", particleID, axis)),
	)
	fmt.Println(graph)

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data")
	}

	data, err := track(frames, particleID, axis)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("scene: %s\n\n", meta.Scene)

	ps := analysis.PowerSpectrum(data)
	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (particle %d, %s axis)", particleID, axis)),
	)
	fmt.Println(graph)
	fmt.Println()

	freq, power := analysis.DominantFrequency(data, meta.Dt)
	if freq > 0 {
		fmt.Printf("dominant frequency: %.4f cycles/frame (power %.2f)\n", freq, power)
		fmt.Printf("period: %.2f frames\n", 1.0/freq)
	} else {
		fmt.Println("no dominant oscillation found")
	}

	return nil
}

type runExport struct {
	Meta   storage.RunMetadata `json:"meta"`
	Times  []float64           `json:"times"`
	Frames [][]float64         `json:"frames"`
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(runExport{Meta: *meta, Times: times, Frames: frames})
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := 0; i < len(frames[0])/2; i++ {
		header = append(header, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, row := range frames {
		record := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range row {
			record = append(record, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func validateScene(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	scene, err := world.DecodeScene(data)
	if err != nil {
		return err
	}
	fmt.Printf("ok: %d particles, %d sticks\n", len(scene.Particles), len(scene.Sticks))
	return nil
}

func extractComponent(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	scene, err := world.DecodeScene(data)
	if err != nil {
		return err
	}

	w := world.New()
	ids, err := w.Import(scene)
	if err != nil {
		return err
	}
	if seedIndex < 0 || seedIndex >= len(ids) {
		return fmt.Errorf("seed index %d out of range (%d particles)", seedIndex, len(ids))
	}

	particles, _, err := w.Component(ids[seedIndex])
	if err != nil {
		return err
	}

	keep := make([]int, len(particles))
	for i, p := range particles {
		keep[i] = p.ID
	}
	sub, err := w.SceneOf(keep)
	if err != nil {
		return err
	}

	out, err := sub.Encode()
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
