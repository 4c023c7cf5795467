package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arvid-k/charsweep/internal/analysis"
	"github.com/arvid-k/charsweep/internal/config"
	"github.com/arvid-k/charsweep/internal/dataset"
	"github.com/arvid-k/charsweep/internal/modelcard"
	"github.com/arvid-k/charsweep/internal/ngspice"
	"github.com/arvid-k/charsweep/internal/sim"
	"github.com/arvid-k/charsweep/internal/storage"
	"github.com/arvid-k/charsweep/internal/sweep"
	"github.com/arvid-k/charsweep/internal/trace"
	"github.com/arvid-k/charsweep/internal/tui"
)

var (
	configFile string
	outputPath string
	format     string
	device     string
	poolSize   int
	jobTimeout time.Duration
	noTUI      bool
	// plot command
	plotSeed int64
	plotOut  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "charsweep",
		Short: "MOSFET model characterization sweeps",
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the full characterization sweep",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	runCmd.Flags().StringVar(&outputPath, "output", "", "dataset output path")
	runCmd.Flags().StringVar(&format, "format", "", "output format (csv|bin)")
	runCmd.Flags().StringVar(&device, "device", "", "device polarity (nmos|pmos)")
	runCmd.Flags().IntVar(&poolSize, "pool", 0, "worker pool size")
	runCmd.Flags().DurationVar(&jobTimeout, "job-timeout", 0, "per-job simulation timeout (0 = none)")
	runCmd.Flags().BoolVar(&noTUI, "no-tui", false, "plain line progress instead of the live view")

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "download the device model card if not cached",
		Args:  cobra.NoArgs,
		RunE:  fetchModel,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [dataset]",
		Short: "plot spot-check traces from a finished dataset",
		Args:  cobra.ExactArgs(1),
		RunE:  plotTraces,
	}
	plotCmd.Flags().StringVar(&format, "format", "", "dataset format (csv|bin), default from extension")
	plotCmd.Flags().Int64Var(&plotSeed, "seed", time.Now().UnixNano(), "geometry selection seed")
	plotCmd.Flags().StringVar(&plotOut, "out", "", "write SVG plots into this directory instead of the terminal")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration",
	}
	configCmd.AddCommand(
		&cobra.Command{
			Use:   "init [path]",
			Short: "write the default configuration",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return config.Save(args[0], config.DefaultConfig())
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return err
				}
				fmt.Print(string(data))
				return nil
			},
		},
	)

	rootCmd.AddCommand(runCmd, fetchCmd, plotCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if outputPath != "" {
		cfg.OutputPath = outputPath
	}
	if format != "" {
		cfg.Format = format
	}
	if device != "" {
		cfg.Device = device
	}
	if poolSize > 0 {
		cfg.PoolSize = poolSize
	}
	if jobTimeout > 0 {
		cfg.JobTimeout = jobTimeout
	}
	return cfg, nil
}

func fetchModel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path, err := modelcard.Ensure(cfg.LibDir, cfg.ModelFile, cfg.ModelURL)
	if err != nil {
		return err
	}
	fmt.Printf("model card: %s\n", path)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	libPath, err := modelcard.Ensure(cfg.LibDir, cfg.ModelFile, cfg.ModelURL)
	if err != nil {
		return err
	}

	jobs, err := sim.Jobs(cfg)
	if err != nil {
		return err
	}

	adapter := ngspice.New(libPath, cfg.Device, cfg.Temperature)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := time.Now()
	var data *datasetResult
	if noTUI {
		data = characterizePlain(ctx, cfg, adapter)
	} else {
		data = characterizeTUI(ctx, cancel, cfg, adapter, len(jobs))
	}
	if data.err != nil {
		return data.err
	}

	out, err := analysis.SelectOutput(data.table)
	if err != nil {
		return err
	}
	if err := storage.Write(cfg.OutputPath, cfg.Format, out); err != nil {
		return err
	}

	meta := storage.RunMetadata{
		Model:       cfg.ModelFile,
		Device:      cfg.Device,
		Temperature: cfg.Temperature,
		Timestamp:   time.Now().UTC(),
		Jobs:        len(jobs),
		Rows:        out.Len(),
		Columns:     out.Names(),
	}
	if err := storage.WriteMetadata(cfg.OutputPath+".meta.json", meta); err != nil {
		return err
	}

	fmt.Printf("wrote %d rows x %d columns to %s (%s) in %s\n",
		out.Len(), len(out.Names()), cfg.OutputPath, cfg.Format, time.Since(start).Round(time.Second))
	return nil
}

type datasetResult struct {
	table *dataset.Table
	err   error
}

// characterizePlain runs the pipeline with single-line progress output.
func characterizePlain(ctx context.Context, cfg *config.Config, adapter sim.Adapter) *datasetResult {
	obs := func(done, total int, p sweep.Point) {
		fmt.Printf("\r[%d/%d] W=%.3g L=%.3g Vbs=%.2f", done, total, p.W, p.L, p.Vbs)
		if done == total {
			fmt.Println()
		}
	}
	table, err := sim.Characterize(ctx, cfg, adapter, obs)
	return &datasetResult{table: table, err: err}
}

// characterizeTUI runs the pipeline behind the live progress view.
func characterizeTUI(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, adapter sim.Adapter, total int) *datasetResult {
	prog := tea.NewProgram(tui.New(cfg.Device, total, cancel))

	res := make(chan *datasetResult, 1)
	go func() {
		table, err := sim.Characterize(ctx, cfg, adapter, tui.Observe(prog))
		res <- &datasetResult{table: table, err: err}
		prog.Send(tui.FinishedMsg{Err: err})
	}()

	if _, err := prog.Run(); err != nil {
		cancel()
		<-res
		return &datasetResult{err: err}
	}
	r := <-res
	if r.err == nil && ctx.Err() != nil {
		r.err = ctx.Err()
	}
	return r
}

func plotTraces(cmd *cobra.Command, args []string) error {
	path := args[0]
	f := format
	if f == "" {
		switch filepath.Ext(path) {
		case ".bin":
			f = "bin"
		default:
			f = "csv"
		}
	}

	data, err := storage.Read(path, f)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(plotSeed))
	traces, err := trace.Extract(data, rng)
	if err != nil {
		return err
	}

	if plotOut != "" {
		if err := os.MkdirAll(plotOut, 0755); err != nil {
			return err
		}
		transfer := filepath.Join(plotOut, "transfer.svg")
		output := filepath.Join(plotOut, "output.svg")
		if err := trace.SavePlot(traces.Transfer, plotTitle(traces, "transfer"), "Vgs [V]", transfer, true); err != nil {
			return err
		}
		if err := trace.SavePlot(traces.Output, plotTitle(traces, "output"), "Vds [V]", output, false); err != nil {
			return err
		}
		fmt.Printf("wrote %s and %s\n", transfer, output)
		return nil
	}

	fmt.Println(trace.RenderASCII(traces.Transfer, plotTitle(traces, "Id vs Vgs")))
	fmt.Println(trace.RenderASCII(traces.Output, plotTitle(traces, "Id vs Vds")))
	return nil
}

func plotTitle(tr *trace.Traces, kind string) string {
	return fmt.Sprintf("%s W=%.3g L=%.3g", kind, tr.W, tr.L)
}
