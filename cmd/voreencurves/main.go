package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"

	"voreencurves/internal/models"
	"voreencurves/pkg/config"
	"voreencurves/pkg/sampling"
	"voreencurves/pkg/visualization"
)

const (
	plotSize       = 512
	lutStripHeight = 32
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "voreencurves.yaml", "Configuration file (.yaml or .toml)")
	initConfig := flag.Bool("init-config", false, "Write the default configuration to -config and exit")
	numSamples := flag.Int("samples", 0, "Number of samples (overrides the configuration)")
	numWorkers := flag.Int("workers", 0, "Number of sampling goroutines (overrides the configuration)")
	csvPath := flag.String("csv", "", "CSV output file (overrides the configuration)")
	plotPath := flag.String("plot", "", "Curve plot image, .png or .jpg (overrides the configuration)")
	lutPath := flag.String("lut", "", "Transfer function lookup table image (overrides the configuration)")
	flag.Parse()

	if *initConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			log.Fatalf("Failed to write default configuration: %v", err)
		}
		fmt.Printf("Default configuration written to: %s\n", *configPath)
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *numSamples > 0 {
		cfg.Sampling.Samples = *numSamples
	}
	if *numWorkers > 0 {
		cfg.Sampling.Workers = *numWorkers
	}
	if *csvPath != "" {
		cfg.Output.CSV = *csvPath
	}
	if *plotPath != "" {
		cfg.Output.Plot = *plotPath
	}
	if *lutPath != "" {
		cfg.Output.LookupTable = *lutPath
	}

	curve, err := cfg.BuildCurve()
	if err != nil {
		log.Fatalf("Failed to build curve: %v", err)
	}

	fmt.Println("================================")
	fmt.Println("VOREEN CURVES: SPLINE EVALUATION AND TRANSFER FUNCTION EXPORT")
	fmt.Println("================================")
	fmt.Printf("Curve: %s through %d points (%dD output)\n", cfg.Curve.Kind, len(cfg.Curve.Points), curve.Dim())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sampler := sampling.NewSampler(cfg.Sampling.Workers)
	if cfg.Output.Verbose {
		sampler.SetProgressCallback(func(completed, total int, message string) {
			log.Printf("[%d/%d] %s", completed, total, message)
		})
	}

	startTime := time.Now()
	samples, err := sampler.Sample(ctx, curve, cfg.Sampling.Samples, cfg.Sampling.TMin, cfg.Sampling.TMax)
	if err != nil {
		log.Fatalf("Sampling failed: %v", err)
	}
	elapsed := time.Since(startTime)

	fmt.Printf("\nSampled %s parameters in [%g, %g] on %d workers in %s\n",
		humanize.Comma(int64(len(samples))), cfg.Sampling.TMin, cfg.Sampling.TMax,
		sampler.Workers, durafmt.Parse(elapsed).LimitFirstN(2).String())

	summary := sampling.Summarize(samples)
	fmt.Println("\nPer-coordinate statistics:")
	fmt.Println("==========================")
	for d := range summary.Mean {
		fmt.Printf("c%d: mean %.6f, std %.6f, range [%.6f, %.6f]\n",
			d, summary.Mean[d], summary.StdDev[d], summary.Min[d], summary.Max[d])
	}

	if cfg.Output.CSV != "" {
		if err := writeCSV(cfg.Output.CSV, samples); err != nil {
			log.Fatalf("Failed to write samples: %v", err)
		}
		fmt.Printf("\nSamples saved to: %s\n", cfg.Output.CSV)
	}

	if cfg.Output.Plot != "" {
		if err := savePlot(cfg.Output.Plot, samples, curve.Dim()); err != nil {
			log.Printf("Warning: Failed to save curve plot: %v", err)
		} else {
			fmt.Printf("Curve plot saved to: %s\n", cfg.Output.Plot)
		}
	}

	if cfg.Output.LookupTable != "" {
		if err := saveLookupTable(cfg); err != nil {
			log.Printf("Warning: Failed to export lookup table: %v", err)
		} else {
			fmt.Printf("Lookup table saved to: %s\n", cfg.Output.LookupTable)
		}
	}
}

func writeCSV(path string, samples []models.Sample) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := sampling.WriteCSV(f, samples); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// savePlot draws scalar curves against t and vector curves as their xy trace
func savePlot(path string, samples []models.Sample, dim int) error {
	plotter := visualization.NewPlotter(plotSize, plotSize)

	var img image.Image
	var err error
	if dim == 1 {
		img, err = plotter.PlotSamples(samples, 0)
	} else {
		img, err = plotter.PlotPath(samples, 0, 1)
	}
	if err != nil {
		return err
	}
	return visualization.Save(img, path)
}

func saveLookupTable(cfg *config.Config) error {
	tf, width, err := cfg.BuildTransferFunction()
	if err != nil {
		return err
	}
	if err := tf.Validate(); err != nil {
		log.Printf("Warning: %v; falling back to linear blending", err)
	}

	strip, err := visualization.LookupTableStrip(tf.LookupTable(width), lutStripHeight)
	if err != nil {
		return err
	}
	return visualization.Save(strip, cfg.Output.LookupTable)
}
