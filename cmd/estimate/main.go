package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"ps-normals/internal/config"
	"ps-normals/internal/dataset"
	"ps-normals/internal/estimate"
	"ps-normals/internal/logging"
	"ps-normals/internal/mathutil"
	"ps-normals/internal/textio"
)

// objectResult records the outcome of one object for the run summary.
type objectResult struct {
	Name  string   `json:"name"`
	MAngE *float64 `json:"MAngE,omitempty"`
	Error string   `json:"error,omitempty"`
}

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	dataRoot := flag.String("data", "", "Dataset root holding one directory per object")
	objects := flag.String("objects", "", "Object list file (one name per line)")
	dataName := flag.String("layout", "", "Dataset layout (default: diligent)")
	projectorDir := flag.String("projectors", "", "Projector directory")
	candidates := flag.String("candidates", "", "Candidate normal file, same order as the projector manifest")
	outputDir := flag.String("output", "", "Output directory")
	format := flag.String("format", "", "Image format: png or webp (default: png)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	noIntensity := flag.Bool("no-intensity", false, "Do not divide images by light intensities")
	logLevel := flag.String("log-level", "", "Log level (default: info)")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		DataRoot:      *dataRoot,
		ObjectFile:    *objects,
		DataName:      *dataName,
		ProjectorDir:  *projectorDir,
		CandidateFile: *candidates,
		OutputDir:     *outputDir,
		ImageFormat:   *format,
		Workers:       *workers,
		LogLevel:      *logLevel,
	})

	logger, err := logging.New(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateEstimate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	names, err := textio.ReadLines(cfg.ObjectFile)
	if err != nil {
		logger.WithError(err).Fatal("reading object list")
	}
	if len(names) == 0 {
		logger.Info("no objects to process")
		return
	}

	normals, err := textio.ReadVec3s(cfg.CandidateFile)
	if err != nil {
		logger.WithError(err).Fatal("reading candidate normals")
	}

	ctx := context.Background()
	bank, err := estimate.LoadBank(ctx, cfg.ProjectorDir, cfg.Workers, logger)
	if err != nil {
		logger.WithError(err).Fatal("loading projectors")
	}

	logger.WithFields(logrus.Fields{
		"objects":    len(names),
		"candidates": bank.Len(),
		"lights":     bank.Lights(),
		"workers":    cfg.Workers,
		"output":     cfg.OutputDir,
	}).Info("estimating normals")

	opts := dataset.DefaultOptions
	opts.DivideIntensity = !*noIntensity
	out := estimate.OutputOptions{
		ImageFormat: cfg.ImageFormat,
		ErrorMapMax: cfg.ErrorMapMax,
		Upscale:     cfg.Upscale,
	}

	start := time.Now()
	var results []objectResult
	failed := 0
	for _, name := range names {
		r := objectResult{Name: name}
		score, err := runObject(ctx, cfg, name, bank, normals, opts, out, logger)
		if err != nil {
			failed++
			r.Error = err.Error()
			logger.WithError(err).WithField("object", name).Error("object failed")
		} else if score != nil {
			r.MAngE = &score.MAngE
		}
		results = append(results, r)
	}

	logger.WithFields(logrus.Fields{
		"done":    len(names) - failed,
		"total":   len(names),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("finished")

	summaryPath := filepath.Join(cfg.OutputDir, "summary.json")
	if err := textio.MakeDirs(cfg.OutputDir); err != nil {
		logger.WithError(err).Warn("summary write failed")
	} else if err := textio.DumpJSON(summaryPath, results); err != nil {
		logger.WithError(err).Warn("summary write failed")
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func runObject(ctx context.Context, cfg config.Config, name string, bank *estimate.Bank,
	normals []mathutil.Vec3, opts dataset.Options, out estimate.OutputOptions, logger logrus.FieldLogger) (*estimate.Score, error) {
	src, err := dataset.Open(cfg.DataName, filepath.Join(cfg.DataRoot, name))
	if err != nil {
		return nil, err
	}
	obj, err := dataset.Load(src, opts)
	if err != nil {
		return nil, err
	}

	log := logger.WithField("object", name)
	log.WithFields(logrus.Fields{
		"width":  obj.Width,
		"height": obj.Height,
		"pixels": len(obj.Foreground()),
	}).Info("object loaded")

	res, err := estimate.Estimate(ctx, estimate.Input{
		Bank:    bank,
		Normals: normals,
		Object:  obj,
		Workers: cfg.Workers,
		Logger:  log,
	})
	if err != nil {
		return nil, err
	}
	return estimate.WriteOutputs(filepath.Join(cfg.OutputDir, name), obj, res, out, log)
}
