package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"ps-normals/internal/config"
	"ps-normals/internal/dictionary"
	"ps-normals/internal/logging"
	"ps-normals/internal/textio"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	candidates := flag.String("candidates", "", "Candidate normal file (one x y z per line)")
	lights := flag.String("lights", "", "Light direction file (one x y z per line)")
	merlDir := flag.String("merl", "", "Directory holding <material>.binary tables")
	materials := flag.String("materials", "", "Material list file (one name per line)")
	outputDir := flag.String("output", "", "Dictionary output directory")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	logLevel := flag.String("log-level", "", "Log level (default: info)")

	flag.Parse()

	cfg := loadConfig(*configFile, config.Flags{
		CandidateFile: *candidates,
		LightFile:     *lights,
		MerlDir:       *merlDir,
		MaterialFile:  *materials,
		DictionaryDir: *outputDir,
		Workers:       *workers,
		LogLevel:      *logLevel,
	})

	logger, err := logging.New(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateDictionary(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Fatal("dictionary build failed")
	}
}

func run(cfg config.Config, logger logrus.FieldLogger) error {
	normals, err := textio.ReadVec3s(cfg.CandidateFile)
	if err != nil {
		return err
	}
	lights, err := textio.ReadVec3s(cfg.LightFile)
	if err != nil {
		return err
	}
	materials, err := textio.ReadLines(cfg.MaterialFile)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"candidates": len(normals),
		"lights":     len(lights),
		"materials":  len(materials),
		"workers":    cfg.Workers,
		"output":     cfg.DictionaryDir,
	}).Info("building dictionary")

	start := time.Now()
	b := &dictionary.Builder{
		Normals: normals,
		Lights:  lights,
		Workers: cfg.Workers,
		Logger:  logger,
	}
	d, err := b.Build(context.Background(), materials, dictionary.DirSource{Dir: cfg.MerlDir})
	if err != nil {
		return err
	}
	if err := dictionary.Save(cfg.DictionaryDir, d); err != nil {
		return err
	}

	logger.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("dictionary written")
	return nil
}

func loadConfig(path string, flags config.Flags) config.Config {
	var cfg config.Config
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(flags)
	return cfg
}
