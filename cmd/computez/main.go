package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"ps-normals/internal/config"
	"ps-normals/internal/logging"
	"ps-normals/internal/subspace"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	dictDir := flag.String("dictionary", "", "Dictionary directory")
	outputDir := flag.String("output", "", "Projector output directory")
	rank := flag.Int("rank", 0, "Number of principal directions removed per projector")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	logLevel := flag.String("log-level", "", "Log level (default: info)")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		DictionaryDir: *dictDir,
		ProjectorDir:  *outputDir,
		Rank:          *rank,
		Workers:       *workers,
		LogLevel:      *logLevel,
	})

	logger, err := logging.New(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateProjector(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	logger.WithFields(logrus.Fields{
		"dictionary": cfg.DictionaryDir,
		"output":     cfg.ProjectorDir,
		"rank":       cfg.Rank,
		"workers":    cfg.Workers,
	}).Info("computing projectors")

	start := time.Now()
	err = subspace.CompressDir(context.Background(), subspace.Options{
		DictionaryDir: cfg.DictionaryDir,
		OutputDir:     cfg.ProjectorDir,
		Rank:          cfg.Rank,
		Workers:       cfg.Workers,
		Logger:        logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("projector computation failed")
	}
	logger.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("projectors written")
}
