package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
)

// Config holds all configurable paths and stage settings.
type Config struct {
	// Paths
	BaseDir       string `json:"base_dir"`
	CandidateFile string `json:"candidate_file"`
	LightFile     string `json:"light_file"`
	MerlDir       string `json:"merl_dir"`
	MaterialFile  string `json:"material_file"`
	DictionaryDir string `json:"dictionary_dir"`
	ProjectorDir  string `json:"projector_dir"`
	DataRoot      string `json:"data_root"`
	ObjectFile    string `json:"object_file"`
	OutputDir     string `json:"output_dir"`

	// Stage settings
	DataName    string  `json:"data_name"`
	Rank        int     `json:"rank"`
	Workers     int     `json:"workers"`
	ImageFormat string  `json:"image_format"`
	ErrorMapMax float64 `json:"error_map_max"`
	Upscale     int     `json:"upscale"`
	LogLevel    string  `json:"log_level"`
	LogJSON     bool    `json:"log_json"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	CandidateFile string
	LightFile     string
	MerlDir       string
	MaterialFile  string
	DictionaryDir string
	ProjectorDir  string
	DataRoot      string
	ObjectFile    string
	OutputDir     string
	DataName      string
	Rank          int
	Workers       int
	ImageFormat   string
	LogLevel      string
}

// Resolve applies CLI overrides, resolves relative paths against BaseDir
// and fills in defaults.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&c.CandidateFile, flags.CandidateFile)
	override(&c.LightFile, flags.LightFile)
	override(&c.MerlDir, flags.MerlDir)
	override(&c.MaterialFile, flags.MaterialFile)
	override(&c.DictionaryDir, flags.DictionaryDir)
	override(&c.ProjectorDir, flags.ProjectorDir)
	override(&c.DataRoot, flags.DataRoot)
	override(&c.ObjectFile, flags.ObjectFile)
	override(&c.OutputDir, flags.OutputDir)
	override(&c.DataName, flags.DataName)
	override(&c.ImageFormat, flags.ImageFormat)
	override(&c.LogLevel, flags.LogLevel)
	if flags.Rank > 0 {
		c.Rank = flags.Rank
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Resolve relative paths against base dir
	if c.BaseDir != "" {
		for _, p := range []*string{
			&c.CandidateFile, &c.LightFile, &c.MerlDir, &c.MaterialFile,
			&c.DictionaryDir, &c.ProjectorDir, &c.DataRoot, &c.ObjectFile, &c.OutputDir,
		} {
			if *p != "" && !filepath.IsAbs(*p) {
				*p = filepath.Join(c.BaseDir, *p)
			}
		}
	}

	// Defaults for stage settings
	if c.DataName == "" {
		c.DataName = "diligent"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.ImageFormat == "" {
		c.ImageFormat = "png"
	}
	c.ImageFormat = strings.TrimPrefix(strings.ToLower(c.ImageFormat), ".")
	if c.ErrorMapMax <= 0 {
		c.ErrorMapMax = 20
	}
	if c.Upscale <= 0 {
		c.Upscale = 1
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// ValidateDictionary checks the settings used to build the dictionary.
func (c *Config) ValidateDictionary() error {
	ec := &errorCompounder{}
	ec.require("candidate_file", c.CandidateFile)
	ec.require("light_file", c.LightFile)
	ec.require("merl_dir", c.MerlDir)
	ec.require("material_file", c.MaterialFile)
	ec.require("dictionary_dir", c.DictionaryDir)
	return ec.toError()
}

// ValidateProjector checks the settings used to compress the dictionary.
func (c *Config) ValidateProjector() error {
	ec := &errorCompounder{}
	ec.require("dictionary_dir", c.DictionaryDir)
	ec.require("projector_dir", c.ProjectorDir)
	if c.Rank < 1 {
		ec.addf("rank must be at least 1, got: %d", c.Rank)
	}
	return ec.toError()
}

// ValidateEstimate checks the settings used to estimate normals.
func (c *Config) ValidateEstimate() error {
	ec := &errorCompounder{}
	ec.require("data_root", c.DataRoot)
	ec.require("object_file", c.ObjectFile)
	ec.require("projector_dir", c.ProjectorDir)
	ec.require("candidate_file", c.CandidateFile)
	ec.require("output_dir", c.OutputDir)
	if !slices.Contains([]string{"png", "webp"}, c.ImageFormat) {
		ec.addf("image_format must be one of: png, webp, got: %q", c.ImageFormat)
	}
	return ec.toError()
}

type errorCompounder struct {
	errors []string
}

func (ec *errorCompounder) addf(msg string, args ...interface{}) {
	ec.errors = append(ec.errors, fmt.Sprintf(msg, args...))
}

func (ec *errorCompounder) require(name, value string) {
	if value == "" {
		ec.addf("%s is required", name)
	}
}

func (ec *errorCompounder) toError() error {
	if len(ec.errors) == 0 {
		return nil
	}
	return fmt.Errorf("config: %s", strings.Join(ec.errors, ", "))
}
