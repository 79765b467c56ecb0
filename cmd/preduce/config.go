package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-sif/preduce"
	"github.com/go-sif/preduce/datasource"
	"github.com/go-sif/preduce/harness"
	"github.com/go-sif/preduce/logging"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// runConfig holds every setting of the run command. Values come from defaults, then an
// optional YAML file, then any flags given explicitly on the command line.
type runConfig struct {
	Strategies  []string `yaml:"strategies"`
	Workers     int      `yaml:"workers"`
	Sweep       []int    `yaml:"sweep"` // worker counts to benchmark in turn; overrides Workers
	Repetitions int      `yaml:"repetitions"`
	Warmup      int      `yaml:"warmup"`
	Input       string   `yaml:"input"`     // JSON lines file; takes precedence over Generate
	Path        string   `yaml:"path"`      // gjson path of the value on each input line
	Generate    string   `yaml:"generate"`  // dataset kind, used when Input is empty
	N           int      `yaml:"n"`         // generated dataset length
	Seed        int64    `yaml:"seed"`      // generated dataset seed
	Transform   string   `yaml:"transform"` // identity, square, sqrt or spin
	Accumulator string   `yaml:"accumulator"`
	Out         string   `yaml:"out"`
	Label       string   `yaml:"label"`
	LogLevel    string   `yaml:"log_level"`
}

func defaultRunConfig() *runConfig {
	return &runConfig{
		Workers:     runtime.GOMAXPROCS(0),
		Repetitions: harness.DefaultRepetitions,
		Warmup:      harness.DefaultWarmup,
		Path:        "value",
		Generate:    string(datasource.Uniform),
		N:           1 << 20,
		Seed:        1,
		Transform:   "identity",
		Accumulator: "sum",
		LogLevel:    "warn",
	}
}

// loadRunConfig overlays the YAML file at path onto the defaults
func loadRunConfig(path string) (*runConfig, error) {
	conf := defaultRunConfig()
	if len(path) == 0 {
		return conf, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.UnmarshalStrict(data, conf); err != nil {
		return nil, fmt.Errorf("Unable to parse config file %s: %w", path, err)
	}
	return conf, nil
}

func (c *runConfig) bindFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSliceVarP(&c.Strategies, "strategy", "s", c.Strategies, "strategies to benchmark (repeatable; default all)")
	f.IntVarP(&c.Workers, "workers", "w", c.Workers, "number of workers")
	f.IntSliceVar(&c.Sweep, "sweep", c.Sweep, "benchmark each of these worker counts in turn (overrides --workers)")
	f.IntVarP(&c.Repetitions, "repetitions", "r", c.Repetitions, "number of timed invocations")
	f.IntVar(&c.Warmup, "warmup", c.Warmup, "number of untimed invocations")
	f.StringVarP(&c.Input, "input", "i", c.Input, "JSON lines input file")
	f.StringVar(&c.Path, "path", c.Path, "gjson path of the value on each input line")
	f.StringVar(&c.Generate, "generate", c.Generate, "generated dataset kind (uniform, sequence, skewed)")
	f.IntVar(&c.N, "n", c.N, "generated dataset length")
	f.Int64Var(&c.Seed, "seed", c.Seed, "generated dataset seed")
	f.StringVarP(&c.Transform, "transform", "t", c.Transform, "per-element transform (identity, square, sqrt, spin)")
	f.StringVarP(&c.Accumulator, "accumulator", "a", c.Accumulator, "accumulator (sum, count, max)")
	f.StringVarP(&c.Out, "out", "o", c.Out, "save the reports to this file")
	f.StringVar(&c.Label, "label", c.Label, "label stored with saved reports")
	f.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (trace, debug, info, warn, error, fatal)")
}

// overrideFrom copies into c every flag the user set explicitly in flagged
func (c *runConfig) overrideFrom(cmd *cobra.Command, flagged *runConfig) {
	f := cmd.Flags()
	set := func(name string, apply func()) {
		if f.Changed(name) {
			apply()
		}
	}
	set("strategy", func() { c.Strategies = flagged.Strategies })
	set("workers", func() { c.Workers = flagged.Workers })
	set("sweep", func() { c.Sweep = flagged.Sweep })
	set("repetitions", func() { c.Repetitions = flagged.Repetitions })
	set("warmup", func() { c.Warmup = flagged.Warmup })
	set("input", func() { c.Input = flagged.Input })
	set("path", func() { c.Path = flagged.Path })
	set("generate", func() { c.Generate = flagged.Generate })
	set("n", func() { c.N = flagged.N })
	set("seed", func() { c.Seed = flagged.Seed })
	set("transform", func() { c.Transform = flagged.Transform })
	set("accumulator", func() { c.Accumulator = flagged.Accumulator })
	set("out", func() { c.Out = flagged.Out })
	set("label", func() { c.Label = flagged.Label })
	set("log-level", func() { c.LogLevel = flagged.LogLevel })
}

func (c *runConfig) strategyTags() ([]preduce.StrategyTag, error) {
	if len(c.Strategies) == 0 {
		return preduce.AllStrategies, nil
	}
	tags := make([]preduce.StrategyTag, 0, len(c.Strategies))
	for _, name := range c.Strategies {
		if name == "all" {
			return preduce.AllStrategies, nil
		}
		tag, err := preduce.ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// harnessOptions returns one set of Options per worker count to benchmark
func (c *runConfig) harnessOptions() ([]*harness.Options, error) {
	level, err := logging.LevelFromString(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(level)
	if err != nil {
		return nil, err
	}
	base := &harness.Options{
		Workers:     c.Workers,
		Repetitions: c.Repetitions,
		Warmup:      c.Warmup,
		Logger:      logger,
	}
	if len(c.Sweep) == 0 {
		return []*harness.Options{base}, base.Validate()
	}
	sweep := make([]*harness.Options, 0, len(c.Sweep))
	for _, workers := range c.Sweep {
		opts := harness.CloneOptions(base)
		opts.Workers = workers
		if err := opts.Validate(); err != nil {
			return nil, err
		}
		sweep = append(sweep, opts)
	}
	return sweep, nil
}
