// Package config loads the YAML configuration of the apriori command-line tool.
//
// A configuration file may set any subset of the fields below; everything
// else keeps its default. Values of the form ${VAR} or $VAR are expanded
// from the environment before parsing.
//
//	input:
//	  path: baskets.txt
//	  format: basket     # basket | csv
//	  delimiter: ","
//	  header: false
//	  stream: false      # re-read the file on every level instead of caching it
//	mining:
//	  min_support: 0.5
//	  max_length: 0      # 0 = unbounded
//	  row_pruning: true
//	rules:
//	  min_confidence: 0.5
//	output:
//	  format: table      # table | json | yaml
//	log:
//	  level: info
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/apriori/loader"
)

var (
	// ErrConfigNotFound indicates that the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: file not found")

	// ErrInvalidConfig indicates a configuration that fails validation or parsing.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config is the full tool configuration.
type Config struct {
	Input  Input  `yaml:"input"`
	Mining Mining `yaml:"mining"`
	Rules  Rules  `yaml:"rules"`
	Output Output `yaml:"output"`
	Log    Log    `yaml:"log"`
}

// Input describes the transaction file.
type Input struct {
	Path      string `yaml:"path"`
	Format    string `yaml:"format"`
	Delimiter string `yaml:"delimiter"`
	Header    bool   `yaml:"header"`
	Stream    bool   `yaml:"stream"`
}

// Mining holds the parameters passed to mining.Mine.
type Mining struct {
	MinSupport float64 `yaml:"min_support"`
	MaxLength  int     `yaml:"max_length"`
	RowPruning bool    `yaml:"row_pruning"`
}

// Rules holds the parameters passed to rules.Generate.
type Rules struct {
	MinConfidence float64 `yaml:"min_confidence"`
}

// Output selects the result encoding.
type Output struct {
	Format string `yaml:"format"`
}

// Log configures logrus.
type Log struct {
	Level string `yaml:"level"`
}

// Output formats understood by the CLI.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Input: Input{
			Format:    string(loader.FormatBasket),
			Delimiter: ",",
		},
		Mining: Mining{
			MinSupport: 0.5,
			RowPruning: true,
		},
		Rules:  Rules{MinConfidence: 0.5},
		Output: Output{Format: OutputTable},
		Log:    Log{Level: logrus.InfoLevel.String()},
	}
}

// LoadFile reads path on top of the defaults and validates the result.
func LoadFile(path string) (Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if info.IsDir() {
		return Config{}, fmt.Errorf("%w: %s is a directory", ErrInvalidConfig, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	return Load(bytes.NewReader(data))
}

// Load reads YAML from r on top of the defaults and validates the result.
func Load(r io.Reader) (Config, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(raw)))))
	dec.KnownFields(true)
	if err = dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks ranges and enumerations. The input path is not required
// here because the CLI may supply it as a flag.
func (c Config) Validate() error {
	if _, err := loader.ParseFormat(c.Input.Format); err != nil {
		return fmt.Errorf("%w: input.format: %w", ErrInvalidConfig, err)
	}
	if utf8.RuneCountInString(c.Input.Delimiter) != 1 {
		return fmt.Errorf("%w: input.delimiter must be a single character, got %q", ErrInvalidConfig, c.Input.Delimiter)
	}
	if !inUnitInterval(c.Mining.MinSupport) {
		return fmt.Errorf("%w: mining.min_support must be in [0, 1], got %v", ErrInvalidConfig, c.Mining.MinSupport)
	}
	if c.Mining.MaxLength < 0 {
		return fmt.Errorf("%w: mining.max_length must be non-negative, got %d", ErrInvalidConfig, c.Mining.MaxLength)
	}
	if !inUnitInterval(c.Rules.MinConfidence) {
		return fmt.Errorf("%w: rules.min_confidence must be in [0, 1], got %v", ErrInvalidConfig, c.Rules.MinConfidence)
	}
	switch c.Output.Format {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("%w: output.format must be table, json or yaml, got %q", ErrInvalidConfig, c.Output.Format)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}

	return nil
}

// DelimiterRune returns the input delimiter as a rune.
func (c Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Input.Delimiter)
	return r
}

// LoaderOptions translates the input section into loader options.
func (c Config) LoaderOptions() []loader.Option {
	opts := []loader.Option{
		loader.WithFormat(loader.Format(c.Input.Format)),
		loader.WithDelimiter(c.DelimiterRune()),
	}
	if c.Input.Header {
		opts = append(opts, loader.WithHeader())
	}

	return opts
}

func inUnitInterval(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
