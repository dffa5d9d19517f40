package main

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/apriori/config"
	"github.com/katalvlaran/apriori/loader"
	"github.com/katalvlaran/apriori/mining"
)

var errNoInput = errors.New("no input file: pass --input or set input.path in the config file")

// cli holds flag values and the resolved configuration for one invocation.
type cli struct {
	configPath string
	flags      config.Config
	noPruning  bool
	cfg        config.Config
	log        *logrus.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{flags: config.Default(), log: logrus.StandardLogger()}

	root := &cobra.Command{
		Use:   "apriori",
		Short: "Mine frequent itemsets and association rules from transaction files",
		Long: `apriori finds every combination of items that occurs in at least a given
fraction of transactions, using the level-wise Apriori algorithm.

Transactions are read from a basket file (one delimiter-separated transaction
per line) or a CSV file. Settings come from defaults, then an optional YAML
config file, then command-line flags.

Examples:
  # Itemsets present in at least 40% of baskets
  apriori mine --input baskets.txt --min-support 0.4

  # Rules that hold at least 80% of the time, as JSON
  apriori rules --input baskets.csv --format csv --min-confidence 0.8 --output json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.resolve(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&c.configPath, "config", "c", "", "YAML config file")
	pf.StringVarP(&c.flags.Input.Path, "input", "i", "", "transaction file")
	pf.StringVarP(&c.flags.Input.Format, "format", "f", c.flags.Input.Format, "input format: basket|csv")
	pf.StringVarP(&c.flags.Input.Delimiter, "delimiter", "d", c.flags.Input.Delimiter, "item delimiter")
	pf.BoolVar(&c.flags.Input.Header, "header", false, "skip the first record")
	pf.BoolVar(&c.flags.Input.Stream, "stream", false, "re-read the file on every level instead of caching it")
	pf.Float64VarP(&c.flags.Mining.MinSupport, "min-support", "s", c.flags.Mining.MinSupport, "minimum support in [0, 1]")
	pf.IntVar(&c.flags.Mining.MaxLength, "max-length", 0, "longest itemset to mine (0 = unbounded)")
	pf.BoolVar(&c.noPruning, "no-row-pruning", false, "scan every row at every level")
	pf.StringVarP(&c.flags.Output.Format, "output", "o", c.flags.Output.Format, "output format: table|json|yaml")
	pf.StringVar(&c.flags.Log.Level, "log-level", c.flags.Log.Level, "log level: debug|info|warn|error")

	root.AddCommand(newMineCmd(c), newRulesCmd(c))

	return root
}

// resolve merges defaults, the config file and explicitly set flags, then
// configures logging.
func (c *cli) resolve(cmd *cobra.Command) error {
	cfg := config.Default()
	if c.configPath != "" {
		loaded, err := config.LoadFile(c.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	fs := cmd.Flags()
	if fs.Changed("input") {
		cfg.Input.Path = c.flags.Input.Path
	}
	if fs.Changed("format") {
		cfg.Input.Format = c.flags.Input.Format
	}
	if fs.Changed("delimiter") {
		cfg.Input.Delimiter = c.flags.Input.Delimiter
	}
	if fs.Changed("header") {
		cfg.Input.Header = c.flags.Input.Header
	}
	if fs.Changed("stream") {
		cfg.Input.Stream = c.flags.Input.Stream
	}
	if fs.Changed("min-support") {
		cfg.Mining.MinSupport = c.flags.Mining.MinSupport
	}
	if fs.Changed("max-length") {
		cfg.Mining.MaxLength = c.flags.Mining.MaxLength
	}
	if fs.Changed("no-row-pruning") {
		cfg.Mining.RowPruning = !c.noPruning
	}
	if fs.Changed("min-confidence") {
		cfg.Rules.MinConfidence = c.flags.Rules.MinConfidence
	}
	if fs.Changed("output") {
		cfg.Output.Format = c.flags.Output.Format
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = c.flags.Log.Level
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Input.Path == "" {
		return errNoInput
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	c.log.SetLevel(level)
	c.log.SetOutput(cmd.ErrOrStderr())
	c.log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	c.cfg = cfg

	return nil
}

// mine runs mining.Mine over the configured input.
func (c *cli) mine() (*miningResult, error) {
	var src mining.Source[string]
	if c.cfg.Input.Stream {
		f, err := loader.NewFile(c.cfg.Input.Path, c.cfg.LoaderOptions()...)
		if err != nil {
			return nil, err
		}
		src = f
	} else {
		rows, err := loader.ReadAll(c.cfg.Input.Path, c.cfg.LoaderOptions()...)
		if err != nil {
			return nil, err
		}
		src = mining.Materialize(rows)
	}

	c.log.WithFields(logrus.Fields{
		"input":       c.cfg.Input.Path,
		"min_support": c.cfg.Mining.MinSupport,
		"stream":      c.cfg.Input.Stream,
	}).Info("mining transactions")

	levels, n, err := mining.Mine(src, c.cfg.Mining.MinSupport,
		mining.WithLogger(c.log),
		mining.WithMaxLength(c.cfg.Mining.MaxLength),
		mining.WithRowPruning(c.cfg.Mining.RowPruning),
	)
	if err != nil {
		return nil, fmt.Errorf("mining %s: %w", c.cfg.Input.Path, err)
	}
	c.log.WithFields(logrus.Fields{
		"transactions": n,
		"itemsets":     levels.Size(),
	}).Info("mining done")

	return &miningResult{levels: levels, n: n}, nil
}
