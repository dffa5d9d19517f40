package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/apriori/rules"
)

func newMineCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List frequent itemsets with their support",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := c.mine()
			if err != nil {
				return err
			}

			return writeItemsets(cmd.OutOrStdout(), c.cfg.Output.Format, res)
		},
	}
}

func newRulesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List association rules derived from the frequent itemsets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := c.mine()
			if err != nil {
				return err
			}
			found, err := rules.Generate(res.levels, res.n, c.cfg.Rules.MinConfidence)
			if err != nil {
				return err
			}
			c.log.WithField("rules", len(found)).Info("rules derived")

			return writeRules(cmd.OutOrStdout(), c.cfg.Output.Format, found)
		},
	}
	cmd.Flags().Float64Var(&c.flags.Rules.MinConfidence, "min-confidence", c.flags.Rules.MinConfidence, "minimum confidence in [0, 1]")

	return cmd
}
