package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-breakout/internal/config"
)

var flagEffective bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the configuration",
	Long: `Print the built-in default configuration as YAML. Copy it to
~/.breakout/configs/breakout.yaml or ./configs/breakout.yaml and edit it;
keys you leave out keep their defaults.

With --effective the configuration that would be used is printed instead:
the first config file found layered over the defaults, with --config and
--difficulty applied.

Examples:
  breakout config > ~/.breakout/configs/breakout.yaml
  breakout config --effective --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagEffective, "effective", false, "Print the configuration in effect")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if !flagEffective {
		_, err := out.Write(config.DefaultYAML())
		return err
	}

	cfg, err := config.LoadBreakout(flagConfig)
	if err != nil {
		return err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	config.ApplyBreakoutPreset(&cfg, preset)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}
	_, err = out.Write(data)
	return err
}
