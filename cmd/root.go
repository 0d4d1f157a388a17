package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Single-page personal portfolio",
	Long: `Serves a single-page personal portfolio over HTTP, or previews the same
page in the terminal. Page copy comes from a YAML content file.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "portfolio.yml", "config file path")
}

// load reads and validates the config and the portfolio content it points at.
func load() (*config.Config, *content.Portfolio, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	p, err := content.Load(cfg.Content.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading content: %w", err)
	}
	return cfg, p, nil
}
