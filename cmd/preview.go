package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/preview"
)

var previewTheme string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the portfolio in the terminal",
	Long: `Renders the portfolio in the terminal with the same scroll progress,
section highlighting and hero typing animation as the web page.

Keys: j/k or arrows scroll, space/PgDn page, g/G top/bottom,
1-8 jump to a section, t toggle theme, q quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, p, err := load()
		if err != nil {
			return err
		}
		theme := cfg.Theme.Default
		if previewTheme != "" {
			theme = previewTheme
		}
		return preview.Run(p, theme)
	},
}

func init() {
	previewCmd.Flags().StringVar(&previewTheme, "theme", "", "dark or light (defaults to theme.default)")
	rootCmd.AddCommand(previewCmd)
}
