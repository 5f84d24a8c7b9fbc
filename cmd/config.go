package cmd

import (
	"os"

	"github.com/gnames/gn"
	"github.com/gnames/gntaxa/internal/iofs"
	"github.com/gnames/gntaxa/pkg/config"
	"github.com/spf13/cobra"
)

func getConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show effective configuration",
		Long: `Print configuration after applying config file, environment
variables and defaults. API keys and passwords are hidden.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gn.Info("Config file: <em>%s</em>", config.ConfigFilePath(cfg.HomeDir))
			err := iofs.DumpConfig(os.Stdout, cfg)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
}
