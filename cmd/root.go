/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gntaxa/internal/iofs"
	"github.com/gnames/gntaxa/internal/iologger"
	gntaxa "github.com/gnames/gntaxa/pkg"
	"github.com/gnames/gntaxa/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd creates the base command with all subcommands.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", gntaxa.Version, gntaxa.Build),
		Use:     "gntaxa",
		Short:   "GNtaxa queries taxonomic web services",
		Long: `GNtaxa is a unified client for taxonomic web services: Encyclopedia
of Life (eol), ITIS (itis), NCBI Taxonomy (ncbi), WoRMS (worms),
BOLD Systems (bold) and Catalogue of Life (col).

Names are resolved to identifiers of the chosen source, and data for
these identifiers are returned in a normalized form. Identifiers can
be given directly with --id flag.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNTAXA_*)
  3. Config file (~/.config/gntaxa/config.yaml)
  4. Built-in defaults

Environment Variables:
  GNTAXA_SOURCES_NCBI_API_KEY     NCBI API key (ENTREZ_KEY works too)
  GNTAXA_SOURCES_EOL_API_KEY      EOL API key
  GNTAXA_OUTPUT_FORMAT            csv, tsv, compact or pretty
  GNTAXA_LOG_LEVEL                Log level (debug/info/warn/error)

  See 'go doc github.com/gnames/gntaxa/pkg/config' for complete list.`,
		PersistentPreRunE: bootstrap,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "gntaxa version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gntaxa")

	for _, v := range queries {
		rootCmd.AddCommand(getQueryCmd(v))
	}
	rootCmd.AddCommand(getServeCmd())
	rootCmd.AddCommand(getConfigCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	logDir := config.LogDir(homeDir)
	if err = iologger.Init(logDir, defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// flags override config file and environment
	cfg.Update(flagOptions(cmd))

	// Reconfigure logging with user's settings, keep messages of this run
	if err = iologger.Init(logDir, cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	// fields missing from an older config file keep default values
	res := config.New()
	if err = v.Unmarshal(res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("GNTAXA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Sources configuration
	for _, src := range []string{"eol", "itis", "ncbi", "worms", "bold", "col"} {
		_ = v.BindEnv("sources." + src + ".url")
		_ = v.BindEnv("sources." + src + ".min_interval_ms")
	}
	_ = v.BindEnv("sources.eol.api_key")
	_ = v.BindEnv("sources.ncbi.api_key", "GNTAXA_SOURCES_NCBI_API_KEY", "ENTREZ_KEY")
	_ = v.BindEnv("sources.col.dataset_key")

	// HTTP configuration
	_ = v.BindEnv("http.timeout")
	_ = v.BindEnv("http.user_agent")
	_ = v.BindEnv("http.debug")

	// Output and archive configuration
	_ = v.BindEnv("output.format")
	_ = v.BindEnv("output.simplify")
	_ = v.BindEnv("archive.type")
	_ = v.BindEnv("archive.path")
	_ = v.BindEnv("archive.database.host")
	_ = v.BindEnv("archive.database.port")
	_ = v.BindEnv("archive.database.user")
	_ = v.BindEnv("archive.database.password")
	_ = v.BindEnv("archive.database.database")
	_ = v.BindEnv("archive.database.ssl_mode")

	// Log configuration
	_ = v.BindEnv("log.level")
	_ = v.BindEnv("log.format")
	_ = v.BindEnv("log.destination")

	// General configuration
	_ = v.BindEnv("continue_on_error")
	_ = v.BindEnv("verbose")
	_ = v.BindEnv("server_port")

	v.AutomaticEnv()
}
