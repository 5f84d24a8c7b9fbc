// Package config provides configuration management for GNtaxa.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - The Config is created once at startup and passed to every component,
// components never change it
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Sources: url, api_key, min_interval_ms (per source), CoL dataset_key
//   - HTTP: timeout, user_agent, debug
//   - Output: format, simplify
//   - Archive: type, path, database connection
//   - Log: level, format, destination
//   - General: continue_on_error, verbose, server_port
//
// Runtime-only fields (CLI flags only):
//   - HTTP.Headers, WithCanonical, Code
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNTAXA_ prefix with underscores for nesting:
//
//	GNTAXA_SOURCES_NCBI_API_KEY=abc123   (ENTREZ_KEY is also recognized)
//	GNTAXA_SOURCES_EOL_API_KEY=abc123
//	GNTAXA_OUTPUT_FORMAT=csv
//	GNTAXA_LOG_LEVEL=info
package config

import (
	"github.com/gnames/gntaxa/pkg/taxon"
)

// Config represents the complete GNtaxa configuration.
type Config struct {
	// Sources contains settings for each external data source.
	Sources SourcesConfig `mapstructure:"sources" yaml:"sources"`

	// HTTP contains transport settings shared by all sources.
	HTTP HTTPConfig `mapstructure:"http" yaml:"http"`

	// Output determines the shape and the format of results.
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// Archive optionally saves results into a database.
	Archive ArchiveConfig `mapstructure:"archive" yaml:"archive"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// ContinueOnError isolates transport failures to the element that
	// caused them. When false (default) the first failure aborts the
	// whole batch.
	ContinueOnError bool `mapstructure:"continue_on_error" yaml:"continue_on_error"`

	// Verbose prints diagnostics about soft failures (unresolved names,
	// empty results) to the console.
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`

	// ServerPort is the port of the REST facade.
	ServerPort int `mapstructure:"server_port" yaml:"server_port"`

	// WithCanonical replaces input names by their canonical form
	// (without authorship) before resolution. By default names are
	// passed to resolvers as is.
	WithCanonical bool `mapstructure:"-" yaml:"-"`

	// Code is the nomenclatural code used for parsing names,
	// "zoological" (default), "botanical", "bacterial" or "virus".
	Code string `mapstructure:"-" yaml:"-"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `mapstructure:"-" yaml:"-"`
}

// SourcesConfig contains settings of every supported data source.
type SourcesConfig struct {
	EOL   SourceConfig `mapstructure:"eol"   yaml:"eol"`
	ITIS  SourceConfig `mapstructure:"itis"  yaml:"itis"`
	NCBI  SourceConfig `mapstructure:"ncbi"  yaml:"ncbi"`
	WoRMS SourceConfig `mapstructure:"worms" yaml:"worms"`
	BOLD  SourceConfig `mapstructure:"bold"  yaml:"bold"`
	CoL   SourceConfig `mapstructure:"col"   yaml:"col"`
}

// SourceConfig contains settings of one data source.
type SourceConfig struct {
	// URL is the base URL of the source API.
	URL string `mapstructure:"url" yaml:"url"`

	// APIKey is an optional key for sources that accept it (EOL, NCBI).
	APIKey string `mapstructure:"api_key" yaml:"api_key,omitempty"`

	// MinIntervalMs is the minimal pause between two consecutive
	// calls to the source in milliseconds. Zero means no limit.
	MinIntervalMs int `mapstructure:"min_interval_ms" yaml:"min_interval_ms"`

	// DatasetKey is the ChecklistBank dataset of the Catalogue of Life.
	// It is ignored by other sources.
	DatasetKey string `mapstructure:"dataset_key" yaml:"dataset_key,omitempty"`
}

// HTTPConfig contains transport settings.
type HTTPConfig struct {
	// TimeoutSec is the timeout of one HTTP request in seconds.
	TimeoutSec int `mapstructure:"timeout" yaml:"timeout"`

	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`

	// Debug logs every request and response status.
	Debug bool `mapstructure:"debug" yaml:"debug"`

	// Headers are passed to the transport unmodified.
	Headers map[string]string `mapstructure:"headers" yaml:"headers,omitempty"`
}

// OutputConfig determines how results are shaped and printed.
type OutputConfig struct {
	// Format can be 'csv', 'tsv', 'compact' or 'pretty'.
	Format string `mapstructure:"format" yaml:"format"`

	// Simplify returns flat lists of the most relevant field instead
	// of full tables.
	Simplify bool `mapstructure:"simplify" yaml:"simplify"`
}

// ArchiveConfig determines where results are saved.
type ArchiveConfig struct {
	// Type can be 'none', 'sqlite' or 'postgres'.
	Type string `mapstructure:"type" yaml:"type"`

	// Path is the SQLite file. Relative paths are placed into the
	// cache directory.
	Path string `mapstructure:"path" yaml:"path"`

	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"     yaml:"host"`
	Port     int    `mapstructure:"port"     yaml:"port"`
	User     string `mapstructure:"user"     yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Sources: SourcesConfig{
			EOL:   SourceConfig{URL: "https://eol.org/api/"},
			ITIS:  SourceConfig{URL: "https://www.itis.gov/ITISWebService/jsonservice/"},
			NCBI:  SourceConfig{URL: "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/", MinIntervalMs: 333},
			WoRMS: SourceConfig{URL: "https://www.marinespecies.org/rest/"},
			BOLD:  SourceConfig{URL: "https://v4.boldsystems.org/index.php/"},
			CoL:   SourceConfig{URL: "https://api.checklistbank.org/", DatasetKey: "3LR"},
		},
		HTTP: HTTPConfig{
			TimeoutSec: 30,
			UserAgent:  "gntaxa (https://github.com/gnames/gntaxa)",
		},
		Output: OutputConfig{
			Format:   "csv",
			Simplify: true,
		},
		Archive: ArchiveConfig{
			Type: "none",
			Path: "gntaxa.sqlite",
			Database: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "postgres",
				Password: "postgres",
				Database: "gntaxa",
				SSLMode:  "disable",
			},
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		ServerPort: 8888,
		Code:       "zoological",
	}

	return res
}

// Source returns settings of a data source.
func (c *Config) Source(src taxon.Source) SourceConfig {
	switch src {
	case taxon.EOL:
		return c.Sources.EOL
	case taxon.ITIS:
		return c.Sources.ITIS
	case taxon.NCBI:
		return c.Sources.NCBI
	case taxon.WoRMS:
		return c.Sources.WoRMS
	case taxon.BOLD:
		return c.Sources.BOLD
	case taxon.CoL:
		return c.Sources.CoL
	default:
		return SourceConfig{}
	}
}

// sourcePtr returns a pointer to settings of a data source, or nil.
func (c *Config) sourcePtr(src taxon.Source) *SourceConfig {
	switch src {
	case taxon.EOL:
		return &c.Sources.EOL
	case taxon.ITIS:
		return &c.Sources.ITIS
	case taxon.NCBI:
		return &c.Sources.NCBI
	case taxon.WoRMS:
		return &c.Sources.WoRMS
	case taxon.BOLD:
		return &c.Sources.BOLD
	case taxon.CoL:
		return &c.Sources.CoL
	default:
		return nil
	}
}
