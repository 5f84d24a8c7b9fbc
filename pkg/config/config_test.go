package config_test

import (
	"path/filepath"
	"testing"

	"github.com/gnames/gntaxa/pkg/config"
	"github.com/gnames/gntaxa/pkg/taxon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "gntaxa"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "gntaxa"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "gntaxa", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "gntaxa", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestArchivePath(t *testing.T) {
	assert.Equal(t, "/data/res.sqlite", config.ArchivePath("/home/u", "/data/res.sqlite"))
	assert.Equal(t,
		filepath.Join("/home/u", ".cache", "gntaxa", "res.sqlite"),
		config.ArchivePath("/home/u", "res.sqlite"),
	)
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		// Source defaults
		for _, src := range taxon.AllSources {
			assert.NotEmpty(t, cfg.Source(src).URL, src.String())
			assert.Empty(t, cfg.Source(src).APIKey, src.String())
		}
		assert.Equal(t, 333, cfg.Sources.NCBI.MinIntervalMs)
		assert.Equal(t, 0, cfg.Sources.ITIS.MinIntervalMs)
		assert.Equal(t, "3LR", cfg.Sources.CoL.DatasetKey)

		// Output defaults
		assert.Equal(t, "csv", cfg.Output.Format)
		assert.True(t, cfg.Output.Simplify)

		// Archive defaults
		assert.Equal(t, "none", cfg.Archive.Type)
		assert.Equal(t, 5432, cfg.Archive.Database.Port)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		assert.False(t, cfg.ContinueOnError)
		assert.False(t, cfg.Verbose)
		assert.False(t, cfg.WithCanonical)
		assert.Equal(t, 30, cfg.HTTP.TimeoutSec)
	})

	t.Run("unknown source has empty settings", func(t *testing.T) {
		assert.Equal(t, config.SourceConfig{}, cfg.Source(taxon.UnknownSource))
	})
}

func TestOptSourceURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"adds trailing slash", "http://localhost:8080/api", "http://localhost:8080/api/"},
		{"keeps trailing slash", "http://localhost/", "http://localhost/"},
		{"trims spaces", "  http://x.org/  ", "http://x.org/"},
		{"ignores empty", "", "https://www.marinespecies.org/rest/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptSourceURL(taxon.WoRMS, tt.input)})
			assert.Equal(t, tt.expected, cfg.Sources.WoRMS.URL)
		})
	}
}

func TestOptSourceAPIKey(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptSourceAPIKey(taxon.NCBI, " secret "),
		config.OptSourceAPIKey(taxon.UnknownSource, "ignored"),
	})
	assert.Equal(t, "secret", cfg.Sources.NCBI.APIKey)
	assert.Empty(t, cfg.Sources.EOL.APIKey)
}

func TestOptSourceMinInterval(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"sets positive", 500, 500},
		{"sets zero", 0, 0},
		{"ignores negative", -1, 333},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptSourceMinInterval(taxon.NCBI, tt.input)})
			assert.Equal(t, tt.expected, cfg.Sources.NCBI.MinIntervalMs)
		})
	}
}

func TestOptEnums(t *testing.T) {
	tests := []struct {
		name  string
		opt   config.Option
		check func(*config.Config) string
		want  string
	}{
		{
			name:  "valid output format",
			opt:   config.OptOutputFormat("TSV"),
			check: func(c *config.Config) string { return c.Output.Format },
			want:  "tsv",
		},
		{
			name:  "invalid output format",
			opt:   config.OptOutputFormat("xml"),
			check: func(c *config.Config) string { return c.Output.Format },
			want:  "csv",
		},
		{
			name:  "valid archive type",
			opt:   config.OptArchiveType("sqlite"),
			check: func(c *config.Config) string { return c.Archive.Type },
			want:  "sqlite",
		},
		{
			name:  "invalid archive type",
			opt:   config.OptArchiveType("mysql"),
			check: func(c *config.Config) string { return c.Archive.Type },
			want:  "none",
		},
		{
			name:  "valid log level",
			opt:   config.OptLogLevel("Debug"),
			check: func(c *config.Config) string { return c.Log.Level },
			want:  "debug",
		},
		{
			name:  "invalid log destination",
			opt:   config.OptLogDestination("printer"),
			check: func(c *config.Config) string { return c.Log.Destination },
			want:  "file",
		},
		{
			name:  "valid code",
			opt:   config.OptCode("botanical"),
			check: func(c *config.Config) string { return c.Code },
			want:  "botanical",
		},
		{
			name:  "invalid ssl mode",
			opt:   config.OptDatabaseSSLMode("maybe"),
			check: func(c *config.Config) string { return c.Archive.Database.SSLMode },
			want:  "disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt})
			assert.Equal(t, tt.want, tt.check(cfg))
		})
	}
}

func TestOptHTTPHeaders(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHTTPHeaders(map[string]string{
		" X-Test ": " value ",
		"":         "ignored",
	})})
	assert.Equal(t, map[string]string{"X-Test": "value"}, cfg.HTTP.Headers)

	cfg.Update([]config.Option{config.OptHTTPHeaders(nil)})
	assert.Len(t, cfg.HTTP.Headers, 1, "nil headers keep existing ones")
}

func TestMultipleOptions(t *testing.T) {
	t.Run("applies multiple options in order", func(t *testing.T) {
		cfg := config.New()

		opts := []config.Option{
			config.OptSimplify(false),
			config.OptContinueOnError(true),
			config.OptVerbose(true),
			config.OptHTTPTimeout(5),
			config.OptLogLevel("debug"),
		}

		cfg.Update(opts)

		assert.False(t, cfg.Output.Simplify)
		assert.True(t, cfg.ContinueOnError)
		assert.True(t, cfg.Verbose)
		assert.Equal(t, 5, cfg.HTTP.TimeoutSec)
		assert.Equal(t, "debug", cfg.Log.Level)

		// Unchanged fields keep defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "csv", cfg.Output.Format)
	})

	t.Run("later options override earlier ones", func(t *testing.T) {
		cfg := config.New()

		opts := []config.Option{
			config.OptCoLDatasetKey("first"),
			config.OptCoLDatasetKey("second"),
		}

		cfg.Update(opts)

		assert.Equal(t, "second", cfg.Sources.CoL.DatasetKey)
	})
}

func TestToOptions(t *testing.T) {
	t.Run("converts config to options correctly", func(t *testing.T) {
		original := config.New()
		opts := []config.Option{
			config.OptSourceURL(taxon.ITIS, "http://localhost:1234/itis/"),
			config.OptSourceAPIKey(taxon.EOL, "eolkey"),
			config.OptSourceMinInterval(taxon.NCBI, 0),
			config.OptCoLDatasetKey("9923"),
			config.OptHTTPTimeout(7),
			config.OptHTTPDebug(true),
			config.OptOutputFormat("pretty"),
			config.OptSimplify(false),
			config.OptArchiveType("postgres"),
			config.OptDatabaseHost("db.host"),
			config.OptLogLevel("warn"),
			config.OptContinueOnError(true),
			config.OptServerPort(9000),
		}
		original.Update(opts)

		newCfg := config.New()
		newCfg.Update(original.ToOptions())

		assert.Equal(t, original.Sources, newCfg.Sources)
		assert.Equal(t, original.HTTP.TimeoutSec, newCfg.HTTP.TimeoutSec)
		assert.Equal(t, original.HTTP.Debug, newCfg.HTTP.Debug)
		assert.Equal(t, original.Output, newCfg.Output)
		assert.Equal(t, original.Archive, newCfg.Archive)
		assert.Equal(t, original.Log, newCfg.Log)
		assert.Equal(t, original.ContinueOnError, newCfg.ContinueOnError)
		assert.Equal(t, original.ServerPort, newCfg.ServerPort)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptHomeDir("/custom/home"),
			config.OptWithCanonical(true),
			config.OptCode("botanical"),
			config.OptHTTPHeaders(map[string]string{"X-A": "b"}),
		})

		newCfg := config.New()
		newCfg.Update(cfg.ToOptions())

		assert.Equal(t, "", newCfg.HomeDir)
		assert.False(t, newCfg.WithCanonical)
		assert.Equal(t, "zoological", newCfg.Code)
		assert.Nil(t, newCfg.HTTP.Headers)
	})
}
