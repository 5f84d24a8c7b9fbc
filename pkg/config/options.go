package config

import (
	"strings"

	"github.com/gnames/gntaxa/pkg/taxon"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptSourceURL sets the base URL of a data source API.
func OptSourceURL(src taxon.Source, s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		sc := c.sourcePtr(src)
		if sc == nil || !isValidString(src.String()+" URL", s) {
			return
		}
		if !strings.HasSuffix(s, "/") {
			s += "/"
		}
		sc.URL = s
	}
}

// OptSourceAPIKey sets an API key for a data source.
// Empty keys are accepted and mean "no key".
func OptSourceAPIKey(src taxon.Source, s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if sc := c.sourcePtr(src); sc != nil {
			sc.APIKey = s
		}
	}
}

// OptSourceMinInterval sets the minimal pause between calls to a data
// source in milliseconds. Zero removes the limit.
func OptSourceMinInterval(src taxon.Source, ms int) Option {
	return func(c *Config) {
		sc := c.sourcePtr(src)
		if sc == nil || !isValidNonNegative(src.String()+" Min Interval", ms) {
			return
		}
		sc.MinIntervalMs = ms
	}
}

// OptCoLDatasetKey sets the ChecklistBank dataset key used for
// Catalogue of Life queries.
func OptCoLDatasetKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("CoL Dataset Key", s) {
			c.Sources.CoL.DatasetKey = s
		}
	}
}

// OptHTTPTimeout sets the timeout of one HTTP request in seconds.
func OptHTTPTimeout(i int) Option {
	return func(c *Config) {
		if isValidInt("HTTP Timeout", i) {
			c.HTTP.TimeoutSec = i
		}
	}
}

// OptHTTPUserAgent sets the User-Agent header.
func OptHTTPUserAgent(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("HTTP User Agent", s) {
			c.HTTP.UserAgent = s
		}
	}
}

// OptHTTPDebug enables logging of every request.
func OptHTTPDebug(b bool) Option {
	return func(c *Config) {
		c.HTTP.Debug = b
	}
}

// OptHTTPHeaders sets headers passed to the transport as is.
// Runtime-only field - not in ToOptions().
func OptHTTPHeaders(h map[string]string) Option {
	return func(c *Config) {
		if len(h) == 0 {
			return
		}
		res := make(map[string]string, len(h))
		for k, v := range h {
			k = strings.TrimSpace(k)
			if !isValidString("HTTP Header", k) {
				continue
			}
			res[k] = strings.TrimSpace(v)
		}
		c.HTTP.Headers = res
	}
}

// OptOutputFormat sets the output format.
// Valid values: "csv", "tsv", "compact", "pretty".
func OptOutputFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Output.Format", s) {
			c.Output.Format = s
		}
	}
}

// OptSimplify sets the simplify flag.
func OptSimplify(b bool) Option {
	return func(c *Config) {
		c.Output.Simplify = b
	}
}

// OptArchiveType sets where results are archived.
// Valid values: "none", "sqlite", "postgres".
func OptArchiveType(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Archive.Type", s) {
			c.Archive.Type = s
		}
	}
}

// OptArchivePath sets the SQLite archive file.
func OptArchivePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Archive Path", s) {
			c.Archive.Path = s
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Archive.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Archive.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Archive.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Archive.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Archive.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Archive.Database.SSLMode = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptContinueOnError sets the batch error policy.
func OptContinueOnError(b bool) Option {
	return func(c *Config) {
		c.ContinueOnError = b
	}
}

// OptVerbose enables console diagnostics of soft failures.
func OptVerbose(b bool) Option {
	return func(c *Config) {
		c.Verbose = b
	}
}

// OptServerPort sets the port of the REST facade.
func OptServerPort(i int) Option {
	return func(c *Config) {
		if isValidInt("Server Port", i) {
			c.ServerPort = i
		}
	}
}

// OptWithCanonical sets canonical form conversion of input names.
// Runtime-only field - not in ToOptions().
func OptWithCanonical(b bool) Option {
	return func(c *Config) {
		c.WithCanonical = b
	}
}

// OptCode sets nomenclatural code for name parsing.
// Valid values: "zoological", "botanical", "bacterial", "virus".
// Runtime-only field - not in ToOptions().
func OptCode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Code", s) {
			c.Code = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
