package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gntaxa/pkg/taxon"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, HTTP.Headers, WithCanonical, Code).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	for _, src := range taxon.AllSources {
		sc := c.Source(src)
		if sc.URL != "" {
			res = append(res, OptSourceURL(src, sc.URL))
		}
		if sc.APIKey != "" {
			res = append(res, OptSourceAPIKey(src, sc.APIKey))
		}
		if sc.MinIntervalMs >= 0 {
			res = append(res, OptSourceMinInterval(src, sc.MinIntervalMs))
		}
	}
	s = c.Sources.CoL.DatasetKey
	if s != "" {
		res = append(res, OptCoLDatasetKey(s))
	}

	i = c.HTTP.TimeoutSec
	if i > 0 {
		res = append(res, OptHTTPTimeout(i))
	}
	s = c.HTTP.UserAgent
	if s != "" {
		res = append(res, OptHTTPUserAgent(s))
	}
	res = append(res, OptHTTPDebug(c.HTTP.Debug))

	s = c.Output.Format
	if s != "" {
		res = append(res, OptOutputFormat(s))
	}
	res = append(res, OptSimplify(c.Output.Simplify))

	s = c.Archive.Type
	if s != "" {
		res = append(res, OptArchiveType(s))
	}
	s = c.Archive.Path
	if s != "" {
		res = append(res, OptArchivePath(s))
	}
	s = c.Archive.Database.Host
	if s != "" {
		res = append(res, OptDatabaseHost(s))
	}
	i = c.Archive.Database.Port
	if i > 0 {
		res = append(res, OptDatabasePort(i))
	}
	s = c.Archive.Database.User
	if s != "" {
		res = append(res, OptDatabaseUser(s))
	}
	s = c.Archive.Database.Password
	if s != "" {
		res = append(res, OptDatabasePassword(s))
	}
	s = c.Archive.Database.Database
	if s != "" {
		res = append(res, OptDatabaseDatabase(s))
	}
	s = c.Archive.Database.SSLMode
	if s != "" {
		res = append(res, OptDatabaseSSLMode(s))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	res = append(res, OptContinueOnError(c.ContinueOnError))
	res = append(res, OptVerbose(c.Verbose))

	i = c.ServerPort
	if i > 0 {
		res = append(res, OptServerPort(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidNonNegative(name string, i int) bool {
	res := i >= 0
	if !res {
		gn.Warn("<em>%s</em> cannot be negative, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Database.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
		"Output.Format":   {"csv": s, "tsv": s, "compact": s, "pretty": s},
		"Archive.Type":    {"none": s, "sqlite": s, "postgres": s},
		"Code": {"zoological": s, "botanical": s, "bacterial": s,
			"virus": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	} else {
		gn.Warn(
			"<em>%s</em> does not support '%s' as a value. "+
				"Valid values are: \n%s\nIgnoring...",
			name, val, strings.Join(lines, "\n"),
		)
		return false
	}
}
