// Package iofs manages gntaxa files: directories, the default
// configuration file and input files with names.
package iofs

import (
	_ "embed"
	"io"
	"os"

	"github.com/gnames/gntaxa/pkg/config"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates configuration, cache and log directories.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the default config.yaml unless it exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// OpenInput opens a file with names or identifiers, one per line.
// Path "-" means standard input.
func OpenInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}
	return f, nil
}

// DumpConfig writes the effective configuration as YAML. API keys and
// the database password are hidden.
func DumpConfig(w io.Writer, cfg *config.Config) error {
	c := *cfg
	c.Sources.EOL.APIKey = hide(c.Sources.EOL.APIKey)
	c.Sources.NCBI.APIKey = hide(c.Sources.NCBI.APIKey)
	c.Archive.Database.Password = hide(c.Archive.Database.Password)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

func hide(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}
