package cmd

import (
	"testing"

	"github.com/gnames/gntaxa/pkg/config"
	"github.com/gnames/gntaxa/pkg/taxon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagOptions(t *testing.T) {
	assert := assert.New(t)
	cmd := getQueryCmd(queries[1])
	require.Nil(t, cmd.ParseFlags([]string{
		"-f", "tsv", "--simplify=false", "-c", "--canonical",
		"--code", "botanical", "--header", "X-Token: abc",
	}))

	cfg := config.New()
	cfg.Update(flagOptions(cmd))
	assert.Equal("tsv", cfg.Output.Format)
	assert.False(cfg.Output.Simplify)
	assert.True(cfg.ContinueOnError)
	assert.True(cfg.WithCanonical)
	assert.Equal("botanical", cfg.Code)
	assert.Equal(map[string]string{"X-Token": "abc"}, cfg.HTTP.Headers)
	assert.False(cfg.Verbose, "flags that were not set keep config values")
	assert.Equal("none", cfg.Archive.Type)
}

func TestFlagOptionsServe(t *testing.T) {
	cmd := getServeCmd()
	require.Nil(t, cmd.ParseFlags([]string{"-p", "9000"}))
	cfg := config.New()
	cfg.Update(flagOptions(cmd))
	assert.Equal(t, 9000, cfg.ServerPort)
}

func TestParseHeaders(t *testing.T) {
	res := parseHeaders([]string{"A: 1", "B:2:3", "broken", ": x"})
	assert.Equal(t, map[string]string{"A": "1", "B": "2:3"}, res)
}

func TestQueryCmd(t *testing.T) {
	assert := assert.New(t)
	for _, v := range queries {
		cmd := getQueryCmd(v)
		assert.Contains(cmd.Use, string(v.op))
		assert.NotNil(cmd.Flags().Lookup("source"))
		assert.NotNil(cmd.Flags().Lookup("input"))
		assert.Equal(v.op == taxon.OpDownstream,
			cmd.Flags().Lookup("rank") != nil)
	}
}
