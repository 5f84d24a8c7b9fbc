package iodispatch

import (
	"github.com/gnames/gntaxa/internal/iohttp"
	"github.com/gnames/gntaxa/internal/iosource"
	"github.com/gnames/gntaxa/internal/iosource/bold"
	"github.com/gnames/gntaxa/internal/iosource/col"
	"github.com/gnames/gntaxa/internal/iosource/eol"
	"github.com/gnames/gntaxa/internal/iosource/itis"
	"github.com/gnames/gntaxa/internal/iosource/ncbi"
	"github.com/gnames/gntaxa/internal/iosource/worms"
	gntaxa "github.com/gnames/gntaxa/pkg"
	"github.com/gnames/gntaxa/pkg/config"
	"github.com/gnames/gntaxa/pkg/parserpool"
)

// NewWeb creates a dispatcher over all supported web services. If the
// parser pool is given, names returned by services are compared with
// queries by their canonical forms.
func NewWeb(cfg *config.Config, pool parserpool.Pool) gntaxa.Taxa {
	t := iohttp.NewTransport(cfg)
	var match iosource.Matcher
	if pool != nil {
		match = pool.SameName
	}
	return New(cfg, pool,
		eol.New(t, match),
		itis.New(t, match),
		ncbi.New(t),
		worms.New(t, match),
		bold.New(t, match),
		col.New(t, cfg.Sources.CoL.DatasetKey, match),
	)
}
