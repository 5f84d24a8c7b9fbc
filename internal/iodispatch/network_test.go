package iodispatch_test

import (
	"context"
	"testing"
	"time"

	"github.com/gnames/gntaxa/internal/iodispatch"
	"github.com/gnames/gntaxa/internal/iotesting"
	"github.com/gnames/gntaxa/pkg/config"
	"github.com/gnames/gntaxa/pkg/taxon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests in this file query real web services.

func TestWebBold(t *testing.T) {
	iotesting.SkipNetwork(t)
	assert := assert.New(t)
	require := require.New(t)
	tx := iodispatch.NewWeb(config.New(), nil)

	res, err := tx.TaxonSearch(context.Background(),
		taxon.NamesInput(taxon.BOLD, "Apis", "asdfsdf"))
	require.Nil(err)
	require.Equal(2, len(res))

	tbl := res[0].Table
	require.NotNil(tbl)
	assert.Equal(1, tbl.Len())
	assert.Equal(8, len(tbl.Columns))
	assert.Contains(tbl.Columns, "tax_rank")
	assert.Contains(tbl.Columns, "parentname")

	assert.Equal(1, res[1].Table.Len())
	assert.Equal("asdfsdf", res[1].Table.Rows[0][0])
}

func TestWebDownstream(t *testing.T) {
	iotesting.SkipNetwork(t)
	tx := iodispatch.NewWeb(config.New(), nil)

	res, err := tx.Downstream(context.Background(),
		taxon.NamesInput(taxon.ITIS, "Pinus contorta"), "species")
	require.Nil(t, err)
	assert.True(t, res[0].Missing)
	assert.Equal(t, "no deeper taxa found", res[0].Message)
}

func TestWebNCBIInterval(t *testing.T) {
	iotesting.SkipNetwork(t)
	cfg := config.New()
	tx := iodispatch.NewWeb(cfg, nil)

	ids := taxon.IDsInput(taxon.NewIDs(taxon.NCBI, "9606", "9606")...)
	start := time.Now()
	res, err := tx.CommonNames(context.Background(), ids)
	require.Nil(t, err)
	assert.Equal(t, 2, len(res))
	assert.Equal(t, res[0].Simple, res[1].Simple)
	assert.GreaterOrEqual(t, time.Since(start), 330*time.Millisecond)
}
