package bold_test

import (
	"context"
	"testing"

	"github.com/gnames/gntaxa/internal/iosource/bold"
	"github.com/gnames/gntaxa/internal/iotesting"
	"github.com/gnames/gntaxa/pkg/taxon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apis = `{"top_matched_names":[{"taxid":125295,"taxon":"Apis","tax_rank":"genus",
"tax_division":"Animals","parentid":"2391","parentname":"Apidae",
"taxonrep":"Apis mellifera","representitive_image":{}}],"total_matched_names":1}`

func newAdapter(t *testing.T) *bold.Adapter {
	srv := iotesting.NewServer(t, map[string]iotesting.Route{
		"/API_Tax/TaxonSearch?fuzzy=false&taxName=Apis":    iotesting.JSON(apis),
		"/API_Tax/TaxonSearch?fuzzy=false&taxName=asdfsdf": iotesting.JSON(`[]`),
	})
	return bold.New(srv.Transport(taxon.BOLD), nil)
}

func TestTaxonSearch(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	a := newAdapter(t)
	ctx := context.Background()
	assert.Equal(taxon.BOLD, a.Source())

	res, err := a.TaxonSearch(ctx, "Apis")
	require.Nil(err)
	require.Equal(1, len(res))
	assert.Equal(taxon.BoldTaxon{
		Input:       "Apis",
		TaxID:       "125295",
		Taxon:       "Apis",
		TaxRank:     "genus",
		TaxDivision: "Animals",
		ParentID:    "2391",
		ParentName:  "Apidae",
		TaxonRep:    "Apis mellifera",
	}, res[0])
	assert.Equal(len(taxon.BoldColumns), len(res[0].Values()))

	res, err = a.TaxonSearch(ctx, "asdfsdf")
	assert.Nil(err)
	assert.Empty(res)
}

func TestResolve(t *testing.T) {
	assert := assert.New(t)
	a := newAdapter(t)
	ctx := context.Background()

	id, err := a.Resolve(ctx, "Apis")
	assert.Nil(err)
	assert.Equal("125295", id.Value)
	assert.Equal("genus", id.Rank)

	id, err = a.Resolve(ctx, "asdfsdf")
	assert.Nil(err)
	assert.Nil(id)
}
