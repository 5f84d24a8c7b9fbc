// Package bold implements the taxon search of the Barcode of Life Data
// System.
package bold

import (
	"context"
	"net/url"
	"strings"

	"github.com/gnames/gntaxa/internal/iohttp"
	"github.com/gnames/gntaxa/internal/iosource"
	"github.com/gnames/gntaxa/pkg/taxon"
)

// Adapter talks to BOLD.
type Adapter struct {
	cl    *iohttp.Client
	match iosource.Matcher
}

// New creates a BOLD Adapter.
func New(t *iohttp.Transport, match iosource.Matcher) *Adapter {
	return &Adapter{cl: t.Client(taxon.BOLD), match: match.OrDefault()}
}

// Source implements provider.Source.
func (a *Adapter) Source() taxon.Source {
	return taxon.BOLD
}

// Resolve returns BOLD taxid of the best match.
func (a *Adapter) Resolve(ctx context.Context, name string) (*taxon.ID, error) {
	recs, err := a.TaxonSearch(ctx, name)
	if err != nil {
		return nil, err
	}
	best, ok := iosource.Best(
		name, recs,
		func(b taxon.BoldTaxon) string { return b.Taxon },
		nil,
		a.match,
	)
	if !ok || best.TaxID == "" {
		return nil, nil
	}
	id := taxon.NewID(taxon.BOLD, best.TaxID)
	id.Name = best.Taxon
	id.Rank = best.TaxRank
	return &id, nil
}

// TaxonSearch returns BOLD records matching the name exactly.
func (a *Adapter) TaxonSearch(
	ctx context.Context,
	name string,
) ([]taxon.BoldTaxon, error) {
	if iosource.Blank(name) {
		return nil, nil
	}
	name = strings.TrimSpace(name)
	q := url.Values{}
	q.Set("taxName", name)
	q.Set("fuzzy", "false")
	u := a.cl.URL(q, "API_Tax", "TaxonSearch")

	var resp searchResponse
	ok, err := a.cl.GetJSON(ctx, u, &resp)
	if err != nil || !ok {
		return nil, err
	}

	res := make([]taxon.BoldTaxon, 0, len(resp.TopMatchedNames))
	for _, v := range resp.TopMatchedNames {
		res = append(res, taxon.BoldTaxon{
			Input:       name,
			TaxID:       v.TaxID.String(),
			Taxon:       v.Taxon,
			TaxRank:     v.TaxRank,
			TaxDivision: v.TaxDivision,
			ParentID:    v.ParentID.String(),
			ParentName:  v.ParentName,
			TaxonRep:    v.TaxonRep,
		})
	}
	return res, nil
}
