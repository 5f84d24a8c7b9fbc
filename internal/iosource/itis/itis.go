// Package itis implements resolver and adapters for the Integrated
// Taxonomic Information System JSON web service.
package itis

import (
	"context"
	"net/url"
	"strings"

	"github.com/gnames/gntaxa/internal/iohttp"
	"github.com/gnames/gntaxa/internal/iosource"
	"github.com/gnames/gntaxa/pkg/taxon"
)

// Adapter talks to ITIS.
type Adapter struct {
	cl    *iohttp.Client
	match iosource.Matcher
}

// New creates an ITIS Adapter. If match is nil, names are compared
// ignoring case.
func New(t *iohttp.Transport, match iosource.Matcher) *Adapter {
	return &Adapter{cl: t.Client(taxon.ITIS), match: match.OrDefault()}
}

// Source implements provider.Source.
func (a *Adapter) Source() taxon.Source {
	return taxon.ITIS
}

// Resolve finds TSN for a scientific name.
func (a *Adapter) Resolve(ctx context.Context, name string) (*taxon.ID, error) {
	if iosource.Blank(name) {
		return nil, nil
	}
	q := url.Values{}
	q.Set("srchKey", strings.TrimSpace(name))
	u := a.cl.URL(q, "searchByScientificName")

	var resp searchResponse
	ok, err := a.cl.GetJSON(ctx, u, &resp)
	if err != nil || !ok {
		return nil, err
	}
	hits := compact(resp.ScientificNames)
	best, ok := iosource.Best(
		name, hits,
		func(h *scientificName) string { return h.CombinedName },
		nil,
		a.match,
	)
	if !ok {
		return nil, nil
	}
	id := taxon.NewID(taxon.ITIS, best.TSN)
	id.Name = best.CombinedName
	return &id, nil
}

// CommonNames returns vernacular names of a TSN.
func (a *Adapter) CommonNames(
	ctx context.Context,
	id taxon.ID,
) ([]taxon.CommonName, error) {
	if id.Value == "" {
		return nil, nil
	}
	q := url.Values{}
	q.Set("tsn", id.Value)
	u := a.cl.URL(q, "getCommonNamesFromTSN")

	var resp commonNamesResponse
	ok, err := a.cl.GetJSON(ctx, u, &resp)
	if err != nil || !ok {
		return nil, err
	}

	var res []taxon.CommonName
	for _, v := range compact(resp.CommonNames) {
		if v.CommonName == "" {
			continue
		}
		res = append(res, taxon.CommonName{
			Name:     v.CommonName,
			Language: v.Language,
			Source:   taxon.ITIS.String(),
		})
	}
	taxon.NormalizeCommonNames(res)
	return res, nil
}

// Classification returns the path from the root down to the taxon.
func (a *Adapter) Classification(
	ctx context.Context,
	id taxon.ID,
) ([]taxon.Taxon, error) {
	if id.Value == "" {
		return nil, nil
	}
	q := url.Values{}
	q.Set("tsn", id.Value)
	u := a.cl.URL(q, "getFullHierarchyFromTSN")

	var resp hierarchyResponse
	ok, err := a.cl.GetJSON(ctx, u, &resp)
	if err != nil || !ok {
		return nil, err
	}

	var res []taxon.Taxon
	for _, v := range compact(resp.HierarchyList) {
		// full hierarchy lists immediate children after the taxon
		if v.ParentTSN == id.Value {
			continue
		}
		res = append(res, v.taxon())
	}
	return res, nil
}

// Children returns immediate children of the taxon.
func (a *Adapter) Children(
	ctx context.Context,
	id taxon.ID,
) ([]taxon.Taxon, error) {
	if id.Value == "" {
		return nil, nil
	}
	q := url.Values{}
	q.Set("tsn", id.Value)
	u := a.cl.URL(q, "getHierarchyDownFromTSN")

	var resp hierarchyResponse
	ok, err := a.cl.GetJSON(ctx, u, &resp)
	if err != nil || !ok {
		return nil, err
	}

	var res []taxon.Taxon
	for _, v := range compact(resp.HierarchyList) {
		res = append(res, v.taxon())
	}
	return res, nil
}

// compact removes null entries ITIS puts into empty lists.
func compact[T any](ls []*T) []*T {
	res := make([]*T, 0, len(ls))
	for _, v := range ls {
		if v != nil {
			res = append(res, v)
		}
	}
	return res
}
