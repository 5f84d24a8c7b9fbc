// Package eol implements resolver and adapters for the Encyclopedia of
// Life API.
package eol

import (
	"context"
	"net/url"
	"strings"

	"github.com/gnames/gntaxa/internal/iohttp"
	"github.com/gnames/gntaxa/internal/iosource"
	"github.com/gnames/gntaxa/pkg/taxon"
)

// Adapter talks to EOL.
type Adapter struct {
	cl    *iohttp.Client
	match iosource.Matcher
}

// New creates an EOL Adapter.
func New(t *iohttp.Transport, match iosource.Matcher) *Adapter {
	return &Adapter{cl: t.Client(taxon.EOL), match: match.OrDefault()}
}

// Source implements provider.Source.
func (a *Adapter) Source() taxon.Source {
	return taxon.EOL
}

// Resolve returns the page ID of the best exact search hit.
func (a *Adapter) Resolve(ctx context.Context, name string) (*taxon.ID, error) {
	hits, err := a.search(ctx, name, true)
	if err != nil {
		return nil, err
	}
	best, ok := iosource.Best(
		name, hits,
		func(h searchHit) string { return h.Title },
		nil,
		a.match,
	)
	if !ok {
		return nil, nil
	}
	id := taxon.NewID(taxon.EOL, best.ID.String())
	id.Name = best.Title
	return &id, nil
}

// ResolveAll returns page IDs of all search hits whose title contains
// the name.
func (a *Adapter) ResolveAll(ctx context.Context, name string) ([]taxon.ID, error) {
	hits, err := a.search(ctx, name, false)
	if err != nil {
		return nil, err
	}
	name = strings.ToLower(strings.TrimSpace(name))

	var res []taxon.ID
	for _, v := range hits {
		if v.ID == "" || !strings.Contains(strings.ToLower(v.Title), name) {
			continue
		}
		id := taxon.NewID(taxon.EOL, v.ID.String())
		id.Name = v.Title
		res = append(res, id)
	}
	return res, nil
}

// CommonNames returns vernacular names of an EOL page.
func (a *Adapter) CommonNames(
	ctx context.Context,
	id taxon.ID,
) ([]taxon.CommonName, error) {
	if id.Value == "" {
		return nil, nil
	}
	q := a.query()
	q.Set("common_names", "true")
	q.Set("details", "false")
	q.Set("images_per_page", "0")
	q.Set("texts_per_page", "0")
	u := a.cl.URL(q, "pages", "1.0", id.Value+".json")

	var resp pageResponse
	ok, err := a.cl.GetJSON(ctx, u, &resp)
	if err != nil || !ok {
		return nil, err
	}

	res := make([]taxon.CommonName, 0, len(resp.TaxonConcept.VernacularNames))
	for _, v := range resp.TaxonConcept.VernacularNames {
		if v.VernacularName == "" {
			continue
		}
		res = append(res, taxon.CommonName{
			Name:     v.VernacularName,
			Language: v.Language,
			Source:   taxon.EOL.String(),
		})
	}
	taxon.NormalizeCommonNames(res)
	return res, nil
}

// DataObjects returns metadata of an EOL data object.
func (a *Adapter) DataObjects(
	ctx context.Context,
	id taxon.ID,
) ([]taxon.DataObject, error) {
	if id.Value == "" {
		return nil, nil
	}
	q := a.query()
	q.Set("taxonomy", "true")
	u := a.cl.URL(q, "data_objects", "1.0", id.Value+".json")

	var resp dataObjectsResponse
	ok, err := a.cl.GetJSON(ctx, u, &resp)
	if err != nil || !ok {
		return nil, err
	}

	tc := resp.TaxonConcept
	res := make([]taxon.DataObject, 0, len(tc.DataObjects))
	for _, v := range tc.DataObjects {
		objID := v.DataObjectVersionID.String()
		if objID == "" {
			objID = v.Identifier.String()
		}
		res = append(res, taxon.DataObject{
			PageID:         tc.Identifier.String(),
			ScientificName: tc.ScientificName,
			ObjectID:       objID,
			DataType:       v.DataType,
			DataSubtype:    v.DataSubtype,
			VettedStatus:   v.VettedStatus,
			DataRating:     v.DataRating.String(),
			Subject:        v.Subject,
			MimeType:       v.MimeType,
			Title:          v.Title,
			Language:       v.Language,
			License:        v.License,
			Rights:         v.Rights,
			RightsHolder:   v.RightsHolder,
			Source:         v.Source,
			Description:    v.Description,
		})
	}
	return res, nil
}

func (a *Adapter) search(
	ctx context.Context,
	name string,
	exact bool,
) ([]searchHit, error) {
	if iosource.Blank(name) {
		return nil, nil
	}
	q := a.query()
	q.Set("q", strings.TrimSpace(name))
	if exact {
		q.Set("exact", "true")
	} else {
		q.Set("exact", "false")
	}
	u := a.cl.URL(q, "search", "1.0.json")

	var resp searchResponse
	ok, err := a.cl.GetJSON(ctx, u, &resp)
	if err != nil || !ok {
		return nil, err
	}
	return resp.Results, nil
}

func (a *Adapter) query() url.Values {
	q := url.Values{}
	if key := a.cl.APIKey(); key != "" {
		q.Set("key", key)
	}
	return q
}
