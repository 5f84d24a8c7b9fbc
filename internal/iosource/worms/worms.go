// Package worms implements resolver and adapters for the World Register
// of Marine Species REST service.
package worms

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/gnames/gntaxa/internal/iohttp"
	"github.com/gnames/gntaxa/internal/iosource"
	"github.com/gnames/gntaxa/pkg/taxon"
)

const (
	// pageSize is the number of records WoRMS returns per page.
	pageSize = 50

	// maxPages limits paging through children.
	maxPages = 100
)

// Adapter talks to WoRMS.
type Adapter struct {
	cl    *iohttp.Client
	match iosource.Matcher
}

// New creates a WoRMS Adapter.
func New(t *iohttp.Transport, match iosource.Matcher) *Adapter {
	return &Adapter{cl: t.Client(taxon.WoRMS), match: match.OrDefault()}
}

// Source implements provider.Source.
func (a *Adapter) Source() taxon.Source {
	return taxon.WoRMS
}

// Resolve finds AphiaID of a name. Accepted records win over other
// exact matches.
func (a *Adapter) Resolve(ctx context.Context, name string) (*taxon.ID, error) {
	if iosource.Blank(name) {
		return nil, nil
	}
	q := url.Values{}
	q.Set("like", "false")
	q.Set("marine_only", "false")
	u := a.cl.URL(q, "AphiaRecordsByName", strings.TrimSpace(name))

	var recs []aphiaRecord
	ok, err := a.cl.GetJSON(ctx, u, &recs)
	if err != nil || !ok {
		return nil, err
	}
	best, ok := iosource.Best(
		name, recs,
		func(r aphiaRecord) string { return r.ScientificName },
		func(r aphiaRecord) bool { return r.Status == "accepted" },
		a.match,
	)
	if !ok {
		return nil, nil
	}
	id := taxon.NewID(taxon.WoRMS, strconv.Itoa(best.AphiaID))
	id.Name = best.ScientificName
	id.Rank = best.Rank
	id.Status = best.Status
	return &id, nil
}

// CommonNames returns vernacular names of an AphiaID.
func (a *Adapter) CommonNames(
	ctx context.Context,
	id taxon.ID,
) ([]taxon.CommonName, error) {
	if id.Value == "" {
		return nil, nil
	}
	u := a.cl.URL(nil, "AphiaVernacularsByAphiaID", id.Value)

	var recs []vernacular
	ok, err := a.cl.GetJSON(ctx, u, &recs)
	if err != nil || !ok {
		return nil, err
	}

	res := make([]taxon.CommonName, 0, len(recs))
	for _, v := range recs {
		if v.Vernacular == "" {
			continue
		}
		res = append(res, taxon.CommonName{
			Name:     v.Vernacular,
			Language: v.Language,
			LangCode: v.LanguageCode,
			Source:   taxon.WoRMS.String(),
		})
	}
	taxon.NormalizeCommonNames(res)
	return res, nil
}

// Classification flattens the nested WoRMS classification.
func (a *Adapter) Classification(
	ctx context.Context,
	id taxon.ID,
) ([]taxon.Taxon, error) {
	if id.Value == "" {
		return nil, nil
	}
	u := a.cl.URL(nil, "AphiaClassificationByAphiaID", id.Value)

	var root classification
	ok, err := a.cl.GetJSON(ctx, u, &root)
	if err != nil || !ok {
		return nil, err
	}

	var res []taxon.Taxon
	var parent taxon.Taxon
	for node := &root; node != nil && node.AphiaID != 0; node = node.Child {
		t := taxon.Taxon{
			ID:         strconv.Itoa(node.AphiaID),
			Name:       node.ScientificName,
			Rank:       node.Rank,
			ParentID:   parent.ID,
			ParentName: parent.Name,
		}
		res = append(res, t)
		parent = t
	}
	return res, nil
}

// Children pages through all children of an AphiaID.
func (a *Adapter) Children(
	ctx context.Context,
	id taxon.ID,
) ([]taxon.Taxon, error) {
	if id.Value == "" {
		return nil, nil
	}

	var res []taxon.Taxon
	for page := range maxPages {
		q := url.Values{}
		q.Set("marine_only", "false")
		q.Set("offset", strconv.Itoa(page*pageSize+1))
		u := a.cl.URL(q, "AphiaChildrenByAphiaID", id.Value)

		var recs []aphiaRecord
		ok, err := a.cl.GetJSON(ctx, u, &recs)
		if err != nil {
			return nil, err
		}
		for _, v := range recs {
			t := v.taxon()
			if t.ParentID == "" || t.ParentID == id.Value {
				t.ParentID = id.Value
				t.ParentName = id.Name
			}
			res = append(res, t)
		}
		if !ok || len(recs) < pageSize {
			break
		}
	}
	return res, nil
}
