// Package col implements resolver and adapters for the Catalogue of
// Life through the ChecklistBank API.
package col

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
	pageSize = 1000
	maxPages = 20
)

// Adapter talks to ChecklistBank.
type Adapter struct {
	cl      *iohttp.Client
	dataset string
	match   iosource.Matcher
}

// New creates a CoL Adapter for a ChecklistBank dataset ("3LR" is the
// latest release of the Catalogue of Life).
func New(t *iohttp.Transport, dataset string, match iosource.Matcher) *Adapter {
	if dataset == "" {
		dataset = "3LR"
	}
	return &Adapter{
		cl:      t.Client(taxon.CoL),
		dataset: dataset,
		match:   match.OrDefault(),
	}
}

// Source implements provider.Source.
func (a *Adapter) Source() taxon.Source {
	return taxon.CoL
}

// Resolve returns the usage ID of a name, preferring accepted names.
func (a *Adapter) Resolve(ctx context.Context, name string) (*taxon.ID, error) {
	if iosource.Blank(name) {
		return nil, nil
	}
	q := url.Values{}
	q.Set("q", strings.TrimSpace(name))
	q.Set("type", "EXACT")
	q.Set("content", "SCIENTIFIC_NAME")
	u := a.cl.URL(q, "dataset", a.dataset, "nameusage", "search")

	var resp searchResponse
	ok, err := a.cl.GetJSON(ctx, u, &resp)
	if err != nil || !ok {
		return nil, err
	}
	best, ok := iosource.Best(
		name, resp.Result,
		func(e searchEntry) string { return e.Usage.Name.ScientificName },
		func(e searchEntry) bool { return e.Usage.Status == "accepted" },
		a.match,
	)
	if !ok {
		return nil, nil
	}
	value := best.Usage.ID
	if value == "" {
		value = best.ID
	}
	id := taxon.NewID(taxon.CoL, value)
	id.Name = best.Usage.Name.ScientificName
	id.Rank = best.Usage.Name.Rank
	id.Status = best.Usage.Status
	return &id, nil
}

// CommonNames returns vernacular names of a taxon.
func (a *Adapter) CommonNames(
	ctx context.Context,
	id taxon.ID,
) ([]taxon.CommonName, error) {
	if id.Value == "" {
		return nil, nil
	}
	u := a.cl.URL(nil, "dataset", a.dataset, "taxon", id.Value, "vernacular")

	var recs []vernacular
	ok, err := a.cl.GetJSON(ctx, u, &recs)
	if err != nil || !ok {
		return nil, err
	}

	res := make([]taxon.CommonName, 0, len(recs))
	for _, v := range recs {
		if v.Name == "" {
			continue
		}
		res = append(res, taxon.CommonName{
			Name:     v.Name,
			LangCode: v.Language,
			Source:   taxon.CoL.String(),
		})
	}
	taxon.NormalizeCommonNames(res)
	return res, nil
}

// Classification returns higher taxa from the root followed by the
// taxon itself.
func (a *Adapter) Classification(
	ctx context.Context,
	id taxon.ID,
) ([]taxon.Taxon, error) {
	if id.Value == "" {
		return nil, nil
	}

	var self usage
	u := a.cl.URL(nil, "dataset", a.dataset, "taxon", id.Value)
	ok, err := a.cl.GetJSON(ctx, u, &self)
	if err != nil || !ok {
		return nil, err
	}

	var higher []simpleName
	u = a.cl.URL(nil, "dataset", a.dataset, "taxon", id.Value, "classification")
	if _, err = a.cl.GetJSON(ctx, u, &higher); err != nil {
		return nil, err
	}

	res := make([]taxon.Taxon, 0, len(higher)+1)
	var parent taxon.Taxon
	// ChecklistBank lists the closest parent first
	for i := len(higher) - 1; i >= 0; i-- {
		t := higher[i].taxon()
		t.ParentID = parent.ID
		t.ParentName = parent.Name
		res = append(res, t)
		parent = t
	}
	t := self.taxon()
	t.ParentName = parent.Name
	if t.ParentID == "" {
		t.ParentID = parent.ID
	}
	res = append(res, t)
	return res, nil
}

// Children returns accepted children of a taxon.
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
		q.Set("limit", strconv.Itoa(pageSize))
		q.Set("offset", strconv.Itoa(page*pageSize))
		u := a.cl.URL(q, "dataset", a.dataset, "tree", id.Value, "children")

		var resp childrenResponse
		ok, err := a.cl.GetJSON(ctx, u, &resp)
		if err != nil {
			return nil, err
		}
		for _, v := range resp.Result {
			t := v.taxon()
			if t.ParentID == "" {
				t.ParentID = id.Value
			}
			if t.ParentID == id.Value {
				t.ParentName = id.Name
			}
			res = append(res, t)
		}
		if !ok || resp.Last || len(resp.Result) < pageSize {
			break
		}
	}
	return res, nil
}
