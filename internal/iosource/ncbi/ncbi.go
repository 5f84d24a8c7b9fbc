// Package ncbi implements resolver and adapters for the NCBI Taxonomy
// database through Entrez E-utilities.
package ncbi

import (
	"context"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/gnames/gntaxa/internal/iohttp"
	"github.com/gnames/gntaxa/internal/iosource"
	"github.com/gnames/gntaxa/pkg/taxon"
)

const (
	// maxChildren limits the number of children returned for one taxon.
	maxChildren = 5000

	// fetchChunk is the largest number of ids sent in one efetch request.
	fetchChunk = 200
)

// Adapter talks to NCBI Entrez.
type Adapter struct {
	cl *iohttp.Client
}

// New creates an NCBI Adapter.
func New(t *iohttp.Transport) *Adapter {
	return &Adapter{cl: t.Client(taxon.NCBI)}
}

// Source implements provider.Source.
func (a *Adapter) Source() taxon.Source {
	return taxon.NCBI
}

// Resolve returns the first taxonomy ID found by Entrez search. Name and
// rank of the ID come from the taxonomy record, not from the query.
func (a *Adapter) Resolve(ctx context.Context, name string) (*taxon.ID, error) {
	if iosource.Blank(name) {
		return nil, nil
	}
	name = strings.TrimSpace(name)
	ids, err := a.search(ctx, name, 1)
	if err != nil || len(ids) == 0 {
		return nil, err
	}
	id := taxon.NewID(taxon.NCBI, ids[0])
	node, err := a.fetchOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if node != nil {
		id.Name = node.ScientificName
		id.Rank = node.Rank
	}
	return &id, nil
}

// CommonNames returns GenBank common name and other common names of
// the taxon.
func (a *Adapter) CommonNames(
	ctx context.Context,
	id taxon.ID,
) ([]taxon.CommonName, error) {
	node, err := a.fetchOne(ctx, id)
	if err != nil || node == nil {
		return nil, err
	}

	var res []taxon.CommonName
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		for _, v := range res {
			if v.Name == name {
				return
			}
		}
		res = append(res, taxon.CommonName{
			Name:     name,
			Language: "English",
			Source:   taxon.NCBI.String(),
		})
	}
	add(node.OtherNames.GenbankCommonName)
	for _, v := range node.OtherNames.CommonNames {
		add(v)
	}
	taxon.NormalizeCommonNames(res)
	return res, nil
}

// Classification returns the lineage of the taxon followed by the taxon
// itself.
func (a *Adapter) Classification(
	ctx context.Context,
	id taxon.ID,
) ([]taxon.Taxon, error) {
	node, err := a.fetchOne(ctx, id)
	if err != nil || node == nil {
		return nil, err
	}

	res := make([]taxon.Taxon, 0, len(node.Lineage)+1)
	var parent taxon.Taxon
	for _, v := range node.Lineage {
		t := taxon.Taxon{
			ID:         v.TaxID,
			Name:       v.ScientificName,
			Rank:       v.Rank,
			ParentID:   parent.ID,
			ParentName: parent.Name,
		}
		res = append(res, t)
		parent = t
	}
	t := node.taxon()
	t.ParentName = parent.Name
	res = append(res, t)
	return res, nil
}

// Children returns taxa at the next level below the taxon.
func (a *Adapter) Children(
	ctx context.Context,
	id taxon.ID,
) ([]taxon.Taxon, error) {
	if id.Value == "" {
		return nil, nil
	}
	name := id.Name
	if name == "" {
		node, err := a.fetchOne(ctx, id)
		if err != nil || node == nil {
			return nil, err
		}
		name = node.ScientificName
	}

	ids, err := a.search(ctx, name+"[Next Level]", maxChildren)
	if err != nil || len(ids) == 0 {
		return nil, err
	}
	nodes, err := a.fetch(ctx, ids)
	if err != nil {
		return nil, err
	}

	res := make([]taxon.Taxon, 0, len(nodes))
	for _, v := range nodes {
		t := v.taxon()
		if t.ParentID == id.Value {
			t.ParentName = name
		}
		res = append(res, t)
	}
	return res, nil
}

func (a *Adapter) search(
	ctx context.Context,
	term string,
	retMax int,
) ([]string, error) {
	q := a.query()
	q.Set("term", term)
	q.Set("retmax", strconv.Itoa(retMax))
	u := a.cl.URL(q, "esearch.fcgi")

	var resp searchResult
	ok, err := a.cl.GetXML(ctx, u, &resp)
	if err != nil || !ok {
		return nil, err
	}
	return resp.IDs, nil
}

func (a *Adapter) fetchOne(ctx context.Context, id taxon.ID) (*taxonNode, error) {
	if id.Value == "" {
		return nil, nil
	}
	nodes, err := a.fetch(ctx, []string{id.Value})
	if err != nil || len(nodes) == 0 {
		return nil, err
	}
	return &nodes[0], nil
}

// fetch gets taxonomy records in chunks of fetchChunk ids, every chunk
// waits for the limiter.
func (a *Adapter) fetch(ctx context.Context, ids []string) ([]taxonNode, error) {
	var res []taxonNode
	for chunk := range slices.Chunk(ids, fetchChunk) {
		q := a.query()
		q.Set("id", strings.Join(chunk, ","))
		u := a.cl.URL(q, "efetch.fcgi")

		var resp taxaSet
		ok, err := a.cl.GetXML(ctx, u, &resp)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, resp.Taxa...)
		}
	}
	return res, nil
}

func (a *Adapter) query() url.Values {
	q := url.Values{}
	q.Set("db", "taxonomy")
	if key := a.cl.APIKey(); key != "" {
		q.Set("api_key", key)
	}
	return q
}

func (n taxonNode) taxon() taxon.Taxon {
	var auth string
	if len(n.OtherNames.Authority) > 0 {
		auth = n.OtherNames.Authority[0]
	}
	return taxon.Taxon{
		ID:         n.TaxID,
		Name:       n.ScientificName,
		Rank:       n.Rank,
		Authorship: auth,
		ParentID:   n.ParentTaxID,
	}
}
