package iodispatch

import (
	"context"

	"github.com/gnames/gntaxa/pkg/taxon"
)

// TaxonSearch implements gntaxa.Taxa. Names go to the search directly,
// identifiers are searched by their names. Results are always tables,
// a name without matches gets a row with only the input filled in.
func (d *dispatcher) TaxonSearch(
	ctx context.Context,
	in taxon.Input,
) (taxon.Results, error) {
	op := taxon.OpTaxonSearch
	if err := d.validate(op, in, has(d.searchers)); err != nil {
		return nil, err
	}

	res := make(taxon.Results, 0, in.Len())
	for i := range in.Len() {
		var r taxon.Result
		var name string
		if len(in.IDs) > 0 {
			v := in.IDs[i]
			r = taxon.Result{Input: v.Value, Source: v.Source}
			name = v.Name
			if name == "" {
				name = v.Value
			}
		} else {
			name = in.Names[i]
			r = taxon.Result{Input: name, Source: in.Source}
		}

		recs, err := d.searchers[r.Source].TaxonSearch(ctx, d.prepareName(name))
		if err != nil {
			if err = d.fail(op, &r, err); err != nil {
				return nil, err
			}
			res = append(res, r)
			continue
		}

		if len(recs) == 0 {
			recs = []taxon.BoldTaxon{{Input: r.Input}}
			r.Message = msgNotFound
			d.missing(op, r)
		} else {
			id := taxon.NewID(r.Source, recs[0].TaxID)
			id.Name = recs[0].Taxon
			id.Rank = recs[0].TaxRank
			r.ID = &id
		}
		for j := range recs {
			recs[j].Input = r.Input
		}
		r.Table = taxon.NewTable(taxon.BoldColumns, recs)
		res = append(res, r)
	}
	return res, nil
}
