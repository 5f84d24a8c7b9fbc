package iodispatch

import (
	"context"

	"github.com/gnames/gntaxa/pkg/taxon"
)

// commonNamesFanOut collects common names from every page that matches
// a name. It serves sources where one name maps to many pages.
func (d *dispatcher) commonNamesFanOut(
	ctx context.Context,
	in taxon.Input,
) (taxon.Results, error) {
	op := taxon.OpCommonNames
	if err := d.validate(op, in, has(d.commonNamers)); err != nil {
		return nil, err
	}
	multi := d.multiResolvers[in.Source]
	namer := d.commonNamers[in.Source]

	res := make(taxon.Results, 0, len(in.Names))
	for _, name := range in.Names {
		r := taxon.Result{Input: name, Source: in.Source}
		recs, err := d.fanOut(ctx, &r, name, multi.ResolveAll, namer.CommonNames)
		if err != nil {
			if err = d.fail(op, &r, err); err != nil {
				return nil, err
			}
			res = append(res, r)
			continue
		}
		if r.ID == nil {
			r.SetMissing(msgNotFound)
		} else {
			taxon.Normalize(&r, recs, taxon.CommonNameColumns,
				d.cfg.Output.Simplify, taxon.CommonNameField)
		}
		if r.Missing {
			d.missing(op, r)
		}
		res = append(res, r)
	}
	return res, nil
}

func (d *dispatcher) fanOut(
	ctx context.Context,
	r *taxon.Result,
	name string,
	resolveAll func(context.Context, string) ([]taxon.ID, error),
	fetch func(context.Context, taxon.ID) ([]taxon.CommonName, error),
) ([]taxon.CommonName, error) {
	ids, err := resolveAll(ctx, d.prepareName(name))
	if err != nil || len(ids) == 0 {
		return nil, err
	}
	r.ID = &ids[0]

	var res []taxon.CommonName
	for _, id := range ids {
		recs, err := fetch(ctx, id)
		if err != nil {
			return nil, err
		}
		res = append(res, recs...)
	}
	return res, nil
}
