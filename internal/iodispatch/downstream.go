package iodispatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gnames/gntaxa/pkg/taxon"
)

const (
	msgNoDeeperTaxa = "no deeper taxa found"

	// maxExpansions limits the number of children queries of one
	// downstream search.
	maxExpansions = 10_000
)

// Downstream implements gntaxa.Taxa. Children are expanded breadth
// first; taxa at the target rank are collected, taxa below it are
// dropped, all others are expanded further.
func (d *dispatcher) Downstream(
	ctx context.Context,
	in taxon.Input,
	rank string,
) (taxon.Results, error) {
	target := taxon.NormalizeRank(rank)
	if !taxon.IsRank(target) {
		return nil, UnknownRankError(rank)
	}

	return d.run(ctx, taxon.OpDownstream, in, has(d.childListers),
		func(ctx context.Context, res *taxon.Result, id taxon.ID) error {
			start, err := d.startRank(ctx, id)
			if err != nil {
				return err
			}
			if start != "" && taxon.IsRank(start) && !taxon.IsBelow(target, start) {
				res.SetMissing(msgNoDeeperTaxa)
				return nil
			}

			recs, err := d.expand(ctx, id, target)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				res.SetMissing(fmt.Sprintf("no taxa found at rank %s", target))
				return nil
			}
			taxon.Normalize(res, recs, taxon.TaxonColumns,
				d.cfg.Output.Simplify, taxon.TaxonField)
			return nil
		},
	)
}

// startRank returns the rank of the taxon, asking for its
// classification if the identifier does not carry it.
func (d *dispatcher) startRank(ctx context.Context, id taxon.ID) (string, error) {
	if id.Rank != "" {
		return id.Rank, nil
	}
	cl, ok := d.classifiers[id.Source]
	if !ok {
		return "", nil
	}
	recs, err := cl.Classification(ctx, id)
	if err != nil || len(recs) == 0 {
		return "", err
	}
	return recs[len(recs)-1].Rank, nil
}

func (d *dispatcher) expand(
	ctx context.Context,
	id taxon.ID,
	target string,
) ([]taxon.Taxon, error) {
	lister := d.childListers[id.Source]
	seen := map[string]struct{}{id.Value: {}}
	queue := []taxon.ID{id}
	var res []taxon.Taxon

	for count := 0; len(queue) > 0; count++ {
		if count == maxExpansions {
			slog.Warn("Downstream search truncated",
				"source", id.Source.String(),
				"id", id.Value,
				"rank", target,
			)
			break
		}
		cur := queue[0]
		queue = queue[1:]

		children, err := lister.Children(ctx, cur)
		if err != nil {
			return nil, err
		}
		for _, v := range children {
			if _, ok := seen[v.ID]; ok || v.ID == "" {
				continue
			}
			seen[v.ID] = struct{}{}

			switch {
			case taxon.NormalizeRank(v.Rank) == target:
				res = append(res, v)
			case taxon.IsBelow(v.Rank, target):
			default:
				next := taxon.NewID(id.Source, v.ID)
				next.Name = v.Name
				next.Rank = v.Rank
				queue = append(queue, next)
			}
		}
	}
	return res, nil
}
