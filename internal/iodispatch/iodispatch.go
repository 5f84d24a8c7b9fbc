// Package iodispatch implements gntaxa.Taxa. It routes every query to
// the adapter registered for the data source, resolves names to
// identifiers when needed, and normalizes adapter records into results.
package iodispatch

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gnames/gn"
	gntaxa "github.com/gnames/gntaxa/pkg"
	"github.com/gnames/gntaxa/pkg/config"
	"github.com/gnames/gntaxa/pkg/parserpool"
	"github.com/gnames/gntaxa/pkg/provider"
	"github.com/gnames/gntaxa/pkg/taxon"
)

// msgNotFound marks names that could not be resolved.
const msgNotFound = "name not found"

type dispatcher struct {
	cfg  *config.Config
	pool parserpool.Pool

	resolvers      map[taxon.Source]provider.Resolver
	multiResolvers map[taxon.Source]provider.MultiResolver
	commonNamers   map[taxon.Source]provider.CommonNamer
	classifiers    map[taxon.Source]provider.Classifier
	childListers   map[taxon.Source]provider.ChildLister
	searchers      map[taxon.Source]provider.TaxonSearcher
	dataObjecters  map[taxon.Source]provider.DataObjecter
}

// New creates a dispatcher over the given providers. Every provider is
// registered for all capabilities it implements. The parser pool is
// optional; it is needed only for canonical-form preprocessing of
// names.
func New(
	cfg *config.Config,
	pool parserpool.Pool,
	providers ...provider.Source,
) gntaxa.Taxa {
	res := &dispatcher{
		cfg:            cfg,
		pool:           pool,
		resolvers:      make(map[taxon.Source]provider.Resolver),
		multiResolvers: make(map[taxon.Source]provider.MultiResolver),
		commonNamers:   make(map[taxon.Source]provider.CommonNamer),
		classifiers:    make(map[taxon.Source]provider.Classifier),
		childListers:   make(map[taxon.Source]provider.ChildLister),
		searchers:      make(map[taxon.Source]provider.TaxonSearcher),
		dataObjecters:  make(map[taxon.Source]provider.DataObjecter),
	}
	for _, p := range providers {
		res.register(p)
	}
	return res
}

func (d *dispatcher) register(p provider.Source) {
	src := p.Source()
	if v, ok := p.(provider.Resolver); ok {
		d.resolvers[src] = v
	}
	if v, ok := p.(provider.MultiResolver); ok {
		d.multiResolvers[src] = v
	}
	if v, ok := p.(provider.CommonNamer); ok {
		d.commonNamers[src] = v
	}
	if v, ok := p.(provider.Classifier); ok {
		d.classifiers[src] = v
	}
	if v, ok := p.(provider.ChildLister); ok {
		d.childListers[src] = v
	}
	if v, ok := p.(provider.TaxonSearcher); ok {
		d.searchers[src] = v
	}
	if v, ok := p.(provider.DataObjecter); ok {
		d.dataObjecters[src] = v
	}
}

// Run implements gntaxa.Taxa.
func (d *dispatcher) Run(
	ctx context.Context,
	op taxon.Operation,
	in taxon.Input,
	rank string,
) (taxon.Results, error) {
	switch op {
	case taxon.OpIDs:
		return d.IDs(ctx, in)
	case taxon.OpCommonNames:
		return d.CommonNames(ctx, in)
	case taxon.OpClassification:
		return d.Classification(ctx, in)
	case taxon.OpChildren:
		return d.Children(ctx, in)
	case taxon.OpDownstream:
		return d.Downstream(ctx, in, rank)
	case taxon.OpTaxonSearch:
		return d.TaxonSearch(ctx, in)
	case taxon.OpDataObjects:
		return d.DataObjects(ctx, in)
	}
	return nil, UnknownOperationError(op)
}

// IDs implements gntaxa.Taxa.
func (d *dispatcher) IDs(
	ctx context.Context,
	in taxon.Input,
) (taxon.Results, error) {
	return d.run(ctx, taxon.OpIDs, in, has(d.resolvers),
		func(_ context.Context, res *taxon.Result, id taxon.ID) error {
			taxon.Normalize(res, []taxon.ID{id}, taxon.IDColumns,
				d.cfg.Output.Simplify, taxon.IDField)
			return nil
		},
	)
}

// CommonNames implements gntaxa.Taxa.
func (d *dispatcher) CommonNames(
	ctx context.Context,
	in taxon.Input,
) (taxon.Results, error) {
	if len(in.Names) > 0 {
		if _, ok := d.multiResolvers[in.Source]; ok {
			return d.commonNamesFanOut(ctx, in)
		}
	}
	return d.run(ctx, taxon.OpCommonNames, in, has(d.commonNamers),
		func(ctx context.Context, res *taxon.Result, id taxon.ID) error {
			recs, err := d.commonNamers[id.Source].CommonNames(ctx, id)
			if err != nil {
				return err
			}
			taxon.Normalize(res, recs, taxon.CommonNameColumns,
				d.cfg.Output.Simplify, taxon.CommonNameField)
			return nil
		},
	)
}

// Classification implements gntaxa.Taxa.
func (d *dispatcher) Classification(
	ctx context.Context,
	in taxon.Input,
) (taxon.Results, error) {
	return d.run(ctx, taxon.OpClassification, in, has(d.classifiers),
		func(ctx context.Context, res *taxon.Result, id taxon.ID) error {
			recs, err := d.classifiers[id.Source].Classification(ctx, id)
			if err != nil {
				return err
			}
			taxon.Normalize(res, recs, taxon.TaxonColumns,
				d.cfg.Output.Simplify, taxon.TaxonField)
			return nil
		},
	)
}

// Children implements gntaxa.Taxa.
func (d *dispatcher) Children(
	ctx context.Context,
	in taxon.Input,
) (taxon.Results, error) {
	return d.run(ctx, taxon.OpChildren, in, has(d.childListers),
		func(ctx context.Context, res *taxon.Result, id taxon.ID) error {
			recs, err := d.childListers[id.Source].Children(ctx, id)
			if err != nil {
				return err
			}
			taxon.Normalize(res, recs, taxon.TaxonColumns,
				d.cfg.Output.Simplify, taxon.TaxonField)
			return nil
		},
	)
}

// DataObjects implements gntaxa.Taxa. Names are taken as data object
// identifiers of the selected source.
func (d *dispatcher) DataObjects(
	ctx context.Context,
	in taxon.Input,
) (taxon.Results, error) {
	if len(in.Names) > 0 && len(in.IDs) == 0 && in.Source != taxon.UnknownSource {
		in = taxon.IDsInput(taxon.NewIDs(in.Source, in.Names...)...)
	}
	return d.run(ctx, taxon.OpDataObjects, in, has(d.dataObjecters),
		func(ctx context.Context, res *taxon.Result, id taxon.ID) error {
			recs, err := d.dataObjecters[id.Source].DataObjects(ctx, id)
			if err != nil {
				return err
			}
			taxon.Normalize(res, recs, taxon.DataObjectColumns,
				d.cfg.Output.Simplify, taxon.DataObjectField)
			return nil
		},
	)
}

// query fills in a result for a resolved identifier.
type query func(ctx context.Context, res *taxon.Result, id taxon.ID) error

// run validates input, resolves names and calls q for every input
// element in order.
func (d *dispatcher) run(
	ctx context.Context,
	op taxon.Operation,
	in taxon.Input,
	supported func(taxon.Source) bool,
	q query,
) (taxon.Results, error) {
	if err := d.validate(op, in, supported); err != nil {
		return nil, err
	}

	res := make(taxon.Results, 0, in.Len())
	for i := range in.Len() {
		var r taxon.Result
		var id *taxon.ID
		var err error

		if len(in.IDs) > 0 {
			v := in.IDs[i]
			r = taxon.Result{Input: v.Value, Source: v.Source}
			id = &v
		} else {
			name := in.Names[i]
			r = taxon.Result{Input: name, Source: in.Source}
			id, err = d.resolve(ctx, in.Source, name)
			if err != nil {
				if err = d.fail(op, &r, err); err != nil {
					return nil, err
				}
				res = append(res, r)
				continue
			}
		}

		if id == nil {
			r.SetMissing(msgNotFound)
			d.missing(op, r)
			res = append(res, r)
			continue
		}

		r.ID = id
		if err = q(ctx, &r, *id); err != nil {
			if err = d.fail(op, &r, err); err != nil {
				return nil, err
			}
		}
		if r.Missing && r.Err == nil {
			d.missing(op, r)
		}
		res = append(res, r)
	}
	return res, nil
}

func (d *dispatcher) validate(
	op taxon.Operation,
	in taxon.Input,
	supported func(taxon.Source) bool,
) error {
	switch {
	case in.IsEmpty():
		return NoInputError(op)
	case len(in.Names) > 0 && len(in.IDs) > 0:
		return AmbiguousInputError(op)
	}

	if len(in.Names) > 0 {
		if in.Source == taxon.UnknownSource {
			return UnknownSourceError(op)
		}
		if !supported(in.Source) {
			return UnsupportedSourceError(op, in.Source)
		}
		return nil
	}

	for _, v := range in.IDs {
		if in.Source != taxon.UnknownSource && v.Source != in.Source {
			return SourceMismatchError(in.Source, v)
		}
		if v.Source == taxon.UnknownSource {
			return UnknownSourceError(op)
		}
		if !supported(v.Source) {
			return UnsupportedSourceError(op, v.Source)
		}
	}
	return nil
}

// resolve finds an identifier for a name. It returns nil when the name
// is not found.
func (d *dispatcher) resolve(
	ctx context.Context,
	src taxon.Source,
	name string,
) (*taxon.ID, error) {
	r, ok := d.resolvers[src]
	if !ok {
		return nil, nil
	}
	return r.Resolve(ctx, d.prepareName(name))
}

// prepareName converts a name to its canonical form if configured so.
func (d *dispatcher) prepareName(name string) string {
	name = strings.TrimSpace(name)
	if !d.cfg.WithCanonical || d.pool == nil {
		return name
	}
	if can := d.pool.Canonical(name); can != "" {
		return can
	}
	return name
}

// fail applies the error policy. It returns nil if the batch continues.
func (d *dispatcher) fail(op taxon.Operation, r *taxon.Result, err error) error {
	if !d.cfg.ContinueOnError {
		return err
	}
	r.SetError(err)
	slog.Warn("Query failed",
		"operation", op,
		"source", r.Source.String(),
		"input", r.Input,
		"error", err,
	)
	if d.cfg.Verbose {
		gn.Warn("<warn>%s</warn> failed for <em>%s</em>: %v", op, r.Input, err)
	}
	return nil
}

func (d *dispatcher) missing(op taxon.Operation, r taxon.Result) {
	slog.Debug("No data",
		"operation", op,
		"source", r.Source.String(),
		"input", r.Input,
		"message", r.Message,
	)
	if d.cfg.Verbose {
		msg := r.Message
		if msg == "" {
			msg = "no data"
		}
		gn.Warn("%s <em>%s</em>: %s", r.Source.Title(), r.Input, msg)
	}
}

// has converts a dispatch table to a support check.
func has[T any](table map[taxon.Source]T) func(taxon.Source) bool {
	return func(src taxon.Source) bool {
		_, ok := table[src]
		return ok
	}
}

// WithSimplify returns a dispatcher that shares providers and transport
// with taxa, but shapes results according to simplify. Taxa
// implementations other than this package's dispatcher are returned
// unchanged.
func WithSimplify(taxa gntaxa.Taxa, simplify bool) gntaxa.Taxa {
	d, ok := taxa.(*dispatcher)
	if !ok || d.cfg.Output.Simplify == simplify {
		return taxa
	}
	cfg := *d.cfg
	cfg.Output.Simplify = simplify
	res := *d
	res.cfg = &cfg
	return &res
}
