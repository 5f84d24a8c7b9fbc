// Package gntaxa defines the main contract of the project: a unified
// client over several taxonomic web APIs (EOL, ITIS, NCBI, WoRMS, BOLD,
// Catalogue of Life).
package gntaxa

import (
	"context"

	"github.com/gnames/gntaxa/pkg/taxon"
)

// Taxa dispatches generic queries to data sources and normalizes their
// results.
//
// Every method accepts either names with a source selector or
// source-typed identifiers (see taxon.Input). For identifiers the
// resolution step is skipped and each identifier goes to the adapter of
// its own source. Results keep the order of the input and contain one
// entry per input element. Unresolved names and empty responses become
// missing-value results, never errors. Errors are returned only for
// malformed calls (no input, unsupported source) and for transport
// failures, unless the configuration asks to continue on errors.
type Taxa interface {
	// IDs resolves names to identifiers of the selected source.
	IDs(ctx context.Context, in taxon.Input) (taxon.Results, error)

	// CommonNames returns vernacular names of taxa.
	CommonNames(ctx context.Context, in taxon.Input) (taxon.Results, error)

	// Classification returns the hierarchy of taxa from the root down to
	// the taxon itself.
	Classification(ctx context.Context, in taxon.Input) (taxon.Results, error)

	// Children returns immediate child taxa.
	Children(ctx context.Context, in taxon.Input) (taxon.Results, error)

	// Downstream returns all descendant taxa at the given rank.
	Downstream(
		ctx context.Context,
		in taxon.Input,
		rank string,
	) (taxon.Results, error)

	// TaxonSearch returns BOLD taxon records. The result always is a
	// table; unresolved names produce a row with the input only.
	TaxonSearch(ctx context.Context, in taxon.Input) (taxon.Results, error)

	// DataObjects returns metadata of EOL data objects.
	DataObjects(ctx context.Context, in taxon.Input) (taxon.Results, error)

	// Run calls an operation by its name. The rank is used only by
	// the downstream operation.
	Run(
		ctx context.Context,
		op taxon.Operation,
		in taxon.Input,
		rank string,
	) (taxon.Results, error)
}
