// Package provider defines capabilities a data source adapter may
// have. Each source implements a subset of them, and the dispatcher
// keeps an explicit table from source tags to capabilities.
package provider

import (
	"context"

	"github.com/gnames/gntaxa/pkg/taxon"
)

// Source is implemented by every adapter.
type Source interface {
	// Source returns the tag of the data source.
	Source() taxon.Source
}

// Resolver finds an identifier for a scientific name using the name
// search of a data source. It returns nil without error when nothing
// was found.
type Resolver interface {
	Source
	Resolve(ctx context.Context, name string) (*taxon.ID, error)
}

// MultiResolver returns every identifier matching a name. It is used
// by sources whose records fan out from one name to many pages (EOL).
type MultiResolver interface {
	Source
	ResolveAll(ctx context.Context, name string) ([]taxon.ID, error)
}

// CommonNamer returns vernacular names for an identifier.
type CommonNamer interface {
	Source
	CommonNames(ctx context.Context, id taxon.ID) ([]taxon.CommonName, error)
}

// Classifier returns the classification of a taxon ordered from the
// root to the taxon itself.
type Classifier interface {
	Source
	Classification(ctx context.Context, id taxon.ID) ([]taxon.Taxon, error)
}

// ChildLister returns immediate children of a taxon.
type ChildLister interface {
	Source
	Children(ctx context.Context, id taxon.ID) ([]taxon.Taxon, error)
}

// TaxonSearcher returns BOLD-like taxon records for a name.
type TaxonSearcher interface {
	Source
	TaxonSearch(ctx context.Context, name string) ([]taxon.BoldTaxon, error)
}

// DataObjecter returns metadata of data objects.
type DataObjecter interface {
	Source
	DataObjects(ctx context.Context, id taxon.ID) ([]taxon.DataObject, error)
}
