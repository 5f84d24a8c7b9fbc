// Package parserpool provides a pool of gnparser instances for getting
// canonical forms of scientific names. This is a pure package - parsing
// is computation, not I/O.
//
// Canonical forms are used to compare names returned by data sources
// with the input names (authorship, ranks and formatting differ between
// sources), and optionally to strip input names before resolution.
package parserpool

import (
	"runtime"
	"strings"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool provides a pool of gnparser instances safe for concurrent use.
// Dispatcher calls are sequential, but the REST facade serves several
// requests at once and shares one pool between them.
type Pool interface {
	// Parse parses a scientific name string.
	Parse(nameString string) parsed.Parsed

	// Canonical returns the simple canonical form of a name, or an empty
	// string if the name cannot be parsed.
	Canonical(nameString string) string

	// SameName compares two names by their canonical forms. Names that
	// cannot be parsed are compared case-insensitively as is.
	SameName(a, b string) bool

	// Close shuts down the parser pool and releases resources.
	// After calling Close, the pool should not be used.
	Close()
}

// PoolImpl implements the Pool interface using gnparser.NewPool.
type PoolImpl struct {
	ch       chan gnparser.GNparser
	poolSize int
}

// NewPool creates a new parser pool with the specified number of workers
// and a nomenclatural code ("zoological", "botanical" etc.).
// If jobsNum is 0, it defaults to runtime.NumCPU().
func NewPool(jobsNum int, code string) Pool {
	poolSize := jobsNum
	if poolSize == 0 {
		poolSize = runtime.NumCPU()
	}

	cfg := gnparser.NewConfig(
		gnparser.OptCode(nomcode.New(code)),
	)
	ch := gnparser.NewPool(cfg, poolSize)

	return &PoolImpl{
		ch:       ch,
		poolSize: poolSize,
	}
}

// Parse parses a scientific name string. It retrieves a parser from
// the pool, parses the name and returns the parser to the pool.
func (p *PoolImpl) Parse(nameString string) parsed.Parsed {
	// blocks if all parsers are busy
	parser := <-p.ch
	result := parser.ParseName(nameString)
	p.ch <- parser

	return result
}

// Canonical returns the simple canonical form of a name.
func (p *PoolImpl) Canonical(nameString string) string {
	res := p.Parse(nameString)
	if !res.Parsed || res.Canonical == nil {
		return ""
	}
	return res.Canonical.Simple
}

// SameName compares two names by their canonical forms.
func (p *PoolImpl) SameName(a, b string) bool {
	ca, cb := p.Canonical(a), p.Canonical(b)
	if ca == "" || cb == "" {
		return strings.EqualFold(
			strings.TrimSpace(a), strings.TrimSpace(b),
		)
	}
	return ca == cb
}

// Close shuts down the parser pool and releases resources.
// It closes the channel and drains any remaining parsers.
func (p *PoolImpl) Close() {
	if p.ch != nil {
		close(p.ch)
		for range p.ch {
		}
	}
}
