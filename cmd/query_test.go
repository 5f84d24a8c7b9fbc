package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gntaxa/pkg/archive"
	"github.com/gnames/gntaxa/pkg/taxon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransport = errors.New("connection refused")

// fakeTaxa answers every name with its upper-case form. Names
// "unknown" are missing, "fail" causes a transport error.
type fakeTaxa struct {
	batches []taxon.Input
}

func (f *fakeTaxa) Run(
	_ context.Context,
	op taxon.Operation,
	in taxon.Input,
	_ string,
) (taxon.Results, error) {
	f.batches = append(f.batches, in)
	var res taxon.Results
	for _, v := range in.Names {
		r := taxon.Result{Input: v, Source: in.Source}
		switch v {
		case "fail":
			return nil, errTransport
		case "unknown":
			r.SetMissing("name not found")
		default:
			r.Simple = []string{strings.ToUpper(v)}
		}
		res = append(res, r)
	}
	for _, v := range in.IDs {
		id := v
		res = append(res, taxon.Result{
			Input: v.Value, Source: v.Source, ID: &id,
			Simple: []string{"id " + v.Value},
		})
	}
	return res, nil
}

func (f *fakeTaxa) IDs(ctx context.Context, in taxon.Input) (taxon.Results, error) {
	return f.Run(ctx, taxon.OpIDs, in, "")
}

func (f *fakeTaxa) CommonNames(ctx context.Context, in taxon.Input) (taxon.Results, error) {
	return f.Run(ctx, taxon.OpCommonNames, in, "")
}

func (f *fakeTaxa) Classification(ctx context.Context, in taxon.Input) (taxon.Results, error) {
	return f.Run(ctx, taxon.OpClassification, in, "")
}

func (f *fakeTaxa) Children(ctx context.Context, in taxon.Input) (taxon.Results, error) {
	return f.Run(ctx, taxon.OpChildren, in, "")
}

func (f *fakeTaxa) Downstream(ctx context.Context, in taxon.Input, rank string) (taxon.Results, error) {
	return f.Run(ctx, taxon.OpDownstream, in, rank)
}

func (f *fakeTaxa) TaxonSearch(ctx context.Context, in taxon.Input) (taxon.Results, error) {
	return f.Run(ctx, taxon.OpTaxonSearch, in, "")
}

func (f *fakeTaxa) DataObjects(ctx context.Context, in taxon.Input) (taxon.Results, error) {
	return f.Run(ctx, taxon.OpDataObjects, in, "")
}

type fakeArchive struct {
	runs  map[string]int
	saved int
}

func (f *fakeArchive) Init(context.Context) error { return nil }

func (f *fakeArchive) Save(_ context.Context, run archive.Run, rs taxon.Results) error {
	if f.runs == nil {
		f.runs = make(map[string]int)
	}
	f.runs[run.ID]++
	f.saved += len(rs)
	return nil
}

func (f *fakeArchive) Close() error { return nil }

func TestBatchQueryCSV(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	q := batchQuery{
		op:        taxon.OpCommonNames,
		source:    taxon.ITIS,
		batchSize: 2,
		format:    gnfmt.CSV,
		simplify:  true,
	}
	taxa := &fakeTaxa{}
	arch := &fakeArchive{}
	in := "Pinus\n\n  unknown \nBufo\nPinus\nApis\n"
	var w bytes.Buffer

	st, err := q.run(context.Background(), taxa, arch, strings.NewReader(in), &w, nil)
	require.Nil(err)
	assert.Equal(stats{inputs: 5, missing: 1}, st)

	require.Equal(3, len(taxa.batches))
	assert.Equal([]string{"Pinus", "unknown"}, taxa.batches[0].Names)
	assert.Equal([]string{"Apis"}, taxa.batches[2].Names)
	assert.Equal(taxon.ITIS, taxa.batches[0].Source)

	lines := strings.Split(strings.TrimSpace(w.String()), "\n")
	require.Equal(6, len(lines))
	assert.Equal("input,source,resolved_id,missing,message,value", lines[0])
	assert.Equal("Pinus,itis,,false,,PINUS", lines[1])
	assert.Equal("unknown,itis,,true,name not found,", lines[2])

	assert.Equal(1, len(arch.runs), "all batches belong to one run")
	assert.Equal(5, arch.saved)
}

func TestBatchQueryJSON(t *testing.T) {
	assert := assert.New(t)
	q := batchQuery{
		op:        taxon.OpClassification,
		source:    taxon.NCBI,
		batchSize: 1,
		format:    gnfmt.CompactJSON,
		simplify:  true,
	}
	var w bytes.Buffer
	st, err := q.run(context.Background(), &fakeTaxa{}, nil,
		strings.NewReader("Homo\nPan\n"), &w, nil)
	assert.Nil(err)
	assert.Equal(2, st.inputs)

	out := strings.TrimSpace(w.String())
	assert.Equal(1, strings.Count(out, "\n")+1, "one document")
	assert.True(strings.HasPrefix(out, "["))
	assert.Contains(out, `"HOMO"`)
	assert.Contains(out, `"PAN"`)

	w.Reset()
	_, err = q.run(context.Background(), &fakeTaxa{}, nil,
		strings.NewReader(""), &w, nil)
	assert.Nil(err)
	assert.Equal("[]", strings.TrimSpace(w.String()))
}

func TestBatchQueryIDs(t *testing.T) {
	assert := assert.New(t)
	q := batchQuery{
		op:        taxon.OpChildren,
		source:    taxon.WoRMS,
		ids:       true,
		batchSize: 10,
		format:    gnfmt.TSV,
		simplify:  true,
	}
	taxa := &fakeTaxa{}
	var w bytes.Buffer
	_, err := q.run(context.Background(), taxa, nil,
		strings.NewReader("127160\nworms:125732\n"), &w, nil)
	assert.Nil(err)
	assert.Equal(taxon.NewIDs(taxon.WoRMS, "127160", "125732"), taxa.batches[0].IDs)
	assert.Contains(w.String(), "127160\tworms\t127160\tfalse\t\tid 127160")

	q.source = taxon.UnknownSource
	_, err = q.run(context.Background(), taxa, nil,
		strings.NewReader("127160\n"), &w, nil)
	assert.NotNil(err, "id without source")
}

func TestBatchQueryAbort(t *testing.T) {
	assert := assert.New(t)
	q := batchQuery{
		op:        taxon.OpIDs,
		source:    taxon.CoL,
		batchSize: 1,
		format:    gnfmt.CSV,
	}
	taxa := &fakeTaxa{}
	var w bytes.Buffer
	in := "Pinus\nfail\nBufo\n"
	st, err := q.run(context.Background(), taxa, nil, strings.NewReader(in), &w, nil)
	assert.ErrorIs(err, errTransport)
	assert.Equal(1, st.inputs)
	assert.Equal(2, len(taxa.batches), "batch after failure is not sent")
}

func TestCountLines(t *testing.T) {
	n, err := countLines(strings.NewReader("a\n\n b\n  \nc"))
	assert.Nil(t, err)
	assert.Equal(t, 3, n)
}
