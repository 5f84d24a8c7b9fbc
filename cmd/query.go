package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gntaxa/internal/ioarchive"
	"github.com/gnames/gntaxa/internal/iodispatch"
	"github.com/gnames/gntaxa/internal/iofs"
	gntaxa "github.com/gnames/gntaxa/pkg"
	"github.com/gnames/gntaxa/pkg/archive"
	"github.com/gnames/gntaxa/pkg/output"
	"github.com/gnames/gntaxa/pkg/parserpool"
	"github.com/gnames/gntaxa/pkg/taxon"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// defaultBatch is the number of inputs sent to the dispatcher at once.
const defaultBatch = 50

type queryDef struct {
	op      taxon.Operation
	short   string
	long    string
	example string
}

var queries = []queryDef{
	{
		op:    taxon.OpIDs,
		short: "Resolve names to identifiers of a source",
		long: `Resolve scientific names to identifiers of a data source.

Every source is supported.`,
		example: `  gntaxa ids "Pinus contorta" -s itis
  gntaxa ids -i names.txt -s col -f tsv`,
	},
	{
		op:    taxon.OpCommonNames,
		short: "Get common (vernacular) names",
		long: `Get common (vernacular) names of taxa.

Supported sources: eol, itis, ncbi, worms, col. For EOL all pages
matching a name are queried and their common names are merged.`,
		example: `  gntaxa common "Pinus contorta" "Bufo bufo" -s itis
  gntaxa common --id ncbi:9606 --simplify=false`,
	},
	{
		op:    taxon.OpClassification,
		short: "Get classification of taxa",
		long: `Get the classification of taxa from the root down to the taxon
itself.

Supported sources: itis, ncbi, worms, col.`,
		example: `  gntaxa classification "Chironomus riparius" -s ncbi -f pretty`,
	},
	{
		op:    taxon.OpChildren,
		short: "Get immediate children of taxa",
		long: `Get immediate child taxa.

Supported sources: itis, ncbi, worms, col.`,
		example: `  gntaxa children "Salmo" -s worms --simplify=false`,
	},
	{
		op:    taxon.OpDownstream,
		short: "Get all descendants of taxa at a rank",
		long: `Get all descendant taxa at the given rank, for example all
species of a family.

Supported sources: itis, ncbi, worms, col.`,
		example: `  gntaxa downstream "Apis" -s itis -r species`,
	},
	{
		op:    taxon.OpTaxonSearch,
		short: "Search taxa in BOLD Systems",
		long: `Search taxa in BOLD Systems. The result always is a table with
taxon id, name, rank, division, parent and representative name.`,
		example: `  gntaxa bold "Apis" "Bombus" -s bold`,
	},
	{
		op:    taxon.OpDataObjects,
		short: "Get metadata of EOL data objects",
		long: `Get metadata of Encyclopedia of Life data objects by their
identifiers.`,
		example: `  gntaxa dataobjects 29731913 -s eol`,
	},
}

// getQueryCmd creates a command for a dispatcher operation.
func getQueryCmd(def queryDef) *cobra.Command {
	cmd := &cobra.Command{
		Use:     string(def.op) + " [names or ids...]",
		Short:   def.short,
		Long:    def.long + inputHelp,
		Example: def.example,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runQuery(cmd, def.op, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	fs := cmd.Flags()
	fs.StringP("source", "s", "",
		"data source: eol, itis, ncbi, worms, bold or col")
	fs.Bool("id", false,
		"treat inputs as identifiers, 'source:id' or 'id' with --source")
	fs.StringP("input", "i", "",
		"file with one name or id per line, '-' for stdin")
	fs.IntP("batch", "b", defaultBatch,
		"number of inputs processed at once")
	if def.op == taxon.OpDownstream {
		fs.StringP("rank", "r", "", "rank of descendants, e.g. species")
		_ = cmd.MarkFlagRequired("rank")
	}
	addConfigFlags(cmd)

	return cmd
}

const inputHelp = `

Inputs come from arguments, from a file given by --input, or from
standard input if neither is given.`

func runQuery(cmd *cobra.Command, op taxon.Operation, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	q, err := newBatchQuery(cmd, op)
	if err != nil {
		return err
	}

	r, total, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer r.Close()

	pool := parserpool.NewPool(0, cfg.Code)
	defer pool.Close()
	taxa := iodispatch.NewWeb(cfg, pool)

	arch, err := ioarchive.New(cfg)
	if err != nil {
		return err
	}
	if arch != nil {
		if err = arch.Init(ctx); err != nil {
			return err
		}
		defer arch.Close()
	}

	var bar *pb.ProgressBar
	if total > 0 {
		bar = pb.Full.Start(total)
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	start := time.Now()
	st, err := q.run(ctx, taxa, arch, r, w, bar)
	if err != nil {
		return err
	}

	dur := time.Since(start)
	slog.Info("Query finished",
		"operation", op,
		"inputs", st.inputs,
		"missing", st.missing,
		"duration", gnfmt.TimeString(dur.Seconds()),
	)
	if cfg.Verbose {
		gn.Info("Processed <em>%s</em> inputs, <em>%s</em> missing in %s",
			humanize.Comma(int64(st.inputs)),
			humanize.Comma(int64(st.missing)),
			gnfmt.TimeString(dur.Seconds()),
		)
	}
	return nil
}

func newBatchQuery(cmd *cobra.Command, op taxon.Operation) (batchQuery, error) {
	fs := cmd.Flags()
	res := batchQuery{op: op, simplify: cfg.Output.Simplify}

	var err error
	if res.format, err = output.NewFormat(cfg.Output.Format); err != nil {
		return res, err
	}

	if s, _ := fs.GetString("source"); s != "" {
		if res.source, err = taxon.NewSource(s); err != nil {
			return res, iodispatch.UnknownSourceError(op)
		}
	}
	res.ids, _ = fs.GetBool("id")
	res.batchSize, _ = fs.GetInt("batch")
	if op == taxon.OpDownstream {
		res.rank, _ = fs.GetString("rank")
	}
	return res, nil
}

// openInput returns the reader of inputs and the number of lines for the
// progress bar. The number is known only for files.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, int, error) {
	if len(args) > 0 {
		return io.NopCloser(strings.NewReader(strings.Join(args, "\n"))), 0, nil
	}

	path, _ := cmd.Flags().GetString("input")
	if path == "" || path == "-" {
		r, err := iofs.OpenInput("-")
		return r, 0, err
	}

	f, err := iofs.OpenInput(path)
	if err != nil {
		return nil, 0, err
	}
	total, err := countLines(f)
	f.Close()
	if err != nil {
		return nil, 0, iofs.ReadFileError(path, err)
	}

	f, err = iofs.OpenInput(path)
	return f, total, err
}

func countLines(r io.Reader) (int, error) {
	var res int
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			res++
		}
	}
	return res, sc.Err()
}

// batchQuery runs one operation over a stream of inputs.
type batchQuery struct {
	op        taxon.Operation
	rank      string
	source    taxon.Source
	ids       bool
	batchSize int
	format    gnfmt.Format
	simplify  bool
}

type stats struct {
	inputs, missing int
}

// run reads inputs line by line and sends them to taxa in batches.
// CSV and TSV lines are written as soon as a batch is done, JSON
// formats are written as one document at the end.
func (q batchQuery) run(
	ctx context.Context,
	taxa gntaxa.Taxa,
	arch archive.Archiver,
	r io.Reader,
	w io.Writer,
	bar *pb.ProgressBar,
) (stats, error) {
	var st stats
	if q.batchSize < 1 {
		q.batchSize = defaultBatch
	}

	chIn := make(chan string)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chIn)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case chIn <- line:
			}
		}
		return sc.Err()
	})

	g.Go(func() error {
		var run archive.Run
		if arch != nil {
			run = archive.NewRun(q.op, gntaxa.Version)
		}
		if h := output.Header(q.op, q.simplify, q.format); h != "" {
			if _, err := fmt.Fprintln(w, h); err != nil {
				return err
			}
		}

		var all taxon.Results
		batch := make([]string, 0, q.batchSize)
		flush := func() error {
			if len(batch) == 0 {
				return nil
			}
			rs, err := q.process(ctx, taxa, batch)
			if err != nil {
				return err
			}
			if arch != nil {
				if err = arch.Save(ctx, run, rs); err != nil {
					return err
				}
			}
			if bar != nil {
				bar.Add(len(batch))
			}
			st.inputs += len(rs)
			st.missing += rs.MissingCount()
			batch = batch[:0]

			if q.isJSON() {
				all = append(all, rs...)
				return nil
			}
			return q.write(w, rs)
		}

		for line := range chIn {
			batch = append(batch, line)
			if len(batch) < q.batchSize {
				continue
			}
			if err := flush(); err != nil {
				return err
			}
		}
		if err := flush(); err != nil {
			return err
		}

		if q.isJSON() {
			if all == nil {
				all = taxon.Results{}
			}
			return q.write(w, all)
		}
		return nil
	})

	err := g.Wait()
	return st, err
}

func (q batchQuery) process(
	ctx context.Context,
	taxa gntaxa.Taxa,
	lines []string,
) (taxon.Results, error) {
	in := taxon.Input{Source: q.source}
	if !q.ids {
		in.Names = append([]string(nil), lines...)
		return taxa.Run(ctx, q.op, in, q.rank)
	}

	for _, v := range lines {
		id, err := taxon.ParseID(v, q.source)
		if err != nil {
			return nil, err
		}
		in.IDs = append(in.IDs, id)
	}
	return taxa.Run(ctx, q.op, in, q.rank)
}

func (q batchQuery) write(w io.Writer, rs taxon.Results) error {
	res, err := output.Format(rs, q.op, q.simplify, q.format)
	if err != nil {
		return err
	}
	if res == "" {
		return nil
	}
	_, err = fmt.Fprintln(w, res)
	return err
}

func (q batchQuery) isJSON() bool {
	return q.format == gnfmt.CompactJSON || q.format == gnfmt.PrettyJSON
}
