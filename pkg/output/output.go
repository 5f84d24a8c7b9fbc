// Package output renders dispatcher results as CSV, TSV or JSON.
//
// CSV and TSV outputs are flat: every row starts with the query input,
// the source, the resolved identifier, the missing flag and a message,
// followed by the fields of one record. A missing result produces one
// row with empty record fields. Simplified results have a single
// "value" field.
package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gntaxa/pkg/taxon"
)

// prefix columns precede record fields in CSV and TSV outputs.
var prefix = []string{"input", "source", "resolved_id", "missing", "message"}

// NewFormat converts a configuration value to a gnfmt.Format.
func NewFormat(s string) (gnfmt.Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return gnfmt.CSV, nil
	case "tsv":
		return gnfmt.TSV, nil
	case "compact", "json":
		return gnfmt.CompactJSON, nil
	case "pretty":
		return gnfmt.PrettyJSON, nil
	}
	return gnfmt.FormatNone, fmt.Errorf("unknown output format '%s'", s)
}

// Columns returns record columns of an operation.
func Columns(op taxon.Operation, simplify bool) []string {
	if simplify && op != taxon.OpTaxonSearch {
		return []string{"value"}
	}
	switch op {
	case taxon.OpIDs:
		return taxon.IDColumns
	case taxon.OpCommonNames:
		return taxon.CommonNameColumns
	case taxon.OpClassification, taxon.OpChildren, taxon.OpDownstream:
		return taxon.TaxonColumns
	case taxon.OpTaxonSearch:
		return taxon.BoldColumns
	case taxon.OpDataObjects:
		return taxon.DataObjectColumns
	}
	return nil
}

// Header returns the header line for CSV and TSV outputs, or an empty
// string for JSON formats.
func Header(op taxon.Operation, simplify bool, f gnfmt.Format) string {
	sep, ok := separator(f)
	if !ok {
		return ""
	}
	cols := append(append([]string{}, prefix...), Columns(op, simplify)...)
	return gnfmt.ToCSV(cols, sep)
}

// Format renders results. CSV and TSV produce one line per record
// without a header, JSON formats produce one document for all results.
func Format(
	rs taxon.Results,
	op taxon.Operation,
	simplify bool,
	f gnfmt.Format,
) (string, error) {
	switch f {
	case gnfmt.CompactJSON, gnfmt.PrettyJSON:
		enc := gnfmt.GNjson{Pretty: f == gnfmt.PrettyJSON}
		res, err := enc.Encode(rs)
		if err != nil {
			return "", err
		}
		return string(res), nil
	}

	sep, ok := separator(f)
	if !ok {
		return "", fmt.Errorf("unsupported format '%s'", f)
	}
	width := len(Columns(op, simplify))
	var lines []string
	for _, r := range rs {
		for _, row := range Rows(r, width) {
			lines = append(lines, gnfmt.ToCSV(row, sep))
		}
	}
	return strings.Join(lines, "\n"), nil
}

// Rows flattens a result into rows of prefix and record fields. Width
// is the number of record fields.
func Rows(r taxon.Result, width int) [][]string {
	var id string
	if r.ID != nil {
		id = r.ID.Value
	}
	msg := r.Message
	if r.Error != "" {
		msg = r.Error
	}
	pre := []string{
		r.Input, r.Source.String(), id, strconv.FormatBool(r.Missing), msg,
	}
	row := func(fields []string) []string {
		res := make([]string, 0, len(pre)+width)
		res = append(res, pre...)
		res = append(res, fields...)
		for len(res) < len(pre)+width {
			res = append(res, "")
		}
		return res[:len(pre)+width]
	}

	var res [][]string
	switch {
	case r.Table.Len() > 0:
		for _, v := range r.Table.Rows {
			res = append(res, row(v))
		}
	case len(r.Simple) > 0:
		for _, v := range r.Simple {
			res = append(res, row([]string{v}))
		}
	default:
		res = append(res, row(nil))
	}
	return res
}

func separator(f gnfmt.Format) (rune, bool) {
	switch f {
	case gnfmt.CSV:
		return ',', true
	case gnfmt.TSV:
		return '\t', true
	}
	return 0, false
}
