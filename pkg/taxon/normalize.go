package taxon

import "strings"

// Normalize shapes records of a source adapter into the result.
// With simplify the result receives non-empty values of the most
// relevant field, otherwise the full table. No records, or no
// non-empty values after simplification, mark the result as missing.
func Normalize[R Record](
	res *Result,
	recs []R,
	columns []string,
	simplify bool,
	field func(R) string,
) {
	if len(recs) == 0 {
		res.SetMissing("")
		return
	}

	if !simplify {
		res.Table = NewTable(columns, recs)
		return
	}

	var simple []string
	for _, v := range recs {
		s := strings.TrimSpace(field(v))
		if s == "" {
			continue
		}
		simple = append(simple, s)
	}
	if len(simple) == 0 {
		res.SetMissing("")
		return
	}
	res.Simple = simple
}

// CommonNameField is the simplified field of common names.
func CommonNameField(c CommonName) string { return c.Name }

// TaxonField is the simplified field of taxa.
func TaxonField(t Taxon) string { return t.Name }

// DataObjectField is the simplified field of data objects.
func DataObjectField(d DataObject) string {
	if d.Title != "" {
		return d.Title
	}
	return d.DataType
}

// IDField is the simplified field of resolved identifiers.
func IDField(id ID) string { return id.Value }
