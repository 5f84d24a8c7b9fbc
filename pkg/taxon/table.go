package taxon

import "slices"

// Table is a full structured output of a query. Empty strings denote
// missing cells.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// NewTable builds a table from records sharing the same column set.
func NewTable[R Record](columns []string, recs []R) *Table {
	res := &Table{
		Columns: slices.Clone(columns),
		Rows:    make([][]string, 0, len(recs)),
	}
	for _, v := range recs {
		res.Rows = append(res.Rows, v.Values())
	}
	return res
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Column returns all values of a column, or nil if the column
// does not exist.
func (t *Table) Column(name string) []string {
	if t == nil {
		return nil
	}
	idx := slices.Index(t.Columns, name)
	if idx == -1 {
		return nil
	}
	res := make([]string, len(t.Rows))
	for i := range t.Rows {
		res[i] = t.Rows[i][idx]
	}
	return res
}

// Append adds rows of another table with the same columns.
// Tables with a different column set are ignored.
func (t *Table) Append(other *Table) {
	if other == nil || !slices.Equal(t.Columns, other.Columns) {
		return
	}
	t.Rows = append(t.Rows, other.Rows...)
}
