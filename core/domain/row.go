package domain

// Row is one record returned by the store. Columns keep the order produced
// by the statement and Values is index-aligned with Columns.
type Row struct {
	Columns []string
	Values  []any
}

// NewRow builds a row from parallel column and value slices
func NewRow(columns []string, values []any) Row {
	return Row{Columns: columns, Values: values}
}

// Get returns the value of the named column. When a statement produces the
// same column name twice, the last occurrence wins.
func (r Row) Get(column string) (any, bool) {
	for i := len(r.Columns) - 1; i >= 0; i-- {
		if r.Columns[i] == column {
			if i < len(r.Values) {
				return r.Values[i], true
			}
			return nil, false
		}
	}
	return nil, false
}

// Map returns the row as a column -> value map
func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r.Columns))
	for i, col := range r.Columns {
		if i < len(r.Values) {
			m[col] = r.Values[i]
		}
	}
	return m
}

// Len returns the number of columns in the row
func (r Row) Len() int {
	return len(r.Columns)
}
