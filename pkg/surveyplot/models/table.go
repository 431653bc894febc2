package models

// Table is a worksheet region read as a header row plus data rows.
type Table struct {
	// Sheet is the source sheet name.
	Sheet string `json:"sheet"`
	// Columns is the header, in sheet order.
	Columns []string `json:"columns"`
	// IDColumn names the identifier column, unique per row. Empty if none was declared.
	IDColumn string `json:"id_column,omitempty"`
	// Rows holds the data rows in sheet order.
	Rows []Row `json:"rows"`
}

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ValueColumns returns every header column except the identifier column.
func (t *Table) ValueColumns() []string {
	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c != t.IDColumn {
			cols = append(cols, c)
		}
	}
	return cols
}

// IDs returns the identifier cell text of every row, in row order.
func (t *Table) IDs() []string {
	ids := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		ids = append(ids, r.Get(t.IDColumn).Text)
	}
	return ids
}
