package models

// LongRecord is one (group, series) cell of a pivoted wide table.
type LongRecord struct {
	// Group is the identifier-column value of the source row.
	Group string `json:"group"`
	// Series is the value-column name.
	Series string `json:"series"`
	// Value is the cell number; absent cells pass through as absent.
	Value Value `json:"value"`
	// Percent is the share of the group total, absent until derived or when the total is zero.
	Percent Value `json:"percent"`
}

// Key returns the record's value for a categorical field.
func (r LongRecord) Key(f Field) string {
	switch f {
	case FieldGroup:
		return r.Group
	case FieldSeries:
		return r.Series
	}
	return ""
}

// Measure returns the record's value for a numeric field.
func (r LongRecord) Measure(f Field) Value {
	switch f {
	case FieldValue:
		return r.Value
	case FieldPercent:
		return r.Percent
	}
	return Missing()
}
