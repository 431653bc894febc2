// Package reshape converts wide tables into ordered long-form records.
package reshape

import (
	"strconv"

	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/models"
	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/parser"
)

// Options configures a pivot.
type Options struct {
	// IDColumn is the identifier column; defaults to the table's IDColumn.
	IDColumn string
	// ValueColumns are reshaped in this order; empty means every non-identifier column.
	ValueColumns []string
	// GroupOrder and SeriesOrder impose output order. Keys not listed follow in table order.
	GroupOrder  []string
	SeriesOrder []string
}

// ExcludeRows returns a copy of t without the rows whose identifier equals one of values.
// Sentinel rows such as "Total" must be removed this way before pivoting.
func ExcludeRows(t *models.Table, values ...string) *models.Table {
	drop := make(map[string]bool, len(values))
	for _, v := range values {
		drop[v] = true
	}
	out := *t
	out.Rows = make([]models.Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		if drop[r.Get(t.IDColumn).Text] {
			continue
		}
		out.Rows = append(out.Rows, r)
	}
	return &out
}

// Pivot produces one record per (row, value column), ordered by group then series.
// Absent cells pass through as absent values; zeros stay zeros.
func Pivot(t *models.Table, opts Options) ([]models.LongRecord, error) {
	id := opts.IDColumn
	if id == "" {
		id = t.IDColumn
	}
	if id == "" || !t.HasColumn(id) {
		return nil, &parser.MalformedTableError{Sheet: t.Sheet, Reason: "identifier column " + strconv.Quote(id) + " not in header"}
	}

	cols := opts.ValueColumns
	if len(cols) == 0 {
		for _, c := range t.Columns {
			if c != id {
				cols = append(cols, c)
			}
		}
	}
	for _, c := range cols {
		if c == id || !t.HasColumn(c) {
			return nil, &parser.MalformedTableError{Sheet: t.Sheet, Reason: "value column " + strconv.Quote(c) + " not in header"}
		}
	}

	byGroup := make(map[string]models.Row, len(t.Rows))
	seenGroups := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		key := r.Get(id).Text
		if _, dup := byGroup[key]; dup {
			return nil, &parser.MalformedTableError{Sheet: t.Sheet, Row: r.R, Reason: "identifier " + strconv.Quote(key) + " repeats"}
		}
		byGroup[key] = r
		seenGroups = append(seenGroups, key)
	}

	groups := Order(opts.GroupOrder, seenGroups)
	series := Order(opts.SeriesOrder, cols)

	records := make([]models.LongRecord, 0, len(groups)*len(series))
	for _, g := range groups {
		row := byGroup[g]
		for _, s := range series {
			cell := row.Get(s)
			if !cell.Blank() && !cell.Num.Valid {
				return nil, &parser.MalformedTableError{Sheet: t.Sheet, Row: row.R, Reason: "non-numeric value " + strconv.Quote(cell.Text) + " in column " + strconv.Quote(s)}
			}
			records = append(records, models.LongRecord{Group: g, Series: s, Value: cell.Num})
		}
	}
	return records, nil
}

// Order returns the keys of seen arranged by declared order, followed by
// undeclared keys in their seen order. Declared keys that were not seen are dropped.
func Order(declared, seen []string) []string {
	present := make(map[string]bool, len(seen))
	for _, k := range seen {
		present[k] = true
	}
	out := make([]string, 0, len(seen))
	placed := make(map[string]bool, len(seen))
	for _, k := range declared {
		if present[k] && !placed[k] {
			out = append(out, k)
			placed[k] = true
		}
	}
	for _, k := range seen {
		if !placed[k] {
			out = append(out, k)
			placed[k] = true
		}
	}
	return out
}

// Percentages returns a copy of records with Percent set to each value's share
// of its group total. Groups totalling zero get absent percents.
func Percentages(records []models.LongRecord) []models.LongRecord {
	totals := Totals(records)
	out := make([]models.LongRecord, len(records))
	for i, r := range records {
		r.Percent = models.Missing()
		if total := totals[r.Group]; total != 0 {
			r.Percent = models.Some(100 * r.Value.Or(0) / total)
		}
		out[i] = r
	}
	return out
}

// ZeroAsMissing returns a copy of records where observed zeros become absent.
// Apply it after Percentages so group totals are unaffected.
func ZeroAsMissing(records []models.LongRecord) []models.LongRecord {
	out := make([]models.LongRecord, len(records))
	for i, r := range records {
		if r.Value.Valid && r.Value.V == 0 {
			r.Value = models.Missing()
			r.Percent = models.Missing()
		}
		out[i] = r
	}
	return out
}

// Totals sums values per group; absent values count as zero.
func Totals(records []models.LongRecord) map[string]float64 {
	totals := make(map[string]float64)
	for _, r := range records {
		totals[r.Group] += r.Value.Or(0)
	}
	return totals
}

// Keys returns the distinct keys of a categorical field in first-seen order.
func Keys(records []models.LongRecord, f models.Field) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, r := range records {
		k := r.Key(f)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}

// Filter keeps the records whose field equals key.
func Filter(records []models.LongRecord, f models.Field, key string) []models.LongRecord {
	var out []models.LongRecord
	for _, r := range records {
		if r.Key(f) == key {
			out = append(out, r)
		}
	}
	return out
}
