// Package models defines data structures shared by the loader, reshaper, encoder and renderer.
package models

import "strconv"

// Value is an optional number. The zero Value is absent, which keeps
// "not observed" distinct from an observed zero.
type Value struct {
	// V is the number; meaningful only when Valid is true.
	V float64 `json:"v"`
	// Valid reports whether the number is present.
	Valid bool `json:"valid"`
}

// Some returns a present Value.
func Some(v float64) Value {
	return Value{V: v, Valid: true}
}

// Missing returns an absent Value.
func Missing() Value {
	return Value{}
}

// Or returns the number, or def when absent.
func (v Value) Or(def float64) float64 {
	if !v.Valid {
		return def
	}
	return v.V
}

// Empty reports whether the value is absent or exactly zero.
func (v Value) Empty() bool {
	return !v.Valid || v.V == 0
}

func (v Value) String() string {
	if !v.Valid {
		return "NA"
	}
	return strconv.FormatFloat(v.V, 'g', -1, 64)
}

// Cell is a single worksheet cell.
type Cell struct {
	// Text is the trimmed raw cell text.
	Text string `json:"text"`
	// Num holds the parsed number when the text is numeric.
	Num Value `json:"num"`
}

// Blank reports whether the cell has no content.
func (c Cell) Blank() bool {
	return c.Text == ""
}

// Row is a single data row keyed by header name.
type Row struct {
	// R is the worksheet row index (1-based).
	R int `json:"r"`
	// C maps column name to cell.
	C map[string]Cell `json:"c"`
}

// Get returns the cell under column, or a blank cell.
func (r Row) Get(column string) Cell {
	return r.C[column]
}
