package parser

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/models"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves rows into a single-sheet workbook and reopens it.
func writeWorkbook(t *testing.T, sheet string, startCell string, rows [][]interface{}) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName(f.GetSheetName(0), sheet)

	col, row, err := excelize.CellNameToCoordinates(startCell)
	if err != nil {
		t.Fatalf("bad start cell: %v", err)
	}
	for i, values := range rows {
		cell, _ := excelize.CoordinatesToCellName(col, row+i)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	f2, err := OpenWorkbook(path)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	t.Cleanup(func() { f2.Close() })
	return f2
}

func TestLoadTable(t *testing.T) {
	f := writeWorkbook(t, "RQ4_replicability", "A1", [][]interface{}{
		{"Year", "No Replication", "Partial Replication", "Full Replication"},
		{2013, 3, 0, 1},
		{2014, 1, 2, 1},
		{"Total", 4, 2, 2},
	})

	table, err := LoadTable(f, "RQ4_replicability", "Year")
	if err != nil {
		t.Fatalf("LoadTable failed: %v", err)
	}

	if len(table.Columns) != 4 {
		t.Fatalf("Expected 4 columns, got %v", table.Columns)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(table.Rows))
	}
	if table.Rows[0].R != 2 {
		t.Errorf("Expected first data row 2, got %d", table.Rows[0].R)
	}
	if got := table.Rows[0].Get("Year").Text; got != "2013" {
		t.Errorf("Expected id 2013, got %q", got)
	}
	if got := table.Rows[1].Get("Partial Replication").Num; got != models.Some(2) {
		t.Errorf("Expected 2, got %v", got)
	}
	if got := table.Rows[0].Get("Partial Replication").Num; got != models.Some(0) {
		t.Errorf("Expected observed zero, got %v", got)
	}
}

func TestLoadTableOffsetAndBlanks(t *testing.T) {
	f := writeWorkbook(t, "Data", "B3", [][]interface{}{
		{"Dataset", "Count"},
		{"SIR", 12},
		{"Defects4J", nil},
	})

	table, err := LoadTable(f, "Data", "Dataset")
	if err != nil {
		t.Fatalf("LoadTable failed: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[1].R != 5 {
		t.Errorf("Expected row 5, got %d", table.Rows[1].R)
	}
	if table.Rows[1].Get("Count").Num.Valid {
		t.Errorf("Expected absent count, got %v", table.Rows[1].Get("Count").Num)
	}
}

func TestLoadTableRange(t *testing.T) {
	f := writeWorkbook(t, "Data", "A1", [][]interface{}{
		{"notes", "ignored"},
		{"Dataset", "Count"},
		{"SIR", 12},
		{"Apache", 4},
	})

	table, err := LoadTable(f, "Data!A2:B3", "Dataset")
	if err != nil {
		t.Fatalf("LoadTable failed: %v", err)
	}
	if len(table.Rows) != 1 || table.Rows[0].Get("Dataset").Text != "SIR" {
		t.Fatalf("Expected only SIR row, got %+v", table.Rows)
	}
	if table.Rows[0].R != 3 {
		t.Errorf("Expected sheet row 3, got %d", table.Rows[0].R)
	}
}

func TestLoadTableErrors(t *testing.T) {
	tests := []struct {
		name  string
		rows  [][]interface{}
		ref   string
		id    string
		sheet bool
	}{
		{name: "missing sheet", rows: [][]interface{}{{"A"}}, ref: "Nope", sheet: true},
		{name: "duplicate header", rows: [][]interface{}{{"A", "A"}, {1, 2}}, ref: "S"},
		{name: "gap in header", rows: [][]interface{}{{"A", nil, "C"}, {1, 2, 3}}, ref: "S"},
		{name: "row wider than header", rows: [][]interface{}{{"A", "B"}, {1, 2, 3}}, ref: "S"},
		{name: "duplicate id", rows: [][]interface{}{{"Year", "N"}, {2013, 1}, {2013, 2}}, ref: "S", id: "Year"},
		{name: "unknown id column", rows: [][]interface{}{{"Year", "N"}, {2013, 1}}, ref: "S", id: "Class"},
		{name: "empty id", rows: [][]interface{}{{"Year", "N"}, {nil, 1}}, ref: "S", id: "Year"},
		{name: "empty sheet", rows: nil, ref: "S"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := writeWorkbook(t, "S", "A1", tt.rows)
			_, err := LoadTable(f, tt.ref, tt.id)
			if err == nil {
				t.Fatal("Expected error")
			}
			var notFound *SheetNotFoundError
			var bad *MalformedTableError
			if tt.sheet && !errors.As(err, &notFound) {
				t.Errorf("Expected SheetNotFoundError, got %v", err)
			}
			if !tt.sheet && !errors.As(err, &bad) {
				t.Errorf("Expected MalformedTableError, got %v", err)
			}
		})
	}
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		input    string
		expected models.Cell
	}{
		{"123", models.Cell{Text: "123", Num: models.Some(123)}},
		{"123.45", models.Cell{Text: "123.45", Num: models.Some(123.45)}},
		{"-100", models.Cell{Text: "-100", Num: models.Some(-100)}},
		{"1,000", models.Cell{Text: "1,000", Num: models.Some(1000)}},
		{"1,234.5", models.Cell{Text: "1,234.5", Num: models.Some(1234.5)}},
		{"3,4", models.Cell{Text: "3,4"}},
		{"1,5", models.Cell{Text: "1,5"}},
		{",7,", models.Cell{Text: ",7,"}},
		{"12,34,567", models.Cell{Text: "12,34,567"}},
		{" hello ", models.Cell{Text: "hello"}},
		{"NaN", models.Cell{Text: "NaN"}},
		{"", models.Cell{}},
	}

	for _, tt := range tests {
		result := parseCell(tt.input)
		if result != tt.expected {
			t.Errorf("parseCell(%q) = %+v, expected %+v", tt.input, result, tt.expected)
		}
	}
}

func TestListSheets(t *testing.T) {
	f := writeWorkbook(t, "RQ3_datasets", "B2", [][]interface{}{
		{"Dataset", "Count"},
		{"SIR", 12},
	})

	infos, err := ListSheets(f)
	if err != nil {
		t.Fatalf("ListSheets failed: %v", err)
	}
	if len(infos) != 1 || infos[0].Name != "RQ3_datasets" {
		t.Fatalf("Unexpected sheets: %+v", infos)
	}
	if infos[0].Range == nil || FormatRange(*infos[0].Range) != "B2:C3" {
		t.Errorf("Expected range B2:C3, got %+v", infos[0].Range)
	}
}
