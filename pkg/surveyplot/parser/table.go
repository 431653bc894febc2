package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/models"
	"github.com/xuri/excelize/v2"
)

// LoadTable reads a sheet as a header row followed by data rows.
// ref is a sheet name, optionally suffixed with a range (Sheet!A1:F20).
// When idColumn is non-empty it must appear in the header and be unique per row.
func LoadTable(f *excelize.File, ref, idColumn string) (*models.Table, error) {
	sheet, area := ParseSheetRef(ref)

	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, &SheetNotFoundError{Sheet: sheet, Available: f.GetSheetList()}
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	rowOffset, colOffset := 0, 0
	if area != nil {
		rows = clipRows(rows, *area)
		rowOffset, colOffset = area.R1-1, area.C1-1
	}

	return buildTable(sheet, rows, idColumn, rowOffset, colOffset)
}

// buildTable turns raw rows into a Table. The header is the first non-empty
// row; columns left of the data bounds are ignored.
func buildTable(sheet string, rows [][]string, idColumn string, rowOffset, colOffset int) (*models.Table, error) {
	minRow, _, minCol, _ := findDataBounds(rows)
	if minRow < 0 {
		return nil, malformed(sheet, 0, "no header row")
	}

	header := trimTrailing(rows[minRow][minCol:])
	if len(header) == 0 {
		return nil, malformed(sheet, rowOffset+minRow+1, "no header row")
	}
	table := &models.Table{Sheet: sheet, IDColumn: idColumn}
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			col, _ := excelize.ColumnNumberToName(colOffset + minCol + i + 1)
			return nil, malformed(sheet, rowOffset+minRow+1, "empty header in column %s", col)
		}
		if seen[name] {
			return nil, malformed(sheet, rowOffset+minRow+1, "duplicate header %q", name)
		}
		seen[name] = true
		table.Columns = append(table.Columns, name)
	}
	if idColumn != "" && !seen[idColumn] {
		return nil, malformed(sheet, rowOffset+minRow+1, "identifier column %q not in header", idColumn)
	}

	ids := make(map[string]int)
	for rowIdx := minRow + 1; rowIdx < len(rows); rowIdx++ {
		rowNum := rowOffset + rowIdx + 1 // 1-based row index
		raw := rows[rowIdx]
		if minCol < len(raw) {
			raw = trimTrailing(raw[minCol:])
		} else {
			raw = nil
		}
		if len(raw) == 0 {
			continue
		}
		if len(raw) > len(table.Columns) {
			return nil, malformed(sheet, rowNum, "%d cells but header has %d columns", len(raw), len(table.Columns))
		}

		row := models.Row{R: rowNum, C: make(map[string]models.Cell, len(table.Columns))}
		for colIdx, name := range table.Columns {
			var text string
			if colIdx < len(raw) {
				text = raw[colIdx]
			}
			row.C[name] = parseCell(text)
		}

		if idColumn != "" {
			id := row.Get(idColumn).Text
			if id == "" {
				return nil, malformed(sheet, rowNum, "empty identifier in column %q", idColumn)
			}
			if prev, dup := ids[id]; dup {
				return nil, malformed(sheet, rowNum, "identifier %q repeats row %d", id, prev)
			}
			ids[id] = rowNum
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// groupedNumber matches numbers written with comma thousands grouping.
var groupedNumber = regexp.MustCompile(`^[-+]?\d{1,3}(,\d{3})+(\.\d+)?$`)

// parseCell trims the cell text and parses it as a number when possible.
// Thousands separators are tolerated in numeric text.
func parseCell(s string) models.Cell {
	text := strings.TrimSpace(s)
	cell := models.Cell{Text: text}
	if text == "" {
		return cell
	}
	// Try integer first
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		cell.Num = models.Some(float64(i))
		return cell
	}
	num := text
	if strings.Contains(num, ",") {
		if !groupedNumber.MatchString(num) {
			return cell
		}
		num = strings.ReplaceAll(num, ",", "")
	}
	// Try float
	if f, err := strconv.ParseFloat(num, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		cell.Num = models.Some(f)
	}
	return cell
}

// trimTrailing drops trailing blank cells.
func trimTrailing(row []string) []string {
	end := len(row)
	for end > 0 && strings.TrimSpace(row[end-1]) == "" {
		end--
	}
	return row[:end]
}
