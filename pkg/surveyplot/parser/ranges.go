package parser

import (
	"strings"

	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/models"
	"github.com/xuri/excelize/v2"
)

// ParseSheetRef splits a sheet reference into sheet name and optional range.
// Format: 'Sheet Name'!$A$1:$D$10, Sheet!A1:D10 or a bare sheet name. A
// suffix that is not a valid range is kept as part of the sheet name.
func ParseSheetRef(ref string) (string, *models.CellRange) {
	ref = strings.TrimSpace(ref)
	idx := strings.LastIndex(ref, "!")
	if idx < 0 {
		return strings.Trim(ref, "'"), nil
	}

	area := parseRangeToArea(ref[idx+1:])
	if area == nil {
		return strings.Trim(ref, "'"), nil
	}
	return strings.Trim(ref[:idx], "'"), area
}

// parseRangeToArea parses a range string like $A$1:$D$10.
func parseRangeToArea(rangeStr string) *models.CellRange {
	// Remove $ signs
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil
	}

	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}

	return &models.CellRange{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}
}

// clipRows restricts raw rows to area; rows and columns outside it are dropped.
func clipRows(rows [][]string, area models.CellRange) [][]string {
	var out [][]string
	for r := area.R1 - 1; r < area.R2 && r < len(rows); r++ {
		row := rows[r]
		var clipped []string
		if area.C1-1 < len(row) {
			end := area.C2
			if end > len(row) {
				end = len(row)
			}
			clipped = row[area.C1-1 : end]
		}
		out = append(out, clipped)
	}
	return out
}
