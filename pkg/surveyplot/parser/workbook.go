package parser

import (
	"fmt"

	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/models"
	"github.com/xuri/excelize/v2"
)

// OpenWorkbook opens an xlsx workbook for reading. The handle is never saved;
// callers must Close it.
func OpenWorkbook(path string) (*excelize.File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return f, nil
}

// SheetInfo summarises one sheet for listing.
type SheetInfo struct {
	Name string
	// Range is the detected table range, nil when the sheet holds no table.
	Range *models.CellRange
}

// ListSheets returns every sheet with its detected table range, in workbook order.
func ListSheets(f *excelize.File) ([]SheetInfo, error) {
	var infos []SheetInfo
	for _, name := range f.GetSheetList() {
		area, err := DetectTable(f, name, DefaultTableParams())
		if err != nil {
			return nil, fmt.Errorf("scan sheet %q: %w", name, err)
		}
		infos = append(infos, SheetInfo{Name: name, Range: area})
	}
	return infos, nil
}

// FormatRange renders a range in A1:D10 notation.
func FormatRange(area models.CellRange) string {
	start, _ := excelize.CoordinatesToCellName(area.C1, area.R1)
	end, _ := excelize.CoordinatesToCellName(area.C2, area.R2)
	return start + ":" + end
}
