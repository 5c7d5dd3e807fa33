package report

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/entity-search/internal/model"
)

// SheetName is the worksheet that WriteXLSX fills.
const SheetName = "Results"

// WriteXLSX writes the results as a single-sheet workbook. Rank and score
// are stored as numbers so they sort correctly in a spreadsheet.
func WriteXLSX(w io.Writer, results []model.SearchResult) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName)
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}

	hdr := sheet.AddRow()
	for _, h := range header {
		hdr.AddCell().SetString(h)
	}

	for i, r := range results {
		cols := row(i+1, r)
		xr := sheet.AddRow()
		xr.AddCell().SetInt(i + 1)
		for _, c := range cols[1:5] {
			xr.AddCell().SetString(c)
		}
		xr.AddCell().SetFloatWithFormat(r.Score, "0.00")
		for _, c := range cols[6:] {
			xr.AddCell().SetString(c)
		}
	}

	return eris.Wrap(f.Write(w), "xlsx: write workbook")
}
