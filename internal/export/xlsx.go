package export

import (
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/landgrid/suitability-cli/internal/suitability"
)

// XLSX writes the result attribute table as a single-sheet workbook,
// geometry omitted. Numeric and boolean cells keep their types.
func XLSX(res *suitability.AnalysisResult, w io.Writer) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("results")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	columns := res.Boundary.Columns()
	header := sheet.AddRow()
	for _, col := range columns {
		header.AddCell().SetString(col)
	}

	for _, f := range res.Boundary.Features {
		row := sheet.AddRow()
		for _, col := range columns {
			setCell(row.AddCell(), f.Attrs[col])
		}
	}

	if err := file.Write(w); err != nil {
		return eris.Wrap(err, "export: write workbook")
	}
	return nil
}

func setCell(c *xlsx.Cell, v any) {
	switch x := v.(type) {
	case nil:
		c.SetString("")
	case string:
		c.SetString(x)
	case float64:
		c.SetFloat(x)
	case int:
		c.SetInt(x)
	case bool:
		c.SetBool(x)
	default:
		c.SetString(fmt.Sprint(x))
	}
}
