package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/landgrid/suitability-cli/internal/suitability"
)

// CSV writes the result attribute table, geometry omitted. Columns
// appear in dataset order: original attributes first, then the appended
// score and decision columns.
func CSV(res *suitability.AnalysisResult, w io.Writer) error {
	cw := csv.NewWriter(w)
	columns := res.Boundary.Columns()

	if err := cw.Write(columns); err != nil {
		return eris.Wrap(err, "export: write CSV header")
	}

	row := make([]string, len(columns))
	for _, f := range res.Boundary.Features {
		for i, col := range columns {
			row[i] = cell(f.Attrs[col])
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "export: write CSV row")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "export: flush CSV")
	}
	return nil
}

// cell renders an attribute value for CSV output.
func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}
