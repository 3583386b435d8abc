package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// WriteCSV writes the header and every row of v as comma separated UTF-8.
func WriteCSV(w io.Writer, v *View) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(v.Dataset().header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, i := range v.idx {
		if err := cw.Write(v.ds.rows[i]); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeCSV returns the CSV bytes of v.
func EncodeCSV(v *View) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportName returns the download file name for a filtered export of source,
// e.g. "data/cardekho.csv" -> "filtered_cardekho.csv".
func ExportName(source string) string {
	base := filepath.Base(source)
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "dataset"
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return "filtered_" + base + ".csv"
}
