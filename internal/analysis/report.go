package analysis

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/KaramelBytes/cardash/internal/dataset"
)

// Overview is the Dataset Overview tab in tabular form.
type Overview struct {
	Name      string          `json:"name"`
	Rows      int             `json:"rows"`
	Total     int             `json:"total"`
	Header    []string        `json:"header"`
	Head      [][]string      `json:"head"`
	Stats     []ColumnStats   `json:"stats"`
	TopColumn string          `json:"top_column"`
	Top       []CategoryCount `json:"top"`
}

// NewOverview summarizes v: the first headRows rows, describe() of numeric
// columns and the topN most frequent values of topCol.
func NewOverview(v *dataset.View, headRows, topN int, topCol string) *Overview {
	ds := v.Dataset()
	o := &Overview{
		Name:      filepath.Base(ds.Source()),
		Rows:      v.Len(),
		Total:     ds.Len(),
		Header:    ds.Header(),
		TopColumn: topCol,
	}
	if v.Empty() {
		return o
	}
	o.Head = v.Head(headRows)
	o.Stats = Describe(v)
	o.Top = ValueCounts(v, topCol, topN)
	return o
}

// Markdown renders a compact report for terminal output.
func (o *Overview) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if o.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", o.Name))
	}
	if o.Rows < o.Total {
		b.WriteString(fmt.Sprintf("Rows: %d of %d (filtered)\n", o.Rows, o.Total))
	} else {
		b.WriteString(fmt.Sprintf("Rows: %d\n", o.Rows))
	}
	b.WriteString(fmt.Sprintf("Columns: %d\n", len(o.Header)))
	if o.Rows == 0 {
		b.WriteString("\nNo data matches the current filters.\n")
		return b.String()
	}

	b.WriteString("\n[SUMMARY STATISTICS]\n")
	b.WriteString("| column | count | mean | std | min | 25% | 50% | 75% | max |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for _, s := range o.Stats {
		b.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s | %s | %s | %s | %s |\n",
			s.Name, s.Count, num(s.Mean), num(s.Std), num(s.Min), num(s.Q1), num(s.Q2), num(s.Q3), num(s.Max)))
	}

	if len(o.Top) > 0 {
		b.WriteString(fmt.Sprintf("\n[TOP VALUES: %s]\n", o.TopColumn))
		for _, c := range o.Top {
			b.WriteString(fmt.Sprintf("- %s: %d\n", safeVal(c.Value), c.Count))
		}
	}

	if len(o.Head) > 0 {
		b.WriteString("\n[HEAD ROWS]\n")
		b.WriteString("| " + strings.Join(o.Header, " | ") + " |\n")
		b.WriteString("|" + strings.Repeat(" --- |", len(o.Header)) + "\n")
		for _, row := range o.Head {
			cells := make([]string, len(row))
			for i, v := range row {
				if utf8.RuneCountInString(v) > 40 {
					v = string([]rune(v)[:37]) + "..."
				}
				cells[i] = safeVal(v)
			}
			b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
		}
	}
	return b.String()
}

func num(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return fmt.Sprintf("%.4g", f)
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
