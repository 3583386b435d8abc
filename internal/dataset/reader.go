package dataset

import (
	"path/filepath"
	"strings"
)

// Options controls how an input file is read.
type Options struct {
	// Delimiter for CSV. If 0, chosen from the file extension.
	Delimiter rune
	// SheetName selects an XLSX sheet; empty means SheetIndex.
	SheetName string
	// SheetIndex is the 1-based XLSX sheet index used when SheetName is empty.
	SheetIndex int
}

// Reader turns a file into a header row followed by data rows.
type Reader interface {
	CanRead(path string) bool
	Read(path string, opt Options) ([][]string, error)
}

var readers []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	readers = append(readers, r)
}

func readerFor(path string) Reader {
	for _, r := range readers {
		if r.CanRead(path) {
			return r
		}
	}
	// Unknown extensions are treated as comma separated text.
	return csvReader{}
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
}

// Load reads path with the matching reader and builds a Dataset.
func Load(path string, opt Options) (*Dataset, error) {
	table, err := readerFor(path).Read(path, opt)
	if err != nil {
		return nil, &LoadError{Path: path, Op: "read", Err: err}
	}
	return FromTable(path, table)
}

func hasExt(path string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
