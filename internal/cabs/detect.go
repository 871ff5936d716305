package cabs

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// detectMarkers are checked in order: the most specific marker phrases
// come first because the report titles share common substrings
// ("function summary report (by room)" vs "function summary report").
var detectMarkers = []struct {
	marker string
	ftype  FileType
}{
	{"function summary report (by room)", FileFunctionRoom},
	{"function summary report", FileFunctionSummary},
	{"training rooms report", FileTrainingRoom},
	{"visitors arrival list", FileVisitorList},
	{"catering requirements report", FileCatering},
	{"catering report", FileCatering},
}

// DetectFileType inspects the first few lines of a CABS export (the
// caller passes roughly the first 1KB of raw text) and returns the
// report type, or FileUnknown when no marker phrase is found. Callers
// must treat FileUnknown as a hard failure for that file.
func DetectFileType(head string) FileType {
	lines := strings.Split(head, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	haystack := strings.ToLower(strings.Join(lines, "\n"))
	for _, m := range detectMarkers {
		if strings.Contains(haystack, m.marker) {
			return m.ftype
		}
	}
	return FileUnknown
}

// ParseRows decodes comma-delimited CSV text into a row grid, tolerating
// ragged rows and stray quotes the way CABS exports require, and
// dropping rows with no content at all.
func ParseRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode csv: %w", err)
		}
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
