package cabs

import (
	"regexp"
	"strings"
)

// minRowWidth filters out the short metadata rows that CABS mixes into
// every export; real data rows are always at least this wide.
const minRowWidth = 15

var clockRe = regexp.MustCompile(`\d{2}:\d{2}`)

// Classify filters a raw row grid down to the rows carrying actual data
// for the given report type. CABS files have no header row to key off,
// so each report type has signal columns that are checked for data-like
// content rather than label text.
func Classify(rows [][]string, ftype FileType, layouts Layouts) [][]string {
	var out [][]string
	for _, row := range rows {
		if len(row) < minRowWidth {
			continue
		}
		if isDataRow(row, ftype, layouts) {
			out = append(out, row)
		}
	}
	return out
}

func isDataRow(row []string, ftype FileType, layouts Layouts) bool {
	switch ftype {
	case FileVisitorList:
		l := layouts.VisitorList
		visitor := cell(row, l.VisitorName)
		host := cell(row, l.HostName)
		return visitor != "" && host != "" &&
			visitor != "Visitor and Company" &&
			host != "Host Name and Contact Details"

	case FileFunctionRoom, FileFunctionSummary:
		// Both function layouts share the same signal columns.
		room := cell(row, 15)
		start := cell(row, 16)
		return room != "" && start != "" &&
			!strings.Contains(room, "Start at") &&
			!strings.Contains(room, "Room")

	case FileTrainingRoom:
		l := layouts.TrainingRoom
		ref := cell(row, l.Ref)
		clock := cell(row, l.Time)
		return ref != "" && clock != "" &&
			!strings.Contains(ref, "Booking") &&
			clockRe.MatchString(clock)

	case FileCatering:
		l := layouts.Catering
		code := cell(row, l.Code)
		name := cell(row, l.Name)
		room := cell(row, l.Room)
		return code != "" && name != "" && room != "" &&
			!strings.Contains(code, "Extras") &&
			!strings.Contains(room, "Room") &&
			len(room) > 3
	}
	return false
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
