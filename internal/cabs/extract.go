package cabs

import (
	"fmt"
	"strconv"

	"cabsbot/internal/rooms"
)

// ExtractFunctionRooms maps classified function-room rows onto typed
// records. Rows missing any of the mandatory funcNo/contact/purpose
// fields are dropped silently; only record counts reveal them.
func ExtractFunctionRooms(rows [][]string, layouts Layouts) []FunctionRoomRecord {
	l := layouts.FunctionRoom
	var out []FunctionRoomRecord
	for _, row := range Classify(rows, FileFunctionRoom, layouts) {
		rec := FunctionRoomRecord{
			Room:      cell(row, l.Room),
			StartTime: cell(row, l.Start),
			EndTime:   cell(row, l.End),
			Covers:    atoi(cell(row, l.Covers)),
			Contact:   cell(row, l.Contact),
			FuncNo:    cell(row, l.FuncNo),
			Status:    cell(row, l.Status),
			RoomUse:   cell(row, l.RoomUse),
			Purpose:   cell(row, l.Purpose),
		}
		rec.RoomCode = rooms.ExtractCode(rec.Room)
		if rec.FuncNo == "" || rec.Contact == "" || rec.Purpose == "" {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// ExtractFunctionSummary maps classified function-summary rows onto
// typed records, dropping rows without funcNo/host/purpose.
func ExtractFunctionSummary(rows [][]string, layouts Layouts) []FunctionSummaryRecord {
	l := layouts.FunctionSummary
	var out []FunctionSummaryRecord
	for _, row := range Classify(rows, FileFunctionSummary, layouts) {
		rec := FunctionSummaryRecord{
			Date:      cell(row, l.Date),
			Room:      cell(row, l.Room),
			StartTime: cell(row, l.Start),
			EndTime:   cell(row, l.End),
			Covers:    atoi(cell(row, l.Covers)),
			Host:      cell(row, l.Host),
			Purpose:   cell(row, l.Purpose),
			FuncNo:    cell(row, l.FuncNo),
			Session:   cell(row, l.Session),
			Use:       cell(row, l.Use),
		}
		if rec.FuncNo == "" || rec.Host == "" || rec.Purpose == "" {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// ExtractTrainingRooms maps classified training-room rows onto typed
// records. The report has no stable booking reference, so one is
// synthesized from the row's position.
func ExtractTrainingRooms(rows [][]string, layouts Layouts) []TrainingRoomRecord {
	l := layouts.TrainingRoom
	var out []TrainingRoomRecord
	for _, row := range Classify(rows, FileTrainingRoom, layouts) {
		rec := TrainingRoomRecord{
			StartTime: cell(row, l.Start),
			EndTime:   cell(row, l.End),
			Covers:    atoi(cell(row, l.Covers)),
			Contact:   cell(row, l.Contact),
			Purpose:   cell(row, l.Purpose),
		}
		if rec.Contact == "" || rec.Purpose == "" || rec.StartTime == "" {
			continue
		}
		rec.BookingRef = fmt.Sprintf("TR%03d", len(out)+1)
		out = append(out, rec)
	}
	return out
}

// ExtractVisitors maps classified visitor-list rows onto typed records,
// dropping rows without a visitor, host and arrival time.
func ExtractVisitors(rows [][]string, layouts Layouts) []VisitorRecord {
	l := layouts.VisitorList
	var out []VisitorRecord
	for _, row := range Classify(rows, FileVisitorList, layouts) {
		rec := VisitorRecord{
			ArrivalTime:   cell(row, l.ArrivalTime),
			VisitorName:   cell(row, l.VisitorName),
			HostName:      cell(row, l.HostName),
			ContactNumber: cell(row, l.ContactNumber),
		}
		if rec.VisitorName == "" || rec.HostName == "" || rec.ArrivalTime == "" {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// ExtractCatering maps classified catering rows onto typed records. The
// catering type is the order code and name joined the way downstream
// formatting expects ("BRK01 - Working Breakfast").
func ExtractCatering(rows [][]string, layouts Layouts) []CateringRecord {
	l := layouts.Catering
	var out []CateringRecord
	for _, row := range Classify(rows, FileCatering, layouts) {
		code := cell(row, l.Code)
		name := cell(row, l.Name)
		rec := CateringRecord{
			HostRaw:         cell(row, l.Host),
			Room:            cell(row, l.Room),
			MeetStart:       cell(row, l.MeetStart),
			MeetEnd:         cell(row, l.MeetEnd),
			BufferStart:     cell(row, l.BufferStart),
			BufferEnd:       cell(row, l.BufferEnd),
			Covers:          atoi(cell(row, l.Covers)),
			CateringType:    code + " - " + name,
			CateringDetails: cell(row, l.Notes),
		}
		rec.RoomCode = rooms.ExtractCode(rec.Room)
		if rec.Room == "" || rec.MeetStart == "" || rec.MeetEnd == "" {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// ParseInto routes a classified-and-extracted record set into reports by
// file type.
func ParseInto(reports *Reports, ftype FileType, rows [][]string, layouts Layouts) error {
	switch ftype {
	case FileFunctionRoom:
		reports.FunctionRooms = append(reports.FunctionRooms, ExtractFunctionRooms(rows, layouts)...)
	case FileFunctionSummary:
		reports.FunctionSummaries = append(reports.FunctionSummaries, ExtractFunctionSummary(rows, layouts)...)
	case FileTrainingRoom:
		reports.TrainingRooms = append(reports.TrainingRooms, ExtractTrainingRooms(rows, layouts)...)
	case FileVisitorList:
		reports.Visitors = append(reports.Visitors, ExtractVisitors(rows, layouts)...)
	case FileCatering:
		reports.Catering = append(reports.Catering, ExtractCatering(rows, layouts)...)
	default:
		return fmt.Errorf("unknown report type %q", ftype)
	}
	return nil
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
