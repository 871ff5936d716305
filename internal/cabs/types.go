// Package cabs turns the raw, headerless CSV grids exported by the CABS
// room-booking system into typed records. The exports interleave metadata
// and data rows with no row-type marker, so classification is positional
// and content-based per report type.
package cabs

// FileType identifies one of the CABS report layouts.
type FileType string

const (
	FileFunctionRoom    FileType = "function-room"
	FileFunctionSummary FileType = "function-summary"
	FileTrainingRoom    FileType = "training-room"
	FileVisitorList     FileType = "visitor-list"
	FileCatering        FileType = "catering"
	FileUnknown         FileType = "unknown"
)

// FunctionRoomRecord is one booking row from the Function Summary Report
// (by room). Immutable once extracted.
type FunctionRoomRecord struct {
	Room      string
	RoomCode  string
	StartTime string
	EndTime   string
	Covers    int
	Contact   string
	FuncNo    string
	Status    string
	RoomUse   string
	Purpose   string
}

// FunctionSummaryRecord is one booking row from the plain Function
// Summary Report.
type FunctionSummaryRecord struct {
	Date      string
	Room      string
	StartTime string
	EndTime   string
	Covers    int
	Host      string
	Purpose   string
	FuncNo    string
	Session   string
	Use       string
}

// TrainingRoomRecord is one booking row from the Training Rooms Report.
// The report carries no usable booking reference, so one is synthesized
// during extraction.
type TrainingRoomRecord struct {
	BookingRef string
	StartTime  string
	EndTime    string
	Covers     int
	Contact    string
	Purpose    string
}

// VisitorRecord is one external guest's visit to one host.
type VisitorRecord struct {
	ArrivalTime   string
	VisitorName   string
	HostName      string
	ContactNumber string
}

// CateringRecord is one catering order tied to a room and time window.
// Buffer times bracket the meeting window since catering is delivered and
// cleared outside the exact meeting time.
type CateringRecord struct {
	HostRaw         string
	Room            string
	RoomCode        string
	MeetStart       string
	MeetEnd         string
	BufferStart     string
	BufferEnd       string
	Covers          int
	CateringType    string
	CateringDetails string
}

// Reports collects the typed record sets from all uploaded files. The
// consolidator needs all of them before it can run.
type Reports struct {
	FunctionRooms     []FunctionRoomRecord
	FunctionSummaries []FunctionSummaryRecord
	TrainingRooms     []TrainingRoomRecord
	Visitors          []VisitorRecord
	Catering          []CateringRecord
}
