// Package consolidate merges the typed CABS record sets into host-centric
// master meeting records: every function-room booking owned by a real
// person host, with that host's visitors attached as guests and at most
// one catering order matched by room and time window.
package consolidate

import "cabsbot/internal/cabs"

// MeetingType classifies what a booking is for, derived from the CABS
// roomUse code and purpose text.
type MeetingType string

const (
	MeetingClient    MeetingType = "Client Meeting"
	MeetingGroup     MeetingType = "Group Meeting"
	MeetingNonClient MeetingType = "Non-Client Meeting"
	MeetingGeneral   MeetingType = "General Meeting"
	MeetingTraining  MeetingType = "Training Session"
	MeetingOther     MeetingType = "Other"
)

// RoomCategory classifies the kind of room a booking occupies.
type RoomCategory string

const (
	RoomFunction RoomCategory = "Function Room"
	RoomTraining RoomCategory = "Training Room"
	RoomDining   RoomCategory = "Dining Room"
	RoomOther    RoomCategory = "Other"
)

// Source names the report a master record originated from.
type Source string

const (
	SourceFunctionRoom    Source = "Function Room Report"
	SourceFunctionSummary Source = "Function Summary Report"
	SourceTrainingRoom    Source = "Training Room Report"
	SourceVisitorList     Source = "Visitor Arrival List"
)

// Catering is the slice of a catering order that travels with a booking.
type Catering struct {
	Type    string
	Details string
	Covers  int
}

// MasterMeetingRecord is the unifying entity of the pipeline: one booking
// merged with its matched guests and catering. Created once by
// Consolidate and never mutated afterwards except for the one-time
// attachment of Catering.
type MasterMeetingRecord struct {
	MeetingID     string
	MeetingName   string
	MeetingType   MeetingType
	Host          string // normalized
	HostRaw       string
	Guests        []string // unique, in matching order
	AttendeeCount int
	Purpose       string
	Room          string
	RoomCategory  RoomCategory
	RoomCode      string
	Date          string
	StartTime     string
	EndTime       string
	Duration      string
	Source        Source
	Catering      *Catering
}

// Statistics summarizes one consolidation run.
type Statistics struct {
	TotalMeetings     int
	TotalVisitors     int
	MeetingsByType    map[MeetingType]int
	MeetingsBySource  map[Source]int
	UnmatchedVisitors int
}

// Result is the consolidator's output: the master records plus run
// statistics. Recomputed fully on every run.
type Result struct {
	MasterRecords []MasterMeetingRecord
	Statistics    Statistics
}

// Reports is re-exported for callers that hold record sets.
type Reports = cabs.Reports
