package consolidate

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"cabsbot/internal/cabs"
	"cabsbot/internal/names"
)

var (
	purposePrefixRe = regexp.MustCompile(`(?i)^(External|Internal|Private)\s*-?\s*`)
	genericNameRe   = regexp.MustCompile(`(?i)^(meeting|session|room)$`)
	threeDigitsRe   = regexp.MustCompile(`\d{3}`)
	twoDigitsRe     = regexp.MustCompile(`\d{2}`)
	wordStartRe     = regexp.MustCompile(`\b\w`)
)

// Purposes that mark operational room blocks rather than meetings.
var opsPurposeTokens = []string{
	"clear", "maintenance", "cleaning", "setting up", "set up", "check", "occupied",
}

// MeetingTypeFor derives the meeting type from the CABS roomUse code and
// the free-text purpose.
func MeetingTypeFor(roomUse, purpose string) MeetingType {
	use := strings.ToLower(roomUse)
	p := strings.ToLower(purpose)
	switch {
	case strings.Contains(use, "clmeet") || strings.Contains(p, "client"):
		return MeetingClient
	case strings.Contains(use, "group"):
		return MeetingGroup
	case strings.Contains(use, "noncli"):
		return MeetingNonClient
	case strings.Contains(use, "meet"):
		return MeetingGeneral
	case strings.Contains(p, "training") || strings.Contains(p, "signing"):
		return MeetingTraining
	}
	return MeetingOther
}

// RoomCategoryFor derives the room category from the room label.
func RoomCategoryFor(room string) RoomCategory {
	lower := strings.ToLower(room)
	switch {
	case strings.Contains(lower, "dining"):
		return RoomDining
	case strings.Contains(lower, "training") || threeDigitsRe.MatchString(room):
		return RoomTraining
	case strings.Contains(lower, "function") || twoDigitsRe.MatchString(room):
		return RoomFunction
	}
	return RoomOther
}

// MeetingNameFor derives a display name from the purpose, falling back
// to the meeting type label for degenerate purposes.
func MeetingNameFor(purpose string, mtype MeetingType) string {
	name := purposePrefixRe.ReplaceAllString(purpose, "")
	name = wordStartRe.ReplaceAllStringFunc(name, strings.ToUpper)
	if len(name) < 3 || genericNameRe.MatchString(name) {
		return string(mtype)
	}
	return name
}

// Duration renders the booking length as "2h 30m". End times before the
// start are treated as next-day. Unparseable times degrade to "Unknown"
// so one bad record never aborts a batch.
func Duration(startTime, endTime string) string {
	start, err1 := timeToMinutes(startTime)
	end, err2 := timeToMinutes(endTime)
	if err1 != nil || err2 != nil {
		return "Unknown"
	}
	minutes := end - start
	if minutes < 0 {
		minutes += 24 * 60
	}
	hours := minutes / 60
	minutes = minutes % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", minutes)
	case minutes == 0:
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

func convertFunctionRoom(fr cabs.FunctionRoomRecord, date string) MasterMeetingRecord {
	mtype := MeetingTypeFor(fr.RoomUse, fr.Purpose)
	return MasterMeetingRecord{
		MeetingID:     fr.FuncNo,
		MeetingName:   MeetingNameFor(fr.Purpose, mtype),
		MeetingType:   mtype,
		Host:          names.Normalize(fr.Contact),
		HostRaw:       fr.Contact,
		AttendeeCount: fr.Covers,
		Purpose:       fr.Purpose,
		Room:          fr.Room,
		RoomCategory:  RoomCategoryFor(fr.Room),
		RoomCode:      fr.RoomCode,
		Date:          date,
		StartTime:     fr.StartTime,
		EndTime:       fr.EndTime,
		Duration:      Duration(fr.StartTime, fr.EndTime),
		Source:        SourceFunctionRoom,
	}
}

// isMeetingRecord rejects operational room blocks (clear room checks,
// maintenance, setup) and bookings whose contact is not a real person.
func isMeetingRecord(m MasterMeetingRecord) bool {
	purpose := strings.ToLower(m.Purpose)
	for _, token := range opsPurposeTokens {
		if strings.Contains(purpose, token) {
			return false
		}
	}
	return len(strings.TrimSpace(m.Purpose)) > 5 &&
		strings.TrimSpace(m.Host) != "" &&
		names.IsPersonName(m.HostRaw)
}

// Consolidate merges the record sets into master meeting records. Hosts
// come from both the function-room contacts and the visitor list; a host
// with no visitors produces nothing (guests are mandatory), and a host
// with visitors but no bookings produces a placeholder record so guests
// are never silently dropped.
func Consolidate(reports Reports) Result {
	date := time.Now().Format("2006-01-02")

	var bookings []MasterMeetingRecord
	for _, fr := range reports.FunctionRooms {
		rec := convertFunctionRoom(fr, date)
		if isMeetingRecord(rec) {
			bookings = append(bookings, rec)
		}
	}

	hosts := CollectHosts(reports)

	var records []MasterMeetingRecord
	matchedVisitors := make([]bool, len(reports.Visitors))

	for idx, host := range hosts {
		var hostBookings []MasterMeetingRecord
		for _, b := range bookings {
			if _, ok := BookingHostsMatch(b.HostRaw, host); ok {
				hostBookings = append(hostBookings, b)
			}
		}

		var guests []string
		guestSeen := make(map[string]bool)
		for vi, v := range reports.Visitors {
			if _, ok := VisitorHostsMatch(v.HostName, host); !ok {
				continue
			}
			matchedVisitors[vi] = true
			if v.VisitorName == "" || guestSeen[v.VisitorName] {
				continue
			}
			guestSeen[v.VisitorName] = true
			guests = append(guests, v.VisitorName)
		}

		// Guest-mandatory rule: a host schedule only exists when at
		// least one visitor arrived for that host.
		if len(guests) == 0 {
			continue
		}

		if len(hostBookings) > 0 {
			for _, b := range hostBookings {
				b.Guests = append([]string(nil), guests...)
				records = append(records, b)
			}
			continue
		}

		records = append(records, MasterMeetingRecord{
			MeetingID:     fmt.Sprintf("host-%d", idx),
			MeetingName:   fmt.Sprintf("Meetings with %s", host),
			MeetingType:   MeetingOther,
			Host:          names.Normalize(host),
			HostRaw:       host,
			Guests:        append([]string(nil), guests...),
			AttendeeCount: len(guests),
			Purpose:       "Visitor meetings",
			Room:          "TBD",
			RoomCategory:  RoomOther,
			Date:          date,
			StartTime:     "TBD",
			EndTime:       "TBD",
			Duration:      "TBD",
			Source:        SourceVisitorList,
		})
	}

	for i := range records {
		if c := MatchCatering(records[i].RoomCode, records[i].StartTime, records[i].EndTime, reports.Catering); c != nil {
			records[i].Catering = &Catering{
				Type:    c.CateringType,
				Details: c.CateringDetails,
				Covers:  c.Covers,
			}
		}
	}

	stats := Statistics{
		TotalMeetings:    len(records),
		TotalVisitors:    len(reports.Visitors),
		MeetingsByType:   make(map[MeetingType]int),
		MeetingsBySource: make(map[Source]int),
	}
	for _, m := range records {
		stats.MeetingsByType[m.MeetingType]++
		stats.MeetingsBySource[m.Source]++
	}
	for _, matched := range matchedVisitors {
		if !matched {
			stats.UnmatchedVisitors++
		}
	}

	return Result{MasterRecords: records, Statistics: stats}
}
