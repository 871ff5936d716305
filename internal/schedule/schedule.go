// Package schedule regroups master meeting records into one schedule per
// host, with sorted bookings, deduplicated guest lists and summary
// statistics. This is the root output of the pipeline.
package schedule

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"cabsbot/internal/consolidate"
	"cabsbot/internal/names"
)

// HostBooking is one booking line within a host's day.
type HostBooking struct {
	Room         string
	RoomCode     string
	StartTime    string
	EndTime      string
	Purpose      string
	MeetingName  string
	MeetingType  consolidate.MeetingType
	RoomCategory consolidate.RoomCategory
	Catering     *consolidate.Catering
}

// TimeSpan is the earliest start and latest end across a host's
// bookings, in the source "HH:MM" lexical domain.
type TimeSpan struct {
	Earliest string
	Latest   string
}

// HostSchedule is one host's consolidated day.
type HostSchedule struct {
	HostName          string // normalized key
	HostRaw           string
	FormattedHostName string
	Bookings          []HostBooking
	Guests            []string
	TotalBookings     int
	TotalGuests       int
	TimeSpan          TimeSpan
}

// Statistics summarizes a grouped result.
type Statistics struct {
	TotalHosts    int
	TotalBookings int
	TotalGuests   int
	BusiestHost   string
	MostBookings  int
}

// Result is the final pipeline output, fully populated, with schedules
// sorted busiest-first.
type Result struct {
	HostSchedules []HostSchedule
	Statistics    Statistics
}

// Filter decides whether a host schedule survives into the result. A nil
// filter keeps every host.
type Filter func(HostSchedule) bool

var roomPrefixRe = regexp.MustCompile(`^[A-Za-z0-9]+`)

// formatLocation reduces a room label to its leading identifier.
func formatLocation(room string) string {
	if m := roomPrefixRe.FindString(room); m != "" {
		return m
	}
	return room
}

// unparseable start times sort last.
const endOfDay = 24 * 60

func startMinutes(b HostBooking) int {
	m, err := clockMinutes(b.StartTime)
	if err != nil {
		return endOfDay
	}
	return m
}

// GroupByHost groups master records by normalized host, sorts each
// host's bookings by start time (minutes since midnight, not string
// order, since single-digit hours are not always zero-padded in the
// source), deduplicates guests by exact string equality, and returns
// the schedules sorted descending by booking count. Ties preserve
// first-seen host order. The optional filter is applied after sorting.
func GroupByHost(records []consolidate.MasterMeetingRecord, filter Filter) Result {
	byHost := make(map[string]*HostSchedule)
	var order []string

	for _, rec := range records {
		key := rec.Host
		hs, ok := byHost[key]
		if !ok {
			hs = &HostSchedule{
				HostName:          key,
				HostRaw:           rec.HostRaw,
				FormattedHostName: names.FormatHostName(rec.HostRaw),
			}
			byHost[key] = hs
			order = append(order, key)
		}

		hs.Bookings = append(hs.Bookings, HostBooking{
			Room:         formatLocation(rec.Room),
			RoomCode:     rec.RoomCode,
			StartTime:    rec.StartTime,
			EndTime:      rec.EndTime,
			Purpose:      rec.Purpose,
			MeetingName:  rec.MeetingName,
			MeetingType:  rec.MeetingType,
			RoomCategory: rec.RoomCategory,
			Catering:     rec.Catering,
		})

		for _, guest := range rec.Guests {
			if !containsString(hs.Guests, guest) {
				hs.Guests = append(hs.Guests, guest)
			}
		}
	}

	schedules := make([]HostSchedule, 0, len(order))
	for _, key := range order {
		hs := byHost[key]
		sort.SliceStable(hs.Bookings, func(i, j int) bool {
			return startMinutes(hs.Bookings[i]) < startMinutes(hs.Bookings[j])
		})
		hs.TotalBookings = len(hs.Bookings)
		hs.TotalGuests = len(hs.Guests)
		hs.TimeSpan = timeSpan(hs.Bookings)
		schedules = append(schedules, *hs)
	}

	sort.SliceStable(schedules, func(i, j int) bool {
		return schedules[i].TotalBookings > schedules[j].TotalBookings
	})

	if filter != nil {
		kept := schedules[:0]
		for _, hs := range schedules {
			if filter(hs) {
				kept = append(kept, hs)
			}
		}
		schedules = kept
	}

	stats := Statistics{TotalHosts: len(schedules)}
	for _, hs := range schedules {
		stats.TotalBookings += hs.TotalBookings
		stats.TotalGuests += hs.TotalGuests
	}
	if len(schedules) > 0 {
		stats.BusiestHost = schedules[0].FormattedHostName
		stats.MostBookings = schedules[0].TotalBookings
	}

	return Result{HostSchedules: schedules, Statistics: stats}
}

// PriorityHostFilter builds a filter from an allowlist of canonical
// "Lastname Firstname" entries. A host survives when its formatted
// display name matches an entry exactly or under first/last swap. The
// allowlist is deployment configuration, not a core invariant.
func PriorityHostFilter(allowlist []string) Filter {
	if len(allowlist) == 0 {
		return nil
	}
	entries := make([][2]string, 0, len(allowlist))
	for _, entry := range allowlist {
		parts := strings.Fields(strings.ToLower(entry))
		if len(parts) < 2 {
			continue
		}
		entries = append(entries, [2]string{parts[0], parts[1]})
	}
	return func(hs HostSchedule) bool {
		parts := strings.Fields(strings.ToLower(hs.FormattedHostName))
		if len(parts) < 2 {
			return false
		}
		for _, e := range entries {
			if (parts[0] == e[0] && parts[1] == e[1]) ||
				(parts[0] == e[1] && parts[1] == e[0]) {
				return true
			}
		}
		return false
	}
}

func timeSpan(bookings []HostBooking) TimeSpan {
	earliestMin, latestMin := -1, -1
	var span TimeSpan
	for _, b := range bookings {
		if start, err := clockMinutes(b.StartTime); err == nil {
			if earliestMin == -1 || start < earliestMin {
				earliestMin = start
				span.Earliest = b.StartTime
			}
		}
		if end, err := clockMinutes(b.EndTime); err == nil {
			if end > latestMin {
				latestMin = end
				span.Latest = b.EndTime
			}
		}
	}
	return span
}

func clockMinutes(s string) (int, error) {
	var hour, min int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &hour, &min); err != nil {
		return 0, err
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return 0, fmt.Errorf("time out of range: %02d:%02d", hour, min)
	}
	return hour*60 + min, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
