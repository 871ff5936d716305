package consolidate

import (
	"fmt"
	"regexp"
	"strings"

	"cabsbot/internal/cabs"
	"cabsbot/internal/rooms"
)

// Catering buffer windows bracket the meeting window, so start and end
// are each allowed to differ by up to an hour.
const cateringTimeBufferMinutes = 60

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]`)

// MatchCatering finds the first catering record serving the given
// booking: any pair of expanded room codes must match, or failing that
// the cleaned room strings must contain one another, and the catering
// meeting times must both lie within the buffer of the booking times.
// Returns nil when no candidate qualifies. No global optimality is
// attempted across candidates.
func MatchCatering(roomCode, startTime, endTime string, candidates []cabs.CateringRecord) *cabs.CateringRecord {
	bookingStart, err1 := timeToMinutes(startTime)
	bookingEnd, err2 := timeToMinutes(endTime)
	if err1 != nil || err2 != nil {
		return nil
	}

	bookingCodes := rooms.ExtractAllCodes(roomCode)

	for i := range candidates {
		c := &candidates[i]
		if !cateringRoomMatches(roomCode, bookingCodes, c.Room) {
			continue
		}

		cStart, err1 := timeToMinutes(c.MeetStart)
		cEnd, err2 := timeToMinutes(c.MeetEnd)
		if err1 != nil || err2 != nil {
			continue
		}
		if abs(bookingStart-cStart) <= cateringTimeBufferMinutes &&
			abs(bookingEnd-cEnd) <= cateringTimeBufferMinutes {
			return c
		}
	}
	return nil
}

func cateringRoomMatches(bookingRoom string, bookingCodes []string, cateringRoom string) bool {
	for _, bc := range bookingCodes {
		for _, cc := range rooms.ExtractAllCodes(cateringRoom) {
			if rooms.CodesMatch(bc, cc) {
				return true
			}
		}
	}

	// Fallback for labels the code extractor cannot decompose: compare
	// the alphanumeric-only strings by containment.
	cleanBooking := nonAlnumRe.ReplaceAllString(strings.ToLower(bookingRoom), "")
	cleanCatering := nonAlnumRe.ReplaceAllString(strings.ToLower(cateringRoom), "")
	if cleanBooking == "" || cleanCatering == "" {
		return false
	}
	return strings.Contains(cleanBooking, cleanCatering) || strings.Contains(cleanCatering, cleanBooking)
}

func timeToMinutes(s string) (int, error) {
	var hour, min int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &hour, &min); err != nil {
		return 0, err
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return 0, fmt.Errorf("time out of range: %02d:%02d", hour, min)
	}
	return hour*60 + min, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
