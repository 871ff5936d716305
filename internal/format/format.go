// Package format renders host schedules into the text messages posted to
// the chat webhook. The emoji/markdown shapes are cosmetic; the data
// each message must carry comes from the schedule result.
package format

import (
	"fmt"
	"regexp"
	"strings"

	"cabsbot/internal/schedule"
)

var (
	trailingCodeRe = regexp.MustCompile(`(?i)\d+\.\d+\s+td$`)
	trailingNLRe   = regexp.MustCompile(`\r?\n+$`)
	lineBreakRe    = regexp.MustCompile(`\r?\n`)
)

// HostMessage renders one host's schedule as a Teams-flavored text
// message: host name, numbered bookings with room, time and catering,
// then the guest list.
func HostMessage(hs schedule.HostSchedule) string {
	var b strings.Builder

	fmt.Fprintf(&b, "👤 **Host Name:**\n%s\n\n", hs.FormattedHostName)
	b.WriteString("📅 **Bookings for today**\n\n")

	for i, booking := range hs.Bookings {
		fmt.Fprintf(&b, "%d. **%s**\n\n", i+1, booking.Purpose)
		fmt.Fprintf(&b, "   Room: %s\n\n", booking.Room)
		fmt.Fprintf(&b, "   Time: %s - %s\n\n", booking.StartTime, booking.EndTime)

		if booking.Catering != nil {
			fmt.Fprintf(&b, "   🍽️ Catering: %s\n", mealName(booking.Catering.Type))
			if details := cleanCateringDetails(booking.Catering.Details); details != "" {
				fmt.Fprintf(&b, "   %s\n", details)
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "👥 **Guests:** (%d)\n%s\n\n", hs.TotalGuests, guestText(hs))
	return b.String()
}

// HostMessages renders one message per host. An empty result yields a
// single placeholder message so the webhook post is never silently
// skipped.
func HostMessages(result schedule.Result) []string {
	if len(result.HostSchedules) == 0 {
		return []string{"📅 **Daily Host Summary**\n\nNo host schedules found in the uploaded files."}
	}
	out := make([]string, 0, len(result.HostSchedules))
	for _, hs := range result.HostSchedules {
		out = append(out, HostMessage(hs))
	}
	return out
}

// SummaryMessage renders the run statistics.
func SummaryMessage(result schedule.Result) string {
	stats := result.Statistics
	var b strings.Builder

	b.WriteString("📊 **Daily Host Summary**\n\n")
	b.WriteString("**Statistics:**\n")
	fmt.Fprintf(&b, "• Total Hosts: %d\n", stats.TotalHosts)
	fmt.Fprintf(&b, "• Total Bookings: %d\n", stats.TotalBookings)
	fmt.Fprintf(&b, "• Total Guests: %d\n\n", stats.TotalGuests)

	if stats.BusiestHost != "" {
		b.WriteString("🏆 **Busiest Host:**\n")
		fmt.Fprintf(&b, "%s (%d bookings)\n\n", stats.BusiestHost, stats.MostBookings)
	}
	return b.String()
}

// CopyText renders every schedule as plain text for manual pasting,
// since Teams ignores markdown on paste.
func CopyText(result schedule.Result) string {
	if len(result.HostSchedules) == 0 {
		return "Daily Host Summary\n\nNo host schedules found in the uploaded files."
	}
	parts := make([]string, 0, len(result.HostSchedules))
	for _, hs := range result.HostSchedules {
		parts = append(parts, copyMessage(hs))
	}
	return strings.Join(parts, "\n━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")
}

func copyMessage(hs schedule.HostSchedule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Host Name:\n%s\n\n", hs.FormattedHostName)
	b.WriteString("Bookings for today\n\n")
	for i, booking := range hs.Bookings {
		fmt.Fprintf(&b, "%d. %s\n\n", i+1, booking.Purpose)
		fmt.Fprintf(&b, "   Room: %s\n\n", booking.Room)
		fmt.Fprintf(&b, "   Time: %s - %s\n\n", booking.StartTime, booking.EndTime)
		if booking.Catering != nil {
			fmt.Fprintf(&b, "   Catering: %s (%d covers)\n\n", booking.Catering.Type, booking.Catering.Covers)
		}
	}
	fmt.Fprintf(&b, "Guests:\n%s\n", guestText(hs))
	return b.String()
}

// MessageCard is the legacy Teams connector card payload.
type MessageCard struct {
	Type       string        `json:"@type"`
	Context    string        `json:"@context"`
	ThemeColor string        `json:"themeColor"`
	Summary    string        `json:"summary"`
	Sections   []CardSection `json:"sections"`
}

type CardSection struct {
	ActivityTitle    string     `json:"activityTitle"`
	ActivitySubtitle string     `json:"activitySubtitle,omitempty"`
	Facts            []CardFact `json:"facts,omitempty"`
}

type CardFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

const defaultThemeColor = "0078d4"

// HostCard renders one host's schedule as a MessageCard.
func HostCard(hs schedule.HostSchedule) MessageCard {
	facts := []CardFact{
		{Name: "📅 Bookings", Value: fmt.Sprintf("%d", hs.TotalBookings)},
	}
	if hs.TimeSpan.Earliest != "" {
		facts = append(facts, CardFact{
			Name:  "🕐 Time Span",
			Value: fmt.Sprintf("%s - %s", hs.TimeSpan.Earliest, hs.TimeSpan.Latest),
		})
	}
	for i, booking := range hs.Bookings {
		value := fmt.Sprintf("%s, Room %s, %s - %s", booking.Purpose, booking.Room, booking.StartTime, booking.EndTime)
		if booking.Catering != nil {
			value += fmt.Sprintf(" (🍽️ %s)", mealName(booking.Catering.Type))
		}
		facts = append(facts, CardFact{Name: fmt.Sprintf("%d.", i+1), Value: value})
	}
	facts = append(facts, CardFact{
		Name:  fmt.Sprintf("👥 Guests (%d)", hs.TotalGuests),
		Value: guestText(hs),
	})

	return MessageCard{
		Type:       "MessageCard",
		Context:    "http://schema.org/extensions",
		ThemeColor: defaultThemeColor,
		Summary:    fmt.Sprintf("Host schedule - %s", hs.FormattedHostName),
		Sections: []CardSection{
			{
				ActivityTitle:    fmt.Sprintf("📅 Schedule for %s", hs.FormattedHostName),
				ActivitySubtitle: fmt.Sprintf("%d bookings, %d guests", hs.TotalBookings, hs.TotalGuests),
				Facts:            facts,
			},
		},
	}
}

func guestText(hs schedule.HostSchedule) string {
	if len(hs.Guests) == 0 {
		return "[No external visitors]"
	}
	return strings.Join(hs.Guests, ", ")
}

// mealName extracts the readable part of a catering type like
// "BRK01 - Working Breakfast".
func mealName(cateringType string) string {
	if idx := strings.Index(cateringType, " - "); idx >= 0 {
		return cateringType[idx+3:]
	}
	return cateringType
}

// cleanCateringDetails strips the cryptic accounting suffix kitchen
// staff append ("12.08 td"), trims trailing newlines, and indents the
// remaining line breaks for the message layout.
func cleanCateringDetails(details string) string {
	s := trailingCodeRe.ReplaceAllString(details, "")
	s = trailingNLRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = lineBreakRe.ReplaceAllString(s, "\n   ")
	return strings.TrimSpace(s)
}
