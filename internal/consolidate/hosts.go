package consolidate

import (
	"strings"

	"cabsbot/internal/names"
)

// The CABS sources spell the same person several ways ("Mr John Smith",
// "Smith John", "John Smith (ALS)"), so cross-source matching runs an
// ordered list of named strategies, strictest first. Each strategy is
// independently testable.
type matchStrategy struct {
	name  string
	match func(a, b string) bool
}

var bookingStrategies = []matchStrategy{
	{"exact", matchExact},
	{"substring", matchSubstring},
	{"reversed", matchReversed},
	{"cross-token", matchCrossToken},
}

// Visitors are attached with the exact/substring pair only; the host set
// itself was discovered from visitor spellings, so the looser token
// strategies are not needed and would over-match common surnames.
var visitorStrategies = []matchStrategy{
	{"exact", matchExact},
	{"substring", matchSubstring},
}

func matchExact(a, b string) bool {
	na, nb := names.Normalize(a), names.Normalize(b)
	return na != "" && na == nb
}

func matchSubstring(a, b string) bool {
	na, nb := names.Normalize(a), names.Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// matchReversed absorbs "Lastname Firstname Title" vs "Title Firstname
// Lastname" source inconsistencies.
func matchReversed(a, b string) bool {
	pa, pb := names.ExtractFirstLast(a), names.ExtractFirstLast(b)
	if pa.First == "" || pb.First == "" {
		return false
	}
	return pa.First == pb.Last && pa.Last == pb.First
}

// matchCrossToken matches when two tokens are shared in any order, which
// covers arbitrary permutations of first and last name.
func matchCrossToken(a, b string) bool {
	pa, pb := names.ExtractFirstLast(a), names.ExtractFirstLast(b)
	if len(pa.Parts) < 2 || len(pb.Parts) < 2 {
		return false
	}
	set := make(map[string]bool, len(pb.Parts))
	for _, tok := range pb.Parts {
		set[tok] = true
	}
	shared := 0
	for _, tok := range pa.Parts {
		if set[tok] {
			shared++
		}
	}
	return shared >= 2
}

func matchAny(strategies []matchStrategy, a, b string) (string, bool) {
	for _, s := range strategies {
		if s.match(a, b) {
			return s.name, true
		}
	}
	return "", false
}

// BookingHostsMatch reports whether a booking contact and a host name
// refer to the same person, and which strategy decided it.
func BookingHostsMatch(contact, host string) (string, bool) {
	return matchAny(bookingStrategies, contact, host)
}

// VisitorHostsMatch reports whether a visitor's host field refers to the
// given host.
func VisitorHostsMatch(visitorHost, host string) (string, bool) {
	return matchAny(visitorStrategies, visitorHost, host)
}

// CollectHosts unions the real person hosts seen as function-room
// contacts or visitor hosts, deduplicated by normalized form and keyed
// by first-seen raw spelling, in first-seen order.
func CollectHosts(reports Reports) []string {
	seen := make(map[string]bool)
	var hosts []string
	add := func(raw string) {
		raw = strings.TrimSpace(raw)
		if raw == "" || !names.IsPersonName(raw) {
			return
		}
		key := names.Normalize(raw)
		if seen[key] {
			return
		}
		seen[key] = true
		hosts = append(hosts, raw)
	}
	for _, fr := range reports.FunctionRooms {
		add(fr.Contact)
	}
	for _, v := range reports.Visitors {
		add(v.HostName)
	}
	return hosts
}
