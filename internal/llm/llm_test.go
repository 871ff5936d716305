package llm

import (
	"context"
	"testing"

	"cabsbot/internal/consolidate"
)

func TestExtractJSONArray(t *testing.T) {
	cases := map[string]string{
		`[{"id":0,"type":"Client Meeting"}]`:                        `[{"id":0,"type":"Client Meeting"}]`,
		"Here you go:\n```json\n[{\"id\":0,\"type\":\"Other\"}]\n```": `[{"id":0,"type":"Other"}]`,
		"no array here": "no array here",
	}
	for in, want := range cases {
		if got := extractJSONArray(in); got != want {
			t.Errorf("extractJSONArray(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRefineMeetingTypesNoKey(t *testing.T) {
	records := []consolidate.MasterMeetingRecord{
		{Purpose: "Mystery Gathering", MeetingType: consolidate.MeetingOther},
	}
	var c *Classifier
	c.RefineMeetingTypes(context.Background(), records)

	(&Classifier{}).RefineMeetingTypes(context.Background(), records)
	if records[0].MeetingType != consolidate.MeetingOther {
		t.Errorf("record mutated without an API key: %v", records[0].MeetingType)
	}
}
