package cabs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// row builds a 28-column row with the given cells set.
func row(cells map[int]string) []string {
	r := make([]string, 28)
	for idx, val := range cells {
		r[idx] = val
	}
	return r
}

func TestDetectFileType(t *testing.T) {
	cases := map[string]FileType{
		"ACME plc\nFunction Summary Report (by Room)\n01/09/2026": FileFunctionRoom,
		"ACME plc\nFunction Summary Report\n01/09/2026":           FileFunctionSummary,
		"Training Rooms Report":                                   FileTrainingRoom,
		"Visitors Arrival List\nfor 01/09/2026":                   FileVisitorList,
		"Catering Requirements Report":                            FileCatering,
		"Some other export":                                       FileUnknown,
	}
	for head, want := range cases {
		if got := DetectFileType(head); got != want {
			t.Fatalf("DetectFileType(%q) = %q, want %q", head, got, want)
		}
	}
}

func TestDetectFileTypeOnlyReadsFirstLines(t *testing.T) {
	head := "a\nb\nc\nd\ne\nfunction summary report"
	if got := DetectFileType(head); got != FileUnknown {
		t.Fatalf("marker past line 5 should not be detected, got %q", got)
	}
}

func TestClassifyDropsShortRows(t *testing.T) {
	layouts := DefaultLayouts()
	rows := [][]string{
		{"only", "five", "cols", "in", "row"},
		row(map[int]string{10: "Jane Doe, ACME", 11: "Mr John Smith"}),
	}
	out := Classify(rows, FileVisitorList, layouts)
	if len(out) != 1 {
		t.Fatalf("expected 1 classified row, got %d", len(out))
	}
	for _, r := range out {
		if len(r) < 15 {
			t.Fatalf("classified output contains a row with %d columns", len(r))
		}
	}
}

func TestClassifyVisitorListSkipsHeaders(t *testing.T) {
	layouts := DefaultLayouts()
	rows := [][]string{
		row(map[int]string{10: "Visitor and Company", 11: "Host Name and Contact Details"}),
		row(map[int]string{10: "Jane Doe", 11: "John Smith"}),
		row(map[int]string{10: "Jane Doe"}), // no host
	}
	out := Classify(rows, FileVisitorList, layouts)
	if len(out) != 1 {
		t.Fatalf("expected 1 data row, got %d", len(out))
	}
}

func TestClassifyFunctionRoomSkipsLabels(t *testing.T) {
	layouts := DefaultLayouts()
	rows := [][]string{
		row(map[int]string{15: "Room", 16: "Start at"}),
		row(map[int]string{15: "121 x10", 16: "09:00"}),
	}
	out := Classify(rows, FileFunctionRoom, layouts)
	if len(out) != 1 {
		t.Fatalf("expected 1 data row, got %d", len(out))
	}
}

func TestClassifyTrainingRoomRequiresClock(t *testing.T) {
	layouts := DefaultLayouts()
	rows := [][]string{
		row(map[int]string{12: "Booking Ref", 13: "Start"}),
		row(map[int]string{12: "T-1009", 13: "09:30"}),
		row(map[int]string{12: "T-1010", 13: "morning"}),
	}
	out := Classify(rows, FileTrainingRoom, layouts)
	if len(out) != 1 {
		t.Fatalf("expected 1 data row, got %d", len(out))
	}
}

func TestClassifyCatering(t *testing.T) {
	layouts := DefaultLayouts()
	rows := [][]string{
		row(map[int]string{16: "Extras 1", 17: "Tea", 20: "6121 Boardroom"}),
		row(map[int]string{16: "BRK01", 17: "Breakfast", 20: "Room"}),
		row(map[int]string{16: "BRK01", 17: "Breakfast", 20: "121"}), // too short
		row(map[int]string{16: "BRK01", 17: "Breakfast", 20: "6121 Boardroom"}),
	}
	out := Classify(rows, FileCatering, layouts)
	if len(out) != 1 {
		t.Fatalf("expected 1 data row, got %d", len(out))
	}
}

func TestExtractFunctionRooms(t *testing.T) {
	layouts := DefaultLayouts()
	rows := [][]string{
		row(map[int]string{
			15: "121 (6121)", 16: "09:00", 17: "10:00", 18: "12",
			19: "Mr John Smith", 20: "FA179PC", 21: "Confirmed",
			22: "CLMEET", 23: "Client Review",
		}),
		// Missing funcNo: mandatory-field drop.
		row(map[int]string{
			15: "122", 16: "11:00", 17: "12:00", 18: "4",
			19: "Jane Doe", 23: "Catch up",
		}),
	}
	recs := ExtractFunctionRooms(rows, layouts)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	rec := recs[0]
	if rec.Room != "121 (6121)" || rec.RoomCode != "121" {
		t.Fatalf("unexpected room fields: %+v", rec)
	}
	if rec.Covers != 12 || rec.Contact != "Mr John Smith" || rec.FuncNo != "FA179PC" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestExtractTrainingRoomsSynthesizesRef(t *testing.T) {
	layouts := DefaultLayouts()
	rows := [][]string{
		row(map[int]string{12: "T-1", 13: "09:00", 14: "09:00", 15: "12:00", 16: "8", 17: "Jane Doe", 18: "Induction"}),
		row(map[int]string{12: "T-2", 13: "13:00", 14: "13:00", 15: "16:00", 16: "6", 17: "John Smith", 18: "Excel Training"}),
	}
	recs := ExtractTrainingRooms(rows, layouts)
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].BookingRef != "TR001" || recs[1].BookingRef != "TR002" {
		t.Fatalf("unexpected refs: %q %q", recs[0].BookingRef, recs[1].BookingRef)
	}
}

func TestExtractCatering(t *testing.T) {
	layouts := DefaultLayouts()
	rows := [][]string{
		row(map[int]string{
			16: "BRK01", 17: "Working Breakfast", 19: "Smith John",
			20: "6121 Boardroom", 21: "08:30", 22: "09:00", 23: "10:00",
			24: "10:30", 25: "12", 26: "Pastries and juice",
		}),
	}
	recs := ExtractCatering(rows, layouts)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	rec := recs[0]
	if rec.CateringType != "BRK01 - Working Breakfast" {
		t.Fatalf("unexpected type: %q", rec.CateringType)
	}
	if rec.MeetStart != "09:00" || rec.BufferEnd != "10:30" || rec.Covers != 12 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.RoomCode != "6121" {
		t.Fatalf("unexpected room code: %q", rec.RoomCode)
	}
}

func TestLayoutDefaults(t *testing.T) {
	layouts := DefaultLayouts()
	if layouts.VisitorList.VisitorName != 10 {
		t.Fatalf("unexpected default: %d", layouts.VisitorList.VisitorName)
	}
	if layouts.Catering.Notes != 26 {
		t.Fatalf("unexpected default: %d", layouts.Catering.Notes)
	}
}

func TestLoadLayoutsOverlaysYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.yaml")
	yaml := `visitor_list:
  visitor_name: 5
function_room:
  purpose: 30
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write layouts: %v", err)
	}

	layouts, err := LoadLayouts(path)
	if err != nil {
		t.Fatalf("LoadLayouts: %v", err)
	}
	if layouts.VisitorList.VisitorName != 5 {
		t.Errorf("visitor_name override lost: %d", layouts.VisitorList.VisitorName)
	}
	if layouts.FunctionRoom.Purpose != 30 {
		t.Errorf("purpose override lost: %d", layouts.FunctionRoom.Purpose)
	}
	// Fields the file does not mention keep their defaults.
	if layouts.VisitorList.HostName != 11 {
		t.Errorf("host_name default lost: %d", layouts.VisitorList.HostName)
	}
	if layouts.FunctionRoom.Room != 15 {
		t.Errorf("room default lost: %d", layouts.FunctionRoom.Room)
	}
	if layouts.Catering.Notes != 26 {
		t.Errorf("catering defaults lost: %d", layouts.Catering.Notes)
	}
}

func TestLoadLayoutsEmptyPathAndMissingFile(t *testing.T) {
	layouts, err := LoadLayouts("")
	if err != nil {
		t.Fatalf("LoadLayouts(\"\"): %v", err)
	}
	if layouts != DefaultLayouts() {
		t.Error("empty path must return the defaults")
	}
	if _, err := LoadLayouts(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseRowsSkipsEmptyLines(t *testing.T) {
	input := "a,b,c\n,,\n\nd,e\n"
	rows, err := ParseRows(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %v", len(rows), rows)
	}
	if len(rows[1]) != 2 || rows[1][0] != "d" {
		t.Fatalf("unexpected second row: %v", rows[1])
	}
}

func TestParseIntoUnknownType(t *testing.T) {
	var reports Reports
	if err := ParseInto(&reports, FileUnknown, nil, DefaultLayouts()); err == nil {
		t.Fatal("expected error for unknown report type")
	}
}
