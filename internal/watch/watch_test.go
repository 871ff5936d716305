package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cabsbot/internal/cabs"
	"cabsbot/internal/pipeline"
)

func csvLine(cells map[int]string) string {
	row := make([]string, 28)
	for i, v := range cells {
		row[i] = v
	}
	return strings.Join(row, ",")
}

func TestRunOnceProcessesAndArchives(t *testing.T) {
	inbox := t.TempDir()
	rooms := strings.Join([]string{
		"Function Summary Report (By Room),,,",
		csvLine(map[int]string{
			15: "121", 16: "09:00", 17: "10:30", 18: "5",
			19: "John Smith", 20: "F123", 21: "Confirmed", 22: "CLMEET",
			23: "Quarterly Review Meeting",
		}),
	}, "\n")
	visitors := strings.Join([]string{
		"Visitors Arrival List,,,",
		csvLine(map[int]string{9: "08:45", 10: "Jane Doe", 11: "Smith John"}),
	}, "\n")
	if err := os.WriteFile(filepath.Join(inbox, "rooms.csv"), []byte(rooms), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(inbox, "visitors.csv"), []byte(visitors), 0o644); err != nil {
		t.Fatal(err)
	}
	// Non-CSV files are ignored.
	if err := os.WriteFile(filepath.Join(inbox, "notes.txt"), []byte("ignore me"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := &Watcher{
		Pipeline: &pipeline.Pipeline{Layouts: cabs.DefaultLayouts()},
		InboxDir: inbox,
	}
	if err := w.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	// CSVs are moved into processed/, the txt stays put.
	entries, err := os.ReadDir(filepath.Join(inbox, "processed"))
	if err != nil {
		t.Fatalf("read processed dir: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("archived %d files, want 2", len(entries))
	}
	if _, err := os.Stat(filepath.Join(inbox, "notes.txt")); err != nil {
		t.Errorf("notes.txt should be untouched: %v", err)
	}
	if _, err := os.Stat(filepath.Join(inbox, "rooms.csv")); !os.IsNotExist(err) {
		t.Error("rooms.csv should have been archived")
	}
}

func TestRunOnceLeavesFilesOnFailure(t *testing.T) {
	inbox := t.TempDir()
	if err := os.WriteFile(filepath.Join(inbox, "junk.csv"), []byte("a,b,c\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := &Watcher{
		Pipeline: &pipeline.Pipeline{Layouts: cabs.DefaultLayouts()},
		InboxDir: inbox,
	}
	if err := w.RunOnce(context.Background()); err == nil {
		t.Fatal("expected error for unrecognized file")
	}
	if _, err := os.Stat(filepath.Join(inbox, "junk.csv")); err != nil {
		t.Errorf("failed batch must stay in the inbox: %v", err)
	}
}

func TestRunOnceEmptyInbox(t *testing.T) {
	w := &Watcher{
		Pipeline: &pipeline.Pipeline{Layouts: cabs.DefaultLayouts()},
		InboxDir: t.TempDir(),
	}
	if err := w.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce on empty inbox: %v", err)
	}
}
