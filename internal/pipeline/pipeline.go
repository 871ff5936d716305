// Package pipeline runs the full CSV-to-webhook flow: detect each
// file's report type, parse and extract its records, consolidate into
// master meeting records, group by host and deliver.
package pipeline

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cabsbot/internal/cabs"
	"cabsbot/internal/consolidate"
	"cabsbot/internal/delivery"
	"cabsbot/internal/format"
	"cabsbot/internal/llm"
	"cabsbot/internal/schedule"
	"cabsbot/internal/store"
)

// headProbeBytes bounds how much of a file the type detector reads.
const headProbeBytes = 4096

// Source is one named CSV input, from an upload, the inbox or argv.
type Source struct {
	Name string
	Data []byte
}

// Outcome carries every stage's output so callers can render, deliver
// or journal whichever parts they need.
type Outcome struct {
	RunID         string
	Files         []string
	Reports       cabs.Reports
	Consolidation consolidate.Result
	Schedule      schedule.Result
}

// Pipeline wires the stages together. Sender, Classifier and DB are
// optional; a nil field disables that stage.
type Pipeline struct {
	Layouts    cabs.Layouts
	Filter     schedule.Filter
	Sender     *delivery.Sender
	Classifier *llm.Classifier
	DB         *sql.DB
	Debug      bool
}

// ProcessSources runs detection through scheduling for a set of named
// inputs. A file whose type cannot be detected fails the whole run:
// silently dropping a report would produce a schedule that looks
// complete but is missing hosts.
func (p *Pipeline) ProcessSources(ctx context.Context, sources []Source) (*Outcome, error) {
	out := &Outcome{RunID: store.NewRunID()}

	for _, src := range sources {
		out.Files = append(out.Files, src.Name)

		head := src.Data
		if len(head) > headProbeBytes {
			head = head[:headProbeBytes]
		}
		ftype := cabs.DetectFileType(string(head))
		if ftype == cabs.FileUnknown {
			return nil, fmt.Errorf("unrecognized file type for %s: expected a function room, function summary, training rooms, visitor arrival or catering report", src.Name)
		}

		rows, err := cabs.ParseRows(bytes.NewReader(src.Data))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", src.Name, err)
		}
		if err := cabs.ParseInto(&out.Reports, ftype, rows, p.Layouts); err != nil {
			return nil, fmt.Errorf("extract %s: %w", src.Name, err)
		}
		log.Printf("pipeline: %s detected as %s (%d rows)", src.Name, ftype, len(rows))
	}

	if p.Debug {
		log.Printf("pipeline: extracted %d function rooms, %d summaries, %d training rooms, %d visitors, %d catering orders",
			len(out.Reports.FunctionRooms), len(out.Reports.FunctionSummaries),
			len(out.Reports.TrainingRooms), len(out.Reports.Visitors), len(out.Reports.Catering))
	}

	out.Consolidation = consolidate.Consolidate(out.Reports)
	if p.Classifier != nil {
		p.Classifier.RefineMeetingTypes(ctx, out.Consolidation.MasterRecords)
	}
	out.Schedule = schedule.GroupByHost(out.Consolidation.MasterRecords, p.Filter)

	log.Printf("pipeline: run %s consolidated %d meetings into %d host schedules",
		out.RunID, out.Consolidation.Statistics.TotalMeetings, out.Schedule.Statistics.TotalHosts)
	return out, nil
}

// ProcessFiles reads each path and delegates to ProcessSources.
func (p *Pipeline) ProcessFiles(ctx context.Context, paths []string) (*Outcome, error) {
	sources := make([]Source, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		sources = append(sources, Source{Name: filepath.Base(path), Data: data})
	}
	return p.ProcessSources(ctx, sources)
}

// Deliver posts one message per host plus the summary, journaling
// each post when a database is configured. Requires a sender.
func (p *Pipeline) Deliver(ctx context.Context, out *Outcome) (delivery.Tally, error) {
	if p.Sender == nil {
		return delivery.Tally{}, fmt.Errorf("no webhook sender configured")
	}

	msgs := make([]delivery.Message, 0, len(out.Schedule.HostSchedules)+1)
	for _, hs := range out.Schedule.HostSchedules {
		msg := delivery.Message{Host: hs.FormattedHostName, Text: format.HostMessage(hs)}
		if p.Sender.Mode == delivery.ModeCard {
			card := format.HostCard(hs)
			msg.Card = &card
		}
		msgs = append(msgs, msg)
	}
	msgs = append(msgs, delivery.Message{Host: "summary", Text: format.SummaryMessage(out.Schedule)})

	tally := p.Sender.SendBatch(ctx, msgs, func(msg delivery.Message, err error) {
		if p.DB == nil {
			return
		}
		d := store.Delivery{RunID: out.RunID, Host: msg.Host, Status: "sent", SentAt: time.Now()}
		if err != nil {
			d.Status = "failed"
			d.Error = err.Error()
		}
		if jerr := store.InsertDelivery(p.DB, d); jerr != nil {
			log.Printf("pipeline: journal delivery: %v", jerr)
		}
	})
	return tally, nil
}

// JournalRun records the run's outcome, including failures where out
// is nil.
func (p *Pipeline) JournalRun(out *Outcome, source string, started time.Time, runErr error) {
	if p.DB == nil {
		return
	}
	run := store.Run{ID: store.NewRunID(), Source: source, StartedAt: started}
	if out != nil {
		run.ID = out.RunID
		run.Files = strings.Join(out.Files, ",")
		run.TotalHosts = out.Schedule.Statistics.TotalHosts
		run.TotalBookings = out.Schedule.Statistics.TotalBookings
		run.TotalGuests = out.Schedule.Statistics.TotalGuests
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if err := store.InsertRun(p.DB, run); err != nil {
		log.Printf("pipeline: journal run: %v", err)
	}
}
