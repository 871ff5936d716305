// Package app wires configuration, storage, the pipeline and its
// entry points together.
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"cabsbot/internal/cabs"
	"cabsbot/internal/config"
	"cabsbot/internal/delivery"
	"cabsbot/internal/format"
	"cabsbot/internal/httpx"
	"cabsbot/internal/llm"
	"cabsbot/internal/pipeline"
	"cabsbot/internal/schedule"
	"cabsbot/internal/server"
	"cabsbot/internal/store"
	"cabsbot/internal/watch"
)

// Main runs the service. With file arguments it processes them once
// and prints the result; otherwise it serves HTTP and, when
// configured, watches the inbox directory.
func Main() {
	cfg := config.LoadConfig()
	appliedHTTPTimeout := httpx.ConfigureExternalHTTPClient(cfg.ExternalHTTPTimeoutSeconds)
	log.Printf(
		"Config loaded. WebhookKind=%s MessageMode=%s ListenAddr=%s InboxDir=%s WatchSchedule=%s Timezone=%s ExternalHTTPTimeout=%s",
		cfg.WebhookKind,
		cfg.MessageMode,
		cfg.ListenAddr,
		cfg.InboxDir,
		cfg.WatchSchedule,
		cfg.Timezone,
		appliedHTTPTimeout,
	)

	layouts := cabs.DefaultLayouts()
	if cfg.LayoutsPath != "" {
		var err error
		layouts, err = cabs.LoadLayouts(cfg.LayoutsPath)
		if err != nil {
			log.Fatalf("Failed to load layouts from %s: %v", cfg.LayoutsPath, err)
		}
		log.Printf("Column layouts loaded from %s", cfg.LayoutsPath)
	}

	var filter schedule.Filter
	if cfg.PriorityHostsPath != "" {
		hosts, err := config.LoadPriorityHosts(cfg.PriorityHostsPath)
		if err != nil {
			log.Fatalf("Failed to load priority hosts from %s: %v", cfg.PriorityHostsPath, err)
		}
		filter = schedule.PriorityHostFilter(hosts)
		log.Printf("Priority host filter active with %d names", len(hosts))
	}

	p := &pipeline.Pipeline{Layouts: layouts, Filter: filter, Debug: cfg.Debug}

	if cfg.DBPath != "" {
		db, err := store.InitDB(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to init database: %v", err)
		}
		defer db.Close()
		p.DB = db
		log.Printf("Run journal at %s", cfg.DBPath)
	}

	if cfg.WebhookURL != "" {
		p.Sender = &delivery.Sender{URL: cfg.WebhookURL, Kind: cfg.WebhookKind, Mode: cfg.MessageMode}
		log.Printf("Webhook delivery enabled (%s, %s mode)", cfg.WebhookKind, cfg.MessageMode)
	}

	if cfg.AnthropicAPIKey != "" {
		p.Classifier = &llm.Classifier{APIKey: cfg.AnthropicAPIKey, Model: cfg.LLMModel}
		log.Printf("Meeting type refinement enabled (model %s)", cfg.LLMModel)
	}

	if args := os.Args[1:]; len(args) > 0 {
		if err := runOnce(p, args); err != nil {
			log.Fatalf("Processing failed: %v", err)
		}
		return
	}

	watcher := &watch.Watcher{Pipeline: p, InboxDir: cfg.InboxDir, Schedule: cfg.WatchSchedule}
	watcher.Start(context.Background())

	srv := &server.Server{Pipeline: p}
	log.Printf("Starting CABS host schedule service on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, srv.Router()); err != nil {
		log.Fatalf("HTTP server error: %v", err)
	}
}

// runOnce is the command line mode: process the named files, print the
// copy-paste rendering and deliver when a webhook is configured.
func runOnce(p *pipeline.Pipeline, paths []string) error {
	ctx := context.Background()
	started := time.Now()
	out, err := p.ProcessFiles(ctx, paths)
	p.JournalRun(out, "cli", started, err)
	if err != nil {
		return err
	}

	fmt.Println(format.CopyText(out.Schedule))
	fmt.Println(format.SummaryMessage(out.Schedule))

	if p.Sender != nil {
		tally, err := p.Deliver(ctx, out)
		if err != nil {
			return err
		}
		log.Printf("Delivered: %d sent, %d failed", tally.Sent, tally.Failed)
		if tally.Failed > 0 {
			return fmt.Errorf("%d deliveries failed", tally.Failed)
		}
	}
	return nil
}
