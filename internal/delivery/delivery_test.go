package delivery

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cabsbot/internal/format"
)

func TestSendTeamsText(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := &Sender{URL: srv.URL, Kind: KindTeams, Mode: ModeText}
	if err := s.Send(context.Background(), Message{Host: "john smith", Text: "hello"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got["text"] != "hello" {
		t.Errorf("payload text = %q", got["text"])
	}
}

func TestSendTeamsCard(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &got)
	}))
	defer srv.Close()

	card := format.MessageCard{Type: "MessageCard", ThemeColor: "0078d4"}
	s := &Sender{URL: srv.URL, Kind: KindTeams, Mode: ModeCard}
	if err := s.Send(context.Background(), Message{Host: "h", Text: "fallback", Card: &card}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got["@type"] != "MessageCard" {
		t.Errorf("expected card payload, got %v", got)
	}
}

func TestSendErrorIncludesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, "Summary or Text is required")
	}))
	defer srv.Close()

	s := &Sender{URL: srv.URL, Kind: KindTeams}
	err := s.Send(context.Background(), Message{Host: "h", Text: ""})
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if !strings.Contains(err.Error(), "400") || !strings.Contains(err.Error(), "Summary or Text") {
		t.Errorf("error missing status or body: %v", err)
	}
}

func TestSendBatchContinuesOnFailure(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	s := &Sender{URL: srv.URL, Kind: KindTeams}
	var seen []string
	tally := s.SendBatch(context.Background(), []Message{
		{Host: "a", Text: "one"},
		{Host: "b", Text: "two"},
	}, func(msg Message, err error) {
		status := "sent"
		if err != nil {
			status = "failed"
		}
		seen = append(seen, msg.Host+":"+status)
	})
	if tally.Sent != 1 || tally.Failed != 1 {
		t.Errorf("tally = %+v", tally)
	}
	if len(tally.Errors) != 1 || !strings.Contains(tally.Errors[0].Error(), "send a") {
		t.Errorf("errors = %v", tally.Errors)
	}
	// The callback observes every attempt, failures included.
	if len(seen) != 2 || seen[0] != "a:failed" || seen[1] != "b:sent" {
		t.Errorf("callback results = %v", seen)
	}
}

func TestSendBatchNilCallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	s := &Sender{URL: srv.URL, Kind: KindTeams}
	tally := s.SendBatch(context.Background(), []Message{{Host: "a", Text: "one"}}, nil)
	if tally.Sent != 1 || tally.Failed != 0 {
		t.Errorf("tally = %+v", tally)
	}
}

func TestSendMissingURL(t *testing.T) {
	s := &Sender{}
	if err := s.Send(context.Background(), Message{Text: "x"}); err == nil {
		t.Fatal("expected error when URL is empty")
	}
}
