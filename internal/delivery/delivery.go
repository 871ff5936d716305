// Package delivery posts formatted schedule messages to a Teams or
// Slack incoming webhook.
package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/slack-go/slack"

	"cabsbot/internal/format"
	"cabsbot/internal/httpx"
)

const (
	KindTeams = "teams"
	KindSlack = "slack"

	ModeText = "text"
	ModeCard = "card"
)

// Message is one webhook post. Text is always set; Card is set when
// the sender runs in card mode against a Teams webhook.
type Message struct {
	Host string
	Text string
	Card *format.MessageCard
}

// Tally reports how a batch went. Failed posts do not stop the batch;
// each error is kept so the caller can log or journal it.
type Tally struct {
	Sent   int
	Failed int
	Errors []error
}

// Sender posts messages to a single webhook URL.
type Sender struct {
	URL  string
	Kind string // KindTeams or KindSlack
	Mode string // ModeText or ModeCard, Teams only
}

// Send posts one message. Teams webhooks answer non-2xx (or a literal
// error body with 200 on some tenants, which we do not detect) on bad
// payloads, so the status and body are included in the error.
func (s *Sender) Send(ctx context.Context, msg Message) error {
	if s.URL == "" {
		return fmt.Errorf("delivery: webhook URL not configured")
	}
	if s.Kind == KindSlack {
		return slack.PostWebhookContext(ctx, s.URL, &slack.WebhookMessage{Text: msg.Text})
	}
	return s.postTeams(ctx, msg)
}

func (s *Sender) postTeams(ctx context.Context, msg Message) error {
	var payload any
	if s.Mode == ModeCard && msg.Card != nil {
		payload = msg.Card
	} else {
		payload = map[string]string{"text": msg.Text}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpx.ExternalClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, string(snippet))
	}
	return nil
}

// SendBatch posts each message in order. There is no retry; a failed
// host is counted and the batch continues. The optional onResult
// callback observes every attempt, for journaling.
func (s *Sender) SendBatch(ctx context.Context, msgs []Message, onResult func(Message, error)) Tally {
	var tally Tally
	for _, msg := range msgs {
		err := s.Send(ctx, msg)
		if onResult != nil {
			onResult(msg, err)
		}
		if err != nil {
			tally.Failed++
			tally.Errors = append(tally.Errors, fmt.Errorf("send %s: %w", msg.Host, err))
			log.Printf("delivery: failed to send message for %s: %v", msg.Host, err)
			continue
		}
		tally.Sent++
	}
	return tally
}
