package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/eerla/pybenders-sub000/internal/config"
)

const userAgent = "Reelbender/0.1.0"

// Event identifies a batch lifecycle milestone.
type Event string

const (
	EventRunStarted   Event = "run_started"
	EventRunCompleted Event = "run_completed"
	EventJobFailed    Event = "job_failed"
	EventRunFailed    Event = "run_failed"
)

// Payload carries the string fields an event message interpolates.
type Payload map[string]string

// Service is the notification surface exposed to the scheduler.
type Service interface {
	Publish(ctx context.Context, event Event, payload Payload) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		enabled: map[Event]bool{
			EventRunStarted:   cfg.Notifications.RunStarted,
			EventRunCompleted: cfg.Notifications.RunCompleted,
			EventJobFailed:    cfg.Notifications.JobFailures,
			// Aborted runs always notify; they mean no reels shipped.
			EventRunFailed: true,
		},
	}
}

type message struct {
	title    string
	body     string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	enabled  map[Event]bool
}

// Publish renders and delivers the event. Disabled and unknown events
// are silently dropped.
func (n *ntfyService) Publish(ctx context.Context, event Event, payload Payload) error {
	if !n.enabled[event] {
		return nil
	}
	data, ok := renderEvent(event, payload)
	if !ok {
		return nil
	}
	return n.send(ctx, data)
}

func renderEvent(event Event, payload Payload) (message, bool) {
	get := func(key string) string { return strings.TrimSpace(payload[key]) }

	switch event {
	case EventRunStarted:
		return message{
			title: "Reelbender - Run Started",
			body:  fmt.Sprintf("🎬 Rendering %s reels for %s", orUnknown(get("count")), orUnknown(get("subject"))),
			tags:  []string{"reelbender", "run", "started"},
		}, true
	case EventRunCompleted:
		subject := orUnknown(get("subject"))
		duration := get("duration")
		if duration == "" {
			duration = "0s"
		}
		if get("failed") == "0" {
			return message{
				title: "Reelbender - Run Complete",
				body:  fmt.Sprintf("✅ %s reels rendered for %s in %s", orUnknown(get("succeeded")), subject, duration),
				tags:  []string{"reelbender", "run", "completed"},
			}, true
		}
		return message{
			title: "Reelbender - Run Complete (with errors)",
			body: fmt.Sprintf("%s succeeded, %s failed for %s in %s",
				orUnknown(get("succeeded")), orUnknown(get("failed")), subject, duration),
			tags: []string{"reelbender", "run", "completed"},
		}, true
	case EventJobFailed:
		return message{
			title: "Reelbender - Job Failed",
			body:  fmt.Sprintf("❌ %s: %s", orUnknown(get("question_id")), orUnknown(get("reason"))),
			tags:  []string{"reelbender", "job", "failed"},
		}, true
	case EventRunFailed:
		return message{
			title:    "Reelbender - Run Failed",
			body:     fmt.Sprintf("❌ Run aborted for %s: %s", orUnknown(get("subject")), orUnknown(get("error"))),
			tags:     []string{"reelbender", "error", "alert"},
			priority: "high",
		}, true
	}
	return message{}, false
}

func orUnknown(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

func (n *ntfyService) send(ctx context.Context, data message) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.body))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) Publish(context.Context, Event, Payload) error { return nil }
