package service

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"ichiba_backend/internals/configs"
	"ichiba_backend/internals/features/notifications/model"
)

// Event is one outbound notification. EmailTo is optional; when set the
// event is also relayed to the mail provider.
type Event struct {
	UserKey string
	Type    string
	Title   string
	Body    string
	EmailTo string
}

// Notifier is what the submit/apply handlers call. Implementations must
// never let a delivery failure propagate back into the caller's flow.
type Notifier interface {
	Notify(ev Event)
}

// Dispatcher persists notification rows and relays emails from a single
// background worker. Notify never blocks: when the queue is full the event
// is dropped with a warning, matching the fire-and-forget contract.
type Dispatcher struct {
	db     *gorm.DB
	ch     chan Event
	done   chan struct{}
	client *http.Client
}

func NewDispatcher(db *gorm.DB) *Dispatcher {
	d := &Dispatcher{
		db:     db,
		ch:     make(chan Event, 256),
		done:   make(chan struct{}),
		client: &http.Client{Timeout: 10 * time.Second},
	}
	go d.run()
	return d
}

func (d *Dispatcher) Notify(ev Event) {
	select {
	case d.ch <- ev:
	default:
		log.Printf("[WARN] notification queue full, dropping %s for %s", ev.Type, ev.UserKey)
	}
}

// Close drains the queue and stops the worker.
func (d *Dispatcher) Close() {
	close(d.ch)
	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for ev := range d.ch {
		d.deliver(ev)
	}
}

func (d *Dispatcher) deliver(ev Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	row := model.NotificationModel{
		NotificationUserKey: ev.UserKey,
		NotificationType:    ev.Type,
		NotificationTitle:   ev.Title,
		NotificationBody:    ev.Body,
	}
	if err := d.db.WithContext(ctx).Create(&row).Error; err != nil {
		log.Printf("[WARN] notification insert failed (%s): %v", ev.Type, err)
	}

	if ev.EmailTo != "" {
		if err := d.sendEmail(ctx, ev); err != nil {
			log.Printf("[WARN] notification email failed (%s → %s): %v", ev.Type, ev.EmailTo, err)
		}
	}
}

// sendEmail relays through the configured provider endpoint. Unconfigured
// environments (local dev, tests) just log.
func (d *Dispatcher) sendEmail(ctx context.Context, ev Event) error {
	if configs.EmailAPIURL == "" {
		log.Printf("[INFO] EMAIL_API_URL not set, skipping email %q to %s", ev.Title, ev.EmailTo)
		return nil
	}

	body, err := sonic.Marshal(emailBody(ev))
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, configs.EmailAPIURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if configs.EmailAPIKey != "" {
		req.Header.Set("Authorization", "Bearer "+configs.EmailAPIKey)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &httpStatusError{code: resp.StatusCode}
	}
	return nil
}

func emailBody(ev Event) map[string]string {
	return map[string]string{
		"to":      ev.EmailTo,
		"subject": ev.Title,
		"text":    ev.Body,
	}
}

type httpStatusError struct{ code int }

func (e *httpStatusError) Error() string {
	return http.StatusText(e.code)
}
