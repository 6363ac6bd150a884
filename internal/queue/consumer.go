package queue

// consumer.go runs the background consumer that listens to the
// booking.status_changed queue and appends one audit line per event.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// AuditLog appends formatted events to a file, creating its directory on
// first use.
type AuditLog struct {
	path string
	mu   sync.Mutex
}

func NewAuditLog(path string) *AuditLog { return &AuditLog{path: path} }

// Append writes the line for ev.
func (a *AuditLog) Append(ev BookingStatusChangedEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if dir := filepath.Dir(a.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir logs: %w", err)
		}
	}
	f, err := os.OpenFile(a.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(FormatAuditLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatAuditLine renders ev as a single human-friendly line.
func FormatAuditLine(ev BookingStatusChangedEvent) string {
	return fmt.Sprintf("[%s] Booking status changed | booking_id=%s | showtime_id=%s | film_id=%s | customer=%q | %s -> %s | by=%s | total=%.0f | seats=[%s]\n",
		ev.ChangedAt, ev.BookingID, ev.ShowtimeID, ev.FilmID, ev.CustomerName, ev.FromStatus, ev.ToStatus, ev.ChangedBy, ev.TotalAmount, strings.Join(ev.Seats, ","))
}

// HandleMessage decodes body and appends it to the audit log.
func (a *AuditLog) HandleMessage(body []byte) error {
	var ev BookingStatusChangedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.BookingID == "" {
		return errors.New("event without booking id")
	}
	return a.Append(ev)
}

// RunBookingStatusConsumer connects to the broker, declares the durable
// queue and feeds deliveries to audit.  It reconnects with backoff until
// ctx is cancelled, then returns nil.
func RunBookingStatusConsumer(ctx context.Context, url string, audit *AuditLog, log logrus.FieldLogger) error {
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("component", "booking-consumer")

	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.WithError(err).Warnf("failed to dial broker; retrying in %s", backoff)
			if !sleep(ctx, backoff) {
				return nil
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = consumeLoop(ctx, conn, audit, log)
		_ = conn.Close()
		if ctx.Err() != nil {
			return nil
		}
		log.WithError(err).Warn("consume loop ended; reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return nil
		}
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, audit *AuditLog, log logrus.FieldLogger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.WithError(err).Warn("set QoS failed")
	}
	if _, err := ch.QueueDeclare(BookingStatusQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(BookingStatusQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := audit.HandleMessage(d.Body); err != nil {
				log.WithError(err).Error("handle message failed")
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
