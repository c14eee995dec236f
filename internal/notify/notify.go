package notify

import (
	"context"
	"log"
	"time"
)

// Message is a single outbound email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Notifier delivers messages best-effort. Implementations must never be
// relied on for transactional outcomes: callers dispatch after commit and
// treat failures as loggable, not as errors.
type Notifier interface {
	Send(ctx context.Context, m Message) error
}

// Async dispatches m in the background and logs any failure. It is the only
// way the order and payment services talk to a Notifier, so a mail-server
// outage can never surface into a request or roll back a committed
// transaction.
func Async(n Notifier, m Message) {
	if n == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := n.Send(ctx, m); err != nil {
			log.Printf("notify: send to %s failed: %v", m.To, err)
		}
	}()
}

// LogNotifier is the fallback when neither SMTP nor AMQP is configured.
type LogNotifier struct{}

func (LogNotifier) Send(_ context.Context, m Message) error {
	log.Printf("notify: (dry run) to=%s subject=%q", m.To, m.Subject)
	return nil
}

var _ Notifier = LogNotifier{}
