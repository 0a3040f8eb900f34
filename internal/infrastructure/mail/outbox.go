package mail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OutboxKey is the Redis list a mail relay drains with BLPOP.
const OutboxKey = "mail:outbox"

type Mail struct {
	From     string    `json:"from"`
	To       []string  `json:"to"`
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	QueuedAt time.Time `json:"queued_at"`
}

// Sender is the contract used by jobs; Outbox is the production implementation.
type Sender interface {
	Send(ctx context.Context, m Mail) error
}

type Outbox struct {
	rdb  *redis.Client
	from string
	now  func() time.Time
}

func NewOutbox(rdb *redis.Client, from string) *Outbox {
	return &Outbox{rdb: rdb, from: from, now: func() time.Time { return time.Now().UTC() }}
}

func (o *Outbox) Send(ctx context.Context, m Mail) error {
	if len(m.To) == 0 {
		return errors.New("mail: no recipient")
	}
	if m.From == "" {
		m.From = o.from
	}
	m.QueuedAt = o.now()
	payload, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if err := o.rdb.RPush(ctx, OutboxKey, payload).Err(); err != nil {
		return fmt.Errorf("mail: enqueue: %w", err)
	}
	return nil
}

// Pending returns the queued mails without removing them.
func (o *Outbox) Pending(ctx context.Context) ([]Mail, error) {
	raw, err := o.rdb.LRange(ctx, OutboxKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Mail, 0, len(raw))
	for _, r := range raw {
		var m Mail
		if err := json.Unmarshal([]byte(r), &m); err != nil {
			return nil, fmt.Errorf("mail: decode outbox entry: %w", err)
		}
		out = append(out, m)
	}
	return out, nil
}
