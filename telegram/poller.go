package telegram

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// retryDelay is the wait after a failed poll before the next one.
var retryDelay = 5 * time.Second

// Poller receives updates from the Telegram Bot API using long polling.
type Poller struct {
	client         *Client
	offset         int64
	timeout        int
	allowedUpdates []string
}

// NewPoller creates a Poller that waits up to timeout seconds per call.
// With no allowedUpdates the server's current selection is kept.
func NewPoller(client *Client, timeout int, allowedUpdates ...string) *Poller {
	return &Poller{
		client:         client,
		timeout:        timeout,
		allowedUpdates: allowedUpdates,
	}
}

// Offset is the identifier of the next update to fetch.
func (p *Poller) Offset() int64 { return p.offset }

// Poll performs a single getUpdates call and advances the offset past every
// update it returns. An update that fails to convert is logged and skipped;
// the rest of the batch is still delivered.
func (p *Poller) Poll(ctx context.Context) ([]Update, error) {
	req := p.client.getUpdatesRequest(GetUpdatesOptions{
		Offset:         p.offset,
		Timeout:        p.timeout,
		AllowedUpdates: p.allowedUpdates,
	})
	items, err := Invoke(ctx, p.client, req, ListOf[json.RawMessage](rawObject))
	if err != nil {
		return nil, err
	}

	updates := make([]Update, 0, len(items))
	for _, item := range items {
		var id int64 = -1
		fields, err := decodeObject(item)
		if err == nil {
			id, err = Opt[int64](fields, "update_id", -1)
		}
		if err != nil || id < 0 {
			slog.Warn("update without id skipped", "component", "telegram", "operation", "poll", "error", err)
			continue
		}
		if id >= p.offset {
			p.offset = id + 1
		}
		u, err := Object[Update]()(item)
		if err != nil {
			slog.Warn("update conversion failed", "component", "telegram", "operation", "poll",
				"update_id", id, "error", err)
			continue
		}
		updates = append(updates, u)
	}
	return updates, nil
}

// rawObject keeps each object of a batch undecoded.
func rawObject(raw json.RawMessage) (json.RawMessage, error) {
	if err := expect(raw, "object"); err != nil {
		return nil, err
	}
	return raw, nil
}

// Run polls until ctx is done, sending every update on out. A failed poll
// is logged and retried after retryDelay.
func (p *Poller) Run(ctx context.Context, out chan<- Update) {
	slog.Info("poller started", "component", "telegram", "operation", "poll_start")

	for {
		updates, err := p.Poll(ctx)
		if err != nil {
			if ctx.Err() != nil {
				slog.Info("poller stopped", "component", "telegram", "operation", "poll_stop")
				return
			}
			slog.Error("poll failed", "component", "telegram", "operation", "poll", "error", err)
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				slog.Info("poller stopped", "component", "telegram", "operation", "poll_stop")
				return
			}
			continue
		}

		for _, u := range updates {
			select {
			case out <- u:
			case <-ctx.Done():
				slog.Info("poller stopped", "component", "telegram", "operation", "poll_stop")
				return
			}
		}
	}
}
