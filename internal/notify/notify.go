package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const requestTimeout = 5 * time.Second

// Notifier - tells the outside world that a participant locked in. Callers
// treat every implementation as best-effort: an error is advisory and must
// never change engine state.
type Notifier interface {
	Notify(ctx context.Context, participant string, count int) error
}

type webhookNotifier struct {
	logger *slog.Logger
	client *http.Client
	url    string
}

func NewWebhookNotifier(logger *slog.Logger, url string) Notifier {
	return &webhookNotifier{
		logger: logger.With("component", "notifier"),
		client: &http.Client{Timeout: requestTimeout},
		url:    url,
	}
}

func (that *webhookNotifier) Notify(ctx context.Context, participant string, count int) error {
	payload, err := json.Marshal(map[string]any{
		"participant": participant,
		"locked":      count,
	})
	if err != nil {
		return fmt.Errorf("could not marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, that.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("could not build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := that.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("notification rejected with status %d", resp.StatusCode)
	}

	that.logger.Debug("notification delivered", "participant", participant, "locked", count)

	return nil
}

type noopNotifier struct{}

// NewNoopNotifier - used when no webhook is configured.
func NewNoopNotifier() Notifier {
	return &noopNotifier{}
}

func (that *noopNotifier) Notify(_ context.Context, _ string, _ int) error {
	return nil
}
