package service

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// AlertsClient sends game transitions to an external alerts webhook
// (streaming overlays and the like). Strictly fire-and-forget: deliveries
// run in their own goroutine and failures are logged and dropped.
type AlertsClient struct {
	url    string
	client *http.Client
	log    zerolog.Logger
}

type alertPayload struct {
	Event     string                 `json:"event"`
	Timestamp int64                  `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// NewAlertsClient creates a webhook notifier for the given URL.
func NewAlertsClient(url string, log zerolog.Logger) *AlertsClient {
	return &AlertsClient{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
		log:    log,
	}
}

// Notify implements Notifier.
func (c *AlertsClient) Notify(event string, payload map[string]interface{}) {
	body, err := json.Marshal(alertPayload{
		Event:     event,
		Timestamp: time.Now().UnixMilli(),
		Data:      payload,
	})
	if err != nil {
		c.log.Warn().Err(err).Str("event", event).Msg("alert payload marshal failed")
		return
	}

	go func() {
		resp, err := c.client.Post(c.url, "application/json", bytes.NewReader(body))
		if err != nil {
			c.log.Warn().Err(err).Str("event", event).Msg("alert delivery failed")
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			c.log.Warn().Int("status", resp.StatusCode).Str("event", event).Msg("alert rejected")
		}
	}()
}
