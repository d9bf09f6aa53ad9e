// Package poller implements the consumer-side transport: a fixed-interval
// puller that fetches the pending snapshot over HTTP, hands it to the apply
// engine and acknowledges everything the engine finished.
package poller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"wordguess/internal/metrics"
	"wordguess/internal/model"
	"wordguess/internal/service"
)

// DefaultInterval is the fixed polling cadence. It doubles as the retry
// policy: a failed tick is simply retried on the next one, no backoff.
const DefaultInterval = time.Second

// Poller periodically pulls /pending and feeds the apply engine. Fetch and
// processing run strictly sequentially inside one goroutine, so two ticks
// can never overlap and no in-flight request coalescing is needed.
type Poller struct {
	baseURL  string
	client   *http.Client
	engine   *service.ApplyService
	interval time.Duration
	log      zerolog.Logger
}

// New creates a poller against the relay's base URL.
func New(baseURL string, engine *service.ApplyService, log zerolog.Logger) *Poller {
	return &Poller{
		baseURL:  baseURL,
		client:   &http.Client{Timeout: 10 * time.Second},
		engine:   engine,
		interval: DefaultInterval,
		log:      log,
	}
}

// Run polls until ctx is canceled. An immediate first tick is issued so a
// fresh process picks up queued records without waiting a full interval.
func (p *Poller) Run(ctx context.Context) {
	p.tick(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

// tick fetches one snapshot, replaces the prior view wholesale, and lets
// the engine decide which records are new. Any failure is logged and the
// tick skipped; nothing here may crash the loop.
func (p *Poller) tick(ctx context.Context) {
	metrics.PollTicks.Inc()

	snap, err := p.fetchPending(ctx)
	if err != nil {
		metrics.PollFailures.Inc()
		p.log.Warn().Err(err).Msg("pending fetch failed, skipping tick")
		return
	}

	for _, id := range p.engine.ProcessSnapshot(ctx, snap) {
		if err := p.acknowledge(ctx, id); err != nil {
			// The store will re-serve the record next tick and the dedup
			// set will keep it from re-applying.
			p.log.Warn().Err(err).Str("id", id).Msg("acknowledge failed")
		}
	}
}

func (p *Poller) fetchPending(ctx context.Context) (*model.PendingSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/pending", nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode}
	}

	var snap model.PendingSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (p *Poller) acknowledge(ctx context.Context, id string) error {
	body, err := json.Marshal(map[string]string{"key": id})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/mark-processed", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &statusError{code: resp.StatusCode}
	}
	return nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}
