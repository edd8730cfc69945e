// Package classifier provides the HTTP client for the external toxicity
// classifier sidecar. Callers treat failures as "no signal": the lexicon
// and heuristics still protect when the model is down or slow
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	perr "scrutiny/internal/platform/errors"
	"scrutiny/internal/platform/logger"
	"scrutiny/internal/platform/metrics"
)

const (
	defaultTimeout = 15 * time.Second
	warmupTimeout  = 60 * time.Second
	defaultUA      = "scrutiny-moderation"
)

// LabelScore is one label probability from the classifier
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Port is the surface the moderation service depends on
type Port interface {
	Classify(ctx context.Context, text string) ([]LabelScore, error)
}

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client is a minimal JSON-over-HTTP classifier client
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("classifier"),
		now:  time.Now,
	}
}

type classifyRequest struct {
	Text string `json:"text"`
}

// Classify posts text to the sidecar and returns its label scores.
// Blank text short-circuits to an empty result without a network call
func (c *Client) Classify(ctx context.Context, text string) ([]LabelScore, error) {
	if strings.TrimSpace(text) == "" {
		return []LabelScore{}, nil
	}
	if c.opts.BaseURL == "" {
		return nil, perr.Unavailablef("classifier not configured")
	}

	body, err := json.Marshal(classifyRequest{Text: text})
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "classifier encode request")
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/classify", bytes.NewReader(body))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "classifier new request")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := c.now()
	resp, err := c.http.Do(req)
	metrics.ClassifierSeconds.Observe(c.now().Sub(start).Seconds())
	if err != nil {
		if ctx.Err() != nil {
			return nil, perr.Wrapf(ctx.Err(), perr.ErrorCodeUnavailable, "classifier call aborted")
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "classifier unreachable")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// drain so the transport can reuse the connection
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, perr.Unavailablef("classifier returned status %d", resp.StatusCode)
	}

	var out []LabelScore
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "classifier decode response")
	}
	if out == nil {
		out = []LabelScore{}
	}
	return out, nil
}

// Warmup asks the sidecar to pre-load its model. Best effort: a false
// return means the model is still loading, not that moderation is broken
func (c *Client) Warmup(ctx context.Context) bool {
	if c.opts.BaseURL == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, warmupTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+"/health", nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Msg("classifier warmup failed, will degrade gracefully")
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<10))
	return resp.StatusCode == http.StatusOK
}
