// Package client implements the shorten flow: validate input, call the
// service, normalize the answer, derive expiry, and record history.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/linksnap/linksnap/internal/history"
	"github.com/linksnap/linksnap/internal/validate"
	"go.uber.org/zap"
)

// DefaultTimeout bounds the shorten call. The service contract defines
// no timeout of its own, so the client supplies one.
const DefaultTimeout = 15 * time.Second

// Result is a normalized successful answer from the service.
type Result struct {
	ShortURL  string
	ExpiresAt int64 // epoch milliseconds
}

// Client submits shorten requests to the service and records successes
// in the history store. One submission at a time: callers serialize,
// the client holds no lock.
type Client struct {
	baseURL string
	http    *http.Client
	history *history.Store
	logger  *zap.Logger
	now     func() time.Time
}

// New creates a client for the service at baseURL. A nil httpClient
// gets a default with DefaultTimeout.
func New(baseURL string, httpClient *http.Client, hist *history.Store, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		history: hist,
		logger:  logger,
		now:     time.Now,
	}
}

// History returns the history store backing this client.
func (c *Client) History() *history.Store {
	return c.history
}

// shortenPayload is the outbound request body. Alias is omitted
// entirely when the user left it empty.
type shortenPayload struct {
	URL      string `json:"url"`
	Validity int    `json:"validity"`
	Alias    string `json:"alias,omitempty"`
}

// shortenAnswer covers the field spellings the service is known to use.
// Precedence on read: shortUrl, short_url, short; expiresAt before
// expires_at.
type shortenAnswer struct {
	ShortURLCamel string   `json:"shortUrl"`
	ShortURLSnake string   `json:"short_url"`
	Short         string   `json:"short"`
	ExpiresCamel  *float64 `json:"expiresAt"`
	ExpiresSnake  *float64 `json:"expires_at"`
}

// Submit runs one full shorten attempt. Every failure comes back as an
// ordinary error from the taxonomy in errors.go; none of them leave
// partial state behind.
func (c *Client) Submit(ctx context.Context, longURL, alias, validityRaw string) (*Result, error) {
	longURL = strings.TrimSpace(longURL)
	if longURL == "" {
		return nil, ErrMissingURL
	}

	if !validate.IsValidHTTPURL(longURL) {
		return nil, ErrInvalidURL
	}

	minutes, ok := validate.ResolveValidity(validityRaw)
	if !ok {
		return nil, ErrInvalidValidity
	}

	payload := shortenPayload{URL: longURL, Validity: minutes}
	if a := strings.TrimSpace(alias); a != "" {
		payload.Alias = a
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/shorten", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shorten request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		text, _ := io.ReadAll(resp.Body)

		return nil, &HTTPError{
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(text)),
		}
	}

	var answer shortenAnswer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	shortURL := firstNonEmpty(answer.ShortURLCamel, answer.ShortURLSnake, answer.Short)
	if shortURL == "" {
		return nil, ErrUnexpectedResponse
	}

	nowMs := c.now().UnixMilli()
	expiresAt := c.resolveExpiry(&answer, nowMs, minutes)

	c.history.Record(ctx, history.Entry{
		LongURL:         longURL,
		ShortURL:        shortURL,
		CreatedAt:       nowMs,
		ExpiresAt:       expiresAt,
		ValidityMinutes: minutes,
	})

	c.logger.Info("url shortened",
		zap.String("shortUrl", shortURL),
		zap.Int("validityMinutes", minutes),
	)

	return &Result{ShortURL: shortURL, ExpiresAt: expiresAt}, nil
}

// resolveExpiry prefers the server-supplied expiry and falls back to a
// local derivation from the validity window.
func (c *Client) resolveExpiry(answer *shortenAnswer, nowMs int64, minutes int) int64 {
	var server *float64

	switch {
	case answer.ExpiresCamel != nil:
		server = answer.ExpiresCamel
	case answer.ExpiresSnake != nil:
		server = answer.ExpiresSnake
	}

	if server == nil {
		return nowMs + int64(minutes)*60_000
	}

	v := int64(*server)

	// The contract says epoch milliseconds but nothing validates the
	// unit; a seconds-scale value would slip through unchanged.
	if v > 0 && v < 1e12 {
		c.logger.Debug("server expiry smaller than an epoch-ms timestamp",
			zap.Int64("expiresAt", v),
		)
	}

	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
