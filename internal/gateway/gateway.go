// Package gateway is the outbound messaging adapter. Delivery failures are
// transient from the system's point of view: callers log them and move on,
// they never roll back a stored submission or cancel other scheduled sends.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lucaruboni/restaurant-advisor/internal/config"
)

// Sender delivers one text message to a phone-like address.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

type sendPayload struct {
	From string `json:"from,omitempty"`
	To   string `json:"to"`
	Body string `json:"body"`
}

// HTTPGateway posts messages to a provider endpoint, guarded by a breaker so
// a dead provider fails fast instead of tying up scheduler goroutines.
type HTTPGateway struct {
	url    string
	token  string
	from   string
	client *http.Client
	br     *breaker
}

func NewHTTPGateway(cfg config.GatewayConfig) *HTTPGateway {
	timeout := cfg.TimeoutMs
	if timeout <= 0 {
		timeout = 3000
	}

	return &HTTPGateway{
		url:    cfg.BaseURL + cfg.SendPath,
		token:  cfg.Token,
		from:   cfg.From,
		client: &http.Client{Timeout: time.Duration(timeout) * time.Millisecond},
		br:     newBreaker(cfg.Breaker.FailThreshold, time.Duration(cfg.Breaker.OpenForMs)*time.Millisecond),
	}
}

var _ Sender = (*HTTPGateway)(nil)

func (g *HTTPGateway) Send(ctx context.Context, to, body string) error {
	if !g.br.allow() {
		return fmt.Errorf("messaging gateway unavailable (breaker open)")
	}

	if err := g.post(ctx, to, body); err != nil {
		g.br.onFailure()
		return err
	}

	g.br.onSuccess()
	return nil
}

func (g *HTTPGateway) post(ctx context.Context, to, body string) error {
	b, _ := json.Marshal(sendPayload{From: g.from, To: to, Body: body})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(b))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	res, err := g.client.Do(req)
	if err != nil {
		return err
	}

	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		return fmt.Errorf("gateway returned status %d for %s", res.StatusCode, to)
	}

	return nil
}
