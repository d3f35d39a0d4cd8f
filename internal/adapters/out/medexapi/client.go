// Package medexapi is the typed client for the MedEx backend REST contract.
//
// Every call except login, registration, refresh and public tracking carries the
// session's bearer token. A 401 triggers one refresh and one retry; when that
// fails the session is cleared and ErrSessionExpired is returned.
package medexapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"medex/internal/core/ports"
)

const DefaultTimeout = 10 * time.Second

var ErrSessionExpired = errors.New("session expired")

// Client talks to {baseURL}/api.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
	logger  *slog.Logger

	refreshMu sync.Mutex
}

// NewClient builds a client. baseURL is the backend origin, with or without the
// /api suffix. A nil httpClient gets DefaultTimeout.
func NewClient(baseURL string, httpClient *http.Client, session *Session, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	base := strings.TrimRight(baseURL, "/")
	if !strings.HasSuffix(base, "/api") {
		base += "/api"
	}
	return &Client{
		baseURL: base,
		http:    httpClient,
		session: session,
		logger:  logger.With("component", "medex_api"),
	}
}

// Session returns the session the client authenticates with.
func (c *Client) Session() *Session {
	return c.session
}

// Claims decodes the signed-in user's access token.
func (c *Client) Claims() (Claims, error) {
	return c.session.Claims()
}

type call struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
	auth   bool
}

func (c *Client) do(ctx context.Context, cl call, out any) error {
	var payload []byte
	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", cl.op, err)
		}
		payload = b
	}

	token := ""
	if cl.auth {
		token = c.session.AccessToken()
		if token == "" {
			return fmt.Errorf("%s: %w", cl.op, ErrNoSession)
		}
	}

	resp, err := c.send(ctx, cl, payload, token)
	if err != nil {
		return err
	}

	if cl.auth && resp.StatusCode == http.StatusUnauthorized {
		drain(resp)

		fresh, refreshErr := c.refresh(ctx, token)
		if refreshErr != nil {
			c.logger.WarnContext(ctx, "Token refresh failed, clearing session", "op", cl.op, "error", refreshErr)
			c.session.Clear()
			return fmt.Errorf("%s: %w: %w", cl.op, ErrSessionExpired, refreshErr)
		}

		resp, err = c.send(ctx, cl, payload, fresh)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			drain(resp)
			c.logger.WarnContext(ctx, "Request rejected after refresh, clearing session", "op", cl.op)
			c.session.Clear()
			return fmt.Errorf("%s: %w", cl.op, ErrSessionExpired)
		}
	}

	return decode(cl.op, resp, out)
}

func (c *Client) send(ctx context.Context, cl call, payload []byte, token string) (*http.Response, error) {
	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", cl.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, ports.NewTransportError(cl.op, err)
	}
	return resp, nil
}

// refresh exchanges the refresh token for a new access token. Concurrent callers
// that saw the same stale token share one refresh.
func (c *Client) refresh(ctx context.Context, stale string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if current := c.session.AccessToken(); current != "" && current != stale {
		return current, nil
	}

	refreshToken := c.session.RefreshToken()
	if refreshToken == "" {
		return "", ErrNoSession
	}

	var out refreshResponse
	err := c.do(ctx, call{
		op:     "refresh token",
		method: http.MethodPost,
		path:   "/auth/refresh",
		query:  url.Values{"refresh_token": {refreshToken}},
	}, &out)
	if err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", errors.New("refresh returned no access token")
	}

	c.session.setAccessToken(out.AccessToken)
	c.logger.DebugContext(ctx, "Access token refreshed")
	return out.AccessToken, nil
}

func decode(op string, resp *http.Response, out any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ports.NewTransportError(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ports.NewUnexpectedStatusError(op, resp.StatusCode, detailOf(body))
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
