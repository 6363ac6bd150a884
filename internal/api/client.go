// Package api is the JSON client for the cinema REST API that owns users,
// films, showtimes and bookings.  Every non-2xx answer and every transport
// failure is returned as *apperr.NetworkError; nothing is retried.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-admin-dashboard/internal/apperr"
)

// maxErrorBody bounds how much of a failed response is kept for the log.
const maxErrorBody = 512

type Client struct {
	base   string
	client *http.Client
	log    logrus.FieldLogger
}

// New returns a client for baseURL.  A zero timeout leaves requests bounded
// only by their context.
func New(baseURL string, timeout time.Duration, log logrus.FieldLogger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// do sends in as the JSON body (when non-nil) and decodes the response into
// out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	op := method + " " + path

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return &apperr.NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return &apperr.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"op":      op,
		"status":  resp.StatusCode,
		"latency": time.Since(start).String(),
	}).Debug("upstream request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.WithFields(logrus.Fields{"op": op, "status": resp.StatusCode, "body": string(snippet)}).
			Warn("upstream rejected request")
		return &apperr.NetworkError{Op: op, Status: resp.StatusCode}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &apperr.NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func itemPath(collection, id string) string {
	return "/" + collection + "/" + url.PathEscape(id)
}
