package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/DanielPopoola/fusion-cleaner/internal/tracing"
	"go.opentelemetry.io/otel/attribute"
)

const (
	tokenHeader  = "token"
	maxErrorBody = 4096
)

type endpoint struct {
	path  string
	token string
}

type client struct {
	baseURL    string
	httpClient *http.Client
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// postJSON is a generic helper for POST calls whose response body matters.
func postJSON[Req any, Resp any](c *client, ctx context.Context, ep endpoint, req Req) (*Resp, error) {
	var resp Resp
	if err := c.post(ctx, ep, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// post sends body as JSON and decodes the response into out unless out is nil.
// Any status outside 2xx is reported as a *BackendError.
func (c *client) post(ctx context.Context, ep endpoint, body any, out any) (err error) {
	ctx, span := tracing.StartClientSpan(ctx, "POST "+ep.path, attribute.String("url.path", ep.path))
	defer func() { tracing.EndSpan(span, err) }()

	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("error marshalling json: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ep.path, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(tokenHeader, ep.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	tracing.SetHTTPStatus(span, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &BackendError{
			Endpoint:   ep.path,
			Message:    strings.TrimSpace(string(respBody)),
			StatusCode: resp.StatusCode,
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding json response: %w", err)
	}

	return nil
}

// lister is one single-page search endpoint: how to build the request for a
// code, where the entries sit in the page, which entries are eligible and how
// to read a serial number off an entry.
type lister[Req any, Page any, Entry any] struct {
	endpoint endpoint
	build    func(code string) Req
	entries  func(page Page) []Entry
	keep     func(entry Entry) bool
	serial   func(entry Entry) (string, bool)
}

func (l *lister[Req, Page, Entry]) list(ctx context.Context, c *client, code string) ([]string, error) {
	env, err := postJSON[Req, envelope[Page]](c, ctx, l.endpoint, l.build(code))
	if err != nil {
		return nil, err
	}

	entries := l.entries(env.Response.Data)
	serials := make([]string, 0, len(entries))
	for _, entry := range entries {
		if l.keep != nil && !l.keep(entry) {
			continue
		}
		sn, ok := l.serial(entry)
		if !ok {
			continue
		}
		serials = append(serials, sn)
	}

	return serials, nil
}
