// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

package fetcher

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/jfplabs/jfp-core/logger"
	registry "github.com/jfplabs/jfp-core/registry/types"
	"github.com/jfplabs/jfp-core/validation"
)

// maxPayloadSize caps the response body read to defend against a
// misbehaving registry.
const maxPayloadSize int64 = 16 * 1024 * 1024

// Outcome classifies the result of a conditional fetch. Callers act on the
// three-way outcome only; failure causes are collapsed and logged at debug.
type Outcome int

const (
	// OutcomeFailed covers timeout, network error, non-2xx/304 status, and
	// payload parse failure alike.
	OutcomeFailed Outcome = iota
	// OutcomeNotModified means the registry answered 304; the cached payload
	// is still current and only its fetchedAt timestamp should advance.
	OutcomeNotModified
	// OutcomeFetched means a new payload was downloaded.
	OutcomeFetched
)

// Result is the outcome of one conditional fetch. Payload and Meta are
// non-nil only when Outcome is OutcomeFetched.
type Result struct {
	Outcome Outcome
	Payload *registry.Payload
	Meta    *registry.Meta
}

// Client performs timeout-bounded conditional GETs against the remote
// registry. It never touches disk.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client. Used by tests to
// inject httptest transports.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Client) {
		f.httpClient = c
	}
}

// WithClock overrides the clock used to stamp fetch metadata.
func WithClock(now func() time.Time) Option {
	return func(f *Client) {
		f.now = now
	}
}

// New creates a fetcher whose requests are aborted after timeout.
func New(timeout time.Duration, opts ...Option) *Client {
	f := &Client{
		httpClient: http.DefaultClient,
		timeout:    timeout,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch performs a conditional GET against url, sending priorETag as
// If-None-Match when present. The request always resolves within the
// configured timeout to exactly one of the three outcomes; Fetch never
// returns an error.
func (f *Client) Fetch(ctx context.Context, url, priorETag string) Result {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		logger.Debugw("registry fetch failed", "stage", "request", "error", err)
		return Result{Outcome: OutcomeFailed}
	}
	req.Header.Set("Accept", "application/json")
	if priorETag != "" {
		if err := validation.ValidateHeaderValue(priorETag); err != nil {
			logger.Debugw("dropping unsafe cached etag", "error", err)
		} else {
			req.Header.Set("If-None-Match", priorETag)
		}
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		logger.Debugw("registry fetch failed", "stage", "transport", "error", err)
		return Result{Outcome: OutcomeFailed}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotModified {
		return Result{Outcome: OutcomeNotModified}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Debugw("registry fetch failed", "stage", "status", "status", resp.StatusCode)
		return Result{Outcome: OutcomeFailed}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize))
	if err != nil {
		logger.Debugw("registry fetch failed", "stage", "body", "error", err)
		return Result{Outcome: OutcomeFailed}
	}

	var payload registry.Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		logger.Debugw("registry fetch failed", "stage", "parse", "error", err)
		return Result{Outcome: OutcomeFailed}
	}

	meta := f.synthesizeMeta(&payload, resp.Header.Get("ETag"))
	return Result{Outcome: OutcomeFetched, Payload: &payload, Meta: meta}
}

// synthesizeMeta builds fetch metadata from the response. The ETag may be
// empty (the registry is not required to send one) and the payload version
// defaults to "unknown".
func (f *Client) synthesizeMeta(payload *registry.Payload, etag string) *registry.Meta {
	version := payload.Version
	if version == "" {
		version = "unknown"
	}
	return &registry.Meta{
		Version:     version,
		ETag:        etag,
		FetchedAt:   f.now(),
		PromptCount: len(payload.Prompts),
	}
}
