// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"context"
	"time"

	"github.com/jfplabs/jfp-core/config"
	"github.com/jfplabs/jfp-core/logger"
	"github.com/jfplabs/jfp-core/recovery"
	"github.com/jfplabs/jfp-core/registry/fetcher"
	"github.com/jfplabs/jfp-core/registry/store"
	registry "github.com/jfplabs/jfp-core/registry/types"
)

// Source tags where a returned prompt list ultimately came from.
type Source string

const (
	// SourceCache means the list was served from the on-disk registry cache.
	SourceCache Source = "cache"
	// SourceRemote means the list was freshly fetched from the registry.
	SourceRemote Source = "remote"
	// SourceBundled means the list fell back to the packaged defaults.
	SourceBundled Source = "bundled"
)

// Result pairs a usable prompt list with its source tag. The loader always
// produces a Result; data unavailability is expressed through the source
// tag, never through an error.
type Result struct {
	Prompts []registry.Prompt
	Source  Source
}

// Fetcher is the conditional-fetch collaborator.
type Fetcher interface {
	Fetch(ctx context.Context, url, priorETag string) fetcher.Result
}

// PromptSource supplies already-normalized prompts from an opaque
// collaborator (the offline store, or user-local prompt files).
type PromptSource func() []registry.Prompt

// Loader orchestrates the local store, the conditional fetcher, and the
// merge engine to implement the stale-while-revalidate read path and the
// explicit refresh path.
type Loader struct {
	cfg     *config.Config
	fetch   Fetcher
	offline PromptSource
	local   PromptSource
	bundled func() []registry.Prompt
	now     func() time.Time
	spawn   func(name string, fn func())
}

// Option configures a Loader.
type Option func(*Loader)

// WithFetcher overrides the conditional fetcher.
func WithFetcher(f Fetcher) Option {
	return func(l *Loader) { l.fetch = f }
}

// WithOfflineSource sets the offline-saved prompt collaborator. Offline
// entries form the merge base: they always lead the returned list.
func WithOfflineSource(s PromptSource) Option {
	return func(l *Loader) { l.offline = s }
}

// WithLocalSource sets the user-local prompt file collaborator. Local
// entries have the highest precedence and override every other source for a
// colliding id.
func WithLocalSource(s PromptSource) Option {
	return func(l *Loader) { l.local = s }
}

// WithClock overrides the clock used for freshness checks.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) { l.now = now }
}

// WithSpawner overrides how background refreshes are started. Tests inject a
// synchronous spawner; production uses recovery.Go.
func WithSpawner(spawn func(name string, fn func())) Option {
	return func(l *Loader) { l.spawn = spawn }
}

// New creates a Loader for the given configuration.
func New(cfg *config.Config, opts ...Option) *Loader {
	l := &Loader{
		cfg:     cfg,
		bundled: BundledPrompts,
		now:     time.Now,
		spawn:   recovery.Go,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.fetch == nil {
		l.fetch = fetcher.New(cfg.FetchTimeout)
	}
	return l
}

// Load implements the stale-while-revalidate read path.
//
// A non-empty cache is returned immediately regardless of freshness;
// staleness only triggers a fire-and-forget background refresh (when
// auto-refresh is enabled) whose outcome the caller never observes. With no
// usable cache, a foreground conditional fetch runs; if it produces nothing,
// the bundled defaults are the terminal fallback.
//
// The returned error is non-nil only when a freshly fetched payload could
// not be durably persisted; the Result is usable either way.
func (l *Loader) Load(ctx context.Context) (Result, error) {
	payload := store.Read[registry.Payload](l.cfg.CachePath(), store.WithValidator(registry.ValidatePayloadBytes))
	meta := store.Read[registry.Meta](l.cfg.MetaPath(), store.WithValidator(registry.ValidateMetaBytes))

	if payload != nil && len(payload.Prompts) > 0 {
		if l.cfg.AutoRefresh && l.isStale(meta) {
			l.spawn("registry-refresh", func() {
				if _, err := l.Refresh(context.Background()); err != nil {
					logger.Warnw("background registry refresh failed", "error", err)
				}
			})
		}
		return Result{Prompts: l.compose(payload.Prompts), Source: SourceCache}, nil
	}

	res := l.fetch.Fetch(ctx, l.cfg.RegistryURL, etagOf(meta))
	if res.Outcome == fetcher.OutcomeFetched {
		err := l.persist(res.Payload, res.Meta, meta)
		return Result{Prompts: l.compose(res.Payload.Prompts), Source: SourceRemote}, err
	}

	// Failed, or not-modified with nothing cached — neither yields prompts.
	return Result{Prompts: l.compose(l.bundled()), Source: SourceBundled}, nil
}

// Refresh performs an explicit foreground conditional fetch using the stored
// ETag.
//
// On not-modified only the metadata's fetchedAt advances; on fetch the new
// payload and metadata are persisted; on failure whatever is cached is
// served, falling back to the bundled defaults when nothing is. As with
// Load, the error reports persistence failures only.
func (l *Loader) Refresh(ctx context.Context) (Result, error) {
	payload := store.Read[registry.Payload](l.cfg.CachePath(), store.WithValidator(registry.ValidatePayloadBytes))
	meta := store.Read[registry.Meta](l.cfg.MetaPath(), store.WithValidator(registry.ValidateMetaBytes))

	res := l.fetch.Fetch(ctx, l.cfg.RegistryURL, etagOf(meta))

	switch res.Outcome {
	case fetcher.OutcomeNotModified:
		var err error
		if meta != nil {
			updated := *meta
			updated.FetchedAt = l.monotonicNow(meta)
			err = store.Write(l.cfg.MetaPath(), updated)
		}
		if payload != nil && len(payload.Prompts) > 0 {
			return Result{Prompts: l.compose(payload.Prompts), Source: SourceCache}, err
		}
		return Result{Prompts: l.compose(l.bundled()), Source: SourceBundled}, err

	case fetcher.OutcomeFetched:
		err := l.persist(res.Payload, res.Meta, meta)
		return Result{Prompts: l.compose(res.Payload.Prompts), Source: SourceRemote}, err

	default:
		if payload != nil && len(payload.Prompts) > 0 {
			return Result{Prompts: l.compose(payload.Prompts), Source: SourceCache}, nil
		}
		return Result{Prompts: l.compose(l.bundled()), Source: SourceBundled}, nil
	}
}

// compose applies the fixed merge chain around the core prompt list:
// offline-saved items lead as the base, the core (cache, remote, or bundled)
// refreshes and extends them, and user-local files override everything last.
func (l *Loader) compose(core []registry.Prompt) []registry.Prompt {
	merged := core
	if l.offline != nil {
		merged = Merge(l.offline(), core)
	}
	if l.local != nil {
		merged = Merge(merged, l.local())
	}
	return merged
}

// persist atomically writes the fetched payload and metadata. The payload
// lands first so a crash between the two writes leaves a usable cache with
// stale metadata rather than metadata describing a payload that was never
// written.
func (l *Loader) persist(payload *registry.Payload, meta, prior *registry.Meta) error {
	if err := store.Write(l.cfg.CachePath(), payload); err != nil {
		return err
	}

	clamped := *meta
	if prior != nil && clamped.FetchedAt.Before(prior.FetchedAt) {
		// fetchedAt is monotonically non-decreasing within one process.
		clamped.FetchedAt = prior.FetchedAt
	}
	return store.Write(l.cfg.MetaPath(), clamped)
}

// isStale reports whether the cache needs a background revalidation. Missing
// metadata counts as stale.
func (l *Loader) isStale(meta *registry.Meta) bool {
	if meta == nil {
		return true
	}
	return l.now().Sub(meta.FetchedAt) > l.cfg.CacheTTL
}

// monotonicNow returns the current time, clamped so it never precedes the
// previously recorded fetchedAt.
func (l *Loader) monotonicNow(prior *registry.Meta) time.Time {
	now := l.now()
	if prior != nil && now.Before(prior.FetchedAt) {
		return prior.FetchedAt
	}
	return now
}

func etagOf(meta *registry.Meta) string {
	if meta == nil {
		return ""
	}
	return meta.ETag
}
