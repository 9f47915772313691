// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

// Package config holds the explicit runtime configuration for the registry
// cache and skill installer. A Config is constructed once at process start
// and threaded as a parameter into every component; there is no ambient
// global state.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/jfplabs/jfp-core/env"
	"github.com/jfplabs/jfp-core/logger"
	"github.com/jfplabs/jfp-core/validation"
)

// DefaultRegistryURL is the public prompt registry endpoint.
const DefaultRegistryURL = "https://registry.jfp.dev/api/registry"

// DefaultFetchTimeout bounds every registry fetch. A fetch that has not
// resolved by the deadline is classified as failed.
const DefaultFetchTimeout = 10 * time.Second

// DefaultCacheTTL is how long a cached registry payload is considered fresh.
// A stale cache is still served; staleness only triggers a background refresh.
const DefaultCacheTTL = 24 * time.Hour

const (
	cacheFileName = "registry-cache.json"
	metaFileName  = "registry-meta.json"
)

// ManifestFileName is the name of the skill manifest document inside each
// skills root.
const ManifestFileName = "manifest.json"

// Config is the resolved configuration for one process.
type Config struct {
	// RegistryURL is the remote registry endpoint (conditional GET with ETag).
	RegistryURL string
	// FetchTimeout bounds a single registry fetch.
	FetchTimeout time.Duration
	// CacheTTL is the freshness window for the cached registry payload.
	CacheTTL time.Duration
	// AutoRefresh enables the fire-and-forget background refresh when a
	// stale cache is read.
	AutoRefresh bool
	// CacheDir holds registry-cache.json and registry-meta.json.
	CacheDir string
	// PersonalRoot is the user-wide skills installation root.
	PersonalRoot string
	// ProjectRoot is the project-local skills installation root.
	ProjectRoot string
	// ToolVersion is recorded in every skill manifest this process writes.
	ToolVersion string
}

// Option configures a Config.
type Option func(*Config)

// WithRegistryURL overrides the remote registry endpoint.
func WithRegistryURL(url string) Option {
	return func(c *Config) { c.RegistryURL = url }
}

// WithFetchTimeout overrides the fetch timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Config) { c.FetchTimeout = d }
}

// WithCacheTTL overrides the cache freshness window.
func WithCacheTTL(d time.Duration) Option {
	return func(c *Config) { c.CacheTTL = d }
}

// WithAutoRefresh toggles the background refresh on stale reads.
func WithAutoRefresh(enabled bool) Option {
	return func(c *Config) { c.AutoRefresh = enabled }
}

// WithCacheDir overrides the cache directory.
func WithCacheDir(dir string) Option {
	return func(c *Config) { c.CacheDir = dir }
}

// WithPersonalRoot overrides the user-wide skills root.
func WithPersonalRoot(dir string) Option {
	return func(c *Config) { c.PersonalRoot = dir }
}

// WithProjectRoot overrides the project-local skills root.
func WithProjectRoot(dir string) Option {
	return func(c *Config) { c.ProjectRoot = dir }
}

// WithToolVersion sets the tool version recorded in skill manifests.
func WithToolVersion(v string) Option {
	return func(c *Config) { c.ToolVersion = v }
}

// New builds a Config from XDG-derived defaults, environment overrides read
// through envReader, and any explicit options (applied last, highest
// precedence).
//
// Recognized environment variables: JFP_REGISTRY_URL, JFP_CACHE_DIR.
func New(envReader env.Reader, opts ...Option) *Config {
	cfg := &Config{
		RegistryURL:  DefaultRegistryURL,
		FetchTimeout: DefaultFetchTimeout,
		CacheTTL:     DefaultCacheTTL,
		AutoRefresh:  true,
		CacheDir:     filepath.Join(xdg.CacheHome, "jfp"),
		PersonalRoot: filepath.Join(xdg.DataHome, "jfp", "skills"),
		ProjectRoot:  filepath.Join(workingDir(), ".jfp", "skills"),
		ToolVersion:  "dev",
	}

	if url := envReader.Getenv("JFP_REGISTRY_URL"); url != "" {
		if err := validation.ValidateRegistryURL(url); err != nil {
			logger.Warnw("ignoring invalid JFP_REGISTRY_URL", "error", err)
		} else {
			cfg.RegistryURL = url
		}
	}
	if dir := envReader.Getenv("JFP_CACHE_DIR"); dir != "" {
		cfg.CacheDir = dir
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// CachePath returns the path of the cached registry payload document.
func (c *Config) CachePath() string {
	return filepath.Join(c.CacheDir, cacheFileName)
}

// MetaPath returns the path of the registry metadata document.
func (c *Config) MetaPath() string {
	return filepath.Join(c.CacheDir, metaFileName)
}

// ManifestPath returns the skill manifest path within the given root.
func (c *Config) ManifestPath(root string) string {
	return filepath.Join(root, ManifestFileName)
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
