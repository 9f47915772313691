// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jfplabs/jfp-core/logger"
)

// readConfig holds the resolved options for a Read call.
type readConfig struct {
	validate func([]byte) error
}

// ReadOption configures a Read call.
type ReadOption func(*readConfig)

// WithValidator attaches a byte-level validator (typically a JSON schema
// check) that runs before unmarshaling. A document failing validation is
// treated exactly like a missing document.
func WithValidator(validate func([]byte) error) ReadOption {
	return func(c *readConfig) {
		c.validate = validate
	}
}

// Read loads the JSON document at path into a value of type T. It returns
// nil when the file is absent, unreadable, unparsable, or fails the optional
// validator — callers must treat nil as "absence", never as an error.
func Read[T any](path string, opts ...ReadOption) *T {
	var cfg readConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	data, err := os.ReadFile(path) //#nosec G304 -- paths come from explicit configuration
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Debugw("unreadable document treated as absent", "path", path, "error", err)
		}
		return nil
	}

	if cfg.validate != nil {
		if err := cfg.validate(data); err != nil {
			logger.Debugw("invalid document treated as absent", "path", path, "error", err)
			return nil
		}
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		logger.Debugw("unparsable document treated as absent", "path", path, "error", err)
		return nil
	}

	return &value
}

// Write atomically persists v as indented JSON at path. The value is written
// to a sibling temp file with a random suffix, then renamed over the
// destination, so a reader (or a crash) can only ever observe the old
// complete document or the new complete document.
//
// On any failure the temp file is removed best-effort and the original error
// is returned; the destination is left untouched.
func Write(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing document for %s: %w", path, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	// Random suffix keeps concurrent invocations of the tool from clobbering
	// each other's temp files.
	tmp := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString())
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing temp file for %s: %w", path, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Debugw("temp file cleanup failed", "path", tmp, "error", rmErr)
		}
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	return nil
}
