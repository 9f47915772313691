// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

// Package registry contains the core type definitions for the prompt
// registry: the prompt entity, the cached registry payload, and the fetch
// metadata document.
package registry

import (
	"encoding/json"
	"sort"
	"time"
)

// Prompt is a single entry in the prompt registry. Identity is the ID field;
// all merges between sources are keyed on it. Prompts are mutated only by
// full replacement, never patched in place.
type Prompt struct {
	// ID is the globally unique identifier for the prompt.
	ID string `json:"id"`
	// Title is the human-readable display title.
	Title string `json:"title"`
	// Description is a short summary of what the prompt does.
	Description string `json:"description"`
	// Content is the free-text prompt body.
	Content string `json:"content"`
	// Category is the single category the prompt is filed under.
	Category string `json:"category"`
	// Tags are categorization labels to aid discovery and filtering.
	Tags []string `json:"tags,omitempty"`
	// Author identifies who wrote the prompt.
	Author string `json:"author,omitempty"`
	// Version is the semantic version of the prompt.
	Version string `json:"version"`
	// CreatedAt is the optional creation timestamp.
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Payload is the versioned registry bundle as served by the remote endpoint
// and as cached on disk. Bundles and workflows are opaque pass-through
// collections; this subsystem never inspects them.
type Payload struct {
	// Version is the schema version reported by the registry.
	Version string `json:"version"`
	// Prompts is the ordered list of registry prompts.
	Prompts []Prompt `json:"prompts"`
	// Bundles is an opaque collection carried through unchanged.
	Bundles json.RawMessage `json:"bundles,omitempty"`
	// Workflows is an opaque collection carried through unchanged.
	Workflows json.RawMessage `json:"workflows,omitempty"`
}

// Meta describes the provenance of the cached registry payload.
//
// FetchedAt is monotonically non-decreasing across writes from one process.
// ETag, when present, is echoed verbatim on the next conditional fetch.
type Meta struct {
	// Version is the registry schema version at fetch time.
	Version string `json:"version"`
	// ETag is the opaque validator returned by the registry, if any.
	ETag string `json:"etag,omitempty"`
	// FetchedAt is when the payload was last fetched or revalidated.
	FetchedAt time.Time `json:"fetchedAt"`
	// PromptCount is the number of prompts in the cached payload.
	PromptCount int `json:"promptCount"`
}

// PromptByID returns the prompt with the given id, if present.
func (p *Payload) PromptByID(id string) (Prompt, bool) {
	if p == nil {
		return Prompt{}, false
	}
	for _, prompt := range p.Prompts {
		if prompt.ID == id {
			return prompt, true
		}
	}
	return Prompt{}, false
}

// SortPromptsByID sorts a slice of prompts by id.
func SortPromptsByID(prompts []Prompt) {
	sort.Slice(prompts, func(i, j int) bool {
		return prompts[i].ID < prompts[j].ID
	})
}
