// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"math/rand"
	"sort"
	"strings"

	registry "github.com/jfplabs/jfp-core/registry/types"
)

// Search returns the prompts matching query case-insensitively in any of id,
// title, description, content, or tags. An empty query matches everything.
func Search(prompts []registry.Prompt, query string) []registry.Prompt {
	if query == "" {
		return prompts
	}
	needle := strings.ToLower(query)

	var out []registry.Prompt
	for _, p := range prompts {
		if promptMatches(p, needle) {
			out = append(out, p)
		}
	}
	return out
}

func promptMatches(p registry.Prompt, needle string) bool {
	for _, field := range []string{p.ID, p.Title, p.Description, p.Content} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Categories returns the sorted set of distinct categories.
func Categories(prompts []registry.Prompt) []string {
	return distinct(prompts, func(p registry.Prompt) []string {
		if p.Category == "" {
			return nil
		}
		return []string{p.Category}
	})
}

// Tags returns the sorted set of distinct tags.
func Tags(prompts []registry.Prompt) []string {
	return distinct(prompts, func(p registry.Prompt) []string {
		return p.Tags
	})
}

// ByID returns the prompt with the given id, if present.
func ByID(prompts []registry.Prompt, id string) (registry.Prompt, bool) {
	for _, p := range prompts {
		if p.ID == id {
			return p, true
		}
	}
	return registry.Prompt{}, false
}

// Random returns a uniformly random prompt from the list.
func Random(prompts []registry.Prompt) (registry.Prompt, bool) {
	if len(prompts) == 0 {
		return registry.Prompt{}, false
	}
	return prompts[rand.Intn(len(prompts))], true
}

func distinct(prompts []registry.Prompt, extract func(registry.Prompt) []string) []string {
	seen := make(map[string]struct{})
	for _, p := range prompts {
		for _, v := range extract(p) {
			seen[v] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
