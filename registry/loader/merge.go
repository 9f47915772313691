// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	registry "github.com/jfplabs/jfp-core/registry/types"
)

// Merge combines two prompt lists keyed by prompt id.
//
// The result preserves base's ordering. An extras entry with a new id is
// appended in extras order; an extras entry whose id already exists in base
// replaces the base entry without moving it. The merge is therefore
// right-biased per id but left-ordered: the base source always leads the
// list, while later sources can both refresh colliding entries and inject
// new ones at the end.
//
// Neither input is mutated.
func Merge(base, extras []registry.Prompt) []registry.Prompt {
	merged := make([]registry.Prompt, len(base), len(base)+len(extras))
	copy(merged, base)

	index := make(map[string]int, len(base))
	for i, p := range base {
		index[p.ID] = i
	}

	for _, p := range extras {
		if i, ok := index[p.ID]; ok {
			merged[i] = p
			continue
		}
		index[p.ID] = len(merged)
		merged = append(merged, p)
	}

	return merged
}
