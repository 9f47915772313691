// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	registry "github.com/jfplabs/jfp-core/registry/types"
)

//go:embed data/bundled-prompts.json
var bundledFS embed.FS

var (
	bundledOnce    sync.Once
	bundledPrompts []registry.Prompt
)

// BundledPrompts returns the packaged default prompt set, the terminal
// fallback when neither cache nor remote can produce prompts. The set is
// embedded at build time, so it is always present.
func BundledPrompts() []registry.Prompt {
	bundledOnce.Do(func() {
		data, err := bundledFS.ReadFile("data/bundled-prompts.json")
		if err != nil {
			panic(fmt.Sprintf("loader: embedded bundled prompts missing: %v", err))
		}
		var payload registry.Payload
		if err := json.Unmarshal(data, &payload); err != nil {
			panic(fmt.Sprintf("loader: embedded bundled prompts malformed: %v", err))
		}
		bundledPrompts = payload.Prompts
	})

	// Hand out a copy so callers cannot mutate the shared set.
	out := make([]registry.Prompt, len(bundledPrompts))
	copy(out, bundledPrompts)
	return out
}
