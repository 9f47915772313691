// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

package skills

import (
	"embed"
	"fmt"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed data/skill-manifest.schema.json
var embeddedSchemaFS embed.FS

// Entry records one generated skill file at the moment this tool last wrote
// it. Hash is the digest of the file's exact bytes at install time; any
// divergence from the on-disk content signals a user edit.
type Entry struct {
	// ID is the prompt id the file was generated from.
	ID string `json:"id"`
	// Kind is the kind of generated artifact (currently always "prompt").
	Kind string `json:"kind"`
	// Version is the semantic version of the source prompt.
	Version string `json:"version"`
	// Hash is the content digest of the generated file, e.g. "sha256:...".
	Hash string `json:"hash"`
	// UpdatedAt is when this tool last wrote the file.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Manifest is the ledger of generated skill files within one installation
// root. There is one manifest per root (personal and project-local), never
// merged. Entries are unique by id.
//
// Manifests are immutable values: Upsert and Remove return a new manifest,
// and the whole document is rewritten atomically on every mutation.
type Manifest struct {
	// GeneratedAt is when the manifest document was last rewritten.
	GeneratedAt time.Time `json:"generatedAt"`
	// ToolVersion is the version of the tool that wrote the document.
	ToolVersion string `json:"toolVersion"`
	// Entries lists the installed generated files.
	Entries []Entry `json:"entries"`
}

// EntryByID returns the entry for the given id, if present.
func (m *Manifest) EntryByID(id string) (Entry, bool) {
	if m == nil {
		return Entry{}, false
	}
	for _, e := range m.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Upsert returns a copy of the manifest with entry replacing any existing
// entry of the same id, or appended when the id is new.
func (m Manifest) Upsert(entry Entry) Manifest {
	entries := make([]Entry, len(m.Entries))
	copy(entries, m.Entries)

	for i, e := range entries {
		if e.ID == entry.ID {
			entries[i] = entry
			m.Entries = entries
			return m
		}
	}

	m.Entries = append(entries, entry)
	return m
}

// Remove returns a copy of the manifest without the entry of the given id.
// Removing an absent id is a no-op.
func (m Manifest) Remove(id string) Manifest {
	entries := make([]Entry, 0, len(m.Entries))
	for _, e := range m.Entries {
		if e.ID != id {
			entries = append(entries, e)
		}
	}
	m.Entries = entries
	return m
}

// ValidateManifestBytes validates raw manifest JSON against the manifest
// schema. Store readers treat a document failing validation exactly like a
// missing document.
func ValidateManifestBytes(data []byte) error {
	schemaData, err := embeddedSchemaFS.ReadFile("data/skill-manifest.schema.json")
	if err != nil {
		return fmt.Errorf("failed to read embedded manifest schema: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaData),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("manifest schema validation failed: %w", err)
	}

	if result.Valid() {
		return nil
	}

	return fmt.Errorf("manifest schema validation failed: %s", result.Errors()[0].String())
}
