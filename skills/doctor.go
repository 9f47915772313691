// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

package skills

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jfplabs/jfp-core/config"
	"github.com/jfplabs/jfp-core/registry/store"
	registry "github.com/jfplabs/jfp-core/registry/types"
)

// Finding severities. An error finding means a document that should be
// usable is not; a warn finding is a divergence worth surfacing.
const (
	SeverityWarn  = "warn"
	SeverityError = "error"
)

// Finding is one diagnostic produced by Doctor.
type Finding struct {
	Severity string
	Message  string
	Path     string
}

// Doctor inspects the cache documents and both installation roots and
// reports anything unreadable, invalid, missing, or hash-divergent. A clean
// setup yields no findings.
func Doctor(cfg *config.Config, now func() time.Time) []Finding {
	if now == nil {
		now = time.Now
	}

	var findings []Finding
	findings = append(findings, checkCacheDocuments(cfg, now)...)
	for _, root := range []string{cfg.PersonalRoot, cfg.ProjectRoot} {
		findings = append(findings, checkRoot(root)...)
	}
	return findings
}

func checkCacheDocuments(cfg *config.Config, now func() time.Time) []Finding {
	var findings []Finding

	payloadPath := cfg.CachePath()
	if _, err := os.Stat(payloadPath); err != nil {
		findings = append(findings, Finding{
			Severity: SeverityWarn,
			Message:  "no cached registry payload; first load will fetch or fall back to bundled prompts",
			Path:     payloadPath,
		})
	} else if store.Read[registry.Payload](payloadPath, store.WithValidator(registry.ValidatePayloadBytes)) == nil {
		findings = append(findings, Finding{
			Severity: SeverityError,
			Message:  "cached registry payload is unreadable or fails schema validation",
			Path:     payloadPath,
		})
	}

	metaPath := cfg.MetaPath()
	if _, err := os.Stat(metaPath); err != nil {
		return findings
	}
	meta := store.Read[registry.Meta](metaPath, store.WithValidator(registry.ValidateMetaBytes))
	if meta == nil {
		findings = append(findings, Finding{
			Severity: SeverityError,
			Message:  "cache metadata is unreadable or fails schema validation",
			Path:     metaPath,
		})
		return findings
	}
	if age := now().Sub(meta.FetchedAt); age > cfg.CacheTTL {
		findings = append(findings, Finding{
			Severity: SeverityWarn,
			Message:  fmt.Sprintf("cached registry payload is stale (fetched %s ago)", age.Round(time.Minute)),
			Path:     metaPath,
		})
	}
	return findings
}

func checkRoot(root string) []Finding {
	if root == "" {
		return nil
	}

	manifestPath := filepath.Join(root, ManifestFileName)
	if _, err := os.Stat(manifestPath); err != nil {
		// No manifest means nothing was installed into this root.
		return nil
	}

	manifest := store.Read[Manifest](manifestPath, store.WithValidator(ValidateManifestBytes))
	if manifest == nil {
		return []Finding{{
			Severity: SeverityError,
			Message:  "skill manifest is unreadable or fails schema validation",
			Path:     manifestPath,
		}}
	}

	var findings []Finding
	for _, entry := range manifest.Entries {
		path, ok := resolveSkillPath(root, entry.ID)
		if !ok {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Message:  fmt.Sprintf("manifest entry %q resolves outside the installation root", entry.ID),
				Path:     manifestPath,
			})
			continue
		}

		check := CheckModification(root, entry.ID, manifest)
		switch {
		case !check.Exists:
			findings = append(findings, Finding{
				Severity: SeverityWarn,
				Message:  fmt.Sprintf("manifest entry %q has no file on disk", entry.ID),
				Path:     path,
			})
		case check.WasModified:
			findings = append(findings, Finding{
				Severity: SeverityWarn,
				Message:  fmt.Sprintf("skill file %q was edited after install", entry.ID),
				Path:     path,
			})
		}
	}
	return findings
}
