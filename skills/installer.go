// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

package skills

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/opencontainers/go-digest"
	"golang.org/x/term"

	"github.com/jfplabs/jfp-core/logger"
	"github.com/jfplabs/jfp-core/registry/store"
	registry "github.com/jfplabs/jfp-core/registry/types"
)

// ManifestFileName is the name of the manifest document inside each
// installation root.
const ManifestFileName = "manifest.json"

// EntryKindPrompt is the kind recorded for skill files generated from
// registry prompts.
const EntryKindPrompt = "prompt"

// ErrConfirmationRequired is returned by Uninstall when the process is not
// attached to an interactive terminal and no explicit confirmation was
// given. Nothing is deleted in that case.
var ErrConfirmationRequired = errors.New("uninstall requires an interactive terminal or explicit confirmation")

// ItemStatus explains why one id landed in the skipped or failed bucket.
type ItemStatus struct {
	ID     string
	Reason string
}

// Report is the per-id outcome of an Install or Uninstall batch. A conflict
// or an unknown id is a skip, not a failure; only the Failed bucket makes
// the batch a process-level failure. For Uninstall the Installed bucket
// lists the ids whose file was removed.
type Report struct {
	Installed []string
	Skipped   []ItemStatus
	Failed    []ItemStatus
}

// OK reports whether the batch completed without failures. Skipped ids do
// not count against it.
func (r Report) OK() bool {
	return len(r.Failed) == 0
}

// Installer writes generated skill files into a single installation root and
// keeps that root's manifest in step with what it writes.
type Installer struct {
	root        string
	renderer    Renderer
	toolVersion string
	now         func() time.Time
	isTerminal  func() bool
}

// InstallerOption configures an Installer.
type InstallerOption func(*Installer)

// WithRenderer replaces the default Markdown renderer.
func WithRenderer(r Renderer) InstallerOption {
	return func(i *Installer) {
		i.renderer = r
	}
}

// WithClock replaces the timestamp source. Used in tests.
func WithClock(now func() time.Time) InstallerOption {
	return func(i *Installer) {
		i.now = now
	}
}

// WithTerminalCheck replaces the interactive-terminal detection. Used in
// tests.
func WithTerminalCheck(fn func() bool) InstallerOption {
	return func(i *Installer) {
		i.isTerminal = fn
	}
}

// NewInstaller creates an Installer for the given root.
func NewInstaller(root, toolVersion string, opts ...InstallerOption) *Installer {
	installer := &Installer{
		root:        root,
		renderer:    MarkdownRenderer{},
		toolVersion: toolVersion,
		now:         time.Now,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
	for _, opt := range opts {
		opt(installer)
	}
	return installer
}

// ManifestPath returns the path of the manifest document under the root.
func (i *Installer) ManifestPath() string {
	return filepath.Join(i.root, ManifestFileName)
}

// Manifest reads the root's manifest. A missing or invalid document yields
// an empty manifest.
func (i *Installer) Manifest() Manifest {
	if m := store.Read[Manifest](i.ManifestPath(), store.WithValidator(ValidateManifestBytes)); m != nil {
		return *m
	}
	return Manifest{}
}

// Install writes a skill file for each requested id found in prompts. Ids
// whose file conflicts with a user-authored or user-edited file are skipped
// unless force is set; unknown ids and unsafe ids are skipped and failed
// respectively. The manifest is rewritten once at the end when anything was
// installed; a manifest write failure is the only error returned.
func (i *Installer) Install(ids []string, prompts []registry.Prompt, force bool) (Report, error) {
	byID := make(map[string]registry.Prompt, len(prompts))
	for _, p := range prompts {
		byID[p.ID] = p
	}

	manifest := i.Manifest()
	var report Report
	changed := false

	for _, id := range ids {
		prompt, ok := byID[id]
		if !ok {
			report.Skipped = append(report.Skipped, ItemStatus{ID: id, Reason: "unknown prompt id"})
			continue
		}

		path, ok := resolveSkillPath(i.root, id)
		if !ok {
			report.Failed = append(report.Failed, ItemStatus{ID: id, Reason: "id resolves outside installation root"})
			continue
		}

		check := CheckModification(i.root, id, &manifest)
		if !check.CanOverwrite && !force {
			reason := "file was not generated by this tool"
			if check.WasModified {
				reason = "file was modified after install"
			}
			report.Skipped = append(report.Skipped, ItemStatus{ID: id, Reason: reason})
			continue
		}

		content, err := i.renderer.Render(prompt)
		if err != nil {
			report.Failed = append(report.Failed, ItemStatus{ID: id, Reason: fmt.Sprintf("render: %v", err)})
			continue
		}

		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			report.Failed = append(report.Failed, ItemStatus{ID: id, Reason: fmt.Sprintf("create directory: %v", err)})
			continue
		}
		if err := os.WriteFile(path, content, 0600); err != nil {
			report.Failed = append(report.Failed, ItemStatus{ID: id, Reason: fmt.Sprintf("write file: %v", err)})
			continue
		}

		manifest = manifest.Upsert(Entry{
			ID:        id,
			Kind:      EntryKindPrompt,
			Version:   prompt.Version,
			Hash:      digest.FromBytes(content).String(),
			UpdatedAt: i.now().UTC(),
		})
		report.Installed = append(report.Installed, id)
		changed = true
		logger.Debugw("installed skill file", "id", id, "path", path)
	}

	if changed {
		if err := i.writeManifest(manifest); err != nil {
			return report, err
		}
	}
	return report, nil
}

// Uninstall removes the skill files for the requested ids along with their
// manifest entries. When running without an interactive terminal it refuses
// to proceed unless confirmed is set, before touching the disk. Removal does
// not consult the modification check: once allowed, user-edited generated
// files are removed too.
func (i *Installer) Uninstall(ids []string, confirmed bool) (Report, error) {
	if !confirmed && !i.isTerminal() {
		return Report{}, ErrConfirmationRequired
	}

	manifest := i.Manifest()
	var report Report
	changed := false

	for _, id := range ids {
		path, ok := resolveSkillPath(i.root, id)
		if !ok {
			report.Failed = append(report.Failed, ItemStatus{ID: id, Reason: "id resolves outside installation root"})
			continue
		}

		_, hadEntry := manifest.EntryByID(id)

		err := os.Remove(path)
		switch {
		case err == nil:
			report.Installed = append(report.Installed, id)
		case os.IsNotExist(err):
			report.Skipped = append(report.Skipped, ItemStatus{ID: id, Reason: "file not found"})
		default:
			report.Failed = append(report.Failed, ItemStatus{ID: id, Reason: fmt.Sprintf("remove file: %v", err)})
			continue
		}

		if hadEntry {
			manifest = manifest.Remove(id)
			changed = true
		}
	}

	if changed {
		if err := i.writeManifest(manifest); err != nil {
			return report, err
		}
	}
	return report, nil
}

func (i *Installer) writeManifest(m Manifest) error {
	m.GeneratedAt = i.now().UTC()
	m.ToolVersion = i.toolVersion
	if m.Entries == nil {
		m.Entries = []Entry{}
	}
	if err := store.Write(i.ManifestPath(), m); err != nil {
		return fmt.Errorf("persisting skill manifest: %w", err)
	}
	return nil
}
