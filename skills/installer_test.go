// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

package skills

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	registry "github.com/jfplabs/jfp-core/registry/types"
)

var testPrompts = []registry.Prompt{
	{
		ID:      "code-review",
		Title:   "Code Review",
		Version: "1.0.0",
		Content: "Review the following code.",
	},
	{
		ID:      "commit-message",
		Title:   "Commit Message",
		Version: "2.1.0",
		Content: "Write a commit message.",
	},
}

func newTestInstaller(t *testing.T, root string) *Installer {
	t.Helper()
	fixed := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	return NewInstaller(root, "1.0.0",
		WithClock(func() time.Time { return fixed }),
		WithTerminalCheck(func() bool { return false }),
	)
}

func TestInstall(t *testing.T) {
	t.Parallel()

	t.Run("fresh install writes files and manifest", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		installer := newTestInstaller(t, root)

		report, err := installer.Install([]string{"code-review", "commit-message"}, testPrompts, false)
		require.NoError(t, err)
		assert.True(t, report.OK())
		assert.Equal(t, []string{"code-review", "commit-message"}, report.Installed)
		assert.Empty(t, report.Skipped)

		content, err := os.ReadFile(filepath.Join(root, "code-review.md"))
		require.NoError(t, err)
		fm, err := ParseFrontMatter(content)
		require.NoError(t, err)
		assert.True(t, fm.Generated)

		manifest := installer.Manifest()
		require.Len(t, manifest.Entries, 2)
		entry, ok := manifest.EntryByID("code-review")
		require.True(t, ok)
		assert.Equal(t, EntryKindPrompt, entry.Kind)
		assert.Equal(t, "1.0.0", entry.Version)
		assert.Equal(t, digest.FromBytes(content).String(), entry.Hash)
	})

	t.Run("reinstalling an unmodified file rewrites it", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		installer := newTestInstaller(t, root)

		_, err := installer.Install([]string{"code-review"}, testPrompts, false)
		require.NoError(t, err)

		report, err := installer.Install([]string{"code-review"}, testPrompts, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"code-review"}, report.Installed)
		assert.Empty(t, report.Skipped)
	})

	t.Run("user-edited file is skipped", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		installer := newTestInstaller(t, root)

		_, err := installer.Install([]string{"code-review"}, testPrompts, false)
		require.NoError(t, err)

		path := filepath.Join(root, "code-review.md")
		edited, err := os.ReadFile(path)
		require.NoError(t, err)
		edited = append(edited, []byte("\nMy local tweaks.\n")...)
		require.NoError(t, os.WriteFile(path, edited, 0600))

		report, err := installer.Install([]string{"code-review"}, testPrompts, false)
		require.NoError(t, err)
		assert.True(t, report.OK())
		assert.Empty(t, report.Installed)
		require.Len(t, report.Skipped, 1)
		assert.Contains(t, report.Skipped[0].Reason, "modified after install")

		// The edit survived.
		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, edited, after)
	})

	t.Run("force overwrites an edited file", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		installer := newTestInstaller(t, root)

		_, err := installer.Install([]string{"code-review"}, testPrompts, false)
		require.NoError(t, err)
		path := filepath.Join(root, "code-review.md")
		require.NoError(t, os.WriteFile(path, []byte("wrecked"), 0600))

		report, err := installer.Install([]string{"code-review"}, testPrompts, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"code-review"}, report.Installed)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "Review the following code.")
	})

	t.Run("hand-authored file is skipped", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		installer := newTestInstaller(t, root)
		writeSkillFile(t, root, "code-review", handAuthoredFile)

		report, err := installer.Install([]string{"code-review"}, testPrompts, false)
		require.NoError(t, err)
		assert.Empty(t, report.Installed)
		require.Len(t, report.Skipped, 1)
		assert.Contains(t, report.Skipped[0].Reason, "not generated by this tool")
	})

	t.Run("unknown id is skipped", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		installer := newTestInstaller(t, root)

		report, err := installer.Install([]string{"no-such-prompt"}, testPrompts, false)
		require.NoError(t, err)
		assert.True(t, report.OK())
		require.Len(t, report.Skipped, 1)
		assert.Equal(t, "unknown prompt id", report.Skipped[0].Reason)
	})

	t.Run("traversal id is a failure", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		installer := newTestInstaller(t, root)
		prompts := append([]registry.Prompt{{ID: "../../escape", Content: "x"}}, testPrompts...)

		report, err := installer.Install([]string{"../../escape"}, prompts, false)
		require.NoError(t, err)
		assert.False(t, report.OK())
		require.Len(t, report.Failed, 1)
		assert.Contains(t, report.Failed[0].Reason, "outside installation root")
	})
}

func TestUninstall(t *testing.T) {
	t.Parallel()

	t.Run("refuses without terminal or confirmation", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		installer := newTestInstaller(t, root)
		_, err := installer.Install([]string{"code-review"}, testPrompts, false)
		require.NoError(t, err)

		_, err = installer.Uninstall([]string{"code-review"}, false)
		require.ErrorIs(t, err, ErrConfirmationRequired)

		// Nothing was deleted.
		_, err = os.Stat(filepath.Join(root, "code-review.md"))
		require.NoError(t, err)
		assert.Len(t, installer.Manifest().Entries, 1)
	})

	t.Run("confirmed uninstall removes file and entry", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		installer := newTestInstaller(t, root)
		_, err := installer.Install([]string{"code-review", "commit-message"}, testPrompts, false)
		require.NoError(t, err)

		report, err := installer.Uninstall([]string{"code-review"}, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"code-review"}, report.Installed)

		_, err = os.Stat(filepath.Join(root, "code-review.md"))
		assert.True(t, os.IsNotExist(err))

		manifest := installer.Manifest()
		require.Len(t, manifest.Entries, 1)
		assert.Equal(t, "commit-message", manifest.Entries[0].ID)
	})

	t.Run("interactive terminal stands in for confirmation", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		installer := NewInstaller(root, "1.0.0",
			WithTerminalCheck(func() bool { return true }),
		)
		_, err := installer.Install([]string{"code-review"}, testPrompts, false)
		require.NoError(t, err)

		report, err := installer.Uninstall([]string{"code-review"}, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"code-review"}, report.Installed)
	})

	t.Run("removes user-edited generated files too", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		installer := newTestInstaller(t, root)
		_, err := installer.Install([]string{"code-review"}, testPrompts, false)
		require.NoError(t, err)
		path := filepath.Join(root, "code-review.md")
		require.NoError(t, os.WriteFile(path, []byte("edited"), 0600))

		report, err := installer.Uninstall([]string{"code-review"}, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"code-review"}, report.Installed)
		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("missing file is skipped and entry dropped", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		installer := newTestInstaller(t, root)
		_, err := installer.Install([]string{"code-review"}, testPrompts, false)
		require.NoError(t, err)
		require.NoError(t, os.Remove(filepath.Join(root, "code-review.md")))

		report, err := installer.Uninstall([]string{"code-review"}, true)
		require.NoError(t, err)
		assert.Empty(t, report.Installed)
		require.Len(t, report.Skipped, 1)
		assert.Equal(t, "file not found", report.Skipped[0].Reason)
		assert.Empty(t, installer.Manifest().Entries)
	})

	t.Run("traversal id fails without touching disk", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		installer := newTestInstaller(t, root)

		report, err := installer.Uninstall([]string{"../../etc/passwd"}, true)
		require.NoError(t, err)
		assert.False(t, report.OK())
		require.Len(t, report.Failed, 1)
	})
}
