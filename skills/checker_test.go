// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const generatedFile = `---
id: code-review
title: Code Review
version: 1.0.0
generated: true
---

Review the following code.
`

const handAuthoredFile = `---
id: code-review
title: My Own Review Prompt
---

Do it my way.
`

func writeSkillFile(t *testing.T, root, id, content string) string {
	t.Helper()
	path := filepath.Join(root, id+skillFileExt)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func manifestFor(id, content string) *Manifest {
	return &Manifest{
		Entries: []Entry{{
			ID:   id,
			Kind: EntryKindPrompt,
			Hash: digest.FromBytes([]byte(content)).String(),
		}},
	}
}

func TestCheckModification(t *testing.T) {
	t.Parallel()

	t.Run("non-existent file is overwritable", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()

		check := CheckModification(root, "code-review", &Manifest{})

		assert.False(t, check.Exists)
		assert.False(t, check.IsToolGenerated)
		assert.False(t, check.WasModified)
		assert.True(t, check.CanOverwrite)
	})

	t.Run("generated unmodified file is overwritable", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeSkillFile(t, root, "code-review", generatedFile)

		check := CheckModification(root, "code-review", manifestFor("code-review", generatedFile))

		assert.True(t, check.Exists)
		assert.True(t, check.IsToolGenerated)
		require.NotNil(t, check.Entry)
		assert.False(t, check.WasModified)
		assert.True(t, check.CanOverwrite)
	})

	t.Run("generated file edited after install is protected", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeSkillFile(t, root, "code-review", generatedFile+"\nMy local tweaks.\n")

		check := CheckModification(root, "code-review", manifestFor("code-review", generatedFile))

		assert.True(t, check.Exists)
		assert.True(t, check.IsToolGenerated)
		assert.True(t, check.WasModified)
		assert.False(t, check.CanOverwrite)
	})

	t.Run("hand-authored file is never overwritable", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeSkillFile(t, root, "code-review", handAuthoredFile)

		check := CheckModification(root, "code-review", &Manifest{})

		assert.True(t, check.Exists)
		assert.False(t, check.IsToolGenerated)
		assert.False(t, check.WasModified)
		assert.False(t, check.CanOverwrite)
	})

	t.Run("generated file without manifest entry is overwritable", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeSkillFile(t, root, "code-review", generatedFile)

		check := CheckModification(root, "code-review", &Manifest{})

		assert.True(t, check.Exists)
		assert.True(t, check.IsToolGenerated)
		assert.Nil(t, check.Entry)
		assert.False(t, check.WasModified)
		assert.True(t, check.CanOverwrite)
	})

	t.Run("nil manifest behaves like empty manifest", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeSkillFile(t, root, "code-review", generatedFile)

		check := CheckModification(root, "code-review", nil)

		assert.True(t, check.CanOverwrite)
	})

	t.Run("path traversal fails closed", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()

		for _, id := range []string{
			"../../etc/passwd",
			"..",
			"/etc/passwd",
			"",
		} {
			check := CheckModification(root, id, &Manifest{})
			assert.False(t, check.Exists, "id %q", id)
			assert.False(t, check.CanOverwrite, "id %q", id)
		}
	})
}

func TestResolveSkillPath(t *testing.T) {
	t.Parallel()

	root := filepath.Join("some", "root")

	path, ok := resolveSkillPath(root, "code-review")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "code-review.md"), path)

	_, ok = resolveSkillPath(root, "../escape")
	assert.False(t, ok)

	_, ok = resolveSkillPath(root, "nested/skill")
	assert.True(t, ok)
}
