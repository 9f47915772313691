// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

package skills

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/opencontainers/go-digest"
)

// skillFileExt is the extension of generated skill files within a root.
const skillFileExt = ".md"

// Check is the result of inspecting one skill file before overwriting or
// reporting on it.
type Check struct {
	// Exists reports whether the file is present inside the root. Ids that
	// would escape the root are reported as non-existent.
	Exists bool
	// IsToolGenerated reports whether the file carries the generated
	// frontmatter marker. It is judged from the file content alone,
	// independent of the manifest.
	IsToolGenerated bool
	// Entry is the manifest entry for the id, if one exists.
	Entry *Entry
	// CurrentHash is the digest of the file's current bytes.
	CurrentHash string
	// WasModified reports whether the file's bytes diverged from the hash
	// recorded in the manifest. It is false when there is no file or no
	// manifest entry to compare against.
	WasModified bool
	// CanOverwrite reports whether install may rewrite the file without a
	// force flag: the file does not exist, or it is tool-generated and
	// unmodified. Hand-authored and user-edited files are protected.
	CanOverwrite bool
}

// resolveSkillPath maps an id to its file path inside root. It returns false
// for any id that is empty or would resolve outside root.
func resolveSkillPath(root, id string) (string, bool) {
	if id == "" || strings.ContainsRune(id, 0) {
		return "", false
	}
	// Both the id and the derived file name must stay inside the root;
	// checking only the name would let ".." slip through as "..md".
	if !filepath.IsLocal(id) || !filepath.IsLocal(id+skillFileExt) {
		return "", false
	}
	return filepath.Join(root, id+skillFileExt), true
}

// CheckModification inspects the skill file for id under root and compares it
// against the manifest. It never returns an error: unsafe ids and unreadable
// files fail closed as not overwritable, and a missing file is always
// overwritable.
func CheckModification(root, id string, manifest *Manifest) Check {
	path, ok := resolveSkillPath(root, id)
	if !ok {
		return Check{}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Check{CanOverwrite: true}
		}
		// Unreadable but present: refuse to clobber what we cannot inspect.
		return Check{Exists: true}
	}

	check := Check{
		Exists:      true,
		CurrentHash: digest.FromBytes(data).String(),
	}

	if fm, err := ParseFrontMatter(data); err == nil {
		check.IsToolGenerated = fm.Generated
	}

	if entry, ok := manifest.EntryByID(id); ok {
		check.Entry = &entry
		check.WasModified = entry.Hash != check.CurrentHash
	}

	check.CanOverwrite = check.IsToolGenerated && !check.WasModified
	return check
}
