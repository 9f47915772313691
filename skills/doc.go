// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

// Package skills installs registry prompts as generated skill files and
// tracks them through a per-root manifest.
//
// Each installation root (the personal root and the project-local root)
// carries its own manifest.json recording the content hash of every file
// this tool wrote. Before overwriting, CheckModification compares the file's
// current bytes and its frontmatter generated marker against the manifest so
// that hand-authored or user-edited files are never silently clobbered.
package skills
