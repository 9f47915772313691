// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

package skills

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	registry "github.com/jfplabs/jfp-core/registry/types"
)

// FrontMatter is the YAML frontmatter of a generated skill file. The
// Generated marker is what distinguishes files this tool wrote from files a
// user authored by hand; a file without it is never overwritten or removed.
type FrontMatter struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Category    string `yaml:"category,omitempty"`
	Version     string `yaml:"version,omitempty"`
	Generated   bool   `yaml:"generated"`
}

// maxFrontmatterSize limits frontmatter to prevent YAML parsing attacks.
const maxFrontmatterSize = 64 * 1024

var frontmatterDelimiter = []byte("---")

// ParseFrontMatter extracts and parses the YAML frontmatter from a skill
// file's content.
func ParseFrontMatter(content []byte) (*FrontMatter, error) {
	content = bytes.TrimSpace(content)

	if !bytes.HasPrefix(content, frontmatterDelimiter) {
		return nil, fmt.Errorf("skill file must start with YAML frontmatter (---)")
	}

	rest := content[len(frontmatterDelimiter):]
	rest = bytes.TrimPrefix(rest, []byte("\n"))

	endIdx := bytes.Index(rest, frontmatterDelimiter)
	if endIdx == -1 {
		return nil, fmt.Errorf("skill file frontmatter missing closing delimiter (---)")
	}

	fmBytes := rest[:endIdx]

	if len(fmBytes) > maxFrontmatterSize {
		return nil, fmt.Errorf("frontmatter exceeds maximum size of %d bytes", maxFrontmatterSize)
	}

	var fm FrontMatter
	if err := yaml.Unmarshal(fmBytes, &fm); err != nil {
		return nil, fmt.Errorf("parsing frontmatter YAML: %w", err)
	}

	return &fm, nil
}

// Renderer turns a prompt into the bytes of a skill file. Install hashes and
// records whatever the renderer produces without inspecting it further.
type Renderer interface {
	Render(prompt registry.Prompt) ([]byte, error)
}

// MarkdownRenderer renders a prompt as a Markdown skill file with YAML
// frontmatter carrying the generated marker.
type MarkdownRenderer struct{}

// Render implements Renderer.
func (MarkdownRenderer) Render(prompt registry.Prompt) ([]byte, error) {
	fm := FrontMatter{
		ID:          prompt.ID,
		Title:       prompt.Title,
		Description: prompt.Description,
		Category:    prompt.Category,
		Version:     prompt.Version,
		Generated:   true,
	}

	fmBytes, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fmBytes)
	buf.WriteString("---\n\n")
	buf.WriteString(prompt.Content)
	if !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}
