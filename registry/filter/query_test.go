// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	t.Parallel()

	prompts := samplePrompts()

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"empty query matches all", "", 3},
		{"case-insensitive title", "CODE", 1},
		{"matches tag", "summary", 1},
		{"matches id", "explain-", 1},
		{"no match", "zzzz", 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Len(t, Search(prompts, tt.query), tt.want)
		})
	}
}

func TestCategoriesAndTags(t *testing.T) {
	t.Parallel()

	prompts := samplePrompts()

	assert.Equal(t, []string{"debugging", "engineering", "writing"}, Categories(prompts))
	assert.Equal(t, []string{"errors", "quality", "review", "summary"}, Tags(prompts))

	assert.Empty(t, Categories(nil))
	assert.Empty(t, Tags(nil))
}

func TestByID(t *testing.T) {
	t.Parallel()

	prompts := samplePrompts()

	got, ok := ByID(prompts, "explain-error")
	require.True(t, ok)
	assert.Equal(t, "Explain This Error", got.Title)

	_, ok = ByID(prompts, "missing")
	assert.False(t, ok)
}

func TestRandom(t *testing.T) {
	t.Parallel()

	prompts := samplePrompts()

	got, ok := Random(prompts)
	require.True(t, ok)
	_, found := ByID(prompts, got.ID)
	assert.True(t, found, "random pick must come from the input list")

	_, ok = Random(nil)
	assert.False(t, ok)
}
