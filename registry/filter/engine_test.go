// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	registry "github.com/jfplabs/jfp-core/registry/types"
)

func samplePrompts() []registry.Prompt {
	return []registry.Prompt{
		{ID: "code-review", Title: "Code Review", Category: "engineering", Tags: []string{"review", "quality"}, Author: "jfp", Version: "1.0.0"},
		{ID: "explain-error", Title: "Explain This Error", Category: "debugging", Tags: []string{"errors"}, Author: "jfp", Version: "1.1.0"},
		{ID: "summarize-doc", Title: "Summarize Document", Category: "writing", Tags: []string{"summary"}, Author: "ana", Version: "2.0.0"},
	}
}

func TestEngine_Filter(t *testing.T) {
	t.Parallel()

	engine := NewEngine()
	prompts := samplePrompts()

	tests := []struct {
		name string
		expr string
		want []string
	}{
		{"by category", `prompt.category == "engineering"`, []string{"code-review"}},
		{"by tag membership", `"errors" in prompt.tags`, []string{"explain-error"}},
		{"by author", `prompt.author == "jfp"`, []string{"code-review", "explain-error"}},
		{"title contains", `prompt.title.contains("Doc")`, []string{"summarize-doc"}},
		{"match all", `true`, []string{"code-review", "explain-error", "summarize-doc"}},
		{"match none", `prompt.category == "nope"`, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := engine.Filter(prompts, tt.expr)
			require.NoError(t, err)

			var ids []string
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestEngine_Compile_ParseError(t *testing.T) {
	t.Parallel()

	engine := NewEngine()
	_, err := engine.Compile("prompt.category ==")
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.True(t, errors.Is(err, ErrExpressionCheck))
	assert.NotEmpty(t, parseErr.Errors)
}

func TestEngine_Compile_CheckError(t *testing.T) {
	t.Parallel()

	engine := NewEngine()
	_, err := engine.Compile(`nonexistent.field == "x"`)
	require.Error(t, err)

	var checkErr *CheckError
	assert.True(t, errors.As(err, &checkErr))
}

func TestEngine_Compile_TooLong(t *testing.T) {
	t.Parallel()

	engine := NewEngine().WithMaxExpressionLength(10)
	_, err := engine.Compile(`prompt.category == "engineering"`)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExpressionCheck))
}

func TestEngine_Filter_NonBooleanExpression(t *testing.T) {
	t.Parallel()

	engine := NewEngine()
	// Compiles fine but evaluates to a string, so every prompt is excluded.
	got, err := engine.Filter(samplePrompts(), `prompt.category`)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEngine_Check(t *testing.T) {
	t.Parallel()

	engine := NewEngine()
	assert.NoError(t, engine.Check(`prompt.id != ""`))
	assert.Error(t, engine.Check(`prompt.id ==`))
}
