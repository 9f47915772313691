// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

// Package filter provides expression-based and plain-text selection over
// prompt collections, backing the list and search operations.
package filter

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	registry "github.com/jfplabs/jfp-core/registry/types"
)

const (
	// DefaultMaxExpressionLength is the maximum allowed length for a filter
	// expression. This limit prevents DoS via excessively long expressions.
	DefaultMaxExpressionLength = 10000

	// DefaultCostLimit is the default runtime cost limit for expression
	// evaluation, preventing DoS via expensive operations.
	DefaultCostLimit = 1000000
)

// Engine compiles and evaluates CEL filter expressions against prompts. An
// expression sees one variable, `prompt`, a map carrying the prompt's
// fields:
//
//	prompt.category == "engineering" && "review" in prompt.tags
//
// Engine is safe for concurrent use from multiple goroutines.
type Engine struct {
	envCache            *envCache
	maxExpressionLength int
	costLimit           uint64
}

// envCache holds a lazily-initialized CEL environment.
type envCache struct {
	once sync.Once
	env  *cel.Env
	err  error
}

// CompiledExpression is a pre-compiled filter ready for evaluation.
type CompiledExpression struct {
	source  string
	program cel.Program
}

// Source returns the original expression source string.
func (ce *CompiledExpression) Source() string {
	return ce.source
}

// NewEngine creates a filter engine with default safety limits.
func NewEngine() *Engine {
	return &Engine{
		envCache:            &envCache{},
		maxExpressionLength: DefaultMaxExpressionLength,
		costLimit:           DefaultCostLimit,
	}
}

// WithMaxExpressionLength sets the maximum allowed expression length.
func (e *Engine) WithMaxExpressionLength(maxLen int) *Engine {
	e.maxExpressionLength = maxLen
	return e
}

// WithCostLimit sets the runtime cost limit for expression evaluation.
func (e *Engine) WithCostLimit(limit uint64) *Engine {
	e.costLimit = limit
	return e
}

// getEnv returns the CEL environment, creating it lazily on first access.
func (e *Engine) getEnv() (*cel.Env, error) {
	e.envCache.once.Do(func() {
		e.envCache.env, e.envCache.err = cel.NewEnv(
			cel.Variable("prompt", cel.MapType(cel.StringType, cel.DynType)),
		)
	})
	return e.envCache.env, e.envCache.err
}

// Compile parses and type-checks a filter expression, returning a
// CompiledExpression that can be evaluated against many prompts.
//
// Returns an error when the expression exceeds the maximum length, a
// ParseError on syntax errors, or a CheckError on type errors.
func (e *Engine) Compile(expr string) (*CompiledExpression, error) {
	if len(expr) > e.maxExpressionLength {
		return nil, fmt.Errorf("%w: expression length %d exceeds maximum of %d",
			ErrExpressionCheck, len(expr), e.maxExpressionLength)
	}

	env, err := e.getEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to get CEL environment: %w", err)
	}

	parsedAst, issues := env.Parse(expr)
	if issues.Err() != nil {
		return nil, newParseError(expr, issues)
	}

	checkedAst, issues := env.Check(parsedAst)
	if issues.Err() != nil {
		return nil, newCheckError(expr, issues)
	}

	program, err := env.Program(checkedAst, cel.CostLimit(e.costLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program for %q: %w", expr, err)
	}

	return &CompiledExpression{
		source:  expr,
		program: program,
	}, nil
}

// Check verifies that a filter expression is valid without creating a
// compiled program. Useful for validating saved filters up front.
func (e *Engine) Check(expr string) error {
	_, err := e.Compile(expr)
	return err
}

// Filter returns the prompts for which the expression evaluates to true.
// Evaluation errors on individual prompts (for example a missing optional
// field reference) exclude that prompt rather than failing the whole call.
func (e *Engine) Filter(prompts []registry.Prompt, expr string) ([]registry.Prompt, error) {
	compiled, err := e.Compile(expr)
	if err != nil {
		return nil, err
	}

	var out []registry.Prompt
	for _, prompt := range prompts {
		keep, err := compiled.EvaluateBool(promptActivation(prompt))
		if err != nil {
			continue
		}
		if keep {
			out = append(out, prompt)
		}
	}
	return out, nil
}

// EvaluateBool executes the compiled expression and returns the result as a
// bool. Returns an error if the expression does not evaluate to a boolean.
func (ce *CompiledExpression) EvaluateBool(ctx map[string]any) (bool, error) {
	out, _, err := ce.program.Eval(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrEvaluation, err)
	}

	boolResult, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: expected bool, got %T", ErrInvalidResult, out.Value())
	}

	return boolResult, nil
}

// promptActivation exposes a prompt's fields to the expression environment.
func promptActivation(p registry.Prompt) map[string]any {
	tags := make([]any, len(p.Tags))
	for i, tag := range p.Tags {
		tags[i] = tag
	}

	fields := map[string]any{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
		"content":     p.Content,
		"category":    p.Category,
		"tags":        tags,
		"author":      p.Author,
		"version":     p.Version,
	}

	return map[string]any{"prompt": fields}
}
