// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
)

// Sentinel errors for filter expression handling.
var (
	// ErrExpressionCheck is returned when an expression fails syntax or type checking.
	ErrExpressionCheck = errors.New("filter expression check failed")

	// ErrEvaluation is returned when expression evaluation fails.
	ErrEvaluation = errors.New("filter expression evaluation failed")

	// ErrInvalidResult is returned when the expression returns a non-boolean result.
	ErrInvalidResult = errors.New("filter expression returned invalid result type")
)

// ErrInstance represents one occurrence of an error in a filter expression.
type ErrInstance struct {
	Line int    `json:"line,omitempty"`
	Col  int    `json:"col,omitempty"`
	Msg  string `json:"msg,omitempty"`
}

// ErrDetails carries structured error information for a filter expression.
type ErrDetails struct {
	Errors []ErrInstance `json:"errors,omitempty"`
	Source string        `json:"source,omitempty"`
}

// errDetailsFromCelIssues converts CEL issues to ErrDetails.
func errDetailsFromCelIssues(source string, issues *cel.Issues) ErrDetails {
	var ed ErrDetails

	ed.Source = source
	ed.Errors = make([]ErrInstance, 0, len(issues.Errors()))
	for _, err := range issues.Errors() {
		ed.Errors = append(ed.Errors, ErrInstance{
			Line: err.Location.Line(),
			Col:  err.Location.Column(),
			Msg:  err.Message,
		})
	}

	return ed
}

// ParseError represents an expression syntax error with location information.
type ParseError struct {
	ErrDetails
	original error
}

// Error implements the error interface for ParseError.
func (pe *ParseError) Error() string {
	return fmt.Sprintf("parse error in filter %q: %s", pe.Source, pe.original)
}

// Unwrap returns the underlying error.
func (pe *ParseError) Unwrap() error {
	return pe.original
}

// CheckError represents an expression type-checking error with location information.
type CheckError struct {
	ErrDetails
	original error
}

// Error implements the error interface for CheckError.
func (ce *CheckError) Error() string {
	return fmt.Sprintf("check error in filter %q: %s", ce.Source, ce.original)
}

// Unwrap returns the underlying error.
func (ce *CheckError) Unwrap() error {
	return ce.original
}

// newParseError creates a ParseError from CEL issues.
func newParseError(source string, issues *cel.Issues) error {
	return &ParseError{
		ErrDetails: errDetailsFromCelIssues(source, issues),
		original:   fmt.Errorf("%w: %w", ErrExpressionCheck, issues.Err()),
	}
}

// newCheckError creates a CheckError from CEL issues.
func newCheckError(source string, issues *cel.Issues) error {
	return &CheckError{
		ErrDetails: errDetailsFromCelIssues(source, issues),
		original:   fmt.Errorf("%w: %w", ErrExpressionCheck, issues.Err()),
	}
}
