package validate

import (
	"fmt"
	"strings"
)

// Kind classifies a validation error.
type Kind string

const (
	// EmptyQuery is reported for blank input.
	EmptyQuery Kind = "EMPTY_QUERY"
	// ParseFailure is reported when the strict parser rejects the text.
	ParseFailure Kind = "PARSE_FAILURE"
	// StructuralDefect covers the text heuristics: imbalance, typos,
	// missing operators, incomplete keywords, empty clauses and CASE chains.
	StructuralDefect Kind = "STRUCTURAL_DEFECT"
	// ContentLoss is reported when re-serializing the parsed query drops
	// literals or a large share of tokens.
	ContentLoss Kind = "CONTENT_LOSS"
	// BeautificationFailure is reported when validation passed but the
	// query could not be beautified safely.
	BeautificationFailure Kind = "BEAUTIFICATION_FAILURE"
)

// ValidationError is a single diagnostic. Line and Column are 1-based; 0
// means unknown.
type ValidationError struct {
	Kind    Kind   `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column  int    `json:"column,omitempty" yaml:"column,omitempty"`
}

func (e ValidationError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("Line %d, Column %d: %s", e.Line, e.Column, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("Line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ContentLossError reports that re-serializing a parsed query lost content
// the parser silently dropped.
type ContentLossError struct {
	// Literals are the quoted string literals present only in the original.
	Literals []string
	// Kept and Total are the significant token counts of the regenerated
	// and original text.
	Kept, Total int
}

// TokenLoss reports whether the regenerated text kept fewer than the
// minimum share of the original tokens.
func (e *ContentLossError) TokenLoss() bool {
	return float64(e.Kept) < float64(e.Total)*minTokenRatio
}

func (e *ContentLossError) Error() string {
	var parts []string
	if len(e.Literals) > 0 {
		parts = append(parts, literalLossMessage(e.Literals))
	}
	if e.TokenLoss() {
		parts = append(parts, tokenLossMessage(e.Kept, e.Total))
	}
	return strings.Join(parts, "; ")
}

func literalLossMessage(literals []string) string {
	return "SQL contains syntax errors - lost string literals during parsing: " + strings.Join(literals, ", ")
}

func tokenLossMessage(kept, total int) string {
	return fmt.Sprintf("SQL contains syntax errors - significant content lost during parsing (%d of %d tokens kept)", kept, total)
}
