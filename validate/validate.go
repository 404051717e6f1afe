// Package validate checks SQL text for defects that a lenient parser may
// accept, and beautifies queries that pass.
//
// Validation combines two independent passes. The syntax pass runs the
// strict parser and compares the query against its re-serialization. The
// text pass runs line and token heuristics over the raw text. Their
// findings are concatenated; every check runs on every call.
package validate

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/sqlc-dev/querydiff/parser"
)

// Validate reports whether sql is well formed, together with every
// problem found.
func Validate(sql string, dialect parser.Dialect) (bool, []ValidationError) {
	if strings.TrimSpace(sql) == "" {
		return false, []ValidationError{{Kind: EmptyQuery, Message: "SQL query is empty"}}
	}

	errs := checkSyntax(sql, dialect)
	errs = append(errs, checkText(sql)...)

	log.Debug().Str("dialect", string(dialect)).Int("errors", len(errs)).Msg("validated query")
	return len(errs) == 0, errs
}

// checkSyntax runs the strict parser and, when it succeeds, the
// content-loss comparison against the re-serialized query.
func checkSyntax(sql string, dialect parser.Dialect) []ValidationError {
	q, err := parser.Parse(sql, dialect)
	if err != nil {
		return []ValidationError{parseFailure(err)}
	}

	loss := detectLoss(sql, parser.Compact(q))
	if loss == nil {
		return nil
	}
	var errs []ValidationError
	if len(loss.Literals) > 0 {
		errs = append(errs, ValidationError{Kind: ContentLoss, Message: literalLossMessage(loss.Literals)})
	}
	if loss.TokenLoss() {
		errs = append(errs, ValidationError{Kind: ContentLoss, Message: tokenLossMessage(loss.Kept, loss.Total)})
	}
	return errs
}

func parseFailure(err error) ValidationError {
	var perr *parser.Error
	if errors.As(err, &perr) {
		return ValidationError{Kind: ParseFailure, Message: perr.Msg, Line: perr.Line, Column: perr.Column}
	}
	return ValidationError{Kind: ParseFailure, Message: err.Error()}
}

// Beautify returns sql re-serialized with one clause per line. It fails
// with *parser.Error when sql does not parse and with *ContentLossError
// when the beautified text lost literals or tokens.
func Beautify(sql string, dialect parser.Dialect) (string, error) {
	q, err := parser.Parse(sql, dialect)
	if err != nil {
		return "", err
	}
	out := parser.Pretty(q)
	if loss := detectLoss(sql, out); loss != nil {
		return "", loss
	}
	return out, nil
}

// beautify is replaced in tests to force a failure after validation.
var beautify = Beautify

// ValidateAndBeautify validates sql and, when it is valid, beautifies it.
// On failure the original text is returned unchanged. A query that
// validates but cannot be beautified is reported as invalid with a
// BeautificationFailure error appended.
func ValidateAndBeautify(sql string, dialect parser.Dialect) (bool, string, []ValidationError) {
	ok, errs := Validate(sql, dialect)
	if !ok {
		return false, sql, errs
	}
	out, err := beautify(sql, dialect)
	if err != nil {
		log.Debug().Err(err).Msg("beautification failed after successful validation")
		errs = append(errs, ValidationError{
			Kind:    BeautificationFailure,
			Message: "Beautification failed: " + err.Error(),
		})
		return false, sql, errs
	}
	return true, out, nil
}
