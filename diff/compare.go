package diff

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/sqlc-dev/querydiff/extract"
	"github.com/sqlc-dev/querydiff/parser"
)

// Config controls Compare.
type Config struct {
	// Normalize compares the canonical pretty form of both queries instead
	// of the text as written.
	Normalize bool
	// IgnoreWhitespace trims lines and drops blank lines in the text diff.
	IgnoreWhitespace bool
	// Dialect selects the grammar for both queries.
	Dialect parser.Dialect
	// SemanticDiff enables component extraction and the semantic notices.
	SemanticDiff bool
}

// DefaultConfig enables every stage with the auto dialect.
func DefaultConfig() Config {
	return Config{
		Normalize:        true,
		IgnoreWhitespace: true,
		Dialect:          parser.DialectAuto,
		SemanticDiff:     true,
	}
}

// ComparisonResult is the outcome of Compare.
type ComparisonResult struct {
	TextDiff    string   `json:"text_diff" yaml:"text_diff"`
	Notices     []Notice `json:"notices" yaml:"notices"`
	NormalizedA string   `json:"normalized_a,omitempty" yaml:"normalized_a,omitempty"`
	NormalizedB string   `json:"normalized_b,omitempty" yaml:"normalized_b,omitempty"`
	ParseError  string   `json:"parse_error,omitempty" yaml:"parse_error,omitempty"`
}

// Compare diffs two queries. It never fails: when either query cannot be
// parsed or extracted, the semantic stage is replaced by a single GENERAL
// notice and the text diff is still produced.
func Compare(sqlA, sqlB string, cfg Config) ComparisonResult {
	var res ComparisonResult
	if cfg.SemanticDiff {
		if err := semantic(sqlA, sqlB, cfg, &res); err != nil {
			log.Debug().Err(err).Msg("semantic diff unavailable")
			res.ParseError = describeError(err)
			res.Notices = []Notice{{
				Category: CategoryGeneral,
				Severity: SeverityWarn,
				Summary:  "Parse error - semantic diff unavailable",
				Details:  "Semantic diff unavailable: " + res.ParseError,
			}}
		}
	}

	if res.Notices == nil {
		res.Notices = []Notice{}
	}

	textA, textB := sqlA, sqlB
	if res.NormalizedA != "" && res.NormalizedB != "" {
		textA, textB = res.NormalizedA, res.NormalizedB
	}
	res.TextDiff = Text(textA, textB, cfg.IgnoreWhitespace)
	return res
}

// semantic fills in the normalized forms and notices of res. Panics raised
// while parsing or extracting are returned as errors.
func semantic(sqlA, sqlB string, cfg Config, res *ComparisonResult) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()

	qa, err := parser.Parse(sqlA, cfg.Dialect)
	if err != nil {
		return errors.Wrap(err, "SQL A")
	}
	qb, err := parser.Parse(sqlB, cfg.Dialect)
	if err != nil {
		return errors.Wrap(err, "SQL B")
	}

	if cfg.Normalize {
		normA, normB := parser.Normalize(qa), parser.Normalize(qb)
		if qa, err = parser.Parse(normA, cfg.Dialect); err != nil {
			return errors.Wrap(err, "normalized SQL A")
		}
		if qb, err = parser.Parse(normB, cfg.Dialect); err != nil {
			return errors.Wrap(err, "normalized SQL B")
		}
		res.NormalizedA, res.NormalizedB = normA, normB
	}

	ca, err := extract.FromQuery(qa)
	if err != nil {
		return errors.Wrap(err, "SQL A")
	}
	cb, err := extract.FromQuery(qb)
	if err != nil {
		return errors.Wrap(err, "SQL B")
	}
	res.Notices = Semantic(ca, cb)
	return nil
}

// PanicError carries a panic recovered while comparing queries.
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// describeError renders err as "<Type>: <message>", naming the
// package-qualified type of the underlying cause. Unexported causes, such as
// those of errors.New, are named Error.
func describeError(err error) string {
	name := strings.TrimPrefix(fmt.Sprintf("%T", errors.Cause(err)), "*")
	if i := strings.LastIndexByte(name, '.'); i < 0 || !unicode.IsUpper([]rune(name[i+1:])[0]) {
		name = "Error"
	}
	return name + ": " + err.Error()
}
