package validate

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"

	"github.com/sqlc-dev/querydiff/internal/normalize"
	"github.com/sqlc-dev/querydiff/lexer"
	"github.com/sqlc-dev/querydiff/token"
)

const (
	maxParenLines = 5
	maxQuoteLines = 10
	// operatorWindow is how many characters before a word are searched for
	// a comparison operator.
	operatorWindow = 10
)

// typos maps common keyword misspellings to their correction.
var typos = map[string]string{
	"SELCT": "SELECT",
	"FORM":  "FROM",
	"WHRE":  "WHERE",
	"GROPU": "GROUP",
	"ODER":  "ORDER",
	"HAVIG": "HAVING",
}

// literalPrefixes are words outside the keyword table that may directly
// precede a string literal.
var literalPrefixes = map[string]bool{
	"DEFAULT":   true,
	"COMMENT":   true,
	"SEPARATOR": true,
	"CHARSET":   true,
	"CHARACTER": true,
}

var comparisonMarkers = []string{"=", ">", "<", "!", "IN", "LIKE"}

// clauseLines are the clause keywords that, alone on a line, must be
// followed by content.
var clauseLines = map[string]bool{
	"SELECT":   true,
	"FROM":     true,
	"WHERE":    true,
	"ORDER BY": true,
	"GROUP BY": true,
	"LIMIT":    true,
	"OFFSET":   true,
	"HAVING":   true,
}

// checkText runs the text heuristics. It never consults the parser.
func checkText(sql string) []ValidationError {
	items := lexer.Significant(sql)
	lines := strings.Split(normalize.StripComments(sql), "\n")

	var errs []ValidationError
	errs = append(errs, checkParens(items)...)
	errs = append(errs, checkQuotes(lines)...)
	errs = append(errs, checkTypos(items)...)
	errs = append(errs, checkMissingOperators(sql, items)...)
	errs = append(errs, checkIncompleteKeywords(lines)...)
	errs = append(errs, checkEmptyClauses(lines)...)
	errs = append(errs, checkCaseBlocks(items)...)

	for _, e := range errs {
		log.Debug().Int("line", e.Line).Str("message", e.Message).Msg("heuristic finding")
	}
	return errs
}

// checkParens matches parentheses outside literals and comments, reporting
// unclosed openers and unmatched closers separately.
func checkParens(items []lexer.Item) []ValidationError {
	var open []int
	var unmatched []int
	opens, closes := 0, 0
	for _, item := range items {
		switch item.Token {
		case token.LPAREN:
			opens++
			open = append(open, item.Pos.Line)
		case token.RPAREN:
			closes++
			if len(open) == 0 {
				unmatched = append(unmatched, item.Pos.Line)
				continue
			}
			open = open[:len(open)-1]
		}
	}

	var errs []ValidationError
	if len(open) > 0 {
		errs = append(errs, ValidationError{
			Kind: StructuralDefect,
			Message: fmt.Sprintf("Unbalanced parentheses: %d opening, %d closing; unclosed '(' on %s",
				opens, closes, lineList(open, maxParenLines)),
			Line: open[0],
		})
	}
	if len(unmatched) > 0 {
		errs = append(errs, ValidationError{
			Kind: StructuralDefect,
			Message: fmt.Sprintf("Unbalanced parentheses: %d opening, %d closing; unmatched ')' on %s",
				opens, closes, lineList(unmatched, maxParenLines)),
			Line: unmatched[0],
		})
	}
	return errs
}

// checkQuotes flags lines that end inside a quoted string. Backslash
// escapes and doubled quotes are honoured, and a quote of one kind inside
// a string of the other kind is ignored.
func checkQuotes(lines []string) []ValidationError {
	var single, double []int
	for i, line := range lines {
		var state rune
		runes := []rune(line)
		for j := 0; j < len(runes); j++ {
			ch := runes[j]
			if ch == '\\' {
				j++
				continue
			}
			if ch != '\'' && ch != '"' {
				continue
			}
			switch {
			case state == 0:
				state = ch
			case ch == state && j+1 < len(runes) && runes[j+1] == state:
				j++
			case ch == state:
				state = 0
			}
		}
		switch state {
		case '\'':
			single = append(single, i+1)
		case '"':
			double = append(double, i+1)
		}
	}

	var errs []ValidationError
	if len(single) > 0 {
		errs = append(errs, ValidationError{
			Kind:    StructuralDefect,
			Message: "Unbalanced single quotes on " + lineList(single, maxQuoteLines),
			Line:    single[0],
		})
	}
	if len(double) > 0 {
		errs = append(errs, ValidationError{
			Kind:    StructuralDefect,
			Message: "Unbalanced double quotes on " + lineList(double, maxQuoteLines),
			Line:    double[0],
		})
	}
	return errs
}

// checkTypos reports unquoted identifiers that match a known keyword
// misspelling.
func checkTypos(items []lexer.Item) []ValidationError {
	var errs []ValidationError
	for _, item := range items {
		if item.Token != token.IDENT || item.Quote != 0 {
			continue
		}
		word := strings.ToUpper(item.Value)
		if correct, ok := typos[word]; ok {
			errs = append(errs, ValidationError{
				Kind:    StructuralDefect,
				Message: fmt.Sprintf("Possible typo: '%s' (did you mean '%s'?)", word, correct),
				Line:    item.Pos.Line,
				Column:  item.Pos.Column,
			})
		}
	}
	return errs
}

// checkMissingOperators flags a word immediately followed by a string
// literal when no comparison operator appears shortly before the word, as
// in "role 'admin'".
func checkMissingOperators(sql string, items []lexer.Item) []ValidationError {
	var errs []ValidationError
	for i := 1; i < len(items); i++ {
		lit, word := items[i], items[i-1]
		if lit.Token != token.STRING || lit.Quote != '\'' {
			continue
		}
		if !isWord(word) {
			continue
		}
		gap := sql[word.End:lit.Pos.Offset]
		if gap == "" || strings.TrimSpace(gap) != "" {
			continue
		}
		start := word.Pos.Offset - operatorWindow
		if start < 0 {
			start = 0
		}
		if hasComparison(strings.ToUpper(sql[start:word.Pos.Offset])) {
			continue
		}
		literal := sql[lit.Pos.Offset:lit.End]
		errs = append(errs, ValidationError{
			Kind: StructuralDefect,
			Message: fmt.Sprintf("Incomplete comparison: '%s %s' - missing comparison operator (=, !=, >, <, etc.)",
				word.Value, literal),
			Line:   word.Pos.Line,
			Column: word.Pos.Column,
		})
	}
	return errs
}

// isWord reports whether item is a bare word that could be a column name
// compared against a literal.
func isWord(item lexer.Item) bool {
	if item.Quote != 0 || strings.HasPrefix(item.Value, "_") || strings.HasPrefix(item.Value, "@") {
		return false
	}
	switch {
	case item.Token == token.IDENT:
		return !literalPrefixes[strings.ToUpper(item.Value)]
	case item.Token.IsKeyword():
		return !item.Token.PrecedesLiteral()
	}
	return false
}

func hasComparison(context string) bool {
	for _, marker := range comparisonMarkers {
		if strings.Contains(context, marker) {
			return true
		}
	}
	return false
}

// checkIncompleteKeywords flags a line that is exactly ORDER or GROUP when
// the next non-empty line does not start with BY.
func checkIncompleteKeywords(lines []string) []ValidationError {
	var errs []ValidationError
	for i, line := range lines {
		kw := strings.ToUpper(strings.TrimSpace(line))
		if kw != "ORDER" && kw != "GROUP" {
			continue
		}
		next, _ := nextContentLine(lines, i)
		if strings.ToUpper(firstWord(next)) == "BY" {
			continue
		}
		errs = append(errs, ValidationError{
			Kind:    StructuralDefect,
			Message: fmt.Sprintf("Incomplete keyword '%s' - expected '%s BY'", kw, kw),
			Line:    i + 1,
		})
	}
	return errs
}

// checkEmptyClauses flags a clause keyword alone on a line when the next
// non-empty line starts another clause or a connective instead of
// supplying the clause body.
func checkEmptyClauses(lines []string) []ValidationError {
	var errs []ValidationError
	for i, line := range lines {
		clause := strings.ToUpper(normalize.Whitespace(line))
		clause = strings.TrimSuffix(clause, ";")
		if !clauseLines[clause] {
			continue
		}
		next, ok := nextContentLine(lines, i)
		if ok && !startsWithKeyword(next) {
			continue
		}
		errs = append(errs, ValidationError{
			Kind:    StructuralDefect,
			Message: fmt.Sprintf("Empty %s clause", clause),
			Line:    i + 1,
		})
	}
	return errs
}

// nextContentLine returns the first non-blank line after index i.
func nextContentLine(lines []string, i int) (string, bool) {
	for _, line := range lines[i+1:] {
		if strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), true
		}
	}
	return "", false
}

// firstWord returns the leading identifier characters of s.
func firstWord(s string) string {
	end := strings.IndexFunc(s, func(r rune) bool {
		return r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if end < 0 {
		return s
	}
	return s[:end]
}

// startsWithKeyword reports whether line begins with a clause, join or
// connective keyword. A keyword followed by "(" is a function call such as
// LEFT(name, 3) and does not count.
func startsWithKeyword(line string) bool {
	word := firstWord(line)
	if word == "" {
		return false
	}
	if strings.HasPrefix(strings.TrimSpace(line[len(word):]), "(") {
		return false
	}
	tok := token.Lookup(strings.ToUpper(word))
	return tok.IsClause() || tok.IsJoin() || tok.IsConnective()
}

// caseFrame tracks an open CASE expression.
type caseFrame struct {
	line     int
	whenLine int // line of a WHEN still waiting for its THEN, 0 if none
}

// checkCaseBlocks verifies that every CASE is closed by END and every WHEN
// inside a CASE is followed by THEN before the next branch keyword.
func checkCaseBlocks(items []lexer.Item) []ValidationError {
	var stack []*caseFrame
	var errs []ValidationError

	missingThen := func(f *caseFrame) {
		if f.whenLine == 0 {
			return
		}
		errs = append(errs, ValidationError{
			Kind:    StructuralDefect,
			Message: "WHEN without matching THEN in CASE expression",
			Line:    f.whenLine,
		})
		f.whenLine = 0
	}

	for _, item := range items {
		switch item.Token {
		case token.CASE:
			stack = append(stack, &caseFrame{line: item.Pos.Line})
		case token.WHEN:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			missingThen(top)
			top.whenLine = item.Pos.Line
		case token.THEN:
			if len(stack) > 0 {
				stack[len(stack)-1].whenLine = 0
			}
		case token.ELSE:
			if len(stack) > 0 {
				missingThen(stack[len(stack)-1])
			}
		case token.END:
			if len(stack) == 0 {
				errs = append(errs, ValidationError{
					Kind:    StructuralDefect,
					Message: "END without matching CASE",
					Line:    item.Pos.Line,
				})
				continue
			}
			top := stack[len(stack)-1]
			missingThen(top)
			stack = stack[:len(stack)-1]
		}
	}
	for _, f := range stack {
		missingThen(f)
		errs = append(errs, ValidationError{
			Kind:    StructuralDefect,
			Message: "CASE without matching END",
			Line:    f.line,
		})
	}
	return errs
}

// lineList renders line numbers as "line 3" or "lines 3, 7", listing at
// most limit entries.
func lineList(lines []int, limit int) string {
	shown := lines
	if len(shown) > limit {
		shown = shown[:limit]
	}
	parts := make([]string, len(shown))
	for i, n := range shown {
		parts[i] = strconv.Itoa(n)
	}
	out := "line " + parts[0]
	if len(lines) > 1 {
		out = "lines " + strings.Join(parts, ", ")
	}
	if extra := len(lines) - len(shown); extra > 0 {
		out += fmt.Sprintf(" and %d more", extra)
	}
	return out
}
