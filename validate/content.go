package validate

import (
	"sort"
	"strings"

	"github.com/sqlc-dev/querydiff/lexer"
	"github.com/sqlc-dev/querydiff/token"
)

// minTokenRatio is the share of original tokens a regenerated query must
// keep before it is considered lossy.
const minTokenRatio = 0.85

// detectLoss compares the original text against its re-serialization. It
// returns nil when nothing was lost.
func detectLoss(original, regenerated string) *ContentLossError {
	origLiterals, origCount := scanLiterals(original)
	regenLiterals, regenCount := scanLiterals(regenerated)

	var missing []string
	for lit := range origLiterals {
		if !regenLiterals[lit] {
			missing = append(missing, quote(lit))
		}
	}
	sort.Strings(missing)

	loss := &ContentLossError{Literals: missing, Kept: regenCount, Total: origCount}
	if len(missing) == 0 && !loss.TokenLoss() {
		return nil
	}
	return loss
}

// scanLiterals returns the set of single-quoted literal values in s and the
// number of significant tokens, ignoring comments and statement
// terminators.
func scanLiterals(s string) (map[string]bool, int) {
	literals := make(map[string]bool)
	count := 0
	for _, item := range lexer.Significant(s) {
		if item.Token == token.SEMICOLON {
			continue
		}
		count++
		if item.Token == token.STRING && item.Quote == '\'' {
			literals[item.Value] = true
		}
	}
	return literals, count
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
