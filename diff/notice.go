// Package diff compares two SQL queries. Semantic reports clause-level
// changes between two component models, Text renders a unified line diff
// and Compare runs both over raw query text.
package diff

import "unicode/utf8"

// Category groups notices by the clause they concern.
type Category string

const (
	CategorySelect   Category = "SELECT"
	CategoryFrom     Category = "FROM"
	CategoryJoin     Category = "JOIN"
	CategoryWhere    Category = "WHERE"
	CategoryGroupBy  Category = "GROUP_BY"
	CategoryHaving   Category = "HAVING"
	CategoryOrderBy  Category = "ORDER_BY"
	CategoryLimit    Category = "LIMIT"
	CategorySubquery Category = "SUBQUERY"
	CategoryGeneral  Category = "GENERAL"
)

// Severity ranks how likely a change is to alter query results.
type Severity string

const (
	SeverityInfo Severity = "INFO"
	SeverityWarn Severity = "WARN"
)

const (
	summaryLimit = 60
	detailsLimit = 150
)

// Notice is a single semantic difference.
type Notice struct {
	Category Category `json:"category" yaml:"category"`
	Severity Severity `json:"severity" yaml:"severity"`
	Summary  string   `json:"summary" yaml:"summary"`
	Details  string   `json:"details,omitempty" yaml:"details,omitempty"`
}

func (n Notice) String() string {
	s := "[" + string(n.Category) + "] " + n.Summary
	if n.Details != "" {
		s += "\n   " + n.Details
	}
	return s
}

// truncate shortens s to at most limit runes, replacing the tail with an
// ellipsis.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-3]) + "..."
}
