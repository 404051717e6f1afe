package diff

import (
	"fmt"
	"sort"

	"github.com/sqlc-dev/querydiff/extract"
)

// subqueryLocations is the order in which subquery changes are reported.
var subqueryLocations = []extract.Location{
	extract.LocationWhereIn,
	extract.LocationWhereExists,
	extract.LocationWhere,
	extract.LocationFrom,
	extract.LocationJoin,
	extract.LocationHaving,
	extract.LocationSelect,
	extract.LocationUnknown,
}

// Semantic compares the components of two queries and returns the
// differences in a fixed category order. Values present only in b are
// reported as additions with INFO severity and values present only in a as
// removals with WARN severity, except for ORDER BY which is INFO both ways.
// A nil argument is treated as a query with no components.
func Semantic(a, b *extract.Components) []Notice {
	if a == nil {
		a = &extract.Components{}
	}
	if b == nil {
		b = &extract.Components{}
	}

	var notices []Notice
	notices = append(notices, setChanges(CategorySelect, "column/expression", a.Select, b.Select, SeverityWarn)...)
	notices = append(notices, setChanges(CategoryFrom, "FROM table", a.From, b.From, SeverityWarn)...)
	notices = append(notices, setChanges(CategoryJoin, "JOIN", joinSignatures(a.Joins), joinSignatures(b.Joins), SeverityWarn)...)
	notices = append(notices, setChanges(CategoryWhere, "WHERE condition", a.Where, b.Where, SeverityWarn)...)
	notices = append(notices, setChanges(CategoryGroupBy, "GROUP BY column", a.GroupBy, b.GroupBy, SeverityWarn)...)
	notices = append(notices, setChanges(CategoryHaving, "HAVING condition", a.Having, b.Having, SeverityWarn)...)
	notices = append(notices, setChanges(CategoryOrderBy, "ORDER BY", orderItems(a.OrderBy), orderItems(b.OrderBy), SeverityInfo)...)
	notices = append(notices, valueChange("LIMIT", a.Limit, b.Limit)...)
	notices = append(notices, valueChange("OFFSET", a.Offset, b.Offset)...)
	notices = append(notices, subqueryChanges(a.Subqueries, b.Subqueries)...)
	return notices
}

// setChanges reports the values only in before as removals and the values
// only in after as additions, each group sorted lexically.
func setChanges(cat Category, label string, before, after []string, removed Severity) []Notice {
	var notices []Notice
	for _, v := range difference(before, after) {
		notices = append(notices, newNotice(cat, removed, "Removed "+label+": ", v))
	}
	for _, v := range difference(after, before) {
		notices = append(notices, newNotice(cat, SeverityInfo, "Added "+label+": ", v))
	}
	return notices
}

// difference returns the distinct values of x that are not in y, sorted.
func difference(x, y []string) []string {
	exclude := make(map[string]bool, len(y))
	for _, v := range y {
		exclude[v] = true
	}
	var out []string
	for _, v := range x {
		if exclude[v] {
			continue
		}
		exclude[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// newNotice embeds value in the summary. When the value had to be
// truncated, it is repeated in the details.
func newNotice(cat Category, sev Severity, prefix, value string) Notice {
	n := Notice{Category: cat, Severity: sev, Summary: prefix + truncate(value, summaryLimit)}
	if truncate(value, summaryLimit) != value {
		n.Details = truncate(value, detailsLimit)
	}
	return n
}

func joinSignatures(joins []extract.Join) []string {
	out := make([]string, len(joins))
	for i, j := range joins {
		out[i] = j.Signature()
	}
	return out
}

func orderItems(items []extract.OrderItem) []string {
	out := make([]string, len(items))
	for i, o := range items {
		out[i] = o.String()
	}
	return out
}

// valueChange compares an optional single value such as LIMIT.
func valueChange(label, before, after string) []Notice {
	switch {
	case before == after:
		return nil
	case after == "":
		return []Notice{newNotice(CategoryLimit, SeverityWarn, "Removed "+label+": ", before)}
	case before == "":
		return []Notice{newNotice(CategoryLimit, SeverityInfo, "Added "+label+": ", after)}
	}
	return []Notice{{
		Category: CategoryLimit,
		Severity: SeverityInfo,
		Summary:  fmt.Sprintf("Changed %s from %s to %s", label, truncate(before, summaryLimit), truncate(after, summaryLimit)),
	}}
}

// subqueryChanges compares subqueries location by location.
func subqueryChanges(a, b []extract.Subquery) []Notice {
	before, after := groupSubqueries(a), groupSubqueries(b)

	var notices []Notice
	for _, loc := range subqueryLocations {
		x, y := before[loc], after[loc]
		countX, countY := occurrences(x), occurrences(y)
		for _, body := range difference(x, y) {
			notices = append(notices, subqueryNotice(SeverityWarn, "Removed", loc, body, countX[body]))
		}
		for _, body := range difference(y, x) {
			notices = append(notices, subqueryNotice(SeverityInfo, "Added", loc, body, countY[body]))
		}
		if len(x) == 0 || len(y) == 0 || len(x) == len(y) {
			continue
		}
		n := Notice{Category: CategorySubquery, Severity: SeverityInfo}
		verb := "Increased"
		if len(y) < len(x) {
			n.Severity = SeverityWarn
			verb = "Decreased"
		}
		n.Summary = fmt.Sprintf("%s subquery count in %s: %d → %d", verb, loc, len(x), len(y))
		notices = append(notices, n)
	}
	return notices
}

func groupSubqueries(subqueries []extract.Subquery) map[extract.Location][]string {
	out := make(map[extract.Location][]string)
	for _, sq := range subqueries {
		out[sq.Location] = append(out[sq.Location], sq.Body)
	}
	return out
}

func occurrences(bodies []string) map[string]int {
	out := make(map[string]int, len(bodies))
	for _, body := range bodies {
		out[body]++
	}
	return out
}

func subqueryNotice(sev Severity, verb string, loc extract.Location, body string, count int) Notice {
	summary := fmt.Sprintf("%s subquery in %s", verb, loc)
	if count > 1 {
		summary += fmt.Sprintf(" (%d occurrences)", count)
	}
	return Notice{
		Category: CategorySubquery,
		Severity: sev,
		Summary:  summary,
		Details:  truncate(body, detailsLimit),
	}
}
