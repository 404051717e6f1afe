// Package extract builds the canonical clause-level component model of a
// parsed query.
package extract

import "strings"

// Location describes where a subquery appears in its enclosing statement.
type Location string

const (
	LocationWhereIn     Location = "WHERE-IN"
	LocationWhereExists Location = "WHERE-EXISTS"
	LocationWhere       Location = "WHERE"
	LocationFrom        Location = "FROM"
	LocationJoin        Location = "JOIN"
	LocationHaving      Location = "HAVING"
	LocationSelect      Location = "SELECT"
	LocationUnknown     Location = "UNKNOWN"
)

// Components is the clause-level view of a single SELECT statement. Slices
// are in source order; Where, GroupBy and Having are compared as sets.
type Components struct {
	Select     []string    `json:"select,omitempty" yaml:"select,omitempty"`
	From       []string    `json:"from,omitempty" yaml:"from,omitempty"`
	Joins      []Join      `json:"joins,omitempty" yaml:"joins,omitempty"`
	Where      []string    `json:"where,omitempty" yaml:"where,omitempty"`
	GroupBy    []string    `json:"group_by,omitempty" yaml:"group_by,omitempty"`
	Having     []string    `json:"having,omitempty" yaml:"having,omitempty"`
	OrderBy    []OrderItem `json:"order_by,omitempty" yaml:"order_by,omitempty"`
	Limit      string      `json:"limit,omitempty" yaml:"limit,omitempty"`
	Offset     string      `json:"offset,omitempty" yaml:"offset,omitempty"`
	Subqueries []Subquery  `json:"subqueries,omitempty" yaml:"subqueries,omitempty"`
}

// Join is one join operation. Kind is INNER, LEFT, RIGHT, STRAIGHT,
// NATURAL, NATURAL LEFT or NATURAL RIGHT.
type Join struct {
	Kind  string   `json:"kind" yaml:"kind"`
	Table string   `json:"table" yaml:"table"`
	On    string   `json:"on,omitempty" yaml:"on,omitempty"`
	Using []string `json:"using,omitempty" yaml:"using,omitempty"`
}

// Signature identifies the join for comparison purposes.
func (j Join) Signature() string {
	var sb strings.Builder
	sb.WriteString(j.Kind)
	sb.WriteString(" JOIN ")
	sb.WriteString(j.Table)
	if j.On != "" {
		sb.WriteString(" ON ")
		sb.WriteString(j.On)
	}
	if len(j.Using) > 0 {
		sb.WriteString(" USING (")
		sb.WriteString(strings.Join(j.Using, ", "))
		sb.WriteString(")")
	}
	return sb.String()
}

// OrderItem is one ORDER BY entry. Direction is ASC or DESC.
type OrderItem struct {
	Expr      string `json:"expr" yaml:"expr"`
	Direction string `json:"direction" yaml:"direction"`
}

func (o OrderItem) String() string {
	return o.Expr + " " + o.Direction
}

// Subquery is a nested SELECT together with the context it appears in.
// Body excludes the enclosing parentheses.
type Subquery struct {
	Location Location `json:"location" yaml:"location"`
	Body     string   `json:"body" yaml:"body"`
}
