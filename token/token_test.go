package token

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		ident string
		want  Token
	}{
		{"SELECT", SELECT},
		{"STRAIGHT_JOIN", STRAIGHT_JOIN},
		{"users", IDENT},
		{"select", IDENT}, // Lookup expects upper-case input
	}
	for _, tt := range tests {
		if got := Lookup(tt.ident); got != tt.want {
			t.Errorf("Lookup(%q) = %v, want %v", tt.ident, got, tt.want)
		}
	}
}

func TestClassification(t *testing.T) {
	if !SELECT.IsKeyword() || IDENT.IsKeyword() || EQ.IsKeyword() {
		t.Error("IsKeyword misclassifies SELECT, IDENT or =")
	}
	for _, tok := range []Token{SELECT, FROM, WHERE, GROUP, ORDER, HAVING, LIMIT, OFFSET, UNION} {
		if !tok.IsClause() {
			t.Errorf("%v should start a clause", tok)
		}
	}
	for _, tok := range []Token{JOIN, LEFT, CROSS, STRAIGHT_JOIN} {
		if !tok.IsJoin() {
			t.Errorf("%v should begin a join", tok)
		}
	}
	for _, tok := range []Token{AND, OR, THEN, ELSE, END, WHEN} {
		if !tok.IsConnective() {
			t.Errorf("%v should be a connective", tok)
		}
	}
	if CASE.IsConnective() || CASE.IsClause() {
		t.Error("CASE starts an expression, not a clause or connective")
	}
	if !LIKE.PrecedesLiteral() || SELECT.String() != "SELECT" {
		t.Error("LIKE must precede literals and SELECT must print as SELECT")
	}
	if ORDER.PrecedesLiteral() {
		t.Error("ORDER does not precede a literal")
	}
}
