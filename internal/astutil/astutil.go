// Package astutil provides traversal helpers for the MySQL-dialect AST.
package astutil

import (
	"reflect"

	"github.com/xwb1989/sqlparser"
)

// Children returns the immediate, non-nil children of node in source
// order.
func Children(node sqlparser.SQLNode) []sqlparser.SQLNode {
	var children []sqlparser.SQLNode
	root := true
	_ = sqlparser.Walk(func(n sqlparser.SQLNode) (bool, error) {
		if root {
			root = false
			return true, nil
		}
		if !IsNil(n) {
			children = append(children, n)
		}
		return false, nil
	}, node)
	return children
}

// IsNil reports whether node is nil or a typed nil pointer. The grammar
// leaves absent optional clauses as typed nils, which Walk still visits.
func IsNil(node sqlparser.SQLNode) bool {
	if node == nil {
		return true
	}
	v := reflect.ValueOf(node)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map:
		return v.IsNil()
	}
	return false
}

// TypeName returns the unqualified Go type name of node, without the
// pointer marker.
func TypeName(node sqlparser.SQLNode) string {
	t := reflect.TypeOf(node)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
