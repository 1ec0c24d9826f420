// Package jsconfig reads static JavaScript and TypeScript configuration modules.
//
// It recognizes the subset of the language that config files are written in:
// object and array literals, strings, numbers, booleans, identifier references,
// calls (require('x'), plugin(options)), default imports and
// top-level const declarations. Anything that needs evaluation is rejected.
package jsconfig

import (
	"fmt"
	"strings"
)

// Kind is the syntactic kind of a Value
type Kind int

// Value kinds
const (
	String Kind = iota
	Number
	Bool
	Null
	Object
	Array
	Ref  // identifier path, e.g. colors.slate
	Call // Callee(Items...)
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "boolean"
	case Null:
		return "null"
	case Object:
		return "object"
	case Array:
		return "array"
	case Ref:
		return "reference"
	case Call:
		return "call"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a literal, reference or call found in the source.
type Value struct {
	Kind    Kind
	Text    string   // String contents, Number literal, Ref path, Call callee path
	Bool    bool     // Bool
	Members []Member // Object, in source order
	Items   []Value  // Array elements, Call arguments
	Callee  *Value   // Call target (Ref or Call)
	Line    int
}

// Member is one key/value pair of an object literal.
type Member struct {
	Key   string
	Value Value
}

// Get returns the member value for key.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Keys returns member keys in source order.
func (v Value) Keys() []string {
	keys := make([]string, len(v.Members))
	for i, m := range v.Members {
		keys[i] = m.Key
	}
	return keys
}

// Path splits a Ref into its identifier segments.
func (v Value) Path() []string {
	if v.Kind != Ref {
		return nil
	}
	return strings.Split(v.Text, ".")
}

// Scalar returns the textual form of a string, number or boolean.
func (v Value) Scalar() (string, bool) {
	switch v.Kind {
	case String, Number:
		return v.Text, true
	case Bool:
		if v.Bool {
			return "true", true
		}
		return "false", true
	default:
		return "", false
	}
}

// SyntaxError reports source the reader does not understand.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}
