// Package scripting binds world objects to Lua script files and runs them.
package scripting

import (
	"errors"
	"fmt"
)

var (
	ErrNoScript   = errors.New("object has no script")
	ErrNoFunction = errors.New("function not defined")
)

type ValueKind int

const (
	NilValue ValueKind = iota
	NumberValue
	BoolValue
)

// Value is a global exchanged with the scripting runtime. Only numbers and
// booleans cross the boundary.
type Value struct {
	kind ValueKind
	n    float64
	b    bool
}

func Number(n float64) Value {
	return Value{kind: NumberValue, n: n}
}

func Bool(b bool) Value {
	return Value{kind: BoolValue, b: b}
}

func (v Value) Kind() ValueKind {
	return v.kind
}

func (v Value) AsNumber() (float64, bool) {
	return v.n, v.kind == NumberValue
}

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == BoolValue
}

func (v Value) String() string {
	switch v.kind {
	case NumberValue:
		return fmt.Sprint(v.n)
	case BoolValue:
		return fmt.Sprint(v.b)
	default:
		return "nil"
	}
}

// Host is a scripting runtime with a single global namespace.
type Host interface {
	SetGlobal(name string, v Value)
	GetGlobal(name string) Value
	// Execute runs source as a chunk, defining whatever it declares.
	Execute(chunk, source string) error
	// Call invokes a global function that takes no arguments.
	Call(function string) error
	Close()
}
