// This file is part of regmach.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import (
	"strconv"
	"strings"
)

// Kind discriminates the variants of a Value.
type Kind uint8

// Value kinds. The zero Kind is Nil so that a zero Value is the nil sentinel.
const (
	KindNil Kind = iota
	KindNum
	KindBool
	KindSymbol
	KindString
	KindList
	KindPointer
	KindProc
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindNum:
		return "number"
	case KindBool:
		return "boolean"
	case KindSymbol:
		return "symbol"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindPointer:
		return "pointer"
	case KindProc:
		return "procedure"
	}
	return "unknown"
}

// Value is the datum stored in registers, on the stack and passed to
// procedures. It is a tagged variant; the payload fields beyond the active
// one are zero. Values are cheap to copy: list payloads share their backing
// array and are never mutated in place.
type Value struct {
	kind Kind
	num  float64
	b    bool
	str  string
	list []Value
	ptr  int
	proc *Procedure
}

// Nil is the list-terminator sentinel. It renders as the empty string.
var Nil = Value{}

// Num returns a number Value. All numbers are real; integer-looking source
// literals are widened on ingestion.
func Num(f float64) Value { return Value{kind: KindNum, num: f} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Sym returns a symbol Value.
func Sym(name string) Value { return Value{kind: KindSymbol, str: name} }

// Str returns a string Value. The text carries no quotation marks; rendering
// restores them.
func Str(text string) Value { return Value{kind: KindString, str: text} }

// List returns a list Value holding the given elements.
func List(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindList, list: elems}
}

// Pointer returns an opaque index Value. The program counter holds one, as do
// the environment handles of a hosted evaluator.
func Pointer(i int) Value { return Value{kind: KindPointer, ptr: i} }

// ProcValue wraps a Procedure as a Value.
func ProcValue(p *Procedure) Value { return Value{kind: KindProc, proc: p} }

// Unassigned is the initial content of every register.
func Unassigned() Value { return Sym("*unassigned*") }

// Kind returns the variant tag of v.
func (v Value) Kind() Kind { return v.kind }

// IsNil reports whether v is the nil sentinel.
func (v Value) IsNil() bool { return v.kind == KindNil }

// AsNum returns the numeric payload or a TypeError.
func (v Value) AsNum() (float64, error) {
	if v.kind != KindNum {
		return 0, &TypeError{Expected: KindNum.String(), Got: v.String()}
	}
	return v.num, nil
}

// AsBool returns the boolean payload or a TypeError.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, &TypeError{Expected: KindBool.String(), Got: v.String()}
	}
	return v.b, nil
}

// AsSymbol returns the symbol name or a TypeError.
func (v Value) AsSymbol() (string, error) {
	if v.kind != KindSymbol {
		return "", &TypeError{Expected: KindSymbol.String(), Got: v.String()}
	}
	return v.str, nil
}

// AsList returns the list payload or a TypeError.
func (v Value) AsList() ([]Value, error) {
	if v.kind != KindList {
		return nil, &TypeError{Expected: KindList.String(), Got: v.String()}
	}
	return v.list, nil
}

// AsPointer returns the pointer payload or a TypeError.
func (v Value) AsPointer() (int, error) {
	if v.kind != KindPointer {
		return 0, &TypeError{Expected: KindPointer.String(), Got: v.String()}
	}
	return v.ptr, nil
}

// AsProc returns the wrapped procedure or a TypeError.
func (v Value) AsProc() (*Procedure, error) {
	if v.kind != KindProc {
		return nil, &TypeError{Expected: KindProc.String(), Got: v.String()}
	}
	return v.proc, nil
}

// Text returns the raw text of a symbol or string and the rendering of any
// other variant. A string and a symbol with the same text give the same
// result.
func (v Value) Text() string {
	switch v.kind {
	case KindSymbol, KindString:
		return v.str
	default:
		return v.String()
	}
}

// Equal reports structural equality. Values of different kinds are never
// equal. Procedures compare by name and arity only.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindNum:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindSymbol, KindString:
		return v.str == o.str
	case KindPointer:
		return v.ptr == o.ptr
	case KindProc:
		return v.proc.Equal(o.proc)
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders v in its source form: numbers without a trailing .0 when
// integral, strings with their quotes restored, lists parenthesized, the nil
// sentinel as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return ""
	case KindNum:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindSymbol:
		return v.str
	case KindString:
		return `"` + v.str + `"`
	case KindPointer:
		return "#" + strconv.Itoa(v.ptr)
	case KindProc:
		return "#[procedure " + v.proc.Name() + "]"
	case KindList:
		parts := make([]string, 0, len(v.list))
		for _, e := range v.list {
			parts = append(parts, e.String())
		}
		return "(" + strings.Join(parts, " ") + ")"
	}
	return ""
}

// Display renders v for user output: like String, except that strings print
// without their quotes.
func (v Value) Display() string {
	if v.kind == KindString {
		return v.str
	}
	return v.String()
}
