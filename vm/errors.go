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
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoMoreInsts is returned by Start when the program counter runs past the
// end of the instruction sequence.
var ErrNoMoreInsts = errors.New("no more instructions")

// TypeError reports a value-domain mismatch: arithmetic on a non-number, a
// test producing a non-boolean, and so on.
type TypeError struct {
	Expected string
	Got      string
}

func (e *TypeError) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("type error: expected %s", e.Expected)
	}
	return fmt.Sprintf("type error: expected %s, got %s", e.Expected, e.Got)
}

// LookupError reports a reference to a register that does not exist.
type LookupError struct {
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("unknown register: %s", e.Name)
}

// AllocateError reports allocation of an already existing register.
type AllocateError struct {
	Name string
}

func (e *AllocateError) Error() string {
	return fmt.Sprintf("multiply defined register: %s", e.Name)
}

// ContentTypeError reports a register whose content does not have the kind an
// instruction requires, e.g. a pc that does not hold a pointer, or a goto
// through a register that does not hold a symbol.
type ContentTypeError struct {
	Reg      string
	Expected string
}

func (e *ContentTypeError) Error() string {
	return fmt.Sprintf("register %s does not hold a %s", e.Reg, e.Expected)
}

// NotFoundError reports an operation naming a procedure that was never
// installed.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("procedure %s not found", e.Name)
}

// ArgsTooFewError reports a procedure invoked with fewer arguments than its
// minimum arity.
type ArgsTooFewError struct {
	Name     string
	Expected int
	Got      int
}

func (e *ArgsTooFewError) Error() string {
	return fmt.Sprintf("procedure %s wants at least %d argument(s), got %d",
		e.Name, e.Expected, e.Got)
}

// UnknownLabelError reports a goto or branch target missing from the label
// table.
type UnknownLabelError struct {
	Name string
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("unknown label: %s", e.Name)
}

// StackError reports an invalid stack operation.
type StackError string

func (e StackError) Error() string { return "stack error: " + string(e) }
