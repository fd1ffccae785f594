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

import "github.com/pkg/errors"

// Procedure wraps a primitive function so that the machine can invoke it
// uniformly through the (op ...) form. The machine knows nothing about a
// procedure beyond its name, its minimum arity and its Execute contract.
type Procedure struct {
	name    string
	minArgs int
	fn      func(args []Value) (Value, error)
}

// NewProcedure returns a procedure with the given name and minimum arity.
func NewProcedure(name string, minArgs int, fn func(args []Value) (Value, error)) *Procedure {
	return &Procedure{name: name, minArgs: minArgs, fn: fn}
}

// Name returns the procedure's name.
func (p *Procedure) Name() string { return p.name }

// MinArgs returns the procedure's minimum arity.
func (p *Procedure) MinArgs() int { return p.minArgs }

// Duplicate returns a procedure sharing p's function under a new name.
func (p *Procedure) Duplicate(name string) *Procedure {
	return &Procedure{name: name, minArgs: p.minArgs, fn: p.fn}
}

// Equal compares procedures by name and arity only.
func (p *Procedure) Equal(o *Procedure) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.name == o.name && p.minArgs == o.minArgs
}

// Execute checks the arity and invokes the held function. Errors from the
// function propagate, annotated with the procedure name.
func (p *Procedure) Execute(args []Value) (Value, error) {
	if len(args) < p.minArgs {
		return Value{}, &ArgsTooFewError{Name: p.name, Expected: p.minArgs, Got: len(args)}
	}
	v, err := p.fn(args)
	if err != nil {
		return Value{}, errors.Wrapf(err, "procedure %s", p.name)
	}
	return v, nil
}

// The constructors below cover the common primitive shapes so that drivers
// and the hosted evaluator do not have to unpack argument slices by hand.

// Func0 wraps a niladic function.
func Func0(name string, fn func() (Value, error)) *Procedure {
	return NewProcedure(name, 0, func([]Value) (Value, error) {
		return fn()
	})
}

// Func1 wraps a unary function.
func Func1(name string, fn func(Value) (Value, error)) *Procedure {
	return NewProcedure(name, 1, func(args []Value) (Value, error) {
		return fn(args[0])
	})
}

// Func2 wraps a binary function.
func Func2(name string, fn func(Value, Value) (Value, error)) *Procedure {
	return NewProcedure(name, 2, func(args []Value) (Value, error) {
		return fn(args[0], args[1])
	})
}

// Func3 wraps a ternary function.
func Func3(name string, fn func(Value, Value, Value) (Value, error)) *Procedure {
	return NewProcedure(name, 3, func(args []Value) (Value, error) {
		return fn(args[0], args[1], args[2])
	})
}

// NumFunc wraps a binary numeric function. Both arguments must be numbers.
func NumFunc(name string, fn func(a, b float64) float64) *Procedure {
	return NewProcedure(name, 2, func(args []Value) (Value, error) {
		a, err := args[0].AsNum()
		if err != nil {
			return Value{}, err
		}
		b, err := args[1].AsNum()
		if err != nil {
			return Value{}, err
		}
		return Num(fn(a, b)), nil
	})
}

// NumPred wraps a binary numeric predicate. Both arguments must be numbers.
func NumPred(name string, fn func(a, b float64) bool) *Procedure {
	return NewProcedure(name, 2, func(args []Value) (Value, error) {
		a, err := args[0].AsNum()
		if err != nil {
			return Value{}, err
		}
		b, err := args[1].AsNum()
		if err != nil {
			return Value{}, err
		}
		return Bool(fn(a, b)), nil
	})
}
