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

// Package asm parses and assembles register machine language (RML)
// controllers for the regmach VM.
//
// RML is a small S-expression assembly. A controller is a single
// parenthesized sequence, conventionally headed by the symbol controller:
//
//	(controller
//	 test-b
//	   (test (op =) (reg b) (const 0))
//	   (branch (label gcd-done))
//	   (assign t (op rem) (reg a) (reg b))
//	   (assign a (reg b))
//	   (assign b (reg t))
//	   (goto (label test-b))
//	 gcd-done)
//
// A bare symbol between instructions declares a label; it occupies no
// instruction slot. The instruction forms are
//
//	(assign <reg> (reg <r>))
//	(assign <reg> (const <literal>))
//	(assign <reg> (label <l>))
//	(assign <reg> (op <f>) <arg>...)
//	(test (op <f>) <arg>...)
//	(branch (label <l>))
//	(goto (label <l>))
//	(goto (reg <r>))
//	(save <reg>)
//	(restore <reg>)
//	(perform (op <f>) <arg>...)
//
// where every operation argument is a (reg ...) or (const ...) form.
//
// Literals:
//
// A (const ...) literal is a number, a string, a symbol or a list:
//
//	(const 42)          the number 42 (integers widen to reals)
//	(const -1.5)        the number -1.5
//	(const "abc")       the string "abc"
//	(const abc)         the symbol abc
//	(const (a b c))     the list (a b c); lists nest and may be empty
//
// Floats are recognized before plain numbers, so 12.0 is one literal rather
// than 12 followed by .0. A symbol is any run of characters other than
// whitespace, parentheses, quotes, semicolons, commas, backquotes and
// backslashes that does not itself parse as a number. Where a literal is
// expected, numbers are tried first, so a literal symbol cannot begin with a
// number; names such as null?, set-variable-value! and <= are all fine.
// Strings may not contain double quotes or backslashes.
//
// Comments:
//
// A semicolon starts a comment running to the end of the line. Comments may
// appear at any token boundary:
//
//	(assign n (op read))  ; inline comment
//	;;; a full-line comment
//
// Assembling:
//
// Assemble flattens the parsed sequence into an instruction vector and a
// label table mapping each label to the index of the first instruction after
// its declaration - the suffix of the program a jump to that label executes.
// Duplicate labels are an error. Unknown labels are only detected when a
// jump to them executes.
//
// MakeMachine is the usual entry point: it assembles a controller and wires
// registers and primitive procedures into a ready machine.
package asm
