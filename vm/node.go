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
	"strings"
)

// Node is one node of a parsed controller: an instruction, a bare label
// declaration, or an operand expression. The assembler in package asm
// produces them; the machine executes them. String renders the node back
// into source form, so that a parsed program reserializes to an equivalent
// one.
type Node interface {
	fmt.Stringer
	rmlNode()
}

// Assign is (assign <reg> <src>). Src is a *Reg, *Const, *Label, *Symbol or
// *Op node.
type Assign struct {
	Reg string
	Src Node
}

// Branch is (branch (label <name>)). Target is a *Label node.
type Branch struct {
	Target Node
}

// Goto is (goto (label <name>)) or (goto (reg <name>)).
type Goto struct {
	Target Node
}

// Perform is (perform (op <name>) <arg>...).
type Perform struct {
	Op *Op
}

// Test is (test (op <name>) <arg>...).
type Test struct {
	Op *Op
}

// Save is (save <reg>).
type Save struct {
	Reg string
}

// Restore is (restore <reg>).
type Restore struct {
	Reg string
}

// Op is (op <name>) <arg>... where each argument is a *Reg or *Const node.
type Op struct {
	Name string
	Args []Node
}

// Reg is (reg <name>).
type Reg struct {
	Name string
}

// Label is (label <name>).
type Label struct {
	Name string
}

// Symbol is a bare symbol between instructions: a label declaration.
type Symbol struct {
	Name string
}

// Const is (const <literal>), with the literal already converted to a Value.
type Const struct {
	Value Value
}

func (*Assign) rmlNode()  {}
func (*Branch) rmlNode()  {}
func (*Goto) rmlNode()    {}
func (*Perform) rmlNode() {}
func (*Test) rmlNode()    {}
func (*Save) rmlNode()    {}
func (*Restore) rmlNode() {}
func (*Op) rmlNode()      {}
func (*Reg) rmlNode()     {}
func (*Label) rmlNode()   {}
func (*Symbol) rmlNode()  {}
func (*Const) rmlNode()   {}

func (n *Assign) String() string {
	return "(assign " + n.Reg + " " + n.Src.String() + ")"
}

func (n *Branch) String() string {
	return "(branch " + n.Target.String() + ")"
}

func (n *Goto) String() string {
	return "(goto " + n.Target.String() + ")"
}

func (n *Perform) String() string {
	return "(perform " + n.Op.String() + ")"
}

func (n *Test) String() string {
	return "(test " + n.Op.String() + ")"
}

func (n *Save) String() string    { return "(save " + n.Reg + ")" }
func (n *Restore) String() string { return "(restore " + n.Reg + ")" }

// String renders the op form with its arguments spliced after it, the way
// they appear inside assign, test and perform.
func (n *Op) String() string {
	var b strings.Builder
	b.WriteString("(op ")
	b.WriteString(n.Name)
	b.WriteString(")")
	for _, a := range n.Args {
		b.WriteString(" ")
		b.WriteString(a.String())
	}
	return b.String()
}

func (n *Reg) String() string    { return "(reg " + n.Name + ")" }
func (n *Label) String() string  { return "(label " + n.Name + ")" }
func (n *Symbol) String() string { return n.Name }

func (n *Const) String() string {
	return "(const " + n.Value.String() + ")"
}
