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

package asm

import (
	"fmt"

	"regmach/vm"
)

// AssembleError reports a structural problem in an otherwise well-formed
// controller, currently only a duplicated label.
type AssembleError struct {
	Msg string
}

func (e *AssembleError) Error() string { return "assemble: " + e.Msg }

// Assemble parses controller text and splits the node sequence into a flat
// instruction list and a label table. Each label maps to the index of the
// first instruction after its declaration, so a jump to it is a jump to that
// suffix of the program; a bare label occupies no instruction slot. Label
// names must be unique.
func Assemble(text string) ([]vm.Node, map[string]int, error) {
	nodes, err := Parse(text)
	if err != nil {
		return nil, nil, err
	}
	insts := make([]vm.Node, 0, len(nodes))
	labels := make(map[string]int)
	for _, n := range nodes {
		if sym, ok := n.(*vm.Symbol); ok {
			if _, dup := labels[sym.Name]; dup {
				return nil, nil, &AssembleError{Msg: fmt.Sprintf("duplicated label: %s", sym.Name)}
			}
			labels[sym.Name] = len(insts)
			continue
		}
		insts = append(insts, n)
	}
	return insts, labels, nil
}
