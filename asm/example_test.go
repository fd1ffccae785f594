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

package asm_test

import (
	"fmt"
	"math"

	"regmach/asm"
	"regmach/vm"
)

// Build a machine for Euclid's algorithm, preset its input registers, run it
// and read back the answer.
func ExampleMakeMachine() {
	controller := `
(controller
 test-b
   (test (op =) (reg b) (const 0))
   (branch (label gcd-done))
   (assign t (op rem) (reg a) (reg b))
   (assign a (reg b))
   (assign b (reg t))
   (goto (label test-b))
 gcd-done)
`
	procs := []*vm.Procedure{
		vm.NumPred("=", func(a, b float64) bool { return a == b }),
		vm.NumFunc("rem", math.Mod),
	}
	m, err := asm.MakeMachine([]string{"a", "b", "t"}, procs, controller)
	if err != nil {
		fmt.Println(err)
		return
	}
	m.SetRegister("a", vm.Num(1023))
	m.SetRegister("b", vm.Num(27))
	if err := m.Start(); err != nil {
		fmt.Println(err)
		return
	}
	v, _ := m.GetRegister("a")
	fmt.Println("gcd(1023, 27) =", v)

	// Output:
	// gcd(1023, 27) = 3
}

// A label stored in a register is an ordinary symbol, so controllers can
// compute their own return addresses.
func ExampleMakeMachine_computedGoto() {
	controller := `
(controller
   (assign continue (label the-end))
   (goto (reg continue))
   (assign x (const 1))
 the-end)
`
	m, err := asm.MakeMachine([]string{"continue", "x"}, nil, controller)
	if err != nil {
		fmt.Println(err)
		return
	}
	if err := m.Start(); err != nil {
		fmt.Println(err)
		return
	}
	v, _ := m.GetRegister("x")
	fmt.Println("x =", v)

	// Output:
	// x = *unassigned*
}
