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
	"reflect"
	"testing"

	"github.com/pkg/errors"

	"regmach/vm"
)

func TestAssembleLabelIndexes(t *testing.T) {
	insts, labels, err := Assemble("(controller A (goto (label B)) B (perform (op done)))")
	if err != nil {
		t.Fatal(err)
	}
	want := []vm.Node{
		&vm.Goto{Target: &vm.Label{Name: "B"}},
		&vm.Perform{Op: &vm.Op{Name: "done"}},
	}
	if !reflect.DeepEqual(insts, want) {
		t.Errorf("instructions: %#v", insts)
	}
	// A's suffix is the whole program, B's is the single perform
	if labels["controller"] != 0 || labels["A"] != 0 || labels["B"] != 1 {
		t.Errorf("labels: %v", labels)
	}
}

func TestAssembleDuplicateLabel(t *testing.T) {
	_, _, err := Assemble("(controller here (goto (label here)) here)")
	var ae *AssembleError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AssembleError, got %v", err)
	}
}

func TestAssembleLabelMonotonicity(t *testing.T) {
	_, labels, err := Assemble(fibController)
	if err != nil {
		t.Fatal(err)
	}
	// label start indexes strictly increase with declaration position, i.e.
	// the label suffixes strictly shrink
	order := []string{"controller", "fib-loop", "afterfib-n-1", "afterfib-n-2",
		"immediate-answer", "fib-done", "done"}
	prev := -1
	for _, name := range order {
		idx, ok := labels[name]
		if !ok {
			t.Fatalf("label %s missing", name)
		}
		if idx <= prev {
			t.Errorf("label %s at %d does not follow %d", name, idx, prev)
		}
		prev = idx
	}
	if labels["controller"] != 0 {
		t.Errorf("controller starts at %d", labels["controller"])
	}
	if labels["done"] != 32 {
		t.Errorf("done starts at %d, expected one past the last instruction", labels["done"])
	}
}

func TestAssembleParseErrorPropagates(t *testing.T) {
	var pe *ParseError
	if _, _, err := Assemble("(a (b)"); !errors.As(err, &pe) {
		t.Errorf("expected ParseError, got %v", err)
	}
}
