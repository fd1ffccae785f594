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
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func newMachine(t *testing.T, opts ...Option) *Machine {
	t.Helper()
	m, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestAllocateRegister(t *testing.T) {
	m := newMachine(t)
	if err := m.AllocateRegister("test"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := m.AllocateRegister("test")
	var alloc *AllocateError
	if !errors.As(err, &alloc) {
		t.Fatalf("expected AllocateError, got %v", err)
	}
	// the reserved registers are already present
	for _, name := range []string{RegPC, RegFlag} {
		if err := m.AllocateRegister(name); err == nil {
			t.Errorf("allocating %s should fail", name)
		}
	}
}

func TestRegisterContent(t *testing.T) {
	m := newMachine(t)
	if err := m.AllocateRegister("a"); err != nil {
		t.Fatal(err)
	}
	v, err := m.GetRegister("a")
	if err != nil {
		t.Fatal(err)
	}
	if !v.Equal(Unassigned()) {
		t.Errorf("fresh register holds %s", v)
	}
	if err := m.SetRegister("a", Num(1)); err != nil {
		t.Fatal(err)
	}
	v, _ = m.GetRegister("a")
	if !v.Equal(Num(1)) {
		t.Errorf("register holds %s after set", v)
	}
}

func TestUnknownRegister(t *testing.T) {
	m := newMachine(t)
	var lookup *LookupError
	if _, err := m.GetRegister("nope"); !errors.As(err, &lookup) {
		t.Errorf("expected LookupError, got %v", err)
	}
	if err := m.SetRegister("nope", Num(1)); !errors.As(err, &lookup) {
		t.Errorf("expected LookupError, got %v", err)
	}
}

func TestBuiltinProcedures(t *testing.T) {
	var out bytes.Buffer
	m := newMachine(t, Output(&out))
	m.Stack().Push(Num(1))
	v, err := m.callProcedure("initialize-stack", nil)
	if err != nil || !v.Equal(Sym("Done")) {
		t.Fatalf("initialize-stack: %s, %v", v, err)
	}
	if m.Stack().Depth() != 0 || m.Stack().Pushes() != 0 {
		t.Error("initialize-stack did not reset the stack")
	}
	v, err = m.callProcedure("print-stack-statistics", nil)
	if err != nil || !v.Equal(Sym("Done")) {
		t.Fatalf("print-stack-statistics: %s, %v", v, err)
	}
	if !strings.Contains(out.String(), "total-pushes = 0") {
		t.Errorf("unexpected statistics output %q", out.String())
	}
}

func TestInstallProcedure(t *testing.T) {
	m := newMachine(t)
	m.InstallProcedure(NumFunc("add", func(a, b float64) float64 { return a + b }))
	v, err := m.callProcedure("add", []Value{Num(1), Num(1)})
	if err != nil {
		t.Fatal(err)
	}
	if !v.Equal(Num(2)) {
		t.Errorf("expected 2, got %s", v)
	}
	// last write wins
	m.InstallProcedure(NumFunc("add", func(a, b float64) float64 { return a * b }))
	v, _ = m.callProcedure("add", []Value{Num(2), Num(3)})
	if !v.Equal(Num(6)) {
		t.Errorf("expected the replacement to win, got %s", v)
	}
}

func TestProcedureNotFound(t *testing.T) {
	m := newMachine(t)
	var nf *NotFoundError
	if _, err := m.callProcedure("nope", nil); !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestStartEmptyProgram(t *testing.T) {
	m := newMachine(t)
	if err := m.Start(); err != nil {
		t.Errorf("an empty program must complete, got %v", err)
	}
}
