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
	"bufio"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Reserved register names. Both are always present: pc drives the fetch loop
// and must hold a pointer, flag receives test results and steers branch.
const (
	RegPC   = "pc"
	RegFlag = "flag"
)

// Option configures a Machine at construction time.
type Option func(*Machine) error

// Input sets the reader the read primitive consumes. Defaults to stdin.
func Input(r io.Reader) Option {
	return func(m *Machine) error { m.in = bufio.NewReader(r); return nil }
}

// Output sets the writer used by the print primitive and the stack
// statistics. Defaults to stdout.
func Output(w io.Writer) Option {
	return func(m *Machine) error { m.out = w; return nil }
}

// Logger sets the logger execution traces go to. Defaults to a nop logger.
func Logger(l *zap.Logger) Option {
	return func(m *Machine) error { m.log = l; return nil }
}

// Machine is a register machine instance: a bank of named registers, one
// operand stack, a procedure table and an assembled instruction sequence
// with its label table.
type Machine struct {
	id     uuid.UUID
	log    *zap.Logger
	pc     *Register
	flag   *Register
	stack  Stack
	insts  []Node
	labels map[string]int
	procs  map[string]*Procedure
	regs   map[string]*Register
	in     *bufio.Reader
	out    io.Writer
}

// New creates a machine with the reserved pc and flag registers, an empty
// stack and no program.
func New(opts ...Option) (*Machine, error) {
	m := &Machine{
		id:     uuid.New(),
		log:    zap.NewNop(),
		pc:     NewRegister(),
		flag:   NewRegister(),
		labels: make(map[string]int),
		procs:  make(map[string]*Procedure),
		regs:   make(map[string]*Register),
	}
	m.regs[RegPC] = m.pc
	m.regs[RegFlag] = m.flag
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	if m.in == nil {
		m.in = bufio.NewReader(os.Stdin)
	}
	if m.out == nil {
		m.out = os.Stdout
	}
	m.log = m.log.With(zap.Stringer("machine", m.id))
	return m, nil
}

// AllocateRegister creates a register. Allocating any already existing name,
// pc and flag included, fails.
func (m *Machine) AllocateRegister(name string) error {
	if _, ok := m.regs[name]; ok {
		return &AllocateError{Name: name}
	}
	m.regs[name] = NewRegister()
	return nil
}

func (m *Machine) register(name string) (*Register, error) {
	r, ok := m.regs[name]
	if !ok {
		return nil, &LookupError{Name: name}
	}
	return r, nil
}

// GetRegister returns the content of the named register.
func (m *Machine) GetRegister(name string) (Value, error) {
	r, err := m.register(name)
	if err != nil {
		m.log.Warn("unknown register", zap.String("reg", name))
		return Value{}, err
	}
	return r.Get(), nil
}

// SetRegister replaces the content of the named register.
func (m *Machine) SetRegister(name string, v Value) error {
	r, err := m.register(name)
	if err != nil {
		m.log.Warn("unknown register", zap.String("reg", name))
		return err
	}
	m.log.Debug("set register", zap.String("reg", name), zap.Stringer("value", v))
	r.Set(v)
	return nil
}

// InstallProcedure adds p to the procedure table, replacing any procedure of
// the same name.
func (m *Machine) InstallProcedure(p *Procedure) {
	m.procs[p.Name()] = p
}

// InstallProcedures adds all given procedures to the procedure table. Last
// write wins.
func (m *Machine) InstallProcedures(procs []*Procedure) {
	for _, p := range procs {
		m.InstallProcedure(p)
	}
}

// InstallInstructions replaces the instruction sequence.
func (m *Machine) InstallInstructions(insts []Node) {
	m.insts = insts
}

// InstallLabels replaces the label table. Each label maps to the index of
// the first instruction after its declaration.
func (m *Machine) InstallLabels(labels map[string]int) {
	m.labels = labels
}

// Stack exposes the operand stack for observation.
func (m *Machine) Stack() *Stack { return &m.stack }

// Input returns the machine's input reader. The read primitive installed by
// the builder consumes it.
func (m *Machine) Input() *bufio.Reader { return m.in }

// Output returns the machine's output writer.
func (m *Machine) Output() io.Writer { return m.out }

// Start resets the program counter and runs the program to completion. A nil
// return means the machine ran off the end of the instruction sequence
// normally; the first fault in an instruction or primitive procedure stops
// the machine and is returned, in some cases annotated with the procedure or
// instruction it came from.
func (m *Machine) Start() error {
	m.log.Info("machine starting")
	m.pc.Set(Pointer(0))
	return m.run()
}

// callProcedure invokes the named procedure with the given arguments. The
// two stack procedures are built in and resolved before the table, so they
// are always available.
func (m *Machine) callProcedure(name string, args []Value) (Value, error) {
	switch name {
	case "initialize-stack":
		m.stack.Initialize()
		return Sym("Done"), nil
	case "print-stack-statistics":
		m.stack.PrintStatistics(m.out)
		return Sym("Done"), nil
	}
	p, ok := m.procs[name]
	if !ok {
		m.log.Warn("procedure not found", zap.String("op", name))
		return Value{}, &NotFoundError{Name: name}
	}
	return p.Execute(args)
}
