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
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// run is the fetch/decode/dispatch loop. The instruction sequence is
// immutable; jumps set pc to a label's absolute start index, which is
// indistinguishable from rebinding the instruction view to the label's
// suffix.
func (m *Machine) run() error {
	for {
		p, err := m.pcValue()
		if err != nil {
			return err
		}
		if p == len(m.insts) {
			m.log.Info("finished")
			return nil
		}
		if p > len(m.insts) {
			m.log.Warn("pc past the end", zap.Int("pc", p))
			return ErrNoMoreInsts
		}
		inst := m.insts[p]
		m.log.Debug("execute", zap.Int("pc", p), zap.Stringer("inst", inst))
		switch n := inst.(type) {
		case *Assign:
			err = m.execAssign(n, p)
		case *Branch:
			err = m.execBranch(n, p)
		case *Goto:
			err = m.execGoto(n)
		case *Perform:
			err = m.execPerform(n, p)
		case *Test:
			err = m.execTest(n, p)
		case *Save:
			err = m.execSave(n, p)
		case *Restore:
			err = m.execRestore(n, p)
		default:
			err = &TypeError{Expected: "instruction", Got: inst.String()}
		}
		if err != nil {
			return err
		}
	}
}

func (m *Machine) pcValue() (int, error) {
	p, err := m.pc.Get().AsPointer()
	if err != nil {
		m.log.Warn("bad pc content", zap.Stringer("pc", m.pc.Get()))
		return 0, &ContentTypeError{Reg: RegPC, Expected: KindPointer.String()}
	}
	return p, nil
}

func (m *Machine) advance(p int) error {
	m.pc.Set(Pointer(p + 1))
	return nil
}

// jump moves execution to the named label.
func (m *Machine) jump(label string) error {
	idx, ok := m.labels[label]
	if !ok {
		m.log.Warn("unknown label", zap.String("label", label))
		return &UnknownLabelError{Name: label}
	}
	m.pc.Set(Pointer(idx))
	return nil
}

// labelName resolves a branch or goto target to a label name. A register
// target must hold a symbol.
func (m *Machine) labelName(target Node) (string, error) {
	switch t := target.(type) {
	case *Label:
		return t.Name, nil
	case *Reg:
		v, err := m.GetRegister(t.Name)
		if err != nil {
			return "", err
		}
		name, err := v.AsSymbol()
		if err != nil {
			m.log.Warn("bad label register", zap.String("reg", t.Name), zap.Stringer("value", v))
			return "", &ContentTypeError{Reg: t.Name, Expected: KindSymbol.String()}
		}
		return name, nil
	default:
		return "", &TypeError{Expected: "label or reg", Got: target.String()}
	}
}

// evalSource computes the value of an assignment's right-hand side. A label
// source stores the label's name as a symbol, so that a later
// (goto (reg ...)) can use it as a jump target.
func (m *Machine) evalSource(src Node) (Value, error) {
	switch s := src.(type) {
	case *Reg:
		return m.GetRegister(s.Name)
	case *Const:
		return s.Value, nil
	case *Label:
		return Sym(s.Name), nil
	case *Symbol:
		return Sym(s.Name), nil
	case *Op:
		return m.applyOp(s)
	default:
		return Value{}, &TypeError{Expected: "assignment source", Got: src.String()}
	}
}

// applyOp evaluates the operation's arguments and invokes the procedure.
// Register arguments are read afresh at every invocation.
func (m *Machine) applyOp(op *Op) (Value, error) {
	args := make([]Value, 0, len(op.Args))
	for _, a := range op.Args {
		switch arg := a.(type) {
		case *Reg:
			v, err := m.GetRegister(arg.Name)
			if err != nil {
				return Value{}, err
			}
			args = append(args, v)
		case *Const:
			args = append(args, arg.Value)
		default:
			return Value{}, &TypeError{Expected: "reg or const operand", Got: a.String()}
		}
	}
	return m.callProcedure(op.Name, args)
}

func (m *Machine) execAssign(n *Assign, p int) error {
	v, err := m.evalSource(n.Src)
	if err != nil {
		return err
	}
	if err := m.SetRegister(n.Reg, v); err != nil {
		return err
	}
	return m.advance(p)
}

func (m *Machine) execBranch(n *Branch, p int) error {
	label, err := m.labelName(n.Target)
	if err != nil {
		return err
	}
	if _, ok := m.labels[label]; !ok {
		m.log.Warn("unknown label", zap.String("label", label))
		return &UnknownLabelError{Name: label}
	}
	b, err := m.flag.Get().AsBool()
	if err != nil {
		m.log.Warn("flag is not a boolean", zap.Stringer("flag", m.flag.Get()))
		return err
	}
	if b {
		return m.jump(label)
	}
	return m.advance(p)
}

func (m *Machine) execGoto(n *Goto) error {
	label, err := m.labelName(n.Target)
	if err != nil {
		return err
	}
	return m.jump(label)
}

func (m *Machine) execPerform(n *Perform, p int) error {
	if _, err := m.applyOp(n.Op); err != nil {
		return err
	}
	return m.advance(p)
}

func (m *Machine) execTest(n *Test, p int) error {
	v, err := m.applyOp(n.Op)
	if err != nil {
		return err
	}
	b, err := v.AsBool()
	if err != nil {
		m.log.Warn("test result is not a boolean", zap.Stringer("value", v))
		return err
	}
	m.flag.Set(Bool(b))
	return m.advance(p)
}

func (m *Machine) execSave(n *Save, p int) error {
	v, err := m.GetRegister(n.Reg)
	if err != nil {
		return err
	}
	m.stack.Push(v)
	return m.advance(p)
}

func (m *Machine) execRestore(n *Restore, p int) error {
	v, err := m.stack.Pop()
	if err != nil {
		return errors.Wrapf(err, "restore %s", n.Reg)
	}
	if err := m.SetRegister(n.Reg, v); err != nil {
		return err
	}
	return m.advance(p)
}
