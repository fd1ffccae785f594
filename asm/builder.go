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
	"io"
	"strings"

	"github.com/pkg/errors"

	"regmach/vm"
)

// MakeMachine assembles the controller text and returns a machine with the
// given registers and procedures installed, ready to Start.
//
// Besides the user's procedures the builder always installs two convenience
// procedures: read, which parses one datum from the machine's input, and
// print, which writes a value and a newline to the machine's output (strings
// print without their quotes). Their names are reserved: a user procedure of
// the same name is replaced.
func MakeMachine(registerNames []string, procs []*vm.Procedure, controllerText string, opts ...vm.Option) (*vm.Machine, error) {
	insts, labels, err := Assemble(controllerText)
	if err != nil {
		return nil, errors.Wrap(err, "unable to assemble")
	}
	m, err := vm.New(opts...)
	if err != nil {
		return nil, err
	}
	for _, name := range registerNames {
		if err := m.AllocateRegister(name); err != nil {
			return nil, err
		}
	}
	m.InstallProcedures(procs)
	m.InstallProcedure(readProc(m))
	m.InstallProcedure(printProc(m))
	m.InstallInstructions(insts)
	m.InstallLabels(labels)
	return m, nil
}

// readProc reads one datum from the machine's input and parses it as an RML
// literal. Input continues past the end of a line while parentheses are
// unbalanced, and 'd is rewritten to (quote d) on the way in.
func readProc(m *vm.Machine) *vm.Procedure {
	return vm.Func0("read", func() (vm.Value, error) {
		line, err := readDatum(m.Input())
		if err != nil {
			return vm.Value{}, errors.Wrap(err, "read")
		}
		v, err := ParseValue(rewriteQuotes(line))
		if err != nil {
			return vm.Value{}, errors.Wrap(err, "read")
		}
		return v, nil
	})
}

// printProc writes its argument and a newline to the machine's output.
func printProc(m *vm.Machine) *vm.Procedure {
	return vm.Func1("print", func(v vm.Value) (vm.Value, error) {
		if _, err := fmt.Fprintln(m.Output(), v.Display()); err != nil {
			return vm.Value{}, errors.Wrap(err, "print")
		}
		return vm.Sym("Done"), nil
	})
}

// readDatum reads lines from r until the parentheses are balanced at a line
// end, so that a datum may span several lines.
func readDatum(r io.RuneReader) (string, error) {
	var b strings.Builder
	balance := 0
	inString := false
	for {
		c, _, err := r.ReadRune()
		if err != nil {
			if err == io.EOF && strings.TrimSpace(b.String()) != "" && balance == 0 {
				return b.String(), nil
			}
			return "", err
		}
		switch {
		case inString:
			if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '(':
			balance++
		case c == ')':
			balance--
		case c == '\n':
			if balance == 0 {
				if strings.TrimSpace(b.String()) == "" {
					b.Reset()
					continue
				}
				return b.String(), nil
			}
			c = ' '
		}
		b.WriteRune(c)
	}
}

// rewriteQuotes expands the reader sugar 'd into (quote d).
func rewriteQuotes(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '"':
			j := strings.IndexByte(s[i+1:], '"')
			if j < 0 {
				b.WriteString(s[i:])
				return b.String()
			}
			b.WriteString(s[i : i+j+2])
			i += j + 2
		case c == '\'':
			datum, rest := takeDatum(s[i+1:])
			b.WriteString("(quote " + rewriteQuotes(datum) + ")")
			i = len(s) - len(rest)
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// takeDatum splits off the datum following a quote mark: a parenthesized
// form, another quoted datum, or a symbol run.
func takeDatum(s string) (datum, rest string) {
	t := strings.TrimLeft(s, " \t\n")
	skipped := len(s) - len(t)
	if t == "" {
		return "", ""
	}
	switch t[0] {
	case '\'':
		inner, rest := takeDatum(t[1:])
		return t[:1] + inner, rest
	case '(':
		depth := 0
		for i := 0; i < len(t); i++ {
			switch t[i] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					return s[skipped : skipped+i+1], t[i+1:]
				}
			}
		}
		return s[skipped:], ""
	default:
		end := strings.IndexAny(t, " \t\n()'")
		if end < 0 {
			return s[skipped:], ""
		}
		return s[skipped : skipped+end], t[end:]
	}
}
