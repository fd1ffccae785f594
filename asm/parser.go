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
	"strconv"
	"strings"

	parsec "github.com/prataprc/goparsec"

	"regmach/vm"
)

// ParseKind classifies a ParseError.
type ParseKind int

// Parse error kinds.
const (
	ParseFailure ParseKind = iota
	BadNum
	BadFloat
	BadSymbol
)

func (k ParseKind) String() string {
	switch k {
	case BadNum:
		return "bad number"
	case BadFloat:
		return "bad float"
	case BadSymbol:
		return "bad symbol"
	}
	return "parse failure"
}

// ParseError reports a syntactic violation together with the offending input.
type ParseError struct {
	Input string
	Kind  ParseKind
}

func (e *ParseError) Error() string {
	in := e.Input
	if len(in) > 60 {
		in = in[:60] + "..."
	}
	return fmt.Sprintf("%s: %q", e.Kind, in)
}

// Token patterns. Floats are tried before plain numbers so that 12.0 does not
// parse as 12 with .0 left over, and symbols are whatever remains: any run of
// characters that cannot occur in a delimiter. Symbols that look like numbers
// are rejected during the tree walk.
const (
	floatPattern  = `-?[0-9]+\.[0-9]+`
	intPattern    = `-?[0-9]+`
	stringPattern = `"[^"\\]*"`
	symbolPattern = "[^\\s()'\";,`\\\\]+"
)

// grammar bundles the parser combinators for one parse. Each call builds a
// fresh set so that parses do not share AST state.
type grammar struct {
	ast     *parsec.AST
	program parsec.Parser
	literal parsec.Parser
}

func newGrammar() *grammar {
	g := &grammar{ast: parsec.NewAST("rml", 1024)}

	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	symbol := parsec.Token(symbolPattern, "SYMBOL")

	// literals admit nesting through the list form, so the literal parser is
	// recursive; the wrapper breaks the initialization cycle.
	var literal parsec.Parser
	literalFwd := parsec.Parser(func(s parsec.Scanner) (parsec.ParsecNode, parsec.Scanner) {
		return literal(s)
	})
	list := g.ast.And("list", nil,
		openP, g.ast.Kleene("items", nil, literalFwd), closeP)
	literal = g.ast.OrdChoice("literal", nil,
		parsec.Token(floatPattern, "FLOAT"),
		parsec.Token(intPattern, "INT"),
		parsec.Token(stringPattern, "STRING"),
		list,
		symbol)
	g.literal = literal

	regForm := g.ast.And("reg", nil, openP, parsec.Atom("reg", "REG"), symbol, closeP)
	labelForm := g.ast.And("label", nil, openP, parsec.Atom("label", "LABEL"), symbol, closeP)
	constForm := g.ast.And("const", nil, openP, parsec.Atom("const", "CONST"), literalFwd, closeP)

	opName := g.ast.And("opname", nil, openP, parsec.Atom("op", "OP"), symbol, closeP)
	opArg := g.ast.OrdChoice("oparg", nil, constForm, regForm)
	operation := g.ast.And("operation", nil, opName, g.ast.Kleene("opargs", nil, opArg))

	assign := g.ast.And("assign", nil,
		openP, parsec.Atom("assign", "ASSIGN"), symbol,
		g.ast.OrdChoice("src", nil, operation, constForm, regForm, labelForm),
		closeP)
	test := g.ast.And("test", nil,
		openP, parsec.Atom("test", "TEST"), operation, closeP)
	perform := g.ast.And("perform", nil,
		openP, parsec.Atom("perform", "PERFORM"), operation, closeP)
	branch := g.ast.And("branch", nil,
		openP, parsec.Atom("branch", "BRANCH"), labelForm, closeP)
	gotoForm := g.ast.And("goto", nil,
		openP, parsec.Atom("goto", "GOTO"),
		g.ast.OrdChoice("target", nil, labelForm, regForm),
		closeP)
	save := g.ast.And("save", nil,
		openP, parsec.Atom("save", "SAVE"), symbol, closeP)
	restore := g.ast.And("restore", nil,
		openP, parsec.Atom("restore", "RESTORE"), symbol, closeP)

	instruction := g.ast.OrdChoice("inst", nil,
		assign, test, perform, branch, gotoForm, save, restore,
		constForm, regForm, labelForm,
		parsec.Token(floatPattern, "FLOAT"),
		parsec.Token(intPattern, "INT"),
		parsec.Token(stringPattern, "STRING"),
		symbol)

	// A program is either one bare instruction or a parenthesized sequence,
	// conventionally (controller ...); the single form is tried first so
	// that a lone parenthesized instruction is not mistaken for a sequence
	// of bare symbols.
	single := g.ast.And("single", nil, instruction, parsec.End())
	multi := g.ast.And("multi", nil,
		openP, g.ast.Kleene("body", nil, instruction), closeP, parsec.End())
	g.program = g.ast.OrdChoice("program", nil, single, multi)

	return g
}

// Parse parses controller text into a sequence of RML nodes. Comments run
// from ; to end of line and may appear at any token boundary.
func Parse(text string) ([]vm.Node, error) {
	src := strings.TrimSpace(stripComments(text))
	g := newGrammar()
	root, _ := g.ast.Parsewith(g.program, parsec.NewScanner([]byte(src)))
	if root == nil {
		return nil, &ParseError{Input: src, Kind: ParseFailure}
	}
	var items []parsec.Queryable
	switch root.GetName() {
	case "single":
		items = root.GetChildren()[:1]
	case "multi":
		items = kleeneChildren(root.GetChildren()[1])
	default:
		return nil, &ParseError{Input: src, Kind: ParseFailure}
	}
	nodes := make([]vm.Node, 0, len(items))
	for _, q := range items {
		n, err := nodeFromTree(q)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// ParseValue parses a single RML literal: a number, symbol, string or
// (possibly nested) list. It is what the read primitive applies to a line of
// input.
func ParseValue(text string) (vm.Value, error) {
	src := strings.TrimSpace(stripComments(text))
	g := newGrammar()
	whole := g.ast.And("value", nil, g.literal, parsec.End())
	root, _ := g.ast.Parsewith(whole, parsec.NewScanner([]byte(src)))
	if root == nil {
		return vm.Value{}, &ParseError{Input: src, Kind: ParseFailure}
	}
	return valueFromLiteral(root.GetChildren()[0])
}

// stripComments removes ; to end-of-line comments, leaving string literals
// untouched.
func stripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	inString := false
	inComment := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case inComment:
			if c == '\n' {
				inComment = false
				b.WriteByte(c)
			}
		case inString:
			if c == '"' {
				inString = false
			}
			b.WriteByte(c)
		case c == '"':
			inString = true
			b.WriteByte(c)
		case c == ';':
			inComment = true
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func kleeneChildren(q parsec.Queryable) []parsec.Queryable {
	if q == nil {
		return nil
	}
	return q.GetChildren()
}

// nodeFromTree converts one parsed instruction subtree into a vm node.
func nodeFromTree(q parsec.Queryable) (vm.Node, error) {
	switch q.GetName() {
	case "assign":
		children := q.GetChildren()
		reg, err := symbolName(children[2])
		if err != nil {
			return nil, err
		}
		src, err := sourceFromTree(children[3])
		if err != nil {
			return nil, err
		}
		return &vm.Assign{Reg: reg, Src: src}, nil
	case "test":
		op, err := opFromTree(q.GetChildren()[2])
		if err != nil {
			return nil, err
		}
		return &vm.Test{Op: op}, nil
	case "perform":
		op, err := opFromTree(q.GetChildren()[2])
		if err != nil {
			return nil, err
		}
		return &vm.Perform{Op: op}, nil
	case "branch":
		target, err := nodeFromTree(q.GetChildren()[2])
		if err != nil {
			return nil, err
		}
		return &vm.Branch{Target: target}, nil
	case "goto":
		target, err := nodeFromTree(q.GetChildren()[2])
		if err != nil {
			return nil, err
		}
		return &vm.Goto{Target: target}, nil
	case "save":
		reg, err := symbolName(q.GetChildren()[2])
		if err != nil {
			return nil, err
		}
		return &vm.Save{Reg: reg}, nil
	case "restore":
		reg, err := symbolName(q.GetChildren()[2])
		if err != nil {
			return nil, err
		}
		return &vm.Restore{Reg: reg}, nil
	case "reg":
		name, err := symbolName(q.GetChildren()[2])
		if err != nil {
			return nil, err
		}
		return &vm.Reg{Name: name}, nil
	case "label":
		name, err := symbolName(q.GetChildren()[2])
		if err != nil {
			return nil, err
		}
		return &vm.Label{Name: name}, nil
	case "const":
		v, err := valueFromLiteral(q.GetChildren()[2])
		if err != nil {
			return nil, err
		}
		return &vm.Const{Value: v}, nil
	case "FLOAT", "INT", "STRING":
		v, err := valueFromLiteral(q)
		if err != nil {
			return nil, err
		}
		return &vm.Const{Value: v}, nil
	case "SYMBOL":
		name, err := symbolName(q)
		if err != nil {
			return nil, err
		}
		return &vm.Symbol{Name: name}, nil
	}
	return nil, &ParseError{Input: q.GetValue(), Kind: ParseFailure}
}

// sourceFromTree converts an assignment's right-hand side.
func sourceFromTree(q parsec.Queryable) (vm.Node, error) {
	if q.GetName() == "operation" {
		return opFromTree(q)
	}
	return nodeFromTree(q)
}

// opFromTree converts an operation subtree: (op name) arg...
func opFromTree(q parsec.Queryable) (*vm.Op, error) {
	children := q.GetChildren()
	name, err := symbolName(children[0].GetChildren()[2])
	if err != nil {
		return nil, err
	}
	var args []vm.Node
	for _, a := range kleeneChildren(children[1]) {
		arg, err := nodeFromTree(a)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return &vm.Op{Name: name, Args: args}, nil
}

// valueFromLiteral converts a literal subtree into a Value. Integer-looking
// literals widen to a real number on ingestion.
func valueFromLiteral(q parsec.Queryable) (vm.Value, error) {
	switch q.GetName() {
	case "FLOAT":
		f, err := strconv.ParseFloat(q.GetValue(), 64)
		if err != nil {
			return vm.Value{}, &ParseError{Input: q.GetValue(), Kind: BadFloat}
		}
		return vm.Num(f), nil
	case "INT":
		n, err := strconv.ParseInt(q.GetValue(), 10, 64)
		if err != nil {
			return vm.Value{}, &ParseError{Input: q.GetValue(), Kind: BadNum}
		}
		return vm.Num(float64(n)), nil
	case "STRING":
		s := q.GetValue()
		return vm.Str(strings.Trim(s, `"`)), nil
	case "SYMBOL":
		name, err := symbolName(q)
		if err != nil {
			return vm.Value{}, err
		}
		return vm.Sym(name), nil
	case "list":
		var elems []vm.Value
		for _, item := range kleeneChildren(q.GetChildren()[1]) {
			v, err := valueFromLiteral(item)
			if err != nil {
				return vm.Value{}, err
			}
			elems = append(elems, v)
		}
		return vm.List(elems...), nil
	}
	return vm.Value{}, &ParseError{Input: q.GetValue(), Kind: ParseFailure}
}

// symbolName validates a SYMBOL token: anything that parses as a number is
// not a symbol.
func symbolName(q parsec.Queryable) (string, error) {
	s := q.GetValue()
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return "", &ParseError{Input: s, Kind: BadSymbol}
	}
	return s, nil
}
