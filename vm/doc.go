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

// Package vm implements the register machine of SICP chapter 5.
//
// A machine executes an assembled controller program against a bank of named
// registers, a single operand stack and a table of primitive procedures. The
// seven instruction forms are
//
//	(assign <reg> <src>)    store a register, constant, label handle or
//	                        operation result in a register
//	(test (op f) <arg>...)  invoke f, store its boolean result in flag
//	(branch (label l))      jump to l when flag is true
//	(goto (label l))        jump to l
//	(goto (reg r))          jump to the label whose name r holds
//	(save <reg>)            push the register's content on the stack
//	(restore <reg>)         pop the stack into the register
//	(perform (op f) ...)    invoke f for its effect
//
// Controllers are parsed and assembled by package asm; this package owns the
// node types the assembler produces, the same way an assembler usually
// produces the cells its VM consumes.
//
// Two register names are reserved: pc holds a pointer into the instruction
// sequence and flag holds the result of the last test. Every other register
// is untyped and starts out holding the *unassigned* symbol.
//
// The machine itself knows nothing about arithmetic, I/O or any other
// primitive: everything reachable through the (op ...) form is supplied by
// the caller as Procedure values, except initialize-stack and
// print-stack-statistics which are built in. Execution is single threaded
// and deterministic; a primitive performing blocking I/O is the only place
// the machine blocks.
package vm
