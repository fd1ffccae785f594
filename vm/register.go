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

// Register is a named single-slot cell owning one Value. A fresh register
// holds the *unassigned* symbol.
type Register struct {
	contents Value
}

// NewRegister returns a register holding the *unassigned* symbol.
func NewRegister() *Register {
	return &Register{contents: Unassigned()}
}

// Get returns the register's content.
func (r *Register) Get() Value { return r.contents }

// Set replaces the register's content.
func (r *Register) Set(v Value) { r.contents = v }
