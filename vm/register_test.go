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

import "testing"

func TestRegisterInitialContent(t *testing.T) {
	r := NewRegister()
	if !r.Get().Equal(Sym("*unassigned*")) {
		t.Errorf("fresh register holds %s, expected *unassigned*", r.Get())
	}
}

func TestRegisterSet(t *testing.T) {
	r := NewRegister()
	r.Set(Num(12345678))
	if !r.Get().Equal(Num(12345678)) {
		t.Errorf("register holds %s after set", r.Get())
	}
	r.Set(List(Sym("a")))
	if !r.Get().Equal(List(Sym("a"))) {
		t.Errorf("register holds %s after second set", r.Get())
	}
}
