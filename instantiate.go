// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package polyrank

import (
	"strconv"
	"strings"

	"github.com/wdamron/polyrank/types"
)

// newMeta allocates a metavariable and adds it to the end of the ordered context.
func (ti *InferenceContext) newMeta(kind types.Kind, hint string) *types.Meta {
	m := ti.vars.New(kind, hint)
	ti.ctx.AddMeta(m)
	return m
}

// newSkolem adds a fresh rigid type variable named after the bound variable name to the ordered context.
func (ti *InferenceContext) newSkolem(name string, kind types.Kind) *types.Var {
	if i := strings.IndexByte(name, '$'); i >= 0 {
		name = name[:i]
	}
	ti.skolems++
	sk := &types.Var{Name: name + "$" + strconv.Itoa(ti.skolems)}
	ti.ctx.AddTVar(sk.Name, orType(kind))
	return sk
}

// instantiate opens every leading forall of t with a fresh metavariable.
func (ti *InferenceContext) instantiate(t types.Type) types.Type {
	t = ti.vars.Prune(t)
	for {
		f, ok := t.(*types.Forall)
		if !ok {
			return t
		}
		t = ti.vars.Open(f, ti.newMeta(orType(f.Kind), f.Name))
	}
}

// skolemize opens every leading forall of t with a fresh rigid type variable. Callers should mark the
// ordered context beforehand and drop the mark when the skolems go out of scope.
func (ti *InferenceContext) skolemize(t types.Type) (types.Type, []string) {
	var names []string
	t = ti.vars.Prune(t)
	for {
		f, ok := t.(*types.Forall)
		if !ok {
			return t, names
		}
		sk := ti.newSkolem(f.Name, f.Kind)
		names = append(names, sk.Name)
		t = ti.vars.Open(f, sk)
	}
}
