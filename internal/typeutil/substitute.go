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

package typeutil

import (
	"github.com/wdamron/polyrank/types"
)

// Subst replaces free occurrences of the type-variable name within t by r.
// Solved metavariables are pruned along the way; foralls binding the same name shadow it.
func (vt *VarTracker) Subst(t types.Type, name string, r types.Type) types.Type {
	switch t := t.(type) {
	case *types.Var:
		if t.Name == name {
			return r
		}
		return t

	case *types.Meta:
		if s := vt.Solution(t); s != nil {
			return vt.Subst(vt.Prune(t), name, r)
		}
		return t

	case *types.App:
		l, rr := vt.Subst(t.Left, name, r), vt.Subst(t.Right, name, r)
		if l == t.Left && rr == t.Right {
			return t
		}
		return &types.App{Left: l, Right: rr}

	case *types.Forall:
		if t.Name == name {
			return t
		}
		b := vt.Subst(t.Body, name, r)
		if b == t.Body {
			return t
		}
		return &types.Forall{Name: t.Name, Kind: t.Kind, Body: b}
	}
	return t
}

// Open substitutes r for the variable bound by f within its body.
func (vt *VarTracker) Open(f *types.Forall, r types.Type) types.Type {
	return vt.Subst(f.Body, f.Name, r)
}

// FreeMetas returns the unsolved metavariables within t, in order of first occurrence.
func (vt *VarTracker) FreeMetas(t types.Type) []*types.Meta {
	var metas []*types.Meta
	seen := make(map[int]bool)
	vt.walk(t, func(t types.Type) {
		if m, ok := t.(*types.Meta); ok && !seen[m.Id] {
			seen[m.Id] = true
			metas = append(metas, m)
		}
	})
	return metas
}

// Occurs reports whether the metavariable m occurs within t.
func (vt *VarTracker) Occurs(m *types.Meta, t types.Type) bool {
	found := false
	vt.walk(t, func(t types.Type) {
		if other, ok := t.(*types.Meta); ok && other == m {
			found = true
		}
	})
	return found
}

// OccursKind reports whether the kind metavariable m occurs within k.
func (vt *VarTracker) OccursKind(m *types.KMeta, k types.Kind) bool {
	switch k := vt.PruneKind(k).(type) {
	case *types.KMeta:
		return k == m
	case *types.KFun:
		return vt.OccursKind(m, k.Left) || vt.OccursKind(m, k.Right)
	}
	return false
}

// ContainsVar reports whether the type-variable name occurs free within t.
func (vt *VarTracker) ContainsVar(t types.Type, name string) bool {
	switch t := t.(type) {
	case *types.Var:
		return t.Name == name
	case *types.Meta:
		if s := vt.Solution(t); s != nil {
			return vt.ContainsVar(s, name)
		}
		return false
	case *types.App:
		return vt.ContainsVar(t.Left, name) || vt.ContainsVar(t.Right, name)
	case *types.Forall:
		return t.Name != name && vt.ContainsVar(t.Body, name)
	}
	return false
}

// VarNames returns every type-variable name within t, free or bound.
func (vt *VarTracker) VarNames(t types.Type) map[string]bool {
	names := make(map[string]bool)
	vt.walk(t, func(t types.Type) {
		switch t := t.(type) {
		case *types.Var:
			names[t.Name] = true
		case *types.Forall:
			names[t.Name] = true
		}
	})
	return names
}

// walk visits every node of t in pre-order, following metavariable solutions.
func (vt *VarTracker) walk(t types.Type, f func(types.Type)) {
	switch t := t.(type) {
	case *types.Meta:
		if s := vt.Solution(t); s != nil {
			vt.walk(s, f)
			return
		}
		f(t)
	case *types.App:
		f(t)
		vt.walk(t.Left, f)
		vt.walk(t.Right, f)
	case *types.Forall:
		f(t)
		vt.walk(t.Body, f)
	default:
		f(t)
	}
}

// SubstMetas prunes t and replaces the unsolved metavariables found in subst by their substitutes.
// The metavariables themselves remain unsolved.
func (vt *VarTracker) SubstMetas(t types.Type, subst map[*types.Meta]types.Type) types.Type {
	switch t := t.(type) {
	case *types.Meta:
		if s := vt.Solution(t); s != nil {
			return vt.SubstMetas(vt.Prune(t), subst)
		}
		if r, ok := subst[t]; ok {
			return r
		}
		return t

	case *types.App:
		l, r := vt.SubstMetas(t.Left, subst), vt.SubstMetas(t.Right, subst)
		if l == t.Left && r == t.Right {
			return t
		}
		return &types.App{Left: l, Right: r}

	case *types.Forall:
		b := vt.SubstMetas(t.Body, subst)
		if b == t.Body {
			return t
		}
		return &types.Forall{Name: t.Name, Kind: t.Kind, Body: b}
	}
	return t
}
