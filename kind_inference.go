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
	"github.com/wdamron/polyrank/types"
)

// inferKind infers the kind of t. The returned type is t with the kind of every forall filled in,
// possibly with kind metavariables which are solved later.
func (ti *InferenceContext) inferKind(t types.Type) (types.Kind, types.Type, error) {
	switch t := t.(type) {
	case *types.Var:
		tv, ok := ti.ctx.LookupTVar(t.Name)
		if !ok {
			return nil, nil, ti.typeErrorf(UnboundVariable, "Unbound type variable %s", t)
		}
		return tv.Kind, t, nil

	case *types.Con:
		k := ti.conKind(t)
		if k == nil {
			return nil, nil, ti.typeErrorf(UnboundVariable, "Unknown type constant %s", t)
		}
		return k, t, nil

	case *types.Meta:
		if s := ti.vars.Solution(t); s != nil {
			return ti.inferKind(ti.vars.Prune(t))
		}
		return metaKind(t), t, nil

	case *types.App:
		kl, l, err := ti.inferKind(t.Left)
		if err != nil {
			return nil, nil, err
		}
		kr, r, err := ti.inferKind(t.Right)
		if err != nil {
			return nil, nil, err
		}
		res := ti.vars.NewKind()
		if err := ti.unifyKinds(kl, &types.KFun{Left: kr, Right: res}); err != nil {
			if te, ok := AsTypeError(err); ok {
				te.Message += " in type " + ti.typeString(t)
			}
			return nil, nil, err
		}
		if l == t.Left && r == t.Right {
			return res, t, nil
		}
		return res, &types.App{Left: l, Right: r}, nil

	case *types.Forall:
		k := t.Kind
		if k == nil {
			k = ti.vars.NewKind()
		}
		m := ti.ctx.Mark()
		ti.ctx.AddTVar(t.Name, k)
		kb, body, err := ti.inferKind(t.Body)
		ti.ctx.Drop(m)
		if err != nil {
			return nil, nil, err
		}
		if err := ti.unifyKinds(kb, types.KType); err != nil {
			return nil, nil, err
		}
		return types.KType, &types.Forall{Name: t.Name, Kind: k, Body: body}, nil
	}
	return nil, nil, ti.internalf("unknown type %T", t)
}

// checkKind infers the kind of t and requires it to be k.
func (ti *InferenceContext) checkKind(t types.Type, k types.Kind) (types.Type, error) {
	kt, at, err := ti.inferKind(t)
	if err != nil {
		return nil, err
	}
	if err := ti.unifyKinds(kt, k); err != nil {
		return nil, err
	}
	return at, nil
}

// annotateType kind-checks an annotation against Type. The result has the kind of every forall
// filled in; unconstrained kinds default to Type.
func (ti *InferenceContext) annotateType(t types.Type) (types.Type, error) {
	at, err := ti.checkKind(t, types.KType)
	if err != nil {
		return nil, err
	}
	return ti.defaultKinds(at), nil
}

func (ti *InferenceContext) defaultKinds(t types.Type) types.Type {
	switch t := t.(type) {
	case *types.App:
		l, r := ti.defaultKinds(t.Left), ti.defaultKinds(t.Right)
		if l == t.Left && r == t.Right {
			return t
		}
		return &types.App{Left: l, Right: r}
	case *types.Forall:
		return &types.Forall{Name: t.Name, Kind: ti.vars.DefaultKind(t.Kind), Body: ti.defaultKinds(t.Body)}
	}
	return t
}

func (ti *InferenceContext) conKind(c *types.Con) types.Kind {
	if c.Row != types.NotRow {
		row := types.RowKindOf(c.Row)
		return types.KFunOf(types.KType, row, row)
	}
	return ti.env.LookupKind(c.Name)
}

func metaKind(m *types.Meta) types.Kind {
	if m.Kind == nil {
		return types.KType
	}
	return m.Kind
}

// kindOf computes the kind of an already kind-checked type.
func (ti *InferenceContext) kindOf(t types.Type) types.Kind {
	switch t := ti.vars.Prune(t).(type) {
	case *types.Var:
		if tv, ok := ti.ctx.LookupTVar(t.Name); ok && tv.Kind != nil {
			return tv.Kind
		}
	case *types.Con:
		if k := ti.conKind(t); k != nil {
			return k
		}
	case *types.Meta:
		return metaKind(t)
	case *types.App:
		if f, ok := ti.vars.PruneKind(ti.kindOf(t.Left)).(*types.KFun); ok {
			return f.Right
		}
	}
	return types.KType
}

// unifyKinds unifies two kinds, solving kind metavariables.
func (ti *InferenceContext) unifyKinds(a, b types.Kind) error {
	a, b = ti.vars.PruneKind(a), ti.vars.PruneKind(b)
	if a == b {
		return nil
	}
	if ma, ok := a.(*types.KMeta); ok {
		return ti.solveKind(ma, b)
	}
	if mb, ok := b.(*types.KMeta); ok {
		return ti.solveKind(mb, a)
	}
	switch a := a.(type) {
	case *types.KCon:
		if b, ok := b.(*types.KCon); ok && a.Name == b.Name {
			return nil
		}
	case *types.KFun:
		if b, ok := b.(*types.KFun); ok {
			if err := ti.unifyKinds(a.Left, b.Left); err != nil {
				return err
			}
			return ti.unifyKinds(a.Right, b.Right)
		}
	}
	return ti.kindMismatch(a, b)
}

func (ti *InferenceContext) solveKind(m *types.KMeta, k types.Kind) error {
	if km, ok := k.(*types.KMeta); ok && km == m {
		return nil
	}
	if ti.vars.OccursKind(m, k) {
		return &TypeError{Code: OccursCheck, Message: "Infinite kind: " + types.KindString(m) + " occurs in " + types.KindString(ti.vars.PruneKind(k))}
	}
	return ti.internal(ti.vars.SolveKind(m, k))
}
