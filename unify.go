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
	"github.com/wdamron/polyrank/internal/typeutil"
	"github.com/wdamron/polyrank/types"
)

// unify requires a and b to be equal, solving metavariables within the ordered context.
func (ti *InferenceContext) unify(a, b types.Type) error {
	a, b = ti.vars.Prune(a), ti.vars.Prune(b)
	if a == b {
		return nil
	}
	ti.trace("unify", a, b)

	ma, aIsMeta := a.(*types.Meta)
	mb, bIsMeta := b.(*types.Meta)
	switch {
	case aIsMeta && bIsMeta:
		return ti.solveMetas(ma, mb)
	case aIsMeta:
		return ti.solve(ma, b)
	case bIsMeta:
		return ti.solve(mb, a)
	}

	if sort, _, _, _, ok := types.RowParts(a); ok && ti.isRowOf(sort, b) {
		return ti.unifyRows(sort, a, b)
	}
	if sort, _, _, _, ok := types.RowParts(b); ok && ti.isRowOf(sort, a) {
		return ti.unifyRows(sort, b, a)
	}

	switch a := a.(type) {
	case *types.App:
		if b, ok := b.(*types.App); ok {
			if err := ti.unify(a.Left, b.Left); err != nil {
				return err
			}
			return ti.unify(a.Right, b.Right)
		}

	case *types.Con:
		if b, ok := b.(*types.Con); ok && a.Name == b.Name && a.Row == b.Row {
			return nil
		}

	case *types.Var:
		if b, ok := b.(*types.Var); ok && a.Name == b.Name {
			return nil
		}

	case *types.Forall:
		if b, ok := b.(*types.Forall); ok {
			return ti.unifyForalls(a, b)
		}
	}
	return ti.mismatch(a, b)
}

// isRowOf reports whether t is a row extension or an empty row of the given sort.
func (ti *InferenceContext) isRowOf(sort types.RowSort, t types.Type) bool {
	if s, _, _, _, ok := types.RowParts(t); ok {
		return s == sort
	}
	if s, ok := types.IsEmptyRow(t); ok {
		return s == sort
	}
	return false
}

// unifyForalls unifies quantified types of equal arity and kinds by opening both with shared rigid variables.
func (ti *InferenceContext) unifyForalls(a, b *types.Forall) error {
	namesA, kindsA, _ := types.FlattenForall(a)
	namesB, kindsB, _ := types.FlattenForall(b)
	if len(namesA) != len(namesB) {
		return ti.mismatch(a, b)
	}
	for i := range kindsA {
		if err := ti.unifyKinds(orType(kindsA[i]), orType(kindsB[i])); err != nil {
			return err
		}
	}
	m := ti.ctx.Mark()
	var bodyA, bodyB types.Type = a, b
	for range namesA {
		fa, fb := bodyA.(*types.Forall), bodyB.(*types.Forall)
		sk := ti.newSkolem(fa.Name, fa.Kind)
		bodyA, bodyB = ti.vars.Open(fa, sk), ti.vars.Open(fb, sk)
	}
	err := ti.unify(bodyA, bodyB)
	ti.ctx.Drop(m)
	return err
}

func orType(k types.Kind) types.Kind {
	if k == nil {
		return types.KType
	}
	return k
}

// unifyRows unifies a row extension a with a row b of the same sort, rewriting b to expose the
// outermost label of a.
func (ti *InferenceContext) unifyRows(sort types.RowSort, a, b types.Type) error {
	_, label, field, rest, _ := types.RowParts(a)
	tailA := ti.rowTail(a)
	field2, rest2, err := ti.rewriteRow(sort, label, b)
	if err != nil {
		return err
	}
	if tm, ok := tailA.(*types.Meta); ok && ti.vars.IsSolved(tm) {
		return ti.typeErrorf(OccursCheck, "Recursive row type: %s and %s", a, b)
	}
	if err := ti.unify(field, field2); err != nil {
		return err
	}
	return ti.unify(rest, rest2)
}

// rowTail returns the pruned type which terminates the row extensions of row.
func (ti *InferenceContext) rowTail(row types.Type) types.Type {
	row = ti.vars.Prune(row)
	for {
		_, _, _, rest, ok := types.RowParts(row)
		if !ok {
			return row
		}
		row = ti.vars.Prune(rest)
	}
}

// rewriteRow finds the outermost field with the given label in row, returning its type and the
// remaining row. An open row ending in an unsolved metavariable is extended with the label.
func (ti *InferenceContext) rewriteRow(sort types.RowSort, label string, row types.Type) (field, rest types.Type, err error) {
	row = ti.vars.Prune(row)
	if s, l, f, r, ok := types.RowParts(row); ok && s == sort {
		if l == label {
			return f, r, nil
		}
		f2, r2, err := ti.rewriteRow(sort, label, r)
		if err != nil {
			return nil, nil, err
		}
		return f2, types.Extend(sort, l, f, r2), nil
	}
	if m, ok := row.(*types.Meta); ok {
		i := ti.ctx.IndexOfMeta(m)
		if i < 0 {
			return nil, nil, ti.internalf("metavariable %s is not in scope", types.MetaName(m))
		}
		f := ti.vars.New(types.KType, "")
		r := ti.vars.New(types.RowKindOf(sort), "")
		ti.ctx.Replace(i, &typeutil.MetaElem{Meta: f}, &typeutil.MetaElem{Meta: r})
		if err := ti.internal(ti.vars.Solve(m, types.Extend(sort, label, f, r))); err != nil {
			return nil, nil, err
		}
		ti.trace("extend row", m)
		return f, r, nil
	}
	te := ti.typeErrorf(MissingLabel, "Row %s does not contain label", row)
	te.Message += " " + label
	return nil, nil, te
}

// solveMetas unifies two unsolved metavariables, solving the later one to the earlier one.
func (ti *InferenceContext) solveMetas(a, b *types.Meta) error {
	ia, ib := ti.ctx.IndexOfMeta(a), ti.ctx.IndexOfMeta(b)
	if ia < 0 || ib < 0 {
		return ti.internalf("metavariables %s and %s are not both in scope", types.MetaName(a), types.MetaName(b))
	}
	if err := ti.unifyKinds(metaKind(a), metaKind(b)); err != nil {
		return err
	}
	later, earlier, i := a, b, ia
	if ia < ib {
		later, earlier, i = b, a, ib
	}
	if err := ti.internal(ti.vars.Solve(later, earlier)); err != nil {
		return err
	}
	ti.ctx.Remove(i)
	ti.trace("solve", later, earlier)
	return nil
}

// solve unifies the unsolved metavariable m with the non-metavariable type t.
func (ti *InferenceContext) solve(m *types.Meta, t types.Type) error {
	i := ti.ctx.IndexOfMeta(m)
	if i < 0 {
		return ti.internalf("metavariable %s is not in scope", types.MetaName(m))
	}
	switch t := t.(type) {
	case *types.Con:
		if err := ti.unifyKinds(metaKind(m), ti.kindOf(t)); err != nil {
			return err
		}

	case *types.Var:
		j := ti.ctx.IndexOfTVar(t.Name)
		if j < 0 || j > i {
			return ti.typeErrorf(NotPolymorphicEnough, "Type variable %s escapes its scope through %s", t, m)
		}
		if err := ti.unifyKinds(metaKind(m), ti.kindOf(t)); err != nil {
			return err
		}

	case *types.App:
		if ti.vars.Occurs(m, t) {
			return ti.typeErrorf(OccursCheck, "Infinite type: %s occurs in %s", m, t)
		}
		if err := ti.unifyKinds(metaKind(m), ti.kindOf(t)); err != nil {
			return err
		}
		kr := ti.vars.DefaultKind(ti.kindOf(t.Right))
		l := ti.vars.New(&types.KFun{Left: kr, Right: metaKind(m)}, m.Hint)
		r := ti.vars.New(kr, "")
		ti.ctx.Replace(i, &typeutil.MetaElem{Meta: l}, &typeutil.MetaElem{Meta: r})
		if err := ti.internal(ti.vars.Solve(m, &types.App{Left: l, Right: r})); err != nil {
			return err
		}
		ti.trace("split", m)
		if err := ti.unify(l, t.Left); err != nil {
			return err
		}
		return ti.unify(r, t.Right)

	case *types.Forall:
		return ti.typeErrorf(Polymorphism, "Cannot instantiate %s with polymorphic type %s", m, t)

	default:
		return ti.internalf("cannot solve %s to %T", types.MetaName(m), t)
	}
	if err := ti.internal(ti.vars.Solve(m, t)); err != nil {
		return err
	}
	ti.ctx.Remove(i)
	ti.trace("solve", m, t)
	return nil
}
