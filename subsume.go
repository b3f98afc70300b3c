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

// subsume requires a to be at least as polymorphic as b: a value of type a may be used where b is expected.
func (ti *InferenceContext) subsume(a, b types.Type) error {
	a, b = ti.vars.Prune(a), ti.vars.Prune(b)
	if a == b {
		return nil
	}
	ti.trace("subsume", a, b)

	if fb, ok := b.(*types.Forall); ok {
		m := ti.ctx.Mark()
		body, skolems := ti.skolemize(fb)
		err := ti.subsume(a, body)
		ti.ctx.Drop(m)
		if err != nil {
			return err
		}
		return ti.checkEscape(a, skolems)
	}
	if fa, ok := a.(*types.Forall); ok {
		return ti.subsume(ti.instantiate(fa), b)
	}

	if domA, codA, ok := types.FunParts(a); ok {
		if domB, codB, ok := types.FunParts(b); ok {
			if err := ti.subsume(domB, domA); err != nil {
				return err
			}
			return ti.subsume(codA, codB)
		}
	}
	if domA, effA, codA, ok := types.EffFunParts(a); ok {
		if domB, effB, codB, ok := types.EffFunParts(b); ok {
			if err := ti.subsume(domB, domA); err != nil {
				return err
			}
			if err := ti.unify(effA, effB); err != nil {
				return err
			}
			return ti.subsume(codA, codB)
		}
	}

	if domA, codA, ok := types.FunParts(a); ok {
		if domB, _, codB, ok := types.EffFunParts(b); ok {
			if err := ti.subsume(domB, domA); err != nil {
				return err
			}
			return ti.subsume(codA, codB)
		}
	}
	if domA, effA, codA, ok := types.EffFunParts(a); ok {
		if domB, codB, ok := types.FunParts(b); ok {
			if err := ti.subsume(domB, domA); err != nil {
				return err
			}
			if err := ti.unify(effA, types.EffEmpty); err != nil {
				return err
			}
			return ti.subsume(codA, codB)
		}
	}

	if m, ok := a.(*types.Meta); ok && (types.IsFun(b) || types.IsEffFun(b)) {
		split, err := ti.splitFun(m, b)
		if err != nil {
			return err
		}
		return ti.subsume(split, b)
	}
	if m, ok := b.(*types.Meta); ok && (types.IsFun(a) || types.IsEffFun(a)) {
		split, err := ti.splitFun(m, a)
		if err != nil {
			return err
		}
		return ti.subsume(a, split)
	}

	return ti.unify(a, b)
}

// splitFun solves the unsolved metavariable m to a function type of the same shape as fn, made of fresh
// metavariables which take the place of m in the ordered context.
func (ti *InferenceContext) splitFun(m *types.Meta, fn types.Type) (types.Type, error) {
	if ti.vars.Occurs(m, fn) {
		return nil, ti.typeErrorf(OccursCheck, "Infinite type: %s occurs in %s", m, fn)
	}
	if err := ti.unifyKinds(metaKind(m), types.KType); err != nil {
		return nil, err
	}
	i := ti.ctx.IndexOfMeta(m)
	if i < 0 {
		return nil, ti.internalf("metavariable %s is not in scope", types.MetaName(m))
	}
	dom, cod := ti.vars.New(types.KType, ""), ti.vars.New(types.KType, "")
	var split types.Type
	if types.IsEffFun(fn) {
		eff := ti.vars.New(types.KEffect, "")
		ti.ctx.Replace(i, &typeutil.MetaElem{Meta: dom}, &typeutil.MetaElem{Meta: eff}, &typeutil.MetaElem{Meta: cod})
		split = types.EffFun(dom, eff, cod)
	} else {
		ti.ctx.Replace(i, &typeutil.MetaElem{Meta: dom}, &typeutil.MetaElem{Meta: cod})
		split = types.Fun(dom, cod)
	}
	if err := ti.internal(ti.vars.Solve(m, split)); err != nil {
		return nil, err
	}
	ti.trace("split", m)
	return split, nil
}

// checkEscape rejects a type which mentions rigid variables that are no longer in scope.
func (ti *InferenceContext) checkEscape(t types.Type, skolems []string) error {
	for _, name := range skolems {
		if ti.vars.ContainsVar(t, name) {
			return ti.typeErrorf(NotPolymorphicEnough, "Type %s is not polymorphic enough; rigid type variable "+
				"escapes its scope", t)
		}
	}
	return nil
}
