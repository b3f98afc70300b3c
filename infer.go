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
	"github.com/wdamron/polyrank/ast"
	"github.com/wdamron/polyrank/internal/typeutil"
	"github.com/wdamron/polyrank/types"
)

// synth synthesizes the type of e.
func (ti *InferenceContext) synth(env scope, e ast.Expr) (types.Type, error) {
	t, err := ti.synthExpr(env, e)
	if err != nil {
		return nil, atExpr(err, e)
	}
	ti.traceExpr("synth", e, t)
	return t, nil
}

func (ti *InferenceContext) synthExpr(env scope, e ast.Expr) (types.Type, error) {
	switch e := e.(type) {
	case *ast.Literal:
		return e.Type(), nil

	case *ast.Var:
		if t, ok := env.lookup(e.Name); ok {
			return ti.instantiate(t), nil
		}
		if t := ti.env.Lookup(e.Name); t != nil {
			return ti.instantiate(t), nil
		}
		return nil, &TypeError{Code: UnboundVariable, Message: "Variable " + e.Name + " is not defined", Expr: e}

	case *ast.App:
		ft, err := ti.synth(env, e.Func)
		if err != nil {
			return nil, err
		}
		return ti.synthapp(env, ft, e.Arg)

	case *ast.Abs:
		m := ti.ctx.Mark()
		var dom types.Type
		if e.Type != nil {
			pt, err := ti.annotateType(e.Type)
			if err != nil {
				ti.ctx.Drop(m)
				return nil, err
			}
			dom = pt
		} else {
			dom = ti.newMeta(types.KType, e.Param)
		}
		eff := ti.newMeta(types.KEffect, "")
		cod := ti.newMeta(types.KType, "")
		performed, err := ti.withEffects(eff, func() error {
			return ti.check(env.bind(e.Param, dom), e.Body, cod)
		})
		dropped := ti.ctx.Drop(m)
		if err != nil {
			return nil, err
		}
		if performed {
			return ti.generalize(dropped, types.EffFun(dom, eff, cod)), nil
		}
		return ti.generalize(dropped, types.Fun(dom, cod)), nil

	case *ast.Let:
		inner, err := ti.bindLet(env, e)
		if err != nil {
			return nil, err
		}
		return ti.synth(inner, e.Body)

	case *ast.Ann:
		return ti.synthAnn(env, e)

	case *ast.RecordEmpty:
		return types.Record(types.RowEmpty), nil

	case *ast.RecordSelect:
		field := ti.newMeta(types.KType, "")
		rest := ti.newMeta(types.KRow, "")
		if err := ti.check(env, e.Record, types.Record(types.RowExtend(e.Label, field, rest))); err != nil {
			return nil, err
		}
		return field, nil

	case *ast.RecordRestrict:
		field := ti.newMeta(types.KType, "")
		rest := ti.newMeta(types.KRow, "")
		if err := ti.check(env, e.Record, types.Record(types.RowExtend(e.Label, field, rest))); err != nil {
			return nil, err
		}
		return types.Record(rest), nil

	case *ast.RecordExtend:
		var row types.Type = ti.newMeta(types.KRow, "")
		if err := ti.check(env, e.Record, types.Record(row)); err != nil {
			return nil, err
		}
		fields := make([]types.Field, len(e.Labels))
		for i, lv := range e.Labels {
			t, err := ti.synthMono(env, lv.Value)
			if err != nil {
				return nil, err
			}
			fields[i] = types.Field{Label: lv.Label, Type: t}
		}
		return types.Record(types.RowOf(types.FieldRow, fields, row)), nil

	case *ast.Variant:
		t, err := ti.synthMono(env, e.Value)
		if err != nil {
			return nil, err
		}
		return types.Variant(types.RowExtend(e.Label, t, ti.newMeta(types.KRow, ""))), nil

	case *ast.Match:
		return ti.synthMatch(env, e)

	case nil:
		return nil, ti.internalf("nil expression")
	}
	return nil, ti.internalf("unknown expression type %s", e.ExprName())
}

// synthMono synthesizes the type of e, instantiating any leading foralls.
func (ti *InferenceContext) synthMono(env scope, e ast.Expr) (types.Type, error) {
	t, err := ti.synth(env, e)
	if err != nil {
		return nil, err
	}
	return ti.instantiate(t), nil
}

// bindLet infers the type of a (recursive) let-bound value and returns the scope of the body.
func (ti *InferenceContext) bindLet(env scope, e *ast.Let) (scope, error) {
	if e.Type != nil {
		t, err := ti.annotateType(e.Type)
		if err != nil {
			return env, err
		}
		inner := env.bind(e.Var, t)
		if err := ti.check(inner, e.Value, t); err != nil {
			return env, err
		}
		return inner, nil
	}
	m := ti.ctx.Mark()
	self := ti.newMeta(types.KType, e.Var)
	vt, err := ti.synth(env.bind(e.Var, self), e.Value)
	if err == nil {
		err = ti.subsume(vt, self)
	}
	dropped := ti.ctx.Drop(m)
	if err != nil {
		return env, err
	}
	return env.bind(e.Var, ti.generalize(dropped, self)), nil
}

func (ti *InferenceContext) synthAnn(env scope, e *ast.Ann) (types.Type, error) {
	t, err := ti.annotateType(e.Type)
	if err != nil {
		return nil, err
	}
	if err := ti.check(env, e.Expr, t); err != nil {
		return nil, err
	}
	for _, arg := range e.TypeArgs {
		f, ok := ti.vars.Prune(t).(*types.Forall)
		if !ok {
			te := ti.typeErrorf(Polymorphism, "Cannot apply type %s to the monomorphic type %s", arg, t)
			return nil, te
		}
		a, err := ti.checkKind(arg, orType(f.Kind))
		if err != nil {
			return nil, err
		}
		t = ti.vars.Open(f, ti.defaultKinds(a))
	}
	return t, nil
}

func (ti *InferenceContext) synthMatch(env scope, e *ast.Match) (types.Type, error) {
	vt, err := ti.synth(env, e.Value)
	if err != nil {
		return nil, err
	}
	var rest types.Type = types.RowEmpty
	if e.Default != nil {
		rest = ti.newMeta(types.KRow, "")
	}
	caseTypes := make([]types.Type, len(e.Cases))
	fields := make([]types.Field, len(e.Cases))
	for i, c := range e.Cases {
		caseTypes[i] = ti.newMeta(types.KType, c.Var)
		fields[i] = types.Field{Label: c.Label, Type: caseTypes[i]}
	}
	if err := ti.subsume(vt, types.Variant(types.RowOf(types.FieldRow, fields, rest))); err != nil {
		return nil, atExpr(err, e.Value)
	}
	result := ti.newMeta(types.KType, "")
	for i, c := range e.Cases {
		if err := ti.check(env.bind(c.Var, caseTypes[i]), c.Value, result); err != nil {
			return nil, err
		}
	}
	if e.Default != nil {
		if err := ti.check(env.bind(e.Default.Var, types.Variant(rest)), e.Default.Value, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// check checks e against the type t.
func (ti *InferenceContext) check(env scope, e ast.Expr, t types.Type) error {
	t = ti.vars.Prune(t)
	ti.traceExpr("check", e, t)
	if err := ti.checkExpr(env, e, t); err != nil {
		return atExpr(err, e)
	}
	return nil
}

func (ti *InferenceContext) checkExpr(env scope, e ast.Expr, t types.Type) error {
	if f, ok := t.(*types.Forall); ok {
		m := ti.ctx.Mark()
		body, _ := ti.skolemize(f)
		err := ti.check(env, e, body)
		ti.ctx.Drop(m)
		return err
	}

	switch e := e.(type) {
	case *ast.Abs:
		var eff types.Type = types.EffEmpty
		dom, cod, ok := types.FunParts(t)
		if !ok {
			dom, eff, cod, ok = types.EffFunParts(t)
		}
		if !ok {
			break
		}
		if e.Type != nil {
			pt, err := ti.annotateType(e.Type)
			if err != nil {
				return err
			}
			if err := ti.subsume(dom, pt); err != nil {
				return err
			}
			dom = pt
		}
		_, err := ti.withEffects(eff, func() error {
			return ti.check(env.bind(e.Param, dom), e.Body, cod)
		})
		return err

	case *ast.Let:
		inner, err := ti.bindLet(env, e)
		if err != nil {
			return err
		}
		return ti.check(inner, e.Body, t)
	}

	st, err := ti.synth(env, e)
	if err != nil {
		return err
	}
	return ti.subsume(st, t)
}

// synthapp synthesizes the result type of applying a function of type ft to arg.
func (ti *InferenceContext) synthapp(env scope, ft types.Type, arg ast.Expr) (types.Type, error) {
	ft = ti.vars.Prune(ft)
	ti.traceExpr("synthapp", arg, ft)
	switch f := ft.(type) {
	case *types.Forall:
		return ti.synthapp(env, ti.instantiate(f), arg)

	case *types.Meta:
		i := ti.ctx.IndexOfMeta(f)
		if i < 0 {
			return nil, ti.internalf("metavariable %s is not in scope", types.MetaName(f))
		}
		if err := ti.unifyKinds(metaKind(f), types.KType); err != nil {
			return nil, err
		}
		dom, cod := ti.vars.New(types.KType, ""), ti.vars.New(types.KType, "")
		ti.ctx.Replace(i, &typeutil.MetaElem{Meta: dom}, &typeutil.MetaElem{Meta: cod})
		if err := ti.internal(ti.vars.Solve(f, types.Fun(dom, cod))); err != nil {
			return nil, err
		}
		if err := ti.check(env, arg, dom); err != nil {
			return nil, err
		}
		return cod, nil
	}

	if dom, cod, ok := types.FunParts(ft); ok {
		if err := ti.check(env, arg, dom); err != nil {
			return nil, err
		}
		return cod, nil
	}
	dom, eff, cod, ok := types.EffFunParts(ft)
	if !ok {
		return nil, ti.typeErrorf(NotAFunction, "Cannot apply a value of non-function type %s", ft)
	}
	if err := ti.check(env, arg, dom); err != nil {
		return nil, err
	}
	if err := ti.perform(eff); err != nil {
		return nil, err
	}
	return cod, nil
}

// withEffects checks a lambda body with eff as its effect row, reporting whether the body applied any
// effectful function.
func (ti *InferenceContext) withEffects(eff types.Type, f func() error) (bool, error) {
	outer, outerPerformed := ti.effects, ti.performed
	ti.effects, ti.performed = eff, false
	err := f()
	performed := ti.performed
	ti.effects, ti.performed = outer, outerPerformed
	return performed, err
}

// perform adds the effects of an application to the effect row of the enclosing lambda. Effects outside
// of any lambda are not tracked.
func (ti *InferenceContext) perform(eff types.Type) error {
	if ti.effects == nil {
		return nil
	}
	ti.performed = true
	return ti.unify(ti.openEffects(eff), ti.effects)
}

// openEffects replaces the empty tail of a closed effect row with a fresh metavariable, so a closed row
// may be combined with the other effects of the enclosing lambda.
func (ti *InferenceContext) openEffects(row types.Type) types.Type {
	row = ti.vars.Prune(row)
	if sort, label, field, rest, ok := types.RowParts(row); ok && sort == types.EffectRow {
		return types.EffExtend(label, field, ti.openEffects(rest))
	}
	if sort, ok := types.IsEmptyRow(row); ok && sort == types.EffectRow {
		return ti.newMeta(types.KEffect, "")
	}
	return row
}
