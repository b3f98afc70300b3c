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
	"log/slog"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/wdamron/polyrank/ast"
	"github.com/wdamron/polyrank/types"
)

// CheckDefinitions checks a set of (possibly mutually-recursive) top-level definitions within env.
//
// Definitions with type signatures are checked against their signatures; the rest are inferred and
// generalized together with the other definitions they are mutually recursive with. On success, the returned
// environment inherits from env and holds the type of every definition.
func (ti *InferenceContext) CheckDefinitions(defs []ast.Definition, env *TypeEnv) (*TypeEnv, error) {
	groups, err := definitionGroups(defs)
	if err != nil {
		return nil, err
	}
	ti.begin(env)
	defEnv := NewTypeEnv(ti.env)
	ti.env = defEnv

	for _, def := range lo.Filter(defs, func(def ast.Definition, _ int) bool { return def.Type != nil }) {
		m := ti.ctx.Mark()
		t, err := ti.annotateType(def.Type)
		ti.ctx.Drop(m)
		if err != nil {
			return nil, ti.finish(errors.Wrapf(atExpr(err, def.Value), "Invalid signature for %s", def.Name))
		}
		defEnv.Types[def.Name] = t
	}

	for _, group := range groups {
		members := lo.Map(group.defs, func(i int, _ int) ast.Definition { return defs[i] })
		if !group.recursive && members[0].Type == nil {
			err = ti.checkDefinition(defEnv, members[0])
		} else {
			err = ti.checkGroup(defEnv, members)
		}
		if err != nil {
			return nil, ti.finish(err)
		}
	}
	return defEnv, ti.finish(nil)
}

// checkDefinition infers and generalizes the type of an unannotated, non-recursive definition. The synthesized
// type is kept as it is, so a lambda with a polymorphic parameter annotation retains its higher-rank type.
func (ti *InferenceContext) checkDefinition(defEnv *TypeEnv, def ast.Definition) error {
	if ti.tracing {
		ti.log("definition", slog.String("name", def.Name))
	}
	m := ti.ctx.Mark()
	t, err := ti.synth(emptyScope, def.Value)
	dropped := ti.ctx.Drop(m)
	if err != nil {
		return errors.Wrapf(err, "In definition of %s", def.Name)
	}
	defEnv.Types[def.Name] = ti.generalize(dropped, t)
	return nil
}

// checkGroup checks a group of mutually-recursive definitions. Unannotated definitions are monomorphic within
// the group and generalized after the whole group has been checked.
func (ti *InferenceContext) checkGroup(defEnv *TypeEnv, group []ast.Definition) error {
	if ti.tracing {
		ti.log("definitions", slog.Any("names", lo.Map(group, func(def ast.Definition, _ int) string { return def.Name })))
	}
	m := ti.ctx.Mark()
	selves := make(map[string]*types.Meta, len(group))
	for _, def := range group {
		if def.Type == nil {
			selves[def.Name] = ti.newMeta(types.KType, def.Name)
			defEnv.Types[def.Name] = selves[def.Name]
		}
	}
	for _, def := range group {
		var err error
		if self, ok := selves[def.Name]; ok {
			var vt types.Type
			if vt, err = ti.synth(emptyScope, def.Value); err == nil {
				err = ti.subsume(vt, self)
			}
		} else {
			err = ti.check(emptyScope, def.Value, defEnv.Types[def.Name])
		}
		if err != nil {
			ti.ctx.Drop(m)
			return errors.Wrapf(err, "In definition of %s", def.Name)
		}
	}
	dropped := ti.ctx.Drop(m)
	for name, self := range selves {
		defEnv.Types[name] = ti.generalize(dropped, self)
	}
	return nil
}
