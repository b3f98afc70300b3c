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
	"github.com/pkg/errors"

	"github.com/wdamron/polyrank/types"
)

// TypeEnv is a type-environment containing mappings from identifiers to declared types, and from
// type constants to their kinds.
//
// A type-environment cannot be used concurrently for inference; to share a type-environment
// across threads, create a new type-environment for each thread which inherits from the
// shared environment.
type TypeEnv struct {
	// Predeclared types in the parent of the current type-environment
	Parent *TypeEnv
	// Mappings from identifiers to declared types in the current type-environment
	Types map[string]types.Type
	// Mappings from type constants to kinds in the current type-environment
	Kinds map[string]types.Kind

	checker *InferenceContext
}

var builtinKinds = map[string]types.Kind{
	types.Arrow.Name:      types.KFunOf(types.KType, types.KType, types.KType),
	types.EffArrow.Name:   types.KFunOf(types.KType, types.KEffect, types.KType, types.KType),
	types.RecordCon.Name:  types.KFunOf(types.KRow, types.KType),
	types.VariantCon.Name: types.KFunOf(types.KRow, types.KType),
	types.RowEmpty.Name:   types.KRow,
	types.EffEmpty.Name:   types.KEffect,
	types.Int.Name:        types.KType,
	types.Float.Name:      types.KType,
	types.String.Name:     types.KType,
	types.Bool.Name:       types.KType,
	types.Unit.Name:       types.KType,
}

// Create a type-environment. The new environment will inherit bindings from the parent, if the parent is not nil.
//
// Builtin type constants (functions, records, variants, rows, and primitive types) are always in scope.
func NewTypeEnv(parent *TypeEnv) *TypeEnv {
	return &TypeEnv{
		Parent: parent,
		Types:  make(map[string]types.Type),
		Kinds:  make(map[string]types.Kind),
	}
}

// Declare a type for an identifier within the type environment.
//
// The type is kind-checked against Type and stored with the kinds of its quantified variables filled in.
// Declared types must be closed: every type variable must be bound by a forall.
func (e *TypeEnv) Declare(name string, t types.Type) error {
	if e.checker == nil {
		e.checker = NewContext()
	}
	annotated, err := e.checker.kindCheckRoot(t, e)
	if err != nil {
		return errors.Wrapf(err, "Invalid type declared for %s", name)
	}
	e.Types[name] = annotated
	return nil
}

// Declare a type for an identifier within the type environment. The type will not be kind-checked.
func (e *TypeEnv) Assign(name string, t types.Type) { e.Types[name] = t }

// Declare the kind of a type constant within the type environment.
func (e *TypeEnv) DeclareKind(name string, k types.Kind) { e.Kinds[name] = k }

// Remove the assigned type for an identifier within the type environment. Parent environment(s) will not be affected,
// and the identifier's type will still be visible if defined in a parent environment.
func (e *TypeEnv) Remove(name string) { delete(e.Types, name) }

// Lookup the type for an identifier in the environment or its parent environment(s).
func (e *TypeEnv) Lookup(name string) types.Type {
	if t, ok := e.Types[name]; ok {
		return t
	}
	if e.Parent == nil {
		return nil
	}
	return e.Parent.Lookup(name)
}

// Lookup the kind of a type constant in the environment, its parent environment(s), or the builtin constants.
func (e *TypeEnv) LookupKind(name string) types.Kind {
	for env := e; env != nil; env = env.Parent {
		if k, ok := env.Kinds[name]; ok {
			return k
		}
	}
	return builtinKinds[name]
}
