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
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/wdamron/polyrank/ast"
	"github.com/wdamron/polyrank/internal/typeutil"
	"github.com/wdamron/polyrank/types"
)

// InferenceContext is a reusable context for type inference.
//
// Each top-level call (Infer, Check, Synth, Unify, Subsume, CheckDefinitions) starts from an empty ordered
// context and a fresh metavariable arena.
//
// An inference context cannot be used concurrently.
type InferenceContext struct {
	tracing    bool
	showKinds  bool
	needsReset bool

	logger *slog.Logger
	env    *TypeEnv

	ctx     typeutil.Context
	vars    typeutil.VarTracker
	skolems int

	// effect row of the innermost enclosing lambda body; nil outside of any lambda
	effects   types.Type
	performed bool

	err     error
	invalid ast.Expr
}

// Create a new type-inference context. A context may be reused for inference.
func NewContext() *InferenceContext {
	ti := &InferenceContext{}
	ti.ctx.Reset()
	return ti
}

func (ti *InferenceContext) reset() {
	ti.ctx.Reset()
	ti.vars.Reset()
	ti.env, ti.err, ti.invalid, ti.skolems, ti.needsReset = nil, nil, nil, 0, false
	ti.effects, ti.performed = nil, false
}

// Reset the state of the context. The context will be reset automatically before inference.
func (ti *InferenceContext) Reset() {
	if !ti.needsReset {
		return
	}
	ti.reset()
}

// Enable debug-level trace records for each inference, subsumption, unification, and solving step.
//
// By default, tracing is disabled.
func (ti *InferenceContext) EnableTracing(enabled bool) { ti.tracing = enabled }

// Set the logger which receives trace records. The default logger is used when l is nil.
func (ti *InferenceContext) SetLogger(l *slog.Logger) { ti.logger = l }

// Include the kinds of quantified variables when printing types in error messages.
func (ti *InferenceContext) ShowKinds(enabled bool) { ti.showKinds = enabled }

// Get the error which caused inference to fail.
func (ti *InferenceContext) Error() error { return ti.err }

// Get the expression which caused inference to fail.
func (ti *InferenceContext) InvalidExpr() ast.Expr { return ti.invalid }

// Get the number of elements remaining in the ordered context. Every top-level call leaves the context as it found it.
func (ti *InferenceContext) ContextDepth() int { return ti.ctx.Len() }

func (ti *InferenceContext) begin(env *TypeEnv) {
	if ti.needsReset {
		ti.reset()
	}
	if env == nil {
		env = NewTypeEnv(nil)
	}
	ti.env, ti.needsReset = env, true
}

func (ti *InferenceContext) finish(err error) error {
	if err != nil {
		ti.err = err
		if te, ok := AsTypeError(err); ok {
			ti.invalid = te.Expr
		}
		if ti.tracing {
			ti.log("fail", slog.String("error", err.Error()), slog.String("code", ErrorCode(err).String()))
		}
	}
	ti.env = nil
	return err
}

// Infer the principal type of expr within env. The result is closed and fully generalized.
//
// A type-environment cannot be used concurrently for inference; to share a type-environment
// across threads, create a new type-environment for each thread which inherits from the
// shared environment.
func (ti *InferenceContext) Infer(expr ast.Expr, env *TypeEnv) (types.Type, error) {
	if expr == nil {
		return nil, errors.New("Empty expression")
	}
	ti.begin(env)
	m := ti.ctx.Mark()
	t, err := ti.synth(emptyScope, expr)
	dropped := ti.ctx.Drop(m)
	if err != nil {
		return nil, ti.finish(err)
	}
	return ti.generalize(dropped, t), ti.finish(nil)
}

// Check expr against the type t within env. The type is kind-checked before checking expr.
func (ti *InferenceContext) Check(expr ast.Expr, t types.Type, env *TypeEnv) error {
	if expr == nil {
		return errors.New("Empty expression")
	}
	ti.begin(env)
	m := ti.ctx.Mark()
	err := ti.checkAnnotated(expr, t)
	ti.ctx.Drop(m)
	return ti.finish(err)
}

func (ti *InferenceContext) checkAnnotated(expr ast.Expr, t types.Type) error {
	at, err := ti.annotateType(t)
	if err != nil {
		return atExpr(err, expr)
	}
	return ti.check(emptyScope, expr, at)
}

// Synthesize the type of expr within env without generalizing it. Unsolved metavariables remain in the result.
func (ti *InferenceContext) Synth(expr ast.Expr, env *TypeEnv) (types.Type, error) {
	if expr == nil {
		return nil, errors.New("Empty expression")
	}
	ti.begin(env)
	m := ti.ctx.Mark()
	t, err := ti.synth(emptyScope, expr)
	ti.ctx.Drop(m)
	if err != nil {
		return nil, ti.finish(err)
	}
	return ti.vars.Prune(t), ti.finish(nil)
}

// Unify two closed types within env. Both types are kind-checked against Type.
func (ti *InferenceContext) Unify(a, b types.Type, env *TypeEnv) error {
	ti.begin(env)
	m := ti.ctx.Mark()
	err := ti.relate(a, b, ti.unify)
	ti.ctx.Drop(m)
	return ti.finish(err)
}

// Check that the closed type a is at least as polymorphic as the closed type b within env.
// Both types are kind-checked against Type.
func (ti *InferenceContext) Subsume(a, b types.Type, env *TypeEnv) error {
	ti.begin(env)
	m := ti.ctx.Mark()
	err := ti.relate(a, b, ti.subsume)
	ti.ctx.Drop(m)
	return ti.finish(err)
}

func (ti *InferenceContext) relate(a, b types.Type, f func(a, b types.Type) error) error {
	aa, err := ti.annotateType(a)
	if err != nil {
		return err
	}
	ab, err := ti.annotateType(b)
	if err != nil {
		return err
	}
	return f(aa, ab)
}

// kindCheckRoot kind-checks a declared type within env.
func (ti *InferenceContext) kindCheckRoot(t types.Type, env *TypeEnv) (types.Type, error) {
	ti.begin(env)
	m := ti.ctx.Mark()
	at, err := ti.annotateType(t)
	ti.ctx.Drop(m)
	return at, ti.finish(err)
}

func (ti *InferenceContext) log(msg string, attrs ...slog.Attr) {
	l := ti.logger
	if l == nil {
		l = slog.Default()
	}
	l.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs...)
}

// trace logs a step with its pruned types and the current ordered context.
func (ti *InferenceContext) trace(op string, ts ...types.Type) {
	if !ti.tracing {
		return
	}
	strs := make([]string, len(ts))
	for i, t := range ts {
		strs[i] = ti.typeString(ti.vars.Prune(t))
	}
	ti.log(op, slog.Any("types", strs), slog.String("context", ti.ctx.String()))
}

func (ti *InferenceContext) traceExpr(op string, expr ast.Expr, ts ...types.Type) {
	if !ti.tracing {
		return
	}
	strs := make([]string, len(ts))
	for i, t := range ts {
		strs[i] = ti.typeString(ti.vars.Prune(t))
	}
	ti.log(op, slog.String("expr", ast.ExprString(expr)), slog.Any("types", strs), slog.String("context", ti.ctx.String()))
}
