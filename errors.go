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
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/wdamron/polyrank/ast"
	"github.com/wdamron/polyrank/types"
)

// Code classifies a type error.
type Code int

const (
	// An unknown code, for errors which did not originate from inference.
	UnknownError Code = iota
	// A name is absent from both the local and global environments.
	UnboundVariable
	// Two types have mismatched structure.
	UnificationFailure
	// A metavariable would be solved to a type containing itself, or a row would become recursive.
	OccursCheck
	// A type is applied at the wrong kind, or kinds of a metavariable and its solution differ.
	KindMismatch
	// A closed row lacks a required label.
	MissingLabel
	// A rigid type variable would escape its scope.
	NotPolymorphicEnough
	// A metavariable would be solved to a polymorphic type, or a type argument was applied to a monotype.
	Polymorphism
	// A non-function value is applied to an argument.
	NotAFunction
	// A broken internal invariant.
	InternalFault
)

var codeNames = [...]string{
	UnknownError:         "UnknownError",
	UnboundVariable:      "UnboundVariable",
	UnificationFailure:   "UnificationFailure",
	OccursCheck:          "OccursCheck",
	KindMismatch:         "KindMismatch",
	MissingLabel:         "MissingLabel",
	NotPolymorphicEnough: "NotPolymorphicEnough",
	Polymorphism:         "Polymorphism",
	NotAFunction:         "NotAFunction",
	InternalFault:        "InternalFault",
}

func (c Code) String() string {
	if c < 0 || int(c) >= len(codeNames) {
		return fmt.Sprintf("Code(%d)", int(c))
	}
	return codeNames[c]
}

// TypeError is returned when inference fails.
type TypeError struct {
	Code    Code
	Message string
	// Types involved in the error, pruned at the time of failure.
	Types []types.Type
	// Innermost expression being inferred when the error occurred, if any.
	Expr ast.Expr
}

func (e *TypeError) Error() string { return e.Message }

// ErrorCode returns the code of the TypeError wrapped within err, or UnknownError.
func ErrorCode(err error) Code {
	var te *TypeError
	if errors.As(err, &te) {
		return te.Code
	}
	return UnknownError
}

// AsTypeError returns the TypeError wrapped within err.
func AsTypeError(err error) (*TypeError, bool) {
	var te *TypeError
	ok := errors.As(err, &te)
	return te, ok
}

// typeErrorf creates a TypeError, formatting the involved types with %s verbs in order.
func (ti *InferenceContext) typeErrorf(code Code, format string, ts ...types.Type) *TypeError {
	args := make([]interface{}, len(ts))
	pruned := make([]types.Type, len(ts))
	for i, t := range ts {
		pruned[i] = ti.vars.Prune(t)
		args[i] = ti.typeString(pruned[i])
	}
	return &TypeError{Code: code, Message: fmt.Sprintf(format, args...), Types: pruned}
}

func (ti *InferenceContext) mismatch(a, b types.Type) error {
	return ti.typeErrorf(UnificationFailure, "Cannot unify %s with %s", a, b)
}

func (ti *InferenceContext) internalf(format string, args ...interface{}) error {
	return errors.WithStack(&TypeError{Code: InternalFault, Message: "Internal fault: " + fmt.Sprintf(format, args...)})
}

// internal wraps an error returned by the metavariable arena or context as an internal fault.
func (ti *InferenceContext) internal(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsTypeError(err); ok {
		return err
	}
	return errors.WithStack(&TypeError{Code: InternalFault, Message: "Internal fault: " + err.Error()})
}

// atExpr records expr as the innermost expression of a type error which has none yet.
func atExpr(err error, expr ast.Expr) error {
	if te, ok := AsTypeError(err); ok && te.Expr == nil {
		te.Expr = expr
	}
	return err
}

func (ti *InferenceContext) typeString(t types.Type) string {
	if ti.showKinds {
		return types.TypeStringWithKinds(t)
	}
	return types.TypeString(t)
}

func (ti *InferenceContext) kindMismatch(a, b types.Kind) error {
	a, b = ti.vars.PruneKind(a), ti.vars.PruneKind(b)
	var sb strings.Builder
	sb.WriteString("Kind mismatch: ")
	sb.WriteString(types.KindString(a))
	sb.WriteString(" and ")
	sb.WriteString(types.KindString(b))
	return &TypeError{Code: KindMismatch, Message: sb.String()}
}
