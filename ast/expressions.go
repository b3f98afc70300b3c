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

package ast

import (
	"github.com/wdamron/polyrank/types"
)

// Expr is the base for all expressions.
//
// The set of expressions is closed; switches over Expr should handle every form below.
type Expr interface {
	// Name of the syntax-type of the expression.
	ExprName() string
	isExpr()
}

var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*Var)(nil)
	_ Expr = (*App)(nil)
	_ Expr = (*Abs)(nil)
	_ Expr = (*Let)(nil)
	_ Expr = (*Ann)(nil)
	_ Expr = (*RecordSelect)(nil)
	_ Expr = (*RecordExtend)(nil)
	_ Expr = (*RecordRestrict)(nil)
	_ Expr = (*RecordEmpty)(nil)
	_ Expr = (*Variant)(nil)
	_ Expr = (*Match)(nil)
)

func (*Literal) isExpr()        {}
func (*Var) isExpr()            {}
func (*App) isExpr()            {}
func (*Abs) isExpr()            {}
func (*Let) isExpr()            {}
func (*Ann) isExpr()            {}
func (*RecordSelect) isExpr()   {}
func (*RecordExtend) isExpr()   {}
func (*RecordRestrict) isExpr() {}
func (*RecordEmpty) isExpr()    {}
func (*Variant) isExpr()        {}
func (*Match) isExpr()          {}

// LiteralKind selects the builtin type of a literal.
type LiteralKind uint8

const (
	IntLiteral LiteralKind = iota
	FloatLiteral
	StringLiteral
	BoolLiteral
	UnitLiteral
)

// Literal value: `1`, `2.5`, `"s"`, `true`, `()`
type Literal struct {
	// Syntax is a string representation of the literal value. The syntax will be printed when the literal is printed.
	Syntax string
	Kind   LiteralKind
}

// Returns the syntax of e.
func (e *Literal) ExprName() string { return e.Syntax }

// Type returns the builtin type of the literal.
func (e *Literal) Type() types.Type {
	switch e.Kind {
	case FloatLiteral:
		return types.Float
	case StringLiteral:
		return types.String
	case BoolLiteral:
		return types.Bool
	case UnitLiteral:
		return types.Unit
	}
	return types.Int
}

// Variable
type Var struct {
	Name string
}

// "Var"
func (e *Var) ExprName() string { return "Var" }

// Application: `f x`
type App struct {
	Func Expr
	Arg  Expr
}

// "App"
func (e *App) ExprName() string { return "App" }

// Abstraction: `\x -> x` or `\(x : forall a. a -> a) -> x`
type Abs struct {
	Param string
	// Type is the optional annotation of the parameter. It may be polymorphic.
	Type types.Type
	Body Expr
}

// "Abs"
func (e *Abs) ExprName() string { return "Abs" }

// Recursive let-binding: `let a = 1 in e` or `let (a : Int) = 1 in e`
type Let struct {
	Var string
	// Type is the optional annotation of the bound value.
	Type  types.Type
	Value Expr
	Body  Expr
}

// "Let"
func (e *Let) ExprName() string { return "Let" }

// Annotation: `(e : forall a. a -> a)`, optionally followed by explicit type applications `@Int`
type Ann struct {
	Expr     Expr
	Type     types.Type
	TypeArgs []types.Type
}

// "Ann"
func (e *Ann) ExprName() string { return "Ann" }

// Selecting value of label: `r.a`
type RecordSelect struct {
	Record Expr
	Label  string
}

// "RecordSelect"
func (e *RecordSelect) ExprName() string { return "RecordSelect" }

// Extending record: `{a = 1, b = 2 | r}`
type RecordExtend struct {
	Record Expr
	Labels []LabelValue
}

// "RecordExtend"
func (e *RecordExtend) ExprName() string { return "RecordExtend" }

// Paired label and value
type LabelValue struct {
	Label string
	Value Expr
}

// Deleting label: `{r - a}`
type RecordRestrict struct {
	Record Expr
	Label  string
}

// "RecordRestrict"
func (e *RecordRestrict) ExprName() string { return "RecordRestrict" }

// Empty record: `{}`
type RecordEmpty struct{}

// "RecordEmpty"
func (e *RecordEmpty) ExprName() string { return "RecordEmpty" }

// Tagged (ad-hoc) variant: `:X a`
type Variant struct {
	Label string
	Value Expr
}

// "Variant"
func (e *Variant) ExprName() string { return "Variant" }

// Pattern-matching case expression over tagged (ad-hoc) variant-types:
//
//	match e {
//	    :X a -> expr1
//	  | :Y b -> expr2
//	  |  ...
//	  | z -> default_expr (optional)
//	}
type Match struct {
	Value   Expr
	Cases   []MatchCase
	Default *MatchCase
}

// "Match"
func (e *Match) ExprName() string { return "Match" }

// Case expression within Match: `:X a -> expr1`
type MatchCase struct {
	Label string
	Var   string
	Value Expr
}

// Top-level definition, optionally carrying a type signature. Definitions are checked together as a group.
type Definition struct {
	Name  string
	Type  types.Type
	Value Expr
}
