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

package construct

import (
	"github.com/wdamron/polyrank/ast"
	"github.com/wdamron/polyrank/types"
)

// Types

// Type variable: `a`
func TVar(name string) *types.Var {
	return &types.Var{Name: name}
}

// Type constant: `Int`, `List`, etc
func TCon(name string) *types.Con {
	return &types.Con{Name: name}
}

// Type application: `Map k v`
func TApp(constructor types.Type, args ...types.Type) types.Type {
	return types.AppOf(append([]types.Type{constructor}, args...)...)
}

// Function type: `a -> b -> c`
func TFun(args ...types.Type) types.Type {
	return types.FunOf(args...)
}

// Effectful function type: `a -> <e> b`
func TEffFun(dom, eff, cod types.Type) types.Type {
	return types.EffFun(dom, eff, cod)
}

// Universal quantification with unannotated kinds: `forall a b. t`
func TForall(names []string, body types.Type) types.Type {
	return types.Foralls(names, nil, body)
}

// Universal quantification over a single variable of the given kind: `forall (a : k). t`
func TForallKind(name string, kind types.Kind, body types.Type) *types.Forall {
	return &types.Forall{Name: name, Kind: kind, Body: body}
}

// Record type: `{...}`
func TRecord(row types.Type) types.Type {
	return types.Record(row)
}

// Tagged (ad-hoc) variant-type: `[...]`
func TVariant(row types.Type) types.Type {
	return types.Variant(row)
}

// Field paired with a type, for row construction.
func TField(label string, t types.Type) types.Field {
	return types.Field{Label: label, Type: t}
}

// Row: `<a : _ , b : _ | rest>`. A nil rest closes the row.
func TRow(rest types.Type, fields ...types.Field) types.Type {
	return types.RowOf(types.FieldRow, fields, rest)
}

// Effect row: `<io : Unit | rest>`. A nil rest closes the row.
func TEffRow(rest types.Type, fields ...types.Field) types.Type {
	return types.RowOf(types.EffectRow, fields, rest)
}

// Empty row: `<>`
func TRowEmpty() types.Type {
	return types.RowEmpty
}

// Expressions:

// Variable
func Var(name string) *ast.Var {
	return &ast.Var{Name: name}
}

// Integer literal
func Int(syntax string) *ast.Literal {
	return &ast.Literal{Syntax: syntax, Kind: ast.IntLiteral}
}

// Float literal
func Float(syntax string) *ast.Literal {
	return &ast.Literal{Syntax: syntax, Kind: ast.FloatLiteral}
}

// String literal
func String(syntax string) *ast.Literal {
	return &ast.Literal{Syntax: syntax, Kind: ast.StringLiteral}
}

// Boolean literal
func Bool(syntax string) *ast.Literal {
	return &ast.Literal{Syntax: syntax, Kind: ast.BoolLiteral}
}

// Application: `f x y`
func App(f ast.Expr, args ...ast.Expr) ast.Expr {
	e := f
	for _, arg := range args {
		e = &ast.App{Func: e, Arg: arg}
	}
	return e
}

// Abstraction: `\x y -> x`
func Abs(params []string, body ast.Expr) ast.Expr {
	for i := len(params) - 1; i >= 0; i-- {
		body = &ast.Abs{Param: params[i], Body: body}
	}
	return body
}

// Abstraction: `\x -> x`
func Abs1(param string, body ast.Expr) *ast.Abs {
	return &ast.Abs{Param: param, Body: body}
}

// Abstraction: `\x y -> x`
func Abs2(param1, param2 string, body ast.Expr) *ast.Abs {
	return &ast.Abs{Param: param1, Body: &ast.Abs{Param: param2, Body: body}}
}

// Abstraction with an annotated parameter: `\(x : t) -> x`
func AbsAnn(param string, t types.Type, body ast.Expr) *ast.Abs {
	return &ast.Abs{Param: param, Type: t, Body: body}
}

// Let-binding: `let a = 1 in e`
func Let(varName string, value ast.Expr, body ast.Expr) *ast.Let {
	return &ast.Let{Var: varName, Value: value, Body: body}
}

// Annotated let-binding: `let (a : t) = 1 in e`
func LetAnn(varName string, t types.Type, value ast.Expr, body ast.Expr) *ast.Let {
	return &ast.Let{Var: varName, Type: t, Value: value, Body: body}
}

// Annotation: `(e : t) @arg1 @arg2`
func Ann(e ast.Expr, t types.Type, typeArgs ...types.Type) *ast.Ann {
	return &ast.Ann{Expr: e, Type: t, TypeArgs: typeArgs}
}

// Selecting value of label: `r.a`
func RecordSelect(record ast.Expr, label string) *ast.RecordSelect {
	return &ast.RecordSelect{Record: record, Label: label}
}

// Deleting label: `{r - a}`
func RecordRestrict(record ast.Expr, label string) *ast.RecordRestrict {
	return &ast.RecordRestrict{Record: record, Label: label}
}

// Extending record: `{a = 1, b = 2 | r}`
func RecordExtend(record ast.Expr, labels ...ast.LabelValue) *ast.RecordExtend {
	return &ast.RecordExtend{Record: record, Labels: labels}
}

// Paired label and value
func LabelValue(label string, value ast.Expr) ast.LabelValue {
	return ast.LabelValue{Label: label, Value: value}
}

// Empty record: `{}`
func RecordEmpty() *ast.RecordEmpty {
	return &ast.RecordEmpty{}
}

// Tagged (ad-hoc) variant: `:X a`
func Variant(label string, value ast.Expr) *ast.Variant {
	return &ast.Variant{Label: label, Value: value}
}

// Pattern-matching case expression over tagged (ad-hoc) variant-types:
//
//	match e {
//	    :X a -> expr1
//	  | :Y b -> expr2
//	  |  ...
//	  | z -> default_expr (optional)
//	}
func Match(value ast.Expr, cases []ast.MatchCase, defaultCase *ast.MatchCase) *ast.Match {
	return &ast.Match{Value: value, Cases: cases, Default: defaultCase}
}

// Case expression within Match: `:X a -> expr1`
func MatchCase(label string, varName string, value ast.Expr) ast.MatchCase {
	return ast.MatchCase{Label: label, Var: varName, Value: value}
}

// Top-level definition: `name = value` or `name : t = value`
func Definition(name string, t types.Type, value ast.Expr) ast.Definition {
	return ast.Definition{Name: name, Type: t, Value: value}
}
