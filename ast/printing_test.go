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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wdamron/polyrank/types"
)

func TestExprString(t *testing.T) {
	f, x, r := &Var{Name: "f"}, &Var{Name: "x"}, &Var{Name: "r"}
	one := &Literal{Syntax: "1", Kind: IntLiteral}
	a := &types.Var{Name: "a"}
	id := &types.Forall{Name: "a", Body: types.Fun(a, a)}

	cases := []struct {
		e    Expr
		want string
	}{
		{&Abs{Param: "x", Body: x}, `\x -> x`},
		{&App{Func: &Abs{Param: "x", Body: x}, Arg: one}, `(\x -> x) 1`},
		{&Abs{Param: "f", Body: &Abs{Param: "x", Body: &App{Func: f, Arg: &App{Func: f, Arg: x}}}}, `\f -> \x -> f (f x)`},
		{&App{Func: &App{Func: f, Arg: x}, Arg: one}, `f x 1`},
		{&Abs{Param: "f", Type: id, Body: f}, `\(f : forall a. a -> a) -> f`},
		{&Let{Var: "y", Value: one, Body: &Var{Name: "y"}}, `let y = 1 in y`},
		{&Let{Var: "y", Type: types.Int, Value: one, Body: &Var{Name: "y"}}, `let (y : Int) = 1 in y`},
		{&Ann{Expr: &Abs{Param: "x", Body: x}, Type: id, TypeArgs: []types.Type{types.Int}}, `(\x -> x : forall a. a -> a) @Int`},
		{&RecordExtend{Record: &RecordEmpty{}, Labels: []LabelValue{{"y", one}, {"x", x}}}, `{x = x, y = 1}`},
		{&RecordExtend{Record: r, Labels: []LabelValue{{"x", one}}}, `{x = 1 | r}`},
		{&RecordSelect{Record: r, Label: "x"}, `r.x`},
		{&RecordRestrict{Record: r, Label: "x"}, `{r - x}`},
		{&Variant{Label: "some", Value: one}, `:some 1`},
		{&Match{
			Value:   r,
			Cases:   []MatchCase{{"some", "x", x}},
			Default: &MatchCase{Var: "other", Value: one},
		}, `match r { :some x -> x | other -> 1 }`},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ExprString(c.e))
	}
}

func TestFreeVars(t *testing.T) {
	// \x -> let g = \y -> g (f x y) in match h { :a z -> z | w -> k w }
	e := &Abs{Param: "x", Body: &Let{
		Var: "g",
		Value: &Abs{Param: "y", Body: &App{Func: &Var{Name: "g"}, Arg: &App{
			Func: &App{Func: &Var{Name: "f"}, Arg: &Var{Name: "x"}},
			Arg:  &Var{Name: "y"},
		}}},
		Body: &Match{
			Value:   &Var{Name: "h"},
			Cases:   []MatchCase{{"a", "z", &Var{Name: "z"}}},
			Default: &MatchCase{Var: "w", Value: &App{Func: &Var{Name: "k"}, Arg: &Var{Name: "w"}}},
		},
	}}
	assert.Equal(t, []string{"f", "h", "k"}, FreeVars(e))
}
