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

package polyrank_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/wdamron/polyrank"
	. "github.com/wdamron/polyrank/construct"

	"github.com/wdamron/polyrank/ast"
	"github.com/wdamron/polyrank/internal/typeutil"
	"github.com/wdamron/polyrank/types"
)

func testEnv(t testing.TB) *TypeEnv {
	env := NewTypeEnv(nil)
	a := TVar("a")
	require.NoError(t, env.Declare("add", TFun(types.Int, types.Int, types.Int)))
	require.NoError(t, env.Declare("eq", TFun(types.Int, types.Int, types.Bool)))
	require.NoError(t, env.Declare("if", TForall([]string{"a"}, TFun(types.Bool, a, a, a))))
	require.NoError(t, env.Declare("somebool", types.Bool))
	return env
}

func inferString(t *testing.T, ctx *InferenceContext, env *TypeEnv, expr ast.Expr) string {
	t.Helper()
	ty, err := ctx.Infer(expr, env)
	if err != nil {
		t.Fatalf("infer %s: %v", ast.ExprString(expr), err)
	}
	if depth := ctx.ContextDepth(); depth != 0 {
		t.Fatalf("expected an empty context after inference, found %d elements", depth)
	}
	return types.TypeString(ty)
}

func inferError(t *testing.T, ctx *InferenceContext, env *TypeEnv, expr ast.Expr) error {
	t.Helper()
	ty, err := ctx.Infer(expr, env)
	if err == nil {
		t.Fatalf("expected an error for %s, inferred %s", ast.ExprString(expr), types.TypeString(ty))
	}
	if depth := ctx.ContextDepth(); depth != 0 {
		t.Fatalf("expected an empty context after failed inference, found %d elements", depth)
	}
	if ctx.Error() != err {
		t.Fatalf("expected the failure to be recorded by the context")
	}
	return err
}

func TestIdentity(t *testing.T) {
	env := NewTypeEnv(nil)
	ctx := NewContext()
	expr := Abs1("x", Var("x"))

	exprString := ast.ExprString(expr)
	if exprString != `\x -> x` {
		t.Fatalf("expr: %s", exprString)
	}

	// Infer twice to ensure state is properly reset between calls:

	if typeString := inferString(t, ctx, env, expr); typeString != "forall a. a -> a" {
		t.Fatalf("type: %s", typeString)
	}
	typeString := inferString(t, ctx, env, expr)
	if typeString != "forall a. a -> a" {
		t.Fatalf("type: %s", typeString)
	}
	t.Logf("type: %s", typeString)
}

func TestApplyIdentity(t *testing.T) {
	ctx := NewContext()
	expr := App(Abs1("x", Var("x")), Int("1"))
	assert.Equal(t, `(\x -> x) 1`, ast.ExprString(expr))
	assert.Equal(t, "Int", inferString(t, ctx, nil, expr))
}

func TestTwice(t *testing.T) {
	ctx := NewContext()
	f, x := Var("f"), Var("x")
	expr := Abs([]string{"f", "x"}, App(f, App(f, x)))
	assert.Equal(t, `\f -> \x -> f (f x)`, ast.ExprString(expr))
	assert.Equal(t, "forall a. (a -> a) -> a -> a", inferString(t, ctx, nil, expr))
}

func TestConst(t *testing.T) {
	ctx := NewContext()
	assert.Equal(t, "forall a b. a -> b -> a", inferString(t, ctx, nil, Abs2("x", "y", Var("x"))))
}

func TestRecursiveLet(t *testing.T) {
	env := testEnv(t)
	ctx := NewContext()

	expr := Abs1("x", Let("f",
		Abs1("y", App(Var("if"), Var("somebool"), Var("y"), App(Var("f"), App(Var("add"), Var("y"), Var("y"))))),
		App(Var("f"), Var("x"))))

	exprString := ast.ExprString(expr)
	if exprString != `\x -> let f = \y -> if somebool y (f (add y y)) in f x` {
		t.Fatalf("expr: %s", exprString)
	}

	envCount := len(env.Types)
	typeString := inferString(t, ctx, env, expr)
	if len(env.Types) != envCount {
		t.Fatalf("expected unmodified type environment after inference")
	}
	if typeString != "Int -> Int" {
		t.Fatalf("type: %s", typeString)
	}
}

func TestLetPolymorphism(t *testing.T) {
	env := testEnv(t)
	ctx := NewContext()
	expr := Let("id", Abs1("x", Var("x")),
		RecordExtend(RecordEmpty(),
			LabelValue("a", App(Var("id"), Int("1"))),
			LabelValue("b", App(Var("id"), Var("somebool")))))
	assert.Equal(t, `let id = \x -> x in {a = id 1, b = id somebool}`, ast.ExprString(expr))
	assert.Equal(t, "{a : Int, b : Bool}", inferString(t, ctx, env, expr))
}

func TestAnnotatedLet(t *testing.T) {
	ctx := NewContext()
	a := TVar("a")
	expr := LetAnn("id", TForall([]string{"a"}, TFun(a, a)), Abs1("x", Var("x")), App(Var("id"), Var("id")))
	assert.Equal(t, "forall a. a -> a", inferString(t, ctx, nil, expr))

	bad := LetAnn("id", TForall([]string{"a"}, TFun(a, a)), Abs1("x", Int("1")), Var("id"))
	assert.Equal(t, UnificationFailure, ErrorCode(inferError(t, ctx, nil, bad)))
}

func TestSkolemEscape(t *testing.T) {
	ctx := NewContext()
	a := TVar("a")
	y := Var("y")
	expr := Abs1("y", Ann(Abs1("x", y), TForall([]string{"a"}, TFun(a, a))))
	assert.Equal(t, `\y -> (\x -> y : forall a. a -> a)`, ast.ExprString(expr))

	err := inferError(t, ctx, nil, expr)
	if ErrorCode(err) != NotPolymorphicEnough {
		t.Fatalf("expected NotPolymorphicEnough, found %v: %v", ErrorCode(err), err)
	}
	assert.Same(t, y, ctx.InvalidExpr())

	// the context remains usable after a failure
	assert.Equal(t, "forall a. a -> a", inferString(t, ctx, nil, Abs1("x", Var("x"))))
	assert.Nil(t, ctx.Error())
}

func TestHigherRankAnnotation(t *testing.T) {
	ctx := NewContext()
	a := TVar("a")
	id := TForall([]string{"a"}, TFun(a, a))
	expr := Ann(Abs1("f", Var("f")), TFun(id, types.Int, types.Int))
	assert.Equal(t, "(forall a. a -> a) -> Int -> Int", inferString(t, ctx, nil, expr))
}

func TestHigherRankParameter(t *testing.T) {
	env := testEnv(t)
	ctx := NewContext()
	a := TVar("a")
	id := TForall([]string{"a"}, TFun(a, a))
	f := Var("f")
	useId := AbsAnn("f", id, RecordExtend(RecordEmpty(),
		LabelValue("a", App(f, Int("1"))),
		LabelValue("b", App(f, Var("somebool")))))

	assert.Equal(t, "(forall a. a -> a) -> {a : Int, b : Bool}", inferString(t, ctx, env, useId))
	assert.Equal(t, "{a : Int, b : Bool}", inferString(t, ctx, env, App(useId, Abs1("x", Var("x")))))

	// a monomorphic function is not polymorphic enough
	err := inferError(t, ctx, env, App(useId, Abs1("x", Int("1"))))
	assert.Equal(t, UnificationFailure, ErrorCode(err))

	// a lambda-bound (monomorphic) variable may not be passed where a polymorphic function is required
	err = inferError(t, ctx, env, Abs1("g", App(useId, Var("g"))))
	assert.Equal(t, NotPolymorphicEnough, ErrorCode(err))
}

func TestTypeApplication(t *testing.T) {
	ctx := NewContext()
	a := TVar("a")
	id := Ann(Abs1("x", Var("x")), TForall([]string{"a"}, TFun(a, a)), types.Int)
	assert.Equal(t, "Int -> Int", inferString(t, ctx, nil, id))
	assert.Equal(t, "Int", inferString(t, ctx, nil, App(id, Int("1"))))

	idBool := Ann(Abs1("x", Var("x")), TForall([]string{"a"}, TFun(a, a)), types.Bool)
	assert.Equal(t, UnificationFailure, ErrorCode(inferError(t, ctx, nil, App(idBool, Int("1")))))

	mono := Ann(Int("1"), types.Int, types.Int)
	assert.Equal(t, Polymorphism, ErrorCode(inferError(t, ctx, nil, mono)))
}

func TestRecordSelectRestrict(t *testing.T) {
	ctx := NewContext()
	sel := Abs1("r", RecordSelect(Var("r"), "x"))
	assert.Equal(t, "forall a b. {x : a | b} -> a", inferString(t, ctx, nil, sel))

	restrict := Abs1("r", RecordRestrict(Var("r"), "x"))
	assert.Equal(t, "forall a b. {x : a | b} -> {b}", inferString(t, ctx, nil, restrict))

	extend := Abs1("r", RecordExtend(Var("r"), LabelValue("y", Int("1"))))
	assert.Equal(t, "forall a. {a} -> {y : Int | a}", inferString(t, ctx, nil, extend))

	r := Var("r")
	both := Abs1("r", RecordExtend(RecordEmpty(),
		LabelValue("p", RecordSelect(r, "x")),
		LabelValue("q", RecordSelect(r, "y"))))
	assert.Equal(t, "forall a b c. {x : a, y : b | c} -> {p : a, q : b}", inferString(t, ctx, nil, both))

	ctx.ShowKinds(true)
	ty, err := ctx.Infer(sel, nil)
	require.NoError(t, err)
	assert.Equal(t, "forall (a : Type) (b : Row). {x : a | b} -> a", types.TypeStringWithKinds(ty))
}

func TestRecursiveRow(t *testing.T) {
	env := testEnv(t)
	ctx := NewContext()
	r := Var("r")
	expr := Abs1("r", App(Var("if"), Var("somebool"),
		RecordExtend(r, LabelValue("x", Int("1"))),
		RecordExtend(r, LabelValue("y", Bool("true")))))
	assert.Equal(t, OccursCheck, ErrorCode(inferError(t, ctx, env, expr)))
}

func TestMissingLabel(t *testing.T) {
	ctx := NewContext()
	err := inferError(t, ctx, nil, RecordSelect(RecordEmpty(), "x"))
	assert.Equal(t, MissingLabel, ErrorCode(err))
	assert.Contains(t, err.Error(), "label x")

	restrict := RecordRestrict(RecordExtend(RecordEmpty(), LabelValue("x", Int("1"))), "y")
	assert.Equal(t, MissingLabel, ErrorCode(inferError(t, ctx, nil, restrict)))
}

func TestOccursCheck(t *testing.T) {
	ctx := NewContext()
	x := Var("x")
	err := inferError(t, ctx, nil, Abs1("x", App(x, x)))
	assert.Equal(t, OccursCheck, ErrorCode(err))
}

func TestUnboundVariable(t *testing.T) {
	ctx := NewContext()
	y := Var("y")
	err := inferError(t, ctx, nil, Abs1("x", y))
	assert.Equal(t, UnboundVariable, ErrorCode(err))
	assert.Same(t, y, ctx.InvalidExpr())

	te, ok := AsTypeError(err)
	require.True(t, ok)
	assert.Equal(t, "Variable y is not defined", te.Message)
}

func TestNotAFunction(t *testing.T) {
	ctx := NewContext()
	expr := App(Int("1"), Int("2"))
	err := inferError(t, ctx, nil, expr)
	assert.Equal(t, NotAFunction, ErrorCode(err))
	assert.Same(t, expr, ctx.InvalidExpr())
}

func TestVariantMatch(t *testing.T) {
	ctx := NewContext()
	assert.Equal(t, "forall a. [some : Int | a]", inferString(t, ctx, nil, Variant("some", Int("1"))))

	closed := Abs1("v", Match(Var("v"), []ast.MatchCase{
		MatchCase("some", "x", Var("x")),
		MatchCase("none", "y", Int("0")),
	}, nil))
	assert.Equal(t, "forall a. [none : a, some : Int] -> Int", inferString(t, ctx, nil, closed))

	def := MatchCase("", "other", Int("0"))
	open := Abs1("v", Match(Var("v"), []ast.MatchCase{MatchCase("some", "x", Var("x"))}, &def))
	assert.Equal(t, "forall a. [some : Int | a] -> Int", inferString(t, ctx, nil, open))

	extra := Match(Variant("other", Int("1")), []ast.MatchCase{MatchCase("some", "x", Var("x"))}, nil)
	assert.Equal(t, MissingLabel, ErrorCode(inferError(t, ctx, nil, extra)))
}

func TestEffectfulFunctions(t *testing.T) {
	env := NewTypeEnv(nil)
	ctx := NewContext()
	io := TEffRow(nil, TField("io", types.Unit))
	require.NoError(t, env.Declare("print", TEffFun(types.String, io, types.Unit)))

	st := TEffRow(nil, TField("st", types.Int))
	require.NoError(t, env.Declare("tick", TEffFun(types.Int, st, types.Unit)))

	expr := Abs1("s", App(Var("print"), Var("s")))
	assert.Equal(t, "forall a. String -> <io : Unit | a> Unit", inferString(t, ctx, env, expr))
	assert.NoError(t, ctx.Check(expr, TEffFun(types.String, io, types.Unit), env))
	assert.Equal(t, MissingLabel, ErrorCode(ctx.Check(expr, TEffFun(types.String, TEffRow(nil), types.Unit), env)))
	assert.Equal(t, MissingLabel, ErrorCode(ctx.Check(expr, TFun(types.String, types.Unit), env)))

	// a let-bound effectful function keeps its effects
	bound := Let("f", expr, Var("f"))
	assert.NoError(t, ctx.Check(bound, TEffFun(types.String, io, types.Unit), env))
	assert.Equal(t, MissingLabel, ErrorCode(ctx.Check(bound, TEffFun(types.String, st, types.Unit), env)))

	both := Abs1("s", RecordExtend(RecordEmpty(),
		LabelValue("a", App(Var("print"), Var("s"))),
		LabelValue("b", App(Var("tick"), Int("1"))),
	))
	assert.Equal(t, "forall a. String -> <io : Unit, st : Int | a> {a : Unit, b : Unit}", inferString(t, ctx, env, both))

	// effects belong to the innermost enclosing lambda
	inner := Abs1("s", Abs1("u", App(Var("print"), Var("s"))))
	assert.Equal(t, "forall a b. String -> a -> <io : Unit | b> Unit", inferString(t, ctx, env, inner))

	// a pure function may be used where effects are permitted
	assert.NoError(t, ctx.Check(Abs1("s", Var("s")), TEffFun(types.String, io, types.String), env))

	// applications outside of any lambda are not tracked
	assert.Equal(t, "Unit", inferString(t, ctx, env, App(Var("print"), String(`"hi"`))))
	assert.Equal(t, 0, ctx.ContextDepth())
}

// instantiation returns a closed type of the given kind; alt selects between two choices per kind.
func instantiation(k types.Kind, alt bool) types.Type {
	switch types.KindString(k) {
	case "Row":
		if alt {
			return TRowEmpty()
		}
		return TRow(nil, TField("zz", types.Int))
	case "Effect":
		if alt {
			return TEffRow(nil)
		}
		return TEffRow(nil, TField("st", types.Int))
	}
	if alt {
		return TFun(types.Bool, types.Bool)
	}
	return types.Int
}

func TestGeneralizationSoundness(t *testing.T) {
	env := testEnv(t)
	require.NoError(t, env.Declare("print", TEffFun(types.String, TEffRow(nil, TField("io", types.Unit)), types.Unit)))
	ctx := NewContext()
	a := TVar("a")
	id := TForall([]string{"a"}, TFun(a, a))
	f, x, r, v := Var("f"), Var("x"), Var("r"), Var("v")

	cases := []struct {
		name string
		expr ast.Expr
	}{
		{"identity", Abs1("x", x)},
		{"const", Abs2("x", "y", x)},
		{"twice", Abs2("f", "x", App(f, App(f, x)))},
		{"select", Abs1("r", RecordSelect(r, "x"))},
		{"extend", Abs1("r", RecordExtend(r, LabelValue("x", Int("1"))))},
		{"restrict", Abs1("r", RecordRestrict(r, "x"))},
		{"variant", Abs1("v", Variant("some", v))},
		{"closed match", Abs1("v", Match(v, []ast.MatchCase{
			MatchCase("some", "x", x),
			MatchCase("none", "y", Int("0")),
		}, nil))},
		{"open match", Abs1("v", Match(v, []ast.MatchCase{MatchCase("some", "x", x)}, &ast.MatchCase{Var: "w", Value: Int("0")}))},
		{"higher rank", AbsAnn("f", id, Abs1("x", App(f, x)))},
		{"effectful", Abs1("x", App(Var("print"), x))},
	}

	var vt typeutil.VarTracker
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			inferred, err := ctx.Infer(c.expr, env)
			require.NoError(t, err)
			ty := types.TypeString(inferred)
			names, kinds, body := types.FlattenForall(inferred)
			require.NotEmpty(t, names, ty)
			for _, alt := range []bool{false, true} {
				inst := body
				for i, name := range names {
					inst = vt.Subst(inst, name, instantiation(kinds[i], alt))
				}
				assert.NoError(t, ctx.Check(c.expr, inst, env), "%s at %s", ty, types.TypeString(inst))
				assert.Equal(t, 0, ctx.ContextDepth())
			}
		})
	}
}

func TestImpredicativeInstantiation(t *testing.T) {
	env := NewTypeEnv(nil)
	ctx := NewContext()
	a, b := TVar("a"), TVar("b")
	list := TCon("List")
	env.DeclareKind("List", types.KFunOf(types.KType, types.KType))
	require.NoError(t, env.Declare("xs", TApp(list, TForall([]string{"a"}, TFun(a, a)))))
	require.NoError(t, env.Declare("head", TForall([]string{"b"}, TFun(TApp(list, b), b))))

	err := inferError(t, ctx, env, App(Var("head"), Var("xs")))
	assert.Equal(t, Polymorphism, ErrorCode(err))
}

func TestTypeConstructors(t *testing.T) {
	env := NewTypeEnv(nil)
	ctx := NewContext()
	a := TVar("a")
	list := TCon("List")
	env.DeclareKind("List", types.KFunOf(types.KType, types.KType))
	require.NoError(t, env.Declare("nil", TForall([]string{"a"}, TApp(list, a))))
	require.NoError(t, env.Declare("cons", TForall([]string{"a"}, TFun(a, TApp(list, a), TApp(list, a)))))

	assert.Equal(t, "forall a. List a", inferString(t, ctx, env, Var("nil")))
	assert.Equal(t, "List Int", inferString(t, ctx, env, App(Var("cons"), Int("1"), Var("nil"))))
	assert.Equal(t, "List (List Int)", inferString(t, ctx, env,
		App(Var("cons"), App(Var("cons"), Int("1"), Var("nil")), Var("nil"))))

	mixed := App(Var("cons"), Int("1"), App(Var("cons"), Bool("true"), Var("nil")))
	assert.Equal(t, UnificationFailure, ErrorCode(inferError(t, ctx, env, mixed)))
}

func TestCheck(t *testing.T) {
	ctx := NewContext()
	a := TVar("a")
	id := TForall([]string{"a"}, TFun(a, a))
	assert.NoError(t, ctx.Check(Abs1("x", Var("x")), id, nil))

	err := ctx.Check(Abs1("x", Int("1")), id, nil)
	assert.Equal(t, UnificationFailure, ErrorCode(err))
	assert.Equal(t, 0, ctx.ContextDepth())

	err = ctx.Check(Int("1"), TApp(types.Int, types.Int), nil)
	assert.Equal(t, KindMismatch, ErrorCode(err))
}

func TestSynth(t *testing.T) {
	ctx := NewContext()
	ty, err := ctx.Synth(App(Abs1("x", Var("x")), Int("1")), nil)
	require.NoError(t, err)
	assert.Equal(t, "Int", types.TypeString(ty))

	ty, err = ctx.Synth(RecordSelect(Var("r"), "x"), nil)
	assert.Nil(t, ty)
	assert.Equal(t, UnboundVariable, ErrorCode(err))
}

func TestTracing(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext()
	ctx.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	ctx.EnableTracing(true)
	assert.Equal(t, "forall a. a -> a", inferString(t, ctx, nil, Abs1("x", Var("x"))))
	assert.Contains(t, buf.String(), "msg=synth")
	assert.Contains(t, buf.String(), "msg=generalize")

	buf.Reset()
	ctx.EnableTracing(false)
	inferString(t, ctx, nil, Abs1("x", Var("x")))
	assert.Empty(t, buf.String())
}
