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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/polyrank/types"
)

func listEnv() *TypeEnv {
	env := NewTypeEnv(nil)
	env.DeclareKind("List", types.KFunOf(types.KType, types.KType))
	return env
}

func rowField(label string, t types.Type) types.Field { return types.Field{Label: label, Type: t} }

func TestSolveLaterToEarlier(t *testing.T) {
	ti := NewContext()
	ti.begin(nil)
	m := ti.ctx.Mark()
	a := ti.newMeta(types.KType, "a")
	b := ti.newMeta(types.KType, "b")

	require.NoError(t, ti.unify(b, a))
	assert.Same(t, a, ti.vars.Solution(b))
	assert.False(t, ti.vars.IsSolved(a))
	assert.Equal(t, -1, ti.ctx.IndexOfMeta(b))
	assert.Equal(t, 2, ti.ctx.Len())

	ti.ctx.Drop(m)
	assert.NoError(t, ti.finish(nil))
	assert.Equal(t, 0, ti.ContextDepth())
}

func TestSolveSplitsInPlace(t *testing.T) {
	ti := NewContext()
	ti.begin(listEnv())
	m := ti.ctx.Mark()
	a := ti.newMeta(types.KType, "a")
	b := ti.newMeta(types.KType, "b")

	require.NoError(t, ti.unify(a, types.AppOf(&types.Con{Name: "List"}, types.Int)))
	assert.Equal(t, "List Int", types.TypeString(ti.vars.Prune(a)))
	// every metavariable introduced by the split was solved and removed
	assert.Equal(t, 2, ti.ctx.Len())
	assert.Equal(t, 1, ti.ctx.IndexOfMeta(b))

	ti.ctx.Drop(m)
	ti.finish(nil)
}

func TestSolveRigidScope(t *testing.T) {
	ti := NewContext()
	ti.begin(nil)
	m := ti.ctx.Mark()
	early := ti.newSkolem("s", types.KType)
	a := ti.newMeta(types.KType, "")
	late := ti.newSkolem("s", types.KType)
	b := ti.newMeta(types.KType, "")
	assert.Equal(t, "s$1", early.Name)
	assert.Equal(t, "s$2", late.Name)

	// a rigid variable may solve a metavariable introduced after it, but not one introduced before it
	require.NoError(t, ti.unify(a, early))
	require.NoError(t, ti.unify(b, late))

	ti.ctx.Drop(m)
	ti.finish(nil)

	ti.begin(nil)
	m = ti.ctx.Mark()
	d := ti.newMeta(types.KType, "")
	sk := ti.newSkolem("s", types.KType)
	err := ti.unify(d, sk)
	assert.Equal(t, NotPolymorphicEnough, ErrorCode(err))
	ti.ctx.Drop(m)
	ti.finish(err)
}

func TestSolvePolymorphic(t *testing.T) {
	ti := NewContext()
	ti.begin(nil)
	m := ti.ctx.Mark()
	a := ti.newMeta(types.KType, "")
	x := &types.Var{Name: "x"}
	id := &types.Forall{Name: "x", Kind: types.KType, Body: types.Fun(x, x)}

	assert.Equal(t, Polymorphism, ErrorCode(ti.unify(a, id)))
	assert.Equal(t, Polymorphism, ErrorCode(ti.unify(id, a)))
	ti.ctx.Drop(m)
	ti.finish(nil)
}

func TestSolveKindMismatch(t *testing.T) {
	ti := NewContext()
	ti.begin(nil)
	m := ti.ctx.Mark()
	r := ti.newMeta(types.KRow, "")
	assert.Equal(t, KindMismatch, ErrorCode(ti.unify(r, types.Int)))
	ti.ctx.Drop(m)
	ti.finish(nil)
}

func TestRowRewrite(t *testing.T) {
	ti := NewContext()
	ti.begin(nil)
	m := ti.ctx.Mark()
	rho := ti.newMeta(types.KRow, "r")
	open := types.Record(types.RowOf(types.FieldRow, []types.Field{rowField("x", types.Int)}, rho))
	closed := types.Record(types.RowOf(types.FieldRow, []types.Field{rowField("y", types.Bool), rowField("x", types.Int)}, nil))

	require.NoError(t, ti.unify(open, closed))
	assert.Equal(t, "{y : Bool}", types.TypeString(types.Record(ti.vars.Prune(rho))))

	// the open row gains x, but the closed row lacks y
	rho2 := ti.newMeta(types.KRow, "r")
	a := types.Record(types.RowOf(types.FieldRow, []types.Field{rowField("x", types.Int)}, nil))
	b := types.Record(types.RowOf(types.FieldRow, []types.Field{rowField("y", types.Bool)}, rho2))
	err := ti.unify(a, b)
	assert.Equal(t, MissingLabel, ErrorCode(err))
	assert.Contains(t, err.Error(), "label y")

	ti.ctx.Drop(m)
	ti.finish(nil)
}

func TestUnifyRowsThroughSolvedTail(t *testing.T) {
	ti := NewContext()
	ti.begin(nil)
	m := ti.ctx.Mark()
	rho := ti.newMeta(types.KRow, "r")
	sigma := ti.newMeta(types.KRow, "s")
	require.NoError(t, ti.unify(sigma, types.RowOf(types.FieldRow, []types.Field{rowField("y", types.Bool)}, rho)))
	assert.Same(t, rho, ti.rowTail(sigma))

	// the tail of a is reached through sigma, which was solved before the rows were unified
	a := types.Record(types.RowOf(types.FieldRow, []types.Field{rowField("x", types.Int)}, sigma))
	b := types.Record(types.RowOf(types.FieldRow, []types.Field{rowField("x", types.Int), rowField("y", types.Bool)}, rho))
	require.NoError(t, ti.unify(a, b))
	assert.False(t, ti.vars.IsSolved(rho))

	// rewriting c extends rho, which is also the tail of a
	c := types.Record(types.RowOf(types.FieldRow, []types.Field{rowField("z", types.Int)}, rho))
	assert.Equal(t, OccursCheck, ErrorCode(ti.unify(a, c)))

	ti.ctx.Drop(m)
	ti.finish(nil)
}

func TestUnifyCommutedRows(t *testing.T) {
	ti := NewContext()
	xy := types.Record(types.RowOf(types.FieldRow, []types.Field{rowField("x", types.Int), rowField("y", types.Bool)}, nil))
	yx := types.Record(types.RowOf(types.FieldRow, []types.Field{rowField("y", types.Bool), rowField("x", types.Int)}, nil))
	assert.NoError(t, ti.Unify(xy, yx, nil))

	io := rowField("io", types.Unit)
	st := rowField("st", types.Int)
	f1 := types.EffFun(types.Int, types.RowOf(types.EffectRow, []types.Field{io, st}, nil), types.Int)
	f2 := types.EffFun(types.Int, types.RowOf(types.EffectRow, []types.Field{st, io}, nil), types.Int)
	assert.NoError(t, ti.Unify(f1, f2, nil))

	// duplicate labels are scoped: the outermost x must match
	xx := types.Record(types.RowOf(types.FieldRow, []types.Field{rowField("x", types.Int), rowField("x", types.Bool)}, nil))
	xx2 := types.Record(types.RowOf(types.FieldRow, []types.Field{rowField("x", types.Bool), rowField("x", types.Int)}, nil))
	assert.Equal(t, UnificationFailure, ErrorCode(ti.Unify(xx, xx2, nil)))
	assert.Equal(t, 0, ti.ContextDepth())
}

func TestUnifyForalls(t *testing.T) {
	ti := NewContext()
	a, b := &types.Var{Name: "a"}, &types.Var{Name: "b"}
	idA := types.Foralls([]string{"a"}, nil, types.Fun(a, a))
	idB := types.Foralls([]string{"b"}, nil, types.Fun(b, b))
	assert.NoError(t, ti.Unify(idA, idB, nil))

	ab := types.Foralls([]string{"a", "b"}, nil, types.Fun(a, b))
	ba := types.Foralls([]string{"b", "a"}, nil, types.Fun(a, b))
	assert.Equal(t, UnificationFailure, ErrorCode(ti.Unify(ab, ba, nil)))
	assert.Equal(t, UnificationFailure, ErrorCode(ti.Unify(ab, idA, nil)))

	r := &types.Var{Name: "r"}
	rowPoly := &types.Forall{Name: "r", Kind: types.KRow, Body: types.Record(r)}
	typePoly := &types.Forall{Name: "a", Kind: types.KType, Body: a}
	assert.Equal(t, KindMismatch, ErrorCode(ti.Unify(rowPoly, typePoly, nil)))
	assert.Equal(t, 0, ti.ContextDepth())
}
