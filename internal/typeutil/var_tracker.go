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

package typeutil

import (
	"github.com/pkg/errors"

	"github.com/wdamron/polyrank/types"
)

// VarTracker allocates metavariables and owns their solutions.
//
// Solutions live in cells indexed by metavariable id. A cell is written once by Solve; afterwards
// it is only shortened by path compression during Prune, which never changes what the
// metavariable resolves to.
type VarTracker struct {
	metas  []metaCell
	kmetas []kindCell
	block  []types.Meta
	kblock []types.KMeta
}

type metaCell struct {
	meta     *types.Meta
	solution types.Type
}

type kindCell struct {
	meta     *types.KMeta
	solution types.Kind
}

// Reset discards all metavariables. Ids restart from zero.
func (vt *VarTracker) Reset() {
	for i := range vt.metas {
		vt.metas[i] = metaCell{}
	}
	for i := range vt.kmetas {
		vt.kmetas[i] = kindCell{}
	}
	vt.metas, vt.kmetas, vt.block, vt.kblock = vt.metas[:0], vt.kmetas[:0], nil, nil
}

// MetaCount returns the number of type metavariables allocated since the last reset.
func (vt *VarTracker) MetaCount() int { return len(vt.metas) }

// KindMetaCount returns the number of kind metavariables allocated since the last reset.
func (vt *VarTracker) KindMetaCount() int { return len(vt.kmetas) }

// New allocates an unsolved type metavariable with the given kind and display hint.
func (vt *VarTracker) New(kind types.Kind, hint string) *types.Meta {
	if len(vt.block) == 0 {
		vt.block = make([]types.Meta, 8)
	}
	m := &vt.block[0]
	vt.block = vt.block[1:]
	m.Id, m.Kind, m.Hint = len(vt.metas), kind, hint
	vt.metas = append(vt.metas, metaCell{meta: m})
	return m
}

// NewKind allocates an unsolved kind metavariable.
func (vt *VarTracker) NewKind() *types.KMeta {
	if len(vt.kblock) == 0 {
		vt.kblock = make([]types.KMeta, 8)
	}
	k := &vt.kblock[0]
	vt.kblock = vt.kblock[1:]
	k.Id = len(vt.kmetas)
	vt.kmetas = append(vt.kmetas, kindCell{meta: k})
	return k
}

func (vt *VarTracker) cell(m *types.Meta) (*metaCell, error) {
	if m.Id < 0 || m.Id >= len(vt.metas) || vt.metas[m.Id].meta != m {
		return nil, errors.Errorf("metavariable %s does not belong to this session", types.MetaName(m))
	}
	return &vt.metas[m.Id], nil
}

func (vt *VarTracker) kindCell(k *types.KMeta) (*kindCell, error) {
	if k.Id < 0 || k.Id >= len(vt.kmetas) || vt.kmetas[k.Id].meta != k {
		return nil, errors.Errorf("kind metavariable ?%d does not belong to this session", k.Id)
	}
	return &vt.kmetas[k.Id], nil
}

// Solution returns the (unpruned) solution of m, or nil if m is unsolved.
func (vt *VarTracker) Solution(m *types.Meta) types.Type {
	c, err := vt.cell(m)
	if err != nil {
		return nil
	}
	return c.solution
}

// IsSolved reports whether m has a solution.
func (vt *VarTracker) IsSolved(m *types.Meta) bool { return vt.Solution(m) != nil }

// Solve records the solution of m. A metavariable may only be solved once.
func (vt *VarTracker) Solve(m *types.Meta, t types.Type) error {
	c, err := vt.cell(m)
	if err != nil {
		return err
	}
	if c.solution != nil {
		return errors.Errorf("metavariable %s is already solved to %s", types.MetaName(m), types.TypeString(c.solution))
	}
	if t == nil {
		return errors.Errorf("metavariable %s cannot be solved to nil", types.MetaName(m))
	}
	c.solution = t
	return nil
}

// KindSolution returns the (unpruned) solution of k, or nil if k is unsolved.
func (vt *VarTracker) KindSolution(k *types.KMeta) types.Kind {
	c, err := vt.kindCell(k)
	if err != nil {
		return nil
	}
	return c.solution
}

// SolveKind records the solution of k. A kind metavariable may only be solved once.
func (vt *VarTracker) SolveKind(k *types.KMeta, to types.Kind) error {
	c, err := vt.kindCell(k)
	if err != nil {
		return err
	}
	if c.solution != nil {
		return errors.Errorf("kind metavariable ?%d is already solved to %s", k.Id, types.KindString(c.solution))
	}
	c.solution = to
	return nil
}

// Prune replaces solved metavariables within t by their solutions, compressing solution chains.
// Unchanged subtrees are shared with t.
func (vt *VarTracker) Prune(t types.Type) types.Type {
	switch t := t.(type) {
	case *types.Meta:
		c, err := vt.cell(t)
		if err != nil || c.solution == nil {
			return t
		}
		p := vt.Prune(c.solution)
		c.solution = p
		return p

	case *types.App:
		l, r := vt.Prune(t.Left), vt.Prune(t.Right)
		if l == t.Left && r == t.Right {
			return t
		}
		return &types.App{Left: l, Right: r}

	case *types.Forall:
		k := t.Kind
		if k != nil {
			k = vt.PruneKind(k)
		}
		b := vt.Prune(t.Body)
		if b == t.Body && k == t.Kind {
			return t
		}
		return &types.Forall{Name: t.Name, Kind: k, Body: b}
	}
	return t
}

// PruneKind replaces solved kind metavariables within k by their solutions.
func (vt *VarTracker) PruneKind(k types.Kind) types.Kind {
	switch k := k.(type) {
	case *types.KMeta:
		c, err := vt.kindCell(k)
		if err != nil || c.solution == nil {
			return k
		}
		p := vt.PruneKind(c.solution)
		c.solution = p
		return p

	case *types.KFun:
		l, r := vt.PruneKind(k.Left), vt.PruneKind(k.Right)
		if l == k.Left && r == k.Right {
			return k
		}
		return &types.KFun{Left: l, Right: r}
	}
	return k
}

// DefaultKind prunes k and solves every remaining kind metavariable within it to Type. Kind
// metavariables of another session are left as they are.
func (vt *VarTracker) DefaultKind(k types.Kind) types.Kind {
	switch p := vt.PruneKind(k).(type) {
	case *types.KMeta:
		// p is unsolved after pruning; only a kind metavariable of another session is rejected
		if err := vt.SolveKind(p, types.KType); err != nil {
			return p
		}
		return types.KType
	case *types.KFun:
		l, r := vt.DefaultKind(p.Left), vt.DefaultKind(p.Right)
		if l == p.Left && r == p.Right {
			return p
		}
		return &types.KFun{Left: l, Right: r}
	default:
		return p
	}
}
