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
	"strconv"

	"github.com/samber/lo"

	"github.com/wdamron/polyrank/internal/typeutil"
	"github.com/wdamron/polyrank/types"
)

// generalize quantifies t over the unsolved metavariables which were dropped from the ordered context,
// in order of first occurrence within t. The result is fully pruned. The generalized metavariables are
// left unsolved, so several types sharing them may be generalized independently.
func (ti *InferenceContext) generalize(dropped []typeutil.Element, t types.Type) types.Type {
	t = ti.vars.Prune(t)
	droppedIds := lo.Associate(typeutil.Dropped(dropped), func(m *types.Meta) (int, bool) { return m.Id, true })
	metas := lo.Filter(ti.vars.FreeMetas(t), func(m *types.Meta, _ int) bool { return droppedIds[m.Id] })
	if len(metas) == 0 {
		return t
	}
	used := ti.vars.VarNames(t)
	names := make([]string, len(metas))
	kinds := make([]types.Kind, len(metas))
	subst := make(map[*types.Meta]types.Type, len(metas))
	next := 0
	for i, m := range metas {
		names[i], next = freshName(used, next)
		used[names[i]] = true
		kinds[i] = ti.vars.DefaultKind(metaKind(m))
		subst[m] = &types.Var{Name: names[i]}
	}
	g := types.Foralls(names, kinds, ti.vars.SubstMetas(t, subst))
	ti.trace("generalize", g)
	return g
}

// freshName returns the first of `a`..`z`, `a1`..`z1`, ... starting from index next which is not in used,
// along with the index following it.
func freshName(used map[string]bool, next int) (string, int) {
	for {
		name := string(rune('a' + next%26))
		if next >= 26 {
			name += strconv.Itoa(next / 26)
		}
		next++
		if !used[name] {
			return name, next
		}
	}
}
