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
	"github.com/samber/lo"

	"github.com/wdamron/polyrank/ast"
	"github.com/wdamron/polyrank/internal/util"
)

// definitionGroup holds the indices of a set of mutually-recursive definitions.
type definitionGroup struct {
	defs []int
	// a definition within the group refers to itself or to another definition within the group
	recursive bool
}

// definitionGroups sorts definitions into groups of mutually-recursive definitions, in dependency order.
//
// References to definitions with type signatures do not create dependencies: their types are known before
// any group is checked.
func definitionGroups(defs []ast.Definition) ([]definitionGroup, error) {
	verts := make(map[string]int, len(defs))
	for i, def := range defs {
		if _, exists := verts[def.Name]; exists {
			return nil, errors.Errorf("Duplicate definition of %s", def.Name)
		}
		verts[def.Name] = i
	}
	g := util.NewGraph(len(defs))
	for i, def := range defs {
		refs := lo.Filter(ast.FreeVars(def.Value), func(name string, _ int) bool {
			j, ok := verts[name]
			return ok && defs[j].Type == nil
		})
		for _, name := range refs {
			g.AddEdge(i, verts[name])
		}
	}
	return lo.Map(g.SCC(), func(c []int, _ int) definitionGroup {
		return definitionGroup{defs: c, recursive: g.IsCyclic(c)}
	}), nil
}
