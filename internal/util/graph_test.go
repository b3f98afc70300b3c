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

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSCCDependencyOrder(t *testing.T) {
	// 0 <-> 1 -> 2, 3 -> 0, 4 -> 4
	g := NewGraph(5)
	g.AddEdge(0, 1)
	g.AddEdge(1, 0)
	g.AddEdge(1, 2)
	g.AddEdge(1, 2)
	g.AddEdge(3, 0)
	g.AddEdge(4, 4)

	assert.Len(t, g[1], 2)
	assert.Equal(t, [][]int{{2}, {0, 1}, {3}, {4}}, g.SCC())

	assert.True(t, g.IsCyclic([]int{0, 1}))
	assert.False(t, g.IsCyclic([]int{2}))
	assert.True(t, g.IsCyclic([]int{4}))
}

func TestSCCEmpty(t *testing.T) {
	assert.Empty(t, NewGraph(0).SCC())
}
