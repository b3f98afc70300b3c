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
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/wdamron/polyrank/types"
)

// Element is an entry within the ordered context.
type Element interface {
	elementName() string
}

// Rigid type variable, introduced by skolemization or by a checked annotation.
type TVar struct {
	Name string
	Kind types.Kind
}

// Unsolved metavariable.
type MetaElem struct {
	Meta *types.Meta
}

// Scope marker, matched by identity.
type Marker struct {
	Id int
}

func (*TVar) elementName() string     { return "TVar" }
func (*MetaElem) elementName() string { return "Meta" }
func (*Marker) elementName() string   { return "Marker" }

// Context is the ordered context of rigid type variables, unsolved metavariables, and scope markers.
//
// Position encodes scope: an element may only mention rigid variables and metavariables which appear
// earlier than it. Solved metavariables are removed from the context.
type Context struct {
	elems   []Element
	markers int

	// initial space:
	_elems [64]Element
}

// Reset clears the context.
func (c *Context) Reset() {
	for i := range c.elems {
		c.elems[i] = nil
	}
	if c.elems == nil {
		c.elems = c._elems[:0]
	}
	c.elems, c.markers = c.elems[:0], 0
}

// Len returns the number of elements in the context.
func (c *Context) Len() int { return len(c.elems) }

// At returns the element at position i.
func (c *Context) At(i int) Element { return c.elems[i] }

// Mark pushes a fresh scope marker and returns it.
func (c *Context) Mark() *Marker {
	c.markers++
	m := &Marker{Id: c.markers}
	c.elems = append(c.elems, m)
	return m
}

// Add pushes an element.
func (c *Context) Add(e Element) { c.elems = append(c.elems, e) }

// AddMeta pushes an unsolved metavariable.
func (c *Context) AddMeta(m *types.Meta) { c.elems = append(c.elems, &MetaElem{Meta: m}) }

// AddTVar pushes a rigid type variable.
func (c *Context) AddTVar(name string, kind types.Kind) {
	c.elems = append(c.elems, &TVar{Name: name, Kind: kind})
}

// Drop truncates the context to just before the marker m, returning the removed elements
// which followed it. If m is no longer in the context, nothing is removed.
func (c *Context) Drop(m *Marker) []Element {
	i := c.indexOfMarker(m)
	if i < 0 {
		return nil
	}
	dropped := append([]Element(nil), c.elems[i+1:]...)
	for j := i; j < len(c.elems); j++ {
		c.elems[j] = nil
	}
	c.elems = c.elems[:i]
	return dropped
}

func (c *Context) indexOfMarker(m *Marker) int {
	for i := len(c.elems) - 1; i >= 0; i-- {
		if e, ok := c.elems[i].(*Marker); ok && e == m {
			return i
		}
	}
	return -1
}

// IndexOf returns the position of the element e (compared by identity), or -1.
func (c *Context) IndexOf(e Element) int {
	return slices.Index(c.elems, e)
}

// IndexOfMeta returns the position of the unsolved metavariable m, or -1.
func (c *Context) IndexOfMeta(m *types.Meta) int {
	return slices.IndexFunc(c.elems, func(e Element) bool {
		me, ok := e.(*MetaElem)
		return ok && me.Meta == m
	})
}

// IndexOfTVar returns the position of the innermost rigid variable with the given name, or -1.
func (c *Context) IndexOfTVar(name string) int {
	for i := len(c.elems) - 1; i >= 0; i-- {
		if tv, ok := c.elems[i].(*TVar); ok && tv.Name == name {
			return i
		}
	}
	return -1
}

// LookupTVar returns the innermost rigid variable with the given name.
func (c *Context) LookupTVar(name string) (*TVar, bool) {
	i := c.IndexOfTVar(name)
	if i < 0 {
		return nil, false
	}
	return c.elems[i].(*TVar), true
}

// Replace splices elems into the context in place of the element at position i.
func (c *Context) Replace(i int, elems ...Element) {
	c.elems = slices.Delete(c.elems, i, i+1)
	c.elems = slices.Insert(c.elems, i, elems...)
}

// Remove deletes the element at position i.
func (c *Context) Remove(i int) {
	n := len(c.elems)
	c.elems = slices.Delete(c.elems, i, i+1)
	c.elems[:n][n-1] = nil
}

// Dropped filters the unsolved metavariables from a list of removed elements.
func Dropped(elems []Element) []*types.Meta {
	metas := make([]*types.Meta, 0, len(elems))
	for _, e := range elems {
		if me, ok := e.(*MetaElem); ok {
			metas = append(metas, me.Meta)
		}
	}
	return metas
}

// String returns a debugging representation of the context, oldest element first.
func (c *Context) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range c.elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		switch e := e.(type) {
		case *TVar:
			sb.WriteString(e.Name)
			if e.Kind != nil {
				sb.WriteString(" : ")
				sb.WriteString(types.KindString(e.Kind))
			}
		case *MetaElem:
			sb.WriteString(types.MetaName(e.Meta))
			if e.Meta.Kind != nil {
				sb.WriteString(" : ")
				sb.WriteString(types.KindString(e.Meta.Kind))
			}
		case *Marker:
			sb.WriteString("|>")
			sb.WriteString(strconv.Itoa(e.Id))
		}
	}
	sb.WriteByte(']')
	return sb.String()
}
