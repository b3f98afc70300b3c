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

package types

import (
	"github.com/benbjohnson/immutable"
)

var emptyMap = immutable.NewSortedMap(nil)

var EmptyTypeMap = TypeMap{emptyMap}

// TypeMap contains immutable mappings from row labels to immutable lists of field types.
// Entries are sorted by label, so rows which differ only in label order flatten to equal maps.
type TypeMap struct {
	m *immutable.SortedMap
}

// Create a TypeMap with a single entry.
func SingletonTypeMap(label string, t Type) TypeMap {
	return TypeMap{emptyMap.Set(label, emptyList.Append(t))}
}

// Get the number of distinct labels in the map.
func (m TypeMap) Len() int {
	if m.m == nil {
		return 0
	}
	return m.m.Len()
}

// Get the list of types for a label. Scoped (duplicate) labels are ordered outermost first.
func (m TypeMap) Get(label string) (TypeList, bool) {
	if m.m == nil {
		return EmptyTypeList, false
	}
	l, ok := m.m.Get(label)
	if !ok {
		return EmptyTypeList, false
	}
	return TypeList{l.(*immutable.List)}, true
}

// Labels returns the distinct labels of the map in sorted order.
func (m TypeMap) Labels() []string {
	labels := make([]string, 0, m.Len())
	m.Range(func(label string, _ TypeList) bool {
		labels = append(labels, label)
		return true
	})
	return labels
}

// Iterate over entries in the map, in label order.
// If f returns false, iteration will be stopped.
func (m TypeMap) Range(f func(string, TypeList) bool) {
	if m.m == nil {
		return
	}
	iter := m.m.Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		if !f(k.(string), TypeList{v.(*immutable.List)}) {
			return
		}
	}
}

// TypeMapBuilder enables in-place updates of a map before finalization.
type TypeMapBuilder struct {
	b *immutable.SortedMapBuilder
}

func NewTypeMapBuilder() TypeMapBuilder {
	return TypeMapBuilder{immutable.NewSortedMapBuilder(emptyMap)}
}

// Get the number of distinct labels in the builder.
func (b TypeMapBuilder) Len() int { return b.b.Len() }

// Set the type list for the given label in the builder.
func (b TypeMapBuilder) Set(label string, ts TypeList) TypeMapBuilder {
	b.b.Set(label, ts.l)
	return b
}

// Append a type to the list for the given label.
func (b TypeMapBuilder) Append(label string, t Type) TypeMapBuilder {
	existing, ok := b.b.Get(label)
	if !ok {
		b.b.Set(label, emptyList.Append(t))
		return b
	}
	b.b.Set(label, existing.(*immutable.List).Append(t))
	return b
}

// Finalize the builder into an immutable map.
func (b TypeMapBuilder) Build() TypeMap {
	if b.b == nil {
		return EmptyTypeMap
	}
	return TypeMap{b.b.Map()}
}
