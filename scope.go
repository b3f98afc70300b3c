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
	"github.com/benbjohnson/immutable"

	"github.com/wdamron/polyrank/types"
)

var emptyScopeMap = immutable.NewSortedMap(nil)

// scope holds the types of lambda-, let-, and case-bound variables. Binding a variable returns a
// new scope, so nested scopes never disturb their parents.
type scope struct {
	m *immutable.SortedMap
}

var emptyScope = scope{emptyScopeMap}

func (s scope) bind(name string, t types.Type) scope {
	return scope{s.m.Set(name, t)}
}

func (s scope) lookup(name string) (types.Type, bool) {
	t, ok := s.m.Get(name)
	if !ok {
		return nil, false
	}
	return t.(types.Type), true
}
