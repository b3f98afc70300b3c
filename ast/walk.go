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

// FreeVars returns the names of variables referenced but not bound within e, in order of first reference.
func FreeVars(e Expr) []string {
	var names []string
	seen := make(map[string]bool)
	freeVars(e, make(map[string]int), func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	})
	return names
}

func freeVars(e Expr, bound map[string]int, f func(string)) {
	within := func(name string, body Expr) {
		bound[name]++
		freeVars(body, bound, f)
		bound[name]--
	}
	switch e := e.(type) {
	case *Var:
		if bound[e.Name] == 0 {
			f(e.Name)
		}

	case *Literal, *RecordEmpty, nil:

	case *App:
		freeVars(e.Func, bound, f)
		freeVars(e.Arg, bound, f)

	case *Abs:
		within(e.Param, e.Body)

	case *Let:
		// let-bindings are recursive
		within(e.Var, e.Value)
		within(e.Var, e.Body)

	case *Ann:
		freeVars(e.Expr, bound, f)

	case *RecordSelect:
		freeVars(e.Record, bound, f)

	case *RecordExtend:
		for _, v := range e.Labels {
			freeVars(v.Value, bound, f)
		}
		freeVars(e.Record, bound, f)

	case *RecordRestrict:
		freeVars(e.Record, bound, f)

	case *Variant:
		freeVars(e.Value, bound, f)

	case *Match:
		freeVars(e.Value, bound, f)
		for _, c := range e.Cases {
			within(c.Var, c.Value)
		}
		if e.Default != nil {
			within(e.Default.Var, e.Default.Value)
		}
	}
}
