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
	"strconv"
	"strings"
	"sync"
)

var printerPool = sync.Pool{
	New: func() interface{} { return &typePrinter{} },
}

func newTypePrinter(showKinds bool) *typePrinter {
	p := printerPool.Get().(*typePrinter)
	p.showKinds = showKinds
	return p
}

func (p *typePrinter) Release() {
	p.sb.Reset()
	p.showKinds = false
	printerPool.Put(p)
}

type typePrinter struct {
	sb        strings.Builder
	showKinds bool
}

// TypeString returns a string representation of a Type. Metavariables are printed as-is;
// prune a type before printing it to show the solutions of its metavariables.
func TypeString(t Type) string {
	p := newTypePrinter(false)
	p.typeString(false, t)
	s := p.sb.String()
	p.Release()
	return s
}

// TypeStringWithKinds returns a string representation of a Type which includes the kinds of
// forall-bound variables.
func TypeStringWithKinds(t Type) string {
	p := newTypePrinter(true)
	p.typeString(false, t)
	s := p.sb.String()
	p.Release()
	return s
}

// MetaName returns the display name of a metavariable: `?3` or `?a$3`.
func MetaName(m *Meta) string {
	if m.Hint == "" {
		return "?" + strconv.Itoa(m.Id)
	}
	return "?" + m.Hint + "$" + strconv.Itoa(m.Id)
}

func (p *typePrinter) wrap(simple bool, f func()) {
	if simple {
		p.sb.WriteByte('(')
	}
	f()
	if simple {
		p.sb.WriteByte(')')
	}
}

func (p *typePrinter) typeString(simple bool, t Type) {
	switch t := t.(type) {
	case nil:
		p.sb.WriteString("<nil>")

	case *Var:
		p.sb.WriteString(t.Name)

	case *Meta:
		p.sb.WriteString(MetaName(t))

	case *Con:
		if _, isEmpty := IsEmptyRow(t); isEmpty {
			p.sb.WriteString("<>")
			return
		}
		p.sb.WriteString(t.Name)

	case *Forall:
		p.wrap(simple, func() {
			names, kinds, body := FlattenForall(t)
			p.sb.WriteString("forall")
			for i, name := range names {
				p.sb.WriteByte(' ')
				if p.showKinds && kinds[i] != nil {
					p.sb.WriteByte('(')
					p.sb.WriteString(name)
					p.sb.WriteString(" : ")
					p.sb.WriteString(KindString(kinds[i]))
					p.sb.WriteByte(')')
				} else {
					p.sb.WriteString(name)
				}
			}
			p.sb.WriteString(". ")
			p.typeString(false, body)
		})

	case *App:
		p.appString(simple, t)
	}
}

func (p *typePrinter) appString(simple bool, t *App) {
	if IsFun(t) {
		p.wrap(simple, func() {
			for i, part := range FlattenFun(t) {
				if i > 0 {
					p.sb.WriteString(" -> ")
				}
				p.typeString(needsParensInArrow(part), part)
			}
		})
		return
	}
	if dom, eff, cod, ok := EffFunParts(t); ok {
		p.wrap(simple, func() {
			p.typeString(needsParensInArrow(dom), dom)
			p.sb.WriteString(" -> ")
			p.rowString('<', '>', eff)
			p.sb.WriteByte(' ')
			_, isForall := cod.(*Forall)
			p.typeString(isForall, cod)
		})
		return
	}
	if row, ok := RecordRow(t); ok {
		p.rowString('{', '}', row)
		return
	}
	if row, ok := VariantRow(t); ok {
		p.rowString('[', ']', row)
		return
	}
	if _, _, _, _, ok := RowParts(t); ok {
		p.rowString('<', '>', t)
		return
	}
	p.wrap(simple, func() {
		for i, part := range FlattenApp(t) {
			if i > 0 {
				p.sb.WriteByte(' ')
			}
			switch part.(type) {
			case *App, *Forall:
				p.typeString(true, part)
			default:
				p.typeString(false, part)
			}
		}
	})
}

func needsParensInArrow(t Type) bool {
	switch t.(type) {
	case *Forall:
		return true
	}
	return IsFun(t) || IsEffFun(t)
}

func (p *typePrinter) rowString(open, close byte, row Type) {
	labels, rest := FlattenRow(row)
	p.sb.WriteByte(open)
	i := 0
	labels.Range(func(label string, ts TypeList) bool {
		ts.Range(func(_ int, t Type) bool {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.sb.WriteString(label)
			p.sb.WriteString(" : ")
			p.typeString(false, t)
			i++
			return true
		})
		return true
	})
	if _, isEmpty := IsEmptyRow(rest); !isEmpty {
		if i > 0 {
			p.sb.WriteString(" | ")
		}
		p.typeString(false, rest)
	}
	p.sb.WriteByte(close)
}
