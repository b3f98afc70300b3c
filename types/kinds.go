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
)

// Kind classifies types: value types, effect rows, record rows, and type constructors.
type Kind interface {
	KindName() string
	isKind()
}

func (k *KCon) KindName() string  { return "KCon" }
func (k *KMeta) KindName() string { return "KMeta" }
func (k *KFun) KindName() string  { return "KFun" }

func (*KCon) isKind()  {}
func (*KMeta) isKind() {}
func (*KFun) isKind()  {}

// Base kind: `Type`, `Effect`, `Row`
type KCon struct {
	Name string
}

// Kind metavariable. Solutions are held by the owning inference session, never by the KMeta itself.
type KMeta struct {
	Id int
}

// Kind of a type constructor: `Type -> Type`
type KFun struct {
	Left, Right Kind
}

var (
	// Kind of value types
	KType = &KCon{Name: "Type"}
	// Kind of effect rows
	KEffect = &KCon{Name: "Effect"}
	// Kind of record/variant rows
	KRow = &KCon{Name: "Row"}
)

// KFunOf builds a right-nested kind arrow: KFunOf(a, b, c) is `a -> b -> c`.
func KFunOf(ks ...Kind) Kind {
	if len(ks) == 0 {
		return nil
	}
	k := ks[len(ks)-1]
	for i := len(ks) - 2; i >= 0; i-- {
		k = &KFun{Left: ks[i], Right: k}
	}
	return k
}

// FlattenKFun splits a kind arrow into its parameter kinds followed by the result kind.
func FlattenKFun(k Kind) []Kind {
	var ks []Kind
	for {
		f, ok := k.(*KFun)
		if !ok {
			return append(ks, k)
		}
		ks = append(ks, f.Left)
		k = f.Right
	}
}

// KindEqual compares kinds structurally. Kind metavariables are equal only to themselves.
func KindEqual(a, b Kind) bool {
	switch a := a.(type) {
	case *KCon:
		b, ok := b.(*KCon)
		return ok && a.Name == b.Name
	case *KMeta:
		b, ok := b.(*KMeta)
		return ok && a.Id == b.Id
	case *KFun:
		b, ok := b.(*KFun)
		return ok && KindEqual(a.Left, b.Left) && KindEqual(a.Right, b.Right)
	}
	return false
}

// KindString returns a string representation of a Kind.
func KindString(k Kind) string {
	var sb strings.Builder
	kindString(&sb, k)
	return sb.String()
}

func kindString(sb *strings.Builder, k Kind) {
	switch k := k.(type) {
	case *KCon:
		sb.WriteString(k.Name)
	case *KMeta:
		sb.WriteByte('?')
		sb.WriteString(strconv.Itoa(k.Id))
	case *KFun:
		for i, part := range FlattenKFun(k) {
			if i > 0 {
				sb.WriteString(" -> ")
			}
			if _, ok := part.(*KFun); ok {
				sb.WriteByte('(')
				kindString(sb, part)
				sb.WriteByte(')')
			} else {
				kindString(sb, part)
			}
		}
	case nil:
		sb.WriteString("<nil>")
	}
}
