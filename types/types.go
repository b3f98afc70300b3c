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

// Type is the base interface for all types.
//
// Types form a closed sum of five constructors: Var, Con, Meta, App, and Forall. Functions, rows,
// records, and variants are recognized shapes of App rather than separate constructors, so every
// generic traversal only handles the five cases.
type Type interface {
	TypeName() string
	isType()
}

func (t *Var) TypeName() string    { return "Var" }
func (t *Con) TypeName() string    { return "Con" }
func (t *Meta) TypeName() string   { return "Meta" }
func (t *App) TypeName() string    { return "App" }
func (t *Forall) TypeName() string { return "Forall" }

func (*Var) isType()    {}
func (*Con) isType()    {}
func (*Meta) isType()   {}
func (*App) isType()    {}
func (*Forall) isType() {}

// Type variable, bound by an enclosing forall or held rigid by the ordered context: `a`
type Var struct {
	Name string
}

// RowSort distinguishes per-label row-extension constants from ordinary type constants.
type RowSort uint8

const (
	// Ordinary type constant
	NotRow RowSort = iota
	// Row-extension tag for record/variant rows (kind `Type -> Row -> Row`)
	FieldRow
	// Row-extension tag for effect rows (kind `Type -> Effect -> Effect`)
	EffectRow
)

// Type constant: `Int`, `->`, `Record`. A row-extension tag carries its label as the name.
type Con struct {
	Name string
	Row  RowSort
}

// Metavariable (unification variable). Solutions are held by the owning inference session.
type Meta struct {
	Id   int
	Kind Kind
	// Hint is an optional display name, taken from the forall which the metavariable instantiates.
	Hint string
}

// Type application: `List a`, `a -> b` (as `(->) a b`)
type App struct {
	Left, Right Type
}

// Universal quantification over a single variable: `forall (a : Type). a -> a`
type Forall struct {
	Name string
	// Kind may be nil in unchecked annotations; kind inference fills it in.
	Kind Kind
	Body Type
}

// Predeclared type constants.
var (
	Arrow      = &Con{Name: "->"}
	EffArrow   = &Con{Name: "-!>"}
	RecordCon  = &Con{Name: "Record"}
	VariantCon = &Con{Name: "Variant"}
	RowEmpty   = &Con{Name: "<>"}
	EffEmpty   = &Con{Name: "<!>"}

	Int    = &Con{Name: "Int"}
	Float  = &Con{Name: "Float"}
	String = &Con{Name: "String"}
	Bool   = &Con{Name: "Bool"}
	Unit   = &Con{Name: "Unit"}
)

// IsCon reports whether t is the ordinary type constant with the given name.
func IsCon(t Type, name string) bool {
	c, ok := t.(*Con)
	return ok && c.Row == NotRow && c.Name == name
}

// EmptyRowOf returns the empty row for a row sort.
func EmptyRowOf(sort RowSort) *Con {
	if sort == EffectRow {
		return EffEmpty
	}
	return RowEmpty
}

// RowKindOf returns the kind of rows of the given sort.
func RowKindOf(sort RowSort) Kind {
	if sort == EffectRow {
		return KEffect
	}
	return KRow
}

// IsEmptyRow reports whether t is an empty row constant, and of which sort.
func IsEmptyRow(t Type) (RowSort, bool) {
	switch {
	case IsCon(t, RowEmpty.Name):
		return FieldRow, true
	case IsCon(t, EffEmpty.Name):
		return EffectRow, true
	}
	return NotRow, false
}

// Builders:

// AppOf builds a left-nested application: AppOf(f, a, b) is `f a b`.
func AppOf(ts ...Type) Type {
	t := ts[0]
	for _, arg := range ts[1:] {
		t = &App{Left: t, Right: arg}
	}
	return t
}

// Fun builds a function type: `dom -> cod`
func Fun(dom, cod Type) *App {
	return &App{Left: &App{Left: Arrow, Right: dom}, Right: cod}
}

// FunOf builds a right-nested function type: FunOf(a, b, c) is `a -> b -> c`.
func FunOf(ts ...Type) Type {
	t := ts[len(ts)-1]
	for i := len(ts) - 2; i >= 0; i-- {
		t = Fun(ts[i], t)
	}
	return t
}

// EffFun builds an effectful function type: `dom -> <eff> cod`
func EffFun(dom, eff, cod Type) *App {
	return &App{Left: &App{Left: &App{Left: EffArrow, Right: dom}, Right: eff}, Right: cod}
}

// RowExtend builds a record/variant row extension: `<label : t | rest>`
func RowExtend(label string, t, rest Type) *App {
	return &App{Left: &App{Left: &Con{Name: label, Row: FieldRow}, Right: t}, Right: rest}
}

// EffExtend builds an effect row extension: `<label : t | rest>`
func EffExtend(label string, t, rest Type) *App {
	return &App{Left: &App{Left: &Con{Name: label, Row: EffectRow}, Right: t}, Right: rest}
}

// Extend builds a row extension of the given sort.
func Extend(sort RowSort, label string, t, rest Type) *App {
	return &App{Left: &App{Left: &Con{Name: label, Row: sort}, Right: t}, Right: rest}
}

// Field pairs a label with a type.
type Field struct {
	Label string
	Type  Type
}

// RowOf builds a row from fields (outermost first) terminated by rest.
func RowOf(sort RowSort, fields []Field, rest Type) Type {
	if rest == nil {
		rest = EmptyRowOf(sort)
	}
	t := rest
	for i := len(fields) - 1; i >= 0; i-- {
		t = Extend(sort, fields[i].Label, fields[i].Type, t)
	}
	return t
}

// Record type: `{...}`
func Record(row Type) *App { return &App{Left: RecordCon, Right: row} }

// Variant type: `[...]`
func Variant(row Type) *App { return &App{Left: VariantCon, Right: row} }

// Foralls builds nested foralls, outermost first. kinds may be nil.
func Foralls(names []string, kinds []Kind, body Type) Type {
	t := body
	for i := len(names) - 1; i >= 0; i-- {
		var k Kind
		if kinds != nil {
			k = kinds[i]
		}
		t = &Forall{Name: names[i], Kind: k, Body: t}
	}
	return t
}

// Recognizers. These match the shape of t only; callers should prune metavariables first.

// FunParts matches `dom -> cod`.
func FunParts(t Type) (dom, cod Type, ok bool) {
	outer, ok := t.(*App)
	if !ok {
		return nil, nil, false
	}
	inner, ok := outer.Left.(*App)
	if !ok || !IsCon(inner.Left, Arrow.Name) {
		return nil, nil, false
	}
	return inner.Right, outer.Right, true
}

// IsFun reports whether t is a (pure) function type.
func IsFun(t Type) bool {
	_, _, ok := FunParts(t)
	return ok
}

// EffFunParts matches `dom -> <eff> cod`.
func EffFunParts(t Type) (dom, eff, cod Type, ok bool) {
	outer, ok := t.(*App)
	if !ok {
		return nil, nil, nil, false
	}
	mid, ok := outer.Left.(*App)
	if !ok {
		return nil, nil, nil, false
	}
	inner, ok := mid.Left.(*App)
	if !ok || !IsCon(inner.Left, EffArrow.Name) {
		return nil, nil, nil, false
	}
	return inner.Right, mid.Right, outer.Right, true
}

// IsEffFun reports whether t is an effectful function type.
func IsEffFun(t Type) bool {
	_, _, _, ok := EffFunParts(t)
	return ok
}

// RowParts matches a row extension `<label : field | rest>` of either sort.
func RowParts(t Type) (sort RowSort, label string, field, rest Type, ok bool) {
	outer, ok := t.(*App)
	if !ok {
		return NotRow, "", nil, nil, false
	}
	inner, ok := outer.Left.(*App)
	if !ok {
		return NotRow, "", nil, nil, false
	}
	tag, ok := inner.Left.(*Con)
	if !ok || tag.Row == NotRow {
		return NotRow, "", nil, nil, false
	}
	return tag.Row, tag.Name, inner.Right, outer.Right, true
}

// RecordRow matches `Record row`.
func RecordRow(t Type) (Type, bool) {
	app, ok := t.(*App)
	if !ok || !IsCon(app.Left, RecordCon.Name) {
		return nil, false
	}
	return app.Right, true
}

// VariantRow matches `Variant row`.
func VariantRow(t Type) (Type, bool) {
	app, ok := t.(*App)
	if !ok || !IsCon(app.Left, VariantCon.Name) {
		return nil, false
	}
	return app.Right, true
}

// FlattenApp splits an application into its head followed by its arguments.
func FlattenApp(t Type) []Type {
	var args []Type
	for {
		app, ok := t.(*App)
		if !ok {
			break
		}
		args = append(args, app.Right)
		t = app.Left
	}
	ts := make([]Type, 0, len(args)+1)
	ts = append(ts, t)
	for i := len(args) - 1; i >= 0; i-- {
		ts = append(ts, args[i])
	}
	return ts
}

// FlattenFun splits a chain of pure functions into its domains followed by the final codomain.
func FlattenFun(t Type) []Type {
	var ts []Type
	for {
		dom, cod, ok := FunParts(t)
		if !ok {
			return append(ts, t)
		}
		ts = append(ts, dom)
		t = cod
	}
}

// FlattenForall splits leading foralls from their body.
func FlattenForall(t Type) (names []string, kinds []Kind, body Type) {
	for {
		f, ok := t.(*Forall)
		if !ok {
			return names, kinds, t
		}
		names, kinds = append(names, f.Name), append(kinds, f.Kind)
		t = f.Body
	}
}

// FlattenRow collects the labels of a row into a map and returns the rest of the row.
// Duplicate (scoped) labels are kept in order, outermost first.
func FlattenRow(t Type) (labels TypeMap, rest Type) {
	b := NewTypeMapBuilder()
	for {
		_, label, field, next, ok := RowParts(t)
		if !ok {
			return b.Build(), t
		}
		b.Append(label, field)
		t = next
	}
}
