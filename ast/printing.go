package ast

import (
	"sort"
	"strings"

	"github.com/wdamron/polyrank/types"
)

// ExprString returns a string representation of an expression.
func ExprString(expr Expr) string {
	var sb strings.Builder
	exprString(&sb, false, expr)
	return sb.String()
}

func wrap(sb *strings.Builder, simple bool, f func()) {
	if simple {
		sb.WriteByte('(')
	}
	f()
	if simple {
		sb.WriteByte(')')
	}
}

func exprString(sb *strings.Builder, simple bool, expr Expr) {
	switch et := expr.(type) {
	case *Literal:
		sb.WriteString(et.Syntax)

	case *Var:
		sb.WriteString(et.Name)

	case *App:
		wrap(sb, simple, func() {
			exprString(sb, !isSimple(et.Func), et.Func)
			sb.WriteByte(' ')
			exprString(sb, true, et.Arg)
		})

	case *Abs:
		wrap(sb, simple, func() {
			sb.WriteByte('\\')
			if et.Type != nil {
				sb.WriteByte('(')
				sb.WriteString(et.Param)
				sb.WriteString(" : ")
				sb.WriteString(types.TypeString(et.Type))
				sb.WriteByte(')')
			} else {
				sb.WriteString(et.Param)
			}
			sb.WriteString(" -> ")
			exprString(sb, false, et.Body)
		})

	case *Let:
		wrap(sb, simple, func() {
			sb.WriteString("let ")
			if et.Type != nil {
				sb.WriteByte('(')
				sb.WriteString(et.Var)
				sb.WriteString(" : ")
				sb.WriteString(types.TypeString(et.Type))
				sb.WriteByte(')')
			} else {
				sb.WriteString(et.Var)
			}
			sb.WriteString(" = ")
			exprString(sb, false, et.Value)
			sb.WriteString(" in ")
			exprString(sb, false, et.Body)
		})

	case *Ann:
		sb.WriteByte('(')
		exprString(sb, false, et.Expr)
		sb.WriteString(" : ")
		sb.WriteString(types.TypeString(et.Type))
		sb.WriteByte(')')
		for _, arg := range et.TypeArgs {
			sb.WriteString(" @")
			switch arg.(type) {
			case *types.App, *types.Forall:
				sb.WriteByte('(')
				sb.WriteString(types.TypeString(arg))
				sb.WriteByte(')')
			default:
				sb.WriteString(types.TypeString(arg))
			}
		}

	case *RecordEmpty:
		sb.WriteString("{}")

	case *RecordSelect:
		exprString(sb, true, et.Record)
		sb.WriteByte('.')
		sb.WriteString(et.Label)

	case *RecordRestrict:
		sb.WriteByte('{')
		exprString(sb, false, et.Record)
		sb.WriteString(" - ")
		sb.WriteString(et.Label)
		sb.WriteByte('}')

	case *RecordExtend:
		sb.WriteByte('{')
		labels := make([]LabelValue, len(et.Labels))
		copy(labels, et.Labels)
		sort.SliceStable(labels, func(i, j int) bool {
			return labels[i].Label < labels[j].Label
		})
		for i, label := range labels {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(label.Label)
			sb.WriteString(" = ")
			exprString(sb, false, label.Value)
		}
		if _, isEmpty := et.Record.(*RecordEmpty); !isEmpty {
			sb.WriteString(" | ")
			exprString(sb, false, et.Record)
		}
		sb.WriteByte('}')

	case *Variant:
		wrap(sb, simple, func() {
			sb.WriteByte(':')
			sb.WriteString(et.Label)
			sb.WriteByte(' ')
			exprString(sb, true, et.Value)
		})

	case *Match:
		sb.WriteString("match ")
		exprString(sb, false, et.Value)
		sb.WriteString(" {")
		for i, c := range et.Cases {
			if i > 0 {
				sb.WriteString(" |")
			}
			sb.WriteString(" :")
			sb.WriteString(c.Label)
			sb.WriteByte(' ')
			sb.WriteString(c.Var)
			sb.WriteString(" -> ")
			exprString(sb, false, c.Value)
		}
		if et.Default != nil {
			sb.WriteString(" | ")
			sb.WriteString(et.Default.Var)
			sb.WriteString(" -> ")
			exprString(sb, false, et.Default.Value)
		}
		sb.WriteString(" }")

	case nil:
		sb.WriteString("<nil>")
	}
}

func isSimple(e Expr) bool {
	switch e.(type) {
	case *App, *Var, *Literal, *RecordSelect:
		return true
	}
	return false
}
