package ast

import (
	"strconv"
	"strings"
)

// FormatNum renders a number the way to_str does: integral values have no
// fractional part, everything else uses the shortest round-tripping form.
func FormatNum(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Display renders a literal for program output. Strings and chars are written
// raw; composite values use Inspect for their elements.
func Display(lit Literal) string {
	switch v := lit.(type) {
	case Str:
		return string(v)
	case Char:
		return string(rune(v))
	default:
		return Inspect(lit)
	}
}

// Inspect renders a literal for debugging output such as Main.dump.
func Inspect(lit Literal) string {
	var b strings.Builder
	writeInspect(&b, lit)
	return b.String()
}

func writeInspect(b *strings.Builder, lit Literal) {
	switch v := lit.(type) {
	case nil:
		b.WriteString("<nil>")
	case Nope:
		b.WriteString("Nope")
	case Str:
		b.WriteString(strconv.Quote(string(v)))
	case Char:
		b.WriteString(strconv.QuoteRune(rune(v)))
	case Num:
		b.WriteString(FormatNum(float64(v)))
	case Bool:
		if v {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case List:
		b.WriteByte('[')
		for idx, item := range v {
			if idx > 0 {
				b.WriteString(", ")
			}
			writeInspect(b, item)
		}
		b.WriteByte(']')
	case Fun:
		switch fn := v.Callable.(type) {
		case *Intrinsic:
			b.WriteString("<intrinsic ")
			b.WriteString(fn.Name)
			b.WriteByte('(')
			b.WriteString(strings.Join(fn.Args, ", "))
			b.WriteString(")>")
		case *Function:
			b.WriteString("<fun(")
			b.WriteString(strings.Join(fn.Args, ", "))
			b.WriteString(")>")
		default:
			b.WriteString("<fun>")
		}
	case Set:
		b.WriteByte('{')
		first := true
		v.Each(func(name string, val Literal) {
			if !first {
				b.WriteString(", ")
			}
			first = false
			b.WriteString(name)
			b.WriteString(": ")
			writeInspect(b, val)
		})
		b.WriteByte('}')
	}
}
