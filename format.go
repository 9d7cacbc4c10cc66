package obf

import (
	"encoding/hex"
	"io"
	"strconv"
	"strings"
)

// String renders v on one line for debugging, e.g.
// dict{"id": int32(42), "tags": [string("a")]}.
func (v Value) String() string {
	var sb strings.Builder
	writeValue(&sb, v, -1, 0)
	return sb.String()
}

// Dump writes an indented rendering of v to w, one entry per line.
func Dump(w io.Writer, v Value) error {
	var sb strings.Builder
	writeValue(&sb, v, 0, 0)
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

// writeValue renders v. indent < 0 selects the single line form.
func writeValue(sb *strings.Builder, v Value, indent, depth int) {
	switch v.typ {
	case TypeNone:
		sb.WriteString("none")
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		sb.WriteString(v.typ.String())
		sb.WriteByte('(')
		sb.WriteString(strconv.FormatUint(v.bits, 10))
		sb.WriteByte(')')
	case TypeFloat:
		sb.WriteString("float(")
		sb.WriteString(strconv.FormatFloat(v.double(), 'g', -1, 32))
		sb.WriteByte(')')
	case TypeDouble:
		sb.WriteString("double(")
		sb.WriteString(strconv.FormatFloat(v.f64, 'g', -1, 64))
		sb.WriteByte(')')
	case TypeString, TypeLongString:
		sb.WriteString(v.typ.String())
		sb.WriteByte('(')
		sb.WriteString(strconv.Quote(v.text))
		sb.WriteByte(')')
	case TypeByteArray:
		sb.WriteString("bytes(")
		sb.WriteString(hex.EncodeToString(v.bytes))
		sb.WriteByte(')')
	case TypeObject:
		keys, _ := v.ObjectKeys()
		sb.WriteString("object{")
		for i, k := range keys {
			writeSeparator(sb, i, indent, depth+1)
			sb.WriteString(strconv.FormatUint(uint64(k), 10))
			sb.WriteString(": ")
			writeValue(sb, *v.obj[k], indent, depth+1)
		}
		writeClose(sb, len(keys), indent, depth, '}')
	case TypeDictionary:
		keys, _ := v.DictKeys()
		sb.WriteString("dict{")
		for i, k := range keys {
			writeSeparator(sb, i, indent, depth+1)
			sb.WriteString(strconv.Quote(k))
			sb.WriteString(": ")
			writeValue(sb, *v.dict[k], indent, depth+1)
		}
		writeClose(sb, len(keys), indent, depth, '}')
	case TypeArray:
		sb.WriteByte('[')
		for i := range v.arr {
			writeSeparator(sb, i, indent, depth+1)
			writeValue(sb, v.arr[i], indent, depth+1)
		}
		writeClose(sb, len(v.arr), indent, depth, ']')
	default:
		sb.WriteString(v.typ.String())
	}
}

func writeSeparator(sb *strings.Builder, i, indent, depth int) {
	if indent < 0 {
		if i > 0 {
			sb.WriteString(", ")
		}
		return
	}
	if i > 0 {
		sb.WriteByte(',')
	}
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat("  ", depth))
}

func writeClose(sb *strings.Builder, n, indent, depth int, c byte) {
	if indent >= 0 && n > 0 {
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat("  ", depth))
	}
	sb.WriteByte(c)
}
