package interp

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/go-pyrite/pyrite/internal/object"
)

// str renders v the way Python's str() does: dunder __str__ first (falling
// back to __repr__), then a plain (unquoted) rendering for primitives.
func (it *Interpreter) str(v object.Value) string {
	if inst, ok := v.(*object.Instance); ok {
		if fn, cls, ok := inst.Class.Lookup("__str__"); ok {
			res, err := it.callBound(fn, inst, cls, nil, nil)
			if err == nil {
				if s, ok := res.(*object.Str); ok {
					return s.Value
				}
			}
		}
		if object.IsExceptionSubclass(inst.Class, object.ExceptionClasses["BaseException"]) {
			return object.ExceptionMessage(inst)
		}
		return it.repr(v)
	}
	if s, ok := v.(*object.Str); ok {
		return s.Value
	}
	return v.Inspect()
}

// repr renders v the way Python's repr() does: dunder __repr__ first, else
// the host Inspect() form (which already quotes strings).
func (it *Interpreter) repr(v object.Value) string {
	if inst, ok := v.(*object.Instance); ok {
		if fn, cls, ok := inst.Class.Lookup("__repr__"); ok {
			res, err := it.callBound(fn, inst, cls, nil, nil)
			if err == nil {
				if s, ok := res.(*object.Str); ok {
					return s.Value
				}
			}
		}
		return fmt.Sprintf("<%s object>", inst.Class.Name)
	}
	return v.Inspect()
}

// formatSpec implements a practical subset of the format mini-language:
// fill/align, sign, width, precision, and the b/o/x/d/f/%/s type codes. It
// does not attempt locale-aware grouping.
func formatSpec(v object.Value, spec string) (string, error) {
	var fill byte = ' '
	align := byte(0)
	sign := byte('-')
	width := 0
	precision := -1
	typ := byte(0)

	i := 0
	if len(spec) >= 2 && strings.ContainsRune("<>^=", rune(spec[1])) {
		fill = spec[0]
		align = spec[1]
		i = 2
	} else if len(spec) >= 1 && strings.ContainsRune("<>^=", rune(spec[0])) {
		align = spec[0]
		i = 1
	}
	if i < len(spec) && (spec[i] == '+' || spec[i] == '-' || spec[i] == ' ') {
		sign = spec[i]
		i++
	}
	start := i
	for i < len(spec) && spec[i] >= '0' && spec[i] <= '9' {
		i++
	}
	if i > start {
		width, _ = strconv.Atoi(spec[start:i])
	}
	if i < len(spec) && spec[i] == '.' {
		i++
		start = i
		for i < len(spec) && spec[i] >= '0' && spec[i] <= '9' {
			i++
		}
		precision, _ = strconv.Atoi(spec[start:i])
	}
	if i < len(spec) {
		typ = spec[i]
	}

	body, err := formatSpecBody(v, typ, precision, sign)
	if err != nil {
		return "", err
	}
	if len(body) >= width {
		return body, nil
	}
	pad := strings.Repeat(string(fill), width-len(body))
	switch align {
	case '<':
		return body + pad, nil
	case '^':
		left := (width - len(body)) / 2
		right := width - len(body) - left
		return strings.Repeat(string(fill), left) + body + strings.Repeat(string(fill), right), nil
	case 0, '>':
		return pad + body, nil
	case '=':
		if len(body) > 0 && (body[0] == '+' || body[0] == '-') {
			return body[:1] + pad + body[1:], nil
		}
		return pad + body, nil
	}
	return pad + body, nil
}

func formatSpecBody(v object.Value, typ byte, precision int, sign byte) (string, error) {
	switch typ {
	case 'b':
		if n, ok := v.(*object.Int); ok {
			return n.Value.Text(2), nil
		}
	case 'o':
		if n, ok := v.(*object.Int); ok {
			return n.Value.Text(8), nil
		}
	case 'x':
		if n, ok := v.(*object.Int); ok {
			return n.Value.Text(16), nil
		}
	case 'X':
		if n, ok := v.(*object.Int); ok {
			return strings.ToUpper(n.Value.Text(16)), nil
		}
	case 'f', 'F':
		f, ok := formatAsFloat(v)
		if ok {
			p := 6
			if precision >= 0 {
				p = precision
			}
			return applySign(strconv.FormatFloat(f, 'f', p, 64), sign), nil
		}
	case '%':
		f, ok := formatAsFloat(v)
		if ok {
			p := 6
			if precision >= 0 {
				p = precision
			}
			return applySign(strconv.FormatFloat(f*100, 'f', p, 64), sign) + "%", nil
		}
	case 'e', 'E':
		f, ok := formatAsFloat(v)
		if ok {
			p := 6
			if precision >= 0 {
				p = precision
			}
			s := strconv.FormatFloat(f, byte(typ), p, 64)
			return applySign(s, sign), nil
		}
	case 'd':
		if n, ok := v.(*object.Int); ok {
			return applySign(n.Value.String(), sign), nil
		}
	case 's', 0:
		s := v.Inspect()
		if str, ok := v.(*object.Str); ok {
			s = str.Value
		}
		if precision >= 0 && len(s) > precision {
			s = s[:precision]
		}
		return s, nil
	}
	return v.Inspect(), nil
}

func formatAsFloat(v object.Value) (float64, bool) {
	switch x := v.(type) {
	case *object.Float:
		return x.Value, true
	case *object.Int:
		f, _ := new(big.Float).SetInt(x.Value).Float64()
		return f, true
	}
	return 0, false
}

func applySign(s string, sign byte) string {
	if sign == '+' && len(s) > 0 && s[0] != '-' {
		return "+" + s
	}
	if sign == ' ' && len(s) > 0 && s[0] != '-' {
		return " " + s
	}
	return s
}
