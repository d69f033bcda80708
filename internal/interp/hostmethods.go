package interp

import (
	"sort"
	"strconv"
	"strings"

	"github.com/go-pyrite/pyrite/internal/object"
	"github.com/go-pyrite/pyrite/internal/token"
)

// getHostAttr resolves an attribute access on a non-Instance value to a
// bound built-in method, mirroring CPython's type-method-table lookup. Only
// a practical working subset of each type's method surface is implemented;
// an unrecognized name is an AttributeError.
func (it *Interpreter) getHostAttr(recv object.Value, name string) (object.Value, error) {
	var fn object.BuiltinFunc
	switch v := recv.(type) {
	case *object.List:
		fn = it.listMethod(v, name)
	case *object.Dict:
		fn = it.dictMethod(v, name)
	case *object.Set:
		fn = it.setMethod(v, name)
	case *object.Str:
		fn = it.strMethod(v, name)
	}
	if fn == nil {
		return nil, Raise("AttributeError", "'%s' object has no attribute '%s'", object.TypeName(recv), name)
	}
	return &object.Builtin{Name: name, Fn: fn}, nil
}

func (it *Interpreter) listMethod(l *object.List, name string) object.BuiltinFunc {
	switch name {
	case "append":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			l.Elems = append(l.Elems, args[0])
			return object.None, nil
		}
	case "extend":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			elems, err := it.iterableToSlice(args[0])
			if err != nil {
				return nil, err
			}
			l.Elems = append(l.Elems, elems...)
			return object.None, nil
		}
	case "insert":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			i := int(args[0].(*object.Int).Value.Int64())
			if i < 0 {
				i += len(l.Elems)
			}
			if i < 0 {
				i = 0
			}
			if i > len(l.Elems) {
				i = len(l.Elems)
			}
			l.Elems = append(l.Elems[:i], append([]object.Value{args[1]}, l.Elems[i:]...)...)
			return object.None, nil
		}
	case "pop":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			idx := len(l.Elems) - 1
			if len(args) > 0 {
				idx = int(args[0].(*object.Int).Value.Int64())
				if idx < 0 {
					idx += len(l.Elems)
				}
			}
			if idx < 0 || idx >= len(l.Elems) {
				return nil, Raise("IndexError", "pop index out of range")
			}
			v := l.Elems[idx]
			l.Elems = append(l.Elems[:idx], l.Elems[idx+1:]...)
			return v, nil
		}
	case "remove":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			for i, e := range l.Elems {
				if valuesEqual(e, args[0]) {
					l.Elems = append(l.Elems[:i], l.Elems[i+1:]...)
					return object.None, nil
				}
			}
			return nil, Raise("ValueError", "list.remove(x): x not in list")
		}
	case "clear":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			l.Elems = nil
			return object.None, nil
		}
	case "index":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			for i, e := range l.Elems {
				if valuesEqual(e, args[0]) {
					return object.NewInt(int64(i)), nil
				}
			}
			return nil, Raise("ValueError", "%s is not in list", args[0].Inspect())
		}
	case "count":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			n := int64(0)
			for _, e := range l.Elems {
				if valuesEqual(e, args[0]) {
					n++
				}
			}
			return object.NewInt(n), nil
		}
	case "reverse":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			for i, j := 0, len(l.Elems)-1; i < j; i, j = i+1, j-1 {
				l.Elems[i], l.Elems[j] = l.Elems[j], l.Elems[i]
			}
			return object.None, nil
		}
	case "copy":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			return &object.List{Elems: append([]object.Value{}, l.Elems...)}, nil
		}
	case "sort":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			return object.None, sortSlice(l.Elems, kwargs)
		}
	}
	return nil
}

func sortSlice(elems []object.Value, kwargs map[string]object.Value) error {
	reverse := false
	if r, ok := kwargs["reverse"]; ok {
		reverse = object.Truthy(r)
	}
	var sortErr error
	sort.SliceStable(elems, func(i, j int) bool {
		cmp, ok := hostOrder(elems[i], elems[j])
		if !ok {
			sortErr = Raise("TypeError", "'<' not supported between instances of '%s' and '%s'", object.TypeName(elems[i]), object.TypeName(elems[j]))
			return false
		}
		if reverse {
			return cmp > 0
		}
		return cmp < 0
	})
	return sortErr
}

func (it *Interpreter) dictMethod(d *object.Dict, name string) object.BuiltinFunc {
	switch name {
	case "get":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			if v, ok := d.Get(args[0]); ok {
				return v, nil
			}
			if len(args) > 1 {
				return args[1], nil
			}
			return object.None, nil
		}
	case "setdefault":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			if v, ok := d.Get(args[0]); ok {
				return v, nil
			}
			var def object.Value = object.None
			if len(args) > 1 {
				def = args[1]
			}
			d.Set(args[0], def)
			return def, nil
		}
	case "pop":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			if v, ok := d.Get(args[0]); ok {
				d.Delete(args[0])
				return v, nil
			}
			if len(args) > 1 {
				return args[1], nil
			}
			return nil, Raise("KeyError", "%s", args[0].Inspect())
		}
	case "keys":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			return &object.DictKeysView{Keys: d.Keys()}, nil
		}
	case "values":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			return &object.DictValuesView{Values: d.Values()}, nil
		}
	case "items":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			items := d.Items()
			out := make([]object.Value, len(items))
			for i, kv := range items {
				out[i] = &object.Tuple{Elems: []object.Value{kv[0], kv[1]}}
			}
			return &object.DictItemsView{Items: out}, nil
		}
	case "update":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			if len(args) > 0 {
				if other, ok := args[0].(*object.Dict); ok {
					for _, kv := range other.Items() {
						d.Set(kv[0], kv[1])
					}
				}
			}
			for k, v := range kwargs {
				d.Set(&object.Str{Value: k}, v)
			}
			return object.None, nil
		}
	case "clear":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			for _, k := range d.Keys() {
				d.Delete(k)
			}
			return object.None, nil
		}
	case "copy":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			out := object.NewDict()
			for _, kv := range d.Items() {
				out.Set(kv[0], kv[1])
			}
			return out, nil
		}
	}
	return nil
}

func (it *Interpreter) setMethod(s *object.Set, name string) object.BuiltinFunc {
	switch name {
	case "add":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			s.Add(args[0])
			return object.None, nil
		}
	case "remove":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			if !s.Remove(args[0]) {
				return nil, Raise("KeyError", "%s", args[0].Inspect())
			}
			return object.None, nil
		}
	case "discard":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			s.Remove(args[0])
			return object.None, nil
		}
	case "clear":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			s.Elems = make(map[object.HashKey]object.Value)
			return object.None, nil
		}
	case "union":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			v, _, err := hostSetOp(token.PIPE, s, args[0])
			return v, err
		}
	case "intersection":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			v, _, err := hostSetOp(token.AMP, s, args[0])
			return v, err
		}
	case "difference":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			v, _, err := hostSetOp(token.MINUS, s, args[0])
			return v, err
		}
	}
	return nil
}

func (it *Interpreter) strMethod(s *object.Str, name string) object.BuiltinFunc {
	switch name {
	case "upper":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			return &object.Str{Value: strings.ToUpper(s.Value)}, nil
		}
	case "lower":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			return &object.Str{Value: strings.ToLower(s.Value)}, nil
		}
	case "strip":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			cut := strCutset(args)
			if cut == "" {
				return &object.Str{Value: strings.TrimSpace(s.Value)}, nil
			}
			return &object.Str{Value: strings.Trim(s.Value, cut)}, nil
		}
	case "lstrip":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			cut := strCutset(args)
			if cut == "" {
				return &object.Str{Value: strings.TrimLeft(s.Value, " \t\n\r")}, nil
			}
			return &object.Str{Value: strings.TrimLeft(s.Value, cut)}, nil
		}
	case "rstrip":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			cut := strCutset(args)
			if cut == "" {
				return &object.Str{Value: strings.TrimRight(s.Value, " \t\n\r")}, nil
			}
			return &object.Str{Value: strings.TrimRight(s.Value, cut)}, nil
		}
	case "split":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			var parts []string
			if len(args) == 0 {
				parts = strings.Fields(s.Value)
			} else {
				sep, ok := args[0].(*object.Str)
				if !ok || sep.Value == "" {
					return nil, Raise("ValueError", "empty separator")
				}
				parts = strings.Split(s.Value, sep.Value)
			}
			out := make([]object.Value, len(parts))
			for i, p := range parts {
				out[i] = &object.Str{Value: p}
			}
			return &object.List{Elems: out}, nil
		}
	case "join":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			elems, err := it.iterableToSlice(args[0])
			if err != nil {
				return nil, err
			}
			parts := make([]string, len(elems))
			for i, e := range elems {
				str, ok := e.(*object.Str)
				if !ok {
					return nil, Raise("TypeError", "sequence item %d: expected str instance, %s found", i, object.TypeName(e))
				}
				parts[i] = str.Value
			}
			return &object.Str{Value: strings.Join(parts, s.Value)}, nil
		}
	case "replace":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			old := args[0].(*object.Str).Value
			repl := args[1].(*object.Str).Value
			n := -1
			if len(args) > 2 {
				n = int(args[2].(*object.Int).Value.Int64())
			}
			return &object.Str{Value: strings.Replace(s.Value, old, repl, n)}, nil
		}
	case "startswith":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			return object.BoolOf(strings.HasPrefix(s.Value, args[0].(*object.Str).Value)), nil
		}
	case "endswith":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			return object.BoolOf(strings.HasSuffix(s.Value, args[0].(*object.Str).Value)), nil
		}
	case "find":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			return object.NewInt(int64(strings.Index(s.Value, args[0].(*object.Str).Value))), nil
		}
	case "format":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			rendered, err := it.pyFormat(s.Value, args, kwargs)
			if err != nil {
				return nil, err
			}
			return &object.Str{Value: rendered}, nil
		}
	case "title":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			return &object.Str{Value: strings.Title(strings.ToLower(s.Value))}, nil
		}
	case "capitalize":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			if s.Value == "" {
				return &object.Str{Value: ""}, nil
			}
			return &object.Str{Value: strings.ToUpper(s.Value[:1]) + strings.ToLower(s.Value[1:])}, nil
		}
	case "encode":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			return &object.Bytes{Value: []byte(s.Value)}, nil
		}
	case "count":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			return object.NewInt(int64(strings.Count(s.Value, args[0].(*object.Str).Value))), nil
		}
	case "isdigit":
		return func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
			return object.BoolOf(isAllDigits(s.Value)), nil
		}
	}
	return nil
}

func strCutset(args []object.Value) string {
	if len(args) == 0 {
		return ""
	}
	if s, ok := args[0].(*object.Str); ok {
		return s.Value
	}
	return ""
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// pyFormat implements str.format field substitution: positional
// and keyword {field} references, with {{/}} escapes. Width/align/
// precision specs are delegated to formatSpec.
func (it *Interpreter) pyFormat(spec string, args []object.Value, kwargs map[string]object.Value) (string, error) {
	var sb strings.Builder
	autoIdx := 0
	i := 0
	for i < len(spec) {
		c := spec[i]
		switch {
		case c == '{' && i+1 < len(spec) && spec[i+1] == '{':
			sb.WriteByte('{')
			i += 2
		case c == '}' && i+1 < len(spec) && spec[i+1] == '}':
			sb.WriteByte('}')
			i += 2
		case c == '{':
			end := strings.IndexByte(spec[i:], '}')
			if end < 0 {
				return "", Raise("ValueError", "Single '{' encountered in format string")
			}
			field := spec[i+1 : i+end]
			name, colonSpec, _ := strings.Cut(field, ":")
			var v object.Value
			switch {
			case name == "":
				if autoIdx < len(args) {
					v = args[autoIdx]
				}
				autoIdx++
			default:
				if idx, err := strconv.Atoi(name); err == nil && idx < len(args) {
					v = args[idx]
				} else if kv, ok := kwargs[name]; ok {
					v = kv
				}
			}
			if v == nil {
				return "", Raise("IndexError", "Replacement index out of range")
			}
			if colonSpec != "" {
				rendered, err := formatSpec(v, colonSpec)
				if err != nil {
					return "", err
				}
				sb.WriteString(rendered)
			} else {
				sb.WriteString(it.str(v))
			}
			i += end + 1
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String(), nil
}
