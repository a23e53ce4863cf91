package main

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/danderson/argfmt/object"
	"gopkg.in/yaml.v2"
)

// Literals are written as YAML. Sequences are tuples, mappings are
// dicts, and strings of the form b'...' and ba'...' are bytes and
// bytearrays.

// parseObjects parses a YAML sequence into a list of objects.
func parseObjects(src string) ([]object.Object, error) {
	var vs []any
	if err := yaml.Unmarshal([]byte(src), &vs); err != nil {
		return nil, fmt.Errorf("parsing %q: %w", src, err)
	}
	ret := make([]object.Object, 0, len(vs))
	for _, v := range vs {
		o, err := toObject(v)
		if err != nil {
			return nil, err
		}
		ret = append(ret, o)
	}
	return ret, nil
}

// parseKwargs parses a YAML mapping into a dict, keeping the
// mapping's key order.
func parseKwargs(src string) (*object.Dict, error) {
	if src == "" {
		return nil, nil
	}
	var m yaml.MapSlice
	if err := yaml.Unmarshal([]byte(src), &m); err != nil {
		return nil, fmt.Errorf("parsing kwargs %q: %w", src, err)
	}
	ret := object.NewDict()
	for _, kv := range m {
		k, ok := kv.Key.(string)
		if !ok {
			return nil, fmt.Errorf("keyword %v is not a string", kv.Key)
		}
		v, err := toObject(kv.Value)
		if err != nil {
			return nil, err
		}
		if err := ret.SetItem(object.Str(k), v); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// parseInputs parses a YAML sequence into native builder inputs.
// Scalars become Go values, containers become objects for the O
// directive.
func parseInputs(src string) ([]any, error) {
	var vs []any
	if err := yaml.Unmarshal([]byte(src), &vs); err != nil {
		return nil, fmt.Errorf("parsing %q: %w", src, err)
	}
	ret := make([]any, 0, len(vs))
	for _, v := range vs {
		switch x := v.(type) {
		case nil, int, int64, uint64, float64:
			ret = append(ret, x)
		case string:
			if bs, ok := bytesLiteral(x, "b"); ok {
				ret = append(ret, bs)
			} else {
				ret = append(ret, x)
			}
		default:
			o, err := toObject(v)
			if err != nil {
				return nil, err
			}
			ret = append(ret, o)
		}
	}
	return ret, nil
}

func bytesLiteral(s, prefix string) ([]byte, bool) {
	if !strings.HasPrefix(s, prefix+"'") || !strings.HasSuffix(s, "'") || len(s) < len(prefix)+2 {
		return nil, false
	}
	return []byte(s[len(prefix)+1 : len(s)-1]), true
}

func toObject(v any) (object.Object, error) {
	switch x := v.(type) {
	case nil:
		return object.None, nil
	case bool:
		return object.Bool(x), nil
	case int:
		return object.NewInt(int64(x)), nil
	case int64:
		return object.NewInt(x), nil
	case uint64:
		return object.NewUint(x), nil
	case float64:
		return object.Float(x), nil
	case string:
		if bs, ok := bytesLiteral(x, "b"); ok {
			return object.Bytes(bs), nil
		}
		if bs, ok := bytesLiteral(x, "ba"); ok {
			return object.NewByteArray(bs), nil
		}
		return object.Str(x), nil
	case []any:
		items := make([]object.Object, 0, len(x))
		for _, e := range x {
			o, err := toObject(e)
			if err != nil {
				return nil, err
			}
			items = append(items, o)
		}
		return object.NewTuple(items...), nil
	case map[any]any:
		// yaml.v2 does not preserve the order of nested mappings.
		keys := make([]any, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.SortFunc(keys, func(a, b any) int {
			return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
		})
		ret := object.NewDict()
		for _, k := range keys {
			ko, err := toObject(k)
			if err != nil {
				return nil, err
			}
			vo, err := toObject(x[k])
			if err != nil {
				return nil, err
			}
			if err := ret.SetItem(ko, vo); err != nil {
				return nil, err
			}
		}
		return ret, nil
	}
	return nil, fmt.Errorf("unsupported literal %v (%T)", v, v)
}
