package document

import (
	"fmt"

	"github.com/leapstack-labs/lintpreset/pkg/core"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// configGlobal is the global a Starlark document assigns.
const configGlobal = "config"

// predeclared returns the globals available to Starlark documents.
func predeclared() starlark.StringDict {
	return starlark.StringDict{
		"OFF":   starlark.String(core.SeverityOff.String()),
		"WARN":  starlark.String(core.SeverityWarn.String()),
		"ERROR": starlark.String(core.SeverityError.String()),
	}
}

// execStarlark runs a Starlark document and returns its config dict.
func execStarlark(name string, src []byte) (map[string]any, error) {
	thread := &starlark.Thread{
		Name: "document:" + name,
		Print: func(_ *starlark.Thread, _ string) {
			// Documents are data; prints are dropped.
		},
	}

	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{TopLevelControl: true, GlobalReassign: true}, thread, name, src, predeclared())
	if err != nil {
		return nil, fmt.Errorf("starlark execution error: %w", err)
	}

	value, ok := globals[configGlobal]
	if !ok {
		return nil, fmt.Errorf("starlark document must assign a %q dict", configGlobal)
	}
	dict, ok := value.(*starlark.Dict)
	if !ok {
		return nil, fmt.Errorf("starlark %q must be a dict, got %s", configGlobal, value.Type())
	}

	converted, err := toGo(dict)
	if err != nil {
		return nil, fmt.Errorf("starlark %q: %w", configGlobal, err)
	}
	return converted.(map[string]any), nil
}

// toGo converts a Starlark value to its Go form.
// Returns: string, int64, float64, bool, []any, map[string]any, or nil.
func toGo(v starlark.Value) (any, error) {
	switch val := v.(type) {
	case starlark.NoneType:
		return nil, nil

	case starlark.String:
		return string(val), nil

	case starlark.Int:
		i64, ok := val.Int64()
		if !ok {
			return nil, fmt.Errorf("integer %s out of range", val.String())
		}
		return i64, nil

	case starlark.Float:
		return float64(val), nil

	case starlark.Bool:
		return bool(val), nil

	case *starlark.List:
		return sequenceToGo(val)

	case starlark.Tuple:
		return sequenceToGo(val)

	case *starlark.Dict:
		result := make(map[string]any, val.Len())
		for _, item := range val.Items() {
			key, ok := item[0].(starlark.String)
			if !ok {
				return nil, fmt.Errorf("dict key must be string, got %s", item[0].Type())
			}
			gv, err := toGo(item[1])
			if err != nil {
				return nil, fmt.Errorf("dict key %q: %w", string(key), err)
			}
			result[string(key)] = gv
		}
		return result, nil

	default:
		return nil, fmt.Errorf("unsupported starlark type %s", v.Type())
	}
}

func sequenceToGo(seq starlark.Indexable) ([]any, error) {
	result := make([]any, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		gv, err := toGo(seq.Index(i))
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		result[i] = gv
	}
	return result, nil
}
