package document

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-json"
	"github.com/leapstack-labs/lintpreset/pkg/core"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a document encoding.
type Format string

// Supported document formats.
const (
	FormatYAML     Format = "yaml"
	FormatJSON     Format = "json"
	FormatTOML     Format = "toml"
	FormatStarlark Format = "starlark"
)

// Extensions lists the file extensions recognized by FormatFromPath.
var Extensions = []string{".yaml", ".yml", ".json", ".toml", ".star"}

// ParseFormat converts a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "starlark", "star":
		return FormatStarlark, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(strings.TrimPrefix(ext, "."))
}

// Load reads and decodes a document file.
func Load(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: document path is chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	doc, err := Decode(format, path, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Decode decodes a document. The name is used in Starlark error positions.
func Decode(format Format, name string, data []byte) (*Document, error) {
	var raw map[string]any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		stringKeys(raw)
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case FormatStarlark:
		var err error
		raw, err = execStarlark(name, data)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return FromMap(raw)
}

// stringKeys rewrites nested maps with non-string keys, which YAML allows
// ({1: a}), to map[string]any in place.
func stringKeys(v any) any {
	switch val := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = stringKeys(item)
		}
		return out
	case map[string]any:
		for k, item := range val {
			val[k] = stringKeys(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = stringKeys(item)
		}
		return val
	default:
		return v
	}
}

// FromMap decodes a document from its generic map form.
func FromMap(raw map[string]any) (*Document, error) {
	doc := &Document{}
	if raw == nil {
		return doc, nil
	}
	if err := normalizeLayer(raw, ""); err != nil {
		return nil, err
	}

	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: ruleSettingHook,
		Metadata:   &md,
		Result:     doc,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, err
	}

	sort.Strings(md.Unused)
	doc.Unused = md.Unused
	return doc, nil
}

var ruleSettingType = reflect.TypeOf(core.RuleSetting{})

// ruleSettingHook turns rule values into core.RuleSetting.
func ruleSettingHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != ruleSettingType {
		return data, nil
	}
	setting, err := core.ParseRuleSetting(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	return setting, nil
}

// keyAliases maps accepted camelCase keys to the schema keys.
var keyAliases = map[string]string{
	"ignorePatterns": "ignore_patterns",
	"excludedFiles":  "excluded_files",
	"parserOptions":  "parser_options",
}

// normalizeLayer rewrites key aliases and rejects empty rule values in a
// document or override map, recursing into overrides.
func normalizeLayer(m map[string]any, path string) error {
	for alias, key := range keyAliases {
		if v, ok := m[alias]; ok {
			if _, exists := m[key]; !exists {
				m[key] = v
			}
			delete(m, alias)
		}
	}

	if rules, ok := m["rules"].(map[string]any); ok {
		for k, v := range rules {
			if v == nil {
				return fmt.Errorf("'%srules[%s]' %w: value is empty", path, k, ErrInvalidRule)
			}
		}
	}

	overrides, ok := m["overrides"].([]any)
	if !ok {
		return nil
	}
	for i, o := range overrides {
		om, ok := o.(map[string]any)
		if !ok {
			return fmt.Errorf("'%soverrides[%d]' must be a mapping, got %T", path, i, o)
		}
		if err := normalizeLayer(om, fmt.Sprintf("%soverrides[%d].", path, i)); err != nil {
			return err
		}
	}
	return nil
}
