// Package mcputils converts loosely typed MCP tool arguments into Go structs.
package mcputils

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ArgumentGetter is the slice of an MCP request needed for binding.
type ArgumentGetter interface {
	GetArguments() map[string]interface{}
}

// BindArguments decodes request arguments into target using json tags. MCP
// clients often send every parameter as a string, including JSON-encoded
// arrays and numbers, so string values are re-parsed when the target field
// wants a richer type.
func BindArguments[T any](request ArgumentGetter, target *T) error {
	rawArgs := request.GetArguments()

	jsonStringHook := func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		raw := data.(string)
		if raw == "" {
			return data, nil
		}

		switch {
		case t.Kind() == reflect.Slice:
			trimmed := strings.TrimSpace(raw)
			if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
				slicePtr := reflect.New(t)
				if err := json.Unmarshal([]byte(raw), slicePtr.Interface()); err == nil {
					return slicePtr.Elem().Interface(), nil
				}
			}
		case t.Kind() == reflect.Bool:
			trimmed := strings.TrimSpace(raw)
			if trimmed == "true" || trimmed == "false" {
				return trimmed == "true", nil
			}
		case t.Kind() >= reflect.Int && t.Kind() <= reflect.Float64:
			var n json.Number
			if err := json.Unmarshal([]byte(raw), &n); err == nil {
				return n, nil
			}
		}
		return data, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			jsonStringHook,
			mapstructure.StringToSliceHookFunc(","),
		),
		Result:  target,
		TagName: "json",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(rawArgs)
}
