package dispatcher

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

var (
	errInvalidJSON = errors.New("Invalid JSON arguments.")
	errNotAnObject = errors.New("Arguments must be an object/dict.")
)

// decodeArgs turns the raw arguments into a fresh object the caller may
// mutate. Already decoded values go through JSON too, so numbers and lists
// have the same shapes as wire input.
func decodeArgs(raw any) (Args, error) {
	switch v := raw.(type) {
	case nil:
		return Args{}, nil
	case string:
		return decodeJSON([]byte(v))
	case []byte:
		return decodeJSON(v)
	case json.RawMessage:
		return decodeJSON(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, errNotAnObject
		}
		return decodeJSON(b)
	}
}

func decodeJSON(b []byte) (Args, error) {
	if strings.TrimSpace(string(b)) == "" {
		return Args{}, nil
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, errInvalidJSON
	}
	switch v := doc.(type) {
	case nil:
		return Args{}, nil
	case map[string]any:
		return Args(v), nil
	default:
		return nil, errNotAnObject
	}
}

// dropNulls treats explicit nulls as absent arguments.
func dropNulls(args Args) {
	for k, v := range args {
		if v == nil {
			delete(args, k)
		}
	}
}

// applyAliases moves an aliased key onto its target. When both are given the
// target wins and the alias is dropped.
func applyAliases(args Args, aliases map[string]string) {
	for from, to := range aliases {
		v, ok := args[from]
		if !ok {
			continue
		}
		delete(args, from)
		if _, taken := args[to]; !taken {
			args[to] = v
		}
	}
}

// coerceLists wraps a scalar in a one-element list where the schema expects an
// array; the agent often sends a single topping as a plain string.
func coerceLists(args Args, schema *openapi3.Schema) {
	if schema == nil {
		return
	}
	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil || !ref.Value.Type.Is(openapi3.TypeArray) {
			continue
		}
		v, ok := args[name]
		if !ok || v == nil {
			continue
		}
		if _, isList := v.([]any); isList {
			continue
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			args[name] = []any{}
			continue
		}
		args[name] = []any{v}
	}
}

// coerceNumbers parses numeric strings where the schema expects a number or
// an integer; the agent sometimes quotes quantities and indexes.
func coerceNumbers(args Args, schema *openapi3.Schema) {
	if schema == nil {
		return
	}
	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		if !ref.Value.Type.Is(openapi3.TypeInteger) && !ref.Value.Type.Is(openapi3.TypeNumber) {
			continue
		}
		s, ok := args[name].(string)
		if !ok {
			continue
		}
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			args[name] = n
		}
	}
}

// validateArgs checks args against schema and reports the first problem as
// "<field>: <reason>".
func validateArgs(schema *openapi3.Schema, args Args) error {
	if schema == nil {
		return nil
	}
	err := schema.VisitJSON(map[string]any(args))
	if err == nil {
		return nil
	}

	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		field := strings.Join(se.JSONPointer(), ".")
		if field == "" {
			return errors.New(se.Reason)
		}
		return errors.New(field + ": " + se.Reason)
	}
	return err
}

func objectSchema(props map[string]*openapi3.Schema, required ...string) *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	for name, p := range props {
		s.WithProperty(name, p)
	}
	if len(required) > 0 {
		s.Required = required
	}
	noExtra := false
	s.AdditionalProperties = openapi3.AdditionalProperties{Has: &noExtra}
	return s
}
