package bridge

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/openmotif/motif/pkg/domain"
)

// Each method decodes its raw params object into one of the typed structs
// below before any tree access. A shape mismatch surfaces as a decode error
// and maps to INVALID_PARAMS at the dispatcher boundary; no reflection-driven
// dynamic validation happens past this point.

type treeParams struct {
	Name string `mapstructure:"name"`
}

type modifyParams struct {
	Name          string         `mapstructure:"name"`
	Path          []string       `mapstructure:"path"`
	Modifications map[string]any `mapstructure:"modifications"`
}

type insertParams struct {
	Name       string              `mapstructure:"name"`
	ParentPath []string            `mapstructure:"parentPath"`
	Primitive  domain.PrimitiveDef `mapstructure:"primitive"`
}

type removeParams struct {
	Name string   `mapstructure:"name"`
	Path []string `mapstructure:"path"`
}

type invokeParams struct {
	HandlerID string `mapstructure:"handlerId"`
	Args      []any  `mapstructure:"args"`
}

// decodeParams strictly decodes raw into out. Types must match exactly;
// weakly-typed coercion (string "5" to int, etc.) is deliberately off so that
// malformed shapes fail here instead of deep inside an operation.
func decodeParams(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	return nil
}

// requireKeys reports the first declared key missing from raw. mapstructure
// leaves absent keys at their zero value, which for paths would be
// indistinguishable from a legitimate empty path, so presence is checked on
// the raw object.
func requireKeys(raw map[string]any, keys ...string) error {
	for _, key := range keys {
		if _, ok := raw[key]; !ok {
			return fmt.Errorf("missing required param %q", key)
		}
	}
	return nil
}

// intParam reads an optional non-negative integer param. JSON numbers arrive
// as float64, so whole floats are accepted.
func intParam(raw map[string]any, key string, fallback int) (int, error) {
	v, ok := raw[key]
	if !ok {
		return fallback, nil
	}
	var n int
	switch val := v.(type) {
	case int:
		n = val
	case int32:
		n = int(val)
	case int64:
		n = int(val)
	case float64:
		if val != float64(int64(val)) {
			return 0, fmt.Errorf("param %q: expected int, got float (not a whole number)", key)
		}
		n = int(val)
	default:
		return 0, fmt.Errorf("param %q: expected int, got %T", key, v)
	}
	if n < 0 {
		return 0, fmt.Errorf("param %q: must not be negative", key)
	}
	return n, nil
}
