package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

var (
	// ErrEmpty is returned when there is nothing left to parse.
	ErrEmpty = errors.New("parse: empty content")

	// ErrNotObject is returned when the content is valid JSON but not an object.
	ErrNotObject = errors.New("parse: content is not a JSON object")
)

type options struct {
	repair bool
}

// Option configures [Object].
type Option func(*options)

// WithRepair enables the jsonrepair recovery pass when strict decoding fails.
func WithRepair(enabled bool) Option {
	return func(o *options) {
		o.repair = enabled
	}
}

// Object decodes content, which must hold exactly one JSON object, into T.
//
// T is normally a struct or a map. A top-level array, string, number or null
// is rejected with [ErrNotObject] even when it would decode into T without
// complaint (null into a struct, for example).
//
// Example usage:
//
//	type Person struct {
//	    Name string `json:"name"`
//	}
//
//	person, err := Object[Person](`{"name":"John"}`)
//	person, err = Object[Person](`{name: 'John'}`, WithRepair(true))
func Object[T any](content string, opts ...Option) (T, error) {
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}

	var result T
	content = strings.TrimSpace(content)
	if content == "" {
		return result, ErrEmpty
	}

	strictErr := decodeObject(content, &result)
	if strictErr == nil {
		return result, nil
	}
	if !cfg.repair {
		return result, strictErr
	}

	repaired, repairErr := jsonrepair.JSONRepair(content)
	if repairErr != nil {
		return result, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: unmarshal error: %w, repair error: %v", result, strictErr, repairErr)
	}

	result = *new(T)
	err := decodeObject(repaired, &result)
	if err == nil {
		return result, nil
	}

	// LLMs sometimes echo the schema back: {"user": {"type": "string", "value": "张三"}}
	if unwrapped, unwrapErr := unwrapSchemaValues(repaired); unwrapErr == nil {
		result = *new(T)
		if decodeObject(unwrapped, &result) == nil {
			return result, nil
		}
	}

	return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w (repaired: %s)", result, err, repaired)
}

func decodeObject(content string, target any) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmpty
	}
	if content[0] != '{' {
		var decoded any
		if err := json.Unmarshal([]byte(content), &decoded); err != nil {
			return fmt.Errorf("failed to unmarshal content: %w", err)
		}
		return ErrNotObject
	}
	if err := json.Unmarshal([]byte(content), target); err != nil {
		return fmt.Errorf("failed to unmarshal content as %T: %w", target, err)
	}
	return nil
}

// unwrapSchemaValues rewrites every {"type": ..., "value": v} pair in jsonStr
// to v.
//
// Example input:
//
//	{"user": {"type": "string", "value": "张三"}, "amount": {"type": "number", "value": 500}}
//
// Example output:
//
//	{"amount":500,"user":"张三"}
func unwrapSchemaValues(jsonStr string) (string, error) {
	var data any
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return "", err
	}

	result, err := json.Marshal(recursiveUnwrap(data))
	if err != nil {
		return "", err
	}
	return string(result), nil
}

func recursiveUnwrap(data any) any {
	switch v := data.(type) {
	case map[string]any:
		if _, hasType := v["type"]; hasType {
			if value, hasValue := v["value"]; hasValue && len(v) == 2 {
				return recursiveUnwrap(value)
			}
		}
		result := make(map[string]any, len(v))
		for key, val := range v {
			result[key] = recursiveUnwrap(val)
		}
		return result

	case []any:
		result := make([]any, len(v))
		for i, val := range v {
			result[i] = recursiveUnwrap(val)
		}
		return result

	default:
		return data
	}
}
