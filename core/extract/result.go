package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
)

// Result is the record extracted from one input. Fields the model left out
// are empty. Amount keeps numbers in their literal form, so 500 and "500"
// both read back as "500". Booleans, objects and arrays are kept as compact
// JSON text: {"value": 500, "unit": "元"} reads back as {"value":500,"unit":"元"}.
type Result struct {
	User   string `json:"user"`
	Action string `json:"action"`
	Amount string `json:"amount"`

	// Extra holds any other keys the model returned.
	Extra map[string]json.RawMessage `json:"extra,omitempty"`
}

// UnmarshalJSON accepts any JSON object. Unknown keys are kept in Extra.
func (r *Result) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	decoded := Result{}
	for key, value := range fields {
		var target *string
		switch key {
		case "user":
			target = &decoded.User
		case "action":
			target = &decoded.Action
		case "amount":
			target = &decoded.Amount
		default:
			if decoded.Extra == nil {
				decoded.Extra = make(map[string]json.RawMessage)
			}
			decoded.Extra[key] = value
			continue
		}

		text, err := scalarText(value)
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		*target = text
	}

	*r = decoded
	return nil
}

// scalarText renders a JSON string or number as its text, null as "", and
// anything else as compact JSON.
func scalarText(value json.RawMessage) (string, error) {
	value = bytes.TrimSpace(value)
	if len(value) == 0 {
		return "", nil
	}

	switch value[0] {
	case '"':
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return "", err
		}
		return s, nil
	case 'n':
		return "", nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(value, &n); err != nil {
			return "", err
		}
		return n.String(), nil
	default:
		var compact bytes.Buffer
		if err := json.Compact(&compact, value); err != nil {
			return "", err
		}
		return compact.String(), nil
	}
}

// clone returns a copy that shares nothing mutable with r.
func (r *Result) clone() *Result {
	if r == nil {
		return nil
	}
	c := *r
	c.Extra = maps.Clone(r.Extra)
	return &c
}
