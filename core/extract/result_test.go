package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Result
	}{
		{
			name:  "all strings",
			input: `{"user": "张三", "action": "充值", "amount": "500"}`,
			want:  Result{User: "张三", Action: "充值", Amount: "500"},
		},
		{
			name:  "numeric amount keeps literal",
			input: `{"user": "李四", "action": "充值", "amount": 600}`,
			want:  Result{User: "李四", Action: "充值", Amount: "600"},
		},
		{
			name:  "decimal amount",
			input: `{"amount": 12.50}`,
			want:  Result{Amount: "12.50"},
		},
		{
			name:  "null and missing fields",
			input: `{"user": null}`,
			want:  Result{},
		},
		{
			name:  "boolean kept as text",
			input: `{"user": "张三", "action": "充值", "amount": true}`,
			want:  Result{User: "张三", Action: "充值", Amount: "true"},
		},
		{
			name:  "object kept as compact JSON",
			input: `{"amount": {"value": 500, "unit": "元"}}`,
			want:  Result{Amount: `{"value":500,"unit":"元"}`},
		},
		{
			name:  "array kept as compact JSON",
			input: `{"action": [ "充值", "转账" ]}`,
			want:  Result{Action: `["充值","转账"]`},
		},
		{
			name:  "extra keys kept",
			input: `{"user": "王五", "time": "昨天下午两点"}`,
			want: Result{User: "王五", Extra: map[string]json.RawMessage{
				"time": json.RawMessage(`"昨天下午两点"`),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Result
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResult_UnmarshalJSON_RejectsNonObjects(t *testing.T) {
	for _, input := range []string{
		`[1, 2]`,
		`"text"`,
		`42`,
		`{"user": `,
	} {
		var got Result
		assert.Error(t, json.Unmarshal([]byte(input), &got), input)
	}
}

func TestResult_Clone(t *testing.T) {
	var nilResult *Result
	assert.Nil(t, nilResult.clone())

	original := &Result{User: "a", Extra: map[string]json.RawMessage{"k": json.RawMessage(`1`)}}
	copied := original.clone()
	copied.User = "b"
	copied.Extra["k"] = json.RawMessage(`2`)

	assert.Equal(t, "a", original.User)
	assert.Equal(t, json.RawMessage(`1`), original.Extra["k"])
}
