package generation_test

import (
	"testing"

	"github.com/phrazzld/scry-study/internal/generation"
	"github.com/stretchr/testify/assert"
)

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "object surrounded by prose",
			raw:  `prose {"a":1} more prose`,
			want: `{"a":1}`,
		},
		{
			name: "fenced array",
			raw:  "```json\n[1,2,3]\n```",
			want: "[1,2,3]",
		},
		{
			name: "bare fence",
			raw:  "```\n{\"questions\": []}\n```",
			want: `{"questions": []}`,
		},
		{
			name: "no brackets returns trimmed input",
			raw:  "   no json here\n",
			want: "no json here",
		},
		{
			name: "fallback keeps fences",
			raw:  "```json nothing```",
			want: "```json nothing```",
		},
		{
			name: "object wins when brace comes first",
			raw:  `{"questions": [1, 2]} trailing`,
			want: `{"questions": [1, 2]}`,
		},
		{
			name: "array wins when bracket comes first",
			raw:  `Here: [{"front": "a", "back": "b"}] done`,
			want: `[{"front": "a", "back": "b"}]`,
		},
		{
			name: "last closing brace is used",
			raw:  `{"a":1} and {"b":2}`,
			want: `{"a":1} and {"b":2}`,
		},
		{
			name: "open brace without close returns trimmed input",
			raw:  ` {"a": 1 `,
			want: `{"a": 1`,
		},
		{
			name: "closing before opening yields empty",
			raw:  `} then {`,
			want: "",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, generation.ExtractJSON(tt.raw))
		})
	}
}
