package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain object",
			input: `{"talent_score": 80}`,
			want:  `{"talent_score": 80}`,
		},
		{
			name:  "markdown fenced",
			input: "```json\n{\"talent_score\": 80}\n```",
			want:  `{"talent_score": 80}`,
		},
		{
			name:  "surrounding prose",
			input: `Here is the result: {"talent_score": 80} as requested.`,
			want:  `{"talent_score": 80}`,
		},
		{
			name:  "array payload",
			input: `The list: ["a", "b"]`,
			want:  `["a", "b"]`,
		},
		{
			name:  "no json at all",
			input: "no structured data here",
			want:  "no structured data here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.input))
		})
	}
}

func TestParseJSONResponse(t *testing.T) {
	var result ScoreResult
	err := parseJSONResponse("```json\n{\"talent_score\": 72.5, \"reasoning\": \"solid\"}\n```", &result)

	require.NoError(t, err)
	assert.Equal(t, 72.5, result.TalentScore)
	assert.Equal(t, "solid", result.Reasoning)
}

func TestParseJSONResponseMalformed(t *testing.T) {
	var result ScoreResult
	err := parseJSONResponse("the model refused", &result)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}
