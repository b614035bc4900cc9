package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestExtractAnswersPositional(t *testing.T) {
	answers := []Answer{
		{Text: strPtr("Acme Plumbing")},
		{Email: strPtr("owner@acme.com")},
		{Text: strPtr("Plumbers")},
		{Text: strPtr("Austin TX")},
		{Text: strPtr("ignored")},
	}

	got := ExtractAnswers(answers, ClientAnswerFields)

	assert.Equal(t, []string{"Acme Plumbing", "owner@acme.com", "Plumbers", "Austin TX"}, got)
}

func TestExtractAnswersDefaults(t *testing.T) {
	tests := []struct {
		name    string
		answers []Answer
		want    []string
	}{
		{
			name:    "all keys missing",
			answers: []Answer{{}, {}, {}, {}},
			want:    []string{"Unknown Business", "no-email@example.com", "Not specified", "Not specified"},
		},
		{
			name:    "email answered as text",
			answers: []Answer{{Text: strPtr("Biz")}, {Text: strPtr("x@y.com")}, {}, {}},
			want:    []string{"Biz", "no-email@example.com", "Not specified", "Not specified"},
		},
		{
			name:    "short list",
			answers: []Answer{{Text: strPtr("Biz")}},
			want:    []string{"Biz", "no-email@example.com", "Not specified", "Not specified"},
		},
		{
			name:    "empty value is kept",
			answers: []Answer{{Text: strPtr("")}, {Email: strPtr("a@b.com")}, {}, {}},
			want:    []string{"", "a@b.com", "Not specified", "Not specified"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractAnswers(tt.answers, ClientAnswerFields))
		})
	}
}

func TestExtractAnswersUnknownKey(t *testing.T) {
	fields := []AnswerField{{Index: 0, Key: "number", Default: "0"}}
	assert.Equal(t, []string{"0"}, ExtractAnswers([]Answer{{Text: strPtr("5")}}, fields))
}
