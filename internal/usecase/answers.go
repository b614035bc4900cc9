package usecase

// Answer is one entry of form_response.answers. Typeform puts the value under
// a key named after the question type; only text and email are read here.
type Answer struct {
	Type  string  `json:"type,omitempty"`
	Text  *string `json:"text,omitempty"`
	Email *string `json:"email,omitempty"`
}

const (
	AnswerKeyText  = "text"
	AnswerKeyEmail = "email"
)

// AnswerField maps a position in the answers list to the key read from it and
// the value used when that key is absent.
type AnswerField struct {
	Index   int
	Key     string
	Default string
}

const MinClientAnswers = 4

var ClientAnswerFields = []AnswerField{
	{Index: 0, Key: AnswerKeyText, Default: "Unknown Business"},
	{Index: 1, Key: AnswerKeyEmail, Default: "no-email@example.com"},
	{Index: 2, Key: AnswerKeyText, Default: "Not specified"},
	{Index: 3, Key: AnswerKeyText, Default: "Not specified"},
}

// ExtractAnswers reads fields positionally. A field whose index is out of
// range or whose key is missing gets its default; a present but empty value
// is kept as is.
func ExtractAnswers(answers []Answer, fields []AnswerField) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Default
		if f.Index < 0 || f.Index >= len(answers) {
			continue
		}
		if v := answers[f.Index].value(f.Key); v != nil {
			out[i] = *v
		}
	}
	return out
}

func (a Answer) value(key string) *string {
	switch key {
	case AnswerKeyText:
		return a.Text
	case AnswerKeyEmail:
		return a.Email
	}
	return nil
}
