package seeder

import "strings"

type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Result is what every orchestrator operation returns. Failures are carried
// in IsError instead of a Go error.
type Result struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

func TextResult(text string) *Result {
	return &Result{Content: []Content{{Type: "text", Text: text}}}
}

func ErrorResult(err error) *Result {
	return &Result{Content: []Content{{Type: "text", Text: "Error: " + err.Error()}}, IsError: true}
}

// Text joins the text content of the result.
func (r *Result) Text() string {
	parts := make([]string, 0, len(r.Content))
	for _, c := range r.Content {
		parts = append(parts, c.Text)
	}
	return strings.Join(parts, "\n")
}
