package parse

import (
	"regexp"
	"strings"

	"tailor-backend/resume/model"
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`(\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
)

// FromText builds an initial resume structure from raw extracted text using
// cheap heuristics: first non-blank line as name, regex email and phone. The
// LLM structuring pass fills in the rest; this gives chat something to edit
// before that happens.
func FromText(raw string) model.Resume {
	var lines []string
	for _, ln := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(ln); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	text := strings.Join(lines, "\n")

	var name, email, phone string
	if len(lines) > 0 {
		name = lines[0]
	}
	if m := emailRe.FindString(text); m != "" {
		email = m
	}
	if m := phoneRe.FindString(text); m != "" {
		phone = m
	}

	resume := model.Resume{
		Header: model.Header{
			Name:  name,
			Email: email,
			Phone: phone,
		},
	}
	resume.Normalize()
	return resume
}
