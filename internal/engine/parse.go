package engine

import (
	"fmt"
	"strings"
)

// ParseSubject parses user input to a Subject.
// Supported: math, science, history, language, arts (plus a few aliases).
func ParseSubject(input string) (Subject, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "math", "maths", "mathematics":
		return SubjectMath, nil
	case "science", "sci":
		return SubjectScience, nil
	case "history", "hist":
		return SubjectHistory, nil
	case "language", "lang", "english":
		return SubjectLanguage, nil
	case "arts", "art":
		return SubjectArts, nil
	default:
		return "", fmt.Errorf("invalid subject: %q", input)
	}
}

// ParseGrade normalizes a grade band. "College" and "college" are the same band.
func ParseGrade(input string) (Grade, error) {
	g := Grade(strings.TrimSpace(strings.ToLower(input)))
	if !g.IsValid() {
		return "", fmt.Errorf("invalid grade: %q (want 1-12 or college)", input)
	}
	return g, nil
}
