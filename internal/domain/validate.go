package domain

import (
	"fmt"
	"strings"
)

// Ids end up in chat button payloads ("select:<quiz>:<question>:<n>"),
// which are colon separated and capped at 64 bytes.
const (
	MaxQuizIDLength     = 24
	MaxQuestionIDLength = 16
	idSeparator         = ":"
)

// ValidateQuiz checks a quiz before it is served. Every problem found is
// reported in one *ConfigError so a broken file can be fixed in one pass.
func ValidateQuiz(quiz Quiz) error {
	var problems []string
	if strings.TrimSpace(quiz.ID) == "" {
		problems = append(problems, "missing quiz id")
	} else if p := checkID(quiz.ID, MaxQuizIDLength); p != "" {
		problems = append(problems, "quiz id "+p)
	}
	if len(quiz.Questions) == 0 {
		problems = append(problems, "need at least one question")
	}

	seen := make(map[string]int, len(quiz.Questions))
	for i, q := range quiz.Questions {
		if strings.TrimSpace(q.ID) == "" {
			problems = append(problems, fmt.Sprintf("question %d: missing id", i))
		} else if p := checkID(q.ID, MaxQuestionIDLength); p != "" {
			problems = append(problems, fmt.Sprintf("question %d: id %s", i, p))
		} else if prev, dup := seen[q.ID]; dup {
			problems = append(problems, fmt.Sprintf("question %d: id %q already used by question %d", i, q.ID, prev))
		} else {
			seen[q.ID] = i
		}
		if strings.TrimSpace(q.Prompt) == "" {
			problems = append(problems, fmt.Sprintf("question %d: missing prompt", i))
		}
		if len(q.Options) < 2 {
			problems = append(problems, fmt.Sprintf("question %d: need at least two options, got %d", i, len(q.Options)))
		}
		for j, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				problems = append(problems, fmt.Sprintf("question %d: option %d is empty", i, j))
			}
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			problems = append(problems, fmt.Sprintf("question %d: correct index %d out of range", i, q.CorrectIndex))
		}
	}

	if len(problems) > 0 {
		return &ConfigError{QuizID: quiz.ID, Problems: problems}
	}
	return nil
}

func checkID(id string, limit int) string {
	switch {
	case strings.Contains(id, idSeparator):
		return fmt.Sprintf("%q must not contain %q", id, idSeparator)
	case len(id) > limit:
		return fmt.Sprintf("%q is longer than %d bytes", id, limit)
	}
	return ""
}
