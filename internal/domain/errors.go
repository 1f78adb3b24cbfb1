package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidQuiz marks a quiz definition that must not be served.
	ErrInvalidQuiz = errors.New("invalid quiz definition")
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrSessionNotFound is returned when a participant acts before starting the quiz.
	ErrSessionNotFound = errors.New("quiz session not found")

	// ErrInvalidSelection rejects an option index outside the current question.
	ErrInvalidSelection = errors.New("option index out of range")
	// ErrNoSelection is returned by Submit when no option is selected.
	ErrNoSelection = errors.New("no option selected")
	// ErrAlreadySolved is returned once the current question was answered correctly.
	ErrAlreadySolved = errors.New("question already answered correctly")
	// ErrNotSolved is returned by Advance before a correct submission.
	ErrNotSolved = errors.New("question not answered correctly yet")
	// ErrFinished is returned for any action after the last question.
	ErrFinished = errors.New("quiz already finished")
)

// ConfigError describes a quiz that failed load-time validation.
type ConfigError struct {
	QuizID   string
	Problems []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("quiz %q: %s", e.QuizID, strings.Join(e.Problems, "; "))
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidQuiz
}
