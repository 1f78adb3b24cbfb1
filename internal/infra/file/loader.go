// Package file loads quiz definitions from YAML documents. A built-in quiz
// is always available; a directory of *.yaml files may add to or replace it.
package file

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"

	"buddy-hunt/internal/domain"
	"gopkg.in/yaml.v3"
)

// DefaultQuizID names the built-in quiz.
const DefaultQuizID = "buddy-hunt"

//go:embed quizzes/*.yaml
var builtin embed.FS

// Loader serves quizzes parsed and validated at construction time.
type Loader struct {
	quizzes map[string]domain.Quiz
}

// NewLoader reads the built-in quizzes and then every YAML file in dir, if
// dir is set. Any invalid document fails the whole load.
func NewLoader(dir string) (*Loader, error) {
	l := &Loader{quizzes: make(map[string]domain.Quiz)}

	sub, err := fs.Sub(builtin, "quizzes")
	if err != nil {
		return nil, err
	}
	if err := l.loadFS(sub, false); err != nil {
		return nil, fmt.Errorf("built-in quizzes: %w", err)
	}

	if dir != "" {
		if err := l.loadFS(os.DirFS(dir), true); err != nil {
			return nil, fmt.Errorf("quiz dir %s: %w", dir, err)
		}
	}
	return l, nil
}

// LoadQuiz implements the repositories' QuizLoader.
func (l *Loader) LoadQuiz(_ context.Context, quizID string) (domain.Quiz, error) {
	quiz, ok := l.quizzes[quizID]
	if !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return quiz, nil
}

// Quizzes returns every loaded quiz ordered by id.
func (l *Loader) Quizzes() []domain.Quiz {
	out := make([]domain.Quiz, 0, len(l.quizzes))
	for _, q := range l.quizzes {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// loadFS reads *.yaml and *.yml from the root of fsys. Files in one directory
// must not share an id; override lets them replace built-in quizzes.
func (l *Loader) loadFS(fsys fs.FS, override bool) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return err
	}

	seen := make(map[string]string)
	for _, entry := range entries {
		ext := path.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		f, err := fsys.Open(entry.Name())
		if err != nil {
			return err
		}
		quiz, err := Decode(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", entry.Name(), err)
		}

		if other, dup := seen[quiz.ID]; dup {
			return fmt.Errorf("%s: quiz id %q already defined in %s: %w", entry.Name(), quiz.ID, other, domain.ErrInvalidQuiz)
		}
		if _, exists := l.quizzes[quiz.ID]; exists && !override {
			return fmt.Errorf("%s: quiz id %q already defined: %w", entry.Name(), quiz.ID, domain.ErrInvalidQuiz)
		}
		seen[quiz.ID] = entry.Name()
		l.quizzes[quiz.ID] = quiz
	}
	return nil
}

// Decode parses and validates one quiz document. Unknown keys are rejected
// so typos such as "correct_idx" fail at load time.
func Decode(r io.Reader) (domain.Quiz, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var quiz domain.Quiz
	if err := dec.Decode(&quiz); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Quiz{}, fmt.Errorf("empty document: %w", domain.ErrInvalidQuiz)
		}
		return domain.Quiz{}, fmt.Errorf("decode quiz: %w", err)
	}
	if err := domain.ValidateQuiz(quiz); err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}
