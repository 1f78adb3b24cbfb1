package memory

import (
	"context"
	"errors"

	"buddy-hunt/internal/domain"
)

// ChainLoader asks each loader in turn and returns the first quiz found.
// Errors other than ErrQuizNotFound stop the chain.
type ChainLoader []QuizLoader

func (c ChainLoader) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	for _, l := range c {
		quiz, err := l.LoadQuiz(ctx, quizID)
		if errors.Is(err, domain.ErrQuizNotFound) {
			continue
		}
		return quiz, err
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}
