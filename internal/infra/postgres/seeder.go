package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"buddy-hunt/internal/domain"
	"github.com/uptrace/bun"
)

type quizRow struct {
	bun.BaseModel `bun:"table:quizzes"`

	ID        string    `bun:"id,pk"`
	Data      string    `bun:"data,type:jsonb"`
	UpdatedAt time.Time `bun:"updated_at"`
}

// Seeder writes quiz definitions into the quizzes table.
type Seeder struct {
	db *bun.DB
}

func NewSeeder(db *bun.DB) *Seeder {
	return &Seeder{db: db}
}

// Upsert validates and stores quizzes, replacing rows with the same id.
func (s *Seeder) Upsert(ctx context.Context, quizzes ...domain.Quiz) error {
	if len(quizzes) == 0 {
		return nil
	}
	rows := make([]quizRow, 0, len(quizzes))
	now := time.Now().UTC()
	for _, quiz := range quizzes {
		if err := domain.ValidateQuiz(quiz); err != nil {
			return err
		}
		data, err := json.Marshal(quiz)
		if err != nil {
			return fmt.Errorf("marshal quiz %s: %w", quiz.ID, err)
		}
		rows = append(rows, quizRow{ID: quiz.ID, Data: string(data), UpdatedAt: now})
	}

	_, err := s.db.NewInsert().
		Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Set("data = EXCLUDED.data").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert quizzes: %w", err)
	}
	return nil
}
