package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/researchpartner/api/internal/model"
)

type QuizAttemptRepository interface {
	Create(attempt *model.QuizAttempt) error
	ByPaperID(paperID string) ([]model.QuizAttempt, error)
}

type quizAttemptRepository struct {
	db *sqlx.DB
}

func NewQuizAttemptRepository(db *sqlx.DB) QuizAttemptRepository {
	return &quizAttemptRepository{db: db}
}

func (r *quizAttemptRepository) Create(attempt *model.QuizAttempt) error {
	query := `INSERT INTO quiz_attempts (id, paper_id, quiz, user_answers, score, total_questions, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query, attempt.ID, attempt.PaperID, attempt.Quiz, attempt.UserAnswers,
		attempt.Score, attempt.TotalQuestions, attempt.CompletedAt)
	return err
}

func (r *quizAttemptRepository) ByPaperID(paperID string) ([]model.QuizAttempt, error) {
	attempts := []model.QuizAttempt{}
	query := `SELECT * FROM quiz_attempts WHERE paper_id = $1 ORDER BY completed_at DESC`

	err := r.db.Select(&attempts, query, paperID)
	return attempts, err
}
