package model

import (
	"database/sql/driver"
	"time"
)

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	Topic         string   `json:"topic"`
}

type QuizList []QuizQuestion

func (l QuizList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *QuizList) Scan(src any) error          { return jsonScan(src, l) }

// QuizAttempt records one completed run of a paper's quiz, including the
// question set as taken (the stored quiz may be regenerated later).
type QuizAttempt struct {
	ID             string    `db:"id" json:"_id"`
	PaperID        string    `db:"paper_id" json:"-"`
	Quiz           QuizList  `db:"quiz" json:"quiz"`
	UserAnswers    IntList   `db:"user_answers" json:"userAnswers"`
	Score          int       `db:"score" json:"score"`
	TotalQuestions int       `db:"total_questions" json:"totalQuestions"`
	CompletedAt    time.Time `db:"completed_at" json:"completedAt"`
}
