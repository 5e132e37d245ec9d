package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/researchpartner/api/internal/model"
)

var ErrChatMessageNotFound = errors.New("chat message not found")

type ChatRepository interface {
	Create(message *model.ChatMessage) error
	ByPaperID(paperID string) ([]model.ChatMessage, error)
	ByIdeaID(ideaID string) ([]model.ChatMessage, error)
	Delete(id string) error
	DeleteByPaperID(paperID string) error
	DeleteByIdeaID(ideaID string) error
}

type chatRepository struct {
	db *sqlx.DB
}

func NewChatRepository(db *sqlx.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(message *model.ChatMessage) error {
	query := `INSERT INTO chat_messages (id, paper_id, idea_id, question, answer, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query, message.ID, message.PaperID, message.IdeaID, message.Question,
		message.Answer, message.CreatedAt)
	return err
}

func (r *chatRepository) ByPaperID(paperID string) ([]model.ChatMessage, error) {
	messages := []model.ChatMessage{}
	query := `SELECT * FROM chat_messages WHERE paper_id = $1 ORDER BY created_at`

	err := r.db.Select(&messages, query, paperID)
	return messages, err
}

func (r *chatRepository) ByIdeaID(ideaID string) ([]model.ChatMessage, error) {
	messages := []model.ChatMessage{}
	query := `SELECT * FROM chat_messages WHERE idea_id = $1 ORDER BY created_at`

	err := r.db.Select(&messages, query, ideaID)
	return messages, err
}

func (r *chatRepository) Delete(id string) error {
	query := `DELETE FROM chat_messages WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrChatMessageNotFound
	}

	return nil
}

func (r *chatRepository) DeleteByPaperID(paperID string) error {
	query := `DELETE FROM chat_messages WHERE paper_id = $1`

	_, err := r.db.Exec(query, paperID)
	return err
}

func (r *chatRepository) DeleteByIdeaID(ideaID string) error {
	query := `DELETE FROM chat_messages WHERE idea_id = $1`

	_, err := r.db.Exec(query, ideaID)
	return err
}
