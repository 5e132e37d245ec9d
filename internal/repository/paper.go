package repository

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/researchpartner/api/internal/model"
)

var (
	ErrPaperNotFound         = errors.New("paper not found")
	ErrNoteNotFound          = errors.New("note not found")
	ErrDuplicateCollaborator = errors.New("user is already a collaborator")
)

type PaperRepository interface {
	Create(paper *model.Paper) error
	ByID(id string) (*model.Paper, error)
	ByOwner(ownerID string) ([]model.Paper, error)
	AccessibleBy(userID string) ([]model.Paper, error)
	Update(paper *model.Paper) error
	Delete(id string) error
	AddCollaborator(paperID, userID string, addedAt time.Time) error
	RemoveCollaborator(paperID, userID string) error
	Collaborators(paperID string) ([]model.Collaborator, error)
	IsCollaborator(paperID, userID string) (bool, error)
	AddNote(note *model.Note) error
	Notes(paperID string) ([]model.Note, error)
	DeleteNote(paperID, noteID string) error
}

type paperRepository struct {
	db *sqlx.DB
}

func NewPaperRepository(db *sqlx.DB) PaperRepository {
	return &paperRepository{db: db}
}

func (r *paperRepository) Create(paper *model.Paper) error {
	query := `INSERT INTO papers (id, owner_id, title, original_file_name, file_url, storage_key,
		extracted_text, keywords, knowledge_graph, citations, insights, quiz, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.Exec(query, paper.ID, paper.OwnerID, paper.Title, paper.OriginalFileName,
		paper.FileURL, paper.StorageKey, paper.ExtractedText, paper.Keywords, paper.KnowledgeGraph,
		paper.Citations, paper.Insights, paper.Quiz, paper.CreatedAt, paper.UpdatedAt)
	return err
}

func (r *paperRepository) ByID(id string) (*model.Paper, error) {
	paper := &model.Paper{}
	query := `SELECT * FROM papers WHERE id = $1`

	err := r.db.Get(paper, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrPaperNotFound
	}

	return paper, err
}

func (r *paperRepository) ByOwner(ownerID string) ([]model.Paper, error) {
	papers := []model.Paper{}
	query := `SELECT * FROM papers WHERE owner_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&papers, query, ownerID)
	return papers, err
}

// AccessibleBy returns papers the user owns plus papers shared with them.
func (r *paperRepository) AccessibleBy(userID string) ([]model.Paper, error) {
	papers := []model.Paper{}
	query := `SELECT p.* FROM papers p
		LEFT JOIN paper_collaborators pc ON pc.paper_id = p.id AND pc.user_id = $1
		WHERE p.owner_id = $1 OR pc.user_id IS NOT NULL
		ORDER BY p.created_at DESC`

	err := r.db.Select(&papers, query, userID)
	return papers, err
}

func (r *paperRepository) Update(paper *model.Paper) error {
	query := `UPDATE papers SET title = $1, extracted_text = $2, keywords = $3, knowledge_graph = $4,
		citations = $5, insights = $6, quiz = $7, updated_at = $8 WHERE id = $9`

	_, err := r.db.Exec(query, paper.Title, paper.ExtractedText, paper.Keywords, paper.KnowledgeGraph,
		paper.Citations, paper.Insights, paper.Quiz, paper.UpdatedAt, paper.ID)
	return err
}

func (r *paperRepository) Delete(id string) error {
	query := `DELETE FROM papers WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPaperNotFound
	}

	return nil
}

func (r *paperRepository) AddCollaborator(paperID, userID string, addedAt time.Time) error {
	query := `INSERT INTO paper_collaborators (paper_id, user_id, added_at) VALUES ($1, $2, $3)`

	_, err := r.db.Exec(query, paperID, userID, addedAt)
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrDuplicateCollaborator
		}
		return err
	}

	return nil
}

func (r *paperRepository) RemoveCollaborator(paperID, userID string) error {
	query := `DELETE FROM paper_collaborators WHERE paper_id = $1 AND user_id = $2`

	_, err := r.db.Exec(query, paperID, userID)
	return err
}

func (r *paperRepository) Collaborators(paperID string) ([]model.Collaborator, error) {
	rows := []struct {
		PaperID string    `db:"paper_id"`
		UserID  string    `db:"user_id"`
		AddedAt time.Time `db:"added_at"`
		Name    string    `db:"name"`
		Email   string    `db:"email"`
		Avatar  string    `db:"avatar"`
	}{}
	query := `SELECT pc.paper_id, pc.user_id, pc.added_at, u.name, u.email, u.avatar
		FROM paper_collaborators pc
		JOIN users u ON u.id = pc.user_id
		WHERE pc.paper_id = $1
		ORDER BY pc.added_at`

	if err := r.db.Select(&rows, query, paperID); err != nil {
		return nil, err
	}

	collaborators := make([]model.Collaborator, 0, len(rows))
	for _, row := range rows {
		collaborators = append(collaborators, model.Collaborator{
			PaperID: row.PaperID,
			UserID:  row.UserID,
			AddedAt: row.AddedAt,
			User: &model.User{
				ID:     row.UserID,
				Name:   row.Name,
				Email:  row.Email,
				Avatar: row.Avatar,
			},
		})
	}

	return collaborators, nil
}

func (r *paperRepository) IsCollaborator(paperID, userID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM paper_collaborators WHERE paper_id = $1 AND user_id = $2`

	err := r.db.Get(&count, query, paperID, userID)
	return count > 0, err
}

func (r *paperRepository) AddNote(note *model.Note) error {
	query := `INSERT INTO notes (id, paper_id, user_id, content, created_at) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query, note.ID, note.PaperID, note.UserID, note.Content, note.CreatedAt)
	return err
}

func (r *paperRepository) Notes(paperID string) ([]model.Note, error) {
	rows := []struct {
		ID        string    `db:"id"`
		PaperID   string    `db:"paper_id"`
		UserID    string    `db:"user_id"`
		Content   string    `db:"content"`
		CreatedAt time.Time `db:"created_at"`
		Name      string    `db:"name"`
		Email     string    `db:"email"`
		Avatar    string    `db:"avatar"`
	}{}
	query := `SELECT n.id, n.paper_id, n.user_id, n.content, n.created_at, u.name, u.email, u.avatar
		FROM notes n
		JOIN users u ON u.id = n.user_id
		WHERE n.paper_id = $1
		ORDER BY n.created_at`

	if err := r.db.Select(&rows, query, paperID); err != nil {
		return nil, err
	}

	notes := make([]model.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, model.Note{
			ID:        row.ID,
			PaperID:   row.PaperID,
			UserID:    row.UserID,
			Content:   row.Content,
			CreatedAt: row.CreatedAt,
			User: &model.User{
				ID:     row.UserID,
				Name:   row.Name,
				Email:  row.Email,
				Avatar: row.Avatar,
			},
		})
	}

	return notes, nil
}

func (r *paperRepository) DeleteNote(paperID, noteID string) error {
	query := `DELETE FROM notes WHERE id = $1 AND paper_id = $2`

	result, err := r.db.Exec(query, noteID, paperID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNoteNotFound
	}

	return nil
}
