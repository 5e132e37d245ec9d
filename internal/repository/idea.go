package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/researchpartner/api/internal/model"
)

var ErrIdeaNotFound = errors.New("idea not found")

type IdeaRepository interface {
	Create(idea *model.Idea) error
	ByID(id string) (*model.Idea, error)
	ByPaperID(paperID string) ([]model.Idea, error)
	Update(idea *model.Idea) error
	DeleteByPaperID(paperID string) error
}

type ideaRepository struct {
	db *sqlx.DB
}

func NewIdeaRepository(db *sqlx.DB) IdeaRepository {
	return &ideaRepository{db: db}
}

func (r *ideaRepository) Create(idea *model.Idea) error {
	query := `INSERT INTO ideas (id, paper_id, title, description, tags, methodology, expected_outcome,
		resources, generated_paper, generated_slides, generated_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(query, idea.ID, idea.PaperID, idea.Title, idea.Description, idea.Tags,
		idea.Methodology, idea.ExpectedOutcome, idea.Resources, idea.GeneratedPaper,
		idea.GeneratedSlides, idea.GeneratedAt, idea.CreatedAt)
	return err
}

func (r *ideaRepository) ByID(id string) (*model.Idea, error) {
	idea := &model.Idea{}
	query := `SELECT * FROM ideas WHERE id = $1`

	err := r.db.Get(idea, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrIdeaNotFound
	}

	return idea, err
}

func (r *ideaRepository) ByPaperID(paperID string) ([]model.Idea, error) {
	ideas := []model.Idea{}
	query := `SELECT * FROM ideas WHERE paper_id = $1 ORDER BY created_at`

	err := r.db.Select(&ideas, query, paperID)
	return ideas, err
}

func (r *ideaRepository) Update(idea *model.Idea) error {
	query := `UPDATE ideas SET title = $1, description = $2, tags = $3, methodology = $4,
		expected_outcome = $5, resources = $6, generated_paper = $7, generated_slides = $8,
		generated_at = $9 WHERE id = $10`

	_, err := r.db.Exec(query, idea.Title, idea.Description, idea.Tags, idea.Methodology,
		idea.ExpectedOutcome, idea.Resources, idea.GeneratedPaper, idea.GeneratedSlides,
		idea.GeneratedAt, idea.ID)
	return err
}

func (r *ideaRepository) DeleteByPaperID(paperID string) error {
	query := `DELETE FROM ideas WHERE paper_id = $1`

	_, err := r.db.Exec(query, paperID)
	return err
}
