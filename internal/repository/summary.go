package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/researchpartner/api/internal/model"
)

var ErrSummaryNotFound = errors.New("summary not found")

type SummaryRepository interface {
	Create(summary *model.Summary) error
	ByPaperID(paperID string) (*model.Summary, error)
	Update(summary *model.Summary) error
	DeleteByPaperID(paperID string) error
}

type summaryRepository struct {
	db *sqlx.DB
}

func NewSummaryRepository(db *sqlx.DB) SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) Create(summary *model.Summary) error {
	query := `INSERT INTO summaries (id, paper_id, abstract, introduction, methods, results, conclusion,
		key_findings, generated_slides, generated_abstract, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(query, summary.ID, summary.PaperID, summary.Abstract, summary.Introduction,
		summary.Methods, summary.Results, summary.Conclusion, summary.KeyFindings,
		summary.GeneratedSlides, summary.GeneratedAbstract, summary.CreatedAt)
	return err
}

func (r *summaryRepository) ByPaperID(paperID string) (*model.Summary, error) {
	summary := &model.Summary{}
	query := `SELECT * FROM summaries WHERE paper_id = $1`

	err := r.db.Get(summary, query, paperID)
	if err == sql.ErrNoRows {
		return nil, ErrSummaryNotFound
	}

	return summary, err
}

func (r *summaryRepository) Update(summary *model.Summary) error {
	query := `UPDATE summaries SET abstract = $1, introduction = $2, methods = $3, results = $4,
		conclusion = $5, key_findings = $6, generated_slides = $7, generated_abstract = $8 WHERE id = $9`

	_, err := r.db.Exec(query, summary.Abstract, summary.Introduction, summary.Methods,
		summary.Results, summary.Conclusion, summary.KeyFindings, summary.GeneratedSlides,
		summary.GeneratedAbstract, summary.ID)
	return err
}

func (r *summaryRepository) DeleteByPaperID(paperID string) error {
	query := `DELETE FROM summaries WHERE paper_id = $1`

	_, err := r.db.Exec(query, paperID)
	return err
}
