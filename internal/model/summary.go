package model

import (
	"database/sql/driver"
	"time"
)

// SectionSummary holds one paper section summarized at the three reading
// levels the frontend offers.
type SectionSummary struct {
	Basic     string `json:"basic"`
	Medium    string `json:"medium"`
	Technical string `json:"technical"`
}

func (s SectionSummary) Value() (driver.Value, error) { return jsonValue(s) }
func (s *SectionSummary) Scan(src any) error          { return jsonScan(src, s) }

// SlideOutline is one slide of the summary-level deck (title + points).
type SlideOutline struct {
	Title  string   `json:"title"`
	Points []string `json:"points"`
}

type SlideOutlineList []SlideOutline

func (l SlideOutlineList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *SlideOutlineList) Scan(src any) error          { return jsonScan(src, l) }

type Summary struct {
	ID                string           `db:"id" json:"_id"`
	PaperID           string           `db:"paper_id" json:"paper"`
	Abstract          SectionSummary   `db:"abstract" json:"abstract"`
	Introduction      SectionSummary   `db:"introduction" json:"introduction"`
	Methods           SectionSummary   `db:"methods" json:"methods"`
	Results           SectionSummary   `db:"results" json:"results"`
	Conclusion        SectionSummary   `db:"conclusion" json:"conclusion"`
	KeyFindings       StringList       `db:"key_findings" json:"keyFindings"`
	GeneratedSlides   SlideOutlineList `db:"generated_slides" json:"generatedSlides,omitempty"`
	GeneratedAbstract string           `db:"generated_abstract" json:"generatedAbstract,omitempty"`
	CreatedAt         time.Time        `db:"created_at" json:"createdAt"`
}
