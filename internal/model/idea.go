package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Rating levels used for idea tags.
const (
	RatingLow    = "Low"
	RatingMedium = "Medium"
	RatingHigh   = "High"
)

type IdeaTags struct {
	Novelty     string `json:"novelty"`
	Feasibility string `json:"feasibility"`
	AIRelevance string `json:"aiRelevance"`
}

func (t IdeaTags) Value() (driver.Value, error) { return jsonValue(t) }
func (t *IdeaTags) Scan(src any) error          { return jsonScan(src, t) }

type Idea struct {
	ID              string     `db:"id" json:"_id"`
	PaperID         string     `db:"paper_id" json:"paper"`
	Title           string     `db:"title" json:"title"`
	Description     string     `db:"description" json:"description"`
	Tags            IdeaTags   `db:"tags" json:"tags"`
	Methodology     string     `db:"methodology" json:"methodology"`
	ExpectedOutcome string     `db:"expected_outcome" json:"expectedOutcome"`
	Resources       StringList `db:"resources" json:"resources"`
	GeneratedPaper  PaperDraft `db:"generated_paper" json:"generatedPaper"`
	GeneratedSlides SlideDeck  `db:"generated_slides" json:"generatedSlides"`
	GeneratedAt     *time.Time `db:"generated_at" json:"generatedAt"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt"`

	ChatHistory []ChatMessage `db:"-" json:"chatHistory"`
}

// PaperDraft is the full research paper proposal generated from an idea.
type PaperDraft struct {
	Abstract     string `json:"abstract"`
	Introduction struct {
		Background       string   `json:"background"`
		ProblemStatement string   `json:"problemStatement"`
		Objectives       []string `json:"objectives"`
		Significance     string   `json:"significance"`
	} `json:"introduction"`
	LiteratureReview struct {
		Summary     string   `json:"summary"`
		Gaps        []string `json:"gaps"`
		Positioning string   `json:"positioning"`
	} `json:"literatureReview"`
	Methodology struct {
		Approach       string   `json:"approach"`
		Methods        []string `json:"methods"`
		DataCollection string   `json:"dataCollection"`
		Analysis       string   `json:"analysis"`
		Timeline       string   `json:"timeline"`
	} `json:"methodology"`
	ExpectedResults struct {
		Outcomes   []string `json:"outcomes"`
		Metrics    []string `json:"metrics"`
		Validation string   `json:"validation"`
	} `json:"expectedResults"`
	Conclusion struct {
		Summary       string   `json:"summary"`
		Contributions []string `json:"contributions"`
		FutureWork    string   `json:"futureWork"`
	} `json:"conclusion"`
	References []string `json:"references"`
}

func (d PaperDraft) IsEmpty() bool { return d.Abstract == "" && len(d.References) == 0 }

func (d PaperDraft) Value() (driver.Value, error) { return jsonValue(d) }
func (d *PaperDraft) Scan(src any) error          { return jsonScan(src, d) }

// IdeaSlide is one slide of a generated presentation. Content varies by
// layout, so it stays raw JSON.
type IdeaSlide struct {
	SlideNumber      int             `json:"slideNumber"`
	Title            string          `json:"title"`
	Subtitle         string          `json:"subtitle,omitempty"`
	Layout           string          `json:"layout"`
	Content          json.RawMessage `json:"content"`
	VisualSuggestion string          `json:"visualSuggestion,omitempty"`
	SpeakerNotes     string          `json:"speakerNotes,omitempty"`
}

type SlideDeck struct {
	Slides      []IdeaSlide `json:"slides"`
	Theme       string      `json:"theme,omitempty"`
	Layout      string      `json:"layout,omitempty"`
	SlideCount  int         `json:"slideCount"`
	GeneratedAt time.Time   `json:"generatedAt"`
}

func (d SlideDeck) IsEmpty() bool { return len(d.Slides) == 0 }

func (d SlideDeck) Value() (driver.Value, error) { return jsonValue(d) }
func (d *SlideDeck) Scan(src any) error          { return jsonScan(src, d) }
