package model

import (
	"database/sql/driver"
	"time"
)

type Paper struct {
	ID               string         `db:"id" json:"_id"`
	OwnerID          string         `db:"owner_id" json:"-"`
	Title            string         `db:"title" json:"title"`
	OriginalFileName string         `db:"original_file_name" json:"originalFileName"`
	FileURL          string         `db:"file_url" json:"fileUrl"`
	StorageKey       string         `db:"storage_key" json:"-"`
	ExtractedText    string         `db:"extracted_text" json:"extractedText"`
	Keywords         StringList     `db:"keywords" json:"keywords"`
	KnowledgeGraph   KnowledgeGraph `db:"knowledge_graph" json:"knowledgeGraph"`
	Citations        CitationList   `db:"citations" json:"citations"`
	Insights         InsightReport  `db:"insights" json:"insights"`
	Quiz             QuizList       `db:"quiz" json:"quiz"`
	CreatedAt        time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updatedAt"`

	// Attached relations, loaded by the service layer.
	Owner         *User          `db:"-" json:"owner,omitempty"`
	Collaborators []Collaborator `db:"-" json:"collaborators"`
	Summary       *Summary       `db:"-" json:"summary,omitempty"`
	Ideas         []Idea         `db:"-" json:"ideas"`
	Notes         []Note         `db:"-" json:"notes"`
	ChatHistory   []ChatMessage  `db:"-" json:"chatHistory"`
}

type Collaborator struct {
	PaperID string    `db:"paper_id" json:"-"`
	UserID  string    `db:"user_id" json:"-"`
	AddedAt time.Time `db:"added_at" json:"addedAt"`

	User *User `db:"-" json:"user,omitempty"`
}

type Note struct {
	ID        string    `db:"id" json:"_id"`
	PaperID   string    `db:"paper_id" json:"-"`
	UserID    string    `db:"user_id" json:"-"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"timestamp"`

	User *User `db:"-" json:"user,omitempty"`
}

type GraphNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Group int    `json:"group"`
}

type GraphLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Value  int    `json:"value"`
}

type KnowledgeGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

func (g KnowledgeGraph) IsEmpty() bool { return len(g.Nodes) == 0 }

func (g KnowledgeGraph) Value() (driver.Value, error) { return jsonValue(g) }
func (g *KnowledgeGraph) Scan(src any) error          { return jsonScan(src, g) }

type Citation struct {
	Title    string   `json:"title"`
	Authors  []string `json:"authors"`
	Abstract string   `json:"abstract"`
	Year     int      `json:"year"`
	URL      string   `json:"url"`
}

type CitationList []Citation

func (l CitationList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *CitationList) Scan(src any) error          { return jsonScan(src, l) }

// InsightDimension scores one aspect of a paper on a 1-10 scale.
type InsightDimension struct {
	Score       float64  `json:"score"`
	Description string   `json:"description"`
	Points      []string `json:"points"`
}

type InsightReport struct {
	Novelty            InsightDimension `json:"novelty"`
	MethodStrength     InsightDimension `json:"methodStrength"`
	PracticalRelevance InsightDimension `json:"practicalRelevance"`
	Limitations        InsightDimension `json:"limitations"`
	OverallScore       float64          `json:"overallScore"`
	Recommendation     string           `json:"recommendation"`
}

func (r InsightReport) IsEmpty() bool { return r.OverallScore == 0 && r.Recommendation == "" }

func (r InsightReport) Value() (driver.Value, error) { return jsonValue(r) }
func (r *InsightReport) Scan(src any) error          { return jsonScan(src, r) }
