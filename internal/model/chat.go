package model

import "time"

// ChatMessage is one Q&A exchange, attached to either a paper or an idea
// (exactly one of PaperID/IdeaID is set).
type ChatMessage struct {
	ID        string    `db:"id" json:"_id"`
	PaperID   *string   `db:"paper_id" json:"-"`
	IdeaID    *string   `db:"idea_id" json:"-"`
	Question  string    `db:"question" json:"question"`
	Answer    string    `db:"answer" json:"answer"`
	CreatedAt time.Time `db:"created_at" json:"timestamp"`
}
