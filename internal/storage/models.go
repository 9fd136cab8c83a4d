package storage

import "time"

// Paper represents an academic paper in the database.
// Papers are immutable once ingested except for the processing flags,
// which batch jobs flip after embedding / KG extraction.
type Paper struct {
	ID            string     // arXiv-style id, e.g. "2107.12345v2"
	Title         string
	Authors       []string   // ordered, stored as JSON array
	Abstract      string
	Keywords      []string   // set semantics, stored as JSON array
	PublishedDate *time.Time
	PDFURL        string
	Embedded      bool // true once the paper vector is in the index
	KGProcessed   bool // true once triples have been extracted
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ChatRecord is an audit record of one chat turn. It is written
// best-effort and is never authoritative state.
type ChatRecord struct {
	ID          string // UUID
	UserID      int64
	Prompt      string
	Answer      string
	MatchScores string // JSON array of per-match scores
	CreatedAt   time.Time
}
