package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// KeywordQuery describes one keyword-search request against the paper table.
// Terms are matched case-insensitively as substrings of title or abstract;
// Category, when set, requires exact membership in the keyword list.
// All conditions are combined with OR.
type KeywordQuery struct {
	Terms    []string
	Category string
}

// Empty reports whether the query carries no conditions at all.
func (q KeywordQuery) Empty() bool {
	return len(q.Terms) == 0 && q.Category == ""
}

// PaperStore defines the interface for paper storage operations.
type PaperStore interface {
	// GetByID gets a paper by its id. Returns nil and ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*Paper, error)
	// SearchKeyword runs a keyword/category search and returns up to limit papers.
	// An empty query yields an empty result, not an error.
	SearchKeyword(ctx context.Context, query KeywordQuery, limit int) ([]Paper, error)
	// Random returns one paper chosen uniformly at random, excluding excludeID.
	// Returns ErrNotFound when the store (minus the excluded id) is empty.
	Random(ctx context.Context, excludeID string) (*Paper, error)
}

// PaperRepo provides methods for paper operations.
// It implements the PaperStore interface.
type PaperRepo struct {
	db *sql.DB
}

// NewPaperRepo creates a new PaperRepo.
func NewPaperRepo(db *sql.DB) *PaperRepo {
	return &PaperRepo{db: db}
}

const paperColumns = "id, title, authors, abstract, keywords, published_date, pdf_url, embedded, kg_processed, created_at, updated_at"

// Insert stores a new paper record.
func (r *PaperRepo) Insert(ctx context.Context, paper *Paper) error {
	if paper.ID == "" {
		return fmt.Errorf("paper id is required")
	}

	authors, err := json.Marshal(paper.Authors)
	if err != nil {
		return fmt.Errorf("failed to encode authors: %w", err)
	}
	keywords, err := json.Marshal(paper.Keywords)
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}

	var published any
	if paper.PublishedDate != nil {
		published = paper.PublishedDate.UTC().Format("2006-01-02 15:04:05")
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO papers (id, title, authors, abstract, keywords, published_date, pdf_url, embedded, kg_processed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		paper.ID, paper.Title, string(authors), paper.Abstract, string(keywords),
		published, paper.PDFURL, paper.Embedded, paper.KGProcessed,
	)
	if err != nil {
		return fmt.Errorf("failed to insert paper: %w", err)
	}
	return nil
}

// GetByID gets a paper by id. Returns nil and ErrNotFound if not found.
func (r *PaperRepo) GetByID(ctx context.Context, id string) (*Paper, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+paperColumns+" FROM papers WHERE id = ?", id)
	paper, err := scanPaper(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query paper: %w", err)
	}
	return paper, nil
}

// SearchKeyword runs a keyword/category search against title, abstract and
// the keyword list. Conditions are unioned with OR and the result is
// truncated to limit. An empty query returns an empty slice.
func (r *PaperRepo) SearchKeyword(ctx context.Context, query KeywordQuery, limit int) ([]Paper, error) {
	if query.Empty() || limit <= 0 {
		return []Paper{}, nil
	}

	var conds []string
	var args []any

	if query.Category != "" {
		// Keywords are stored as a JSON array, so exact membership is a
		// substring match on the quoted token.
		conds = append(conds, "keywords LIKE ?")
		args = append(args, `%"`+query.Category+`"%`)
	}
	for _, term := range query.Terms {
		conds = append(conds, "(LOWER(title) LIKE ? OR LOWER(abstract) LIKE ?)")
		pattern := "%" + strings.ToLower(term) + "%"
		args = append(args, pattern, pattern)
	}

	args = append(args, limit)
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+paperColumns+" FROM papers WHERE "+strings.Join(conds, " OR ")+" LIMIT ?",
		args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search papers: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return collectPapers(rows)
}

// Random returns one paper chosen uniformly at random, excluding excludeID.
func (r *PaperRepo) Random(ctx context.Context, excludeID string) (*Paper, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+paperColumns+" FROM papers WHERE id != ? ORDER BY RANDOM() LIMIT 1", excludeID)
	paper, err := scanPaper(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pick random paper: %w", err)
	}
	return paper, nil
}

// ListUnembedded returns up to limit papers that have not been embedded yet.
func (r *PaperRepo) ListUnembedded(ctx context.Context, limit int) ([]Paper, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+paperColumns+" FROM papers WHERE embedded = 0 LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unembedded papers: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()
	return collectPapers(rows)
}

// ListUnextracted returns up to limit embedded papers that have not been
// KG-processed yet.
func (r *PaperRepo) ListUnextracted(ctx context.Context, limit int) ([]Paper, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+paperColumns+" FROM papers WHERE embedded = 1 AND kg_processed = 0 LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unextracted papers: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()
	return collectPapers(rows)
}

// MarkEmbedded flips the embedded flag for a paper.
func (r *PaperRepo) MarkEmbedded(ctx context.Context, id string) error {
	return r.setFlag(ctx, "embedded", id)
}

// MarkKGProcessed flips the kg_processed flag for a paper.
func (r *PaperRepo) MarkKGProcessed(ctx context.Context, id string) error {
	return r.setFlag(ctx, "kg_processed", id)
}

func (r *PaperRepo) setFlag(ctx context.Context, column, id string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE papers SET "+column+" = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to update %s flag: %w", column, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPaper(row rowScanner) (*Paper, error) {
	var paper Paper
	var authorsJSON, keywordsJSON string
	var published, createdAt, updatedAt sql.NullString

	err := row.Scan(&paper.ID, &paper.Title, &authorsJSON, &paper.Abstract, &keywordsJSON,
		&published, &paper.PDFURL, &paper.Embedded, &paper.KGProcessed, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(authorsJSON), &paper.Authors); err != nil {
		return nil, fmt.Errorf("failed to decode authors for paper %s: %w", paper.ID, err)
	}
	if err := json.Unmarshal([]byte(keywordsJSON), &paper.Keywords); err != nil {
		return nil, fmt.Errorf("failed to decode keywords for paper %s: %w", paper.ID, err)
	}

	if published.Valid {
		t, err := parseSQLiteTime(published.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse published_date for paper %s: %w", paper.ID, err)
		}
		paper.PublishedDate = &t
	}
	if createdAt.Valid {
		if t, err := parseSQLiteTime(createdAt.String); err == nil {
			paper.CreatedAt = t
		}
	}
	if updatedAt.Valid {
		if t, err := parseSQLiteTime(updatedAt.String); err == nil {
			paper.UpdatedAt = t
		}
	}

	return &paper, nil
}

func collectPapers(rows *sql.Rows) ([]Paper, error) {
	papers := make([]Paper, 0)
	for rows.Next() {
		paper, err := scanPaper(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan paper: %w", err)
		}
		papers = append(papers, *paper)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate papers: %w", err)
	}
	return papers, nil
}

// parseSQLiteTime parses the DATETIME formats SQLite may hand back.
func parseSQLiteTime(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02 15:04:05", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
