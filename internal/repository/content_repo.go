package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"literacylab/internal/database"
	"literacylab/internal/models"
)

// ContentRepository handles database operations for practice content and documents
type ContentRepository struct {
	db *database.DB
}

// NewContentRepository creates a new content repository
func NewContentRepository(db *database.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// ContentFilter narrows List results; zero values match everything
type ContentFilter struct {
	Search       string
	Difficulty   string
	QuestionType string
	CreatedBy    string
}

// CreateContent inserts a new practice content row
func (r *ContentRepository) CreateContent(c *models.PracticeContent) (*models.PracticeContent, error) {
	c.ID = uuid.NewString()
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Difficulty == "" {
		c.Difficulty = "medium"
	}
	if c.TimeEstimate == "" {
		c.TimeEstimate = "15"
	}

	query := `
		INSERT INTO practice_content
			(id, title, description, difficulty, time_estimate, question_type,
			 image_url, document_id, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		c.ID, c.Title, c.Description, c.Difficulty, c.TimeEstimate, c.QuestionType,
		c.ImageURL, nullable(c.DocumentID), nullable(c.CreatedBy), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create practice content: %w", err)
	}
	return c, nil
}

// GetContentByID retrieves a practice content row; returns nil if not found
func (r *ContentRepository) GetContentByID(id string) (*models.PracticeContent, error) {
	query := `
		SELECT id, title, description, difficulty, time_estimate, question_type,
		       image_url, document_id, created_by, created_at, updated_at
		FROM practice_content
		WHERE id = ?
	`
	return r.scanContent(r.db.QueryRow(query, id))
}

// ListContent retrieves practice content rows matching the filter, newest first
func (r *ContentRepository) ListContent(filter ContentFilter) ([]models.PracticeContent, error) {
	query := `
		SELECT id, title, description, difficulty, time_estimate, question_type,
		       image_url, document_id, created_by, created_at, updated_at
		FROM practice_content
		WHERE 1=1
	`
	var args []interface{}

	if filter.Search != "" {
		query += " AND (LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!')"
		like := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"
		args = append(args, like, like)
	}
	if filter.Difficulty != "" {
		query += " AND difficulty = ?"
		args = append(args, filter.Difficulty)
	}
	if filter.QuestionType != "" {
		query += " AND question_type = ?"
		args = append(args, filter.QuestionType)
	}
	if filter.CreatedBy != "" {
		query += " AND created_by = ?"
		args = append(args, filter.CreatedBy)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list practice content: %w", err)
	}
	defer rows.Close()

	var contents []models.PracticeContent
	for rows.Next() {
		c, err := scanContentRow(rows)
		if err != nil {
			return nil, err
		}
		contents = append(contents, *c)
	}
	return contents, rows.Err()
}

func (r *ContentRepository) scanContent(row *sql.Row) (*models.PracticeContent, error) {
	c := &models.PracticeContent{}
	var documentID, createdBy sql.NullString

	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.Difficulty, &c.TimeEstimate, &c.QuestionType,
		&c.ImageURL, &documentID, &createdBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan practice content: %w", err)
	}
	c.DocumentID = documentID.String
	c.CreatedBy = createdBy.String
	return c, nil
}

func scanContentRow(rows *sql.Rows) (*models.PracticeContent, error) {
	c := &models.PracticeContent{}
	var documentID, createdBy sql.NullString

	err := rows.Scan(
		&c.ID, &c.Title, &c.Description, &c.Difficulty, &c.TimeEstimate, &c.QuestionType,
		&c.ImageURL, &documentID, &createdBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan practice content: %w", err)
	}
	c.DocumentID = documentID.String
	c.CreatedBy = createdBy.String
	return c, nil
}

// CreateDocument inserts a document row for an uploaded file
func (r *ContentRepository) CreateDocument(title, description, fileURL string) (*models.Document, error) {
	doc := &models.Document{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		FileURL:     fileURL,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	query := `
		INSERT INTO documents (id, title, description, file_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, doc.ID, doc.Title, doc.Description, doc.FileURL, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return doc, nil
}

// GetDocumentByID retrieves a document row; returns nil if not found
func (r *ContentRepository) GetDocumentByID(id string) (*models.Document, error) {
	query := `
		SELECT id, title, description, file_url, created_at, updated_at
		FROM documents
		WHERE id = ?
	`
	doc := &models.Document{}
	err := r.db.QueryRow(query, id).Scan(
		&doc.ID, &doc.Title, &doc.Description, &doc.FileURL, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}
	return doc, nil
}

// escapeLike neutralizes LIKE metacharacters in a user-supplied search term
// so they match literally. Queries using the result must carry ESCAPE '!';
// '!' is used because a backslash literal is not portable across dialects.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// nullable converts an empty string to NULL for optional foreign keys
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
