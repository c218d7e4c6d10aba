package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"literacylab/internal/database"
	"literacylab/internal/models"
)

// QuestionRepository handles database operations for questions
type QuestionRepository struct {
	db *database.DB
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *database.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// CreateQuestion inserts a question row owned by a practice content
func (r *QuestionRepository) CreateQuestion(q *models.Question) (*models.Question, error) {
	q.ID = uuid.NewString()
	now := time.Now()
	q.CreatedAt = now
	q.UpdatedAt = now
	if q.Points <= 0 {
		q.Points = 1
	}

	var options interface{}
	if len(q.Options) > 0 {
		options = string(q.Options)
	}

	query := `
		INSERT INTO questions
			(id, practice_content_id, question_text, question_type,
			 options, correct_answer, points, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		q.ID, q.PracticeContentID, q.QuestionText, q.QuestionType,
		options, nullable(q.CorrectAnswer), q.Points, q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return q, nil
}

// GetQuestionsByContentID retrieves all questions for a practice content in creation order
func (r *QuestionRepository) GetQuestionsByContentID(contentID string) ([]models.Question, error) {
	query := `
		SELECT id, practice_content_id, question_text, question_type,
		       options, correct_answer, points, created_at, updated_at
		FROM questions
		WHERE practice_content_id = ?
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.Query(query, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		var options, correctAnswer sql.NullString

		err := rows.Scan(
			&q.ID, &q.PracticeContentID, &q.QuestionText, &q.QuestionType,
			&options, &correctAnswer, &q.Points, &q.CreatedAt, &q.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		if options.Valid {
			q.Options = json.RawMessage(options.String)
		}
		q.CorrectAnswer = correctAnswer.String
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// CountQuestionsByContentID returns the number of questions owned by a practice content
func (r *QuestionRepository) CountQuestionsByContentID(contentID string) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM questions WHERE practice_content_id = ?"
	err := r.db.QueryRow(query, contentID).Scan(&count)
	return count, err
}
