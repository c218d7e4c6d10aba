package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"literacylab/internal/grading"
	"literacylab/internal/models"
	"literacylab/internal/repository"
	"literacylab/internal/validation"
)

var ErrContentNotFound = errors.New("practice content not found")

// QuestionInput is one question of a content creation request
type QuestionInput struct {
	QuestionText  string          `json:"question_text"`
	QuestionType  string          `json:"question_type"`
	Options       json.RawMessage `json:"options,omitempty"`
	CorrectAnswer string          `json:"correct_answer,omitempty"`
	Points        int             `json:"points"`
}

// ContentInput is a content creation request
type ContentInput struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Difficulty   string          `json:"difficulty"`
	TimeEstimate string          `json:"time_estimate"`
	QuestionType string          `json:"question_type"`
	ImageURL     string          `json:"image_url,omitempty"`
	DocumentID   string          `json:"document_id,omitempty"`
	Questions    []QuestionInput `json:"questions"`
}

// ContentDetail is a practice content with its question set, answers withheld
type ContentDetail struct {
	Content   *models.PracticeContent `json:"content"`
	Questions []grading.Question      `json:"questions"`
}

// ContentService handles practice content business logic
type ContentService struct {
	contentRepo  *repository.ContentRepository
	questionRepo *repository.QuestionRepository
	storage      *StorageService
	notifier     *Notifier
}

// NewContentService creates a new content service
func NewContentService(contentRepo *repository.ContentRepository, questionRepo *repository.QuestionRepository, storage *StorageService, notifier *Notifier) *ContentService {
	return &ContentService{
		contentRepo:  contentRepo,
		questionRepo: questionRepo,
		storage:      storage,
		notifier:     notifier,
	}
}

// CreateContent validates and stores a practice content with its questions.
// Writes are sequential, not transactional: if a question insert fails the
// content row survives with the questions created so far, and the error
// reports how far the write got.
func (s *ContentService) CreateContent(createdBy string, input ContentInput) (*models.PracticeContent, error) {
	if err := validation.ValidateTitle(input.Title); err != nil {
		return nil, err
	}
	if input.Difficulty != "" {
		if err := validation.ValidateDifficulty(input.Difficulty); err != nil {
			return nil, err
		}
	}
	if input.QuestionType != "" {
		if err := validation.ValidateQuestionType(input.QuestionType); err != nil {
			return nil, err
		}
	}
	for i, q := range input.Questions {
		if err := validation.ValidateQuestionText(q.QuestionText); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		if err := validation.ValidateQuestionType(q.QuestionType); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}

	if input.DocumentID != "" {
		doc, err := s.contentRepo.GetDocumentByID(input.DocumentID)
		if err != nil {
			return nil, fmt.Errorf("failed to check document: %w", err)
		}
		if doc == nil {
			return nil, errors.New("document not found")
		}
	}

	content, err := s.contentRepo.CreateContent(&models.PracticeContent{
		Title:        input.Title,
		Description:  input.Description,
		Difficulty:   input.Difficulty,
		TimeEstimate: input.TimeEstimate,
		QuestionType: input.QuestionType,
		ImageURL:     input.ImageURL,
		DocumentID:   input.DocumentID,
		CreatedBy:    createdBy,
	})
	if err != nil {
		return nil, err
	}

	for i, q := range input.Questions {
		_, err := s.questionRepo.CreateQuestion(&models.Question{
			PracticeContentID: content.ID,
			QuestionText:      q.QuestionText,
			QuestionType:      q.QuestionType,
			Options:           q.Options,
			CorrectAnswer:     q.CorrectAnswer,
			Points:            q.Points,
		})
		if err != nil {
			return nil, fmt.Errorf("content %s created but question %d of %d failed: %w",
				content.ID, i+1, len(input.Questions), err)
		}
	}

	s.notifier.Publish(Event{
		Type:      EventContentCreated,
		ContentID: content.ID,
		Title:     content.Title,
		CreatedAt: content.CreatedAt,
	})

	return content, nil
}

// ListContent retrieves practice content matching the filter
func (s *ContentService) ListContent(filter repository.ContentFilter) ([]models.PracticeContent, error) {
	return s.contentRepo.ListContent(filter)
}

// GetContent retrieves a practice content with its normalized questions.
// Correct answers never serialize out of the returned questions.
func (s *ContentService) GetContent(id string) (*ContentDetail, error) {
	content, err := s.contentRepo.GetContentByID(id)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, ErrContentNotFound
	}

	rows, err := s.questionRepo.GetQuestionsByContentID(id)
	if err != nil {
		return nil, err
	}

	return &ContentDetail{
		Content:   content,
		Questions: grading.NormalizeAll(rows),
	}, nil
}

// GetDocument retrieves a document with a fresh signed URL for its file
func (s *ContentService) GetDocument(id string) (*models.Document, error) {
	doc, err := s.contentRepo.GetDocumentByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrContentNotFound
	}

	signed, err := s.storage.SignedURL(doc.FileURL)
	if err != nil {
		log.Printf("Failed to sign URL for document %s: %v", doc.ID, err)
		return doc, nil
	}
	doc.FileURL = signed
	return doc, nil
}

// UploadDocument stores an uploaded file and records a document row for it
func (s *ContentService) UploadDocument(title, description, filename, contentType string, size int64, r io.Reader) (*models.Document, error) {
	if err := validation.ValidateTitle(title); err != nil {
		return nil, err
	}

	name, err := s.storage.SaveDocument(filename, contentType, size, r)
	if err != nil {
		return nil, err
	}

	doc, err := s.contentRepo.CreateDocument(title, description, name)
	if err != nil {
		return nil, err
	}

	signed, err := s.storage.SignedURL(doc.FileURL)
	if err == nil {
		doc.FileURL = signed
	}
	return doc, nil
}

// UploadImage stores an uploaded cover image and returns its signed URL
func (s *ContentService) UploadImage(filename, contentType string, size int64, r io.Reader) (string, error) {
	name, err := s.storage.SaveImage(filename, contentType, size, r)
	if err != nil {
		return "", err
	}
	return s.storage.SignedURL(name)
}

// QuestionCount returns the number of questions owned by a practice content
func (s *ContentService) QuestionCount(contentID string) (int, error) {
	return s.questionRepo.CountQuestionsByContentID(contentID)
}
