package models

import (
	"encoding/json"
	"time"
)

// PracticeContent is one reading passage plus its associated question set
type PracticeContent struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Difficulty   string    `json:"difficulty"`
	TimeEstimate string    `json:"time_estimate"`
	QuestionType string    `json:"question_type"`
	ImageURL     string    `json:"image_url,omitempty"`
	DocumentID   string    `json:"document_id,omitempty"`
	CreatedBy    string    `json:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Document is an uploaded reading passage file (PDF, DOCX or plain text)
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FileURL     string    `json:"file_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Question is a row from the questions table. Options carries the
// type-specific payload as stored: an options list for multiple choice,
// a pairs list for matching, nothing for the written types. The payload
// shape is not schema-validated; the grading package reparses it
// defensively at use time.
type Question struct {
	ID                string          `json:"id"`
	PracticeContentID string          `json:"practice_content_id"`
	QuestionText      string          `json:"question_text"`
	QuestionType      string          `json:"question_type"`
	Options           json.RawMessage `json:"options,omitempty"`
	CorrectAnswer     string          `json:"correct_answer,omitempty"`
	Points            int             `json:"points"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
