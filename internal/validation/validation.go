package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Difficulties accepted for practice content
var difficulties = map[string]bool{"easy": true, "medium": true, "hard": true}

// Question types accepted for practice content and questions
var questionTypes = map[string]bool{
	"multiple-choice": true,
	"short-answer":    true,
	"paragraph":       true,
	"matching":        true,
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateTitle checks a practice content or document title
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ValidationError{Field: "title", Message: "title is required"}
	}
	if len(title) > 255 {
		return ValidationError{Field: "title", Message: "title must be at most 255 characters"}
	}
	return nil
}

// ValidateDifficulty checks a difficulty level
func ValidateDifficulty(difficulty string) error {
	if !difficulties[difficulty] {
		return ValidationError{Field: "difficulty", Message: "difficulty must be easy, medium or hard"}
	}
	return nil
}

// ValidateQuestionType checks a question type
func ValidateQuestionType(questionType string) error {
	if !questionTypes[questionType] {
		return ValidationError{Field: "question_type", Message: "unknown question type"}
	}
	return nil
}

// ValidateQuestionText checks a question's prompt text
func ValidateQuestionText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ValidationError{Field: "question_text", Message: "question text is required"}
	}
	return nil
}
