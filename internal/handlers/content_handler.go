package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"literacylab/internal/models"
	"literacylab/internal/repository"
	"literacylab/internal/service"
	"literacylab/internal/validation"
)

// ContentHandler handles practice content HTTP requests
type ContentHandler struct {
	contentService *service.ContentService
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// List returns practice content matching the query filters
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.ContentFilter{
		Search:       r.URL.Query().Get("q"),
		Difficulty:   r.URL.Query().Get("difficulty"),
		QuestionType: r.URL.Query().Get("question_type"),
	}
	if r.URL.Query().Get("mine") == "true" {
		filter.CreatedBy = GetUserFromContext(r.Context()).ID
	}

	contents, err := h.contentService.ListContent(filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load practice content", "Content list error", err)
		return
	}
	if contents == nil {
		contents = []models.PracticeContent{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"content": contents})
}

// Get returns one practice content with its questions. Correct answers are
// never included.
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.contentService.GetContent(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			respondError(w, http.StatusNotFound, "Practice content not found", "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to load practice content", "Content lookup error", err)
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

// Create stores a new practice content with its questions
func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.ContentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	user := GetUserFromContext(r.Context())
	content, err := h.contentService.CreateContent(user.ID, input)
	if err != nil {
		var verr validation.ValidationError
		if errors.As(err, &verr) {
			respondError(w, http.StatusBadRequest, err.Error(), "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to create practice content", "Content create error", err)
		return
	}

	respondJSON(w, http.StatusCreated, content)
}

// GetDocument returns a document with a signed URL for its file
func (h *ContentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.contentService.GetDocument(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			respondError(w, http.StatusNotFound, "Document not found", "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to load document", "Document lookup error", err)
		return
	}

	respondJSON(w, http.StatusOK, doc)
}
