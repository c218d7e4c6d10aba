package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"literacylab/internal/service"
	"literacylab/internal/validation"
)

// multipartOverhead is headroom added to the request body cap for multipart
// boundaries, part headers and the title/description form fields, so a file
// of exactly the configured maximum still fits. The exact file ceiling is
// enforced by the storage service.
const multipartOverhead = 32 << 10

// UploadHandler handles file upload and signed download HTTP requests
type UploadHandler struct {
	contentService *service.ContentService
	storage        *service.StorageService
	maxSize        int64
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(contentService *service.ContentService, storage *service.StorageService, maxSize int64) *UploadHandler {
	return &UploadHandler{
		contentService: contentService,
		storage:        storage,
		maxSize:        maxSize,
	}
}

// UploadDocument stores an uploaded reading passage file and records a
// document row for it
func (h *UploadHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		respondError(w, http.StatusRequestEntityTooLarge, "Upload too large", "", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing file field", "", nil)
		return
	}
	defer file.Close()

	title := r.FormValue("title")
	if title == "" {
		title = header.Filename
	}

	doc, err := h.contentService.UploadDocument(
		title, r.FormValue("description"),
		header.Filename, header.Header.Get("Content-Type"), header.Size, file,
	)
	if err != nil {
		respondUploadError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, doc)
}

// UploadImage stores an uploaded cover image and returns its signed URL
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		respondError(w, http.StatusRequestEntityTooLarge, "Upload too large", "", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing file field", "", nil)
		return
	}
	defer file.Close()

	url, err := h.contentService.UploadImage(
		header.Filename, header.Header.Get("Content-Type"), header.Size, file,
	)
	if err != nil {
		respondUploadError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"url": url})
}

// ServeFile serves a stored file if its signature checks out
func (h *UploadHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	expires, err := strconv.ParseInt(r.URL.Query().Get("expires"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid signed URL", "", nil)
		return
	}

	path, err := h.storage.Open(r.PathValue("name"), r.URL.Query().Get("sig"), expires)
	if err != nil {
		respondError(w, http.StatusForbidden, "Invalid or expired signed URL", "", nil)
		return
	}

	http.ServeFile(w, r, path)
}

func respondUploadError(w http.ResponseWriter, err error) {
	var verr validation.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, verr.Message, "", nil)
	case errors.Is(err, service.ErrFileTooLarge):
		respondError(w, http.StatusRequestEntityTooLarge, "File exceeds the size limit", "", nil)
	case errors.Is(err, service.ErrUnsupportedType):
		respondError(w, http.StatusUnsupportedMediaType, "File type not allowed", "", nil)
	default:
		respondError(w, http.StatusInternalServerError, "Upload failed", "Upload error", err)
	}
}
