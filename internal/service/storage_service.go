package service

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"literacylab/internal/security"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Content types accepted for uploads. Images illustrate passages; documents
// carry the passage itself.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var allowedDocumentTypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
}

// StorageService stores uploaded files on disk and hands out signed
// download URLs so stored objects are never served unauthenticated.
type StorageService struct {
	dir     string
	maxSize int64
	signer  *security.URLSigner
	urlTTL  time.Duration
	baseURL string
}

// NewStorageService creates a storage service rooted at dir
func NewStorageService(dir string, maxSize int64, signer *security.URLSigner, urlTTL time.Duration, baseURL string) (*StorageService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &StorageService{
		dir:     dir,
		maxSize: maxSize,
		signer:  signer,
		urlTTL:  urlTTL,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// SaveImage validates and stores an uploaded image, returning the stored object name
func (s *StorageService) SaveImage(filename, contentType string, size int64, r io.Reader) (string, error) {
	return s.save(filename, contentType, size, r, allowedImageTypes)
}

// SaveDocument validates and stores an uploaded passage document, returning the stored object name
func (s *StorageService) SaveDocument(filename, contentType string, size int64, r io.Reader) (string, error) {
	return s.save(filename, contentType, size, r, allowedDocumentTypes)
}

func (s *StorageService) save(filename, contentType string, size int64, r io.Reader, allowed map[string]bool) (string, error) {
	if size > s.maxSize {
		return "", ErrFileTooLarge
	}

	mediaType := contentType
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = parsed
	}
	if !allowed[mediaType] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mediaType)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	// Guard the size limit on the actual stream, not just the declared size
	written, err := io.Copy(f, io.LimitReader(r, s.maxSize+1))
	if err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if written > s.maxSize {
		os.Remove(f.Name())
		return "", ErrFileTooLarge
	}

	return name, nil
}

// SignedURL returns a time-limited download URL for a stored object
func (s *StorageService) SignedURL(name string) (string, error) {
	sig, expires, err := s.signer.Sign(name, s.urlTTL)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/files/%s?expires=%d&sig=%s", s.baseURL, name, expires, sig), nil
}

// Open verifies a signed request and opens the stored object for reading.
// The returned path is safe to hand to http.ServeFile.
func (s *StorageService) Open(name, sig string, expires int64) (string, error) {
	// Reject path traversal before touching the filesystem
	if name != filepath.Base(name) || name == "." || name == "" {
		return "", os.ErrNotExist
	}
	if !s.signer.Verify(name, sig, expires) {
		return "", errors.New("invalid or expired signature")
	}

	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}
