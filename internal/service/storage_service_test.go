package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"literacylab/internal/security"
)

func newTestStorage(t *testing.T, maxSize int64) *StorageService {
	t.Helper()
	signer := security.NewURLSigner("test-secret")
	storage, err := NewStorageService(t.TempDir(), maxSize, signer, time.Hour, "http://localhost:8080")
	if err != nil {
		t.Fatalf("NewStorageService returned error: %v", err)
	}
	return storage
}

func TestSaveImageAcceptsAllowedTypes(t *testing.T) {
	storage := newTestStorage(t, 1024)

	name, err := storage.SaveImage("photo.png", "image/png", 10, strings.NewReader("fake-bytes"))
	if err != nil {
		t.Fatalf("SaveImage returned error: %v", err)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Errorf("stored name %q should keep the extension", name)
	}
}

func TestSaveImageRejectsWrongType(t *testing.T) {
	storage := newTestStorage(t, 1024)

	_, err := storage.SaveImage("notes.pdf", "application/pdf", 10, strings.NewReader("fake"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("error = %v, want ErrUnsupportedType", err)
	}
}

func TestSaveDocumentAcceptsPDF(t *testing.T) {
	storage := newTestStorage(t, 1024)

	if _, err := storage.SaveDocument("passage.pdf", "application/pdf", 10, strings.NewReader("fake")); err != nil {
		t.Errorf("SaveDocument returned error: %v", err)
	}
}

func TestSaveRejectsOversizedDeclaredSize(t *testing.T) {
	storage := newTestStorage(t, 16)

	_, err := storage.SaveImage("big.png", "image/png", 1024, strings.NewReader("x"))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("error = %v, want ErrFileTooLarge", err)
	}
}

func TestSaveRejectsOversizedStream(t *testing.T) {
	storage := newTestStorage(t, 16)

	// Declared size lies; the stream itself is over the limit
	_, err := storage.SaveImage("big.png", "image/png", 8, strings.NewReader(strings.Repeat("x", 64)))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("error = %v, want ErrFileTooLarge", err)
	}
}

func TestSignedURLRoundTrip(t *testing.T) {
	storage := newTestStorage(t, 1024)

	name, err := storage.SaveImage("photo.jpg", "image/jpeg", 10, strings.NewReader("fake"))
	if err != nil {
		t.Fatalf("SaveImage returned error: %v", err)
	}

	url, err := storage.SignedURL(name)
	if err != nil {
		t.Fatalf("SignedURL returned error: %v", err)
	}
	if !strings.Contains(url, "/files/"+name) {
		t.Errorf("url %q does not reference stored object", url)
	}
	if !strings.Contains(url, "sig=") || !strings.Contains(url, "expires=") {
		t.Errorf("url %q missing signature parameters", url)
	}
}

func TestOpenRejectsTraversalAndBadSignature(t *testing.T) {
	storage := newTestStorage(t, 1024)

	if _, err := storage.Open("../etc/passwd", "sig", time.Now().Add(time.Hour).Unix()); err == nil {
		t.Error("expected traversal name to be rejected")
	}
	if _, err := storage.Open("missing.png", "bad-sig", time.Now().Add(time.Hour).Unix()); err == nil {
		t.Error("expected bad signature to be rejected")
	}
}
