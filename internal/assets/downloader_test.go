package assets

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestDownloader_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("image bytes"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "image1.jpg")

	if err := NewDownloader().Fetch(server.URL, dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("expected file at destination: %v", err)
	}
	if string(data) != "image bytes" {
		t.Errorf("unexpected file content: %q", data)
	}
}

func TestDownloader_Fetch_NotFoundLeavesNoFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "image1.jpg")

	err := NewDownloader().Fetch(server.URL, dest)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}

	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Errorf("expected no file at destination after failed fetch")
	}
}

func TestDownloader_Fetch_TransportFailureLeavesNoFile(t *testing.T) {
	// Server closed before the request is made
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	dest := filepath.Join(t.TempDir(), "image1.jpg")

	err := NewDownloader().Fetch(url, dest)
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}

	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Errorf("expected no file at destination after transport failure")
	}
}
