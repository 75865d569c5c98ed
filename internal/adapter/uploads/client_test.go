package uploads

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marketbase/marketplace/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestHTTPClientUpload(t *testing.T) {
	var got uploadRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/image/upload" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"public_id":"messages/abc","secure_url":"https://cdn.example.com/messages/abc.png"}`)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	attachment, err := client.Upload(context.Background(), "messages", "data:image/png;base64,AAAA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Folder != "messages" {
		t.Fatalf("unexpected folder %q", got.Folder)
	}
	if attachment.PublicID != "messages/abc" || attachment.URL != "https://cdn.example.com/messages/abc.png" {
		t.Fatalf("unexpected attachment: %+v", attachment)
	}
}

func TestHTTPClientUploadRejectsEmptyPayload(t *testing.T) {
	client, err := NewHTTPClient("http://example.com", testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	if _, err := client.Upload(context.Background(), "messages", ""); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestHTTPClientUploadStoreError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	if _, err := client.Upload(context.Background(), "messages", "data"); err == nil {
		t.Fatal("expected error on 403")
	}
}

func TestNewClientUsesConfig(t *testing.T) {
	cfg := &config.Config{UploadsAddress: "http://example.com"}
	client, err := newClient(clientParams{Config: cfg, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client == nil {
		t.Fatal("expected client instance")
	}
}
