package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "chartpilot/internal/errors"
	"chartpilot/internal/models"
)

func TestParseSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/parse/" {
			t.Errorf("path = %s, want /parse/", r.URL.Path)
		}
		var req parseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Image != "aW1hZ2U=" {
			t.Errorf("image = %q", req.Image)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ParseResult{
			Elements: []models.RawElement{
				{Content: "RSI: 42", Kind: models.ElementText},
			},
			AnnotatedImage: "YW5ub3RhdGVk",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	result, err := client.Parse(context.Background(), "aW1hZ2U=")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(result.Elements) != 1 || result.Elements[0].Content != "RSI: 42" {
		t.Errorf("elements = %v", result.Elements)
	}
	if result.AnnotatedImage == "" {
		t.Error("annotated image missing")
	}
}

func TestParseServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, 5*time.Second).Parse(context.Background(), "aW1hZ2U=")
	if err == nil {
		t.Fatal("expected error on 500")
	}

	var upstream *apperrors.UpstreamError
	if !apperrors.As(err, &upstream) {
		t.Fatalf("error type = %T, want UpstreamError", err)
	}
	if upstream.Collaborator != "omniparser" {
		t.Errorf("collaborator = %s", upstream.Collaborator)
	}
}

func TestParseUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 500*time.Millisecond)

	_, err := client.Parse(context.Background(), "aW1hZ2U=")
	if err == nil {
		t.Fatal("expected transport error")
	}

	var upstream *apperrors.UpstreamError
	if !apperrors.As(err, &upstream) {
		t.Fatalf("error type = %T, want UpstreamError", err)
	}
}
