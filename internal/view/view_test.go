package view_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/msomdec/petition/internal/view"
)

func TestNew_ParsesAllPages(t *testing.T) {
	if _, err := view.New(); err != nil {
		t.Fatalf("New: %v", err)
	}
}

func TestRender_Page(t *testing.T) {
	r, err := view.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	w := httptest.NewRecorder()
	r.Render(w, http.StatusOK, "login.html", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected text/html content type, got %q", ct)
	}
	if !strings.Contains(w.Body.String(), "<!DOCTYPE html>") {
		t.Fatal("expected the base layout in the output")
	}
}

func TestRender_ErrorBanner(t *testing.T) {
	r, err := view.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	w := httptest.NewRecorder()
	r.Render(w, http.StatusBadRequest, "register.html", map[string]any{
		"Error": "That email is already registered.",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "That email is already registered.") {
		t.Fatal("expected the error banner in the output")
	}
}

func TestRender_UnknownPage(t *testing.T) {
	r, err := view.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	w := httptest.NewRecorder()
	r.Render(w, http.StatusOK, "nope.html", nil)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for unknown page, got %d", w.Code)
	}
}
