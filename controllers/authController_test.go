package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestSignupAndLogin(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db, nil)

	signup := map[string]any{
		"fullname": "Mohit Gami",
		"email":    "mohit@example.com",
		"password": "password123",
	}

	w := performRequest(router, http.MethodPost, "/auth/signup", signup, "", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup returned %d: %s", w.Code, w.Body.String())
	}

	// Duplicate email is rejected.
	w = performRequest(router, http.MethodPost, "/auth/signup", signup, "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate signup, got %d", w.Code)
	}

	w = performRequest(router, http.MethodPost, "/auth/login", map[string]any{
		"email":    "mohit@example.com",
		"password": "password123",
	}, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("expected a token in login response, got %s", w.Body.String())
	}

	// The issued token is accepted by protected routes.
	w = performRequest(router, http.MethodGet, "/cart", nil, resp.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("token rejected by protected route: %d %s", w.Code, w.Body.String())
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db, nil)
	createTestUser(t, db, "mohit@example.com", "user")

	w := performRequest(router, http.MethodPost, "/auth/login", map[string]any{
		"email":    "mohit@example.com",
		"password": "not-the-password",
	}, "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for wrong password, got %d", w.Code)
	}
}

func TestSignupRejectsShortPassword(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db, nil)

	w := performRequest(router, http.MethodPost, "/auth/signup", map[string]any{
		"fullname": "Mohit Gami",
		"email":    "mohit@example.com",
		"password": "short",
	}, "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short password, got %d", w.Code)
	}
}
