package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/mohit-gami/farmley-api/models"
)

func TestGetProductsFiltersByCategory(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db, nil)

	seedProduct(t, db, "Almonds", 349, 10)
	seedProduct(t, db, "Cashews", 499, 10)
	seasonal := models.Product{Name: "Mango Bites", Category: "Snacks", Price: 149, Stock: 30}
	if err := db.Create(&seasonal).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}

	w := performRequest(router, http.MethodGet, "/products?category=Snacks", nil, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list products returned %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Products []models.Product `json:"products"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode products response: %v", err)
	}
	if len(resp.Products) != 1 || resp.Products[0].Name != "Mango Bites" {
		t.Errorf("expected only the Snacks product, got %+v", resp.Products)
	}
}

func TestGetProductsSearchAndPagination(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db, nil)

	for i := 1; i <= 5; i++ {
		seedProduct(t, db, fmt.Sprintf("Almond Pack %d", i), 100, 10)
	}
	seedProduct(t, db, "Cashews", 499, 10)

	w := performRequest(router, http.MethodGet, "/products?search=Almond&page=1&limit=3", nil, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list products returned %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Products []models.Product `json:"products"`
		Metadata struct {
			Total int `json:"total"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode products response: %v", err)
	}
	if len(resp.Products) != 3 {
		t.Errorf("expected 3 products on page 1, got %d", len(resp.Products))
	}
	if resp.Metadata.Total != 5 {
		t.Errorf("expected total 5 matching products, got %d", resp.Metadata.Total)
	}
}

func TestGetProductNotFound(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db, nil)

	w := performRequest(router, http.MethodGet, "/products/9999", nil, "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing product, got %d", w.Code)
	}
}
