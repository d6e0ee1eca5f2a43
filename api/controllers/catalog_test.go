package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/coinquestapp/coinquest-backend/internal/catalog"
)

func TestCatalogTemplatesHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/templates", nil)
	resp := httptest.NewRecorder()
	CatalogTemplates(nil)(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var payload struct {
		Data catalogResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Data.Templates) != len(catalog.All()) {
		t.Fatalf("expected full catalog, got %d templates", len(payload.Data.Templates))
	}
}

func TestCatalogTemplatesFilterByCategory(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/templates?category=savings_goal", nil)
	resp := httptest.NewRecorder()
	CatalogTemplates(nil)(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	var payload struct {
		Data catalogResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Data.Templates) == 0 {
		t.Fatalf("expected savings templates")
	}
	for _, tpl := range payload.Data.Templates {
		if string(tpl.Category) != "savings_goal" {
			t.Fatalf("unexpected category %s", tpl.Category)
		}
	}
}

func TestCatalogTemplatesRejectsCombinedFilters(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/templates?category=savings_goal&difficulty=easy", nil)
	resp := httptest.NewRecorder()
	CatalogTemplates(nil)(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCatalogTemplatesRejectsUnknownCategory(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/templates?category=gambling", nil)
	resp := httptest.NewRecorder()
	CatalogTemplates(nil)(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCatalogTemplateByID(t *testing.T) {
	want := catalog.All()[0]

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/templates/"+want.ID, nil)
	rc := chi.NewRouteContext()
	rc.URLParams.Add("templateID", want.ID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
	resp := httptest.NewRecorder()
	CatalogTemplate(nil)(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var payload struct {
		Data catalog.Template `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Data.ID != want.ID {
		t.Fatalf("expected template %s got %s", want.ID, payload.Data.ID)
	}
}

func TestCatalogTemplateNotFound(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/templates/bogus", nil)
	rc := chi.NewRouteContext()
	rc.URLParams.Add("templateID", "bogus")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
	resp := httptest.NewRecorder()
	CatalogTemplate(nil)(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
