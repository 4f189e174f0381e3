package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/buscar-coincidencia" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Texto != "salsa en vivo" || req.Nombre != "CaliAndo" {
			t.Errorf("unexpected payload: %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"ok": true,
			"resultados": []map[string]any{
				{"nombre": "Delirio", "descripcion": "show de salsa", "fuente": "civitatis", "referencia_id": 7},
				{"nombre": "Tin Tin Deo", "fuente": "sheets_detalles", "referencia_id": 8},
			},
		})
	}))
	defer srv.Close()

	results, err := NewClient(srv.URL).Search(context.Background(), "salsa en vivo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Name != "Delirio" || results[0].SourceKind != "civitatis" || results[0].ReferenceID != 7 {
		t.Errorf("unexpected first result: %+v", results[0])
	}
}

func TestSearch_NotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"ok": false, "mensaje": "No se encontró ninguna coincidencia."})
	}))
	defer srv.Close()

	results, err := NewClient(srv.URL).Search(context.Background(), "zzz")
	if err != nil {
		t.Fatalf("ok=false must not be an error, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestSearch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Search(context.Background(), "algo"); err == nil {
		t.Fatal("expected error on 500 response")
	}
}
