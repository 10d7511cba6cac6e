package scan

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rawstock/internal/domain"
)

func TestLookupOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/scan" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			UserID         int64 `json:"user_id"`
			OrderID        int64 `json:"order_id"`
			UserLocationID int64 `json:"user_location_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body.UserID != 7 || body.OrderID != 1001 || body.UserLocationID != 3 {
			t.Errorf("request body = %+v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"order_id":1001,"style_number":4512,"size":"xl"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.URL, 7, 3)
	got, err := client.LookupOrder(context.Background(), 1001)
	if err != nil {
		t.Fatal(err)
	}
	if got.OrderID != 1001 || got.StyleNumber != 4512 {
		t.Fatalf("order = %+v", got)
	}
	if got.Size != domain.SizeXL {
		t.Fatalf("size = %q, want normalized XL", got.Size)
	}
}

func TestLookupOrderErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-200", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}},
		{"empty payload", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{}}`))
		}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			client := NewClient(srv.URL, srv.URL, 7, 3)
			if _, err := client.LookupOrder(context.Background(), 1001); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLookupStyleID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/product" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("style_code"); got != "4512" {
			t.Errorf("style_code = %q", got)
		}
		w.Write([]byte(`[{"style_id":909},{"style_id":910}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.URL, 7, 3)
	id, err := client.LookupStyleID(context.Background(), 4512)
	if err != nil {
		t.Fatal(err)
	}
	if id != 909 {
		t.Fatalf("style id = %d, want first element 909", id)
	}
}

func TestLookupStyleIDEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.URL, 7, 3)
	id, err := client.LookupStyleID(context.Background(), 4512)
	if err != nil {
		t.Fatal(err)
	}
	if id != 0 {
		t.Fatalf("style id = %d, want 0 for empty catalogue response", id)
	}
}
