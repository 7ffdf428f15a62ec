package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/items" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"id":2,"name":"B"},{"id":1,"name":"A"}]`))
	}))
	defer srv.Close()

	items, err := New(srv.URL + "/").ListItems(context.Background())
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	want := []Item{{ID: 2, Name: "B"}, {ID: 1, Name: "A"}}
	if len(items) != len(want) || items[0] != want[0] || items[1] != want[1] {
		t.Errorf("got %+v, want %+v", items, want)
	}
}

func TestListItems_NullBodyIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	items, err := New(srv.URL).ListItems(context.Background())
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("expected empty slice, got %#v", items)
	}
}

func TestCreateItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Item{ID: 7, Name: body["name"]})
	}))
	defer srv.Close()

	item, err := New(srv.URL).CreateItem(context.Background(), " Widget ")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item != (Item{ID: 7, Name: " Widget "}) {
		t.Errorf("got %+v", item)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, 500, "boom"},
		{"validation", http.StatusBadRequest, `{"error":"Name is required"}`, 400, "Name is required"},
		{"non-json error", http.StatusBadGateway, `<html>`, 502, ""},
		{"bad success body", http.StatusCreated, `not json`, 201, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).CreateItem(context.Background(), "x")
			var ne *NetworkError
			if !errors.As(err, &ne) {
				t.Fatalf("expected NetworkError, got %v", err)
			}
			if ne.StatusCode != tt.wantStatus || ne.Message != tt.wantMsg {
				t.Errorf("got status=%d msg=%q", ne.StatusCode, ne.Message)
			}
		})
	}
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).ListItems(context.Background())
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if ne.StatusCode != 0 || ne.Err == nil {
		t.Errorf("expected transport error, got %+v", ne)
	}
}
