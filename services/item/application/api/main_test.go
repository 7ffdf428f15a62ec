package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/itemboard/pkg/config"
	"github.com/ghuser/itemboard/pkg/logger"
	appsvcs "github.com/ghuser/itemboard/services/item/application/services"
	itemdomain "github.com/ghuser/itemboard/services/item/domain"
	"github.com/ghuser/itemboard/services/item/domain/models"
	"github.com/ghuser/itemboard/services/item/domain/repositories"
	"github.com/ghuser/itemboard/services/item/infrastructure/persistence/memory"
)

type itemJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// downRepo fails every call as an unreachable store would.
type downRepo struct{}

func (downRepo) Append(context.Context, models.ItemName) (*models.Item, error) {
	return nil, itemdomain.NewStorageError("append item", errors.New("dial tcp 127.0.0.1:3306: connection refused"), false)
}

func (downRepo) ListAll(context.Context) ([]*models.Item, error) {
	return nil, itemdomain.NewStorageError("list items", errors.New("dial tcp 127.0.0.1:3306: connection refused"), false)
}

func (downRepo) Ping(context.Context) error { return errors.New("down") }
func (downRepo) Close() error               { return nil }

func newServer(t *testing.T, repo repositories.ItemRepository, env string) *httptest.Server {
	t.Helper()
	svcs := &appsvcs.Services{Item: appsvcs.NewItemService(repo, logger.Nop(), appsvcs.WithRetryDelay(0))}
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		ItemRoutes(r, svcs, &config.Config{Environment: env})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, resp *http.Response, err error) (int, []byte) {
	t.Helper()
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, body
}

func getItems(t *testing.T, srv *httptest.Server) (int, []byte) {
	t.Helper()
	resp, err := http.Get(srv.URL + "/api/items")
	return do(t, resp, err)
}

func postItem(t *testing.T, srv *httptest.Server, body string) (int, []byte) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/items", "application/json", strings.NewReader(body))
	return do(t, resp, err)
}

func TestListItems_EmptyStore(t *testing.T) {
	srv := newServer(t, memory.NewItemRepository(), config.EnvDevelopment)

	code, body := getItems(t, srv)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if got := strings.TrimSpace(string(body)); got != "[]" {
		t.Errorf("body = %s, want []", got)
	}
}

func TestCreateItem_ThenListed(t *testing.T) {
	srv := newServer(t, memory.NewItemRepository(), config.EnvDevelopment)

	code, body := postItem(t, srv, `{"name": "Test Item"}`)
	if code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", code, body)
	}
	var created itemJSON
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID <= 0 || created.Name != "Test Item" {
		t.Fatalf("unexpected item: %+v", created)
	}

	_, body = getItems(t, srv)
	var items []itemJSON
	if err := json.Unmarshal(body, &items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(items) != 1 || items[0] != created {
		t.Errorf("list = %+v, want [%+v]", items, created)
	}
}

func TestCreateItem_MissingName(t *testing.T) {
	for _, body := range []string{``, `{}`, `{"name": ""}`, `{"name": "   "}`} {
		t.Run(body, func(t *testing.T) {
			srv := newServer(t, memory.NewItemRepository(), config.EnvDevelopment)

			code, resp := postItem(t, srv, body)
			if code != http.StatusBadRequest {
				t.Fatalf("status = %d", code)
			}
			if got := strings.TrimSpace(string(resp)); got != `{"error":"Name is required"}` {
				t.Errorf("body = %s", got)
			}

			_, list := getItems(t, srv)
			if got := strings.TrimSpace(string(list)); got != "[]" {
				t.Errorf("store changed: %s", got)
			}
		})
	}
}

func TestCreateItem_InvalidJSON(t *testing.T) {
	srv := newServer(t, memory.NewItemRepository(), config.EnvDevelopment)

	code, resp := postItem(t, srv, `{"name":`)
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d", code)
	}
	if got := strings.TrimSpace(string(resp)); got != `{"error":"Invalid JSON"}` {
		t.Errorf("body = %s", got)
	}
}

func TestListItems_NewestFirst(t *testing.T) {
	srv := newServer(t, memory.NewItemRepository(), config.EnvDevelopment)

	for _, name := range []string{"A", "B"} {
		if code, body := postItem(t, srv, `{"name":"`+name+`"}`); code != http.StatusCreated {
			t.Fatalf("create %s: %d %s", name, code, body)
		}
	}

	_, body := getItems(t, srv)
	var items []itemJSON
	if err := json.Unmarshal(body, &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 2 || items[0].Name != "B" || items[1].Name != "A" || items[0].ID <= items[1].ID {
		t.Errorf("list = %+v, want [B, A]", items)
	}
}

func TestStoreUnreachable(t *testing.T) {
	tests := []struct {
		env       string
		wantError string
	}{
		{config.EnvDevelopment, ""},
		{config.EnvProduction, "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			srv := newServer(t, downRepo{}, tt.env)

			code, body := getItems(t, srv)
			if code != http.StatusInternalServerError {
				t.Fatalf("status = %d", code)
			}
			var resp map[string]string
			if err := json.Unmarshal(body, &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp["error"] == "" {
				t.Fatal("missing error field")
			}
			if tt.wantError != "" && resp["error"] != tt.wantError {
				t.Errorf("error = %q, want %q", resp["error"], tt.wantError)
			}

			code, _ = postItem(t, srv, `{"name":"x"}`)
			if code != http.StatusInternalServerError {
				t.Errorf("create status = %d", code)
			}
		})
	}
}
