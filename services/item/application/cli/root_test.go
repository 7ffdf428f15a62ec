package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/itemboard/services/item/application/client"
)

// fakeAPI is a minimal in-process item API.
func fakeAPI(t *testing.T, failWith int) *httptest.Server {
	t.Helper()
	var (
		mu    sync.Mutex
		items []client.Item
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if failWith != 0 {
			w.WriteHeader(failWith)
			_, _ = w.Write([]byte(`{"error":"failed"}`))
			return
		}
		mu.Lock()
		defer mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			out := append([]client.Item{}, items...)
			_ = json.NewEncoder(w).Encode(out)
		case http.MethodPost:
			var req struct {
				Name string `json:"name"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			it := client.Item{ID: int64(len(items) + 1), Name: req.Name}
			items = append([]client.Item{it}, items...)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(it)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "itemctl", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"list", "add"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			require.NotNil(t, sub)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Setenv("API_URL", "")
	cmd := NewRootCommand()

	apiURL := cmd.PersistentFlags().Lookup("api-url")
	require.NotNil(t, apiURL)
	assert.Equal(t, "http://localhost:3001", apiURL.DefValue)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestList_Empty(t *testing.T) {
	srv := fakeAPI(t, 0)

	out, err := run(t, "--api-url", srv.URL, "list")
	require.NoError(t, err)
	assert.Equal(t, "No items yet\n", out)
}

func TestAddThenList(t *testing.T) {
	srv := fakeAPI(t, 0)

	out, err := run(t, "--api-url", srv.URL, "add", "Test", "Item")
	require.NoError(t, err)
	assert.Equal(t, "created 1\tTest Item\n", out)

	_, err = run(t, "--api-url", srv.URL, "add", "Second")
	require.NoError(t, err)

	out, err = run(t, "--api-url", srv.URL, "list")
	require.NoError(t, err)
	assert.Equal(t, "2\tSecond\n1\tTest Item\n", out)
}

func TestList_JSON(t *testing.T) {
	srv := fakeAPI(t, 0)
	_, err := run(t, "--api-url", srv.URL, "add", "A")
	require.NoError(t, err)

	out, err := run(t, "--api-url", srv.URL, "--format", "json", "list")
	require.NoError(t, err)

	var items []client.Item
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	assert.Equal(t, []client.Item{{ID: 1, Name: "A"}}, items)
}

func TestAdd_BlankName(t *testing.T) {
	srv := fakeAPI(t, 0)

	_, err := run(t, "--api-url", srv.URL, "add", "   ")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   int
	}{
		{"server error", http.StatusInternalServerError, ExitFailure},
		{"rejected", http.StatusBadRequest, ExitUsageError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := fakeAPI(t, tt.status)
			_, err := run(t, "--api-url", srv.URL, "add", "x")
			require.Error(t, err)
			assert.Equal(t, tt.want, GetExitCode(err))
		})
	}
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(t, "--format", "yaml", "list")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}
