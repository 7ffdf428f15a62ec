package httpx

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
)

// JSON writes v as JSON with the given status code. Item listings reflect the
// store at read time, so every response is marked no-store. Encoding errors
// are discarded: use this for handler responses, not for streaming.
func JSON(w http.ResponseWriter, status int, v any) {
	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes a standard {"error": message} JSON response.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// HTML renders c as a text/html page with the given status. The status line
// is already sent when rendering starts, so a render error is only returned.
func HTML(ctx context.Context, w http.ResponseWriter, status int, c templ.Component) error {
	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	return c.Render(ctx, w)
}

// SafeError returns the message to send for err. In production 5xx details
// are replaced with the status text so driver and network errors never reach
// the client.
func SafeError(err error, status int, isProduction bool) string {
	if isProduction && status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}
