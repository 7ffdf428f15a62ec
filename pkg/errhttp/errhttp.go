// Package errhttp maps domain errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain error type.
package errhttp

import (
	"errors"
	"net/http"
	"unicode"

	"github.com/ghuser/itemboard/pkg/httpx"
	itemdomain "github.com/ghuser/itemboard/services/item/domain"
)

// WriteError maps err to an HTTP status code and writes a {"error": message}
// response. Validation messages are sent with their first letter capitalized;
// 5xx messages are replaced by the status text when isProduction is set.
func WriteError(w http.ResponseWriter, err error, isProduction bool) {
	status := mapErrorToStatus(err)

	var ve *itemdomain.ValidationError
	if status == http.StatusBadRequest && errors.As(err, &ve) {
		httpx.JSONError(w, status, capitalize(ve.Message))
		return
	}
	httpx.JSONError(w, status, httpx.SafeError(err, status, isProduction))
}

// mapErrorToStatus checks UnavailableError first: a storage failure is a 500
// whatever it wraps.
func mapErrorToStatus(err error) int {
	var (
		ue *itemdomain.UnavailableError
		ve *itemdomain.ValidationError
	)
	switch {
	case errors.As(err, &ue):
		return http.StatusInternalServerError // 500
	case errors.As(err, &ve):
		return http.StatusBadRequest // 400
	default:
		return http.StatusInternalServerError // 500
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
