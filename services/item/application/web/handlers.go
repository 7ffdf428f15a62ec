// Package web serves the item board as server-rendered HTML backed by the item API.
package web

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/itemboard/pkg/httpx"
	"github.com/ghuser/itemboard/pkg/logger"
	"github.com/ghuser/itemboard/services/item/application/view"
)

const maxFormBytes = 1 << 16

// Routes mounts GET / and POST / on r.
func Routes(r chi.Router, api view.API, log logger.Logger) {
	h := &handler{api: api, log: log}
	r.Get("/", h.index)
	r.Post("/", h.create)
}

type handler struct {
	api view.API
	log logger.Logger
}

func (h *handler) index(w http.ResponseWriter, r *http.Request) {
	v := view.New(h.api)
	v.Mount(r.Context())
	s := v.Snapshot()
	if s.Phase == view.Failed {
		h.log.WarnContext(r.Context(), "item list unavailable")
	}
	h.render(w, r, http.StatusOK, view.Page(s))
}

// create handles the form post. A successful (or no-op) submit redirects
// back to / so a browser refresh does not resubmit.
func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	v := view.New(h.api)
	v.Mount(r.Context())
	v.SetInput(r.PostFormValue("name"))
	v.Submit(r.Context())

	s := v.Snapshot()
	if s.Phase == view.Failed {
		h.log.WarnContext(r.Context(), "item submit failed", "error", s.Error)
		h.render(w, r, http.StatusOK, view.Page(s))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *handler) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	if err := httpx.HTML(r.Context(), w, status, c); err != nil {
		h.log.ErrorContext(r.Context(), "render page", "error", err)
	}
}
