package handlers

import (
	"net/http"

	"github.com/ghuser/itemboard/pkg/errhttp"
	"github.com/ghuser/itemboard/pkg/httpx"
	appsvcs "github.com/ghuser/itemboard/services/item/application/services"
)

// ListItemsHandler handles GET /items requests.
type ListItemsHandler struct {
	svc          *appsvcs.Services
	isProduction bool
}

// NewListItemsHandler returns a ListItemsHandler backed by the given services.
func NewListItemsHandler(svc *appsvcs.Services, isProduction bool) *ListItemsHandler {
	return &ListItemsHandler{svc: svc, isProduction: isProduction}
}

// Execute lists every item, newest first.
//
//	@Summary		List items
//	@Description	Returns all items ordered by id descending
//	@Tags			items
//	@Produce		json
//	@Success		200	{array}		ItemResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Item.ListItems(r.Context())
	if err != nil {
		errhttp.WriteError(w, err, h.isProduction)
		return
	}

	resp := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toItemResponse(item))
	}
	httpx.JSON(w, http.StatusOK, resp)
}
