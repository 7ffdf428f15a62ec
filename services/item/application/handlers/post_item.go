package handlers

import (
	"net/http"

	"github.com/ghuser/itemboard/pkg/errhttp"
	"github.com/ghuser/itemboard/pkg/httpx"
	pkgvalidator "github.com/ghuser/itemboard/pkg/validator"
	appsvcs "github.com/ghuser/itemboard/services/item/application/services"
)

// CreateItemRequest is the request body for POST /items.
type CreateItemRequest struct {
	Name string `json:"name" validate:"required,notblank,max=255" example:"Test Item"`
} // @name CreateItemRequest

// PostItemHandler handles POST /items requests.
type PostItemHandler struct {
	svc          *appsvcs.Services
	isProduction bool
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services, isProduction bool) *PostItemHandler {
	return &PostItemHandler{svc: svc, isProduction: isProduction}
}

// Execute creates a new item.
//
//	@Summary		Create item
//	@Description	Stores a new item. The name is kept exactly as sent.
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateItemRequest	true	"Item creation request"
//	@Success		201		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Item.CreateItem(r.Context(), req.Name)
	if err != nil {
		errhttp.WriteError(w, err, h.isProduction)
		return
	}

	httpx.JSON(w, http.StatusCreated, toItemResponse(item))
}
