package handlers

import "github.com/ghuser/itemboard/services/item/domain/models"

// ItemResponse is the wire form of an Item.
type ItemResponse struct {
	ID   int64  `json:"id"   example:"1"`
	Name string `json:"name" example:"Test Item"`
} // @name ItemResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"Name is required"`
} // @name ErrorResponse

func toItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{ID: item.ID, Name: item.Name.String()}
}
