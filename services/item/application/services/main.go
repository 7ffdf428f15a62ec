package services

import (
	"github.com/ghuser/itemboard/pkg/app"
	"github.com/ghuser/itemboard/services/item/domain/repositories"
	"github.com/ghuser/itemboard/services/item/infrastructure/persistence"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item *ItemService
	// Store is exposed for readiness probes; handlers go through Item.
	Store repositories.ItemRepository
}

// New wires all item application services with infrastructure from the Application container.
func New(a *app.Application, opts ...Option) (*Services, error) {
	repo, err := persistence.NewItemRepository(a)
	if err != nil {
		return nil, err
	}
	return &Services{
		Item:  NewItemService(repo, a.Logger, opts...),
		Store: repo,
	}, nil
}
