package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/itemboard/pkg/logger"
	"github.com/ghuser/itemboard/pkg/telemetry"
	itemdomain "github.com/ghuser/itemboard/services/item/domain"
	"github.com/ghuser/itemboard/services/item/domain/models"
	"github.com/ghuser/itemboard/services/item/domain/repositories"
	domainsvcs "github.com/ghuser/itemboard/services/item/domain/services"
)

const (
	instrumentationName = "github.com/ghuser/itemboard/services/item"
	defaultRetryDelay   = 50 * time.Millisecond
)

// ItemService validates input and delegates to the item store. It holds no
// copy of the data: every ListItems reads the store again.
//
// A StorageError marked transient is retried exactly once; every other
// storage failure is reported as *domain.UnavailableError.
type ItemService struct {
	repo       repositories.ItemRepository
	log        logger.Logger
	tracer     trace.Tracer
	retryDelay time.Duration

	created  metric.Int64Counter
	failures metric.Int64Counter
}

// Option customizes an ItemService.
type Option func(*ItemService)

// WithRetryDelay sets the pause before the single transient retry.
func WithRetryDelay(d time.Duration) Option {
	return func(s *ItemService) { s.retryDelay = d }
}

// NewItemService returns an ItemService on repo. Metrics and spans go to the
// global OTel providers.
func NewItemService(repo repositories.ItemRepository, log logger.Logger, opts ...Option) *ItemService {
	meter := otel.Meter(instrumentationName)
	created, _ := meter.Int64Counter("items.created",
		metric.WithDescription("Items appended to the store"))
	failures, _ := meter.Int64Counter("items.storage_failures",
		metric.WithDescription("Item operations that ended in a storage failure"))

	s := &ItemService{
		repo:       repo,
		log:        log,
		tracer:     otel.Tracer(instrumentationName),
		retryDelay: defaultRetryDelay,
		created:    created,
		failures:   failures,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListItems returns every stored item, newest first, exactly as the store
// reports them.
func (s *ItemService) ListItems(ctx context.Context) ([]*models.Item, error) {
	ctx, span := s.tracer.Start(ctx, "ItemService.ListItems")
	defer span.End()

	var items []*models.Item
	err := s.withRetry(ctx, "list items", func() error {
		var err error
		items, err = s.repo.ListAll(ctx)
		return err
	})
	if err != nil {
		return nil, s.unavailable(ctx, span, "list items", err)
	}
	if !domainsvcs.IsNewestFirst(items) {
		s.log.WarnContext(ctx, "store returned items out of id order", "count", len(items))
	}

	span.SetAttributes(attribute.Int("items.count", len(items)))
	return items, nil
}

// CreateItem validates rawName and appends it. The name is stored untrimmed;
// a name that is empty after trimming fails with domain.ErrNameRequired
// without reaching the store.
func (s *ItemService) CreateItem(ctx context.Context, rawName string) (*models.Item, error) {
	ctx, span := s.tracer.Start(ctx, "ItemService.CreateItem")
	defer span.End()

	name, err := models.NewItemName(rawName)
	if err != nil {
		span.SetStatus(codes.Error, "invalid name")
		return nil, err
	}

	var item *models.Item
	err = s.withRetry(ctx, "append item", func() error {
		var err error
		item, err = s.repo.Append(ctx, name)
		return err
	})
	if err != nil {
		return nil, s.unavailable(ctx, span, "create item", err)
	}
	if err := domainsvcs.ValidateStoredItem(item); err != nil {
		err = fmt.Errorf("store returned invalid item: %v", err)
		return nil, s.unavailable(ctx, span, "create item", itemdomain.NewStorageError("append item", err, false))
	}

	s.created.Add(ctx, 1)
	span.SetAttributes(attribute.Int64("item.id", item.ID))
	s.log.InfoContext(ctx, "item created", "item_id", item.ID)
	return item, nil
}

// withRetry runs fn and repeats it once if it failed with a transient
// StorageError.
func (s *ItemService) withRetry(ctx context.Context, op string, fn func() error) error {
	err := fn()
	if err == nil || !itemdomain.IsTransient(err) {
		return err
	}

	s.log.WarnContext(ctx, "transient storage failure, retrying once", "op", op, "error", err)
	select {
	case <-ctx.Done():
		return errors.Join(err, ctx.Err())
	case <-time.After(s.retryDelay):
	}
	return fn()
}

func (s *ItemService) unavailable(ctx context.Context, span trace.Span, op string, err error) error {
	s.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
	span.RecordError(err)
	span.SetStatus(codes.Error, op+" failed")
	s.log.ErrorContext(ctx, "storage failure", "op", op, "error", err)
	telemetry.CaptureError(ctx, err, map[string]string{"op": op})
	return &itemdomain.UnavailableError{Op: op, Err: err}
}
