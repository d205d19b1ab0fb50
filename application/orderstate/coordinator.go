package orderstate

import (
	"context"
	"sync"
	"time"

	"github.com/tanchung/sport-store/constant"
	"github.com/tanchung/sport-store/model"
	orderrepo "github.com/tanchung/sport-store/repository/order"
	"github.com/tanchung/sport-store/thirdparty/rabbitmq"
	"github.com/tanchung/sport-store/utils/errors"
	"github.com/tanchung/sport-store/utils/logger"
	"go.uber.org/zap"
)

// Coordinator tracks one user's order state across the six lifecycle
// buckets. Each bucket carries an independent list slice and search slice;
// the cross-cutting cancel action invalidates all of them.
type Coordinator struct {
	userID    uint64
	gateway   orderrepo.OrderGateway
	publisher *rabbitmq.Publisher

	buckets  map[constant.OrderStatus]*bucketSlice
	searches map[constant.OrderStatus]*searchSlice
}

func NewCoordinator(userID uint64, gateway orderrepo.OrderGateway, publisher *rabbitmq.Publisher) *Coordinator {
	buckets := make(map[constant.OrderStatus]*bucketSlice, len(constant.OrderBuckets))
	searches := make(map[constant.OrderStatus]*searchSlice, len(constant.OrderBuckets))
	for _, status := range constant.OrderBuckets {
		buckets[status] = newBucketSlice(status, userID, gateway)
		searches[status] = newSearchSlice(status, userID, gateway)
	}
	return &Coordinator{
		userID:    userID,
		gateway:   gateway,
		publisher: publisher,
		buckets:   buckets,
		searches:  searches,
	}
}

func (c *Coordinator) bucket(status constant.OrderStatus) (*bucketSlice, error) {
	s, ok := c.buckets[status]
	if !ok {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return s, nil
}

func (c *Coordinator) search(status constant.OrderStatus) (*searchSlice, error) {
	s, ok := c.searches[status]
	if !ok {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return s, nil
}

func (c *Coordinator) Fetch(ctx context.Context, status constant.OrderStatus) error {
	s, err := c.bucket(status)
	if err != nil {
		return err
	}
	return s.Fetch(ctx)
}

func (c *Coordinator) UpdateFilters(status constant.OrderStatus, patch *model.OrderFilterPatch) error {
	s, err := c.bucket(status)
	if err != nil {
		return err
	}
	s.UpdateFilters(patch)
	return nil
}

func (c *Coordinator) ChangePage(ctx context.Context, status constant.OrderStatus, page int) error {
	s, err := c.bucket(status)
	if err != nil {
		return err
	}
	return s.ChangePage(ctx, page)
}

func (c *Coordinator) ChangePageSize(ctx context.Context, status constant.OrderStatus, size int) error {
	s, err := c.bucket(status)
	if err != nil {
		return err
	}
	return s.ChangePageSize(ctx, size)
}

func (c *Coordinator) List(status constant.OrderStatus) (*ListSnapshot, error) {
	s, err := c.bucket(status)
	if err != nil {
		return nil, err
	}
	return s.Snapshot(), nil
}

func (c *Coordinator) Search(ctx context.Context, status constant.OrderStatus, params *model.OrderSearchParams) error {
	s, err := c.search(status)
	if err != nil {
		return err
	}
	return s.Search(ctx, params)
}

func (c *Coordinator) ClearSearch(status constant.OrderStatus) error {
	s, err := c.search(status)
	if err != nil {
		return err
	}
	s.Clear()
	return nil
}

func (c *Coordinator) ChangeSearchPage(ctx context.Context, status constant.OrderStatus, page int) error {
	s, err := c.search(status)
	if err != nil {
		return err
	}
	return s.ChangeSearchPage(ctx, page)
}

func (c *Coordinator) SearchState(status constant.OrderStatus) (*SearchSnapshot, error) {
	s, err := c.search(status)
	if err != nil {
		return nil, err
	}
	return s.Snapshot(), nil
}

// RefreshAll fetches every bucket concurrently so the tabs populate in
// parallel. Failures land in each slice's own error state.
func (c *Coordinator) RefreshAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, status := range constant.OrderBuckets {
		s := c.buckets[status]
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Fetch(ctx)
		}()
	}
	wg.Wait()
}

// CancelOrder requests the cancel transition, then refetches all six
// buckets: the order moves between buckets server-side and the client
// cannot know which ones are affected without asking. On failure no slice
// is touched.
func (c *Coordinator) CancelOrder(ctx context.Context, orderID uint64) error {
	if err := c.gateway.RequestCancel(ctx, orderID, c.userID); err != nil {
		logger.Error("[CancelOrder] request cancel", zap.Uint64("order_id", orderID), zap.String("error", err.Error()))
		return err
	}

	if c.publisher != nil {
		msg := rabbitmq.OrderCancelMessage{
			OrderID:     orderID,
			UserID:      c.userID,
			RequestedAt: time.Now(),
		}
		if err := c.publisher.PublishCancelRequested(msg); err != nil {
			logger.Error("[CancelOrder] publish cancel event", zap.String("error", err.Error()))
		}
	}

	c.RefreshAll(ctx)
	return nil
}
