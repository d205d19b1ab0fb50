package orderstate

import (
	"context"
	"sync"

	"github.com/tanchung/sport-store/constant"
	"github.com/tanchung/sport-store/model"
	orderrepo "github.com/tanchung/sport-store/repository/order"
	"github.com/tanchung/sport-store/utils/logger"
	"go.uber.org/zap"
)

const defaultPageSize = 5

// ListSnapshot is the read view of a bucket's listing state.
type ListSnapshot struct {
	Status     constant.OrderStatus `json:"status"`
	Orders     []model.Order        `json:"orders"`
	Pagination model.Pagination     `json:"pagination"`
	Filters    model.OrderFilters   `json:"filters"`
	Loading    bool                 `json:"loading"`
	Error      string               `json:"error,omitempty"`
}

// bucketSlice holds one lifecycle bucket's listing state. The six buckets
// are instances of this one type, keyed by status in the coordinator.
type bucketSlice struct {
	mu      sync.Mutex
	status  constant.OrderStatus
	userID  uint64
	gateway orderrepo.OrderGateway

	orders     []model.Order
	pagination model.Pagination
	filters    model.OrderFilters
	loading    bool
	err        error

	// seq tags each issued fetch; a response only writes state while it is
	// still the newest fetch for this slice.
	seq uint64
}

func newBucketSlice(status constant.OrderStatus, userID uint64, gateway orderrepo.OrderGateway) *bucketSlice {
	return &bucketSlice{
		status:  status,
		userID:  userID,
		gateway: gateway,
		orders:  []model.Order{},
		pagination: model.Pagination{
			CurrentPage: 1,
			PageSize:    defaultPageSize,
		},
	}
}

// Fetch loads the slice's current page from the gateway. On failure the
// orders are emptied: the view must never show a prior page next to a new
// error banner.
func (s *bucketSlice) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.loading = true
	page := s.pagination.CurrentPage
	size := s.pagination.PageSize
	filters := s.filters
	s.mu.Unlock()

	result, err := s.load(ctx, filters, page, size)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		// A newer fetch superseded this one; whatever it returns wins.
		return nil
	}
	s.loading = false
	if err != nil {
		logger.Error("[Fetch] bucket fetch failed", zap.String("status", string(s.status)), zap.String("error", err.Error()))
		s.err = err
		s.orders = []model.Order{}
		s.pagination.TotalItems = 0
		s.pagination.TotalPages = 0
		return err
	}
	s.err = nil
	s.orders = result.Orders
	s.pagination = result.Pagination
	return nil
}

func (s *bucketSlice) load(ctx context.Context, filters model.OrderFilters, page, size int) (*model.OrderPage, error) {
	if s.status == constant.OrderStatusHistory {
		return s.gateway.FetchHistory(ctx, s.userID, filters.StatusID, page, size)
	}
	return s.gateway.FetchByStatus(ctx, s.userID, s.status, page, size)
}

// UpdateFilters merges the patch and resets the page to 1. It deliberately
// does not fetch: the view batches filter edits and fetches once.
func (s *bucketSlice) UpdateFilters(patch *model.OrderFilterPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	patch.Apply(&s.filters)
	s.pagination.CurrentPage = 1
}

// ChangePage moves to page n and fetches immediately: page navigation is a
// discrete, intentional action, unlike typing in a filter box.
func (s *bucketSlice) ChangePage(ctx context.Context, n int) error {
	s.mu.Lock()
	if n < 1 {
		n = 1
	}
	if s.pagination.TotalPages > 0 && n > s.pagination.TotalPages {
		n = s.pagination.TotalPages
	}
	s.pagination.CurrentPage = n
	s.mu.Unlock()
	return s.Fetch(ctx)
}

func (s *bucketSlice) ChangePageSize(ctx context.Context, size int) error {
	s.mu.Lock()
	if size <= 0 {
		size = defaultPageSize
	}
	s.pagination.PageSize = size
	s.pagination.CurrentPage = 1
	s.mu.Unlock()
	return s.Fetch(ctx)
}

func (s *bucketSlice) Snapshot() *ListSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := &ListSnapshot{
		Status:     s.status,
		Orders:     append([]model.Order(nil), s.orders...),
		Pagination: s.pagination,
		Filters:    s.filters,
		Loading:    s.loading,
	}
	if s.err != nil {
		snap.Error = s.err.Error()
	}
	return snap
}
