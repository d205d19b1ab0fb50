package orderstate

import (
	"context"
	"sync"

	"github.com/tanchung/sport-store/constant"
	"github.com/tanchung/sport-store/model"
	orderrepo "github.com/tanchung/sport-store/repository/order"
	"github.com/tanchung/sport-store/utils/errors"
	"github.com/tanchung/sport-store/utils/logger"
	"go.uber.org/zap"
)

// SearchSnapshot is the read view of a bucket's search state. While
// IsSearchMode is true the view renders Results instead of the bucket's
// normal listing.
type SearchSnapshot struct {
	Status       constant.OrderStatus `json:"status"`
	Results      []model.Order        `json:"results"`
	Pagination   model.Pagination     `json:"pagination"`
	IsSearchMode bool                 `json:"is_search_mode"`
	Loading      bool                 `json:"loading"`
	Error        string               `json:"error,omitempty"`
}

// searchSlice is a bucket's independent search state. Keeping it apart from
// the list slice means entering and leaving search never disturbs normal
// browsing: clear a fruitless search and the listing is exactly where it
// was.
type searchSlice struct {
	mu      sync.Mutex
	status  constant.OrderStatus
	userID  uint64
	gateway orderrepo.OrderGateway

	results      []model.Order
	pagination   model.Pagination
	isSearchMode bool
	loading      bool
	err          error
	lastParams   model.OrderSearchParams

	seq uint64
}

func newSearchSlice(status constant.OrderStatus, userID uint64, gateway orderrepo.OrderGateway) *searchSlice {
	return &searchSlice{
		status:  status,
		userID:  userID,
		gateway: gateway,
		results: []model.Order{},
		pagination: model.Pagination{
			CurrentPage: 1,
			PageSize:    defaultPageSize,
		},
	}
}

// Search runs the bucket's search at page 1. A search with neither a term
// nor a date range is rejected before any network call.
func (s *searchSlice) Search(ctx context.Context, params *model.OrderSearchParams) error {
	if params == nil || params.IsEmpty() {
		return errors.SetCustomErrorWithMessage(constant.ErrValidation, "enter a search term or a date range")
	}
	return s.run(ctx, params, 1)
}

// ChangeSearchPage re-runs the last search at page n. There is nothing to
// page through outside search mode, so that is rejected up front.
func (s *searchSlice) ChangeSearchPage(ctx context.Context, n int) error {
	s.mu.Lock()
	if !s.isSearchMode {
		s.mu.Unlock()
		return errors.SetCustomErrorWithMessage(constant.ErrInvalidRequest, "no active search to page through")
	}
	params := s.lastParams
	s.mu.Unlock()
	if n < 1 {
		n = 1
	}
	return s.run(ctx, &params, n)
}

func (s *searchSlice) run(ctx context.Context, params *model.OrderSearchParams, page int) error {
	if s.status != constant.OrderStatusHistory {
		params.Status = s.status
	}

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.loading = true
	size := s.pagination.PageSize
	s.mu.Unlock()

	// The gateway reclassifies a 404 as an empty page, so "no rows" lands
	// in the success path below.
	result, err := s.gateway.SearchByNameAndDate(ctx, s.userID, params, page, size)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return nil
	}
	s.loading = false
	if err != nil {
		logger.Error("[Search] bucket search failed", zap.String("status", string(s.status)), zap.String("error", err.Error()))
		s.err = err
		s.results = []model.Order{}
		return err
	}
	s.err = nil
	s.isSearchMode = true
	s.results = result.Orders
	s.pagination = result.Pagination
	s.lastParams = *params
	return nil
}

// Clear leaves search mode and resets results and pagination atomically.
func (s *searchSlice) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++ // orphan any in-flight search
	s.results = []model.Order{}
	s.pagination = model.Pagination{
		CurrentPage: 1,
		PageSize:    defaultPageSize,
	}
	s.isSearchMode = false
	s.loading = false
	s.err = nil
	s.lastParams = model.OrderSearchParams{}
}

func (s *searchSlice) Snapshot() *SearchSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := &SearchSnapshot{
		Status:       s.status,
		Results:      append([]model.Order(nil), s.results...),
		Pagination:   s.pagination,
		IsSearchMode: s.isSearchMode,
		Loading:      s.loading,
	}
	if s.err != nil {
		snap.Error = s.err.Error()
	}
	return snap
}
