package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/tanchung/sport-store/application/orderstate"
	"github.com/tanchung/sport-store/constant"
	"github.com/tanchung/sport-store/model"
	utilsContext "github.com/tanchung/sport-store/utils/context"
	"github.com/tanchung/sport-store/utils/errors"
)

func (s *RestHandler) coordinator(r *http.Request) (uint64, *orderstate.Coordinator, error) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		return 0, nil, errors.SetCustomError(constant.ErrUnauthorize)
	}
	return userID, s.Orders.ForUser(userID), nil
}

func pathStatus(r *http.Request) constant.OrderStatus {
	return constant.OrderStatus(mux.Vars(r)["status"])
}

func pathID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
}

// RefreshBuckets fetches all six buckets concurrently, the initial page
// load of the order tracking view.
func (s *RestHandler) RefreshBuckets(w http.ResponseWriter, r *http.Request) {
	_, c, err := s.coordinator(r)
	if err != nil {
		writeError(w, err)
		return
	}
	c.RefreshAll(r.Context())

	snapshots := make([]*orderstate.ListSnapshot, 0, len(constant.OrderBuckets))
	for _, status := range constant.OrderBuckets {
		snap, err := c.List(status)
		if err != nil {
			writeError(w, err)
			return
		}
		snapshots = append(snapshots, snap)
	}
	writeSuccess(w, snapshots)
}

// GetBucket fetches one bucket's current page and returns its snapshot.
// @Summary Get an order bucket
// @Tags Orders
// @Produce json
// @Param status path string true "Bucket status"
// @Success 200 {object} orderstate.ListSnapshot
// @Router /orders/buckets/{status} [get]
func (s *RestHandler) GetBucket(w http.ResponseWriter, r *http.Request) {
	_, c, err := s.coordinator(r)
	if err != nil {
		writeError(w, err)
		return
	}
	status := pathStatus(r)

	if err := c.Fetch(r.Context(), status); err != nil {
		// The snapshot carries the error state; the fetch error itself is
		// still reported so the view can toast it.
		snap, snapErr := c.List(status)
		if snapErr != nil {
			writeError(w, snapErr)
			return
		}
		writeSuccess(w, snap)
		return
	}

	snap, err := c.List(status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, snap)
}

func (s *RestHandler) UpdateBucketFilters(w http.ResponseWriter, r *http.Request) {
	_, c, err := s.coordinator(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var patch model.OrderFilterPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	status := pathStatus(r)
	if err := c.UpdateFilters(status, &patch); err != nil {
		writeError(w, err)
		return
	}

	snap, err := c.List(status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, snap)
}

type changePageRequest struct {
	Page int `json:"page" validate:"required,gte=1"`
}

type changePageSizeRequest struct {
	PageSize int `json:"page_size" validate:"required,gte=1"`
}

func (s *RestHandler) ChangeBucketPage(w http.ResponseWriter, r *http.Request) {
	_, c, err := s.coordinator(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req changePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	status := pathStatus(r)
	if err := c.ChangePage(r.Context(), status, req.Page); err != nil {
		writeError(w, err)
		return
	}

	snap, err := c.List(status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, snap)
}

func (s *RestHandler) ChangeBucketPageSize(w http.ResponseWriter, r *http.Request) {
	_, c, err := s.coordinator(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req changePageSizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	status := pathStatus(r)
	if err := c.ChangePageSize(r.Context(), status, req.PageSize); err != nil {
		writeError(w, err)
		return
	}

	snap, err := c.List(status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, snap)
}

func (s *RestHandler) SearchBucket(w http.ResponseWriter, r *http.Request) {
	_, c, err := s.coordinator(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var params model.OrderSearchParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	status := pathStatus(r)
	if err := c.Search(r.Context(), status, &params); err != nil {
		writeError(w, err)
		return
	}

	snap, err := c.SearchState(status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, snap)
}

func (s *RestHandler) ClearBucketSearch(w http.ResponseWriter, r *http.Request) {
	_, c, err := s.coordinator(r)
	if err != nil {
		writeError(w, err)
		return
	}

	status := pathStatus(r)
	if err := c.ClearSearch(status); err != nil {
		writeError(w, err)
		return
	}

	snap, err := c.SearchState(status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, snap)
}

func (s *RestHandler) ChangeBucketSearchPage(w http.ResponseWriter, r *http.Request) {
	_, c, err := s.coordinator(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req changePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	status := pathStatus(r)
	if err := c.ChangeSearchPage(r.Context(), status, req.Page); err != nil {
		writeError(w, err)
		return
	}

	snap, err := c.SearchState(status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, snap)
}

func (s *RestHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	order, err := s.OrderRepo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, order)
}

// CancelOrder requests the cancel transition and refreshes every bucket.
// @Summary Request order cancellation
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} response
// @Router /orders/{id}/cancel [post]
func (s *RestHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	_, c, err := s.coordinator(r)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := c.CancelOrder(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}
