package order

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/tanchung/sport-store/constant"
	"github.com/tanchung/sport-store/model"
	"github.com/tanchung/sport-store/repository/backend"
	"github.com/tanchung/sport-store/utils/errors"
	validatorx "github.com/tanchung/sport-store/utils/validator"
	"golang.org/x/sync/errgroup"
)

// OrderGateway is the sole boundary to the backend's order API. Callers work
// in 1-based pages; the backend is 0-based. The conversion happens here and
// nowhere else.
type OrderGateway interface {
	FetchByStatus(ctx context.Context, userID uint64, statusID constant.OrderStatus, page, pageSize int) (*model.OrderPage, error)
	FetchHistory(ctx context.Context, userID uint64, statusFilter constant.OrderStatus, page, pageSize int) (*model.OrderPage, error)
	SearchByNameAndDate(ctx context.Context, userID uint64, params *model.OrderSearchParams, page, pageSize int) (*model.OrderPage, error)
	GetByID(ctx context.Context, orderID uint64) (*model.Order, error)
	ApplyVoucher(ctx context.Context, orderID, voucherID uint64) (*model.Order, error)
	CreateOrder(ctx context.Context, userID, addressID uint64) (*model.Order, error)
	RequestCancel(ctx context.Context, orderID, userID uint64) error
}

type Gateway struct {
	client *backend.Client
}

func NewOrderGateway(client *backend.Client) OrderGateway {
	return &Gateway{client: client}
}

func (g *Gateway) FetchByStatus(ctx context.Context, userID uint64, statusID constant.OrderStatus, page, pageSize int) (*model.OrderPage, error) {
	// No status means the caller wants the aggregate history listing.
	if statusID == "" {
		return g.fetchHistoryEndpoint(ctx, userID, page, pageSize)
	}
	return g.fetchStatusEndpoint(ctx, userID, string(statusID), page, pageSize)
}

func (g *Gateway) FetchHistory(ctx context.Context, userID uint64, statusFilter constant.OrderStatus, page, pageSize int) (*model.OrderPage, error) {
	if statusFilter != "" {
		backendStatus, ok := constant.BackendHistoryStatus[statusFilter]
		if !ok {
			return nil, errors.SetCustomErrorWithMessage(constant.ErrValidation,
				fmt.Sprintf("status %s is not a history status", statusFilter))
		}
		return g.fetchStatusEndpoint(ctx, userID, backendStatus, page, pageSize)
	}

	// "All" history spans two backend statuses that have no combined query:
	// fetch both concurrently and paginate the combined total here. Either
	// failure fails the whole call.
	var delivered, cancelled *model.OrderPage
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		p, err := g.fetchStatusEndpoint(egCtx, userID, constant.BackendStatusDelivered, page, pageSize)
		if err != nil {
			return err
		}
		delivered = p
		return nil
	})
	eg.Go(func() error {
		p, err := g.fetchStatusEndpoint(egCtx, userID, constant.BackendStatusCancelled, page, pageSize)
		if err != nil {
			return err
		}
		cancelled = p
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	total := delivered.Pagination.TotalItems + cancelled.Pagination.TotalItems
	combined := append(delivered.Orders, cancelled.Orders...)
	return &model.OrderPage{
		Orders: combined,
		Pagination: model.Pagination{
			CurrentPage: page,
			PageSize:    pageSize,
			TotalItems:  total,
			TotalPages:  ceilDiv(total, pageSize),
		},
	}, nil
}

func (g *Gateway) SearchByNameAndDate(ctx context.Context, userID uint64, params *model.OrderSearchParams, page, pageSize int) (*model.OrderPage, error) {
	// Fail fast on malformed or inverted date ranges before spending a
	// round trip on a request the backend will reject anyway.
	if err := validatorx.ValidateStruct(params); err != nil {
		return nil, errors.SetCustomErrorWithMessage(constant.ErrValidation, "dates must be yyyy-mm-dd")
	}
	if params.StartDate != "" && params.EndDate != "" {
		start, _ := time.Parse("2006-01-02", params.StartDate)
		end, _ := time.Parse("2006-01-02", params.EndDate)
		if start.After(end) {
			return nil, errors.SetCustomErrorWithMessage(constant.ErrValidation, "start date is after end date")
		}
	}

	q := url.Values{}
	q.Set("name", params.SearchTerm)
	q.Set("startDay", params.StartDate)
	q.Set("endDay", params.EndDate)
	q.Set("page", strconv.Itoa(page-1))
	q.Set("size", strconv.Itoa(pageSize))
	if params.Status != "" {
		q.Set("status", string(params.Status))
	}

	var raw backendOrderPage
	err := g.client.Get(ctx, fmt.Sprintf("/orders/find-Order-By-Name-And-Date/%d", userID), q, &raw)
	if err != nil {
		// No rows matched is a valid search outcome, not a failure.
		if errors.IsNotFound(err) {
			return emptyPage(page, pageSize), nil
		}
		return nil, err
	}
	return raw.toOrderPage(pageSize), nil
}

func (g *Gateway) GetByID(ctx context.Context, orderID uint64) (*model.Order, error) {
	var raw backendOrder
	if err := g.client.Get(ctx, fmt.Sprintf("/orders/get-order/%d", orderID), nil, &raw); err != nil {
		return nil, err
	}
	o := raw.toModel()
	return &o, nil
}

func (g *Gateway) ApplyVoucher(ctx context.Context, orderID, voucherID uint64) (*model.Order, error) {
	var raw backendOrder
	if err := g.client.Post(ctx, fmt.Sprintf("/orders/applyVoucher/%d/%d", orderID, voucherID), nil, &raw); err != nil {
		return nil, err
	}
	o := raw.toModel()
	return &o, nil
}

func (g *Gateway) CreateOrder(ctx context.Context, userID, addressID uint64) (*model.Order, error) {
	path := fmt.Sprintf("/orders/create/%d", userID)
	if addressID != 0 {
		path = fmt.Sprintf("/orders/create/%d/%d", userID, addressID)
	}
	var raw backendOrder
	if err := g.client.Post(ctx, path, nil, &raw); err != nil {
		return nil, err
	}
	o := raw.toModel()
	return &o, nil
}

func (g *Gateway) RequestCancel(ctx context.Context, orderID, userID uint64) error {
	body := map[string]uint64{"userId": userID}
	return g.client.Patch(ctx, fmt.Sprintf("/orders/request-cancel-order/%d", orderID), body, nil)
}

func (g *Gateway) fetchStatusEndpoint(ctx context.Context, userID uint64, status string, page, pageSize int) (*model.OrderPage, error) {
	q := url.Values{}
	q.Set("status", status)
	q.Set("page", strconv.Itoa(page-1))
	q.Set("size", strconv.Itoa(pageSize))

	var raw backendOrderPage
	if err := g.client.Get(ctx, fmt.Sprintf("/orders/order-user-status/%d", userID), q, &raw); err != nil {
		return nil, err
	}
	return raw.toOrderPage(pageSize), nil
}

func (g *Gateway) fetchHistoryEndpoint(ctx context.Context, userID uint64, page, pageSize int) (*model.OrderPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page-1))
	q.Set("size", strconv.Itoa(pageSize))

	var raw backendOrderPage
	if err := g.client.Get(ctx, fmt.Sprintf("/orders/history-order/%d", userID), q, &raw); err != nil {
		return nil, err
	}
	return raw.toOrderPage(pageSize), nil
}

func emptyPage(page, pageSize int) *model.OrderPage {
	return &model.OrderPage{
		Orders: []model.Order{},
		Pagination: model.Pagination{
			CurrentPage: page,
			PageSize:    pageSize,
		},
	}
}

func ceilDiv(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
