package order_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanchung/sport-store/cmd/config"
	"github.com/tanchung/sport-store/constant"
	"github.com/tanchung/sport-store/model"
	"github.com/tanchung/sport-store/repository/backend"
	orderrepo "github.com/tanchung/sport-store/repository/order"
)

type stubTokenSource struct{}

func (stubTokenSource) Token(ctx context.Context) (string, error) {
	return "test-token", nil
}

func (stubTokenSource) Refresh(ctx context.Context, stale string) (string, error) {
	return "test-token", nil
}

func newTestGateway(t *testing.T, handler http.Handler) orderrepo.OrderGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Backend.BaseURL = srv.URL
	cfg.Backend.Timeout = 5 * time.Second

	client := backend.NewClient(cfg)
	client.SetTokenSource(stubTokenSource{})
	return orderrepo.NewOrderGateway(client)
}

func writePage(w http.ResponseWriter, orders []map[string]any, size, number int, totalElements int64, totalPages int) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code":    200,
		"message": "success",
		"result": map[string]any{
			"content": orders,
			"page": map[string]any{
				"size":          size,
				"number":        number,
				"totalElements": totalElements,
				"totalPages":    totalPages,
			},
		},
	})
}

func TestOrderGateway_FetchByStatus_PageConversion(t *testing.T) {
	// UI page 2 with size 5 must hit the backend as page=1 and the
	// backend's number=1 must come back as CurrentPage=2.
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/order-user-status/7", r.URL.Path)
		assert.Equal(t, "PENDING", r.URL.Query().Get("status"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("size"))
		writePage(w, nil, 5, 1, 12, 3)
	}))

	page, err := gw.FetchByStatus(context.Background(), 7, constant.OrderStatusPending, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Pagination.CurrentPage)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, int64(12), page.Pagination.TotalItems)
	assert.Equal(t, 5, page.Pagination.PageSize)
}

func TestOrderGateway_FetchByStatus_NormalizesFieldVariants(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writePage(w, []map[string]any{
			{"id": 1, "statusId": "PENDING", "orderCode": "SS-001"},
			{"orderId": 2, "status": "PENDING", "orderCode": "SS-002"},
			{"orderID": 3, "oderStatus": "PENDING", "orderCode": "SS-003"},
			{"id": 4, "status": "DELIVERED", "orderCode": "SS-004"},
		}, 10, 0, 4, 1)
	}))

	page, err := gw.FetchByStatus(context.Background(), 7, constant.OrderStatusPending, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Orders, 4)

	for i, want := range []uint64{1, 2, 3, 4} {
		assert.Equal(t, want, page.Orders[i].ID)
	}
	assert.Equal(t, constant.OrderStatusPending, page.Orders[0].StatusID)
	assert.Equal(t, constant.OrderStatusPending, page.Orders[1].StatusID)
	assert.Equal(t, constant.OrderStatusPending, page.Orders[2].StatusID)
	// the backend's DELIVERED label surfaces as COMPLETED
	assert.Equal(t, constant.OrderStatusCompleted, page.Orders[3].StatusID)
}

func TestOrderGateway_FetchHistory_CombinesBothStatuses(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("status") {
		case constant.BackendStatusDelivered:
			writePage(w, []map[string]any{
				{"id": 1, "status": "DELIVERED"},
				{"id": 2, "status": "DELIVERED"},
			}, 5, 0, 7, 2)
		case constant.BackendStatusCancelled:
			writePage(w, []map[string]any{
				{"id": 3, "status": "CANCELLED"},
			}, 5, 0, 3, 1)
		default:
			t.Errorf("unexpected status %q", r.URL.Query().Get("status"))
		}
	}))

	page, err := gw.FetchHistory(context.Background(), 7, "", 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(10), page.Pagination.TotalItems)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.Len(t, page.Orders, 3)
}

func TestOrderGateway_FetchHistory_SingleStatusFilter(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, constant.BackendStatusDelivered, r.URL.Query().Get("status"))
		writePage(w, []map[string]any{{"id": 9, "status": "DELIVERED"}}, 5, 0, 1, 1)
	}))

	page, err := gw.FetchHistory(context.Background(), 7, constant.OrderStatusCompleted, 1, 5)
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, constant.OrderStatusCompleted, page.Orders[0].StatusID)
}

func TestOrderGateway_FetchHistory_EitherFailureFailsAll(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("status") == constant.BackendStatusCancelled {
			_ = json.NewEncoder(w).Encode(map[string]any{"code": 500, "message": "boom"})
			return
		}
		writePage(w, nil, 5, 0, 7, 2)
	}))

	_, err := gw.FetchHistory(context.Background(), 7, "", 1, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestOrderGateway_Search_RejectsInvertedDates(t *testing.T) {
	var hits atomic.Int32
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))

	_, err := gw.SearchByNameAndDate(context.Background(), 7, &model.OrderSearchParams{
		SearchTerm: "jersey",
		StartDate:  "2024-05-10",
		EndDate:    "2024-05-01",
	}, 1, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start date is after end date")
	assert.Equal(t, int32(0), hits.Load(), "validation must fail before any HTTP call")
}

func TestOrderGateway_Search_RejectsMalformedDates(t *testing.T) {
	var hits atomic.Int32
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))

	_, err := gw.SearchByNameAndDate(context.Background(), 7, &model.OrderSearchParams{
		StartDate: "10/05/2024",
	}, 1, 5)
	require.Error(t, err)
	assert.Equal(t, int32(0), hits.Load())
}

func TestOrderGateway_Search_NotFoundIsEmptyResult(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	page, err := gw.SearchByNameAndDate(context.Background(), 7, &model.OrderSearchParams{
		SearchTerm: "no such order",
	}, 1, 5)
	require.NoError(t, err, "404 on search is a valid empty outcome, not a failure")
	assert.Empty(t, page.Orders)
	assert.Equal(t, 1, page.Pagination.CurrentPage)
}

func TestOrderGateway_Search_SendsConvertedPage(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/find-Order-By-Name-And-Date/7", r.URL.Path)
		assert.Equal(t, "jersey", r.URL.Query().Get("name"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		writePage(w, nil, 5, 2, 20, 4)
	}))

	page, err := gw.SearchByNameAndDate(context.Background(), 7, &model.OrderSearchParams{
		SearchTerm: "jersey",
	}, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Pagination.CurrentPage)
}

func TestOrderGateway_RequestCancel_CarriesBackendMessage(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/orders/request-cancel-order/42", r.URL.Path)

		var body map[string]uint64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, uint64(7), body["userId"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"code":    400,
			"message": "order already shipped",
		})
	}))

	err := gw.RequestCancel(context.Background(), 42, 7)
	require.Error(t, err)
	assert.Equal(t, "order already shipped", err.Error())
}

func TestOrderGateway_CreateOrder_AddressVariants(t *testing.T) {
	var gotPath string
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code":    200,
			"message": "success",
			"result":  map[string]any{"id": 10, "orderCode": "SS-010", "status": "PENDING"},
		})
	}))

	order, err := gw.CreateOrder(context.Background(), 7, 0)
	require.NoError(t, err)
	assert.Equal(t, "/orders/create/7", gotPath)
	assert.Equal(t, uint64(10), order.ID)

	_, err = gw.CreateOrder(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, "/orders/create/7/3", gotPath)
}

func TestOrderGateway_FetchByStatus_EmptyStatusUsesHistoryEndpoint(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, fmt.Sprintf("/orders/history-order/%d", 7), r.URL.Path)
		writePage(w, nil, 5, 0, 0, 0)
	}))

	_, err := gw.FetchByStatus(context.Background(), 7, "", 1, 5)
	require.NoError(t, err)
}
