package orderstate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tanchung/sport-store/application/orderstate"
	"github.com/tanchung/sport-store/constant"
	ordermocks "github.com/tanchung/sport-store/mocks/repository/order"
	"github.com/tanchung/sport-store/model"
	"github.com/tanchung/sport-store/utils/errors"
)

func pageOf(ids ...uint64) *model.OrderPage {
	orders := make([]model.Order, 0, len(ids))
	for _, id := range ids {
		orders = append(orders, model.Order{ID: id})
	}
	return &model.OrderPage{
		Orders: orders,
		Pagination: model.Pagination{
			CurrentPage: 1,
			PageSize:    5,
			TotalItems:  int64(len(ids)),
			TotalPages:  1,
		},
	}
}

func TestCoordinator_UpdateFiltersResetsPage(t *testing.T) {
	gateway := ordermocks.NewOrderGateway(t)
	c := orderstate.NewCoordinator(7, gateway, nil)

	gateway.On("FetchHistory", mock.Anything, uint64(7), constant.OrderStatus(""), 3, 5).
		Return(&model.OrderPage{
			Orders:     []model.Order{{ID: 1}},
			Pagination: model.Pagination{CurrentPage: 3, PageSize: 5, TotalItems: 20, TotalPages: 4},
		}, nil).Once()

	require.NoError(t, c.ChangePage(context.Background(), constant.OrderStatusHistory, 3))

	snap, err := c.List(constant.OrderStatusHistory)
	require.NoError(t, err)
	require.Equal(t, 3, snap.Pagination.CurrentPage)

	status := constant.OrderStatusCancelled
	require.NoError(t, c.UpdateFilters(constant.OrderStatusHistory, &model.OrderFilterPatch{StatusID: &status}))

	snap, err = c.List(constant.OrderStatusHistory)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Pagination.CurrentPage, "any filter change resets the page")
	assert.Equal(t, constant.OrderStatusCancelled, snap.Filters.StatusID)
	// no fetch expectation beyond the first: filter updates never auto-fetch
}

func TestCoordinator_FetchErrorEmptiesOrders(t *testing.T) {
	gateway := ordermocks.NewOrderGateway(t)
	c := orderstate.NewCoordinator(7, gateway, nil)

	gateway.On("FetchByStatus", mock.Anything, uint64(7), constant.OrderStatusShipping, 1, 5).
		Return(pageOf(1, 2), nil).Once()
	require.NoError(t, c.Fetch(context.Background(), constant.OrderStatusShipping))

	snap, _ := c.List(constant.OrderStatusShipping)
	require.Len(t, snap.Orders, 2)

	gateway.On("FetchByStatus", mock.Anything, uint64(7), constant.OrderStatusShipping, 1, 5).
		Return(nil, errors.SetCustomErrorWithMessage(constant.ErrBackend, "down")).Once()
	require.Error(t, c.Fetch(context.Background(), constant.OrderStatusShipping))

	snap, _ = c.List(constant.OrderStatusShipping)
	assert.Empty(t, snap.Orders, "stale orders must not survive next to an error")
	assert.Equal(t, "down", snap.Error)
}

func TestCoordinator_CancelOrderRefetchesAllBuckets(t *testing.T) {
	gateway := ordermocks.NewOrderGateway(t)
	c := orderstate.NewCoordinator(7, gateway, nil)

	gateway.On("RequestCancel", mock.Anything, uint64(42), uint64(7)).Return(nil).Once()
	// five status buckets plus the history bucket, exactly once each
	gateway.On("FetchByStatus", mock.Anything, uint64(7), mock.Anything, 1, 5).
		Return(pageOf(), nil).Times(5)
	gateway.On("FetchHistory", mock.Anything, uint64(7), constant.OrderStatus(""), 1, 5).
		Return(pageOf(), nil).Once()

	require.NoError(t, c.CancelOrder(context.Background(), 42))
}

func TestCoordinator_CancelOrderFailureTouchesNothing(t *testing.T) {
	gateway := ordermocks.NewOrderGateway(t)
	c := orderstate.NewCoordinator(7, gateway, nil)

	gateway.On("RequestCancel", mock.Anything, uint64(42), uint64(7)).
		Return(errors.SetCustomErrorWithMessage(constant.ErrBackend, "cannot cancel")).Once()

	err := c.CancelOrder(context.Background(), 42)
	require.Error(t, err)
	gateway.AssertNotCalled(t, "FetchByStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	gateway.AssertNotCalled(t, "FetchHistory", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCoordinator_HistoryBucketUsesFilterStatus(t *testing.T) {
	gateway := ordermocks.NewOrderGateway(t)
	c := orderstate.NewCoordinator(7, gateway, nil)

	status := constant.OrderStatusCompleted
	require.NoError(t, c.UpdateFilters(constant.OrderStatusHistory, &model.OrderFilterPatch{StatusID: &status}))

	gateway.On("FetchHistory", mock.Anything, uint64(7), constant.OrderStatusCompleted, 1, 5).
		Return(pageOf(9), nil).Once()
	require.NoError(t, c.Fetch(context.Background(), constant.OrderStatusHistory))
}

func TestCoordinator_UnknownBucketRejected(t *testing.T) {
	gateway := ordermocks.NewOrderGateway(t)
	c := orderstate.NewCoordinator(7, gateway, nil)

	err := c.Fetch(context.Background(), constant.OrderStatus("NOPE"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, constant.ErrInvalidRequest))
}

func TestCoordinator_RefreshAllFetchesEveryBucketOnce(t *testing.T) {
	gateway := ordermocks.NewOrderGateway(t)
	c := orderstate.NewCoordinator(7, gateway, nil)

	gateway.On("FetchByStatus", mock.Anything, uint64(7), mock.Anything, 1, 5).
		Return(pageOf(), nil).Times(5)
	gateway.On("FetchHistory", mock.Anything, uint64(7), constant.OrderStatus(""), 1, 5).
		Return(pageOf(), nil).Once()

	c.RefreshAll(context.Background())
}
