package payment_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	paymentapp "github.com/tanchung/sport-store/application/payment"
	"github.com/tanchung/sport-store/cmd/config"
	"github.com/tanchung/sport-store/constant"
	ordermocks "github.com/tanchung/sport-store/mocks/repository/order"
	paymentmocks "github.com/tanchung/sport-store/mocks/repository/payment"
	redismocks "github.com/tanchung/sport-store/mocks/repository/redis"
	"github.com/tanchung/sport-store/model"
	"github.com/tanchung/sport-store/utils/errors"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Payment.ReturnURL = "http://store.local/payment/return"
	cfg.Payment.CancelURL = "http://store.local/payment/return?cancel=true"
	return cfg
}

func TestPaymentApp_Reconcile_TerminalMapping(t *testing.T) {
	tests := []struct {
		name      string
		params    *model.PaymentReturnParams
		mockCall  func(paymentRepo *paymentmocks.PaymentGateway)
		wantState constant.PaymentState
	}{
		{
			name:      "payos paid",
			params:    &model.PaymentReturnParams{Ref: "SS-042", Code: "00", Status: "PAID", Cancel: "false"},
			wantState: constant.PaymentStateSuccess,
		},
		{
			name:      "payos cancelled flag",
			params:    &model.PaymentReturnParams{Ref: "SS-042", Cancel: "true"},
			wantState: constant.PaymentStateCancelled,
		},
		{
			name:      "payos cancelled status",
			params:    &model.PaymentReturnParams{Ref: "SS-042", Code: "00", Status: "CANCELLED"},
			wantState: constant.PaymentStateCancelled,
		},
		{
			name:      "payos failed",
			params:    &model.PaymentReturnParams{Ref: "SS-042", Code: "01", Status: "FAILED"},
			wantState: constant.PaymentStateFailed,
		},
		{
			name:   "paypal executed",
			params: &model.PaymentReturnParams{Ref: "SS-042", PaymentID: "PAY-1", PayerID: "PL-9"},
			mockCall: func(paymentRepo *paymentmocks.PaymentGateway) {
				paymentRepo.On("ExecutePayPalPayment", mock.Anything, "PAY-1", "PL-9").Return(nil).Once()
			},
			wantState: constant.PaymentStateSuccess,
		},
		{
			name:   "paypal execute rejected",
			params: &model.PaymentReturnParams{Ref: "SS-042", PaymentID: "PAY-1", PayerID: "PL-9"},
			mockCall: func(paymentRepo *paymentmocks.PaymentGateway) {
				paymentRepo.On("ExecutePayPalPayment", mock.Anything, "PAY-1", "PL-9").
					Return(errors.SetCustomErrorWithMessage(constant.ErrBackend, "instrument declined")).Once()
			},
			wantState: constant.PaymentStateFailed,
		},
		{
			name:      "paypal cancelled before approval",
			params:    &model.PaymentReturnParams{Ref: "SS-042", Status: "CANCELLED"},
			wantState: constant.PaymentStateCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderRepo := ordermocks.NewOrderGateway(t)
			paymentRepo := paymentmocks.NewPaymentGateway(t)
			redisRepo := redismocks.NewRepository(t)

			redisRepo.On("GetPendingPayment", mock.Anything, "SS-042").
				Return(&model.PaymentHandoff{UserID: 7, OrderID: 42, OrderCode: "SS-042", Method: constant.PaymentMethodPayOS}, nil).Once()
			// every terminal state clears the handoff
			redisRepo.On("ClearPendingPayment", mock.Anything, "SS-042").Return(nil).Once()

			if tt.mockCall != nil {
				tt.mockCall(paymentRepo)
			}

			app := paymentapp.NewPaymentApp(testConfig(), orderRepo, paymentRepo, redisRepo, nil)
			res, err := app.Reconcile(context.Background(), tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantState, res.State)
			assert.Equal(t, uint64(42), res.OrderID)
			assert.Equal(t, "SS-042", res.OrderCode)
		})
	}
}

func TestPaymentApp_Reconcile_RefreshAfterTerminalIsIdempotent(t *testing.T) {
	// The first pass cleared the handoff. A refresh of the return page
	// re-sends the same query; no provider call, no event, no clear.
	tests := []struct {
		name      string
		params    *model.PaymentReturnParams
		wantState constant.PaymentState
	}{
		{
			name:      "paypal success refresh",
			params:    &model.PaymentReturnParams{Ref: "SS-042", PaymentID: "PAY-1", PayerID: "PL-9"},
			wantState: constant.PaymentStateSuccess,
		},
		{
			name:      "payos success refresh",
			params:    &model.PaymentReturnParams{Ref: "SS-042", Code: "00", Status: "PAID"},
			wantState: constant.PaymentStateSuccess,
		},
		{
			name:      "cancel refresh",
			params:    &model.PaymentReturnParams{Ref: "SS-042", Cancel: "true"},
			wantState: constant.PaymentStateCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderRepo := ordermocks.NewOrderGateway(t)
			paymentRepo := paymentmocks.NewPaymentGateway(t)
			redisRepo := redismocks.NewRepository(t)

			redisRepo.On("GetPendingPayment", mock.Anything, "SS-042").Return(nil, nil).Once()

			app := paymentapp.NewPaymentApp(testConfig(), orderRepo, paymentRepo, redisRepo, nil)
			res, err := app.Reconcile(context.Background(), tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantState, res.State)
			assert.Equal(t, "SS-042", res.OrderCode)

			paymentRepo.AssertNotCalled(t, "ExecutePayPalPayment", mock.Anything, mock.Anything, mock.Anything)
			redisRepo.AssertNotCalled(t, "ClearPendingPayment", mock.Anything, mock.Anything)
		})
	}
}

func TestPaymentApp_Submit_CODIsImmediatelyTerminal(t *testing.T) {
	orderRepo := ordermocks.NewOrderGateway(t)
	paymentRepo := paymentmocks.NewPaymentGateway(t)
	redisRepo := redismocks.NewRepository(t)

	orderRepo.On("CreateOrder", mock.Anything, uint64(7), uint64(3)).
		Return(&model.Order{ID: 42, OrderCode: "SS-042"}, nil).Once()

	app := paymentapp.NewPaymentApp(testConfig(), orderRepo, paymentRepo, redisRepo, nil)
	res, err := app.Submit(context.Background(), 7, &model.CheckoutRequest{
		AddressID: 3,
		Method:    constant.PaymentMethodCOD,
	})
	require.NoError(t, err)
	assert.Equal(t, constant.PaymentStateSuccess, res.State)
	require.NotNil(t, res.Order)
	assert.Equal(t, uint64(42), res.Order.ID)
	// no external leg, no handoff
	redisRepo.AssertNotCalled(t, "SavePendingPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentApp_Submit_PayPalPersistsHandoff(t *testing.T) {
	orderRepo := ordermocks.NewOrderGateway(t)
	paymentRepo := paymentmocks.NewPaymentGateway(t)
	redisRepo := redismocks.NewRepository(t)

	orderRepo.On("CreateOrder", mock.Anything, uint64(7), uint64(0)).
		Return(&model.Order{ID: 42, OrderCode: "SS-042"}, nil).Once()
	// the redirect URLs must carry the order code so the unauthenticated
	// return can find the handoff
	paymentRepo.On("CreatePayPalPayment", mock.Anything, uint64(42),
		mock.MatchedBy(func(returnURL string) bool {
			return strings.Contains(returnURL, "ref=SS-042")
		}),
		mock.MatchedBy(func(cancelURL string) bool {
			return strings.Contains(cancelURL, "ref=SS-042") && strings.Contains(cancelURL, "cancel=true")
		})).
		Return(&model.PayPalPayment{PaymentID: "PAY-1", ApprovalURL: "https://paypal.test/approve"}, nil).Once()
	redisRepo.On("SavePendingPayment", mock.Anything, "SS-042", mock.MatchedBy(func(h *model.PaymentHandoff) bool {
		return h.UserID == 7 && h.OrderID == 42 && h.OrderCode == "SS-042" && h.Method == constant.PaymentMethodPayPal
	}), mock.Anything).Return(nil).Once()

	app := paymentapp.NewPaymentApp(testConfig(), orderRepo, paymentRepo, redisRepo, nil)
	res, err := app.Submit(context.Background(), 7, &model.CheckoutRequest{Method: constant.PaymentMethodPayPal})
	require.NoError(t, err)
	assert.Equal(t, constant.PaymentStateProcessing, res.State)
	assert.Equal(t, "https://paypal.test/approve", res.RedirectURL)
}

func TestPaymentApp_Submit_AppliesVoucherBeforeBranching(t *testing.T) {
	orderRepo := ordermocks.NewOrderGateway(t)
	paymentRepo := paymentmocks.NewPaymentGateway(t)
	redisRepo := redismocks.NewRepository(t)

	orderRepo.On("CreateOrder", mock.Anything, uint64(7), uint64(0)).
		Return(&model.Order{ID: 42, OrderCode: "SS-042"}, nil).Once()
	orderRepo.On("ApplyVoucher", mock.Anything, uint64(42), uint64(5)).
		Return(&model.Order{ID: 42, OrderCode: "SS-042"}, nil).Once()
	paymentRepo.On("CreatePayOSLink", mock.Anything, uint64(42), mock.Anything, mock.Anything).
		Return(&model.PayOSLink{LinkID: "L1", CheckoutURL: "https://payos.test/checkout"}, nil).Once()
	redisRepo.On("SavePendingPayment", mock.Anything, "SS-042", mock.Anything, mock.Anything).Return(nil).Once()

	app := paymentapp.NewPaymentApp(testConfig(), orderRepo, paymentRepo, redisRepo, nil)
	res, err := app.Submit(context.Background(), 7, &model.CheckoutRequest{
		Method:    constant.PaymentMethodPayOS,
		VoucherID: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, constant.PaymentStateProcessing, res.State)
	assert.Equal(t, "https://payos.test/checkout", res.RedirectURL)
}

func TestPaymentApp_Submit_CreateFailureIsRetryable(t *testing.T) {
	orderRepo := ordermocks.NewOrderGateway(t)
	paymentRepo := paymentmocks.NewPaymentGateway(t)
	redisRepo := redismocks.NewRepository(t)

	orderRepo.On("CreateOrder", mock.Anything, uint64(7), uint64(0)).
		Return(nil, errors.SetCustomError(constant.ErrBackendUnreachable)).Once()

	app := paymentapp.NewPaymentApp(testConfig(), orderRepo, paymentRepo, redisRepo, nil)
	_, err := app.Submit(context.Background(), 7, &model.CheckoutRequest{Method: constant.PaymentMethodCOD})
	require.Error(t, err)
	// nothing persisted: the caller stays on the form and may retry
	redisRepo.AssertNotCalled(t, "SavePendingPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
