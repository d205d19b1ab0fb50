package payment

import (
	"context"
	"net/url"
	"time"

	"github.com/tanchung/sport-store/cmd/config"
	"github.com/tanchung/sport-store/constant"
	"github.com/tanchung/sport-store/model"
	orderrepo "github.com/tanchung/sport-store/repository/order"
	paymentrepo "github.com/tanchung/sport-store/repository/payment"
	redisrepo "github.com/tanchung/sport-store/repository/redis"
	"github.com/tanchung/sport-store/thirdparty/rabbitmq"
	"github.com/tanchung/sport-store/utils/errors"
	"github.com/tanchung/sport-store/utils/logger"
	"go.uber.org/zap"
)

// PaymentApp runs the checkout reconciliation flow. Submit is the FORM →
// PROCESSING edge; Reconcile interprets the provider's redirect-back and
// produces the terminal state. Errors during Submit leave the caller on the
// form, retryable: only explicit provider responses are terminal.
//
// Reconcile is unauthenticated: the redirect is a plain browser navigation
// with no session header, so the user is resolved from the handoff record
// keyed by the ref parameter stamped into the redirect URLs at submit time.
type PaymentApp interface {
	Submit(ctx context.Context, userID uint64, req *model.CheckoutRequest) (*model.CheckoutResult, error)
	Reconcile(ctx context.Context, params *model.PaymentReturnParams) (*model.ReconcileResult, error)
}

type paymentAppImpl struct {
	config      *config.Config
	orderRepo   orderrepo.OrderGateway
	paymentRepo paymentrepo.PaymentGateway
	redisRepo   redisrepo.Repository
	publisher   *rabbitmq.Publisher
}

func NewPaymentApp(config *config.Config, orderRepo orderrepo.OrderGateway, paymentRepo paymentrepo.PaymentGateway, redisRepo redisrepo.Repository, publisher *rabbitmq.Publisher) PaymentApp {
	return &paymentAppImpl{
		config:      config,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		redisRepo:   redisRepo,
		publisher:   publisher,
	}
}

func (s *paymentAppImpl) Submit(ctx context.Context, userID uint64, req *model.CheckoutRequest) (*model.CheckoutResult, error) {
	order, err := s.orderRepo.CreateOrder(ctx, userID, req.AddressID)
	if err != nil {
		logger.Error("[Submit] create order", zap.Uint64("user_id", userID), zap.String("error", err.Error()))
		return nil, err
	}

	if req.VoucherID != 0 {
		order, err = s.orderRepo.ApplyVoucher(ctx, order.ID, req.VoucherID)
		if err != nil {
			logger.Error("[Submit] apply voucher", zap.Uint64("order_id", order.ID), zap.String("error", err.Error()))
			return nil, err
		}
	}

	// Both URLs carry the order code so the redirect-back, which arrives
	// without a session, can find its handoff.
	returnURL := withRef(s.config.Payment.ReturnURL, order.OrderCode)
	cancelURL := withRef(s.config.Payment.CancelURL, order.OrderCode)

	switch req.Method {
	case constant.PaymentMethodCOD:
		// COD has no external leg; order creation is the whole payment.
		s.publishReconciled(userID, order.ID, order.OrderCode, req.Method, constant.PaymentStateSuccess)
		return &model.CheckoutResult{
			State: constant.PaymentStateSuccess,
			Order: order,
		}, nil

	case constant.PaymentMethodPayPal:
		payment, err := s.paymentRepo.CreatePayPalPayment(ctx, order.ID, returnURL, cancelURL)
		if err != nil {
			logger.Error("[Submit] create paypal payment", zap.Uint64("order_id", order.ID), zap.String("error", err.Error()))
			return nil, err
		}
		if err := s.saveHandoff(ctx, userID, order, req.Method); err != nil {
			return nil, err
		}
		return &model.CheckoutResult{
			State:       constant.PaymentStateProcessing,
			Order:       order,
			RedirectURL: payment.ApprovalURL,
		}, nil

	case constant.PaymentMethodPayOS:
		link, err := s.paymentRepo.CreatePayOSLink(ctx, order.ID, returnURL, cancelURL)
		if err != nil {
			logger.Error("[Submit] create payos link", zap.Uint64("order_id", order.ID), zap.String("error", err.Error()))
			return nil, err
		}
		if err := s.saveHandoff(ctx, userID, order, req.Method); err != nil {
			return nil, err
		}
		return &model.CheckoutResult{
			State:       constant.PaymentStateProcessing,
			Order:       order,
			RedirectURL: link.CheckoutURL,
		}, nil

	default:
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
}

// Reconcile maps the provider redirect parameters onto a terminal state.
// Branching follows which parameters are present: PayPal redirects carry
// paymentId/PayerID, PayOS redirects carry code/status/cancel.
//
// The handoff record is the liveness guard: it exists for exactly one pass.
// Once a terminal state clears it, a refresh of the return page re-sends the
// same query string but finds no handoff, and the parameters are mapped
// without provider calls or event publishes.
func (s *paymentAppImpl) Reconcile(ctx context.Context, params *model.PaymentReturnParams) (*model.ReconcileResult, error) {
	var handoff *model.PaymentHandoff
	if params.Ref != "" {
		h, err := s.redisRepo.GetPendingPayment(ctx, params.Ref)
		if err != nil {
			logger.Error("[Reconcile] load handoff", zap.String("ref", params.Ref), zap.String("error", err.Error()))
		}
		handoff = h
	}

	result := &model.ReconcileResult{}
	if handoff == nil {
		result.State = stateFromReturnParams(params)
		result.OrderCode = params.Ref
		return result, nil
	}

	result.OrderID = handoff.OrderID
	result.OrderCode = handoff.OrderCode

	switch {
	case params.PaymentID != "" && params.PayerID != "":
		// PayPal approval came back: run the execute step.
		if err := s.paymentRepo.ExecutePayPalPayment(ctx, params.PaymentID, params.PayerID); err != nil {
			logger.Error("[Reconcile] execute paypal payment", zap.String("payment_id", params.PaymentID), zap.String("error", err.Error()))
			result.State = constant.PaymentStateFailed
			result.Message = err.Error()
		} else {
			result.State = constant.PaymentStateSuccess
		}

	case params.Status == string(constant.PaymentStateCancelled) && params.PaymentID == "" && params.Code == "":
		// PayPal cancel: the buyer backed out before approving.
		result.State = constant.PaymentStateCancelled

	case params.Cancel == "true" || params.Status == string(constant.PaymentStateCancelled):
		result.State = constant.PaymentStateCancelled

	case params.Code == constant.PayOSCodeSuccess && params.Status == constant.PayOSStatusPaid:
		result.State = constant.PaymentStateSuccess

	default:
		result.State = constant.PaymentStateFailed
	}

	// Terminal states clear the handoff so a refresh of the return page
	// does not re-trigger reconciliation.
	if err := s.redisRepo.ClearPendingPayment(ctx, handoff.OrderCode); err != nil {
		logger.Error("[Reconcile] clear handoff", zap.String("order_code", handoff.OrderCode), zap.String("error", err.Error()))
	}

	s.publishReconciled(handoff.UserID, result.OrderID, result.OrderCode, handoff.Method, result.State)

	return result, nil
}

// stateFromReturnParams maps redirect parameters to a terminal state without
// side effects: the already-reconciled view a page refresh gets.
func stateFromReturnParams(params *model.PaymentReturnParams) constant.PaymentState {
	switch {
	case params.Cancel == "true" || params.Status == string(constant.PaymentStateCancelled):
		return constant.PaymentStateCancelled
	case params.PaymentID != "" && params.PayerID != "":
		return constant.PaymentStateSuccess
	case params.Code == constant.PayOSCodeSuccess && params.Status == constant.PayOSStatusPaid:
		return constant.PaymentStateSuccess
	default:
		return constant.PaymentStateFailed
	}
}

// withRef adds the order code to a redirect URL, preserving any query the
// configured URL already carries.
func withRef(base, orderCode string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("ref", orderCode)
	u.RawQuery = q.Encode()
	return u.String()
}

func (s *paymentAppImpl) saveHandoff(ctx context.Context, userID uint64, order *model.Order, method constant.PaymentMethod) error {
	handoff := &model.PaymentHandoff{
		UserID:    userID,
		OrderID:   order.ID,
		OrderCode: order.OrderCode,
		Method:    method,
	}
	if err := s.redisRepo.SavePendingPayment(ctx, order.OrderCode, handoff, s.config.Payment.HandoffTTL); err != nil {
		logger.Error("[Submit] save handoff", zap.Uint64("order_id", order.ID), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *paymentAppImpl) publishReconciled(userID, orderID uint64, orderCode string, method constant.PaymentMethod, state constant.PaymentState) {
	if s.publisher == nil {
		return
	}
	msg := rabbitmq.PaymentReconciledMessage{
		OrderID:      orderID,
		OrderCode:    orderCode,
		UserID:       userID,
		Method:       string(method),
		State:        string(state),
		ReconciledAt: time.Now(),
	}
	if err := s.publisher.PublishPaymentReconciled(msg); err != nil {
		logger.Error("[publishReconciled] publish", zap.Uint64("order_id", orderID), zap.String("error", err.Error()))
	}
}
