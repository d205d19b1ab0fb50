package transport

import (
	"encoding/json"
	"net/http"

	"github.com/tanchung/sport-store/constant"
	"github.com/tanchung/sport-store/model"
	utilsContext "github.com/tanchung/sport-store/utils/context"
	"github.com/tanchung/sport-store/utils/errors"
	validatorx "github.com/tanchung/sport-store/utils/validator"
)

// Checkout handler
// @Summary Submit the payment form
// @Description Creates the order and either completes payment (COD) or returns a provider redirect URL
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body model.CheckoutRequest true "Checkout Request"
// @Success 200 {object} model.CheckoutResult
// @Failure 400 {object} errors.CustomError
// @Router /checkout [post]
func (s *RestHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.PaymentApp.Submit(r.Context(), userID, &req)
	if err != nil {
		// Submission errors are retryable: the caller stays on the form.
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// PaymentReturn handler. Public: the provider redirect is a plain browser
// navigation with no Authorization header; the user is resolved from the
// handoff record behind the ref parameter.
// @Summary Reconcile a payment-provider redirect
// @Description Maps redirect query parameters onto a terminal payment state
// @Tags Payment
// @Produce json
// @Success 200 {object} model.ReconcileResult
// @Router /payment/return [get]
func (s *RestHandler) PaymentReturn(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := &model.PaymentReturnParams{
		Ref:       q.Get("ref"),
		PaymentID: q.Get("paymentId"),
		PayerID:   q.Get("PayerID"),
		Token:     q.Get("token"),
		OrderID:   q.Get("orderId"),
		Code:      q.Get("code"),
		LinkID:    q.Get("id"),
		OrderCode: q.Get("orderCode"),
		Status:    q.Get("status"),
		Cancel:    q.Get("cancel"),
	}

	res, err := s.PaymentApp.Reconcile(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}
