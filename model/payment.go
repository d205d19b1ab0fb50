package model

import (
	"github.com/tanchung/sport-store/constant"
)

// PaymentHandoff is the small record that must survive the redirect to an
// external payment provider and back. Keyed by order code, TTL-bounded; the
// provider redirect is an unauthenticated browser navigation, so the record
// carries the user it belongs to.
type PaymentHandoff struct {
	UserID    uint64                 `json:"user_id"`
	OrderID   uint64                 `json:"order_id"`
	OrderCode string                 `json:"order_code"`
	Method    constant.PaymentMethod `json:"method"`
}

// CheckoutRequest is the payment form submission.
type CheckoutRequest struct {
	AddressID uint64                 `json:"address_id,omitempty"`
	VoucherID uint64                 `json:"voucher_id,omitempty"`
	Method    constant.PaymentMethod `json:"method" validate:"required,oneof=COD PAYPAL PAYOS"`
}

// CheckoutResult is what the payment page renders after a submission:
// either a terminal state (COD) or a provider redirect to follow.
type CheckoutResult struct {
	State       constant.PaymentState `json:"state"`
	Order       *Order                `json:"order,omitempty"`
	RedirectURL string                `json:"redirect_url,omitempty"`
}

// PaymentReturnParams are the query parameters a provider redirect carries
// back. PayPal uses paymentId/PayerID/token; PayOS uses code/id/orderCode.
// status and cancel are shared. ref is our own: the order code embedded in
// the return and cancel URLs at submit time, echoed back by every provider,
// and used to look the handoff up.
type PaymentReturnParams struct {
	Ref       string `json:"ref"`
	PaymentID string `json:"paymentId"`
	PayerID   string `json:"PayerID"`
	Token     string `json:"token"`
	OrderID   string `json:"orderId"`
	Code      string `json:"code"`
	LinkID    string `json:"id"`
	OrderCode string `json:"orderCode"`
	Status    string `json:"status"`
	Cancel    string `json:"cancel"`
}

// ReconcileResult is the terminal outcome of a redirect-back.
type ReconcileResult struct {
	State     constant.PaymentState `json:"state"`
	OrderID   uint64                `json:"order_id,omitempty"`
	OrderCode string                `json:"order_code,omitempty"`
	Message   string                `json:"message,omitempty"`
}

// PayPalPayment is the provider-side payment created before redirecting.
type PayPalPayment struct {
	PaymentID   string `json:"payment_id"`
	ApprovalURL string `json:"approval_url"`
}

// PayOSLink is the provider checkout link created before redirecting.
type PayOSLink struct {
	LinkID      string `json:"link_id"`
	CheckoutURL string `json:"checkout_url"`
}
