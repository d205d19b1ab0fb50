package payment

import (
	"context"
	"fmt"

	"github.com/tanchung/sport-store/model"
	"github.com/tanchung/sport-store/repository/backend"
)

// PaymentGateway wraps the backend's payment-provider endpoints. The
// providers themselves are reached by the buyer's browser; this side only
// creates payments and executes PayPal's second step.
type PaymentGateway interface {
	CreatePayPalPayment(ctx context.Context, orderID uint64, returnURL, cancelURL string) (*model.PayPalPayment, error)
	ExecutePayPalPayment(ctx context.Context, paymentID, payerID string) error
	CreatePayOSLink(ctx context.Context, orderID uint64, returnURL, cancelURL string) (*model.PayOSLink, error)
}

type Gateway struct {
	client *backend.Client
}

func NewPaymentGateway(client *backend.Client) PaymentGateway {
	return &Gateway{client: client}
}

type createPaymentRequest struct {
	ReturnURL string `json:"returnUrl"`
	CancelURL string `json:"cancelUrl"`
}

type executePaymentRequest struct {
	PaymentID string `json:"paymentId"`
	PayerID   string `json:"payerId"`
}

func (g *Gateway) CreatePayPalPayment(ctx context.Context, orderID uint64, returnURL, cancelURL string) (*model.PayPalPayment, error) {
	var out struct {
		PaymentID   string `json:"paymentId"`
		ApprovalURL string `json:"approvalUrl"`
	}
	req := createPaymentRequest{ReturnURL: returnURL, CancelURL: cancelURL}
	if err := g.client.Post(ctx, fmt.Sprintf("/payments/paypal/create/%d", orderID), req, &out); err != nil {
		return nil, err
	}
	return &model.PayPalPayment{PaymentID: out.PaymentID, ApprovalURL: out.ApprovalURL}, nil
}

func (g *Gateway) ExecutePayPalPayment(ctx context.Context, paymentID, payerID string) error {
	req := executePaymentRequest{PaymentID: paymentID, PayerID: payerID}
	return g.client.Post(ctx, "/payments/paypal/execute", req, nil)
}

func (g *Gateway) CreatePayOSLink(ctx context.Context, orderID uint64, returnURL, cancelURL string) (*model.PayOSLink, error) {
	var out struct {
		LinkID      string `json:"id"`
		CheckoutURL string `json:"checkoutUrl"`
	}
	req := createPaymentRequest{ReturnURL: returnURL, CancelURL: cancelURL}
	if err := g.client.Post(ctx, fmt.Sprintf("/payments/payos/create/%d", orderID), req, &out); err != nil {
		return nil, err
	}
	return &model.PayOSLink{LinkID: out.LinkID, CheckoutURL: out.CheckoutURL}, nil
}
