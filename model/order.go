package model

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tanchung/sport-store/constant"
)

// Order is the canonical order shape after the gateway normalizes the
// backend's field variants. Read-only on this side except for the cancel
// request transition.
type Order struct {
	ID                uint64                 `json:"id"`
	OrderCode         string                 `json:"order_code"`
	OrderDate         time.Time              `json:"order_date"`
	StatusID          constant.OrderStatus   `json:"status_id"`
	TotalAmount       decimal.Decimal        `json:"total_amount"`
	ShippingFee       decimal.Decimal        `json:"shipping_fee"`
	ShippingAddress   string                 `json:"shipping_address"`
	PaymentMethod     constant.PaymentMethod `json:"payment_method"`
	PaymentMethodName string                 `json:"payment_method_name"`
	Notes             string                 `json:"notes,omitempty"`
	Items             []OrderItem            `json:"items"`
	AppliedVouchers   []AppliedVoucher       `json:"applied_vouchers,omitempty"`
	DiscountApplied   decimal.Decimal        `json:"discount_applied"`
}

type OrderItem struct {
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	ProductImage string          `json:"product_image,omitempty"`
}

type AppliedVoucher struct {
	VoucherID uint64          `json:"voucher_id"`
	Code      string          `json:"code"`
	Discount  decimal.Decimal `json:"discount"`
}

// Pagination is the 1-based, UI-facing paging state. TotalItems and
// TotalPages come from the backend and are never recomputed here, except
// for the history view whose combined total has no backend counterpart.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}

func (p Pagination) HasPrevious() bool {
	return p.CurrentPage > 1
}

func (p Pagination) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// OrderPage is one page of normalized orders with its paging state.
type OrderPage struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// OrderFilters is the per-bucket listing filter set. The backend listing
// endpoints refine only by status (the history bucket's DELIVERED/CANCELLED
// narrowing); term and date refinement go through the search endpoint
// instead. Changing any field resets the bucket's page to 1.
type OrderFilters struct {
	StatusID constant.OrderStatus `json:"status_id"`
}

// OrderFilterPatch is a partial filter update; nil fields are left as-is.
type OrderFilterPatch struct {
	StatusID *constant.OrderStatus `json:"status_id,omitempty"`
}

// Apply merges the patch into f.
func (p *OrderFilterPatch) Apply(f *OrderFilters) {
	if p.StatusID != nil {
		f.StatusID = *p.StatusID
	}
}

// OrderSearchParams is the search endpoint's parameter record. It is
// intentionally simpler than OrderFilters: search is a different backend
// endpoint with a different contract.
type OrderSearchParams struct {
	SearchTerm string               `json:"search_term"`
	StartDate  string               `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string               `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Status     constant.OrderStatus `json:"status,omitempty"`
}

// IsEmpty reports whether the params carry neither a term nor a date range.
// An empty search is rejected before any network call.
func (p *OrderSearchParams) IsEmpty() bool {
	return p.SearchTerm == "" && p.StartDate == "" && p.EndDate == ""
}

type CancelOrderRequest struct {
	OrderID uint64 `json:"order_id" validate:"required"`
}
