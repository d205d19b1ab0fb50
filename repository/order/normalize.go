package order

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tanchung/sport-store/constant"
	"github.com/tanchung/sport-store/model"
)

// backendOrder tolerates the backend's heterogeneous field names. Older
// endpoints spell the id three ways and the status field carries a historic
// typo ("oderStatus"); normalization picks the first populated variant.
type backendOrder struct {
	ID      uint64 `json:"id"`
	OrderId uint64 `json:"orderId"`
	OrderID uint64 `json:"orderID"`

	OderStatus string `json:"oderStatus"`
	Status     string `json:"status"`
	StatusID   string `json:"statusId"`

	OrderCode         string          `json:"orderCode"`
	OrderDate         string          `json:"orderDate"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	ShippingFee       decimal.Decimal `json:"shippingFee"`
	ShippingAddress   string          `json:"shippingAddress"`
	PaymentMethod     string          `json:"paymentMethod"`
	PaymentMethodName string          `json:"paymentMethodName"`
	Notes             string          `json:"notes"`
	DiscountApplied   decimal.Decimal `json:"discountApplied"`

	OrderDetails []backendOrderItem `json:"orderDetails"`
	OrderItems   []backendOrderItem `json:"orderItems"`

	AppliedVouchers []backendVoucher `json:"appliedVouchers"`
}

type backendOrderItem struct {
	ProductName  string          `json:"productName"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	ProductImage string          `json:"productImage"`
}

type backendVoucher struct {
	VoucherID uint64          `json:"voucherId"`
	Code      string          `json:"code"`
	Discount  decimal.Decimal `json:"discount"`
}

type backendOrderPage struct {
	Content []backendOrder `json:"content"`
	Page    struct {
		Size          int   `json:"size"`
		Number        int   `json:"number"`
		TotalElements int64 `json:"totalElements"`
		TotalPages    int   `json:"totalPages"`
	} `json:"page"`
}

func (r backendOrder) toModel() model.Order {
	id := r.ID
	if id == 0 {
		id = r.OrderId
	}
	if id == 0 {
		id = r.OrderID
	}

	status := r.StatusID
	if status == "" {
		status = r.Status
	}
	if status == "" {
		status = r.OderStatus
	}

	items := r.OrderDetails
	if len(items) == 0 {
		items = r.OrderItems
	}
	modelItems := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		modelItems = append(modelItems, model.OrderItem{
			ProductName:  it.ProductName,
			Quantity:     it.Quantity,
			Price:        it.Price,
			ProductImage: it.ProductImage,
		})
	}

	vouchers := make([]model.AppliedVoucher, 0, len(r.AppliedVouchers))
	for _, v := range r.AppliedVouchers {
		vouchers = append(vouchers, model.AppliedVoucher{
			VoucherID: v.VoucherID,
			Code:      v.Code,
			Discount:  v.Discount,
		})
	}

	return model.Order{
		ID:                id,
		OrderCode:         r.OrderCode,
		OrderDate:         parseOrderDate(r.OrderDate),
		StatusID:          normalizeStatus(status),
		TotalAmount:       r.TotalAmount,
		ShippingFee:       r.ShippingFee,
		ShippingAddress:   r.ShippingAddress,
		PaymentMethod:     constant.PaymentMethod(r.PaymentMethod),
		PaymentMethodName: r.PaymentMethodName,
		Notes:             r.Notes,
		Items:             modelItems,
		AppliedVouchers:   vouchers,
		DiscountApplied:   r.DiscountApplied,
	}
}

// toOrderPage converts the backend's 0-based page number to the 1-based
// paging the rest of the service works with.
func (r backendOrderPage) toOrderPage(fallbackSize int) *model.OrderPage {
	orders := make([]model.Order, 0, len(r.Content))
	for _, o := range r.Content {
		orders = append(orders, o.toModel())
	}

	size := r.Page.Size
	if size == 0 {
		size = fallbackSize
	}
	return &model.OrderPage{
		Orders: orders,
		Pagination: model.Pagination{
			CurrentPage: r.Page.Number + 1,
			PageSize:    size,
			TotalItems:  r.Page.TotalElements,
			TotalPages:  r.Page.TotalPages,
		},
	}
}

// normalizeStatus maps the backend's terminal labels onto the storefront's.
func normalizeStatus(s string) constant.OrderStatus {
	if s == constant.BackendStatusDelivered {
		return constant.OrderStatusCompleted
	}
	return constant.OrderStatus(s)
}

var orderDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseOrderDate(s string) time.Time {
	for _, layout := range orderDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
