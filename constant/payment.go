package constant

// PaymentMethod identifies how the buyer pays for an order.
type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "COD"
	PaymentMethodPayPal PaymentMethod = "PAYPAL"
	PaymentMethodPayOS  PaymentMethod = "PAYOS"
)

// PaymentState is the reconciliation state of a checkout attempt. FORM and
// PROCESSING are transient; the rest are terminal for this attempt.
type PaymentState string

const (
	PaymentStateForm       PaymentState = "FORM"
	PaymentStateProcessing PaymentState = "PROCESSING"
	PaymentStateSuccess    PaymentState = "SUCCESS"
	PaymentStateCancelled  PaymentState = "CANCELLED"
	PaymentStateFailed     PaymentState = "FAILED"
)

// PayOS wire values checked when the provider redirects back.
const (
	PayOSCodeSuccess = "00"
	PayOSStatusPaid  = "PAID"
)
