package constant

// OrderStatus is the order lifecycle status as the storefront presents it.
// The backend owns the state machine; this service only observes statuses
// via re-fetch and requests the single permitted transition (cancel request).
type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "PENDING"
	OrderStatusProcessing      OrderStatus = "PROCESSING"
	OrderStatusConfirmed       OrderStatus = "CONFIRMED"
	OrderStatusShipping        OrderStatus = "SHIPPING"
	OrderStatusCancelRequested OrderStatus = "CANCEL_REQUESTED"
	OrderStatusCompleted       OrderStatus = "COMPLETED"
	OrderStatusCancelled       OrderStatus = "CANCELLED"

	// OrderStatusHistory is not a backend status: it is the bucket that
	// aggregates the backend's DELIVERED and CANCELLED orders into one view.
	OrderStatusHistory OrderStatus = "HISTORY"
)

// Backend status labels that differ from the storefront's.
const (
	BackendStatusDelivered = "DELIVERED"
	BackendStatusCancelled = "CANCELLED"
)

// OrderBuckets lists the six lifecycle buckets the coordinator tracks, in
// the order the storefront tabs present them.
var OrderBuckets = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusConfirmed,
	OrderStatusShipping,
	OrderStatusCancelRequested,
	OrderStatusHistory,
}

// BackendHistoryStatus maps a storefront history filter onto the backend's
// status label. Only terminal statuses are valid history filters.
var BackendHistoryStatus = map[OrderStatus]string{
	OrderStatusCompleted: BackendStatusDelivered,
	OrderStatusCancelled: BackendStatusCancelled,
}
