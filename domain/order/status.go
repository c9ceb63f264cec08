package order

// Status order status
type Status string

const (
	StatusOrdered   Status = "ORDERED"
	StatusCancelled Status = "CANCELLED"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	return s == StatusOrdered || s == StatusCancelled
}

// DeliveryStatus delivery status
type DeliveryStatus string

const (
	DeliveryReady     DeliveryStatus = "READY"
	DeliveryCompleted DeliveryStatus = "COMP"
)
