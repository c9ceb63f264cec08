package order

import (
	"shop/domain/member"
	"shop/domain/shared"
)

// Delivery shipment for exactly one order
type Delivery struct {
	id      int64
	order   *Order
	address member.Address
	status  DeliveryStatus
}

// NewDelivery creates a READY delivery to address
func NewDelivery(address member.Address) *Delivery {
	return &Delivery{address: address, status: DeliveryReady}
}

// DeliveryDTO delivery row data, for repository use only
type DeliveryDTO struct {
	ID      int64
	Address member.Address
	Status  DeliveryStatus
}

func RebuildDelivery(dto DeliveryDTO) *Delivery {
	return &Delivery{id: dto.ID, address: dto.Address, status: dto.Status}
}

// Complete marks the delivery as shipped. Completed deliveries block cancellation.
func (d *Delivery) Complete() error {
	if d.status == DeliveryCompleted {
		return shared.Errorf(shared.ErrInvalidState, ErrAlreadyDelivered, "delivery",
			"delivery %d already completed", d.id)
	}
	d.status = DeliveryCompleted
	return nil
}

func (d *Delivery) AssignID(id int64) { d.id = id }

func (d *Delivery) ID() int64               { return d.id }
func (d *Delivery) Address() member.Address { return d.address }
func (d *Delivery) Status() DeliveryStatus  { return d.status }

// Order owning order, nil when the delivery was loaded on its own
func (d *Delivery) Order() *Order { return d.order }
