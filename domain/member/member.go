/*
Package member Member subdomain

A member is referenced by orders, never owned by them. The list of orders held here is a
derived, in-memory back-reference: storage keeps only orders.member_id, and the list is
rebuilt by whichever query loaded the orders.
*/
package member

import (
	"context"

	"shop/domain/shared"
)

// Member member entity
type Member struct {
	id      int64
	name    string
	address Address

	// orders derived back-reference, filled by Order's link setter
	orders []shared.Entity
}

// NewMember creates a member not yet persisted
func NewMember(name string, address Address) (*Member, error) {
	if name == "" {
		return nil, shared.NewError(shared.ErrInvalidInput, ErrInvalidName, "member", ErrInvalidName.Error())
	}
	return &Member{name: name, address: address}, nil
}

// ReconstructionDTO member reconstruction data, for repository use only
type ReconstructionDTO struct {
	ID      int64
	Name    string
	Address Address
}

// RebuildFromDTO rebuilds a member loaded from storage
func RebuildFromDTO(dto ReconstructionDTO) *Member {
	return &Member{id: dto.ID, name: dto.Name, address: dto.Address}
}

// AssignID sets the store generated id after the first insert
func (m *Member) AssignID(id int64) { m.id = id }

// AttachOrder appends to the derived order list.
// Only the order aggregate's link setter calls this; it keeps both sides in step.
func (m *Member) AttachOrder(o shared.Entity) {
	m.orders = append(m.orders, o)
}

// Rename changes the display name; uniqueness is checked by the caller
func (m *Member) Rename(name string) error {
	if name == "" {
		return shared.NewError(shared.ErrInvalidInput, ErrInvalidName, "member", ErrInvalidName.Error())
	}
	m.name = name
	return nil
}

func (m *Member) ID() int64        { return m.id }
func (m *Member) Name() string     { return m.name }
func (m *Member) Address() Address { return m.address }

// Orders returns a copy of the derived order list
func (m *Member) Orders() []shared.Entity {
	orders := make([]shared.Entity, len(m.orders))
	copy(orders, m.orders)
	return orders
}

// Repository member persistence and lookups
type Repository interface {
	Save(ctx context.Context, m *Member) error
	FindOne(ctx context.Context, id int64) (*Member, error)
	FindAll(ctx context.Context) ([]*Member, error)
	FindByName(ctx context.Context, name string) ([]*Member, error)
}
