package member

import (
	"shop/domain/member"
)

// JoinRequest body of POST /api/v1/members
type JoinRequest struct {
	Name    string `json:"name" binding:"required"`
	City    string `json:"city"`
	Street  string `json:"street"`
	Zipcode string `json:"zipcode"`
}

// Address of the request; empty fields stay empty
func (r JoinRequest) Address() member.Address {
	return member.NewAddress(r.City, r.Street, r.Zipcode)
}

// CreateMemberRequest body of POST /api/v2/members
type CreateMemberRequest struct {
	Name string `json:"name" binding:"required"`
}

// JoinResponse id of the new member
type JoinResponse struct {
	ID int64 `json:"id"`
}

// UpdateRequest body of PUT /api/v2/members/:id
type UpdateRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type AddressDto struct {
	City    string `json:"city"`
	Street  string `json:"street"`
	Zipcode string `json:"zipcode"`
}

// MemberDto full member, v1 list
type MemberDto struct {
	ID      int64      `json:"id"`
	Name    string     `json:"name"`
	Address AddressDto `json:"address"`
}

// MemberNameDto v2 list
type MemberNameDto struct {
	Name string `json:"name"`
}

func ToMemberDto(m *member.Member) MemberDto {
	a := m.Address()
	return MemberDto{
		ID:      m.ID(),
		Name:    m.Name(),
		Address: AddressDto{City: a.City(), Street: a.Street(), Zipcode: a.Zipcode()},
	}
}

func ToMemberNameDto(m *member.Member) MemberNameDto {
	return MemberNameDto{Name: m.Name()}
}
