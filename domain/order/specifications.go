package order

import (
	"context"
	"strings"

	"shop/domain/shared"
)

// NameMatch how the member name filter compares
type NameMatch string

const (
	NameMatchCaseSensitive   NameMatch = "case_sensitive"
	NameMatchCaseInsensitive NameMatch = "case_insensitive"
)

// OrderSearch optional filters for FindAllByCriteria. Zero values mean "no filter".
type OrderSearch struct {
	MemberName  string
	OrderStatus Status
}

// Specification builds the conjunction of the filters that are set
func (s OrderSearch) Specification(match NameMatch) shared.AndSpecification[*Order] {
	var status, name shared.Specification[*Order]
	if s.OrderStatus != "" {
		status = ByStatusSpecification{Status: s.OrderStatus}
	}
	if s.MemberName != "" {
		name = ByMemberNameSpecification{Name: s.MemberName, Match: match}
	}
	return shared.And(status, name)
}

// ByStatusSpecification order status equals Status
type ByStatusSpecification struct {
	Status Status
}

func (spec ByStatusSpecification) IsSatisfiedBy(_ context.Context, o *Order) bool {
	return o.Status() == spec.Status
}

// ByMemberNameSpecification member name contains Name.
// Orders without a loaded member never satisfy it.
type ByMemberNameSpecification struct {
	Name  string
	Match NameMatch
}

func (spec ByMemberNameSpecification) IsSatisfiedBy(_ context.Context, o *Order) bool {
	if !o.MemberLoaded() {
		return false
	}
	if spec.Match == NameMatchCaseInsensitive {
		return strings.Contains(strings.ToLower(o.Member().Name()), strings.ToLower(spec.Name))
	}
	return strings.Contains(o.Member().Name(), spec.Name)
}
