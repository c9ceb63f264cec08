package member

import (
	"errors"
	"strconv"

	"shop/domain/shared"
)

var (
	// ErrMemberNotFound no member with the requested id
	ErrMemberNotFound = errors.New("member not found")

	// ErrInvalidName member name is empty
	ErrInvalidName = errors.New("member name must not be empty")

	// ErrDuplicateName another member already uses the name
	ErrDuplicateName = errors.New("member name already in use")
)

// NewMemberNotFoundError creates a NotFound error for the given member id
func NewMemberNotFoundError(id int64) error {
	return shared.NewError(shared.ErrNotFound, ErrMemberNotFound, "member",
		"member not found: "+strconv.FormatInt(id, 10))
}

// NewDuplicateNameError creates an InvalidState error for a name held by another member
func NewDuplicateNameError(name string) error {
	return shared.Errorf(shared.ErrInvalidState, ErrDuplicateName, "member", "member name already in use: %s", name)
}
