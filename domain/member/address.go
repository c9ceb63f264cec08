package member

// Address value object - immutable, compared by value
type Address struct {
	city    string
	street  string
	zipcode string
}

// NewAddress creates an Address
func NewAddress(city, street, zipcode string) Address {
	return Address{city: city, street: street, zipcode: zipcode}
}

func (a Address) City() string    { return a.city }
func (a Address) Street() string  { return a.street }
func (a Address) Zipcode() string { return a.zipcode }

// IsZero reports whether no field is set
func (a Address) IsZero() bool {
	return a == Address{}
}

// Equals compares two addresses by value
func (a Address) Equals(other Address) bool {
	return a == other
}

// String implements fmt.Stringer
func (a Address) String() string {
	return a.city + " " + a.street + " " + a.zipcode
}
