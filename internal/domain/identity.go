package domain

// Identity holds the registration data that identifies a customer.
// The CPF is the unique key across the whole store.
type Identity struct {
	FirstName string
	LastName  string
	Age       int
	CPF       string
	PIN       string
}
