package models

// MaxWishesPerBeneficiary caps how many wishes a beneficiary may hold at once.
const MaxWishesPerBeneficiary = 3

// Wish is a registered gift request. The identity is a server-generated
// opaque string and is immutable; the beneficiary must reference an existing
// person.
type Wish struct {
	ID            string
	ProductName   string
	Quantity      int
	BeneficiaryID int
}
