package rating

import "github.com/rateport/store-ratings/internal/httperr"

const (
	MinValue = 1
	MaxValue = 5
)

// Business failure codes translated by handlers.
const (
	CodeInvalidValue  = "invalid_rating"
	CodeStoreNotFound = "store_not_found"
	CodeNoOwnedStore  = "no_owned_store"
)

func ValidateValue(value int) error {
	if value < MinValue || value > MaxValue {
		return httperr.ErrBusiness(CodeInvalidValue)
	}
	return nil
}
