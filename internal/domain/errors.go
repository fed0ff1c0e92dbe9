package domain

import "errors"

var (
	// ErrProductNotFound indicates a product identifier could not be resolved
	// against the catalog.
	ErrProductNotFound = errors.New("product not found")

	// ErrPriceUnavailable indicates the product has no price, so no
	// negotiation or price floor can be computed.
	ErrPriceUnavailable = errors.New("product price not available")
)

// ErrNoNegotiation indicates no offer has been made on the product yet.
var ErrNoNegotiation = errors.New("no negotiation for product")
