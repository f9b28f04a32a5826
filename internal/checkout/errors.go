package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart       = errors.New("no order items")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrNegativeTotal   = errors.New("total price must not be negative")
)

// ProductNotFoundError means the referenced product has no inventory listing
// at all.
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("no available listing for product %d", e.ProductID)
}

// InsufficientStockError names the offending product so the client can show
// which cart line failed.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}
