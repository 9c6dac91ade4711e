package orderControllers

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyCart means checkout was attempted against a cart with no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNotCancellable means the order already left the cancellable state.
	ErrNotCancellable = errors.New("order cannot be cancelled")
	// ErrOrderNotFound means no order with that order number for this user.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderPersistence means the order could not be stored; nothing was committed.
	ErrOrderPersistence = errors.New("failed to place order")
)

// ItemUnavailableError is raised when a product cannot satisfy the
// requested quantity. AtCommit distinguishes a race lost inside the
// order transaction from the pre-checkout check; in the former case the
// cart page may be showing stale stock and should be refreshed.
type ItemUnavailableError struct {
	ProductName string
	AtCommit    bool
}

func (e *ItemUnavailableError) Error() string {
	if e.AtCommit {
		return fmt.Sprintf("%s sold out while placing your order, please retry checkout", e.ProductName)
	}
	return fmt.Sprintf("%s is out of stock or has insufficient quantity", e.ProductName)
}

// InvalidAddressError lists the required address fields that were empty.
type InvalidAddressError struct {
	Missing []string
}

func (e *InvalidAddressError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// IsStockConflict reports whether err is an in-transaction stock failure,
// i.e. the caller passed the pre-check but lost the race at commit time.
func IsStockConflict(err error) bool {
	var iu *ItemUnavailableError
	return errors.As(err, &iu) && iu.AtCommit
}
