// Package repo holds what the storage backends share.
package repo

import "errors"

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// ProductsCounter names the sequence that feeds Product.Sort.
const ProductsCounter = "products"
