package domain

import "github.com/go-faster/errors"

var (
	// ErrProductNotFound is returned when no product matches a record id
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidProduct is returned when a product payload misses required fields
	ErrInvalidProduct = errors.New("invalid product")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrStoreFailure is returned when the underlying document store fails
	ErrStoreFailure = errors.New("product store failure")

	// ErrAPIFailure is returned when a catalog API request fails
	ErrAPIFailure = errors.New("catalog API request failed")

	// ErrEmptyComment is returned when a comment draft is blank after trimming
	ErrEmptyComment = errors.New("comment is empty")

	// ErrCommentIndex is returned when a comment position is out of range
	ErrCommentIndex = errors.New("comment index out of range")

	// ErrInvalidDraft is returned when the draft form cannot be submitted
	ErrInvalidDraft = errors.New("invalid draft form")

	// ErrInvalidSortMethod is returned for an unknown sort method
	ErrInvalidSortMethod = errors.New("invalid sort method")
)
