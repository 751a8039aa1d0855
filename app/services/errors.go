package services

import "errors"

var (
	// ErrInvalidCredential means the password check failed.
	ErrInvalidCredential = errors.New("services: invalid credential")

	// ErrInvalidStatus means the requested order status is not part of the
	// lifecycle.
	ErrInvalidStatus = errors.New("services: invalid order status")

	// ErrSelfDelete means an admin tried to delete their own account.
	ErrSelfDelete = errors.New("services: cannot delete own account")

	// ErrInvalidID means a path parameter is not a valid object id.
	ErrInvalidID = errors.New("services: invalid id")

	// ErrNoFields means an update request carried nothing to change.
	ErrNoFields = errors.New("services: no fields to update")
)
