// Package repositories holds the MongoDB data access layer. Each repository
// receives its *mongo.Database explicitly; there is no package-level handle.
package repositories

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound means the queried document does not exist.
	ErrNotFound = errors.New("repositories: not found")

	// ErrDuplicateKey means a unique index rejected the write.
	ErrDuplicateKey = errors.New("repositories: duplicate key")
)

// wrapErr maps driver errors onto the repository error set so the services
// never import the mongo package for error checks.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}
