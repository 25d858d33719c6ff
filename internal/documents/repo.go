package documents

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a document reference is unknown.
var ErrNotFound = errors.New("document not found")

// ErrInvalidInput flags caller mistakes the handler maps to 400s.
var ErrInvalidInput = errors.New("invalid input")

// Repo defines persistence operations for document metadata.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, docID string) (Document, error)
}
