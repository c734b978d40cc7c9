package artifact

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Load for unknown ids and ids that fail ValidateName.
	ErrNotFound = errors.New("artifact not found")
	// ErrStorage wraps I/O faults on the artifact namespace.
	ErrStorage = errors.New("artifact storage failure")
	// ErrInvalidName is returned by Save for names that fail ValidateName.
	ErrInvalidName = errors.New("invalid artifact name")
)

// ContentType is the MIME type of every stored artifact.
const ContentType = "application/pdf"

// Store is a flat key-value namespace of rendered reports.
// Saving an existing name overwrites it; concurrent saves to one name are last-writer-wins.
type Store interface {
	Save(ctx context.Context, name string, data []byte) (id string, err error)
	Load(ctx context.Context, id string) ([]byte, error)
}
