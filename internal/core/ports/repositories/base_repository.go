package repositories

import (
	"context"
)

// UnitOfWork runs a group of repository calls atomically.
//
// RunInTx calls fn with a context that carries the transaction. Every
// repository call made with that context joins it. If fn returns an error
// nothing it wrote is visible afterwards. Nested calls join the enclosing
// unit of work instead of starting a new one.
type UnitOfWork interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
