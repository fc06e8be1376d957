package usecase

import "context"

// Outbox abstracts the deferred-submission queue so stores stay storage-agnostic.
type Outbox interface {
	Defer(ctx context.Context, entity, operation string, payload any) error
}
