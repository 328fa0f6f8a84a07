package repository

import "context"

// LeadsRepository is the store contract the leads service depends on.
// Implemented by Repository; faked in tests.
type LeadsRepository interface {
	Insert(ctx context.Context, params CreateLeadParams) (Lead, error)
	FetchAll(ctx context.Context) ([]Lead, error)
}
