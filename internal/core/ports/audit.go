package ports

import (
	"context"

	"github.com/banque/registration-system/internal/core/domain"
)

// TransactionRepository persists ledger entries to the audit trail.
type TransactionRepository interface {
	InsertTransaction(ctx context.Context, entry domain.Entry) error
}

// AuditService processes ledger entries published by accounts.
type AuditService interface {
	Record(ctx context.Context, entry domain.Entry) error
}

// EntryPublisher hands recorded entries off for asynchronous auditing.
// Publish must not block on I/O: it runs under the account lock.
type EntryPublisher interface {
	Publish(entry domain.Entry)
}

// IdempotencyStore claims request keys. Claim reports false when the key was
// already claimed.
type IdempotencyStore interface {
	Claim(ctx context.Context, key string) (bool, error)
}
