package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/banque/registration-system/internal/api/metrics"
	"github.com/banque/registration-system/internal/core/domain"
	"github.com/banque/registration-system/internal/core/ports"
)

// DedupChecker abstracts the processed-entry store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, entryID string) (bool, error)
	Mark(ctx context.Context, entryID string) error
}

type auditService struct {
	repo  ports.TransactionRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.TransactionRepository, dedup DedupChecker, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, dedup: dedup, log: log}
}

// Record deduplicates and persists a single ledger entry.
func (s *auditService) Record(ctx context.Context, entry domain.Entry) error {
	id := entry.ID.String()

	isDup, err := s.dedup.IsDuplicate(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Str("entry_id", id).Msg("dedup check failed, processing anyway")
	} else if isDup {
		metrics.AuditEventsTotal.WithLabelValues("duplicate").Inc()
		s.log.Debug().Str("entry_id", id).Msg("duplicate entry skipped")
		return nil
	}

	if err := s.repo.InsertTransaction(ctx, entry); err != nil {
		metrics.AuditEventsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("record entry: %w", err)
	}

	if err := s.dedup.Mark(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("entry_id", id).Msg("failed to set dedup key")
	}

	metrics.AuditEventsTotal.WithLabelValues("inserted").Inc()
	s.log.Debug().
		Str("entry_id", id).
		Str("owner", entry.Owner).
		Str("kind", string(entry.Kind)).
		Msg("entry recorded")
	return nil
}
