// Package audit provides the best-effort audit recorder. Every mutating
// operation funnels through Record, which must never fail the operation
// that triggered it.
package audit

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sisregip/sisregip-backend/internal/domain"
)

type entryRepo interface {
	Insert(ctx context.Context, e domain.AuditEntry) (domain.AuditEntry, error)
	Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}

// Recorder appends operator actions to the audit trail. Storage failures
// are absorbed: they are logged to the diagnostic channel and swallowed so
// the primary operation's result is unaffected. Callers invoke Record after
// their own transaction has committed, so the audit write runs in its own
// independent unit of work and can never block the primary commit.
type Recorder struct {
	entries entryRepo
	log     *slog.Logger
}

// NewRecorder creates a Recorder.
func NewRecorder(log *slog.Logger, entries entryRepo) *Recorder {
	return &Recorder{
		entries: entries,
		log:     log.With("service", "audit"),
	}
}

// Record appends an audit entry. A blank operator is replaced by the
// sentinel; any other value is stored exactly as typed (mixed case is
// meaningful downstream).
func (r *Recorder) Record(ctx context.Context, operator string, action domain.AuditAction, details string) {
	if strings.TrimSpace(operator) == "" {
		operator = domain.OperatorUnidentified
	}

	_, err := r.entries.Insert(ctx, domain.AuditEntry{
		Operator: operator,
		Action:   action,
		Details:  details,
	})
	if err != nil {
		r.log.WarnContext(ctx, "audit write failed",
			slog.String("operator", operator),
			slog.String("action", string(action)),
			slog.String("details", details),
			slog.Any("error", err),
		)
	}
}

// Recent returns the newest audit entries for inspection.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.entries.Recent(ctx, limit)
}
