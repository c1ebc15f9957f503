// Package registry provides the protocol registry: add, edit, soft delete,
// and listing of document handoff protocols, with entity resolution and
// audit logging as side effects.
package registry

import (
	"context"
	"log/slog"

	"github.com/sisregip/sisregip-backend/internal/domain"
)

type identityResolver interface {
	ResolvePerson(ctx context.Context, name string, recordNumber *string) (*int64, error)
	ResolveRecipient(ctx context.Context, name string) (*int64, error)
}

type protocolRepo interface {
	ListActive(ctx context.Context) ([]domain.ProtocolListing, error)
	GetByID(ctx context.Context, id int64) (*domain.ProtocolListing, error)
	Insert(ctx context.Context, p domain.Protocol) (int64, error)
	UpdateByNumber(ctx context.Context, number string, p domain.Protocol) error
	Deactivate(ctx context.Context, id int64) (number string, deactivated bool, err error)
}

type auditRecorder interface {
	Record(ctx context.Context, operator string, action domain.AuditAction, details string)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides protocol registry operations. Each mutation resolves its
// identities and writes the protocol row inside one transaction; the audit
// entry is recorded after the commit, best-effort.
type Service struct {
	protocols  protocolRepo
	identities identityResolver
	audit      auditRecorder
	tx         txManager
	log        *slog.Logger
}

// NewService creates a new registry Service.
func NewService(
	log *slog.Logger,
	protocols protocolRepo,
	identities identityResolver,
	audit auditRecorder,
	tx txManager,
) *Service {
	return &Service{
		protocols:  protocols,
		identities: identities,
		audit:      audit,
		tx:         tx,
		log:        log.With("service", "registry"),
	}
}
