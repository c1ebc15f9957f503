package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sisregip/sisregip-backend/internal/domain"
	"github.com/sisregip/sisregip-backend/pkg/ctxutil"
)

// Add registers a new protocol. Person and recipient names are resolved to
// identities (created on first reference) in the same transaction as the
// insert, so a failed insert never leaks a half-registered protocol.
// An active protocol with the same number fails with domain.ErrAlreadyExists.
func (s *Service) Add(ctx context.Context, in Input) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	p := in.toProtocol()

	var id int64
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.resolveIdentities(txCtx, in, &p); err != nil {
			return err
		}

		var insertErr error
		id, insertErr = s.protocols.Insert(txCtx, p)
		if insertErr != nil {
			return fmt.Errorf("insert protocolo: %w", insertErr)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.audit.Record(ctx, ctxutil.OperatorFromCtx(ctx), domain.AuditActionAdd,
		fmt.Sprintf("protocolo %s adicionado", p.Number))

	s.log.InfoContext(ctx, "protocol added",
		slog.Int64("id", id),
		slog.String("number", p.Number),
	)

	return id, nil
}
