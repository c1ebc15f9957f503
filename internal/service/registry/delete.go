package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sisregip/sisregip-backend/internal/domain"
	"github.com/sisregip/sisregip-backend/pkg/ctxutil"
)

// Delete soft-deletes the protocol with the given internal id. The row is
// never physically removed, which keeps audit references valid and frees
// the number for reuse.
//
// Deleting an already-inactive row is an idempotent success and writes no
// second audit entry; the trail records one DELETE per actual deactivation.
// An unknown id returns domain.ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	var number string
	var deactivated bool

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		number, deactivated, err = s.protocols.Deactivate(txCtx, id)
		return err
	})
	if err != nil {
		return err
	}

	if !deactivated {
		s.log.InfoContext(ctx, "protocol already inactive",
			slog.Int64("id", id),
			slog.String("number", number),
		)
		return nil
	}

	s.audit.Record(ctx, ctxutil.OperatorFromCtx(ctx), domain.AuditActionDelete,
		fmt.Sprintf("protocolo %s excluído (id %d)", number, id))

	s.log.InfoContext(ctx, "protocol deleted",
		slog.Int64("id", id),
		slog.String("number", number),
	)

	return nil
}
