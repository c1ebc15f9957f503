package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sisregip/sisregip-backend/internal/domain"
	"github.com/sisregip/sisregip-backend/pkg/ctxutil"
)

// Edit rewrites the mutable fields of the active protocol with the given
// number. Identities are re-resolved, which may create new person/recipient
// rows but never updates pre-existing ones.
//
// Editing a number with no active row returns domain.ErrNotFound. The
// source system silently succeeded here; surfacing the miss was chosen
// instead so a mistyped number is caught rather than swallowed.
func (s *Service) Edit(ctx context.Context, in Input) error {
	if err := in.Validate(); err != nil {
		return err
	}

	p := in.toProtocol()

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.resolveIdentities(txCtx, in, &p); err != nil {
			return err
		}
		if err := s.protocols.UpdateByNumber(txCtx, p.Number, p); err != nil {
			return fmt.Errorf("update protocolo: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, ctxutil.OperatorFromCtx(ctx), domain.AuditActionEdit,
		fmt.Sprintf("protocolo %s editado", p.Number))

	s.log.InfoContext(ctx, "protocol edited", slog.String("number", p.Number))

	return nil
}
