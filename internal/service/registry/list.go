package registry

import (
	"context"
	"fmt"

	"github.com/sisregip/sisregip-backend/internal/domain"
)

// ListActive returns all active protocols with joined person and recipient
// names, newest protocol date first.
func (s *Service) ListActive(ctx context.Context) ([]domain.ProtocolListing, error) {
	listings, err := s.protocols.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list protocols: %w", err)
	}
	return listings, nil
}

// Get returns a single protocol by internal id, active or not.
func (s *Service) Get(ctx context.Context, id int64) (*domain.ProtocolListing, error) {
	l, err := s.protocols.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get protocolo: %w", err)
	}
	return l, nil
}
