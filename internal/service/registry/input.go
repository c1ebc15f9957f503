package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/sisregip/sisregip-backend/internal/domain"
)

// Input carries the free-text protocol fields accepted by Add and Edit.
// Dates arrive as dd/mm/yyyy text; blank or unparsable values mean "no
// value" rather than an error.
type Input struct {
	Number           string
	ProtocolDateText string
	PersonName       string
	RecordNumber     string
	DeliveryDateText string
	RecipientName    string
}

// Validate checks the single mandatory field.
func (in Input) Validate() error {
	if strings.TrimSpace(in.Number) == "" {
		return domain.NewValidationError("prot", "protocol number is required")
	}
	return nil
}

// toProtocol converts the free-text fields into a Protocol with parsed
// dates and NULLed blanks. Person and recipient ids are filled in later,
// inside the transaction.
func (in Input) toProtocol() domain.Protocol {
	return domain.Protocol{
		Number:       strings.TrimSpace(in.Number),
		ProtocolDate: domain.ParseDate(in.ProtocolDateText),
		RecordNumber: domain.TrimOrNil(in.RecordNumber),
		DeliveryDate: domain.ParseDate(in.DeliveryDateText),
		Active:       true,
	}
}

// resolveIdentities translates the person and recipient names into stable
// ids on the transaction context, creating rows on first reference.
func (s *Service) resolveIdentities(ctx context.Context, in Input, p *domain.Protocol) error {
	personID, err := s.identities.ResolvePerson(ctx, in.PersonName, p.RecordNumber)
	if err != nil {
		return fmt.Errorf("resolve usuario: %w", err)
	}
	recipientID, err := s.identities.ResolveRecipient(ctx, in.RecipientName)
	if err != nil {
		return fmt.Errorf("resolve recebedor: %w", err)
	}
	p.PersonID = personID
	p.RecipientID = recipientID
	return nil
}
