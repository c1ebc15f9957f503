package registry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/sisregip/sisregip-backend/internal/domain"
	"github.com/sisregip/sisregip-backend/pkg/ctxutil"
)

func newTestService(protocols *protocolRepoMock, identities *identityResolverMock, audit *auditRecorderMock, tx *txManagerMock) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(log, protocols, identities, audit, tx)
}

func passthroughTx() *txManagerMock {
	return &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
}

func int64Ptr(v int64) *int64 { return &v }

func okResolver(personID, recipientID *int64) *identityResolverMock {
	return &identityResolverMock{
		ResolvePersonFunc: func(ctx context.Context, name string, recordNumber *string) (*int64, error) {
			return personID, nil
		},
		ResolveRecipientFunc: func(ctx context.Context, name string) (*int64, error) {
			return recipientID, nil
		},
	}
}

func TestAdd(t *testing.T) {
	t.Parallel()

	identities := okResolver(int64Ptr(11), int64Ptr(22))
	protocols := &protocolRepoMock{
		InsertFunc: func(ctx context.Context, p domain.Protocol) (int64, error) {
			return 42, nil
		},
	}
	audit := &auditRecorderMock{}
	tx := passthroughTx()
	svc := newTestService(protocols, identities, audit, tx)

	ctx := ctxutil.WithOperator(context.Background(), "operador.x")

	id, err := svc.Add(ctx, Input{
		Number:           "1234/2025",
		ProtocolDateText: "15/03/2025",
		PersonName:       "Maria Souza",
		RecordNumber:     "PMH-77",
		RecipientName:    "João Lima",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}
	if got := tx.RunInTxCalls(); got != 1 {
		t.Errorf("RunInTx calls = %d, want 1", got)
	}

	inserts := protocols.InsertCalls()
	if len(inserts) != 1 {
		t.Fatalf("Insert calls = %d, want 1", len(inserts))
	}
	p := inserts[0]
	if p.Number != "1234/2025" {
		t.Errorf("Number = %q", p.Number)
	}
	if !p.Active {
		t.Error("Active = false, want true")
	}
	if got := domain.FormatDate(p.ProtocolDate); got != "15/03/2025" {
		t.Errorf("ProtocolDate = %q, want 15/03/2025", got)
	}
	if p.DeliveryDate != nil {
		t.Errorf("DeliveryDate = %v, want nil", p.DeliveryDate)
	}
	if p.PersonID == nil || *p.PersonID != 11 {
		t.Errorf("PersonID = %v, want 11", p.PersonID)
	}
	if p.RecipientID == nil || *p.RecipientID != 22 {
		t.Errorf("RecipientID = %v, want 22", p.RecipientID)
	}

	calls := audit.RecordCalls()
	if len(calls) != 1 {
		t.Fatalf("audit calls = %d, want 1", len(calls))
	}
	if calls[0].Operator != "operador.x" {
		t.Errorf("audit operator = %q", calls[0].Operator)
	}
	if calls[0].Action != domain.AuditActionAdd {
		t.Errorf("audit action = %q", calls[0].Action)
	}
	if !strings.Contains(calls[0].Details, "1234/2025") {
		t.Errorf("audit details = %q, want protocol number mentioned", calls[0].Details)
	}
}

func TestAdd_UnparsableDatesStoredAsNil(t *testing.T) {
	t.Parallel()

	protocols := &protocolRepoMock{
		InsertFunc: func(ctx context.Context, p domain.Protocol) (int64, error) {
			return 1, nil
		},
	}
	svc := newTestService(protocols, okResolver(nil, nil), &auditRecorderMock{}, passthroughTx())

	_, err := svc.Add(context.Background(), Input{
		Number:           "55/2025",
		ProtocolDateText: "31/02/2025",
		DeliveryDateText: "not a date",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	inserts := protocols.InsertCalls()
	if len(inserts) != 1 {
		t.Fatalf("Insert calls = %d, want 1", len(inserts))
	}
	if inserts[0].ProtocolDate != nil {
		t.Errorf("ProtocolDate = %v, want nil", inserts[0].ProtocolDate)
	}
	if inserts[0].DeliveryDate != nil {
		t.Errorf("DeliveryDate = %v, want nil", inserts[0].DeliveryDate)
	}
}

func TestAdd_MissingNumber(t *testing.T) {
	t.Parallel()

	tx := passthroughTx()
	audit := &auditRecorderMock{}
	svc := newTestService(&protocolRepoMock{}, &identityResolverMock{}, audit, tx)

	_, err := svc.Add(context.Background(), Input{Number: "   "})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if got := tx.RunInTxCalls(); got != 0 {
		t.Errorf("RunInTx calls = %d, want 0", got)
	}
	if len(audit.RecordCalls()) != 0 {
		t.Error("audit recorded for rejected input")
	}
}

func TestAdd_DuplicateNumber(t *testing.T) {
	t.Parallel()

	protocols := &protocolRepoMock{
		InsertFunc: func(ctx context.Context, p domain.Protocol) (int64, error) {
			return 0, domain.ErrAlreadyExists
		},
	}
	audit := &auditRecorderMock{}
	svc := newTestService(protocols, okResolver(nil, nil), audit, passthroughTx())

	_, err := svc.Add(context.Background(), Input{Number: "77/2025"})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
	if len(audit.RecordCalls()) != 0 {
		t.Error("audit recorded for failed insert")
	}
}

func TestAdd_TxFailureSkipsAudit(t *testing.T) {
	t.Parallel()

	txErr := errors.New("commit failed")
	tx := &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return txErr
		},
	}
	audit := &auditRecorderMock{}
	svc := newTestService(&protocolRepoMock{}, &identityResolverMock{}, audit, tx)

	_, err := svc.Add(context.Background(), Input{Number: "88/2025"})
	if !errors.Is(err, txErr) {
		t.Fatalf("err = %v, want %v", err, txErr)
	}
	if len(audit.RecordCalls()) != 0 {
		t.Error("audit recorded for failed transaction")
	}
}

func TestAdd_ResolverFailureAbortsInsert(t *testing.T) {
	t.Parallel()

	resolverErr := errors.New("usuario lookup failed")
	identities := &identityResolverMock{
		ResolvePersonFunc: func(ctx context.Context, name string, recordNumber *string) (*int64, error) {
			return nil, resolverErr
		},
	}
	protocols := &protocolRepoMock{
		InsertFunc: func(ctx context.Context, p domain.Protocol) (int64, error) {
			return 1, nil
		},
	}
	svc := newTestService(protocols, identities, &auditRecorderMock{}, passthroughTx())

	_, err := svc.Add(context.Background(), Input{Number: "99/2025", PersonName: "x"})
	if !errors.Is(err, resolverErr) {
		t.Fatalf("err = %v, want resolver error", err)
	}
	if len(protocols.InsertCalls()) != 0 {
		t.Error("Insert called after resolver failure")
	}
}

func TestEdit(t *testing.T) {
	t.Parallel()

	var gotNumber string
	protocols := &protocolRepoMock{
		UpdateByNumberFunc: func(ctx context.Context, number string, p domain.Protocol) error {
			gotNumber = number
			return nil
		},
	}
	audit := &auditRecorderMock{}
	svc := newTestService(protocols, okResolver(int64Ptr(5), nil), audit, passthroughTx())

	err := svc.Edit(context.Background(), Input{
		Number:           " 10/2025 ",
		PersonName:       "Ana",
		DeliveryDateText: "01/04/2025",
	})
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if gotNumber != "10/2025" {
		t.Errorf("update number = %q, want trimmed 10/2025", gotNumber)
	}

	updates := protocols.UpdateCalls()
	if len(updates) != 1 {
		t.Fatalf("UpdateByNumber calls = %d, want 1", len(updates))
	}
	if updates[0].DeliveryDate == nil {
		t.Error("DeliveryDate = nil, want parsed")
	}
	if updates[0].PersonID == nil || *updates[0].PersonID != 5 {
		t.Errorf("PersonID = %v, want 5", updates[0].PersonID)
	}

	calls := audit.RecordCalls()
	if len(calls) != 1 || calls[0].Action != domain.AuditActionEdit {
		t.Errorf("audit calls = %+v, want one EDIT entry", calls)
	}
}

func TestEdit_NotFound(t *testing.T) {
	t.Parallel()

	protocols := &protocolRepoMock{
		UpdateByNumberFunc: func(ctx context.Context, number string, p domain.Protocol) error {
			return domain.ErrNotFound
		},
	}
	audit := &auditRecorderMock{}
	svc := newTestService(protocols, okResolver(nil, nil), audit, passthroughTx())

	err := svc.Edit(context.Background(), Input{Number: "missing/2025"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(audit.RecordCalls()) != 0 {
		t.Error("audit recorded for missed edit")
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	protocols := &protocolRepoMock{
		DeactivateFunc: func(ctx context.Context, id int64) (string, bool, error) {
			return "44/2025", true, nil
		},
	}
	audit := &auditRecorderMock{}
	svc := newTestService(protocols, &identityResolverMock{}, audit, passthroughTx())

	ctx := ctxutil.WithOperator(context.Background(), "operador.y")
	if err := svc.Delete(ctx, 7); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	calls := audit.RecordCalls()
	if len(calls) != 1 {
		t.Fatalf("audit calls = %d, want 1", len(calls))
	}
	if calls[0].Operator != "operador.y" {
		t.Errorf("audit operator = %q", calls[0].Operator)
	}
	if calls[0].Action != domain.AuditActionDelete {
		t.Errorf("audit action = %q", calls[0].Action)
	}
	if !strings.Contains(calls[0].Details, "44/2025") {
		t.Errorf("audit details = %q, want protocol number mentioned", calls[0].Details)
	}
}

func TestDelete_AlreadyInactive(t *testing.T) {
	t.Parallel()

	protocols := &protocolRepoMock{
		DeactivateFunc: func(ctx context.Context, id int64) (string, bool, error) {
			return "44/2025", false, nil
		},
	}
	audit := &auditRecorderMock{}
	svc := newTestService(protocols, &identityResolverMock{}, audit, passthroughTx())

	if err := svc.Delete(context.Background(), 7); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(audit.RecordCalls()) != 0 {
		t.Error("audit recorded for already-inactive protocol")
	}
}

func TestDelete_NotFound(t *testing.T) {
	t.Parallel()

	protocols := &protocolRepoMock{
		DeactivateFunc: func(ctx context.Context, id int64) (string, bool, error) {
			return "", false, domain.ErrNotFound
		},
	}
	svc := newTestService(protocols, &identityResolverMock{}, &auditRecorderMock{}, passthroughTx())

	if err := svc.Delete(context.Background(), 404); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListActive(t *testing.T) {
	t.Parallel()

	listings := []domain.ProtocolListing{
		{Protocol: domain.Protocol{ID: 1, Number: "2/2025"}, PersonName: "Ana"},
		{Protocol: domain.Protocol{ID: 2, Number: "1/2025"}},
	}
	protocols := &protocolRepoMock{
		ListActiveFunc: func(ctx context.Context) ([]domain.ProtocolListing, error) {
			return listings, nil
		},
	}
	svc := newTestService(protocols, &identityResolverMock{}, &auditRecorderMock{}, passthroughTx())

	got, err := svc.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(got) != 2 || got[0].Number != "2/2025" {
		t.Errorf("listings = %+v", got)
	}
}
