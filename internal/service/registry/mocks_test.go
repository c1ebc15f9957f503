package registry

import (
	"context"
	"sync"

	"github.com/sisregip/sisregip-backend/internal/domain"
)

// Hand-written mocks mirroring the consumer-side interfaces in service.go.

type identityResolverMock struct {
	ResolvePersonFunc    func(ctx context.Context, name string, recordNumber *string) (*int64, error)
	ResolveRecipientFunc func(ctx context.Context, name string) (*int64, error)

	mu                   sync.Mutex
	resolvePersonCalls   []string
	resolveRecipientCall []string
}

func (m *identityResolverMock) ResolvePerson(ctx context.Context, name string, recordNumber *string) (*int64, error) {
	m.mu.Lock()
	m.resolvePersonCalls = append(m.resolvePersonCalls, name)
	m.mu.Unlock()
	return m.ResolvePersonFunc(ctx, name, recordNumber)
}

func (m *identityResolverMock) ResolveRecipient(ctx context.Context, name string) (*int64, error) {
	m.mu.Lock()
	m.resolveRecipientCall = append(m.resolveRecipientCall, name)
	m.mu.Unlock()
	return m.ResolveRecipientFunc(ctx, name)
}

func (m *identityResolverMock) ResolvePersonCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolvePersonCalls
}

type protocolRepoMock struct {
	ListActiveFunc     func(ctx context.Context) ([]domain.ProtocolListing, error)
	GetByIDFunc        func(ctx context.Context, id int64) (*domain.ProtocolListing, error)
	InsertFunc         func(ctx context.Context, p domain.Protocol) (int64, error)
	UpdateByNumberFunc func(ctx context.Context, number string, p domain.Protocol) error
	DeactivateFunc     func(ctx context.Context, id int64) (string, bool, error)

	mu          sync.Mutex
	insertCalls []domain.Protocol
	updateCalls []domain.Protocol
}

func (m *protocolRepoMock) ListActive(ctx context.Context) ([]domain.ProtocolListing, error) {
	return m.ListActiveFunc(ctx)
}

func (m *protocolRepoMock) GetByID(ctx context.Context, id int64) (*domain.ProtocolListing, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *protocolRepoMock) Insert(ctx context.Context, p domain.Protocol) (int64, error) {
	m.mu.Lock()
	m.insertCalls = append(m.insertCalls, p)
	m.mu.Unlock()
	return m.InsertFunc(ctx, p)
}

func (m *protocolRepoMock) UpdateByNumber(ctx context.Context, number string, p domain.Protocol) error {
	m.mu.Lock()
	m.updateCalls = append(m.updateCalls, p)
	m.mu.Unlock()
	return m.UpdateByNumberFunc(ctx, number, p)
}

func (m *protocolRepoMock) Deactivate(ctx context.Context, id int64) (string, bool, error) {
	return m.DeactivateFunc(ctx, id)
}

func (m *protocolRepoMock) InsertCalls() []domain.Protocol {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertCalls
}

func (m *protocolRepoMock) UpdateCalls() []domain.Protocol {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateCalls
}

type auditRecorderMock struct {
	mu    sync.Mutex
	calls []auditCall
}

type auditCall struct {
	Operator string
	Action   domain.AuditAction
	Details  string
}

func (m *auditRecorderMock) Record(ctx context.Context, operator string, action domain.AuditAction, details string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, auditCall{Operator: operator, Action: action, Details: details})
}

func (m *auditRecorderMock) RecordCalls() []auditCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	mu    sync.Mutex
	calls int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.RunInTxFunc(ctx, fn)
}

func (m *txManagerMock) RunInTxCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
