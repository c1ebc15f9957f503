package rest

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/sisregip/sisregip-backend/internal/domain"
	"github.com/sisregip/sisregip-backend/internal/pdfmerge"
	"github.com/sisregip/sisregip-backend/internal/service/registry"
	"github.com/sisregip/sisregip-backend/internal/service/report"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type registryServiceMock struct {
	ListActiveFunc func(ctx context.Context) ([]domain.ProtocolListing, error)
	GetFunc        func(ctx context.Context, id int64) (*domain.ProtocolListing, error)
	AddFunc        func(ctx context.Context, in registry.Input) (int64, error)
	EditFunc       func(ctx context.Context, in registry.Input) error
	DeleteFunc     func(ctx context.Context, id int64) error

	mu       sync.Mutex
	addCalls []registry.Input
}

func (m *registryServiceMock) ListActive(ctx context.Context) ([]domain.ProtocolListing, error) {
	return m.ListActiveFunc(ctx)
}

func (m *registryServiceMock) Get(ctx context.Context, id int64) (*domain.ProtocolListing, error) {
	return m.GetFunc(ctx, id)
}

func (m *registryServiceMock) Add(ctx context.Context, in registry.Input) (int64, error) {
	m.mu.Lock()
	m.addCalls = append(m.addCalls, in)
	m.mu.Unlock()
	return m.AddFunc(ctx, in)
}

func (m *registryServiceMock) Edit(ctx context.Context, in registry.Input) error {
	return m.EditFunc(ctx, in)
}

func (m *registryServiceMock) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

func (m *registryServiceMock) AddCalls() []registry.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addCalls
}

type reportServiceMock struct {
	BuildFunc func(ctx context.Context, filter domain.ReportFilter) (*report.Report, error)

	mu    sync.Mutex
	calls []domain.ReportFilter
}

func (m *reportServiceMock) Build(ctx context.Context, filter domain.ReportFilter) (*report.Report, error) {
	m.mu.Lock()
	m.calls = append(m.calls, filter)
	m.mu.Unlock()
	return m.BuildFunc(ctx, filter)
}

func (m *reportServiceMock) BuildCalls() []domain.ReportFilter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mergeServiceMock struct {
	ListFolderFunc func(folder string) ([]string, error)
	MergeFunc      func(ctx context.Context, folder string, files []string, removeBlank bool) (*pdfmerge.Result, error)
}

func (m *mergeServiceMock) ListFolder(folder string) ([]string, error) {
	return m.ListFolderFunc(folder)
}

func (m *mergeServiceMock) Merge(ctx context.Context, folder string, files []string, removeBlank bool) (*pdfmerge.Result, error) {
	return m.MergeFunc(ctx, folder, files, removeBlank)
}

type auditServiceMock struct {
	RecentFunc func(ctx context.Context, limit int) ([]domain.AuditEntry, error)

	mu    sync.Mutex
	calls []recordedAudit
}

type recordedAudit struct {
	Operator string
	Action   domain.AuditAction
	Details  string
}

func (m *auditServiceMock) Record(ctx context.Context, operator string, action domain.AuditAction, details string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, recordedAudit{Operator: operator, Action: action, Details: details})
}

func (m *auditServiceMock) Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	return m.RecentFunc(ctx, limit)
}

func (m *auditServiceMock) RecordCalls() []recordedAudit {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
