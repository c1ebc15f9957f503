package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sisregip/sisregip-backend/internal/domain"
)

func TestAuditRegister_SessionStart(t *testing.T) {
	t.Parallel()

	svc := &auditServiceMock{}
	h := NewAuditHandler(testLogger(), svc)

	body := `{"operador":"MARIA","acao":"SESSAO_INICIO","detalhes":"Login no sistema"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auditoria/registrar", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	calls := svc.RecordCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 Record call, got %d", len(calls))
	}
	if calls[0].Operator != "MARIA" {
		t.Errorf("operator = %q", calls[0].Operator)
	}
	if calls[0].Action != domain.AuditActionSessionStart {
		t.Errorf("action = %q, want session start", calls[0].Action)
	}
	if calls[0].Details != "Login no sistema" {
		t.Errorf("details = %q", calls[0].Details)
	}
}

func TestAuditRegister_CanonicalActionName(t *testing.T) {
	t.Parallel()

	svc := &auditServiceMock{}
	h := NewAuditHandler(testLogger(), svc)

	body := `{"operador":"MARIA","acao":"session_end"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auditoria/registrar", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	calls := svc.RecordCalls()
	if len(calls) != 1 || calls[0].Action != domain.AuditActionSessionEnd {
		t.Errorf("calls = %+v, want one session end", calls)
	}
}

func TestAuditRegister_UnknownAction(t *testing.T) {
	t.Parallel()

	svc := &auditServiceMock{}
	h := NewAuditHandler(testLogger(), svc)

	body := `{"operador":"MARIA","acao":"DELETE"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auditoria/registrar", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if len(svc.RecordCalls()) != 0 {
		t.Error("Record called for rejected action")
	}
}

func TestAuditRecent(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	svc := &auditServiceMock{
		RecentFunc: func(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
			if limit != 10 {
				t.Errorf("limit = %d, want 10", limit)
			}
			return []domain.AuditEntry{
				{ID: 2, Operator: "MARIA", Action: domain.AuditActionAdd, Details: "protocolo 1/2025 adicionado", CreatedAt: created},
			}, nil
		},
	}
	h := NewAuditHandler(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/api/auditoria/recentes?limit=10", nil)
	rec := httptest.NewRecorder()

	h.Recent(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var rows []auditEntryJSON
	if err := json.NewDecoder(rec.Body).Decode(&rows); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Action != "ADD" || rows[0].Operator != "MARIA" {
		t.Errorf("row = %+v", rows[0])
	}
	if rows[0].CreatedAt != created.Format(time.RFC3339) {
		t.Errorf("criado_em = %q", rows[0].CreatedAt)
	}
}

func TestAuditRecent_BadLimit(t *testing.T) {
	t.Parallel()

	h := NewAuditHandler(testLogger(), &auditServiceMock{})

	req := httptest.NewRequest(http.MethodGet, "/api/auditoria/recentes?limit=many", nil)
	rec := httptest.NewRecorder()

	h.Recent(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
