package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sisregip/sisregip-backend/internal/domain"
)

type auditService interface {
	Record(ctx context.Context, operator string, action domain.AuditAction, details string)
	Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}

// AuditHandler serves the audit trail endpoints.
type AuditHandler struct {
	audit auditService
	log   *slog.Logger
}

// NewAuditHandler creates an AuditHandler.
func NewAuditHandler(log *slog.Logger, audit auditService) *AuditHandler {
	return &AuditHandler{audit: audit, log: log}
}

// wireActions translates the client's action names. The login client still
// sends the legacy Portuguese values.
var wireActions = map[string]domain.AuditAction{
	"SESSAO_INICIO": domain.AuditActionSessionStart,
	"SESSAO_FIM":    domain.AuditActionSessionEnd,
	"SESSION_START": domain.AuditActionSessionStart,
	"SESSION_END":   domain.AuditActionSessionEnd,
}

// Register handles POST /api/auditoria/registrar. Only session events may
// be logged directly; every other action is written by the services that
// perform it.
func (h *AuditHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Operator string `json:"operador"`
		Action   string `json:"acao"`
		Details  string `json:"detalhes"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(h.log, w, r, err)
		return
	}

	action, ok := wireActions[strings.ToUpper(strings.TrimSpace(in.Action))]
	if !ok {
		writeError(h.log, w, r, domain.NewValidationError("acao", "ação desconhecida"))
		return
	}

	h.audit.Record(r.Context(), in.Operator, action, in.Details)
	writeOK(w, "Sessão registrada.")
}

// auditEntryJSON is the wire shape of one audit entry.
type auditEntryJSON struct {
	ID        int64  `json:"id"`
	Operator  string `json:"operador"`
	Action    string `json:"acao"`
	Details   string `json:"detalhes"`
	CreatedAt string `json:"criado_em"`
}

// Recent handles GET /api/auditoria/recentes.
func (h *AuditHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(h.log, w, r, domain.NewValidationError("limit", "limite inválido"))
			return
		}
		limit = n
	}

	entries, err := h.audit.Recent(r.Context(), limit)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}

	out := make([]auditEntryJSON, len(entries))
	for i, e := range entries {
		out[i] = auditEntryJSON{
			ID:        e.ID,
			Operator:  e.Operator,
			Action:    string(e.Action),
			Details:   e.Details,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, out)
}
