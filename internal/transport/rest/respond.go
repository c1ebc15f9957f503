// Package rest exposes the JSON API consumed by the desktop client:
// protocol CRUD, report preview, PDF folder tooling, and audit logging.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sisregip/sisregip-backend/internal/domain"
)

// statusResponse is the envelope for mutations: a flag plus an operator
// facing message in Portuguese, which the client shows verbatim.
type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeOK(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: message})
}

func writeFail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, statusResponse{Success: false, Message: message})
}

// writeError maps domain errors to HTTP statuses. Unknown errors become a
// generic 500; the detail stays in the log, not the response.
func writeError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError

	switch {
	case errors.As(err, &verr) && len(verr.Errors) > 0:
		writeFail(w, http.StatusBadRequest, verr.Errors[0].Message)
	case errors.Is(err, domain.ErrValidation):
		writeFail(w, http.StatusBadRequest, "dados inválidos")
	case errors.Is(err, domain.ErrNotFound):
		writeFail(w, http.StatusNotFound, "registro não encontrado")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeFail(w, http.StatusConflict, "já existe um protocolo ativo com este número")
	case errors.Is(err, domain.ErrNoValidPages):
		writeFail(w, http.StatusBadRequest, "nenhuma página válida encontrada")
	default:
		log.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		writeFail(w, http.StatusInternalServerError, "erro interno")
	}
}

// decodeJSON reads a JSON body into dst, rejecting unknown garbage early.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewValidationError("body", "corpo JSON inválido")
	}
	return nil
}
