package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sisregip/sisregip-backend/internal/domain"
	"github.com/sisregip/sisregip-backend/internal/service/registry"
)

type registryService interface {
	ListActive(ctx context.Context) ([]domain.ProtocolListing, error)
	Get(ctx context.Context, id int64) (*domain.ProtocolListing, error)
	Add(ctx context.Context, in registry.Input) (int64, error)
	Edit(ctx context.Context, in registry.Input) error
	Delete(ctx context.Context, id int64) error
}

// ProtocolHandler serves the protocol CRUD endpoints.
type ProtocolHandler struct {
	registry registryService
	log      *slog.Logger
}

// NewProtocolHandler creates a ProtocolHandler.
func NewProtocolHandler(log *slog.Logger, registry registryService) *ProtocolHandler {
	return &ProtocolHandler{registry: registry, log: log}
}

// protocolJSON is the wire shape of one protocol row. The uppercase keys
// double as column titles in the client's table, so they stay as-is.
type protocolJSON struct {
	ID           int64  `json:"ID"`
	Number       string `json:"PROT"`
	ProtocolDate string `json:"DATA"`
	PersonName   string `json:"NOME"`
	RecordNumber string `json:"PMH"`
	DeliveryDate string `json:"ENTREGA"`
	Recipient    string `json:"RECEBIMENTO"`
}

func toProtocolJSON(l domain.ProtocolListing) protocolJSON {
	j := protocolJSON{
		ID:           l.ID,
		Number:       l.Number,
		ProtocolDate: domain.FormatDate(l.ProtocolDate),
		PersonName:   l.PersonName,
		DeliveryDate: domain.FormatDate(l.DeliveryDate),
		Recipient:    l.RecipientName,
	}
	if l.RecordNumber != nil {
		j.RecordNumber = *l.RecordNumber
	}
	return j
}

// List handles GET /api/protocols.
func (h *ProtocolHandler) List(w http.ResponseWriter, r *http.Request) {
	listings, err := h.registry.ListActive(r.Context())
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}

	out := make([]protocolJSON, len(listings))
	for i, l := range listings {
		out[i] = toProtocolJSON(l)
	}
	writeJSON(w, http.StatusOK, out)
}

// protocolInput is the request body of add and edit.
type protocolInput struct {
	Number       string `json:"PROT"`
	ProtocolDate string `json:"DATA"`
	PersonName   string `json:"NOME"`
	RecordNumber string `json:"PMH"`
	DeliveryDate string `json:"ENTREGA"`
	Recipient    string `json:"RECEBIMENTO"`
}

func (in protocolInput) toInput() registry.Input {
	return registry.Input{
		Number:           in.Number,
		ProtocolDateText: in.ProtocolDate,
		PersonName:       in.PersonName,
		RecordNumber:     in.RecordNumber,
		DeliveryDateText: in.DeliveryDate,
		RecipientName:    in.Recipient,
	}
}

// Add handles POST /api/protocols/add.
func (h *ProtocolHandler) Add(w http.ResponseWriter, r *http.Request) {
	var in protocolInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(h.log, w, r, err)
		return
	}

	if _, err := h.registry.Add(r.Context(), in.toInput()); err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeOK(w, "Protocolo adicionado com sucesso.")
}

// Edit handles POST /api/protocols/edit.
func (h *ProtocolHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var in protocolInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(h.log, w, r, err)
		return
	}

	if err := h.registry.Edit(r.Context(), in.toInput()); err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeOK(w, "Protocolo editado com sucesso.")
}

// Delete handles POST /api/protocols/delete.
func (h *ProtocolHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID int64 `json:"ID"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(h.log, w, r, err)
		return
	}
	if in.ID == 0 {
		writeError(h.log, w, r, domain.NewValidationError("ID", "id do protocolo é obrigatório"))
		return
	}

	if err := h.registry.Delete(r.Context(), in.ID); err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeOK(w, "Protocolo excluído com sucesso.")
}
