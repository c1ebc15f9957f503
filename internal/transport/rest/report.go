package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sisregip/sisregip-backend/internal/domain"
	"github.com/sisregip/sisregip-backend/internal/service/report"
)

type reportService interface {
	Build(ctx context.Context, filter domain.ReportFilter) (*report.Report, error)
}

// ReportHandler serves the printable report.
type ReportHandler struct {
	reports reportService
	log     *slog.Logger
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(log *slog.Logger, reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports, log: log}
}

// Preview handles POST /api/print/preview. It responds with the rendered
// HTML document; the client opens it in a browser tab for printing.
func (h *ReportHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var in struct {
		FilterType  string `json:"filter_type"`
		FilterValue string `json:"filter_value"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(h.log, w, r, err)
		return
	}

	filter, err := parseFilter(in.FilterType, in.FilterValue)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}

	rep, err := h.reports.Build(r.Context(), filter)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(rep.HTML) //nolint:errcheck
}

// parseFilter turns the client's filter_type/filter_value pair into a
// ReportFilter: "month" carries "YYYY-MM", "year" carries "YYYY", anything
// else means no filter.
func parseFilter(filterType, filterValue string) (domain.ReportFilter, error) {
	filterValue = strings.TrimSpace(filterValue)

	switch filterType {
	case "month":
		if filterValue == "" {
			return domain.ReportFilter{}, nil
		}
		t, err := time.Parse("2006-01", filterValue)
		if err != nil {
			return domain.ReportFilter{}, domain.NewValidationError("filter_value", "mês inválido, use AAAA-MM")
		}
		return domain.ReportFilter{Year: t.Year(), Month: t.Month()}, nil
	case "year":
		if filterValue == "" {
			return domain.ReportFilter{}, nil
		}
		year, err := strconv.Atoi(filterValue)
		if err != nil || year <= 0 {
			return domain.ReportFilter{}, domain.NewValidationError("filter_value", "ano inválido")
		}
		return domain.ReportFilter{Year: year}, nil
	default:
		return domain.ReportFilter{}, nil
	}
}
