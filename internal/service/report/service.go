// Package report builds the printable protocol report: active protocols
// filtered by month or year, rendered as a standalone HTML page with
// delivery totals.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sisregip/sisregip-backend/internal/domain"
	"github.com/sisregip/sisregip-backend/pkg/ctxutil"
)

type protocolReader interface {
	ListForReport(ctx context.Context, filter domain.ReportFilter) ([]domain.ReportRow, error)
}

type auditRecorder interface {
	Record(ctx context.Context, operator string, action domain.AuditAction, details string)
}

// Report is a rendered protocol report with its summary counters.
type Report struct {
	HTML      []byte
	Total     int
	Delivered int
	Pending   int
	EmittedAt time.Time
}

// Service renders protocol reports.
type Service struct {
	protocols protocolReader
	audit     auditRecorder
	log       *slog.Logger
	now       func() time.Time
}

// NewService creates a new report Service.
func NewService(log *slog.Logger, protocols protocolReader, audit auditRecorder) *Service {
	return &Service{
		protocols: protocols,
		audit:     audit,
		log:       log.With("service", "report"),
		now:       time.Now,
	}
}

// Build renders the report for the given filter and records a REPORT audit
// entry. A protocol counts as delivered when its receipt date is filled in.
func (s *Service) Build(ctx context.Context, filter domain.ReportFilter) (*Report, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.protocols.ListForReport(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list protocols for report: %w", err)
	}

	rep := &Report{
		Total:     len(rows),
		EmittedAt: s.now(),
	}
	for _, row := range rows {
		if strings.TrimSpace(row.DeliveryDate) != "" {
			rep.Delivered++
		}
	}
	rep.Pending = rep.Total - rep.Delivered

	html, err := render(rows, rep)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	rep.HTML = html

	s.audit.Record(ctx, ctxutil.OperatorFromCtx(ctx), domain.AuditActionReport,
		fmt.Sprintf("relatório emitido (%s, %d protocolos)", describeFilter(filter), rep.Total))

	s.log.InfoContext(ctx, "report built",
		slog.Int("total", rep.Total),
		slog.Int("delivered", rep.Delivered),
	)

	return rep, nil
}

func describeFilter(f domain.ReportFilter) string {
	switch {
	case f.Month != 0:
		return fmt.Sprintf("mês %04d-%02d", f.Year, int(f.Month))
	case f.Year != 0:
		return fmt.Sprintf("ano %d", f.Year)
	default:
		return "sem filtro"
	}
}
