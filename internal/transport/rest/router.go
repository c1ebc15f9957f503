package rest

import (
	"log/slog"
	"net/http"

	"github.com/sisregip/sisregip-backend/internal/config"
	"github.com/sisregip/sisregip-backend/internal/transport/middleware"
)

// Handlers groups the API handlers wired into the router.
type Handlers struct {
	Protocols *ProtocolHandler
	Reports   *ReportHandler
	PDFs      *PDFHandler
	Audit     *AuditHandler
	Health    *HealthHandler
}

// NewRouter assembles the HTTP routing table with the shared middleware
// chain applied to the API routes. Health probes bypass the chain so they
// stay cheap and log-free.
func NewRouter(log *slog.Logger, corsCfg config.CORSConfig, h Handlers) http.Handler {
	api := middleware.Chain(
		middleware.Recovery(log),
		middleware.RequestID,
		middleware.CORS(corsCfg),
		middleware.Operator,
		middleware.Logger(log),
	)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.Handle("GET /api/protocols", api(http.HandlerFunc(h.Protocols.List)))
	mux.Handle("POST /api/protocols/add", api(http.HandlerFunc(h.Protocols.Add)))
	mux.Handle("POST /api/protocols/edit", api(http.HandlerFunc(h.Protocols.Edit)))
	mux.Handle("POST /api/protocols/delete", api(http.HandlerFunc(h.Protocols.Delete)))

	mux.Handle("POST /api/print/preview", api(http.HandlerFunc(h.Reports.Preview)))

	mux.Handle("POST /api/list_pdfs", api(http.HandlerFunc(h.PDFs.ListFiles)))
	mux.Handle("POST /api/merge_pdfs", api(http.HandlerFunc(h.PDFs.MergeFiles)))

	mux.Handle("POST /api/auditoria/registrar", api(http.HandlerFunc(h.Audit.Register)))
	mux.Handle("GET /api/auditoria/recentes", api(http.HandlerFunc(h.Audit.Recent)))

	// CORS preflight for every API route.
	mux.Handle("OPTIONS /api/", api(http.NotFoundHandler()))

	return mux
}
