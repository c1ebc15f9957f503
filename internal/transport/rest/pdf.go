package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sisregip/sisregip-backend/internal/domain"
	"github.com/sisregip/sisregip-backend/internal/pdfmerge"
)

type mergeService interface {
	ListFolder(folder string) ([]string, error)
	Merge(ctx context.Context, folder string, files []string, removeBlank bool) (*pdfmerge.Result, error)
}

// PDFHandler serves the PDF folder tooling.
type PDFHandler struct {
	merger mergeService
	log    *slog.Logger
}

// NewPDFHandler creates a PDFHandler.
func NewPDFHandler(log *slog.Logger, merger mergeService) *PDFHandler {
	return &PDFHandler{merger: merger, log: log}
}

// ListFiles handles POST /api/list_pdfs.
func (h *PDFHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	var in struct {
		FolderPath string `json:"folder_path"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(h.log, w, r, err)
		return
	}
	if in.FolderPath == "" {
		writeError(h.log, w, r, domain.NewValidationError("folder_path", "Pasta inválida."))
		return
	}

	files, err := h.merger.ListFolder(in.FolderPath)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	if files == nil {
		files = []string{}
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool     `json:"success"`
		Files   []string `json:"files"`
	}{Success: true, Files: files})
}

// MergeFiles handles POST /api/merge_pdfs.
func (h *PDFHandler) MergeFiles(w http.ResponseWriter, r *http.Request) {
	var in struct {
		FolderPath   string   `json:"folder_path"`
		FilesToMerge []string `json:"files_to_merge"`
		RemoveBlank  bool     `json:"remove_blank"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(h.log, w, r, err)
		return
	}
	if in.FolderPath == "" {
		writeError(h.log, w, r, domain.NewValidationError("folder_path", "Pasta inválida."))
		return
	}
	if len(in.FilesToMerge) == 0 {
		writeError(h.log, w, r, domain.NewValidationError("files_to_merge", "Nenhum arquivo selecionado."))
		return
	}

	res, err := h.merger.Merge(r.Context(), in.FolderPath, in.FilesToMerge, in.RemoveBlank)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool     `json:"success"`
		Message string   `json:"message"`
		Output  string   `json:"output"`
		Pages   int      `json:"pages"`
		Skipped []string `json:"skipped,omitempty"`
	}{
		Success: true,
		Message: "Arquivos mesclados!",
		Output:  res.OutputPath,
		Pages:   res.Pages,
		Skipped: res.SkippedFiles,
	})
}
