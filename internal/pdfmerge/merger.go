// Package pdfmerge combines PDF files from a folder into a single document,
// optionally dropping pages that carry no visible content.
package pdfmerge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sisregip/sisregip-backend/internal/domain"
)

// DefaultOutputName is the file name of the merged document, written into
// the source folder. The leading underscore keeps it at the top of name
// sorted listings.
const DefaultOutputName = "_ARQUIVO_FINAL_MESCLADO.pdf"

// PageInfo describes one page of an inspected document.
type PageInfo struct {
	// Text is the extracted plain text of the page.
	Text string
	// ContentLen is the byte length of the page's content streams.
	ContentLen int
}

type inspector interface {
	Inspect(path string) ([]PageInfo, error)
}

type assembler interface {
	Select(path string, pages []int, w io.Writer) error
	Merge(docs []io.ReadSeeker, w io.Writer) error
}

// Result reports what a merge produced.
type Result struct {
	// OutputPath is the absolute path of the written document.
	OutputPath string
	// Pages is the number of pages in the merged document.
	Pages int
	// SkippedFiles lists input files that were missing or unreadable.
	SkippedFiles []string
}

// Merger merges PDF files. Unreadable inputs are skipped with a warning
// rather than failing the whole merge, matching how operators actually use
// the tool on folders of scanned documents of mixed quality.
type Merger struct {
	inspector  inspector
	assembler  assembler
	log        *slog.Logger
	threshold  int
	outputName string
}

// Option configures a Merger.
type Option func(*Merger)

// WithBlankThreshold overrides the content-stream size below which a
// textless page counts as blank.
func WithBlankThreshold(n int) Option {
	return func(m *Merger) { m.threshold = n }
}

// WithOutputName overrides the merged document's file name.
func WithOutputName(name string) Option {
	return func(m *Merger) { m.outputName = name }
}

// NewMerger creates a Merger backed by the real PDF toolchain.
func NewMerger(log *slog.Logger, opts ...Option) *Merger {
	m := &Merger{
		inspector:  &pdfInspector{},
		assembler:  &pdfcpuAssembler{},
		log:        log.With("service", "pdfmerge"),
		threshold:  DefaultBlankThreshold,
		outputName: DefaultOutputName,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ListFolder returns the names of the PDF files in folder, oldest
// modification first, so the merge order follows scan order.
func (m *Merger) ListFolder(folder string) ([]string, error) {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return nil, domain.NewValidationError("folder_path", "not a readable folder")
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("read folder: %w", err)
	}

	type candidate struct {
		name  string
		mtime int64
	}
	var files []candidate
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, candidate{name: e.Name(), mtime: fi.ModTime().UnixNano()})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].mtime != files[j].mtime {
			return files[i].mtime < files[j].mtime
		}
		return files[i].name < files[j].name
	})

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.name
	}
	return names, nil
}

// Merge combines the named files from folder into a single document written
// next to them. When removeBlank is set, pages with no extractable text and
// a content stream under the threshold are dropped.
//
// Files that are missing or cannot be parsed are skipped and reported in
// Result.SkippedFiles. If no page survives at all, the merge fails with
// domain.ErrNoValidPages and nothing is written.
func (m *Merger) Merge(ctx context.Context, folder string, files []string, removeBlank bool) (*Result, error) {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return nil, domain.NewValidationError("folder_path", "not a readable folder")
	}
	if len(files) == 0 {
		return nil, domain.NewValidationError("files_to_merge", "no files selected")
	}

	res := &Result{}
	var docs []io.ReadSeeker

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Inputs come from API clients; never let them escape the folder.
		if filepath.Base(name) != name {
			m.log.WarnContext(ctx, "rejecting file name with path separators", slog.String("file", name))
			res.SkippedFiles = append(res.SkippedFiles, name)
			continue
		}

		path := filepath.Join(folder, name)
		if _, err := os.Stat(path); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("stat %s: %w", name, err)
			}
			res.SkippedFiles = append(res.SkippedFiles, name)
			continue
		}

		pages, err := m.inspector.Inspect(path)
		if err != nil {
			m.log.WarnContext(ctx, "skipping unreadable file",
				slog.String("file", name),
				slog.Any("error", err),
			)
			res.SkippedFiles = append(res.SkippedFiles, name)
			continue
		}

		var keep []int
		for i, p := range pages {
			if removeBlank && isBlank(p, m.threshold) {
				continue
			}
			keep = append(keep, i+1)
		}
		if len(keep) == 0 {
			continue
		}

		var buf bytes.Buffer
		if err := m.assembler.Select(path, keep, &buf); err != nil {
			m.log.WarnContext(ctx, "skipping file that failed page extraction",
				slog.String("file", name),
				slog.Any("error", err),
			)
			res.SkippedFiles = append(res.SkippedFiles, name)
			continue
		}

		docs = append(docs, bytes.NewReader(buf.Bytes()))
		res.Pages += len(keep)
	}

	if res.Pages == 0 {
		return nil, domain.ErrNoValidPages
	}

	res.OutputPath = filepath.Join(folder, m.outputName)

	var out bytes.Buffer
	if err := m.assembler.Merge(docs, &out); err != nil {
		return nil, fmt.Errorf("merge documents: %w", err)
	}
	if err := os.WriteFile(res.OutputPath, out.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("write merged document: %w", err)
	}

	m.log.InfoContext(ctx, "documents merged",
		slog.String("output", res.OutputPath),
		slog.Int("pages", res.Pages),
		slog.Int("skipped", len(res.SkippedFiles)),
	)

	return res, nil
}

// pageSelection renders a page index list as pdfcpu selection strings.
func pageSelection(pages []int) []string {
	sel := make([]string, len(pages))
	for i, p := range pages {
		sel[i] = strconv.Itoa(p)
	}
	return sel
}
