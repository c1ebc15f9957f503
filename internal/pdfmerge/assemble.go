package pdfmerge

import (
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfcpuAssembler extracts page selections and concatenates documents.
// Scanner output frequently violates the letter of the PDF spec, so
// validation runs relaxed.
type pdfcpuAssembler struct{}

func pdfcpuConf() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

func (pdfcpuAssembler) Select(path string, pages []int, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := api.Trim(f, w, pageSelection(pages), pdfcpuConf()); err != nil {
		return fmt.Errorf("select pages of %s: %w", path, err)
	}
	return nil
}

func (pdfcpuAssembler) Merge(docs []io.ReadSeeker, w io.Writer) error {
	if err := api.MergeRaw(docs, w, false, pdfcpuConf()); err != nil {
		return fmt.Errorf("concatenate documents: %w", err)
	}
	return nil
}
