package pdfmerge

import (
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// pdfInspector reads page text and content-stream sizes. The parser panics
// on some malformed files, so every call is fenced with a recover that
// turns the panic into an error the caller can skip on.
type pdfInspector struct{}

func (pdfInspector) Inspect(path string) (pages []PageInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("parse %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	n := r.NumPage()
	pages = make([]PageInfo, 0, n)
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, PageInfo{})
			continue
		}
		pages = append(pages, PageInfo{
			Text:       pageText(p),
			ContentLen: contentLen(p),
		})
	}
	return pages, nil
}

func pageText(p pdf.Page) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	text, err := p.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

// contentLen sums the byte length of the page's content streams. Contents
// may be a single stream or an array of streams.
func contentLen(p pdf.Page) (n int) {
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()

	contents := p.V.Key("Contents")
	switch contents.Kind() {
	case pdf.Stream:
		return streamLen(contents)
	case pdf.Array:
		total := 0
		for i := 0; i < contents.Len(); i++ {
			total += streamLen(contents.Index(i))
		}
		return total
	default:
		return 0
	}
}

func streamLen(v pdf.Value) int {
	if v.Kind() != pdf.Stream {
		return 0
	}
	data, err := io.ReadAll(v.Reader())
	if err != nil {
		return 0
	}
	return len(data)
}
