package pdfmerge

import "strings"

// DefaultBlankThreshold is the content-stream size in bytes under which a
// page without extractable text counts as blank. Scanner padding pages
// carry a tiny drawing stream; real scanned content does not.
const DefaultBlankThreshold = 100

// isBlank reports whether a page is considered blank: no extractable text
// and a content stream smaller than the threshold. A page with any text is
// never blank, regardless of stream size.
func isBlank(p PageInfo, threshold int) bool {
	if strings.TrimSpace(p.Text) != "" {
		return false
	}
	return p.ContentLen < threshold
}
