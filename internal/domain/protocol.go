package domain

import "time"

// Protocol is a logged paper-document handoff record, identified by an
// external protocol number. Rows are never physically removed: Active=false
// marks a soft-deleted protocol, which keeps audit-trail references valid
// and frees its number for reuse by a new active row.
type Protocol struct {
	ID           int64
	Number       string
	ProtocolDate *time.Time
	PersonID     *int64
	// RecordNumber is the denormalized copy of the person's record number
	// (PMH) captured at registration time.
	RecordNumber *string
	DeliveryDate *time.Time
	RecipientID  *int64
	Active       bool
}

// Delivered reports whether the document has been picked up.
func (p Protocol) Delivered() bool {
	return p.DeliveryDate != nil
}

// ProtocolListing is a Protocol joined with the resolved person and
// recipient names for display. Names are empty strings when the protocol
// has no person or recipient reference.
type ProtocolListing struct {
	Protocol
	PersonName    string
	RecipientName string
}

// ReportRow is one line of the protocol report, with every field already
// formatted for display (dd/mm/yyyy dates, empty string for missing values).
type ReportRow struct {
	Number        string
	ProtocolDate  string
	PersonName    string
	RecordNumber  string
	DeliveryDate  string
	RecipientName string
}

// ReportFilter restricts the report to protocols whose protocol date falls
// in a given month or year. The zero value applies no filter; a non-zero
// Month requires a non-zero Year.
type ReportFilter struct {
	Year  int
	Month time.Month
}

// IsZero reports whether the filter applies no restriction.
func (f ReportFilter) IsZero() bool {
	return f.Year == 0 && f.Month == 0
}

// Validate rejects a month filter without a year.
func (f ReportFilter) Validate() error {
	if f.Month != 0 && f.Year == 0 {
		return NewValidationError("filter", "month filter requires a year")
	}
	if f.Month < 0 || f.Month > 12 {
		return NewValidationError("filter", "month out of range")
	}
	return nil
}
