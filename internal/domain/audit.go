package domain

import "time"

// AuditAction identifies the kind of operator action being logged.
type AuditAction string

const (
	AuditActionAdd          AuditAction = "ADD"
	AuditActionEdit         AuditAction = "EDIT"
	AuditActionDelete       AuditAction = "DELETE"
	AuditActionReport       AuditAction = "REPORT"
	AuditActionSessionStart AuditAction = "SESSION_START"
	AuditActionSessionEnd   AuditAction = "SESSION_END"
)

// OperatorUnidentified is recorded when no operator name was supplied.
// The value comes verbatim from the source system and is load-bearing for
// display: operator names are stored and shown exactly as typed, never
// case-normalized, and the sentinel is the only all-caps value guaranteed
// to be present.
const OperatorUnidentified = "NÃO IDENTIFICADO"

// AuditEntry is an immutable log record of an operator action. Entries are
// append-only: the application never updates or deletes them, and they may
// reference protocol numbers of rows that have since been soft-deleted.
type AuditEntry struct {
	ID        int64
	Operator  string
	Action    AuditAction
	Details   string
	CreatedAt time.Time
}
