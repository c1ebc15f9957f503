// Package audit implements the append-only audit trail using PostgreSQL.
// Rows in the auditoria table are never updated or deleted by the
// application.
package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/sisregip/sisregip-backend/internal/adapter/postgres"
	"github.com/sisregip/sisregip-backend/internal/domain"
)

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const insertSQL = `
INSERT INTO auditoria (operador, acao, detalhes)
VALUES ($1, $2, $3)
RETURNING id, criado_em`

const recentSQL = `
SELECT id, operador, acao, detalhes, criado_em
FROM auditoria
ORDER BY criado_em DESC, id DESC
LIMIT $1`

// Insert appends an audit entry; the timestamp is assigned by the database.
// Callers hand in ready entries — the operator sentinel is the recorder's
// concern, not the repository's.
func (r *Repo) Insert(ctx context.Context, e domain.AuditEntry) (domain.AuditEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	err := q.QueryRow(ctx, insertSQL, e.Operator, string(e.Action), e.Details).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return domain.AuditEntry{}, postgres.MapError(err, "auditoria", string(e.Action))
	}
	return e, nil
}

// Recent returns the newest audit entries, most recent first.
func (r *Repo) Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, recentSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.AuditEntry, 0, limit)
	for rows.Next() {
		var e domain.AuditEntry
		var action string
		if err := rows.Scan(&e.ID, &e.Operator, &action, &e.Details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.Action = domain.AuditAction(action)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
