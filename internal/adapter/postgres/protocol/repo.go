// Package protocol implements the Protocol repository using PostgreSQL.
// It provides CRUD with soft delete over the protocolo table and the joined
// listings used by the dashboard and the report.
package protocol

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/sisregip/sisregip-backend/internal/adapter/postgres"
	"github.com/sisregip/sisregip-backend/internal/domain"
)

// Repo provides protocol persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new protocol repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const listingColumns = `
    p.id, p.prot, p.data_protocolo, p.usuario_id, COALESCE(u.nome, ''), p.pmh,
    p.data_entrega, p.recebedor_id, COALESCE(r.nome, ''), p.ativo`

const listActiveSQL = `
SELECT` + listingColumns + `
FROM protocolo p
LEFT JOIN usuario u ON p.usuario_id = u.id
LEFT JOIN recebedor r ON p.recebedor_id = r.id
WHERE p.ativo
ORDER BY p.data_protocolo DESC NULLS LAST, p.id DESC`

const getByIDSQL = `
SELECT` + listingColumns + `
FROM protocolo p
LEFT JOIN usuario u ON p.usuario_id = u.id
LEFT JOIN recebedor r ON p.recebedor_id = r.id
WHERE p.id = $1`

const insertSQL = `
INSERT INTO protocolo (prot, data_protocolo, usuario_id, pmh, data_entrega, recebedor_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

const updateByNumberSQL = `
UPDATE protocolo
SET data_protocolo = $1,
    usuario_id = $2,
    pmh = $3,
    data_entrega = $4,
    recebedor_id = $5
WHERE prot = $6 AND ativo`

const deactivateSQL = `
UPDATE protocolo SET ativo = FALSE WHERE id = $1 AND ativo
RETURNING prot`

const numberByIDSQL = `SELECT prot FROM protocolo WHERE id = $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListActive returns all active protocols with joined person and recipient
// names, newest protocol date first (rows without a date sort last).
// Returns an empty slice (not nil) when there are no active protocols.
func (r *Repo) ListActive(ctx context.Context) ([]domain.ProtocolListing, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listActiveSQL)
	if err != nil {
		return nil, fmt.Errorf("list active protocols: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

// GetByID returns the protocol with the given internal id, active or not.
// Soft-deleted rows stay retrievable here so audit references never dangle.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.ProtocolListing, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	l, err := scanListing(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "protocolo", fmt.Sprintf("id %d", id))
	}
	return l, nil
}

// ListForReport returns active protocols as display-formatted report rows,
// optionally filtered by protocol-date month or year, ordered by protocol
// number.
func (r *Repo) ListForReport(ctx context.Context, filter domain.ReportFilter) ([]domain.ReportRow, error) {
	qb := sq.Select(
		"COALESCE(p.prot, '')",
		"COALESCE(TO_CHAR(p.data_protocolo, 'DD/MM/YYYY'), '')",
		"COALESCE(u.nome, '')",
		"COALESCE(p.pmh, '')",
		"COALESCE(TO_CHAR(p.data_entrega, 'DD/MM/YYYY'), '')",
		"COALESCE(r.nome, '')",
	).
		From("protocolo p").
		LeftJoin("usuario u ON p.usuario_id = u.id").
		LeftJoin("recebedor r ON p.recebedor_id = r.id").
		Where("p.ativo").
		OrderBy("p.prot").
		PlaceholderFormat(sq.Dollar)

	switch {
	case filter.Month != 0:
		qb = qb.Where("TO_CHAR(p.data_protocolo, 'YYYY-MM') = ?",
			fmt.Sprintf("%04d-%02d", filter.Year, int(filter.Month)))
	case filter.Year != 0:
		qb = qb.Where("EXTRACT(YEAR FROM p.data_protocolo) = ?", filter.Year)
	}

	sqlStr, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build report query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list protocols for report: %w", err)
	}
	defer rows.Close()

	result := make([]domain.ReportRow, 0)
	for rows.Next() {
		var row domain.ReportRow
		if err := rows.Scan(
			&row.Number, &row.ProtocolDate, &row.PersonName,
			&row.RecordNumber, &row.DeliveryDate, &row.RecipientName,
		); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Insert creates a new active protocol and returns its internal id.
// A second active row with the same number violates the partial unique
// index and returns domain.ErrAlreadyExists.
func (r *Repo) Insert(ctx context.Context, p domain.Protocol) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var id int64
	err := q.QueryRow(ctx, insertSQL,
		p.Number, p.ProtocolDate, p.PersonID, p.RecordNumber, p.DeliveryDate, p.RecipientID,
	).Scan(&id)
	if err != nil {
		return 0, postgres.MapError(err, "protocolo", p.Number)
	}
	return id, nil
}

// UpdateByNumber rewrites the mutable fields of the active protocol with the
// given number. Returns domain.ErrNotFound when no active row matches.
func (r *Repo) UpdateByNumber(ctx context.Context, number string, p domain.Protocol) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, updateByNumberSQL,
		p.ProtocolDate, p.PersonID, p.RecordNumber, p.DeliveryDate, p.RecipientID, number,
	)
	if err != nil {
		return postgres.MapError(err, "protocolo", number)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("protocolo %s: %w", number, domain.ErrNotFound)
	}
	return nil
}

// Deactivate soft-deletes the protocol with the given internal id and
// returns its number, captured before the flag flips so the audit trail can
// reference it. deactivated=false means the row was already inactive
// (idempotent). A missing row returns domain.ErrNotFound.
func (r *Repo) Deactivate(ctx context.Context, id int64) (number string, deactivated bool, err error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	err = q.QueryRow(ctx, deactivateSQL, id).Scan(&number)
	if err == nil {
		return number, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", false, postgres.MapError(err, "protocolo", fmt.Sprintf("id %d", id))
	}

	// No active row flipped: either the id is unknown or the row is already
	// inactive.
	if err := q.QueryRow(ctx, numberByIDSQL, id).Scan(&number); err != nil {
		return "", false, postgres.MapError(err, "protocolo", fmt.Sprintf("id %d", id))
	}
	return number, false, nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanListings(rows pgx.Rows) ([]domain.ProtocolListing, error) {
	listings := make([]domain.ProtocolListing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan protocol listing: %w", err)
		}
		listings = append(listings, *l)
	}
	return listings, rows.Err()
}

func scanListing(row pgx.Row) (*domain.ProtocolListing, error) {
	var l domain.ProtocolListing
	err := row.Scan(
		&l.ID, &l.Number, &l.ProtocolDate, &l.PersonID, &l.PersonName, &l.RecordNumber,
		&l.DeliveryDate, &l.RecipientID, &l.RecipientName, &l.Active,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
