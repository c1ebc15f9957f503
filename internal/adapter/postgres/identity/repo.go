// Package identity implements find-or-create resolution of the usuario and
// recebedor tables. Resolution is a trivial read-then-conditional-insert, by
// contract: exact name match, no case folding, and no update of existing
// rows (first write wins).
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/sisregip/sisregip-backend/internal/adapter/postgres"
)

// Repo resolves free-text names into stable person/recipient identities.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new identity repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const (
	selectPersonSQL = `SELECT id FROM usuario WHERE nome = $1`
	insertPersonSQL = `INSERT INTO usuario (nome, prontuario) VALUES ($1, $2) RETURNING id`

	selectRecipientSQL = `SELECT id FROM recebedor WHERE nome = $1`
	insertRecipientSQL = `INSERT INTO recebedor (nome) VALUES ($1) RETURNING id`
)

// ResolvePerson returns the id of the usuario with the exact given name,
// creating the row on first reference. A blank name resolves to no identity
// (nil, nil) — protocols tolerate an absent person. On a hit the stored row
// is returned unchanged even when recordNumber differs from what is stored.
//
// The lookup and insert run on the context querier, so a caller-supplied
// transaction makes the pair one unit of work.
func (r *Repo) ResolvePerson(ctx context.Context, name string, recordNumber *string) (*int64, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	var id int64
	err := q.QueryRow(ctx, selectPersonSQL, name).Scan(&id)
	switch {
	case err == nil:
		return &id, nil
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, fmt.Errorf("lookup usuario: %w", err)
	}

	if err := q.QueryRow(ctx, insertPersonSQL, name, recordNumber).Scan(&id); err != nil {
		return nil, postgres.MapError(err, "usuario", name)
	}
	return &id, nil
}

// ResolveRecipient returns the id of the recebedor with the exact given
// name, creating the row on first reference. A blank name resolves to no
// identity (nil, nil).
func (r *Repo) ResolveRecipient(ctx context.Context, name string) (*int64, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	var id int64
	err := q.QueryRow(ctx, selectRecipientSQL, name).Scan(&id)
	switch {
	case err == nil:
		return &id, nil
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, fmt.Errorf("lookup recebedor: %w", err)
	}

	if err := q.QueryRow(ctx, insertRecipientSQL, name).Scan(&id); err != nil {
		return nil, postgres.MapError(err, "recebedor", name)
	}
	return &id, nil
}
