// Package postgres provides a PostgreSQL implementation of transport.TurnStore.
// It uses pgx/v5 for connection pooling and JSONB for the call event and
// engine parameters of each turn.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dialbridge/dialbridge/pkg/api"
	"github.com/dialbridge/dialbridge/pkg/debug"
	"github.com/dialbridge/dialbridge/pkg/storage"
	"github.com/dialbridge/dialbridge/pkg/transport"
)

// uniqueViolation is the PostgreSQL SQLSTATE for duplicate keys.
const uniqueViolation = "23505"

// Store is a PostgreSQL-backed TurnStore.
type Store struct {
	pool *pgxpool.Pool
}

// Ensure Store implements transport.TurnStore at compile time.
var _ transport.TurnStore = (*Store)(nil)

// New creates a new PostgreSQL store with the given configuration.
// If MigrateOnStart is true, schema migrations are applied automatically.
func New(ctx context.Context, cfg Config) (*Store, error) {
	cfg.defaults()

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing DSN: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{pool: pool}

	if cfg.MigrateOnStart {
		if err := s.migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	return s, nil
}

// SaveTurn persists a turn.
func (s *Store) SaveTurn(ctx context.Context, turn *api.Turn) error {
	inputJSON, err := json.Marshal(turn.Input)
	if err != nil {
		return fmt.Errorf("marshaling input: %w", err)
	}

	params := turn.Parameters
	if params == nil {
		params = map[string]string{}
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("marshaling parameters: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO turns (
			id, call_id, session_id, input, output_text,
			parameters, directive, fallback, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		turn.ID, turn.CallID, turn.SessionID, inputJSON, turn.OutputText,
		paramsJSON, turn.Directive, turn.Fallback, turn.CreatedAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("inserting turn: %w", err)
	}

	debug.Log("journal", "turn saved", "id", turn.ID, "call_id", turn.CallID)
	return nil
}

// GetTurn retrieves a turn by ID.
func (s *Store) GetTurn(ctx context.Context, id string) (*api.Turn, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, call_id, session_id, input, output_text,
		       parameters, directive, fallback, created_at
		FROM turns
		WHERE id = $1
	`, id)

	turn, err := scanTurn(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying turn: %w", err)
	}
	return turn, nil
}

// ListTurns returns the turns of one call ordered by insertion sequence.
// Cursors are resolved to their sequence number inside the query.
func (s *Store) ListTurns(ctx context.Context, callID string, opts transport.ListOptions) (*api.TurnList, error) {
	query := `
		SELECT id, call_id, session_id, input, output_text,
		       parameters, directive, fallback, created_at
		FROM turns
		WHERE call_id = $1
	`
	args := []any{callID}

	desc := opts.Order == "desc"
	switch {
	case opts.After != "":
		op := ">"
		if desc {
			op = "<"
		}
		query += fmt.Sprintf(" AND seq %s (SELECT seq FROM turns WHERE id = $2)", op)
		args = append(args, opts.After)
	case opts.Before != "":
		op := "<"
		if desc {
			op = ">"
		}
		query += fmt.Sprintf(" AND seq %s (SELECT seq FROM turns WHERE id = $2)", op)
		args = append(args, opts.Before)
	}

	if desc {
		query += " ORDER BY seq DESC"
	} else {
		query += " ORDER BY seq ASC"
	}

	// Fetch one extra row to detect whether more pages exist.
	limit := opts.EffectiveLimit()
	query += fmt.Sprintf(" LIMIT %d", limit+1)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing turns: %w", err)
	}
	defer rows.Close()

	turns := []*api.Turn{}
	for rows.Next() {
		turn, err := scanTurn(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning turn: %w", err)
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating turns: %w", err)
	}

	hasMore := len(turns) > limit
	if hasMore {
		turns = turns[:limit]
	}

	list := &api.TurnList{
		Object:  "list",
		Data:    turns,
		HasMore: hasMore,
	}
	if len(turns) > 0 {
		list.FirstID = turns[0].ID
		list.LastID = turns[len(turns)-1].ID
	}
	return list, nil
}

// HealthCheck verifies the database connection.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func scanTurn(row pgx.Row) (*api.Turn, error) {
	var turn api.Turn
	var inputJSON, paramsJSON []byte

	if err := row.Scan(
		&turn.ID, &turn.CallID, &turn.SessionID, &inputJSON, &turn.OutputText,
		&paramsJSON, &turn.Directive, &turn.Fallback, &turn.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(inputJSON, &turn.Input); err != nil {
		return nil, fmt.Errorf("unmarshaling input: %w", err)
	}
	if err := json.Unmarshal(paramsJSON, &turn.Parameters); err != nil {
		return nil, fmt.Errorf("unmarshaling parameters: %w", err)
	}
	return &turn, nil
}

// isDuplicateKey reports whether err is a PostgreSQL unique violation.
func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
