package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLiteStore keeps every collection in one documents table.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		p, err := DefaultDBPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	db, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) DB() *sql.DB { return s.db }

func (s *SQLiteStore) Collection(name string) Collection {
	return &DocumentRepo{db: s.db, collection: name}
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// DocumentRepo is one collection's view of the documents table.
type DocumentRepo struct {
	db         *sql.DB
	collection string
}

const upsertDocument = `
	INSERT INTO documents (collection, id, body, updated_at)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(collection, id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
`

func (r *DocumentRepo) Put(ctx context.Context, id string, doc []byte) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, upsertDocument, r.collection, id, string(doc)); err != nil {
		return fmt.Errorf("document put: %w", err)
	}
	return nil
}

func (r *DocumentRepo) putAll(ctx context.Context, docs map[string][]byte) error {
	for id := range docs {
		if err := ValidateID(id); err != nil {
			return err
		}
	}
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for id, doc := range docs {
			if _, err := tx.ExecContext(ctx, upsertDocument, r.collection, id, string(doc)); err != nil {
				return fmt.Errorf("document put: %w", err)
			}
		}
		return nil
	})
}

func (r *DocumentRepo) Get(ctx context.Context, id string) ([]byte, error) {
	row := r.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE collection = ? AND id = ?`, r.collection, id)

	var body string
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("document get: %w", err)
	}
	return []byte(body), nil
}

func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = ? AND id = ?`, r.collection, id); err != nil {
		return fmt.Errorf("document delete: %w", err)
	}
	return nil
}

func (r *DocumentRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM documents WHERE collection = ? ORDER BY id ASC`, r.collection)
	if err != nil {
		return nil, fmt.Errorf("document list: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("document list scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("document list rows: %w", err)
	}
	return ids, nil
}
