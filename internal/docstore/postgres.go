package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores documents as JSONB rows in the documents table.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres-backed Store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) Get(ctx context.Context, collection, key string) (*Document, error) {
	var body []byte
	err := p.pool.QueryRow(ctx,
		`SELECT body FROM documents WHERE collection = $1 AND key = $2`,
		collection, key,
	).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeDocument(key, body)
}

func (p *Postgres) Put(ctx context.Context, collection, key string, fields Fields) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO documents (collection, key, body)
		 VALUES ($1, $2, $3::jsonb)
		 ON CONFLICT (collection, key) DO UPDATE SET body = EXCLUDED.body, updated_at = NOW()`,
		collection, key, string(body),
	)
	return err
}

func (p *Postgres) Create(ctx context.Context, collection, key string, fields Fields) (bool, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return false, fmt.Errorf("encode document: %w", err)
	}
	tag, err := p.pool.Exec(ctx,
		`INSERT INTO documents (collection, key, body)
		 VALUES ($1, $2, $3::jsonb)
		 ON CONFLICT (collection, key) DO NOTHING`,
		collection, key, string(body),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (p *Postgres) Update(ctx context.Context, collection, key string, fields Fields) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	tag, err := p.pool.Exec(ctx,
		`UPDATE documents SET body = body || $3::jsonb, updated_at = NOW()
		 WHERE collection = $1 AND key = $2`,
		collection, key, string(body),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, collection, key string) error {
	_, err := p.pool.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND key = $2`,
		collection, key,
	)
	return err
}

func (p *Postgres) Query(ctx context.Context, q Query) ([]Document, error) {
	sql, args, err := buildSelect(q)
	if err != nil {
		return nil, err
	}

	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var key string
		var body []byte
		if err := rows.Scan(&key, &body); err != nil {
			return nil, err
		}
		doc, err := decodeDocument(key, body)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

// buildSelect renders q as a parameterised statement. Field names are passed
// as parameters to the -> operator, never interpolated.
func buildSelect(q Query) (string, []any, error) {
	if err := q.validate(); err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	args := []any{q.Collection}
	param := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	sb.WriteString(`SELECT key, body FROM documents WHERE collection = $1`)

	for _, f := range q.Filters {
		value := f.Value
		if f.Op == OpArrayContains {
			value = []any{f.Value}
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return "", nil, fmt.Errorf("filter %s: %w", f.Field, err)
		}
		field := param(f.Field)
		op := string(f.Op)
		switch f.Op {
		case OpEqual:
			op = "="
		case OpNotEqual:
			op = "<>"
		case OpArrayContains:
			op = "@>"
		}
		fmt.Fprintf(&sb, ` AND body -> %s::text %s %s::jsonb`, field, op, param(string(raw)))
	}

	keyExpr := `key COLLATE "C"`
	dir := "ASC"
	cmp := ">"
	if q.OrderBy.descending() {
		dir = "DESC"
		cmp = "<"
	}

	var sortExpr string
	if q.OrderBy != nil {
		sortExpr = fmt.Sprintf(`COALESCE(body -> %s::text, 'null'::jsonb)`, param(q.OrderBy.Field))
	}

	if q.StartAfter != nil {
		if q.OrderBy != nil {
			value := q.StartAfter.Value
			if len(value) == 0 {
				value = json.RawMessage("null")
			}
			fmt.Fprintf(&sb, ` AND (%s, %s) %s (%s::jsonb, %s::text COLLATE "C")`,
				sortExpr, keyExpr, cmp, param(string(value)), param(q.StartAfter.Key))
		} else {
			fmt.Fprintf(&sb, ` AND %s %s %s::text COLLATE "C"`, keyExpr, cmp, param(q.StartAfter.Key))
		}
	}

	if q.OrderBy != nil {
		fmt.Fprintf(&sb, ` ORDER BY %s %s, %s %s`, sortExpr, dir, keyExpr, dir)
	} else {
		fmt.Fprintf(&sb, ` ORDER BY %s %s`, keyExpr, dir)
	}

	if q.Limit > 0 {
		fmt.Fprintf(&sb, ` LIMIT %s`, param(int64(q.Limit)))
	}
	return sb.String(), args, nil
}
