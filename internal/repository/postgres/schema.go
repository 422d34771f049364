package pgrepo

import (
	"context"
	"fmt"
)

// seq is an insertion ordinal. Searches order by it after the requested
// column so ties come back in insertion order, as in the in-memory backend.
const schemaSQL = `
	CREATE TABLE IF NOT EXISTS products (
		seq BIGSERIAL NOT NULL,
		id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		price NUMERIC(10,2) NOT NULL,
		quantity INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS products_created_at_idx ON products (created_at DESC, seq);

	CREATE TABLE IF NOT EXISTS users (
		seq BIGSERIAL NOT NULL,
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		avatar TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS users_created_at_idx ON users (created_at DESC, seq);
`

// foldsOnlyASCII reports whether an LC_CTYPE setting limits ILIKE case
// folding to ASCII letters.
func foldsOnlyASCII(ctype string) bool {
	return ctype == "C" || ctype == "POSIX"
}

// EnsureSchema checks the database locale and creates the tables the
// repositories need when they are missing.
func EnsureSchema(ctx context.Context, db DBTX) error {
	var ctype string
	if err := db.QueryRow(ctx, `SELECT current_setting('lc_ctype')`).Scan(&ctype); err != nil {
		return fmt.Errorf("read lc_ctype: %w", err)
	}
	if foldsOnlyASCII(ctype) {
		return fmt.Errorf("database LC_CTYPE %q folds only ASCII in ILIKE; create it with a UTF-8 locale", ctype)
	}
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
