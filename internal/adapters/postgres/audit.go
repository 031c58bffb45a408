package postgres

import (
	"context"
	"time"

	"tgscope/internal/ports"
)

// AuditRepository

func (db *DB) Record(ctx context.Context, ev ports.LookupEvent) error {
	_, err := db.Pool.Exec(ctx, `
        INSERT INTO lookups (id, handle, kind, ok, error, duration_ms, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, ev.ID, ev.Handle, ev.Kind, ev.OK, ev.Error, ev.Duration.Milliseconds(), ev.At)
	return err
}

func (db *DB) Recent(ctx context.Context, limit int) ([]ports.LookupEvent, error) {
	rows, err := db.Pool.Query(ctx, `
        SELECT id, handle, kind, ok, error, duration_ms, created_at
        FROM lookups
        ORDER BY created_at DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ports.LookupEvent
	for rows.Next() {
		var ev ports.LookupEvent
		var durMS int64
		if err := rows.Scan(&ev.ID, &ev.Handle, &ev.Kind, &ev.OK, &ev.Error, &durMS, &ev.At); err != nil {
			return nil, err
		}
		ev.Duration = time.Duration(durMS) * time.Millisecond
		out = append(out, ev)
	}
	return out, rows.Err()
}
