package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/feds201/pickup-scheduler/internal/pickup"
)

// PostgresStore implements Store against PostgreSQL.
type PostgresStore struct{ db *sql.DB }

// NewPostgresStore creates a Postgres-backed store.
func NewPostgresStore(db *sql.DB) *PostgresStore { return &PostgresStore{db: db} }

// Open connects to Postgres and verifies the connection.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return db, nil
}

// ListSlots returns every configured pickup slot in insertion order.
func (s *PostgresStore) ListSlots(ctx context.Context) ([]Slot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slot_date, start_time, end_time
		FROM pickup_slots
		ORDER BY id
	`)
	if err != nil {
		return nil, wrapTableErr("list slots", err)
	}
	defer rows.Close()

	var slots []Slot
	for rows.Next() {
		var date, start, end sql.NullTime
		if err := rows.Scan(&date, &start, &end); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, Slot{
			Date:      nullableTime(date),
			StartTime: nullableTime(start),
			EndTime:   nullableTime(end),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}

// ListSubmissions returns all accepted submissions with invalid rows
// dropped at ingestion. Row numbers count from 2, matching the backing
// sheet convention of a header row.
func (s *PostgresStore) ListSubmissions(ctx context.Context) ([]pickup.Submission, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT pickup_date, COALESCE(address, '')
		FROM pickup_submissions
		ORDER BY id
	`)
	if err != nil {
		return nil, wrapTableErr("list submissions", err)
	}
	defer rows.Close()

	var subs []pickup.Submission
	rowNum := 1
	for rows.Next() {
		rowNum++
		var date sql.NullTime
		var address string
		if err := rows.Scan(&date, &address); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}

		address = strings.TrimSpace(address)
		if !date.Valid || address == "" {
			log.Printf("[Store] Skipping invalid submission in row %d", rowNum)
			continue
		}
		subs = append(subs, pickup.Submission{
			PickupDate: date.Time,
			Address:    address,
			Row:        rowNum,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}

// AppendSubmission appends one accepted submission row.
func (s *PostgresStore) AppendSubmission(ctx context.Context, pickupDate time.Time, address string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pickup_submissions (pickup_date, address, created_at)
		VALUES ($1, $2, NOW())
	`, pickupDate, address)
	if err != nil {
		return wrapTableErr("append submission", err)
	}
	return nil
}

// wrapTableErr maps the Postgres undefined-table error onto
// ErrTableNotFound so callers can treat a missing backing table as a
// per-invocation failure.
func wrapTableErr(op string, err error) error {
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "42P01" {
		return fmt.Errorf("%s: %w", op, ErrTableNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
