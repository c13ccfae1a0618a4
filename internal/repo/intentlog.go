package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
)

// IntentLogRepo defines the persistence operations for a trip's mutation
// history. Entries are append-only; nothing updates or deletes them except
// the ON DELETE CASCADE when the owning trip is removed.
type IntentLogRepo interface {
	// Insert appends a history entry and returns the persisted record (with
	// DB-generated id and created_at populated).
	Insert(ctx context.Context, entry domain.IntentLog) (domain.IntentLog, error)

	// ListByTrip returns one page of a trip's history ordered newest first,
	// plus the total entry count for that trip.
	ListByTrip(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.IntentLog, int64, error)
}

// pgIntentLogRepo is the Postgres implementation of IntentLogRepo.
type pgIntentLogRepo struct {
	db db
}

// NewIntentLogRepo constructs an IntentLogRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewIntentLogRepo(db db) IntentLogRepo {
	return &pgIntentLogRepo{db: db}
}

// Insert appends a history entry. The intent envelope and change log are
// stored as jsonb documents so the history can replay exactly what the
// engine saw and did.
func (r *pgIntentLogRepo) Insert(ctx context.Context, entry domain.IntentLog) (domain.IntentLog, error) {
	const q = `
		INSERT INTO intent_logs (trip_id, intent_type, intent, success, explanation, error_type, warnings, changes)
		VALUES (@trip_id, @intent_type, @intent, @success, @explanation, @error_type, @warnings, @changes)
		RETURNING id, trip_id, intent_type, intent, success, explanation, error_type, warnings, changes, created_at`

	intentJSON, err := json.Marshal(entry.Intent)
	if err != nil {
		return domain.IntentLog{}, fmt.Errorf("repo.IntentLogRepo.Insert: marshal intent: %w", err)
	}
	changes := entry.Changes
	if changes == nil {
		changes = []domain.Change{}
	}
	changesJSON, err := json.Marshal(changes)
	if err != nil {
		return domain.IntentLog{}, fmt.Errorf("repo.IntentLogRepo.Insert: marshal changes: %w", err)
	}
	warnings := entry.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	warningsJSON, err := json.Marshal(warnings)
	if err != nil {
		return domain.IntentLog{}, fmt.Errorf("repo.IntentLogRepo.Insert: marshal warnings: %w", err)
	}

	var errType *string
	if entry.ErrorType != "" {
		errType = &entry.ErrorType
	}

	args := pgx.NamedArgs{
		"trip_id":     entry.TripID,
		"intent_type": string(entry.IntentType),
		"intent":      intentJSON,
		"success":     entry.Success,
		"explanation": entry.Explanation,
		"error_type":  errType, // nil becomes NULL
		"warnings":    warningsJSON,
		"changes":     changesJSON,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanIntentLog(row)
	if err != nil {
		return domain.IntentLog{}, fmt.Errorf("repo.IntentLogRepo.Insert: %w", err)
	}
	return result, nil
}

// ListByTrip returns one page of history entries plus the trip's total.
// Newest entries come first; id breaks ties for entries logged in the same
// transaction.
func (r *pgIntentLogRepo) ListByTrip(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.IntentLog, int64, error) {
	const countQ = `SELECT count(*) FROM intent_logs WHERE trip_id = @trip_id`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"trip_id": tripID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.IntentLogRepo.ListByTrip: count: %w", err)
	}

	const q = `
		SELECT id, trip_id, intent_type, intent, success, explanation, error_type, warnings, changes, created_at
		FROM intent_logs
		WHERE trip_id = @trip_id
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"trip_id": tripID,
		"limit":   p.Limit,
		"offset":  p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.IntentLogRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	entries := []domain.IntentLog{}
	for rows.Next() {
		e, err := scanIntentLog(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.IntentLogRepo.ListByTrip: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.IntentLogRepo.ListByTrip: rows: %w", err)
	}

	return entries, total, nil
}

// scanIntentLog maps a single database row into a domain.IntentLog.
func scanIntentLog(s scanner) (domain.IntentLog, error) {
	var (
		e           domain.IntentLog
		id          pgtype.UUID
		tripID      pgtype.UUID
		intentType  string
		intentRaw   []byte
		errType     *string
		warningsRaw []byte
		changesRaw  []byte
	)

	err := s.Scan(&id, &tripID, &intentType, &intentRaw, &e.Success, &e.Explanation, &errType, &warningsRaw, &changesRaw, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.IntentLog{}, domain.ErrNotFound
		}
		return domain.IntentLog{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.TripID = uuid.UUID(tripID.Bytes)
	e.IntentType = domain.IntentType(intentType)
	if errType != nil {
		e.ErrorType = *errType
	}
	if len(intentRaw) > 0 {
		if err := json.Unmarshal(intentRaw, &e.Intent); err != nil {
			return domain.IntentLog{}, fmt.Errorf("decode intent: %w", err)
		}
	}
	if len(warningsRaw) > 0 {
		if err := json.Unmarshal(warningsRaw, &e.Warnings); err != nil {
			return domain.IntentLog{}, fmt.Errorf("decode warnings: %w", err)
		}
	}
	if len(changesRaw) > 0 {
		if err := json.Unmarshal(changesRaw, &e.Changes); err != nil {
			return domain.IntentLog{}, fmt.Errorf("decode changes: %w", err)
		}
	}
	if e.Warnings == nil {
		e.Warnings = []string{}
	}
	if e.Changes == nil {
		e.Changes = []domain.Change{}
	}

	return e, nil
}
