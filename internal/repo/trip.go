// Package repo contains all database access logic for the voyage planner API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
//
// Trip days are stored as a single jsonb document per trip rather than as
// rows. The mutation engine always reads and writes a whole day list at
// once, so a document column keeps the schedule snapshot atomic without a
// three-table join on every intent.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with DB-generated
	// id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns all trips ordered by start_date descending.
	List(ctx context.Context) ([]domain.Trip, error)

	// ListPaged returns one page of trips ordered by start_date descending,
	// plus the total trip count for building pagination metadata.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Update overwrites the mutable fields of an existing trip and returns the
	// updated record. Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// UpdateDays replaces only the day list of a trip, keeping duration_days in
	// sync, and returns the updated record. This is the write path for applied
	// mutations. Returns domain.ErrNotFound if no trip with that ID exists.
	UpdateDays(ctx context.Context, id uuid.UUID, days []domain.Day) (domain.Trip, error)

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (destination, start_date, duration_days, accommodation, days)
		VALUES (@destination, @start_date, @duration_days, @accommodation, @days)
		RETURNING id, destination, start_date, duration_days, accommodation, days, created_at, updated_at`

	accJSON, err := marshalAccommodation(trip.Accommodation)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	daysJSON, err := marshalDays(trip.Days)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}

	args := pgx.NamedArgs{
		"destination":   trip.Destination,
		"start_date":    trip.StartDate.Time,
		"duration_days": trip.DurationDays,
		"accommodation": accJSON, // nil becomes NULL
		"days":          daysJSON,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT id, destination, start_date, duration_days, accommodation, days, created_at, updated_at
		FROM trips
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips ordered by start_date descending (most recent first).
func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `
		SELECT id, destination, start_date, duration_days, accommodation, days, created_at, updated_at
		FROM trips
		ORDER BY start_date DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}

	return trips, nil
}

// ListPaged returns one page of trips plus the total count.
// The count runs as a separate query so the page query can reuse scanTrip.
func (r *pgTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const countQ = `SELECT count(*) FROM trips`

	var total int64
	if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT id, destination, start_date, duration_days, accommodation, days, created_at, updated_at
		FROM trips
		ORDER BY start_date DESC, created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", err)
	}

	return trips, total, nil
}

// Update overwrites the mutable fields of a trip and returns the updated record.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET destination   = @destination,
		    start_date    = @start_date,
		    duration_days = @duration_days,
		    accommodation = @accommodation,
		    days          = @days,
		    updated_at    = now()
		WHERE id = @id
		RETURNING id, destination, start_date, duration_days, accommodation, days, created_at, updated_at`

	accJSON, err := marshalAccommodation(trip.Accommodation)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	daysJSON, err := marshalDays(trip.Days)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}

	args := pgx.NamedArgs{
		"id":            trip.ID,
		"destination":   trip.Destination,
		"start_date":    trip.StartDate.Time,
		"duration_days": trip.DurationDays,
		"accommodation": accJSON,
		"days":          daysJSON,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// UpdateDays replaces a trip's day list and keeps duration_days in sync.
// Operators like add_day change the number of days, so the duration column
// is always recomputed from the new list rather than trusted from the caller.
func (r *pgTripRepo) UpdateDays(ctx context.Context, id uuid.UUID, days []domain.Day) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET days          = @days,
		    duration_days = @duration_days,
		    updated_at    = now()
		WHERE id = @id
		RETURNING id, destination, start_date, duration_days, accommodation, days, created_at, updated_at`

	daysJSON, err := marshalDays(days)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.UpdateDays: %w", err)
	}

	args := pgx.NamedArgs{
		"id":            id,
		"days":          daysJSON,
		"duration_days": len(days),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.UpdateDays: %w", err)
	}
	return result, nil
}

// Delete removes a trip by primary key.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// marshalAccommodation encodes an optional accommodation for a jsonb column.
// A nil accommodation is stored as SQL NULL, not as the JSON literal null.
func marshalAccommodation(a *domain.Accommodation) ([]byte, error) {
	if a == nil {
		return nil, nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal accommodation: %w", err)
	}
	return b, nil
}

// marshalDays encodes a day list for a jsonb column. A nil slice is stored
// as an empty JSON array so reads never have to special-case null.
func marshalDays(days []domain.Day) ([]byte, error) {
	if days == nil {
		days = []domain.Day{}
	}
	b, err := json.Marshal(days)
	if err != nil {
		return nil, fmt.Errorf("marshal days: %w", err)
	}
	return b, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID and date conversions and decodes the jsonb columns.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t         domain.Trip
		id        pgtype.UUID
		startDate pgtype.Date
		accRaw    []byte
		daysRaw   []byte
	)

	err := s.Scan(&id, &t.Destination, &startDate, &t.DurationDays, &accRaw, &daysRaw, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.StartDate = openapi_types.Date{Time: startDate.Time}
	if len(accRaw) > 0 && string(accRaw) != "null" {
		var acc domain.Accommodation
		if err := json.Unmarshal(accRaw, &acc); err != nil {
			return domain.Trip{}, fmt.Errorf("decode accommodation: %w", err)
		}
		t.Accommodation = &acc
	}
	if len(daysRaw) > 0 {
		if err := json.Unmarshal(daysRaw, &t.Days); err != nil {
			return domain.Trip{}, fmt.Errorf("decode days: %w", err)
		}
	}
	if t.Days == nil {
		t.Days = []domain.Day{}
	}

	return t, nil
}
