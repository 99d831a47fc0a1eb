package extension

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Result is the business outcome of an availability check.
// NextAvailable is the earliest time the vehicle frees up, supplied
// only when the window is taken.
type Result struct {
	Available     bool
	NextAvailable *time.Time
}

// Checker is the external collaborator that confirms a vehicle is free
// for an extended window. Implementations may take user-perceptible
// time; callers bound them with the context.
type Checker interface {
	CheckAvailability(ctx context.Context, vehicleID string, windowStart, windowEnd time.Time) (Result, error)
}

type pgxChecker struct {
	pool *pgxpool.Pool
}

// NewPgxChecker returns a Checker backed by the bookings table:
// the window is free when no live booking for the vehicle overlaps it.
func NewPgxChecker(pool *pgxpool.Pool) Checker {
	return &pgxChecker{pool: pool}
}

func (c *pgxChecker) CheckAvailability(ctx context.Context, vehicleID string, windowStart, windowEnd time.Time) (Result, error) {
	// Overlap: (WindowStart < ExistingEnd) AND (WindowEnd > ExistingStart).
	// The booking being extended ends exactly at WindowStart, so the
	// strict comparison keeps it out of its own way.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("max(end_time)").
		From("public.bookings").
		Where(squirrel.Eq{"vehicle_id": vehicleID}).
		Where(squirrel.Eq{"status": []string{"pending", "active"}}).
		Where(squirrel.Lt{"start_time": windowEnd}).
		Where(squirrel.Gt{"end_time": windowStart}).
		ToSql()
	if err != nil {
		return Result{}, fmt.Errorf("build availability query failed: %w", err)
	}

	var latestConflictEnd *time.Time
	if err := c.pool.QueryRow(ctx, query, args...).Scan(&latestConflictEnd); err != nil {
		return Result{}, fmt.Errorf("check availability failed: %w", err)
	}

	if latestConflictEnd == nil {
		return Result{Available: true}, nil
	}
	return Result{Available: false, NextAvailable: latestConflictEnd}, nil
}
