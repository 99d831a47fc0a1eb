package inspection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, ins *Inspection) error
	GetByBookingAndPhase(ctx context.Context, bookingID string, phase Phase) (*Inspection, error)
	ListByBooking(ctx context.Context, bookingID string) ([]*Inspection, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const inspectionColumns = "id, booking_id, vehicle_id, inspector_id, phase, odometer_km, fuel_percent, sections, photo_ids, notes, created_at"

func (r *pgxRepository) Create(ctx context.Context, ins *Inspection) error {
	sectionsJSON, err := json.Marshal(ins.Sections)
	if err != nil {
		return fmt.Errorf("marshal inspection sections failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.inspections").
		Columns("booking_id", "vehicle_id", "inspector_id", "phase", "odometer_km", "fuel_percent", "sections", "photo_ids", "notes").
		Values(ins.BookingID, ins.VehicleID, ins.InspectorID, ins.Phase, ins.OdometerKm, ins.FuelPercent, sectionsJSON, ins.PhotoIDs, ins.Notes).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create inspection query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&ins.ID, &ins.CreatedAt); err != nil {
		var e *pgconn.PgError
		// Unique index on (booking_id, phase).
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyRecorded
		}
		return fmt.Errorf("create inspection failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByBookingAndPhase(ctx context.Context, bookingID string, phase Phase) (*Inspection, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(inspectionColumns).
		From("public.inspections").
		Where(squirrel.Eq{"booking_id": bookingID, "phase": phase}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get inspection query failed: %w", err)
	}

	ins, err := scanInspection(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get inspection failed: %w", err)
	}
	return ins, nil
}

func (r *pgxRepository) ListByBooking(ctx context.Context, bookingID string) ([]*Inspection, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(inspectionColumns).
		From("public.inspections").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list inspections query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inspections failed: %w", err)
	}
	defer rows.Close()

	var result []*Inspection
	for rows.Next() {
		ins, err := scanInspection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inspection failed: %w", err)
		}
		result = append(result, ins)
	}

	return result, nil
}

func scanInspection(row pgx.Row) (*Inspection, error) {
	var ins Inspection
	var sectionsJSON []byte

	if err := row.Scan(
		&ins.ID, &ins.BookingID, &ins.VehicleID, &ins.InspectorID,
		&ins.Phase, &ins.OdometerKm, &ins.FuelPercent, &sectionsJSON,
		&ins.PhotoIDs, &ins.Notes, &ins.CreatedAt,
	); err != nil {
		return nil, err
	}

	if len(sectionsJSON) > 0 {
		if err := json.Unmarshal(sectionsJSON, &ins.Sections); err != nil {
			return nil, fmt.Errorf("unmarshal inspection sections failed: %w", err)
		}
	}

	return &ins, nil
}
