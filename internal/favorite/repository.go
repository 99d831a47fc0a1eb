package favorite

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Upsert inserts the favorite if absent and returns the row either
	// way, so adding twice is idempotent.
	Upsert(ctx context.Context, userID, vehicleID string) (*Favorite, error)
	Delete(ctx context.Context, userID, vehicleID string) error
	ListByUser(ctx context.Context, userID string) ([]*Favorite, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Upsert(ctx context.Context, userID, vehicleID string) (*Favorite, error) {
	// ON CONFLICT DO UPDATE makes RETURNING yield the existing row on
	// duplicate adds.
	const query = `
		INSERT INTO public.favorites (user_id, vehicle_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, vehicle_id) DO UPDATE SET user_id = excluded.user_id
		RETURNING id, user_id, vehicle_id, created_at
	`

	var f Favorite
	if err := r.pool.QueryRow(ctx, query, userID, vehicleID).
		Scan(&f.ID, &f.UserID, &f.VehicleID, &f.CreatedAt); err != nil {
		return nil, fmt.Errorf("upsert favorite failed: %w", err)
	}
	return &f, nil
}

func (r *pgxRepository) Delete(ctx context.Context, userID, vehicleID string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.favorites").
		Where(squirrel.Eq{"user_id": userID, "vehicle_id": vehicleID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete favorite query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete favorite failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListByUser(ctx context.Context, userID string) ([]*Favorite, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"f.id", "f.user_id", "f.vehicle_id", "v.name", "f.created_at",
	).
		From("public.favorites f").
		Join("public.vehicles v ON v.id = f.vehicle_id").
		Where(squirrel.Eq{"f.user_id": userID}).
		OrderBy("f.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list favorites query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list favorites failed: %w", err)
	}
	defer rows.Close()

	var result []*Favorite
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.VehicleID, &f.VehicleName, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite failed: %w", err)
		}
		result = append(result, &f)
	}

	return result, nil
}
