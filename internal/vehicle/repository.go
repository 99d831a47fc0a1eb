package vehicle

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, v *Vehicle) error
	GetByID(ctx context.Context, id string) (*Vehicle, error)
	List(ctx context.Context, filter Filter) ([]*Vehicle, int, error)
	Update(ctx context.Context, v *Vehicle) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, v *Vehicle) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.vehicles").
		Columns(
			"owner_id", "name", "category", "registration",
			"base_price_per_day", "hourly_rate", "additional_km_per_day",
			"is_auto_approval", "is_active",
		).
		Values(
			v.OwnerID, v.Name, v.Category, v.Registration,
			v.BasePricePerDay, v.HourlyRate, v.AdditionalKmPerDay,
			v.IsAutoApproval, v.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create vehicle query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Vehicle, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "owner_id", "name", "category", "registration",
		"base_price_per_day", "hourly_rate", "additional_km_per_day",
		"is_auto_approval", "is_active", "created_at", "updated_at",
	).
		From("public.vehicles").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get vehicle query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var v Vehicle
	if err := row.Scan(
		&v.ID, &v.OwnerID, &v.Name, &v.Category, &v.Registration,
		&v.BasePricePerDay, &v.HourlyRate, &v.AdditionalKmPerDay,
		&v.IsAutoApproval, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get vehicle failed: %w", err)
	}
	return &v, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Vehicle, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "owner_id", "name", "category", "registration",
		"base_price_per_day", "hourly_rate", "additional_km_per_day",
		"is_auto_approval", "is_active", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.vehicles")

	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"owner_id": filter.OwnerID})
	}
	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.ActiveOnly {
		query = query.Where(squirrel.Eq{"is_active": true})
	}

	orderBy := "created_at"
	if filter.SortBy != "" {
		orderBy = filter.SortBy
	}
	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list vehicles query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list vehicles failed: %w", err)
	}
	defer rows.Close()

	var vehicles []*Vehicle
	var total int

	for rows.Next() {
		var v Vehicle
		if err := rows.Scan(
			&v.ID, &v.OwnerID, &v.Name, &v.Category, &v.Registration,
			&v.BasePricePerDay, &v.HourlyRate, &v.AdditionalKmPerDay,
			&v.IsAutoApproval, &v.IsActive, &v.CreatedAt, &v.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan vehicle failed: %w", err)
		}
		vehicles = append(vehicles, &v)
	}

	return vehicles, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, v *Vehicle) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.vehicles").
		Set("name", v.Name).
		Set("base_price_per_day", v.BasePricePerDay).
		Set("hourly_rate", v.HourlyRate).
		Set("additional_km_per_day", v.AdditionalKmPerDay).
		Set("is_auto_approval", v.IsAutoApproval).
		Set("is_active", v.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": v.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update vehicle query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update vehicle failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.vehicles").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete vehicle query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete vehicle failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
