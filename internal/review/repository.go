package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, rv *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	List(ctx context.Context, filter Filter) ([]*Review, int, error)
	Update(ctx context.Context, rv *Review) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rv *Review) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.reviews").
		Columns("booking_id", "vehicle_id", "user_id", "rating", "comment").
		Values(rv.BookingID, rv.VehicleID, rv.UserID, rv.Rating, rv.Comment).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create review query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
		var e *pgconn.PgError
		// Unique index on booking_id enforces one review per booking.
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyReviewed
		}
		return fmt.Errorf("create review failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Review, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"r.id", "r.booking_id", "r.vehicle_id", "r.user_id",
		"COALESCE(u.display_name, u.email)",
		"r.rating", "r.comment", "r.created_at", "r.updated_at",
	).
		From("public.reviews r").
		Join("public.users u ON u.id = r.user_id").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get review query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var rv Review
	if err := row.Scan(
		&rv.ID, &rv.BookingID, &rv.VehicleID, &rv.UserID, &rv.UserName,
		&rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get review failed: %w", err)
	}
	return &rv, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Review, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"r.id", "r.booking_id", "r.vehicle_id", "r.user_id",
		"COALESCE(u.display_name, u.email)",
		"r.rating", "r.comment", "r.created_at", "r.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.reviews r").
		Join("public.users u ON u.id = r.user_id")

	if filter.VehicleID != "" {
		query = query.Where(squirrel.Eq{"r.vehicle_id": filter.VehicleID})
	}
	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"r.user_id": filter.UserID})
	}

	query = query.OrderBy("r.created_at DESC")

	// Pagination
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
		return nil, 0, fmt.Errorf("build list review query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews failed: %w", err)
	}
	defer rows.Close()

	var result []*Review
	var total int

	for rows.Next() {
		var rv Review
		if err := rows.Scan(
			&rv.ID, &rv.BookingID, &rv.VehicleID, &rv.UserID, &rv.UserName,
			&rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan review failed: %w", err)
		}
		result = append(result, &rv)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, rv *Review) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.reviews").
		Set("rating", rv.Rating).
		Set("comment", rv.Comment).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": rv.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update review query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update review failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete review query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete review failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
