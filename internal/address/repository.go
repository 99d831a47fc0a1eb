package address

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, a *Address) error
	GetByID(ctx context.Context, id string) (*Address, error)
	ListByUser(ctx context.Context, userID string) ([]*Address, error)
	Update(ctx context.Context, a *Address) error
	// SetDefault marks one address as default and clears the flag on
	// the user's other addresses.
	SetDefault(ctx context.Context, id, userID string) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const addressColumns = "id, user_id, label, line1, line2, city, pincode, longitude, latitude, is_default, created_at, updated_at"

func (r *pgxRepository) Create(ctx context.Context, a *Address) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.addresses").
		Columns("user_id", "label", "line1", "line2", "city", "pincode", "longitude", "latitude", "is_default").
		Values(a.UserID, a.Label, a.Line1, a.Line2, a.City, a.Pincode, a.Longitude, a.Latitude, a.IsDefault).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create address query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Address, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(addressColumns).
		From("public.addresses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get address query failed: %w", err)
	}

	a, err := scanAddress(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get address failed: %w", err)
	}
	return a, nil
}

func (r *pgxRepository) ListByUser(ctx context.Context, userID string) ([]*Address, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(addressColumns).
		From("public.addresses").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("is_default DESC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list addresses query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list addresses failed: %w", err)
	}
	defer rows.Close()

	var result []*Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan address failed: %w", err)
		}
		result = append(result, a)
	}

	return result, nil
}

func (r *pgxRepository) Update(ctx context.Context, a *Address) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.addresses").
		Set("label", a.Label).
		Set("line1", a.Line1).
		Set("line2", a.Line2).
		Set("city", a.City).
		Set("pincode", a.Pincode).
		Set("longitude", a.Longitude).
		Set("latitude", a.Latitude).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update address query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update address failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetDefault(ctx context.Context, id, userID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin set default address failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE public.addresses SET is_default = false WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear default address failed: %w", err)
	}

	ct, err := tx.Exec(ctx,
		`UPDATE public.addresses SET is_default = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("set default address failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.addresses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete address query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete address failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAddress(row pgx.Row) (*Address, error) {
	var a Address
	if err := row.Scan(
		&a.ID, &a.UserID, &a.Label, &a.Line1, &a.Line2, &a.City, &a.Pincode,
		&a.Longitude, &a.Latitude, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}
