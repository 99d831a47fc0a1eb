package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, m *Method) error
	GetByID(ctx context.Context, id string) (*Method, error)
	ListByUser(ctx context.Context, userID string) ([]*Method, error)
	Delete(ctx context.Context, id string) error

	// SetDefault marks one method as default and clears the flag on the
	// user's other methods.
	SetDefault(ctx context.Context, id, userID string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, m *Method) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.payment_methods").
		Columns("user_id", "kind", "label", "masked", "is_default").
		Values(m.UserID, m.Kind, m.Label, m.Masked, m.IsDefault).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create payment method query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&m.ID, &m.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Method, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "user_id", "kind", "label", "masked", "is_default", "created_at").
		From("public.payment_methods").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get payment method query failed: %w", err)
	}

	var m Method
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&m.ID, &m.UserID, &m.Kind, &m.Label, &m.Masked, &m.IsDefault, &m.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMethodNotFound
		}
		return nil, fmt.Errorf("get payment method failed: %w", err)
	}
	return &m, nil
}

func (r *pgxRepository) ListByUser(ctx context.Context, userID string) ([]*Method, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "user_id", "kind", "label", "masked", "is_default", "created_at").
		From("public.payment_methods").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("is_default DESC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list payment methods query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payment methods failed: %w", err)
	}
	defer rows.Close()

	var methods []*Method
	for rows.Next() {
		var m Method
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.Kind, &m.Label, &m.Masked, &m.IsDefault, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment method failed: %w", err)
		}
		methods = append(methods, &m)
	}
	return methods, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.payment_methods").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete payment method query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete payment method failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrMethodNotFound
	}
	return nil
}

func (r *pgxRepository) SetDefault(ctx context.Context, id, userID string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	clear, clearArgs, err := psql.Update("public.payment_methods").
		Set("is_default", false).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.NotEq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build clear default query failed: %w", err)
	}
	if _, err := r.pool.Exec(ctx, clear, clearArgs...); err != nil {
		return fmt.Errorf("clear default payment method failed: %w", err)
	}

	set, setArgs, err := psql.Update("public.payment_methods").
		Set("is_default", true).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set default query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, set, setArgs...)
	if err != nil {
		return fmt.Errorf("set default payment method failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrMethodNotFound
	}
	return nil
}
