package issue

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, iss *Issue) error
	GetByID(ctx context.Context, id string) (*Issue, error)
	List(ctx context.Context, filter Filter) ([]*Issue, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const issueColumns = "id, booking_id, vehicle_id, reporter_id, kind, description, photo_ids, status, created_at, updated_at"

func (r *pgxRepository) Create(ctx context.Context, iss *Issue) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.issues").
		Columns("booking_id", "vehicle_id", "reporter_id", "kind", "description", "photo_ids", "status").
		Values(iss.BookingID, iss.VehicleID, iss.ReporterID, iss.Kind, iss.Description, iss.PhotoIDs, iss.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create issue query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&iss.ID, &iss.CreatedAt, &iss.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Issue, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(issueColumns).
		From("public.issues").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get issue query failed: %w", err)
	}

	iss, err := scanIssue(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get issue failed: %w", err)
	}
	return iss, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Issue, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(issueColumns + ", count(*) OVER() as total_count").
		From("public.issues")

	if filter.BookingID != "" {
		query = query.Where(squirrel.Eq{"booking_id": filter.BookingID})
	}
	if filter.VehicleID != "" {
		query = query.Where(squirrel.Eq{"vehicle_id": filter.VehicleID})
	}
	if filter.ReporterID != "" {
		query = query.Where(squirrel.Eq{"reporter_id": filter.ReporterID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}

	query = query.OrderBy("created_at DESC")

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
		return nil, 0, fmt.Errorf("build list issues query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list issues failed: %w", err)
	}
	defer rows.Close()

	var result []*Issue
	var total int

	for rows.Next() {
		var iss Issue
		if err := rows.Scan(
			&iss.ID, &iss.BookingID, &iss.VehicleID, &iss.ReporterID,
			&iss.Kind, &iss.Description, &iss.PhotoIDs, &iss.Status,
			&iss.CreatedAt, &iss.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan issue failed: %w", err)
		}
		result = append(result, &iss)
	}

	return result, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.issues").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update issue status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update issue status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanIssue(row pgx.Row) (*Issue, error) {
	var iss Issue
	if err := row.Scan(
		&iss.ID, &iss.BookingID, &iss.VehicleID, &iss.ReporterID,
		&iss.Kind, &iss.Description, &iss.PhotoIDs, &iss.Status,
		&iss.CreatedAt, &iss.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &iss, nil
}
