package extension

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, r *Request) error
	GetByID(ctx context.Context, id string) (*Request, error)
	List(ctx context.Context, filter Filter) ([]*Request, int, error)

	// UpdateRequestedEnd rewrites the window, quote snapshot, status and
	// check token after the user picks a new end time.
	UpdateRequestedEnd(ctx context.Context, r *Request) error

	// ApplyAvailability records a check outcome only if token still
	// matches the request's newest check token and the request is still
	// pending. Returns false when the result is stale and was discarded.
	ApplyAvailability(ctx context.Context, id string, token int64, status FlowState, nextAvailable *time.Time) (bool, error)

	UpdateStatus(ctx context.Context, id string, status FlowState) error

	// BeginPayment atomically claims the single payment slot for the
	// request. Returns false when another payment is already in flight
	// or the request is not awaiting payment.
	BeginPayment(ctx context.Context, id string) (bool, error)

	// FinishPayment releases the payment slot and records the outcome.
	FinishPayment(ctx context.Context, id string, status FlowState, paymentID *string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var requestColumns = []string{
	"id", "booking_id", "user_id", "vehicle_id",
	"current_end", "requested_end",
	"additional_days", "additional_hours", "base_rental", "prorated_charge",
	"subtotal", "gst", "total",
	"status", "check_token", "next_available", "payment_id",
	"created_at", "updated_at",
}

func scanRequest(row pgx.Row, r *Request) error {
	return row.Scan(
		&r.ID, &r.BookingID, &r.UserID, &r.VehicleID,
		&r.CurrentEnd, &r.RequestedEnd,
		&r.Quote.AdditionalDays, &r.Quote.AdditionalHours, &r.Quote.BaseRental, &r.Quote.ProratedCharge,
		&r.Quote.Subtotal, &r.Quote.GST, &r.Quote.Total,
		&r.Status, &r.CheckToken, &r.NextAvailable, &r.PaymentID,
		&r.CreatedAt, &r.UpdatedAt,
	)
}

func (repo *pgxRepository) Create(ctx context.Context, r *Request) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.extension_requests").
		Columns(
			"booking_id", "user_id", "vehicle_id",
			"current_end", "requested_end",
			"additional_days", "additional_hours", "base_rental", "prorated_charge",
			"subtotal", "gst", "total",
			"status", "check_token",
		).
		Values(
			r.BookingID, r.UserID, r.VehicleID,
			r.CurrentEnd, r.RequestedEnd,
			r.Quote.AdditionalDays, r.Quote.AdditionalHours, r.Quote.BaseRental, r.Quote.ProratedCharge,
			r.Quote.Subtotal, r.Quote.GST, r.Quote.Total,
			r.Status, r.CheckToken,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create extension request query failed: %w", err)
	}

	return repo.pool.QueryRow(ctx, query, args...).
		Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
}

func (repo *pgxRepository) GetByID(ctx context.Context, id string) (*Request, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(requestColumns...).
		From("public.extension_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get extension request query failed: %w", err)
	}

	var r Request
	if err := scanRequest(repo.pool.QueryRow(ctx, query, args...), &r); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get extension request failed: %w", err)
	}
	return &r, nil
}

func (repo *pgxRepository) List(ctx context.Context, filter Filter) ([]*Request, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append(append([]string{}, requestColumns...), "count(*) OVER() as total_count")
	query := psql.Select(cols...).
		From("public.extension_requests")

	if filter.BookingID != "" {
		query = query.Where(squirrel.Eq{"booking_id": filter.BookingID})
	}
	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}

	query = query.OrderBy("created_at DESC")

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
		return nil, 0, fmt.Errorf("build list extension requests query failed: %w", err)
	}

	rows, err := repo.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list extension requests failed: %w", err)
	}
	defer rows.Close()

	var requests []*Request
	var total int

	for rows.Next() {
		var r Request
		if err := rows.Scan(
			&r.ID, &r.BookingID, &r.UserID, &r.VehicleID,
			&r.CurrentEnd, &r.RequestedEnd,
			&r.Quote.AdditionalDays, &r.Quote.AdditionalHours, &r.Quote.BaseRental, &r.Quote.ProratedCharge,
			&r.Quote.Subtotal, &r.Quote.GST, &r.Quote.Total,
			&r.Status, &r.CheckToken, &r.NextAvailable, &r.PaymentID,
			&r.CreatedAt, &r.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan extension request failed: %w", err)
		}
		requests = append(requests, &r)
	}

	return requests, total, nil
}

func (repo *pgxRepository) UpdateRequestedEnd(ctx context.Context, r *Request) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.extension_requests").
		Set("requested_end", r.RequestedEnd).
		Set("additional_days", r.Quote.AdditionalDays).
		Set("additional_hours", r.Quote.AdditionalHours).
		Set("base_rental", r.Quote.BaseRental).
		Set("prorated_charge", r.Quote.ProratedCharge).
		Set("subtotal", r.Quote.Subtotal).
		Set("gst", r.Quote.GST).
		Set("total", r.Quote.Total).
		Set("status", r.Status).
		Set("check_token", r.CheckToken).
		Set("next_available", nil).
		Set("payment_in_flight", false).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": r.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update requested end query failed: %w", err)
	}

	ct, err := repo.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update requested end failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (repo *pgxRepository) ApplyAvailability(ctx context.Context, id string, token int64, status FlowState, nextAvailable *time.Time) (bool, error) {
	// Conditional on the token so a superseded check can never clobber
	// the outcome of a newer one.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.extension_requests").
		Set("status", status).
		Set("next_available", nextAvailable).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"check_token": token}).
		Where(squirrel.Eq{"status": StatePendingAvailability}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build apply availability query failed: %w", err)
	}

	ct, err := repo.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("apply availability failed: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (repo *pgxRepository) UpdateStatus(ctx context.Context, id string, status FlowState) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.extension_requests").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update extension status query failed: %w", err)
	}

	ct, err := repo.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update extension status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (repo *pgxRepository) BeginPayment(ctx context.Context, id string) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.extension_requests").
		Set("payment_in_flight", true).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": StatePaymentRequired}).
		Where(squirrel.Eq{"payment_in_flight": false}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build begin payment query failed: %w", err)
	}

	ct, err := repo.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("begin payment failed: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (repo *pgxRepository) FinishPayment(ctx context.Context, id string, status FlowState, paymentID *string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.extension_requests").
		Set("payment_in_flight", false).
		Set("status", status).
		Set("payment_id", paymentID).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build finish payment query failed: %w", err)
	}

	ct, err := repo.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("finish payment failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
