package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"contaluz/internal/domain"
	"contaluz/internal/port"
)

// pgUniqueViolation is the SQLSTATE for unique-constraint violations. It is
// the sole deduplication signal: a colliding insert is an expected outcome,
// not a fault.
const pgUniqueViolation = "23505"

type billRepo struct {
	db *sqlx.DB
}

// NewBillRepo creates a new PostgreSQL-backed BillRepository.
func NewBillRepo(db *sqlx.DB) port.BillRepository {
	return &billRepo{db: db}
}

func (r *billRepo) Insert(ctx context.Context, bill *domain.Bill) error {
	now := time.Now().UTC()
	bill.CreatedAt = now
	bill.UpdatedAt = now

	query := `INSERT INTO energy_bills (
		user_id, company, installation_number, bill_class, date, due_date,
		cost, consumption, compensated_energy_kwh, unit_price,
		generation_balance_kwh, contracted_discount, paid,
		compensated_energy_type, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10,
		$11, $12, $13,
		$14, $15, $16
	) RETURNING id`

	err := r.db.QueryRowxContext(ctx, query,
		bill.UserID, bill.Company, bill.InstallationNumber, bill.BillClass, bill.Date, bill.DueDate,
		bill.Cost, bill.Consumption, bill.CompensatedEnergyKwh, bill.UnitPrice,
		bill.GenerationBalanceKwh, bill.ContractedDiscount, bill.Paid,
		bill.CompensatedEnergyType, bill.CreatedAt, bill.UpdatedAt,
	).Scan(&bill.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateBill
		}
		return fmt.Errorf("billRepo.Insert: %w", err)
	}
	return nil
}

func (r *billRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Bill, error) {
	var bills []domain.Bill
	err := r.db.SelectContext(ctx, &bills,
		`SELECT * FROM energy_bills WHERE user_id = $1 ORDER BY date DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("billRepo.ListByUser: %w", err)
	}
	return bills, nil
}

func (r *billRepo) GetByID(ctx context.Context, userID uuid.UUID, id int64) (*domain.Bill, error) {
	var bill domain.Bill
	err := r.db.GetContext(ctx, &bill,
		`SELECT * FROM energy_bills WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBillNotFound
		}
		return nil, fmt.Errorf("billRepo.GetByID: %w", err)
	}
	return &bill, nil
}

func (r *billRepo) SetPaid(ctx context.Context, userID uuid.UUID, id int64, paid bool) error {
	return r.updateField(ctx, "billRepo.SetPaid",
		`UPDATE energy_bills SET paid = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`,
		paid, time.Now().UTC(), id, userID)
}

func (r *billRepo) SetCompensationType(ctx context.Context, userID uuid.UUID, id int64, t domain.CompensationType) error {
	return r.updateField(ctx, "billRepo.SetCompensationType",
		`UPDATE energy_bills SET compensated_energy_type = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`,
		t, time.Now().UTC(), id, userID)
}

func (r *billRepo) SetDiscount(ctx context.Context, userID uuid.UUID, id int64, value float64) error {
	return r.updateField(ctx, "billRepo.SetDiscount",
		`UPDATE energy_bills SET contracted_discount = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`,
		value, time.Now().UTC(), id, userID)
}

// Delete removes the bill and returns the deleted row. An empty result means
// the row does not exist or an access policy silently refused the write;
// either way the delete did not happen.
func (r *billRepo) Delete(ctx context.Context, userID uuid.UUID, id int64) (*domain.Bill, error) {
	var bill domain.Bill
	err := r.db.GetContext(ctx, &bill,
		`DELETE FROM energy_bills WHERE id = $1 AND user_id = $2 RETURNING *`, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBillNotFound
		}
		return nil, fmt.Errorf("billRepo.Delete: %w", err)
	}
	return &bill, nil
}

func (r *billRepo) updateField(ctx context.Context, op, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrBillNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
