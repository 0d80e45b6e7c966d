package payment

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	PaymentInitialized = "initialized"
	PaymentPaid        = "paid"
	PaymentFailed      = "failed"
)

type Record struct {
	ID          string     `json:"id"`
	BookingID   string     `json:"booking_id"`
	TxRef       string     `json:"tx_ref"`
	Amount      string     `json:"amount"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	CheckoutURL string     `json:"checkout_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const paymentColumns = `id, booking_id, tx_ref, amount::text, currency, status, COALESCE(checkout_url,''), created_at, paid_at`

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	if err := row.Scan(
		&rec.ID, &rec.BookingID, &rec.TxRef, &rec.Amount, &rec.Currency, &rec.Status, &rec.CheckoutURL, &rec.CreatedAt, &rec.PaidAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}

func Insert(ctx context.Context, tx pgx.Tx, rec *Record) error {
	const q = `
INSERT INTO payments (id, booking_id, tx_ref, amount, currency, status, checkout_url)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING created_at
`
	return tx.QueryRow(ctx, q,
		rec.ID, rec.BookingID, rec.TxRef, rec.Amount, rec.Currency, rec.Status, rec.CheckoutURL,
	).Scan(&rec.CreatedAt)
}

func (r *Repository) GetByTxRef(ctx context.Context, txRef string) (*Record, error) {
	return scanRecord(r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE tx_ref = $1`, txRef))
}

func GetForUpdateByTxRef(ctx context.Context, tx pgx.Tx, txRef string) (*Record, error) {
	return scanRecord(tx.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE tx_ref = $1 FOR UPDATE`, txRef))
}

func MarkPaid(ctx context.Context, tx pgx.Tx, id string, paidAt time.Time) error {
	_, err := tx.Exec(ctx, `UPDATE payments SET status = $2, paid_at = $3 WHERE id = $1`, id, PaymentPaid, paidAt)
	return err
}

func (r *Repository) MarkFailed(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `UPDATE payments SET status = $2 WHERE id = $1`, id, PaymentFailed)
	return err
}
