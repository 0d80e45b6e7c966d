package booking

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Booking struct {
	ID          string    `json:"booking_id"`
	TenantID    string    `json:"tenant_id"`
	HouseID     string    `json:"house_id"`
	LandlordID  string    `json:"landlord_id"`
	Status      Status    `json:"status"`
	DepositPaid bool      `json:"deposit_paid"`
	Message     string    `json:"message,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// ListItem is a booking joined with the house fields the dashboards display,
// so clients do not refetch house details per card.
type ListItem struct {
	Booking
	HouseTitle    string `json:"house_title"`
	HouseLocation string `json:"house_location"`
	HousePrice    string `json:"house_price_per_month"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const bookingColumns = `id, tenant_id, house_id, landlord_id, status, deposit_paid, COALESCE(message,''), requested_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.TenantID, &b.HouseID, &b.LandlordID, &b.Status, &b.DepositPaid, &b.Message, &b.RequestedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func Insert(ctx context.Context, tx pgx.Tx, b *Booking) error {
	const q = `
INSERT INTO bookings (id, tenant_id, house_id, landlord_id, status, message)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING requested_at
`
	return tx.QueryRow(ctx, q, b.ID, b.TenantID, b.HouseID, b.LandlordID, string(b.Status), nullable(b.Message)).Scan(&b.RequestedAt)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Booking, error) {
	return scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
}

func GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Booking, error) {
	return scanBooking(tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id))
}

// HasPendingForHouse reports whether the tenant already has an undecided
// request on this house. Runs inside the caller's transaction so the check
// serializes with concurrent requests holding the house row lock.
func HasPendingForHouse(ctx context.Context, tx pgx.Tx, tenantID, houseID string) (bool, error) {
	const q = `
SELECT EXISTS (
  SELECT 1 FROM bookings
  WHERE tenant_id = $1 AND house_id = $2 AND status = $3
)
`
	var exists bool
	err := tx.QueryRow(ctx, q, tenantID, houseID, string(StatusPending)).Scan(&exists)
	return exists, err
}

func (r *Repository) ListByTenant(ctx context.Context, tenantID string) ([]ListItem, error) {
	return r.list(ctx, `b.tenant_id = $1`, tenantID)
}

func (r *Repository) ListByLandlord(ctx context.Context, landlordID string) ([]ListItem, error) {
	return r.list(ctx, `b.landlord_id = $1`, landlordID)
}

func (r *Repository) list(ctx context.Context, where string, arg any) ([]ListItem, error) {
	q := `
SELECT b.id, b.tenant_id, b.house_id, b.landlord_id, b.status, b.deposit_paid, COALESCE(b.message,''), b.requested_at,
       h.title, h.location, h.price_per_month::text
FROM bookings b
JOIN houses h ON h.id = b.house_id
WHERE ` + where + `
ORDER BY b.requested_at DESC
`
	rows, err := r.db.Query(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ListItem{}
	for rows.Next() {
		var it ListItem
		if err := rows.Scan(
			&it.ID, &it.TenantID, &it.HouseID, &it.LandlordID, &it.Status, &it.DepositPaid, &it.Message, &it.RequestedAt,
			&it.HouseTitle, &it.HouseLocation, &it.HousePrice,
		); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func UpdateStatus(ctx context.Context, tx pgx.Tx, id string, next Status) error {
	_, err := tx.Exec(ctx, `UPDATE bookings SET status = $2 WHERE id = $1`, id, string(next))
	return err
}

func MarkDepositPaid(ctx context.Context, tx pgx.Tx, id string) error {
	_, err := tx.Exec(ctx, `UPDATE bookings SET deposit_paid = TRUE WHERE id = $1`, id)
	return err
}

func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&n)
	return n, err
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
