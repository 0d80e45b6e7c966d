package house

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type House struct {
	ID            string          `json:"house_id"`
	LandlordID    string          `json:"landlord_id"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Location      string          `json:"location"`
	PricePerMonth decimal.Decimal `json:"price_per_month"`
	NumRooms      int             `json:"num_rooms"`
	Status        Status          `json:"status"`
	Photos        []string        `json:"photos"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Filter narrows house listings. Zero values mean "no constraint".
type Filter struct {
	Status   Status
	Location string
	NumRooms int
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const houseColumns = `id, landlord_id, title, COALESCE(description,''), location, price_per_month::text, num_rooms, status, photos, created_at`

func scanHouse(row pgx.Row) (*House, error) {
	var h House
	var price string
	if err := row.Scan(
		&h.ID, &h.LandlordID, &h.Title, &h.Description, &h.Location, &price, &h.NumRooms, &h.Status, &h.Photos, &h.CreatedAt,
	); err != nil {
		return nil, err
	}
	var err error
	if h.PricePerMonth, err = decimal.NewFromString(price); err != nil {
		return nil, err
	}
	if h.Photos == nil {
		h.Photos = []string{}
	}
	return &h, nil
}

func (r *Repository) Create(ctx context.Context, h *House) error {
	const q = `
INSERT INTO houses (id, landlord_id, title, description, location, price_per_month, num_rooms, status, photos)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING created_at
`
	return r.db.QueryRow(ctx, q,
		h.ID, h.LandlordID, h.Title, h.Description, h.Location, h.PricePerMonth.String(), h.NumRooms, string(h.Status), h.Photos,
	).Scan(&h.CreatedAt)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*House, error) {
	return scanHouse(r.db.QueryRow(ctx, `SELECT `+houseColumns+` FROM houses WHERE id = $1`, id))
}

func GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*House, error) {
	return scanHouse(tx.QueryRow(ctx, `SELECT `+houseColumns+` FROM houses WHERE id = $1 FOR UPDATE`, id))
}

func (r *Repository) List(ctx context.Context, f Filter) ([]House, error) {
	q, args := buildListQuery(`SELECT `+houseColumns+` FROM houses`, f)
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []House{}
	for rows.Next() {
		h, err := scanHouse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	return out, rows.Err()
}

func buildListQuery(base string, f Filter) (string, []any) {
	q := base
	var args []any
	where := func(cond string, arg any) {
		args = append(args, arg)
		clause := fmt.Sprintf(cond, len(args))
		if len(args) == 1 {
			q += " WHERE " + clause
		} else {
			q += " AND " + clause
		}
	}

	if f.Status != "" {
		where("status = $%d", string(f.Status))
	}
	if f.Location != "" {
		where("location ILIKE $%d", "%"+f.Location+"%")
	}
	if f.NumRooms > 0 {
		where("num_rooms = $%d", f.NumRooms)
	}
	if f.MinPrice != nil {
		where("price_per_month >= $%d", f.MinPrice.String())
	}
	if f.MaxPrice != nil {
		where("price_per_month <= $%d", f.MaxPrice.String())
	}

	q += " ORDER BY created_at ASC"
	return q, args
}

func (r *Repository) ListByLandlord(ctx context.Context, landlordID string) ([]House, error) {
	const q = `SELECT ` + houseColumns + ` FROM houses WHERE landlord_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, q, landlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []House{}
	for rows.Next() {
		h, err := scanHouse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	return out, rows.Err()
}

// ContentUpdate carries the landlord-editable fields; nil means unchanged.
type ContentUpdate struct {
	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
	Location      *string          `json:"location"`
	PricePerMonth *decimal.Decimal `json:"price_per_month"`
	NumRooms      *int             `json:"num_rooms"`
}

func (r *Repository) UpdateContent(ctx context.Context, id string, u ContentUpdate) error {
	const q = `
UPDATE houses
SET title = COALESCE($2, title),
    description = COALESCE($3, description),
    location = COALESCE($4, location),
    price_per_month = COALESCE($5, price_per_month),
    num_rooms = COALESCE($6, num_rooms)
WHERE id = $1
`
	var price *string
	if u.PricePerMonth != nil {
		s := u.PricePerMonth.String()
		price = &s
	}
	_, err := r.db.Exec(ctx, q, id, u.Title, u.Description, u.Location, price, u.NumRooms)
	return err
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM houses WHERE id = $1`, id)
	return err
}

func (r *Repository) AppendPhotos(ctx context.Context, id string, urls []string) error {
	_, err := r.db.Exec(ctx, `UPDATE houses SET photos = photos || $2 WHERE id = $1`, id, urls)
	return err
}

func UpdateStatus(ctx context.Context, tx pgx.Tx, id string, next Status) error {
	_, err := tx.Exec(ctx, `UPDATE houses SET status = $2 WHERE id = $1`, id, string(next))
	return err
}

// MarkRented transitions an available house to rented. Calling it on an
// already-rented house is a no-op.
func MarkRented(ctx context.Context, tx pgx.Tx, id string) error {
	_, err := tx.Exec(ctx,
		`UPDATE houses SET status = $2 WHERE id = $1 AND status = $3`,
		id, string(StatusRented), string(StatusAvailable),
	)
	return err
}

func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM houses`).Scan(&n)
	return n, err
}

func (r *Repository) CountByStatus(ctx context.Context, s Status) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM houses WHERE status = $1`, string(s)).Scan(&n)
	return n, err
}
