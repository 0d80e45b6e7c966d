package saved

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Jogoraa/Woliso-Rentals/internal/house"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Toggle flips the tenant's bookmark on a house and reports the resulting
// state. Delete-then-insert in one transaction keeps two rapid toggles from
// producing duplicate rows.
func (r *Repository) Toggle(ctx context.Context, tenantID, houseID string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	nowSaved, err := toggle(ctx, tx, tenantID, houseID)
	if err != nil {
		return false, err
	}
	return nowSaved, tx.Commit(ctx)
}

// toggle removes the bookmark if present, otherwise creates it. Returns the
// state after the flip, so applying it twice always restores the start state.
func toggle(ctx context.Context, q execer, tenantID, houseID string) (bool, error) {
	tag, err := q.Exec(ctx,
		`DELETE FROM saved_houses WHERE tenant_id = $1 AND house_id = $2`,
		tenantID, houseID,
	)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	if _, err := q.Exec(ctx,
		`INSERT INTO saved_houses (tenant_id, house_id) VALUES ($1, $2)`,
		tenantID, houseID,
	); err != nil {
		return false, err
	}
	return true, nil
}

// ListHouses returns the tenant's saved houses in one joined query.
func (r *Repository) ListHouses(ctx context.Context, tenantID string) ([]house.House, error) {
	const q = `
SELECT h.id, h.landlord_id, h.title, COALESCE(h.description,''), h.location, h.price_per_month::text, h.num_rooms, h.status, h.photos, h.created_at
FROM saved_houses s
JOIN houses h ON h.id = s.house_id
WHERE s.tenant_id = $1
ORDER BY s.saved_at DESC
`
	rows, err := r.db.Query(ctx, q, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []house.House{}
	for rows.Next() {
		var h house.House
		var price string
		if err := rows.Scan(
			&h.ID, &h.LandlordID, &h.Title, &h.Description, &h.Location, &price, &h.NumRooms, &h.Status, &h.Photos, &h.CreatedAt,
		); err != nil {
			return nil, err
		}
		if h.PricePerMonth, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		if h.Photos == nil {
			h.Photos = []string{}
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
