package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Jogoraa/Woliso-Rentals/internal/house"
)

// Item is a house enriched with feedback aggregates for catalog pages, so
// clients get ratings in the same response instead of fetching per card.
type Item struct {
	ID            string           `json:"house_id"`
	LandlordID    string           `json:"landlord_id"`
	Title         string           `json:"title"`
	Description   string           `json:"description,omitempty"`
	Location      string           `json:"location"`
	PricePerMonth decimal.Decimal  `json:"price_per_month"`
	NumRooms      int              `json:"num_rooms"`
	Status        house.Status     `json:"status"`
	Photos        []string         `json:"photos"`
	CreatedAt     time.Time        `json:"created_at"`
	AverageRating *decimal.Decimal `json:"average_rating,omitempty"`
	RatingCount   int              `json:"rating_count"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, f house.Filter) ([]Item, error) {
	q := `
SELECT h.id, h.landlord_id, h.title, COALESCE(h.description,''), h.location, h.price_per_month::text, h.num_rooms, h.status, h.photos, h.created_at,
       CASE WHEN COUNT(f.id) = 0 THEN NULL ELSE ROUND(AVG(f.rating)::numeric, 1)::text END,
       COUNT(f.id)
FROM houses h
LEFT JOIN feedbacks f ON f.house_id = h.id
`
	var args []any
	where := func(cond string, arg any) {
		args = append(args, arg)
		clause := fmt.Sprintf(cond, len(args))
		if len(args) == 1 {
			q += "WHERE " + clause + "\n"
		} else {
			q += "  AND " + clause + "\n"
		}
	}

	if f.Status != "" {
		where("h.status = $%d", string(f.Status))
	}
	if f.Location != "" {
		where("h.location ILIKE $%d", "%"+f.Location+"%")
	}
	if f.NumRooms > 0 {
		where("h.num_rooms = $%d", f.NumRooms)
	}
	if f.MinPrice != nil {
		where("h.price_per_month >= $%d", f.MinPrice.String())
	}
	if f.MaxPrice != nil {
		where("h.price_per_month <= $%d", f.MaxPrice.String())
	}

	q += `
GROUP BY h.id, h.landlord_id, h.title, h.description, h.location, h.price_per_month, h.num_rooms, h.status, h.photos, h.created_at
ORDER BY h.created_at ASC
`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Item{}
	for rows.Next() {
		var it Item
		var price string
		var avg *string
		if err := rows.Scan(
			&it.ID, &it.LandlordID, &it.Title, &it.Description, &it.Location, &price, &it.NumRooms, &it.Status, &it.Photos, &it.CreatedAt,
			&avg, &it.RatingCount,
		); err != nil {
			return nil, err
		}
		if it.PricePerMonth, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		if avg != nil {
			d, err := decimal.NewFromString(*avg)
			if err != nil {
				return nil, err
			}
			it.AverageRating = &d
		}
		if it.Photos == nil {
			it.Photos = []string{}
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
