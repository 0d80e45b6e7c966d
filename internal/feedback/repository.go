package feedback

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Feedback struct {
	ID          string    `json:"feedback_id"`
	TenantID    string    `json:"tenant_id"`
	HouseID     string    `json:"house_id"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, f *Feedback) error {
	const q = `
INSERT INTO feedbacks (id, tenant_id, house_id, rating, comment)
VALUES ($1, $2, $3, $4, $5)
RETURNING submitted_at
`
	var comment *string
	if f.Comment != "" {
		comment = &f.Comment
	}
	return r.db.QueryRow(ctx, q, f.ID, f.TenantID, f.HouseID, f.Rating, comment).Scan(&f.SubmittedAt)
}

func (r *Repository) ListByHouse(ctx context.Context, houseID string) ([]Feedback, error) {
	const q = `
SELECT id, tenant_id, house_id, rating, COALESCE(comment,''), submitted_at
FROM feedbacks
WHERE house_id = $1
ORDER BY submitted_at DESC
`
	rows, err := r.db.Query(ctx, q, houseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Feedback{}
	for rows.Next() {
		var f Feedback
		if err := rows.Scan(&f.ID, &f.TenantID, &f.HouseID, &f.Rating, &f.Comment, &f.SubmittedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
