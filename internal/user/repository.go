package user

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	RoleTenant   = "tenant"
	RoleLandlord = "landlord"
	RoleAdmin    = "admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleTenant, RoleLandlord, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID          string    `json:"user_id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`

	PasswordHash string `json:"-"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, u *User) error {
	const q = `
INSERT INTO users (id, email, password_hash, full_name, phone_number, role)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at
`
	return r.db.QueryRow(ctx, q, u.ID, u.Email, u.PasswordHash, u.FullName, nullable(u.PhoneNumber), u.Role).Scan(&u.CreatedAt)
}

func (r *Repository) FindByID(ctx context.Context, id string) (*User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, `WHERE email = $1`, email)
}

func (r *Repository) findOne(ctx context.Context, where string, arg any) (*User, error) {
	q := `
SELECT id, email, password_hash, full_name, COALESCE(phone_number,''), role, created_at
FROM users
` + where
	var u User
	if err := r.db.QueryRow(ctx, q, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.PhoneNumber, &u.Role, &u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]User, error) {
	const q = `
SELECT id, email, full_name, COALESCE(phone_number,''), role, created_at
FROM users
ORDER BY created_at ASC
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.PhoneNumber, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
