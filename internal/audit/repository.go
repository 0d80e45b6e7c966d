package audit

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
)

// Insert records an action inside the caller's transaction. Callers treat audit
// writes as best-effort and ignore the returned error.
func Insert(ctx context.Context, tx pgx.Tx, actorID, action string, houseID *string, metadata any) error {
	var s *string
	if metadata != nil {
		b, _ := json.Marshal(metadata)
		str := string(b)
		s = &str
	}
	const q = `
INSERT INTO audit_logs (actor_id, action, house_id, metadata)
VALUES ($1, $2, $3, CAST($4 AS jsonb))
`
	_, err := tx.Exec(ctx, q, actorID, action, houseID, s)
	return err
}
