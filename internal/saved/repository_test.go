package saved

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

// memSaves mimics the saved_houses table for a single tenant+house pair.
type memSaves struct {
	saved   bool
	execErr error
}

func (m *memSaves) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	if m.execErr != nil {
		return pgconn.CommandTag{}, m.execErr
	}
	if strings.HasPrefix(strings.TrimSpace(sql), "DELETE") {
		if m.saved {
			m.saved = false
			return pgconn.NewCommandTag("DELETE 1"), nil
		}
		return pgconn.NewCommandTag("DELETE 0"), nil
	}
	m.saved = true
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestToggle_SelfInverse(t *testing.T) {
	m := &memSaves{}

	saved, err := toggle(context.Background(), m, "t1", "h1")
	assert.NoError(t, err)
	assert.True(t, saved)
	assert.True(t, m.saved)

	saved, err = toggle(context.Background(), m, "t1", "h1")
	assert.NoError(t, err)
	assert.False(t, saved)
	assert.False(t, m.saved)

	// A third flip lands back on saved.
	saved, err = toggle(context.Background(), m, "t1", "h1")
	assert.NoError(t, err)
	assert.True(t, saved)
}

func TestToggle_RemovesExistingBookmark(t *testing.T) {
	m := &memSaves{saved: true}

	saved, err := toggle(context.Background(), m, "t1", "h1")
	assert.NoError(t, err)
	assert.False(t, saved)
	assert.False(t, m.saved)
}

func TestToggle_PropagatesError(t *testing.T) {
	m := &memSaves{execErr: errors.New("connection reset")}

	_, err := toggle(context.Background(), m, "t1", "h1")
	assert.Error(t, err)
}
