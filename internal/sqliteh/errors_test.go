package sqliteh

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback Kind
		want     Kind
	}{
		{
			name:     "busy is retryable",
			err:      sqlite3.Error{Code: sqlite3.ErrBusy},
			fallback: KindStep,
			want:     KindBusy,
		},
		{
			name:     "locked is retryable",
			err:      sqlite3.Error{Code: sqlite3.ErrLocked},
			fallback: KindStep,
			want:     KindBusy,
		},
		{
			name:     "misuse is a programming error",
			err:      sqlite3.Error{Code: sqlite3.ErrMisuse},
			fallback: KindStep,
			want:     KindMisuse,
		},
		{
			name:     "constraint gets its own kind",
			err:      sqlite3.Error{Code: sqlite3.ErrConstraint},
			fallback: KindStep,
			want:     KindConstraint,
		},
		{
			name:     "wrapped engine error still classified",
			err:      fmt.Errorf("wrapped: %w", sqlite3.Error{Code: sqlite3.ErrBusy}),
			fallback: KindExec,
			want:     KindBusy,
		},
		{
			name:     "unknown engine code keeps fallback",
			err:      sqlite3.Error{Code: sqlite3.ErrError},
			fallback: KindPrepare,
			want:     KindPrepare,
		},
		{
			name:     "non-engine error keeps fallback",
			err:      errors.New("plain"),
			fallback: KindExec,
			want:     KindExec,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.fallback, "SELECT 1", tt.err)
			assert.Equal(t, tt.want, got.Kind)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	t.Run("WithSQL", func(t *testing.T) {
		err := newError(KindExec, "DROP TABLE nope", errors.New("no such table"))
		assert.Contains(t, err.Error(), "exec")
		assert.Contains(t, err.Error(), "DROP TABLE nope")
		assert.Contains(t, err.Error(), "no such table")
	})

	t.Run("WithoutSQL", func(t *testing.T) {
		err := newError(KindTx, "", errors.New("transaction already finished"))
		assert.Contains(t, err.Error(), "transaction")
		assert.NotContains(t, err.Error(), `""`)
	})
}

func TestRetryable(t *testing.T) {
	assert.True(t, newError(KindBusy, "", errors.New("busy")).Retryable())
	assert.False(t, newError(KindExec, "", errors.New("nope")).Retryable())
}
