package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/openmonth"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/planmonth"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
)

// fakeTx satisfies pgx.Tx for InTx reuse; the in-memory repositories never
// touch the underlying connection.
type fakeTx struct {
	pgx.Tx
}

func txContext() context.Context {
	return composables.WithTx(context.Background(), fakeTx{})
}

type openKey struct {
	userID uuid.UUID
	month  planmonth.Month
}

type inMemoryOpenMonthRepo struct {
	rows map[openKey]*openmonth.OpenMonth
}

func newInMemoryOpenMonthRepo() *inMemoryOpenMonthRepo {
	return &inMemoryOpenMonthRepo{rows: map[openKey]*openmonth.OpenMonth{}}
}

func (r *inMemoryOpenMonthRepo) seed(userID uuid.UUID, month planmonth.Month) {
	r.rows[openKey{userID, month}] = &openmonth.OpenMonth{
		ID: uuid.New(), UserID: userID, Month: month, CreatedAt: time.Now(),
	}
}

func (r *inMemoryOpenMonthRepo) Get(_ context.Context, userID uuid.UUID, month planmonth.Month) (*openmonth.OpenMonth, error) {
	row, ok := r.rows[openKey{userID, month}]
	if !ok {
		return nil, openmonth.ErrOpenMonthNotFound
	}
	return row, nil
}

func (r *inMemoryOpenMonthRepo) Exists(_ context.Context, userID uuid.UUID, month planmonth.Month) (bool, error) {
	_, ok := r.rows[openKey{userID, month}]
	return ok, nil
}

func (r *inMemoryOpenMonthRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*openmonth.OpenMonth, error) {
	out := make([]*openmonth.OpenMonth, 0)
	for key, row := range r.rows {
		if key.userID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *inMemoryOpenMonthRepo) Create(_ context.Context, data *openmonth.OpenMonth) (*openmonth.OpenMonth, error) {
	key := openKey{data.UserID, data.Month}
	if existing, ok := r.rows[key]; ok {
		return existing, nil
	}
	r.rows[key] = data
	return data, nil
}

// fixedClock pins "now" inside January 2026.
func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)
	}
}

func newMonthService(repo openmonth.Repository) *MonthService {
	return &MonthService{repo: repo, now: fixedClock()}
}

func TestMonthService_Open(t *testing.T) {
	userID := uuid.New()

	t.Run("past month is frozen", func(t *testing.T) {
		svc := newMonthService(newInMemoryOpenMonthRepo())
		_, err := svc.Open(txContext(), userID, planmonth.MustParse("2025-12"))
		assert.ErrorIs(t, err, ErrMonthFrozen)
	})

	t.Run("current month is implicitly open", func(t *testing.T) {
		svc := newMonthService(newInMemoryOpenMonthRepo())
		_, err := svc.Open(txContext(), userID, planmonth.MustParse("2026-01"))
		assert.ErrorIs(t, err, ErrMonthImplicitlyOpen)
	})

	t.Run("next month opens without prerequisites", func(t *testing.T) {
		svc := newMonthService(newInMemoryOpenMonthRepo())
		record, err := svc.Open(txContext(), userID, planmonth.MustParse("2026-02"))
		require.NoError(t, err)
		assert.Equal(t, "2026-02", record.Month.String())
	})

	t.Run("gap names the first missing month", func(t *testing.T) {
		svc := newMonthService(newInMemoryOpenMonthRepo())
		_, err := svc.Open(txContext(), userID, planmonth.MustParse("2026-04"))
		var gap *SequenceGapError
		require.ErrorAs(t, err, &gap)
		assert.Equal(t, "2026-02", gap.Missing.String())
		assert.Equal(t, "2026-04", gap.Requested.String())
	})

	t.Run("contiguous sequence opens in order", func(t *testing.T) {
		repo := newInMemoryOpenMonthRepo()
		svc := newMonthService(repo)
		for _, m := range []string{"2026-02", "2026-03", "2026-04"} {
			_, err := svc.Open(txContext(), userID, planmonth.MustParse(m))
			require.NoError(t, err, m)
		}
		open, err := repo.Exists(context.Background(), userID, planmonth.MustParse("2026-04"))
		require.NoError(t, err)
		assert.True(t, open)
	})

	t.Run("reopening is idempotent", func(t *testing.T) {
		repo := newInMemoryOpenMonthRepo()
		svc := newMonthService(repo)
		first, err := svc.Open(txContext(), userID, planmonth.MustParse("2026-02"))
		require.NoError(t, err)
		second, err := svc.Open(txContext(), userID, planmonth.MustParse("2026-02"))
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("gap check is per user", func(t *testing.T) {
		repo := newInMemoryOpenMonthRepo()
		otherUser := uuid.New()
		repo.seed(otherUser, planmonth.MustParse("2026-02"))
		svc := newMonthService(repo)

		_, err := svc.Open(txContext(), userID, planmonth.MustParse("2026-03"))
		var gap *SequenceGapError
		require.ErrorAs(t, err, &gap)
		assert.Equal(t, "2026-02", gap.Missing.String())
	})
}

func TestMonthService_IsWritable(t *testing.T) {
	userID := uuid.New()
	repo := newInMemoryOpenMonthRepo()
	repo.seed(userID, planmonth.MustParse("2026-02"))
	svc := newMonthService(repo)

	cases := []struct {
		month    string
		writable bool
	}{
		{"2025-12", false},
		{"2026-01", true},
		{"2026-02", true},
		{"2026-03", false},
	}
	for _, tc := range cases {
		writable, err := svc.IsWritable(context.Background(), userID, planmonth.MustParse(tc.month))
		require.NoError(t, err, tc.month)
		assert.Equal(t, tc.writable, writable, tc.month)
	}
}

func TestMonthService_IsReadOnly(t *testing.T) {
	svc := newMonthService(newInMemoryOpenMonthRepo())
	assert.True(t, svc.IsReadOnly(planmonth.MustParse("2025-12")))
	assert.False(t, svc.IsReadOnly(planmonth.MustParse("2026-01")))
	assert.False(t, svc.IsReadOnly(planmonth.MustParse("2026-02")))
}
