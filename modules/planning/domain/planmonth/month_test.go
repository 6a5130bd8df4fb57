package planmonth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	m, err := Parse("2026-01")
	require.NoError(t, err)
	require.Equal(t, "2026-01", m.String())
	require.Equal(t, 2026, m.Year())
	require.Equal(t, time.January, m.Month())

	for _, invalid := range []string{"", "2026", "2026-13", "2026-1", "26-01", "2026/01"} {
		_, err := Parse(invalid)
		require.Error(t, err, "expected %q to be rejected", invalid)
	}
}

func TestNextPrev(t *testing.T) {
	require.Equal(t, MustParse("2026-01"), MustParse("2025-12").Next())
	require.Equal(t, MustParse("2025-12"), MustParse("2026-01").Prev())
	require.Equal(t, MustParse("2026-03"), MustParse("2026-02").Next())
}

func TestCompare(t *testing.T) {
	require.Equal(t, -1, MustParse("2025-12").Compare(MustParse("2026-01")))
	require.Equal(t, 1, MustParse("2026-02").Compare(MustParse("2026-01")))
	require.Equal(t, 0, MustParse("2026-01").Compare(MustParse("2026-01")))
	require.True(t, MustParse("2025-11").Before(MustParse("2026-01")))
	require.True(t, MustParse("2026-02").After(MustParse("2026-01")))
}

func TestStatusAt(t *testing.T) {
	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

	require.Equal(t, StatusPast, MustParse("2025-12").StatusAt(now))
	require.Equal(t, StatusCurrent, MustParse("2026-01").StatusAt(now))
	require.Equal(t, StatusFuture, MustParse("2026-02").StatusAt(now))

	require.True(t, MustParse("2025-11").ReadOnlyAt(now))
	require.False(t, MustParse("2026-01").ReadOnlyAt(now))
	require.False(t, MustParse("2026-04").ReadOnlyAt(now))
}

func TestOf(t *testing.T) {
	require.Equal(t, MustParse("2026-08"), Of(time.Date(2026, time.August, 31, 23, 59, 0, 0, time.UTC)))
}
