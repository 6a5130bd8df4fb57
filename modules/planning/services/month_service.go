package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/openmonth"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/planmonth"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
	"github.com/dsalvat/fase-platform-sub001/pkg/serrors"
)

var (
	ErrMonthFrozen = serrors.NewError(
		"MONTH_FROZEN",
		"past months are read-only",
		"Months.Frozen",
	)
	ErrMonthImplicitlyOpen = serrors.NewError(
		"MONTH_IMPLICITLY_OPEN",
		"the current month is always open and never stored",
		"Months.ImplicitlyOpen",
	)
)

// SequenceGapError rejects opening a month while an earlier future month is
// still locked. Missing names the first prerequisite month that must be
// opened first, so the caller can guide the user.
type SequenceGapError struct {
	Requested planmonth.Month
	Missing   planmonth.Month
}

func (e *SequenceGapError) Error() string {
	return fmt.Sprintf("cannot open %s: %s must be opened first", e.Requested, e.Missing)
}

// MonthService is the month lifecycle gate. A month is PAST, CURRENT or
// FUTURE by wall clock alone; a future month is additionally locked or open
// per user. Opening proceeds strictly in calendar order with no gaps.
type MonthService struct {
	repo openmonth.Repository
	now  func() time.Time
}

func NewMonthService(repo openmonth.Repository) *MonthService {
	return &MonthService{repo: repo, now: time.Now}
}

// Open unlocks a future month for planning. The gap check and the insert run
// in one transaction: a concurrent open of the same month is idempotent, and
// a concurrent open of an earlier month cannot make this one appear
// out-of-order after the fact.
func (s *MonthService) Open(ctx context.Context, userID uuid.UUID, month planmonth.Month) (*openmonth.OpenMonth, error) {
	now := s.now()
	switch month.StatusAt(now) {
	case planmonth.StatusPast:
		return nil, ErrMonthFrozen
	case planmonth.StatusCurrent:
		return nil, ErrMonthImplicitlyOpen
	}

	return composables.InTxResult(ctx, func(txCtx context.Context) (*openmonth.OpenMonth, error) {
		// Every month strictly between the current month and the target must
		// already be open. The current month itself is implicitly open.
		for cursor := planmonth.Of(now).Next(); cursor.Before(month); cursor = cursor.Next() {
			open, err := s.repo.Exists(txCtx, userID, cursor)
			if err != nil {
				return nil, err
			}
			if !open {
				return nil, &SequenceGapError{Requested: month, Missing: cursor}
			}
		}
		return s.repo.Create(txCtx, &openmonth.OpenMonth{
			ID:        uuid.New(),
			UserID:    userID,
			Month:     month,
			CreatedAt: now,
		})
	})
}

// IsWritable reports whether the user may write into the month: the current
// month always, a future month only once opened, a past month never.
func (s *MonthService) IsWritable(ctx context.Context, userID uuid.UUID, month planmonth.Month) (bool, error) {
	switch month.StatusAt(s.now()) {
	case planmonth.StatusCurrent:
		return true, nil
	case planmonth.StatusPast:
		return false, nil
	default:
		return s.repo.Exists(ctx, userID, month)
	}
}

// IsReadOnly reports whether the month is frozen for everyone.
func (s *MonthService) IsReadOnly(month planmonth.Month) bool {
	return month.ReadOnlyAt(s.now())
}

// OpenedMonths lists the months the user has explicitly opened.
func (s *MonthService) OpenedMonths(ctx context.Context, userID uuid.UUID) ([]*openmonth.OpenMonth, error) {
	return s.repo.ListByUser(ctx, userID)
}
