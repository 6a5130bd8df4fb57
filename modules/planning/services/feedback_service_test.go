package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/access"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/feedback"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/planmonth"
)

type inMemoryFeedbackRepo struct {
	rows map[uuid.UUID]*feedback.Feedback
}

func newInMemoryFeedbackRepo() *inMemoryFeedbackRepo {
	return &inMemoryFeedbackRepo{rows: map[uuid.UUID]*feedback.Feedback{}}
}

func (r *inMemoryFeedbackRepo) GetByID(_ context.Context, id uuid.UUID) (*feedback.Feedback, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, feedback.ErrFeedbackNotFound
	}
	return row, nil
}

func (r *inMemoryFeedbackRepo) GetByObjective(_ context.Context, objectiveID uuid.UUID) ([]*feedback.Feedback, error) {
	var out []*feedback.Feedback
	for _, row := range r.rows {
		if row.ObjectiveID != nil && *row.ObjectiveID == objectiveID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *inMemoryFeedbackRepo) GetByMonthPlan(_ context.Context, userID uuid.UUID, month planmonth.Month) ([]*feedback.Feedback, error) {
	var out []*feedback.Feedback
	for _, row := range r.rows {
		if row.TargetUserID != nil && *row.TargetUserID == userID && row.Month != nil && *row.Month == month {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *inMemoryFeedbackRepo) Create(_ context.Context, data *feedback.Feedback) (*feedback.Feedback, error) {
	r.rows[data.ID] = data
	return data, nil
}

func (r *inMemoryFeedbackRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

type feedbackFixture struct {
	*accessFixture
	repo *inMemoryFeedbackRepo
	svc  *FeedbackService
}

func newFeedbackFixture(t *testing.T) *feedbackFixture {
	t.Helper()
	af := newAccessFixture(t)
	repo := newInMemoryFeedbackRepo()
	return &feedbackFixture{
		accessFixture: af,
		repo:          repo,
		svc:           NewFeedbackService(repo, af.resolver, af.supervisionRepo, af.svc),
	}
}

func TestFeedbackService_CreateOnObjective(t *testing.T) {
	t.Run("supervisor annotates a subordinate objective", func(t *testing.T) {
		f := newFeedbackFixture(t)
		created, err := f.svc.Create(txContext(), CreateFeedbackParams{
			Target:      feedback.TargetObjective,
			ObjectiveID: &f.currentObj,
			Body:        "solid plan, tighten the milestones",
		}, f.supervisor)
		require.NoError(t, err)
		assert.Equal(t, f.supervisor.ID, created.AuthorID)
		assert.Equal(t, f.companyID, created.CompanyID)
		require.NotNil(t, created.ObjectiveID)
		assert.Equal(t, f.currentObj, *created.ObjectiveID)
	})

	t.Run("company admin annotates without a supervision edge", func(t *testing.T) {
		f := newFeedbackFixture(t)
		_, err := f.svc.Create(txContext(), CreateFeedbackParams{
			Target:      feedback.TargetObjective,
			ObjectiveID: &f.currentObj,
			Body:        "noted",
		}, f.admin)
		require.NoError(t, err)
	})

	t.Run("member is rejected", func(t *testing.T) {
		f := newFeedbackFixture(t)
		_, err := f.svc.Create(txContext(), CreateFeedbackParams{
			Target:      feedback.TargetObjective,
			ObjectiveID: &f.currentObj,
			Body:        "peer review",
		}, f.member)
		assert.ErrorIs(t, err, ErrNotSupervisor)
		assert.Empty(t, f.repo.rows)
	})

	t.Run("super admin needs a selected company", func(t *testing.T) {
		f := newFeedbackFixture(t)
		_, err := f.svc.Create(txContext(), CreateFeedbackParams{
			Target:      feedback.TargetObjective,
			ObjectiveID: &f.currentObj,
			Body:        "override note",
		}, f.rootNoCo)
		assert.ErrorIs(t, err, ErrNotSupervisor)

		_, err = f.svc.Create(txContext(), CreateFeedbackParams{
			Target:      feedback.TargetObjective,
			ObjectiveID: &f.currentObj,
			Body:        "override note",
		}, f.root)
		require.NoError(t, err)
	})

	t.Run("missing objective resolves to not found", func(t *testing.T) {
		f := newFeedbackFixture(t)
		missing := uuid.New()
		_, err := f.svc.Create(txContext(), CreateFeedbackParams{
			Target:      feedback.TargetObjective,
			ObjectiveID: &missing,
			Body:        "ghost",
		}, f.supervisor)
		assert.ErrorIs(t, err, access.ErrOwnershipNotFound)
	})
}

func TestFeedbackService_CreateOnMonthPlan(t *testing.T) {
	month := planmonth.MustParse("2026-01")

	t.Run("supervisor annotates the subordinate's month", func(t *testing.T) {
		f := newFeedbackFixture(t)
		created, err := f.svc.Create(txContext(), CreateFeedbackParams{
			Target:       feedback.TargetMonthPlan,
			TargetUserID: &f.owner.ID,
			Month:        &month,
			Body:         "good cadence this month",
		}, f.supervisor)
		require.NoError(t, err)
		assert.Equal(t, feedback.TargetMonthPlan, created.Target)
		require.NotNil(t, created.Month)
		assert.Equal(t, month, *created.Month)
	})

	t.Run("supervision edge is checked against the plan owner", func(t *testing.T) {
		f := newFeedbackFixture(t)
		_, err := f.svc.Create(txContext(), CreateFeedbackParams{
			Target:       feedback.TargetMonthPlan,
			TargetUserID: &f.member.ID,
			Month:        &month,
			Body:         "not my report",
		}, f.supervisor)
		assert.ErrorIs(t, err, ErrNotSupervisor)
	})

	t.Run("incomplete target is not found", func(t *testing.T) {
		f := newFeedbackFixture(t)
		_, err := f.svc.Create(txContext(), CreateFeedbackParams{
			Target:       feedback.TargetMonthPlan,
			TargetUserID: &f.owner.ID,
			Body:         "no month given",
		}, f.supervisor)
		assert.ErrorIs(t, err, access.ErrOwnershipNotFound)
	})
}

func TestFeedbackService_GetByID(t *testing.T) {
	f := newFeedbackFixture(t)
	created, err := f.svc.Create(txContext(), CreateFeedbackParams{
		Target:      feedback.TargetObjective,
		ObjectiveID: &f.currentObj,
		Body:        "visible to the owner",
	}, f.supervisor)
	require.NoError(t, err)

	// Feedback follows the target owner's visibility, not the author's.
	f.resolver.objects[created.ID] = access.Ownership{
		OwnerID:   f.owner.ID,
		CompanyID: f.companyID,
		Month:     planmonth.MustParse("2026-01"),
	}

	got, err := f.svc.GetByID(context.Background(), created.ID, f.owner)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = f.svc.GetByID(context.Background(), created.ID, f.member)
	assert.ErrorIs(t, err, ErrForbidden)
}
