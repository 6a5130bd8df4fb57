package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/access"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/activity"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/meeting"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/person"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/subtask"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/planmonth"
)

type inMemorySubTaskRepo struct {
	rows map[uuid.UUID]*subtask.SubTask
}

func (r *inMemorySubTaskRepo) GetByID(_ context.Context, id uuid.UUID) (*subtask.SubTask, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, subtask.ErrSubTaskNotFound
	}
	return row, nil
}

func (r *inMemorySubTaskRepo) GetByObjective(_ context.Context, objectiveID uuid.UUID) ([]*subtask.SubTask, error) {
	var out []*subtask.SubTask
	for _, row := range r.rows {
		if row.ObjectiveID == objectiveID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *inMemorySubTaskRepo) Create(_ context.Context, data *subtask.SubTask) (*subtask.SubTask, error) {
	r.rows[data.ID] = data
	return data, nil
}

func (r *inMemorySubTaskRepo) Update(_ context.Context, data *subtask.SubTask) (*subtask.SubTask, error) {
	r.rows[data.ID] = data
	return data, nil
}

func (r *inMemorySubTaskRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

type inMemoryActivityRepo struct {
	rows map[uuid.UUID]*activity.Activity
}

func (r *inMemoryActivityRepo) GetByID(_ context.Context, id uuid.UUID) (*activity.Activity, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, activity.ErrActivityNotFound
	}
	return row, nil
}

func (r *inMemoryActivityRepo) GetBySubTask(_ context.Context, subTaskID uuid.UUID) ([]*activity.Activity, error) {
	var out []*activity.Activity
	for _, row := range r.rows {
		if row.SubTaskID == subTaskID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *inMemoryActivityRepo) Create(_ context.Context, data *activity.Activity) (*activity.Activity, error) {
	r.rows[data.ID] = data
	return data, nil
}

func (r *inMemoryActivityRepo) Update(_ context.Context, data *activity.Activity) (*activity.Activity, error) {
	r.rows[data.ID] = data
	return data, nil
}

func (r *inMemoryActivityRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

type inMemoryMeetingRepo struct {
	rows map[uuid.UUID]*meeting.Meeting
}

func (r *inMemoryMeetingRepo) GetByID(_ context.Context, id uuid.UUID) (*meeting.Meeting, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, meeting.ErrMeetingNotFound
	}
	return row, nil
}

func (r *inMemoryMeetingRepo) GetBySubTask(_ context.Context, subTaskID uuid.UUID) ([]*meeting.Meeting, error) {
	var out []*meeting.Meeting
	for _, row := range r.rows {
		if row.SubTaskID == subTaskID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *inMemoryMeetingRepo) Create(_ context.Context, data *meeting.Meeting) (*meeting.Meeting, error) {
	r.rows[data.ID] = data
	return data, nil
}

func (r *inMemoryMeetingRepo) Update(_ context.Context, data *meeting.Meeting) (*meeting.Meeting, error) {
	r.rows[data.ID] = data
	return data, nil
}

func (r *inMemoryMeetingRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

type inMemoryPersonRepo struct {
	rows map[uuid.UUID]*person.Person
}

func (r *inMemoryPersonRepo) GetByID(_ context.Context, id uuid.UUID) (*person.Person, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, person.ErrPersonNotFound
	}
	return row, nil
}

func (r *inMemoryPersonRepo) GetBySubTask(_ context.Context, subTaskID uuid.UUID) ([]*person.Person, error) {
	var out []*person.Person
	for _, row := range r.rows {
		if row.SubTaskID == subTaskID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *inMemoryPersonRepo) Create(_ context.Context, data *person.Person) (*person.Person, error) {
	r.rows[data.ID] = data
	return data, nil
}

func (r *inMemoryPersonRepo) Update(_ context.Context, data *person.Person) (*person.Person, error) {
	r.rows[data.ID] = data
	return data, nil
}

func (r *inMemoryPersonRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

type treeFixture struct {
	*accessFixture
	subTasks *inMemorySubTaskRepo
	svc      *TreeService
}

func newTreeFixture(t *testing.T) *treeFixture {
	t.Helper()
	af := newAccessFixture(t)
	subTasks := &inMemorySubTaskRepo{rows: map[uuid.UUID]*subtask.SubTask{}}
	return &treeFixture{
		accessFixture: af,
		subTasks:      subTasks,
		svc: NewTreeService(
			subTasks,
			&inMemoryActivityRepo{rows: map[uuid.UUID]*activity.Activity{}},
			&inMemoryMeetingRepo{rows: map[uuid.UUID]*meeting.Meeting{}},
			&inMemoryPersonRepo{rows: map[uuid.UUID]*person.Person{}},
			af.svc,
		),
	}
}

// childOf registers an ownership row for a child object so the resolver can
// answer for it the way the JOIN queries would in production.
func (f *treeFixture) childOf(id uuid.UUID, month string) {
	f.resolver.objects[id] = access.Ownership{
		OwnerID:   f.owner.ID,
		CompanyID: f.companyID,
		Month:     planmonth.MustParse(month),
	}
}

func TestTreeService_CreateSubTask(t *testing.T) {
	t.Run("owner adds a sub-task to a writable objective", func(t *testing.T) {
		f := newTreeFixture(t)
		created, err := f.svc.CreateSubTask(txContext(), CreateSubTaskParams{
			ObjectiveID: f.currentObj,
			Title:       "draft the outline",
		}, f.owner)
		require.NoError(t, err)
		assert.Equal(t, f.currentObj, created.ObjectiveID)
		assert.Len(t, f.subTasks.rows, 1)
	})

	t.Run("supervisor cannot add to a subordinate's plan", func(t *testing.T) {
		f := newTreeFixture(t)
		_, err := f.svc.CreateSubTask(txContext(), CreateSubTaskParams{
			ObjectiveID: f.currentObj,
			Title:       "homework",
		}, f.supervisor)
		assert.ErrorIs(t, err, ErrForbidden)
		assert.Empty(t, f.subTasks.rows)
	})

	t.Run("frozen parent month blocks the child", func(t *testing.T) {
		f := newTreeFixture(t)
		_, err := f.svc.CreateSubTask(txContext(), CreateSubTaskParams{
			ObjectiveID: f.pastObj,
			Title:       "late addition",
		}, f.owner)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestTreeService_UpdateSubTask(t *testing.T) {
	f := newTreeFixture(t)
	created, err := f.svc.CreateSubTask(txContext(), CreateSubTaskParams{
		ObjectiveID: f.currentObj,
		Title:       "draft the outline",
	}, f.owner)
	require.NoError(t, err)
	f.childOf(created.ID, "2026-01")

	updated, err := f.svc.UpdateSubTask(txContext(), created.ID, "draft the outline", "", true, f.owner)
	require.NoError(t, err)
	assert.True(t, updated.Done)

	_, err = f.svc.UpdateSubTask(txContext(), created.ID, "sabotage", "", false, f.member)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestTreeService_GrandchildrenFollowTheSubTask(t *testing.T) {
	f := newTreeFixture(t)
	st, err := f.svc.CreateSubTask(txContext(), CreateSubTaskParams{
		ObjectiveID: f.currentObj,
		Title:       "prepare the launch",
	}, f.owner)
	require.NoError(t, err)
	f.childOf(st.ID, "2026-01")

	act, err := f.svc.CreateActivity(txContext(), CreateActivityParams{
		SubTaskID: st.ID,
		Title:     "daily standup notes",
		Cadence:   "daily",
	}, f.owner)
	require.NoError(t, err)
	f.childOf(act.ID, "2026-01")

	_, err = f.svc.CreateMeeting(txContext(), CreateMeetingParams{
		SubTaskID: st.ID,
		Title:     "kickoff",
	}, f.owner)
	require.NoError(t, err)

	_, err = f.svc.CreatePerson(txContext(), CreatePersonParams{
		SubTaskID: st.ID,
		Name:      "Dana from marketing",
	}, f.admin)
	require.NoError(t, err)

	t.Run("supervisor reads but never writes", func(t *testing.T) {
		items, err := f.svc.ListActivities(context.Background(), st.ID, f.supervisor)
		require.NoError(t, err)
		assert.Len(t, items, 1)

		err = f.svc.DeleteActivity(txContext(), act.ID, f.supervisor)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("owner deletes the activity", func(t *testing.T) {
		require.NoError(t, f.svc.DeleteActivity(txContext(), act.ID, f.owner))
	})
}
