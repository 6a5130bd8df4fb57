package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/access"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/activity"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/meeting"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/person"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/subtask"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
)

type CreateSubTaskParams struct {
	ObjectiveID uuid.UUID
	Title       string
	Description string
}

type CreateActivityParams struct {
	SubTaskID uuid.UUID
	Title     string
	Cadence   string
}

type CreateMeetingParams struct {
	SubTaskID   uuid.UUID
	Title       string
	ScheduledAt *time.Time
}

type CreatePersonParams struct {
	SubTaskID uuid.UUID
	Name      string
	Notes     string
}

// TreeService manages everything hanging off an objective. Children carry no
// owner or month of their own, so creation is gated on the parent and every
// other mutation on the child itself, both resolved through the engine.
type TreeService struct {
	subTasks   subtask.Repository
	activities activity.Repository
	meetings   meeting.Repository
	persons    person.Repository
	accessSvc  *AccessService
}

func NewTreeService(
	subTasks subtask.Repository,
	activities activity.Repository,
	meetings meeting.Repository,
	persons person.Repository,
	accessSvc *AccessService,
) *TreeService {
	return &TreeService{
		subTasks:   subTasks,
		activities: activities,
		meetings:   meetings,
		persons:    persons,
		accessSvc:  accessSvc,
	}
}

func (s *TreeService) guard(allowed bool, err error) error {
	if err != nil {
		return err
	}
	if !allowed {
		return ErrForbidden
	}
	return nil
}

func (s *TreeService) ListSubTasks(ctx context.Context, objectiveID uuid.UUID, actor access.Actor) ([]*subtask.SubTask, error) {
	if err := s.guard(s.accessSvc.CanAccessObjective(ctx, objectiveID, actor)); err != nil {
		return nil, err
	}
	return s.subTasks.GetByObjective(ctx, objectiveID)
}

func (s *TreeService) CreateSubTask(ctx context.Context, params CreateSubTaskParams, actor access.Actor) (*subtask.SubTask, error) {
	if err := s.guard(s.accessSvc.CanModifyObjective(ctx, params.ObjectiveID, actor)); err != nil {
		return nil, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (*subtask.SubTask, error) {
		now := timeNow()
		return s.subTasks.Create(txCtx, &subtask.SubTask{
			ID:          uuid.New(),
			ObjectiveID: params.ObjectiveID,
			Title:       params.Title,
			Description: params.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	})
}

func (s *TreeService) UpdateSubTask(ctx context.Context, id uuid.UUID, title, description string, done bool, actor access.Actor) (*subtask.SubTask, error) {
	if err := s.guard(s.accessSvc.CanModifySubTask(ctx, id, actor)); err != nil {
		return nil, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (*subtask.SubTask, error) {
		data, err := s.subTasks.GetByID(txCtx, id)
		if err != nil {
			return nil, err
		}
		data.Title = title
		data.Description = description
		data.Done = done
		data.UpdatedAt = timeNow()
		return s.subTasks.Update(txCtx, data)
	})
}

func (s *TreeService) DeleteSubTask(ctx context.Context, id uuid.UUID, actor access.Actor) error {
	if err := s.guard(s.accessSvc.CanModifySubTask(ctx, id, actor)); err != nil {
		return err
	}
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.subTasks.Delete(txCtx, id)
	})
}

func (s *TreeService) ListActivities(ctx context.Context, subTaskID uuid.UUID, actor access.Actor) ([]*activity.Activity, error) {
	if err := s.guard(s.accessSvc.CanAccessSubTask(ctx, subTaskID, actor)); err != nil {
		return nil, err
	}
	return s.activities.GetBySubTask(ctx, subTaskID)
}

func (s *TreeService) CreateActivity(ctx context.Context, params CreateActivityParams, actor access.Actor) (*activity.Activity, error) {
	if err := s.guard(s.accessSvc.CanModifySubTask(ctx, params.SubTaskID, actor)); err != nil {
		return nil, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (*activity.Activity, error) {
		now := timeNow()
		return s.activities.Create(txCtx, &activity.Activity{
			ID:        uuid.New(),
			SubTaskID: params.SubTaskID,
			Title:     params.Title,
			Cadence:   params.Cadence,
			CreatedAt: now,
			UpdatedAt: now,
		})
	})
}

func (s *TreeService) UpdateActivity(ctx context.Context, id uuid.UUID, title, cadence string, done bool, actor access.Actor) (*activity.Activity, error) {
	if err := s.guard(s.accessSvc.CanModifyActivity(ctx, id, actor)); err != nil {
		return nil, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (*activity.Activity, error) {
		data, err := s.activities.GetByID(txCtx, id)
		if err != nil {
			return nil, err
		}
		data.Title = title
		data.Cadence = cadence
		data.Done = done
		data.UpdatedAt = timeNow()
		return s.activities.Update(txCtx, data)
	})
}

func (s *TreeService) DeleteActivity(ctx context.Context, id uuid.UUID, actor access.Actor) error {
	if err := s.guard(s.accessSvc.CanModifyActivity(ctx, id, actor)); err != nil {
		return err
	}
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.activities.Delete(txCtx, id)
	})
}

func (s *TreeService) CreateMeeting(ctx context.Context, params CreateMeetingParams, actor access.Actor) (*meeting.Meeting, error) {
	if err := s.guard(s.accessSvc.CanModifySubTask(ctx, params.SubTaskID, actor)); err != nil {
		return nil, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (*meeting.Meeting, error) {
		now := timeNow()
		return s.meetings.Create(txCtx, &meeting.Meeting{
			ID:          uuid.New(),
			SubTaskID:   params.SubTaskID,
			Title:       params.Title,
			ScheduledAt: params.ScheduledAt,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	})
}

func (s *TreeService) DeleteMeeting(ctx context.Context, id uuid.UUID, actor access.Actor) error {
	if err := s.guard(s.accessSvc.CanModifyMeeting(ctx, id, actor)); err != nil {
		return err
	}
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.meetings.Delete(txCtx, id)
	})
}

func (s *TreeService) CreatePerson(ctx context.Context, params CreatePersonParams, actor access.Actor) (*person.Person, error) {
	if err := s.guard(s.accessSvc.CanModifySubTask(ctx, params.SubTaskID, actor)); err != nil {
		return nil, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (*person.Person, error) {
		now := timeNow()
		return s.persons.Create(txCtx, &person.Person{
			ID:        uuid.New(),
			SubTaskID: params.SubTaskID,
			Name:      params.Name,
			Notes:     params.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		})
	})
}

func (s *TreeService) DeletePerson(ctx context.Context, id uuid.UUID, actor access.Actor) error {
	if err := s.guard(s.accessSvc.CanModifyPerson(ctx, id, actor)); err != nil {
		return err
	}
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.persons.Delete(txCtx, id)
	})
}
