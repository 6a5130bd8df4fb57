package persistence

import (
	"database/sql"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/aggregates/objective"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/activity"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/feedback"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/meeting"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/openmonth"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/person"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/subtask"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/planmonth"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/infrastructure/persistence/models"
)

func toDomainObjective(dbObjective *models.Objective) (*objective.Objective, error) {
	id, err := uuid.Parse(dbObjective.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid objective id")
	}
	companyID, err := uuid.Parse(dbObjective.CompanyID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid company id")
	}
	ownerID, err := uuid.Parse(dbObjective.OwnerID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid owner id")
	}
	month, err := planmonth.Parse(dbObjective.Month)
	if err != nil {
		return nil, errors.Wrap(err, "invalid month")
	}

	opts := []objective.Option{
		objective.WithID(id),
		objective.WithDescription(dbObjective.Description),
		objective.WithCreatedAt(dbObjective.CreatedAt),
		objective.WithUpdatedAt(dbObjective.UpdatedAt),
	}
	if dbObjective.ConfirmedAt.Valid {
		confirmedAt := dbObjective.ConfirmedAt.Time
		opts = append(opts, objective.WithConfirmedAt(&confirmedAt))
	}

	return objective.New(companyID, ownerID, month, dbObjective.Title, opts...), nil
}

func toDBObjective(data *objective.Objective) *models.Objective {
	dbObjective := &models.Objective{
		ID:          data.ID().String(),
		CompanyID:   data.CompanyID().String(),
		OwnerID:     data.OwnerID().String(),
		Month:       data.Month().String(),
		Title:       data.Title(),
		Description: data.Description(),
		CreatedAt:   data.CreatedAt(),
		UpdatedAt:   data.UpdatedAt(),
	}
	if confirmedAt := data.ConfirmedAt(); confirmedAt != nil {
		dbObjective.ConfirmedAt = sql.NullTime{Time: *confirmedAt, Valid: true}
	}
	return dbObjective
}

func toDomainSubTask(dbSubTask *models.SubTask) (*subtask.SubTask, error) {
	id, err := uuid.Parse(dbSubTask.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid sub-task id")
	}
	objectiveID, err := uuid.Parse(dbSubTask.ObjectiveID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid objective id")
	}
	return &subtask.SubTask{
		ID:          id,
		ObjectiveID: objectiveID,
		Title:       dbSubTask.Title,
		Description: dbSubTask.Description,
		Done:        dbSubTask.Done,
		CreatedAt:   dbSubTask.CreatedAt,
		UpdatedAt:   dbSubTask.UpdatedAt,
	}, nil
}

func toDomainActivity(dbActivity *models.Activity) (*activity.Activity, error) {
	id, err := uuid.Parse(dbActivity.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid activity id")
	}
	subTaskID, err := uuid.Parse(dbActivity.SubTaskID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid sub-task id")
	}
	return &activity.Activity{
		ID:        id,
		SubTaskID: subTaskID,
		Title:     dbActivity.Title,
		Cadence:   dbActivity.Cadence,
		Done:      dbActivity.Done,
		CreatedAt: dbActivity.CreatedAt,
		UpdatedAt: dbActivity.UpdatedAt,
	}, nil
}

func toDomainMeeting(dbMeeting *models.Meeting) (*meeting.Meeting, error) {
	id, err := uuid.Parse(dbMeeting.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid meeting id")
	}
	subTaskID, err := uuid.Parse(dbMeeting.SubTaskID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid sub-task id")
	}
	m := &meeting.Meeting{
		ID:        id,
		SubTaskID: subTaskID,
		Title:     dbMeeting.Title,
		CreatedAt: dbMeeting.CreatedAt,
		UpdatedAt: dbMeeting.UpdatedAt,
	}
	if dbMeeting.ScheduledAt.Valid {
		scheduledAt := dbMeeting.ScheduledAt.Time
		m.ScheduledAt = &scheduledAt
	}
	return m, nil
}

func toDomainPerson(dbPerson *models.Person) (*person.Person, error) {
	id, err := uuid.Parse(dbPerson.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid person id")
	}
	subTaskID, err := uuid.Parse(dbPerson.SubTaskID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid sub-task id")
	}
	return &person.Person{
		ID:        id,
		SubTaskID: subTaskID,
		Name:      dbPerson.Name,
		Notes:     dbPerson.Notes,
		CreatedAt: dbPerson.CreatedAt,
		UpdatedAt: dbPerson.UpdatedAt,
	}, nil
}

func toDomainOpenMonth(dbOpenMonth *models.OpenMonth) (*openmonth.OpenMonth, error) {
	id, err := uuid.Parse(dbOpenMonth.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid open month id")
	}
	userID, err := uuid.Parse(dbOpenMonth.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid user id")
	}
	month, err := planmonth.Parse(dbOpenMonth.Month)
	if err != nil {
		return nil, errors.Wrap(err, "invalid month")
	}
	return &openmonth.OpenMonth{
		ID:        id,
		UserID:    userID,
		Month:     month,
		CreatedAt: dbOpenMonth.CreatedAt,
	}, nil
}

func toDomainFeedback(dbFeedback *models.Feedback) (*feedback.Feedback, error) {
	id, err := uuid.Parse(dbFeedback.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid feedback id")
	}
	companyID, err := uuid.Parse(dbFeedback.CompanyID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid company id")
	}
	authorID, err := uuid.Parse(dbFeedback.AuthorID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid author id")
	}
	f := &feedback.Feedback{
		ID:        id,
		CompanyID: companyID,
		AuthorID:  authorID,
		Target:    feedback.TargetType(dbFeedback.Target),
		Body:      dbFeedback.Body,
		CreatedAt: dbFeedback.CreatedAt,
	}
	if dbFeedback.ObjectiveID.Valid {
		objectiveID, err := uuid.Parse(dbFeedback.ObjectiveID.String)
		if err != nil {
			return nil, errors.Wrap(err, "invalid objective id")
		}
		f.ObjectiveID = &objectiveID
	}
	if dbFeedback.TargetUserID.Valid {
		targetUserID, err := uuid.Parse(dbFeedback.TargetUserID.String)
		if err != nil {
			return nil, errors.Wrap(err, "invalid target user id")
		}
		f.TargetUserID = &targetUserID
	}
	if dbFeedback.Month.Valid {
		month, err := planmonth.Parse(dbFeedback.Month.String)
		if err != nil {
			return nil, errors.Wrap(err, "invalid month")
		}
		f.Month = &month
	}
	return f, nil
}

func toDBFeedback(data *feedback.Feedback) *models.Feedback {
	dbFeedback := &models.Feedback{
		ID:        data.ID.String(),
		CompanyID: data.CompanyID.String(),
		AuthorID:  data.AuthorID.String(),
		Target:    string(data.Target),
		Body:      data.Body,
		CreatedAt: data.CreatedAt,
	}
	if data.ObjectiveID != nil {
		dbFeedback.ObjectiveID = sql.NullString{String: data.ObjectiveID.String(), Valid: true}
	}
	if data.TargetUserID != nil {
		dbFeedback.TargetUserID = sql.NullString{String: data.TargetUserID.String(), Valid: true}
	}
	if data.Month != nil {
		dbFeedback.Month = sql.NullString{String: data.Month.String(), Valid: true}
	}
	return dbFeedback
}
