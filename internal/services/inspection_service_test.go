package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/housecheck/inspections-service/internal/dtos"
	"github.com/housecheck/inspections-service/internal/models"
	"github.com/housecheck/inspections-service/internal/utils"
)

type inspectionTestEnv struct {
	managerID   uuid.UUID
	propertyID  uuid.UUID
	propRepo    *fakePropertyRepo
	inspRepo    *fakeInspectionRepo
	subtaskRepo *fakeSubtaskRepo
	tmplRepo    *fakeTemplateRepo
	svc         *InspectionService
}

func newInspectionTestEnv(t *testing.T) *inspectionTestEnv {
	t.Helper()

	env := &inspectionTestEnv{
		managerID:   uuid.New(),
		propertyID:  uuid.New(),
		propRepo:    &fakePropertyRepo{},
		inspRepo:    &fakeInspectionRepo{},
		subtaskRepo: &fakeSubtaskRepo{},
		tmplRepo:    newFakeTemplateRepo(),
	}
	require.NoError(t, env.propRepo.Create(context.Background(), &models.Property{
		ID:        env.propertyID,
		ManagerID: env.managerID,
		Name:      "Maple Court",
		TimeZone:  "America/Chicago",
	}))

	propService := NewPropertyService(env.propRepo)
	tmplService := NewTemplateService(env.tmplRepo, env.subtaskRepo)
	env.svc = NewInspectionService(env.inspRepo, env.subtaskRepo, propService, tmplService)
	return env
}

func (env *inspectionTestEnv) addInspection(t *testing.T, parent *uuid.UUID, date time.Time) *models.Inspection {
	t.Helper()
	insp := &models.Inspection{
		ID:                 uuid.New(),
		PropertyID:         env.propertyID,
		InspectionType:     "ROUTINE",
		ScheduledDate:      date,
		ParentInspectionID: parent,
		Frequency:          models.InspectionFreqNone,
	}
	require.NoError(t, env.inspRepo.Create(context.Background(), insp))
	return insp
}

func TestCreateInspectionDefaultsFrequency(t *testing.T) {
	env := newInspectionTestEnv(t)
	ctx := context.Background()

	insp, applyResp, err := env.svc.Create(ctx, env.managerID, &dtos.CreateInspectionRequest{
		PropertyID:     env.propertyID,
		InspectionType: "MOVE_OUT",
		ScheduledDate:  "2026-09-15",
	})
	require.NoError(t, err)
	require.Nil(t, applyResp)
	require.Equal(t, models.InspectionFreqNone, insp.Frequency)
	require.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), insp.ScheduledDate)

	stored, err := env.inspRepo.GetByID(ctx, insp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestCreateInspectionRejectsForeignProperty(t *testing.T) {
	env := newInspectionTestEnv(t)

	_, _, err := env.svc.Create(context.Background(), uuid.New(), &dtos.CreateInspectionRequest{
		PropertyID:     env.propertyID,
		InspectionType: "ROUTINE",
		ScheduledDate:  "2026-09-15",
	})
	require.Error(t, err)

	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	require.Equal(t, utils.ErrCodeNotFound, appErr.Code)
}

func TestCompleteManyHandlesPrimaryInConnectedSet(t *testing.T) {
	env := newInspectionTestEnv(t)
	ctx := context.Background()

	root := env.addInspection(t, nil, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	sibling := env.addInspection(t, &root.ID, time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC))

	// The client dialog includes the primary in the connected list;
	// it must still complete exactly once.
	resp, err := env.svc.CompleteMany(ctx, env.managerID, &dtos.CompleteInspectionsRequest{
		InspectionID: root.ID,
		ConnectedIDs: []uuid.UUID{root.ID, sibling.ID, sibling.ID},
	})
	require.NoError(t, err)
	require.Len(t, resp.CompletedIDs, 2)
	require.Equal(t, root.ID, resp.CompletedIDs[0])

	for _, id := range []uuid.UUID{root.ID, sibling.ID} {
		stored, err := env.inspRepo.GetByID(ctx, id)
		require.NoError(t, err)
		require.True(t, stored.Completed)
		require.NotNil(t, stored.CompletedAt)
	}
}

func TestCompleteManyIsIdempotent(t *testing.T) {
	env := newInspectionTestEnv(t)
	ctx := context.Background()

	insp := env.addInspection(t, nil, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	done := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, env.inspRepo.UpdateWithRetry(ctx, insp.ID, func(i *models.Inspection) error {
		i.Completed = true
		i.CompletedAt = &done
		return nil
	}))

	resp, err := env.svc.CompleteMany(ctx, env.managerID, &dtos.CompleteInspectionsRequest{
		InspectionID: insp.ID,
	})
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{insp.ID}, resp.CompletedIDs)

	stored, err := env.inspRepo.GetByID(ctx, insp.ID)
	require.NoError(t, err)
	require.Equal(t, done, *stored.CompletedAt, "original completion time must survive")
}

func TestCompleteManyRejectsInspectionFromAnotherProperty(t *testing.T) {
	env := newInspectionTestEnv(t)
	ctx := context.Background()

	primary := env.addInspection(t, nil, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	foreign := &models.Inspection{
		ID:             uuid.New(),
		PropertyID:     uuid.New(),
		InspectionType: "ROUTINE",
		ScheduledDate:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, env.inspRepo.Create(ctx, foreign))

	_, err := env.svc.CompleteMany(ctx, env.managerID, &dtos.CompleteInspectionsRequest{
		InspectionID: primary.ID,
		ConnectedIDs: []uuid.UUID{foreign.ID},
	})
	require.Error(t, err)
}

func TestDeleteManyHardDeleteRemovesSubtasks(t *testing.T) {
	env := newInspectionTestEnv(t)
	ctx := context.Background()

	root := env.addInspection(t, nil, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	sibling := env.addInspection(t, &root.ID, time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC))

	require.NoError(t, env.subtaskRepo.Create(ctx, &models.Subtask{
		ID: uuid.New(), InspectionID: root.ID, OriginalInspectionID: root.ID,
		Description: "check locks", Status: models.SubtaskStatusPending,
	}))
	// A copy living on the sibling but anchored to the root.
	require.NoError(t, env.subtaskRepo.Create(ctx, &models.Subtask{
		ID: uuid.New(), InspectionID: sibling.ID, OriginalInspectionID: root.ID,
		Description: "check locks", Status: models.SubtaskStatusPending,
	}))

	resp, err := env.svc.DeleteMany(ctx, env.managerID, &dtos.DeleteInspectionsRequest{
		InspectionID: root.ID,
		ConnectedIDs: []uuid.UUID{sibling.ID},
	})
	require.NoError(t, err)
	require.Len(t, resp.DeletedIDs, 2)
	require.Empty(t, resp.ArchivedIDs)

	require.Empty(t, env.inspRepo.rows)
	require.Empty(t, env.subtaskRepo.rows)
}

func TestDeleteManyKeepForAnalyticsArchives(t *testing.T) {
	env := newInspectionTestEnv(t)
	ctx := context.Background()

	insp := env.addInspection(t, nil, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, env.subtaskRepo.Create(ctx, &models.Subtask{
		ID: uuid.New(), InspectionID: insp.ID, OriginalInspectionID: insp.ID,
		Description: "check locks", Status: models.SubtaskStatusPending,
	}))

	resp, err := env.svc.DeleteMany(ctx, env.managerID, &dtos.DeleteInspectionsRequest{
		InspectionID:     insp.ID,
		KeepForAnalytics: true,
	})
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{insp.ID}, resp.ArchivedIDs)
	require.Empty(t, resp.DeletedIDs)

	// Hidden from normal listings...
	visible, err := env.inspRepo.ListByPropertyID(ctx, env.propertyID, nil, nil)
	require.NoError(t, err)
	require.Empty(t, visible)

	// ...but still present for analytics, subtasks intact.
	all, err := env.inspRepo.ListForAnalytics(ctx, env.propertyID, nil, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Len(t, env.subtaskRepo.rows, 1)
}

func TestListConnectedResolvesSeriesFromOccurrence(t *testing.T) {
	env := newInspectionTestEnv(t)
	ctx := context.Background()

	root := env.addInspection(t, nil, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	occA := env.addInspection(t, &root.ID, time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC))
	occB := env.addInspection(t, &root.ID, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC))

	// Asking from the middle of the series must surface the root and
	// the other occurrence, never the inspection itself.
	connected, err := env.svc.ListConnected(ctx, env.managerID, occA.ID)
	require.NoError(t, err)
	require.Len(t, connected, 2)

	ids := map[uuid.UUID]bool{}
	for _, c := range connected {
		ids[c.ID] = true
	}
	require.True(t, ids[root.ID])
	require.True(t, ids[occB.ID])
	require.False(t, ids[occA.ID])
}
