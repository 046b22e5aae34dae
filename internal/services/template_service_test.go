package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/housecheck/inspections-service/internal/dtos"
	"github.com/housecheck/inspections-service/internal/models"
	"github.com/housecheck/inspections-service/internal/utils"
)

func seedTwoRoomTemplate(t *testing.T, repo *fakeTemplateRepo) (tmplID uuid.UUID, roomIDs []uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	tmplID = uuid.New()
	require.NoError(t, repo.Create(ctx, &models.InspectionTemplate{
		ID: tmplID, Name: "Standard move-out", InspectionType: "MOVE_OUT",
	}))

	for _, roomName := range []string{"Kitchen", "Bathroom"} {
		room := &models.TemplateRoom{ID: uuid.New(), TemplateID: tmplID, Name: roomName}
		require.NoError(t, repo.CreateRoom(ctx, room))
		roomIDs = append(roomIDs, room.ID)
		for _, desc := range []string{"Check walls", "Check floor"} {
			require.NoError(t, repo.CreateItem(ctx, &models.TemplateItem{
				ID: uuid.New(), RoomID: room.ID, Description: desc,
			}))
		}
	}
	return tmplID, roomIDs
}

func TestApplyCreatesSubtaskPerRoomItem(t *testing.T) {
	tmplRepo := newFakeTemplateRepo()
	subtaskRepo := &fakeSubtaskRepo{}
	svc := NewTemplateService(tmplRepo, subtaskRepo)

	tmplID, _ := seedTwoRoomTemplate(t, tmplRepo)
	insp := &models.Inspection{ID: uuid.New(), InspectionType: "MOVE_OUT"}

	resp, err := svc.Apply(context.Background(), insp, &tmplID)
	require.NoError(t, err)
	require.Equal(t, 4, resp.SubtasksCreated)
	require.Equal(t, 2, resp.RoomsApplied)
	require.Empty(t, resp.RoomsFailed)

	require.Len(t, subtaskRepo.rows, 4)
	for _, sub := range subtaskRepo.rows {
		require.Equal(t, insp.ID, sub.InspectionID)
		require.Equal(t, insp.ID, sub.OriginalInspectionID)
		require.Equal(t, models.SubtaskStatusPending, sub.Status)
		require.Contains(t, sub.Description, ": Check")
	}
}

func TestApplyResolvesTemplateByInspectionType(t *testing.T) {
	tmplRepo := newFakeTemplateRepo()
	subtaskRepo := &fakeSubtaskRepo{}
	svc := NewTemplateService(tmplRepo, subtaskRepo)

	seedTwoRoomTemplate(t, tmplRepo)
	insp := &models.Inspection{ID: uuid.New(), InspectionType: "MOVE_OUT"}

	resp, err := svc.Apply(context.Background(), insp, nil)
	require.NoError(t, err)
	require.Equal(t, 4, resp.SubtasksCreated)
}

func TestApplyReportsFailedRooms(t *testing.T) {
	tmplRepo := newFakeTemplateRepo()
	subtaskRepo := &fakeSubtaskRepo{}
	svc := NewTemplateService(tmplRepo, subtaskRepo)

	tmplID, roomIDs := seedTwoRoomTemplate(t, tmplRepo)
	tmplRepo.failItemsForRoom[roomIDs[1]] = true

	insp := &models.Inspection{ID: uuid.New(), InspectionType: "MOVE_OUT"}
	resp, err := svc.Apply(context.Background(), insp, &tmplID)
	require.NoError(t, err, "partial failure is a success response, not an error")

	require.Equal(t, 2, resp.SubtasksCreated)
	require.Equal(t, 1, resp.RoomsApplied)
	require.Equal(t, []string{"Bathroom"}, resp.RoomsFailed)
}

func TestApplyMissingTemplate(t *testing.T) {
	svc := NewTemplateService(newFakeTemplateRepo(), &fakeSubtaskRepo{})

	insp := &models.Inspection{ID: uuid.New(), InspectionType: "MOVE_OUT"}
	_, err := svc.Apply(context.Background(), insp, nil)
	require.Error(t, err)

	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, utils.ErrCodeTemplateNotFound, appErr.Code)
}

func TestCreateTemplateAssignsPositions(t *testing.T) {
	tmplRepo := newFakeTemplateRepo()
	svc := NewTemplateService(tmplRepo, &fakeSubtaskRepo{})
	ctx := context.Background()

	tmpl, err := svc.Create(ctx, &dtos.CreateTemplateRequest{
		Name:           "Turnover",
		InspectionType: "TURNOVER",
		Rooms: []dtos.CreateTemplateRoomRequest{
			{Name: "Entry", Items: []dtos.CreateTemplateItemRequest{{Description: "Door"}}},
			{Name: "Living room", Items: []dtos.CreateTemplateItemRequest{{Description: "Windows"}, {Description: "Outlets"}}},
		},
	})
	require.NoError(t, err)

	full, err := svc.GetFull(ctx, tmpl.ID)
	require.NoError(t, err)
	require.Len(t, full.Rooms, 2)
	require.Equal(t, 0, full.Rooms[0].Position)
	require.Equal(t, 1, full.Rooms[1].Position)
	require.Len(t, full.Rooms[1].Items, 2)
	require.Equal(t, 1, full.Rooms[1].Items[1].Position)
}
