package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/housecheck/inspections-service/internal/dtos"
	"github.com/housecheck/inspections-service/internal/models"
	"github.com/housecheck/inspections-service/internal/repositories"
	"github.com/housecheck/inspections-service/internal/utils"
)

type TemplateService struct {
	tmplRepo    repositories.TemplateRepository
	subtaskRepo repositories.SubtaskRepository
}

func NewTemplateService(
	tmplRepo repositories.TemplateRepository,
	subtaskRepo repositories.SubtaskRepository,
) *TemplateService {
	return &TemplateService{tmplRepo: tmplRepo, subtaskRepo: subtaskRepo}
}

/* ---------- CRUD ---------- */

func (s *TemplateService) Create(ctx context.Context, req *dtos.CreateTemplateRequest) (*models.InspectionTemplate, error) {
	t := &models.InspectionTemplate{
		ID:             uuid.New(),
		Name:           req.Name,
		InspectionType: req.InspectionType,
	}
	if err := s.tmplRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	for roomPos, roomReq := range req.Rooms {
		room := &models.TemplateRoom{
			ID:         uuid.New(),
			TemplateID: t.ID,
			Name:       roomReq.Name,
			Position:   roomPos,
		}
		if err := s.tmplRepo.CreateRoom(ctx, room); err != nil {
			return nil, err
		}
		for itemPos, itemReq := range roomReq.Items {
			item := &models.TemplateItem{
				ID:              uuid.New(),
				RoomID:          room.ID,
				Description:     itemReq.Description,
				Position:        itemPos,
				InventoryTypeID: itemReq.InventoryTypeID,
				Quantity:        itemReq.Quantity,
			}
			if err := s.tmplRepo.CreateItem(ctx, item); err != nil {
				return nil, err
			}
		}
	}

	for _, propID := range req.PropertyIDs {
		if err := s.tmplRepo.LinkProperty(ctx, propID, t.ID); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// GetFull loads a template with its rooms and items expanded.
func (s *TemplateService) GetFull(ctx context.Context, id uuid.UUID) (*dtos.TemplateDTO, error) {
	t, err := s.tmplRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, templateNotFoundErr()
	}

	dto := &dtos.TemplateDTO{
		ID:             t.ID,
		Name:           t.Name,
		InspectionType: t.InspectionType,
	}
	rooms, err := s.tmplRepo.ListRooms(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	for _, room := range rooms {
		roomDTO := dtos.TemplateRoomDTO{
			ID:       room.ID,
			Name:     room.Name,
			Position: room.Position,
		}
		items, err := s.tmplRepo.ListItems(ctx, room.ID)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			roomDTO.Items = append(roomDTO.Items, dtos.TemplateItemDTO{
				ID:              item.ID,
				Description:     item.Description,
				Position:        item.Position,
				InventoryTypeID: item.InventoryTypeID,
				Quantity:        item.Quantity,
			})
		}
		dto.Rooms = append(dto.Rooms, roomDTO)
	}
	return dto, nil
}

func (s *TemplateService) List(ctx context.Context) ([]*models.InspectionTemplate, error) {
	return s.tmplRepo.List(ctx)
}

func (s *TemplateService) Delete(ctx context.Context, id uuid.UUID) error {
	t, err := s.tmplRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return templateNotFoundErr()
	}
	return s.tmplRepo.Delete(ctx, id)
}

/* ---------- application ---------- */

// Apply populates an inspection's checklist from a template: one
// subtask per room item, labeled "Room: Item". Rooms are applied
// independently so one bad room does not void the rest; the response
// reports exactly which rooms landed and which failed.
func (s *TemplateService) Apply(ctx context.Context, inspection *models.Inspection, templateID *uuid.UUID) (*dtos.ApplyTemplateResponse, error) {
	var t *models.InspectionTemplate
	var err error

	if templateID != nil {
		t, err = s.tmplRepo.GetByID(ctx, *templateID)
	} else {
		t, err = s.tmplRepo.GetByInspectionType(ctx, inspection.InspectionType)
	}
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, templateNotFoundErr()
	}

	rooms, err := s.tmplRepo.ListRooms(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	resp := &dtos.ApplyTemplateResponse{}
	for _, room := range rooms {
		items, err := s.tmplRepo.ListItems(ctx, room.ID)
		if err != nil {
			utils.Logger.WithError(err).Warnf("Failed to load items for room %q of template %s", room.Name, t.ID)
			resp.RoomsFailed = append(resp.RoomsFailed, room.Name)
			continue
		}

		created := 0
		roomFailed := false
		for _, item := range items {
			sub := &models.Subtask{
				ID:                   uuid.New(),
				InspectionID:         inspection.ID,
				OriginalInspectionID: inspection.ID,
				Description:          fmt.Sprintf("%s: %s", room.Name, item.Description),
				Status:               models.SubtaskStatusPending,
				InventoryTypeID:      item.InventoryTypeID,
				Quantity:             item.Quantity,
			}
			if err := s.subtaskRepo.Create(ctx, sub); err != nil {
				utils.Logger.WithError(err).Warnf("Failed to create subtask for room %q of template %s", room.Name, t.ID)
				roomFailed = true
				break
			}
			created++
		}

		resp.SubtasksCreated += created
		if roomFailed {
			resp.RoomsFailed = append(resp.RoomsFailed, room.Name)
		} else {
			resp.RoomsApplied++
		}
	}
	return resp, nil
}

func (s *TemplateService) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.InspectionTemplate, error) {
	return s.tmplRepo.ListByPropertyID(ctx, propertyID)
}

func templateNotFoundErr() error {
	return &utils.AppError{
		StatusCode: http.StatusNotFound,
		Code:       utils.ErrCodeTemplateNotFound,
		Message:    "No matching inspection template",
		Err:        utils.ErrTemplateNotFound,
	}
}
