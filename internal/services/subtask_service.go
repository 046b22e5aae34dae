package services

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/housecheck/inspections-service/internal/dtos"
	"github.com/housecheck/inspections-service/internal/models"
	"github.com/housecheck/inspections-service/internal/repositories"
	"github.com/housecheck/inspections-service/internal/utils"
)

type SubtaskService struct {
	subtaskRepo repositories.SubtaskRepository
	inspService *InspectionService
	propService *PropertyService
	profiles    *ProfileService
	notifier    *NotificationService
}

func NewSubtaskService(
	subtaskRepo repositories.SubtaskRepository,
	inspService *InspectionService,
	propService *PropertyService,
	profiles *ProfileService,
	notifier *NotificationService,
) *SubtaskService {
	return &SubtaskService{
		subtaskRepo: subtaskRepo,
		inspService: inspService,
		propService: propService,
		profiles:    profiles,
		notifier:    notifier,
	}
}

func (s *SubtaskService) Create(ctx context.Context, managerID uuid.UUID, req *dtos.CreateSubtaskRequest) (*models.Subtask, error) {
	insp, err := s.inspService.GetOwned(ctx, managerID, req.InspectionID)
	if err != nil {
		return nil, err
	}

	sub := &models.Subtask{
		ID:                   uuid.New(),
		InspectionID:         insp.ID,
		OriginalInspectionID: insp.ID,
		Description:          req.Description,
		AssignedUserIDs:      req.AssignedUserIDs,
		Status:               models.SubtaskStatusPending,
		AttachmentURL:        req.AttachmentURL,
		InventoryTypeID:      req.InventoryTypeID,
		Quantity:             req.Quantity,
	}
	if err := s.subtaskRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	if len(sub.AssignedUserIDs) > 0 {
		s.notifyAssignees(ctx, managerID, sub, insp, sub.AssignedUserIDs)
	}
	return sub, nil
}

func (s *SubtaskService) GetOwned(ctx context.Context, managerID, subtaskID uuid.UUID) (*models.Subtask, error) {
	sub, err := s.subtaskRepo.GetByID(ctx, subtaskID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, subtaskNotFoundErr()
	}
	if _, err := s.inspService.GetOwned(ctx, managerID, sub.InspectionID); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *SubtaskService) ListByInspection(ctx context.Context, managerID, inspectionID uuid.UUID) ([]*models.Subtask, error) {
	if _, err := s.inspService.GetOwned(ctx, managerID, inspectionID); err != nil {
		return nil, err
	}
	return s.subtaskRepo.ListByInspectionID(ctx, inspectionID)
}

func (s *SubtaskService) Update(ctx context.Context, managerID, subtaskID uuid.UUID, req *dtos.UpdateSubtaskRequest) (*models.Subtask, error) {
	if _, err := s.GetOwned(ctx, managerID, subtaskID); err != nil {
		return nil, err
	}

	err := s.subtaskRepo.UpdateWithRetry(ctx, subtaskID, func(sub *models.Subtask) error {
		if req.Description != nil {
			sub.Description = *req.Description
		}
		if req.Status != nil {
			sub.Status = models.SubtaskStatusType(*req.Status)
			sub.Completed = sub.Status == models.SubtaskStatusDone
		}
		if req.AttachmentURL != nil {
			sub.AttachmentURL = req.AttachmentURL
		}
		if req.InventoryTypeID != nil {
			sub.InventoryTypeID = req.InventoryTypeID
		}
		if req.Quantity != nil {
			sub.Quantity = req.Quantity
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.subtaskRepo.GetByID(ctx, subtaskID)
}

// Assign replaces a subtask's assignee set and notifies users who were
// not on it before.
func (s *SubtaskService) Assign(ctx context.Context, managerID, subtaskID uuid.UUID, req *dtos.AssignSubtaskRequest) (*models.Subtask, error) {
	sub, err := s.GetOwned(ctx, managerID, subtaskID)
	if err != nil {
		return nil, err
	}

	previous := map[uuid.UUID]bool{}
	for _, id := range sub.AssignedUserIDs {
		previous[id] = true
	}
	var added []uuid.UUID
	for _, id := range req.AssignedUserIDs {
		if !previous[id] {
			added = append(added, id)
		}
	}

	err = s.subtaskRepo.UpdateWithRetry(ctx, subtaskID, func(st *models.Subtask) error {
		st.AssignedUserIDs = req.AssignedUserIDs
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.subtaskRepo.GetByID(ctx, subtaskID)
	if err != nil {
		return nil, err
	}
	if len(added) > 0 {
		insp, err := s.inspService.GetOwned(ctx, managerID, updated.InspectionID)
		if err == nil {
			s.notifyAssignees(ctx, managerID, updated, insp, added)
		}
	}
	return updated, nil
}

func (s *SubtaskService) Delete(ctx context.Context, managerID, subtaskID uuid.UUID) error {
	if _, err := s.GetOwned(ctx, managerID, subtaskID); err != nil {
		return err
	}
	return s.subtaskRepo.Delete(ctx, subtaskID)
}

// AssignedProfiles resolves the profile records behind a subtask's
// assignee ids, mostly from cache.
func (s *SubtaskService) AssignedProfiles(ctx context.Context, sub *models.Subtask) ([]*models.Profile, error) {
	return s.profiles.GetByIDs(ctx, sub.AssignedUserIDs)
}

func (s *SubtaskService) notifyAssignees(ctx context.Context, managerID uuid.UUID, sub *models.Subtask, insp *models.Inspection, userIDs []uuid.UUID) {
	prop, err := s.propService.GetOwned(ctx, managerID, insp.PropertyID)
	if err != nil {
		utils.Logger.WithError(err).Warnf("Skipping assignment notification for subtask %s", sub.ID)
		return
	}
	assignees, err := s.profiles.GetByIDs(ctx, userIDs)
	if err != nil {
		utils.Logger.WithError(err).Warnf("Failed to resolve assignees for subtask %s", sub.ID)
		return
	}
	s.notifier.NotifySubtaskAssigned(sub, insp, prop, assignees)
}

func subtaskNotFoundErr() error {
	return &utils.AppError{
		StatusCode: http.StatusNotFound,
		Code:       utils.ErrCodeNotFound,
		Message:    "Subtask not found",
		Err:        utils.ErrNotFound,
	}
}
