package services

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/housecheck/inspections-service/internal/dtos"
	"github.com/housecheck/inspections-service/internal/models"
	"github.com/housecheck/inspections-service/internal/repositories"
	"github.com/housecheck/inspections-service/internal/utils"
)

const scheduledDateLayout = "2006-01-02"

type InspectionService struct {
	inspRepo    repositories.InspectionRepository
	subtaskRepo repositories.SubtaskRepository
	propService *PropertyService
	tmplService *TemplateService
}

func NewInspectionService(
	inspRepo repositories.InspectionRepository,
	subtaskRepo repositories.SubtaskRepository,
	propService *PropertyService,
	tmplService *TemplateService,
) *InspectionService {
	return &InspectionService{
		inspRepo:    inspRepo,
		subtaskRepo: subtaskRepo,
		propService: propService,
		tmplService: tmplService,
	}
}

/* ---------- create / read / update ---------- */

// Create schedules an inspection. When the request names a template,
// the checklist is populated right away and the (possibly partial)
// application result is returned alongside the inspection.
func (s *InspectionService) Create(ctx context.Context, managerID uuid.UUID, req *dtos.CreateInspectionRequest) (*models.Inspection, *dtos.ApplyTemplateResponse, error) {
	if _, err := s.propService.GetOwned(ctx, managerID, req.PropertyID); err != nil {
		return nil, nil, err
	}

	scheduled, err := time.Parse(scheduledDateLayout, req.ScheduledDate)
	if err != nil {
		return nil, nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "scheduled_date must be YYYY-MM-DD",
			Err:        err,
		}
	}

	freq := models.InspectionFrequencyType(req.Frequency)
	if req.Frequency == "" {
		freq = models.InspectionFreqNone
	}

	insp := &models.Inspection{
		ID:             uuid.New(),
		PropertyID:     req.PropertyID,
		UnitID:         req.UnitID,
		InspectionType: req.InspectionType,
		ScheduledDate:  scheduled,
		ScheduledTime:  req.ScheduledTime,
		Frequency:      freq,
		SkipHolidays:   req.SkipHolidays,
	}
	if err := s.inspRepo.Create(ctx, insp); err != nil {
		return nil, nil, err
	}

	var applyResp *dtos.ApplyTemplateResponse
	if req.TemplateID != nil {
		applyResp, err = s.tmplService.Apply(ctx, insp, req.TemplateID)
		if err != nil {
			// The inspection exists; the template can be re-applied
			// explicitly, so surface the miss as a warning only.
			utils.Logger.WithError(err).Warnf("Template application failed for inspection %s", insp.ID)
			applyResp = nil
		}
	}
	return insp, applyResp, nil
}

// GetOwned loads an inspection and verifies the caller manages its
// property.
func (s *InspectionService) GetOwned(ctx context.Context, managerID, inspectionID uuid.UUID) (*models.Inspection, error) {
	insp, err := s.inspRepo.GetByID(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	if insp == nil {
		return nil, inspectionNotFoundErr()
	}
	if _, err := s.propService.GetOwned(ctx, managerID, insp.PropertyID); err != nil {
		return nil, err
	}
	return insp, nil
}

func (s *InspectionService) ListByProperty(ctx context.Context, managerID, propertyID uuid.UUID, from, to *time.Time) ([]*models.Inspection, error) {
	if _, err := s.propService.GetOwned(ctx, managerID, propertyID); err != nil {
		return nil, err
	}
	return s.inspRepo.ListByPropertyID(ctx, propertyID, from, to)
}

func (s *InspectionService) Update(ctx context.Context, managerID, inspectionID uuid.UUID, req *dtos.UpdateInspectionRequest) (*models.Inspection, error) {
	if _, err := s.GetOwned(ctx, managerID, inspectionID); err != nil {
		return nil, err
	}

	err := s.inspRepo.UpdateWithRetry(ctx, inspectionID, func(i *models.Inspection) error {
		if req.UnitID != nil {
			i.UnitID = req.UnitID
		}
		if req.InspectionType != nil {
			i.InspectionType = *req.InspectionType
		}
		if req.ScheduledDate != nil {
			scheduled, err := time.Parse(scheduledDateLayout, *req.ScheduledDate)
			if err != nil {
				return &utils.AppError{
					StatusCode: http.StatusBadRequest,
					Code:       utils.ErrCodeValidation,
					Message:    "scheduled_date must be YYYY-MM-DD",
					Err:        err,
				}
			}
			i.ScheduledDate = scheduled
		}
		if req.ScheduledTime != nil {
			i.ScheduledTime = req.ScheduledTime
		}
		if req.AttachmentURL != nil {
			i.AttachmentURL = req.AttachmentURL
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.inspRepo.GetByID(ctx, inspectionID)
}

/* ---------- connected listing ---------- */

// ListConnected returns the unarchived siblings of an inspection:
// every other occurrence of the same recurring series.
func (s *InspectionService) ListConnected(ctx context.Context, managerID, inspectionID uuid.UUID) ([]*models.Inspection, error) {
	insp, err := s.GetOwned(ctx, managerID, inspectionID)
	if err != nil {
		return nil, err
	}
	return s.inspRepo.ListConnected(ctx, insp.SeriesRootID(), insp.ID)
}

/* ---------- bulk complete / delete ---------- */

// CompleteMany marks the primary inspection plus any caller-selected
// connected inspections completed. The primary is processed exactly
// once even when it also appears in the connected set.
func (s *InspectionService) CompleteMany(ctx context.Context, managerID uuid.UUID, req *dtos.CompleteInspectionsRequest) (*dtos.CompleteInspectionsResponse, error) {
	primary, err := s.GetOwned(ctx, managerID, req.InspectionID)
	if err != nil {
		return nil, err
	}

	ids, err := s.collectTargetIDs(ctx, primary, req.ConnectedIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	resp := &dtos.CompleteInspectionsResponse{}
	for _, id := range ids {
		err := s.inspRepo.UpdateWithRetry(ctx, id, func(i *models.Inspection) error {
			if i.Completed {
				return nil // idempotent
			}
			i.Completed = true
			i.CompletedAt = &now
			return nil
		})
		if err != nil {
			return nil, err
		}
		resp.CompletedIDs = append(resp.CompletedIDs, id)
	}
	return resp, nil
}

// DeleteMany removes the primary inspection plus any caller-selected
// connected inspections. With keep_for_analytics the rows are archived
// instead: hidden from lists but still feeding the analytics summary.
func (s *InspectionService) DeleteMany(ctx context.Context, managerID uuid.UUID, req *dtos.DeleteInspectionsRequest) (*dtos.DeleteInspectionsResponse, error) {
	primary, err := s.GetOwned(ctx, managerID, req.InspectionID)
	if err != nil {
		return nil, err
	}

	ids, err := s.collectTargetIDs(ctx, primary, req.ConnectedIDs)
	if err != nil {
		return nil, err
	}

	resp := &dtos.DeleteInspectionsResponse{}
	if req.KeepForAnalytics {
		if _, err := s.inspRepo.Archive(ctx, ids); err != nil {
			return nil, err
		}
		resp.ArchivedIDs = ids
		return resp, nil
	}

	if _, err := s.subtaskRepo.DeleteByInspectionIDs(ctx, ids); err != nil {
		return nil, err
	}
	if _, err := s.inspRepo.DeleteByIDs(ctx, ids); err != nil {
		return nil, err
	}
	resp.DeletedIDs = ids
	return resp, nil
}

// collectTargetIDs builds the working set for a bulk operation: the
// primary first, then each connected id at most once, with ids outside
// the primary's property rejected.
func (s *InspectionService) collectTargetIDs(ctx context.Context, primary *models.Inspection, connectedIDs []uuid.UUID) ([]uuid.UUID, error) {
	seen := map[uuid.UUID]bool{primary.ID: true}
	ids := []uuid.UUID{primary.ID}

	for _, id := range connectedIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		insp, err := s.inspRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if insp == nil || insp.PropertyID != primary.PropertyID {
			return nil, inspectionNotFoundErr()
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func inspectionNotFoundErr() error {
	return &utils.AppError{
		StatusCode: http.StatusNotFound,
		Code:       utils.ErrCodeNotFound,
		Message:    "Inspection not found",
		Err:        utils.ErrNotFound,
	}
}
