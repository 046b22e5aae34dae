package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/housecheck/inspections-service/internal/dtos"
	"github.com/housecheck/inspections-service/internal/repositories"
)

// AnalyticsService aggregates a property's inspection history.
// Archived inspections count here too; that is what the
// keep-for-analytics delete preserves them for.
type AnalyticsService struct {
	inspRepo    repositories.InspectionRepository
	subtaskRepo repositories.SubtaskRepository
	propService *PropertyService
}

func NewAnalyticsService(
	inspRepo repositories.InspectionRepository,
	subtaskRepo repositories.SubtaskRepository,
	propService *PropertyService,
) *AnalyticsService {
	return &AnalyticsService{
		inspRepo:    inspRepo,
		subtaskRepo: subtaskRepo,
		propService: propService,
	}
}

func (s *AnalyticsService) Summary(ctx context.Context, managerID, propertyID uuid.UUID, from, to *time.Time) (*dtos.AnalyticsSummaryResponse, error) {
	if _, err := s.propService.GetOwned(ctx, managerID, propertyID); err != nil {
		return nil, err
	}

	inspections, err := s.inspRepo.ListForAnalytics(ctx, propertyID, from, to)
	if err != nil {
		return nil, err
	}

	resp := &dtos.AnalyticsSummaryResponse{
		ByType:  map[string]int{},
		ByMonth: map[string]int{},
	}

	var inspectionIDs []uuid.UUID
	for _, insp := range inspections {
		resp.TotalInspections++
		if insp.Completed {
			resp.CompletedInspections++
		}
		if insp.ArchivedAt != nil {
			resp.ArchivedInspections++
		}
		resp.ByType[insp.InspectionType]++
		resp.ByMonth[insp.ScheduledDate.Format("2006-01")]++
		inspectionIDs = append(inspectionIDs, insp.ID)
	}
	if resp.TotalInspections > 0 {
		resp.CompletionRate = float64(resp.CompletedInspections) / float64(resp.TotalInspections)
	}

	subtasks, err := s.subtaskRepo.ListByInspectionIDs(ctx, inspectionIDs)
	if err != nil {
		return nil, err
	}
	for _, sub := range subtasks {
		resp.TotalSubtasks++
		if sub.Completed {
			resp.CompletedSubtasks++
		}
	}
	return resp, nil
}
