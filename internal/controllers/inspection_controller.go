package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/housecheck/inspections-service/internal/dtos"
	"github.com/housecheck/inspections-service/internal/models"
	"github.com/housecheck/inspections-service/internal/services"
	"github.com/housecheck/inspections-service/internal/utils"
)

var inspectionValidate = validator.New()

type InspectionController struct {
	inspService      *services.InspectionService
	analyticsService *services.AnalyticsService
}

func NewInspectionController(
	inspService *services.InspectionService,
	analyticsService *services.AnalyticsService,
) *InspectionController {
	return &InspectionController{
		inspService:      inspService,
		analyticsService: analyticsService,
	}
}

/* ---------- CRUD ---------- */

func (c *InspectionController) CreateInspection(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dtos.CreateInspectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := inspectionValidate.Struct(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err)
		return
	}

	insp, applyResp, err := c.inspService.Create(r.Context(), managerID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	dto := toInspectionDTO(insp)
	dto.ApplyResult = applyResp
	utils.RespondWithJSON(w, http.StatusCreated, dto)
}

func (c *InspectionController) GetInspection(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	insp, err := c.inspService.GetOwned(r.Context(), managerID, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toInspectionDTO(insp))
}

// ListInspections requires ?property_id= and supports optional
// ?from=/?to= date bounds.
func (c *InspectionController) ListInspections(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	propID, err := uuid.Parse(r.URL.Query().Get("property_id"))
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "property_id query param is required", nil, err)
		return
	}
	from, to, err := parseDateRange(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "from/to must be YYYY-MM-DD", nil, err)
		return
	}

	list, err := c.inspService.ListByProperty(r.Context(), managerID, propID, from, to)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	resp := dtos.ListInspectionsResponse{Results: []dtos.InspectionDTO{}}
	for _, insp := range list {
		resp.Results = append(resp.Results, toInspectionDTO(insp))
	}
	resp.Total = len(resp.Results)
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *InspectionController) UpdateInspection(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateInspectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := inspectionValidate.Struct(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err)
		return
	}

	insp, err := c.inspService.Update(r.Context(), managerID, id, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toInspectionDTO(insp))
}

/* ---------- connected / bulk ---------- */

func (c *InspectionController) ListConnected(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	list, err := c.inspService.ListConnected(r.Context(), managerID, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	resp := dtos.ListInspectionsResponse{Results: []dtos.InspectionDTO{}}
	for _, insp := range list {
		resp.Results = append(resp.Results, toInspectionDTO(insp))
	}
	resp.Total = len(resp.Results)
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *InspectionController) CompleteInspections(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dtos.CompleteInspectionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := inspectionValidate.Struct(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err)
		return
	}

	resp, err := c.inspService.CompleteMany(r.Context(), managerID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *InspectionController) DeleteInspections(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dtos.DeleteInspectionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := inspectionValidate.Struct(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err)
		return
	}

	resp, err := c.inspService.DeleteMany(r.Context(), managerID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

/* ---------- analytics ---------- */

// AnalyticsSummary requires ?property_id= and supports optional
// ?from=/?to= bounds.
func (c *InspectionController) AnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	propID, err := uuid.Parse(r.URL.Query().Get("property_id"))
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "property_id query param is required", nil, err)
		return
	}
	from, to, err := parseDateRange(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "from/to must be YYYY-MM-DD", nil, err)
		return
	}

	summary, err := c.analyticsService.Summary(r.Context(), managerID, propID, from, to)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, summary)
}

func toInspectionDTO(i *models.Inspection) dtos.InspectionDTO {
	return dtos.InspectionDTO{
		ID:                 i.ID,
		PropertyID:         i.PropertyID,
		UnitID:             i.UnitID,
		InspectionType:     i.InspectionType,
		ScheduledDate:      i.ScheduledDate.Format("2006-01-02"),
		ScheduledTime:      i.ScheduledTime,
		ParentInspectionID: i.ParentInspectionID,
		Frequency:          string(i.Frequency),
		SkipHolidays:       i.SkipHolidays,
		Completed:          i.Completed,
		CompletedAt:        i.CompletedAt,
		AttachmentURL:      i.AttachmentURL,
		Archived:           i.ArchivedAt != nil,
		CreatedAt:          i.CreatedAt,
	}
}
