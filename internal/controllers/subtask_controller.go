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

var subtaskValidate = validator.New()

type SubtaskController struct {
	subtaskService *services.SubtaskService
}

func NewSubtaskController(subtaskService *services.SubtaskService) *SubtaskController {
	return &SubtaskController{subtaskService: subtaskService}
}

func (c *SubtaskController) CreateSubtask(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dtos.CreateSubtaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := subtaskValidate.Struct(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err)
		return
	}

	sub, err := c.subtaskService.Create(r.Context(), managerID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, c.toSubtaskDTO(r, sub))
}

func (c *SubtaskController) GetSubtask(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	sub, err := c.subtaskService.GetOwned(r.Context(), managerID, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, c.toSubtaskDTO(r, sub))
}

// ListSubtasks requires ?inspection_id=.
func (c *SubtaskController) ListSubtasks(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	inspID, err := uuid.Parse(r.URL.Query().Get("inspection_id"))
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "inspection_id query param is required", nil, err)
		return
	}

	list, err := c.subtaskService.ListByInspection(r.Context(), managerID, inspID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	resp := dtos.ListSubtasksResponse{Results: []dtos.SubtaskDTO{}}
	for _, sub := range list {
		resp.Results = append(resp.Results, c.toSubtaskDTO(r, sub))
	}
	resp.Total = len(resp.Results)
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *SubtaskController) UpdateSubtask(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateSubtaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := subtaskValidate.Struct(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err)
		return
	}

	sub, err := c.subtaskService.Update(r.Context(), managerID, id, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, c.toSubtaskDTO(r, sub))
}

func (c *SubtaskController) AssignSubtask(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	var req dtos.AssignSubtaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := subtaskValidate.Struct(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err)
		return
	}

	sub, err := c.subtaskService.Assign(r.Context(), managerID, id, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, c.toSubtaskDTO(r, sub))
}

func (c *SubtaskController) DeleteSubtask(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	if err := c.subtaskService.Delete(r.Context(), managerID, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *SubtaskController) toSubtaskDTO(r *http.Request, sub *models.Subtask) dtos.SubtaskDTO {
	dto := dtos.SubtaskDTO{
		ID:                   sub.ID,
		InspectionID:         sub.InspectionID,
		OriginalInspectionID: sub.OriginalInspectionID,
		Description:          sub.Description,
		AssignedUserIDs:      sub.AssignedUserIDs,
		Completed:            sub.Completed,
		Status:               string(sub.Status),
		AttachmentURL:        sub.AttachmentURL,
		InventoryTypeID:      sub.InventoryTypeID,
		Quantity:             sub.Quantity,
		CreatedAt:            sub.CreatedAt,
	}

	if len(sub.AssignedUserIDs) > 0 {
		profiles, err := c.subtaskService.AssignedProfiles(r.Context(), sub)
		if err != nil {
			utils.Logger.WithError(err).Warnf("Failed to resolve assignee profiles for subtask %s", sub.ID)
		}
		for _, p := range profiles {
			dto.AssignedUsers = append(dto.AssignedUsers, dtos.ProfileDTO{
				ID:       p.ID,
				FullName: p.FullName,
				Email:    p.Email,
			})
		}
	}
	return dto
}
