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

var unitValidate = validator.New()

type UnitController struct {
	unitService *services.UnitService
}

func NewUnitController(unitService *services.UnitService) *UnitController {
	return &UnitController{unitService: unitService}
}

func (c *UnitController) CreateUnit(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dtos.CreateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := unitValidate.Struct(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err)
		return
	}

	u, err := c.unitService.Create(r.Context(), managerID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toUnitDTO(u))
}

func (c *UnitController) GetUnit(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	u, err := c.unitService.GetOwned(r.Context(), managerID, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toUnitDTO(u))
}

// ListUnits requires ?property_id= and returns that property's units.
func (c *UnitController) ListUnits(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	propID, err := uuid.Parse(r.URL.Query().Get("property_id"))
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "property_id query param is required", nil, err)
		return
	}

	units, err := c.unitService.ListByProperty(r.Context(), managerID, propID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	resp := dtos.ListUnitsResponse{Results: []dtos.UnitDTO{}}
	for _, u := range units {
		resp.Results = append(resp.Results, toUnitDTO(u))
	}
	resp.Total = len(resp.Results)
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *UnitController) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := unitValidate.Struct(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err)
		return
	}

	u, err := c.unitService.Update(r.Context(), managerID, id, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toUnitDTO(u))
}

func toUnitDTO(u *models.Unit) dtos.UnitDTO {
	return dtos.UnitDTO{
		ID:         u.ID,
		PropertyID: u.PropertyID,
		Name:       u.Name,
		CreatedAt:  u.CreatedAt,
	}
}
