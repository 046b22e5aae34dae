package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/housecheck/inspections-service/internal/dtos"
	"github.com/housecheck/inspections-service/internal/services"
	"github.com/housecheck/inspections-service/internal/utils"
)

var cascadeValidate = validator.New()

type CascadeController struct {
	cascadeService *services.CascadeDeleteService
}

func NewCascadeController(cascadeService *services.CascadeDeleteService) *CascadeController {
	return &CascadeController{cascadeService: cascadeService}
}

// CascadeDelete removes a property or unit subtree in one
// transaction.
func (c *CascadeController) CascadeDelete(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dtos.CascadeDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := cascadeValidate.Struct(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err)
		return
	}

	var counts *dtos.CascadeDeleteCounts
	var err error
	switch req.Type {
	case "property":
		counts, err = c.cascadeService.DeleteProperty(r.Context(), managerID, req.ID)
	case "unit":
		counts, err = c.cascadeService.DeleteUnit(r.Context(), managerID, req.ID)
	}
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.CascadeDeleteResponse{
		OK:      true,
		Deleted: *counts,
	})
}

// DeleteProperty => DELETE /api/v1/properties/{id}. Same transaction
// as CascadeDelete with type=property.
func (c *CascadeController) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	counts, err := c.cascadeService.DeleteProperty(r.Context(), managerID, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.CascadeDeleteResponse{OK: true, Deleted: *counts})
}

// DeleteUnit => DELETE /api/v1/units/{id}.
func (c *CascadeController) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	counts, err := c.cascadeService.DeleteUnit(r.Context(), managerID, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.CascadeDeleteResponse{OK: true, Deleted: *counts})
}
