package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/housecheck/inspections-service/internal/dtos"
	"github.com/housecheck/inspections-service/internal/models"
	"github.com/housecheck/inspections-service/internal/services"
	"github.com/housecheck/inspections-service/internal/utils"
)

var inventoryValidate = validator.New()

type InventoryTypeController struct {
	invService *services.InventoryTypeService
}

func NewInventoryTypeController(invService *services.InventoryTypeService) *InventoryTypeController {
	return &InventoryTypeController{invService: invService}
}

func (c *InventoryTypeController) CreateInventoryType(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	var req dtos.CreateInventoryTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := inventoryValidate.Struct(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err)
		return
	}

	it, err := c.invService.Create(r.Context(), &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toInventoryTypeDTO(it))
}

func (c *InventoryTypeController) GetInventoryType(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	it, err := c.invService.GetByID(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toInventoryTypeDTO(it))
}

func (c *InventoryTypeController) ListInventoryTypes(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	list, err := c.invService.List(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	resp := dtos.ListInventoryTypesResponse{Results: []dtos.InventoryTypeDTO{}}
	for _, it := range list {
		resp.Results = append(resp.Results, toInventoryTypeDTO(it))
	}
	resp.Total = len(resp.Results)
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *InventoryTypeController) UpdateInventoryType(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateInventoryTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := inventoryValidate.Struct(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err)
		return
	}

	it, err := c.invService.Update(r.Context(), id, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toInventoryTypeDTO(it))
}

func (c *InventoryTypeController) DeleteInventoryType(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	if err := c.invService.Delete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toInventoryTypeDTO(it *models.InventoryType) dtos.InventoryTypeDTO {
	return dtos.InventoryTypeDTO{ID: it.ID, Name: it.Name}
}
