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

var propertyValidate = validator.New()

type PropertyController struct {
	propService *services.PropertyService
}

func NewPropertyController(propService *services.PropertyService) *PropertyController {
	return &PropertyController{propService: propService}
}

func (c *PropertyController) CreateProperty(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dtos.CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := propertyValidate.Struct(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err)
		return
	}

	p, err := c.propService.Create(r.Context(), managerID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toPropertyDTO(p))
}

func (c *PropertyController) GetProperty(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	p, err := c.propService.GetOwned(r.Context(), managerID, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toPropertyDTO(p))
}

func (c *PropertyController) ListProperties(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	props, err := c.propService.List(r.Context(), managerID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	resp := dtos.ListPropertiesResponse{Results: []dtos.PropertyDTO{}}
	for _, p := range props {
		resp.Results = append(resp.Results, toPropertyDTO(p))
	}
	resp.Total = len(resp.Results)
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *PropertyController) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	var req dtos.UpdatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := propertyValidate.Struct(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err)
		return
	}

	p, err := c.propService.Update(r.Context(), managerID, id, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toPropertyDTO(p))
}

func toPropertyDTO(p *models.Property) dtos.PropertyDTO {
	return dtos.PropertyDTO{
		ID:        p.ID,
		Name:      p.Name,
		Address:   p.Address,
		City:      p.City,
		State:     p.State,
		ZipCode:   p.ZipCode,
		TimeZone:  p.TimeZone,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		CreatedAt: p.CreatedAt,
	}
}
