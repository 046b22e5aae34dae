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

var profileValidate = validator.New()

type ProfileController struct {
	profileService *services.ProfileService
}

func NewProfileController(profileService *services.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// UpsertProfile registers or refreshes the caller's own profile row.
// The id always comes from the JWT subject, never from the payload.
func (c *ProfileController) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dtos.UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := profileValidate.Struct(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err)
		return
	}

	p := &models.Profile{
		ID:       userID,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	}
	if err := c.profileService.Upsert(r.Context(), p); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toProfileDTO(p))
}

func (c *ProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	p, err := c.profileService.GetByID(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if p == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Profile not found", nil)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toProfileDTO(p))
}

func (c *ProfileController) ListProfiles(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	list, err := c.profileService.List(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	resp := dtos.ListProfilesResponse{Results: []dtos.ProfileDTO{}}
	for _, p := range list {
		resp.Results = append(resp.Results, toProfileDTO(p))
	}
	resp.Total = len(resp.Results)
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func toProfileDTO(p *models.Profile) dtos.ProfileDTO {
	return dtos.ProfileDTO{
		ID:       p.ID,
		FullName: p.FullName,
		Email:    p.Email,
		Phone:    p.Phone,
	}
}
