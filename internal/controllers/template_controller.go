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

var templateValidate = validator.New()

type TemplateController struct {
	tmplService *services.TemplateService
	inspService *services.InspectionService
}

func NewTemplateController(
	tmplService *services.TemplateService,
	inspService *services.InspectionService,
) *TemplateController {
	return &TemplateController{tmplService: tmplService, inspService: inspService}
}

func (c *TemplateController) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	var req dtos.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := templateValidate.Struct(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err)
		return
	}

	t, err := c.tmplService.Create(r.Context(), &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	full, err := c.tmplService.GetFull(r.Context(), t.ID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, full)
}

func (c *TemplateController) GetTemplate(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	full, err := c.tmplService.GetFull(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, full)
}

// ListTemplates returns all templates, or a property's linked ones
// when ?property_id= is given.
func (c *TemplateController) ListTemplates(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	var list []*models.InspectionTemplate
	var err error
	if rawProp := r.URL.Query().Get("property_id"); rawProp != "" {
		propID, perr := uuid.Parse(rawProp)
		if perr != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid property_id", nil, perr)
			return
		}
		list, err = c.tmplService.ListByProperty(r.Context(), propID)
	} else {
		list, err = c.tmplService.List(r.Context())
	}
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	resp := dtos.ListTemplatesResponse{Results: []dtos.TemplateDTO{}}
	for _, t := range list {
		resp.Results = append(resp.Results, dtos.TemplateDTO{
			ID:             t.ID,
			Name:           t.Name,
			InspectionType: t.InspectionType,
		})
	}
	resp.Total = len(resp.Results)
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *TemplateController) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	if err := c.tmplService.Delete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApplyTemplate populates an inspection's checklist from a template.
// A 200 with rooms_failed entries means partial success; the client
// shows which rooms need attention.
func (c *TemplateController) ApplyTemplate(w http.ResponseWriter, r *http.Request) {
	managerID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dtos.ApplyTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := templateValidate.Struct(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err)
		return
	}

	insp, err := c.inspService.GetOwned(r.Context(), managerID, req.InspectionID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if req.InspectionType != "" {
		insp.InspectionType = req.InspectionType
	}

	resp, err := c.tmplService.Apply(r.Context(), insp, req.TemplateID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
