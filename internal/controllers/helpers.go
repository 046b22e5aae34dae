package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/housecheck/inspections-service/internal/middleware"
	"github.com/housecheck/inspections-service/internal/utils"
)

// requireUserID pulls the authenticated user out of the request
// context. The middleware guarantees it is present on protected
// routes; a miss means a wiring bug, reported as 401.
func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw, _ := r.Context().Value(middleware.ContextKeyUserID).(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing or invalid user identity", nil, err,
		)
		return uuid.Nil, false
	}
	return id, true
}

// parseIDVar parses the {id} path variable.
func parseIDVar(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := mux.Vars(r)["id"]
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid id in path", nil, err,
		)
		return uuid.Nil, false
	}
	return id, true
}

// parseDateRange reads optional ?from= and ?to= query params
// (YYYY-MM-DD).
func parseDateRange(r *http.Request) (from, to *time.Time, err error) {
	if raw := r.URL.Query().Get("from"); raw != "" {
		t, perr := time.Parse("2006-01-02", raw)
		if perr != nil {
			return nil, nil, perr
		}
		from = &t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, perr := time.Parse("2006-01-02", raw)
		if perr != nil {
			return nil, nil, perr
		}
		to = &t
	}
	return from, to, nil
}
