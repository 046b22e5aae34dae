package controllers

import (
	"context"
	"net/http"

	"github.com/housecheck/inspections-service/internal/dtos"
	"github.com/housecheck/inspections-service/internal/utils"
)

// DBPinger is the slice of the pgx pool the health check needs.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// HealthController checks DB connectivity.
type HealthController struct {
	db DBPinger
}

func NewHealthController(db DBPinger) *HealthController {
	return &HealthController{db: db}
}

// HealthCheck => GET /health
func (c *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := c.db.Ping(r.Context()); err != nil {
		utils.Logger.WithError(err).Error("inspections-service DB unreachable")
		utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeInternal, "Database unreachable", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthCheckResponse{Status: "OK"})
}
