package http

import (
	"net/http"
	"time"

	"github.com/m-mizutani/shipnote/pkg/domain/model"
	"github.com/m-mizutani/shipnote/pkg/domain/types"
)

func handleHealth(startedAt time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(r.Context(), w, http.StatusOK, &model.HealthStatus{
			Status:    "healthy",
			Service:   "shipnote",
			Version:   types.Version,
			UptimeSec: int64(time.Since(startedAt).Seconds()),
		})
	}
}
