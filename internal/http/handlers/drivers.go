package handlers

import (
	"net/http"
	"strings"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/service/dispatch"
)

// DriverHandler exposes driver lookups.
type DriverHandler struct {
	selector nearestUsecase
	logger   logx.Logger
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(logger logx.Logger, selector nearestUsecase) *DriverHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &DriverHandler{selector: selector, logger: logger}
}

// Nearest handles GET /drivers/nearest?lat=&lng=&start=&end=&weight_kg=&volume_m3=&zone=.
// It answers 404 when no driver qualifies.
func (h *DriverHandler) Nearest(w http.ResponseWriter, r *http.Request) {
	lat, okLat, err := queryFloat(r, "lat")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	lng, okLng, err := queryFloat(r, "lng")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	pickup := domain.Coordinates{Lat: lat, Lng: lng}
	if !okLat || !okLng || !pickup.Valid() {
		writeError(h.logger, w, r, http.StatusBadRequest, "lat and lng are required")
		return
	}
	start, err := queryTime(r, "start")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	end, err := queryTime(r, "end")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	weight, _, err := queryFloat(r, "weight_kg")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	volume, _, err := queryFloat(r, "volume_m3")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	d, err := h.selector.SelectNearest(r.Context(), dispatch.Criteria{
		Pickup:      pickup,
		Window:      domain.Window{Start: start, End: end},
		MinCapacity: domain.Capacity{WeightKg: weight, VolumeM3: volume},
		Zone:        strings.TrimSpace(r.URL.Query().Get("zone")),
	})
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	if d == nil {
		writeError(h.logger, w, r, http.StatusNotFound, "no eligible driver")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, nearestToResponse(*d, pickup))
}
