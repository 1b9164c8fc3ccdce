package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"lumiere/internal/reservations/service"
	httputil "lumiere/pkg/http"
	"lumiere/pkg/logger"
	"lumiere/pkg/model"
)

type ReservationHandler struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

func (h *ReservationHandler) Admit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	clientID := ps.ByName("id")

	var reservation model.Reservation
	if err := json.NewDecoder(r.Body).Decode(&reservation); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Admit", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Admit(r.Context(), clientID, &reservation); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Admit", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, reservation); err != nil {
		h.log.Error("failed to write created response", "handler", "Admit", "operation", "WriteCreated", "error", err)
	}
}

func (h *ReservationHandler) Replace(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	clientID := ps.ByName("id")

	var reservations []model.Reservation
	if err := json.NewDecoder(r.Body).Decode(&reservations); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Replace", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Replace(r.Context(), clientID, reservations); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Replace", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, reservations); err != nil {
		h.log.Error("failed to write success response", "handler", "Replace", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) Remove(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	clientID := ps.ByName("id")
	reservationID := ps.ByName("resID")

	if err := h.service.Remove(r.Context(), clientID, reservationID); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Remove", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ReservationHandler) Occupancy(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	day := query.Get("date")
	exclude := query.Get("exclude")

	if day == "" {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "The 'date' query parameter is required",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Occupancy", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	occupied, err := h.service.Occupancy(r.Context(), day, exclude)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Occupancy", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, occupied); err != nil {
		h.log.Error("failed to write success response", "handler", "Occupancy", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/clients/id/:id/reservations", h.Admit)
	router.PUT("/api/v1/clients/id/:id/reservations", h.Replace)
	router.DELETE("/api/v1/clients/id/:id/reservations/:resID", h.Remove)
	router.GET("/api/v1/occupancy", h.Occupancy)
}
