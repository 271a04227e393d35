package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"insurance/internal/insurance/models"
	"insurance/pkg/domain"
	"insurance/pkg/platform/httputil"
	"insurance/pkg/requestcontext"
)

// Service defines the insurance operations exposed over HTTP.
type Service interface {
	GetInsurancesByPersonalID(ctx context.Context, personalID domain.PersonalID) ([]models.Insurance, error)
	GetVehicle(ctx context.Context, registration string) (*models.CarDetails, error)
}

// Handler serves the customer insurance overview and the vehicle lookup.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates a new insurance Handler.
func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Register registers the insurance routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/v1/insurances/customer/{personalId}", h.handleGetInsurances)
	r.Get("/api/v1/vehicles/{registrationNumber}", h.handleGetVehicle)
}

func (h *Handler) handleGetInsurances(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	personalID, err := domain.ParsePersonalID(chi.URLParam(r, "personalId"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	insurances, err := h.service.GetInsurancesByPersonalID(ctx, personalID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	h.logger.DebugContext(ctx, "insurances listed",
		"request_id", requestcontext.RequestID(ctx),
		"count", len(insurances),
	)
	httputil.WriteJSON(w, http.StatusOK, toInsuranceResponses(insurances))
}

func (h *Handler) handleGetVehicle(w http.ResponseWriter, r *http.Request) {
	car, err := h.service.GetVehicle(r.Context(), chi.URLParam(r, "registrationNumber"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toCarResponse(car))
}
