package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/ads-api/internal/api/shared"
	"github.com/phrazzld/ads-api/internal/domain"
	"github.com/phrazzld/ads-api/internal/platform/logger"
	"github.com/phrazzld/ads-api/internal/service"
)

// AdvertisementDeletedMessage is the body message of a successful delete.
const AdvertisementDeletedMessage = "Advertisement deleted successfully"

// AdvertisementHandler handles advertisement HTTP requests.
type AdvertisementHandler struct {
	adService      service.AdvertisementService
	defaultPerPage int
	logger         *slog.Logger
}

// NewAdvertisementHandler creates a new AdvertisementHandler. A non-positive
// defaultPerPage falls back to domain.DefaultPerPage.
func NewAdvertisementHandler(
	adService service.AdvertisementService,
	defaultPerPage int,
	logger *slog.Logger,
) *AdvertisementHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if defaultPerPage <= 0 {
		defaultPerPage = domain.DefaultPerPage
	}
	return &AdvertisementHandler{
		adService:      adService,
		defaultPerPage: defaultPerPage,
		logger:         logger.With(slog.String("component", "advertisement_handler")),
	}
}

// List handles GET /ads.
func (h *AdvertisementHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage, err := getPagination(r, h.defaultPerPage)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.adService.List(r.Context(), page, perPage)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list advertisements")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, pageToResponse(result))
}

// Get handles GET /ads/{id}.
func (h *AdvertisementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	ad, err := h.adService.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get advertisement")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, advertisementToResponse(ad))
}

// Create handles POST /ads. The authenticated user becomes the owner.
func (h *AdvertisementHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	user, ok := requireUser(w, r, log)
	if !ok {
		return
	}

	var req CreateAdvertisementRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithValidationError(w, r, shared.DecodeErrorDetails(err))
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	ad, err := h.adService.Create(r.Context(), user.ID, req.Title, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create advertisement")
		return
	}

	log.Debug("advertisement created via API",
		slog.Int64("advertisement_id", ad.ID),
		slog.Int64("owner_id", user.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, advertisementToResponse(ad))
}

// Update handles PUT and PATCH /ads/{id}. Both apply only the fields present
// in the body.
func (h *AdvertisementHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	user, id, ok := requireUserAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateAdvertisementRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithValidationError(w, r, shared.DecodeErrorDetails(err))
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	ad, err := h.adService.Update(r.Context(), id, user.ID, req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update advertisement")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, advertisementToResponse(ad))
}

// Delete handles DELETE /ads/{id}.
func (h *AdvertisementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	user, id, ok := requireUserAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.adService.Delete(r.Context(), id, user.ID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete advertisement")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: AdvertisementDeletedMessage})
}
